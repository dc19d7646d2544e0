package structs

type MediaAsset struct {
	ID           string         `json:"id"`
	StorageKey   string         `json:"storageKey"`
	Filename     string         `json:"filename"`
	OriginalName string         `json:"originalName"`
	MimeType     string         `json:"mimeType"`
	Size         int64          `json:"size"`
	URL          string         `json:"url"`
	Checksum     *string        `json:"checksum"`
	Metadata     map[string]any `json:"metadata"`
	CreatedAt    string         `json:"createdAt"`
	UpdatedAt    string         `json:"updatedAt"`
}

type MediaEntryPayload struct {
	ID           string         `json:"id"`
	StorageKey   string         `json:"storageKey"`
	Filename     string         `json:"filename"`
	OriginalName string         `json:"originalName"`
	MimeType     string         `json:"mimeType"`
	Size         int64          `json:"size"`
	URL          string         `json:"url"`
	Checksum     *string        `json:"checksum"`
	Metadata     map[string]any `json:"metadata"`
}

type HeroVideo struct {
	Src    string `json:"src"`
	Poster string `json:"poster"`
}

type MediaHighlight struct {
	Title   string `json:"title"`
	Caption string `json:"caption"`
	Image   string `json:"image"`
}

type LandingMedia struct {
	ID              int              `json:"id"`
	HeroVideo       HeroVideo        `json:"heroVideo"`
	HeroGallery     []string         `json:"heroGallery"`
	MediaHighlights []MediaHighlight `json:"mediaHighlights"`
}

type LandingMediaPayload struct {
	HeroVideo       HeroVideo        `json:"heroVideo"`
	HeroGallery     []string         `json:"heroGallery"`
	MediaHighlights []MediaHighlight `json:"mediaHighlights"`
}
