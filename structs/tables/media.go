package tables

import "time"

type MediaAsset struct {
	tableName    struct{}       `bun:"table:media_assets,alias:m"`
	ID           string         `bun:"id,pk" json:"id"`
	StorageKey   string         `bun:"storage_key,notnull" json:"storage_key"`
	Filename     string         `bun:"filename,notnull" json:"filename"`
	OriginalName string         `bun:"original_name,notnull,default:''" json:"original_name"`
	MimeType     string         `bun:"mime_type,notnull,default:''" json:"mime_type"`
	Size         int64          `bun:"size,notnull,default:0" json:"size"`
	URL          string         `bun:"url,notnull,default:''" json:"url"`
	Checksum     *string        `bun:"checksum" json:"checksum,omitempty"`
	Metadata     map[string]any `bun:"metadata,type:jsonb" json:"metadata"`
	CreatedAt    time.Time      `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time      `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// LandingMedia is a singleton; the only row has LandingMediaID.
type LandingMedia struct {
	tableName       struct{}           `bun:"table:landing_media,alias:lm"`
	ID              int                `bun:"id,pk" json:"id"`
	HeroVideoSrc    string             `bun:"hero_video_src,notnull,default:''" json:"hero_video_src"`
	HeroVideoPoster string             `bun:"hero_video_poster,notnull,default:''" json:"hero_video_poster"`
	UpdatedAt       time.Time          `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
	Gallery         []LandingGallery   `bun:"rel:has-many,join:id=landing_id" json:"gallery,omitempty"`
	Highlights      []LandingHighlight `bun:"rel:has-many,join:id=landing_id" json:"highlights,omitempty"`
}

const LandingMediaID = 1

type LandingGallery struct {
	tableName struct{} `bun:"table:landing_gallery_images,alias:lg"`
	ID        string   `bun:"id,pk" json:"id"`
	LandingID int      `bun:"landing_id,notnull" json:"landing_id"`
	URL       string   `bun:"url,notnull" json:"url"`
	SortOrder int      `bun:"sort_order,notnull" json:"sort_order"`
}

type LandingHighlight struct {
	tableName struct{} `bun:"table:landing_highlights,alias:lh"`
	ID        string   `bun:"id,pk" json:"id"`
	LandingID int      `bun:"landing_id,notnull" json:"landing_id"`
	Title     string   `bun:"title,notnull,default:''" json:"title"`
	Caption   string   `bun:"caption,notnull,default:''" json:"caption"`
	Image     string   `bun:"image,notnull" json:"image"`
	SortOrder int      `bun:"sort_order,notnull" json:"sort_order"`
}
