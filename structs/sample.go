package structs

type SampleRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Company   string `json:"company"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Product   string `json:"product"`
	Quantity  string `json:"quantity"`
	Notes     string `json:"notes"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// SamplePayload fields are free text; quantity is a note ("2 rolls") and may arrive as a number.
type SamplePayload struct {
	Name     string `json:"name"`
	Company  string `json:"company"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Product  string `json:"product"`
	Quantity any    `json:"quantity"`
	Notes    string `json:"notes"`
}
