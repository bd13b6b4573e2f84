package domain

type Tool struct {
	ID          int32  `json:"id"`
	OwnerID     int32  `json:"owner_id"`
	Owner       *User  `json:"owner,omitempty"` // Populated when fetching tool details
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	PriceCents  int32  `json:"price_cents"` // rental price per day
	ImageURL    string `json:"image_url"`
	CreatedOn   string `json:"created_on"`
}
