package domain

type CartItem struct {
	ToolID     int32 `json:"tool_id"`
	Tool       *Tool `json:"tool,omitempty"` // Populated on reads
	Quantity   int32 `json:"quantity"`
	PriceCents int32 `json:"price_cents"` // snapshot of the tool price at write time
	RentalDays int32 `json:"rental_days"`
	Insurance  bool  `json:"insurance"`
}

// Cart is the per-user mutable set of prospective rental lines. A second
// cart row flagged Checkout is persisted at order creation as the priced
// snapshot the payment references.
type Cart struct {
	ID         int32      `json:"id"`
	UserID     int32      `json:"user_id"`
	Items      []CartItem `json:"items"`
	TotalCents int32      `json:"total_cents"`
	Checkout   bool       `json:"-"`
	UpdatedOn  string     `json:"updated_on"`
}
