package domain

type PaymentStatus string

const (
	PaymentStatusCreated PaymentStatus = "CREATED"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// PaymentItem is a priced line captured from the checkout cart. Earnings
// aggregation and owner notifications read these snapshots, never live
// tool prices.
type PaymentItem struct {
	ToolID         int32  `json:"tool_id"`
	ToolName       string `json:"tool_name"`
	OwnerID        int32  `json:"owner_id"`
	Quantity       int32  `json:"quantity"`
	RentalDays     int32  `json:"rental_days"`
	PriceCents     int32  `json:"price_cents"`
	LineTotalCents int32  `json:"line_total_cents"`
}

type Payment struct {
	ID              int32         `json:"id"`
	UserID          int32         `json:"user_id"`
	CartID          int32         `json:"cart_id"`
	OrderID         string        `json:"order_id"`   // gateway order id
	PaymentID       string        `json:"payment_id"` // gateway payment id, set at verification
	Signature       string        `json:"-"`
	SubtotalCents   int32         `json:"subtotal_cents"`
	ServiceFeeCents int32         `json:"service_fee_cents"`
	AmountCents     int32         `json:"amount_cents"`
	DeliveryAddress string        `json:"delivery_address"`
	Items           []PaymentItem `json:"items"`
	Status          PaymentStatus `json:"status"`
	CreatedOn       string        `json:"created_on"`
	UpdatedOn       string        `json:"updated_on"`
}
