package domain

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusRejected  BookingStatus = "REJECTED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

type Booking struct {
	ID          int32         `json:"id"`
	ToolID      int32         `json:"tool_id"`
	Tool        *Tool         `json:"tool,omitempty"` // Populated on reads
	OwnerID     int32         `json:"owner_id"`
	RenterID    int32         `json:"renter_id"`
	BookingDate string        `json:"booking_date"`
	ReturnDate  string        `json:"return_date"`
	PriceCents  int32         `json:"price_cents"`
	Location    string        `json:"location"`
	Status      BookingStatus `json:"status"`
	CreatedOn   string        `json:"created_on"`
	UpdatedOn   string        `json:"updated_on"`
}
