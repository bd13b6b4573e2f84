package service

import (
	"context"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/payment"
)

// TokenPair is the credential set minted on login, signup and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, *TokenPair, error)
	Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error)
	GoogleLogin(ctx context.Context, idToken string) (*domain.User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type ToolService interface {
	AddTool(ctx context.Context, tool *domain.Tool) error
	GetTool(ctx context.Context, id int32) (*domain.Tool, error)
	ListTools(ctx context.Context, query, category string, page, pageSize int32) ([]domain.Tool, int32, error)
	ListMyTools(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Tool, int32, error)
}

type CartService interface {
	GetCart(ctx context.Context, userID int32) (*domain.Cart, error)
	AddItem(ctx context.Context, userID, toolID, quantity, rentalDays int32, insurance bool) (*domain.Cart, error)
	UpdateItem(ctx context.Context, userID, toolID, quantity, rentalDays int32, insurance bool) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID, toolID int32) (*domain.Cart, error)
	ClearCart(ctx context.Context, userID int32) (*domain.Cart, error)
}

type BookingService interface {
	CreateBooking(ctx context.Context, renterID, toolID int32, bookingDate, returnDate, location string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, ownerID, bookingID int32, status domain.BookingStatus) (*domain.Booking, error)
	CancelBooking(ctx context.Context, renterID, bookingID int32) (*domain.Booking, error)
	ListMyBookings(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListOwnerBookings(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
}

// CheckoutItem is one cart line as submitted at checkout. Prices are
// re-read server-side; only identity and quantities are trusted.
type CheckoutItem struct {
	ToolID     int32 `json:"tool_id"`
	Quantity   int32 `json:"quantity"`
	RentalDays int32 `json:"rental_days"`
	Insurance  bool  `json:"insurance"`
}

type PaymentService interface {
	CreateOrder(ctx context.Context, userID int32, items []CheckoutItem, deliveryAddress string) (*domain.Payment, *payment.Order, error)
	VerifyPayment(ctx context.Context, userID int32, orderID, paymentID, signature string) (*domain.Payment, *FanoutReport, error)
	ListMyPayments(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Payment, int32, error)
}

type ChatService interface {
	SendMessage(ctx context.Context, senderID, recipientID int32, messageID, text string) (*domain.ChatMessage, error)
	GetRoomMessages(ctx context.Context, userID, otherUserID int32) ([]domain.ChatMessage, error)
	ListConversations(ctx context.Context, userID int32) ([]domain.Conversation, error)
}

type NotificationService interface {
	// Notify persists a notification and pushes it live when the user has
	// a connected socket. Push failures never propagate.
	Notify(ctx context.Context, userID int32, ntype domain.NotificationType, title, message, relatedID string) error
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
	MarkAllRead(ctx context.Context, userID int32) (int64, error)
	DeleteAll(ctx context.Context, userID int32, onlyRead bool) (int64, error)
	RegisterDevice(ctx context.Context, userID int32, token string) error
}

// ToolEarnings is one row of the owner earnings report.
type ToolEarnings struct {
	ToolID        int32  `json:"tool_id"`
	ToolName      string `json:"tool_name"`
	RentalCount   int32  `json:"rental_count"`
	EarningsCents int32  `json:"earnings_cents"`
}

type EarningsReport struct {
	TotalCents   int32          `json:"total_cents"`
	PaymentCount int32          `json:"payment_count"`
	Tools        []ToolEarnings `json:"tools"`
}

type DashboardService interface {
	GetEarnings(ctx context.Context, userID int32) (*EarningsReport, error)
}

type EmailService interface {
	SendPaymentReceipt(ctx context.Context, email, name string, p *domain.Payment) error
	SendOwnerItemNotice(ctx context.Context, email, ownerName, buyerName string, item domain.PaymentItem) error
	SendBookingRequestNotification(ctx context.Context, ownerEmail, renterName, toolName string) error
	SendBookingStatusNotification(ctx context.Context, email, toolName string, status domain.BookingStatus) error
}

// RealtimeGateway is the push side of the websocket hub, injected into the
// services that emit server-initiated events.
type RealtimeGateway interface {
	SendToUser(userID int32, event string, payload interface{}) bool
	BroadcastToRoom(roomID string, event string, payload interface{})
}

// FanoutReport records best-effort side effects that failed after a
// primary operation succeeded. It is logged, never surfaced to callers.
type FanoutReport struct {
	Failures []string
}

func (r *FanoutReport) add(step string, err error) {
	if err != nil {
		r.Failures = append(r.Failures, step+": "+err.Error())
	}
}

// Failed reports whether any side effect failed.
func (r *FanoutReport) Failed() bool {
	return len(r.Failures) > 0
}
