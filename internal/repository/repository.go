package repository

import (
	"context"

	"toolshare-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type ToolRepository interface {
	Create(ctx context.Context, tool *domain.Tool) error
	GetByID(ctx context.Context, id int32) (*domain.Tool, error)
	List(ctx context.Context, query, category string, page, pageSize int32) ([]domain.Tool, int32, error)
	ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Tool, int32, error)
}

type CartRepository interface {
	// GetActiveByUserID returns the user's live cart, sql.ErrNoRows when none exists.
	GetActiveByUserID(ctx context.Context, userID int32) (*domain.Cart, error)
	Create(ctx context.Context, cart *domain.Cart) error
	// Update rewrites the cart's items and total in one statement batch.
	Update(ctx context.Context, cart *domain.Cart) error
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	ListByRenter(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListByOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error)
	Update(ctx context.Context, payment *domain.Payment) error
	ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Payment, int32, error)
	ListPaid(ctx context.Context) ([]domain.Payment, error)
}

type ChatRepository interface {
	// InsertIfAbsent stores the message unless one with the same client
	// message id already exists; in that case it returns the stored
	// original with inserted=false.
	InsertIfAbsent(ctx context.Context, msg *domain.ChatMessage) (inserted bool, existing *domain.ChatMessage, err error)
	ListByRoom(ctx context.Context, roomID string, limit int32) ([]domain.ChatMessage, error)
	MarkRead(ctx context.Context, roomID string, readerID int32) (int64, error)
	ListConversations(ctx context.Context, userID int32) ([]domain.Conversation, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, int32, error) // notes, total, unread
	MarkAsRead(ctx context.Context, id, userID int32) error
	MarkAllRead(ctx context.Context, userID int32) (int64, error)
	DeleteBulk(ctx context.Context, userID int32, onlyRead bool) (int64, error)

	// FCM device registrations
	SaveDeviceToken(ctx context.Context, userID int32, token string) error
	ListDeviceTokens(ctx context.Context, userID int32) ([]string, error)
}
