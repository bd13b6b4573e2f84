package postgres

import (
	"database/sql"

	"toolshare-backend/internal/repository"
)

// Store bundles all repository implementations over one database handle.
type Store struct {
	UserRepository         repository.UserRepository
	ToolRepository         repository.ToolRepository
	CartRepository         repository.CartRepository
	BookingRepository      repository.BookingRepository
	PaymentRepository      repository.PaymentRepository
	ChatRepository         repository.ChatRepository
	NotificationRepository repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		UserRepository:         NewUserRepository(db),
		ToolRepository:         NewToolRepository(db),
		CartRepository:         NewCartRepository(db),
		BookingRepository:      NewBookingRepository(db),
		PaymentRepository:      NewPaymentRepository(db),
		ChatRepository:         NewChatRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
