package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/payment"
	"toolshare-backend/internal/security"
)

// ---- Repository mocks ----

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	args := m.Called(ctx, googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockToolRepository struct {
	mock.Mock
}

func (m *MockToolRepository) Create(ctx context.Context, tool *domain.Tool) error {
	args := m.Called(ctx, tool)
	return args.Error(0)
}

func (m *MockToolRepository) GetByID(ctx context.Context, id int32) (*domain.Tool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tool), args.Error(1)
}

func (m *MockToolRepository) List(ctx context.Context, query, category string, page, pageSize int32) ([]domain.Tool, int32, error) {
	args := m.Called(ctx, query, category, page, pageSize)
	var tools []domain.Tool
	if args.Get(0) != nil {
		tools = args.Get(0).([]domain.Tool)
	}
	return tools, args.Get(1).(int32), args.Error(2)
}

func (m *MockToolRepository) ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Tool, int32, error) {
	args := m.Called(ctx, ownerID, page, pageSize)
	var tools []domain.Tool
	if args.Get(0) != nil {
		tools = args.Get(0).([]domain.Tool)
	}
	return tools, args.Get(1).(int32), args.Error(2)
}

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) GetActiveByUserID(ctx context.Context, userID int32) (*domain.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *MockCartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *MockCartRepository) Update(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) ListByRenter(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, renterID, status, page, pageSize)
	var bookings []domain.Booking
	if args.Get(0) != nil {
		bookings = args.Get(0).([]domain.Booking)
	}
	return bookings, args.Get(1).(int32), args.Error(2)
}

func (m *MockBookingRepository) ListByOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, ownerID, status, page, pageSize)
	var bookings []domain.Booking
	if args.Get(0) != nil {
		bookings = args.Get(0).([]domain.Booking)
	}
	return bookings, args.Get(1).(int32), args.Error(2)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Payment, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	var payments []domain.Payment
	if args.Get(0) != nil {
		payments = args.Get(0).([]domain.Payment)
	}
	return payments, args.Get(1).(int32), args.Error(2)
}

func (m *MockPaymentRepository) ListPaid(ctx context.Context) ([]domain.Payment, error) {
	args := m.Called(ctx)
	var payments []domain.Payment
	if args.Get(0) != nil {
		payments = args.Get(0).([]domain.Payment)
	}
	return payments, args.Error(1)
}

type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) InsertIfAbsent(ctx context.Context, msg *domain.ChatMessage) (bool, *domain.ChatMessage, error) {
	args := m.Called(ctx, msg)
	var existing *domain.ChatMessage
	if args.Get(1) != nil {
		existing = args.Get(1).(*domain.ChatMessage)
	}
	return args.Bool(0), existing, args.Error(2)
}

func (m *MockChatRepository) ListByRoom(ctx context.Context, roomID string, limit int32) ([]domain.ChatMessage, error) {
	args := m.Called(ctx, roomID, limit)
	var msgs []domain.ChatMessage
	if args.Get(0) != nil {
		msgs = args.Get(0).([]domain.ChatMessage)
	}
	return msgs, args.Error(1)
}

func (m *MockChatRepository) MarkRead(ctx context.Context, roomID string, readerID int32) (int64, error) {
	args := m.Called(ctx, roomID, readerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChatRepository) ListConversations(ctx context.Context, userID int32) ([]domain.Conversation, error) {
	args := m.Called(ctx, userID)
	var convos []domain.Conversation
	if args.Get(0) != nil {
		convos = args.Get(0).([]domain.Conversation)
	}
	return convos, args.Error(1)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNotificationRepository) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	var notes []domain.Notification
	if args.Get(0) != nil {
		notes = args.Get(0).([]domain.Notification)
	}
	return notes, args.Get(1).(int32), args.Get(2).(int32), args.Error(3)
}

func (m *MockNotificationRepository) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID int32) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) DeleteBulk(ctx context.Context, userID int32, onlyRead bool) (int64, error) {
	args := m.Called(ctx, userID, onlyRead)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) SaveDeviceToken(ctx context.Context, userID int32, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListDeviceTokens(ctx context.Context, userID int32) ([]string, error) {
	args := m.Called(ctx, userID)
	var tokens []string
	if args.Get(0) != nil {
		tokens = args.Get(0).([]string)
	}
	return tokens, args.Error(1)
}

// ---- Service and external mocks ----

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendPaymentReceipt(ctx context.Context, email, name string, p *domain.Payment) error {
	args := m.Called(ctx, email, name, p)
	return args.Error(0)
}

func (m *MockEmailService) SendOwnerItemNotice(ctx context.Context, email, ownerName, buyerName string, item domain.PaymentItem) error {
	args := m.Called(ctx, email, ownerName, buyerName, item)
	return args.Error(0)
}

func (m *MockEmailService) SendBookingRequestNotification(ctx context.Context, ownerEmail, renterName, toolName string) error {
	args := m.Called(ctx, ownerEmail, renterName, toolName)
	return args.Error(0)
}

func (m *MockEmailService) SendBookingStatusNotification(ctx context.Context, email, toolName string, status domain.BookingStatus) error {
	args := m.Called(ctx, email, toolName, status)
	return args.Error(0)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Notify(ctx context.Context, userID int32, ntype domain.NotificationType, title, message, relatedID string) error {
	args := m.Called(ctx, userID, ntype, title, message, relatedID)
	return args.Error(0)
}

func (m *MockNotificationService) GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	var notes []domain.Notification
	if args.Get(0) != nil {
		notes = args.Get(0).([]domain.Notification)
	}
	return notes, args.Get(1).(int32), args.Get(2).(int32), args.Error(3)
}

func (m *MockNotificationService) MarkAsRead(ctx context.Context, userID, notificationID int32) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, userID int32) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) DeleteAll(ctx context.Context, userID int32, onlyRead bool) (int64, error) {
	args := m.Called(ctx, userID, onlyRead)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) RegisterDevice(ctx context.Context, userID int32, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateOrder(ctx context.Context, amountCents int32, receipt string) (*payment.Order, error) {
	args := m.Called(ctx, amountCents, receipt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Order), args.Error(1)
}

type MockRealtimeGateway struct {
	mock.Mock
}

func (m *MockRealtimeGateway) SendToUser(userID int32, event string, payload interface{}) bool {
	args := m.Called(userID, event, payload)
	return args.Bool(0)
}

func (m *MockRealtimeGateway) BroadcastToRoom(roomID string, event string, payload interface{}) {
	m.Called(roomID, event, payload)
}

type MockPusher struct {
	mock.Mock
}

func (m *MockPusher) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	args := m.Called(ctx, token, title, body, data)
	return args.Error(0)
}

type MockGoogleVerifier struct {
	mock.Mock
}

func (m *MockGoogleVerifier) Verify(ctx context.Context, rawToken string) (*security.GoogleProfile, error) {
	args := m.Called(ctx, rawToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.GoogleProfile), args.Error(1)
}
