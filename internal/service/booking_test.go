package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"toolshare-backend/internal/domain"
)

func newBookingFixture() (*MockBookingRepository, *MockToolRepository, *MockUserRepository, *MockEmailService, *MockNotificationService, BookingService) {
	bookingRepo := new(MockBookingRepository)
	toolRepo := new(MockToolRepository)
	userRepo := new(MockUserRepository)
	emailSvc := new(MockEmailService)
	notifier := new(MockNotificationService)
	svc := NewBookingService(bookingRepo, toolRepo, userRepo, emailSvc, notifier)
	return bookingRepo, toolRepo, userRepo, emailSvc, notifier, svc
}

func TestCreateBookingPricesByDays(t *testing.T) {
	bookingRepo, toolRepo, userRepo, emailSvc, notifier, svc := newBookingFixture()

	tool := &domain.Tool{ID: 7, OwnerID: 2, Name: "Drill", PriceCents: 500}
	toolRepo.On("GetByID", mock.Anything, int32(7)).Return(tool, nil)
	bookingRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
	userRepo.On("GetByID", mock.Anything, int32(1)).Return(&domain.User{ID: 1, Name: "Renter"}, nil)
	userRepo.On("GetByID", mock.Anything, int32(2)).Return(&domain.User{ID: 2, Name: "Owner", Email: "owner@example.com"}, nil)
	emailSvc.On("SendBookingRequestNotification", mock.Anything, "owner@example.com", "Renter", "Drill").Return(nil)
	notifier.On("Notify", mock.Anything, int32(2), domain.NotificationTypeOrder, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	booking, err := svc.CreateBooking(context.Background(), 1, 7, "2026-09-01", "2026-09-04", "Garage")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusPending, booking.Status)
	assert.Equal(t, int32(1500), booking.PriceCents)
	assert.Equal(t, int32(2), booking.OwnerID)
	emailSvc.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestCreateBookingRejectsOwnTool(t *testing.T) {
	_, toolRepo, _, _, _, svc := newBookingFixture()

	toolRepo.On("GetByID", mock.Anything, int32(7)).Return(&domain.Tool{ID: 7, OwnerID: 1}, nil)

	_, err := svc.CreateBooking(context.Background(), 1, 7, "2026-09-01", "2026-09-04", "")
	assert.Error(t, err)
}

func TestCreateBookingRejectsInvertedDates(t *testing.T) {
	_, toolRepo, _, _, _, svc := newBookingFixture()

	toolRepo.On("GetByID", mock.Anything, int32(7)).Return(&domain.Tool{ID: 7, OwnerID: 2, PriceCents: 500}, nil)

	_, err := svc.CreateBooking(context.Background(), 1, 7, "2026-09-04", "2026-09-01", "")
	assert.Error(t, err)
}

func TestUpdateStatusConfirm(t *testing.T) {
	bookingRepo, toolRepo, userRepo, emailSvc, notifier, svc := newBookingFixture()

	booking := &domain.Booking{ID: 5, ToolID: 7, OwnerID: 2, RenterID: 1, Status: domain.BookingStatusPending}
	bookingRepo.On("GetByID", mock.Anything, int32(5)).Return(booking, nil)
	bookingRepo.On("Update", mock.Anything, booking).Return(nil)
	userRepo.On("GetByID", mock.Anything, int32(1)).Return(&domain.User{ID: 1, Email: "renter@example.com"}, nil)
	toolRepo.On("GetByID", mock.Anything, int32(7)).Return(&domain.Tool{ID: 7, Name: "Drill"}, nil)
	emailSvc.On("SendBookingStatusNotification", mock.Anything, "renter@example.com", "Drill", domain.BookingStatusConfirmed).Return(nil)
	notifier.On("Notify", mock.Anything, int32(1), domain.NotificationTypeOrder, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	updated, err := svc.UpdateStatus(context.Background(), 2, 5, domain.BookingStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, updated.Status)
}

func TestUpdateStatusRejectsNonOwner(t *testing.T) {
	bookingRepo, _, _, _, _, svc := newBookingFixture()

	booking := &domain.Booking{ID: 5, OwnerID: 2, RenterID: 1, Status: domain.BookingStatusPending}
	bookingRepo.On("GetByID", mock.Anything, int32(5)).Return(booking, nil)

	_, err := svc.UpdateStatus(context.Background(), 99, 5, domain.BookingStatusConfirmed)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateStatusInvalidTransitions(t *testing.T) {
	cases := []struct {
		from domain.BookingStatus
		to   domain.BookingStatus
	}{
		{domain.BookingStatusPending, domain.BookingStatusCompleted},
		{domain.BookingStatusConfirmed, domain.BookingStatusRejected},
		{domain.BookingStatusRejected, domain.BookingStatusConfirmed},
		{domain.BookingStatusCompleted, domain.BookingStatusConfirmed},
		{domain.BookingStatusCancelled, domain.BookingStatusConfirmed},
		{domain.BookingStatusPending, domain.BookingStatusCancelled},
	}

	for _, tc := range cases {
		bookingRepo, _, _, _, _, svc := newBookingFixture()
		booking := &domain.Booking{ID: 5, OwnerID: 2, RenterID: 1, Status: tc.from}
		bookingRepo.On("GetByID", mock.Anything, int32(5)).Return(booking, nil)

		_, err := svc.UpdateStatus(context.Background(), 2, 5, tc.to)
		assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s should be rejected", tc.from, tc.to)
	}
}

func TestCancelBookingFromConfirmed(t *testing.T) {
	bookingRepo, toolRepo, userRepo, emailSvc, notifier, svc := newBookingFixture()

	booking := &domain.Booking{ID: 5, ToolID: 7, OwnerID: 2, RenterID: 1, Status: domain.BookingStatusConfirmed}
	bookingRepo.On("GetByID", mock.Anything, int32(5)).Return(booking, nil)
	bookingRepo.On("Update", mock.Anything, booking).Return(nil)
	userRepo.On("GetByID", mock.Anything, int32(2)).Return(&domain.User{ID: 2, Email: "owner@example.com"}, nil)
	toolRepo.On("GetByID", mock.Anything, int32(7)).Return(&domain.Tool{ID: 7, Name: "Drill"}, nil)
	emailSvc.On("SendBookingStatusNotification", mock.Anything, "owner@example.com", "Drill", domain.BookingStatusCancelled).Return(nil)
	notifier.On("Notify", mock.Anything, int32(2), domain.NotificationTypeOrder, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	updated, err := svc.CancelBooking(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, updated.Status)
}

func TestCancelBookingRejectsCompleted(t *testing.T) {
	bookingRepo, _, _, _, _, svc := newBookingFixture()

	booking := &domain.Booking{ID: 5, OwnerID: 2, RenterID: 1, Status: domain.BookingStatusCompleted}
	bookingRepo.On("GetByID", mock.Anything, int32(5)).Return(booking, nil)

	_, err := svc.CancelBooking(context.Background(), 1, 5)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelBookingRejectsNonRenter(t *testing.T) {
	bookingRepo, _, _, _, _, svc := newBookingFixture()

	booking := &domain.Booking{ID: 5, OwnerID: 2, RenterID: 1, Status: domain.BookingStatusPending}
	bookingRepo.On("GetByID", mock.Anything, int32(5)).Return(booking, nil)

	_, err := svc.CancelBooking(context.Background(), 2, 5)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestNotificationFailureDoesNotFailTransition(t *testing.T) {
	bookingRepo, toolRepo, userRepo, emailSvc, notifier, svc := newBookingFixture()

	booking := &domain.Booking{ID: 5, ToolID: 7, OwnerID: 2, RenterID: 1, Status: domain.BookingStatusPending}
	bookingRepo.On("GetByID", mock.Anything, int32(5)).Return(booking, nil)
	bookingRepo.On("Update", mock.Anything, booking).Return(nil)
	userRepo.On("GetByID", mock.Anything, int32(1)).Return(&domain.User{ID: 1, Email: "renter@example.com"}, nil)
	toolRepo.On("GetByID", mock.Anything, int32(7)).Return(&domain.Tool{ID: 7, Name: "Drill"}, nil)
	emailSvc.On("SendBookingStatusNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)
	notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	updated, err := svc.UpdateStatus(context.Background(), 2, 5, domain.BookingStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusRejected, updated.Status)
}
