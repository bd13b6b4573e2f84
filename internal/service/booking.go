package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/repository"
)

var (
	ErrForbidden         = errors.New("unauthorized")
	ErrInvalidTransition = errors.New("invalid booking status transition")
)

type bookingService struct {
	bookingRepo repository.BookingRepository
	toolRepo    repository.ToolRepository
	userRepo    repository.UserRepository
	emailSvc    EmailService
	notifier    NotificationService
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	toolRepo repository.ToolRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
	notifier NotificationService,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		toolRepo:    toolRepo,
		userRepo:    userRepo,
		emailSvc:    emailSvc,
		notifier:    notifier,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, renterID, toolID int32, bookingDate, returnDate, location string) (*domain.Booking, error) {
	tool, err := s.toolRepo.GetByID(ctx, toolID)
	if err != nil {
		return nil, err
	}
	if tool.OwnerID == renterID {
		return nil, errors.New("cannot book your own tool")
	}

	start, err := time.Parse("2006-01-02", bookingDate)
	if err != nil {
		return nil, errors.New("invalid booking date")
	}
	end, err := time.Parse("2006-01-02", returnDate)
	if err != nil {
		return nil, errors.New("invalid return date")
	}
	days := int32(end.Sub(start).Hours() / 24)
	if days < 0 {
		return nil, errors.New("return date must be after booking date")
	}
	if days == 0 {
		days = 1
	}

	booking := &domain.Booking{
		ToolID:      toolID,
		OwnerID:     tool.OwnerID,
		RenterID:    renterID,
		BookingDate: bookingDate,
		ReturnDate:  returnDate,
		PriceCents:  tool.PriceCents * days,
		Location:    location,
		Status:      domain.BookingStatusPending,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	// Notify owner; failures are logged, never propagated.
	renter, _ := s.userRepo.GetByID(ctx, renterID)
	owner, _ := s.userRepo.GetByID(ctx, tool.OwnerID)
	if renter != nil && owner != nil {
		if err := s.emailSvc.SendBookingRequestNotification(ctx, owner.Email, renter.Name, tool.Name); err != nil {
			logger.Error("Failed to send booking request email", "booking_id", booking.ID, "error", err)
		}
		if err := s.notifier.Notify(ctx, owner.ID, domain.NotificationTypeOrder,
			"New Booking Request",
			fmt.Sprintf("%s requested to rent %s", renter.Name, tool.Name),
			fmt.Sprintf("%d", booking.ID)); err != nil {
			logger.Error("Failed to notify owner of booking request", "booking_id", booking.ID, "error", err)
		}
	}

	return booking, nil
}

// ownerTransitions is the one-way status lattice an owner may drive.
var ownerTransitions = map[domain.BookingStatus]map[domain.BookingStatus]bool{
	domain.BookingStatusPending: {
		domain.BookingStatusConfirmed: true,
		domain.BookingStatusRejected:  true,
	},
	domain.BookingStatusConfirmed: {
		domain.BookingStatusCompleted: true,
	},
}

func (s *bookingService) UpdateStatus(ctx context.Context, ownerID, bookingID int32, status domain.BookingStatus) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	if !ownerTransitions[booking.Status][status] {
		return nil, ErrInvalidTransition
	}

	booking.Status = status
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.notifyStatusChange(ctx, booking, booking.RenterID)
	return booking, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, renterID, bookingID int32) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.RenterID != renterID {
		return nil, ErrForbidden
	}
	if booking.Status != domain.BookingStatusPending && booking.Status != domain.BookingStatusConfirmed {
		return nil, ErrInvalidTransition
	}

	booking.Status = domain.BookingStatusCancelled
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.notifyStatusChange(ctx, booking, booking.OwnerID)
	return booking, nil
}

func (s *bookingService) notifyStatusChange(ctx context.Context, booking *domain.Booking, recipientID int32) {
	recipient, err := s.userRepo.GetByID(ctx, recipientID)
	if err != nil {
		logger.Error("Failed to load booking notification recipient", "booking_id", booking.ID, "user_id", recipientID, "error", err)
		return
	}
	tool, err := s.toolRepo.GetByID(ctx, booking.ToolID)
	if err != nil {
		logger.Error("Failed to load tool for booking notification", "booking_id", booking.ID, "error", err)
		return
	}

	if err := s.emailSvc.SendBookingStatusNotification(ctx, recipient.Email, tool.Name, booking.Status); err != nil {
		logger.Error("Failed to send booking status email", "booking_id", booking.ID, "error", err)
	}
	if err := s.notifier.Notify(ctx, recipient.ID, domain.NotificationTypeOrder,
		"Booking Update",
		fmt.Sprintf("Booking for %s is now %s", tool.Name, booking.Status),
		fmt.Sprintf("%d", booking.ID)); err != nil {
		logger.Error("Failed to notify booking status change", "booking_id", booking.ID, "error", err)
	}
}

func (s *bookingService) ListMyBookings(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.bookingRepo.ListByRenter(ctx, renterID, status, page, pageSize)
}

func (s *bookingService) ListOwnerBookings(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.bookingRepo.ListByOwner(ctx, ownerID, status, page, pageSize)
}
