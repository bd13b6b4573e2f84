package service

import (
	"context"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/push"
	"toolshare-backend/internal/repository"
)

type notificationService struct {
	notificationRepo repository.NotificationRepository
	gateway          RealtimeGateway
	pusher           push.Pusher
}

// NewNotificationService builds the notification pipeline. gateway and
// pusher may be nil; delivery then degrades to persistence only.
func NewNotificationService(notificationRepo repository.NotificationRepository, gateway RealtimeGateway, pusher push.Pusher) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		gateway:          gateway,
		pusher:           pusher,
	}
}

func (s *notificationService) Notify(ctx context.Context, userID int32, ntype domain.NotificationType, title, message, relatedID string) error {
	note := &domain.Notification{
		UserID:    userID,
		Type:      ntype,
		Title:     title,
		Message:   message,
		RelatedID: relatedID,
	}
	// Persistence is the contract; everything after this is best-effort.
	if err := s.notificationRepo.Create(ctx, note); err != nil {
		return err
	}

	if s.gateway != nil {
		s.gateway.SendToUser(userID, "notification", note)
	} else {
		logger.Error("Realtime gateway not configured, live notification skipped", "user_id", userID)
	}

	if s.pusher != nil {
		tokens, err := s.notificationRepo.ListDeviceTokens(ctx, userID)
		if err != nil {
			logger.Error("Failed to load device tokens", "user_id", userID, "error", err)
			return nil
		}
		data := map[string]string{
			"type":       string(ntype),
			"related_id": relatedID,
		}
		for _, token := range tokens {
			if err := s.pusher.Send(ctx, token, title, message, data); err != nil {
				logger.Warn("Push delivery failed", "user_id", userID, "error", err)
			}
		}
	}

	return nil
}

func (s *notificationService) GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.notificationRepo.List(ctx, userID, pageSize, (page-1)*pageSize)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID int32) error {
	return s.notificationRepo.MarkAsRead(ctx, notificationID, userID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID int32) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

func (s *notificationService) DeleteAll(ctx context.Context, userID int32, onlyRead bool) (int64, error) {
	return s.notificationRepo.DeleteBulk(ctx, userID, onlyRead)
}

func (s *notificationService) RegisterDevice(ctx context.Context, userID int32, token string) error {
	return s.notificationRepo.SaveDeviceToken(ctx, userID, token)
}
