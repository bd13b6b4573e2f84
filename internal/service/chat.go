package service

import (
	"context"
	"errors"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/realtime"
	"toolshare-backend/internal/repository"
)

var ErrEmptyMessage = errors.New("message text is required")

const roomHistoryLimit = 200

type chatService struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
	notifier NotificationService
	gateway  RealtimeGateway
}

func NewChatService(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	notifier NotificationService,
	gateway RealtimeGateway,
) ChatService {
	return &chatService{
		chatRepo: chatRepo,
		userRepo: userRepo,
		notifier: notifier,
		gateway:  gateway,
	}
}

func (s *chatService) SendMessage(ctx context.Context, senderID, recipientID int32, messageID, text string) (*domain.ChatMessage, error) {
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if senderID == recipientID {
		return nil, errors.New("cannot message yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, recipientID); err != nil {
		return nil, err
	}

	msg := &domain.ChatMessage{
		RoomID:      realtime.RoomID(senderID, recipientID),
		SenderID:    senderID,
		RecipientID: recipientID,
		Message:     text,
		MessageID:   messageID,
	}
	inserted, existing, err := s.chatRepo.InsertIfAbsent(ctx, msg)
	if err != nil {
		return nil, err
	}
	if !inserted {
		// Duplicate delivery of the same client message id; return the
		// original without re-notifying.
		return existing, nil
	}

	if s.gateway != nil {
		s.gateway.BroadcastToRoom(msg.RoomID, "receiveMessage", msg)
	} else {
		logger.Error("Realtime gateway not configured, message relay skipped", "room_id", msg.RoomID)
	}

	sender, err := s.userRepo.GetByID(ctx, senderID)
	if err == nil {
		if err := s.notifier.Notify(ctx, recipientID, domain.NotificationTypeChat,
			"New Message",
			sender.Name+": "+truncate(text, 120),
			msg.RoomID); err != nil {
			logger.Error("Failed to notify chat recipient", "room_id", msg.RoomID, "error", err)
		}
	}

	return msg, nil
}

func (s *chatService) GetRoomMessages(ctx context.Context, userID, otherUserID int32) ([]domain.ChatMessage, error) {
	roomID := realtime.RoomID(userID, otherUserID)
	messages, err := s.chatRepo.ListByRoom(ctx, roomID, roomHistoryLimit)
	if err != nil {
		return nil, err
	}

	// Opening the room reads it.
	if _, err := s.chatRepo.MarkRead(ctx, roomID, userID); err != nil {
		logger.Error("Failed to mark room read", "room_id", roomID, "error", err)
	}

	return messages, nil
}

func (s *chatService) ListConversations(ctx context.Context, userID int32) ([]domain.Conversation, error) {
	return s.chatRepo.ListConversations(ctx, userID)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
