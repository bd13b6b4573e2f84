package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"toolshare-backend/internal/domain"
)

func TestNotifyPersistsAndPushesLive(t *testing.T) {
	repo := new(MockNotificationRepository)
	gateway := new(MockRealtimeGateway)
	svc := NewNotificationService(repo, gateway, nil)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == 7 && n.Type == domain.NotificationTypeChat
	})).Return(nil)
	gateway.On("SendToUser", int32(7), "notification", mock.Anything).Return(true)

	err := svc.Notify(context.Background(), 7, domain.NotificationTypeChat, "New Message", "hi", "3_7")
	require.NoError(t, err)
	repo.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestNotifyFailsWhenPersistenceFails(t *testing.T) {
	repo := new(MockNotificationRepository)
	gateway := new(MockRealtimeGateway)
	svc := NewNotificationService(repo, gateway, nil)

	repo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	err := svc.Notify(context.Background(), 7, domain.NotificationTypeChat, "t", "m", "")
	assert.Error(t, err)
	gateway.AssertNotCalled(t, "SendToUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestNotifyWithoutGatewayStillPersists(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewNotificationService(repo, nil, nil)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := svc.Notify(context.Background(), 7, domain.NotificationTypeSystem, "t", "m", "")
	assert.NoError(t, err)
}

func TestNotifySendsPushToAllDevices(t *testing.T) {
	repo := new(MockNotificationRepository)
	gateway := new(MockRealtimeGateway)
	pusher := new(MockPusher)
	svc := NewNotificationService(repo, gateway, pusher)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	gateway.On("SendToUser", int32(7), "notification", mock.Anything).Return(false)
	repo.On("ListDeviceTokens", mock.Anything, int32(7)).Return([]string{"tok-a", "tok-b"}, nil)
	pusher.On("Send", mock.Anything, "tok-a", "Title", "Body", mock.Anything).Return(nil)
	// One device failing never fails the call.
	pusher.On("Send", mock.Anything, "tok-b", "Title", "Body", mock.Anything).Return(assert.AnError)

	err := svc.Notify(context.Background(), 7, domain.NotificationTypeOrder, "Title", "Body", "42")
	require.NoError(t, err)
	pusher.AssertExpectations(t)
}

func TestGetNotificationsClampsPaging(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewNotificationService(repo, nil, nil)

	notes := []domain.Notification{{ID: 1}}
	repo.On("List", mock.Anything, int32(7), int32(20), int32(0)).Return(notes, int32(1), int32(1), nil)

	got, total, unread, err := svc.GetNotifications(context.Background(), 7, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, notes, got)
	assert.Equal(t, int32(1), total)
	assert.Equal(t, int32(1), unread)
}

func TestDeleteAllPassesOnlyReadFlag(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewNotificationService(repo, nil, nil)

	repo.On("DeleteBulk", mock.Anything, int32(7), true).Return(int64(3), nil)

	deleted, err := svc.DeleteAll(context.Background(), 7, true)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}
