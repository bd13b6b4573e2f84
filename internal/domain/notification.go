package domain

type NotificationType string

const (
	NotificationTypeChat    NotificationType = "chat"
	NotificationTypeOrder   NotificationType = "order"
	NotificationTypePayment NotificationType = "payment"
	NotificationTypeSystem  NotificationType = "system"
)

type Notification struct {
	ID        int32            `json:"id"`
	UserID    int32            `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	RelatedID string           `json:"related_id,omitempty"` // booking/payment/room id the event points at
	IsRead    bool             `json:"is_read"`
	CreatedOn string           `json:"created_on"`
}

// DeviceToken is an FCM registration for best-effort mobile push.
type DeviceToken struct {
	ID        int32  `json:"id"`
	UserID    int32  `json:"user_id"`
	Token     string `json:"token"`
	CreatedOn string `json:"created_on"`
}
