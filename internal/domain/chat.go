package domain

type ChatMessage struct {
	ID          int32             `json:"id"`
	RoomID      string            `json:"room_id"`
	SenderID    int32             `json:"sender_id"`
	RecipientID int32             `json:"recipient_id"`
	Message     string            `json:"message"`
	MessageID   string            `json:"message_id"` // client-supplied, deduplicated by unique sparse index
	Read        bool              `json:"read"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	CreatedOn   string            `json:"created_on"`
}

// Conversation is a room summary for the chat list view.
type Conversation struct {
	RoomID      string       `json:"room_id"`
	OtherUserID int32        `json:"other_user_id"`
	OtherUser   *User        `json:"other_user,omitempty"`
	LastMessage *ChatMessage `json:"last_message,omitempty"`
	UnreadCount int32        `json:"unread_count"`
}
