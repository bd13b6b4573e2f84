package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

type chatRepository struct {
	db *sql.DB
}

func NewChatRepository(db *sql.DB) repository.ChatRepository {
	return &chatRepository{db: db}
}

// InsertIfAbsent relies on the partial unique index on message_id: a
// duplicate client message id inserts nothing, and the stored original is
// returned instead.
func (r *chatRepository) InsertIfAbsent(ctx context.Context, m *domain.ChatMessage) (bool, *domain.ChatMessage, error) {
	attrs, err := json.Marshal(m.Attributes)
	if err != nil {
		return false, nil, err
	}
	var messageID sql.NullString
	if m.MessageID != "" {
		messageID = sql.NullString{String: m.MessageID, Valid: true}
	}

	query := `INSERT INTO chat_messages (room_id, sender_id, recipient_id, message, message_id, read, attributes, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          ON CONFLICT (message_id) WHERE message_id IS NOT NULL DO NOTHING
	          RETURNING id, created_on`
	var createdOn time.Time
	err = r.db.QueryRowContext(ctx, query, m.RoomID, m.SenderID, m.RecipientID, m.Message, messageID, m.Read, attrs, time.Now()).Scan(&m.ID, &createdOn)
	if err == sql.ErrNoRows {
		existing, err := r.getByMessageID(ctx, m.MessageID)
		if err != nil {
			return false, nil, err
		}
		return false, existing, nil
	}
	if err != nil {
		return false, nil, err
	}
	m.CreatedOn = createdOn.Format(time.RFC3339)
	return true, m, nil
}

func (r *chatRepository) getByMessageID(ctx context.Context, messageID string) (*domain.ChatMessage, error) {
	query := `SELECT id, room_id, sender_id, recipient_id, message, message_id, read, attributes, created_on
	          FROM chat_messages WHERE message_id = $1`
	row := r.db.QueryRowContext(ctx, query, messageID)
	return scanChatMessage(row)
}

func (r *chatRepository) ListByRoom(ctx context.Context, roomID string, limit int32) ([]domain.ChatMessage, error) {
	query := `SELECT id, room_id, sender_id, recipient_id, message, message_id, read, attributes, created_on
	          FROM chat_messages WHERE room_id = $1 ORDER BY created_on ASC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, roomID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []domain.ChatMessage
	for rows.Next() {
		m, err := scanChatMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, *m)
	}
	return msgs, rows.Err()
}

func (r *chatRepository) MarkRead(ctx context.Context, roomID string, readerID int32) (int64, error) {
	query := `UPDATE chat_messages SET read = TRUE WHERE room_id = $1 AND recipient_id = $2 AND read = FALSE`
	result, err := r.db.ExecContext(ctx, query, roomID, readerID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *chatRepository) ListConversations(ctx context.Context, userID int32) ([]domain.Conversation, error) {
	query := `SELECT DISTINCT ON (room_id) id, room_id, sender_id, recipient_id, message, message_id, read, attributes, created_on
	          FROM chat_messages WHERE sender_id = $1 OR recipient_id = $1
	          ORDER BY room_id, created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convos []domain.Conversation
	for rows.Next() {
		m, err := scanChatMessage(rows)
		if err != nil {
			return nil, err
		}
		other := m.SenderID
		if other == userID {
			other = m.RecipientID
		}
		convos = append(convos, domain.Conversation{RoomID: m.RoomID, OtherUserID: other, LastMessage: m})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	unread := map[string]int32{}
	countQuery := `SELECT room_id, count(*) FROM chat_messages WHERE recipient_id = $1 AND read = FALSE GROUP BY room_id`
	countRows, err := r.db.QueryContext(ctx, countQuery, userID)
	if err != nil {
		return nil, err
	}
	defer countRows.Close()
	for countRows.Next() {
		var roomID string
		var n int32
		if err := countRows.Scan(&roomID, &n); err != nil {
			return nil, err
		}
		unread[roomID] = n
	}
	for i := range convos {
		convos[i].UnreadCount = unread[convos[i].RoomID]
	}
	return convos, countRows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanChatMessage(row rowScanner) (*domain.ChatMessage, error) {
	m := &domain.ChatMessage{}
	var messageID sql.NullString
	var attrs []byte
	var createdOn time.Time
	if err := row.Scan(&m.ID, &m.RoomID, &m.SenderID, &m.RecipientID, &m.Message, &messageID, &m.Read, &attrs, &createdOn); err != nil {
		return nil, err
	}
	m.MessageID = messageID.String
	if len(attrs) > 0 {
		if err := json.Unmarshal(attrs, &m.Attributes); err != nil {
			return nil, err
		}
	}
	m.CreatedOn = createdOn.Format(time.RFC3339)
	return m, nil
}
