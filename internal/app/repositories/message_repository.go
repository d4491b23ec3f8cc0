package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/campuslink/internal/app/models"
)

// IMessageRepository defines the interface for direct message storage
type IMessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	Conversation(ctx context.Context, userA, userB string) ([]*models.Message, error)
	UnreadCounts(ctx context.Context, receiver string) ([]models.UnreadCount, error)
	MarkRead(ctx context.Context, sender, receiver string) (int64, error)
	LastMessageTimes(ctx context.Context, user string) ([]models.PeerActivity, error)
	TotalUnread(ctx context.Context, receiver string) (int64, error)
}

// MessageRepository handles database operations for direct messages
type MessageRepository struct {
	db *pgxpool.Pool
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a message and fills in its id, timestamp and read flag.
func (r *MessageRepository) Create(ctx context.Context, message *models.Message) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO messages (sender, receiver, message)
		VALUES ($1, $2, $3)
		RETURNING id, timestamp, read`,
		message.Sender, message.Receiver, message.Message,
	).Scan(&message.ID, &message.Timestamp, &message.Read)

	if err != nil {
		return fmt.Errorf("error creating message: %w", err)
	}

	return nil
}

// conversationQuery selects every message between two users, oldest first.
// Messages sharing a timestamp keep insertion order.
func conversationQuery(userA, userB string) squirrel.SelectBuilder {
	return psql.Select("id", "sender", "receiver", "message", "timestamp", "read").
		From("messages").
		Where(squirrel.Or{
			squirrel.Eq{"sender": userA, "receiver": userB},
			squirrel.Eq{"sender": userB, "receiver": userA},
		}).
		OrderBy("timestamp ASC", "id ASC")
}

// Conversation returns every message exchanged between userA and userB in either direction.
func (r *MessageRepository) Conversation(ctx context.Context, userA, userB string) ([]*models.Message, error) {
	sql, args, err := conversationQuery(userA, userB).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	messages := []*models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.Sender, &m.Receiver, &m.Message, &m.Timestamp, &m.Read); err != nil {
			return nil, fmt.Errorf("error scanning message: %w", err)
		}
		messages = append(messages, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	return messages, nil
}

// UnreadCounts returns, per sender, how many unread messages the receiver has.
func (r *MessageRepository) UnreadCounts(ctx context.Context, receiver string) ([]models.UnreadCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT sender, COUNT(*)
		FROM messages
		WHERE receiver = $1 AND read = FALSE
		GROUP BY sender`,
		receiver)
	if err != nil {
		return nil, fmt.Errorf("error counting unread messages: %w", err)
	}
	defer rows.Close()

	var counts []models.UnreadCount
	for rows.Next() {
		var c models.UnreadCount
		if err := rows.Scan(&c.Sender, &c.Count); err != nil {
			return nil, fmt.Errorf("error scanning unread count: %w", err)
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// MarkRead flags every unread sender→receiver message as read and returns how many changed.
func (r *MessageRepository) MarkRead(ctx context.Context, sender, receiver string) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE messages
		SET read = TRUE
		WHERE sender = $1 AND receiver = $2 AND read = FALSE`,
		sender, receiver)
	if err != nil {
		return 0, fmt.Errorf("error marking messages read: %w", err)
	}

	return tag.RowsAffected(), nil
}

// LastMessageTimes returns the time of the latest message exchanged with each peer of user.
func (r *MessageRepository) LastMessageTimes(ctx context.Context, user string) ([]models.PeerActivity, error) {
	rows, err := r.db.Query(ctx, `
		SELECT CASE WHEN sender = $1 THEN receiver ELSE sender END AS peer, MAX(timestamp)
		FROM messages
		WHERE sender = $1 OR receiver = $1
		GROUP BY peer`,
		user)
	if err != nil {
		return nil, fmt.Errorf("error querying last message times: %w", err)
	}
	defer rows.Close()

	var activity []models.PeerActivity
	for rows.Next() {
		var peer string
		var last time.Time
		if err := rows.Scan(&peer, &last); err != nil {
			return nil, fmt.Errorf("error scanning last message time: %w", err)
		}
		activity = append(activity, models.PeerActivity{Peer: peer, LastMessageTime: last})
	}

	return activity, rows.Err()
}

// TotalUnread counts every unread message addressed to receiver.
func (r *MessageRepository) TotalUnread(ctx context.Context, receiver string) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM messages WHERE receiver = $1 AND read = FALSE`,
		receiver).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error counting unread messages: %w", err)
	}

	return total, nil
}
