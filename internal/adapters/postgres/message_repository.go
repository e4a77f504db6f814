package postgres_adapter

import (
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/domain"
	"addisnest-service/internal/core/port"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) (*MessageRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &MessageRepository{pool: pool}, nil
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	query := `INSERT INTO messages (id, sender_id, recipient_id, property_id, body, read_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query, msg.ID, msg.SenderID, msg.RecipientID, msg.PropertyID, msg.Body, msg.ReadAt, msg.CreatedAt)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to insert message", err, port.Fields{
			"component": "MessageRepository",
			"method":    "Create",
		})
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// ListConversations: последнее сообщение и число непрочитанных по каждому собеседнику
func (r *MessageRepository) ListConversations(ctx context.Context, userID uuid.UUID) ([]domain.ConversationSummary, error) {
	query := `
		WITH thread AS (
			SELECT m.*,
				CASE WHEN m.sender_id = $1 THEN m.recipient_id ELSE m.sender_id END AS peer_id
			FROM messages m
			WHERE m.sender_id = $1 OR m.recipient_id = $1
		),
		latest AS (
			SELECT DISTINCT ON (peer_id) *
			FROM thread
			ORDER BY peer_id, created_at DESC
		)
		SELECT l.peer_id, l.id, l.sender_id, l.recipient_id, l.property_id, l.body, l.read_at, l.created_at,
			(SELECT COUNT(*) FROM thread t
				WHERE t.peer_id = l.peer_id AND t.recipient_id = $1 AND t.read_at IS NULL) AS unread
		FROM latest l
		ORDER BY l.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to list conversations", err, port.Fields{
			"component": "MessageRepository",
			"method":    "ListConversations",
		})
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	summaries := []domain.ConversationSummary{}
	for rows.Next() {
		var s domain.ConversationSummary
		m := &s.LastMessage
		if err := rows.Scan(&s.PeerID, &m.ID, &m.SenderID, &m.RecipientID, &m.PropertyID, &m.Body, &m.ReadAt, &m.CreatedAt, &s.UnreadCount); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *MessageRepository) Thread(ctx context.Context, userID, peerID uuid.UUID, limit, offset int) ([]domain.Message, error) {
	query := `SELECT id, sender_id, recipient_id, property_id, body, read_at, created_at
		FROM messages
		WHERE (sender_id = $1 AND recipient_id = $2) OR (sender_id = $2 AND recipient_id = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.pool.Query(ctx, query, userID, peerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query thread: %w", err)
	}
	defer rows.Close()

	messages := make([]domain.Message, 0, limit)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, *m)
	}
	return messages, rows.Err()
}

func (r *MessageRepository) MarkRead(ctx context.Context, userID, peerID uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE messages SET read_at = now() WHERE recipient_id = $1 AND sender_id = $2 AND read_at IS NULL`,
		userID, peerID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark messages read: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanMessage(row pgx.Row) (*domain.Message, error) {
	var m domain.Message
	if err := row.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.PropertyID, &m.Body, &m.ReadAt, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
