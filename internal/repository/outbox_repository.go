package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxOutboxRetries is how many failed publishes a message survives before it
// is parked as failed.
const MaxOutboxRetries = 5

type OutboxMessage struct {
	ID          uuid.UUID       `json:"id"`
	RoutingKey  string          `json:"routing_key"`
	Payload     json.RawMessage `json:"payload"`
	CreatedAt   time.Time       `json:"created_at"`
	PublishedAt *time.Time      `json:"published_at,omitempty"`
	RetryCount  int             `json:"retry_count"`
	LastError   *string         `json:"last_error,omitempty"`
	Status      string          `json:"status"`
}

// OutboxRepository writes events inside the caller's gorm transaction and
// drains them with plain SQL from the publisher side.
type OutboxRepository struct {
	db *sql.DB
}

func NewOutboxRepository(db *sql.DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

const insertOutbox = `
	INSERT INTO outbox_messages (id, routing_key, payload, status)
	VALUES (?, ?, ?, 'pending')
`

// CreateInTransaction enqueues an event as part of tx, so the event exists
// if and only if the change it describes was committed.
func (r *OutboxRepository) CreateInTransaction(tx *gorm.DB, routingKey string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal outbox payload: %w", err)
	}
	return tx.Exec(insertOutbox, uuid.New(), routingKey, string(body)).Error
}

// ClaimPending locks up to limit pending rows for the lifetime of tx. Rows
// locked by another publisher are skipped.
func (r *OutboxRepository) ClaimPending(ctx context.Context, tx *sql.Tx, limit int) ([]OutboxMessage, error) {
	query := `
		SELECT id, routing_key, payload, created_at, retry_count, last_error, status
		FROM outbox_messages
		WHERE status = 'pending'
		ORDER BY created_at ASC
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	`
	rows, err := tx.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []OutboxMessage
	for rows.Next() {
		var m OutboxMessage
		var lastError sql.NullString
		if err := rows.Scan(&m.ID, &m.RoutingKey, &m.Payload, &m.CreatedAt, &m.RetryCount, &lastError, &m.Status); err != nil {
			return nil, err
		}
		if lastError.Valid {
			m.LastError = &lastError.String
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *OutboxRepository) MarkAsPublished(ctx context.Context, tx *sql.Tx, id uuid.UUID) error {
	query := `
		UPDATE outbox_messages
		SET status = 'published', published_at = NOW()
		WHERE id = $1
	`
	_, err := tx.ExecContext(ctx, query, id)
	return err
}

func (r *OutboxRepository) MarkAsFailed(ctx context.Context, tx *sql.Tx, id uuid.UUID, errMsg string) error {
	query := `
		UPDATE outbox_messages
		SET retry_count = retry_count + 1, last_error = $2,
		    status = CASE WHEN retry_count + 1 >= $3 THEN 'failed' ELSE 'pending' END
		WHERE id = $1
	`
	_, err := tx.ExecContext(ctx, query, id, errMsg, MaxOutboxRetries)
	return err
}

func (r *OutboxRepository) DeletePublished(ctx context.Context, olderThan time.Duration) (int64, error) {
	query := `
		DELETE FROM outbox_messages
		WHERE status = 'published' AND published_at < $1
	`
	result, err := r.db.ExecContext(ctx, query, time.Now().Add(-olderThan))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Stats counts outbox rows per status.
func (r *OutboxRepository) Stats(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM outbox_messages GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

func (r *OutboxRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return r.db.BeginTx(ctx, nil)
}

// DrainPending claims a batch of pending messages and hands each one to
// publish inside a single transaction. Successes are marked published and
// failures get their retry count bumped; the locks are released on commit.
func (r *OutboxRepository) DrainPending(ctx context.Context, limit int, publish func(OutboxMessage) error) (int, error) {
	tx, err := r.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	messages, err := r.ClaimPending(ctx, tx, limit)
	if err != nil {
		return 0, fmt.Errorf("claim pending: %w", err)
	}

	published := 0
	for _, m := range messages {
		if perr := publish(m); perr != nil {
			if err := r.MarkAsFailed(ctx, tx, m.ID, perr.Error()); err != nil {
				return published, fmt.Errorf("mark failed %s: %w", m.ID, err)
			}
			continue
		}
		if err := r.MarkAsPublished(ctx, tx, m.ID); err != nil {
			return published, fmt.Errorf("mark published %s: %w", m.ID, err)
		}
		published++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return published, nil
}
