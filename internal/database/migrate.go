package database

import (
	"fmt"

	"complaint-portal/internal/model"

	"gorm.io/gorm"
)

// The outbox and notification tables are read and written with plain SQL,
// so their schema lives here instead of in gorm models.
const messagingSchema = `
CREATE TABLE IF NOT EXISTS outbox_messages (
	id UUID PRIMARY KEY,
	routing_key TEXT NOT NULL,
	payload JSONB NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	retry_count INT NOT NULL DEFAULT 0,
	last_error TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	published_at TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_outbox_pending ON outbox_messages (status, created_at);

CREATE TABLE IF NOT EXISTS notifications (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL,
	complaint_id UUID,
	title TEXT NOT NULL,
	message TEXT NOT NULL,
	is_read BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications (user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS processed_messages (
	message_id TEXT PRIMARY KEY,
	processed_at TIMESTAMPTZ NOT NULL
);
`

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Citizen{},
		&model.Category{},
		&model.Complaint{},
		&model.Response{},
		&model.Official{},
		&model.Admin{},
	)
	if err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	if err := db.Exec(messagingSchema).Error; err != nil {
		return fmt.Errorf("messaging schema: %w", err)
	}
	return nil
}
