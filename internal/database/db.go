// Package database opens the Postgres connection shared by the gorm
// repositories and the hand-written outbox and notification queries.
package database

import (
	"database/sql"
	"errors"
	"fmt"

	"complaint-portal/config"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	uniqueViolation = "23505"
	invalidTextRepr = "22P02"
)

// Open connects through lib/pq and hands the same pool to gorm.
func Open(cfg config.DatabaseConfig) (*sql.DB, *gorm.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping postgres: %w", err)
	}

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("open gorm: %w", err)
	}

	return db, gdb, nil
}

// IsUniqueViolation reports whether err came from a unique index.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsInvalidText reports whether Postgres rejected a value for its column
// type, such as a malformed uuid.
func IsInvalidText(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == invalidTextRepr
}
