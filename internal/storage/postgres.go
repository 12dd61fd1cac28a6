// Package storage keeps the booking journal in postgres.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"bitbucket.org/crgw/travel-planner/internal/config"
	"bitbucket.org/crgw/travel-planner/internal/schema"

	_ "github.com/lib/pq"
)

const createBookingsTable = `CREATE TABLE IF NOT EXISTS bookings (
	id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	offer_id TEXT NOT NULL,
	confirmation JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`

const createSessionIndex = `CREATE INDEX IF NOT EXISTS bookings_session_id_idx ON bookings (session_id, created_at)`

// Open connects to postgres and checks the connection.
func Open(ctx context.Context, cfg config.Database) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return db, nil
}

type BookingsRepository struct {
	db *sql.DB
}

func NewBookingsRepository(db *sql.DB) *BookingsRepository {
	return &BookingsRepository{db: db}
}

// Migrate creates the journal table when missing.
func (r *BookingsRepository) Migrate(ctx context.Context) error {
	for _, statement := range []string{createBookingsTable, createSessionIndex} {
		if _, err := r.db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("failed to migrate bookings: %w", err)
		}
	}

	return nil
}

func (r *BookingsRepository) Record(ctx context.Context, record schema.BookingRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bookings (id, session_id, offer_id, confirmation, created_at) VALUES ($1, $2, $3, $4, $5)`,
		record.ID,
		record.SessionID,
		record.OfferID,
		[]byte(record.Confirmation),
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	return nil
}

// ListBySession returns the bookings of a session, oldest first.
func (r *BookingsRepository) ListBySession(ctx context.Context, sessionID string) ([]schema.BookingRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, session_id, offer_id, confirmation, created_at FROM bookings WHERE session_id = $1 ORDER BY created_at`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	records := []schema.BookingRecord{}
	for rows.Next() {
		var record schema.BookingRecord
		var confirmation []byte

		if err := rows.Scan(&record.ID, &record.SessionID, &record.OfferID, &confirmation, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}

		record.Confirmation = confirmation
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bookings: %w", err)
	}

	return records, nil
}
