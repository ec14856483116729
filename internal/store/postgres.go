package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	internalErrors "github.com/akylbek/payment-system/payment-broker/internal/errors"
	"github.com/akylbek/payment-system/payment-broker/internal/models"
)

// PostgresStore persists sessions in a table with an expires_at column.
// Postgres has no native TTL, so expiry is enforced lazily: every Get checks
// the deadline and deletes the row opportunistically once it has passed.
type PostgresStore struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

func NewPostgresStore(db *sql.DB, ttl time.Duration) *PostgresStore {
	return &PostgresStore{db: db, ttl: ttl, now: time.Now}
}

func (s *PostgresStore) InitDB() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS payment_sessions (
			id VARCHAR(255) PRIMARY KEY,
			details JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_payment_sessions_expires_at ON payment_sessions(expires_at)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}

func (s *PostgresStore) Put(ctx context.Context, details models.SettlementDetails) (string, error) {
	id := uuid.New().String()

	data, err := json.Marshal(details)
	if err != nil {
		return "", fmt.Errorf("failed to marshal settlement details: %w", err)
	}

	createdAt := s.now()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO payment_sessions (id, details, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`, id, data, createdAt, createdAt.Add(s.ttl))
	if err != nil {
		return "", fmt.Errorf("failed to store payment session: %w", err)
	}

	return id, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*models.PaymentSession, error) {
	var (
		data      []byte
		createdAt time.Time
		expiresAt time.Time
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT details, created_at, expires_at
		FROM payment_sessions WHERE id = $1
	`, id).Scan(&data, &createdAt, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, internalErrors.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment session: %w", err)
	}

	session := models.PaymentSession{
		ID:        id,
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}

	if session.Expired(s.now()) {
		s.db.ExecContext(ctx, `DELETE FROM payment_sessions WHERE id = $1`, id)
		return nil, internalErrors.ErrSessionNotFound
	}

	if err := json.Unmarshal(data, &session.Details); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settlement details: %w", err)
	}

	return &session, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM payment_sessions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete payment session: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows > 0, nil
}
