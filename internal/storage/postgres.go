// Package storage implements the domain.TransactionStore interface on Postgres.
// The adapter only writes transaction records; nothing here is read on the
// request path, so the whole package is optional at runtime.
package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/telepix/pix-gateway/internal/domain"
)

// Connect opens a pgx pool for the given connection string.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// RunMigrations applies the goose migrations from the given directory.
func RunMigrations(databaseURL, migrationsDir string) error {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	return goose.Up(db, migrationsDir)
}

// TransactionStore persists charge records in the pix_transaction table.
type TransactionStore struct {
	pool *pgxpool.Pool
}

// NewTransactionStore creates a store backed by the given pool.
func NewTransactionStore(pool *pgxpool.Pool) *TransactionStore {
	return &TransactionStore{pool: pool}
}

// SaveCharge records a freshly created charge. Re-sending an identifier is a
// no-op; the gateway's idempotency decides, not this table.
func (s *TransactionStore) SaveCharge(ctx context.Context, rec domain.TransactionRecord) error {
	query := `INSERT INTO pix_transaction (identifier, transaction_id, amount, status, created_at)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (identifier) DO NOTHING`
	_, err := s.pool.Exec(ctx, query,
		rec.Identifier, rec.TransactionID, rec.Amount, rec.Status, rec.CreatedAt)
	return err
}

// MarkStatus upserts the status reported by a webhook. Webhooks can arrive for
// charges created before persistence was enabled, so a missing row is inserted
// rather than skipped.
func (s *TransactionStore) MarkStatus(ctx context.Context, identifier, transactionID, status string) error {
	query := `INSERT INTO pix_transaction (identifier, transaction_id, amount, status, created_at)
	          VALUES ($1, $2, 0, $3, $4)
	          ON CONFLICT (identifier) DO UPDATE
	          SET status = EXCLUDED.status,
	              transaction_id = COALESCE(NULLIF(EXCLUDED.transaction_id, ''), pix_transaction.transaction_id),
	              updated_at = now()`
	_, err := s.pool.Exec(ctx, query, identifier, transactionID, status, time.Now().UTC())
	return err
}
