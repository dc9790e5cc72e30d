package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/odyssey-erp/odyssey-dashboard/internal/contract"
)

const latestSnapshotSQL = `SELECT payload FROM dashboard_snapshots
WHERE page = $1
ORDER BY published_at DESC
LIMIT 1`

// RowQuerier is the subset of pgxpool.Pool used by PostgresSource.
type RowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresSource reads the latest published snapshot per page from the
// dashboard_snapshots table.
type PostgresSource struct {
	db RowQuerier
}

// NewPostgresSource wires a pool (or any RowQuerier).
func NewPostgresSource(db RowQuerier) *PostgresSource {
	return &PostgresSource{db: db}
}

// Name implements Source.
func (s *PostgresSource) Name() string { return SourcePostgres }

// Payload implements Source.
func (s *PostgresSource) Payload(ctx context.Context, page contract.Page) ([]byte, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("dashboard: postgres source not configured")
	}
	var payload []byte
	err := s.db.QueryRow(ctx, latestSnapshotSQL, string(page)).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, page)
	}
	if err != nil {
		return nil, fmt.Errorf("dashboard: query %s snapshot: %w", page, err)
	}
	return payload, nil
}
