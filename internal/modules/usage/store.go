package usage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles import_calls persistence.
type Store struct {
	db *pgxpool.Pool
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Insert writes one ledger row.
func (s *Store) Insert(ctx context.Context, e Entry) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO import_calls (id, request_id, variant, uid, status, outcome, item_count, latency_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, e.ID, e.RequestID, e.Variant, e.UID, e.Status, e.Outcome, e.ItemCount, e.LatencyMS, e.CreatedAt)
	return err
}

// PruneBefore deletes rows created before cutoff and returns how many were removed.
func (s *Store) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM import_calls WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// CountSince returns per-variant totals for rows created at or after since.
// A call counts as failed when its outcome is not "ok".
func (s *Store) CountSince(ctx context.Context, since time.Time) ([]Summary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT variant, COUNT(*), COUNT(*) FILTER (WHERE outcome <> 'ok')
		FROM import_calls
		WHERE created_at >= $1
		GROUP BY variant
		ORDER BY variant
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.Variant, &s.Total, &s.Failed); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
