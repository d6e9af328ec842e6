package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Krishiv14/EarningsAgent/internal/contracts"
)

// SnapshotRepository persists quarterly metric snapshots
// ⭐ SSOT: 스냅샷 저장소는 여기서만
type SnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

// Save upserts a single snapshot keyed by (ticker, period)
func (r *SnapshotRepository) Save(ctx context.Context, s *contracts.StoredSnapshot) error {
	query := `
		INSERT INTO metric_snapshots (
			ticker, period, revenue, net_profit, report_date, updated_at
		) VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (ticker, period) DO UPDATE SET
			revenue = EXCLUDED.revenue,
			net_profit = EXCLUDED.net_profit,
			report_date = EXCLUDED.report_date,
			updated_at = now()
	`

	var reportDate *time.Time
	if !s.ReportDate.IsZero() {
		reportDate = &s.ReportDate
	}

	_, err := r.pool.Exec(ctx, query,
		s.Ticker, s.Snapshot.Period, s.Snapshot.Revenue, s.Snapshot.NetProfit, reportDate,
	)
	if err != nil {
		return fmt.Errorf("save snapshot %s/%s: %w", s.Ticker, s.Snapshot.Period, err)
	}
	return nil
}

// SaveBatch upserts multiple snapshots
func (r *SnapshotRepository) SaveBatch(ctx context.Context, snapshots []*contracts.StoredSnapshot) error {
	for _, s := range snapshots {
		if err := r.Save(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// GetLatestPair returns the two most recent snapshots for a ticker,
// newest first. Returns ErrInsufficientHistory when fewer than two exist.
func (r *SnapshotRepository) GetLatestPair(ctx context.Context, ticker string) (*contracts.MetricPair, error) {
	snaps, err := r.GetRecent(ctx, ticker, 2)
	if err != nil {
		return nil, err
	}
	if len(snaps) < 2 {
		return nil, fmt.Errorf("ticker %s has %d snapshot(s): %w",
			ticker, len(snaps), contracts.ErrInsufficientHistory)
	}

	return &contracts.MetricPair{
		Current: snaps[0].Snapshot,
		Prior:   snaps[1].Snapshot,
	}, nil
}

// GetRecent returns up to limit snapshots for a ticker, newest first.
// Ordering falls back to period when report_date is missing.
func (r *SnapshotRepository) GetRecent(ctx context.Context, ticker string, limit int) ([]*contracts.StoredSnapshot, error) {
	query := `
		SELECT ticker, period, revenue, net_profit,
		       COALESCE(report_date, '0001-01-01'::date), updated_at
		FROM metric_snapshots
		WHERE ticker = $1
		ORDER BY report_date DESC NULLS LAST, period DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, ticker, limit)
	if err != nil {
		return nil, fmt.Errorf("query snapshots for %s: %w", ticker, err)
	}
	defer rows.Close()

	var out []*contracts.StoredSnapshot
	for rows.Next() {
		var s contracts.StoredSnapshot
		if err := rows.Scan(
			&s.Ticker, &s.Snapshot.Period, &s.Snapshot.Revenue, &s.Snapshot.NetProfit,
			&s.ReportDate, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// LastUpdated returns the most recent updated_at for a ticker.
// Zero time when the ticker has no snapshots.
func (r *SnapshotRepository) LastUpdated(ctx context.Context, ticker string) (time.Time, error) {
	query := `
		SELECT COALESCE(MAX(updated_at), '0001-01-01'::timestamptz)
		FROM metric_snapshots
		WHERE ticker = $1
	`

	var ts time.Time
	if err := r.pool.QueryRow(ctx, query, ticker).Scan(&ts); err != nil {
		return time.Time{}, fmt.Errorf("last updated for %s: %w", ticker, err)
	}
	return ts, nil
}
