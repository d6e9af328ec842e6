package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Krishiv14/EarningsAgent/internal/contracts"
)

// VerdictRepository persists delta verdicts for audit and querying
// ⭐ SSOT: 판정 저장소는 여기서만
type VerdictRepository struct {
	pool *pgxpool.Pool
}

// NewVerdictRepository creates a new verdict repository
func NewVerdictRepository(pool *pgxpool.Pool) *VerdictRepository {
	return &VerdictRepository{pool: pool}
}

// Save upserts a verdict. The same (ticker, period pair, thresholds)
// always reproduces the same verdict, so replacing is safe.
func (r *VerdictRepository) Save(ctx context.Context, v *contracts.StoredVerdict) error {
	query := `
		INSERT INTO delta_verdicts (
			ticker, current_period, prior_period,
			revenue_change, profit_change,
			relationship, severity, narrative, anomaly_flag,
			thresholds_hash, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
		ON CONFLICT (ticker, current_period, prior_period, thresholds_hash) DO UPDATE SET
			revenue_change = EXCLUDED.revenue_change,
			profit_change = EXCLUDED.profit_change,
			relationship = EXCLUDED.relationship,
			severity = EXCLUDED.severity,
			narrative = EXCLUDED.narrative,
			anomaly_flag = EXCLUDED.anomaly_flag,
			created_at = now()
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		v.Ticker, v.Verdict.CurrentPeriod, v.Verdict.PriorPeriod,
		v.Verdict.RevenueChangePct, v.Verdict.ProfitChangePct,
		string(v.Verdict.Relationship), string(v.Verdict.Severity),
		v.Verdict.Narrative, v.Verdict.AnomalyFlag,
		v.ThresholdsHash,
	).Scan(&v.ID)
	if err != nil {
		return fmt.Errorf("save verdict for %s: %w", v.Ticker, err)
	}
	return nil
}

// GetLatestByTicker returns the most recent verdict for a ticker
func (r *VerdictRepository) GetLatestByTicker(ctx context.Context, ticker string) (*contracts.StoredVerdict, error) {
	query := selectVerdict + `
		WHERE ticker = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	row := r.pool.QueryRow(ctx, query, ticker)
	return scanVerdict(row)
}

// ListBySeverity returns recent verdicts at the given severity, newest first
func (r *VerdictRepository) ListBySeverity(ctx context.Context, severity contracts.Severity, limit int) ([]*contracts.StoredVerdict, error) {
	query := selectVerdict + `
		WHERE severity = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, string(severity), limit)
	if err != nil {
		return nil, fmt.Errorf("list verdicts by severity %s: %w", severity, err)
	}
	defer rows.Close()

	var out []*contracts.StoredVerdict
	for rows.Next() {
		v, err := scanVerdict(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ListRecent returns the newest verdicts across all tickers
func (r *VerdictRepository) ListRecent(ctx context.Context, limit int) ([]*contracts.StoredVerdict, error) {
	query := selectVerdict + `
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent verdicts: %w", err)
	}
	defer rows.Close()

	var out []*contracts.StoredVerdict
	for rows.Next() {
		v, err := scanVerdict(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

const selectVerdict = `
	SELECT id, ticker, current_period, prior_period,
	       revenue_change, profit_change,
	       relationship, severity, narrative, anomaly_flag,
	       thresholds_hash, created_at
	FROM delta_verdicts
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVerdict(row rowScanner) (*contracts.StoredVerdict, error) {
	var v contracts.StoredVerdict
	var relationship, severity string

	err := row.Scan(
		&v.ID, &v.Ticker, &v.Verdict.CurrentPeriod, &v.Verdict.PriorPeriod,
		&v.Verdict.RevenueChangePct, &v.Verdict.ProfitChangePct,
		&relationship, &severity, &v.Verdict.Narrative, &v.Verdict.AnomalyFlag,
		&v.ThresholdsHash, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	v.Verdict.Relationship = contracts.Relationship(relationship)
	v.Verdict.Severity = contracts.Severity(severity)
	return &v, nil
}
