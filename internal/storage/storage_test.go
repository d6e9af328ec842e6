package storage

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/Krishiv14/EarningsAgent/internal/contracts"
	"github.com/Krishiv14/EarningsAgent/pkg/config"
	"github.com/Krishiv14/EarningsAgent/pkg/database"
)

func testDB(t *testing.T) *database.DB {
	t.Helper()
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	t.Cleanup(db.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	return db
}

func TestSnapshotRoundTrip(t *testing.T) {
	db := testDB(t)
	repo := NewSnapshotRepository(db.Pool)
	ctx := context.Background()

	ticker := "ITTEST"
	snaps := []*contracts.StoredSnapshot{
		{
			Ticker:     ticker,
			Snapshot:   contracts.MetricSnapshot{Revenue: 1000, NetProfit: 100, Period: "Q1 FY25"},
			ReportDate: time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			Ticker:     ticker,
			Snapshot:   contracts.MetricSnapshot{Revenue: 1100, NetProfit: 90, Period: "Q2 FY25"},
			ReportDate: time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC),
		},
	}

	if err := repo.SaveBatch(ctx, snaps); err != nil {
		t.Fatalf("SaveBatch failed: %v", err)
	}

	pair, err := repo.GetLatestPair(ctx, ticker)
	if err != nil {
		t.Fatalf("GetLatestPair failed: %v", err)
	}
	if pair.Current.Period != "Q2 FY25" {
		t.Errorf("current period = %s, want Q2 FY25", pair.Current.Period)
	}
	if pair.Prior.Period != "Q1 FY25" {
		t.Errorf("prior period = %s, want Q1 FY25", pair.Prior.Period)
	}

	// Upsert must replace, not duplicate
	snaps[1].Snapshot.NetProfit = 95
	if err := repo.Save(ctx, snaps[1]); err != nil {
		t.Fatalf("Save (upsert) failed: %v", err)
	}
	recent, err := repo.GetRecent(ctx, ticker, 10)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("expected 2 snapshots after upsert, got %d", len(recent))
	}
	if recent[0].Snapshot.NetProfit != 95 {
		t.Errorf("upsert did not replace net_profit: %v", recent[0].Snapshot.NetProfit)
	}
}

func TestGetLatestPairInsufficient(t *testing.T) {
	db := testDB(t)
	repo := NewSnapshotRepository(db.Pool)

	_, err := repo.GetLatestPair(context.Background(), "NO_SUCH_TICKER")
	if !errors.Is(err, contracts.ErrInsufficientHistory) {
		t.Errorf("expected ErrInsufficientHistory, got %v", err)
	}
}

func TestVerdictRoundTrip(t *testing.T) {
	db := testDB(t)
	repo := NewVerdictRepository(db.Pool)
	ctx := context.Background()

	rev := 15.0
	prof := -4.0
	v := &contracts.StoredVerdict{
		Ticker: "ITTEST",
		Verdict: contracts.DeltaVerdict{
			RevenueChangePct: &rev,
			ProfitChangePct:  &prof,
			Relationship:     contracts.RelInverted,
			Severity:         contracts.SeverityHigh,
			Narrative:        "Revenue grew 15.0% while net profit fell 4.0%.",
			CurrentPeriod:    "Q2 FY25",
			PriorPeriod:      "Q1 FY25",
		},
		ThresholdsHash: "deadbeef",
	}

	if err := repo.Save(ctx, v); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if v.ID == 0 {
		t.Error("expected assigned id")
	}

	got, err := repo.GetLatestByTicker(ctx, "ITTEST")
	if err != nil {
		t.Fatalf("GetLatestByTicker failed: %v", err)
	}
	if got.Verdict.Relationship != contracts.RelInverted {
		t.Errorf("relationship = %s", got.Verdict.Relationship)
	}
	if got.Verdict.RevenueChangePct == nil || *got.Verdict.RevenueChangePct != 15.0 {
		t.Errorf("revenue change = %v", got.Verdict.RevenueChangePct)
	}

	list, err := repo.ListBySeverity(ctx, contracts.SeverityHigh, 5)
	if err != nil {
		t.Fatalf("ListBySeverity failed: %v", err)
	}
	if len(list) == 0 {
		t.Error("expected at least one high severity verdict")
	}
}
