package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Krishiv14/EarningsAgent/internal/contracts"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [ticker]",
	Short: "델타 분석 - 매출/순이익 방향성 괴리 판정",
	Long: `두 분기의 매출/순이익 변화율을 비교해 관계와 심각도를 판정합니다.

두 가지 모드:
1. Ad-hoc: --current/--prior 플래그로 수치 직접 입력 (DB 불필요)
2. Stored: ticker 인자로 저장된 최근 2개 분기 분석 (판정은 DB에 기록)

Example:
  go run ./cmd/earnings analyze --current 115,92 --prior 100,100
  go run ./cmd/earnings analyze TCS`,
	RunE: runAnalyze,
}

var (
	analyzeCurrent string
	analyzePrior   string
	analyzePeriods string
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Flags
	analyzeCmd.Flags().StringVar(&analyzeCurrent, "current", "", "현재 분기 수치: revenue,netProfit")
	analyzeCmd.Flags().StringVar(&analyzePrior, "prior", "", "이전 분기 수치: revenue,netProfit")
	analyzeCmd.Flags().StringVar(&analyzePeriods, "periods", "", "라벨: current,prior (예: \"Q2 FY25,Q1 FY25\")")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	adHoc := analyzeCurrent != "" || analyzePrior != ""

	if adHoc && len(args) > 0 {
		return fmt.Errorf("use either a ticker argument or --current/--prior, not both")
	}
	if !adHoc && len(args) == 0 {
		return fmt.Errorf("a ticker argument or --current/--prior is required")
	}

	rt, err := wire(!adHoc)
	if err != nil {
		return err
	}
	defer rt.close()

	if adHoc {
		pair, err := parsePair()
		if err != nil {
			return err
		}

		verdict, err := rt.engine.AnalyzePair(pair)
		if err != nil {
			return err
		}
		printVerdict(verdict)
		return nil
	}

	ticker := strings.ToUpper(args[0])
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stored, err := rt.engine.AnalyzeTicker(ctx, ticker)
	if err != nil {
		return err
	}

	fmt.Printf("\nTicker      : %s\n", stored.Ticker)
	printVerdict(&stored.Verdict)
	return nil
}

// parsePair builds a MetricPair from the --current/--prior flags
func parsePair() (contracts.MetricPair, error) {
	var pair contracts.MetricPair

	cur, err := parseSnapshot(analyzeCurrent, "--current")
	if err != nil {
		return pair, err
	}
	pri, err := parseSnapshot(analyzePrior, "--prior")
	if err != nil {
		return pair, err
	}

	if analyzePeriods != "" {
		labels := strings.SplitN(analyzePeriods, ",", 2)
		cur.Period = strings.TrimSpace(labels[0])
		if len(labels) == 2 {
			pri.Period = strings.TrimSpace(labels[1])
		}
	}

	pair.Current = cur
	pair.Prior = pri
	return pair, nil
}

func parseSnapshot(value, flag string) (contracts.MetricSnapshot, error) {
	var snap contracts.MetricSnapshot

	if value == "" {
		return snap, fmt.Errorf("%s is required for ad-hoc analysis", flag)
	}
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return snap, fmt.Errorf("%s must be revenue,netProfit", flag)
	}

	revenue, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return snap, fmt.Errorf("%s revenue: %w", flag, err)
	}
	profit, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return snap, fmt.Errorf("%s netProfit: %w", flag, err)
	}

	snap.Revenue = revenue
	snap.NetProfit = profit
	return snap, nil
}

func printVerdict(v *contracts.DeltaVerdict) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println("  Delta Verdict")
	fmt.Println("───────────────────────────────────────────────────────────")
	fmt.Printf("  Revenue Δ   : %s\n", formatPct(v.RevenueChangePct))
	fmt.Printf("  Profit Δ    : %s\n", formatPct(v.ProfitChangePct))
	fmt.Printf("  Relationship: %s\n", v.Relationship)
	fmt.Printf("  Severity    : %s\n", v.Severity)
	if v.AnomalyFlag {
		fmt.Println("  ⚠ Anomaly   : negative revenue reported")
	}
	fmt.Println("───────────────────────────────────────────────────────────")
	fmt.Printf("  %s\n", v.Narrative)
	fmt.Println("═══════════════════════════════════════════════════════════")
}

func formatPct(v *float64) string {
	if v == nil {
		return "undefined (prior was zero)"
	}
	return fmt.Sprintf("%+.1f%%", *v)
}
