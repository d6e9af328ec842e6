package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// trendsCmd represents the trends command
var trendsCmd = &cobra.Command{
	Use:   "trends <ticker>",
	Short: "다분기 추세 리포트",
	Long: `저장된 분기 스냅샷으로 매출/이익 추세를 분석합니다.

리포트 내용:
- 매출/이익 방향 (growing | declining | stable)
- 마진 추세
- 변동성 기반 일관성
- 단순 성장률 외삽 전망

Example:
  go run ./cmd/earnings trends TCS`,
	Args: cobra.ExactArgs(1),
	RunE: runTrends,
}

func init() {
	rootCmd.AddCommand(trendsCmd)
}

func runTrends(cmd *cobra.Command, args []string) error {
	rt, err := wire(true)
	if err != nil {
		return err
	}
	defer rt.close()

	ticker := strings.ToUpper(args[0])
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	report, err := rt.engine.TrendReport(ctx, ticker)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  Trend Report: %s (%d quarters)\n", report.Ticker, len(report.Quarters))
	fmt.Println("───────────────────────────────────────────────────────────")
	fmt.Printf("  Revenue     : %s\n", report.RevenueTrend)
	fmt.Printf("  Profit      : %s\n", report.ProfitTrend)
	fmt.Printf("  Margin      : %s\n", report.MarginTrend)
	fmt.Printf("  Consistency : %s\n", report.Consistency)
	if report.Projection != nil {
		fmt.Printf("  Next quarter: revenue ~%.0f, profit ~%.0f (%s confidence)\n",
			report.Projection.Revenue, report.Projection.Profit, report.Projection.Confidence)
	}
	for _, alert := range report.Alerts {
		fmt.Printf("  ⚠ %s\n", alert)
	}
	fmt.Println("═══════════════════════════════════════════════════════════")
	return nil
}
