package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// qualityCmd represents the quality command
var qualityCmd = &cobra.Command{
	Use:   "quality <ticker>",
	Short: "데이터 품질 리포트",
	Long: `저장된 스냅샷의 신선도와 정합성을 평가합니다.

점수 체계: 100점 시작, 경고당 -10, 신선도에 따라 추가 감점.
등급: A(>=90) B(>=75) C(>=60) D(<60)

Example:
  go run ./cmd/earnings quality INFY`,
	Args: cobra.ExactArgs(1),
	RunE: runQuality,
}

func init() {
	rootCmd.AddCommand(qualityCmd)
}

func runQuality(cmd *cobra.Command, args []string) error {
	rt, err := wire(true)
	if err != nil {
		return err
	}
	defer rt.close()

	ticker := strings.ToUpper(args[0])
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	report, err := rt.engine.QualityReport(ctx, ticker)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  Data Quality: %s\n", ticker)
	fmt.Println("───────────────────────────────────────────────────────────")
	fmt.Printf("  Score : %d (%s)\n", report.Score, report.Grade)
	if report.Freshness.AgeDays >= 0 {
		fmt.Printf("  Age   : %d days", report.Freshness.AgeDays)
		if report.Freshness.Warning != "" {
			fmt.Printf(" (%s)", report.Freshness.Warning)
		}
		fmt.Println()
	} else {
		fmt.Println("  Age   : unknown (no update timestamp)")
	}
	for _, w := range report.Warnings {
		fmt.Printf("  ⚠ %s\n", w)
	}
	fmt.Println("═══════════════════════════════════════════════════════════")
	return nil
}
