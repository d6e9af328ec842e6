package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Krishiv14/EarningsAgent/internal/report"
	"github.com/Krishiv14/EarningsAgent/pkg/config"
	"github.com/Krishiv14/EarningsAgent/pkg/logger"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "실적 공시에서 핵심 수치 추출",
	Long: `다운로드된 실적 공시(HTML 또는 텍스트)에서
매출/순이익/EBITDA/EPS를 추출합니다.

Example:
  go run ./cmd/earnings report results_q2.html
  go run ./cmd/earnings report summary.txt --format text --period "Q2 FY25"`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

var (
	reportFormat string
	reportPeriod string
)

func init() {
	rootCmd.AddCommand(reportCmd)

	// Flags
	reportCmd.Flags().StringVar(&reportFormat, "format", "html", "입력 포맷 (html|text)")
	reportCmd.Flags().StringVar(&reportPeriod, "period", "", "스냅샷 라벨 (예: \"Q2 FY25\")")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)
	extractor := report.NewExtractor(log.Zerolog())

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open report: %w", err)
	}
	defer f.Close()

	var metrics *report.Metrics
	switch reportFormat {
	case "html":
		metrics, err = extractor.ExtractHTML(f)
		if err != nil {
			return fmt.Errorf("parse HTML: %w", err)
		}
	case "text":
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read report: %w", err)
		}
		metrics = extractor.ExtractText(string(data))
	default:
		return fmt.Errorf("format must be html or text, got %q", reportFormat)
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  Extracted Metrics (%d found)\n", metrics.Found())
	fmt.Println("───────────────────────────────────────────────────────────")
	printMetric("Revenue", metrics.Revenue)
	printMetric("Net Profit", metrics.Profit)
	printMetric("EBITDA", metrics.EBITDA)
	printMetric("EPS", metrics.EPS)
	fmt.Println("═══════════════════════════════════════════════════════════")

	if snap, err := metrics.Snapshot(reportPeriod); err == nil {
		fmt.Printf("\nSnapshot ready: revenue=%.2f netProfit=%.2f period=%q\n",
			snap.Revenue, snap.NetProfit, snap.Period)
	} else {
		fmt.Println("\n⚠ Not enough figures for a snapshot (revenue and net profit required)")
	}
	return nil
}

func printMetric(name string, v *float64) {
	if v == nil {
		fmt.Printf("  %-11s: not found\n", name)
		return
	}
	fmt.Printf("  %-11s: %.2f\n", name, *v)
}
