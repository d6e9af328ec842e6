package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Krishiv14/EarningsAgent/internal/sector"
)

// sectorCmd represents the sector command
var sectorCmd = &cobra.Command{
	Use:   "sector <ticker>",
	Short: "섹터 비교 - 업종 평균 대비 밸류에이션/수익성",
	Long: `회사 지표를 업종 평균과 비교합니다. NSE 주요 종목 내장.

DB 없이 동작합니다. 회사 지표는 플래그로 전달:

Example:
  go run ./cmd/earnings sector TCS --pe 35 --margin 18 --roe 28 --de 0.1
  go run ./cmd/earnings sector RELIANCE --pe 22`,
	Args: cobra.ExactArgs(1),
	RunE: runSector,
}

var (
	sectorPE     float64
	sectorMargin float64
	sectorROE    float64
	sectorDE     float64
)

func init() {
	rootCmd.AddCommand(sectorCmd)

	// Flags. 음수는 "미제공" 표시로 사용
	sectorCmd.Flags().Float64Var(&sectorPE, "pe", -1, "P/E ratio")
	sectorCmd.Flags().Float64Var(&sectorMargin, "margin", -999, "profit margin (%)")
	sectorCmd.Flags().Float64Var(&sectorROE, "roe", -999, "return on equity (%)")
	sectorCmd.Flags().Float64Var(&sectorDE, "de", -1, "debt to equity")
}

func runSector(cmd *cobra.Command, args []string) error {
	rt, err := wire(false)
	if err != nil {
		return err
	}
	defer rt.close()

	metrics := sector.CompanyMetrics{}
	if cmd.Flags().Changed("pe") {
		metrics.PERatio = &sectorPE
	}
	if cmd.Flags().Changed("margin") {
		metrics.ProfitMarginPct = &sectorMargin
	}
	if cmd.Flags().Changed("roe") {
		metrics.ROEPct = &sectorROE
	}
	if cmd.Flags().Changed("de") {
		metrics.DebtToEquity = &sectorDE
	}

	result := rt.engine.CompareSector(args[0], metrics)
	if !result.Available {
		fmt.Printf("No sector baseline for %s: %s\n", strings.ToUpper(args[0]), result.Reason)
		return nil
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  Sector Comparison: %s (%s)\n", result.Ticker, result.Sector)
	fmt.Println("───────────────────────────────────────────────────────────")
	fmt.Printf("  Peers: %s\n", strings.Join(result.Peers, ", "))

	names := make([]string, 0, len(result.Comparisons))
	for name := range result.Comparisons {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := result.Comparisons[name]
		fmt.Printf("  %-14s: %.2f vs sector %.2f → %s\n", name, c.Value, c.SectorAvg, c.Verdict)
	}

	for _, insight := range result.Insights {
		fmt.Printf("  • %s\n", insight)
	}
	fmt.Println("═══════════════════════════════════════════════════════════")
	return nil
}
