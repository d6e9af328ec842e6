package commands

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
)

// sweepCmd represents the sweep command
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "워치리스트 전체 분석",
	Long: `WATCHLIST의 모든 종목을 즉시 분석하고 판정을 기록합니다.

스케줄러가 매일 수행하는 것과 동일한 경로입니다.

Example:
  go run ./cmd/earnings sweep`,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	rt, err := wire(true)
	if err != nil {
		return err
	}
	defer rt.close()

	watchlist := rt.cfg.Analysis.Watchlist
	if len(watchlist) == 0 {
		return fmt.Errorf("WATCHLIST is empty")
	}

	fmt.Printf("Sweeping %d tickers...\n", len(watchlist))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result := rt.engine.Sweep(ctx, watchlist)

	fmt.Printf("\n✅ Analyzed %d/%d in %.2fs\n",
		len(result.Analyzed), len(watchlist), result.Duration.Seconds())

	if len(result.Failed) > 0 {
		tickers := make([]string, 0, len(result.Failed))
		for t := range result.Failed {
			tickers = append(tickers, t)
		}
		sort.Strings(tickers)
		fmt.Println("\nFailed:")
		for _, t := range tickers {
			fmt.Printf("  %s: %v\n", t, result.Failed[t])
		}
	}
	return nil
}
