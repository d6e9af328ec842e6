package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	profileFile string
	verbose     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "earnings",
	Short: "EarningsAgent - 분기 실적 델타 분석 엔진",
	Long: `EarningsAgent Unified CLI

분기 실적(매출/순이익)의 방향성 괴리를 판정하고
추세, 섹터 비교, 데이터 품질까지 리포트합니다.

Usage:
  go run ./cmd/earnings [command]

Examples:
  go run ./cmd/earnings api
  go run ./cmd/earnings analyze --current 115,92 --prior 100,100
  go run ./cmd/earnings trends TCS
  go run ./cmd/earnings sweep`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&profileFile, "profile", "", "analysis thresholds YAML (default: built-in profile)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
