package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// cacheCmd represents the cache command group
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "분석 결과 캐시 관리",
	Long: `Redis에 캐시된 분석 결과를 조회/삭제합니다.

REDIS_ENABLED=false면 캐시가 비활성이므로 할 일이 없습니다.

Example:
  go run ./cmd/earnings cache stats
  go run ./cmd/earnings cache clear
  go run ./cmd/earnings cache clear TCS`,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "캐시 항목 수 조회",
	RunE:  runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [ticker]",
	Short: "캐시 비우기 (ticker 지정 시 해당 종목만)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCacheClear,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	rt, err := wire(false)
	if err != nil {
		return err
	}
	defer rt.close()

	if !rt.redis.Enabled() {
		fmt.Println("Cache is disabled (REDIS_ENABLED=false)")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := rt.cache.Count(ctx)
	if err != nil {
		return fmt.Errorf("count cache entries: %w", err)
	}

	fmt.Printf("Cached analysis results: %d\n", count)
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	rt, err := wire(false)
	if err != nil {
		return err
	}
	defer rt.close()

	if !rt.redis.Enabled() {
		fmt.Println("Cache is disabled (REDIS_ENABLED=false)")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if len(args) == 1 {
		ticker := strings.ToUpper(args[0])
		if err := rt.cache.DeleteByTicker(ctx, ticker); err != nil {
			return fmt.Errorf("clear cache for %s: %w", ticker, err)
		}
		fmt.Printf("✅ Cleared cached results for %s\n", ticker)
		return nil
	}

	deleted, err := rt.cache.Clear(ctx)
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	fmt.Printf("✅ Cleared %d cached entries\n", deleted)
	return nil
}
