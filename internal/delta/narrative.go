package delta

import (
	"fmt"

	"github.com/Krishiv14/EarningsAgent/internal/contracts"
)

// narrate renders the fixed human-readable description for a verdict.
// 템플릿은 (relationship, 매출 부호, 이익 부호)로만 선택됨 — 완전 결정적,
// 외부 호출이나 난수 없음.
func narrate(v *contracts.DeltaVerdict) string {
	switch v.Relationship {
	case contracts.RelIndeterminate:
		return narrateIndeterminate(v)
	case contracts.RelInverted:
		if *v.RevenueChangePct >= 0 {
			return fmt.Sprintf("Revenue grew %.1f%% but net profit fell %.1f%% — costs are outpacing sales.",
				*v.RevenueChangePct, -*v.ProfitChangePct)
		}
		return fmt.Sprintf("Revenue fell %.1f%% while net profit rose %.1f%% — profitability held up despite shrinking sales.",
			-*v.RevenueChangePct, *v.ProfitChangePct)
	case contracts.RelDivergent:
		if *v.RevenueChangePct >= 0 {
			if *v.RevenueChangePct > *v.ProfitChangePct {
				return fmt.Sprintf("Revenue change %.1f%% and profit change %.1f%% point the same way, but the gap signals margin compression.",
					*v.RevenueChangePct, *v.ProfitChangePct)
			}
			return fmt.Sprintf("Profit change %.1f%% is running well ahead of revenue change %.1f%% — margins are expanding.",
				*v.ProfitChangePct, *v.RevenueChangePct)
		}
		return fmt.Sprintf("Revenue change %.1f%% and profit change %.1f%% are both negative with a wide gap between them.",
			*v.RevenueChangePct, *v.ProfitChangePct)
	default: // Aligned
		if *v.RevenueChangePct >= 0 {
			return fmt.Sprintf("Revenue change %.1f%% and profit change %.1f%% are moving together.",
				*v.RevenueChangePct, *v.ProfitChangePct)
		}
		return fmt.Sprintf("Revenue change %.1f%% and profit change %.1f%% are declining together.",
			*v.RevenueChangePct, *v.ProfitChangePct)
	}
}

func narrateIndeterminate(v *contracts.DeltaVerdict) string {
	switch {
	case v.RevenueChangePct == nil && v.ProfitChangePct == nil:
		return "Prior revenue and profit are both zero; period-over-period change is undefined."
	case v.RevenueChangePct == nil:
		return fmt.Sprintf("Prior revenue is zero so revenue change is undefined; profit change is %.1f%%.",
			*v.ProfitChangePct)
	default:
		return fmt.Sprintf("Prior profit is zero so profit change is undefined; revenue change is %.1f%%.",
			*v.RevenueChangePct)
	}
}
