package analysisconfig

import "fmt"

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks all required constraints
// 실패 시 error 반환 (프로그램 중단)
func Validate(cfg *Config) error {
	// === Meta ===
	if cfg.Meta.ProfileID == "" {
		return ValidationError{"meta.profile_id", "required"}
	}

	// === Delta ===
	d := cfg.Delta
	if d.AlignmentPP <= 0 {
		return ValidationError{"delta.alignment_pp", "must be > 0"}
	}
	if d.MediumPP <= 0 {
		return ValidationError{"delta.medium_pp", "must be > 0"}
	}
	if d.MediumPP >= d.HighPP {
		return ValidationError{"delta", "medium_pp must be < high_pp"}
	}
	if d.HighPP >= d.CriticalPP {
		return ValidationError{"delta", "high_pp must be < critical_pp"}
	}

	// === Trends ===
	t := cfg.Trends
	if t.GrowthPP <= 0 {
		return ValidationError{"trends.growth_pp", "must be > 0"}
	}
	if t.MarginPP <= 0 {
		return ValidationError{"trends.margin_pp", "must be > 0"}
	}
	if t.ModerateVolatility <= 0 || t.ModerateVolatility >= t.HighVolatility {
		return ValidationError{"trends", "moderate_volatility must be in (0, high_volatility)"}
	}
	if t.LowConfidencePct <= 0 {
		return ValidationError{"trends.low_confidence_pct", "must be > 0"}
	}
	if t.MaxQuarters < 3 {
		return ValidationError{"trends.max_quarters", "must be >= 3"}
	}

	// === Sector ===
	s := cfg.Sector
	if s.PEBandPct <= 0 {
		return ValidationError{"sector.pe_band_pct", "must be > 0"}
	}
	if s.ROEBandPP <= 0 {
		return ValidationError{"sector.roe_band_pp", "must be > 0"}
	}
	if s.MarginNotePP <= 0 {
		return ValidationError{"sector.margin_note_pp", "must be > 0"}
	}

	return nil
}
