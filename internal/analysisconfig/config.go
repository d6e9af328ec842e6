package analysisconfig

import (
	"time"

	"github.com/Krishiv14/EarningsAgent/internal/contracts"
	"github.com/Krishiv14/EarningsAgent/internal/sector"
	"github.com/Krishiv14/EarningsAgent/internal/trends"
)

// Config는 분석 임계값 프로파일의 전체 설정
type Config struct {
	Meta   Meta   `yaml:"meta" json:"meta"`
	Delta  Delta  `yaml:"delta" json:"delta"`
	Trends Trends `yaml:"trends" json:"trends"`
	Sector Sector `yaml:"sector" json:"sector"`
}

// Meta 메타 정보
type Meta struct {
	ProfileID string `yaml:"profile_id" json:"profile_id"`
	Version   string `yaml:"version" json:"version"`
}

// Delta 수익-이익 괴리 등급 임계값 (percentage points)
type Delta struct {
	AlignmentPP float64 `yaml:"alignment_pp" json:"alignment_pp"`
	MediumPP    float64 `yaml:"medium_pp" json:"medium_pp"`
	HighPP      float64 `yaml:"high_pp" json:"high_pp"`
	CriticalPP  float64 `yaml:"critical_pp" json:"critical_pp"`
}

// Thresholds converts to the contracts representation
func (d Delta) Thresholds() contracts.DeltaThresholds {
	return contracts.DeltaThresholds{
		AlignmentPP: d.AlignmentPP,
		MediumPP:    d.MediumPP,
		HighPP:      d.HighPP,
		CriticalPP:  d.CriticalPP,
	}
}

// Trends 다분기 추세 분석 임계값
type Trends struct {
	GrowthPP           float64 `yaml:"growth_pp" json:"growth_pp"`
	MarginPP           float64 `yaml:"margin_pp" json:"margin_pp"`
	ModerateVolatility float64 `yaml:"moderate_volatility" json:"moderate_volatility"`
	HighVolatility     float64 `yaml:"high_volatility" json:"high_volatility"`
	LowConfidencePct   float64 `yaml:"low_confidence_pct" json:"low_confidence_pct"`
	MaxQuarters        int     `yaml:"max_quarters" json:"max_quarters"`
}

// Thresholds converts to the trends package representation
func (t Trends) Thresholds() trends.Thresholds {
	return trends.Thresholds{
		GrowthPP:           t.GrowthPP,
		MarginPP:           t.MarginPP,
		ModerateVolatility: t.ModerateVolatility,
		HighVolatility:     t.HighVolatility,
		LowConfidencePct:   t.LowConfidencePct,
		MaxQuarters:        t.MaxQuarters,
	}
}

// Sector 섹터 비교 판정 밴드
type Sector struct {
	PEBandPct    float64 `yaml:"pe_band_pct" json:"pe_band_pct"`
	ROEBandPP    float64 `yaml:"roe_band_pp" json:"roe_band_pp"`
	MarginNotePP float64 `yaml:"margin_note_pp" json:"margin_note_pp"`
}

// Thresholds converts to the sector package representation
func (s Sector) Thresholds() sector.Thresholds {
	return sector.Thresholds{
		PEBandPct:    s.PEBandPct,
		ROEBandPP:    s.ROEBandPP,
		MarginNotePP: s.MarginNotePP,
	}
}

// Default returns the built-in profile used when no YAML file is given
func Default() *Config {
	dt := contracts.DefaultDeltaThresholds()
	tt := trends.DefaultThresholds()
	st := sector.DefaultThresholds()

	return &Config{
		Meta: Meta{
			ProfileID: "default",
			Version:   "1",
		},
		Delta: Delta{
			AlignmentPP: dt.AlignmentPP,
			MediumPP:    dt.MediumPP,
			HighPP:      dt.HighPP,
			CriticalPP:  dt.CriticalPP,
		},
		Trends: Trends{
			GrowthPP:           tt.GrowthPP,
			MarginPP:           tt.MarginPP,
			ModerateVolatility: tt.ModerateVolatility,
			HighVolatility:     tt.HighVolatility,
			LowConfidencePct:   tt.LowConfidencePct,
			MaxQuarters:        tt.MaxQuarters,
		},
		Sector: Sector{
			PEBandPct:    st.PEBandPct,
			ROEBandPP:    st.ROEBandPP,
			MarginNotePP: st.MarginNotePP,
		},
	}
}

// ProfileSnapshot 적용된 임계값 스냅샷 (재현성용)
type ProfileSnapshot struct {
	ConfigHash string    `json:"config_hash"`
	ConfigYAML string    `json:"config_yaml"`
	ProfileID  string    `json:"profile_id"`
	CreatedAt  time.Time `json:"created_at"`
}
