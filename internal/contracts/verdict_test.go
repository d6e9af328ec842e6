package contracts

import (
	"encoding/json"
	"testing"
)

func TestDeltaThresholds_GradeSeverity(t *testing.T) {
	thresholds := DefaultDeltaThresholds()

	tests := []struct {
		divergence float64
		want       Severity
	}{
		{0, SeverityLow},
		{4.99, SeverityLow},
		{5, SeverityMedium},
		{15, SeverityHigh},
		{30, SeverityHigh},
		{31, SeverityCritical},
	}

	for _, tt := range tests {
		if got := thresholds.GradeSeverity(tt.divergence); got != tt.want {
			t.Errorf("GradeSeverity(%v) = %v, want %v", tt.divergence, got, tt.want)
		}
	}
}

func TestDeltaVerdict_Undefined(t *testing.T) {
	pct := 12.5

	tests := []struct {
		name    string
		verdict DeltaVerdict
		want    bool
	}{
		{"both defined", DeltaVerdict{RevenueChangePct: &pct, ProfitChangePct: &pct}, false},
		{"revenue undefined", DeltaVerdict{ProfitChangePct: &pct}, true},
		{"profit undefined", DeltaVerdict{RevenueChangePct: &pct}, true},
	}

	for _, tt := range tests {
		if got := tt.verdict.Undefined(); got != tt.want {
			t.Errorf("%s: Undefined() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDeltaVerdict_JSONNullForUndefined(t *testing.T) {
	pct := 8.0
	verdict := DeltaVerdict{
		ProfitChangePct: &pct,
		Relationship:    RelIndeterminate,
		Severity:        SeverityLow,
	}

	data, err := json.Marshal(&verdict)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	// 계산 불가는 0이 아니라 null이어야 호출자가 구분 가능
	if decoded["revenue_change_pct"] != nil {
		t.Errorf("revenue_change_pct = %v, want null", decoded["revenue_change_pct"])
	}
	if decoded["profit_change_pct"] != 8.0 {
		t.Errorf("profit_change_pct = %v, want 8.0", decoded["profit_change_pct"])
	}
}

func TestMetricSnapshot_Margin(t *testing.T) {
	s := MetricSnapshot{Revenue: 200, NetProfit: 30}
	if got := s.Margin(); got != 15 {
		t.Errorf("Margin() = %v, want 15", got)
	}

	zero := MetricSnapshot{Revenue: 0, NetProfit: 30}
	if got := zero.Margin(); got != 0 {
		t.Errorf("Margin() with zero revenue = %v, want 0", got)
	}
}
