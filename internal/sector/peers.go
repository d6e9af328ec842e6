package sector

// Averages holds industry-average metrics for a sector.
type Averages struct {
	PERatio         float64 `json:"pe_ratio"`
	ProfitMarginPct float64 `json:"profit_margin_pct"`
	ROEPct          float64 `json:"roe_pct"`
	DebtToEquity    float64 `json:"debt_to_equity"`
}

// Info describes a ticker's sector, its peers and the sector averages.
type Info struct {
	Sector      string   `json:"sector"`
	Peers       []string `json:"peers"`
	IndustryAvg Averages `json:"industry_avg"`
}

// peerTable maps NSE tickers to their sector peer groups
// ⭐ SSOT: 섹터 피어 매핑은 이 테이블에서만
//
// Static curation: averages are maintained by hand, not fetched.
var peerTable = map[string]Info{
	"RELIANCE": {
		Sector:      "Energy & Petrochemicals",
		Peers:       []string{"ONGC", "BPCL", "IOC", "HINDPETRO"},
		IndustryAvg: Averages{PERatio: 18.5, ProfitMarginPct: 8.5, ROEPct: 12.0, DebtToEquity: 1.2},
	},
	"TCS": {
		Sector:      "Information Technology",
		Peers:       []string{"INFY", "WIPRO", "HCLTECH", "TECHM"},
		IndustryAvg: Averages{PERatio: 28.0, ProfitMarginPct: 22.0, ROEPct: 35.0, DebtToEquity: 0.1},
	},
	"INFY": {
		Sector:      "Information Technology",
		Peers:       []string{"TCS", "WIPRO", "HCLTECH", "TECHM"},
		IndustryAvg: Averages{PERatio: 28.0, ProfitMarginPct: 22.0, ROEPct: 35.0, DebtToEquity: 0.1},
	},
	"HDFCBANK": {
		Sector:      "Banking",
		Peers:       []string{"ICICIBANK", "SBIN", "KOTAKBANK", "AXISBANK"},
		IndustryAvg: Averages{PERatio: 18.0, ProfitMarginPct: 25.0, ROEPct: 15.0, DebtToEquity: 5.0},
	},
	"ICICIBANK": {
		Sector:      "Banking",
		Peers:       []string{"HDFCBANK", "SBIN", "KOTAKBANK", "AXISBANK"},
		IndustryAvg: Averages{PERatio: 18.0, ProfitMarginPct: 25.0, ROEPct: 15.0, DebtToEquity: 5.0},
	},
	"ITC": {
		Sector:      "FMCG",
		Peers:       []string{"HINDUNILVR", "NESTLEIND", "BRITANNIA", "DABUR"},
		IndustryAvg: Averages{PERatio: 45.0, ProfitMarginPct: 18.0, ROEPct: 28.0, DebtToEquity: 0.3},
	},
	"HINDUNILVR": {
		Sector:      "FMCG",
		Peers:       []string{"ITC", "NESTLEIND", "BRITANNIA", "DABUR"},
		IndustryAvg: Averages{PERatio: 45.0, ProfitMarginPct: 18.0, ROEPct: 28.0, DebtToEquity: 0.3},
	},
	"MARUTI": {
		Sector:      "Automobile",
		Peers:       []string{"TATAMOTORS", "M&M", "BAJAJ-AUTO", "HEROMOTOCO"},
		IndustryAvg: Averages{PERatio: 22.0, ProfitMarginPct: 6.5, ROEPct: 12.0, DebtToEquity: 0.8},
	},
}

// Lookup returns sector info for a ticker. 거래소 접미사(.NS/.BO)는 무시.
func Lookup(ticker string) (Info, bool) {
	info, ok := peerTable[normalize(ticker)]
	return info, ok
}

// Known returns whether the ticker has a curated peer group.
func Known(ticker string) bool {
	_, ok := peerTable[normalize(ticker)]
	return ok
}
