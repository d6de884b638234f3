// Package refdata supplies versioned, slowly-changing reference tables
// (statutory rates, sector financial averages, currency fallbacks) as
// immutable snapshots shared by all concurrent assessments.
package refdata

import (
	"context"
	"time"
)

// DefaultSectorCode is the documented fallback profile used when a
// taxpayer's sector has no entry in the reference tables. Peer-comparison
// criteria degrade to this profile instead of failing.
const DefaultSectorCode = "default"

// Rates holds the statutory rates for one reference period.
type Rates struct {
	LateInterestAnnualPct float64            `yaml:"late_interest_annual_pct" json:"late_interest_annual_pct"`
	DefaultPenaltyPct     float64            `yaml:"default_penalty_pct" json:"default_penalty_pct"`
	VATStandardPct        float64            `yaml:"vat_standard_pct" json:"vat_standard_pct"`
	CurrencyFallback      map[string]float64 `yaml:"currency_fallback" json:"currency_fallback,omitempty"`
}

// SectorProfile holds the financial averages for one industry classifier.
type SectorProfile struct {
	Code                string  `yaml:"code" json:"code"`
	Name                string  `yaml:"name" json:"name"`
	AvgProfitMarginPct  float64 `yaml:"avg_profit_margin_pct" json:"avg_profit_margin_pct"`
	AvgInventoryToSales float64 `yaml:"avg_inventory_to_sales" json:"avg_inventory_to_sales"`
	AvgMonthlyWage      float64 `yaml:"avg_monthly_wage" json:"avg_monthly_wage"`
}

// Snapshot is a read-only bundle of reference tables. It is replaced
// wholesale on refresh, never mutated in place.
type Snapshot struct {
	Version   string                   `yaml:"version" json:"version"`
	UpdatedAt time.Time                `yaml:"updated_at" json:"updated_at"`
	Rates     Rates                    `yaml:"rates" json:"rates"`
	Sectors   map[string]SectorProfile `yaml:"sectors" json:"sectors"`
}

// Sector resolves a sector profile by classifier code. When the code is
// unknown or empty it returns the default profile and fellBack=true.
func (s *Snapshot) Sector(code string) (SectorProfile, bool) {
	if code != "" {
		if p, ok := s.Sectors[code]; ok {
			return p, false
		}
	}
	return s.Sectors[DefaultSectorCode], true
}

// Provider supplies the current reference snapshot. Implementations must
// return a snapshot that is safe to share between goroutines without
// coordination.
type Provider interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// Builtin returns the compiled-in reference snapshot used when no reference
// files are configured. The averages are deliberately conservative so that
// peer comparisons against the fallback rarely flag on their own.
func Builtin() *Snapshot {
	return &Snapshot{
		Version:   "builtin-2026.1",
		UpdatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Rates: Rates{
			LateInterestAnnualPct: 13.0,
			DefaultPenaltyPct:     50.0,
			VATStandardPct:        27.0,
			CurrencyFallback: map[string]float64{
				"EUR": 395.0,
				"USD": 362.0,
			},
		},
		Sectors: map[string]SectorProfile{
			DefaultSectorCode: {
				Code:                DefaultSectorCode,
				Name:                "All sectors",
				AvgProfitMarginPct:  6.0,
				AvgInventoryToSales: 0.15,
				AvgMonthlyWage:      520000,
			},
			"4711": {
				Code:                "4711",
				Name:                "Retail, non-specialised stores",
				AvgProfitMarginPct:  2.5,
				AvgInventoryToSales: 0.22,
				AvgMonthlyWage:      410000,
			},
			"4120": {
				Code:                "4120",
				Name:                "Construction of buildings",
				AvgProfitMarginPct:  7.5,
				AvgInventoryToSales: 0.18,
				AvgMonthlyWage:      480000,
			},
			"6201": {
				Code:                "6201",
				Name:                "Computer programming",
				AvgProfitMarginPct:  14.0,
				AvgInventoryToSales: 0.01,
				AvgMonthlyWage:      980000,
			},
			"4941": {
				Code:                "4941",
				Name:                "Freight transport by road",
				AvgProfitMarginPct:  4.0,
				AvgInventoryToSales: 0.03,
				AvgMonthlyWage:      450000,
			},
		},
	}
}
