package model

import "time"

// Status is the terminal per-criterion outcome of one evaluation run.
type Status string

const (
	StatusPass   Status = "PASS"
	StatusFail   Status = "FAIL"
	StatusNoData Status = "NO_DATA"
)

// Severity grades a failed criterion.
type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

var severityRank = map[Severity]int{
	SeverityInfo:     0,
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// Rank returns the ordering weight of a severity; CRITICAL ranks highest.
func (s Severity) Rank() int {
	return severityRank[s]
}

// RiskLevel is the overall band an assessment lands in. NO_DATA is distinct
// from LOW: a score of 0 on real data means "evaluated clean", while NO_DATA
// means nothing could be evaluated at all.
type RiskLevel string

const (
	RiskNoData RiskLevel = "NO_DATA"
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Category is one of the fixed criterion groupings.
type Category string

const (
	CategoryLiquidity    Category = "liquidity"
	CategoryRelatedParty Category = "related_party"
	CategoryVAT          Category = "vat"
	CategoryTrade        Category = "trade"
	CategoryTaxSocial    Category = "tax_social"
	CategoryCapital      Category = "capital"
	CategoryIncome       Category = "income_expense"
	CategoryInventory    Category = "inventory"
	CategoryFixedAssets  Category = "fixed_assets"
)

// Categories lists every known category in catalogue order.
var Categories = []Category{
	CategoryLiquidity,
	CategoryRelatedParty,
	CategoryVAT,
	CategoryTrade,
	CategoryTaxSocial,
	CategoryCapital,
	CategoryIncome,
	CategoryInventory,
	CategoryFixedAssets,
}

// Known reports whether c is one of the fixed categories.
func (c Category) Known() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

// EvidencePoint is one labelled value in an evidence time series.
type EvidencePoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Evidence carries the literal inputs and the derived comparison that drove a
// criterion result. A reviewer given only this payload and the criterion's
// documented rule can reproduce the PASS/FAIL decision by hand.
type Evidence struct {
	Inputs     map[string]float64 `json:"inputs,omitempty"`
	Ratio      *float64           `json:"ratio,omitempty"`
	Limit      *float64           `json:"limit,omitempty"`
	Comparator string             `json:"comparator,omitempty"`
	SectorCode string             `json:"sector_code,omitempty"`
	SectorAvg  *float64           `json:"sector_avg,omitempty"`
	Series     []EvidencePoint    `json:"series,omitempty"`
}

// Clone returns a deep copy so augmenting evidence never mutates the source.
func (e *Evidence) Clone() *Evidence {
	if e == nil {
		return nil
	}
	out := *e
	if e.Inputs != nil {
		out.Inputs = make(map[string]float64, len(e.Inputs))
		for k, v := range e.Inputs {
			out.Inputs[k] = v
		}
	}
	if e.Series != nil {
		out.Series = append([]EvidencePoint(nil), e.Series...)
	}
	return &out
}

// CriterionResult is the outcome of evaluating one criterion against one
// snapshot. Score is 0 for PASS and NO_DATA, the criterion weight for FAIL.
type CriterionResult struct {
	CriterionID    int       `json:"criterion_id"`
	Code           string    `json:"code"`
	Category       Category  `json:"category"`
	Status         Status    `json:"status"`
	Severity       Severity  `json:"severity,omitempty"`
	Score          float64   `json:"score"`
	Weight         float64   `json:"weight"`
	Detail         string    `json:"detail,omitempty"`
	Diagnostic     string    `json:"diagnostic,omitempty"`
	Evidence       *Evidence `json:"evidence,omitempty"`
	Recommendation string    `json:"recommendation,omitempty"`
	LegalRefs      []string  `json:"legal_refs,omitempty"`
}

// CategoryScore is the re-based subtotal for one category. HasData is false
// when every criterion in the category was NO_DATA, in which case Score and
// MaxScore are zero and carry no meaning.
type CategoryScore struct {
	Category Category `json:"category"`
	Score    float64  `json:"score"`
	MaxScore float64  `json:"max_score"`
	HasData  bool     `json:"has_data"`
}

// Assessment is the complete output of one evaluation run. It is created
// once, never mutated afterwards, and safe to serialize and discard.
type Assessment struct {
	ID               string            `json:"id"`
	TaxpayerRef      string            `json:"taxpayer_ref"`
	PeriodRef        string            `json:"period_ref"`
	AssessedAt       time.Time         `json:"assessed_at"`
	CatalogueVersion string            `json:"catalogue_version"`
	RefDataVersion   string            `json:"refdata_version"`
	RefDataAsOf      time.Time         `json:"refdata_as_of"`
	Criteria         []CriterionResult `json:"criteria"`
	Categories       []CategoryScore   `json:"categories"`
	TotalScore       float64           `json:"total_score"`
	MaxScore         float64           `json:"max_score"`
	RiskLevel        RiskLevel         `json:"risk_level"`
	Summary          string            `json:"summary"`
}

// FailedCount returns the number of FAIL results, optionally at or above a
// minimum severity.
func (a *Assessment) FailedCount(min Severity) int {
	n := 0
	for i := range a.Criteria {
		if a.Criteria[i].Status == StatusFail && a.Criteria[i].Severity.Rank() >= min.Rank() {
			n++
		}
	}
	return n
}
