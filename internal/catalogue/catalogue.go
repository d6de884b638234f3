// Package catalogue defines the fixed, versioned registry of audit-risk
// criteria. Each criterion carries an explicit rule-kind tag with a closed
// set of rule variants, so evaluation stays exhaustive and adding a
// criterion is a data change, not a structural rewrite.
package catalogue

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/taxrisk-cli/internal/model"
)

// RuleKind tags the evaluation rule variant of a criterion.
type RuleKind string

const (
	RuleThresholdRatio RuleKind = "threshold-ratio"
	RuleBooleanFlag    RuleKind = "boolean-flag"
	RulePeerComparison RuleKind = "peer-comparison"
	RuleFormula        RuleKind = "formula"
)

// Comparator is the declared boundary convention of a threshold rule. The
// source policy texts are inconsistent about inclusive vs. exclusive
// boundaries, so every criterion states its convention explicitly instead of
// the evaluator inferring one.
type Comparator string

const (
	CompareGT  Comparator = ">"
	CompareGTE Comparator = ">="
	CompareLT  Comparator = "<"
	CompareLTE Comparator = "<="
)

// ThresholdRule compares Σ(numerator)/Σ(denominator) against a documented
// limit. An empty denominator means the raw numerator sum is compared.
type ThresholdRule struct {
	Numerator   []string
	Denominator []string
	Comparator  Comparator
	Limit       float64
}

// FlagRule is a boolean historical-flag lookup: true fails, false passes,
// absent is NO_DATA.
type FlagRule struct {
	Field string
}

// PeerDirection states which side of the sector average is anomalous.
type PeerDirection string

const (
	PeerBelow PeerDirection = "below"
	PeerAbove PeerDirection = "above"
)

// SectorMetric names the sector average a peer rule compares against.
type SectorMetric string

const (
	MetricProfitMargin     SectorMetric = "avg_profit_margin_pct"
	MetricInventoryToSales SectorMetric = "avg_inventory_to_sales"
	MetricAvgWage          SectorMetric = "avg_monthly_wage"
)

// PeerRule compares a derived metric against a sector average with a
// tolerance band. The metric determines which snapshot fields the
// derivation needs; unknown sectors fall back to the default profile.
type PeerRule struct {
	Metric        SectorMetric
	Direction     PeerDirection
	ToleranceFrac float64
}

// Formula names for the closed predicate registry.
const (
	FormulaVATBalanceGap       = "vat_balance_gap"
	FormulaDepreciationOutlier = "depreciation_outlier"
)

// FormulaNames is the closed set of computed predicates the evaluator
// implements. Referencing any other name is a configuration error.
var FormulaNames = []string{
	FormulaVATBalanceGap,
	FormulaDepreciationOutlier,
}

// FormulaRule references a named predicate from the closed registry.
type FormulaRule struct {
	Name string
}

// SeverityRule maps a violation to a severity. Severity is a pure function
// of the deviation magnitude: when the deviation reaches EscalateAt times
// the documented limit, the escalated severity applies.
type SeverityRule struct {
	Base       model.Severity
	EscalateAt float64
	Escalated  model.Severity
}

// Text holds the localized strings for one criterion. Detail and
// Recommendation may contain {value}, {ratio}, {limit}, {sector_avg} and
// {sector} placeholders interpolated from the evidence payload.
type Text struct {
	Title          string
	Detail         string
	Recommendation string
}

// CriterionDefinition is one entry of the criterion catalogue. IDs are
// stable across catalogue versions so scores stay comparable between runs.
type CriterionDefinition struct {
	ID          int
	Code        string
	Category    model.Category
	Weight      float64
	Kind        RuleKind
	Threshold   *ThresholdRule
	Flag        *FlagRule
	Peer        *PeerRule
	Formula     *FormulaRule
	Severity    SeverityRule
	AnomalyKey  string
	SeriesField string
	LegalRefs   []string
	Text        map[string]Text
}

// Catalogue is an immutable, versioned list of criterion definitions.
type Catalogue struct {
	Version  string
	Criteria []CriterionDefinition
}

// ByID returns the definition with the given id, or nil.
func (c *Catalogue) ByID(id int) *CriterionDefinition {
	for i := range c.Criteria {
		if c.Criteria[i].ID == id {
			return &c.Criteria[i]
		}
	}
	return nil
}

// ByCode returns the definition with the given human code, or nil.
func (c *Catalogue) ByCode(code string) *CriterionDefinition {
	for i := range c.Criteria {
		if strings.EqualFold(c.Criteria[i].Code, code) {
			return &c.Criteria[i]
		}
	}
	return nil
}

// TotalWeight is the sum of every criterion weight.
func (c *Catalogue) TotalWeight() float64 {
	var sum float64
	for i := range c.Criteria {
		sum += c.Criteria[i].Weight
	}
	return sum
}

// Validate checks the catalogue for deployment-breaking problems. A broken
// catalogue must abort the whole assessment rather than produce a partial,
// misleading result.
func (c *Catalogue) Validate() error {
	if c.Version == "" {
		return eris.New("catalogue: missing version")
	}
	if len(c.Criteria) == 0 {
		return eris.New("catalogue: no criteria")
	}

	ids := make(map[int]string, len(c.Criteria))
	codes := make(map[string]int, len(c.Criteria))
	for i := range c.Criteria {
		d := &c.Criteria[i]
		if prev, dup := ids[d.ID]; dup {
			return eris.Errorf("catalogue: duplicate id %d (%s, %s)", d.ID, prev, d.Code)
		}
		ids[d.ID] = d.Code
		if d.Code == "" {
			return eris.Errorf("catalogue: criterion %d has no code", d.ID)
		}
		key := strings.ToUpper(d.Code)
		if _, dup := codes[key]; dup {
			return eris.Errorf("catalogue: duplicate code %s", d.Code)
		}
		codes[key] = d.ID
		if !d.Category.Known() {
			return eris.Errorf("catalogue: %s: unknown category %q", d.Code, d.Category)
		}
		if d.Weight <= 0 {
			return eris.Errorf("catalogue: %s: weight must be > 0", d.Code)
		}
		if d.Severity.Base == "" {
			return eris.Errorf("catalogue: %s: missing base severity", d.Code)
		}
		if d.Severity.EscalateAt > 0 && d.Severity.Escalated == "" {
			return eris.Errorf("catalogue: %s: escalation without escalated severity", d.Code)
		}
		if d.AnomalyKey == "" {
			return eris.Errorf("catalogue: %s: missing anomaly key", d.Code)
		}
		if err := validateRule(d); err != nil {
			return err
		}
		if _, ok := d.Text[DefaultLang]; !ok {
			return eris.Errorf("catalogue: %s: missing %s text", d.Code, DefaultLang)
		}
	}
	return nil
}

func validateRule(d *CriterionDefinition) error {
	switch d.Kind {
	case RuleThresholdRatio:
		if d.Threshold == nil {
			return eris.Errorf("catalogue: %s: threshold-ratio without threshold rule", d.Code)
		}
		if len(d.Threshold.Numerator) == 0 {
			return eris.Errorf("catalogue: %s: threshold rule has no numerator fields", d.Code)
		}
		switch d.Threshold.Comparator {
		case CompareGT, CompareGTE, CompareLT, CompareLTE:
		default:
			return eris.Errorf("catalogue: %s: unknown comparator %q", d.Code, d.Threshold.Comparator)
		}
	case RuleBooleanFlag:
		if d.Flag == nil || d.Flag.Field == "" {
			return eris.Errorf("catalogue: %s: boolean-flag without flag field", d.Code)
		}
	case RulePeerComparison:
		if d.Peer == nil {
			return eris.Errorf("catalogue: %s: peer-comparison without peer rule", d.Code)
		}
		switch d.Peer.Metric {
		case MetricProfitMargin, MetricInventoryToSales, MetricAvgWage:
		default:
			return eris.Errorf("catalogue: %s: unknown sector metric %q", d.Code, d.Peer.Metric)
		}
		if d.Peer.Direction != PeerBelow && d.Peer.Direction != PeerAbove {
			return eris.Errorf("catalogue: %s: unknown peer direction %q", d.Code, d.Peer.Direction)
		}
	case RuleFormula:
		if d.Formula == nil || d.Formula.Name == "" {
			return eris.Errorf("catalogue: %s: formula without name", d.Code)
		}
		known := false
		for _, n := range FormulaNames {
			if d.Formula.Name == n {
				known = true
				break
			}
		}
		if !known {
			return eris.Errorf("catalogue: %s: unknown formula %q", d.Code, d.Formula.Name)
		}
	default:
		return eris.Errorf("catalogue: %s: unknown rule kind %q", d.Code, d.Kind)
	}
	return nil
}
