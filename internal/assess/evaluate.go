// Package assess implements the audit-risk engine: per-criterion evaluation,
// score aggregation, evidence assembly and the severity-ranked finding feed.
package assess

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sells-group/taxrisk-cli/internal/catalogue"
	"github.com/sells-group/taxrisk-cli/internal/model"
	"github.com/sells-group/taxrisk-cli/internal/refdata"
)

// Evaluate runs one criterion against one snapshot. It is a pure function:
// it never mutates its inputs, never panics on sparse data, and returns
// NO_DATA whenever a required field is absent or malformed.
func Evaluate(def *catalogue.CriterionDefinition, snap *model.TaxpayerSnapshot, refs *refdata.Snapshot) model.CriterionResult {
	res := model.CriterionResult{
		CriterionID: def.ID,
		Code:        def.Code,
		Category:    def.Category,
		Weight:      def.Weight,
		LegalRefs:   def.LegalRefs,
	}

	switch def.Kind {
	case catalogue.RuleThresholdRatio:
		evalThreshold(&res, def, snap)
	case catalogue.RuleBooleanFlag:
		evalFlag(&res, def, snap)
	case catalogue.RulePeerComparison:
		evalPeer(&res, def, snap, refs)
	case catalogue.RuleFormula:
		evalFormula(&res, def, snap)
	default:
		// Validate() rejects unknown kinds before evaluation can see them.
		noData(&res, fmt.Sprintf("unknown rule kind %q", def.Kind))
	}
	return res
}

// noData finalizes a result as NO_DATA with a diagnostic note. NO_DATA
// results carry score 0 and are excluded from the score denominator.
func noData(res *model.CriterionResult, diagnostic string) {
	res.Status = model.StatusNoData
	res.Score = 0
	res.Diagnostic = diagnostic
}

func pass(res *model.CriterionResult) {
	res.Status = model.StatusPass
	res.Score = 0
}

func fail(res *model.CriterionResult, rule catalogue.SeverityRule, deviation float64, ev *model.Evidence) {
	res.Status = model.StatusFail
	res.Severity = severityFor(rule, deviation)
	res.Score = res.Weight
	res.Evidence = ev
}

// severityFor maps a deviation magnitude to a severity. Pure function of
// the rule and the deviation; evaluation order never plays a role.
func severityFor(rule catalogue.SeverityRule, deviation float64) model.Severity {
	if rule.EscalateAt > 0 && deviation >= rule.EscalateAt {
		return rule.Escalated
	}
	return rule.Base
}

// sumFields adds up the named snapshot fields, reporting which are missing
// or malformed. Zero is a legitimate value; only absence and garbage make a
// field unusable.
func sumFields(snap *model.TaxpayerSnapshot, keys []string) (float64, []string, []string) {
	var sum float64
	var missing, malformed []string
	for _, key := range keys {
		v, state := snap.Amount(key)
		switch state {
		case model.FieldPresent:
			sum += v
		case model.FieldMissing:
			missing = append(missing, key)
		case model.FieldMalformed:
			malformed = append(malformed, key)
		}
	}
	return model.Round2(sum), missing, malformed
}

func fieldDiagnostic(missing, malformed []string) string {
	var parts []string
	if len(missing) > 0 {
		sort.Strings(missing)
		parts = append(parts, "missing: "+strings.Join(missing, ", "))
	}
	if len(malformed) > 0 {
		sort.Strings(malformed)
		parts = append(parts, "malformed: "+strings.Join(malformed, ", "))
	}
	return strings.Join(parts, "; ")
}

func evalThreshold(res *model.CriterionResult, def *catalogue.CriterionDefinition, snap *model.TaxpayerSnapshot) {
	rule := def.Threshold

	num, missing, malformed := sumFields(snap, rule.Numerator)
	if len(missing)+len(malformed) > 0 {
		noData(res, fieldDiagnostic(missing, malformed))
		return
	}

	value := num
	if len(rule.Denominator) > 0 {
		den, dMissing, dMalformed := sumFields(snap, rule.Denominator)
		if len(dMissing)+len(dMalformed) > 0 {
			noData(res, fieldDiagnostic(dMissing, dMalformed))
			return
		}
		if den == 0 {
			noData(res, "denominator is zero; ratio undefined")
			return
		}
		value = num / den
	}

	if !compare(value, rule.Comparator, rule.Limit) {
		pass(res)
		return
	}

	limit := rule.Limit
	ev := &model.Evidence{
		Ratio:      ptr(value),
		Limit:      &limit,
		Comparator: string(rule.Comparator),
	}
	fail(res, def.Severity, thresholdDeviation(rule.Comparator, value, rule.Limit), ev)
}

// compare applies the criterion's declared boundary convention literally.
// Inclusive vs. exclusive is part of the definition, never inferred.
func compare(value float64, cmp catalogue.Comparator, limit float64) bool {
	switch cmp {
	case catalogue.CompareGT:
		return value > limit
	case catalogue.CompareGTE:
		return value >= limit
	case catalogue.CompareLT:
		return value < limit
	case catalogue.CompareLTE:
		return value <= limit
	default:
		return false
	}
}

// thresholdDeviation expresses how far past the boundary a value landed, as
// a multiple of the limit. Limits of zero cannot express a multiple, so they
// never escalate.
func thresholdDeviation(cmp catalogue.Comparator, value, limit float64) float64 {
	if limit == 0 {
		return 0
	}
	switch cmp {
	case catalogue.CompareGT, catalogue.CompareGTE:
		return value / limit
	default:
		if value <= 0 {
			return math.Inf(1)
		}
		return limit / value
	}
}

func evalFlag(res *model.CriterionResult, def *catalogue.CriterionDefinition, snap *model.TaxpayerSnapshot) {
	set, state := snap.Flag(def.Flag.Field)
	switch state {
	case model.FieldMissing:
		noData(res, "missing: "+def.Flag.Field)
		return
	case model.FieldMalformed:
		noData(res, "malformed: "+def.Flag.Field)
		return
	}
	if !set {
		pass(res)
		return
	}
	fail(res, def.Severity, 0, &model.Evidence{
		Inputs: map[string]float64{def.Flag.Field: 1},
	})
}

func evalPeer(res *model.CriterionResult, def *catalogue.CriterionDefinition, snap *model.TaxpayerSnapshot, refs *refdata.Snapshot) {
	rule := def.Peer

	value, diag, ok := peerMetric(rule.Metric, snap)
	if !ok {
		noData(res, diag)
		return
	}

	profile, _ := refs.Sector(snap.SectorCode())
	avg := sectorAverage(rule.Metric, profile)
	if avg <= 0 {
		noData(res, fmt.Sprintf("sector %s has no usable average for %s", profile.Code, rule.Metric))
		return
	}

	var boundary float64
	var cmp catalogue.Comparator
	if rule.Direction == catalogue.PeerBelow {
		boundary = model.Round2(avg * (1 - rule.ToleranceFrac))
		cmp = catalogue.CompareLT
	} else {
		boundary = model.Round2(avg * (1 + rule.ToleranceFrac))
		cmp = catalogue.CompareGT
	}

	if !compare(value, cmp, boundary) {
		pass(res)
		return
	}

	ev := &model.Evidence{
		Ratio:      ptr(value),
		Limit:      &boundary,
		Comparator: string(cmp),
		SectorCode: profile.Code,
		SectorAvg:  ptr(avg),
	}
	fail(res, def.Severity, thresholdDeviation(cmp, value, boundary), ev)
}

// peerMetric derives the comparable metric for a peer rule. Each metric
// documents its own required fields.
func peerMetric(metric catalogue.SectorMetric, snap *model.TaxpayerSnapshot) (float64, string, bool) {
	switch metric {
	case catalogue.MetricProfitMargin:
		netSales, nState := snap.Amount(model.FieldNetSales)
		cost, cState := snap.Amount(model.FieldCostOfSales)
		expenses, eState := snap.Amount(model.FieldOperatingExpenses)
		var missing, malformed []string
		for _, f := range []struct {
			key   string
			state model.FieldState
		}{
			{model.FieldNetSales, nState},
			{model.FieldCostOfSales, cState},
			{model.FieldOperatingExpenses, eState},
		} {
			switch f.state {
			case model.FieldMissing:
				missing = append(missing, f.key)
			case model.FieldMalformed:
				malformed = append(malformed, f.key)
			}
		}
		if len(missing)+len(malformed) > 0 {
			return 0, fieldDiagnostic(missing, malformed), false
		}
		if netSales == 0 {
			return 0, "net_sales is zero; margin undefined", false
		}
		return model.Round2((netSales - cost - expenses) / netSales * 100), "", true

	case catalogue.MetricInventoryToSales:
		inv, vState := snap.Amount(model.FieldInventory)
		if vState != model.FieldPresent {
			return 0, model.FieldInventory + " " + vState.String(), false
		}
		netSales, sState := snap.Amount(model.FieldNetSales)
		if sState != model.FieldPresent {
			return 0, model.FieldNetSales + " " + sState.String(), false
		}
		if netSales == 0 {
			return 0, "net_sales is zero; ratio undefined", false
		}
		return model.Round2(inv / netSales), "", true

	case catalogue.MetricAvgWage:
		wage, state := snap.Amount(model.FieldAvgWage)
		if state != model.FieldPresent {
			return 0, model.FieldAvgWage + " " + state.String(), false
		}
		return wage, "", true

	default:
		return 0, fmt.Sprintf("unknown sector metric %q", metric), false
	}
}

func sectorAverage(metric catalogue.SectorMetric, p refdata.SectorProfile) float64 {
	switch metric {
	case catalogue.MetricProfitMargin:
		return p.AvgProfitMarginPct
	case catalogue.MetricInventoryToSales:
		return p.AvgInventoryToSales
	case catalogue.MetricAvgWage:
		return p.AvgMonthlyWage
	default:
		return 0
	}
}

// vatGapTolerance is the documented fraction of the declared amount within
// which ledger and declaration are considered reconciled.
const vatGapTolerance = 0.10

// depreciation outside this band of gross fixed assets is implausible.
const (
	depreciationFloor = 0.01
	depreciationCeil  = 0.50
)

func evalFormula(res *model.CriterionResult, def *catalogue.CriterionDefinition, snap *model.TaxpayerSnapshot) {
	switch def.Formula.Name {
	case catalogue.FormulaVATBalanceGap:
		evalVATBalanceGap(res, def, snap)
	case catalogue.FormulaDepreciationOutlier:
		evalDepreciationOutlier(res, def, snap)
	default:
		noData(res, fmt.Sprintf("unknown formula %q", def.Formula.Name))
	}
}

func evalVATBalanceGap(res *model.CriterionResult, def *catalogue.CriterionDefinition, snap *model.TaxpayerSnapshot) {
	payable, pState := snap.Amount(model.FieldVATPayable)
	if pState != model.FieldPresent {
		noData(res, model.FieldVATPayable+" "+pState.String())
		return
	}
	declared, dState := snap.Amount(model.FieldVATDeclared)
	if dState != model.FieldPresent {
		noData(res, model.FieldVATDeclared+" "+dState.String())
		return
	}

	var gap float64
	switch {
	case declared == 0 && payable == 0:
		pass(res)
		return
	case declared == 0:
		gap = math.Inf(1)
	default:
		gap = model.Round2(math.Abs(payable-declared) / math.Abs(declared))
	}

	if gap <= vatGapTolerance {
		pass(res)
		return
	}

	tolerance := vatGapTolerance
	ev := &model.Evidence{
		Ratio:      ptr(gap),
		Limit:      &tolerance,
		Comparator: string(catalogue.CompareGT),
	}
	fail(res, def.Severity, gap/vatGapTolerance, ev)
}

func evalDepreciationOutlier(res *model.CriterionResult, def *catalogue.CriterionDefinition, snap *model.TaxpayerSnapshot) {
	dep, dState := snap.Amount(model.FieldDepreciation)
	if dState != model.FieldPresent {
		noData(res, model.FieldDepreciation+" "+dState.String())
		return
	}
	gross, gState := snap.Amount(model.FieldFixedAssetsGross)
	if gState != model.FieldPresent {
		noData(res, model.FieldFixedAssetsGross+" "+gState.String())
		return
	}
	if gross == 0 {
		noData(res, "fixed_assets_gross is zero; rate undefined")
		return
	}

	rate := model.Round2(dep / gross)
	if rate >= depreciationFloor && rate <= depreciationCeil {
		pass(res)
		return
	}

	ceil := depreciationCeil
	ev := &model.Evidence{
		Ratio:      ptr(rate),
		Limit:      &ceil,
		Comparator: "outside",
	}
	fail(res, def.Severity, 0, ev)
}

func ptr(v float64) *float64 { return &v }
