package assess

import (
	"fmt"

	"github.com/sells-group/taxrisk-cli/internal/catalogue"
	"github.com/sells-group/taxrisk-cli/internal/model"
)

// AttachEvidence returns an augmented copy of a criterion result. For FAIL
// results it captures the literal input values that produced the failure,
// an optional supporting time series, and the localized detail and
// recommendation texts. The payload is self-sufficient: the documented rule
// plus this evidence reproduce the decision without re-running the engine.
// The input result and snapshot are never mutated.
func AttachEvidence(res model.CriterionResult, def *catalogue.CriterionDefinition, snap *model.TaxpayerSnapshot, lang string) model.CriterionResult {
	if res.Status != model.StatusFail {
		return res
	}

	ev := res.Evidence.Clone()
	if ev == nil {
		ev = &model.Evidence{}
	}

	if ev.Inputs == nil {
		ev.Inputs = make(map[string]float64)
	}
	for _, key := range ruleFields(def) {
		if v, state := snap.Amount(key); state == model.FieldPresent {
			ev.Inputs[key] = v
		}
	}

	if def.SeriesField != "" {
		if series, state := snap.Series(def.SeriesField); state == model.FieldPresent {
			points := make([]model.EvidencePoint, len(series))
			for i, v := range series {
				points[i] = model.EvidencePoint{Label: fmt.Sprintf("m%02d", i+1), Value: v}
			}
			ev.Series = points
		}
	}

	res.Evidence = ev

	text := def.Localize(lang)
	repl := evidenceRepl(ev)
	res.Detail = catalogue.Interpolate(text.Detail, repl)
	res.Recommendation = catalogue.Interpolate(text.Recommendation, repl)
	return res
}

// ruleFields lists the snapshot fields a rule reads, for evidence capture.
func ruleFields(def *catalogue.CriterionDefinition) []string {
	switch def.Kind {
	case catalogue.RuleThresholdRatio:
		fields := append([]string(nil), def.Threshold.Numerator...)
		return append(fields, def.Threshold.Denominator...)
	case catalogue.RulePeerComparison:
		switch def.Peer.Metric {
		case catalogue.MetricProfitMargin:
			return []string{model.FieldNetSales, model.FieldCostOfSales, model.FieldOperatingExpenses}
		case catalogue.MetricInventoryToSales:
			return []string{model.FieldInventory, model.FieldNetSales}
		case catalogue.MetricAvgWage:
			return []string{model.FieldAvgWage}
		}
	case catalogue.RuleFormula:
		switch def.Formula.Name {
		case catalogue.FormulaVATBalanceGap:
			return []string{model.FieldVATPayable, model.FieldVATDeclared}
		case catalogue.FormulaDepreciationOutlier:
			return []string{model.FieldDepreciation, model.FieldFixedAssetsGross}
		}
	}
	return nil
}

func evidenceRepl(ev *model.Evidence) map[string]string {
	repl := make(map[string]string, 5)
	if ev.Ratio != nil {
		repl["ratio"] = fmt.Sprintf("%.2f", *ev.Ratio)
		repl["value"] = fmt.Sprintf("%.2f", *ev.Ratio)
	}
	if ev.Limit != nil {
		repl["limit"] = fmt.Sprintf("%.2f", *ev.Limit)
	}
	if ev.SectorAvg != nil {
		repl["sector_avg"] = fmt.Sprintf("%.2f", *ev.SectorAvg)
	}
	if ev.SectorCode != "" {
		repl["sector"] = ev.SectorCode
	}
	return repl
}
