package assess

import (
	"fmt"

	"github.com/sells-group/taxrisk-cli/internal/model"
)

// Risk bands. Values are normalized 0-100 scores; a value landing exactly on
// a shared boundary belongs to the higher band, so 30.00 is MEDIUM and 60.00
// is HIGH.
const (
	bandMediumFloor = 30
	bandHighFloor   = 60
)

// riskBand maps a normalized score to its band.
func riskBand(score float64) model.RiskLevel {
	switch {
	case score >= bandHighFloor:
		return model.RiskHigh
	case score >= bandMediumFloor:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

// Aggregate combines per-criterion results into the overall totals, the
// per-category subtotals and the risk level. Scores are re-based on the
// weight sum of non-NO_DATA criteria so sparse input is not penalized as if
// it were clean — and, when nothing at all could be evaluated, the result is
// an explicit NO_DATA state rather than a misleading zero.
func Aggregate(results []model.CriterionResult) (total, max float64, level model.RiskLevel, categories []model.CategoryScore) {
	var failWeight, baseWeight float64
	catFail := make(map[model.Category]float64)
	catBase := make(map[model.Category]float64)

	for i := range results {
		r := &results[i]
		if r.Status == model.StatusNoData {
			continue
		}
		baseWeight += r.Weight
		catBase[r.Category] += r.Weight
		if r.Status == model.StatusFail {
			failWeight += r.Weight
			catFail[r.Category] += r.Weight
		}
	}

	for _, cat := range model.Categories {
		base, ok := catBase[cat]
		cs := model.CategoryScore{Category: cat}
		if ok && base > 0 {
			cs.HasData = true
			cs.MaxScore = base
			cs.Score = model.Round2(catFail[cat] / base * 100)
		}
		categories = append(categories, cs)
	}

	if baseWeight == 0 {
		return 0, 0, model.RiskNoData, categories
	}

	total = model.Round2(failWeight / baseWeight * 100)
	return total, baseWeight, riskBand(total), categories
}

// Summarize renders the one-line human summary of an aggregated run.
func Summarize(results []model.CriterionResult, total float64, level model.RiskLevel) string {
	if level == model.RiskNoData {
		return "no criteria could be evaluated for this period; overall state NO_DATA"
	}

	evaluated, failed := 0, 0
	bySeverity := make(map[model.Severity]int)
	for i := range results {
		if results[i].Status == model.StatusNoData {
			continue
		}
		evaluated++
		if results[i].Status == model.StatusFail {
			failed++
			bySeverity[results[i].Severity]++
		}
	}

	if failed == 0 {
		return fmt.Sprintf("%d of %d criteria evaluated, none failed; risk %s (score %.1f/100)",
			evaluated, len(results), level, total)
	}

	sevParts := ""
	for _, sev := range []model.Severity{model.SeverityCritical, model.SeverityHigh, model.SeverityMedium, model.SeverityLow, model.SeverityInfo} {
		if n := bySeverity[sev]; n > 0 {
			if sevParts != "" {
				sevParts += ", "
			}
			sevParts += fmt.Sprintf("%d %s", n, sev)
		}
	}
	return fmt.Sprintf("%d of %d criteria evaluated, %d failed (%s); risk %s (score %.1f/100)",
		evaluated, len(results), failed, sevParts, level, total)
}
