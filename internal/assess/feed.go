package assess

import (
	"sort"

	"github.com/sells-group/taxrisk-cli/internal/catalogue"
	"github.com/sells-group/taxrisk-cli/internal/model"
)

// Classify maps an assessment's FAIL results into a prioritized,
// deduplicated finding feed. Criteria flagging the same underlying anomaly
// collapse into one item carrying the highest severity, with the rest
// cross-referenced. Ordering is severity descending, then category, then
// criterion id, so identical input always yields identical ordering.
func Classify(a *model.Assessment, cat *catalogue.Catalogue, lang string) []model.FeedItem {
	type group struct {
		lead    *model.CriterionResult
		related []int
	}
	groups := make(map[string]*group)
	var order []string

	for i := range a.Criteria {
		r := &a.Criteria[i]
		if r.Status != model.StatusFail {
			continue
		}
		def := cat.ByID(r.CriterionID)
		if def == nil {
			continue
		}
		g, ok := groups[def.AnomalyKey]
		if !ok {
			groups[def.AnomalyKey] = &group{lead: r}
			order = append(order, def.AnomalyKey)
			continue
		}
		// Keep the highest-severity instance on top; ties keep the lower
		// criterion id so repeated runs pick the same lead.
		if r.Severity.Rank() > g.lead.Severity.Rank() ||
			(r.Severity.Rank() == g.lead.Severity.Rank() && r.CriterionID < g.lead.CriterionID) {
			g.related = append(g.related, g.lead.CriterionID)
			g.lead = r
		} else {
			g.related = append(g.related, r.CriterionID)
		}
	}

	items := make([]model.FeedItem, 0, len(groups))
	for _, key := range order {
		g := groups[key]
		def := cat.ByID(g.lead.CriterionID)
		sort.Ints(g.related)
		items = append(items, model.FeedItem{
			Severity:            g.lead.Severity,
			Category:            g.lead.Category,
			Code:                g.lead.Code,
			Title:               def.Localize(lang).Title,
			CriterionID:         g.lead.CriterionID,
			RelatedCriterionIDs: g.related,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Severity.Rank() != items[j].Severity.Rank() {
			return items[i].Severity.Rank() > items[j].Severity.Rank()
		}
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].CriterionID < items[j].CriterionID
	})
	return items
}
