package model

// FeedItem is a deduplicated, severity-ranked finding derived from one or
// more failed criteria, intended for downstream reporting and dashboards.
type FeedItem struct {
	Severity            Severity `json:"severity"`
	Category            Category `json:"category"`
	Code                string   `json:"code"`
	Title               string   `json:"title"`
	CriterionID         int      `json:"criterion_id"`
	RelatedCriterionIDs []int    `json:"related_criterion_ids,omitempty"`
}
