package assess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/taxrisk-cli/internal/catalogue"
	"github.com/sells-group/taxrisk-cli/internal/model"
)

// failFor builds a FAIL result for one builtin criterion id.
func failFor(t *testing.T, id int, sev model.Severity) model.CriterionResult {
	t.Helper()
	def := catalogue.Builtin().ByID(id)
	require.NotNil(t, def)
	return model.CriterionResult{
		CriterionID: def.ID,
		Code:        def.Code,
		Category:    def.Category,
		Status:      model.StatusFail,
		Severity:    sev,
		Weight:      def.Weight,
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	cat := catalogue.Builtin()

	t.Run("deduplicates by anomaly with highest severity leading", func(t *testing.T) {
		t.Parallel()
		// KRG-04 and KRG-05 share the related-party exposure anomaly.
		a := &model.Assessment{Criteria: []model.CriterionResult{
			failFor(t, 4, model.SeverityHigh),
			failFor(t, 5, model.SeverityCritical),
		}}
		feed := Classify(a, cat, "en")
		require.Len(t, feed, 1)
		assert.Equal(t, 5, feed[0].CriterionID)
		assert.Equal(t, model.SeverityCritical, feed[0].Severity)
		assert.Equal(t, []int{4}, feed[0].RelatedCriterionIDs)
	})

	t.Run("severity tie keeps the lower criterion id", func(t *testing.T) {
		t.Parallel()
		a := &model.Assessment{Criteria: []model.CriterionResult{
			failFor(t, 5, model.SeverityHigh),
			failFor(t, 4, model.SeverityHigh),
		}}
		feed := Classify(a, cat, "en")
		require.Len(t, feed, 1)
		assert.Equal(t, 4, feed[0].CriterionID, "lower id leads a severity tie")
		assert.Equal(t, []int{5}, feed[0].RelatedCriterionIDs)
	})

	t.Run("distinct anomalies stay separate", func(t *testing.T) {
		t.Parallel()
		a := &model.Assessment{Criteria: []model.CriterionResult{
			failFor(t, 1, model.SeverityMedium),    // liquidity shortfall
			failFor(t, 12, model.SeverityHigh),     // tax arrears
			failFor(t, 15, model.SeverityCritical), // document fraud
		}}
		feed := Classify(a, cat, "en")
		require.Len(t, feed, 3)
	})

	t.Run("ordering is severity desc then category then id", func(t *testing.T) {
		t.Parallel()
		a := &model.Assessment{Criteria: []model.CriterionResult{
			failFor(t, 1, model.SeverityMedium),
			failFor(t, 15, model.SeverityCritical),
			failFor(t, 9, model.SeverityMedium),
			failFor(t, 12, model.SeverityHigh),
		}}
		feed := Classify(a, cat, "en")
		require.Len(t, feed, 4)
		assert.Equal(t, model.SeverityCritical, feed[0].Severity)
		assert.Equal(t, model.SeverityHigh, feed[1].Severity)
		// Two MEDIUM items: liquidity sorts before trade.
		assert.Equal(t, model.CategoryLiquidity, feed[2].Category)
		assert.Equal(t, model.CategoryTrade, feed[3].Category)
	})

	t.Run("passes and NO_DATA never reach the feed", func(t *testing.T) {
		t.Parallel()
		a := &model.Assessment{Criteria: []model.CriterionResult{
			{CriterionID: 1, Status: model.StatusPass},
			{CriterionID: 2, Status: model.StatusNoData},
		}}
		assert.Empty(t, Classify(a, cat, "en"))
	})

	t.Run("titles are localized", func(t *testing.T) {
		t.Parallel()
		a := &model.Assessment{Criteria: []model.CriterionResult{
			failFor(t, 12, model.SeverityHigh),
		}}
		en := Classify(a, cat, "en")
		hu := Classify(a, cat, "hu")
		require.Len(t, en, 1)
		require.Len(t, hu, 1)
		assert.NotEqual(t, en[0].Title, hu[0].Title)
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		t.Parallel()
		a := &model.Assessment{Criteria: []model.CriterionResult{
			failFor(t, 16, model.SeverityHigh),
			failFor(t, 17, model.SeverityCritical),
			failFor(t, 1, model.SeverityMedium),
			failFor(t, 3, model.SeverityLow),
		}}
		first := Classify(a, cat, "en")
		second := Classify(a, cat, "en")
		assert.Equal(t, first, second)
	})
}
