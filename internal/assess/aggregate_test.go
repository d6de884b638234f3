package assess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/taxrisk-cli/internal/model"
)

func result(cat model.Category, status model.Status, weight float64) model.CriterionResult {
	r := model.CriterionResult{Category: cat, Status: status, Weight: weight}
	if status == model.StatusFail {
		r.Score = weight
		r.Severity = model.SeverityMedium
	}
	return r
}

func TestRiskBand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		score float64
		want  model.RiskLevel
	}{
		{"zero", 0, model.RiskLow},
		{"just under medium", 29.99, model.RiskLow},
		{"medium boundary goes up", 30, model.RiskMedium},
		{"mid band", 45, model.RiskMedium},
		{"just under high", 59.99, model.RiskMedium},
		{"high boundary goes up", 60, model.RiskHigh},
		{"maximum", 100, model.RiskHigh},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, riskBand(tt.score))
		})
	}
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	t.Run("all pass scores zero and LOW", func(t *testing.T) {
		t.Parallel()
		results := []model.CriterionResult{
			result(model.CategoryLiquidity, model.StatusPass, 4),
			result(model.CategoryVAT, model.StatusPass, 5),
		}
		total, max, level, _ := Aggregate(results)
		assert.Zero(t, total)
		assert.Equal(t, 9.0, max)
		assert.Equal(t, model.RiskLow, level)
	})

	t.Run("all fail scores 100 and HIGH", func(t *testing.T) {
		t.Parallel()
		results := []model.CriterionResult{
			result(model.CategoryLiquidity, model.StatusFail, 4),
			result(model.CategoryVAT, model.StatusFail, 5),
		}
		total, _, level, _ := Aggregate(results)
		assert.Equal(t, 100.0, total)
		assert.Equal(t, model.RiskHigh, level)
	})

	t.Run("NO_DATA is excluded from the denominator", func(t *testing.T) {
		t.Parallel()
		// 4 of 8 evaluable weight failed: 50, not 4 of 20.
		results := []model.CriterionResult{
			result(model.CategoryLiquidity, model.StatusFail, 4),
			result(model.CategoryVAT, model.StatusPass, 4),
			result(model.CategoryTrade, model.StatusNoData, 12),
		}
		total, max, level, _ := Aggregate(results)
		assert.Equal(t, 50.0, total)
		assert.Equal(t, 8.0, max)
		assert.Equal(t, model.RiskMedium, level)
	})

	t.Run("all NO_DATA is NO_DATA not LOW", func(t *testing.T) {
		t.Parallel()
		results := []model.CriterionResult{
			result(model.CategoryLiquidity, model.StatusNoData, 4),
			result(model.CategoryVAT, model.StatusNoData, 5),
		}
		total, max, level, categories := Aggregate(results)
		assert.Zero(t, total)
		assert.Zero(t, max)
		assert.Equal(t, model.RiskNoData, level)
		for _, cs := range categories {
			assert.False(t, cs.HasData)
		}
	})

	t.Run("empty results are NO_DATA", func(t *testing.T) {
		t.Parallel()
		_, _, level, _ := Aggregate(nil)
		assert.Equal(t, model.RiskNoData, level)
	})

	t.Run("category subtotals re-base per category", func(t *testing.T) {
		t.Parallel()
		results := []model.CriterionResult{
			result(model.CategoryLiquidity, model.StatusFail, 4),
			result(model.CategoryLiquidity, model.StatusPass, 4),
			result(model.CategoryVAT, model.StatusNoData, 5),
			result(model.CategoryTrade, model.StatusPass, 3),
		}
		_, _, _, categories := Aggregate(results)

		byCat := make(map[model.Category]model.CategoryScore)
		for _, cs := range categories {
			byCat[cs.Category] = cs
		}

		liq := byCat[model.CategoryLiquidity]
		require.True(t, liq.HasData)
		assert.Equal(t, 50.0, liq.Score)
		assert.Equal(t, 8.0, liq.MaxScore)

		assert.False(t, byCat[model.CategoryVAT].HasData)

		trade := byCat[model.CategoryTrade]
		require.True(t, trade.HasData)
		assert.Zero(t, trade.Score)
	})

	t.Run("category list is complete and ordered", func(t *testing.T) {
		t.Parallel()
		_, _, _, categories := Aggregate([]model.CriterionResult{
			result(model.CategoryLiquidity, model.StatusPass, 1),
		})
		require.Len(t, categories, len(model.Categories))
		for i, cs := range categories {
			assert.Equal(t, model.Categories[i], cs.Category)
		}
	})

	t.Run("order of results does not matter", func(t *testing.T) {
		t.Parallel()
		a := []model.CriterionResult{
			result(model.CategoryLiquidity, model.StatusFail, 4),
			result(model.CategoryVAT, model.StatusPass, 5),
			result(model.CategoryTrade, model.StatusNoData, 3),
		}
		b := []model.CriterionResult{a[2], a[0], a[1]}

		aTotal, aMax, aLevel, _ := Aggregate(a)
		bTotal, bMax, bLevel, _ := Aggregate(b)
		assert.Equal(t, aTotal, bTotal)
		assert.Equal(t, aMax, bMax)
		assert.Equal(t, aLevel, bLevel)
	})
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	t.Run("no data summary", func(t *testing.T) {
		t.Parallel()
		got := Summarize(nil, 0, model.RiskNoData)
		assert.Contains(t, got, "NO_DATA")
	})

	t.Run("clean summary", func(t *testing.T) {
		t.Parallel()
		results := []model.CriterionResult{
			result(model.CategoryLiquidity, model.StatusPass, 4),
			result(model.CategoryVAT, model.StatusNoData, 5),
		}
		got := Summarize(results, 0, model.RiskLow)
		assert.Contains(t, got, "1 of 2 criteria evaluated")
		assert.Contains(t, got, "none failed")
		assert.Contains(t, got, "LOW")
	})

	t.Run("failure summary counts by severity", func(t *testing.T) {
		t.Parallel()
		crit := result(model.CategoryTaxSocial, model.StatusFail, 8)
		crit.Severity = model.SeverityCritical
		med := result(model.CategoryVAT, model.StatusFail, 4)
		results := []model.CriterionResult{
			crit,
			med,
			result(model.CategoryLiquidity, model.StatusPass, 4),
		}
		got := Summarize(results, 75.0, model.RiskHigh)
		assert.Contains(t, got, "2 failed")
		assert.Contains(t, got, "1 CRITICAL")
		assert.Contains(t, got, "1 MEDIUM")
		assert.Contains(t, got, "score 75.0/100")
	})
}
