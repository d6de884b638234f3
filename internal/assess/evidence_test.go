package assess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/taxrisk-cli/internal/model"
	"github.com/sells-group/taxrisk-cli/internal/refdata"
)

func TestAttachEvidence(t *testing.T) {
	t.Parallel()

	refs := refdata.Builtin()

	t.Run("non-FAIL results are returned untouched", func(t *testing.T) {
		t.Parallel()
		def := testDef(t, "KRG-04")
		snap := testSnap(t, map[string]any{
			"related_party_receivable": 10000,
			"equity":                   10000,
		})
		res := Evaluate(def, snap, refs)
		require.Equal(t, model.StatusPass, res.Status)

		out := AttachEvidence(res, def, snap, "en")
		assert.Nil(t, out.Evidence)
		assert.Empty(t, out.Detail)
	})

	t.Run("FAIL captures literal inputs", func(t *testing.T) {
		t.Parallel()
		def := testDef(t, "KRG-04")
		snap := testSnap(t, map[string]any{
			"related_party_receivable": 300000,
			"equity":                   90000,
		})
		out := AttachEvidence(Evaluate(def, snap, refs), def, snap, "en")

		require.Equal(t, model.StatusFail, out.Status)
		require.NotNil(t, out.Evidence)
		assert.Equal(t, 300000.0, out.Evidence.Inputs["related_party_receivable"])
		assert.Equal(t, 90000.0, out.Evidence.Inputs["equity"])
		require.NotNil(t, out.Evidence.Ratio)
		assert.InDelta(t, 3.33, *out.Evidence.Ratio, 0.01)
	})

	t.Run("detail interpolates evidence values", func(t *testing.T) {
		t.Parallel()
		def := testDef(t, "KRG-04")
		snap := testSnap(t, map[string]any{
			"related_party_receivable": 300000,
			"equity":                   90000,
		})
		out := AttachEvidence(Evaluate(def, snap, refs), def, snap, "en")

		assert.NotEmpty(t, out.Detail)
		assert.NotContains(t, out.Detail, "{ratio}")
		assert.NotContains(t, out.Detail, "{limit}")
		assert.NotEmpty(t, out.Recommendation)
	})

	t.Run("localized detail follows the requested language", func(t *testing.T) {
		t.Parallel()
		def := testDef(t, "KRG-04")
		snap := testSnap(t, map[string]any{
			"related_party_receivable": 300000,
			"equity":                   90000,
		})
		en := AttachEvidence(Evaluate(def, snap, refs), def, snap, "en")
		hu := AttachEvidence(Evaluate(def, snap, refs), def, snap, "hu")
		assert.NotEqual(t, en.Detail, hu.Detail)
	})

	t.Run("series field attaches labelled points", func(t *testing.T) {
		t.Parallel()
		def := testDef(t, "KRG-07") // carries the monthly VAT carry-forward series
		snap := testSnap(t, map[string]any{
			"vat_carry_forward":         60000,
			"net_sales":                 100000,
			"vat_carry_forward_monthly": []any{10000.0, 30000.0, 60000.0},
		})
		out := AttachEvidence(Evaluate(def, snap, refs), def, snap, "en")

		require.Equal(t, model.StatusFail, out.Status)
		require.NotNil(t, out.Evidence)
		require.Len(t, out.Evidence.Series, 3)
		assert.Equal(t, "m01", out.Evidence.Series[0].Label)
		assert.Equal(t, 60000.0, out.Evidence.Series[2].Value)
	})

	t.Run("absent series is simply omitted", func(t *testing.T) {
		t.Parallel()
		def := testDef(t, "KRG-07")
		snap := testSnap(t, map[string]any{
			"vat_carry_forward": 60000,
			"net_sales":         100000,
		})
		out := AttachEvidence(Evaluate(def, snap, refs), def, snap, "en")
		require.Equal(t, model.StatusFail, out.Status)
		assert.Empty(t, out.Evidence.Series)
	})

	t.Run("does not mutate the input result", func(t *testing.T) {
		t.Parallel()
		def := testDef(t, "KRG-04")
		snap := testSnap(t, map[string]any{
			"related_party_receivable": 300000,
			"equity":                   90000,
		})
		res := Evaluate(def, snap, refs)
		before := len(res.Evidence.Inputs)

		_ = AttachEvidence(res, def, snap, "en")
		assert.Equal(t, before, len(res.Evidence.Inputs))
		assert.Empty(t, res.Detail)
	})
}
