package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaxpayerSnapshot(t *testing.T) {
	t.Parallel()

	snap := NewTaxpayerSnapshot("HU12345678", "2025", map[string]any{
		"cash_balance":        1234.567,
		"current_liabilities": 5000,
		"has_tax_arrears":     true,
		"sector_code":         "4711",
		"net_sales":           "250000.50",
		"monthly":             []any{100.0, 200.0, 300.0},
		"garbage":             "not a number but text",
		"empty":               "",
		"absent":              nil,
	})

	t.Run("round trip identity", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "HU12345678", snap.TaxpayerRef)
		assert.Equal(t, "2025", snap.PeriodRef)
	})

	t.Run("amounts round to 2 decimals", func(t *testing.T) {
		t.Parallel()
		v, state := snap.Amount("cash_balance")
		assert.Equal(t, FieldPresent, state)
		assert.Equal(t, 1234.57, v)
	})

	t.Run("integers coerce to numbers", func(t *testing.T) {
		t.Parallel()
		v, state := snap.Amount("current_liabilities")
		assert.Equal(t, FieldPresent, state)
		assert.Equal(t, 5000.0, v)
	})

	t.Run("numeric strings parse as amounts", func(t *testing.T) {
		t.Parallel()
		v, state := snap.Amount("net_sales")
		assert.Equal(t, FieldPresent, state)
		assert.Equal(t, 250000.50, v)
	})

	t.Run("sector code stays text", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "4711", snap.SectorCode())
		_, state := snap.Amount("sector_code")
		assert.Equal(t, FieldMalformed, state)
	})

	t.Run("flags", func(t *testing.T) {
		t.Parallel()
		v, state := snap.Flag("has_tax_arrears")
		assert.Equal(t, FieldPresent, state)
		assert.True(t, v)
	})

	t.Run("series", func(t *testing.T) {
		t.Parallel()
		series, state := snap.Series("monthly")
		require.Equal(t, FieldPresent, state)
		assert.Equal(t, []float64{100, 200, 300}, series)
	})

	t.Run("series copies are independent", func(t *testing.T) {
		t.Parallel()
		a, _ := snap.Series("monthly")
		a[0] = -1
		b, _ := snap.Series("monthly")
		assert.Equal(t, 100.0, b[0])
	})

	t.Run("missing field is missing not zero", func(t *testing.T) {
		t.Parallel()
		_, state := snap.Amount("no_such_field")
		assert.Equal(t, FieldMissing, state)
	})

	t.Run("null is absence", func(t *testing.T) {
		t.Parallel()
		_, state := snap.Amount("absent")
		assert.Equal(t, FieldMissing, state)
	})

	t.Run("unparseable text is malformed for amounts", func(t *testing.T) {
		t.Parallel()
		_, state := snap.Amount("garbage")
		assert.Equal(t, FieldMalformed, state)
	})

	t.Run("empty string is malformed", func(t *testing.T) {
		t.Parallel()
		_, state := snap.Amount("empty")
		assert.Equal(t, FieldMalformed, state)
	})

	t.Run("wrong kind is malformed", func(t *testing.T) {
		t.Parallel()
		_, state := snap.Flag("cash_balance")
		assert.Equal(t, FieldMalformed, state)
		_, state = snap.Amount("has_tax_arrears")
		assert.Equal(t, FieldMalformed, state)
	})
}

func TestCoerceSeries(t *testing.T) {
	t.Parallel()

	t.Run("mixed series is malformed", func(t *testing.T) {
		t.Parallel()
		snap := NewTaxpayerSnapshot("X", "2025", map[string]any{
			"monthly": []any{100.0, "oops", 300.0},
		})
		_, state := snap.Series("monthly")
		assert.Equal(t, FieldMalformed, state)
	})

	t.Run("float64 slice rounds elements", func(t *testing.T) {
		t.Parallel()
		snap := NewTaxpayerSnapshot("X", "2025", map[string]any{
			"monthly": []float64{1.005, 2.004},
		})
		series, state := snap.Series("monthly")
		require.Equal(t, FieldPresent, state)
		assert.InDelta(t, 1.0, series[0], 0.011)
		assert.Equal(t, 2.0, series[1])
	})
}

func TestRound2(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"exact", 3.0, 3.0},
		{"rounds cents", 2.346, 2.35},
		{"truncates beyond cents", 3.0001, 3.0},
		{"negative", -1.005, -1.0},
		{"preserves cents", 0.01, 0.01},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, Round2(tt.in), 0.006)
		})
	}
}

func TestFieldStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "present", FieldPresent.String())
	assert.Equal(t, "missing", FieldMissing.String())
	assert.Equal(t, "malformed", FieldMalformed.String())
}
