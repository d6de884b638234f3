package model

import (
	"math"
	"strconv"
	"strings"
)

// FieldState describes the usability of a snapshot field for evaluation.
type FieldState int

const (
	// FieldPresent means the field carries a usable value.
	FieldPresent FieldState = iota
	// FieldMissing means the field is absent or null. Absence is not zero.
	FieldMissing
	// FieldMalformed means the field exists but could not be interpreted
	// (e.g. non-numeric text where an amount was expected).
	FieldMalformed
)

// String returns the diagnostic label for a field state.
func (s FieldState) String() string {
	switch s {
	case FieldPresent:
		return "present"
	case FieldMissing:
		return "missing"
	default:
		return "malformed"
	}
}

// fieldValue is one coerced snapshot entry. Exactly one of the kind flags is
// meaningful; malformed entries keep none.
type fieldValue struct {
	num       float64
	flag      bool
	str       string
	series    []float64
	kind      fieldKind
	malformed bool
}

type fieldKind int

const (
	kindNumber fieldKind = iota
	kindBool
	kindString
	kindSeries
)

// TaxpayerSnapshot is an immutable flat mapping of named financial fields for
// one (taxpayer, period) pair. Monetary values are rounded to 2 decimal
// places at construction so downstream ratio comparisons are reproducible.
type TaxpayerSnapshot struct {
	TaxpayerRef string
	PeriodRef   string
	fields      map[string]fieldValue
}

// NewTaxpayerSnapshot coerces a raw field map into a snapshot. Unknown or
// uninterpretable values are kept as malformed entries rather than dropped,
// so the evaluator can distinguish "absent" from "garbage".
func NewTaxpayerSnapshot(taxpayerRef, periodRef string, raw map[string]any) *TaxpayerSnapshot {
	snap := &TaxpayerSnapshot{
		TaxpayerRef: taxpayerRef,
		PeriodRef:   periodRef,
		fields:      make(map[string]fieldValue, len(raw)),
	}
	for key, v := range raw {
		if v == nil {
			continue // null is absence, not a value
		}
		// Classifier codes are identifiers, not amounts: "4711" must stay
		// text even though it parses as a number.
		if key == FieldSectorCode {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				snap.fields[key] = fieldValue{str: strings.TrimSpace(s), kind: kindString}
				continue
			}
		}
		snap.fields[key] = coerce(v)
	}
	return snap
}

func coerce(v any) fieldValue {
	switch t := v.(type) {
	case float64:
		return fieldValue{num: Round2(t), kind: kindNumber}
	case float32:
		return fieldValue{num: Round2(float64(t)), kind: kindNumber}
	case int:
		return fieldValue{num: float64(t), kind: kindNumber}
	case int32:
		return fieldValue{num: float64(t), kind: kindNumber}
	case int64:
		return fieldValue{num: float64(t), kind: kindNumber}
	case bool:
		return fieldValue{flag: t, kind: kindBool}
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return fieldValue{malformed: true}
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return fieldValue{num: Round2(f), kind: kindNumber}
		}
		return fieldValue{str: s, kind: kindString}
	case []any:
		series := make([]float64, 0, len(t))
		for _, e := range t {
			ev := coerce(e)
			if ev.malformed || ev.kind != kindNumber {
				return fieldValue{malformed: true}
			}
			series = append(series, ev.num)
		}
		return fieldValue{series: series, kind: kindSeries}
	case []float64:
		series := make([]float64, len(t))
		for i, f := range t {
			series[i] = Round2(f)
		}
		return fieldValue{series: series, kind: kindSeries}
	default:
		return fieldValue{malformed: true}
	}
}

// Amount returns a numeric field rounded to 2 decimal places.
func (s *TaxpayerSnapshot) Amount(key string) (float64, FieldState) {
	fv, ok := s.fields[key]
	if !ok {
		return 0, FieldMissing
	}
	if fv.malformed || fv.kind != kindNumber {
		return 0, FieldMalformed
	}
	return fv.num, FieldPresent
}

// Flag returns a boolean field. Numeric or text values are not coerced to
// booleans; a flag is either recorded as a flag or it is malformed.
func (s *TaxpayerSnapshot) Flag(key string) (bool, FieldState) {
	fv, ok := s.fields[key]
	if !ok {
		return false, FieldMissing
	}
	if fv.malformed || fv.kind != kindBool {
		return false, FieldMalformed
	}
	return fv.flag, FieldPresent
}

// Text returns a free-text field such as the sector classifier.
func (s *TaxpayerSnapshot) Text(key string) (string, FieldState) {
	fv, ok := s.fields[key]
	if !ok {
		return "", FieldMissing
	}
	if fv.malformed || fv.kind != kindString {
		return "", FieldMalformed
	}
	return fv.str, FieldPresent
}

// Series returns a numeric series field (e.g. month-by-month balances).
func (s *TaxpayerSnapshot) Series(key string) ([]float64, FieldState) {
	fv, ok := s.fields[key]
	if !ok {
		return nil, FieldMissing
	}
	if fv.malformed || fv.kind != kindSeries {
		return nil, FieldMalformed
	}
	out := make([]float64, len(fv.series))
	copy(out, fv.series)
	return out, FieldPresent
}

// SectorCode returns the taxpayer's industry classifier, if present.
func (s *TaxpayerSnapshot) SectorCode() string {
	code, state := s.Text(FieldSectorCode)
	if state != FieldPresent {
		return ""
	}
	return code
}

// FieldCount reports how many fields the snapshot carries.
func (s *TaxpayerSnapshot) FieldCount() int {
	return len(s.fields)
}

// Round2 rounds a monetary value to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
