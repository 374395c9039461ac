// Package codec validates and parses raw property values against a
// declared data type, producing the canonical tagged Value variant. All
// functions are pure and safe for concurrent use.
package codec

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/facetframe/facet/pkg/types"
)

// truthy and falsy literal representations accepted for boolean values,
// matched case-insensitively.
var (
	truthyLiterals = map[string]bool{"true": true, "1": true, "yes": true}
	falsyLiterals  = map[string]bool{"false": true, "0": true, "no": true}
)

// Validate reports whether raw is an acceptable representation for the
// given data type. An unknown data type accepts nothing. A nil or
// empty-string raw is acceptable for every known data type: it
// represents "no value set", and required-ness is enforced by the
// stores, not here. Validate accepts exactly the inputs Parse can
// convert, so a validated raw never fails to parse.
func Validate(raw any, dataType string) bool {
	if !types.ValidDataType(dataType) {
		return false
	}
	if isAbsent(raw) {
		return true
	}
	switch dataType {
	case types.DataTypeText:
		_, ok := raw.(string)
		return ok
	case types.DataTypeNumber:
		_, ok := toNumber(raw)
		return ok
	case types.DataTypeDate:
		_, ok := toDate(raw)
		return ok
	case types.DataTypeBoolean:
		_, ok := toBoolean(raw)
		return ok
	default:
		return false
	}
}

// Parse converts raw into the canonical Value for the given data type.
// A nil or empty-string raw parses to Empty for every data type.
// Returns ErrInvalidDataType for an unknown data type and
// ErrInvalidValue for a raw that Validate would reject; for validated
// input Parse is total and deterministic.
func Parse(raw any, dataType string) (types.Value, error) {
	if !types.ValidDataType(dataType) {
		return types.EmptyValue(), types.ErrInvalidDataType
	}
	if isAbsent(raw) {
		return types.EmptyValue(), nil
	}
	switch dataType {
	case types.DataTypeText:
		s, ok := raw.(string)
		if !ok {
			return types.EmptyValue(), types.ErrInvalidValue
		}
		return types.TextValue(s), nil
	case types.DataTypeNumber:
		n, ok := toNumber(raw)
		if !ok {
			return types.EmptyValue(), types.ErrInvalidValue
		}
		return types.NumberValue(n), nil
	case types.DataTypeDate:
		t, ok := toDate(raw)
		if !ok {
			return types.EmptyValue(), types.ErrInvalidValue
		}
		return types.DateValue(t), nil
	default:
		b, ok := toBoolean(raw)
		if !ok {
			return types.EmptyValue(), types.ErrInvalidValue
		}
		return types.BooleanValue(b), nil
	}
}

// isAbsent reports whether raw represents "no value set".
func isAbsent(raw any) bool {
	if raw == nil {
		return true
	}
	s, ok := raw.(string)
	return ok && s == ""
}

// toNumber converts a JSON number or a numeric string to a finite
// float64.
func toNumber(raw any) (float64, bool) {
	var n float64
	switch v := raw.(type) {
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// dateLayouts are the ISO-8601 shapes accepted for date values.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

// toDate converts an ISO-8601 timestamp string to a time.
func toDate(raw any) (time.Time, bool) {
	s, ok := raw.(string)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// toBoolean converts a bool or a truthy/falsy literal string to a bool.
func toBoolean(raw any) (bool, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		lower := strings.ToLower(strings.TrimSpace(v))
		if truthyLiterals[lower] {
			return true, true
		}
		if falsyLiterals[lower] {
			return false, true
		}
	}
	return false, false
}
