package types

import (
	"fmt"
	"strconv"
	"time"
)

// Data types a property definition can declare. The set is closed;
// unknown data types are rejected at property definition creation.
const (
	DataTypeText    = "text"
	DataTypeNumber  = "number"
	DataTypeDate    = "date"
	DataTypeBoolean = "boolean"
)

// validDataTypes is the set of recognized property data types.
var validDataTypes = map[string]bool{
	DataTypeText:    true,
	DataTypeNumber:  true,
	DataTypeDate:    true,
	DataTypeBoolean: true,
}

// ValidDataType reports whether the given string is a recognized data type.
func ValidDataType(dt string) bool {
	return validDataTypes[dt]
}

// ValueKind discriminates the variants of a canonical Value.
type ValueKind string

// Value variants. Empty represents "no value set" and is valid for every
// data type; required-ness is enforced by the stores, not the value itself.
const (
	KindEmpty   ValueKind = "empty"
	KindText    ValueKind = "text"
	KindNumber  ValueKind = "number"
	KindDate    ValueKind = "date"
	KindBoolean ValueKind = "boolean"
)

// Value is the canonical typed value of a property: a tagged variant
// produced by the codec from a raw input and a declared data type.
// The zero Value is Empty.
type Value struct {
	Kind ValueKind
	Text string
	Num  float64
	Date time.Time
	Bool bool
}

// EmptyValue returns the Empty variant.
func EmptyValue() Value { return Value{Kind: KindEmpty} }

// TextValue returns a text variant holding s.
func TextValue(s string) Value { return Value{Kind: KindText, Text: s} }

// NumberValue returns a number variant holding n.
func NumberValue(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// DateValue returns a date variant holding t in UTC.
func DateValue(t time.Time) Value { return Value{Kind: KindDate, Date: t.UTC()} }

// BooleanValue returns a boolean variant holding b.
func BooleanValue(b bool) Value { return Value{Kind: KindBoolean, Bool: b} }

// IsEmpty reports whether the value is the Empty variant. The zero Value
// (Kind "") also counts as empty.
func (v Value) IsEmpty() bool {
	return v.Kind == KindEmpty || v.Kind == ""
}

// Scalar returns the canonical JSON scalar representation of the value:
// nil, string, float64, RFC3339 string, or bool. Feeding the scalar back
// through the codec with the matching data type reproduces the Value.
func (v Value) Scalar() any {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumber:
		return v.Num
	case KindDate:
		return v.Date.UTC().Format(time.RFC3339)
	case KindBoolean:
		return v.Bool
	default:
		return nil
	}
}

// Equal reports whether two values are the same variant holding the same
// contents. Values of different kinds are never equal.
func (v Value) Equal(o Value) bool {
	if v.IsEmpty() || o.IsEmpty() {
		return v.IsEmpty() && o.IsEmpty()
	}
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindText:
		return v.Text == o.Text
	case KindNumber:
		return v.Num == o.Num
	case KindDate:
		return v.Date.Equal(o.Date)
	case KindBoolean:
		return v.Bool == o.Bool
	}
	return false
}

// String renders the value for messages and CLI output.
func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindDate:
		return v.Date.UTC().Format(time.RFC3339)
	case KindBoolean:
		return strconv.FormatBool(v.Bool)
	default:
		return ""
	}
}

// String lets ValueKind print cleanly in fmt verbs.
func (k ValueKind) String() string { return string(k) }

var _ fmt.Stringer = KindEmpty
