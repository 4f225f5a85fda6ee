package table

import (
	"fmt"
	"time"
)

// Kind discriminates the decoded cell variants.
type Kind uint8

const (
	KindString Kind = iota
	KindInt
	KindBool
	KindDate
)

// NoName is the sentinel stored for classification and name fields that
// decode to an empty value.
const NoName = "*NONE*"

// Value is one decoded cell. Decoded rows never hold a null: absent or
// blank fields decode to an explicit sentinel (NoName for classification
// fields, zero for flag-gated numerics, an invalid date for unset dates).
type Value struct {
	Kind Kind
	Str  string
	Int  int64
	Bool bool
	Date time.Time
	// Set marks a date value as present; unset or malformed dates keep
	// Set false (the "no date" sentinel).
	Set bool
}

// String makes a string cell.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Int makes an integer cell.
func Int(n int64) Value { return Value{Kind: KindInt, Int: n} }

// Bool makes a boolean cell.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Date makes a date cell.
func Date(t time.Time) Value { return Value{Kind: KindDate, Date: t, Set: true} }

// NoDate is the sentinel for unset or malformed packed dates.
func NoDate() Value { return Value{Kind: KindDate} }

// Equal compares two cells. Dates compare by instant, not location.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindString:
		return v.Str == o.Str
	case KindInt:
		return v.Int == o.Int
	case KindBool:
		return v.Bool == o.Bool
	case KindDate:
		if v.Set != o.Set {
			return false
		}
		return !v.Set || v.Date.Equal(o.Date)
	}
	return false
}

// Format renders a cell for reports and the HTTP surface.
func (v Value) Format() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindDate:
		if !v.Set {
			return ""
		}
		return v.Date.Format("2006-01-02")
	}
	return ""
}
