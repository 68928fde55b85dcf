package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Number is a JSON number that remembers whether it was written as an
// integer or as a fractional value.
type Number struct {
	integral bool
	i        int64
	f        float64
}

// IntNumber returns an integral Number.
func IntNumber(v int64) Number { return Number{integral: true, i: v, f: float64(v)} }

// FloatNumber returns a fractional Number.
func FloatNumber(v float64) Number { return Number{f: v} }

// IsInteger reports whether the value was integral on the wire.
func (n Number) IsInteger() bool { return n.integral }

// Int64 returns the integral value, ok is false for fractional numbers.
func (n Number) Int64() (v int64, ok bool) {
	if !n.integral {
		return 0, false
	}
	return n.i, true
}

// Float64 returns the value as a float regardless of representation.
func (n Number) Float64() float64 { return n.f }

func (n Number) String() string {
	if n.integral {
		return strconv.FormatInt(n.i, 10)
	}
	s := strconv.FormatFloat(n.f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEn") {
		// keep fractional numbers fractional when re-encoded
		s += ".0"
	}
	return s
}

// MarshalJSON writes the number in its original representation.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.integral && (math.IsNaN(n.f) || math.IsInf(n.f, 0)) {
		return nil, fmt.Errorf("cannot encode %v as JSON", n.f)
	}
	return []byte(n.String()), nil
}

func numberFrom(v any) (Number, error) {
	switch x := v.(type) {
	case json.Number:
		return parseNumber(string(x))
	case float64:
		return FloatNumber(x), nil
	case float32:
		return FloatNumber(float64(x)), nil
	case int:
		return IntNumber(int64(x)), nil
	case int64:
		return IntNumber(x), nil
	case int32:
		return IntNumber(int64(x)), nil
	default:
		return Number{}, fmt.Errorf("expected number, got %s", jsonKind(v))
	}
}

func parseNumber(s string) (Number, error) {
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return IntNumber(i), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Number{}, fmt.Errorf("invalid number %q", s)
	}
	return FloatNumber(f), nil
}
