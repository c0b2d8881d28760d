package entity

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/zero-day-ai/obsgraph"
)

// Decimal is an exact-text numeric value. Unlike float64 it preserves the
// source representation, so "1.10" round-trips as "1.10".
type Decimal string

var decimalPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// Valid reports whether the text is a well-formed decimal literal.
func (d Decimal) Valid() bool {
	return decimalPattern.MatchString(string(d))
}

// FormatScalar renders a scalar value of the given kind as wire text.
// The value must already have the kind's canonical runtime shape (see
// Entity.Set); a mismatched shape is a programming error reported as
// ErrMalformedValue.
func FormatScalar(kind ScalarKind, v any) (string, error) {
	switch kind {
	case String:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case Integer:
		if i, ok := v.(int64); ok {
			return strconv.FormatInt(i, 10), nil
		}
	case Float, Double:
		if f, ok := v.(float64); ok {
			return strconv.FormatFloat(f, 'g', -1, 64), nil
		}
	case DecimalKind:
		if d, ok := v.(Decimal); ok {
			return string(d), nil
		}
	case Boolean:
		if b, ok := v.(bool); ok {
			if b {
				return "true", nil
			}
			return "false", nil
		}
	}
	return "", fmt.Errorf("%w: cannot format %T as %s", obsgraph.ErrMalformedValue, v, kind)
}

// ParseScalar parses wire text into the canonical runtime value for the
// given kind: string, int64, float64, Decimal, or bool. Failures wrap
// ErrMalformedValue; callers attach the field name and source line.
func ParseScalar(kind ScalarKind, text string) (any, error) {
	switch kind {
	case String:
		return text, nil
	case Integer:
		i, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", obsgraph.ErrMalformedValue, text)
		}
		return i, nil
	case Float, Double:
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a %s", obsgraph.ErrMalformedValue, text, kind)
		}
		return f, nil
	case DecimalKind:
		d := Decimal(strings.TrimSpace(text))
		if !d.Valid() {
			return nil, fmt.Errorf("%w: %q is not a decimal", obsgraph.ErrMalformedValue, text)
		}
		return d, nil
	case Boolean:
		// The boolean text domain is exactly {"true", "1", "false", "0"}.
		switch strings.TrimSpace(text) {
		case "true", "1":
			return true, nil
		case "false", "0":
			return false, nil
		}
		return nil, fmt.Errorf("%w: %q is not a boolean", obsgraph.ErrMalformedValue, text)
	default:
		return nil, fmt.Errorf("%w: unsupported scalar kind %s", obsgraph.ErrMalformedValue, kind)
	}
}

// coerceScalar normalizes a caller- or map-supplied value to the canonical
// runtime shape for the kind. It accepts the native Go equivalents plus the
// widenings that JSON and YAML decoding produce (ints for floats, integral
// float64 for integers).
func coerceScalar(kind ScalarKind, v any) (any, error) {
	switch kind {
	case String:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case Integer:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int32:
			return int64(n), nil
		case int64:
			return n, nil
		case float64:
			if n == float64(int64(n)) {
				return int64(n), nil
			}
		}
	case Float, Double:
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		}
	case DecimalKind:
		switch d := v.(type) {
		case Decimal:
			if d.Valid() {
				return d, nil
			}
		case string:
			dd := Decimal(d)
			if dd.Valid() {
				return dd, nil
			}
		case float64:
			return Decimal(strconv.FormatFloat(d, 'f', -1, 64)), nil
		case int:
			return Decimal(strconv.Itoa(d)), nil
		case int64:
			return Decimal(strconv.FormatInt(d, 10)), nil
		}
	case Boolean:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: %v (%T) does not fit %s", obsgraph.ErrMalformedValue, v, v, kind)
}
