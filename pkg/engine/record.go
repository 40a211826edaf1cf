package engine

import (
	"encoding/json"
	"math"
	"strconv"
)

// Record is a flat mapping of domain-specific input fields supplied by the
// caller. No shape is required beyond the fields each engine's rules read;
// missing optional fields take the engine-documented neutral default.
type Record map[string]any

// Float returns the named field coerced to float64, or def when the field
// is absent. Numeric strings are parsed; anything else fails with an
// InvalidInputError naming the field.
func (r Record) Float(name string, def float64) (float64, error) {
	raw, ok := r[name]
	if !ok || raw == nil {
		return def, nil
	}

	switch v := raw.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, NewInvalidInputError(name, raw, "number")
		}
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, NewInvalidInputError(name, raw, "number")
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, NewInvalidInputError(name, raw, "number")
		}
		return f, nil
	default:
		return 0, NewInvalidInputError(name, raw, "number")
	}
}

// FloatIn returns the named field coerced to float64 and clamped to
// [lo, hi]. The default is applied before clamping.
func (r Record) FloatIn(name string, def, lo, hi float64) (float64, error) {
	f, err := r.Float(name, def)
	if err != nil {
		return 0, err
	}
	return Clamp(f, lo, hi), nil
}

// Int returns the named field coerced to an integer (truncating fractional
// values), or def when the field is absent.
func (r Record) Int(name string, def int) (int, error) {
	f, err := r.Float(name, float64(def))
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// Bool returns the named field coerced to bool, or def when the field is
// absent. Accepts bool values and the strings accepted by
// strconv.ParseBool.
func (r Record) Bool(name string, def bool) (bool, error) {
	raw, ok := r[name]
	if !ok || raw == nil {
		return def, nil
	}

	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, NewInvalidInputError(name, raw, "boolean")
		}
		return b, nil
	default:
		return false, NewInvalidInputError(name, raw, "boolean")
	}
}

// String returns the named field as a string, or def when absent.
func (r Record) String(name, def string) (string, error) {
	raw, ok := r[name]
	if !ok || raw == nil {
		return def, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", NewInvalidInputError(name, raw, "string")
	}
	return s, nil
}

// FloatOr is Float for replay paths (compliance checks) where the record
// has already been validated by the evaluator: coercion failures fall back
// to the default instead of erroring.
func (r Record) FloatOr(name string, def float64) float64 {
	f, err := r.Float(name, def)
	if err != nil {
		return def
	}
	return f
}

// IntOr is Int with the FloatOr fallback semantics.
func (r Record) IntOr(name string, def int) int {
	i, err := r.Int(name, def)
	if err != nil {
		return def
	}
	return i
}

// BoolOr is Bool with the FloatOr fallback semantics.
func (r Record) BoolOr(name string, def bool) bool {
	b, err := r.Bool(name, def)
	if err != nil {
		return def
	}
	return b
}

// Clamp bounds f to [lo, hi].
func Clamp(f, lo, hi float64) float64 {
	if f < lo {
		return lo
	}
	if f > hi {
		return hi
	}
	return f
}

// Clamp01 bounds f to [0, 1], the domain of most normalized sub-scores.
func Clamp01(f float64) float64 {
	return Clamp(f, 0, 1)
}

// Round2 rounds f to two decimals for display in scores and details.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
