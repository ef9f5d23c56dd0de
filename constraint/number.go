package constraint

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	rdf "github.com/Tomaz-Vieira/spec-bioimage-io"
)

// asFloat coerces the numeric representations YAML and JSON decoders produce.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// asInt coerces integral values; floats qualify only when they carry no
// fractional part.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
	case json.Number:
		i, err := n.Int64()
		if err == nil {
			return int(i), true
		}
	}
	return 0, false
}

// Int is an integer constraint with optional inclusive bounds.
type Int struct {
	Min *int
	Max *int
}

// IntMin returns an Int bounded from below.
func IntMin(min int) Int { return Int{Min: &min} }

func (c Int) Check(ctx context.Context, v any, path string) (any, rdf.Issues) {
	i, ok := asInt(v)
	if !ok {
		return nil, fail(path, rdf.CodeInvalidType, "expected integer", nil)
	}
	if c.Min != nil && i < *c.Min {
		return nil, fail(path, rdf.CodeTooSmall, fmt.Sprintf("minimum %d", *c.Min), map[string]any{"min": *c.Min, "got": i})
	}
	if c.Max != nil && i > *c.Max {
		return nil, fail(path, rdf.CodeTooBig, fmt.Sprintf("maximum %d", *c.Max), map[string]any{"max": *c.Max, "got": i})
	}
	return i, nil
}

// Float is a floating point constraint with optional inclusive bounds.
// Infinities are accepted when AllowInf is set (tensor data ranges).
type Float struct {
	Min      *float64
	Max      *float64
	AllowInf bool
	// MultipleOf, when non-zero, requires the value to be an exact multiple
	// (implicit shape offsets come in halves).
	MultipleOf float64
}

func (c Float) Check(ctx context.Context, v any, path string) (any, rdf.Issues) {
	f, ok := asFloat(v)
	if !ok {
		return nil, fail(path, rdf.CodeInvalidType, "expected number", nil)
	}
	if math.IsInf(f, 0) && !c.AllowInf {
		return nil, fail(path, rdf.CodeInvalidFormat, "infinity not allowed", nil)
	}
	if c.Min != nil && f < *c.Min {
		return nil, fail(path, rdf.CodeTooSmall, fmt.Sprintf("minimum %v", *c.Min), map[string]any{"min": *c.Min, "got": f})
	}
	if c.Max != nil && f > *c.Max {
		return nil, fail(path, rdf.CodeTooBig, fmt.Sprintf("maximum %v", *c.Max), map[string]any{"max": *c.Max, "got": f})
	}
	if c.MultipleOf != 0 && !math.IsInf(f, 0) {
		if r := math.Mod(f, c.MultipleOf); r != 0 {
			return nil, fail(path, rdf.CodeInvalidFormat, fmt.Sprintf("must be a multiple of %v", c.MultipleOf), map[string]any{"got": f})
		}
	}
	return f, nil
}
