package constraint

import (
	"context"

	rdf "github.com/Tomaz-Vieira/spec-bioimage-io"
	"github.com/Tomaz-Vieira/spec-bioimage-io/i18n"
)

// Kind checks a single raw value against one declared field constraint.
// On success it returns the normalized value; on failure the issue list.
// Implementations are immutable and safe for concurrent use.
type Kind interface {
	Check(ctx context.Context, v any, path string) (any, rdf.Issues)
}

// fail builds a single-issue list the way every kind in this package reports.
func fail(path, code, hint string, params map[string]any) rdf.Issues {
	return rdf.Issues{{Path: path, Code: code, Message: i18n.T(code), Hint: hint, Params: params}}
}

// Any accepts every value unchanged. Used for free-form config mappings and
// kwargs whose keys are consumer-defined.
type Any struct{}

func (Any) Check(ctx context.Context, v any, path string) (any, rdf.Issues) { return v, nil }

// Forbidden rejects any value. It marks fields a schema version declares but
// does not allow (badges on model RDFs).
type Forbidden struct {
	Hint string
}

func (f Forbidden) Check(ctx context.Context, v any, path string) (any, rdf.Issues) {
	return nil, fail(path, rdf.CodeInvalidFormat, f.Hint, nil)
}

// Bool accepts boolean values.
type Bool struct{}

func (Bool) Check(ctx context.Context, v any, path string) (any, rdf.Issues) {
	b, ok := v.(bool)
	if !ok {
		return nil, fail(path, rdf.CodeInvalidType, "expected bool", nil)
	}
	return b, nil
}
