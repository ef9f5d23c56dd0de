package constraint

import (
	"context"
	"fmt"

	rdf "github.com/Tomaz-Vieira/spec-bioimage-io"
)

// ShapeFamily validates a concrete tensor shape against the parametrized
// family min + k*step for integer k >= 0. Each axis is checked
// independently: the candidate must reach min and the difference must be an
// exact multiple of step. A zero step fixes the axis to min.
type ShapeFamily struct {
	Min  []int
	Step []int
}

func (f ShapeFamily) Check(ctx context.Context, v any, path string) (any, rdf.Issues) {
	list, ok := v.([]any)
	if !ok {
		return nil, fail(path, rdf.CodeInvalidType, "expected sequence", nil)
	}
	if len(list) != len(f.Min) {
		return nil, fail(path, rdf.CodeInvalidFormat,
			fmt.Sprintf("shape has %d dimensions, family has %d", len(list), len(f.Min)),
			map[string]any{"min": f.Min, "step": f.Step})
	}
	var iss rdf.Issues
	out := make([]any, len(list))
	for i, el := range list {
		p := rdf.Index(path, i)
		n, ok := asInt(el)
		if !ok {
			iss = rdf.AppendIssues(iss, fail(p, rdf.CodeInvalidType, "expected integer", nil)...)
			if rdf.IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		min, step := f.Min[i], f.Step[i]
		reachable := n >= min && (step == 0 && n == min || step != 0 && (n-min)%step == 0)
		if !reachable {
			iss = rdf.AppendIssues(iss, fail(p, rdf.CodeInvalidFormat,
				fmt.Sprintf("%d is not reachable from min %d with step %d", n, min, step),
				map[string]any{"min": min, "step": step, "got": n})...)
			if rdf.IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		out[i] = n
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}
