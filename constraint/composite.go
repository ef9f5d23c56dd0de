package constraint

import (
	"context"
	"sort"
	"strconv"

	rdf "github.com/Tomaz-Vieira/spec-bioimage-io"
	"github.com/Tomaz-Vieira/spec-bioimage-io/i18n"
)

// Sequence applies Elem to every member of a list, appending the index to the
// error path. UniqueBy, when set, projects each normalized element to a key
// that must not repeat within the sequence (e.g. tensor names); elements the
// projection cannot handle are skipped by the uniqueness pass.
type Sequence struct {
	Elem     Kind
	MinLen   int
	MaxLen   int // 0 means unbounded
	UniqueBy func(any) (string, bool)
}

func (c Sequence) Check(ctx context.Context, v any, path string) (any, rdf.Issues) {
	list, ok := v.([]any)
	if !ok {
		return nil, fail(path, rdf.CodeInvalidType, "expected sequence", nil)
	}
	if len(list) < c.MinLen {
		return nil, fail(path, rdf.CodeTooShort, "sequence below minimum length", map[string]any{"min": c.MinLen, "got": len(list)})
	}
	if c.MaxLen > 0 && len(list) > c.MaxLen {
		return nil, fail(path, rdf.CodeTooLong, "sequence above maximum length", map[string]any{"max": c.MaxLen, "got": len(list)})
	}
	var iss rdf.Issues
	out := make([]any, 0, len(list))
	seen := map[string]int{}
	for i, el := range list {
		p := rdf.Index(path, i)
		nv, i2 := c.Elem.Check(ctx, el, p)
		if len(i2) > 0 {
			iss = rdf.AppendIssues(iss, i2...)
			if rdf.IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		if c.UniqueBy != nil {
			if key, ok := c.UniqueBy(nv); ok {
				if first, dup := seen[key]; dup {
					iss = rdf.AppendIssues(iss, rdf.Issue{
						Path: p, Code: rdf.CodeDuplicateValue, Message: i18n.T(rdf.CodeDuplicateValue),
						Hint:   "already used at index " + strconv.Itoa(first),
						Params: map[string]any{"value": key, "first": first},
					})
					if rdf.IsFailFast(ctx) {
						return nil, iss
					}
					continue
				}
				seen[key] = i
			}
		}
		out = append(out, nv)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// Mapping applies Value to every entry value, appending the key to the error
// path. Key, when set, constrains the keys themselves.
type Mapping struct {
	Key   Kind
	Value Kind
}

func (c Mapping) Check(ctx context.Context, v any, path string) (any, rdf.Issues) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fail(path, rdf.CodeInvalidType, "expected mapping", nil)
	}
	var iss rdf.Issues
	out := make(map[string]any, len(m))
	// key-sorted order for deterministic issue selection
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		p := rdf.Child(path, k)
		if c.Key != nil {
			if _, i2 := c.Key.Check(ctx, k, p); len(i2) > 0 {
				iss = rdf.AppendIssues(iss, i2...)
				if rdf.IsFailFast(ctx) {
					return nil, iss
				}
				continue
			}
		}
		nv, i2 := c.Value.Check(ctx, m[k], p)
		if len(i2) > 0 {
			iss = rdf.AppendIssues(iss, i2...)
			if rdf.IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		out[k] = nv
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// OneOf tries each alternative in declared order; the first success wins.
// When every alternative fails the union of their issues is reported.
// A value satisfying several alternatives is taken by the first; declared
// order is the tie-break.
type OneOf struct {
	Alts []Kind
}

func (c OneOf) Check(ctx context.Context, v any, path string) (any, rdf.Issues) {
	var all rdf.Issues
	for _, alt := range c.Alts {
		nv, iss := alt.Check(ctx, v, path)
		if len(iss) == 0 {
			return nv, nil
		}
		all = rdf.AppendIssues(all, iss...)
	}
	return nil, all
}

// Nullable passes null through unchanged and otherwise delegates to Inner.
// Implicit output shapes use null scale entries to mark expanded dimensions.
type Nullable struct {
	Inner Kind
}

func (c Nullable) Check(ctx context.Context, v any, path string) (any, rdf.Issues) {
	if v == nil {
		return nil, nil
	}
	return c.Inner.Check(ctx, v, path)
}

