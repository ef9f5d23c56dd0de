package schema

import (
	"context"
	"sort"
	"strings"

	rdf "github.com/Tomaz-Vieira/spec-bioimage-io"
	"github.com/Tomaz-Vieira/spec-bioimage-io/constraint"
	"github.com/Tomaz-Vieira/spec-bioimage-io/i18n"
)

// VariantMap is a keyed union over a mapping: each entry key selects the
// schema its value is validated against (weight entries keyed by weights
// format). Keys outside the variant set fail as enum violations.
type VariantMap struct {
	variants map[string]*Object
	sorted   []string
	minLen   int
}

var _ constraint.Kind = (*VariantMap)(nil)

// Variants builds a VariantMap requiring at least minLen entries.
func Variants(minLen int, variants map[string]*Object) *VariantMap {
	keys := make([]string, 0, len(variants))
	for k := range variants {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &VariantMap{variants: variants, sorted: keys, minLen: minLen}
}

func (vm *VariantMap) Check(ctx context.Context, v any, path string) (any, rdf.Issues) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, rdf.Issues{{Path: orRoot(path), Code: rdf.CodeInvalidType, Message: i18n.T(rdf.CodeInvalidType), Hint: "expected mapping"}}
	}
	if len(m) < vm.minLen {
		return nil, rdf.Issues{{Path: orRoot(path), Code: rdf.CodeTooShort, Message: i18n.T(rdf.CodeTooShort), Hint: "at least one entry required"}}
	}
	var iss rdf.Issues
	out := make(map[string]any, len(m))
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		p := rdf.Child(path, k)
		sub, known := vm.variants[k]
		if !known {
			iss = rdf.AppendIssues(iss, rdf.Issue{
				Path: p, Code: rdf.CodeInvalidEnum, Message: i18n.T(rdf.CodeInvalidEnum),
				Hint: "allowed: " + strings.Join(vm.sorted, ", "), Params: map[string]any{"got": k},
			})
			if rdf.IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		nv, i2 := sub.Check(ctx, m[k], p)
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
