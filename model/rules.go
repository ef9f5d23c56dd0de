package model

import (
	"context"
	"fmt"
	"sort"
	"strings"

	rdf "github.com/Tomaz-Vieira/spec-bioimage-io"
	"github.com/Tomaz-Vieira/spec-bioimage-io/i18n"
)

func crossField(path, msg string, fields ...string) rdf.Issues {
	return rdf.Issues{{
		Path:    path,
		Code:    rdf.CodeCrossField,
		Message: msg,
		Params:  map[string]any{"fields": fields},
	}}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

func tensorEntries(doc map[string]any, key string) []map[string]any {
	seq, _ := doc[key].([]any)
	out := make([]map[string]any, 0, len(seq))
	for _, e := range seq {
		if m, ok := e.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// uniqueTensorNames rejects a name shared between inputs and outputs. Within
// a single list duplicates are already reported by the sequence constraint.
func uniqueTensorNames(ctx context.Context, doc map[string]any, path string) rdf.Issues {
	seen := map[string]bool{}
	for _, in := range tensorEntries(doc, "inputs") {
		if name, ok := in["name"].(string); ok {
			seen[name] = true
		}
	}
	var iss rdf.Issues
	for i, out := range tensorEntries(doc, "outputs") {
		name, ok := out["name"].(string)
		if !ok {
			continue
		}
		if seen[name] {
			iss = append(iss, rdf.Issue{
				Path:    rdf.Child(rdf.Index(rdf.Child(path, "outputs"), i), "name"),
				Code:    rdf.CodeDuplicateValue,
				Message: fmt.Sprintf("tensor name %q is already used by an input", name),
				Params:  map[string]any{"fields": []string{"inputs", "outputs"}},
			})
		}
	}
	return iss
}

// inputsByName indexes normalized input tensors for reference lookups.
func inputsByName(doc map[string]any) map[string]map[string]any {
	byName := map[string]map[string]any{}
	for _, in := range tensorEntries(doc, "inputs") {
		if name, ok := in["name"].(string); ok {
			byName[name] = in
		}
	}
	return byName
}

// referenceTensors checks every reference_tensor, in implicit output shapes
// and in processing kwargs, against the declared inputs. Preprocessing steps
// must not reference the tensor they run on.
func referenceTensors(ctx context.Context, doc map[string]any, path string) rdf.Issues {
	inputs := inputsByName(doc)
	var iss rdf.Issues

	checkRef := func(p, ref string, selfName string) {
		if ref == selfName && selfName != "" {
			iss = append(iss, crossField(p, fmt.Sprintf("a tensor cannot reference itself (%q)", ref), "name", "reference_tensor")...)
			return
		}
		if _, ok := inputs[ref]; !ok {
			iss = append(iss, crossField(p, fmt.Sprintf("reference_tensor %q is not an input tensor", ref), "inputs", "reference_tensor")...)
		}
	}

	for i, in := range tensorEntries(doc, "inputs") {
		name, _ := in["name"].(string)
		steps, _ := in["preprocessing"].([]any)
		for j, step := range steps {
			m, ok := step.(map[string]any)
			if !ok {
				continue
			}
			kwargs, _ := m["kwargs"].(map[string]any)
			if ref, ok := kwargs["reference_tensor"].(string); ok {
				p := rdf.Child(rdf.Child(rdf.Index(rdf.Child(rdf.Index(rdf.Child(path, "inputs"), i), "preprocessing"), j), "kwargs"), "reference_tensor")
				checkRef(p, ref, name)
			}
		}
	}

	for i, out := range tensorEntries(doc, "outputs") {
		outPath := rdf.Index(rdf.Child(path, "outputs"), i)
		if shape, ok := out["shape"].(map[string]any); ok {
			if ref, ok := shape["reference_tensor"].(string); ok {
				checkRef(rdf.Child(rdf.Child(outPath, "shape"), "reference_tensor"), ref, "")
				if in, found := inputs[ref]; found {
					if inRank, known := shapeRank(in["shape"]); known {
						scale, _ := shape["scale"].([]any)
						nonNull := 0
						for _, s := range scale {
							if s != nil {
								nonNull++
							}
						}
						if nonNull != inRank {
							iss = append(iss, crossField(rdf.Child(rdf.Child(outPath, "shape"), "scale"),
								fmt.Sprintf("scale has %d non-null entries but reference tensor %q has %d dimensions", nonNull, ref, inRank),
								"inputs", "scale")...)
						}
					}
				}
			}
		}
		steps, _ := out["postprocessing"].([]any)
		for j, step := range steps {
			m, ok := step.(map[string]any)
			if !ok {
				continue
			}
			kwargs, _ := m["kwargs"].(map[string]any)
			if ref, ok := kwargs["reference_tensor"].(string); ok {
				p := rdf.Child(rdf.Child(rdf.Index(rdf.Child(outPath, "postprocessing"), j), "kwargs"), "reference_tensor")
				checkRef(p, ref, "")
			}
		}
	}
	return iss
}

// minShapeOf resolves the smallest realizable shape of a tensor entry,
// following implicit references into the given inputs.
func minShapeOf(t map[string]any, inputs map[string]map[string]any) ([]float64, bool) {
	switch shape := t["shape"].(type) {
	case []any:
		out := make([]float64, len(shape))
		for i, v := range shape {
			f, ok := asFloat(v)
			if !ok {
				return nil, false
			}
			out[i] = f
		}
		return out, true
	case map[string]any:
		if min, ok := shape["min"].([]any); ok {
			out := make([]float64, len(min))
			for i, v := range min {
				f, ok := asFloat(v)
				if !ok {
					return nil, false
				}
				out[i] = f
			}
			return out, true
		}
		ref, _ := shape["reference_tensor"].(string)
		in, ok := inputs[ref]
		if !ok {
			return nil, false
		}
		refMin, ok := minShapeOf(in, inputs)
		if !ok {
			return nil, false
		}
		scale, _ := shape["scale"].([]any)
		offset, _ := shape["offset"].([]any)
		if len(scale) != len(offset) {
			return nil, false
		}
		out := make([]float64, len(scale))
		refIdx := 0
		for i := range scale {
			off, ok := asFloat(offset[i])
			if !ok {
				return nil, false
			}
			if scale[i] == nil {
				out[i] = 2 * off
				continue
			}
			sc, ok := asFloat(scale[i])
			if !ok || refIdx >= len(refMin) {
				return nil, false
			}
			out[i] = refMin[refIdx]*sc + 2*off
			refIdx++
		}
		return out, true
	}
	return nil, false
}

// outputShapes checks that each output's minimal shape leaves at least one
// pixel after cropping the halo on both sides.
func outputShapes(ctx context.Context, doc map[string]any, path string) rdf.Issues {
	inputs := inputsByName(doc)
	var iss rdf.Issues
	for i, out := range tensorEntries(doc, "outputs") {
		min, ok := minShapeOf(out, inputs)
		if !ok {
			continue
		}
		halo, _ := out["halo"].([]any)
		outPath := rdf.Index(rdf.Child(path, "outputs"), i)
		for d, m := range min {
			h := 0.0
			if d < len(halo) {
				if f, ok := asFloat(halo[d]); ok {
					h = f
				}
			}
			if m-2*h < 1 {
				iss = append(iss, crossField(rdf.Child(outPath, "shape"),
					fmt.Sprintf("minimal shape %v is too small for halo %v in dimension %d", min, halo, d),
					"shape", "halo")...)
				break
			}
		}
	}
	return iss
}

// weightsParents enforces the parent links between weight entries: at most
// one root entry without a parent, every parent names another present entry.
func weightsParents(ctx context.Context, doc map[string]any, path string) rdf.Issues {
	weights, ok := doc["weights"].(map[string]any)
	if !ok {
		return nil
	}
	var iss rdf.Issues
	roots := 0
	for _, format := range sortedKeys(weights) {
		entry, ok := weights[format].(map[string]any)
		if !ok {
			continue
		}
		parent, has := entry["parent"].(string)
		if !has {
			roots++
			if roots > 1 {
				iss = append(iss, crossField(rdf.Child(rdf.Child(path, "weights"), format),
					"only one weight entry may omit parent", "weights")...)
			}
			continue
		}
		p := rdf.Child(rdf.Child(rdf.Child(path, "weights"), format), "parent")
		if parent == format {
			iss = append(iss, crossField(p, fmt.Sprintf("weight entry %q cannot be its own parent", format), "weights")...)
		} else if _, present := weights[parent]; !present {
			iss = append(iss, crossField(p, fmt.Sprintf("parent %q is not a present weight format", parent), "weights")...)
		}
	}
	return iss
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// architectureSha256 ties the sha256 requirement to source-file callables of
// the form "file.py:Callable". Import-path callables need no digest.
func architectureSha256(archField, shaField string) func(ctx context.Context, doc map[string]any, path string) rdf.Issues {
	return func(ctx context.Context, doc map[string]any, path string) rdf.Issues {
		arch, ok := doc[archField].(string)
		if !ok {
			return nil
		}
		_, hasSha := doc[shaField]
		fromFile := strings.Contains(arch, ":")
		if fromFile && !hasSha {
			return rdf.Issues{{
				Path:    rdf.Child(path, shaField),
				Code:    rdf.CodeRequired,
				Message: i18n.T(rdf.CodeRequired),
				Hint:    fmt.Sprintf("%s is required when %s points into a source file", shaField, archField),
				Params:  map[string]any{"fields": []string{archField, shaField}},
			}}
		}
		if !fromFile && hasSha {
			return crossField(rdf.Child(path, shaField),
				fmt.Sprintf("%s is only valid when %s points into a source file", shaField, archField),
				archField, shaField)
		}
		return nil
	}
}
