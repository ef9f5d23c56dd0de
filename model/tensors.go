// Package model holds the schema catalogs for model resource descriptions,
// format versions 0.4.x and 0.3.x.
package model

import (
	"context"
	"fmt"
	"strings"

	rdf "github.com/Tomaz-Vieira/spec-bioimage-io"
	"github.com/Tomaz-Vieira/spec-bioimage-io/constraint"
	"github.com/Tomaz-Vieira/spec-bioimage-io/schema"
)

// PreprocessingNames is the closed set of input processing steps.
var PreprocessingNames = []string{
	"binarize", "clip", "scale_linear", "sigmoid", "zero_mean_unit_variance", "scale_range",
}

// PostprocessingNames additionally allows scale_mean_variance.
var PostprocessingNames = append(append([]string{}, PreprocessingNames...), "scale_mean_variance")

// OutputDataTypes are the dtypes an output tensor may declare. Inputs are
// float32 only.
var OutputDataTypes = []string{
	"float32", "float64", "uint8", "int8", "uint16", "int16", "uint32", "int32", "uint64", "int64",
}

// ParametrizedShape describes the family shape_k = min + k*step, k >= 0.
var ParametrizedShape = schema.New().
	Field("min", constraint.Sequence{Elem: constraint.IntMin(0), MinLen: 1}).Required().
	Field("step", constraint.Sequence{Elem: constraint.IntMin(0), MinLen: 1}).Required().
	UnknownStrict().
	Rule("matching_lengths", func(ctx context.Context, doc map[string]any, path string) rdf.Issues {
		min, okMin := doc["min"].([]any)
		step, okStep := doc["step"].([]any)
		if !okMin || !okStep {
			return nil
		}
		if len(min) != len(step) {
			return crossField(rdf.Child(path, "step"), "min and step must have the same length", "min", "step")
		}
		return nil
	}).
	MustBuild()

// ImplicitShape describes an output shape derived from a reference tensor:
// shape = reference_shape * scale + 2*offset. Null scale entries mark
// expanded dimensions whose length is 2*offset alone.
var ImplicitShape = schema.New().
	Field("reference_tensor", constraint.NonEmpty()).Required().
	Field("scale", constraint.Sequence{Elem: constraint.Nullable{Inner: constraint.Float{}}, MinLen: 1}).Required().
	Field("offset", constraint.Sequence{Elem: constraint.Float{MultipleOf: 0.5}, MinLen: 1}).Required().
	UnknownStrict().
	Rule("matching_lengths", func(ctx context.Context, doc map[string]any, path string) rdf.Issues {
		scale, okScale := doc["scale"].([]any)
		offset, okOffset := doc["offset"].([]any)
		if !okScale || !okOffset {
			return nil
		}
		if len(scale) != len(offset) {
			return crossField(rdf.Child(path, "offset"), "scale and offset must have the same length", "scale", "offset")
		}
		for i, sc := range scale {
			if sc == nil {
				if off, ok := asFloat(offset[i]); ok && off == 0 {
					return crossField(rdf.Index(rdf.Child(path, "offset"), i), "offset must not be zero where scale is null", "scale", "offset")
				}
			}
		}
		return nil
	}).
	MustBuild()

func preprocessingStep() *schema.Object {
	return schema.New().
		Field("name", constraint.NewEnum(PreprocessingNames...)).Required().
		Field("kwargs", constraint.Mapping{Value: constraint.Any{}}).Default(map[string]any{}).
		UnknownStrict().
		MustBuild()
}

func postprocessingStep() *schema.Object {
	return schema.New().
		Field("name", constraint.NewEnum(PostprocessingNames...)).Required().
		Field("kwargs", constraint.Mapping{Value: constraint.Any{}}).Default(map[string]any{}).
		UnknownStrict().
		MustBuild()
}

var dataRange = constraint.Sequence{Elem: constraint.Float{AllowInf: true}, MinLen: 2, MaxLen: 2}

// InputTensor describes one model input.
var InputTensor = schema.New().
	Field("name", constraint.Identifier{}).Required().
	Field("description", constraint.String{}).Optional().
	Field("axes", constraint.Axes{}).Required().
	Field("data_type", constraint.NewEnum("float32")).Required().
	Field("shape", constraint.OneOf{Alts: []constraint.Kind{
		constraint.Sequence{Elem: constraint.IntMin(1), MinLen: 1},
		ParametrizedShape,
	}}).Required().
	Field("data_range", dataRange).Optional().
	Field("preprocessing", constraint.Sequence{Elem: preprocessingStep()}).Optional().
	UnknownStrict().
	Rule("axes_match_shape", axesMatchShape).
	Rule("batch_dimension", func(ctx context.Context, doc map[string]any, path string) rdf.Issues {
		axes, _ := doc["axes"].(string)
		bidx := strings.IndexByte(axes, 'b')
		if bidx < 0 {
			return nil
		}
		switch shape := doc["shape"].(type) {
		case []any:
			if bidx < len(shape) {
				if n, ok := asInt(shape[bidx]); ok && n != 1 {
					return crossField(rdf.Index(rdf.Child(path, "shape"), bidx), "input shape must be 1 in the batch dimension", "axes", "shape")
				}
			}
		case map[string]any:
			min, _ := shape["min"].([]any)
			step, _ := shape["step"].([]any)
			if bidx < len(step) {
				if n, ok := asInt(step[bidx]); ok && n != 0 {
					return crossField(rdf.Child(rdf.Child(path, "shape"), "step"), "shape step must be zero in the batch dimension", "axes", "shape")
				}
			}
			if bidx < len(min) {
				if n, ok := asInt(min[bidx]); ok && n != 1 {
					return crossField(rdf.Child(rdf.Child(path, "shape"), "min"), "minimal input shape must be 1 in the batch dimension", "axes", "shape")
				}
			}
		}
		return nil
	}).
	MustBuild()

// OutputTensor describes one model output, including the halo expected to be
// cropped by the consumer.
var OutputTensor = schema.New().
	Field("name", constraint.Identifier{}).Required().
	Field("description", constraint.String{}).Optional().
	Field("axes", constraint.Axes{}).Required().
	Field("data_type", constraint.NewEnum(OutputDataTypes...)).Required().
	Field("shape", constraint.OneOf{Alts: []constraint.Kind{
		constraint.Sequence{Elem: constraint.IntMin(1), MinLen: 1},
		ImplicitShape,
	}}).Required().
	Field("data_range", dataRange).Optional().
	Field("halo", constraint.Sequence{Elem: constraint.IntMin(0)}).Optional().
	Field("postprocessing", constraint.Sequence{Elem: postprocessingStep()}).Optional().
	UnknownStrict().
	Rule("axes_match_shape", axesMatchShape).
	Rule("halo_matches_shape", func(ctx context.Context, doc map[string]any, path string) rdf.Issues {
		halo, ok := doc["halo"].([]any)
		if !ok {
			return nil
		}
		if n, known := shapeRank(doc["shape"]); known && len(halo) != n {
			return crossField(rdf.Child(path, "halo"), fmt.Sprintf("halo length %d does not match shape length %d", len(halo), n), "halo", "shape")
		}
		return nil
	}).
	MustBuild()

// axesMatchShape ties the axes string length to the tensor rank.
func axesMatchShape(ctx context.Context, doc map[string]any, path string) rdf.Issues {
	axes, ok := doc["axes"].(string)
	if !ok {
		return nil
	}
	if n, known := shapeRank(doc["shape"]); known && len(axes) != n {
		return crossField(rdf.Child(path, "axes"), fmt.Sprintf("axes %q describe %d dimensions but shape has %d", axes, len(axes), n), "axes", "shape")
	}
	return nil
}

// shapeRank reports the dimensionality of an explicit, parametrized or
// implicit shape value.
func shapeRank(shape any) (int, bool) {
	switch s := shape.(type) {
	case []any:
		return len(s), true
	case map[string]any:
		if min, ok := s["min"].([]any); ok {
			return len(min), true
		}
		if scale, ok := s["scale"].([]any); ok {
			return len(scale), true
		}
	}
	return 0, false
}

// tensorNameOf projects a normalized tensor entry to its uniqueness key.
func tensorNameOf(v any) (string, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return "", false
	}
	name, ok := m["name"].(string)
	return name, ok
}
