package model

import (
	"github.com/Tomaz-Vieira/spec-bioimage-io/constraint"
	"github.com/Tomaz-Vieira/spec-bioimage-io/generic"
	"github.com/Tomaz-Vieira/spec-bioimage-io/schema"
)

// WeightsFormats are the serialization formats a model may ship weights in.
var WeightsFormats = []string{
	"keras_hdf5",
	"onnx",
	"pytorch_state_dict",
	"tensorflow_js",
	"tensorflow_saved_model_bundle",
	"torchscript",
}

// WeightsFormatsV03 replaces torchscript with the older pytorch_script name.
var WeightsFormatsV03 = []string{
	"keras_hdf5",
	"onnx",
	"pytorch_script",
	"pytorch_state_dict",
	"tensorflow_js",
	"tensorflow_saved_model_bundle",
}

// Dependencies points at an environment file, e.g. "conda:environment.yaml".
var Dependencies = constraint.NewPattern("dependencies", `[a-zA-Z0-9_\-]+:.+`)

// weightsEntry builds the fields shared by every weight format.
func weightsEntry() *schema.Builder {
	return schema.New().
		Field("source", constraint.RelativeOrURL{}).Required().
		Field("sha256", constraint.Sha256{}).Optional().
		Field("attachments", generic.Attachments).Optional().
		Field("authors", constraint.Sequence{Elem: generic.Author}).Optional().
		Field("parent", constraint.NewEnum(WeightsFormats...)).Optional().
		Field("dependencies", Dependencies).Optional().
		UnknownStrict()
}

// Framework versions are looser than the document's own semver field:
// "1.15" is a common tensorflow version string.
var frameworkVersion = constraint.NewPattern("framework version", `[0-9]+\.[0-9]+(\.[0-9]+)?`)

var (
	tensorflowVersion = frameworkVersion
	pytorchVersion    = frameworkVersion
)

// Weights is the keyed union of weight entries for model 0.4, discriminated
// by the weights format used as mapping key. At least one entry is required.
var Weights = schema.Variants(1, map[string]*schema.Object{
	"keras_hdf5": weightsEntry().
		Field("tensorflow_version", tensorflowVersion).Optional().
		MustBuild(),
	"onnx": weightsEntry().
		Field("opset_version", constraint.IntMin(7)).Optional().
		MustBuild(),
	"pytorch_state_dict": weightsEntry().
		Field("architecture", constraint.NonEmpty()).Required().
		Field("architecture_sha256", constraint.Sha256{}).Optional().
		Field("kwargs", constraint.Mapping{Value: constraint.Any{}}).Optional().
		Field("pytorch_version", pytorchVersion).Optional().
		Rule("architecture_sha256", architectureSha256("architecture", "architecture_sha256")).
		MustBuild(),
	"torchscript": weightsEntry().
		Field("pytorch_version", pytorchVersion).Optional().
		MustBuild(),
	"tensorflow_js": weightsEntry().
		Field("tensorflow_version", tensorflowVersion).Optional().
		MustBuild(),
	"tensorflow_saved_model_bundle": weightsEntry().
		Field("tensorflow_version", tensorflowVersion).Optional().
		MustBuild(),
})

// weightsEntryV03 is the single entry shape used by every 0.3 format.
var weightsEntryV03 = schema.New().
	Field("source", constraint.RelativeOrURL{}).Required().
	Field("sha256", constraint.Sha256{}).Optional().
	Field("attachments", generic.Attachments).Optional().
	Field("authors", constraint.Sequence{Elem: generic.Author}).Optional().
	Field("parent", constraint.NewEnum(WeightsFormatsV03...)).Optional().
	Field("tensorflow_version", tensorflowVersion).Optional().
	Field("opset_version", constraint.IntMin(7)).Optional().
	UnknownStrict().
	MustBuild()

// WeightsV03 is the 0.3 weights union. The entry shape is shared; only the
// allowed format keys differ from 0.4.
var WeightsV03 = schema.Variants(1, map[string]*schema.Object{
	"keras_hdf5":                    weightsEntryV03,
	"onnx":                          weightsEntryV03,
	"pytorch_script":                weightsEntryV03,
	"pytorch_state_dict":            weightsEntryV03,
	"tensorflow_js":                 weightsEntryV03,
	"tensorflow_saved_model_bundle": weightsEntryV03,
})
