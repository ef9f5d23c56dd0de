package model

import (
	"context"

	rdf "github.com/Tomaz-Vieira/spec-bioimage-io"
	"github.com/Tomaz-Vieira/spec-bioimage-io/constraint"
	"github.com/Tomaz-Vieira/spec-bioimage-io/generic"
	"github.com/Tomaz-Vieira/spec-bioimage-io/schema"
)

// Latest is the newest model format version this catalog normalizes to.
const Latest = "0.4.2"

// FormatVersions lists every 0.4 patch release accepted as an alias of the
// 0.4.2 catalog.
var FormatVersions = []string{"0.4.0", "0.4.1", "0.4.2"}

// Parent links a model to the one it was derived from, by zenodo id or uri.
var Parent = schema.New().
	Field("id", constraint.NonEmpty()).Optional().
	Field("uri", constraint.RelativeOrURL{}).Optional().
	Field("sha256", constraint.Sha256{}).Optional().
	UnknownStrict().
	Rule("id_xor_uri", func(ctx context.Context, doc map[string]any, path string) rdf.Issues {
		_, hasID := doc["id"]
		_, hasURI := doc["uri"]
		if hasID == hasURI {
			return crossField(path, "exactly one of id and uri must be given", "id", "uri")
		}
		return nil
	}).
	MustBuild()

// RunMode names a custom execution mode, e.g. tiling.
var RunMode = schema.New().
	Field("name", constraint.NonEmpty()).Required().
	Field("kwargs", constraint.Mapping{Value: constraint.Any{}}).Optional().
	MustBuild()

// TrainingData is either a link to a registered dataset by id or an inline
// dataset description. Unknown keys pass through for the inline form.
var TrainingData = schema.New().
	Field("id", constraint.NonEmpty()).Optional().
	MustBuild()

var npyFiles = constraint.Sequence{
	Elem:   constraint.FileSuffix{Inner: constraint.RelativeOrURL{}, Suffixes: []string{"npy"}},
	MinLen: 1,
}

// Schema is the model RDF 0.4.2 catalog.
var Schema = buildSchemaV04()

func buildSchemaV04() *schema.Object {
	return schema.New().
		Field("format_version", constraint.SemVer{}).Required().
		Field("type", constraint.NewEnum("model")).Required().
		Field("name", constraint.Name{MaxLen: 64}).Required().
		Field("description", constraint.NonEmpty()).Required().
		Field("authors", constraint.Sequence{Elem: generic.Author, MinLen: 1}).Required().
		Field("cite", constraint.Sequence{Elem: generic.CiteEntry, MinLen: 1}).Required().
		Field("attachments", generic.Attachments).Optional().
		Field("badges", constraint.Forbidden{Hint: "badges are not allowed on model documents"}).Optional().
		Field("config", constraint.Mapping{Value: constraint.Any{}}).Optional().
		Field("covers", constraint.Sequence{Elem: constraint.FileSuffix{
			Inner: constraint.RelativeOrURL{}, Suffixes: generic.CoverImageSuffixes,
		}}).Optional().
		Field("documentation", constraint.FileSuffix{
			Inner: constraint.RelativeOrURL{}, Suffixes: []string{"md"},
		}).Required().
		Field("download_url", constraint.URL{}).Optional().
		Field("git_repo", constraint.URL{}).Optional().
		Field("icon", constraint.OneOf{Alts: []constraint.Kind{
			constraint.RelativeOrURL{}, constraint.String{MinLen: 1, MaxLen: 2},
		}}).Optional().
		Field("id", constraint.NonEmpty()).Optional().
		Field("license", generic.LicenseEnum).Required().
		Field("links", constraint.Sequence{Elem: constraint.NonEmpty()}).Optional().
		Field("maintainers", constraint.Sequence{Elem: generic.Maintainer}).Optional().
		Field("rdf_source", constraint.OneOf{Alts: []constraint.Kind{
			constraint.URL{}, constraint.Doi{},
		}}).Optional().
		Field("tags", constraint.Sequence{Elem: constraint.NonEmpty()}).Optional().
		Field("version", constraint.SemVer{}).Optional().
		Field("timestamp", constraint.Timestamp{}).Required().
		Field("inputs", constraint.Sequence{Elem: InputTensor, MinLen: 1, UniqueBy: tensorNameOf}).Required().
		Field("outputs", constraint.Sequence{Elem: OutputTensor, MinLen: 1, UniqueBy: tensorNameOf}).Required().
		Field("test_inputs", npyFiles).Required().
		Field("test_outputs", npyFiles).Required().
		Field("sample_inputs", constraint.Sequence{Elem: constraint.RelativeOrURL{}}).Optional().
		Field("sample_outputs", constraint.Sequence{Elem: constraint.RelativeOrURL{}}).Optional().
		Field("weights", Weights).Required().
		Field("parent", Parent).Optional().
		Field("run_mode", RunMode).Optional().
		Field("packaged_by", constraint.Sequence{Elem: generic.Author}).Optional().
		Field("training_data", TrainingData).Optional().
		Rule("tensor_names", uniqueTensorNames).
		Rule("reference_tensors", referenceTensors).
		Rule("output_shapes", outputShapes).
		Rule("weights_parents", weightsParents).
		MustBuild()
}
