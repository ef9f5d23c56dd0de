package model

import (
	"github.com/Tomaz-Vieira/spec-bioimage-io/constraint"
	"github.com/Tomaz-Vieira/spec-bioimage-io/generic"
	"github.com/Tomaz-Vieira/spec-bioimage-io/schema"
)

// LatestV03 is the newest 0.3 patch release; older ones normalize to it.
const LatestV03 = "0.3.6"

// FormatVersionsV03 lists the accepted 0.3 patch releases.
var FormatVersionsV03 = []string{"0.3.0", "0.3.1", "0.3.2", "0.3.3", "0.3.4", "0.3.5", "0.3.6"}

// ParentV03 references the parent model by uri only; ids arrived with 0.4.
var ParentV03 = schema.New().
	Field("uri", constraint.RelativeOrURL{}).Required().
	Field("sha256", constraint.Sha256{}).Optional().
	UnknownStrict().
	MustBuild()

// SchemaV03 is the model RDF 0.3.6 catalog. It shares the tensor core with
// 0.4 but keeps the 0.3-era root fields: framework, language, dependencies,
// source and their kwargs/sha256 companions.
var SchemaV03 = buildSchemaV03()

func buildSchemaV03() *schema.Object {
	return schema.New().
		Field("format_version", constraint.SemVer{}).Required().
		Field("type", constraint.NewEnum("model")).Required().
		Field("name", constraint.Name{MaxLen: 64}).Required().
		Field("description", constraint.NonEmpty()).Required().
		Field("authors", constraint.Sequence{Elem: generic.Author, MinLen: 1}).Required().
		Field("cite", constraint.Sequence{Elem: generic.CiteEntry, MinLen: 1}).Required().
		Field("attachments", generic.Attachments).Optional().
		Field("config", constraint.Mapping{Value: constraint.Any{}}).Optional().
		Field("covers", constraint.Sequence{Elem: constraint.FileSuffix{
			Inner: constraint.RelativeOrURL{}, Suffixes: generic.CoverImageSuffixes,
		}}).Optional().
		Field("documentation", constraint.FileSuffix{
			Inner: constraint.RelativeOrURL{}, Suffixes: []string{"md"},
		}).Required().
		Field("download_url", constraint.URL{}).Optional().
		Field("git_repo", constraint.URL{}).Optional().
		Field("license", generic.LicenseEnum).Required().
		Field("links", constraint.Sequence{Elem: constraint.NonEmpty()}).Optional().
		Field("tags", constraint.Sequence{Elem: constraint.NonEmpty()}).Optional().
		Field("version", constraint.SemVer{}).Optional().
		Field("timestamp", constraint.Timestamp{}).Required().
		Field("framework", constraint.NewEnum("pytorch", "tensorflow")).Optional().
		Field("language", constraint.NewEnum("python", "java")).Optional().
		Field("dependencies", Dependencies).Optional().
		Field("kwargs", constraint.Mapping{Value: constraint.Any{}}).Optional().
		Field("source", constraint.NonEmpty()).Optional().
		Field("sha256", constraint.Sha256{}).Optional().
		Field("inputs", constraint.Sequence{Elem: InputTensor, MinLen: 1, UniqueBy: tensorNameOf}).Required().
		Field("outputs", constraint.Sequence{Elem: OutputTensor, MinLen: 1, UniqueBy: tensorNameOf}).Required().
		Field("test_inputs", npyFiles).Required().
		Field("test_outputs", npyFiles).Required().
		Field("sample_inputs", constraint.Sequence{Elem: constraint.RelativeOrURL{}}).Optional().
		Field("sample_outputs", constraint.Sequence{Elem: constraint.RelativeOrURL{}}).Optional().
		Field("weights", WeightsV03).Required().
		Field("parent", ParentV03).Optional().
		Field("run_mode", RunMode).Optional().
		Field("packaged_by", constraint.Sequence{Elem: generic.Author}).Optional().
		Rule("tensor_names", uniqueTensorNames).
		Rule("reference_tensors", referenceTensors).
		Rule("output_shapes", outputShapes).
		Rule("weights_parents", weightsParents).
		Rule("source_sha256", architectureSha256("source", "sha256")).
		MustBuild()
}
