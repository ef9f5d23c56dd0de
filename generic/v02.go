// Package generic holds the schema catalog for generic resource description
// files: the 0.2 format family shared by generic resources, applications,
// notebooks, datasets and collections. Field semantics follow the published
// RDF specification; schemas are built once at init and are read-only.
package generic

import (
	"context"

	rdf "github.com/Tomaz-Vieira/spec-bioimage-io"
	"github.com/Tomaz-Vieira/spec-bioimage-io/constraint"
	"github.com/Tomaz-Vieira/spec-bioimage-io/i18n"
	"github.com/Tomaz-Vieira/spec-bioimage-io/schema"
)

const (
	// Latest is the canonical format version of this catalog.
	Latest = "0.2.3"
)

// FormatVersions lists the patch versions this catalog accepts; same-minor
// documents normalize forward to Latest.
var FormatVersions = []string{"0.2.0", "0.2.1", "0.2.2", Latest}

// Types lists the resource types described by the generic schema.
var Types = []string{"generic", "application", "notebook", "dataset", "collection"}

// CoverImageSuffixes are the accepted cover image formats.
var CoverImageSuffixes = []string{"jpg", "png", "gif", "jpeg"}

// Person builds the shared author/maintainer record. requireName and
// requireGithubUser select which of the two identity fields is mandatory.
func person(requireName, requireGithubUser bool) *schema.Object {
	b := schema.New().
		Field("name", constraint.Name{}).Optional().
		Field("affiliation", constraint.String{}).Optional().
		Field("email", constraint.Email{}).Optional().
		Field("github_user", constraint.NonEmpty()).Optional().
		Field("orcid", constraint.Orcid{}).Optional().
		UnknownStrict()
	if requireName {
		b.Field("name", constraint.Name{}).Required()
	}
	if requireGithubUser {
		b.Field("github_user", constraint.NonEmpty()).Required()
	}
	return b.MustBuild()
}

// Author requires a full name; the remaining person fields stay optional.
var Author = person(true, false)

// Maintainer requires a GitHub user name.
var Maintainer = person(false, true)

// Badge is a custom badge: label and target URL, optional icon.
var Badge = schema.New().
	Field("label", constraint.NonEmpty()).Required().
	Field("icon", constraint.RelativeOrURL{}).Optional().
	Field("url", constraint.URL{}).Required().
	UnknownStrict().
	MustBuild()

// CiteEntry is one citation: free text plus a DOI or a URL. Neither being
// present is a cross-field violation naming both fields.
var CiteEntry = schema.New().
	Field("text", constraint.NonEmpty()).Required().
	Field("doi", constraint.Doi{}).Optional().
	Field("url", constraint.URL{}).Optional().
	UnknownStrict().
	Rule("doi_or_url", func(ctx context.Context, doc map[string]any, path string) rdf.Issues {
		if _, ok := doc["doi"]; ok {
			return nil
		}
		if _, ok := doc["url"]; ok {
			return nil
		}
		return rdf.Issues{{
			Path: rdf.Child(path, "doi"), Code: rdf.CodeCrossField,
			Message: i18n.T(rdf.CodeCrossField),
			Hint:    "either doi or url is required",
			Params:  map[string]any{"fields": []string{"doi", "url"}},
		}}
	}).
	MustBuild()

// Attachments carries file attachments plus arbitrary consumer keys.
var Attachments = schema.New().
	Field("files", constraint.Sequence{Elem: constraint.RelativeOrURL{}}).Optional().
	MustBuild()

// Schema is the generic RDF 0.2.3 document schema.
var Schema = buildSchema()

func buildSchema() *schema.Object {
	return schema.New().
		Field("format_version", constraint.NonEmpty()).Required().
		Field("type", constraint.NonEmpty()).Required().
		Field("name", constraint.Name{}).Required().
		Field("description", constraint.NonEmpty()).Required().
		Field("authors", constraint.Sequence{Elem: Author}).Optional().
		Field("attachments", Attachments).Optional().
		Field("badges", constraint.Sequence{Elem: Badge}).Optional().
		Field("cite", constraint.Sequence{Elem: CiteEntry}).Optional().
		Field("config", constraint.Mapping{Value: constraint.Any{}}).Optional().
		Field("covers", constraint.Sequence{Elem: constraint.FileSuffix{Inner: constraint.RelativeOrURL{}, Suffixes: CoverImageSuffixes}}).Optional().
		Field("documentation", constraint.FileSuffix{Inner: constraint.RelativeOrURL{}, Suffixes: []string{"md"}}).Optional().
		Field("download_url", constraint.URL{}).Optional().
		Field("git_repo", constraint.URL{}).Optional().
		Field("icon", constraint.OneOf{Alts: []constraint.Kind{
			constraint.RelativeOrURL{},
			constraint.String{MinLen: 1, MaxLen: 2},
		}}).Optional().
		Field("id", constraint.NonEmpty()).Optional().
		Field("license", LicenseEnum).Optional().
		Field("links", constraint.Sequence{Elem: constraint.NonEmpty()}).Optional().
		Field("maintainers", constraint.Sequence{Elem: Maintainer}).Optional().
		Field("rdf_source", constraint.OneOf{Alts: []constraint.Kind{
			constraint.URL{},
			constraint.Doi{},
		}}).Optional().
		Field("source", constraint.RelativeOrURL{}).Optional().
		Field("tags", constraint.Sequence{Elem: constraint.NonEmpty()}).Optional().
		Field("version", constraint.SemVer{}).Optional().
		MustBuild()
}
