package registry

import (
	"github.com/Tomaz-Vieira/spec-bioimage-io/generic"
	"github.com/Tomaz-Vieira/spec-bioimage-io/model"
	"github.com/Tomaz-Vieira/spec-bioimage-io/schema"
)

// NewDefault returns a registry preloaded with the built-in catalogs:
// every generic resource type at format versions 0.2.x, and models at
// 0.4.x and 0.3.x. Patch releases of a series share one catalog and
// normalize their format_version forward to the newest patch.
func NewDefault() *Registry {
	r := New()
	for _, typ := range generic.Types {
		registerSeries(r, typ, generic.FormatVersions, generic.Latest, generic.Schema)
	}
	registerSeries(r, "model", model.FormatVersions, model.Latest, model.Schema)
	registerSeries(r, "model", model.FormatVersionsV03, model.LatestV03, model.SchemaV03)
	return r
}

// registerSeries points every patch version of a series at one canonical
// SchemaVersion so validated documents carry the newest format_version.
func registerSeries(r *Registry, typ string, versions []string, latest string, s *schema.Object) {
	sv := &SchemaVersion{Type: typ, FormatVersion: latest, Schema: s}
	for _, v := range versions {
		r.MustRegister(typ, v, sv)
	}
}
