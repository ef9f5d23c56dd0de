// Package registry resolves which schema catalog applies to a document.
// Lookup is exact-match on the (type, format_version) pair; there is no fuzzy
// version resolution. The catalog is built once and read-only afterwards, so
// concurrent resolution and validation need no locking.
package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	rdf "github.com/Tomaz-Vieira/spec-bioimage-io"
	"github.com/Tomaz-Vieira/spec-bioimage-io/i18n"
	"github.com/Tomaz-Vieira/spec-bioimage-io/schema"
)

// SchemaVersion pairs one resource type and format version with its schema.
type SchemaVersion struct {
	Type          string
	FormatVersion string
	Schema        *schema.Object
}

// Validate runs the document validator and pins the normalized document's
// format_version to this catalog's version (patch aliases normalize forward).
func (sv *SchemaVersion) Validate(ctx context.Context, doc map[string]any) rdf.Outcome {
	out := sv.Schema.Validate(ctx, doc)
	if out.Valid() {
		out.Normalized["format_version"] = sv.FormatVersion
		out.Normalized["type"] = sv.Type
	}
	return out
}

// UnknownSchemaError reports a (type, format_version) pair with no registered
// schema. Nearest lists known pairs ranked by edit distance for diagnostics;
// no semantic guess is made.
type UnknownSchemaError struct {
	Type          string
	FormatVersion string
	Nearest       []string
}

func (e *UnknownSchemaError) Error() string {
	msg := fmt.Sprintf("unknown schema: type %q format_version %q", e.Type, e.FormatVersion)
	if len(e.Nearest) > 0 {
		msg += " (known: " + strings.Join(e.Nearest, ", ") + ")"
	}
	return msg
}

// Issues renders the error in the shared issue vocabulary.
func (e *UnknownSchemaError) Issues() rdf.Issues {
	return rdf.Issues{{
		Path: "/format_version", Code: rdf.CodeUnknownSchema,
		Message: i18n.T(rdf.CodeUnknownSchema),
		Hint:    strings.Join(e.Nearest, ", "),
		Params:  map[string]any{"type": e.Type, "format_version": e.FormatVersion},
		Cause:   e,
	}}
}

// Registry is the immutable schema catalog.
type Registry struct {
	entries map[string]*SchemaVersion
	keys    []string
}

func key(typ, formatVersion string) string { return typ + " " + formatVersion }

// New returns an empty registry.
func New() *Registry {
	return &Registry{entries: map[string]*SchemaVersion{}}
}

// Register adds a schema version under the (typ, formatVersion) pair. The
// pair may be a patch alias of the catalog's canonical version; resolution
// stays exact-match either way. Registering the same pair twice is a
// programming error.
func (r *Registry) Register(typ, formatVersion string, sv *SchemaVersion) error {
	k := key(typ, formatVersion)
	if _, dup := r.entries[k]; dup {
		return fmt.Errorf("registry: duplicate schema for %s", k)
	}
	r.entries[k] = sv
	r.keys = append(r.keys, k)
	sort.Strings(r.keys)
	return nil
}

// MustRegister is like Register but panics on error; catalogs register at
// process start.
func (r *Registry) MustRegister(typ, formatVersion string, sv *SchemaVersion) {
	if err := r.Register(typ, formatVersion, sv); err != nil {
		panic(err)
	}
}

// Resolve looks up the schema for an exact (type, format_version) pair.
func (r *Registry) Resolve(typ, formatVersion string) (*SchemaVersion, error) {
	if sv, ok := r.entries[key(typ, formatVersion)]; ok {
		return sv, nil
	}
	return nil, &UnknownSchemaError{
		Type:          typ,
		FormatVersion: formatVersion,
		Nearest:       r.nearest(key(typ, formatVersion), 3),
	}
}

// ResolveDocument reads the entry-precondition fields `type` and
// `format_version` from a raw document and resolves them. Both must be
// present strings before any other field is looked at.
func (r *Registry) ResolveDocument(doc map[string]any) (*SchemaVersion, error) {
	typ, err := requireString(doc, "type")
	if err != nil {
		return nil, err
	}
	fv, err := requireString(doc, "format_version")
	if err != nil {
		return nil, err
	}
	return r.Resolve(typ, fv)
}

func requireString(doc map[string]any, name string) (string, error) {
	v, ok := doc[name]
	if !ok || v == nil {
		return "", rdf.Issues{{Path: "/" + name, Code: rdf.CodeRequired, Message: i18n.T(rdf.CodeRequired)}}
	}
	s, ok := v.(string)
	if !ok {
		return "", rdf.Issues{{Path: "/" + name, Code: rdf.CodeInvalidType, Message: i18n.T(rdf.CodeInvalidType), Hint: "expected string"}}
	}
	return s, nil
}

// nearest ranks known pairs by edit distance to the requested one.
func (r *Registry) nearest(want string, n int) []string {
	type scored struct {
		key  string
		dist int
	}
	sc := make([]scored, 0, len(r.keys))
	for _, k := range r.keys {
		sc = append(sc, scored{key: k, dist: levenshtein.ComputeDistance(want, k)})
	}
	sort.SliceStable(sc, func(i, j int) bool { return sc[i].dist < sc[j].dist })
	if n > len(sc) {
		n = len(sc)
	}
	out := make([]string, 0, n)
	for _, s := range sc[:n] {
		out = append(out, strings.Replace(s.key, " ", "/", 1))
	}
	return out
}
