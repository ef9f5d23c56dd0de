// Package schema holds the document validator: an Object walks a parsed
// mapping against declared fields, collects issues instead of stopping at the
// first, applies defaults for absent optional fields, and runs named
// cross-field rules after the per-field pass.
package schema

import (
	"context"
	"sort"

	rdf "github.com/Tomaz-Vieira/spec-bioimage-io"
	"github.com/Tomaz-Vieira/spec-bioimage-io/constraint"
	"github.com/Tomaz-Vieira/spec-bioimage-io/i18n"
)

// UnknownPolicy decides what happens to keys the schema does not declare.
type UnknownPolicy int

const (
	// UnknownAllow copies undeclared keys through unchanged (RDFs are open
	// for consumer-specific config).
	UnknownAllow UnknownPolicy = iota
	// UnknownStrict reports undeclared keys as issues.
	UnknownStrict
	// UnknownStrip silently drops undeclared keys.
	UnknownStrip
)

// RuleFunc is a named cross-field rule. It runs over the normalized document
// after the per-field pass, and only when that pass collected no issues.
// Optional fields may still be absent; rules must tolerate that and stay
// silent rather than guess.
type RuleFunc func(ctx context.Context, doc map[string]any, path string) rdf.Issues

type rule struct {
	name string
	fn   RuleFunc
}

type field struct {
	kind       constraint.Kind
	required   bool
	def        any
	hasDefault bool
}

// Object is an immutable document schema. It implements constraint.Kind so
// structured records (authors, cite entries, tensors, weight entries) nest as
// ordinary field constraints.
type Object struct {
	fields     map[string]field
	unknown    UnknownPolicy
	rules      []rule
	sortedKeys []string
}

var _ constraint.Kind = (*Object)(nil)

// Check validates v as a nested record, rebasing child issues under path.
// Presence is not collected on the nested path; Validate is the entry point
// that does.
func (o *Object) Check(ctx context.Context, v any, path string) (any, rdf.Issues) {
	return o.check(ctx, v, path, nil)
}

// Validate walks doc against the schema and returns the outcome: the
// normalized document when zero issues were collected, otherwise the full
// ordered issue list. Presence flags are recorded for every top-level field.
func (o *Object) Validate(ctx context.Context, doc map[string]any) rdf.Outcome {
	pm := rdf.PresenceMap{"/": rdf.PresenceSeen}
	out, iss := o.check(ctx, doc, "", pm)
	if len(iss) > 0 {
		return rdf.Outcome{Presence: pm, Issues: iss}
	}
	m, _ := out.(map[string]any)
	return rdf.Outcome{Normalized: m, Presence: pm}
}

func (o *Object) check(ctx context.Context, v any, path string, pm rdf.PresenceMap) (any, rdf.Issues) {
	src, ok := v.(map[string]any)
	if !ok {
		return nil, rdf.Issues{{Path: orRoot(path), Code: rdf.CodeInvalidType, Message: i18n.T(rdf.CodeInvalidType), Hint: "expected mapping"}}
	}
	out := make(map[string]any, len(src))
	var iss rdf.Issues
	for _, k := range o.sortedKeys {
		f := o.fields[k]
		p := rdf.Child(path, k)
		val, exists := src[k]
		if exists && val == nil && !f.required {
			// explicit null on an optional field counts as absent
			if pm != nil {
				pm[p] |= rdf.PresenceSeen | rdf.PresenceWasNull
			}
			exists = false
		}
		if exists {
			if pm != nil {
				pm[p] |= rdf.PresenceSeen
			}
			nv, i2 := f.kind.Check(ctx, val, p)
			if len(i2) > 0 {
				iss = rdf.AppendIssues(iss, i2...)
				if rdf.IsFailFast(ctx) {
					return nil, iss
				}
				continue
			}
			out[k] = nv
			continue
		}
		if f.hasDefault {
			if pm != nil {
				pm[p] |= rdf.PresenceDefaultApplied
			}
			out[k] = f.def
			continue
		}
		if f.required {
			iss = rdf.AppendIssues(iss, rdf.Issue{Path: p, Code: rdf.CodeRequired, Message: i18n.T(rdf.CodeRequired)})
			if rdf.IsFailFast(ctx) {
				return nil, iss
			}
		}
	}
	iss = rdf.AppendIssues(iss, o.collectUnknown(src, out, path, pm)...)
	if len(iss) > 0 {
		// In out, a field that was present but invalid looks the same as an
		// absent one, so rules could misfire on top of the field's own issue.
		// Rules only run once the field pass is clean.
		return nil, iss
	}
	for _, r := range o.rules {
		i2 := r.fn(ctx, out, path)
		for i := range i2 {
			if i2[i].Rule == "" {
				i2[i].Rule = r.name
			}
		}
		iss = rdf.AppendIssues(iss, i2...)
		if rdf.IsFailFast(ctx) && len(iss) > 0 {
			return nil, iss
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// collectUnknown processes undeclared keys according to the unknown policy.
func (o *Object) collectUnknown(src, out map[string]any, path string, pm rdf.PresenceMap) rdf.Issues {
	var iss rdf.Issues
	uks := make([]string, 0, len(src))
	for k := range src {
		if _, known := o.fields[k]; !known {
			uks = append(uks, k)
		}
	}
	sort.Strings(uks)
	for _, k := range uks {
		p := rdf.Child(path, k)
		if pm != nil {
			pm[p] |= rdf.PresenceSeen
		}
		switch o.unknown {
		case UnknownAllow:
			out[k] = src[k]
		case UnknownStrict:
			iss = rdf.AppendIssues(iss, rdf.Issue{Path: p, Code: rdf.CodeUnknownKey, Message: i18n.T(rdf.CodeUnknownKey)})
		case UnknownStrip:
			// drop
		}
	}
	return iss
}

func orRoot(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
