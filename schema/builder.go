package schema

import (
	"context"
	"fmt"
	"sort"

	"github.com/Tomaz-Vieira/spec-bioimage-io/constraint"
)

// Builder assembles an immutable Object. Catalogs build their schemas once at
// package init and share them read-only afterwards.
type Builder struct {
	fields  map[string]field
	unknown UnknownPolicy
	rules   []rule
}

type fieldStep struct {
	b    *Builder
	name string
}

// New creates a builder with open unknown-key handling, the RDF default.
func New() *Builder {
	return &Builder{fields: map[string]field{}, unknown: UnknownAllow}
}

// Field registers a field with its constraint.
func (b *Builder) Field(name string, k constraint.Kind) *fieldStep {
	b.fields[name] = field{kind: k}
	return &fieldStep{b: b, name: name}
}

// Required marks the field as required and returns the builder.
func (f *fieldStep) Required() *Builder {
	fl := f.b.fields[f.name]
	fl.required = true
	f.b.fields[f.name] = fl
	return f.b
}

// Optional marks the field as optional (the default) and returns the builder.
func (f *fieldStep) Optional() *Builder {
	fl := f.b.fields[f.name]
	fl.required = false
	f.b.fields[f.name] = fl
	return f.b
}

// Default sets the value substituted when the optional field is absent.
// The default must itself satisfy the field's constraint; Build verifies.
func (f *fieldStep) Default(v any) *Builder {
	fl := f.b.fields[f.name]
	fl.def = v
	fl.hasDefault = true
	f.b.fields[f.name] = fl
	return f.b
}

func (f *fieldStep) Field(name string, k constraint.Kind) *fieldStep { return f.b.Field(name, k) }
func (f *fieldStep) Build() (*Object, error) { return f.b.Build() }
func (f *fieldStep) MustBuild() *Object      { return f.b.MustBuild() }

// UnknownStrict reports undeclared keys as issues.
func (b *Builder) UnknownStrict() *Builder {
	b.unknown = UnknownStrict
	return b
}

// UnknownStrip drops undeclared keys from the normalized document.
func (b *Builder) UnknownStrip() *Builder {
	b.unknown = UnknownStrip
	return b
}

// Rule registers a named cross-field rule, executed after the field pass in
// registration order.
func (b *Builder) Rule(name string, fn RuleFunc) *Builder {
	if fn == nil {
		return b
	}
	b.rules = append(b.rules, rule{name: name, fn: fn})
	return b
}

// Build validates the builder and returns the immutable Object.
func (b *Builder) Build() (*Object, error) {
	keys := make([]string, 0, len(b.fields))
	for k := range b.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	// a declared default must satisfy its own field constraint
	ctx := context.Background()
	for _, k := range keys {
		f := b.fields[k]
		if !f.hasDefault || f.def == nil {
			continue
		}
		if _, iss := f.kind.Check(ctx, f.def, "/"+k); len(iss) > 0 {
			return nil, fmt.Errorf("schema: default for field %q violates its own constraint: %w", k, iss)
		}
	}
	return &Object{fields: b.fields, unknown: b.unknown, rules: b.rules, sortedKeys: keys}, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Object {
	o, err := b.Build()
	if err != nil {
		panic(err)
	}
	return o
}
