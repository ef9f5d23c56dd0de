package rdf_test

import (
	"context"
	"errors"
	"testing"

	rdf "github.com/Tomaz-Vieira/spec-bioimage-io"
	"github.com/Tomaz-Vieira/spec-bioimage-io/load"
	"github.com/Tomaz-Vieira/spec-bioimage-io/registry"
)

const datasetYAML = `
format_version: 0.2.0
type: dataset
name: covid_if_training_data
description: Training data for cell segmentation
authors:
  - name: Jane Doe
    orcid: 0000-0001-2345-6789
cite:
  - text: Doe et al. 2021
    doi: 10.5281/zenodo.5764892
license: MIT
documentation: README.md
`

func TestLoadResolveValidate(t *testing.T) {
	doc, err := load.YAML([]byte(datasetYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	reg := registry.NewDefault()
	sv, err := reg.ResolveDocument(doc)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	out := sv.Validate(context.Background(), doc)
	if !out.Valid() {
		t.Fatalf("unexpected issues: %v", out.Issues)
	}
	// 0.2.0 is a patch alias of the 0.2.3 catalog
	if out.Normalized["format_version"] != "0.2.3" {
		t.Fatalf("expected format_version normalized forward, got %v", out.Normalized["format_version"])
	}
	if out.Normalized["type"] != "dataset" {
		t.Fatalf("got %v", out.Normalized["type"])
	}
}

func TestUnknownPairSurfacesSuggestions(t *testing.T) {
	doc, err := load.YAML([]byte("format_version: 0.9.9\ntype: model\nname: x\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	_, err = registry.NewDefault().ResolveDocument(doc)
	var unknown *registry.UnknownSchemaError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownSchemaError, got %v", err)
	}
	if len(unknown.Nearest) == 0 {
		t.Fatalf("expected nearest known pairs in the error")
	}
	iss := unknown.Issues()
	if iss[0].Code != rdf.CodeUnknownSchema {
		t.Fatalf("got %v", iss)
	}
}
