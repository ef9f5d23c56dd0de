package model_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rdf "github.com/Tomaz-Vieira/spec-bioimage-io"
	"github.com/Tomaz-Vieira/spec-bioimage-io/model"
)

func validModelDoc() map[string]any {
	return map[string]any{
		"format_version": "0.4.2",
		"type":           "model",
		"name":           "nucleus-segmentation",
		"description":    "Nucleus segmentation for fluorescence microscopy",
		"authors": []any{
			map[string]any{"name": "Jane Doe", "orcid": "0000-0001-2345-6789"},
		},
		"cite": []any{
			map[string]any{"text": "Doe et al. 2021", "doi": "10.5281/zenodo.5764892"},
		},
		"documentation": "docs/README.md",
		"license":       "MIT",
		"timestamp":     "2021-11-12T15:00:00Z",
		"inputs": []any{
			map[string]any{
				"name":      "raw",
				"axes":      "byxc",
				"data_type": "float32",
				"shape": map[string]any{
					"min":  []any{1, 64, 64, 1},
					"step": []any{0, 16, 16, 0},
				},
			},
		},
		"outputs": []any{
			map[string]any{
				"name":      "mask",
				"axes":      "byxc",
				"data_type": "float32",
				"shape": map[string]any{
					"reference_tensor": "raw",
					"scale":            []any{1.0, 1.0, 1.0, 1.0},
					"offset":           []any{0.0, 0.0, 0.0, 0.0},
				},
			},
		},
		"test_inputs":  []any{"test_input.npy"},
		"test_outputs": []any{"test_output.npy"},
		"weights": map[string]any{
			"torchscript": map[string]any{
				"source": "weights.pt",
			},
		},
	}
}

func validate(t *testing.T, doc map[string]any) rdf.Outcome {
	t.Helper()
	return model.Schema.Validate(context.Background(), doc)
}

func TestModelValidDocument(t *testing.T) {
	out := validate(t, validModelDoc())
	require.Empty(t, out.Issues)
	assert.Equal(t, "nucleus-segmentation", out.Normalized["name"])
}

func TestParametrizedShapeLengths(t *testing.T) {
	doc := validModelDoc()
	doc["inputs"].([]any)[0].(map[string]any)["shape"] = map[string]any{
		"min":  []any{1, 64, 64, 1},
		"step": []any{0, 16, 16},
	}
	out := validate(t, doc)
	require.NotEmpty(t, out.Issues)
	found := false
	for _, iss := range out.Issues {
		if iss.Rule == "matching_lengths" {
			found = true
		}
	}
	assert.True(t, found, "expected min/step length mismatch, got %v", out.Issues)
}

func TestBatchDimensionRule(t *testing.T) {
	doc := validModelDoc()
	in := doc["inputs"].([]any)[0].(map[string]any)
	in["shape"] = map[string]any{
		"min":  []any{2, 64, 64, 1},
		"step": []any{0, 16, 16, 0},
	}
	out := validate(t, doc)
	require.NotEmpty(t, out.Issues)
	assert.Equal(t, rdf.CodeCrossField, out.Issues[0].Code)

	in["shape"] = map[string]any{
		"min":  []any{1, 64, 64, 1},
		"step": []any{1, 16, 16, 0},
	}
	out = validate(t, doc)
	require.NotEmpty(t, out.Issues, "step must be zero in the batch dimension")
}

func TestDuplicateTensorNames(t *testing.T) {
	doc := validModelDoc()
	outTensor := doc["outputs"].([]any)[0].(map[string]any)
	outTensor["name"] = "raw"
	out := validate(t, doc)
	require.NotEmpty(t, out.Issues)
	assert.Equal(t, rdf.CodeDuplicateValue, out.Issues[0].Code)
	assert.Equal(t, "/outputs/0/name", out.Issues[0].Path)
}

func TestReferenceTensorMustExist(t *testing.T) {
	doc := validModelDoc()
	shape := doc["outputs"].([]any)[0].(map[string]any)["shape"].(map[string]any)
	shape["reference_tensor"] = "no_such_tensor"
	out := validate(t, doc)
	require.NotEmpty(t, out.Issues)
	assert.Equal(t, rdf.CodeCrossField, out.Issues[0].Code)
	assert.Equal(t, "/outputs/0/shape/reference_tensor", out.Issues[0].Path)
}

func TestReferenceTensorScaleLength(t *testing.T) {
	doc := validModelDoc()
	outTensor := doc["outputs"].([]any)[0].(map[string]any)
	// locally consistent 3d output whose scale cannot cover the 4d reference
	outTensor["axes"] = "byx"
	shape := outTensor["shape"].(map[string]any)
	shape["scale"] = []any{1.0, 1.0, 1.0}
	shape["offset"] = []any{0.0, 0.0, 0.0}
	out := validate(t, doc)
	require.NotEmpty(t, out.Issues)
	found := false
	for _, iss := range out.Issues {
		if iss.Path == "/outputs/0/shape/scale" && iss.Code == rdf.CodeCrossField {
			found = true
		}
	}
	assert.True(t, found, "expected scale length mismatch against reference tensor, got %v", out.Issues)
}

func TestHaloLeavesNoPixels(t *testing.T) {
	doc := validModelDoc()
	outTensor := doc["outputs"].([]any)[0].(map[string]any)
	// minimal output shape is [1,64,64,1]; halo 32 crops 64 pixels per axis
	outTensor["halo"] = []any{0, 32, 32, 0}
	out := validate(t, doc)
	require.NotEmpty(t, out.Issues)
	found := false
	for _, iss := range out.Issues {
		if iss.Rule == "output_shapes" {
			found = true
		}
	}
	assert.True(t, found, "expected halo too large for minimal shape, got %v", out.Issues)

	// halo 16 leaves 64-2*16 = 32 pixels
	outTensor["halo"] = []any{0, 16, 16, 0}
	out = validate(t, doc)
	require.Empty(t, out.Issues)
}

func TestHaloLengthMatchesShape(t *testing.T) {
	doc := validModelDoc()
	outTensor := doc["outputs"].([]any)[0].(map[string]any)
	outTensor["halo"] = []any{0, 16, 16}
	out := validate(t, doc)
	require.NotEmpty(t, out.Issues)
	found := false
	for _, iss := range out.Issues {
		if iss.Rule == "halo_matches_shape" {
			found = true
		}
	}
	assert.True(t, found, "expected halo length mismatch, got %v", out.Issues)
}

func TestWeightsParentRules(t *testing.T) {
	doc := validModelDoc()
	doc["weights"] = map[string]any{
		"torchscript": map[string]any{
			"source": "weights.pt",
		},
		"onnx": map[string]any{
			"source": "weights.onnx",
			"parent": "torchscript",
		},
	}
	out := validate(t, doc)
	require.Empty(t, out.Issues)

	// two entries without parent
	doc["weights"].(map[string]any)["onnx"] = map[string]any{"source": "weights.onnx"}
	out = validate(t, doc)
	require.NotEmpty(t, out.Issues)
	assert.Equal(t, "weights_parents", out.Issues[0].Rule)

	// parent naming an absent entry
	doc["weights"].(map[string]any)["onnx"] = map[string]any{"source": "weights.onnx", "parent": "keras_hdf5"}
	out = validate(t, doc)
	require.NotEmpty(t, out.Issues)
	assert.Equal(t, "/weights/onnx/parent", out.Issues[0].Path)

	// self-parent
	doc["weights"].(map[string]any)["onnx"] = map[string]any{"source": "weights.onnx", "parent": "onnx"}
	out = validate(t, doc)
	require.NotEmpty(t, out.Issues)
}

func TestParentIDXorURI(t *testing.T) {
	out := model.Parent.Validate(context.Background(), map[string]any{
		"id":  "10.5281/zenodo.5764892",
		"uri": "https://example.com/model.zip",
	})
	require.Len(t, out.Issues, 1)
	assert.Equal(t, rdf.CodeCrossField, out.Issues[0].Code)
	assert.Equal(t, "id_xor_uri", out.Issues[0].Rule)

	// an empty id already fails its own check; the rule stays quiet
	out = model.Parent.Validate(context.Background(), map[string]any{"id": ""})
	require.Len(t, out.Issues, 1)
	assert.Equal(t, rdf.CodeTooShort, out.Issues[0].Code)
	assert.Equal(t, "/id", out.Issues[0].Path)
}

func TestUnknownWeightsFormatRejected(t *testing.T) {
	doc := validModelDoc()
	doc["weights"] = map[string]any{
		"caffe": map[string]any{"source": "weights.caffemodel"},
	}
	out := validate(t, doc)
	require.NotEmpty(t, out.Issues)
	assert.Equal(t, rdf.CodeInvalidEnum, out.Issues[0].Code)
	assert.Equal(t, "/weights/caffe", out.Issues[0].Path)
}

func TestArchitectureSha256Conditional(t *testing.T) {
	doc := validModelDoc()
	// source-file form needs the digest
	doc["weights"] = map[string]any{
		"pytorch_state_dict": map[string]any{
			"source":       "weights.pt",
			"architecture": "unet.py:UNet2D",
		},
	}
	out := validate(t, doc)
	require.NotEmpty(t, out.Issues)
	assert.Equal(t, rdf.CodeRequired, out.Issues[0].Code)
	assert.Equal(t, "/weights/pytorch_state_dict/architecture_sha256", out.Issues[0].Path)

	// import-path form must not carry one
	doc["weights"] = map[string]any{
		"pytorch_state_dict": map[string]any{
			"source":              "weights.pt",
			"architecture":        "bioimageio.torch.UNet2D",
			"architecture_sha256": "a665a45920422f9d417e4867efdc4fb8a04a1f3fff1fa07e998e86f7f7a27ae3",
		},
	}
	out = validate(t, doc)
	require.NotEmpty(t, out.Issues)
	assert.Equal(t, rdf.CodeCrossField, out.Issues[0].Code)

	// well-formed either way
	doc["weights"] = map[string]any{
		"pytorch_state_dict": map[string]any{
			"source":              "weights.pt",
			"architecture":        "unet.py:UNet2D",
			"architecture_sha256": "a665a45920422f9d417e4867efdc4fb8a04a1f3fff1fa07e998e86f7f7a27ae3",
		},
	}
	out = validate(t, doc)
	require.Empty(t, out.Issues)
}

func TestBadgesForbiddenOnModels(t *testing.T) {
	doc := validModelDoc()
	doc["badges"] = []any{map[string]any{"label": "Colab", "url": "https://example.com"}}
	out := validate(t, doc)
	require.NotEmpty(t, out.Issues)
	assert.Equal(t, "/badges", out.Issues[0].Path)
}

func TestAxesMustMatchShapeRank(t *testing.T) {
	doc := validModelDoc()
	doc["inputs"].([]any)[0].(map[string]any)["axes"] = "byx"
	out := validate(t, doc)
	require.NotEmpty(t, out.Issues)
	found := false
	for _, iss := range out.Issues {
		if iss.Rule == "axes_match_shape" {
			found = true
		}
	}
	assert.True(t, found, "expected axes/shape rank mismatch, got %v", out.Issues)
}

func TestPreprocessingSelfReferenceForbidden(t *testing.T) {
	doc := validModelDoc()
	in := doc["inputs"].([]any)[0].(map[string]any)
	in["preprocessing"] = []any{
		map[string]any{
			"name":   "scale_range",
			"kwargs": map[string]any{"reference_tensor": "raw"},
		},
	}
	out := validate(t, doc)
	require.NotEmpty(t, out.Issues)
	assert.Equal(t, rdf.CodeCrossField, out.Issues[0].Code)
}

func TestModelV03Document(t *testing.T) {
	doc := validModelDoc()
	doc["format_version"] = "0.3.6"
	doc["weights"] = map[string]any{
		"pytorch_script": map[string]any{"source": "weights.pt"},
	}
	doc["framework"] = "pytorch"
	doc["language"] = "python"
	doc["dependencies"] = "conda:environment.yaml"
	out := model.SchemaV03.Validate(context.Background(), doc)
	require.Empty(t, out.Issues)

	doc["framework"] = "caffe"
	out = model.SchemaV03.Validate(context.Background(), doc)
	require.NotEmpty(t, out.Issues)
	assert.Equal(t, "/framework", out.Issues[0].Path)
}
