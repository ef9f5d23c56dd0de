// Package load decodes resource description documents from YAML or JSON
// into the string-keyed maps the schema catalogs validate.
package load

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	rdf "github.com/Tomaz-Vieira/spec-bioimage-io"
)

// YAML decodes the first YAML document in data. Mapping keys must be
// strings; non-string keys are dropped, matching JSON semantics.
func YAML(data []byte) (map[string]any, error) {
	return YAMLReader(bytes.NewReader(data))
}

// YAMLReader decodes the first YAML document from r.
func YAMLReader(r io.Reader) (map[string]any, error) {
	dec := yaml.NewDecoder(r)
	var node any
	if err := dec.Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, parseError("empty document")
		}
		return nil, parseError(err.Error())
	}
	m := toStringMap(node)
	if m == nil {
		return nil, parseError(fmt.Sprintf("top-level value must be a mapping, got %T", node))
	}
	return m, nil
}

// JSON decodes a JSON object. Numbers decode as json.Number so integer
// fields survive without float rounding.
func JSON(data []byte) (map[string]any, error) {
	return JSONReader(bytes.NewReader(data))
}

// JSONReader decodes a JSON object from r.
func JSONReader(r io.Reader) (map[string]any, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	var node any
	if err := dec.Decode(&node); err != nil {
		return nil, parseError(err.Error())
	}
	m, ok := node.(map[string]any)
	if !ok {
		return nil, parseError(fmt.Sprintf("top-level value must be an object, got %T", node))
	}
	return stringMapValues(m), nil
}

func parseError(msg string) error {
	return rdf.Issues{{Path: "", Code: rdf.CodeParseError, Message: msg}}
}

// toStringMap converts decoded YAML values, which may contain map[any]any,
// into JSON-like map[string]any recursively. Non-map roots return nil.
func toStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return stringMapValues(t)
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = normalizeValue(vv)
		}
		return out
	default:
		return nil
	}
}

func stringMapValues(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, vv := range m {
		out[k] = normalizeValue(vv)
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return toStringMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = normalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}
