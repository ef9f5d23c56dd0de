// Package rdf validates bioimage.io resource description files (RDFs).
//
//   - A stable error model via Issues (JSON Pointer, code, message)
//   - Field constraints under constraint/, document schemas under schema/
//   - Versioned schema catalogs under generic/ and model/, resolved via registry/
//   - YAML/JSON loading under load/, the CLI under cmd/rdfcheck
//
// Design policy:
//
//   - Keep only shared vocabulary (issues, presence, paths) in the root package.
//   - Validation is pure: no I/O, no filesystem or URL fetching, no locking;
//     a built catalog is read-only and safe for concurrent use.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	doc, err := load.YAML(data)
//	sv, err := registry.NewDefault().ResolveDocument(doc)
//	out := sv.Validate(ctx, doc)
//	if !out.Valid() { ... out.Issues ... }
package rdf
