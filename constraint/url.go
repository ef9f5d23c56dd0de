package constraint

import (
	"context"
	"net/url"
	gopath "path"
	"strings"

	rdf "github.com/Tomaz-Vieira/spec-bioimage-io"
)

// MaxURLLength bounds absolute URLs, matching legacy browser limits.
const MaxURLLength = 2083

// URL validates an absolute URL with a restricted scheme allow-list
// (http/https unless configured otherwise). The target is never fetched.
type URL struct {
	Schemes []string
}

func (c URL) schemes() []string {
	if len(c.Schemes) == 0 {
		return []string{"http", "https"}
	}
	return c.Schemes
}

func (c URL) Check(ctx context.Context, v any, path string) (any, rdf.Issues) {
	str, ok := v.(string)
	if !ok {
		return nil, fail(path, rdf.CodeInvalidType, "expected string", nil)
	}
	str = strings.TrimSpace(str)
	if len(str) > MaxURLLength {
		return nil, fail(path, rdf.CodeTooLong, "URL exceeds 2083 characters", map[string]any{"max": MaxURLLength, "got": len(str)})
	}
	u, err := url.Parse(str)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, fail(path, rdf.CodeInvalidFormat, "absolute URL", map[string]any{"got": str})
	}
	for _, s := range c.schemes() {
		if u.Scheme == s {
			return str, nil
		}
	}
	return nil, fail(path, rdf.CodeInvalidFormat, "URL scheme must be one of "+strings.Join(c.schemes(), ", "), map[string]any{"got": u.Scheme})
}

// RelativePath validates a path that stays within the resource's base
// directory: relative, no traversal above the base, no scheme prefix.
// Existence of the file is not checked.
type RelativePath struct{}

func (RelativePath) Check(ctx context.Context, v any, path string) (any, rdf.Issues) {
	str, ok := v.(string)
	if !ok {
		return nil, fail(path, rdf.CodeInvalidType, "expected string", nil)
	}
	str = strings.TrimSpace(str)
	if str == "" {
		return nil, fail(path, rdf.CodeTooShort, "path must not be empty", nil)
	}
	if u, err := url.Parse(str); err == nil && u.IsAbs() {
		return nil, fail(path, rdf.CodeInvalidFormat, "relative path, not a URL", map[string]any{"got": str})
	}
	norm := gopath.Clean(strings.ReplaceAll(str, "\\", "/"))
	if gopath.IsAbs(norm) || norm == ".." || strings.HasPrefix(norm, "../") {
		return nil, fail(path, rdf.CodeInvalidFormat, "path must stay within the resource base directory", map[string]any{"got": str})
	}
	return norm, nil
}

// RelativeOrURL accepts either an absolute http(s) URL or a relative path
// within the base directory. The URL branch is tried first; when both fail a
// single aggregated issue is reported, not two.
type RelativeOrURL struct{}

func (RelativeOrURL) Check(ctx context.Context, v any, path string) (any, rdf.Issues) {
	if nv, iss := (URL{}).Check(ctx, v, path); len(iss) == 0 {
		return nv, nil
	}
	if nv, iss := (RelativePath{}).Check(ctx, v, path); len(iss) == 0 {
		return nv, nil
	}
	return nil, fail(path, rdf.CodeInvalidFormat, "neither an absolute http(s) URL nor a relative path within the base directory", map[string]any{"got": v})
}

// FileSuffix restricts the filename suffix of a value accepted by Inner.
// Applies only when the normalized value resolves to a filename; the
// comparison is case-insensitive.
type FileSuffix struct {
	Inner    Kind
	Suffixes []string
}

func (c FileSuffix) Check(ctx context.Context, v any, path string) (any, rdf.Issues) {
	nv, iss := c.Inner.Check(ctx, v, path)
	if len(iss) > 0 {
		return nil, iss
	}
	str, ok := nv.(string)
	if !ok {
		return nv, nil
	}
	name := str
	if u, err := url.Parse(str); err == nil && u.IsAbs() {
		name = u.Path
	}
	ext := strings.TrimPrefix(strings.ToLower(gopath.Ext(name)), ".")
	for _, s := range c.Suffixes {
		if ext == strings.ToLower(strings.TrimPrefix(s, ".")) {
			return nv, nil
		}
	}
	return nil, fail(path, rdf.CodeInvalidFormat, "suffix must be one of "+strings.Join(c.Suffixes, ", "), map[string]any{"got": ext})
}
