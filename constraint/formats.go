package constraint

import (
	"context"
	"regexp"
	"strings"
	"time"

	rdf "github.com/Tomaz-Vieira/spec-bioimage-io"
)

// Orcid validates an ORCID iD: four hyphenated groups of four digits (the
// last character may be X) with a valid ISO 7064 mod 11,2 check digit.
// A shape match alone is not enough; the checksum is computed.
type Orcid struct{}

func (Orcid) Check(ctx context.Context, v any, path string) (any, rdf.Issues) {
	str, ok := v.(string)
	if !ok {
		return nil, fail(path, rdf.CodeInvalidType, "expected string", nil)
	}
	str = strings.TrimSpace(str)
	if len(str) != 19 || str[4] != '-' || str[9] != '-' || str[14] != '-' {
		return nil, fail(path, rdf.CodeInvalidFormat, "ORCID iD in hyphenated groups of 4 digits", map[string]any{"got": str})
	}
	if !orcidChecksumOK(strings.ReplaceAll(str, "-", "")) {
		return nil, fail(path, rdf.CodeInvalidFormat, "ORCID iD checksum (ISO 7064 mod 11,2) failed", map[string]any{"got": str})
	}
	return str, nil
}

// orcidChecksumOK follows ISO 7064 mod 11,2 over the 16 base digits,
// where a trailing X stands for the value 10.
func orcidChecksumOK(digits string) bool {
	check := 0
	for i, r := range digits {
		var d int
		switch {
		case r >= '0' && r <= '9':
			d = int(r - '0')
		case r == 'X' && i == len(digits)-1:
			d = 10
		default:
			return false
		}
		check = (2*check + d) % 11
	}
	return check == 1
}

// lax DOI check validating the prefix shape only
var doiPattern = NewPattern("DOI", `10\.[0-9]{4}.+`)

// Doi validates the DOI prefix shape (10.NNNN...). Resolvability is not
// checked.
type Doi struct{}

func (Doi) Check(ctx context.Context, v any, path string) (any, rdf.Issues) {
	return doiPattern.Check(ctx, v, path)
}

var sha256Re = regexp.MustCompile(`^[0-9a-f]{64}$`)

// Sha256 validates a SHA-256 digest: exactly 64 lowercase hex characters.
// The digest is not recomputed against any file.
type Sha256 struct{}

func (Sha256) Check(ctx context.Context, v any, path string) (any, rdf.Issues) {
	str, ok := v.(string)
	if !ok {
		return nil, fail(path, rdf.CodeInvalidType, "expected string", nil)
	}
	str = strings.TrimSpace(str)
	if !sha256Re.MatchString(str) {
		hint := "64 lowercase hex characters"
		if sha256Re.MatchString(strings.ToLower(str)) {
			hint = "64 lowercase hex characters (use lowercase)"
		}
		return nil, fail(path, rdf.CodeInvalidFormat, hint, map[string]any{"got": str})
	}
	return str, nil
}

var semverRe = regexp.MustCompile(`^(0|[1-9][0-9]*)\.(0|[1-9][0-9]*)\.(0|[1-9][0-9]*)$`)

// SemVer requires a plain MAJOR.MINOR.PATCH version. Pre-release and build
// metadata are rejected; hyphens and plus signs are explicitly disallowed,
// narrowing the full Semantic Versioning grammar.
type SemVer struct{}

func (SemVer) Check(ctx context.Context, v any, path string) (any, rdf.Issues) {
	str, ok := v.(string)
	if !ok {
		return nil, fail(path, rdf.CodeInvalidType, "expected string", nil)
	}
	str = strings.TrimSpace(str)
	if !semverRe.MatchString(str) {
		return nil, fail(path, rdf.CodeInvalidFormat, "MAJOR.MINOR.PATCH version, no pre-release or build metadata", map[string]any{"got": str})
	}
	return str, nil
}

// Timestamp validates an RFC 3339 timestamp and normalizes it to the RFC 3339
// rendering of the parsed instant.
type Timestamp struct{}

func (Timestamp) Check(ctx context.Context, v any, path string) (any, rdf.Issues) {
	switch t := v.(type) {
	case string:
		parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(t))
		if err != nil {
			return nil, fail(path, rdf.CodeInvalidFormat, "RFC 3339 timestamp", map[string]any{"got": t})
		}
		return parsed.Format(time.RFC3339), nil
	case time.Time:
		// yaml.v3 decodes ISO timestamps to time.Time already
		return t.Format(time.RFC3339), nil
	}
	return nil, fail(path, rdf.CodeInvalidType, "expected timestamp string", nil)
}

const axisChars = "bitczyx"

// Axes is the ordered axes string of a tensor: characters drawn from
// {b,i,t,c,z,y,x}, each at most once.
type Axes struct{}

func (Axes) Check(ctx context.Context, v any, path string) (any, rdf.Issues) {
	str, ok := v.(string)
	if !ok {
		return nil, fail(path, rdf.CodeInvalidType, "expected string", nil)
	}
	if str == "" {
		return nil, fail(path, rdf.CodeTooShort, "at least one axis", nil)
	}
	seen := [len(axisChars)]bool{}
	for _, r := range str {
		idx := strings.IndexRune(axisChars, r)
		if idx < 0 {
			return nil, fail(path, rdf.CodePattern, "axes characters from bitczyx", map[string]any{"got": str})
		}
		if seen[idx] {
			return nil, fail(path, rdf.CodeDuplicateValue, "each axis at most once", map[string]any{"got": str})
		}
		seen[idx] = true
	}
	return str, nil
}
