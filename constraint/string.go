package constraint

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	rdf "github.com/Tomaz-Vieira/spec-bioimage-io"
)

// String is the plain string constraint. Leading/trailing whitespace is
// trimmed during normalization. Lengths count runes so emoji icons fit a
// two-character limit. MaxLen 0 means unbounded.
type String struct {
	MinLen int
	MaxLen int
}

func (s String) Check(ctx context.Context, v any, path string) (any, rdf.Issues) {
	str, ok := v.(string)
	if !ok {
		return nil, fail(path, rdf.CodeInvalidType, "expected string", nil)
	}
	str = strings.TrimSpace(str)
	n := utf8.RuneCountInString(str)
	if n < s.MinLen {
		return nil, fail(path, rdf.CodeTooShort, fmt.Sprintf("minimum length %d", s.MinLen), map[string]any{"min": s.MinLen, "got": n})
	}
	if s.MaxLen > 0 && n > s.MaxLen {
		return nil, fail(path, rdf.CodeTooLong, fmt.Sprintf("maximum length %d", s.MaxLen), map[string]any{"max": s.MaxLen, "got": n})
	}
	return str, nil
}

// NonEmpty is shorthand for a string with at least one character.
func NonEmpty() String { return String{MinLen: 1} }

// Name is a human-readable resource or person name. Slashes are stripped
// during normalization; the stripped form must not be empty.
type Name struct {
	MaxLen int
}

func (n Name) Check(ctx context.Context, v any, path string) (any, rdf.Issues) {
	str, ok := v.(string)
	if !ok {
		return nil, fail(path, rdf.CodeInvalidType, "expected string", nil)
	}
	str = strings.TrimSpace(str)
	str = strings.ReplaceAll(str, "/", "")
	str = strings.ReplaceAll(str, "\\", "")
	if str == "" {
		return nil, fail(path, rdf.CodeTooShort, "name must not be empty", nil)
	}
	if n.MaxLen > 0 && len(str) > n.MaxLen {
		return nil, fail(path, rdf.CodeTooLong, fmt.Sprintf("maximum length %d", n.MaxLen), map[string]any{"max": n.MaxLen, "got": len(str)})
	}
	return str, nil
}

// Pattern requires the whole value to match a regular expression.
type Pattern struct {
	re   *regexp.Regexp
	name string
}

// NewPattern compiles expr into a full-match Pattern. name labels the format
// in issue hints. Panics on a bad expression; patterns are package constants.
func NewPattern(name, expr string) Pattern {
	if !strings.HasPrefix(expr, "^") {
		expr = "^" + expr
	}
	if !strings.HasSuffix(expr, "$") {
		expr += "$"
	}
	return Pattern{re: regexp.MustCompile(expr), name: name}
}

func (p Pattern) Check(ctx context.Context, v any, path string) (any, rdf.Issues) {
	str, ok := v.(string)
	if !ok {
		return nil, fail(path, rdf.CodeInvalidType, "expected string", nil)
	}
	str = strings.TrimSpace(str)
	if !p.re.MatchString(str) {
		return nil, fail(path, rdf.CodePattern, p.name, map[string]any{"pattern": p.re.String(), "got": str})
	}
	return str, nil
}

// Enum requires the value to equal one of a fixed, case-sensitive set of
// literals. Unlisted values fail even when they look reasonable.
type Enum struct {
	allowed map[string]struct{}
	sorted  []string
}

// NewEnum builds an Enum over the given literals.
func NewEnum(literals ...string) Enum {
	m := make(map[string]struct{}, len(literals))
	for _, l := range literals {
		m[l] = struct{}{}
	}
	s := make([]string, 0, len(literals))
	for l := range m {
		s = append(s, l)
	}
	sort.Strings(s)
	return Enum{allowed: m, sorted: s}
}

func (e Enum) Check(ctx context.Context, v any, path string) (any, rdf.Issues) {
	str, ok := v.(string)
	if !ok {
		return nil, fail(path, rdf.CodeInvalidType, "expected string", nil)
	}
	if _, ok := e.allowed[str]; !ok {
		hint := "allowed: " + strings.Join(e.sorted, ", ")
		if len(e.sorted) > 12 {
			hint = fmt.Sprintf("one of %d allowed literals", len(e.sorted))
		}
		return nil, fail(path, rdf.CodeInvalidEnum, hint, map[string]any{"got": str})
	}
	return str, nil
}

// Literals returns the allowed literals in sorted order.
func (e Enum) Literals() []string { return e.sorted }

var identifierRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Identifier names tensors and similar machine-facing entities: lowercase
// letters, digits and underscores, starting with a letter.
type Identifier struct{}

func (Identifier) Check(ctx context.Context, v any, path string) (any, rdf.Issues) {
	str, ok := v.(string)
	if !ok {
		return nil, fail(path, rdf.CodeInvalidType, "expected string", nil)
	}
	if !identifierRe.MatchString(str) {
		return nil, fail(path, rdf.CodePattern, "identifier (lowercase letters, digits, underscores)", map[string]any{"got": str})
	}
	return str, nil
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Email is a lax email shape check; deliverability is out of scope.
type Email struct{}

func (Email) Check(ctx context.Context, v any, path string) (any, rdf.Issues) {
	str, ok := v.(string)
	if !ok {
		return nil, fail(path, rdf.CodeInvalidType, "expected string", nil)
	}
	str = strings.TrimSpace(str)
	if !emailRe.MatchString(str) {
		return nil, fail(path, rdf.CodeInvalidFormat, "email address", map[string]any{"got": str})
	}
	return str, nil
}
