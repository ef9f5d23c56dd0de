package constraint_test

import (
	"strings"
	"testing"

	rdf "github.com/Tomaz-Vieira/spec-bioimage-io"
	"github.com/Tomaz-Vieira/spec-bioimage-io/constraint"
)

func TestURL(t *testing.T) {
	u := constraint.URL{}
	checkOK(t, u, "https://example.com/model.zip")
	checkOK(t, u, "http://example.com")
	checkFail(t, u, "ftp://example.com/x", rdf.CodeInvalidFormat)
	checkFail(t, u, "not a url", rdf.CodeInvalidFormat)
	checkFail(t, u, "/absolute/local/path", rdf.CodeInvalidFormat)

	long := "https://example.com/" + strings.Repeat("a", constraint.MaxURLLength)
	checkFail(t, u, long, rdf.CodeTooLong)
}

func TestURLCustomSchemes(t *testing.T) {
	u := constraint.URL{Schemes: []string{"s3"}}
	checkOK(t, u, "s3://bucket/key")
	checkFail(t, u, "https://example.com", rdf.CodeInvalidFormat)
}

func TestRelativePath(t *testing.T) {
	p := constraint.RelativePath{}
	if got := checkOK(t, p, "docs/./readme.md"); got != "docs/readme.md" {
		t.Fatalf("expected cleaned path, got %v", got)
	}
	checkFail(t, p, "../outside.md", rdf.CodeInvalidFormat)
	checkFail(t, p, "a/../../outside.md", rdf.CodeInvalidFormat)
	checkFail(t, p, "/etc/passwd", rdf.CodeInvalidFormat)
	checkFail(t, p, "https://example.com/readme.md", rdf.CodeInvalidFormat)
	checkFail(t, p, "", rdf.CodeTooShort)
}

func TestRelativeOrURLAggregatesFailure(t *testing.T) {
	r := constraint.RelativeOrURL{}
	checkOK(t, r, "https://example.com/weights.pt")
	checkOK(t, r, "weights/model.pt")
	iss := checkFail(t, r, "../escape", rdf.CodeInvalidFormat)
	if len(iss) != 1 {
		t.Fatalf("expected one aggregated issue, got %d: %v", len(iss), iss)
	}
}

func TestFileSuffix(t *testing.T) {
	md := constraint.FileSuffix{Inner: constraint.RelativeOrURL{}, Suffixes: []string{"md"}}
	checkOK(t, md, "README.md")
	checkOK(t, md, "docs/README.MD")
	checkOK(t, md, "https://example.com/docs/readme.md?raw=true")
	checkFail(t, md, "README.txt", rdf.CodeInvalidFormat)

	npy := constraint.FileSuffix{Inner: constraint.RelativeOrURL{}, Suffixes: []string{"npy"}}
	checkOK(t, npy, "test_input.npy")
	checkFail(t, npy, "test_input.npz", rdf.CodeInvalidFormat)
}
