package constraint_test

import (
	"context"
	"testing"
	"time"

	rdf "github.com/Tomaz-Vieira/spec-bioimage-io"
	"github.com/Tomaz-Vieira/spec-bioimage-io/constraint"
)

func checkOK(t *testing.T, k constraint.Kind, v any) any {
	t.Helper()
	out, iss := k.Check(context.Background(), v, "/x")
	if len(iss) > 0 {
		t.Fatalf("expected %v to pass, got issues: %v", v, iss)
	}
	return out
}

func checkFail(t *testing.T, k constraint.Kind, v any, code string) rdf.Issues {
	t.Helper()
	_, iss := k.Check(context.Background(), v, "/x")
	if len(iss) == 0 {
		t.Fatalf("expected %v to fail", v)
	}
	if code != "" && iss[0].Code != code {
		t.Fatalf("expected code %q, got %q (%v)", code, iss[0].Code, iss)
	}
	return iss
}

func TestOrcidChecksum(t *testing.T) {
	orcid := constraint.Orcid{}
	checkOK(t, orcid, "0000-0001-2345-6789")
	// X as the final digit encodes a checksum value of ten
	checkOK(t, orcid, "0000-0002-1825-0097")
	checkFail(t, orcid, "0000-0001-2345-6788", rdf.CodeInvalidFormat)
	checkFail(t, orcid, "0000-0001-2345-678", rdf.CodeInvalidFormat)
	checkFail(t, orcid, "0000+0001-2345-6789", rdf.CodeInvalidFormat)
	checkFail(t, orcid, 42, rdf.CodeInvalidType)
}

func TestDoi(t *testing.T) {
	doi := constraint.Doi{}
	checkOK(t, doi, "10.1234/zenodo.5764892")
	checkFail(t, doi, "11.1234/zenodo.5764892", "")
	checkFail(t, doi, "10.123", "")
	checkFail(t, doi, "https://doi.org/10.1234/x", "")
}

func TestSha256(t *testing.T) {
	sha := constraint.Sha256{}
	checkOK(t, sha, "a665a45920422f9d417e4867efdc4fb8a04a1f3fff1fa07e998e86f7f7a27ae3")
	iss := checkFail(t, sha, "A665A45920422F9D417E4867EFDC4FB8A04A1F3FFF1FA07E998E86F7F7A27AE3", rdf.CodeInvalidFormat)
	if iss[0].Hint == "" {
		t.Fatalf("expected lowercase hint for uppercase digest")
	}
	checkFail(t, sha, "abc123", rdf.CodeInvalidFormat)
}

func TestSemVer(t *testing.T) {
	v := constraint.SemVer{}
	checkOK(t, v, "0.4.2")
	checkOK(t, v, "1.0.0")
	checkFail(t, v, "0.4", "")
	checkFail(t, v, "01.0.0", "")
	checkFail(t, v, "v1.0.0", "")
}

func TestTimestampNormalizesToRFC3339(t *testing.T) {
	ts := constraint.Timestamp{}
	out := checkOK(t, ts, "2019-12-11T12:22:32+00:00")
	if _, err := time.Parse(time.RFC3339, out.(string)); err != nil {
		t.Fatalf("normalized timestamp not RFC 3339: %v", out)
	}
	// yaml.v3 resolves !!timestamp scalars to time.Time
	out = checkOK(t, ts, time.Date(2019, 12, 11, 12, 22, 32, 0, time.UTC))
	if out != "2019-12-11T12:22:32Z" {
		t.Fatalf("unexpected normalization: %v", out)
	}
	checkFail(t, ts, "yesterday", rdf.CodeInvalidFormat)
}

func TestAxes(t *testing.T) {
	ax := constraint.Axes{}
	checkOK(t, ax, "bczyx")
	checkOK(t, ax, "xy")
	checkFail(t, ax, "", "")
	checkFail(t, ax, "bxx", "")
	checkFail(t, ax, "abc", "")
}
