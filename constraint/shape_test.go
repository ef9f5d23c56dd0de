package constraint_test

import (
	"testing"

	rdf "github.com/Tomaz-Vieira/spec-bioimage-io"
	"github.com/Tomaz-Vieira/spec-bioimage-io/constraint"
)

func TestShapeFamilyMembership(t *testing.T) {
	family := constraint.ShapeFamily{
		Min:  []int{1, 64, 64, 1},
		Step: []int{0, 16, 16, 0},
	}
	checkOK(t, family, []any{1, 96, 96, 1})
	checkOK(t, family, []any{1, 64, 64, 1})

	// 70 is not reachable: (70-64)%16 != 0
	iss := checkFail(t, family, []any{1, 70, 70, 1}, rdf.CodeInvalidFormat)
	if iss[0].Path != "/x/1" {
		t.Fatalf("expected first unreachable axis reported, got %q", iss[0].Path)
	}
	if len(iss) != 2 {
		t.Fatalf("both unreachable axes should be collected, got %v", iss)
	}

	// below min fails even when the step divides evenly
	checkFail(t, family, []any{1, 48, 64, 1}, rdf.CodeInvalidFormat)
	// zero step pins the axis to min
	checkFail(t, family, []any{2, 64, 64, 1}, rdf.CodeInvalidFormat)
	// rank mismatch
	checkFail(t, family, []any{1, 96, 96}, rdf.CodeInvalidFormat)
}
