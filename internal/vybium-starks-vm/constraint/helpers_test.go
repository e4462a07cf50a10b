package constraint

import (
	"testing"

	"github.com/vybium/stark-constraint-verifier/internal/vybium-starks-vm/core"
)

// newTrivialEF builds a degree-1 "extension" over F, which behaves exactly
// like F itself (Mul never folds through the reduction polynomial when
// D == 1). It is used by tests that only need EF's API surface without
// worrying about choosing an irreducible binomial.
func newTrivialEF(t *testing.T, modulus uint64) (*core.Field, *core.ExtensionField) {
	t.Helper()
	field, err := core.NewFieldFromUint64(modulus)
	if err != nil {
		t.Fatalf("NewFieldFromUint64(%d): %v", modulus, err)
	}
	ef, err := core.NewExtensionField(field, 1, field.One())
	if err != nil {
		t.Fatalf("NewExtensionField: %v", err)
	}
	return field, ef
}

// newDegreeTwoEF builds a genuine degree-2 extension of F_5 via x^2 - 2,
// since 2 is a quadratic non-residue mod 5 (squares mod 5 are {0,1,4}).
func newDegreeTwoEF(t *testing.T) (*core.Field, *core.ExtensionField) {
	t.Helper()
	field, err := core.NewFieldFromUint64(5)
	if err != nil {
		t.Fatalf("NewFieldFromUint64(5): %v", err)
	}
	ef, err := core.NewExtensionField(field, 2, field.NewElementFromUint64(2))
	if err != nil {
		t.Fatalf("NewExtensionField: %v", err)
	}
	return field, ef
}
