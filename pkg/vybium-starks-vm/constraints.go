package vybiumstarksvm

import (
	"math/big"

	"github.com/vybium/stark-constraint-verifier/internal/vybium-starks-vm/core"
)

// NewBaseField creates the base finite field described by a Config's
// FieldModulus (a decimal string, matching the JSON wire format used by
// the verify-constraints CLI).
func NewBaseField(config *Config) (*Field, error) {
	modulus := new(big.Int)
	if _, ok := modulus.SetString(config.FieldModulus, 10); !ok {
		return nil, &VMError{Code: ErrInvalidConfig, Message: "invalid field modulus"}
	}
	field, err := core.NewField(modulus)
	if err != nil {
		return nil, &VMError{Code: ErrFieldCreation, Message: "failed to create field: " + err.Error()}
	}
	return field, nil
}

// NewExtensionFieldFromBase builds the degree-D extension field that
// VerifyChipQuotient's trace/quotient openings live in. nonResidue
// must generate the reduction polynomial x^D - nonResidue; for D == 1 any
// nonzero element works, since the extension then coincides with base.
func NewExtensionFieldFromBase(base *Field, degree int, nonResidue *FieldElement) (*ExtensionField, error) {
	ef, err := core.NewExtensionField(base, degree, nonResidue)
	if err != nil {
		return nil, &VMError{Code: ErrConstraintBuild, Message: "failed to create extension field: " + err.Error()}
	}
	return ef, nil
}

// VerifyChipQuotient validates a chip's raw constraint metadata, shape-checks
// the supplied witness against it, and checks the quotient identity at the
// given out-of-domain point. This is the public entry point used by the
// verify-constraints CLI subcommand: everything upstream of it (trace
// commitment, Fiat-Shamir derivation of zeta/alpha, FRI low-degree testing)
// is supplied by an outer collaborator, not this package.
func VerifyChipQuotient(
	ef *ExtensionField,
	extDegree int,
	raw RawChipMetadata,
	localVariables [][]*FieldElement,
	traceEvals [][][]*ExtensionElement,
	quotientEvals []*ExtensionElement,
	logHeight int,
	zeta, alpha *ExtensionElement,
) *ConstraintVerificationResult {
	chip, err := BuildChip(extDegree, raw)
	if err != nil {
		return &ConstraintVerificationResult{Valid: false, Error: "build chip: " + err.Error()}
	}

	data, err := NewChipData(ef, chip, localVariables, traceEvals, quotientEvals, logHeight)
	if err != nil {
		return &ConstraintVerificationResult{Valid: false, Error: "shape check: " + err.Error()}
	}

	if err := data.CheckQuotient(nil, zeta, alpha); err != nil {
		return &ConstraintVerificationResult{Valid: false, Error: err.Error()}
	}
	return &ConstraintVerificationResult{Valid: true}
}
