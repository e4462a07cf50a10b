// Package vybiumstarksvm provides the public API of a STARK constraint-system
// verifier: a DAG-based arithmetic core that validates a chip's or machine's
// node program, then checks its out-of-domain quotient identity against a
// witness.
//
// # Scope
//
// This package verifies that a claimed quotient matches the constraints
// evaluated at an out-of-domain point, given already-opened trace values,
// local/global variables, and Fiat-Shamir challenges. It does not produce
// proofs, commit to traces, run FFTs, or perform low-degree testing: those
// belong to an outer collaborator (a proof format, a Merkle/FRI layer, a
// Fiat-Shamir transcript) that supplies the openings and challenges this
// package consumes.
//
// # Quick Start
//
// Building and checking a chip's constraint system against a witness:
//
//	field, err := vybiumstarksvm.NewBaseField(&vybiumstarksvm.Config{FieldModulus: "97"})
//	ef, err := vybiumstarksvm.NewExtensionFieldFromBase(field, 1, field.One())
//
//	raw := vybiumstarksvm.RawChipMetadata{ /* nodes, zerofiers, constraints */ }
//	result := vybiumstarksvm.VerifyChipQuotient(ef, 1, raw, locals, traceEvals, quotientEvals, logHeight, zeta, alpha)
//	if !result.Valid {
//		log.Fatal(result.Error)
//	}
//
// # Architecture
//
//   - pkg/vybium-starks-vm/: public API (this package)
//   - internal/vybium-starks-vm/constraint/: the node DAG, static validation,
//     and quotient-identity check
//   - internal/vybium-starks-vm/protocols/: the outer collaborator layer
//     (claim, proof, domains, Fiat-Shamir transcript) that a verifier wires
//     the constraint core into
//   - internal/vybium-starks-vm/core/: field and extension-field arithmetic
//
// Implementation details in internal/ can be refactored without breaking
// the public API.
package vybiumstarksvm
