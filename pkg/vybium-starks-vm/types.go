package vybiumstarksvm

import (
	"github.com/vybium/stark-constraint-verifier/internal/vybium-starks-vm/constraint"
	"github.com/vybium/stark-constraint-verifier/internal/vybium-starks-vm/core"
	"github.com/vybium/stark-constraint-verifier/internal/vybium-starks-vm/protocols"
)

// FieldElement represents an element of the base finite field.
type FieldElement = core.FieldElement

// Field represents the base finite field.
type Field = core.Field

// ExtensionElement represents an element of an extension of the base field.
type ExtensionElement = core.ExtensionElement

// ExtensionField represents a degree-D extension of the base field.
type ExtensionField = core.ExtensionField

// Proof represents a zkSTARK proof.
type Proof = protocols.Proof

// Claim represents public information about a computation.
type Claim = protocols.Claim

// Node is one instruction of a chip's or machine's straight-line
// constraint program. See internal/vybium-starks-vm/constraint for the
// full semantics.
type Node = constraint.Node

// Expression pairs a node index with an optional zerofier index.
type Expression = constraint.Expression

// ZerofierExpression describes how to evaluate a zerofier at an
// out-of-domain point.
type ZerofierExpression = constraint.ZerofierExpression

// RawChipMetadata is the untrusted, serializable description of a single
// chip's constraint system.
type RawChipMetadata = constraint.RawChipMetadata

// RawMachineMetadata is the untrusted description of a full machine.
type RawMachineMetadata = constraint.RawMachineMetadata

// ChipMetadata is a validated, immutable chip constraint system.
type ChipMetadata = constraint.ChipMetadata

// MachineMetadata is a validated, immutable machine constraint system.
type MachineMetadata = constraint.MachineMetadata

// ChipData holds the witness-level evaluations needed to verify one
// chip's quotient identity.
type ChipData = constraint.ChipData

// FieldType selects how many base-field cells a Trace or Var node reads.
type FieldType = constraint.FieldType

// Scope selects which variable vector a Var node reads from.
type Scope = constraint.Scope

// VarScope is the fully-resolved scope of a Var node.
type VarScope = constraint.VarScope

// Exp is a small exponent expression evaluated against the trace length n.
type Exp = constraint.Exp

// ExpKind tags the variant of an Exp exponent expression.
type ExpKind = constraint.ExpKind

// Re-exported constructors and constants for building raw node programs
// without importing the internal constraint package directly.
var (
	ConstantNode  = constraint.ConstantNode
	TraceNode     = constraint.TraceNode
	VarNode       = constraint.VarNode
	PeriodicNode  = constraint.PeriodicNode
	AddNode       = constraint.AddNode
	SubNode       = constraint.SubNode
	MulNode       = constraint.MulNode
	ZConst        = constraint.ZConst
	ZXExp         = constraint.ZXExp
	ZGExp         = constraint.ZGExp
	ZAddExpr      = constraint.ZAddExpr
	ZSubExpr      = constraint.ZSubExpr
	ZMulExpr      = constraint.ZMulExpr
	ZDivExpr      = constraint.ZDivExpr
	BuildChip     = constraint.BuildChip
	BuildMachine  = constraint.BuildMachine
	NewChipData   = constraint.NewChipData
)

const (
	FieldBase = constraint.Base
	FieldExt  = constraint.Ext
	ScopeGlobal = constraint.Global
	ScopeLocal  = constraint.Local
)

// Config represents configuration for the STARK verifier's constraint core.
type Config struct {
	// Field modulus for base-field arithmetic.
	FieldModulus string

	// Extension degree of the field the verifier checks quotients over.
	ExtensionDegree int

	// Security level in bits. Nothing in this package reads it; the
	// constraint core itself has no cryptographic assumptions of its own.
	SecurityLevel int
}

// ConstraintVerificationResult represents the result of checking a chip's
// or machine's quotient identity.
type ConstraintVerificationResult struct {
	// Whether the quotient identity held.
	Valid bool

	// Error message if verification failed.
	Error string

	// Verification time in milliseconds. VerifyChipQuotient does not set
	// it, so its results carry 0.
	VerificationTimeMs int64
}

// ProofVerificationResult represents the result of full proof verification.
type ProofVerificationResult struct {
	// Whether the proof is valid.
	Valid bool

	// Error message if verification failed.
	Error string

	// Verification time in milliseconds.
	VerificationTimeMs int64
}
