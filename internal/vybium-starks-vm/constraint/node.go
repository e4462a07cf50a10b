// Package constraint implements the DAG-based constraint-system core of a
// STARK-style verifier: node evaluation, static validation, and the
// quotient identity check. It is the private implementation behind the
// public stark-constraint-verifier API; outer collaborators supply trace
// openings, Fiat-Shamir challenges, and the field/extension-field
// arithmetic this package builds on.
package constraint

import (
	"github.com/vybium/stark-constraint-verifier/internal/vybium-starks-vm/core"
)

// FieldType selects how many base-field cells a Trace or Var node reads:
// one cell lifted into the extension field, or D consecutive cells
// unflattened into a single extension element.
type FieldType int

const (
	// Base reads a single base-field cell, embedded into EF.
	Base FieldType = iota
	// Ext reads D consecutive base-field cells, unflattened into EF.
	Ext
)

func (ft FieldType) width(extDegree int) int {
	if ft == Ext {
		return extDegree
	}
	return 1
}

// Scope selects which variable vector a Var node reads from.
type Scope int

const (
	// Global selects the machine-wide variable vector.
	Global Scope = iota
	// Local selects a chip's own local variable vector, identified by
	// ChipID. Chip-internal nodes must use ChipID 0 ("this chip");
	// machine-level nodes may reference any chip by index.
	Local
)

// VarScope is the fully-resolved scope of a Var node: the Scope tag plus
// the chip index when Scope == Local.
type VarScope struct {
	Scope  Scope
	ChipID int
}

// NodeKind tags the variant held by a Node.
type NodeKind int

const (
	KindConstant NodeKind = iota
	KindTrace
	KindVar
	KindPeriodic
	KindAdd
	KindSub
	KindMul
)

// Node is one instruction of the straight-line arithmetic program. It is a
// closed sum type: every field below is meaningful only for the variants
// that use it, selected by Kind. Arithmetic nodes (Add/Sub/Mul) reference
// strictly earlier node indices (invariant N1), which is what makes a node
// slice evaluable in a single left-to-right pass without recursion.
type Node struct {
	Kind NodeKind

	// Constant
	Value *core.FieldElement

	// Trace
	Segment    int
	ColOffset  int
	RowOffset  int
	FieldType  FieldType

	// Var
	VScope VarScope
	Group  int
	Offset int

	// Periodic
	Column int

	// Add / Sub / Mul
	LHS int
	RHS int
}

// ConstantNode builds a Constant(c) node.
func ConstantNode(c *core.FieldElement) Node {
	return Node{Kind: KindConstant, Value: c}
}

// TraceNode builds a Trace{segment, col, row, ft} node.
func TraceNode(segment, colOffset, rowOffset int, ft FieldType) Node {
	return Node{Kind: KindTrace, Segment: segment, ColOffset: colOffset, RowOffset: rowOffset, FieldType: ft}
}

// VarNode builds a Var{scope, group, offset, ft} node.
func VarNode(scope VarScope, group, offset int, ft FieldType) Node {
	return Node{Kind: KindVar, VScope: scope, Group: group, Offset: offset, FieldType: ft}
}

// PeriodicNode builds a Periodic{column} node.
func PeriodicNode(column int) Node {
	return Node{Kind: KindPeriodic, Column: column}
}

// AddNode builds an Add{lhs, rhs} node.
func AddNode(lhs, rhs int) Node {
	return Node{Kind: KindAdd, LHS: lhs, RHS: rhs}
}

// SubNode builds a Sub{lhs, rhs} node.
func SubNode(lhs, rhs int) Node {
	return Node{Kind: KindSub, LHS: lhs, RHS: rhs}
}

// MulNode builds a Mul{lhs, rhs} node.
func MulNode(lhs, rhs int) Node {
	return Node{Kind: KindMul, LHS: lhs, RHS: rhs}
}

// isArithmetic reports whether the node is a binary operation referencing
// earlier node indices.
func (n Node) isArithmetic() bool {
	switch n.Kind {
	case KindAdd, KindSub, KindMul:
		return true
	default:
		return false
	}
}

// Expression pairs a node index with an optional zerofier index. Chip-level
// constraints require ZerofierID; machine-level (cross-chip) constraints
// forbid it.
type Expression struct {
	NodeID     int
	ZerofierID *int
}

// Dimensions describes one trace segment: its declared width and the
// height inferred from the highest row offset referenced by any node.
type Dimensions struct {
	Width  int
	Height int
}
