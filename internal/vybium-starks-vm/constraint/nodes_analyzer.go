package constraint

import "errors"

// Nodes wraps a validated node slice and provides the pure analysis
// functions used by both chip and machine construction: the topological
// check, reference validation against declared widths, degree inference,
// and trace-dimension inference.
type Nodes struct {
	nodes []Node
}

// NewNodes validates invariant N1 (topological soundness): every
// arithmetic node at index i must reference only operand indices strictly
// less than i. It fails fast on the first violation.
func NewNodes(nodes []Node) (*Nodes, error) {
	for i, n := range nodes {
		if !n.isArithmetic() {
			continue
		}
		if n.LHS >= i || n.RHS >= i {
			return nil, errInvalidReference(i)
		}
	}
	return &Nodes{nodes: nodes}, nil
}

// Len returns the number of nodes.
func (ns *Nodes) Len() int { return len(ns.nodes) }

// Slice returns the underlying node slice. Callers must not mutate it.
func (ns *Nodes) Slice() []Node { return ns.nodes }

// ValidateLocalVariables checks every Local-scoped Var node against a
// single chip's own declared local-variable group sizes. It enforces that
// chip-internal nodes use ChipID 0 ("this chip"); a node that names any
// other chip index is out of range in this context.
func (ns *Nodes) ValidateLocalVariables(extDegree int, numLocalVariables []int) error {
	for i, n := range ns.nodes {
		if n.Kind != KindVar || n.VScope.Scope != Local {
			continue
		}
		if n.VScope.ChipID != 0 {
			return errVariable(i)
		}
		if err := checkVarFits(n, extDegree, numLocalVariables); err != nil {
			return &NodeError{Kind: VariableRef, Index: i}
		}
	}
	return nil
}

// ValidateGlobalVariables checks every Global-scoped Var node against the
// machine's declared global variable group sizes.
func (ns *Nodes) ValidateGlobalVariables(extDegree int, numGlobalVariables []int) error {
	for i, n := range ns.nodes {
		if n.Kind != KindVar || n.VScope.Scope != Global {
			continue
		}
		if err := checkVarFits(n, extDegree, numGlobalVariables); err != nil {
			return &NodeError{Kind: VariableRef, Index: i}
		}
	}
	return nil
}

// ValidateSharedVariables checks every Local-scoped Var node against a
// machine-wide vector of chip local-variable-group sizes, enabling
// cross-chip local references: a machine-level node may name any chip by
// index and any of that chip's declared groups.
func (ns *Nodes) ValidateSharedVariables(extDegree int, chipLocals [][]int) error {
	for i, n := range ns.nodes {
		if n.Kind != KindVar || n.VScope.Scope != Local {
			continue
		}
		if n.VScope.ChipID < 0 || n.VScope.ChipID >= len(chipLocals) {
			return &NodeError{Kind: VariableRef, Index: i}
		}
		if err := checkVarFits(n, extDegree, chipLocals[n.VScope.ChipID]); err != nil {
			return &NodeError{Kind: VariableRef, Index: i}
		}
	}
	return nil
}

var errVarOutOfRange = errors.New("variable reference out of range")

func checkVarFits(n Node, extDegree int, groups []int) error {
	if n.Group < 0 || n.Group >= len(groups) {
		return errVarOutOfRange
	}
	if n.Offset < 0 {
		return errVarOutOfRange
	}
	if n.Offset+n.FieldType.width(extDegree) > groups[n.Group] {
		return errVarOutOfRange
	}
	return nil
}

// ValidatePeriodic checks that every Periodic node references a column
// index in [0, numColumns); it does not itself check column lengths (that
// is a power-of-two length check performed by the chip builder over the
// raw column data).
func (ns *Nodes) ValidatePeriodic(numColumns int) error {
	for i, n := range ns.nodes {
		if n.Kind != KindPeriodic {
			continue
		}
		if n.Column < 0 || n.Column >= numColumns {
			return errPeriodic(i)
		}
	}
	return nil
}

// GetDimensions infers one Dimensions entry per declared trace segment:
// width is the caller-declared width, height is max(row_offset)+1 over all
// nodes referencing that segment (0 if none reference it). It fails with a
// TraceRef NodeError if any node references an unknown segment or would
// read past the declared width.
func (ns *Nodes) GetDimensions(extDegree int, widths []int) ([]Dimensions, error) {
	dims := make([]Dimensions, len(widths))
	for i, w := range widths {
		dims[i] = Dimensions{Width: w, Height: 0}
	}
	for i, n := range ns.nodes {
		if n.Kind != KindTrace {
			continue
		}
		if n.Segment < 0 || n.Segment >= len(widths) {
			return nil, errTrace(i)
		}
		if n.ColOffset < 0 || n.RowOffset < 0 {
			return nil, errTrace(i)
		}
		if n.ColOffset+n.FieldType.width(extDegree) > widths[n.Segment] {
			return nil, errTrace(i)
		}
		if n.RowOffset+1 > dims[n.Segment].Height {
			dims[n.Segment].Height = n.RowOffset + 1
		}
	}
	return dims, nil
}

// GetDegrees infers the arithmetic degree of every node in topological
// order: Constant/Var have degree 0, Trace/Periodic have degree 1,
// Add/Sub take the max of their operands' degrees, and Mul sums them.
// Invariant N1 guarantees operand degrees are already computed by the time
// each node is visited.
func (ns *Nodes) GetDegrees() []int {
	degrees := make([]int, len(ns.nodes))
	for i, n := range ns.nodes {
		switch n.Kind {
		case KindConstant, KindVar:
			degrees[i] = 0
		case KindTrace, KindPeriodic:
			degrees[i] = 1
		case KindAdd, KindSub:
			degrees[i] = max(degrees[n.LHS], degrees[n.RHS])
		case KindMul:
			degrees[i] = degrees[n.LHS] + degrees[n.RHS]
		}
	}
	return degrees
}
