package constraint

import "fmt"

// NodeError reports a single offending node index found while validating a
// node slice. Validation is eager and fail-fast: the first offending index
// is reported and no further nodes are checked.
type NodeError struct {
	Kind  NodeErrorKind
	Index int
}

// NodeErrorKind tags which reference check failed.
type NodeErrorKind int

const (
	// InvalidReference marks an arithmetic node whose lhs/rhs does not
	// satisfy lhs_id < i && rhs_id < i.
	InvalidReference NodeErrorKind = iota
	// VariableRef marks a Var node referencing an unknown scope/group/
	// offset, or one that does not leave room for its field-type width.
	VariableRef
	// TraceRef marks a Trace node referencing an unknown segment or
	// overrunning its declared width.
	TraceRef
	// PeriodicRef marks a Periodic node referencing an unknown column.
	PeriodicRef
)

func (e *NodeError) Error() string {
	switch e.Kind {
	case InvalidReference:
		return fmt.Sprintf("node %d: invalid reference (operand index not strictly earlier)", e.Index)
	case VariableRef:
		return fmt.Sprintf("node %d: variable reference out of range", e.Index)
	case TraceRef:
		return fmt.Sprintf("node %d: trace reference out of range", e.Index)
	case PeriodicRef:
		return fmt.Sprintf("node %d: periodic column reference out of range", e.Index)
	default:
		return fmt.Sprintf("node %d: invalid node", e.Index)
	}
}

func errInvalidReference(i int) error { return &NodeError{Kind: InvalidReference, Index: i} }
func errVariable(i int) error         { return &NodeError{Kind: VariableRef, Index: i} }
func errTrace(i int) error            { return &NodeError{Kind: TraceRef, Index: i} }
func errPeriodic(i int) error         { return &NodeError{Kind: PeriodicRef, Index: i} }

// ChipError reports a failure while building a single chip's metadata.
type ChipError struct {
	Kind       ChipErrorKind
	Node       error // wrapped *NodeError, set when Kind == ChipNode
	ColumnIdx  int   // set when Kind == ChipPeriodic
	Constraint int   // set when Kind == ChipConstraint
}

// ChipErrorKind tags which stage of chip construction failed.
type ChipErrorKind int

const (
	ChipNode ChipErrorKind = iota
	ChipPeriodic
	ChipConstraint
)

func (e *ChipError) Error() string {
	switch e.Kind {
	case ChipNode:
		return fmt.Sprintf("chip: %v", e.Node)
	case ChipPeriodic:
		return fmt.Sprintf("chip: periodic column %d length is not a power of two", e.ColumnIdx)
	case ChipConstraint:
		return fmt.Sprintf("chip: constraint %d has an invalid node or zerofier reference", e.Constraint)
	default:
		return "chip: invalid chip metadata"
	}
}

func (e *ChipError) Unwrap() error {
	if e.Kind == ChipNode {
		return e.Node
	}
	return nil
}

func errChipNode(err error) error          { return &ChipError{Kind: ChipNode, Node: err} }
func errChipPeriodic(col int) error        { return &ChipError{Kind: ChipPeriodic, ColumnIdx: col} }
func errChipConstraint(idx int) error      { return &ChipError{Kind: ChipConstraint, Constraint: idx} }

// MachineError reports a failure while building machine-level metadata.
type MachineError struct {
	Kind       MachineErrorKind
	ChipIndex  int
	ChipErr    error
	NodesErr   error
	Constraint int
}

// MachineErrorKind tags which stage of machine construction failed.
type MachineErrorKind int

const (
	MachineChip MachineErrorKind = iota
	MachineNodes
	MachineConstraint
)

func (e *MachineError) Error() string {
	switch e.Kind {
	case MachineChip:
		return fmt.Sprintf("machine: chip %d: %v", e.ChipIndex, e.ChipErr)
	case MachineNodes:
		return fmt.Sprintf("machine: %v", e.NodesErr)
	case MachineConstraint:
		return fmt.Sprintf("machine: constraint %d has an invalid node reference or carries a forbidden zerofier", e.Constraint)
	default:
		return "machine: invalid machine metadata"
	}
}

func (e *MachineError) Unwrap() error {
	switch e.Kind {
	case MachineChip:
		return e.ChipErr
	case MachineNodes:
		return e.NodesErr
	default:
		return nil
	}
}

func errMachineChip(idx int, err error) error { return &MachineError{Kind: MachineChip, ChipIndex: idx, ChipErr: err} }
func errMachineNodes(err error) error         { return &MachineError{Kind: MachineNodes, NodesErr: err} }
func errMachineConstraint(idx int) error      { return &MachineError{Kind: MachineConstraint, Constraint: idx} }

// DataError reports a shape mismatch or semantic failure discovered while
// building ChipData or checking the quotient identity.
type DataError struct {
	Kind     DataErrorKind
	Group    int
	Segment  int
	Row      int
	Column   int
	Index    int
	Expected int
	Actual   int
}

// DataErrorKind tags which check failed.
type DataErrorKind int

const (
	NumLocalVariableGroups DataErrorKind = iota
	NumLocalVariables
	NumTraces
	SegmentHeight
	SegmentRowWidth
	NumQuotientEvals
	MinHeight
	UndefinedZerofierEval
	InvalidQuotient
)

func (e *DataError) Error() string {
	switch e.Kind {
	case NumLocalVariableGroups:
		return fmt.Sprintf("expected %d local variable groups, got %d", e.Expected, e.Actual)
	case NumLocalVariables:
		return fmt.Sprintf("local variable group %d: expected %d variables, got %d", e.Group, e.Expected, e.Actual)
	case NumTraces:
		return fmt.Sprintf("expected %d trace segments, got %d", e.Expected, e.Actual)
	case SegmentHeight:
		return fmt.Sprintf("trace segment %d: expected height %d, got %d", e.Segment, e.Expected, e.Actual)
	case SegmentRowWidth:
		return fmt.Sprintf("trace segment %d row %d: expected width %d, got %d", e.Segment, e.Row, e.Expected, e.Actual)
	case NumQuotientEvals:
		return fmt.Sprintf("expected %d quotient evaluations, got %d", e.Expected, e.Actual)
	case MinHeight:
		return fmt.Sprintf("periodic column %d: length %d exceeds 2^log_height (%d)", e.Column, e.Actual, e.Expected)
	case UndefinedZerofierEval:
		return fmt.Sprintf("zerofier %d evaluated to an undefined value", e.Index)
	case InvalidQuotient:
		return "claimed quotient does not match the evaluated constraints"
	default:
		return "invalid chip data"
	}
}
