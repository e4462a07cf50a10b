package constraint

import (
	"github.com/vybium/stark-constraint-verifier/internal/vybium-starks-vm/core"
	"github.com/vybium/stark-constraint-verifier/internal/vybium-starks-vm/utils"
)

// RawChipMetadata is the untrusted, serializable description of a single
// chip's constraint system, as it arrives from the outer proof format
// before validation.
type RawChipMetadata struct {
	NumLocalVariables []int
	TraceWidths       []int
	Zerofiers         []*ZerofierExpression
	Periodic          [][]*core.FieldElement
	Nodes             []Node
	Constraints       []Expression
}

// RawMachineMetadata is the untrusted description of a full machine: its
// global variable groups, the raw metadata of each of its chips, and the
// machine-level (cross-chip) node program and constraints.
type RawMachineMetadata struct {
	NumGlobalVariables []int
	Chips              []RawChipMetadata
	Nodes              []Node
	Constraints        []Expression
}

// BuildChip validates a RawChipMetadata and returns an immutable
// ChipMetadata, or the first ChipError encountered. See §4.4 of the
// constraint-system design: validation is eager and fail-fast.
func BuildChip(extDegree int, raw RawChipMetadata) (*ChipMetadata, error) {
	nodes, err := NewNodes(raw.Nodes)
	if err != nil {
		return nil, errChipNode(err)
	}

	if err := nodes.ValidateLocalVariables(extDegree, raw.NumLocalVariables); err != nil {
		return nil, errChipNode(err)
	}

	dims, err := nodes.GetDimensions(extDegree, raw.TraceWidths)
	if err != nil {
		return nil, errChipNode(err)
	}

	if err := nodes.ValidatePeriodic(len(raw.Periodic)); err != nil {
		return nil, errChipNode(err)
	}
	for i, col := range raw.Periodic {
		if !utils.IsPowerOfTwo(len(col)) {
			return nil, errChipPeriodic(i)
		}
	}

	for i, c := range raw.Constraints {
		if c.NodeID < 0 || c.NodeID >= nodes.Len() {
			return nil, errChipConstraint(i)
		}
		if c.ZerofierID == nil {
			return nil, errChipConstraint(i)
		}
		if *c.ZerofierID < 0 || *c.ZerofierID >= len(raw.Zerofiers) {
			return nil, errChipConstraint(i)
		}
	}

	degrees := nodes.GetDegrees()

	maxDegree := 0
	for _, c := range raw.Constraints {
		if degrees[c.NodeID] > maxDegree {
			maxDegree = degrees[c.NodeID]
		}
	}

	return &ChipMetadata{
		extDegree:             extDegree,
		numLocalVariables:     append([]int(nil), raw.NumLocalVariables...),
		traceWindowDimensions: dims,
		periodic:              raw.Periodic,
		zerofiers:             raw.Zerofiers,
		nodes:                 nodes.Slice(),
		constraints:           append([]Expression(nil), raw.Constraints...),
		degrees:               degrees,
		maxConstraintDegree:   maxDegree,
	}, nil
}

// BuildMachine validates a RawMachineMetadata, building and validating
// every chip in turn, then validating the machine-level node program and
// constraints against the built chips. See §4.5.
func BuildMachine(extDegree int, raw RawMachineMetadata) (*MachineMetadata, error) {
	machineNodes, err := NewNodes(raw.Nodes)
	if err != nil {
		return nil, errMachineNodes(err)
	}
	if err := machineNodes.ValidatePeriodic(0); err != nil {
		return nil, errMachineNodes(err)
	}
	if _, err := machineNodes.GetDimensions(extDegree, nil); err != nil {
		return nil, errMachineNodes(err)
	}
	if err := machineNodes.ValidateGlobalVariables(extDegree, raw.NumGlobalVariables); err != nil {
		return nil, errMachineNodes(err)
	}

	chips := make([]*ChipMetadata, len(raw.Chips))
	chipLocals := make([][]int, len(raw.Chips))
	for i, rawChip := range raw.Chips {
		chip, err := BuildChip(extDegree, rawChip)
		if err != nil {
			return nil, errMachineChip(i, err)
		}
		chipNodes, _ := NewNodes(chip.nodes)
		if err := chipNodes.ValidateGlobalVariables(extDegree, raw.NumGlobalVariables); err != nil {
			return nil, errMachineChip(i, errChipNode(err))
		}
		chips[i] = chip
		chipLocals[i] = chip.numLocalVariables
	}

	if err := machineNodes.ValidateSharedVariables(extDegree, chipLocals); err != nil {
		return nil, errMachineNodes(err)
	}

	for i, c := range raw.Constraints {
		if c.NodeID < 0 || c.NodeID >= machineNodes.Len() {
			return nil, errMachineConstraint(i)
		}
		if c.ZerofierID != nil {
			return nil, errMachineConstraint(i)
		}
	}

	return &MachineMetadata{
		extDegree:           extDegree,
		numGlobalVariables:  append([]int(nil), raw.NumGlobalVariables...),
		chips:               chips,
		nodes:               machineNodes.Slice(),
		constraints:         append([]Expression(nil), raw.Constraints...),
	}, nil
}
