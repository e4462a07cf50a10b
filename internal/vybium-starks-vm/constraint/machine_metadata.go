package constraint

// MachineMetadata is the validated, immutable representation of a full
// machine: its chips plus the chip-less, cross-chip constraint layer that
// references them. Only ever produced by BuildMachine, which enforces
// invariants M1-M4.
type MachineMetadata struct {
	extDegree int

	numGlobalVariables []int
	chips              []*ChipMetadata
	nodes              []Node
	constraints        []Expression
}

// NumGlobalVariables returns the size of each global variable group.
func (m *MachineMetadata) NumGlobalVariables() []int { return m.numGlobalVariables }

// Chips returns the machine's chips, in declaration order.
func (m *MachineMetadata) Chips() []*ChipMetadata { return m.chips }

// Nodes returns the machine-level (cross-chip) node program.
func (m *MachineMetadata) Nodes() []Node { return m.nodes }

// Constraints returns the machine-level constraints. None of these carry a
// zerofier (invariant M4).
func (m *MachineMetadata) Constraints() []Expression { return m.constraints }
