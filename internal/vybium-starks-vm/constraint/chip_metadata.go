package constraint

import (
	"github.com/vybium/stark-constraint-verifier/internal/vybium-starks-vm/core"
	"github.com/vybium/stark-constraint-verifier/internal/vybium-starks-vm/utils"
)

// ChipMetadata is the validated, immutable constraint system of one chip
// (one AIR table): its node program, zerofiers, constraints, and the
// dimensions/degrees inferred from them. It is only ever produced by
// BuildChip, which enforces invariants C1-C5.
type ChipMetadata struct {
	extDegree int

	numLocalVariables     []int
	traceWindowDimensions []Dimensions
	periodic              [][]*core.FieldElement
	zerofiers             []*ZerofierExpression
	nodes                 []Node
	constraints           []Expression
	degrees               []int
	maxConstraintDegree   int
}

// NumLocalVariables returns the size of each local variable group.
func (c *ChipMetadata) NumLocalVariables() []int { return c.numLocalVariables }

// TraceWindowDimensions returns one Dimensions entry per trace segment.
func (c *ChipMetadata) TraceWindowDimensions() []Dimensions { return c.traceWindowDimensions }

// Periodic returns the chip's periodic columns.
func (c *ChipMetadata) Periodic() [][]*core.FieldElement { return c.periodic }

// Zerofiers returns the chip's zerofier expressions.
func (c *ChipMetadata) Zerofiers() []*ZerofierExpression { return c.zerofiers }

// Nodes returns the chip's node program.
func (c *ChipMetadata) Nodes() []Node { return c.nodes }

// Constraints returns the chip's constraints.
func (c *ChipMetadata) Constraints() []Expression { return c.constraints }

// Degrees returns the arithmetic degree of every node, in node order.
func (c *ChipMetadata) Degrees() []int { return c.degrees }

// MaxConstraintDegree returns the maximum degree over all constraints
// (invariant C5).
func (c *ChipMetadata) MaxConstraintDegree() int { return c.maxConstraintDegree }

// NumQuotientEvals returns the number of extension-field quotient chunks
// the verifier expects for this chip: the quotient polynomial's degree
// bound, padded up to the next power of two, per §4.6.
//
//	max_deg = max(max_constraint_degree, 2)
//	num_quotient_evals = next_power_of_two(max_deg - 1)
func (c *ChipMetadata) NumQuotientEvals() int {
	maxDeg := c.maxConstraintDegree
	if maxDeg < 2 {
		maxDeg = 2
	}
	return utils.NextPowerOfTwo(maxDeg - 1)
}
