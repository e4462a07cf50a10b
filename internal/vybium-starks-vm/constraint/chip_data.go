package constraint

import (
	"github.com/vybium/stark-constraint-verifier/internal/vybium-starks-vm/core"
	"github.com/vybium/stark-constraint-verifier/internal/vybium-starks-vm/utils"
)

// ChipData holds the witness-level evaluations needed to verify one chip's
// quotient identity: the chip's local variables, its opened trace
// evaluations, the claimed decomposed quotient, and the log2 of its trace
// length. It borrows the chip's validated ChipMetadata for the duration of
// one verification call; metadata itself is immutable and safe to share
// across concurrent ChipData instances.
type ChipData struct {
	ef  *core.ExtensionField
	chip *ChipMetadata

	localVariables [][]*core.FieldElement
	traceEvals     [][][]*core.ExtensionElement
	quotientEvals  []*core.ExtensionElement
	logHeight      int
}

// NewChipData shape-checks a witness against chip and builds a ChipData.
// See §4.8 (new): every declared dimension must be matched exactly.
func NewChipData(
	ef *core.ExtensionField,
	chip *ChipMetadata,
	localVariables [][]*core.FieldElement,
	traceEvals [][][]*core.ExtensionElement,
	quotientEvals []*core.ExtensionElement,
	logHeight int,
) (*ChipData, error) {
	expectedGroups := chip.NumLocalVariables()
	if len(localVariables) != len(expectedGroups) {
		return nil, &DataError{Kind: NumLocalVariableGroups, Expected: len(expectedGroups), Actual: len(localVariables)}
	}
	for g, group := range localVariables {
		if len(group) != expectedGroups[g] {
			return nil, &DataError{Kind: NumLocalVariables, Group: g, Expected: expectedGroups[g], Actual: len(group)}
		}
	}

	dims := chip.TraceWindowDimensions()
	if len(traceEvals) != len(dims) {
		return nil, &DataError{Kind: NumTraces, Expected: len(dims), Actual: len(traceEvals)}
	}
	for s, segment := range traceEvals {
		if len(segment) != dims[s].Height {
			return nil, &DataError{Kind: SegmentHeight, Segment: s, Expected: dims[s].Height, Actual: len(segment)}
		}
		for r, row := range segment {
			if len(row) != dims[s].Width {
				return nil, &DataError{Kind: SegmentRowWidth, Segment: s, Row: r, Expected: dims[s].Width, Actual: len(row)}
			}
		}
	}

	wantQuotient := chip.NumQuotientEvals() * ef.Degree()
	if len(quotientEvals) != wantQuotient {
		return nil, &DataError{Kind: NumQuotientEvals, Expected: wantQuotient, Actual: len(quotientEvals)}
	}

	maxHeight := 1 << logHeight
	for c, col := range chip.Periodic() {
		if len(col) > maxHeight {
			return nil, &DataError{Kind: MinHeight, Column: c, Expected: maxHeight, Actual: len(col)}
		}
	}

	return &ChipData{
		ef:             ef,
		chip:           chip,
		localVariables: localVariables,
		traceEvals:     traceEvals,
		quotientEvals:  quotientEvals,
		logHeight:      logHeight,
	}, nil
}

// evalPeriodicColumns evaluates every periodic column of the chip at zeta,
// using the unique low-degree interpolation of the column's power-of-two
// length at its own subgroup of roots of unity. A periodic column of
// length L is conceptually repeated across the full n = 2^logHeight trace,
// which corresponds to evaluating its interpolant at zeta^(n/L).
func (cd *ChipData) evalPeriodicColumns(zeta *core.ExtensionElement) ([]*core.ExtensionElement, error) {
	n := uint64(1) << cd.logHeight
	cols := cd.chip.Periodic()
	out := make([]*core.ExtensionElement, len(cols))
	base := cd.ef.Base()

	for c, col := range cols {
		l := len(col)
		if l == 0 {
			out[c] = cd.ef.Zero()
			continue
		}
		point := zeta.Exp(n / uint64(l))
		val, err := evalPeriodicAtPoint(cd.ef, base, col, point)
		if err != nil {
			out[c] = cd.ef.Zero()
			continue
		}
		out[c] = val
	}
	return out, nil
}

// evalPeriodicAtPoint interpolates col (the values of a polynomial over the
// L-th roots of unity, L = len(col)) and evaluates that interpolant at
// point, using the barycentric form.
func evalPeriodicAtPoint(ef *core.ExtensionField, base *core.Field, col []*core.FieldElement, point *core.ExtensionElement) (*core.ExtensionElement, error) {
	l := len(col)
	if l == 1 {
		return ef.FromBase(col[0]), nil
	}

	omega, err := base.TwoAdicGenerator(utils.Log2(l))
	if err != nil {
		return nil, err
	}

	xs := make([]*core.FieldElement, l)
	xs[0] = base.One()
	for i := 1; i < l; i++ {
		xs[i] = xs[i-1].Mul(omega)
	}

	weights := make([]*core.FieldElement, l)
	for i := 0; i < l; i++ {
		prod := base.One()
		for j := 0; j < l; j++ {
			if i == j {
				continue
			}
			prod = prod.Mul(xs[i].Sub(xs[j]))
		}
		inv, err := prod.Inv()
		if err != nil {
			return nil, err
		}
		weights[i] = inv
	}

	numerator := ef.Zero()
	denominator := ef.Zero()
	for i := 0; i < l; i++ {
		diff := point.Sub(ef.FromBase(xs[i]))
		if diff.IsZero() {
			return ef.FromBase(col[i]), nil
		}
		diffInv, err := diff.Inv()
		if err != nil {
			return nil, err
		}
		term := diffInv.MulBase(weights[i])
		numerator = numerator.Add(term.MulBase(col[i]))
		denominator = denominator.Add(term)
	}
	return numerator.Div(denominator)
}

// evalNodes evaluates every node in topological order, producing one
// extension-field value per node. Invariant N1 guarantees an arithmetic
// node's operands have already been evaluated by the time it is visited.
func (cd *ChipData) evalNodes(globalVariables [][]*core.FieldElement, periodicEvals []*core.ExtensionElement) ([]*core.ExtensionElement, error) {
	nodes := cd.chip.Nodes()
	evals := make([]*core.ExtensionElement, len(nodes))

	for i, n := range nodes {
		switch n.Kind {
		case KindConstant:
			evals[i] = cd.ef.FromBase(n.Value)

		case KindTrace:
			row := cd.traceEvals[n.Segment][n.RowOffset]
			if n.FieldType == Base {
				evals[i] = row[n.ColOffset]
			} else {
				bases := row[n.ColOffset : n.ColOffset+cd.ef.Degree()]
				unflat, err := cd.ef.UnflattenExtension(bases)
				if err != nil {
					return nil, err
				}
				evals[i] = unflat
			}

		case KindVar:
			vars := globalVariables
			if n.VScope.Scope == Local {
				vars = cd.localVariables
			}
			if n.FieldType == Base {
				evals[i] = cd.ef.FromBase(vars[n.Group][n.Offset])
			} else {
				slice := vars[n.Group][n.Offset : n.Offset+cd.ef.Degree()]
				unflat, err := cd.ef.Unflatten(slice)
				if err != nil {
					return nil, err
				}
				evals[i] = unflat
			}

		case KindPeriodic:
			evals[i] = periodicEvals[n.Column]

		case KindAdd:
			evals[i] = evals[n.LHS].Add(evals[n.RHS])
		case KindSub:
			evals[i] = evals[n.LHS].Sub(evals[n.RHS])
		case KindMul:
			evals[i] = evals[n.LHS].Mul(evals[n.RHS])
		}
	}
	return evals, nil
}

// CheckQuotient is the verification step: it evaluates every constraint at
// zeta, divides by its zerofier, combines the results with a random linear
// combination weighted by alpha, reconstructs the claimed quotient from its
// D-chunked evaluations, and compares the two. See §4.8.
func (cd *ChipData) CheckQuotient(globalVariables [][]*core.FieldElement, zeta, alpha *core.ExtensionElement) error {
	g, err := cd.ef.Base().TwoAdicGenerator(cd.logHeight)
	if err != nil {
		return err
	}
	n := uint64(1) << cd.logHeight

	periodicEvals, err := cd.evalPeriodicColumns(zeta)
	if err != nil {
		return err
	}

	evals, err := cd.evalNodes(globalVariables, periodicEvals)
	if err != nil {
		return err
	}

	invZerofiers := make([]*core.ExtensionElement, len(cd.chip.Zerofiers()))
	for i, z := range cd.chip.Zerofiers() {
		v, ok := z.Eval(zeta, g, n)
		if !ok {
			return &DataError{Kind: UndefinedZerofierEval, Index: i}
		}
		inv, ok := v.TryInverse()
		if !ok {
			return &DataError{Kind: UndefinedZerofierEval, Index: i}
		}
		invZerofiers[i] = inv
	}

	constraints := cd.chip.Constraints()
	quotient := cd.ef.Zero()
	for k := len(constraints) - 1; k >= 0; k-- {
		c := constraints[k]
		term := evals[c.NodeID].Mul(invZerofiers[*c.ZerofierID])
		quotient = quotient.Mul(alpha).Add(term)
	}

	zetaPowN := zeta.Exp(n)
	numChunks := cd.chip.NumQuotientEvals()
	quotientExpected := cd.ef.Zero()
	degree := cd.ef.Degree()
	for i := numChunks - 1; i >= 0; i-- {
		chunk := cd.quotientEvals[i*degree : (i+1)*degree]
		qi, err := cd.ef.UnflattenExtension(chunk)
		if err != nil {
			return err
		}
		quotientExpected = quotientExpected.Mul(zetaPowN).Add(qi)
	}

	if !quotient.Equal(quotientExpected) {
		return &DataError{Kind: InvalidQuotient}
	}
	return nil
}
