package constraint

import (
	"errors"
	"testing"

	"github.com/vybium/stark-constraint-verifier/internal/vybium-starks-vm/core"
)

// S1: a trivial chip (one constraint evaluating to zero, under an invertible
// constant zerofier, and a single zero quotient chunk) is accepted.
func TestCheckQuotientSmokeAccept(t *testing.T) {
	field, ef := newTrivialEF(t, 97)
	zerofierID := 0
	raw := RawChipMetadata{
		Nodes:       []Node{ConstantNode(field.Zero())},
		Zerofiers:   []*ZerofierExpression{ZConst(field.One())},
		Constraints: []Expression{{NodeID: 0, ZerofierID: &zerofierID}},
	}
	chip, err := BuildChip(1, raw)
	if err != nil {
		t.Fatalf("BuildChip: %v", err)
	}

	cd, err := NewChipData(ef, chip, [][]*core.FieldElement{}, [][][]*core.ExtensionElement{}, []*core.ExtensionElement{ef.Zero()}, 2)
	if err != nil {
		t.Fatalf("NewChipData: %v", err)
	}

	zeta := ef.FromBase(field.NewElementFromInt64(3))
	alpha := ef.FromBase(field.NewElementFromInt64(5))
	if err := cd.CheckQuotient([][]*core.FieldElement{}, zeta, alpha); err != nil {
		t.Errorf("CheckQuotient: unexpected error %v", err)
	}
}

// S3: a witness whose local-variable group shape disagrees with the chip's
// declared shape is rejected before any field arithmetic runs.
func TestNewChipDataShapeChecks(t *testing.T) {
	field, ef := newTrivialEF(t, 97)
	zerofierID := 0
	raw := RawChipMetadata{
		NumLocalVariables: []int{2},
		TraceWidths:       []int{1},
		Nodes: []Node{
			VarNode(VarScope{Scope: Local, ChipID: 0}, 0, 0, Base),
			TraceNode(0, 0, 0, Base),
		},
		Zerofiers:   []*ZerofierExpression{ZConst(field.One())},
		Constraints: []Expression{{NodeID: 1, ZerofierID: &zerofierID}},
	}
	chip, err := BuildChip(1, raw)
	if err != nil {
		t.Fatalf("BuildChip: %v", err)
	}

	validLocals := [][]*core.FieldElement{{field.Zero(), field.Zero()}}
	validTrace := [][][]*core.ExtensionElement{{{ef.Zero()}}}
	validQuotient := []*core.ExtensionElement{ef.Zero()}

	tests := []struct {
		name      string
		locals    [][]*core.FieldElement
		trace     [][][]*core.ExtensionElement
		quotient  []*core.ExtensionElement
		wantKind  DataErrorKind
	}{
		{"wrong group count", [][]*core.FieldElement{}, validTrace, validQuotient, NumLocalVariableGroups},
		{"wrong group size", [][]*core.FieldElement{{field.Zero()}}, validTrace, validQuotient, NumLocalVariables},
		{"wrong segment count", validLocals, [][][]*core.ExtensionElement{}, validQuotient, NumTraces},
		{"wrong segment height", validLocals, [][][]*core.ExtensionElement{{}}, validQuotient, SegmentHeight},
		{"wrong row width", validLocals, [][][]*core.ExtensionElement{{{ef.Zero(), ef.Zero()}}}, validQuotient, SegmentRowWidth},
		{"wrong quotient length", validLocals, validTrace, []*core.ExtensionElement{}, NumQuotientEvals},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewChipData(ef, chip, tt.locals, tt.trace, tt.quotient, 2)
			var dataErr *DataError
			if !errors.As(err, &dataErr) || dataErr.Kind != tt.wantKind {
				t.Fatalf("expected DataError kind %v, got %v", tt.wantKind, err)
			}
		})
	}
}

// B2: a periodic column may be exactly as long as the trace (2^logHeight);
// anything longer is rejected.
func TestNewChipDataPeriodicLengthBoundary(t *testing.T) {
	field, ef := newTrivialEF(t, 97)
	col4 := make([]*core.FieldElement, 4)
	col8 := make([]*core.FieldElement, 8)
	for i := range col4 {
		col4[i] = field.NewElementFromInt64(int64(i))
	}
	for i := range col8 {
		col8[i] = field.NewElementFromInt64(int64(i))
	}

	chipAtBoundary := &ChipMetadata{extDegree: 1, periodic: [][]*core.FieldElement{col4}}
	if _, err := NewChipData(ef, chipAtBoundary, [][]*core.FieldElement{}, [][][]*core.ExtensionElement{}, []*core.ExtensionElement{ef.Zero()}, 2); err != nil {
		t.Errorf("periodic column exactly 2^logHeight long should be accepted, got %v", err)
	}

	chipOverBoundary := &ChipMetadata{extDegree: 1, periodic: [][]*core.FieldElement{col8}}
	_, err := NewChipData(ef, chipOverBoundary, [][]*core.FieldElement{}, [][][]*core.ExtensionElement{}, []*core.ExtensionElement{ef.Zero()}, 2)
	var dataErr *DataError
	if !errors.As(err, &dataErr) || dataErr.Kind != MinHeight {
		t.Fatalf("expected DataError::MinHeight, got %v", err)
	}
}

// P7 / grounding for the two distinct "unflatten" semantics: a Var::Ext node
// reconstructs its value from raw base-field coordinates (Unflatten), while
// a Trace::Ext node recombines already-extension-valued sub-column openings
// (UnflattenExtension). The two must not be interchangeable.
func TestEvalNodesVarVsTraceUnflatten(t *testing.T) {
	_, ef := newDegreeTwoEF(t)
	base := ef.Base()

	c0 := base.NewElementFromInt64(3)
	c1 := base.NewElementFromInt64(4)
	varChip := &ChipMetadata{
		extDegree: 2,
		nodes:     []Node{VarNode(VarScope{Scope: Global}, 0, 0, Ext)},
	}
	varCD := &ChipData{ef: ef, chip: varChip}
	varEvals, err := varCD.evalNodes([][]*core.FieldElement{{c0, c1}}, nil)
	if err != nil {
		t.Fatalf("evalNodes (Var::Ext): %v", err)
	}
	want, err := ef.Unflatten([]*core.FieldElement{c0, c1})
	if err != nil {
		t.Fatalf("Unflatten: %v", err)
	}
	if !varEvals[0].Equal(want) {
		t.Errorf("Var::Ext eval = %v, expected raw-coordinate unflatten %v", varEvals[0], want)
	}

	b0 := ef.FromBase(base.NewElementFromInt64(1))
	b1 := ef.FromBase(base.NewElementFromInt64(2))
	traceChip := &ChipMetadata{
		extDegree: 2,
		nodes:     []Node{TraceNode(0, 0, 0, Ext)},
	}
	traceCD := &ChipData{ef: ef, chip: traceChip, traceEvals: [][][]*core.ExtensionElement{{{b0, b1}}}}
	traceEvals, err := traceCD.evalNodes(nil, nil)
	if err != nil {
		t.Fatalf("evalNodes (Trace::Ext): %v", err)
	}
	wantTrace := ef.Monomial(0).Mul(b0).Add(ef.Monomial(1).Mul(b1))
	if !traceEvals[0].Equal(wantTrace) {
		t.Errorf("Trace::Ext eval = %v, expected monomial recombination %v", traceEvals[0], wantTrace)
	}

	// The Var node reads the raw coordinates [3,4] and the Trace node reads
	// the openings [1,2], so the two results differ: each node kind
	// evaluates from its own source rather than a shared one.
	if varEvals[0].Equal(traceEvals[0]) {
		t.Error("Var::Ext and Trace::Ext unflattening must not coincidentally agree in this case")
	}
}

// P6: CheckQuotient reconstructs the claimed quotient from its D-chunked
// evaluations via Horner's rule in zeta^n, most significant chunk first.
func TestCheckQuotientHornerReconstruction(t *testing.T) {
	field, ef := newDegreeTwoEF(t)
	const logHeight = 1 // n=2, within F_5's 2-adic subgroup of order 4

	a0 := ef.FromBase(field.NewElementFromInt64(2))
	a1 := ef.Zero()
	b0 := ef.FromBase(field.NewElementFromInt64(1))
	b1 := ef.Zero()
	quotientEvals := []*core.ExtensionElement{a0, a1, b0, b1}

	zeta := ef.FromBase(field.NewElementFromInt64(3))
	zetaPowN := zeta.Exp(2)
	qi0, err := ef.UnflattenExtension([]*core.ExtensionElement{a0, a1})
	if err != nil {
		t.Fatalf("UnflattenExtension: %v", err)
	}
	qi1, err := ef.UnflattenExtension([]*core.ExtensionElement{b0, b1})
	if err != nil {
		t.Fatalf("UnflattenExtension: %v", err)
	}
	expected := qi0.Add(qi1.Mul(zetaPowN))
	expectedCoords := expected.ToBaseSlice()

	zerofierID := 0
	raw := RawChipMetadata{
		NumLocalVariables: []int{2},
		Nodes:             []Node{VarNode(VarScope{Scope: Local, ChipID: 0}, 0, 0, Ext)},
		Zerofiers:         []*ZerofierExpression{ZConst(field.One())},
		Constraints:       []Expression{{NodeID: 0, ZerofierID: &zerofierID}},
	}
	chip, err := BuildChip(2, raw)
	if err != nil {
		t.Fatalf("BuildChip: %v", err)
	}
	chip.maxConstraintDegree = 3 // forces NumQuotientEvals() == 2 chunks

	cd, err := NewChipData(ef, chip, [][]*core.FieldElement{expectedCoords}, [][][]*core.ExtensionElement{}, quotientEvals, logHeight)
	if err != nil {
		t.Fatalf("NewChipData: %v", err)
	}
	alpha := ef.FromBase(field.NewElementFromInt64(7))
	if err := cd.CheckQuotient(nil, zeta, alpha); err != nil {
		t.Errorf("CheckQuotient: expected the Horner-reconstructed quotient to match, got %v", err)
	}
}

// S6: when the claimed quotient does not match the constraints evaluated at
// zeta, CheckQuotient reports DataError::InvalidQuotient.
func TestCheckQuotientMismatch(t *testing.T) {
	field, ef := newDegreeTwoEF(t)
	const logHeight = 1

	zerofierID := 0
	raw := RawChipMetadata{
		NumLocalVariables: []int{2},
		Nodes:             []Node{VarNode(VarScope{Scope: Local, ChipID: 0}, 0, 0, Ext)},
		Zerofiers:         []*ZerofierExpression{ZConst(field.One())},
		Constraints:       []Expression{{NodeID: 0, ZerofierID: &zerofierID}},
	}
	chip, err := BuildChip(2, raw)
	if err != nil {
		t.Fatalf("BuildChip: %v", err)
	}
	chip.maxConstraintDegree = 3

	zeroLocal := [][]*core.FieldElement{{field.Zero(), field.Zero()}}
	quotientEvals := []*core.ExtensionElement{
		ef.FromBase(field.NewElementFromInt64(2)), ef.Zero(),
		ef.FromBase(field.NewElementFromInt64(1)), ef.Zero(),
	}
	cd, err := NewChipData(ef, chip, zeroLocal, [][][]*core.ExtensionElement{}, quotientEvals, logHeight)
	if err != nil {
		t.Fatalf("NewChipData: %v", err)
	}

	zeta := ef.FromBase(field.NewElementFromInt64(3))
	alpha := ef.FromBase(field.NewElementFromInt64(7))
	err = cd.CheckQuotient(nil, zeta, alpha)
	var dataErr *DataError
	if !errors.As(err, &dataErr) || dataErr.Kind != InvalidQuotient {
		t.Fatalf("expected DataError::InvalidQuotient, got %v", err)
	}
}
