// Command vybium-vm-prover is a thin CLI front end over the
// stark-constraint-verifier package. Its single subcommand,
// verify-constraints, reads a JSON-encoded chip constraint system and
// out-of-domain witness from stdin and reports whether the witness
// satisfies the chip's quotient identity.
package main

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/vybium/stark-constraint-verifier/internal/vybium-starks-vm/utils"
	vybiumstarksvm "github.com/vybium/stark-constraint-verifier/pkg/vybium-starks-vm"
)

func main() {
	if len(os.Args) < 2 {
		fatal("usage: vybium-vm-prover verify-constraints < request.json")
	}

	switch os.Args[1] {
	case "verify-constraints":
		runVerifyConstraints()
	default:
		fatal(fmt.Sprintf("unknown subcommand %q", os.Args[1]))
	}
}

// nodeJSON is the wire representation of a constraint.Node: a closed sum
// type selected by Kind, matching Node's own field-per-variant layout.
type nodeJSON struct {
	Kind string `json:"kind"`

	Value string `json:"value,omitempty"`

	Segment   int    `json:"segment,omitempty"`
	ColOffset int    `json:"col_offset,omitempty"`
	RowOffset int    `json:"row_offset,omitempty"`
	FieldType string `json:"field_type,omitempty"`

	Scope  string `json:"scope,omitempty"`
	ChipID int    `json:"chip_id,omitempty"`
	Group  int    `json:"group,omitempty"`
	Offset int    `json:"offset,omitempty"`

	Column int `json:"column,omitempty"`

	LHS int `json:"lhs,omitempty"`
	RHS int `json:"rhs,omitempty"`
}

type expJSON struct {
	Kind string `json:"kind"`
	I    uint64 `json:"i"`
}

// zerofierJSON is the wire representation of a constraint.ZerofierExpression.
type zerofierJSON struct {
	Kind  string    `json:"kind"`
	Const string    `json:"const,omitempty"`
	Exp   *expJSON  `json:"exp,omitempty"`
	L     *zerofierJSON `json:"l,omitempty"`
	R     *zerofierJSON `json:"r,omitempty"`
}

type expressionJSON struct {
	NodeID     int  `json:"node_id"`
	ZerofierID *int `json:"zerofier_id,omitempty"`
}

type rawChipJSON struct {
	NumLocalVariables []int            `json:"num_local_variables"`
	TraceWidths       []int            `json:"trace_widths"`
	Zerofiers         []*zerofierJSON  `json:"zerofiers"`
	Periodic          [][]string       `json:"periodic"`
	Nodes             []nodeJSON       `json:"nodes"`
	Constraints       []expressionJSON `json:"constraints"`
}

// verifyConstraintsRequest is the full verify-constraints input: a chip's
// raw constraint metadata plus the out-of-domain witness to check it
// against. Field elements travel as decimal strings to avoid precision
// loss in JSON numbers.
type verifyConstraintsRequest struct {
	FieldModulus    string `json:"field_modulus,omitempty"`
	ExtensionDegree int    `json:"extension_degree,omitempty"`
	NonResidue      string `json:"non_residue,omitempty"`

	Chip rawChipJSON `json:"chip"`

	LocalVariables [][]string   `json:"local_variables"`
	TraceEvals     [][][]string `json:"trace_evals"`
	QuotientEvals  [][]string   `json:"quotient_evals"`
	LogHeight      int          `json:"log_height"`

	Zeta  []string `json:"zeta"`
	Alpha []string `json:"alpha"`
}

type verifyConstraintsResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

func runVerifyConstraints() {
	var req verifyConstraintsRequest
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		fatal(fmt.Sprintf("failed to parse request: %v", err))
	}

	defaults := utils.DefaultConfig()

	fieldModulus := req.FieldModulus
	if fieldModulus == "" {
		fieldModulus = defaults.FieldModulus.String()
	}
	extDegree := req.ExtensionDegree
	if extDegree == 0 {
		extDegree = defaults.ExtensionDegree
	}
	nonResidue := req.NonResidue
	if nonResidue == "" {
		nonResidue = defaults.NonResidue.String()
	}

	field, err := vybiumstarksvm.NewBaseField(&vybiumstarksvm.Config{FieldModulus: fieldModulus})
	if err != nil {
		fatal(fmt.Sprintf("failed to create field: %v", err))
	}

	nonResidueElem, err := parseFieldElement(field, nonResidue)
	if err != nil {
		fatal(fmt.Sprintf("invalid non_residue: %v", err))
	}

	ef, err := vybiumstarksvm.NewExtensionFieldFromBase(field, extDegree, nonResidueElem)
	if err != nil {
		fatal(fmt.Sprintf("failed to create extension field: %v", err))
	}

	raw, err := convertRawChip(field, req.Chip)
	if err != nil {
		fatal(fmt.Sprintf("failed to parse chip: %v", err))
	}

	localVariables, err := convertLocalVariables(field, req.LocalVariables)
	if err != nil {
		fatal(fmt.Sprintf("failed to parse local_variables: %v", err))
	}
	traceEvals, err := convertTraceEvals(ef, req.TraceEvals)
	if err != nil {
		fatal(fmt.Sprintf("failed to parse trace_evals: %v", err))
	}
	quotientEvals, err := convertExtensionElementList(ef, req.QuotientEvals)
	if err != nil {
		fatal(fmt.Sprintf("failed to parse quotient_evals: %v", err))
	}
	zeta, err := parseExtensionElementCoords(ef, req.Zeta)
	if err != nil {
		fatal(fmt.Sprintf("invalid zeta: %v", err))
	}
	alpha, err := parseExtensionElementCoords(ef, req.Alpha)
	if err != nil {
		fatal(fmt.Sprintf("invalid alpha: %v", err))
	}

	result := vybiumstarksvm.VerifyChipQuotient(ef, extDegree, raw, localVariables, traceEvals, quotientEvals, req.LogHeight, zeta, alpha)

	resp := verifyConstraintsResponse{Valid: result.Valid, Error: result.Error}
	if err := json.NewEncoder(os.Stdout).Encode(resp); err != nil {
		fatal(fmt.Sprintf("failed to encode response: %v", err))
	}
	if !result.Valid {
		os.Exit(1)
	}
}

func parseFieldElement(field *vybiumstarksvm.Field, s string) (*vybiumstarksvm.FieldElement, error) {
	value := new(big.Int)
	if _, ok := value.SetString(s, 10); !ok {
		return nil, fmt.Errorf("invalid decimal field element %q", s)
	}
	return field.NewElement(value), nil
}

func parseExtensionElementCoords(ef *vybiumstarksvm.ExtensionField, coords []string) (*vybiumstarksvm.ExtensionElement, error) {
	base := ef.Base()
	if len(coords) == 1 && ef.Degree() > 1 {
		// A single coordinate lifts into the extension via FromBase.
		c, err := parseFieldElement(base, coords[0])
		if err != nil {
			return nil, err
		}
		return ef.FromBase(c), nil
	}
	elems := make([]*vybiumstarksvm.FieldElement, len(coords))
	for i, c := range coords {
		elem, err := parseFieldElement(base, c)
		if err != nil {
			return nil, err
		}
		elems[i] = elem
	}
	return ef.Unflatten(elems)
}

// convertExtensionElementList parses a list of extension elements, each
// given as its own coordinate list (length 1 for a base-lifted value,
// length ef.Degree() for a fully general extension element).
func convertExtensionElementList(ef *vybiumstarksvm.ExtensionField, values [][]string) ([]*vybiumstarksvm.ExtensionElement, error) {
	out := make([]*vybiumstarksvm.ExtensionElement, len(values))
	for i, coords := range values {
		elem, err := parseExtensionElementCoords(ef, coords)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = elem
	}
	return out, nil
}

func convertLocalVariables(field *vybiumstarksvm.Field, groups [][]string) ([][]*vybiumstarksvm.FieldElement, error) {
	out := make([][]*vybiumstarksvm.FieldElement, len(groups))
	for g, group := range groups {
		elems := make([]*vybiumstarksvm.FieldElement, len(group))
		for i, v := range group {
			elem, err := parseFieldElement(field, v)
			if err != nil {
				return nil, fmt.Errorf("group %d, element %d: %w", g, i, err)
			}
			elems[i] = elem
		}
		out[g] = elems
	}
	return out, nil
}

// convertTraceEvals parses the out-of-domain main-row opening: one decimal
// base-field string per cell, lifted into the extension field. A witness
// whose columns are themselves extension-valued (the Ext FieldType case)
// is expected to already carry that value base-lifted by the outer
// collaborator that opened it.
func convertTraceEvals(ef *vybiumstarksvm.ExtensionField, segments [][][]string) ([][][]*vybiumstarksvm.ExtensionElement, error) {
	out := make([][][]*vybiumstarksvm.ExtensionElement, len(segments))
	for s, rows := range segments {
		segment := make([][]*vybiumstarksvm.ExtensionElement, len(rows))
		for r, row := range rows {
			cells := make([]*vybiumstarksvm.ExtensionElement, len(row))
			for c, v := range row {
				base, err := parseFieldElement(ef.Base(), v)
				if err != nil {
					return nil, fmt.Errorf("segment %d, row %d, cell %d: %w", s, r, c, err)
				}
				cells[c] = ef.FromBase(base)
			}
			segment[r] = cells
		}
		out[s] = segment
	}
	return out, nil
}

func convertRawChip(field *vybiumstarksvm.Field, raw rawChipJSON) (vybiumstarksvm.RawChipMetadata, error) {
	nodes := make([]vybiumstarksvm.Node, len(raw.Nodes))
	for i, n := range raw.Nodes {
		node, err := convertNode(field, n)
		if err != nil {
			return vybiumstarksvm.RawChipMetadata{}, fmt.Errorf("node %d: %w", i, err)
		}
		nodes[i] = node
	}

	zerofiers := make([]*vybiumstarksvm.ZerofierExpression, len(raw.Zerofiers))
	for i, z := range raw.Zerofiers {
		zf, err := convertZerofier(field, z)
		if err != nil {
			return vybiumstarksvm.RawChipMetadata{}, fmt.Errorf("zerofier %d: %w", i, err)
		}
		zerofiers[i] = zf
	}

	periodic := make([][]*vybiumstarksvm.FieldElement, len(raw.Periodic))
	for i, col := range raw.Periodic {
		elems := make([]*vybiumstarksvm.FieldElement, len(col))
		for j, v := range col {
			elem, err := parseFieldElement(field, v)
			if err != nil {
				return vybiumstarksvm.RawChipMetadata{}, fmt.Errorf("periodic column %d, cell %d: %w", i, j, err)
			}
			elems[j] = elem
		}
		periodic[i] = elems
	}

	constraints := make([]vybiumstarksvm.Expression, len(raw.Constraints))
	for i, c := range raw.Constraints {
		constraints[i] = vybiumstarksvm.Expression{NodeID: c.NodeID, ZerofierID: c.ZerofierID}
	}

	return vybiumstarksvm.RawChipMetadata{
		NumLocalVariables: raw.NumLocalVariables,
		TraceWidths:       raw.TraceWidths,
		Zerofiers:         zerofiers,
		Periodic:          periodic,
		Nodes:             nodes,
		Constraints:       constraints,
	}, nil
}

func convertFieldType(s string) vybiumstarksvm.FieldType {
	if s == "ext" {
		return vybiumstarksvm.FieldExt
	}
	return vybiumstarksvm.FieldBase
}

func convertScope(s string) vybiumstarksvm.Scope {
	if s == "local" {
		return vybiumstarksvm.ScopeLocal
	}
	return vybiumstarksvm.ScopeGlobal
}

func convertNode(field *vybiumstarksvm.Field, n nodeJSON) (vybiumstarksvm.Node, error) {
	switch n.Kind {
	case "constant":
		value, err := parseFieldElement(field, n.Value)
		if err != nil {
			return vybiumstarksvm.Node{}, err
		}
		return vybiumstarksvm.ConstantNode(value), nil
	case "trace":
		return vybiumstarksvm.TraceNode(n.Segment, n.ColOffset, n.RowOffset, convertFieldType(n.FieldType)), nil
	case "var":
		scope := vybiumstarksvm.VarScope{Scope: convertScope(n.Scope), ChipID: n.ChipID}
		return vybiumstarksvm.VarNode(scope, n.Group, n.Offset, convertFieldType(n.FieldType)), nil
	case "periodic":
		return vybiumstarksvm.PeriodicNode(n.Column), nil
	case "add":
		return vybiumstarksvm.AddNode(n.LHS, n.RHS), nil
	case "sub":
		return vybiumstarksvm.SubNode(n.LHS, n.RHS), nil
	case "mul":
		return vybiumstarksvm.MulNode(n.LHS, n.RHS), nil
	default:
		return vybiumstarksvm.Node{}, fmt.Errorf("unknown node kind %q", n.Kind)
	}
}

func convertExp(e *expJSON) (vybiumstarksvm.Exp, error) {
	var kind int
	switch e.Kind {
	case "first":
		kind = 0
	case "last":
		kind = 1
	case "rate":
		kind = 2
	default:
		return vybiumstarksvm.Exp{}, fmt.Errorf("unknown exponent kind %q", e.Kind)
	}
	return vybiumstarksvm.Exp{Kind: vybiumstarksvm.ExpKind(kind), I: e.I}, nil
}

func convertZerofier(field *vybiumstarksvm.Field, z *zerofierJSON) (*vybiumstarksvm.ZerofierExpression, error) {
	switch z.Kind {
	case "const":
		value, err := parseFieldElement(field, z.Const)
		if err != nil {
			return nil, err
		}
		return vybiumstarksvm.ZConst(value), nil
	case "x":
		exp, err := convertExp(z.Exp)
		if err != nil {
			return nil, err
		}
		return vybiumstarksvm.ZXExp(exp), nil
	case "g":
		exp, err := convertExp(z.Exp)
		if err != nil {
			return nil, err
		}
		return vybiumstarksvm.ZGExp(exp), nil
	case "add", "sub", "mul", "div":
		l, err := convertZerofier(field, z.L)
		if err != nil {
			return nil, err
		}
		r, err := convertZerofier(field, z.R)
		if err != nil {
			return nil, err
		}
		switch z.Kind {
		case "add":
			return vybiumstarksvm.ZAddExpr(l, r), nil
		case "sub":
			return vybiumstarksvm.ZSubExpr(l, r), nil
		case "mul":
			return vybiumstarksvm.ZMulExpr(l, r), nil
		default:
			return vybiumstarksvm.ZDivExpr(l, r), nil
		}
	default:
		return nil, fmt.Errorf("unknown zerofier kind %q", z.Kind)
	}
}

func logStderr(msg string) {
	fmt.Fprintln(os.Stderr, "vybium-vm-prover:", msg)
}

func fatal(msg string) {
	logStderr("ERROR: " + msg)
	os.Exit(1)
}
