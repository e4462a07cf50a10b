package constraint

import (
	"github.com/vybium/stark-constraint-verifier/internal/vybium-starks-vm/core"
)

// ExpKind tags the variant of an Exp exponent expression.
type ExpKind int

const (
	// ExpFirst has exponent i.
	ExpFirst ExpKind = iota
	// ExpLast has exponent n - i.
	ExpLast
	// ExpRate has exponent n / i (i must divide n).
	ExpRate
)

// Exp is a small exponent expression evaluated against the trace length n.
type Exp struct {
	Kind ExpKind
	I    uint64
}

// Power evaluates the exponent against trace length n. Last(i) with i > n
// and Rate(i) with i not dividing n saturate to zero rather than wrapping,
// which keeps the resulting exponentiation well-defined and deterministic
// (see the zerofier open question on divisor-by-zero semantics).
func (e Exp) Power(n uint64) uint64 {
	switch e.Kind {
	case ExpFirst:
		return e.I
	case ExpLast:
		if e.I > n {
			return 0
		}
		return n - e.I
	case ExpRate:
		if e.I == 0 || n%e.I != 0 {
			return 0
		}
		return n / e.I
	default:
		return 0
	}
}

// ZerofierKind tags the variant held by a ZerofierExpression.
type ZerofierKind int

const (
	ZConstant ZerofierKind = iota
	ZX
	ZG
	ZAdd
	ZSub
	ZMul
	ZDiv
)

// ZerofierExpression is a small recursive arithmetic tree over the
// out-of-domain point x, the subgroup generator g, and the trace length n.
// It is built once per chip at validation time and evaluated once per
// verification at the challenge point zeta.
type ZerofierExpression struct {
	Kind ZerofierKind

	Const *core.FieldElement // Constant
	Exp   Exp                // X, G

	L, R *ZerofierExpression // Add, Sub, Mul, Div
}

// ZConst builds a Constant(c) zerofier leaf.
func ZConst(c *core.FieldElement) *ZerofierExpression {
	return &ZerofierExpression{Kind: ZConstant, Const: c}
}

// ZXExp builds an X(exp) zerofier leaf: x^exp.Power(n).
func ZXExp(exp Exp) *ZerofierExpression {
	return &ZerofierExpression{Kind: ZX, Exp: exp}
}

// ZGExp builds a G(exp) zerofier leaf: intended as g^exp.Power(n) lifted to
// EF. The upstream source evaluates this identically to X(exp) (i.e. using
// x rather than g), which is flagged in the design notes as very likely a
// bug. This implementation follows the corrected, named semantics: g raised
// to the power, not x.
func ZGExp(exp Exp) *ZerofierExpression {
	return &ZerofierExpression{Kind: ZG, Exp: exp}
}

func zBinary(kind ZerofierKind, l, r *ZerofierExpression) *ZerofierExpression {
	return &ZerofierExpression{Kind: kind, L: l, R: r}
}

// ZAddExpr builds Add(l, r).
func ZAddExpr(l, r *ZerofierExpression) *ZerofierExpression { return zBinary(ZAdd, l, r) }

// ZSubExpr builds Sub(l, r).
func ZSubExpr(l, r *ZerofierExpression) *ZerofierExpression { return zBinary(ZSub, l, r) }

// ZMulExpr builds Mul(l, r).
func ZMulExpr(l, r *ZerofierExpression) *ZerofierExpression { return zBinary(ZMul, l, r) }

// ZDivExpr builds Div(l, r). Evaluation fails (returns ok=false) if r
// evaluates to zero.
func ZDivExpr(l, r *ZerofierExpression) *ZerofierExpression { return zBinary(ZDiv, l, r) }

// Eval evaluates the zerofier expression at (x, g, n), returning ok=false
// if any sub-expression is inevaluable (currently: division where the
// divisor evaluates to zero).
func (z *ZerofierExpression) Eval(x *core.ExtensionElement, g *core.FieldElement, n uint64) (*core.ExtensionElement, bool) {
	ef := x.Field()
	switch z.Kind {
	case ZConstant:
		return ef.FromBase(z.Const), true
	case ZX:
		return x.Exp(z.Exp.Power(n)), true
	case ZG:
		return ef.FromBase(g.Exp(bigFromUint64(z.Exp.Power(n)))), true
	case ZAdd, ZSub, ZMul, ZDiv:
		lv, ok := z.L.Eval(x, g, n)
		if !ok {
			return nil, false
		}
		rv, ok := z.R.Eval(x, g, n)
		if !ok {
			return nil, false
		}
		switch z.Kind {
		case ZAdd:
			return lv.Add(rv), true
		case ZSub:
			return lv.Sub(rv), true
		case ZMul:
			return lv.Mul(rv), true
		case ZDiv:
			if rv.IsZero() {
				return nil, false
			}
			q, err := lv.Div(rv)
			if err != nil {
				return nil, false
			}
			return q, true
		}
	}
	return nil, false
}
