// Package core provides the degree-D extension field used by the verifier
// for out-of-domain challenges (zeta, alpha) and quotient arithmetic.
package core

import (
	"fmt"
	"math/big"
)

// ExtensionField is a degree-D extension of a base Field, represented as
// F[x] / (x^D - nonResidue). This is the standard binomial-extension
// construction used throughout STARK implementations when a degree-D
// irreducible binomial exists over the base field.
type ExtensionField struct {
	base       *Field
	degree     int
	nonResidue *FieldElement
}

// ExtensionElement is an element of an ExtensionField, represented as its
// D coordinates over the monomial basis {1, x, x^2, ..., x^(D-1)}.
type ExtensionElement struct {
	field  *ExtensionField
	coeffs []*FieldElement // length == field.degree
}

// NewExtensionField builds a degree-D extension of base using x^D - nonResidue
// as the reduction polynomial. Callers are responsible for choosing a
// nonResidue that makes the binomial irreducible over base; this constructor
// does not attempt to verify irreducibility.
func NewExtensionField(base *Field, degree int, nonResidue *FieldElement) (*ExtensionField, error) {
	if degree < 1 {
		return nil, fmt.Errorf("extension degree must be at least 1, got %d", degree)
	}
	if !nonResidue.Field().Equals(base) {
		return nil, fmt.Errorf("non-residue must belong to the base field")
	}
	return &ExtensionField{base: base, degree: degree, nonResidue: nonResidue}, nil
}

// Degree returns D, the extension degree.
func (ef *ExtensionField) Degree() int {
	return ef.degree
}

// Base returns the underlying base field.
func (ef *ExtensionField) Base() *Field {
	return ef.base
}

// Zero returns the additive identity.
func (ef *ExtensionField) Zero() *ExtensionElement {
	coeffs := make([]*FieldElement, ef.degree)
	for i := range coeffs {
		coeffs[i] = ef.base.Zero()
	}
	return &ExtensionElement{field: ef, coeffs: coeffs}
}

// One returns the multiplicative identity.
func (ef *ExtensionField) One() *ExtensionElement {
	e := ef.Zero()
	e.coeffs[0] = ef.base.One()
	return e
}

// FromBase lifts a single base-field element into the extension, placing it
// in the constant coordinate and zero elsewhere.
func (ef *ExtensionField) FromBase(c *FieldElement) *ExtensionElement {
	e := ef.Zero()
	e.coeffs[0] = c
	return e
}

// Unflatten reconstructs an extension element from exactly D base-field
// coordinates, taken in monomial-basis order. This is the inverse of
// ToBaseSlice.
func (ef *ExtensionField) Unflatten(bases []*FieldElement) (*ExtensionElement, error) {
	if len(bases) != ef.degree {
		return nil, fmt.Errorf("unflatten requires exactly %d base coefficients, got %d", ef.degree, len(bases))
	}
	coeffs := make([]*FieldElement, ef.degree)
	copy(coeffs, bases)
	return &ExtensionElement{field: ef, coeffs: coeffs}, nil
}

// Monomial returns the i-th standard basis element x^i of the extension
// over its base field (1 in coordinate i, 0 elsewhere).
func (ef *ExtensionField) Monomial(i int) *ExtensionElement {
	e := ef.Zero()
	e.coeffs[i] = ef.base.One()
	return e
}

// UnflattenExtension reconstructs an extension element from D values that
// are themselves already extension elements, via Σ monomial(i)*bases[i].
// This is the general form used to recombine the D per-coordinate opening
// evaluations of an extension-typed trace column at an out-of-domain
// point: each bases[i] is the evaluation, at that point, of the i-th
// base-field sub-column, not a plain base-field coefficient. When every
// bases[i] happens to be a base-field embedding, this reduces to the same
// coordinate placement as Unflatten.
func (ef *ExtensionField) UnflattenExtension(bases []*ExtensionElement) (*ExtensionElement, error) {
	if len(bases) != ef.degree {
		return nil, fmt.Errorf("unflatten requires exactly %d coefficients, got %d", ef.degree, len(bases))
	}
	result := ef.Zero()
	for i, b := range bases {
		result = result.Add(ef.Monomial(i).Mul(b))
	}
	return result, nil
}

// ToBaseSlice returns the D base-field coordinates of e in monomial-basis order.
func (e *ExtensionElement) ToBaseSlice() []*FieldElement {
	out := make([]*FieldElement, len(e.coeffs))
	copy(out, e.coeffs)
	return out
}

// Field returns the extension field this element belongs to.
func (e *ExtensionElement) Field() *ExtensionField {
	return e.field
}

// Add performs pointwise extension-field addition.
func (e *ExtensionElement) Add(other *ExtensionElement) *ExtensionElement {
	out := make([]*FieldElement, e.field.degree)
	for i := range out {
		out[i] = e.coeffs[i].Add(other.coeffs[i])
	}
	return &ExtensionElement{field: e.field, coeffs: out}
}

// Sub performs pointwise extension-field subtraction.
func (e *ExtensionElement) Sub(other *ExtensionElement) *ExtensionElement {
	out := make([]*FieldElement, e.field.degree)
	for i := range out {
		out[i] = e.coeffs[i].Sub(other.coeffs[i])
	}
	return &ExtensionElement{field: e.field, coeffs: out}
}

// Neg returns the additive inverse.
func (e *ExtensionElement) Neg() *ExtensionElement {
	out := make([]*FieldElement, e.field.degree)
	for i := range out {
		out[i] = e.coeffs[i].Neg()
	}
	return &ExtensionElement{field: e.field, coeffs: out}
}

// Mul performs schoolbook polynomial multiplication followed by reduction
// modulo x^D - nonResidue.
func (e *ExtensionElement) Mul(other *ExtensionElement) *ExtensionElement {
	d := e.field.degree
	base := e.field.base
	wide := make([]*FieldElement, 2*d-1)
	for i := range wide {
		wide[i] = base.Zero()
	}
	for i := 0; i < d; i++ {
		if e.coeffs[i].IsZero() {
			continue
		}
		for j := 0; j < d; j++ {
			wide[i+j] = wide[i+j].Add(e.coeffs[i].Mul(other.coeffs[j]))
		}
	}

	out := make([]*FieldElement, d)
	for i := 0; i < d; i++ {
		out[i] = wide[i]
	}
	for i := d; i < len(wide); i++ {
		if wide[i].IsZero() {
			continue
		}
		folded := wide[i].Mul(e.field.nonResidue)
		out[i-d] = out[i-d].Add(folded)
	}
	return &ExtensionElement{field: e.field, coeffs: out}
}

// MulBase multiplies an extension element by a base-field scalar.
func (e *ExtensionElement) MulBase(scalar *FieldElement) *ExtensionElement {
	out := make([]*FieldElement, e.field.degree)
	for i := range out {
		out[i] = e.coeffs[i].Mul(scalar)
	}
	return &ExtensionElement{field: e.field, coeffs: out}
}

// IsZero reports whether every coordinate is zero.
func (e *ExtensionElement) IsZero() bool {
	for _, c := range e.coeffs {
		if !c.IsZero() {
			return false
		}
	}
	return true
}

// Equal reports coordinate-wise equality.
func (e *ExtensionElement) Equal(other *ExtensionElement) bool {
	if e.field != other.field || len(e.coeffs) != len(other.coeffs) {
		return false
	}
	for i := range e.coeffs {
		if !e.coeffs[i].Equal(other.coeffs[i]) {
			return false
		}
	}
	return true
}

// Exp raises e to a non-negative integer power by repeated squaring.
func (e *ExtensionElement) Exp(exponent uint64) *ExtensionElement {
	result := e.field.One()
	base := e
	for exponent > 0 {
		if exponent&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		exponent >>= 1
	}
	return result
}

// Inv computes the multiplicative inverse by inverting the D*D matrix that
// represents multiplication-by-e on the monomial basis. This works for any
// non-zero element of a genuine field extension, regardless of D.
func (e *ExtensionElement) Inv() (*ExtensionElement, error) {
	if e.IsZero() {
		return nil, fmt.Errorf("cannot invert zero extension element")
	}

	d := e.field.degree
	base := e.field.base

	// Build the multiplication matrix M where column j holds e * x^j.
	matrix := make([][]*FieldElement, d)
	for row := 0; row < d; row++ {
		matrix[row] = make([]*FieldElement, d+1)
	}
	basisVec := e.field.Zero()
	for j := 0; j < d; j++ {
		basisVec.coeffs[j] = base.One()
		if j > 0 {
			basisVec.coeffs[j-1] = base.Zero()
		}
		column := e.Mul(basisVec)
		for row := 0; row < d; row++ {
			matrix[row][j] = column.coeffs[row]
		}
	}
	// Right-hand side: the coordinate vector of 1.
	for row := 0; row < d; row++ {
		if row == 0 {
			matrix[row][d] = base.One()
		} else {
			matrix[row][d] = base.Zero()
		}
	}

	solution, err := gaussianSolve(matrix, base)
	if err != nil {
		return nil, fmt.Errorf("extension element is not invertible: %w", err)
	}
	return &ExtensionElement{field: e.field, coeffs: solution}, nil
}

// TryInverse mirrors Inv but reports failure via a boolean instead of an
// error, matching the nullable-evaluation model used by zerofier division.
func (e *ExtensionElement) TryInverse() (*ExtensionElement, bool) {
	inv, err := e.Inv()
	if err != nil {
		return nil, false
	}
	return inv, true
}

// Div divides by other, failing if other is not invertible.
func (e *ExtensionElement) Div(other *ExtensionElement) (*ExtensionElement, error) {
	inv, err := other.Inv()
	if err != nil {
		return nil, fmt.Errorf("division failed: %w", err)
	}
	return e.Mul(inv), nil
}

// gaussianSolve solves the linear system described by augmented matrix m
// (d rows, d+1 columns) over the base field using Gauss-Jordan elimination
// with partial pivoting by non-zero search.
func gaussianSolve(m [][]*FieldElement, base *Field) ([]*FieldElement, error) {
	d := len(m)
	// Work on a deep copy so callers' data is untouched.
	work := make([][]*FieldElement, d)
	for i := range m {
		work[i] = make([]*FieldElement, d+1)
		copy(work[i], m[i])
	}

	for col := 0; col < d; col++ {
		pivot := -1
		for row := col; row < d; row++ {
			if !work[row][col].IsZero() {
				pivot = row
				break
			}
		}
		if pivot == -1 {
			return nil, fmt.Errorf("singular matrix at column %d", col)
		}
		work[col], work[pivot] = work[pivot], work[col]

		inv, err := work[col][col].Inv()
		if err != nil {
			return nil, err
		}
		for k := col; k <= d; k++ {
			work[col][k] = work[col][k].Mul(inv)
		}

		for row := 0; row < d; row++ {
			if row == col || work[row][col].IsZero() {
				continue
			}
			factor := work[row][col]
			for k := col; k <= d; k++ {
				work[row][k] = work[row][k].Sub(factor.Mul(work[col][k]))
			}
		}
	}

	solution := make([]*FieldElement, d)
	for i := 0; i < d; i++ {
		solution[i] = work[i][d]
	}
	return solution, nil
}

// TwoAdicGenerator returns a generator g of the multiplicative subgroup of
// order 2^logN, i.e. g^(2^logN) = 1 and g^(2^(logN-1)) != 1. It fails if the
// field's multiplicative group does not have a subgroup of that order.
func (f *Field) TwoAdicGenerator(logN int) (*FieldElement, error) {
	if logN < 0 {
		return nil, fmt.Errorf("logN must be non-negative, got %d", logN)
	}
	if logN == 0 {
		return f.One(), nil
	}

	n := new(big.Int).Lsh(big.NewInt(1), uint(logN))
	pMinus1 := new(big.Int).Sub(f.modulus, big.NewInt(1))
	if new(big.Int).Mod(pMinus1, n).Sign() != 0 {
		return nil, fmt.Errorf("field has no subgroup of order 2^%d", logN)
	}

	exponent := new(big.Int).Div(pMinus1, n)
	for g := int64(2); g < 1<<20; g++ {
		candidate := f.NewElementFromInt64(g)
		omega := candidate.Exp(exponent)
		if !omega.Exp(n).IsOne() {
			continue
		}
		if logN == 0 {
			return omega, nil
		}
		half := new(big.Int).Lsh(big.NewInt(1), uint(logN-1))
		if omega.Exp(half).IsOne() {
			continue
		}
		return omega, nil
	}
	return nil, fmt.Errorf("failed to find a two-adic generator of order 2^%d", logN)
}
