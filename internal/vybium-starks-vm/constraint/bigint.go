package constraint

import "math/big"

// bigFromUint64 converts an exponent computed by Exp.Power into the
// *big.Int form core.FieldElement.Exp expects.
func bigFromUint64(v uint64) *big.Int {
	return new(big.Int).SetUint64(v)
}
