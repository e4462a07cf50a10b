package utils

import (
	"fmt"
	"math/big"
)

// Config is the default shape of a constraint verifier's runtime
// parameters: which field/extension to work over, and the bound on trace
// height the verifier is willing to accept. The verify-constraints CLI
// falls back to these defaults whenever its input JSON omits a field.
type Config struct {
	// Field parameters
	FieldModulus *big.Int

	// Extension field parameters: the verifier works over
	// F[x] / (x^ExtensionDegree - NonResidue).
	ExtensionDegree int
	NonResidue      *big.Int

	// MaxLogHeight is the largest log2(trace length) the caller accepts.
	// Validate requires it to be positive; nothing in this module compares
	// a chip's log height against it.
	MaxLogHeight int
}

// DefaultConfig returns the default configuration: the Goldilocks field
// (2^64 - 2^32 + 1), a trivial degree-1 extension, and a generous trace
// height bound.
func DefaultConfig() *Config {
	modulus := new(big.Int)
	modulus.SetString("18446744069414584321", 10)
	return &Config{
		FieldModulus:    modulus,
		ExtensionDegree: 1,
		NonResidue:      big.NewInt(1),
		MaxLogHeight:    32,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.FieldModulus.Cmp(big.NewInt(2)) <= 0 {
		return fmt.Errorf("field modulus must be greater than 2")
	}

	if c.ExtensionDegree < 1 {
		return fmt.Errorf("extension degree must be at least 1")
	}

	if c.NonResidue == nil || c.NonResidue.Sign() == 0 {
		return fmt.Errorf("non-residue must be nonzero")
	}

	if c.MaxLogHeight <= 0 {
		return fmt.Errorf("max log height must be positive")
	}

	return nil
}

// WithFieldModulus sets the field modulus
func (c *Config) WithFieldModulus(modulus *big.Int) *Config {
	c.FieldModulus = new(big.Int).Set(modulus)
	return c
}

// WithExtensionDegree sets the extension degree
func (c *Config) WithExtensionDegree(degree int) *Config {
	c.ExtensionDegree = degree
	return c
}

// WithNonResidue sets the extension field's non-residue
func (c *Config) WithNonResidue(nonResidue *big.Int) *Config {
	c.NonResidue = new(big.Int).Set(nonResidue)
	return c
}

// WithMaxLogHeight sets the maximum accepted log2 trace height
func (c *Config) WithMaxLogHeight(logHeight int) *Config {
	c.MaxLogHeight = logHeight
	return c
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	return &Config{
		FieldModulus:    new(big.Int).Set(c.FieldModulus),
		ExtensionDegree: c.ExtensionDegree,
		NonResidue:      new(big.Int).Set(c.NonResidue),
		MaxLogHeight:    c.MaxLogHeight,
	}
}
