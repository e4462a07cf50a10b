package utils

import (
	"math/big"
	"testing"
)

// TestDefaultConfig tests the DefaultConfig function
func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config == nil {
		t.Fatal("DefaultConfig() returned nil")
	}

	if config.FieldModulus.Cmp(big.NewInt(0)) <= 0 {
		t.Error("FieldModulus should be positive")
	}

	if config.ExtensionDegree < 1 {
		t.Error("ExtensionDegree should be at least 1")
	}

	if config.NonResidue.Sign() == 0 {
		t.Error("NonResidue should be nonzero")
	}

	if config.MaxLogHeight <= 0 {
		t.Error("MaxLogHeight should be positive")
	}

	if err := config.Validate(); err != nil {
		t.Errorf("DefaultConfig() should be valid: %v", err)
	}
}

// TestConfigValidate tests the Validate method
func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		config    *Config
		expectErr bool
	}{
		{
			name:      "valid default config",
			config:    DefaultConfig(),
			expectErr: false,
		},
		{
			name: "invalid field modulus (too small)",
			config: &Config{
				FieldModulus:    big.NewInt(1),
				ExtensionDegree: 1,
				NonResidue:      big.NewInt(1),
				MaxLogHeight:    32,
			},
			expectErr: true,
		},
		{
			name: "invalid extension degree (zero)",
			config: &Config{
				FieldModulus:    big.NewInt(3221225473),
				ExtensionDegree: 0,
				NonResidue:      big.NewInt(1),
				MaxLogHeight:    32,
			},
			expectErr: true,
		},
		{
			name: "invalid non-residue (zero)",
			config: &Config{
				FieldModulus:    big.NewInt(3221225473),
				ExtensionDegree: 2,
				NonResidue:      big.NewInt(0),
				MaxLogHeight:    32,
			},
			expectErr: true,
		},
		{
			name: "invalid max log height (zero)",
			config: &Config{
				FieldModulus:    big.NewInt(3221225473),
				ExtensionDegree: 1,
				NonResidue:      big.NewInt(1),
				MaxLogHeight:    0,
			},
			expectErr: true,
		},
		{
			name: "valid degree-2 extension",
			config: &Config{
				FieldModulus:    big.NewInt(3221225473),
				ExtensionDegree: 2,
				NonResidue:      big.NewInt(7),
				MaxLogHeight:    24,
			},
			expectErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.expectErr {
				t.Errorf("Validate() error = %v, expectErr = %v", err, tt.expectErr)
			}
		})
	}
}

// TestConfigWithMethods tests the With* methods
func TestConfigWithMethods(t *testing.T) {
	config := DefaultConfig()

	newModulus := big.NewInt(123456789)
	config.WithFieldModulus(newModulus)
	if config.FieldModulus.Cmp(newModulus) != 0 {
		t.Errorf("WithFieldModulus() failed: expected %v, got %v", newModulus, config.FieldModulus)
	}

	config.WithExtensionDegree(3)
	if config.ExtensionDegree != 3 {
		t.Errorf("WithExtensionDegree() failed: expected 3, got %d", config.ExtensionDegree)
	}

	config.WithNonResidue(big.NewInt(5))
	if config.NonResidue.Cmp(big.NewInt(5)) != 0 {
		t.Errorf("WithNonResidue() failed: expected 5, got %v", config.NonResidue)
	}

	config.WithMaxLogHeight(16)
	if config.MaxLogHeight != 16 {
		t.Errorf("WithMaxLogHeight() failed: expected 16, got %d", config.MaxLogHeight)
	}
}

// TestConfigWithMethodsChaining tests chaining With* methods
func TestConfigWithMethodsChaining(t *testing.T) {
	config := DefaultConfig().
		WithExtensionDegree(2).
		WithNonResidue(big.NewInt(11)).
		WithMaxLogHeight(20)

	if config.ExtensionDegree != 2 {
		t.Errorf("ExtensionDegree: expected 2, got %d", config.ExtensionDegree)
	}
	if config.NonResidue.Cmp(big.NewInt(11)) != 0 {
		t.Errorf("NonResidue: expected 11, got %v", config.NonResidue)
	}
	if config.MaxLogHeight != 20 {
		t.Errorf("MaxLogHeight: expected 20, got %d", config.MaxLogHeight)
	}
}

// TestConfigClone tests the Clone method
func TestConfigClone(t *testing.T) {
	original := DefaultConfig()
	original.ExtensionDegree = 2
	original.MaxLogHeight = 20

	cloned := original.Clone()

	if cloned.FieldModulus.Cmp(original.FieldModulus) != 0 {
		t.Error("Cloned FieldModulus doesn't match")
	}
	if cloned.ExtensionDegree != original.ExtensionDegree {
		t.Error("Cloned ExtensionDegree doesn't match")
	}
	if cloned.NonResidue.Cmp(original.NonResidue) != 0 {
		t.Error("Cloned NonResidue doesn't match")
	}
	if cloned.MaxLogHeight != original.MaxLogHeight {
		t.Error("Cloned MaxLogHeight doesn't match")
	}

	cloned.MaxLogHeight = 999
	if original.MaxLogHeight == 999 {
		t.Error("Modifying clone affected original")
	}

	cloned.FieldModulus.SetInt64(999999)
	if original.FieldModulus.Int64() == 999999 {
		t.Error("Modifying cloned FieldModulus affected original")
	}
}

// TestConfigImmutabilityOfDefault tests that DefaultConfig returns independent instances
func TestConfigImmutabilityOfDefault(t *testing.T) {
	config1 := DefaultConfig()
	config2 := DefaultConfig()

	config1.MaxLogHeight = 999

	if config2.MaxLogHeight == 999 {
		t.Error("DefaultConfig() returns shared instances (should return independent instances)")
	}
}

// BenchmarkDefaultConfig benchmarks DefaultConfig creation
func BenchmarkDefaultConfig(b *testing.B) {
	for i := 0; i < b.N; i++ {
		DefaultConfig()
	}
}

// BenchmarkConfigValidate benchmarks config validation
func BenchmarkConfigValidate(b *testing.B) {
	config := DefaultConfig()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		config.Validate()
	}
}

// BenchmarkConfigClone benchmarks config cloning
func BenchmarkConfigClone(b *testing.B) {
	config := DefaultConfig()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		config.Clone()
	}
}
