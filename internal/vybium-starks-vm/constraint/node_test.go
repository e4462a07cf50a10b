package constraint

import (
	"testing"

	"github.com/vybium/stark-constraint-verifier/internal/vybium-starks-vm/core"
)

func TestFieldTypeWidth(t *testing.T) {
	tests := []struct {
		name     string
		ft       FieldType
		extDeg   int
		expected int
	}{
		{"base always one", Base, 4, 1},
		{"ext matches degree", Ext, 4, 4},
		{"ext degree one", Ext, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ft.width(tt.extDeg); got != tt.expected {
				t.Errorf("width(%d) = %d, expected %d", tt.extDeg, got, tt.expected)
			}
		})
	}
}

func TestIsArithmetic(t *testing.T) {
	field, _ := core.NewFieldFromUint64(97)
	tests := []struct {
		name string
		node Node
		want bool
	}{
		{"constant", ConstantNode(field.One()), false},
		{"trace", TraceNode(0, 0, 0, Base), false},
		{"var", VarNode(VarScope{Scope: Global}, 0, 0, Base), false},
		{"periodic", PeriodicNode(0), false},
		{"add", AddNode(0, 1), true},
		{"sub", SubNode(0, 1), true},
		{"mul", MulNode(0, 1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.isArithmetic(); got != tt.want {
				t.Errorf("isArithmetic() = %v, expected %v", got, tt.want)
			}
		})
	}
}
