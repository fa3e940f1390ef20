package checked

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMath(t *testing.T) {
	tests := []struct {
		name string
		op   func() (uint64, error)
		want uint64
	}{
		{"Normal Add", func() (uint64, error) { return Add(10, 20) }, 30},
		{"Add Boundary", func() (uint64, error) { return Add(math.MaxUint64-1, 1) }, math.MaxUint64},
		{"Normal Sub", func() (uint64, error) { return Sub(30, 10) }, 20},
		{"Sub To Zero", func() (uint64, error) { return Sub(30, 30) }, 0},
		{"Normal Mul", func() (uint64, error) { return Mul(5, 6) }, 30},
		{"Mul By Zero", func() (uint64, error) { return Mul(0, math.MaxUint64) }, 0},
		{"Normal Div", func() (uint64, error) { return Div(100, 4) }, 25},
		{"Div Truncates", func() (uint64, error) { return Div(7, 2) }, 3},
		{"MulDiv Basis Points", func() (uint64, error) { return MulDiv(1000000, 500, 10000) }, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMathOverflow(t *testing.T) {
	tests := []struct {
		name string
		op   func() (uint64, error)
	}{
		{"Add Overflow", func() (uint64, error) { return Add(math.MaxUint64, 1) }},
		{"Sub Underflow", func() (uint64, error) { return Sub(10, 11) }},
		{"Mul Overflow", func() (uint64, error) { return Mul(math.MaxUint64, 2) }},
		{"Div By Zero", func() (uint64, error) { return Div(1, 0) }},
		{"MulDiv Intermediate Overflow", func() (uint64, error) { return MulDiv(math.MaxUint64, 2, 2) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.op()
			assert.ErrorIs(t, err, ErrNumericOverflow)
		})
	}
}
