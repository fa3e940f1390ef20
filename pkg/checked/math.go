package checked

import (
	"errors"
	"math"
)

// ErrNumericOverflow is returned whenever a uint64 operation would wrap.
// Callers treat it as fatal to the whole operation.
var ErrNumericOverflow = errors.New("numeric overflow")

func Add(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, ErrNumericOverflow
	}
	return a + b, nil
}

func Sub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrNumericOverflow
	}
	return a - b, nil
}

func Mul(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a > math.MaxUint64/b {
		return 0, ErrNumericOverflow
	}
	return a * b, nil
}

func Div(a, b uint64) (uint64, error) {
	if b == 0 {
		return 0, ErrNumericOverflow
	}
	return a / b, nil
}

// MulDiv computes a*b/c with intermediate overflow checking. Division
// truncates, matching basis-point fee maths.
func MulDiv(a, b, c uint64) (uint64, error) {
	product, err := Mul(a, b)
	if err != nil {
		return 0, err
	}
	return Div(product, c)
}
