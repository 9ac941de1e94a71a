// Package poly implements the evaluation-domain FFT / inverse-FFT over the
// circle-group extension field and Reed-Solomon encoding on top of it.
//
// Grounded on internal/vybium-starks-vm/core/polynomial.go for the
// coefficient/evaluation distinction and internal/vybium-starks-vm/core/circle_fft.go
// for the overall shape of a domain transform; the transform itself is a
// standard iterative radix-2 Cooley-Tukey NTT (spec section 4.2 specifies
// a plain multiplicative-subgroup domain, not the circle-doubling map), so
// unlike the teacher's CircleFFT this implementation performs real field
// arithmetic rather than placeholder trigonometric twiddle factors.
package poly

import (
	"github.com/vybium/das-fri/internal/dasfri/dasfrierr"
	"github.com/vybium/das-fri/internal/dasfri/field"
	"github.com/vybium/das-fri/internal/dasfri/util"
)

// NTT evaluates a coefficient vector of power-of-two length n over the
// order-n subgroup generated by field.PrimitiveRootOfUnity(log2(n)).
// coeffs is left untouched; the result is a new slice.
func NTT(coeffs []field.Elem) ([]field.Elem, error) {
	return transform(coeffs, false)
}

// INTT is the inverse of NTT: given evaluations over the order-n subgroup,
// recovers the coefficient vector.
func INTT(evals []field.Elem) ([]field.Elem, error) {
	return transform(evals, true)
}

func transform(input []field.Elem, inverse bool) ([]field.Elem, error) {
	n := len(input)
	if !util.IsPowerOfTwo(n) {
		return nil, dasfrierr.New(dasfrierr.BadLength, "NTT input length must be a power of two")
	}

	logN := util.Log2(n)
	root, err := field.PrimitiveRootOfUnity(logN)
	if err != nil {
		return nil, err
	}
	if inverse {
		root, err = root.Inv()
		if err != nil {
			return nil, err
		}
	}

	values := make([]field.Elem, n)
	copy(values, input)
	bitReverse(values)

	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		stepRoot := root.Pow(uint64(n / size))
		for start := 0; start < n; start += size {
			w := field.ExtOne
			for j := 0; j < half; j++ {
				u := values[start+j]
				v := values[start+j+half].Mul(w)
				values[start+j] = u.Add(v)
				values[start+j+half] = u.Sub(v)
				w = w.Mul(stepRoot)
			}
		}
	}

	if inverse {
		nInv, err := field.NewBase(uint64(n)).Inv()
		if err != nil {
			return nil, err
		}
		scale := field.FromBase(nInv)
		for i := range values {
			values[i] = values[i].Mul(scale)
		}
	}

	return values, nil
}

func bitReverse(values []field.Elem) {
	n := len(values)
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			values[i], values[j] = values[j], values[i]
		}
	}
}

// Eval evaluates a polynomial in coefficient form at a single point using
// Horner's method.
func Eval(coeffs []field.Elem, point field.Elem) field.Elem {
	result := field.ExtZero
	for i := len(coeffs) - 1; i >= 0; i-- {
		result = result.Mul(point).Add(coeffs[i])
	}
	return result
}
