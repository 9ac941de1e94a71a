package poly

import (
	"github.com/vybium/das-fri/internal/dasfri/dasfrierr"
	"github.com/vybium/das-fri/internal/dasfri/field"
	"github.com/vybium/das-fri/internal/dasfri/util"
)

// ReedSolomonEncode implements spec section 4.2's reed_solomon_encode:
// message (power-of-two length k) is interpreted as evaluations over the
// size-k domain, inverse-transformed into a degree-<k coefficient vector,
// zero-extended to length n = k*blowup, then transformed over the size-n
// domain to produce the codeword.
func ReedSolomonEncode(message []field.Elem, blowup int) ([]field.Elem, error) {
	k := len(message)
	if !util.IsPowerOfTwo(k) {
		return nil, dasfrierr.New(dasfrierr.BadLength, "message length must be a power of two")
	}
	if blowup <= 0 || !util.IsPowerOfTwo(blowup) {
		return nil, dasfrierr.New(dasfrierr.BadLength, "blowup factor must be a power of two")
	}

	coeffs, err := INTT(message)
	if err != nil {
		return nil, err
	}

	n := k * blowup
	padded := make([]field.Elem, n)
	copy(padded, coeffs)

	return NTT(padded)
}

// Point is an (x, y) pair used for Lagrange interpolation.
type Point struct {
	X, Y field.Elem
}

// LagrangeInterpolate recovers the unique degree-(<len(points)) polynomial
// passing through the given points, returned in coefficient form. Used by
// the DAS API's reconstruct operation, where the supplied points are an
// arbitrary k-subset of codeword positions rather than a contiguous domain,
// so the structured NTT/INTT pair does not apply.
func LagrangeInterpolate(points []Point) ([]field.Elem, error) {
	k := len(points)
	if k == 0 {
		return nil, dasfrierr.New(dasfrierr.InsufficientSymbols, "need at least one point to interpolate")
	}

	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			if points[i].X.Equal(points[j].X) {
				return nil, dasfrierr.New(dasfrierr.InvalidEncoding, "duplicate x-coordinate in interpolation points")
			}
		}
	}

	result := make([]field.Elem, k)

	for i, pi := range points {
		// Build the i-th Lagrange basis polynomial L_i(x) = prod_{j!=i} (x - x_j) / (x_i - x_j)
		basis := []field.Elem{field.ExtOne}
		denom := field.ExtOne

		for j, pj := range points {
			if i == j {
				continue
			}
			basis = polyMulLinear(basis, pj.X.Neg())
			denom = denom.Mul(pi.X.Sub(pj.X))
		}

		denomInv, err := denom.Inv()
		if err != nil {
			return nil, err
		}
		scale := pi.Y.Mul(denomInv)

		for d := 0; d < len(basis); d++ {
			result[d] = result[d].Add(basis[d].Mul(scale))
		}
	}

	return result, nil
}

// polyMulLinear multiplies a coefficient vector by (x + c), growing it by
// one degree.
func polyMulLinear(coeffs []field.Elem, c field.Elem) []field.Elem {
	out := make([]field.Elem, len(coeffs)+1)
	for i, coeff := range coeffs {
		out[i] = out[i].Add(coeff.Mul(c))
		out[i+1] = out[i+1].Add(coeff)
	}
	return out
}
