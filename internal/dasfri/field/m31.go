// Package field implements arithmetic over the Mersenne-31 prime field and
// the quadratic extension used to obtain a power-of-two-smooth
// multiplicative subgroup for FRI.
//
// Grounded on internal/vybium-starks-vm/core/mersenne_field.go, replacing
// its math/big-based arithmetic with the fixed-width reduction the field's
// own rationale calls for (spec section 4.1): M31 multiplication admits a
// fast reduction, (x mod 2^31) + (x >> 31) with a final conditional
// subtract.
package field

import (
	"encoding/binary"

	"github.com/vybium/das-fri/internal/dasfri/dasfrierr"
)

// P is the Mersenne prime 2^31 - 1.
const P uint32 = (1 << 31) - 1

// Base is a canonical element of GF(P), always held in [0, P).
type Base uint32

// Zero and One are the additive and multiplicative identities.
var (
	Zero Base
	One  Base = 1
)

// NewBase reduces an arbitrary uint64 into a canonical Base element.
func NewBase(v uint64) Base {
	return reduce64(v)
}

func reduce64(x uint64) Base {
	for x >= uint64(P) {
		x = (x & uint64(P)) + (x >> 31)
	}
	return Base(x)
}

// Add returns a + b mod P.
func (a Base) Add(b Base) Base {
	s := uint32(a) + uint32(b)
	if s >= P {
		s -= P
	}
	return Base(s)
}

// Sub returns a - b mod P.
func (a Base) Sub(b Base) Base {
	if uint32(a) >= uint32(b) {
		return Base(uint32(a) - uint32(b))
	}
	return Base(uint32(a) + P - uint32(b))
}

// Neg returns -a mod P.
func (a Base) Neg() Base {
	if a == 0 {
		return 0
	}
	return Base(P - uint32(a))
}

// Mul returns a * b mod P using the Mersenne fast-reduction trick.
func (a Base) Mul(b Base) Base {
	p := uint64(a) * uint64(b)
	lo := uint32(p) & P
	hi := uint32(p >> 31)
	res := lo + hi
	if res >= P {
		res -= P
	}
	if res >= P {
		res -= P
	}
	return Base(res)
}

// Square returns a * a mod P.
func (a Base) Square() Base {
	return a.Mul(a)
}

// Pow returns a^exp mod P via square-and-multiply.
func (a Base) Pow(exp uint64) Base {
	result := One
	base := a
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		exp >>= 1
	}
	return result
}

// Inv returns the multiplicative inverse of a, or NotInvertible if a is zero.
func (a Base) Inv() (Base, error) {
	if a == 0 {
		return 0, dasfrierr.New(dasfrierr.NotInvertible, "cannot invert zero field element")
	}
	return a.Pow(uint64(P - 2)), nil
}

// IsZero reports whether a is the additive identity.
func (a Base) IsZero() bool { return a == 0 }

// Equal reports whether a and b are the same field element.
func (a Base) Equal(b Base) bool { return a == b }

// Encode writes the canonical 4-byte little-endian representation of a.
func (a Base) Encode() [4]byte {
	var out [4]byte
	binary.LittleEndian.PutUint32(out[:], uint32(a))
	return out
}

// DecodeBase parses a canonical 4-byte little-endian field element,
// rejecting values >= P with InvalidEncoding.
func DecodeBase(b []byte) (Base, error) {
	if len(b) != 4 {
		return 0, dasfrierr.New(dasfrierr.InvalidEncoding, "field element must be 4 bytes")
	}
	v := binary.LittleEndian.Uint32(b)
	if v >= P {
		return 0, dasfrierr.New(dasfrierr.InvalidEncoding, "field element out of canonical range")
	}
	return Base(v), nil
}
