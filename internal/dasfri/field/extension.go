package field

import (
	"github.com/vybium/das-fri/internal/dasfri/dasfrierr"
)

// Elem is an element of the quadratic extension GF(P)[u]/(u^2+1), i.e.
// A + B*u with u^2 = -1. Because P = 2^31-1 is congruent to 3 mod 4, -1 is
// a quadratic non-residue in GF(P), so this extension is a field.
//
// The multiplicative group of this field has order P^2-1 = (P-1)(P+1).
// Since P+1 = 2^31 exactly, the norm-one subgroup {a+bu : a^2+b^2=1}
// (the "circle group" of spec section 3) is cyclic of order exactly 2^31
// -- a power of two large enough for every FRI domain this library builds.
// This is the extension spec section 3 describes as "the working field
// supplied by the arithmetic layer".
type Elem struct {
	A, B Base
}

// ExtZero and ExtOne are the additive and multiplicative identities.
var (
	ExtZero = Elem{}
	ExtOne  = Elem{A: One}
)

// circleGenerator generates the norm-one subgroup of order 2^31. Derived
// offline (not at runtime, to keep domain construction a pure function of
// logN): pick a generator g of the full multiplicative group GF(P^2)* by
// checking g^((P^2-1)/q) != 1 for every prime q | P^2-1, then raise it to
// the P-1 power; the result has order exactly (P^2-1)/(P-1) = P+1 = 2^31
// and norm 1, since N(g^(P-1)) = g^(P-1) * conj(g^(P-1)) = g^(P^2-1) = 1.
// g = (2, 7) was the first such generator found by trial; circleGenerator
// = g^(P-1).
var circleGenerator = Elem{A: Base(1701779493), B: Base(486222712)}

// CircleAdicity is the 2-adicity of the norm-one subgroup: log2(P+1).
const CircleAdicity = 31

// NewElem constructs a + b*u.
func NewElem(a, b Base) Elem {
	return Elem{A: a, B: b}
}

// FromBase embeds a base-field element as a + 0u.
func FromBase(a Base) Elem {
	return Elem{A: a}
}

// Add returns e + o.
func (e Elem) Add(o Elem) Elem {
	return Elem{A: e.A.Add(o.A), B: e.B.Add(o.B)}
}

// Sub returns e - o.
func (e Elem) Sub(o Elem) Elem {
	return Elem{A: e.A.Sub(o.A), B: e.B.Sub(o.B)}
}

// Neg returns -e.
func (e Elem) Neg() Elem {
	return Elem{A: e.A.Neg(), B: e.B.Neg()}
}

// Mul returns e * o, using (a0+a1 u)(b0+b1 u) = (a0 b0 - a1 b1) + (a0 b1 + a1 b0) u.
func (e Elem) Mul(o Elem) Elem {
	return Elem{
		A: e.A.Mul(o.A).Sub(e.B.Mul(o.B)),
		B: e.A.Mul(o.B).Add(e.B.Mul(o.A)),
	}
}

// Square returns e * e.
func (e Elem) Square() Elem {
	return e.Mul(e)
}

// conjugate returns a - b*u.
func (e Elem) conjugate() Elem {
	return Elem{A: e.A, B: e.B.Neg()}
}

// norm returns a^2 + b^2, the base-field norm N(e) = e * conjugate(e).
func (e Elem) norm() Base {
	return e.A.Square().Add(e.B.Square())
}

// Inv returns the multiplicative inverse of e, or NotInvertible if e is zero.
func (e Elem) Inv() (Elem, error) {
	if e.IsZero() {
		return Elem{}, dasfrierr.New(dasfrierr.NotInvertible, "cannot invert zero extension field element")
	}
	n := e.norm()
	nInv, err := n.Inv()
	if err != nil {
		return Elem{}, err
	}
	conj := e.conjugate()
	return Elem{A: conj.A.Mul(nInv), B: conj.B.Mul(nInv)}, nil
}

// Pow returns e^exp via square-and-multiply.
func (e Elem) Pow(exp uint64) Elem {
	result := ExtOne
	base := e
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		exp >>= 1
	}
	return result
}

// IsZero reports whether e is the additive identity.
func (e Elem) IsZero() bool { return e.A.IsZero() && e.B.IsZero() }

// Equal reports whether e and o are the same field element.
func (e Elem) Equal(o Elem) bool { return e.A.Equal(o.A) && e.B.Equal(o.B) }

// Encode writes the canonical 8-byte little-endian representation: A then B.
func (e Elem) Encode() [8]byte {
	var out [8]byte
	a := e.A.Encode()
	b := e.B.Encode()
	copy(out[0:4], a[:])
	copy(out[4:8], b[:])
	return out
}

// DecodeElem parses a canonical 8-byte little-endian extension field element.
func DecodeElem(buf []byte) (Elem, error) {
	if len(buf) != 8 {
		return Elem{}, dasfrierr.New(dasfrierr.InvalidEncoding, "extension field element must be 8 bytes")
	}
	a, err := DecodeBase(buf[0:4])
	if err != nil {
		return Elem{}, err
	}
	b, err := DecodeBase(buf[4:8])
	if err != nil {
		return Elem{}, err
	}
	return Elem{A: a, B: b}, nil
}

// PrimitiveRootOfUnity returns a generator of the order-2^logN subgroup of
// the circle group. Fails with DomainTooLarge if logN exceeds the field's
// 2-adicity (31 in this extension).
func PrimitiveRootOfUnity(logN int) (Elem, error) {
	if logN < 0 || logN > CircleAdicity {
		return Elem{}, dasfrierr.New(dasfrierr.DomainTooLarge,
			"requested subgroup exceeds the field's 2-adicity")
	}
	shift := uint(CircleAdicity - logN)
	return circleGenerator.Pow(uint64(1) << shift), nil
}
