package field

import "testing"

func TestBaseArithmetic(t *testing.T) {
	a := NewBase(123456789)
	b := NewBase(987654321)

	t.Run("AddCommutes", func(t *testing.T) {
		if !a.Add(b).Equal(b.Add(a)) {
			t.Fatal("addition is not commutative")
		}
	})

	t.Run("MulDistributesOverAdd", func(t *testing.T) {
		lhs := a.Mul(a.Add(b))
		rhs := a.Mul(a).Add(a.Mul(b))
		if !lhs.Equal(rhs) {
			t.Fatalf("distributivity failed: %v != %v", lhs, rhs)
		}
	})

	t.Run("InverseRoundTrips", func(t *testing.T) {
		inv, err := a.Inv()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !a.Mul(inv).Equal(One) {
			t.Fatal("a * a^-1 != 1")
		}
	})

	t.Run("ZeroHasNoInverse", func(t *testing.T) {
		if _, err := Zero.Inv(); err == nil {
			t.Fatal("expected NotInvertible error for zero")
		}
	})

	t.Run("EncodeDecodeRoundTrips", func(t *testing.T) {
		enc := a.Encode()
		decoded, err := DecodeBase(enc[:])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !decoded.Equal(a) {
			t.Fatalf("round trip mismatch: got %v want %v", decoded, a)
		}
	})

	t.Run("DecodeRejectsOutOfRangeValues", func(t *testing.T) {
		var buf [4]byte
		buf[0], buf[1], buf[2], buf[3] = 0xff, 0xff, 0xff, 0xff
		if _, err := DecodeBase(buf[:]); err == nil {
			t.Fatal("expected InvalidEncoding for value >= P")
		}
	})
}

func TestExtensionFieldArithmetic(t *testing.T) {
	a := Elem{A: NewBase(5), B: NewBase(11)}
	b := Elem{A: NewBase(17), B: NewBase(3)}

	t.Run("MulDistributesOverAdd", func(t *testing.T) {
		lhs := a.Mul(a.Add(b))
		rhs := a.Mul(a).Add(a.Mul(b))
		if !lhs.Equal(rhs) {
			t.Fatalf("distributivity failed: %+v != %+v", lhs, rhs)
		}
	})

	t.Run("InverseRoundTrips", func(t *testing.T) {
		inv, err := a.Inv()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !a.Mul(inv).Equal(ExtOne) {
			t.Fatal("a * a^-1 != 1")
		}
	})

	t.Run("EncodeDecodeRoundTrips", func(t *testing.T) {
		enc := a.Encode()
		decoded, err := DecodeElem(enc[:])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !decoded.Equal(a) {
			t.Fatalf("round trip mismatch: got %+v want %+v", decoded, a)
		}
	})
}

func TestPrimitiveRootOfUnity(t *testing.T) {
	t.Run("GeneratorHasExactOrder", func(t *testing.T) {
		for _, logN := range []int{1, 2, 4, 8, 16} {
			g, err := PrimitiveRootOfUnity(logN)
			if err != nil {
				t.Fatalf("unexpected error for logN=%d: %v", logN, err)
			}
			n := uint64(1) << uint(logN)
			if !g.Pow(n).Equal(ExtOne) {
				t.Fatalf("g^n != 1 for logN=%d", logN)
			}
			if logN > 0 && g.Pow(n/2).Equal(ExtOne) {
				t.Fatalf("g^(n/2) == 1 for logN=%d, order is too small", logN)
			}
		}
	})

	t.Run("SquaringWalksDownTheTower", func(t *testing.T) {
		g8, err := PrimitiveRootOfUnity(8)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		g7, err := PrimitiveRootOfUnity(7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !g8.Square().Equal(g7) {
			t.Fatal("squaring the order-2^8 generator should yield the order-2^7 generator")
		}
	})

	t.Run("RejectsDomainLargerThanAdicity", func(t *testing.T) {
		if _, err := PrimitiveRootOfUnity(CircleAdicity + 1); err == nil {
			t.Fatal("expected DomainTooLarge error")
		}
	})
}
