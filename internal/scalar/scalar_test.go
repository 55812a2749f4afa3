package scalar

import (
	"bytes"
	"crypto/rand"
	"math/big"
	"testing"
)

// leToBigInt interprets b as a little-endian unsigned integer.
func leToBigInt(b []byte) *big.Int {
	rev := make([]byte, len(b))
	for i, v := range b {
		rev[len(b)-1-i] = v
	}
	return new(big.Int).SetBytes(rev)
}

func groupOrderBigInt() *big.Int {
	b := groupOrder.Bytes()
	return leToBigInt(b[:])
}

func TestReduce512MatchesBigIntMod(t *testing.T) {
	const trials = 1 << 8
	orderBig := groupOrderBigInt()
	for i := 0; i < trials; i++ {
		var wide [64]byte
		if _, err := rand.Read(wide[:]); err != nil {
			t.Fatalf("rand.Read: %v", err)
		}
		got := Reduce512(&wide)
		gotBytes := got.Bytes()
		gotBig := leToBigInt(gotBytes[:])

		wantBig := new(big.Int).Mod(leToBigInt(wide[:]), orderBig)

		if gotBig.Cmp(wantBig) != 0 {
			t.Fatalf("Reduce512 mismatch for %x: got %s want %s", wide, gotBig, wantBig)
		}
	}
}

func TestMulAddReduceMatchesBigInt(t *testing.T) {
	const trials = 1 << 8
	orderBig := groupOrderBigInt()
	for i := 0; i < trials; i++ {
		var ab, bb, cb [32]byte
		if _, err := rand.Read(ab[:]); err != nil {
			t.Fatalf("rand.Read: %v", err)
		}
		if _, err := rand.Read(bb[:]); err != nil {
			t.Fatalf("rand.Read: %v", err)
		}
		if _, err := rand.Read(cb[:]); err != nil {
			t.Fatalf("rand.Read: %v", err)
		}
		var a, b, c Scalar
		a.SetBytes(ab[:])
		b.SetBytes(bb[:])
		c.SetBytes(cb[:])

		got := MulAddReduce(&a, &b, &c)
		gotBytes := got.Bytes()
		gotBig := leToBigInt(gotBytes[:])

		wantBig := new(big.Int).Mul(leToBigInt(ab[:]), leToBigInt(bb[:]))
		wantBig.Add(wantBig, leToBigInt(cb[:]))
		wantBig.Mod(wantBig, orderBig)

		if gotBig.Cmp(wantBig) != 0 {
			t.Fatalf("MulAddReduce mismatch: got %s want %s", gotBig, wantBig)
		}
	}
}

func TestBytesRoundTrip(t *testing.T) {
	var s Scalar
	s.SetBytes([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	b := s.Bytes()

	var s2 Scalar
	s2.SetBytes(b[:])
	if s != s2 {
		t.Fatalf("round trip mismatch: %v != %v", s, s2)
	}
}

func TestGteGroupOrder(t *testing.T) {
	if Gte(&groupOrder, &groupOrder) != true {
		t.Fatalf("L >= L should be true")
	}
	var smaller Scalar
	smaller.SetBytes([]byte{1})
	if Gte(&smaller, &groupOrder) {
		t.Fatalf("1 >= L should be false")
	}
}

func TestCheckScalarVarRejectsGroupOrder(t *testing.T) {
	b := groupOrder.Bytes()
	if _, ok := CheckScalarVar(b[:]); ok {
		t.Fatalf("L itself must not be accepted as a canonical scalar")
	}
}

func TestCheckScalarVarAcceptsZero(t *testing.T) {
	var zero [32]byte
	if _, ok := CheckScalarVar(zero[:]); !ok {
		t.Fatalf("0 should be a canonical scalar")
	}
}

func TestPruneClampsBits(t *testing.T) {
	var digest [32]byte
	for i := range digest {
		digest[i] = 0xFF
	}
	s := Prune(&digest)
	b := s.Bytes()
	if b[0]&0x07 != 0 {
		t.Fatalf("bottom 3 bits of clamped scalar must be clear, got %08b", b[0])
	}
	if b[31]&0x80 != 0 {
		t.Fatalf("top bit of clamped scalar must be clear, got %08b", b[31])
	}
	if b[31]&0x40 == 0 {
		t.Fatalf("bit 254 of clamped scalar must be set, got %08b", b[31])
	}
}

func TestReduce512OfSmallValueIsIdentity(t *testing.T) {
	var wide [64]byte
	wide[0] = 42
	got := Reduce512(&wide)
	want := got.Bytes()
	if want[0] != 42 {
		t.Fatalf("reducing a value far below L must be a no-op, got %x", want)
	}
	for i := 1; i < 32; i++ {
		if want[i] != 0 {
			t.Fatalf("reducing a value far below L must be a no-op, got %x", want)
		}
	}
}

func TestReduce512OfGroupOrderIsZero(t *testing.T) {
	var wide [64]byte
	lBytes := groupOrder.Bytes()
	copy(wide[:32], lBytes[:])
	got := Reduce512(&wide)
	var zero Scalar
	if got != zero {
		t.Fatalf("reducing L itself should give 0, got %x", got.Bytes())
	}
}

func TestMulAddReduceIdentityElements(t *testing.T) {
	var one, zero Scalar
	one.SetBytes([]byte{1})

	var a Scalar
	a.SetBytes([]byte{7, 8, 9})

	// a*1 + 0 should equal a (a is already < L).
	got := MulAddReduce(&a, &one, &zero)
	if got != a {
		t.Fatalf("a*1+0 != a: got %x want %x", got.Bytes(), a.Bytes())
	}
}

func TestMulAddReduceMatchesAddition(t *testing.T) {
	var one Scalar
	one.SetBytes([]byte{1})

	var a, b Scalar
	a.SetBytes([]byte{100})
	b.SetBytes([]byte{23})

	// a*1 + b == a+b, computed independently via the wide reducer.
	got := MulAddReduce(&a, &one, &b)
	want := Reduce512(&[64]byte{123})
	if got != want {
		t.Fatalf("a+b mismatch: got %x want %x", got.Bytes(), want.Bytes())
	}
}

func TestNegIsAdditiveInverse(t *testing.T) {
	var a Scalar
	a.SetBytes([]byte{55, 66, 77})
	negA := Neg(&a)

	sum := MulAddReduce(&a, &Scalar{1}, &negA)
	var zero Scalar
	if sum != zero {
		t.Fatalf("a + (-a) != 0, got %x", sum.Bytes())
	}
}

func TestNegOfZeroIsZero(t *testing.T) {
	var zero Scalar
	if Neg(&zero) != zero {
		t.Fatalf("-0 != 0")
	}
}

func TestBytesLittleEndianOrdering(t *testing.T) {
	var one Scalar
	one.SetBytes([]byte{1})
	b := one.Bytes()
	if !bytes.Equal(b[:], append([]byte{1}, make([]byte, 31)...)) {
		t.Fatalf("scalar 1 should encode as 0x01 followed by zeros, got %x", b)
	}
}
