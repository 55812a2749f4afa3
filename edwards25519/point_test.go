package edwards25519

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/scottarc/ed25519/internal/scalar"
)

func TestGeneratorEncodesToRFC8032BasePoint(t *testing.T) {
	var b Point
	b.Generator()
	enc := b.Encode()
	want := "5866666666666666666666666666666666666666666666666666666666666666"
	got := hex.EncodeToString(enc[:])
	if got != want {
		t.Fatalf("encoded base point mismatch:\ngot  %s\nwant %s", got, want)
	}
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	var b Point
	b.Generator()
	enc := b.Encode()

	p, ok := Decode(&enc, false)
	if !ok {
		t.Fatalf("failed to decode the base point's own encoding")
	}
	enc2 := p.Encode()
	if enc != enc2 {
		t.Fatalf("decode/encode round trip mismatch: %x != %x", enc2, enc)
	}
}

func TestDoubleMatchesSelfAddition(t *testing.T) {
	var b, doubled, added Point
	b.Generator()
	doubled.Double(&b)
	added.Add(&b, &b)

	if doubled.Encode() != added.Encode() {
		t.Fatalf("Double(B) != Add(B,B)")
	}
}

func TestNeutralIsAdditiveIdentity(t *testing.T) {
	var b, n, sum Point
	b.Generator()
	n.Neutral()
	sum.Add(&b, &n)

	if sum.Encode() != b.Encode() {
		t.Fatalf("B + neutral != B")
	}
}

func TestScalarBaseMultOneIsGenerator(t *testing.T) {
	var one scalar.Scalar
	one.SetBytes([]byte{1})

	got := ScalarBaseMult(&one)
	var want Point
	want.Generator()

	if got.Encode() != want.Encode() {
		t.Fatalf("1*B != B")
	}
}

func TestScalarBaseMultTwoMatchesDouble(t *testing.T) {
	var two scalar.Scalar
	two.SetBytes([]byte{2})

	got := ScalarBaseMult(&two)

	var b, want Point
	b.Generator()
	want.Double(&b)

	if got.Encode() != want.Encode() {
		t.Fatalf("2*B != Double(B)")
	}
}

func TestScalarBaseMultMatchesRepeatedAddition(t *testing.T) {
	var five scalar.Scalar
	five.SetBytes([]byte{5})

	got := ScalarBaseMult(&five)

	var b, acc Point
	b.Generator()
	acc.Neutral()
	for i := 0; i < 5; i++ {
		acc.Add(&acc, &b)
	}

	if got.Encode() != acc.Encode() {
		t.Fatalf("5*B != B+B+B+B+B")
	}
}

func TestDoubleScalarMultVartimeMatchesBaseMult(t *testing.T) {
	var three, zero scalar.Scalar
	three.SetBytes([]byte{3})

	var b Point
	b.Generator()

	got := DoubleScalarMultVartime(&three, &zero, &b)
	want := ScalarBaseMult(&three)

	if got.Encode() != want.Encode() {
		t.Fatalf("3*B + 0*A != ScalarBaseMult(3)")
	}
}

func TestDoubleScalarMultVartimeCombinesBothTerms(t *testing.T) {
	var two, three scalar.Scalar
	two.SetBytes([]byte{2})
	three.SetBytes([]byte{3})

	var b Point
	b.Generator()

	// u1*B + u2*B should equal (u1+u2)*B.
	got := DoubleScalarMultVartime(&two, &three, &b)

	var five scalar.Scalar
	five.SetBytes([]byte{5})
	want := ScalarBaseMult(&five)

	if got.Encode() != want.Encode() {
		t.Fatalf("2*B + 3*B != 5*B")
	}
}

func TestCheckPointVarAcceptsGenerator(t *testing.T) {
	var b Point
	b.Generator()
	enc := b.Encode()

	valid, inSubgroup := CheckPointVar(&enc)
	if !valid {
		t.Fatalf("generator should decode as valid")
	}
	if !inSubgroup {
		t.Fatalf("generator should be in the prime-order subgroup")
	}
}

func TestDecodeRejectsAllOnes(t *testing.T) {
	var bad [32]byte
	for i := range bad {
		bad[i] = 0xFF
	}
	if _, ok := Decode(&bad, false); ok {
		t.Fatalf("all-0xFF bytes should not decode (non-canonical y)")
	}
}

func TestDecodeNegateYieldsNegatedPoint(t *testing.T) {
	var b Point
	b.Generator()
	enc := b.Encode()

	plain, ok := Decode(&enc, false)
	if !ok {
		t.Fatalf("failed to decode the base point's own encoding")
	}
	negated, ok := Decode(&enc, true)
	if !ok {
		t.Fatalf("failed to decode the base point's own encoding with negate=true")
	}

	var sum Point
	sum.Add(&plain, &negated)
	var neutral Point
	neutral.Neutral()
	if sum.Encode() != neutral.Encode() {
		t.Fatalf("Decode(x, true) + Decode(x, false) != neutral")
	}
}

func TestAddBaseMatchesGenericAdd(t *testing.T) {
	var two scalar.Scalar
	two.SetBytes([]byte{2})
	a := ScalarBaseMult(&two)

	var b Point
	b.Generator()

	var viaAddBase, viaAdd Point
	viaAddBase.AddBase(&a)
	viaAdd.Add(&a, &b)

	if viaAddBase.Encode() != viaAdd.Encode() {
		t.Fatalf("AddBase(a) != Add(a, B)")
	}
}

func TestScalarBaseMultMatchesDoubleAndAddAcrossTableRows(t *testing.T) {
	// exp = 2^200 + 2^88 + 7 exercises digit positions in both halves of
	// the 32-row table (each row is shared between an even digit position
	// and the odd one right after it), not just the first couple of nibbles.
	exp := new(big.Int).Lsh(big.NewInt(1), 200)
	exp.Add(exp, new(big.Int).Lsh(big.NewInt(1), 88))
	exp.Add(exp, big.NewInt(7))

	be := exp.Bytes()
	expBytes := make([]byte, 32)
	for i, v := range be {
		expBytes[len(be)-1-i] = v
	}
	var s scalar.Scalar
	s.SetBytes(expBytes)

	got := ScalarBaseMult(&s)

	var b, want Point
	b.Generator()
	want.Neutral()
	acc := new(big.Int).Set(exp)
	cur := b
	first := true
	for acc.Sign() > 0 {
		if acc.Bit(0) == 1 {
			if first {
				want = cur
				first = false
			} else {
				want.Add(&want, &cur)
			}
		}
		var doubled Point
		doubled.Double(&cur)
		cur = doubled
		acc.Rsh(acc, 1)
	}

	if got.Encode() != want.Encode() {
		t.Fatalf("ScalarBaseMult(2^200+2^88+7) mismatch")
	}
}
