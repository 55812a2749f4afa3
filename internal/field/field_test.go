package field

import "testing"

func elementFromSmall(v int64) Element {
	var e Element
	e[0] = v
	return e
}

func TestAddSubRoundTrip(t *testing.T) {
	a := elementFromSmall(12345)
	b := elementFromSmall(6789)

	var sum, diff Element
	sum.Add(&a, &b)
	diff.Sub(&sum, &b)
	diff.Normalize()
	a.Normalize()
	if !diff.EqualVar(&a) {
		t.Fatalf("(a+b)-b != a")
	}
}

func TestMulByOneIsIdentity(t *testing.T) {
	a := elementFromSmall(424242)
	var one, got Element
	one.One()
	got.Mul(&a, &one)
	got.Normalize()
	a.Normalize()
	if !got.EqualVar(&a) {
		t.Fatalf("a*1 != a")
	}
}

func TestSqrMatchesMul(t *testing.T) {
	a := elementFromSmall(98765)
	var bySqr, byMul Element
	bySqr.Sqr(&a)
	byMul.Mul(&a, &a)
	bySqr.Normalize()
	byMul.Normalize()
	if !bySqr.EqualVar(&byMul) {
		t.Fatalf("Sqr(a) != Mul(a,a)")
	}
}

func TestInvIsMultiplicativeInverse(t *testing.T) {
	a := elementFromSmall(13)
	var inv, prod, one Element
	inv.Inv(&a)
	prod.Mul(&a, &inv)
	prod.Normalize()
	one.One()
	if !prod.EqualVar(&one) {
		t.Fatalf("a * a^-1 != 1")
	}
}

func TestInvOfZeroIsZero(t *testing.T) {
	var zero, inv Element
	zero.Zero()
	inv.Inv(&zero)
	inv.Normalize()
	if !inv.IsZeroVar() {
		t.Fatalf("Inv(0) should be 0")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	a := elementFromSmall(0x1234567)
	a.Normalize()
	enc := a.Bytes()

	var b Element
	b.Decode(enc[:])
	b.Normalize()
	if !a.EqualVar(&b) {
		t.Fatalf("Decode(Encode(a)) != a")
	}
}

func TestSqrtRatioVarOfSquare(t *testing.T) {
	u := elementFromSmall(4)
	v := elementFromSmall(1)

	ok, r := SqrtRatioVar(&u, &v)
	if !ok {
		t.Fatalf("sqrt(4/1) should exist")
	}
	var rsq, lhs Element
	rsq.Sqr(&r)
	lhs.Mul(&rsq, &v)
	lhs.Normalize()
	u.Normalize()
	if !lhs.EqualVar(&u) {
		t.Fatalf("v * sqrt(u/v)^2 != u: got %v want %v", lhs, u)
	}
}

func TestNormalizeWrapsP(t *testing.T) {
	// p itself should normalize to 0.
	p := Element{mask26 - 18, mask25, mask26, mask25, mask26, mask25, mask26, mask25, mask26, mask25}
	p.Normalize()
	if !p.IsZeroVar() {
		t.Fatalf("p mod p should be 0, got %v", p)
	}
}
