// Package edwards25519 implements group operations on the twisted
// Edwards curve
//
//	-x^2 + y^2 = 1 + d*x^2*y^2   (mod 2^255-19)
//
// used by Ed25519, in extended homogeneous coordinates (X,Y,Z,T) with
// x = X/Z, y = Y/Z, x*y = T/Z — the representation from Hisil-Wong-
// Carter-Dawson that makes both point addition and doubling a handful
// of field multiplications with no field inversion.
//
// Point arithmetic (Add, Double, AddPrecomp) is constant-time: it is
// the inner loop of the fixed-base scalar multiplication in
// scalarmul.go, which runs on the secret signing scalar. Encode,
// Decode and CheckPointVar operate on public point encodings and make
// no secrecy claims.
package edwards25519

import (
	"sync"

	"github.com/scottarc/ed25519/internal/field"
)

// Point is a curve point in extended coordinates, satisfying the
// invariant X*Y = T*Z. The zero value is not a valid point; use
// Neutral or Generator, or Decode an encoded point.
type Point struct {
	X, Y, Z, T field.Element
}

// PrecomputedPoint holds a fixed curve point in the mixed-addition form
// used by the windowed base-point table: (Y+X, Y-X, 2d*X*Y), with Z
// implicitly 1. Mixed addition against one of these costs strictly
// fewer multiplications than a general Point-Point addition.
type PrecomputedPoint struct {
	AddYX, SubYX, DXY2 field.Element
}

// edwardsD is the curve's d parameter, -121665/121666 mod p.
var edwardsD = field.Element{
	56195235, 13857412, 51736253, 6949390, 114729,
	24766616, 60832955, 30306712, 48412415, 21499315,
}

// edwardsD2 is 2*d mod p, used throughout the addition formulas.
var edwardsD2 = field.Element{
	45281625, 27714825, 36363642, 13898781, 229458,
	15978800, 54557047, 27058993, 29715967, 9444199,
}

// Neutral sets p to the neutral element (0,1) and returns p.
func (p *Point) Neutral() *Point {
	p.X.Zero()
	p.Y.One()
	p.Z.One()
	p.T.Zero()
	return p
}

// generatorX, generatorY are the standard base point coordinates from
// RFC 8032 §5.1.
var generatorX = field.Element{
	52811034, 25909283, 16144682, 17082669, 27570973,
	30858332, 40966398, 8378388, 20764389, 8758491,
}
var generatorY = field.Element{
	40265304, 26843545, 13421772, 20132659, 26843545,
	6710886, 53687091, 13421772, 40265318, 26843545,
}

// Generator sets p to the standard base point B and returns p.
func (p *Point) Generator() *Point {
	p.X.Set(&generatorX)
	p.Y.Set(&generatorY)
	p.Z.One()
	p.T.Mul(&p.X, &p.Y)
	return p
}

// extendXY recomputes p.T from p.X and p.Y, assuming Z=1 (affine
// input). Used when building points from raw (x,y) pairs, e.g. after
// decoding or for table construction.
func (p *Point) extendXY() *Point {
	p.Z.One()
	p.T.Mul(&p.X, &p.Y)
	return p
}

// Set sets p = a and returns p.
func (p *Point) Set(a *Point) *Point {
	p.X.Set(&a.X)
	p.Y.Set(&a.Y)
	p.Z.Set(&a.Z)
	p.T.Set(&a.T)
	return p
}

// Negate sets p = -a and returns p. Negation on this curve just flips
// the sign of X (and T, since T=X*Y/Z).
func (p *Point) Negate(a *Point) *Point {
	p.X.Negate(&a.X)
	p.Y.Set(&a.Y)
	p.Z.Set(&a.Z)
	p.T.Negate(&a.T)
	return p
}

// Double sets p = 2*a using the dbl-2008-hwcd dedicated doubling
// formula, and returns p.
func (p *Point) Double(a *Point) *Point {
	var a2, b2, c2, d2, e, g, f, h field.Element

	a2.Sqr(&a.X)
	b2.Sqr(&a.Y)
	c2.Sqr(&a.Z)
	c2.Add(&c2, &c2) // c2 = 2*Z^2

	d2.Negate(&a2) // d2 = -X^2

	var xpy field.Element
	xpy.Add(&a.X, &a.Y)
	var xpy2 field.Element
	xpy2.Sqr(&xpy)
	e.Sub(&xpy2, &a2)
	e.Sub(&e, &b2) // e = (X+Y)^2 - X^2 - Y^2 = 2*X*Y

	g.Add(&d2, &b2) // g = -X^2+Y^2
	f.Sub(&g, &c2)  // f = g - 2Z^2
	f.Carry()
	h.Sub(&d2, &b2) // h = -X^2-Y^2

	p.X.Mul(&e, &f)
	p.Y.Mul(&g, &h)
	p.T.Mul(&e, &h)
	p.Z.Mul(&f, &g)
	return p
}

// Add sets p = a+b using the unified add-2008-hwcd-3 extended-coordinate
// addition formula, and returns p.
func (p *Point) Add(a, b *Point) *Point {
	var aa, bb, cc, dd, e, f field.Element
	var ysubx1, ysubx2, yaddx1, yaddx2 field.Element

	field.Apm(&yaddx1, &ysubx1, &a.Y, &a.X)
	field.Apm(&yaddx2, &ysubx2, &b.Y, &b.X)

	aa.Mul(&ysubx1, &ysubx2)
	bb.Mul(&yaddx1, &yaddx2)
	cc.Mul(&a.T, &b.T)
	cc.Mul(&cc, &edwardsD2)
	dd.Mul(&a.Z, &b.Z)
	dd.Add(&dd, &dd)

	field.Apm(&f, &e, &dd, &cc) // e = dd-cc, f = dd+cc
	f.Carry()

	var bmA, bpA field.Element
	bmA.Sub(&bb, &aa)
	bpA.Add(&bb, &aa)

	p.X.Mul(&bmA, &e)
	p.Y.Mul(&f, &bpA)
	p.T.Mul(&bmA, &bpA)
	p.Z.Mul(&e, &f)
	return p
}

// AddPrecomp sets p = a + q, where q is a fixed precomputed point (Z
// implicitly 1), using the cheaper mixed-addition formula. Returns p.
func (p *Point) AddPrecomp(a *Point, q *PrecomputedPoint) *Point {
	var yaddx, ysubx, bb, cc, dd field.Element

	field.Apm(&yaddx, &ysubx, &a.Y, &a.X)

	var aa field.Element
	aa.Mul(&ysubx, &q.SubYX)
	bb.Mul(&yaddx, &q.AddYX)
	cc.Mul(&a.T, &q.DXY2)
	dd.Add(&a.Z, &a.Z)

	var e, f field.Element
	field.Apm(&f, &e, &dd, &cc)
	f.Carry()
	var bmA, bpA field.Element
	bmA.Sub(&bb, &aa)
	bpA.Add(&bb, &aa)

	p.X.Mul(&bmA, &e)
	p.Y.Mul(&f, &bpA)
	p.T.Mul(&bmA, &bpA)
	p.Z.Mul(&e, &f)
	return p
}

// SubPrecomp sets p = a - q for a fixed precomputed point q, and
// returns p. Equivalent to negating q's contribution (swap AddYX/SubYX,
// negate DXY2) before a mixed addition.
func (p *Point) SubPrecomp(a *Point, q *PrecomputedPoint) *Point {
	neg := PrecomputedPoint{AddYX: q.SubYX, SubYX: q.AddYX}
	neg.DXY2.Negate(&q.DXY2)
	return p.AddPrecomp(a, &neg)
}

var (
	generatorPrecomp     PrecomputedPoint
	generatorPrecompOnce sync.Once
)

// AddBase sets p = a + B for the fixed base point B, using the mixed-
// addition formula against a one-time precomputed encoding of B rather
// than building a full Point for the generator on every call. Returns p.
func (p *Point) AddBase(a *Point) *Point {
	generatorPrecompOnce.Do(func() {
		var b Point
		b.Generator()
		generatorPrecomp = toPrecomputed(&b)
	})
	return p.AddPrecomp(a, &generatorPrecomp)
}

// ToAffine normalizes p into affine (x,y) field elements.
func (p *Point) ToAffine() (x, y field.Element) {
	var zInv field.Element
	zInv.Inv(&p.Z)
	x.Mul(&p.X, &zInv)
	y.Mul(&p.Y, &zInv)
	x.Normalize()
	y.Normalize()
	return
}

// Encode packs p into its canonical 32-byte little-endian form: the
// y-coordinate with the sign of x folded into the top bit of the last
// byte, per RFC 8032 §5.1.2.
func (p *Point) Encode() [32]byte {
	x, y := p.ToAffine()
	out := y.Bytes()
	xb := x.Bytes()
	out[31] |= (xb[0] & 1) << 7
	return out
}

// Decode unpacks a 32-byte encoded point. It returns false if the bytes
// do not encode a valid curve point (non-canonical y, or a y for which
// no x satisfies the curve equation). This is the variable-time public
// decode path used by Verify.
//
// When negate is true, the decoded point is negated before being
// returned — the caller gets -A rather than A. Signature verification
// needs -A (not -k) so that the combined double-scalar multiply
// S*B + (-k)*A is correct for every valid A, including the curve's
// small-order points; negating the scalar k instead only agrees with
// this whenever L*A is the identity, which is not guaranteed by RFC
// 8032's decoding rules.
func Decode(src *[32]byte, negate bool) (Point, bool) {
	var signBit byte
	var yb [32]byte
	copy(yb[:], src[:])
	signBit = yb[31] >> 7
	yb[31] &= 0x7F

	var y field.Element
	y.Decode(yb[:])
	// Reject non-canonical y encodings (y >= p).
	var yNorm field.Element
	yNorm.Set(&y).Normalize()
	if y != yNorm {
		return Point{}, false
	}

	// The curve equation -x^2+y^2 = 1+d*x^2*y^2 gives
	// x^2 = (y^2-1) / (d*y^2+1).
	var one, y2, u, v field.Element
	one.One()
	y2.Sqr(&y)
	u.Sub(&y2, &one) // u = y^2 - 1
	v.Mul(&edwardsD, &y2)
	v.Add(&one, &v) // v = 1 + d*y^2

	ok, x := field.SqrtRatioVar(&u, &v)
	if !ok {
		return Point{}, false
	}
	if x.IsZeroVar() && signBit == 1 {
		return Point{}, false
	}
	xb := x.Bytes()
	if (xb[0]&1)^signBit == 1 {
		x.Negate(&x).Normalize()
	}
	if negate {
		x.Negate(&x).Normalize()
	}

	var p Point
	p.X = x
	p.Y = y
	p.extendXY()
	return p, true
}

// CheckPointVar reports whether src decodes to a valid curve point, and
// additionally whether that point lies in the prime-order subgroup —
// i.e. is not one of the curve's eight small-order points. Ed25519
// verification does not require subgroup membership by default (RFC
// 8032 allows small-order components in R and A), so this is exposed
// as a separate, opt-in check rather than folded into Decode/Verify.
func CheckPointVar(src *[32]byte) (valid, inPrimeSubgroup bool) {
	p, ok := Decode(src, false)
	if !ok {
		return false, false
	}
	var q Point
	// Multiplying by the full group order L annihilates every point in
	// the prime-order subgroup but not the small-order cofactor points,
	// so this is a cheap variable-time membership test: a plain
	// left-to-right double-and-add over L's fixed bit pattern, rather
	// than pulling in the general scalar multiplier, since this check
	// runs on public data only and needs no constant-time table.
	q.Neutral()
	acc := p
	l := groupOrderBits()
	for i := len(l) - 1; i >= 0; i-- {
		q.Double(&q)
		if l[i] {
			q.Add(&q, &acc)
		}
	}
	return true, q.X.IsZeroVar() && q.Y.EqualVar(&q.Z)
}

// groupOrderBits returns the bits of L, least-significant first, for
// the variable-time subgroup check in CheckPointVar.
func groupOrderBits() []bool {
	// L = 2^252 + 27742317777372353535851937790883648493
	words := [4]uint64{0x5812631a5cf5d3ed, 0x14def9dea2f79cd6, 0, 0x1000000000000000}
	bits := make([]bool, 253)
	for i := range bits {
		w := words[i/64]
		bits[i] = (w>>(uint(i)%64))&1 == 1
	}
	return bits
}
