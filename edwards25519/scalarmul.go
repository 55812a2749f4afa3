package edwards25519

import (
	"sync"

	"github.com/scottarc/ed25519/internal/field"
	"github.com/scottarc/ed25519/internal/scalar"
)

// The fixed-base scalar multiplier recodes a 256-bit scalar into 64
// signed base-16 digits (radix 16, each in [-8,8]) and precomputes,
// once, a table of 32 rows holding the eight multiples 1..8 of
// 16^(2*row)*B. Table row `row` is shared by both the odd digit
// position 2*row+1 and the even digit position 2*row: ScalarBaseMult
// adds in all the odd-position contributions first, then doubles the
// accumulator four times (i.e. multiplies it by 16) so those
// contributions land at their true weight, and only then adds in the
// even-position contributions at the table's native weight. This is
// the same halved-table trick as BouncyCastle's Ed25519.precompute()/
// scalarMultBase() (precompBase is 32 rows, split into an odd pass, 4
// doublings, and an even pass in implScalarMultBase), which is what a
// 64-row table with no odd/even split would otherwise need twice the
// memory to avoid.
const (
	tableRows = 32
	tableCols = 8
)

var (
	baseTable     [tableRows][tableCols]PrecomputedPoint
	baseTableOnce sync.Once
)

func ensureBaseTable() {
	baseTableOnce.Do(func() {
		var base Point
		base.Generator()

		for row := 0; row < tableRows; row++ {
			var val Point
			val.Set(&base)
			for col := 0; col < tableCols; col++ {
				baseTable[row][col] = toPrecomputed(&val)
				if col != tableCols-1 {
					val.Add(&val, &base)
				}
			}
			// Each row must sit 16^2 = 256 times further along than the
			// last, since one row serves two digit positions two apart.
			for i := 0; i < 8; i++ {
				base.Double(&base)
			}
		}
	})
}

// toPrecomputed converts p into mixed-addition form (Y+X, Y-X, 2d*X*Y).
func toPrecomputed(p *Point) PrecomputedPoint {
	x, y := p.ToAffine()
	var xy field.Element
	xy.Mul(&x, &y)

	var out PrecomputedPoint
	out.AddYX.Add(&y, &x).Normalize()
	out.SubYX.Sub(&y, &x).Normalize()
	out.DXY2.Mul(&xy, &edwardsD2).Normalize()
	return out
}

// recode16 splits a scalar into 64 signed nibbles in [-8,8],
// least-significant first, such that scalar = sum(d[i]*16^i). Each
// nibble is read off two-per-byte and then adjusted by a running carry
// so that any nibble of 8 or more borrows 16 from its own value and
// carries 1 into the next position — the standard signed base-16
// recoding used by constant-time fixed-base multipliers.
func recode16(s *scalar.Scalar) [64]int8 {
	b := s.Bytes()
	var r [64]int8
	for i := 0; i < 32; i++ {
		r[2*i] = int8(b[i] & 0x0F)
		r[2*i+1] = int8(b[i] >> 4)
	}

	carry := int8(0)
	for i := 0; i < 63; i++ {
		r[i] += carry
		carry = (r[i] + 8) >> 4
		r[i] -= carry << 4
	}
	r[63] += carry

	return r
}

// lookup constant-time-selects table row `row`'s entry for signed
// digit `digit` (in [-8,8]) into dst. Every entry of the row is
// touched on every call, with the selection and the sign both applied
// via arithmetic masks rather than branches.
func lookup(dst *PrecomputedPoint, row *[tableCols]PrecomputedPoint, digit int8) {
	sign := int64(digit) >> 63 // all-ones if digit < 0, else 0
	absDigit := (int64(digit) ^ sign) - sign
	// absDigit is 0..8; table index is absDigit-1, but a 0 digit must
	// select the neutral contribution rather than any table entry.
	wantIndex := absDigit - 1

	var acc PrecomputedPoint
	acc.AddYX.One()
	acc.SubYX.One()
	acc.DXY2.Zero()

	for j := 0; j < tableCols; j++ {
		eq := int64(j) - wantIndex
		mask := ^((eq | -eq) >> 63) // all-ones iff j == wantIndex
		for k := range acc.AddYX {
			acc.AddYX[k] ^= mask & (row[j].AddYX[k] ^ acc.AddYX[k])
			acc.SubYX[k] ^= mask & (row[j].SubYX[k] ^ acc.SubYX[k])
			acc.DXY2[k] ^= mask & (row[j].DXY2[k] ^ acc.DXY2[k])
		}
	}
	// If absDigit was 0, wantIndex is -1 and no row ever matches, so acc
	// stays at the neutral-contribution value set above (AddYX=SubYX=1,
	// DXY2=0, matching (Y+X,Y-X,2dXY) for the neutral point (0,1)).

	dst.AddYX.Set(&acc.AddYX)
	dst.SubYX.Set(&acc.SubYX)
	dst.DXY2.CNegate(sign, &acc.DXY2)
	field.CSwap(sign, &dst.AddYX, &dst.SubYX)
}

// ScalarBaseMult computes s*B for the fixed base point B, in constant
// time with respect to s. s need not be reduced mod the group order —
// callers pass the clamped (but unreduced) Ed25519 private scalar here.
func ScalarBaseMult(s *scalar.Scalar) Point {
	ensureBaseTable()

	digits := recode16(s)

	var acc Point
	acc.Neutral()
	for row := 0; row < tableRows; row++ {
		var t PrecomputedPoint
		lookup(&t, &baseTable[row], digits[2*row+1])
		acc.AddPrecomp(&acc, &t)
	}
	for i := 0; i < 4; i++ {
		acc.Double(&acc)
	}
	for row := 0; row < tableRows; row++ {
		var t PrecomputedPoint
		lookup(&t, &baseTable[row], digits[2*row])
		acc.AddPrecomp(&acc, &t)
	}
	return acc
}

// DoubleScalarMultVartime computes u1*B + u2*A for the fixed base point
// B and an arbitrary point A, using Strauss's method: a single
// left-to-right bit scan that folds both scalar multiplications
// together, doubling the accumulator once per bit and conditionally
// adding one of {B, A, A+B} depending on the corresponding bit of each
// scalar. This is the verification-time double-scalar multiply —
// strictly variable-time, since R, A, and the signature's S are all
// public values.
//
// Signature verification calls this as DoubleScalarMultVartime(S, k,
// negA) with negA the already-negated decoded public key (see Decode's
// negate parameter), not with a negated scalar: negating the scalar
// side would compute S*B + (L-k)*A = S*B - k*A + L*A, which only agrees
// with the required S*B - k*A when A has no component outside the
// prime-order subgroup — not guaranteed for an arbitrary decoded point.
func DoubleScalarMultVartime(u1, u2 *scalar.Scalar, a *Point) Point {
	var apb Point
	apb.AddBase(a)

	b1 := u1.Bytes()
	b2 := u2.Bytes()

	var acc Point
	acc.Neutral()

	for bit := 255; bit >= 0; bit-- {
		acc.Double(&acc)
		bit1 := (b1[bit/8] >> uint(bit%8)) & 1
		bit2 := (b2[bit/8] >> uint(bit%8)) & 1
		switch {
		case bit1 == 1 && bit2 == 0:
			acc.AddBase(&acc)
		case bit1 == 0 && bit2 == 1:
			acc.Add(&acc, a)
		case bit1 == 1 && bit2 == 1:
			acc.Add(&acc, &apb)
		}
	}
	return acc
}
