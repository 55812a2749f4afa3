// Package field implements arithmetic in the prime field GF(2^255-19),
// the base field of Curve25519 / edwards25519.
//
// An Element stores its value as ten limbs in radix 2^25.5 (alternating
// 26-bit and 25-bit limbs: even-indexed limbs carry 26 bits, odd-indexed
// limbs carry 25 bits). This lets Mul and Sqr absorb several unreduced
// additions in a single 64-bit accumulator before the mandatory carry
// pass, which is the usual trick for fast portable (non-assembly) field
// arithmetic on this prime (the same layout used by curve25519-donna and
// by BouncyCastle's X25519Field).
//
// Unless documented otherwise (the *Var-suffixed functions), every
// operation here is data-oblivious: it performs the same sequence of
// additions, multiplications and shifts regardless of the values of its
// operands, so it is safe to apply directly to secret scalars.
package field

// Element is a field element modulo p = 2^255-19, stored as ten limbs
// of radix 2^25.5 (even index: 26 bits, odd index: 25 bits). The zero
// value is the field element 0.
//
// Add and Sub do not carry: their output may exceed the 26/25-bit
// envelope by a small bounded amount. Mul and Sqr accept such loosely
// reduced inputs directly and always produce tightly reduced output.
// Carry must be called explicitly before feeding a chain of plain
// additions into Mul/Sqr as a multiplier operand — the Edwards formulas
// in package edwards25519 mark the specific intermediates that need it.
type Element [10]int64

const (
	mask26 = (1 << 26) - 1
	mask25 = (1 << 25) - 1
)

// limbMask holds the mask of each limb's nominal bit width (26, 25, 26, 25, ...).
var limbMask = [10]int64{mask26, mask25, mask26, mask25, mask26, mask25, mask26, mask25, mask26, mask25}

// Zero sets d = 0 and returns d.
func (d *Element) Zero() *Element {
	*d = Element{}
	return d
}

// One sets d = 1 and returns d.
func (d *Element) One() *Element {
	*d = Element{1}
	return d
}

// Set sets d = a and returns d.
func (d *Element) Set(a *Element) *Element {
	*d = *a
	return d
}

// Add sets d = a + b. Output is not carried.
func (d *Element) Add(a, b *Element) *Element {
	for i := range d {
		d[i] = a[i] + b[i]
	}
	return d
}

// Sub sets d = a - b. Output is not carried.
func (d *Element) Sub(a, b *Element) *Element {
	for i := range d {
		d[i] = a[i] - b[i]
	}
	return d
}

// Apm sets dsum = a+b and ddiff = a-b in a single pass. This is the
// paired add-and-subtract used throughout the Edwards addition formulas
// (e.g. computing the (Y-X)(Y'-X') family of terms).
func Apm(dsum, ddiff, a, b *Element) {
	for i := range dsum {
		dsum[i] = a[i] + b[i]
		ddiff[i] = a[i] - b[i]
	}
}

// Carry propagates overflow out of every limb so each fits back into
// its nominal 26/25-bit capacity, folding the final carry back into
// limb 0 (multiplied by 19, since 2^255 = 19 mod p). The result is not
// forced into [0,p) — use Normalize for a canonical representative.
func (d *Element) Carry() *Element {
	var c int64

	c, d[0] = d[0]>>26, d[0]&mask26
	d[1] += c
	c, d[1] = d[1]>>25, d[1]&mask25
	d[2] += c
	c, d[2] = d[2]>>26, d[2]&mask26
	d[3] += c
	c, d[3] = d[3]>>25, d[3]&mask25
	d[4] += c
	c, d[4] = d[4]>>26, d[4]&mask26
	d[5] += c
	c, d[5] = d[5]>>25, d[5]&mask25
	d[6] += c
	c, d[6] = d[6]>>26, d[6]&mask26
	d[7] += c
	c, d[7] = d[7]>>25, d[7]&mask25
	d[8] += c
	c, d[8] = d[8]>>26, d[8]&mask26
	d[9] += c
	c, d[9] = d[9]>>25, d[9]&mask25
	d[0] += 19 * c

	// The 19*c term above can only push limb 0 up by a few bits, so a
	// single extra ripple into limb 1 is always enough.
	c, d[0] = d[0]>>26, d[0]&mask26
	d[1] += c

	return d
}

// Normalize reduces d to its unique canonical representative in [0,p).
func (d *Element) Normalize() *Element {
	d.Carry()

	p := Element{mask26 - 18, mask25, mask26, mask25, mask26, mask25, mask26, mask25, mask26, mask25}

	var diff Element
	borrow := int64(0)
	for i := range diff {
		v := d[i] - p[i] - borrow
		borrow = (v >> 63) & 1
		diff[i] = v + borrow*(limbMask[i]+1)
	}
	// borrow == 1 means d < p: keep d. borrow == 0 means d >= p: use diff.
	m := -(borrow ^ 1)
	for i := range d {
		d[i] ^= m & (d[i] ^ diff[i])
	}
	return d
}

// IsZeroVar reports whether d == 0. Variable-time: reserved for public
// verification intermediates (point/scalar validity checks).
func (d *Element) IsZeroVar() bool {
	var t Element
	t.Set(d).Normalize()
	for _, limb := range t {
		if limb != 0 {
			return false
		}
	}
	return true
}

// EqualVar reports whether d == a. Variable-time.
func (d *Element) EqualVar(a *Element) bool {
	var t Element
	t.Sub(d, a)
	return t.IsZeroVar()
}

// CSwap conditionally swaps a and b in constant time. mask must be the
// full-width word 0 (no swap) or -1 (swap).
func CSwap(mask int64, a, b *Element) {
	for i := range a {
		t := mask & (a[i] ^ b[i])
		a[i] ^= t
		b[i] ^= t
	}
}

// CNegate sets dst = src if mask == 0, dst = -src if mask == -1.
func (dst *Element) CNegate(mask int64, src *Element) *Element {
	var neg Element
	for i := range neg {
		neg[i] = -src[i]
	}
	for i := range dst {
		dst[i] = src[i] ^ (mask & (src[i] ^ neg[i]))
	}
	return dst
}

// Negate sets d = -a. Output is not carried.
func (d *Element) Negate(a *Element) *Element {
	for i := range d {
		d[i] = -a[i]
	}
	return d
}

// Select sets d = a if ctl == 1, d = b if ctl == 0. ctl must be 0 or 1.
func (d *Element) Select(a, b *Element, ctl int64) *Element {
	mask := -ctl
	for i := range d {
		d[i] = b[i] ^ (mask & (a[i] ^ b[i]))
	}
	return d
}

// Mul sets d = a*b mod p. a and b may be loosely reduced (the product of
// a bounded chain of additions); the output is always tightly reduced
// into the nominal 26/25-bit envelope.
func (d *Element) Mul(a, b *Element) *Element {
	x, y := a, b
	var t int64

	t = x[0]*y[8] + x[2]*y[6] + x[4]*y[4] + x[6]*y[2] + x[8]*y[0] +
		2*(x[1]*y[7]+x[3]*y[5]+x[5]*y[3]+x[7]*y[1]) + 38*(x[9]*y[9])
	r8 := t & mask26
	t = (t >> 26) + x[0]*y[9] + x[1]*y[8] + x[2]*y[7] + x[3]*y[6] + x[4]*y[5] +
		x[5]*y[4] + x[6]*y[3] + x[7]*y[2] + x[8]*y[1] + x[9]*y[0]
	r9 := t & mask25
	t = x[0]*y[0] + 19*((t>>25)+x[2]*y[8]+x[4]*y[6]+x[6]*y[4]+x[8]*y[2]) +
		38*(x[1]*y[9]+x[3]*y[7]+x[5]*y[5]+x[7]*y[3]+x[9]*y[1])
	r0 := t & mask26
	t = (t >> 26) + x[0]*y[1] + x[1]*y[0] +
		19*(x[2]*y[9]+x[3]*y[8]+x[4]*y[7]+x[5]*y[6]+x[6]*y[5]+x[7]*y[4]+x[8]*y[3]+x[9]*y[2])
	r1 := t & mask25
	t = (t >> 25) + x[0]*y[2] + x[2]*y[0] + 19*(x[4]*y[8]+x[6]*y[6]+x[8]*y[4]) +
		2*(x[1]*y[1]) + 38*(x[3]*y[9]+x[5]*y[7]+x[7]*y[5]+x[9]*y[3])
	r2 := t & mask26
	t = (t >> 26) + x[0]*y[3] + x[1]*y[2] + x[2]*y[1] + x[3]*y[0] +
		19*(x[4]*y[9]+x[5]*y[8]+x[6]*y[7]+x[7]*y[6]+x[8]*y[5]+x[9]*y[4])
	r3 := t & mask25
	t = (t >> 25) + x[0]*y[4] + x[2]*y[2] + x[4]*y[0] + 19*(x[6]*y[8]+x[8]*y[6]) +
		2*(x[1]*y[3]+x[3]*y[1]) + 38*(x[5]*y[9]+x[7]*y[7]+x[9]*y[5])
	r4 := t & mask26
	t = (t >> 26) + x[0]*y[5] + x[1]*y[4] + x[2]*y[3] + x[3]*y[2] + x[4]*y[1] + x[5]*y[0] +
		19*(x[6]*y[9]+x[7]*y[8]+x[8]*y[7]+x[9]*y[6])
	r5 := t & mask25
	t = (t >> 25) + x[0]*y[6] + x[2]*y[4] + x[4]*y[2] + x[6]*y[0] + 19*(x[8]*y[8]) +
		2*(x[1]*y[5]+x[3]*y[3]+x[5]*y[1]) + 38*(x[7]*y[9]+x[9]*y[7])
	r6 := t & mask26
	t = (t >> 26) + x[0]*y[7] + x[1]*y[6] + x[2]*y[5] + x[3]*y[4] + x[4]*y[3] + x[5]*y[2] + x[6]*y[1] + x[7]*y[0] +
		19*(x[8]*y[9]+x[9]*y[8])
	r7 := t & mask25
	t = (t >> 25) + r8
	r8 = t & mask26
	r9 += t >> 26

	*d = Element{r0, r1, r2, r3, r4, r5, r6, r7, r8, r9}
	return d
}

// Sqr sets d = a*a mod p. Same loose-input/tight-output contract as Mul.
func (d *Element) Sqr(a *Element) *Element {
	x := a
	var t int64

	t = x[4]*x[4] + 2*(x[0]*x[8]+x[2]*x[6]) + 38*(x[9]*x[9]) + 4*(x[1]*x[7]+x[3]*x[5])
	r8 := t & mask26
	t = (t >> 26) + 2*(x[0]*x[9]+x[1]*x[8]+x[2]*x[7]+x[3]*x[6]+x[4]*x[5])
	r9 := t & mask25
	t = 19*(t>>25) + x[0]*x[0] + 38*(x[2]*x[8]+x[4]*x[6]+x[5]*x[5]) + 76*(x[1]*x[9]+x[3]*x[7])
	r0 := t & mask26
	t = (t >> 26) + 2*(x[0]*x[1]) + 38*(x[2]*x[9]+x[3]*x[8]+x[4]*x[7]+x[5]*x[6])
	r1 := t & mask25
	t = (t >> 25) + 19*(x[6]*x[6]) + 2*(x[0]*x[2]+x[1]*x[1]) + 38*(x[4]*x[8]) + 76*(x[3]*x[9]+x[5]*x[7])
	r2 := t & mask26
	t = (t >> 26) + 2*(x[0]*x[3]+x[1]*x[2]) + 38*(x[4]*x[9]+x[5]*x[8]+x[6]*x[7])
	r3 := t & mask25
	t = (t >> 25) + x[2]*x[2] + 2*(x[0]*x[4]) + 38*(x[6]*x[8]+x[7]*x[7]) + 4*(x[1]*x[3]) + 76*(x[5]*x[9])
	r4 := t & mask26
	t = (t >> 26) + 2*(x[0]*x[5]+x[1]*x[4]+x[2]*x[3]) + 38*(x[6]*x[9]+x[7]*x[8])
	r5 := t & mask25
	t = (t >> 25) + 19*(x[8]*x[8]) + 2*(x[0]*x[6]+x[2]*x[4]+x[3]*x[3]) + 4*(x[1]*x[5]) + 76*(x[7]*x[9])
	r6 := t & mask26
	t = (t >> 26) + 2*(x[0]*x[7]+x[1]*x[6]+x[2]*x[5]+x[3]*x[4]) + 38*(x[8]*x[9])
	r7 := t & mask25
	t = (t >> 25) + r8
	r8 = t & mask26
	r9 += t >> 26

	*d = Element{r0, r1, r2, r3, r4, r5, r6, r7, r8, r9}
	return d
}

// powChainTo250 computes a^11 into t0 and a^(2^250-1) into t2, using a
// fixed addition chain. Scratch t1 and t3 are clobbered. This sequence
// is shared by Inv (which finishes the chain out to a^(p-2)) and
// SqrtRatioVar (which finishes it out to a^((p-5)/8)).
func powChainTo250(t0, t1, t2, t3, x *Element) {
	t1.Sqr(x)      // 2
	t2.Sqr(t1)     // 4
	t0.Sqr(t2)     // 8
	t2.Mul(t0, x)  // 9
	t0.Mul(t2, t1) // 11
	t1.Sqr(t0)     // 22
	t3.Mul(t1, t2) // 31 = 2^5-1

	t1.Sqr(t3)
	t2.Sqr(t1)
	t1.Sqr(t2)
	t2.Sqr(t1)
	t1.Sqr(t2) // 2^10-2^5
	t2.Mul(t1, t3)
	t1.Sqr(t2)
	t3.Sqr(t1) // 2^12-2^2
	for i := 0; i < 4; i++ {
		t1.Sqr(t3)
		t3.Sqr(t1)
	}
	t1.Mul(t3, t2) // 2^20-1

	t3.Sqr(t1)
	var t4 Element
	t4.Sqr(t3)
	for i := 0; i < 9; i++ {
		t3.Sqr(&t4)
		t4.Sqr(t3)
	}
	t3.Mul(&t4, t1) // 2^40-1

	for i := 0; i < 5; i++ {
		t1.Sqr(t3)
		t3.Sqr(t1)
	}
	t1.Mul(t3, t2) // 2^50-1

	t2.Sqr(t1)
	t3.Sqr(t2)
	for i := 0; i < 24; i++ {
		t2.Sqr(t3)
		t3.Sqr(t2)
	}
	t2.Mul(t3, t1) // 2^100-1

	t3.Sqr(t2)
	t4.Sqr(t3)
	for i := 0; i < 49; i++ {
		t3.Sqr(&t4)
		t4.Sqr(t3)
	}
	t3.Mul(&t4, t2) // 2^200-1

	for i := 0; i < 25; i++ {
		t4.Sqr(t3)
		t3.Sqr(&t4)
	}
	t2.Mul(t3, t1) // 2^250-1
}

// Inv sets d = a^(p-2) = 1/a mod p (0 maps to 0). Constant-time: the
// addition chain does not depend on the value of a.
func (d *Element) Inv(a *Element) *Element {
	var t0, t1, t2, t3 Element
	powChainTo250(&t0, &t1, &t2, &t3, a)
	// t2 = a^(2^250-1); finish out to p-2 = 2^255-21.
	t1.Sqr(&t2) // 2^251-2
	t3.Sqr(&t1) // 2^252-4
	t1.Sqr(&t3) // 2^253-8
	t3.Sqr(&t1) // 2^254-16
	t1.Sqr(&t3) // 2^255-32
	d.Mul(&t1, &t0)
	return d
}

var sqrtMinus1 = Element{
	34513072, 25610706, 9377949, 3500415, 12389472,
	33281959, 41962654, 31548777, 326685, 11406482,
}

// SqrtRatioVar attempts to compute r = sqrt(u/v) mod p. It returns true
// and a canonical r on success (when u/v is a quadratic residue), or
// false (with r left in an unspecified, non-canonical state) when it is
// not. Variable-time, as befits a function only ever invoked on public
// point-decoding inputs.
//
// This is the standard RFC 8032 §5.1.3 recovery: compute
// x = u*v^3*(u*v^7)^((p-5)/8), then test v*x^2 against u and -u,
// multiplying by the fixed square root of -1 when the -u branch
// matches.
func SqrtRatioVar(u, v *Element) (bool, Element) {
	var v2, v3, v7 Element
	v2.Sqr(v)
	v3.Mul(&v2, v)
	v7.Sqr(&v3)
	v7.Mul(&v7, v)

	var uv7 Element
	uv7.Mul(u, &v7)

	var t0, t1, t2, t3 Element
	powChainTo250(&t0, &t1, &t2, &t3, &uv7)
	// t2 = uv7^(2^250-1); finish out to uv7^((p-5)/8) = uv7^(2^252-3).
	t1.Sqr(&t2) // 2^251-2
	t3.Sqr(&t1) // 2^252-4
	var pow Element
	pow.Mul(&t3, &uv7) // 2^252-3

	var x Element
	x.Mul(u, &v3)
	x.Mul(&x, &pow)

	var vxx Element
	vxx.Sqr(&x)
	vxx.Mul(&vxx, v)

	var negU Element
	negU.Negate(u)

	if vxx.EqualVar(u) {
		x.Normalize()
		return true, x
	}
	if vxx.EqualVar(&negU) {
		x.Mul(&x, &sqrtMinus1)
		x.Normalize()
		return true, x
	}
	return false, x
}

// Encode packs d (which must already be normalized, i.e. a canonical
// value in [0,p)) into 32 little-endian bytes, appended to dst. The
// extension is done in place if dst has enough capacity.
func (d *Element) Encode(dst []byte) []byte {
	n := len(dst)
	var buf [32]byte

	bytepos := 0
	var acc uint64
	accBits := 0
	for i := range d {
		acc |= uint64(d[i]) << uint(accBits)
		width := 26
		if i&1 == 1 {
			width = 25
		}
		accBits += width
		for accBits >= 8 {
			buf[bytepos] = byte(acc)
			acc >>= 8
			accBits -= 8
			bytepos++
		}
	}
	if accBits > 0 {
		buf[bytepos] = byte(acc)
	}

	if cap(dst) >= n+32 {
		dst = dst[:n+32]
	} else {
		grown := make([]byte, n+32)
		copy(grown, dst)
		dst = grown
	}
	copy(dst[n:], buf[:])
	return dst
}

// Bytes encodes d into a fresh 32-byte array (see Encode).
func (d *Element) Bytes() [32]byte {
	var out [32]byte
	d.Encode(out[:0])
	return out
}

// Decode unpacks 32 little-endian bytes into d. The top bit of the last
// byte is always ignored (it is reserved, at the Edwards point-encoding
// layer, for the sign of the x-coordinate).
func (d *Element) Decode(src []byte) *Element {
	var buf [32]byte
	copy(buf[:], src)
	buf[31] &= 0x7F

	var acc uint64
	accBits := 0
	pos := 0
	for i := range d {
		width := 26
		if i&1 == 1 {
			width = 25
		}
		for accBits < width {
			acc |= uint64(buf[pos]) << uint(accBits)
			accBits += 8
			pos++
		}
		m := int64(1)<<uint(width) - 1
		d[i] = int64(acc) & m
		acc >>= uint(width)
		accBits -= width
	}
	return d
}
