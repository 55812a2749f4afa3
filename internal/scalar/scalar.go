// Package scalar implements arithmetic modulo the order of the
// edwards25519 group,
//
//	L = 2^252 + 27742317777372353535851937790883648493
//
// A Scalar is stored as eight little-endian 32-bit words. Reduce512 and
// MulAddReduce do the actual heavy lifting; both are built on the
// classical 21-bit-limb reduction cascade for this L used throughout
// the Ed25519 reference ecosystem (and the algorithm BouncyCastle's
// Ed25519.java itself reduces to, modulo limb width): load the operand
// into a wide array of 21-bit limbs, fold the high limbs down onto the
// low ones using L's complement, and finish with a short carry chain.
//
// Every exported function here is constant-time in its numeric
// inputs except the explicitly *Var-suffixed ones, which exist only to
// validate public, attacker-supplied signature bytes during
// verification.
package scalar

// Scalar is an integer modulo L, stored as eight 32-bit words, least
// significant word first.
type Scalar [8]uint32

// groupOrder holds L's eight little-endian 32-bit words.
var groupOrder = Scalar{
	0x5cf5d3ed, 0x5812631a, 0xa2f79cd6, 0x14def9de,
	0x00000000, 0x00000000, 0x00000000, 0x10000000,
}

// Bytes packs s into 32 little-endian bytes.
func (s *Scalar) Bytes() [32]byte {
	var out [32]byte
	for i, w := range s {
		out[4*i+0] = byte(w)
		out[4*i+1] = byte(w >> 8)
		out[4*i+2] = byte(w >> 16)
		out[4*i+3] = byte(w >> 24)
	}
	return out
}

// SetBytes loads 32 little-endian bytes into s verbatim (no reduction
// mod L). Use CheckScalarVar when the bytes must additionally be
// verified canonical.
func (s *Scalar) SetBytes(b []byte) *Scalar {
	var buf [32]byte
	copy(buf[:], b)
	for i := range s {
		s[i] = uint32(buf[4*i+0]) | uint32(buf[4*i+1])<<8 |
			uint32(buf[4*i+2])<<16 | uint32(buf[4*i+3])<<24
	}
	return s
}

// Gte reports whether a >= b, comparing as 256-bit unsigned integers.
// Constant-time: it computes a-b word by word and reports the absence
// of a final borrow.
func Gte(a, b *Scalar) bool {
	var borrow uint64
	for i := 0; i < 8; i++ {
		d := uint64(a[i]) - uint64(b[i]) - borrow
		borrow = d >> 63
	}
	return borrow == 0
}

// CheckScalarVar decodes 32 bytes and reports whether the result is a
// canonical representative, i.e. strictly less than L. Ed25519
// verification must reject a signature whose S component is not
// canonical (spec.md's non-malleability testable property).
func CheckScalarVar(b []byte) (Scalar, bool) {
	var s Scalar
	s.SetBytes(b)
	return s, !Gte(&s, &groupOrder)
}

// Neg returns (L - a) mod L, i.e. the additive inverse of a canonical
// scalar a.
func Neg(a *Scalar) Scalar {
	var out Scalar
	var borrow, nonzero uint64
	for i := 0; i < 8; i++ {
		d := uint64(groupOrder[i]) - uint64(a[i]) - borrow
		out[i] = uint32(d)
		borrow = d >> 63
		nonzero |= uint64(a[i])
	}
	// L - 0 would be L itself; mask the result to 0 when a is 0.
	mask := uint32(-((nonzero | -nonzero) >> 63))
	for i := range out {
		out[i] &= mask
	}
	return out
}

// Prune clamps a 32-byte SHA-512 half (the low half of the private key
// hash, per RFC 8032 §5.1.5) into the private scalar: the bottom three
// bits are cleared, the top bit is cleared, and bit 254 is set. The
// result is deliberately not reduced mod L — RFC 8032 uses it directly
// as an integer multiplier, not as a canonical residue.
func Prune(digest *[32]byte) Scalar {
	var b [32]byte
	copy(b[:], digest[:])
	b[0] &= 0xF8
	b[31] &= 0x7F
	b[31] |= 0x40
	var s Scalar
	s.SetBytes(b[:])
	return s
}

func load3(b []byte) int64 {
	return int64(b[0]) | int64(b[1])<<8 | int64(b[2])<<16
}

func load4(b []byte) int64 {
	return int64(b[0]) | int64(b[1])<<8 | int64(b[2])<<16 | int64(b[3])<<24
}

const limbMask21 = (1 << 21) - 1

// fold adds s[i]*(L's low-order complement) into s[i-12..i-7] for every
// i in [lo,hi], zeroing s[i] as it goes, then returns. This is the
// single reduction step used throughout reduceLimbs: since
// 2^252 ≡ -27742317777372353535851937790883648493 (mod L), and that
// constant splits into the six 21-bit-limb coefficients 666643, 470296,
// 654183, 997805, 136657, 683901 (the fourth and sixth subtracted), folding a
// limb at position i onto positions i-12..i-7 replaces its 2^(21*i)
// weight with an equal value expressed entirely below position 12.
// The iteration order within [lo,hi] does not matter: each step only
// reads s[i] and writes into positions below lo, so the six
// applications can be folded as one pass.
func fold(s []int64, lo, hi int) {
	for i := hi; i >= lo; i-- {
		j := i - 12
		s[j+0] += s[i] * 666643
		s[j+1] += s[i] * 470296
		s[j+2] += s[i] * 654183
		s[j+3] -= s[i] * 997805
		s[j+4] += s[i] * 136657
		s[j+5] -= s[i] * 683901
		s[i] = 0
	}
}

// carry pushes s[i]'s value down into the nonnegative 21-bit range
// [0,2^21), propagating the quotient into s[i+1]. Plain floor division
// (not a centered round) is required here, since the final byte
// packing below assembles limbs by shifting and OR-ing — which is
// only correct once every limb involved is a canonical nonnegative
// 21-bit digit.
func carry(s []int64, i int) {
	c := s[i] >> 21
	s[i+1] += c
	s[i] -= c << 21
}

// reduceLimbs folds the 24 wide limbs s[0..23] (each holding at most
// roughly 21+a few guard bits, and possibly negative after a fold
// pass) down to a canonical scalar mod L, then packs the low twelve
// limbs into 32 output bytes. This is the shared tail of both
// Reduce512 and MulAddReduce.
func reduceLimbs(s []int64) [32]byte {
	// First pass: fold the top six wide limbs (18..23) onto 6..16.
	fold(s, 18, 23)
	for _, i := range []int{6, 8, 10, 12, 14, 16} {
		carry(s, i)
	}
	for _, i := range []int{7, 9, 11, 13, 15} {
		carry(s, i)
	}

	// Second pass: fold the next six wide limbs (12..17) onto 0..10.
	// Skipping any of 13..17 here (folding only s[12]) is the classic
	// off-by-one mistake in a hand port of this cascade — s[13..17]
	// still hold post-first-fold values at this point, not zero.
	fold(s, 12, 17)
	for _, i := range []int{0, 2, 4, 6, 8, 10} {
		carry(s, i)
	}
	for _, i := range []int{1, 3, 5, 7, 9, 11} {
		carry(s, i)
	}

	// Third pass: the carries above can still have pushed a nonzero
	// value into s[12] (e.g. from s[11]'s overflow), so fold it back in
	// once more.
	fold(s, 12, 12)
	for _, i := range []int{0, 2, 4, 6, 8, 10} {
		carry(s, i)
	}
	for _, i := range []int{1, 3, 5, 7, 9, 11} {
		carry(s, i)
	}

	// Final pass: one more fold-and-full-ripple to flush any last carry
	// out of s[12] and leave s[0..10] fully normalized.
	fold(s, 12, 12)
	for i := 0; i < 11; i++ {
		carry(s, i)
	}

	var out [32]byte
	out[0] = byte(s[0] >> 0)
	out[1] = byte(s[0] >> 8)
	out[2] = byte(s[0]>>16) | byte(s[1]<<5)
	out[3] = byte(s[1] >> 3)
	out[4] = byte(s[1] >> 11)
	out[5] = byte(s[1]>>19) | byte(s[2]<<2)
	out[6] = byte(s[2] >> 6)
	out[7] = byte(s[2]>>14) | byte(s[3]<<7)
	out[8] = byte(s[3] >> 1)
	out[9] = byte(s[3] >> 9)
	out[10] = byte(s[3]>>17) | byte(s[4]<<4)
	out[11] = byte(s[4] >> 4)
	out[12] = byte(s[4] >> 12)
	out[13] = byte(s[4]>>20) | byte(s[5]<<1)
	out[14] = byte(s[5] >> 7)
	out[15] = byte(s[5]>>15) | byte(s[6]<<6)
	out[16] = byte(s[6] >> 2)
	out[17] = byte(s[6] >> 10)
	out[18] = byte(s[6]>>18) | byte(s[7]<<3)
	out[19] = byte(s[7] >> 5)
	out[20] = byte(s[7] >> 13)
	out[21] = byte(s[8] >> 0)
	out[22] = byte(s[8] >> 8)
	out[23] = byte(s[8]>>16) | byte(s[9]<<5)
	out[24] = byte(s[9] >> 3)
	out[25] = byte(s[9] >> 11)
	out[26] = byte(s[9]>>19) | byte(s[10]<<2)
	out[27] = byte(s[10] >> 6)
	out[28] = byte(s[10]>>14) | byte(s[11]<<7)
	out[29] = byte(s[11] >> 1)
	out[30] = byte(s[11] >> 9)
	out[31] = byte(s[11] >> 17)
	return out
}

// loadWide21 splits a 64-byte digest into 24 limbs of 21 bits each (the
// last limb is wider, taking the remaining 29 bits).
func loadWide21(b *[64]byte) []int64 {
	s := make([]int64, 24)
	s[0] = limbMask21 & load3(b[0:])
	s[1] = limbMask21 & (load4(b[2:]) >> 5)
	s[2] = limbMask21 & (load3(b[5:]) >> 2)
	s[3] = limbMask21 & (load4(b[7:]) >> 7)
	s[4] = limbMask21 & (load4(b[10:]) >> 4)
	s[5] = limbMask21 & (load3(b[13:]) >> 1)
	s[6] = limbMask21 & (load4(b[15:]) >> 6)
	s[7] = limbMask21 & (load3(b[18:]) >> 3)
	s[8] = limbMask21 & load3(b[21:])
	s[9] = limbMask21 & (load4(b[23:]) >> 5)
	s[10] = limbMask21 & (load3(b[26:]) >> 2)
	s[11] = limbMask21 & (load4(b[28:]) >> 7)
	s[12] = limbMask21 & (load4(b[31:]) >> 4)
	s[13] = limbMask21 & (load3(b[34:]) >> 1)
	s[14] = limbMask21 & (load4(b[36:]) >> 6)
	s[15] = limbMask21 & (load3(b[39:]) >> 3)
	s[16] = limbMask21 & load3(b[42:])
	s[17] = limbMask21 & (load4(b[44:]) >> 5)
	s[18] = limbMask21 & (load3(b[47:]) >> 2)
	s[19] = limbMask21 & (load4(b[49:]) >> 7)
	s[20] = limbMask21 & (load4(b[52:]) >> 4)
	s[21] = limbMask21 & (load3(b[55:]) >> 1)
	s[22] = limbMask21 & (load4(b[57:]) >> 6)
	s[23] = load4(b[60:]) >> 3
	return s
}

// Reduce512 reduces a 64-byte little-endian integer (the raw output of
// a SHA-512 digest, per RFC 8032's nonce and challenge derivations) mod
// L and returns the canonical scalar.
func Reduce512(digest *[64]byte) Scalar {
	s := loadWide21(digest)
	out := reduceLimbs(s)
	var r Scalar
	r.SetBytes(out[:])
	return r
}

// loadNarrow21 splits a 32-byte scalar into 12 limbs of 21 bits (the
// last limb is wider, taking the remaining 25 bits).
func loadNarrow21(b [32]byte) []int64 {
	s := make([]int64, 12)
	s[0] = limbMask21 & load3(b[0:])
	s[1] = limbMask21 & (load4(b[2:]) >> 5)
	s[2] = limbMask21 & (load3(b[5:]) >> 2)
	s[3] = limbMask21 & (load4(b[7:]) >> 7)
	s[4] = limbMask21 & (load4(b[10:]) >> 4)
	s[5] = limbMask21 & (load3(b[13:]) >> 1)
	s[6] = limbMask21 & (load4(b[15:]) >> 6)
	s[7] = limbMask21 & (load3(b[18:]) >> 3)
	s[8] = limbMask21 & load3(b[21:])
	s[9] = limbMask21 & (load4(b[23:]) >> 5)
	s[10] = limbMask21 & (load3(b[26:]) >> 2)
	s[11] = load4(b[28:]) >> 7
	return s
}

// MulAddReduce computes (a*b + c) mod L. This is RFC 8032 §5.1.6's
// S = (r + k*s) mod L step: a and b are multiplied out into a 24-limb
// schoolbook product, c is added into the low half, the limbs are
// carried back to 21 bits, and the result folds through the same
// reduction cascade as Reduce512.
func MulAddReduce(a, b, c *Scalar) Scalar {
	la := loadNarrow21(a.Bytes())
	lb := loadNarrow21(b.Bytes())
	lc := loadNarrow21(c.Bytes())

	s := make([]int64, 24)
	for i := 0; i < 12; i++ {
		for j := 0; j < 12; j++ {
			s[i+j] += la[i] * lb[j]
		}
	}
	for i := 0; i < 12; i++ {
		s[i] += lc[i]
	}

	// Carry the product back into 21-bit limbs (with the overflow landing
	// in s[23]) so reduceLimbs sees the same limb sizes as Reduce512's
	// input; folding the raw column sums would overflow int64.
	for i := 0; i < 23; i++ {
		carry(s, i)
	}

	out := reduceLimbs(s)
	var r Scalar
	r.SetBytes(out[:])
	return r
}
