package ed25519

import (
	"crypto"
	"crypto/sha512"
	"crypto/subtle"
	"errors"
	"io"

	"github.com/scottarc/ed25519/edwards25519"
	"github.com/scottarc/ed25519/internal/scalar"
)

// Sign signs message with sk and returns the 64-byte signature R‖S,
// following RFC 8032 §5.1.6. It has crypto.Signer's Sign signature; rand is
// ignored (Ed25519 signing is fully deterministic) and opts must
// report crypto.Hash(0), since Ed25519 signs the raw message rather
// than a caller-supplied digest.
func (sk *PrivateKey) Sign(rand io.Reader, message []byte, opts crypto.SignerOpts) ([]byte, error) {
	if opts.HashFunc() != crypto.Hash(0) {
		return nil, errors.New("ed25519: cannot sign hashed message, Ed25519ph/ctx are not supported")
	}
	sig := sign(sk, message)
	return sig[:], nil
}

// sign implements the RFC 8032 §5.1.6 PureEdDSA signing algorithm.
func sign(sk *PrivateKey, message []byte) [SignatureSize]byte {
	digest := sha512.Sum512(sk.seed[:])

	var prefix [32]byte
	copy(prefix[:], digest[32:])

	rh := sha512.New()
	rh.Write(prefix[:])
	rh.Write(message)
	rDigest := [64]byte(rh.Sum(nil))
	r := scalar.Reduce512(&rDigest)

	R := edwards25519.ScalarBaseMult(&r)
	Renc := R.Encode()

	kh := sha512.New()
	kh.Write(Renc[:])
	kh.Write(sk.epub[:])
	kh.Write(message)
	kDigest := [64]byte(kh.Sum(nil))
	k := scalar.Reduce512(&kDigest)

	S := scalar.MulAddReduce(&k, &sk.s, &r)
	Senc := S.Bytes()

	var sig [SignatureSize]byte
	copy(sig[:32], Renc[:])
	copy(sig[32:], Senc[:])
	return sig
}

// Verify reports whether sig is a valid Ed25519 signature of message
// under the encoded public key pk, per RFC 8032 §5.1.7. It enforces
// strict verification: R, pk, and S must all be
// canonical (S strictly less than the group order; R and pk valid
// curve point encodings), so malleable, non-canonical, or structurally
// invalid inputs are rejected by returning false rather than by
// panicking or requiring the caller to pre-validate.
func Verify(pk, message, sig []byte) bool {
	if len(sig) != SignatureSize || len(pk) != PublicKeySize {
		return false
	}

	S, ok := scalar.CheckScalarVar(sig[32:64])
	if !ok {
		return false
	}

	var Renc [32]byte
	copy(Renc[:], sig[:32])
	if _, ok := edwards25519.Decode(&Renc, false); !ok {
		return false
	}

	var encPub [32]byte
	copy(encPub[:], pk)
	// negA is -A: DoubleScalarMultVartime needs the point negated, not
	// the scalar, so the check is correct even when A carries a nonzero
	// small-order component (see Decode's doc comment).
	negA, ok := edwards25519.Decode(&encPub, true)
	if !ok {
		return false
	}

	kh := sha512.New()
	kh.Write(Renc[:])
	kh.Write(encPub[:])
	kh.Write(message)
	kDigest := [64]byte(kh.Sum(nil))
	k := scalar.Reduce512(&kDigest)

	check := edwards25519.DoubleScalarMultVartime(&S, &k, &negA)
	checkEnc := check.Encode()

	return subtle.ConstantTimeCompare(checkEnc[:], Renc[:]) == 1
}
