// Package ed25519 implements the Ed25519 signature scheme defined in
// RFC 8032, built on the field, scalar, and curve-group primitives in
// this module's internal/field, internal/scalar, and edwards25519
// packages.
//
// The API follows the shape of the standard library's crypto/ed25519:
// PrivateKey and PublicKey are concrete types, GenerateKey produces a
// fresh key pair, PrivateKey.Sign has the crypto.Signer Sign method
// signature, and the package-level Verify function operates directly on
// raw key and signature bytes. *PrivateKey does not itself satisfy
// crypto.Signer, because its Public method returns *PublicKey rather
// than crypto.PublicKey.
package ed25519

import (
	"crypto"
	cryptorand "crypto/rand"
	"crypto/sha512"
	"errors"
	"io"

	"github.com/scottarc/ed25519/edwards25519"
	"github.com/scottarc/ed25519/internal/scalar"
)

const (
	// SeedSize is the length in bytes of an Ed25519 seed, the private
	// value from which a key pair is deterministically derived.
	SeedSize = 32
	// PublicKeySize is the length in bytes of an encoded public key.
	PublicKeySize = 32
	// SignatureSize is the length in bytes of a signature.
	SignatureSize = 64
)

// PrivateKey is an Ed25519 private key. It caches both the clamped
// signing scalar and the corresponding public key so that repeated
// calls to Sign need not re-derive either from the seed.
type PrivateKey struct {
	seed [32]byte
	s    scalar.Scalar
	pub  edwards25519.Point
	epub [32]byte
}

// PublicKey is an Ed25519 public key: a curve point together with its
// canonical 32-byte encoding.
type PublicKey struct {
	pub  edwards25519.Point
	epub [32]byte
}

// Equal reports whether pk and other hold the same encoded public key.
func (pk PublicKey) Equal(other crypto.PublicKey) bool {
	var pk2 PublicKey
	switch o := other.(type) {
	case PublicKey:
		pk2 = o
	case *PublicKey:
		if o == nil {
			return false
		}
		pk2 = *o
	default:
		return false
	}
	var diff byte
	for i := range pk.epub {
		diff |= pk.epub[i] ^ pk2.epub[i]
	}
	return diff == 0
}

// Bytes returns the public key's canonical 32-byte encoding.
func (pk *PublicKey) Bytes() [32]byte {
	return pk.epub
}

// NewKeyFromSeed derives a PrivateKey from a 32-byte seed, per RFC 8032
// §5.1.5. It returns an error if the seed is not exactly SeedSize
// bytes.
func NewKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if len(seed) != SeedSize {
		return nil, errors.New("ed25519: bad seed length")
	}
	sk := new(PrivateKey)
	copy(sk.seed[:], seed)

	digest := sha512.Sum512(sk.seed[:])
	var low32 [32]byte
	copy(low32[:], digest[:32])
	sk.s = scalar.Prune(&low32)

	sk.pub = edwards25519.ScalarBaseMult(&sk.s)
	sk.epub = sk.pub.Encode()

	return sk, nil
}

// GenerateKey generates a fresh key pair using rand as the source of
// randomness. If rand is nil, crypto/rand.Reader is used.
func GenerateKey(rand io.Reader) (*PrivateKey, error) {
	if rand == nil {
		rand = cryptorand.Reader
	}
	var seed [32]byte
	if _, err := io.ReadFull(rand, seed[:]); err != nil {
		return nil, err
	}
	return NewKeyFromSeed(seed[:])
}

// Seed returns the 32-byte seed this private key was derived from.
func (sk *PrivateKey) Seed() []byte {
	out := make([]byte, SeedSize)
	copy(out, sk.seed[:])
	return out
}

// Public returns the public key corresponding to sk.
func (sk *PrivateKey) Public() *PublicKey {
	pk := new(PublicKey)
	pk.pub.Set(&sk.pub)
	pk.epub = sk.epub
	return pk
}

// DecodePublicKey decodes a 32-byte Ed25519 public key encoding. It
// returns an error if src is not exactly PublicKeySize bytes, or does
// not encode a valid curve point.
func DecodePublicKey(src []byte) (*PublicKey, error) {
	if len(src) != PublicKeySize {
		return nil, errors.New("ed25519: bad public key length")
	}
	var enc [32]byte
	copy(enc[:], src)
	p, ok := edwards25519.Decode(&enc, false)
	if !ok {
		return nil, errors.New("ed25519: invalid public key encoding")
	}
	return &PublicKey{pub: p, epub: enc}, nil
}
