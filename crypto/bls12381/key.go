package bls12381

import (
	"encoding/hex"
	"io"
	"math/big"

	bls "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/minio/sha256-simd"
	"golang.org/x/crypto/hkdf"
)

var g1Gen, g1GenNeg bls.G1Affine

func init() {
	_, _, g1Gen, _ = bls.Generators()
	g1GenNeg.Neg(&g1Gen)
}

// ===============================================================================================
// Private Key
// ===============================================================================================

// PrivKey is a BLS12-381 secret scalar. Signatures produced with it follow
// the augmented scheme: every message is prefixed with the signer's public
// key before being hashed to G2.
type PrivKey struct {
	sk fr.Element
}

// GenPrivKeyFromSecret derives a key from secret following the IETF
// KeyGen procedure (HKDF-SHA256, salt "BLS-SIG-KEYGEN-SALT-").
func GenPrivKeyFromSecret(secret []byte) (*PrivKey, error) {
	if len(secret) < MinSeedLen {
		return nil, ErrSeedTooShort
	}

	const okmLen = 48
	ikm := make([]byte, 0, len(secret)+1)
	ikm = append(ikm, secret...)
	ikm = append(ikm, 0)
	info := []byte{0, okmLen}

	salt := keyGenSalt
	for {
		h := sha256.Sum256(salt)
		salt = h[:]

		prk := hkdf.Extract(sha256.New, ikm, salt)
		okm := make([]byte, okmLen)
		if _, err := io.ReadFull(hkdf.Expand(sha256.New, prk, info), okm); err != nil {
			return nil, err
		}

		sk := new(big.Int).SetBytes(okm)
		sk.Mod(sk, fr.Modulus())
		if sk.Sign() != 0 {
			privKey := &PrivKey{}
			privKey.sk.SetBigInt(sk)
			return privKey, nil
		}
	}
}

// NewPrivateKeyFromBytes builds a key from its 32-byte big-endian encoding.
func NewPrivateKeyFromBytes(bz []byte) (*PrivKey, error) {
	if len(bz) != PrivKeySize {
		return nil, ErrInvalidLength{Kind: "private key", Expected: PrivKeySize, Actual: len(bz)}
	}
	privKey := &PrivKey{}
	if err := privKey.sk.SetBytesCanonical(bz); err != nil {
		return nil, decodeErr("private key", err)
	}
	if privKey.sk.IsZero() {
		return nil, decodeErr("private key", io.ErrUnexpectedEOF)
	}
	return privKey, nil
}

// Bytes returns the byte representation of the key.
func (privKey *PrivKey) Bytes() []byte {
	b := privKey.sk.Bytes()
	return b[:]
}

// PubKey returns sk·G1.
func (privKey *PrivKey) PubKey() PubKey {
	var pk PubKey
	pk.p.ScalarMultiplication(&g1Gen, privKey.sk.BigInt(new(big.Int)))
	return pk
}

// Type returns the key type.
func (*PrivKey) Type() string {
	return KeyType
}

// Sign signs msg under the augmented scheme, i.e. it signs
// pubkey || msg.
func (privKey *PrivKey) Sign(msg []byte) Signature {
	pk := privKey.PubKey()
	point := HashToG2Augmented(AugmentMessage(pk.Bytes(), msg))

	var sig Signature
	sig.p.ScalarMultiplication(&point.p, privKey.sk.BigInt(new(big.Int)))
	return sig
}

// Zeroize clears the private key.
func (privKey *PrivKey) Zeroize() {
	privKey.sk.SetZero()
}

// ===============================================================================================
// Public Key
// ===============================================================================================

// PubKey is a point in G1. The zero value is the point at infinity.
type PubKey struct {
	p bls.G1Affine
}

// NewPublicKeyFromBytes decodes a compressed G1 point. The point must lie in
// the prime-order subgroup.
func NewPublicKeyFromBytes(bz []byte) (PubKey, error) {
	var pk PubKey
	if len(bz) != PubKeySize {
		return pk, ErrInvalidLength{Kind: "public key", Expected: PubKeySize, Actual: len(bz)}
	}
	if _, err := pk.p.SetBytes(bz); err != nil {
		return pk, decodeErr("public key", err)
	}
	return pk, nil
}

// Bytes returns the compressed encoding.
func (pubKey PubKey) Bytes() []byte {
	b := pubKey.p.Bytes()
	return b[:]
}

// String returns the hex encoded key.
func (pubKey PubKey) String() string {
	return hex.EncodeToString(pubKey.Bytes())
}

// Type returns the key type.
func (PubKey) Type() string {
	return KeyType
}

// Equals reports whether both keys encode the same point.
func (pubKey PubKey) Equals(other PubKey) bool {
	return pubKey.p.Equal(&other.p)
}

// VerifySignature verifies an augmented-scheme signature over msg.
func (pubKey PubKey) VerifySignature(msg []byte, sig Signature) bool {
	return AggregateVerify([]PubKey{pubKey}, [][]byte{msg}, sig)
}

// ===============================================================================================
// Signature
// ===============================================================================================

// Signature is a point in G2. The zero value is the point at infinity, the
// signature of an empty aggregate.
type Signature struct {
	p bls.G2Affine
}

// NewSignatureFromBytes decodes a compressed G2 point. Infinity is accepted
// since an aggregate signature may legitimately be infinite.
func NewSignatureFromBytes(bz []byte) (Signature, error) {
	var sig Signature
	if len(bz) != SignatureLength {
		return sig, ErrInvalidLength{Kind: "signature", Expected: SignatureLength, Actual: len(bz)}
	}
	if _, err := sig.p.SetBytes(bz); err != nil {
		return sig, decodeErr("signature", err)
	}
	return sig, nil
}

// Bytes returns the compressed encoding.
func (sig Signature) Bytes() []byte {
	b := sig.p.Bytes()
	return b[:]
}

// String returns the hex encoded signature.
func (sig Signature) String() string {
	return hex.EncodeToString(sig.Bytes())
}

// Add returns sig + other.
func (sig Signature) Add(other Signature) Signature {
	var res Signature
	res.p.Add(&sig.p, &other.p)
	return res
}

// Equal reports whether both signatures encode the same point.
func (sig Signature) Equal(other Signature) bool {
	return sig.p.Equal(&other.p)
}

// IsIdentity reports whether sig is the point at infinity.
func (sig Signature) IsIdentity() bool {
	return sig.p.IsInfinity()
}

// AggregateSignatures sums the given signatures. Aggregating nothing yields
// the identity.
func AggregateSignatures(sigs ...Signature) Signature {
	var agg Signature
	for _, sig := range sigs {
		agg = agg.Add(sig)
	}
	return agg
}
