package bls12381_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cometbft/cometbft-blscache/crypto/bls12381"
)

func seed(b byte) []byte {
	return bytes.Repeat([]byte{b}, 32)
}

func genPrivKey(t *testing.T, b byte) *bls12381.PrivKey {
	t.Helper()
	privKey, err := bls12381.GenPrivKeyFromSecret(seed(b))
	require.NoError(t, err)
	return privKey
}

func TestGenPrivKeyFromSecret(t *testing.T) {
	privKey := genPrivKey(t, 1)
	again := genPrivKey(t, 1)
	other := genPrivKey(t, 2)

	assert.Equal(t, privKey.Bytes(), again.Bytes())
	assert.NotEqual(t, privKey.Bytes(), other.Bytes())
	assert.Len(t, privKey.Bytes(), bls12381.PrivKeySize)

	_, err := bls12381.GenPrivKeyFromSecret([]byte("too short"))
	assert.ErrorIs(t, err, bls12381.ErrSeedTooShort)
}

func TestNewPrivateKeyFromBytes(t *testing.T) {
	privKey := genPrivKey(t, 3)

	privKey2, err := bls12381.NewPrivateKeyFromBytes(privKey.Bytes())
	require.NoError(t, err)
	assert.Equal(t, privKey.Bytes(), privKey2.Bytes())
	assert.True(t, privKey.PubKey().Equals(privKey2.PubKey()))

	_, err = bls12381.NewPrivateKeyFromBytes(make([]byte, 31))
	assert.ErrorIs(t, err, bls12381.ErrDecode)

	_, err = bls12381.NewPrivateKeyFromBytes(make([]byte, 32))
	assert.ErrorIs(t, err, bls12381.ErrDecode)

	_, err = bls12381.NewPrivateKeyFromBytes(bytes.Repeat([]byte{0xff}, 32))
	assert.ErrorIs(t, err, bls12381.ErrDecode)
}

func TestPubKeyBytes(t *testing.T) {
	pubKey := genPrivKey(t, 4).PubKey()
	bz := pubKey.Bytes()
	require.Len(t, bz, bls12381.PubKeySize)

	pubKey2, err := bls12381.NewPublicKeyFromBytes(bz)
	require.NoError(t, err)
	assert.True(t, pubKey.Equals(pubKey2))
	assert.Equal(t, "bls12_381", pubKey.Type())

	_, err = bls12381.NewPublicKeyFromBytes(bz[:47])
	var lenErr bls12381.ErrInvalidLength
	require.ErrorAs(t, err, &lenErr)
	assert.Equal(t, bls12381.PubKeySize, lenErr.Expected)
	assert.ErrorIs(t, err, bls12381.ErrDecode)

	garbage := bytes.Repeat([]byte{0xab}, bls12381.PubKeySize)
	_, err = bls12381.NewPublicKeyFromBytes(garbage)
	assert.ErrorIs(t, err, bls12381.ErrDecode)
}

func TestSignAndVerify(t *testing.T) {
	privKey := genPrivKey(t, 5)
	pubKey := privKey.PubKey()
	msg := []byte("this is my message to sign")

	sig := privKey.Sign(msg)
	require.Len(t, sig.Bytes(), bls12381.SignatureLength)
	assert.True(t, pubKey.VerifySignature(msg, sig))
	assert.False(t, pubKey.VerifySignature([]byte("another message"), sig))

	// A signature from another key over the same message must not verify.
	other := genPrivKey(t, 6)
	assert.False(t, pubKey.VerifySignature(msg, other.Sign(msg)))

	sig2, err := bls12381.NewSignatureFromBytes(sig.Bytes())
	require.NoError(t, err)
	assert.True(t, sig.Equal(sig2))

	mutated := sig.Bytes()
	mutated[7] ^= 0x01
	if decoded, err := bls12381.NewSignatureFromBytes(mutated); err == nil {
		assert.False(t, pubKey.VerifySignature(msg, decoded))
	}

	_, err = bls12381.NewSignatureFromBytes(sig.Bytes()[:95])
	assert.ErrorIs(t, err, bls12381.ErrDecode)
}

func TestSignatureIsDeterministic(t *testing.T) {
	privKey := genPrivKey(t, 7)
	msg := []byte{106, 106, 106}
	assert.Equal(t, privKey.Sign(msg).Bytes(), privKey.Sign(msg).Bytes())
}

func TestIdentitySignature(t *testing.T) {
	var sig bls12381.Signature
	assert.True(t, sig.IsIdentity())
	assert.True(t, bls12381.AggregateSignatures().IsIdentity())

	decoded, err := bls12381.NewSignatureFromBytes(sig.Bytes())
	require.NoError(t, err)
	assert.True(t, decoded.IsIdentity())
}
