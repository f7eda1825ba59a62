package bls12381

const (
	// PrivKeySize defines the length of the PrivKey byte array.
	PrivKeySize = 32
	// PubKeySize defines the length of the compressed G1 public key.
	PubKeySize = 48
	// SignatureLength defines the length of the compressed G2 signature.
	SignatureLength = 96
	// GTElementSize defines the length of a canonically encoded GT element.
	GTElementSize = 576
	// KeyType is the string constant for the BLS12-381 algorithm.
	KeyType = "bls12_381"
	// MinSeedLen is the minimum amount of key material accepted by
	// GenPrivKeyFromSecret.
	MinSeedLen = 32
)

var (
	// dstAug is the domain separation tag of the augmented scheme
	// (public keys in G1, signatures in G2).
	dstAug = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_AUG_")

	keyGenSalt = []byte("BLS-SIG-KEYGEN-SALT-")
)
