package bls12381

import (
	"bytes"
	"errors"

	bls "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// G2Element is a point in G2 obtained by hashing an augmented message.
type G2Element struct {
	p bls.G2Affine
}

// Bytes returns the compressed encoding.
func (e G2Element) Bytes() []byte {
	b := e.p.Bytes()
	return b[:]
}

// GTElement is an element of the pairing target group. Values are plain data:
// copying a GTElement copies the whole field element.
type GTElement struct {
	gt bls.GT
}

// GTElementFromBytes decodes a canonically encoded GT element. Non-canonical
// encodings and elements outside the r-torsion subgroup are rejected.
func GTElementFromBytes(bz []byte) (GTElement, error) {
	var e GTElement
	if len(bz) != GTElementSize {
		return e, ErrInvalidLength{Kind: "GT element", Expected: GTElementSize, Actual: len(bz)}
	}
	if err := e.gt.SetBytes(bz); err != nil {
		return e, decodeErr("GT element", err)
	}
	if !bytes.Equal(e.Bytes(), bz) {
		return e, decodeErr("GT element", errors.New("non-canonical encoding"))
	}
	if !e.gt.IsInSubGroup() {
		return e, decodeErr("GT element", errors.New("not in subgroup"))
	}
	return e, nil
}

// Bytes returns the canonical encoding.
func (e GTElement) Bytes() []byte {
	b := e.gt.Bytes()
	return b[:]
}

// Equal reports whether both elements are identical.
func (e GTElement) Equal(other GTElement) bool {
	return e.gt.Equal(&other.gt)
}

// Mul returns e·other.
func (e GTElement) Mul(other GTElement) GTElement {
	var res GTElement
	res.gt.Mul(&e.gt, &other.gt)
	return res
}

// AugmentMessage returns pubKeyBytes || msg in a freshly allocated buffer.
func AugmentMessage(pubKeyBytes, msg []byte) []byte {
	aug := make([]byte, 0, len(pubKeyBytes)+len(msg))
	aug = append(aug, pubKeyBytes...)
	return append(aug, msg...)
}

// HashToG2Augmented maps an augmented message onto G2 using the augmented
// scheme DST.
func HashToG2Augmented(augMsg []byte) G2Element {
	p, err := bls.HashToG2(augMsg, dstAug)
	if err != nil {
		// only possible with an oversized DST
		panic(err)
	}
	return G2Element{p: p}
}

// Pair evaluates e(pk, q).
func Pair(pk PubKey, q G2Element) GTElement {
	gt, err := bls.Pair([]bls.G1Affine{pk.p}, []bls.G2Affine{q.p})
	if err != nil {
		panic(err)
	}
	return GTElement{gt: gt}
}

// AggregateVerifyGT checks a claimed aggregate signature against the
// precomputed pairings e(pk_i, H(pk_i || msg_i)):
//
//	∏ gts == e(G1, sig)
//
// With no pairings the product is empty and only the identity signature
// verifies.
func AggregateVerifyGT(sig Signature, gts []GTElement) bool {
	if len(gts) == 0 {
		return sig.IsIdentity()
	}
	if !sig.IsIdentity() && !sig.p.IsInSubGroup() {
		return false
	}

	agg := gts[0]
	for _, gt := range gts[1:] {
		agg = agg.Mul(gt)
	}

	rhs, err := bls.Pair([]bls.G1Affine{g1Gen}, []bls.G2Affine{sig.p})
	if err != nil {
		return false
	}
	return agg.gt.Equal(&rhs)
}

// AggregateVerify verifies an augmented-scheme aggregate signature without
// any caching, sharing a single final exponentiation across all pairs. It is
// the faster option when none of the pairings are known in advance.
// Extra entries in the longer of pks and msgs are an error and yield false.
func AggregateVerify(pks []PubKey, msgs [][]byte, sig Signature) bool {
	if len(pks) != len(msgs) {
		return false
	}
	if len(pks) == 0 {
		return sig.IsIdentity()
	}
	if !sig.IsIdentity() && !sig.p.IsInSubGroup() {
		return false
	}

	g1s := make([]bls.G1Affine, 0, len(pks)+1)
	g2s := make([]bls.G2Affine, 0, len(pks)+1)
	for i, pk := range pks {
		point := HashToG2Augmented(AugmentMessage(pk.Bytes(), msgs[i]))
		g1s = append(g1s, pk.p)
		g2s = append(g2s, point.p)
	}
	g1s = append(g1s, g1GenNeg)
	g2s = append(g2s, sig.p)

	ok, err := bls.PairingCheck(g1s, g2s)
	return err == nil && ok
}
