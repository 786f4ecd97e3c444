package abe_test

import (
	"math/big"
	"testing"

	"github.com/battila7/cryptid-native/abe"
	"github.com/battila7/cryptid-native/accesstree"
	"github.com/battila7/cryptid-native/curve"
	"github.com/battila7/cryptid-native/hashfn"
	"github.com/battila7/cryptid-native/pairing"
	"github.com/stretchr/testify/require"
)

// tinyParams builds RFC-5091-shaped parameters (q=7, r=391,
// p=12*r*q-1=32843) large enough that a one-byte message block stays
// strictly below p, but still small enough to brute-force a generator
// of the order-q subgroup, the same approach pairing's own tests use.
func tinyParams(t *testing.T) (curve.EllipticCurve, *big.Int, curve.AffinePoint) {
	t.Helper()

	p := big.NewInt(32843)
	q := big.NewInt(7)
	cofactor := big.NewInt(4692) // 12*r with r=391

	ec := curve.NewSupersingular(p)

	for x := int64(1); x < 32843; x++ {
		xi := big.NewInt(x)
		ySq := new(big.Int).Mul(xi, xi)
		ySq.Mul(ySq, xi)
		ySq.Add(ySq, big.NewInt(1))
		ySq.Mod(ySq, p)

		y := new(big.Int).ModSqrt(ySq, p)
		if y == nil {
			continue
		}

		candidate := curve.NewAffinePoint(xi, y)
		g := candidate.ScalarMul(cofactor, ec)
		if g.IsInfinity {
			continue
		}
		if g.ScalarMul(q, ec).IsInfinity {
			return ec, q, g
		}
	}

	t.Fatal("no order-q point found")
	return ec, q, curve.AffinePoint{}
}

func buildFixture(t *testing.T, alpha, beta *big.Int) (abe.PublicKey, abe.MasterKey) {
	t.Helper()

	ec, q, g := tinyParams(t)
	h := g.ScalarMul(beta, ec)

	betaInv := new(big.Int).ModInverse(beta, q)
	require.NotNil(t, betaInv)
	f := g.ScalarMul(betaInv, ec)

	egg, err := pairing.Tate(g, curve.Distort(g, ec), pairing.EmbeddingDegree, q, ec)
	require.NoError(t, err)
	eggAlpha, err := egg.Exp(alpha)
	require.NoError(t, err)

	pk := abe.PublicKey{
		E:        ec,
		Q:        q,
		G:        g,
		H:        h,
		F:        f,
		EggAlpha: eggAlpha,
		HashFunc: hashfn.SHA1(),
	}

	gAlpha := g.ScalarMul(alpha, ec)

	mk := abe.MasterKey{Beta: beta, GAlpha: gAlpha, PK: pk}

	return pk, mk
}

func TestABERoundTripAndTree(t *testing.T) {
	pk, mk := buildFixture(t, big.NewInt(2), big.NewInt(3))

	tree, err := accesstree.And(accesstree.Leaf("attr1"), accesstree.Leaf("attr2"))
	require.NoError(t, err)

	sk, err := abe.KeyGen(mk, []string{"attr1", "attr2"})
	require.NoError(t, err)

	message := []byte("secret")
	ct, err := abe.Encrypt(message, tree, pk)
	require.NoError(t, err)

	recovered, err := abe.Decrypt(ct, sk, pk)
	require.NoError(t, err)
	require.Equal(t, message, recovered)
}

func TestABEMissingAttributeFails(t *testing.T) {
	pk, mk := buildFixture(t, big.NewInt(2), big.NewInt(3))

	tree, err := accesstree.And(accesstree.Leaf("attr1"), accesstree.Leaf("attr2"))
	require.NoError(t, err)

	sk, err := abe.KeyGen(mk, []string{"attr1"})
	require.NoError(t, err)

	ct, err := abe.Encrypt([]byte("secret"), tree, pk)
	require.NoError(t, err)

	_, err = abe.Decrypt(ct, sk, pk)
	require.Error(t, err)
}

func TestABEThresholdSucceedsAndFails(t *testing.T) {
	pk, mk := buildFixture(t, big.NewInt(2), big.NewInt(3))

	tree, err := accesstree.Internal(2,
		accesstree.Leaf("a"), accesstree.Leaf("b"), accesstree.Leaf("c"))
	require.NoError(t, err)

	message := []byte("hi")
	ct, err := abe.Encrypt(message, tree, pk)
	require.NoError(t, err)

	skAC, err := abe.KeyGen(mk, []string{"a", "c"})
	require.NoError(t, err)
	recovered, err := abe.Decrypt(ct, skAC, pk)
	require.NoError(t, err)
	require.Equal(t, message, recovered)

	skA, err := abe.KeyGen(mk, []string{"a"})
	require.NoError(t, err)
	_, err = abe.Decrypt(ct, skA, pk)
	require.Error(t, err)
}

func TestABEMultiBlockMessage(t *testing.T) {
	pk, mk := buildFixture(t, big.NewInt(2), big.NewInt(3))

	tree := accesstree.Leaf("solo")
	sk, err := abe.KeyGen(mk, []string{"solo"})
	require.NoError(t, err)

	message := []byte("a longer secret message spanning several blocks")
	ct, err := abe.Encrypt(message, tree, pk)
	require.NoError(t, err)
	require.Greater(t, len(ct.Ctilde), 1)

	recovered, err := abe.Decrypt(ct, sk, pk)
	require.NoError(t, err)
	require.Equal(t, message, recovered)
}
