package accesstree_test

import (
	"math/big"
	"testing"

	"github.com/battila7/cryptid-native/accesstree"
	"github.com/stretchr/testify/require"
)

var order = big.NewInt(104729) // a convenient small prime for test polynomials

func TestSatisfyAndTree(t *testing.T) {
	leafA := accesstree.Leaf("a")
	leafB := accesstree.Leaf("b")
	tree, err := accesstree.And(leafA, leafB)
	require.NoError(t, err)

	require.True(t, accesstree.Satisfy(tree, map[string]bool{"a": true, "b": true}))
	require.False(t, accesstree.Satisfy(tree, map[string]bool{"a": true}))
}

func TestSatisfyOrTree(t *testing.T) {
	leafA := accesstree.Leaf("a")
	leafB := accesstree.Leaf("b")
	tree, err := accesstree.Or(leafA, leafB)
	require.NoError(t, err)

	require.True(t, accesstree.Satisfy(tree, map[string]bool{"a": true}))
	require.True(t, accesstree.Satisfy(tree, map[string]bool{"b": true}))
	require.False(t, accesstree.Satisfy(tree, map[string]bool{}))
}

func TestSatisfyThreshold(t *testing.T) {
	leaves := []*accesstree.Node{
		accesstree.Leaf("a"), accesstree.Leaf("b"), accesstree.Leaf("c"),
	}
	tree, err := accesstree.Internal(2, leaves...)
	require.NoError(t, err)

	require.True(t, accesstree.Satisfy(tree, map[string]bool{"a": true, "c": true}))
	require.False(t, accesstree.Satisfy(tree, map[string]bool{"a": true}))
}

func TestInternalRejectsBadThreshold(t *testing.T) {
	_, err := accesstree.Internal(3, accesstree.Leaf("a"), accesstree.Leaf("b"))
	require.Error(t, err)
}

func TestComputeSharesReconstructsSecret(t *testing.T) {
	leaves := []*accesstree.Node{
		accesstree.Leaf("a"), accesstree.Leaf("b"), accesstree.Leaf("c"),
	}
	tree, err := accesstree.Internal(2, leaves...)
	require.NoError(t, err)

	secret := big.NewInt(42)
	shares, err := accesstree.ComputeShares(tree, secret, order)
	require.NoError(t, err)
	require.Len(t, shares, 3)

	// Reconstruct from shares of leaves 1 and 3 (1-indexed, per
	// accesstree's child ordering).
	S := []int{1, 3}
	reconstructed := big.NewInt(0)
	for _, i := range S {
		coeff, err := accesstree.LagrangeCoefficient(i, S, order)
		require.NoError(t, err)

		term := new(big.Int).Mul(shares[leaves[i-1]], coeff)
		term.Mod(term, order)

		reconstructed.Add(reconstructed, term)
		reconstructed.Mod(reconstructed, order)
	}

	require.Equal(t, 0, reconstructed.Cmp(secret))
}
