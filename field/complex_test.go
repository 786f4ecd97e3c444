package field_test

import (
	"math/big"
	"testing"

	"github.com/battila7/cryptid-native/field"
	"github.com/stretchr/testify/require"
)

// p = 11 is 3 mod 4, small enough for exhaustive-ish checks.
var testP = big.NewInt(11)

func TestMulAssociativity(t *testing.T) {
	a := field.New(big.NewInt(3), big.NewInt(5), testP)
	b := field.New(big.NewInt(7), big.NewInt(2), testP)
	c := field.New(big.NewInt(1), big.NewInt(9), testP)

	left := a.Mul(b).Mul(c)
	right := a.Mul(b.Mul(c))

	require.True(t, left.Equal(right))
}

func TestInverseRoundTrip(t *testing.T) {
	e := field.New(big.NewInt(4), big.NewInt(6), testP)
	inv, err := e.Inverse()
	require.NoError(t, err)

	one := e.Mul(inv)
	require.True(t, one.Equal(field.One(testP)))
}

func TestInverseZeroNormFails(t *testing.T) {
	// a^2+b^2 = 0 mod 5 when a=1,b=2 (1+4=5).
	p := big.NewInt(5)
	e := field.New(big.NewInt(1), big.NewInt(2), p)
	_, err := e.Inverse()
	require.Error(t, err)
}

func TestExpMatchesRepeatedMul(t *testing.T) {
	e := field.New(big.NewInt(2), big.NewInt(3), testP)
	got, err := e.Exp(big.NewInt(5))
	require.NoError(t, err)

	want := field.One(testP)
	for i := 0; i < 5; i++ {
		want = want.Mul(e)
	}

	require.True(t, got.Equal(want))
}

func TestExpNegativeInverts(t *testing.T) {
	e := field.New(big.NewInt(2), big.NewInt(3), testP)
	pos, err := e.Exp(big.NewInt(4))
	require.NoError(t, err)
	neg, err := e.Exp(big.NewInt(-4))
	require.NoError(t, err)

	require.True(t, pos.Mul(neg).Equal(field.One(testP)))
}

func TestDivAndSub(t *testing.T) {
	a := field.New(big.NewInt(8), big.NewInt(1), testP)
	b := field.New(big.NewInt(3), big.NewInt(4), testP)

	quot, err := a.Div(b)
	require.NoError(t, err)

	back := quot.Mul(b)
	require.True(t, back.Equal(a))

	diff := a.Sub(b)
	require.True(t, diff.Add(b).Equal(a))
}
