package randutil_test

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/battila7/cryptid-native/curve"
	"github.com/battila7/cryptid-native/randutil"
	"github.com/stretchr/testify/require"
)

func TestRandomSolinasPrimeLevel0(t *testing.T) {
	params, err := randutil.Params(randutil.Lowest)
	require.NoError(t, err)

	q, err := randutil.RandomSolinasPrime(rand.Reader, params.QBits, randutil.SolinasAttemptLimit)
	require.NoError(t, err)
	require.True(t, q.ProbablyPrime(20))
	require.Equal(t, params.QBits, q.BitLen())
}

func TestRandomSolinasPrimeSmallNBitsFails(t *testing.T) {
	_, err := randutil.RandomSolinasPrime(rand.Reader, 1, 10)
	require.Error(t, err)
}

func TestRandomAffinePointOnCurve(t *testing.T) {
	ec := curve.NewSupersingular(big.NewInt(59))
	p, err := randutil.RandomAffinePoint(ec, randutil.PointAttemptLimit)
	require.NoError(t, err)
	require.False(t, p.IsInfinity)
	require.True(t, ec.IsOnCurve(p.X, p.Y))
}

func TestRandomInRangeBounds(t *testing.T) {
	min := big.NewInt(5)
	max := big.NewInt(10)
	for i := 0; i < 50; i++ {
		v, err := randutil.RandomInRange(min, max)
		require.NoError(t, err)
		require.True(t, v.Cmp(min) >= 0 && v.Cmp(max) < 0)
	}
}
