package pairing_test

import (
	"math/big"
	"testing"

	"github.com/battila7/cryptid-native/curve"
	"github.com/battila7/cryptid-native/field"
	"github.com/battila7/cryptid-native/pairing"
	"github.com/stretchr/testify/require"
)

// A tiny RFC-5091-shaped example: q=5, r=1, p=12*r*q-1=59, p+1=60=#E(F_p).
// Small enough to brute-force a generator of the order-q subgroup.
func tinyParams(t *testing.T) (curve.EllipticCurve, *big.Int, curve.AffinePoint) {
	t.Helper()

	p := big.NewInt(59)
	q := big.NewInt(5)
	cofactor := big.NewInt(12) // 12*r with r=1

	ec := curve.NewSupersingular(p)

	for x := int64(1); x < 59; x++ {
		for y := int64(1); y < 59; y++ {
			xi, yi := big.NewInt(x), big.NewInt(y)
			if !ec.IsOnCurve(xi, yi) {
				continue
			}
			candidate := curve.NewAffinePoint(xi, yi)
			p5 := candidate.ScalarMul(cofactor, ec)
			if p5.IsInfinity {
				continue
			}
			if p5.ScalarMul(q, ec).IsInfinity {
				return ec, q, p5
			}
		}
	}

	t.Fatal("no order-q point found")
	return ec, q, curve.AffinePoint{}
}

func TestTateNonDegenerate(t *testing.T) {
	ec, q, p := tinyParams(t)
	qPoint := curve.Distort(p, ec)

	result, err := pairing.Tate(p, qPoint, pairing.EmbeddingDegree, q, ec)
	require.NoError(t, err)
	require.False(t, result.Equal(field.One(ec.P)))
}

func TestTateBilinear(t *testing.T) {
	ec, q, p := tinyParams(t)
	qPoint := curve.Distort(p, ec)

	base, err := pairing.Tate(p, qPoint, pairing.EmbeddingDegree, q, ec)
	require.NoError(t, err)

	a := big.NewInt(2)
	b := big.NewInt(3)

	aP := p.ScalarMul(a, ec)
	bQ := qPoint.ScalarMul(b, ec)

	lhs, err := pairing.Tate(aP, bQ, pairing.EmbeddingDegree, q, ec)
	require.NoError(t, err)

	ab := new(big.Int).Mul(a, b)
	rhs, err := base.Exp(ab)
	require.NoError(t, err)

	require.True(t, lhs.Equal(rhs), "e(aP,bQ)=%v want %v", lhs, rhs)
}
