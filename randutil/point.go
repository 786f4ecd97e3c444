package randutil

import (
	"math/big"

	"github.com/battila7/cryptid-native/curve"
	"github.com/battila7/cryptid-native/status"
)

// PointAttemptLimit bounds random_affinePoint's retry loop, matching
// POINT_GENERATION_ATTEMPT_LIMIT in
// _examples/original_source/src/CryptID.c.
const PointAttemptLimit = 100

// RandomAffinePoint samples a uniformly random point of E(F_p): draw x
// in [0,p), compute r=x^3+ax+b, and if r is a quadratic residue recover y
// as r^((p+1)/4) mod p (valid because p = 3 mod 4); otherwise resample x.
func RandomAffinePoint(ec curve.EllipticCurve, limit int) (curve.AffinePoint, error) {
	p := ec.P
	sqrtExp := new(big.Int).Add(p, big.NewInt(1))
	sqrtExp.Rsh(sqrtExp, 2) // (p+1)/4

	eulerExp := new(big.Int).Sub(p, big.NewInt(1))
	eulerExp.Rsh(eulerExp, 1) // (p-1)/2

	for attempt := 0; attempt < limit; attempt++ {
		x, err := RandomInRange(big.NewInt(0), p)
		if err != nil {
			return curve.AffinePoint{}, status.Wrap(status.PointGenFailed, err)
		}

		r := new(big.Int).Mul(x, x)
		r.Mul(r, x)
		r.Add(r, new(big.Int).Mul(ec.A, x))
		r.Add(r, ec.B)
		r.Mod(r, p)

		if r.Sign() == 0 {
			return curve.NewAffinePoint(x, big.NewInt(0)), nil
		}

		if new(big.Int).Exp(r, eulerExp, p).Cmp(big.NewInt(1)) != 0 {
			continue // not a quadratic residue
		}

		y := new(big.Int).Exp(r, sqrtExp, p)
		return curve.NewAffinePoint(x, y), nil
	}

	return curve.AffinePoint{}, status.New(status.PointGenFailed)
}
