package hashfn

import (
	"math/big"

	"github.com/battila7/cryptid-native/curve"
	"github.com/battila7/cryptid-native/status"
)

// PointAttemptLimit bounds hashToPoint's retry loop, matching
// POINT_GENERATION_ATTEMPT_LIMIT in _examples/original_source/src/CryptID.c.
const PointAttemptLimit = 100

// HashToPoint maps an identity string onto a point of the order-q
// subgroup of E(F_p), per spec.md section 4.4: derive a y-coordinate via
// hashToRange, recover a matching x via the cube-root formula valid
// because p = 2 mod 3, then clear the cofactor (p+1)/q. If the
// cofactor-multiplied candidate lands on infinity, the seed is advanced
// and the attempt retried.
func HashToPoint(id []byte, q *big.Int, ec curve.EllipticCurve, h HashFunction) (curve.AffinePoint, error) {
	p := ec.P

	cofactor := new(big.Int).Add(p, big.NewInt(1))
	cofactor.Div(cofactor, q)

	cubeRootExp := new(big.Int).Mul(p, big.NewInt(2))
	cubeRootExp.Sub(cubeRootExp, big.NewInt(1))
	cubeRootExp.Div(cubeRootExp, big.NewInt(3))

	for attempt := 0; attempt < PointAttemptLimit; attempt++ {
		seed := make([]byte, 0, len(id)+1)
		seed = append(seed, id...)
		seed = append(seed, byte(attempt))

		y := HashToRange(seed, p, h)

		ySq := new(big.Int).Mul(y, y)
		ySq.Sub(ySq, big.NewInt(1))
		ySq.Mod(ySq, p)

		x := new(big.Int).Exp(ySq, cubeRootExp, p)

		if !ec.IsOnCurve(x, y) {
			continue
		}

		candidate := curve.NewAffinePoint(x, y)
		result := candidate.ScalarMul(cofactor, ec)
		if !result.IsInfinity {
			return result, nil
		}
	}

	return curve.AffinePoint{}, status.New(status.HashToPointFailed)
}
