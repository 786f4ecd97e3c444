// Package curve implements the supersingular curve y^2 = x^3 + ax + b
// over F_p (AffinePoint) and over its quadratic extension F_p^2
// (ComplexAffinePoint), following the teacher repo's convention of
// representing every curve point as a plain struct with explicit
// infinity handling rather than a projective/Jacobian form.
package curve

import "math/big"

// EllipticCurve is y^2 = x^3 + ax + b over F_p. The cryptid-native core
// uses (a,b)=(0,1) exclusively, giving the curve y^2 = x^3 + 1, which is
// supersingular with embedding degree 2 for p = 2 mod 3.
type EllipticCurve struct {
	A, B, P *big.Int
}

// NewSupersingular builds the y^2=x^3+1 curve over the given field order.
func NewSupersingular(p *big.Int) EllipticCurve {
	return EllipticCurve{A: big.NewInt(0), B: big.NewInt(1), P: p}
}

// IsOnCurve reports whether (x,y) satisfies y^2 = x^3 + ax + b mod p.
func (ec EllipticCurve) IsOnCurve(x, y *big.Int) bool {
	lhs := new(big.Int).Mul(y, y)
	lhs.Mod(lhs, ec.P)

	rhs := new(big.Int).Mul(x, x)
	rhs.Mul(rhs, x)
	rhs.Add(rhs, new(big.Int).Mul(ec.A, x))
	rhs.Add(rhs, ec.B)
	rhs.Mod(rhs, ec.P)

	return lhs.Cmp(rhs) == 0
}
