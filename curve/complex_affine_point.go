package curve

import (
	"math/big"

	"github.com/battila7/cryptid-native/field"
)

// ComplexAffinePoint is a point of E(F_p^2): the same curve shape as
// AffinePoint, but with coordinates in the quadratic extension. It is
// the second argument to the Tate pairing, reached by lifting an F_p
// point through the distortion map.
type ComplexAffinePoint struct {
	X, Y       *field.Element
	IsInfinity bool
}

// ComplexInfinity returns the point at infinity for E(F_p^2).
func ComplexInfinity() ComplexAffinePoint {
	return ComplexAffinePoint{IsInfinity: true}
}

// NewComplexAffinePoint builds a finite complex point.
func NewComplexAffinePoint(x, y *field.Element) ComplexAffinePoint {
	return ComplexAffinePoint{X: x, Y: y}
}

// Equal reports whether p and o are the same point.
func (p ComplexAffinePoint) Equal(o ComplexAffinePoint) bool {
	if p.IsInfinity || o.IsInfinity {
		return p.IsInfinity == o.IsInfinity
	}
	return p.X.Equal(o.X) && p.Y.Equal(o.Y)
}

// Negate returns -p.
func (p ComplexAffinePoint) Negate() ComplexAffinePoint {
	if p.IsInfinity {
		return p
	}
	return NewComplexAffinePoint(p.X.Clone(), p.Y.Neg())
}

// Double returns p+p over F_p^2, using the curve's a-coefficient lifted
// into F_p^2.
func (p ComplexAffinePoint) Double(ec EllipticCurve) ComplexAffinePoint {
	if p.IsInfinity || p.Y.IsZero() {
		return ComplexInfinity()
	}

	a := field.FromReal(ec.A, ec.P)
	three := field.FromReal(big.NewInt(3), ec.P)
	two := field.FromReal(big.NewInt(2), ec.P)

	num := three.Mul(p.X).Mul(p.X).Add(a)
	den := two.Mul(p.Y)

	invDen, err := den.Inverse()
	if err != nil {
		return ComplexInfinity()
	}

	m := num.Mul(invDen)
	return addWithComplexSlope(p, p, m)
}

// Add returns p+q over F_p^2.
func (p ComplexAffinePoint) Add(q ComplexAffinePoint, ec EllipticCurve) ComplexAffinePoint {
	if p.IsInfinity {
		return q
	}
	if q.IsInfinity {
		return p
	}
	if p.Equal(q.Negate()) {
		return ComplexInfinity()
	}
	if p.Equal(q) {
		return p.Double(ec)
	}

	num := q.Y.Sub(p.Y)
	den := q.X.Sub(p.X)

	invDen, err := den.Inverse()
	if err != nil {
		return ComplexInfinity()
	}

	m := num.Mul(invDen)
	return addWithComplexSlope(p, q, m)
}

func addWithComplexSlope(p, q ComplexAffinePoint, m *field.Element) ComplexAffinePoint {
	x3 := m.Mul(m).Sub(p.X).Sub(q.X)
	y3 := p.X.Sub(x3).Mul(m).Sub(p.Y)
	return NewComplexAffinePoint(x3, y3)
}

// ScalarMul computes k*p by plain double-and-add, adding once for every
// set bit of k; unlike ScalarMul on AffinePoint it does no window-NAF
// recoding. The Miller loop does not call it.
func (p ComplexAffinePoint) ScalarMul(k *big.Int, ec EllipticCurve) ComplexAffinePoint {
	if k.Sign() == 0 || p.IsInfinity {
		return ComplexInfinity()
	}

	n := new(big.Int).Abs(k)
	result := ComplexInfinity()
	acc := p

	for i := 0; i < n.BitLen(); i++ {
		if n.Bit(i) == 1 {
			result = result.Add(acc, ec)
		}
		acc = acc.Double(ec)
	}

	if k.Sign() < 0 {
		return result.Negate()
	}
	return result
}

// Distort lifts an F_p point through the distortion map
// (x,y) -> (zeta*x, y) for the curve y^2=x^3+1, where zeta is a primitive
// cube root of unity in F_p^2, producing a point of E(F_p^2) linearly
// independent from E(F_p), which is what makes the Tate pairing
// non-degenerate on the diagonal.
func Distort(p AffinePoint, ec EllipticCurve) ComplexAffinePoint {
	if p.IsInfinity {
		return ComplexInfinity()
	}

	// zeta = (-1 + sqrt(-3))/2 = -1/2 + (sqrt(3)/2)i; 3 is a square mod p
	// for p = 11 mod 12, and sqrt(3) = 3^((p+1)/4) since p = 3 mod 4.
	half := new(big.Int).ModInverse(big.NewInt(2), ec.P)
	sqrtExp := new(big.Int).Add(ec.P, big.NewInt(1))
	sqrtExp.Rsh(sqrtExp, 2)
	sqrt3 := new(big.Int).Exp(big.NewInt(3), sqrtExp, ec.P)
	zeta := field.New(new(big.Int).Neg(half), new(big.Int).Mul(sqrt3, half), ec.P)

	x := zeta.Mul(field.FromReal(p.X, ec.P))
	y := field.FromReal(p.Y, ec.P)

	return NewComplexAffinePoint(x, y)
}
