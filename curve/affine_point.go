package curve

import "math/big"

// AffinePoint is a point of E(F_p): either the distinguished point at
// infinity, or an (x,y) pair satisfying the curve equation.
type AffinePoint struct {
	X, Y       *big.Int
	IsInfinity bool
}

// Infinity returns the point at infinity for E(F_p).
func Infinity() AffinePoint {
	return AffinePoint{IsInfinity: true}
}

// NewAffinePoint builds a finite point. The caller is responsible for
// having verified it lies on the curve (EllipticCurve.IsOnCurve).
func NewAffinePoint(x, y *big.Int) AffinePoint {
	return AffinePoint{X: new(big.Int).Set(x), Y: new(big.Int).Set(y)}
}

// Equal reports whether p and o are the same point.
func (p AffinePoint) Equal(o AffinePoint) bool {
	if p.IsInfinity || o.IsInfinity {
		return p.IsInfinity == o.IsInfinity
	}
	return p.X.Cmp(o.X) == 0 && p.Y.Cmp(o.Y) == 0
}

// Negate returns -p, i.e. (x,-y), or infinity if p is infinity.
func (p AffinePoint) Negate(ec EllipticCurve) AffinePoint {
	if p.IsInfinity {
		return p
	}
	negY := new(big.Int).Neg(p.Y)
	negY.Mod(negY, ec.P)
	return NewAffinePoint(p.X, negY)
}

// Double returns p+p.
func (p AffinePoint) Double(ec EllipticCurve) AffinePoint {
	if p.IsInfinity || p.Y.Sign() == 0 {
		return Infinity()
	}

	// slope = (3x^2+a) / (2y)
	num := new(big.Int).Mul(p.X, p.X)
	num.Mul(num, big.NewInt(3))
	num.Add(num, ec.A)

	den := new(big.Int).Lsh(p.Y, 1)
	den.Mod(den, ec.P)

	invDen := new(big.Int).ModInverse(den, ec.P)
	if invDen == nil {
		return Infinity()
	}

	m := new(big.Int).Mul(num, invDen)
	m.Mod(m, ec.P)

	return addWithSlope(p, p, m, ec)
}

// Add returns p+q using the textbook affine addition/doubling formulas.
func (p AffinePoint) Add(q AffinePoint, ec EllipticCurve) AffinePoint {
	if p.IsInfinity {
		return q
	}
	if q.IsInfinity {
		return p
	}
	if p.Equal(q.Negate(ec)) {
		return Infinity()
	}
	if p.Equal(q) {
		return p.Double(ec)
	}

	num := new(big.Int).Sub(q.Y, p.Y)
	den := new(big.Int).Sub(q.X, p.X)
	den.Mod(den, ec.P)

	invDen := new(big.Int).ModInverse(den, ec.P)
	if invDen == nil {
		return Infinity()
	}

	m := new(big.Int).Mul(num, invDen)
	m.Mod(m, ec.P)

	return addWithSlope(p, q, m, ec)
}

func addWithSlope(p, q AffinePoint, m *big.Int, ec EllipticCurve) AffinePoint {
	x3 := new(big.Int).Mul(m, m)
	x3.Sub(x3, p.X)
	x3.Sub(x3, q.X)
	x3.Mod(x3, ec.P)

	y3 := new(big.Int).Sub(p.X, x3)
	y3.Mul(y3, m)
	y3.Sub(y3, p.Y)
	y3.Mod(y3, ec.P)

	return NewAffinePoint(x3, y3)
}

// ScalarMul computes k*p using a width-4 window-NAF chain: one doubling
// per NAF digit and one addition per nonzero digit. The number of
// additions therefore depends on the digits of k, not only on its bit
// length; the method is not constant-time.
func (p AffinePoint) ScalarMul(k *big.Int, ec EllipticCurve) AffinePoint {
	if k.Sign() == 0 || p.IsInfinity {
		return Infinity()
	}

	scalar := k
	result := windowNAFMul(p, new(big.Int).Abs(scalar), ec)
	if k.Sign() < 0 {
		return result.Negate(ec)
	}
	return result
}

const wnafWidth = 4

// windowNAFMul implements scalar multiplication via a width-4 NAF
// recoding: precompute odd multiples 1P,3P,...,(2^(w-1)-1)P once, then
// scan the NAF digits from the top performing one double per bit and one
// addition per nonzero digit.
func windowNAFMul(p AffinePoint, k *big.Int, ec EllipticCurve) AffinePoint {
	naf := nonAdjacentForm(k, wnafWidth)

	// Precompute odd multiples of p: table[i] = (2i+1)*p.
	tableSize := 1 << (wnafWidth - 2)
	table := make([]AffinePoint, tableSize)
	table[0] = p
	twiceP := p.Double(ec)
	for i := 1; i < tableSize; i++ {
		table[i] = table[i-1].Add(twiceP, ec)
	}

	result := Infinity()
	for i := len(naf) - 1; i >= 0; i-- {
		result = result.Double(ec)
		d := naf[i]
		if d == 0 {
			continue
		}
		idx := (abs(d) - 1) / 2
		term := table[idx]
		if d < 0 {
			term = term.Negate(ec)
		}
		result = result.Add(term, ec)
	}
	return result
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// nonAdjacentForm returns the width-w NAF digits of k, least significant
// first. Each nonzero digit is odd and bounded by 2^(w-1)-1 in absolute
// value, with at least w-1 zeros between nonzero digits.
func nonAdjacentForm(k *big.Int, w uint) []int {
	n := new(big.Int).Set(k)
	var digits []int

	modulus := new(big.Int).Lsh(big.NewInt(1), w)
	half := new(big.Int).Lsh(big.NewInt(1), w-1)

	for n.Sign() > 0 {
		if n.Bit(0) == 1 {
			mod := new(big.Int).Mod(n, modulus)
			d := int(mod.Int64())
			if d >= int(half.Int64()) {
				d -= int(modulus.Int64())
			}
			digits = append(digits, d)
			n.Sub(n, big.NewInt(int64(d)))
		} else {
			digits = append(digits, 0)
		}
		n.Rsh(n, 1)
	}

	return digits
}
