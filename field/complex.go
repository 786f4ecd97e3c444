// Package field implements F_p^2, the quadratic extension of F_p used as
// the target field of the Tate pairing and the coordinate field of
// ComplexAffinePoint. Elements are represented as a+bi with i^2=-1, for a
// prime p congruent to 3 mod 4 (so -1 is a non-residue and the extension
// is a field).
package field

import (
	"math/big"

	"github.com/battila7/cryptid-native/status"
)

// Element is a+bi mod P. A and B are always reduced into [0,P).
type Element struct {
	A, B *big.Int
	P    *big.Int
}

// New builds a reduced element from a, b mod p.
func New(a, b, p *big.Int) *Element {
	return &Element{
		A: new(big.Int).Mod(a, p),
		B: new(big.Int).Mod(b, p),
		P: p,
	}
}

// Zero returns the additive identity 0+0i over p.
func Zero(p *big.Int) *Element {
	return New(big.NewInt(0), big.NewInt(0), p)
}

// One returns the multiplicative identity 1+0i over p.
func One(p *big.Int) *Element {
	return New(big.NewInt(1), big.NewInt(0), p)
}

// FromReal lifts an F_p element into F_p^2 as a+0i.
func FromReal(a, p *big.Int) *Element {
	return New(a, big.NewInt(0), p)
}

// Clone returns an independent copy of e.
func (e *Element) Clone() *Element {
	return New(new(big.Int).Set(e.A), new(big.Int).Set(e.B), e.P)
}

// Equal reports whether e and o represent the same element of F_p^2.
func (e *Element) Equal(o *Element) bool {
	return e.A.Cmp(o.A) == 0 && e.B.Cmp(o.B) == 0
}

// IsZero reports whether e is the additive identity.
func (e *Element) IsZero() bool {
	return e.A.Sign() == 0 && e.B.Sign() == 0
}

// Add returns e+o.
func (e *Element) Add(o *Element) *Element {
	return New(new(big.Int).Add(e.A, o.A), new(big.Int).Add(e.B, o.B), e.P)
}

// Sub returns e-o.
func (e *Element) Sub(o *Element) *Element {
	return New(new(big.Int).Sub(e.A, o.A), new(big.Int).Sub(e.B, o.B), e.P)
}

// Neg returns -e.
func (e *Element) Neg() *Element {
	return New(new(big.Int).Neg(e.A), new(big.Int).Neg(e.B), e.P)
}

// Mul returns e*o, using (a+bi)(c+di) = (ac-bd) + (ad+bc)i.
func (e *Element) Mul(o *Element) *Element {
	ac := new(big.Int).Mul(e.A, o.A)
	bd := new(big.Int).Mul(e.B, o.B)
	ad := new(big.Int).Mul(e.A, o.B)
	bc := new(big.Int).Mul(e.B, o.A)

	real := new(big.Int).Sub(ac, bd)
	imag := new(big.Int).Add(ad, bc)

	return New(real, imag, e.P)
}

// Inverse returns the multiplicative inverse of e: (a-bi)/(a^2+b^2).
// Fails with status.InverseNonInvertible if a^2+b^2 = 0 mod p.
func (e *Element) Inverse() (*Element, error) {
	normSq := new(big.Int).Add(
		new(big.Int).Mul(e.A, e.A),
		new(big.Int).Mul(e.B, e.B),
	)
	normSq.Mod(normSq, e.P)

	if normSq.Sign() == 0 {
		return nil, status.New(status.InverseNonInvertible)
	}

	invNorm := new(big.Int).ModInverse(normSq, e.P)
	if invNorm == nil {
		return nil, status.New(status.InverseNonInvertible)
	}

	a := new(big.Int).Mul(e.A, invNorm)
	b := new(big.Int).Neg(new(big.Int).Mul(e.B, invNorm))

	return New(a, b, e.P), nil
}

// Div returns e/o.
func (e *Element) Div(o *Element) (*Element, error) {
	inv, err := o.Inverse()
	if err != nil {
		return nil, err
	}
	return e.Mul(inv), nil
}

// Exp returns e^n via square-and-multiply over a BigInt exponent. Negative
// exponents invert e first.
func (e *Element) Exp(n *big.Int) (*Element, error) {
	if n.Sign() == 0 {
		return One(e.P), nil
	}

	base := e
	exponent := n
	if n.Sign() < 0 {
		inv, err := e.Inverse()
		if err != nil {
			return nil, err
		}
		base = inv
		exponent = new(big.Int).Neg(n)
	}

	result := One(e.P)
	acc := base.Clone()

	for i := 0; i < exponent.BitLen(); i++ {
		if exponent.Bit(i) == 1 {
			result = result.Mul(acc)
		}
		acc = acc.Mul(acc)
	}

	return result, nil
}

// String renders e as "(a,b)" for debugging and test failure messages.
func (e *Element) String() string {
	return "(" + e.A.String() + "," + e.B.String() + ")"
}
