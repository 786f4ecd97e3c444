// Package accesstree implements the Boolean access tree over attribute
// labels used by CP-ABE (C10): a pure policy description (spec.md design
// notes: "the tree itself remains a pure policy description"), the
// satisfy check, and Shamir polynomial share splitting down the tree.
// Node identity is the node's own pointer, so annotations computed during
// encryption (the Cy/Cy' pair in spec.md section 3) are kept in a
// parallel map[*Node]... structure by the abe package rather than on the
// Node itself.
package accesstree

import (
	"math/big"

	"github.com/battila7/cryptid-native/randutil"
	"github.com/battila7/cryptid-native/status"
)

// Node is either a leaf, carrying a single attribute label and threshold
// 1, or an internal (k,n)-threshold gate over its children.
type Node struct {
	Threshold int
	Attribute string
	Children  []*Node
}

// Leaf builds a leaf node for the given attribute label.
func Leaf(attribute string) *Node {
	return &Node{Threshold: 1, Attribute: attribute}
}

// Internal builds a (threshold, len(children))-threshold gate. Fails if
// 1 <= threshold <= len(children) does not hold.
func Internal(threshold int, children ...*Node) (*Node, error) {
	if threshold < 1 || threshold > len(children) {
		return nil, status.New(status.IllegalPublicParameters)
	}
	return &Node{Threshold: threshold, Children: append([]*Node(nil), children...)}, nil
}

// And builds an (n,n)-threshold gate: every child must be satisfied.
func And(children ...*Node) (*Node, error) {
	return Internal(len(children), children...)
}

// Or builds a (1,n)-threshold gate: any one child suffices.
func Or(children ...*Node) (*Node, error) {
	return Internal(1, children...)
}

// IsLeaf reports whether node is a leaf.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Satisfy reports whether attrs satisfies node: a leaf is satisfied when
// its attribute is present; an internal node is satisfied when at least
// threshold of its children are.
func Satisfy(node *Node, attrs map[string]bool) bool {
	if node.IsLeaf() {
		return attrs[node.Attribute]
	}

	count := 0
	for _, child := range node.Children {
		if Satisfy(child, attrs) {
			count++
		}
	}
	return count >= node.Threshold
}

// ComputeShares assigns a Shamir share to every leaf of the tree rooted
// at root, per spec.md section 4.7: at each internal node of threshold k,
// a random polynomial q_x of degree k-1 with q_x(0) equal to the share
// the node itself received is built, and child i (1-indexed) recurses
// with q_x(i). No polynomial is retained once its children's shares are
// assigned.
func ComputeShares(root *Node, secret *big.Int, order *big.Int) (map[*Node]*big.Int, error) {
	shares := make(map[*Node]*big.Int)

	var assign func(node *Node, value *big.Int) error
	assign = func(node *Node, value *big.Int) error {
		if node.IsLeaf() {
			shares[node] = new(big.Int).Mod(value, order)
			return nil
		}

		coeffs, err := randomPolynomial(node.Threshold-1, value, order)
		if err != nil {
			return err
		}

		for i, child := range node.Children {
			x := big.NewInt(int64(i + 1))
			childValue := evalPoly(coeffs, x, order)
			if err := assign(child, childValue); err != nil {
				return err
			}
		}
		return nil
	}

	if err := assign(root, secret); err != nil {
		return nil, err
	}
	return shares, nil
}

func randomPolynomial(degree int, constant *big.Int, order *big.Int) ([]*big.Int, error) {
	coeffs := make([]*big.Int, degree+1)
	coeffs[0] = new(big.Int).Mod(constant, order)

	for i := 1; i <= degree; i++ {
		c, err := randutil.RandomInRange(big.NewInt(0), order)
		if err != nil {
			return nil, err
		}
		coeffs[i] = c
	}
	return coeffs, nil
}

func evalPoly(coeffs []*big.Int, x, order *big.Int) *big.Int {
	result := big.NewInt(0)
	for i := len(coeffs) - 1; i >= 0; i-- {
		result.Mul(result, x)
		result.Add(result, coeffs[i])
		result.Mod(result, order)
	}
	return result
}

// LagrangeCoefficient computes Delta_{i,S}(0) = prod_{j in S, j!=i}
// (-j)/(i-j), modulo order rather than by integer division (spec.md's
// correction to the source's Lagrange_coefficient, which performs integer
// division even though the exponent is used modulo q).
func LagrangeCoefficient(i int, S []int, order *big.Int) (*big.Int, error) {
	result := big.NewInt(1)
	bigI := big.NewInt(int64(i))

	for _, j := range S {
		if j == i {
			continue
		}
		bigJ := big.NewInt(int64(j))

		num := new(big.Int).Neg(bigJ)
		num.Mod(num, order)

		den := new(big.Int).Sub(bigI, bigJ)
		den.Mod(den, order)

		invDen := new(big.Int).ModInverse(den, order)
		if invDen == nil {
			return nil, status.New(status.InverseNonInvertible)
		}

		term := new(big.Int).Mul(num, invDen)
		term.Mod(term, order)

		result.Mul(result, term)
		result.Mod(result, order)
	}

	return result, nil
}
