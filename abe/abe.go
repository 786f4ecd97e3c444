// Package abe implements Bethencourt-Sahai-Waters Ciphertext-Policy
// Attribute-Based Encryption (C11) over the same curve, pairing, hash
// and randutil layers the ibe package uses, with its access-policy logic
// delegated entirely to the accesstree package.
package abe

import (
	"io"
	"math/big"

	"github.com/battila7/cryptid-native/accesstree"
	"github.com/battila7/cryptid-native/curve"
	"github.com/battila7/cryptid-native/field"
	"github.com/battila7/cryptid-native/hashfn"
	"github.com/battila7/cryptid-native/pairing"
	"github.com/battila7/cryptid-native/randutil"
	"github.com/battila7/cryptid-native/status"
)

// PublicKey is the PK any encryptor needs.
type PublicKey struct {
	E        curve.EllipticCurve
	Q        *big.Int
	G        curve.AffinePoint
	H        curve.AffinePoint // g^beta
	F        curve.AffinePoint // g^(1/beta)
	EggAlpha *field.Element    // e(g,g)^alpha
	HashFunc hashfn.HashFunction
}

// MasterKey is the authority's secret: beta, alpha*g, and a link back to
// the PublicKey it was generated alongside (spec.md's "MasterKey_ABE:
// ...link->PublicKey_ABE").
type MasterKey struct {
	Beta   *big.Int
	GAlpha curve.AffinePoint
	PK     PublicKey
}

// attributeKey is a single attribute's (Dj, Dj') pair issued by KeyGen.
type attributeKey struct {
	D  curve.AffinePoint
	DP curve.AffinePoint
}

// SecretKey is a user's decryption key: D = beta^-1 * (alpha+r) * g, plus
// one (Dj, Dj') pair per attribute the user holds.
type SecretKey struct {
	D          curve.AffinePoint
	Attributes map[string]attributeKey
}

// AttributeSet reports the set of attribute labels this key carries.
func (sk SecretKey) AttributeSet() map[string]bool {
	out := make(map[string]bool, len(sk.Attributes))
	for a := range sk.Attributes {
		out[a] = true
	}
	return out
}

// EncryptedMessage is a ciphertext under an access tree: the annotated
// tree's per-leaf (Cy, Cy') shares live in a parallel map keyed by node
// pointer, per the tree's "pure policy description" design.
type EncryptedMessage struct {
	Tree    *accesstree.Node
	Ctilde  []*field.Element // one block per plaintext chunk
	C       curve.AffinePoint
	Leaves  map[*accesstree.Node]leafShare
	BlockSz int // bytes per full plaintext block, strictly < log2(p)/8
	MsgLen  int // original plaintext length in bytes, to size the last block
}

type leafShare struct {
	Cy  curve.AffinePoint
	CyP curve.AffinePoint
}

// Setup builds the curve and subgroup order exactly as ibe.Setup does,
// then adds a generator g, the (alpha,beta) trapdoors, and the
// egg_alpha = e(g,g)^alpha public value.
func Setup(random io.Reader, level randutil.SecurityLevel) (PublicKey, MasterKey, error) {
	params, err := randutil.Params(level)
	if err != nil {
		return PublicKey{}, MasterKey{}, err
	}

	q, err := randutil.RandomSolinasPrime(random, params.QBits, randutil.SolinasAttemptLimit)
	if err != nil {
		return PublicKey{}, MasterKey{}, err
	}

	p, _, err := findEmbeddingPrime(q, params.PBits)
	if err != nil {
		return PublicKey{}, MasterKey{}, err
	}

	ec := curve.NewSupersingular(p)

	cofactor := new(big.Int).Add(p, big.NewInt(1))
	cofactor.Div(cofactor, q)

	var g curve.AffinePoint
	for attempt := 0; attempt < randutil.PointAttemptLimit; attempt++ {
		candidate, err := randutil.RandomAffinePoint(ec, randutil.PointAttemptLimit)
		if err != nil {
			return PublicKey{}, MasterKey{}, err
		}
		g = candidate.ScalarMul(cofactor, ec)
		if !g.IsInfinity {
			break
		}
	}
	if g.IsInfinity {
		return PublicKey{}, MasterKey{}, status.New(status.PointGenFailed)
	}

	alpha, err := randutil.RandomInRange(big.NewInt(1), q)
	if err != nil {
		return PublicKey{}, MasterKey{}, err
	}
	beta, err := randutil.RandomInRange(big.NewInt(1), q)
	if err != nil {
		return PublicKey{}, MasterKey{}, err
	}

	h := g.ScalarMul(beta, ec)

	betaInv := new(big.Int).ModInverse(beta, q)
	if betaInv == nil {
		return PublicKey{}, MasterKey{}, status.New(status.InverseNonInvertible)
	}
	f := g.ScalarMul(betaInv, ec)

	gDistorted := curve.Distort(g, ec)
	egg, err := pairing.Tate(g, gDistorted, pairing.EmbeddingDegree, q, ec)
	if err != nil {
		return PublicKey{}, MasterKey{}, err
	}
	eggAlpha, err := egg.Exp(alpha)
	if err != nil {
		return PublicKey{}, MasterKey{}, err
	}

	pk := PublicKey{
		E:        ec,
		Q:        q,
		G:        g,
		H:        h,
		F:        f,
		EggAlpha: eggAlpha,
		HashFunc: params.Hash,
	}

	gAlpha := g.ScalarMul(alpha, ec)

	mk := MasterKey{Beta: beta, GAlpha: gAlpha, PK: pk}

	return pk, mk, nil
}

// findEmbeddingPrime is the same 12rq-1 search ibe.Setup performs;
// duplicated locally rather than imported, since the two packages'
// parameter-generation steps are independent entry points (abe.Setup
// does not depend on having run ibe.Setup first) that happen to share a
// construction.
func findEmbeddingPrime(q *big.Int, pBits int) (p *big.Int, r *big.Int, err error) {
	twelveQ := new(big.Int).Mul(big.NewInt(12), q)

	target := new(big.Int).Lsh(big.NewInt(1), uint(pBits-1))
	rStart := new(big.Int).Add(target, big.NewInt(1))
	rStart.Div(rStart, twelveQ)
	if rStart.Sign() == 0 {
		rStart.SetInt64(1)
	}

	for i := int64(0); i < int64(randutil.SolinasAttemptLimit)*50; i++ {
		candidateR := new(big.Int).Add(rStart, big.NewInt(i))
		candidateP := new(big.Int).Mul(twelveQ, candidateR)
		candidateP.Sub(candidateP, big.NewInt(1))

		if candidateP.BitLen() != pBits {
			if candidateP.BitLen() > pBits {
				break
			}
			continue
		}
		if candidateP.Bit(0) == 0 {
			continue
		}
		mod4 := new(big.Int).Mod(candidateP, big.NewInt(4))
		if mod4.Int64() != 3 {
			continue
		}
		if candidateP.ProbablyPrime(30) {
			return candidateP, candidateR, nil
		}
	}

	return nil, nil, status.New(status.SolinasGenFailed)
}

// messageBlockSize returns the number of whole bytes strictly less than
// log2(p), so every block, read as a big-endian integer, is guaranteed
// less than p: the split spec.md section 9 requires in place of the
// source's single-big-integer packing. The fallback to one byte only
// matters for p below 256, far under the smallest table entry (512
// bits) Setup ever produces.
func messageBlockSize(p *big.Int) int {
	bits := p.BitLen() - 1
	if bits < 8 {
		bits = 8
	}
	return bits / 8
}

// Encrypt annotates tree with per-node Shamir shares of a fresh exponent
// s, splits message into blocks each strictly smaller than p, and masks
// each block with egg_alpha^s.
func Encrypt(message []byte, tree *accesstree.Node, pk PublicKey) (EncryptedMessage, error) {
	if message == nil {
		return EncryptedMessage{}, status.New(status.MessageNull)
	}
	if len(message) == 0 {
		return EncryptedMessage{}, status.New(status.MessageLengthZero)
	}

	s, err := randutil.RandomInRange(big.NewInt(1), pk.Q)
	if err != nil {
		return EncryptedMessage{}, err
	}

	shares, err := accesstree.ComputeShares(tree, s, pk.Q)
	if err != nil {
		return EncryptedMessage{}, err
	}

	leaves := make(map[*accesstree.Node]leafShare, len(shares))
	for node, share := range shares {
		if !node.IsLeaf() {
			continue
		}
		attrPoint, err := hashfn.HashToPoint([]byte(node.Attribute), pk.Q, pk.E, pk.HashFunc)
		if err != nil {
			return EncryptedMessage{}, err
		}
		leaves[node] = leafShare{
			Cy:  pk.G.ScalarMul(share, pk.E),
			CyP: attrPoint.ScalarMul(share, pk.E),
		}
	}

	eggAlphaS, err := pk.EggAlpha.Exp(s)
	if err != nil {
		return EncryptedMessage{}, err
	}

	blockSz := messageBlockSize(pk.E.P)
	blocks := splitIntoBlocks(message, blockSz)

	ctildes := make([]*field.Element, len(blocks))
	for i, block := range blocks {
		m := new(big.Int).SetBytes(block)
		blockField := field.FromReal(m, pk.E.P)
		ctildes[i] = blockField.Mul(eggAlphaS)
	}

	c := pk.H.ScalarMul(s, pk.E)

	return EncryptedMessage{
		Tree:    tree,
		Ctilde:  ctildes,
		C:       c,
		Leaves:  leaves,
		BlockSz: blockSz,
		MsgLen:  len(message),
	}, nil
}

// KeyGen issues a SecretKey over attrs: a fresh r ties D to the master
// secret, and each attribute gets its own (Dj, Dj') pair tied to the
// same r but a fresh per-attribute rj.
func KeyGen(master MasterKey, attrs []string) (SecretKey, error) {
	pk := master.PK
	ec := pk.E

	r, err := randutil.RandomInRange(big.NewInt(1), pk.Q)
	if err != nil {
		return SecretKey{}, err
	}

	rg := pk.G.ScalarMul(r, ec)
	numerator := master.GAlpha.Add(rg, ec)

	betaInv := new(big.Int).ModInverse(master.Beta, pk.Q)
	if betaInv == nil {
		return SecretKey{}, status.New(status.InverseNonInvertible)
	}
	d := numerator.ScalarMul(betaInv, ec)

	attributes := make(map[string]attributeKey, len(attrs))
	for _, attr := range attrs {
		rj, err := randutil.RandomInRange(big.NewInt(1), pk.Q)
		if err != nil {
			return SecretKey{}, err
		}

		attrPoint, err := hashfn.HashToPoint([]byte(attr), pk.Q, ec, pk.HashFunc)
		if err != nil {
			return SecretKey{}, err
		}

		dj := rg.Add(attrPoint.ScalarMul(rj, ec), ec)
		djPrime := pk.G.ScalarMul(rj, ec)

		attributes[attr] = attributeKey{D: dj, DP: djPrime}
	}

	return SecretKey{D: d, Attributes: attributes}, nil
}

// Decrypt recovers the plaintext blocks of ct under sk, failing with
// IllegalPrivateKey if sk's attributes do not satisfy ct's tree, and
// DecryptionFailed if the pairing recombination is otherwise invalid.
func Decrypt(ct EncryptedMessage, sk SecretKey, pk PublicKey) ([]byte, error) {
	if !accesstree.Satisfy(ct.Tree, sk.AttributeSet()) {
		return nil, status.New(status.IllegalPrivateKey)
	}

	a, err := decryptNode(ct.Tree, ct, sk, pk)
	if err != nil {
		return nil, status.New(status.DecryptionFailed)
	}

	eCD, err := pairing.Tate(ct.C, curve.Distort(sk.D, pk.E), pairing.EmbeddingDegree, pk.Q, pk.E)
	if err != nil {
		return nil, status.New(status.DecryptionFailed)
	}

	eCDInv, err := eCD.Inverse()
	if err != nil {
		return nil, status.New(status.DecryptionFailed)
	}

	// unmask = A / e(C,D) = e(g,g)^(r*s) / e(g,g)^((alpha+r)*s)
	//        = e(g,g)^(-alpha*s), the factor that cancels Ctilde's mask.
	unmask := a.Mul(eCDInv)

	out := make([]byte, 0, ct.MsgLen)
	for i, block := range ct.Ctilde {
		m := block.Mul(unmask)
		if m.B.Sign() != 0 {
			return nil, status.New(status.DecryptionFailed)
		}

		width := ct.BlockSz
		if remaining := ct.MsgLen - i*ct.BlockSz; remaining < width {
			width = remaining
		}

		blockBytes := leftPad(m.A.Bytes(), width)
		out = append(out, blockBytes...)
	}

	return out, nil
}

// decryptNode implements the recursive DecryptNode of spec.md section
// 4.8: a leaf returns e(Dj,Cy)/e(Dj',Cy'); an internal node of threshold
// k recombines any k successful children via Lagrange interpolation at
// 0, failing if fewer than k children decrypt.
func decryptNode(node *accesstree.Node, ct EncryptedMessage, sk SecretKey, pk PublicKey) (*field.Element, error) {
	if node.IsLeaf() {
		attr, ok := sk.Attributes[node.Attribute]
		if !ok {
			return nil, status.New(status.IllegalPrivateKey)
		}
		leaf, ok := ct.Leaves[node]
		if !ok {
			return nil, status.New(status.IllegalCiphertext)
		}

		num, err := pairing.Tate(attr.D, curve.Distort(leaf.Cy, pk.E), pairing.EmbeddingDegree, pk.Q, pk.E)
		if err != nil {
			return nil, err
		}
		den, err := pairing.Tate(attr.DP, curve.Distort(leaf.CyP, pk.E), pairing.EmbeddingDegree, pk.Q, pk.E)
		if err != nil {
			return nil, err
		}
		return num.Div(den)
	}

	type childResult struct {
		index  int
		result *field.Element
	}

	var successes []childResult
	for i, child := range node.Children {
		res, err := decryptNode(child, ct, sk, pk)
		if err != nil {
			continue
		}
		successes = append(successes, childResult{index: i + 1, result: res})
		if len(successes) == node.Threshold {
			break
		}
	}

	if len(successes) < node.Threshold {
		return nil, status.New(status.DecryptionFailed)
	}

	s := make([]int, len(successes))
	for i, sr := range successes {
		s[i] = sr.index
	}

	acc := field.One(pk.E.P)
	for _, sr := range successes {
		coeff, err := accesstree.LagrangeCoefficient(sr.index, s, pk.Q)
		if err != nil {
			return nil, err
		}
		term, err := sr.result.Exp(coeff)
		if err != nil {
			return nil, err
		}
		acc = acc.Mul(term)
	}

	return acc, nil
}

func splitIntoBlocks(message []byte, blockSz int) [][]byte {
	var blocks [][]byte
	for i := 0; i < len(message); i += blockSz {
		end := i + blockSz
		if end > len(message) {
			end = len(message)
		}
		blocks = append(blocks, message[i:end])
	}
	return blocks
}

func leftPad(b []byte, width int) []byte {
	if len(b) >= width {
		return b[len(b)-width:]
	}
	out := make([]byte, width)
	copy(out[width-len(b):], b)
	return out
}
