// Package ibe implements the Boneh-Franklin Identity-Based Encryption
// scheme (C9) exactly as RFC-5091 describes it, wiring together curve,
// field, pairing, hashfn and randutil. Setup takes an explicit io.Reader
// entropy source, the style the teacher repo's HIBE relative uses, so
// that a fixed seeded reader makes the Solinas-prime draw reproducible in
// tests (spec.md section 8 scenario 6); the generator point and master
// secret are drawn from randutil's own source.
package ibe

import (
	"io"
	"math/big"

	"github.com/battila7/cryptid-native/curve"
	"github.com/battila7/cryptid-native/hashfn"
	"github.com/battila7/cryptid-native/pairing"
	"github.com/battila7/cryptid-native/randutil"
	"github.com/battila7/cryptid-native/status"
)

// PublicParameters is the PP any identity-holder needs to encrypt: the
// curve, the subgroup order, a generator P, P_pub = s*P, and the
// security level's hash function.
type PublicParameters struct {
	E        curve.EllipticCurve
	Q        *big.Int
	P        curve.AffinePoint
	PPub     curve.AffinePoint
	HashFunc hashfn.HashFunction
}

// MasterSecret is the Private Key Generator's s, with 2 <= s < Q.
type MasterSecret struct {
	S *big.Int
}

// PrivateKey is a per-identity key s*Q_id, issued by Extract.
type PrivateKey struct {
	Point curve.AffinePoint
}

// CipherText is the (U,V,W) triple Encrypt produces.
type CipherText struct {
	U curve.AffinePoint
	V []byte
	W []byte
}

// Setup runs RFC-5091's parameter generation: draw a Solinas prime q,
// then a cofactor r such that p = 12rq-1 is prime and of the target bit
// length, build E(0,1,p), find a generator P of the order-q subgroup by
// cofactor-multiplying a random point until the result is non-infinity,
// draw a master secret s in [2,q), and set P_pub = s*P. random is the
// entropy source for the Solinas-prime draw only; the random point and s
// come from randutil.RandomAffinePoint and randutil.RandomInRange, which
// do not take a reader.
func Setup(random io.Reader, level randutil.SecurityLevel) (PublicParameters, MasterSecret, error) {
	params, err := randutil.Params(level)
	if err != nil {
		return PublicParameters{}, MasterSecret{}, err
	}

	q, err := randutil.RandomSolinasPrime(random, params.QBits, randutil.SolinasAttemptLimit)
	if err != nil {
		return PublicParameters{}, MasterSecret{}, err
	}

	p, _, err := findEmbeddingPrime(q, params.PBits)
	if err != nil {
		return PublicParameters{}, MasterSecret{}, err
	}

	ec := curve.NewSupersingular(p)

	cofactor := new(big.Int).Add(p, big.NewInt(1))
	cofactor.Div(cofactor, q)

	var generator curve.AffinePoint
	for attempt := 0; attempt < randutil.PointAttemptLimit; attempt++ {
		candidate, err := randutil.RandomAffinePoint(ec, randutil.PointAttemptLimit)
		if err != nil {
			return PublicParameters{}, MasterSecret{}, err
		}
		generator = candidate.ScalarMul(cofactor, ec)
		if !generator.IsInfinity {
			break
		}
	}
	if generator.IsInfinity {
		return PublicParameters{}, MasterSecret{}, status.New(status.PointGenFailed)
	}

	s, err := randutil.RandomInRange(big.NewInt(2), q)
	if err != nil {
		return PublicParameters{}, MasterSecret{}, err
	}

	pPub := generator.ScalarMul(s, ec)

	pp := PublicParameters{
		E:        ec,
		Q:        q,
		P:        generator,
		PPub:     pPub,
		HashFunc: params.Hash,
	}
	return pp, MasterSecret{S: s}, nil
}

// findEmbeddingPrime searches for a cofactor r such that p = 12rq-1 is
// prime and has exactly pBits bits, per the 12rq-1 construction spec.md
// section 2 describes for supersingular curves with embedding degree 2.
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

// Extract derives the private key for id: Q_id = hashToPoint(id), and
// the key is s*Q_id.
func Extract(id []byte, pp PublicParameters, master MasterSecret) (PrivateKey, error) {
	if id == nil {
		return PrivateKey{}, status.New(status.IdentityNull)
	}
	if len(id) == 0 {
		return PrivateKey{}, status.New(status.IdentityLengthZero)
	}

	qID, err := hashfn.HashToPoint(id, pp.Q, pp.E, pp.HashFunc)
	if err != nil {
		return PrivateKey{}, err
	}

	return PrivateKey{Point: qID.ScalarMul(master.S, pp.E)}, nil
}

// Encrypt implements RFC-5091's BF encryption: derive a random pad rho
// and a deterministic exponent l bound to (rho, H(M)), set U = l*P,
// derive a one-time pad from the pairing value e(P_pub, Q_id)^l, and
// mask rho (into V) and M (into W) with it.
func Encrypt(message []byte, id []byte, pp PublicParameters) (CipherText, error) {
	if message == nil {
		return CipherText{}, status.New(status.MessageNull)
	}
	if len(message) == 0 {
		return CipherText{}, status.New(status.MessageLengthZero)
	}
	if id == nil {
		return CipherText{}, status.New(status.IdentityNull)
	}
	if len(id) == 0 {
		return CipherText{}, status.New(status.IdentityLengthZero)
	}

	qID, err := hashfn.HashToPoint(id, pp.Q, pp.E, pp.HashFunc)
	if err != nil {
		return CipherText{}, err
	}

	rho, err := randutil.RandomInRange(big.NewInt(0), new(big.Int).Lsh(big.NewInt(1), uint(pp.HashFunc.OutputLen*8)))
	if err != nil {
		return CipherText{}, err
	}
	rhoBytes := leftPad(rho.Bytes(), pp.HashFunc.OutputLen)

	t := pp.HashFunc.Hash(message)
	seed := append(append([]byte{}, rhoBytes...), t...)
	l := hashfn.HashToRange(seed, pp.Q, pp.HashFunc)

	u := pp.P.ScalarMul(l, pp.E)

	qIDDistorted := curve.Distort(qID, pp.E)
	theta, err := pairing.Tate(pp.PPub, qIDDistorted, pairing.EmbeddingDegree, pp.Q, pp.E)
	if err != nil {
		return CipherText{}, err
	}
	thetaPrime, err := theta.Exp(l)
	if err != nil {
		return CipherText{}, err
	}

	z := hashfn.Canonical(pp.E.P, thetaPrime, 1)
	w := pp.HashFunc.Hash(z)

	v := xorBytes(w, rhoBytes)

	pad := hashfn.HashBytes(len(message), rhoBytes, pp.HashFunc)
	wOut := xorBytes(pad, message)

	return CipherText{U: u, V: v, W: wOut}, nil
}

// Decrypt implements RFC-5091's BF decryption, including the mandatory
// consistency check of step 3: recomputing l from the recovered rho and
// H(M) and comparing l*P against the ciphertext's U. A U at infinity is
// rejected up front with IllegalCiphertext; every later failure,
// including inconsistency, surfaces uniformly as DecryptionFailed so the
// caller cannot distinguish which check failed.
func Decrypt(ct CipherText, sk PrivateKey, pp PublicParameters) ([]byte, error) {
	if ct.U.IsInfinity {
		return nil, status.New(status.IllegalCiphertext)
	}

	theta, err := pairing.Tate(ct.U, curve.Distort(sk.Point, pp.E), pairing.EmbeddingDegree, pp.Q, pp.E)
	if err != nil {
		return nil, status.New(status.DecryptionFailed)
	}

	z := hashfn.Canonical(pp.E.P, theta, 1)
	w := pp.HashFunc.Hash(z)

	if len(w) != len(ct.V) {
		return nil, status.New(status.DecryptionFailed)
	}
	rhoBytes := xorBytes(w, ct.V)

	pad := hashfn.HashBytes(len(ct.W), rhoBytes, pp.HashFunc)
	message := xorBytes(pad, ct.W)

	t := pp.HashFunc.Hash(message)
	seed := append(append([]byte{}, rhoBytes...), t...)
	l := hashfn.HashToRange(seed, pp.Q, pp.HashFunc)

	check := pp.P.ScalarMul(l, pp.E)
	if !check.Equal(ct.U) {
		return nil, status.New(status.DecryptionFailed)
	}

	return message, nil
}

func xorBytes(a, b []byte) []byte {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = a[i] ^ b[i]
	}
	return out
}

func leftPad(b []byte, width int) []byte {
	if len(b) >= width {
		return b[len(b)-width:]
	}
	out := make([]byte, width)
	copy(out[width-len(b):], b)
	return out
}
