package randutil

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/battila7/cryptid-native/status"
)

// SolinasAttemptLimit bounds random_solinasPrime's retry loop, matching
// SOLINAS_GENERATION_ATTEMPT_LIMIT in
// _examples/original_source/src/CryptID.c.
const SolinasAttemptLimit = 100

var primalityTestRounds = 30

// RandomSolinasPrime searches for a Solinas prime 2^nbits ± 2^b ± 1 with
// 0 < b < nbits, trying random b and all four sign combinations each
// attempt, up to limit attempts. Only candidates of exactly nbits bits
// are tested, so every 2^nbits + 2^b ± 1 candidate is skipped and the
// result always has the form 2^nbits - 2^b ± 1. random is the entropy
// source; pass
// crypto/rand.Reader in production and a seeded reader in tests that need
// reproducible generation (spec.md section 8 scenario 6).
func RandomSolinasPrime(random io.Reader, nbits int, limit int) (*big.Int, error) {
	if nbits < 3 {
		return nil, status.New(status.SolinasGenFailed)
	}

	two := big.NewInt(2)
	high := new(big.Int).Exp(two, big.NewInt(int64(nbits)), nil)

	signPairs := [][2]int64{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

	for attempt := 0; attempt < limit; attempt++ {
		b, err := rand.Int(random, big.NewInt(int64(nbits-1)))
		if err != nil {
			return nil, status.Wrap(status.SolinasGenFailed, err)
		}
		b.Add(b, big.NewInt(1)) // b in [1, nbits-1]

		lowTerm := new(big.Int).Exp(two, b, nil)

		for _, signs := range signPairs {
			candidate := new(big.Int).Set(high)
			if signs[0] > 0 {
				candidate.Add(candidate, lowTerm)
			} else {
				candidate.Sub(candidate, lowTerm)
			}
			if signs[1] > 0 {
				candidate.Add(candidate, big.NewInt(1))
			} else {
				candidate.Sub(candidate, big.NewInt(1))
			}

			if candidate.Sign() <= 0 || candidate.BitLen() != nbits {
				continue
			}
			if candidate.ProbablyPrime(primalityTestRounds) {
				return candidate, nil
			}
		}
	}

	return nil, status.New(status.SolinasGenFailed)
}
