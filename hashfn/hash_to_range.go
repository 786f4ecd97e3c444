package hashfn

import "math/big"

// HashToRange implements RFC-5091 section 4.1: iterate h over (t||s) for
// t=0,1,2,... until at least ceil(log2(p)/8) octets have been produced
// (whole hash outputs), concatenate them into a big-endian integer v,
// and return v mod p.
func HashToRange(s []byte, p *big.Int, h HashFunction) *big.Int {
	neededBytes := (p.BitLen() + 7) / 8
	iterations := (neededBytes + h.OutputLen - 1) / h.OutputLen
	if iterations < 1 {
		iterations = 1
	}

	buf := make([]byte, 0, iterations*h.OutputLen)
	for t := 0; t < iterations; t++ {
		input := make([]byte, 0, len(s)+1)
		input = append(input, byte(t))
		input = append(input, s...)
		buf = append(buf, h.Hash(input)...)
	}

	v := new(big.Int).SetBytes(buf)
	return v.Mod(v, p)
}
