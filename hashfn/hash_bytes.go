package hashfn

// HashBytes is the keyed pseudo-random byte generator of RFC-5091 section
// 4.2.2: iterate h over seed concatenated with an incrementing counter
// byte until n octets have been produced, then truncate to exactly n.
func HashBytes(n int, seed []byte, h HashFunction) []byte {
	out := make([]byte, 0, n+h.OutputLen)

	for counter := 0; len(out) < n; counter++ {
		input := make([]byte, 0, len(seed)+1)
		input = append(input, seed...)
		input = append(input, byte(counter))
		out = append(out, h.Hash(input)...)
	}

	return out[:n]
}
