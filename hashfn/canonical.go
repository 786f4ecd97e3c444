package hashfn

import (
	"math/big"

	"github.com/battila7/cryptid-native/field"
	"github.com/battila7/cryptid-native/status"
)

// Canonical serializes an F_p^2 element (a,b) as a fixed-width
// big-endian concatenation, each component zero-padded to
// ceil(log2(p)/8) octets. order selects (a,b) when 0 and (b,a) when 1,
// matching CryptID.c's use of order=1 when canonicalizing a pairing
// output for IBE's symmetric-key derivation step.
func Canonical(p *big.Int, v *field.Element, order int) []byte {
	width := (p.BitLen() + 7) / 8

	aBytes := leftPad(v.A.Bytes(), width)
	bBytes := leftPad(v.B.Bytes(), width)

	out := make([]byte, 0, 2*width)
	if order == 0 {
		out = append(out, aBytes...)
		out = append(out, bBytes...)
	} else {
		out = append(out, bBytes...)
		out = append(out, aBytes...)
	}
	return out
}

// ParseCanonical is the inverse of Canonical, recovering the F_p^2
// element from its fixed-width serialization.
func ParseCanonical(data []byte, p *big.Int, order int) (*field.Element, error) {
	width := (p.BitLen() + 7) / 8
	if len(data) != 2*width {
		return nil, status.New(status.IllegalCiphertext)
	}

	first := new(big.Int).SetBytes(data[:width])
	second := new(big.Int).SetBytes(data[width:])

	if order == 0 {
		return field.New(first, second, p), nil
	}
	return field.New(second, first, p), nil
}

func leftPad(b []byte, width int) []byte {
	if len(b) >= width {
		return b[len(b)-width:]
	}
	out := make([]byte, width)
	copy(out[width-len(b):], b)
	return out
}
