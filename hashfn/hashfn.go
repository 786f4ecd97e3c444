// Package hashfn implements the RFC-5091-shaped hash primitives (C7): a
// named, fixed-output-length hash capability, hashToRange, hashToPoint,
// the keyed byte-generator hashBytes, and the fixed-width canonical
// serialization of an F_p^2 element used by the IBE protocol layer.
package hashfn

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
)

// HashFunction is a small capability record over one of the supported
// SHA algorithms: a name, a fixed output length, and a pure hash(bytes)
// function. This is the tagged-variant-over-SHA design spec.md's design
// notes call for in place of dynamic dispatch.
type HashFunction struct {
	Name      string
	OutputLen int
	Hash      func([]byte) []byte
}

// SHA1 is SecurityLevel 0's legacy-only hash.
func SHA1() HashFunction {
	return HashFunction{Name: "SHA-1", OutputLen: sha1.Size, Hash: func(b []byte) []byte {
		sum := sha1.Sum(b)
		return sum[:]
	}}
}

// SHA224 is SecurityLevel 1's hash.
func SHA224() HashFunction {
	return HashFunction{Name: "SHA-224", OutputLen: sha256.Size224, Hash: func(b []byte) []byte {
		sum := sha256.Sum224(b)
		return sum[:]
	}}
}

// SHA256 is SecurityLevel 2's hash.
func SHA256() HashFunction {
	return HashFunction{Name: "SHA-256", OutputLen: sha256.Size, Hash: func(b []byte) []byte {
		sum := sha256.Sum256(b)
		return sum[:]
	}}
}

// SHA384 is SecurityLevel 3's hash.
func SHA384() HashFunction {
	return HashFunction{Name: "SHA-384", OutputLen: sha512.Size384, Hash: func(b []byte) []byte {
		sum := sha512.Sum384(b)
		return sum[:]
	}}
}

// SHA512 is SecurityLevel 4's hash.
func SHA512() HashFunction {
	return HashFunction{Name: "SHA-512", OutputLen: sha512.Size, Hash: func(b []byte) []byte {
		sum := sha512.Sum512(b)
		return sum[:]
	}}
}
