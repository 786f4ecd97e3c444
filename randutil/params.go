// Package randutil implements the Solinas-prime generator, ranged
// sampling, and random-point generation of C8, plus the SecurityLevel
// table that is the toolkit's only configuration surface (spec.md
// section 6).
package randutil

import (
	"github.com/battila7/cryptid-native/hashfn"
	"github.com/battila7/cryptid-native/status"
)

// SecurityLevel selects the (q bits, p bits, hash function) triple a
// Setup call uses, per spec.md section 4.5.
type SecurityLevel int

const (
	Lowest SecurityLevel = iota
	Level1
	Level2
	Level3
	Highest
)

// LevelParams is the fixed (q bits, p bits, hash) triple for a SecurityLevel.
type LevelParams struct {
	QBits int
	PBits int
	Hash  hashfn.HashFunction
}

var levelTable = map[SecurityLevel]LevelParams{
	Lowest:  {QBits: 160, PBits: 512, Hash: hashfn.SHA1()},
	Level1:  {QBits: 224, PBits: 1024, Hash: hashfn.SHA224()},
	Level2:  {QBits: 256, PBits: 1536, Hash: hashfn.SHA256()},
	Level3:  {QBits: 384, PBits: 3840, Hash: hashfn.SHA384()},
	Highest: {QBits: 512, PBits: 7680, Hash: hashfn.SHA512()},
}

// Params looks up the (q bits, p bits, hash) triple for level.
func Params(level SecurityLevel) (LevelParams, error) {
	p, ok := levelTable[level]
	if !ok {
		return LevelParams{}, status.New(status.IllegalPublicParameters)
	}
	return p, nil
}
