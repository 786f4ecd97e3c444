// Package status defines the single error-kind enum shared across the
// cryptid-native core, and an Error type that pairs a Kind with an
// optional underlying cause.
package status

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind enumerates the ways a core operation can fail. Callers branch on
// Kind; the wrapped cause (if any) is for logs, not for decision-making.
type Kind int

const (
	OK Kind = iota
	SolinasGenFailed
	PointGenFailed
	PrimalityTestFailed
	IllegalPublicParameters
	IllegalPrivateKey
	IllegalCiphertext
	MessageNull
	MessageLengthZero
	IdentityNull
	IdentityLengthZero
	DecryptionFailed
	PairingDegenerate
	HashToPointFailed
	InverseNonInvertible
)

func (k Kind) String() string {
	switch k {
	case OK:
		return "OK"
	case SolinasGenFailed:
		return "SolinasGenFailed"
	case PointGenFailed:
		return "PointGenFailed"
	case PrimalityTestFailed:
		return "PrimalityTestFailed"
	case IllegalPublicParameters:
		return "IllegalPublicParameters"
	case IllegalPrivateKey:
		return "IllegalPrivateKey"
	case IllegalCiphertext:
		return "IllegalCiphertext"
	case MessageNull:
		return "MessageNull"
	case MessageLengthZero:
		return "MessageLengthZero"
	case IdentityNull:
		return "IdentityNull"
	case IdentityLengthZero:
		return "IdentityLengthZero"
	case DecryptionFailed:
		return "DecryptionFailed"
	case PairingDegenerate:
		return "PairingDegenerate"
	case HashToPointFailed:
		return "HashToPointFailed"
	case InverseNonInvertible:
		return "InverseNonInvertible"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error pairs a Kind with the underlying cause that produced it, if any.
type Error struct {
	Kind  Kind
	cause error
}

func New(kind Kind) *Error {
	return &Error{Kind: kind}
}

func Wrap(kind Kind, cause error) *Error {
	if cause == nil {
		return New(kind)
	}
	return &Error{Kind: kind, cause: errors.WithStack(cause)}
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}
