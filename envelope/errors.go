package envelope

import (
	"github.com/pkg/errors"
)

var (
	ErrInputTooShort  = errors.New("input too short")
	ErrUnexpectedType = errors.New("unexpected tx type")
	ErrTrailingBytes  = errors.New("unexpected trailing data after transaction")

	// ErrSignedNotAllowed rejects a well formed signed envelope when the
	// policy only accepts unsigned ones.
	ErrSignedNotAllowed = errors.New("signed transactions are not allowed")
)

// UnsupportedKindError is returned for a well formed envelope whose kind is
// not accepted by the decode policy.
type UnsupportedKindError struct {
	Kind Kind
}

func (e *UnsupportedKindError) Error() string {
	return "Unsupported variant " + e.Kind.String()
}

// IsUnsupported reports whether err comes from the decode policy rather than
// from malformed input.
func IsUnsupported(err error) bool {
	var target *UnsupportedKindError
	return errors.As(err, &target)
}
