package txanalyzer

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrCalldataTooShort = errors.New("calldata too short for function selector")
	ErrSelectorNotFound = errors.New("function selector not found in ABI")
)

// DecodeError is returned when a selector matched but its parameters could
// not be unpacked from the calldata.
type DecodeError struct {
	Method string
	Types  []string
	Data   []byte
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf(
		"failed to decode %s(%s) params from %d bytes 0x%x: %s",
		e.Method,
		strings.Join(e.Types, ","),
		len(e.Data),
		e.Data,
		e.Err,
	)
}

func (e *DecodeError) Unwrap() error { return e.Err }
