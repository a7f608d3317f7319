package envelope

import (
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// ParseInput turns a user supplied transaction string into bytes. A 0x
// prefix or an all hex charset selects hex, everything else is read as
// standard base64.
func ParseInput(input string) ([]byte, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return nil, ErrInputTooShort
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return decodeHex(s[2:])
	}
	if isHex(s) {
		return decodeHex(s)
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Errorf("Failed to decode base64: %s", err)
	}
	return data, nil
}

func decodeHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, errors.New("Failed to decode hex: odd number of digits")
	}
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Errorf("Failed to decode hex: %s", err)
	}
	return data, nil
}

func isHex(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
