package common

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	EtherDecimals = 18
	GweiDecimals  = 9
)

// FormatUnits renders value scaled down by 10^decimals as an exact decimal
// string. Trailing zeros are trimmed and nothing is rounded.
// Example:
// - FormatUnits(1100, 3) = "1.1"
// - FormatUnits(1100, 2) = "11"
// - FormatUnits(0, 18) = "0"
func FormatUnits(value *big.Int, decimals uint8) string {
	if value == nil {
		return "0"
	}
	return decimal.NewFromBigInt(value, -int32(decimals)).String()
}

// FormatEther renders a wei amount in ether.
func FormatEther(wei *big.Int) string {
	return FormatUnits(wei, EtherDecimals)
}

// FormatGwei renders a wei amount in gwei.
func FormatGwei(wei *big.Int) string {
	return FormatUnits(wei, GweiDecimals)
}

// ParseUnits is the inverse of FormatUnits. It fails when value carries more
// fractional digits than decimals allows.
func ParseUnits(value string, decimals uint8) (*big.Int, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't parse %q as a decimal", value)
	}
	scaled := d.Shift(int32(decimals))
	if !scaled.Equal(scaled.Truncate(0)) {
		return nil, errors.Errorf("%q has more than %d decimals", value, decimals)
	}
	return scaled.BigInt(), nil
}

func StringToBig(input string) *big.Int {
	resultBig, ok := big.NewInt(0).SetString(input, 10)
	if !ok {
		return big.NewInt(0)
	}
	return resultBig
}

// MaxUint returns 2^bits - 1.
func MaxUint(bits uint) *big.Int {
	one := big.NewInt(1)
	return new(big.Int).Sub(new(big.Int).Lsh(one, bits), one)
}

// IsMaxUint reports whether value is the all-ones sentinel for the width.
func IsMaxUint(value *big.Int, bits uint) bool {
	return value != nil && value.Cmp(MaxUint(bits)) == 0
}
