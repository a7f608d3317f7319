package registry

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	vscommon "github.com/tranvictor/visualsign/common"
)

// TokenSymbol returns the registered symbol, or the checksummed address when
// the token is unknown.
func TokenSymbol(l Lookup, chainID uint64, addr common.Address) string {
	if l != nil {
		if t, found := l.Token(chainID, addr); found {
			return t.Symbol
		}
	}
	return addr.Hex()
}

// FormatTokenAmount renders amount in the token's units. For unknown tokens
// the raw integer is returned with the checksummed address as symbol and
// found is false.
func FormatTokenAmount(l Lookup, chainID uint64, addr common.Address, amount *big.Int) (value string, symbol string, found bool) {
	if l != nil {
		if t, ok := l.Token(chainID, addr); ok {
			return vscommon.FormatUnits(amount, t.Decimals), t.Symbol, true
		}
	}
	if amount == nil {
		return "0", addr.Hex(), false
	}
	return amount.String(), addr.Hex(), false
}
