package networks

import (
	"time"
)

// Network describes one EVM chain. Name is the canonical identifier in
// FAMILY_NETWORK form (e.g. ETHEREUM_MAINNET); DisplayName is what a payload
// shows.
type Network interface {
	GetName() string
	GetDisplayName() string
	GetChainID() uint64
	GetAlternativeNames() []string
	GetNativeTokenSymbol() string
	GetNativeTokenDecimal() uint64
	GetBlockTime() time.Duration // in second
	IsTestnet() bool

	MarshalJSON() ([]byte, error)
}
