// Package registry maps (chain, address) pairs to contract families and token
// metadata. A ContractRegistry is built once through a Builder and is read
// only afterwards, so one instance can be shared by every concurrent decode.
package registry

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ContractType tags one on-chain contract family. Tags are declared as
// constants next to the protocol that owns them and must be unique.
type ContractType string

// WellKnownRole names a semantic role such as the Permit2 router or the
// wrapped native token.
type WellKnownRole string

const (
	RolePermit2 WellKnownRole = "permit2"
	RoleWETH    WellKnownRole = "weth"
)

// Key identifies a deployment.
type Key struct {
	ChainID uint64
	Address common.Address
}

func NewKey(chainID uint64, addr common.Address) Key {
	return Key{ChainID: chainID, Address: addr}
}

// TokenMetadata describes a fungible token deployment.
type TokenMetadata struct {
	Symbol          string `json:"symbol" mapstructure:"symbol"`
	Name            string `json:"name" mapstructure:"name"`
	ErcStandard     string `json:"erc_standard" mapstructure:"erc_standard"`
	ContractAddress string `json:"contract_address" mapstructure:"contract_address"`
	Decimals        uint8  `json:"decimals" mapstructure:"decimals"`
}

func (t TokenMetadata) Address() common.Address {
	return common.HexToAddress(t.ContractAddress)
}

func (t TokenMetadata) valid() bool {
	return t.Symbol != "" && common.IsHexAddress(strings.TrimSpace(t.ContractAddress))
}

// Lookup is the read side shared by ContractRegistry and LayeredRegistry.
// Visualizers only ever depend on this interface.
type Lookup interface {
	ContractType(chainID uint64, addr common.Address) (ContractType, bool)
	Token(chainID uint64, addr common.Address) (TokenMetadata, bool)
	WellKnown(role WellKnownRole, chainID uint64) (common.Address, bool)
}
