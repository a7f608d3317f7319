package registry

import (
	"github.com/ethereum/go-ethereum/common"
)

// LayeredRegistry answers from the request layer first and the global layer
// second. It never writes to either.
type LayeredRegistry struct {
	global  *ContractRegistry
	request *ContractRegistry
}

// NewLayered composes global with an optional request-scoped registry.
func NewLayered(global, request *ContractRegistry) LayeredRegistry {
	return LayeredRegistry{global: global, request: request}
}

func (l LayeredRegistry) ContractType(chainID uint64, addr common.Address) (ContractType, bool) {
	if ct, found := l.request.ContractType(chainID, addr); found {
		return ct, true
	}
	return l.global.ContractType(chainID, addr)
}

func (l LayeredRegistry) Token(chainID uint64, addr common.Address) (TokenMetadata, bool) {
	if t, found := l.request.Token(chainID, addr); found {
		return t, true
	}
	return l.global.Token(chainID, addr)
}

func (l LayeredRegistry) WellKnown(role WellKnownRole, chainID uint64) (common.Address, bool) {
	if addr, found := l.request.WellKnown(role, chainID); found {
		return addr, true
	}
	return l.global.WellKnown(role, chainID)
}

func (l LayeredRegistry) Global() *ContractRegistry {
	return l.global
}

func (l LayeredRegistry) Request() *ContractRegistry {
	return l.request
}
