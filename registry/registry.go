package registry

import (
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common"
)

type wellKnownKey struct {
	role    WellKnownRole
	chainID uint64
	chained bool
}

// ContractRegistry is immutable once returned by Builder.Build.
type ContractRegistry struct {
	types     map[Key]ContractType
	byType    map[ContractType][]Key
	tokens    map[Key]TokenMetadata
	wellKnown map[wellKnownKey]common.Address
}

// Empty returns a registry with no entries.
func Empty() *ContractRegistry {
	r, _ := NewBuilder().Build()
	return r
}

func (r *ContractRegistry) ContractType(chainID uint64, addr common.Address) (ContractType, bool) {
	if r == nil {
		return "", false
	}
	ct, found := r.types[NewKey(chainID, addr)]
	return ct, found
}

// Addresses returns every deployment registered for ct, ordered by chain id.
func (r *ContractRegistry) Addresses(ct ContractType) []Key {
	if r == nil {
		return nil
	}
	keys := append([]Key(nil), r.byType[ct]...)
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ChainID != keys[j].ChainID {
			return keys[i].ChainID < keys[j].ChainID
		}
		return keys[i].Address.Cmp(keys[j].Address) < 0
	})
	return keys
}

func (r *ContractRegistry) Token(chainID uint64, addr common.Address) (TokenMetadata, bool) {
	if r == nil {
		return TokenMetadata{}, false
	}
	t, found := r.tokens[NewKey(chainID, addr)]
	return t, found
}

// WellKnown returns the address playing role on chainID. A chain specific
// entry shadows the universal one.
func (r *ContractRegistry) WellKnown(role WellKnownRole, chainID uint64) (common.Address, bool) {
	if r == nil {
		return common.Address{}, false
	}
	if addr, found := r.wellKnown[wellKnownKey{role: role, chainID: chainID, chained: true}]; found {
		return addr, true
	}
	addr, found := r.wellKnown[wellKnownKey{role: role}]
	return addr, found
}

// Types returns every contract type with at least one deployment.
func (r *ContractRegistry) Types() []ContractType {
	if r == nil {
		return nil
	}
	res := make([]ContractType, 0, len(r.byType))
	for ct := range r.byType {
		res = append(res, ct)
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}

func (r *ContractRegistry) String() string {
	return fmt.Sprintf(
		"ContractRegistry{contracts: %d, types: %d, tokens: %d, well-known: %d}",
		len(r.types), len(r.byType), len(r.tokens), len(r.wellKnown),
	)
}
