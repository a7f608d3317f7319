package registry

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

var ErrConflictingType = errors.New("address already registered with a different contract type")

// Builder collects registrations. It is not safe for concurrent use; the
// registry it builds is.
type Builder struct {
	reg  *ContractRegistry
	errs []error
}

func NewBuilder() *Builder {
	return &Builder{reg: &ContractRegistry{
		types:     map[Key]ContractType{},
		byType:    map[ContractType][]Key{},
		tokens:    map[Key]TokenMetadata{},
		wellKnown: map[wellKnownKey]common.Address{},
	}}
}

// RegisterContract tags addrs on chainID with ct. Registering the same
// (chain, address, type) twice is a no-op; a different type is an error
// reported by Build.
func (b *Builder) RegisterContract(chainID uint64, ct ContractType, addrs ...common.Address) *Builder {
	for _, addr := range addrs {
		key := NewKey(chainID, addr)
		if existing, found := b.reg.types[key]; found {
			if existing != ct {
				b.errs = append(b.errs, errors.Wrapf(
					ErrConflictingType, "%s on chain %d: %s vs %s", addr.Hex(), chainID, existing, ct,
				))
			}
			continue
		}
		b.reg.types[key] = ct
		b.reg.byType[ct] = append(b.reg.byType[ct], key)
	}
	return b
}

// RegisterContractOnChains tags the same address on every chain in chainIDs.
func (b *Builder) RegisterContractOnChains(ct ContractType, addr common.Address, chainIDs ...uint64) *Builder {
	for _, id := range chainIDs {
		b.RegisterContract(id, ct, addr)
	}
	return b
}

// RegisterToken records token metadata under its own contract address.
func (b *Builder) RegisterToken(chainID uint64, token TokenMetadata) *Builder {
	if !token.valid() {
		b.errs = append(b.errs, errors.Errorf(
			"invalid token metadata on chain %d: symbol %q, address %q",
			chainID, token.Symbol, token.ContractAddress,
		))
		return b
	}
	b.reg.tokens[NewKey(chainID, token.Address())] = token
	return b
}

// RegisterWellKnown records a universal address for role.
func (b *Builder) RegisterWellKnown(role WellKnownRole, addr common.Address) *Builder {
	b.reg.wellKnown[wellKnownKey{role: role}] = addr
	return b
}

// RegisterWellKnownOn records a chain specific address for role.
func (b *Builder) RegisterWellKnownOn(role WellKnownRole, chainID uint64, addr common.Address) *Builder {
	b.reg.wellKnown[wellKnownKey{role: role, chainID: chainID, chained: true}] = addr
	return b
}

// Build returns the registry. The builder must not be used afterwards.
func (b *Builder) Build() (*ContractRegistry, error) {
	if len(b.errs) == 1 {
		return nil, b.errs[0]
	}
	if len(b.errs) > 1 {
		return nil, errors.Wrapf(b.errs[0], "%d registration errors, first", len(b.errs))
	}
	reg := b.reg
	b.reg = nil
	return reg, nil
}

// CheckUniqueTypes fails when a contract type tag is declared twice.
func CheckUniqueTypes(types []ContractType) error {
	seen := map[ContractType]bool{}
	for _, ct := range types {
		if ct == "" {
			return errors.New("empty contract type tag")
		}
		if seen[ct] {
			return errors.Errorf("duplicate contract type tag %q", ct)
		}
		seen[ct] = true
	}
	return nil
}
