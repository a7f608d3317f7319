package addrbook

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	vscommon "github.com/tranvictor/visualsign/common"
	"github.com/tranvictor/visualsign/registry"
)

// Registry resolves addresses through a registry lookup scoped to one chain.
// Tokens resolve to their symbol, well-known addresses to their role and
// tagged contracts to their contract type.
type Registry struct {
	chainID uint64
	lookup  registry.Lookup
	roles   []registry.WellKnownRole
}

// NewRegistry returns a resolver for chainID. roles lists the well-known
// roles worth naming.
func NewRegistry(chainID uint64, lookup registry.Lookup, roles ...registry.WellKnownRole) AddressResolver {
	if len(roles) == 0 {
		roles = []registry.WellKnownRole{registry.RolePermit2, registry.RoleWETH}
	}
	return Registry{chainID: chainID, lookup: lookup, roles: roles}
}

func (r Registry) Resolve(addr string) vscommon.Address {
	if r.lookup == nil || !common.IsHexAddress(addr) {
		return vscommon.Address{Address: addr, Desc: vscommon.UnknownDesc}
	}
	a := common.HexToAddress(addr)
	if tok, found := r.lookup.Token(r.chainID, a); found {
		return vscommon.Address{Address: a.Hex(), Desc: tok.Symbol, Decimal: int64(tok.Decimals)}
	}
	for _, role := range r.roles {
		if wk, found := r.lookup.WellKnown(role, r.chainID); found && wk == a {
			return vscommon.Address{Address: a.Hex(), Desc: displayRole(role)}
		}
	}
	if ct, found := r.lookup.ContractType(r.chainID, a); found {
		return vscommon.Address{Address: a.Hex(), Desc: string(ct)}
	}
	return vscommon.Address{Address: a.Hex(), Desc: vscommon.UnknownDesc}
}

func displayRole(role registry.WellKnownRole) string {
	switch role {
	case registry.RolePermit2:
		return "Permit2"
	case registry.RoleWETH:
		return "WETH"
	default:
		return fmt.Sprint(role)
	}
}
