package txanalyzer

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	vscommon "github.com/tranvictor/visualsign/common"
	"github.com/tranvictor/visualsign/networks"
	"github.com/tranvictor/visualsign/registry"
	"github.com/tranvictor/visualsign/util/addrbook"
)

// AnalysisContext is what every decoder of a single transaction gets to see:
// the chain, the layered registry of the request and an address resolver.
//
// A context is created per decode and is never shared between requests.
type AnalysisContext struct {
	ChainID  uint64
	Registry registry.Lookup
	Resolver addrbook.AddressResolver

	// Target and Value describe the call being decoded. Target is the zero
	// address for deployments.
	Target common.Address
	Value  *big.Int
}

// NewAnalysisContext creates a context whose resolver answers from lookup.
func NewAnalysisContext(chainID uint64, lookup registry.Lookup) *AnalysisContext {
	return NewAnalysisContextWithResolver(chainID, lookup, addrbook.NewRegistry(chainID, lookup))
}

// NewAnalysisContextWithResolver creates a context with a custom
// AddressResolver. Tests use it to inject an addrbook.Map.
func NewAnalysisContextWithResolver(chainID uint64, lookup registry.Lookup, res addrbook.AddressResolver) *AnalysisContext {
	if lookup == nil {
		lookup = registry.Empty()
	}
	return &AnalysisContext{
		ChainID:  chainID,
		Registry: lookup,
		Resolver: res,
	}
}

// ForCall returns a copy of ctx describing a call to target. Nested
// decoders use it for inner calls.
func (ctx *AnalysisContext) ForCall(target common.Address, value *big.Int) *AnalysisContext {
	cpy := *ctx
	cpy.Target = target
	cpy.Value = value
	return &cpy
}

// NetworkName is the display name of the context's chain.
func (ctx *AnalysisContext) NetworkName() string {
	return networks.DisplayName(ctx.ChainID)
}

// ResolveAddress names addr using the context's resolver.
func (ctx *AnalysisContext) ResolveAddress(addr common.Address) vscommon.Address {
	if ctx.Resolver == nil {
		return vscommon.Address{Address: addr.Hex(), Desc: vscommon.UnknownDesc}
	}
	return ctx.Resolver.Resolve(addr.Hex())
}

// ContractType is the registered type of addr on the context's chain.
func (ctx *AnalysisContext) ContractType(addr common.Address) (registry.ContractType, bool) {
	return ctx.Registry.ContractType(ctx.ChainID, addr)
}

// Token returns the metadata of a registered token on the context's chain.
func (ctx *AnalysisContext) Token(addr common.Address) (registry.TokenMetadata, bool) {
	return ctx.Registry.Token(ctx.ChainID, addr)
}

// TokenSymbol falls back to the checksummed address.
func (ctx *AnalysisContext) TokenSymbol(addr common.Address) string {
	return registry.TokenSymbol(ctx.Registry, ctx.ChainID, addr)
}

// FormatTokenAmount renders amount in addr's units.
func (ctx *AnalysisContext) FormatTokenAmount(addr common.Address, amount *big.Int) (string, string, bool) {
	return registry.FormatTokenAmount(ctx.Registry, ctx.ChainID, addr, amount)
}

// WellKnown returns the address holding role on the context's chain.
func (ctx *AnalysisContext) WellKnown(role registry.WellKnownRole) (common.Address, bool) {
	return ctx.Registry.WellKnown(role, ctx.ChainID)
}
