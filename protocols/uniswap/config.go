// Package uniswap decodes Universal Router command batches, V4 PoolManager
// calls and Permit2 allowance approvals.
package uniswap

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/tranvictor/visualsign/registry"
)

const (
	ContractTypeUniversalRouter registry.ContractType = "uniswap_universal_router"
	ContractTypeV4PoolManager   registry.ContractType = "uniswap_v4_pool_manager"
	ContractTypePermit2         registry.ContractType = "uniswap_permit2"
)

// Universal Router V1.2 deployments.
var universalRouters = map[uint64]common.Address{
	1:        common.HexToAddress("0x3fC91A3afd70395Cd496C647d5a6CC9D4B2b7FAD"),
	10:       common.HexToAddress("0xCb1355ff08Ab38bBCE60111F1bb2B784bE25D7e8"),
	56:       common.HexToAddress("0x4Dae2f939ACf50408e13d58534Ff8c2776d45265"),
	137:      common.HexToAddress("0xec7BE89e9d109e7e3Fec59c222CF297125FEFda2"),
	480:      common.HexToAddress("0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D"),
	8453:     common.HexToAddress("0x3fC91A3afd70395Cd496C647d5a6CC9D4B2b7FAD"),
	42161:    common.HexToAddress("0x5E325eDA8064b456f4781070C0738d849c824258"),
	42220:    common.HexToAddress("0x643770E279d5D0733F21d6DC03A8efbABf3255B4"),
	43114:    common.HexToAddress("0x4Dae2f939ACf50408e13d58534Ff8c2776d45265"),
	81457:    common.HexToAddress("0x643770E279d5D0733F21d6DC03A8efbABf3255B4"),
	11155111: common.HexToAddress("0x3fC91A3afd70395Cd496C647d5a6CC9D4B2b7FAD"),
}

var v4PoolManagers = map[uint64]common.Address{
	1:     common.HexToAddress("0x000000000004444c5dc75cB358380D2e3dE08A90"),
	8453:  common.HexToAddress("0x498581fF718922c3f8e6A244956aF099B2652b2b"),
	42161: common.HexToAddress("0x360E68faCcca8cA495c1B759Fd9EEe466db9FB32"),
}

// Permit2 shares one address on every chain.
var Permit2Address = common.HexToAddress("0x000000000022d473030f116ddee9f6b43ac78ba3")

var wethAddresses = map[uint64]common.Address{
	1:     common.HexToAddress("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2"),
	10:    common.HexToAddress("0x4200000000000000000000000000000000000006"),
	137:   common.HexToAddress("0x7ceb23fd6bc0add59e62ac25578270cff1b9f619"),
	8453:  common.HexToAddress("0x4200000000000000000000000000000000000006"),
	42161: common.HexToAddress("0x82af49447d8a07e3bd95bd0d56f35241523fbab1"),
}

// UniversalRouterAddress returns the router deployed on chainID.
func UniversalRouterAddress(chainID uint64) (common.Address, bool) {
	addr, found := universalRouters[chainID]
	return addr, found
}

// WETHAddress returns the canonical wrapped ether on chainID.
func WETHAddress(chainID uint64) (common.Address, bool) {
	addr, found := wethAddresses[chainID]
	return addr, found
}

func erc20(symbol, name string, addr common.Address, decimals uint8) registry.TokenMetadata {
	return registry.TokenMetadata{
		Symbol:          symbol,
		Name:            name,
		ErcStandard:     "ERC20",
		ContractAddress: addr.Hex(),
		Decimals:        decimals,
	}
}

// Register tags the routers, Permit2 and the V4 pool managers, and records
// the well-known addresses and tokens the decoders refer to.
func Register(b *registry.Builder) {
	for chainID, addr := range universalRouters {
		b.RegisterContract(chainID, ContractTypeUniversalRouter, addr)
		b.RegisterContract(chainID, ContractTypePermit2, Permit2Address)
	}
	for chainID, addr := range v4PoolManagers {
		b.RegisterContract(chainID, ContractTypeV4PoolManager, addr)
	}

	b.RegisterWellKnown(registry.RolePermit2, Permit2Address)
	for chainID, addr := range wethAddresses {
		b.RegisterWellKnownOn(registry.RoleWETH, chainID, addr)
		b.RegisterToken(chainID, erc20("WETH", "Wrapped Ether", addr, 18))
	}

	b.RegisterToken(1, erc20("USDC", "USD Coin", common.HexToAddress("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"), 6))
	b.RegisterToken(1, erc20("USDT", "Tether USD", common.HexToAddress("0xdac17f958d2ee523a2206206994597c13d831ec7"), 6))
	b.RegisterToken(1, erc20("DAI", "Dai Stablecoin", common.HexToAddress("0x6b175474e89094c44da98b954eedeac495271d0f"), 18))
	b.RegisterToken(1, erc20("SETH", "sETH", common.HexToAddress("0xe71bdfe1df69284f00ee185cf0d95d0c7680c0d4"), 18))
}
