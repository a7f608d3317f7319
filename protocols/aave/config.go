// Package aave decodes calls to the Aave v3 Pool, its bit-packed L2Pool
// variant and the Aave governance contracts.
package aave

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/tranvictor/visualsign/registry"
)

const (
	ContractTypePool          registry.ContractType = "aave_v3_pool"
	ContractTypeToken         registry.ContractType = "aave_token"
	ContractTypeVotingMachine registry.ContractType = "aave_voting_machine"
)

var poolAddresses = map[uint64]common.Address{
	1:     common.HexToAddress("0x87870Bca3F3fD6335C3F4ce8392D69350B4fA4E2"),
	137:   common.HexToAddress("0x794a61358D6845594F94dc1DB02A252b5b4814aD"),
	42161: common.HexToAddress("0x794a61358D6845594F94dc1DB02A252b5b4814aD"),
	10:    common.HexToAddress("0x794a61358D6845594F94dc1DB02A252b5b4814aD"),
	8453:  common.HexToAddress("0xA238Dd80C259a72e81d7e4664a9801593F98d1c5"),
	43114: common.HexToAddress("0x794a61358D6845594F94dc1DB02A252b5b4814aD"),
	100:   common.HexToAddress("0xb50201558B00496A145fE76f7424749556E326D8"),
	56:    common.HexToAddress("0x6807dc923806fE8Fd134338EABCA509979a7e0cB"),
}

var (
	aaveTokenMainnet     = common.HexToAddress("0x7Fc66500c84A76Ad7e9c93437bFc5Ac33E2DDaE9")
	votingMachineMainnet = common.HexToAddress("0x617332a777780F546261247F621051d0b98975Eb")
)

// PoolAddress returns the Aave v3 Pool deployment on chainID.
func PoolAddress(chainID uint64) (common.Address, bool) {
	addr, found := poolAddresses[chainID]
	return addr, found
}

func token(symbol, name, addr string, decimals uint8) registry.TokenMetadata {
	return registry.TokenMetadata{
		Symbol:          symbol,
		Name:            name,
		ErcStandard:     "ERC20",
		ContractAddress: addr,
		Decimals:        decimals,
	}
}

var commonTokens = map[uint64][]registry.TokenMetadata{
	1: {
		token("USDC", "USD Coin", "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", 6),
		token("USDT", "Tether USD", "0xdac17f958d2ee523a2206206994597c13d831ec7", 6),
		token("DAI", "Dai Stablecoin", "0x6b175474e89094c44da98b954eedeac495271d0f", 18),
		token("WETH", "Wrapped Ether", "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2", 18),
		token("AAVE", "Aave Token", "0x7fc66500c84a76ad7e9c93437bfc5ac33e2ddae9", 18),
	},
	8453: {
		token("USDC", "USD Coin", "0x833589fcd6edb6e08f4c7c32d4f71b54bda02913", 6),
		token("WETH", "Wrapped Ether", "0x4200000000000000000000000000000000000006", 18),
	},
	137: {
		token("USDC.e", "USD Coin (PoS)", "0x2791bca1f2de4661ed88a30c99a7a9449aa84174", 6),
		token("USDT", "Tether USD", "0xc2132d05d31c914a87c6611c10748aeb04b58e8f", 6),
		token("DAI", "Dai Stablecoin", "0x8f3cf7ad23cd3cadbd9735aff958023239c6a063", 18),
		token("WETH", "Wrapped Ether", "0x7ceb23fd6bc0add59e62ac25578270cff1b9f619", 18),
		token("USDC", "USD Coin", "0x3c499c542cef5e3811e1192ce70d8cc03d5c3359", 6),
	},
	42161: {
		token("USDC", "USD Coin", "0xaf88d065e77c8cc2239327c5edb3a432268e5831", 6),
		token("USDC.e", "Bridged USDC", "0xff970a61a04b1ca14834a43f5de4533ebddb5cc8", 6),
		token("USDT", "Tether USD", "0xfd086bc7cd5c481dcc9c85ebe478a1c0b69fcbb9", 6),
		token("DAI", "Dai Stablecoin", "0xda10009cbd5d07dd0cecc66161fc93d7c9000da1", 18),
		token("WETH", "Wrapped Ether", "0x82af49447d8a07e3bd95bd0d56f35241523fbab1", 18),
		token("WBTC", "Wrapped BTC", "0x2f2a2543b76a4166549f7aab2e75bef0aefc5b0f", 8),
		token("ARB", "Arbitrum", "0x912ce59144191c1204e64559fe8253a0e49e6548", 18),
	},
	10: {
		token("USDC", "USD Coin", "0x0b2c639c533813f4aa9d7837caf62653d097ff85", 6),
		token("USDC.e", "Bridged USDC", "0x7f5c764cbc14f9669b88837ca1490cca17c31607", 6),
		token("USDT", "Tether USD", "0x94b008aa00579c1307b0ef2c499ad98a8ce58e58", 6),
		token("DAI", "Dai Stablecoin", "0xda10009cbd5d07dd0cecc66161fc93d7c9000da1", 18),
		token("WETH", "Wrapped Ether", "0x4200000000000000000000000000000000000006", 18),
	},
}

// Register tags every Pool deployment and the governance contracts, and
// records the reserve tokens the decoders name.
func Register(b *registry.Builder) {
	for chainID, addr := range poolAddresses {
		b.RegisterContract(chainID, ContractTypePool, addr)
	}
	b.RegisterContract(1, ContractTypeToken, aaveTokenMainnet)
	b.RegisterContract(1, ContractTypeVotingMachine, votingMachineMainnet)
	for chainID, tokens := range commonTokens {
		for _, t := range tokens {
			b.RegisterToken(chainID, t)
		}
	}
}
