package aave

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tranvictor/visualsign/payload"
	"github.com/tranvictor/visualsign/txanalyzer"
)

// L2 pools address reserves by their index in the pool's reserve list. The
// lists only grow, so an index once assigned keeps its asset.
var l2Assets = map[uint64][]string{
	42161: {
		"0x82aF49447D8a07e3bd95BD0d56f35241523fBab1", // WETH
		"0x2f2a2543B76A4166549F7aaB2e75Bef0aefC5B0f", // WBTC
		"0xFd086bC7CD5C481DCC9C85ebE478A1C0b69FCbb9", // USDT
		"0xFF970A61A04b1cA14834A43f5dE4533eBDDB5CC8", // USDC.e
		"0xDA10009cBd5D07dd0CeCc66161FC93D7c9000da1", // DAI
		"0xf97f4df75117a78c1A5a0DBb814Af92458539FB4", // LINK
		"0xFa7F8980b0f1E64A2062791cc3b0871572f1F7f0", // UNI
		"0x912CE59144191C1204E64559FE8253a0e49E6548", // ARB
		"0x3082CC23568eA640225c2467653dB90e9250AaA0", // RDNT
		"0x6694340fc020c5E6B96567843da2df01b2CE1eb6", // STG
		"0x17FC002b466eEc40DaE837Fc4bE5c67993ddBd6F", // FRAX
		"0xd22a58f79e9481D1a88e00c343885A588b34b68B", // EURS
		"0xaf88d065e77c8cC2239327C5EDb3A432268e5831", // USDC
		"0x93b346b6BC2548dA6A1E7d98E9a421B42541425b", // LUSD
		"0x5979D7b546E38E414F7E9822514be443A4800529", // wstETH
		"0x35751007a407ca6FEFfE80b3cB397736D2cf4dbe", // weETH
		"0x1a7e4e63778B4f12a199C062f3eFdD288afCBce8", // agEUR
		"0xaf88d065e77c8cC2239327C5EDb3A432268e5831",
	},
	10: {
		"0x4200000000000000000000000000000000000006", // WETH
		"0x68f180fcCe6836688e9084f035309E29Bf0A2095", // WBTC
		"0x94b008aA00579c1307B0EF2c499aD98a8ce58e58", // USDT
		"0x7F5c764cBc14f9669B88837ca1490cCa17c31607", // USDC.e
		"0xDA10009cBd5D07dd0CeCc66161FC93D7c9000da1", // DAI
		"0x350a791Bfc2C21F9Ed5d10980Dad2e2638ffa7f6", // LINK
		"0x6fd9d7AD17242c41f7131d257212c54A0e816691", // UNI
		"0x76FB31fb4af56892A25e32cFC43De717950c9278", // AAVE
		"0x9Bcef72be871e61ED4fBbc7630889beE758eb81D", // rETH
		"0x1F32b1c2345538c0c6f582fCB022739c4A194Ebb", // wstETH
		"0x0b2C639c533813f4Aa9D7837CAf62653d097Ff85", // USDC
		"0x8700dAec35aF8Ff88c16BdF0418774CB3D7599B4", // SNX
	},
	137: {
		"0x7ceB23fD6bC0adD59E62ac25578270cFf1b9f619", // WETH
		"0x1BFD67037B42Cf73acF2047067bd4F2C47D9BfD6", // WBTC
		"0xc2132D05D31c914a87C6611C10748AEb04B58e8F", // USDT
		"0x2791Bca1f2de4661ED88a30c99a7a9449Aa84174", // USDC.e
		"0x8f3Cf7ad23Cd3CaDbD9735AFf958023239c6A063", // DAI
		"0x53E0bca35eC356BD5ddDFebbD1Fc0fD03FaBad39", // LINK
		"0xb33EaAd8d922B1083446DC23f610c2567fB5180f", // UNI
		"0xD6DF932A45C0f255f85145f286eA0b292B21C90B", // AAVE
		"0x0d500B1d8E8eF31E21C99d1Db9A6444d3ADf1270", // WMATIC
		"0x385Eeac5cB85A38A9a07A70c73e0a3271CfB54A7", // GHST
		"0x172370d5Cd63279eFa6d502DAB29171933a610AF", // CRV
		"0x0b3F868E0BE5597D5DB7fEB59E1CADBb0fdDa50a", // SUSHI
		"0x3A58a54C066FdC0f2D55FC9C89F0415C92eBf3C4", // stMATIC
		"0x03b54A6e9a984069379fae1a4fC4dBAE93B3bCCD", // wstETH
		"0xfa68FB4628DFF1028CFEc22b4162FCcd0d45efb6", // MaticX
		"0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359", // USDC
	},
}

// AssetAddress maps an L2 reserve index to the reserve's token.
func AssetAddress(chainID uint64, id uint16) (common.Address, bool) {
	assets, found := l2Assets[chainID]
	if !found || int(id) >= len(assets) {
		return common.Address{}, false
	}
	return common.HexToAddress(assets[id]), true
}

// assetRef is an L2 reserve index resolved against the asset tables.
type assetRef struct {
	id     uint16
	addr   common.Address
	symbol string
	found  bool
}

// l2Asset resolves an L2 reserve index. An index outside the table keeps
// the permissive "Asset#N" symbol.
func l2Asset(ctx *txanalyzer.AnalysisContext, id uint16) assetRef {
	addr, found := AssetAddress(ctx.ChainID, id)
	if !found {
		return assetRef{id: id, symbol: fmt.Sprintf("Asset#%d", id)}
	}
	return assetRef{id: id, addr: addr, symbol: ctx.TokenSymbol(addr), found: true}
}

func (a assetRef) field(label string) payload.Field {
	return payload.NewTextFieldWithFallback(label, fmt.Sprintf("%s (ID: %d)", a.symbol, a.id), fmt.Sprintf("Asset ID: %d", a.id))
}
