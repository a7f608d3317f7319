package registry_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/visualsign/registry"
)

func TestLayeredRegistryPrefersRequestLayer(t *testing.T) {
	global := buildTestRegistry(t)

	override := usdc
	override.Symbol = "USDC.wallet"
	wrapped := registry.TokenMetadata{
		Symbol:          "WBTC",
		ContractAddress: "0x2260fac5e5542a773aa44fbcfedf7c193bc2c599",
		Decimals:        8,
	}
	request, err := registry.NewBuilder().
		RegisterToken(1, override).
		RegisterToken(1, wrapped).
		Build()
	require.NoError(t, err)

	layered := registry.NewLayered(global, request)

	tok, found := layered.Token(1, usdc.Address())
	require.True(t, found)
	assert.Equal(t, "USDC.wallet", tok.Symbol)

	tok, found = layered.Token(1, wrapped.Address())
	require.True(t, found)
	assert.Equal(t, uint8(8), tok.Decimals)

	ct, found := layered.ContractType(42161, poolAddr)
	require.True(t, found, "falls through to the global layer")
	assert.Equal(t, poolType, ct)

	_, found = layered.Token(1, common.HexToAddress("0x2222222222222222222222222222222222222222"))
	assert.False(t, found)

	gtok, _ := global.Token(1, usdc.Address())
	assert.Equal(t, "USDC", gtok.Symbol, "global layer is untouched")
}

func TestLayeredRegistryWithoutRequestLayer(t *testing.T) {
	global := buildTestRegistry(t)
	layered := registry.NewLayered(global, nil)

	tok, found := layered.Token(1, usdc.Address())
	require.True(t, found)
	assert.Equal(t, "USDC", tok.Symbol)
	assert.Nil(t, layered.Request())
	assert.Same(t, global, layered.Global())

	_, found = layered.WellKnown(registry.RolePermit2, 1)
	assert.True(t, found)
}

func TestChainMetadataRegistry(t *testing.T) {
	meta, err := registry.ParseChainMetadata([]byte(`{
		"network_id": "ARBITRUM_MAINNET",
		"assets": {
			"DAI": {"name": "Dai", "erc_standard": "ERC20",
			        "contract_address": "0xDA10009cBd5D07dd0CeCc66161FC93D7c9000da1", "decimals": 18}
		}
	}`))
	require.NoError(t, err)

	id, ok, err := meta.ChainID()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(42161), id)

	reg, err := meta.Registry(id)
	require.NoError(t, err)
	tok, found := reg.Token(42161, common.HexToAddress("0xDA10009cBd5D07dd0CeCc66161FC93D7c9000da1"))
	require.True(t, found)
	assert.Equal(t, "DAI", tok.Symbol, "the asset key fills an empty symbol")

	var none *registry.ChainMetadata
	_, ok, err = none.ChainID()
	assert.NoError(t, err)
	assert.False(t, ok)
	reg, err = none.Registry(1)
	assert.NoError(t, err)
	assert.Nil(t, reg)

	_, _, err = (&registry.ChainMetadata{NetworkID: "NOT_A_CHAIN"}).ChainID()
	assert.Error(t, err)
}
