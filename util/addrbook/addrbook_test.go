package addrbook_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/visualsign/registry"
	"github.com/tranvictor/visualsign/util/addrbook"
)

func TestMapResolve(t *testing.T) {
	m := addrbook.Map{"0xd8da6bf26964af9d7eed9e03e53415d37aa96045": "Vitalik Buterin"}

	got := m.Resolve("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045")
	assert.Equal(t, "Vitalik Buterin", got.Desc)
	assert.True(t, got.Known())

	got = m.Resolve("0x0000000000000000000000000000000000000001")
	assert.Equal(t, "unknown", got.Desc)
	assert.Equal(t, "", got.Name())
}

func TestRegistryResolve(t *testing.T) {
	usdc := "0xA0b86991c6218b36c1d19d4a2e9eB0cE3606eB48"
	reg, err := registry.NewBuilder().
		RegisterToken(1, registry.TokenMetadata{Symbol: "USDC", ContractAddress: usdc, Decimals: 6}).
		RegisterWellKnown(registry.RolePermit2, common.HexToAddress("0x000000000022d473030f116ddee9f6b43ac78ba3")).
		RegisterContract(1, "morpho_bundler3", common.HexToAddress("0x6566194141eefa99Af43Bb5Aa71460Ca2Dc90245")).
		Build()
	require.NoError(t, err)

	r := addrbook.NewRegistry(1, reg)

	got := r.Resolve("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")
	assert.Equal(t, "USDC", got.Desc)
	assert.Equal(t, int64(6), got.Decimal)
	assert.Equal(t, usdc, got.Address, "addresses come back checksummed")

	assert.Equal(t, "Permit2", r.Resolve("0x000000000022d473030f116ddee9f6b43ac78ba3").Desc)
	assert.Equal(t, "morpho_bundler3", r.Resolve("0x6566194141eefa99Af43Bb5Aa71460Ca2Dc90245").Desc)
	assert.False(t, r.Resolve("0x0000000000000000000000000000000000000001").Known())
	assert.False(t, r.Resolve("garbage").Known())

	other := addrbook.NewRegistry(10, reg)
	assert.False(t, other.Resolve(usdc).Known(), "tokens are chain scoped")
}

func TestChainResolve(t *testing.T) {
	c := addrbook.Chain{
		addrbook.Map{},
		addrbook.Map{"0x0000000000000000000000000000000000000001": "one"},
	}
	assert.Equal(t, "one", c.Resolve("0x0000000000000000000000000000000000000001").Desc)
	assert.Equal(t, "unknown", c.Resolve("0x0000000000000000000000000000000000000002").Desc)
}
