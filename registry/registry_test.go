package registry_test

import (
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/visualsign/registry"
)

const (
	poolType   registry.ContractType = "test_pool"
	routerType registry.ContractType = "test_router"
)

var (
	poolAddr   = common.HexToAddress("0x794a61358D6845594F94dc1DB02A252b5b4814aD")
	routerAddr = common.HexToAddress("0x3fC91A3afd70395Cd496C647d5a6CC9D4B2b7FAD")
	usdc       = registry.TokenMetadata{
		Symbol:          "USDC",
		Name:            "USD Coin",
		ErcStandard:     "ERC20",
		ContractAddress: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48",
		Decimals:        6,
	}
)

func buildTestRegistry(t *testing.T) *registry.ContractRegistry {
	t.Helper()
	reg, err := registry.NewBuilder().
		RegisterContractOnChains(poolType, poolAddr, 10, 137, 42161).
		RegisterContract(1, routerType, routerAddr).
		RegisterContract(1, routerType, routerAddr).
		RegisterToken(1, usdc).
		RegisterWellKnown(registry.RolePermit2, common.HexToAddress("0x000000000022d473030f116ddee9f6b43ac78ba3")).
		RegisterWellKnown(registry.RoleWETH, common.HexToAddress("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2")).
		RegisterWellKnownOn(registry.RoleWETH, 10, common.HexToAddress("0x4200000000000000000000000000000000000006")).
		Build()
	require.NoError(t, err)
	return reg
}

func TestContractTypeLookup(t *testing.T) {
	reg := buildTestRegistry(t)

	ct, found := reg.ContractType(137, poolAddr)
	require.True(t, found)
	assert.Equal(t, poolType, ct)

	_, found = reg.ContractType(1, poolAddr)
	assert.False(t, found, "pool is not registered on mainnet")

	keys := reg.Addresses(poolType)
	require.Len(t, keys, 3)
	assert.Equal(t, uint64(10), keys[0].ChainID)
	assert.Equal(t, uint64(42161), keys[2].ChainID)

	assert.Len(t, reg.Addresses(routerType), 1, "re-registration is idempotent")
	assert.Equal(t, []registry.ContractType{poolType, routerType}, reg.Types())
}

func TestConflictingRegistrationFailsBuild(t *testing.T) {
	_, err := registry.NewBuilder().
		RegisterContract(1, poolType, poolAddr).
		RegisterContract(1, routerType, poolAddr).
		Build()
	assert.ErrorIs(t, err, registry.ErrConflictingType)
}

func TestInvalidTokenFailsBuild(t *testing.T) {
	_, err := registry.NewBuilder().
		RegisterToken(1, registry.TokenMetadata{Symbol: "BAD", ContractAddress: "not-an-address"}).
		Build()
	assert.Error(t, err)
}

func TestWellKnownChainShadowsUniversal(t *testing.T) {
	reg := buildTestRegistry(t)

	weth, found := reg.WellKnown(registry.RoleWETH, 10)
	require.True(t, found)
	assert.Equal(t, common.HexToAddress("0x4200000000000000000000000000000000000006"), weth)

	weth, found = reg.WellKnown(registry.RoleWETH, 1)
	require.True(t, found)
	assert.Equal(t, common.HexToAddress("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2"), weth)

	permit2, found := reg.WellKnown(registry.RolePermit2, 8453)
	require.True(t, found)
	assert.Equal(t, common.HexToAddress("0x000000000022d473030f116ddee9f6b43ac78ba3"), permit2)

	_, found = reg.WellKnown("nothing", 1)
	assert.False(t, found)
}

func TestFormatTokenAmount(t *testing.T) {
	reg := buildTestRegistry(t)

	value, symbol, found := registry.FormatTokenAmount(reg, 1, usdc.Address(), big.NewInt(1_500_000))
	assert.True(t, found)
	assert.Equal(t, "1.5", value)
	assert.Equal(t, "USDC", symbol)

	unknown := common.HexToAddress("0x1111111111111111111111111111111111111111")
	value, symbol, found = registry.FormatTokenAmount(reg, 1, unknown, big.NewInt(1_500_000))
	assert.False(t, found)
	assert.Equal(t, "1500000", value)
	assert.Equal(t, unknown.Hex(), symbol)

	assert.Equal(t, "USDC", registry.TokenSymbol(reg, 1, usdc.Address()))
	assert.Equal(t, unknown.Hex(), registry.TokenSymbol(nil, 1, unknown))
}

func TestNilAndEmptyRegistryLookups(t *testing.T) {
	var reg *registry.ContractRegistry
	_, found := reg.ContractType(1, poolAddr)
	assert.False(t, found)
	_, found = reg.Token(1, poolAddr)
	assert.False(t, found)
	assert.Nil(t, reg.Types())

	empty := registry.Empty()
	_, found = empty.WellKnown(registry.RolePermit2, 1)
	assert.False(t, found)
}

func TestCheckUniqueTypes(t *testing.T) {
	assert.NoError(t, registry.CheckUniqueTypes([]registry.ContractType{poolType, routerType}))
	assert.Error(t, registry.CheckUniqueTypes([]registry.ContractType{poolType, poolType}))
	assert.Error(t, registry.CheckUniqueTypes([]registry.ContractType{""}))
}

func TestConcurrentReads(t *testing.T) {
	reg := buildTestRegistry(t)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, _ = reg.ContractType(42161, poolAddr)
				_, _ = reg.Token(1, usdc.Address())
				_, _ = reg.WellKnown(registry.RoleWETH, 10)
			}
		}()
	}
	wg.Wait()
}
