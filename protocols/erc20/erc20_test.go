package erc20_test

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vscommon "github.com/tranvictor/visualsign/common"
	"github.com/tranvictor/visualsign/payload"
	"github.com/tranvictor/visualsign/protocols/erc20"
	"github.com/tranvictor/visualsign/registry"
	"github.com/tranvictor/visualsign/txanalyzer"
)

var (
	usdc    = common.HexToAddress("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")
	unknown = common.HexToAddress("0x1111111111111111111111111111111111111111")
	bob     = common.HexToAddress("0x2222222222222222222222222222222222222222")
	carol   = common.HexToAddress("0x3333333333333333333333333333333333333333")
)

const tokenABI = `[
{"type":"function","name":"transfer","outputs":[],"inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}]},
{"type":"function","name":"transferFrom","outputs":[],"inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"amount","type":"uint256"}]},
{"type":"function","name":"approve","outputs":[],"inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}]},
{"type":"function","name":"mint","outputs":[],"inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}]}
]`

func contextFor(t *testing.T, token common.Address) *txanalyzer.AnalysisContext {
	t.Helper()
	reg, err := registry.NewBuilder().RegisterToken(1, registry.TokenMetadata{
		Symbol: "USDC", Name: "USD Coin", ErcStandard: "ERC20",
		ContractAddress: usdc.Hex(), Decimals: 6,
	}).Build()
	require.NoError(t, err)
	return txanalyzer.NewAnalysisContext(1, reg).ForCall(token, big.NewInt(0))
}

func pack(t *testing.T, method string, args ...interface{}) []byte {
	t.Helper()
	a, err := abi.JSON(strings.NewReader(tokenABI))
	require.NoError(t, err)
	data, err := a.Pack(method, args...)
	require.NoError(t, err)
	return data
}

func TestTransferKnownToken(t *testing.T) {
	f, ok := erc20.VisualizeTransfer(contextFor(t, usdc), pack(t, "transfer", bob, big.NewInt(12500000)))
	require.True(t, ok)
	require.NoError(t, f.Validate())
	assert.Equal(t, "ERC20 Transfer", f.PreviewLayout.Title.Text)
	assert.Equal(t, "Transfer 12.5 USDC to "+bob.Hex(), f.FallbackText)

	condensed := f.PreviewLayout.Condensed.Plain()
	require.Len(t, condensed, 1)
	assert.Equal(t, payload.TypeAmount, condensed[0].Type)
	assert.Equal(t, "12.5 USDC", condensed[0].FallbackText)

	token := f.PreviewLayout.Expanded.Plain()[0]
	assert.Equal(t, "USD Coin", token.AddressV2.Name)
	assert.Equal(t, "USDC", token.AddressV2.AssetLabel)
}

func TestTransferFromUnknownToken(t *testing.T) {
	f, ok := erc20.VisualizeTransfer(contextFor(t, unknown), pack(t, "transferFrom", bob, carol, big.NewInt(7)))
	require.True(t, ok)
	require.NoError(t, f.Validate())
	assert.Equal(t, "Transfer 7 "+unknown.Hex()+" from "+bob.Hex()+" to "+carol.Hex(), f.FallbackText)

	amount := f.PreviewLayout.Condensed.Plain()[0]
	assert.Equal(t, payload.TypeNumber, amount.Type)
	assert.Equal(t, "7", amount.Number.Number)
}

func TestApprove(t *testing.T) {
	f, ok := erc20.VisualizeTransfer(contextFor(t, usdc), pack(t, "approve", bob, vscommon.MaxUint(256)))
	require.True(t, ok)
	assert.Equal(t, "Approve "+bob.Hex()+" to spend Unlimited USDC", f.FallbackText)

	f, ok = erc20.VisualizeTransfer(contextFor(t, usdc), pack(t, "approve", bob, big.NewInt(1e6)))
	require.True(t, ok)
	assert.Equal(t, "Approve "+bob.Hex()+" to spend 1 USDC", f.FallbackText)
}

func TestRejectsOtherCalls(t *testing.T) {
	ctx := contextFor(t, usdc)
	_, ok := erc20.VisualizeTransfer(ctx, pack(t, "mint", bob, big.NewInt(1)))
	assert.False(t, ok)

	truncated := pack(t, "transfer", bob, big.NewInt(1))[:36]
	_, ok = erc20.VisualizeTransfer(ctx, truncated)
	assert.False(t, ok)

	_, ok = erc20.VisualizeTransfer(ctx, []byte{0xa9})
	assert.False(t, ok)
}
