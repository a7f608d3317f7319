package aave_test

import (
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vscommon "github.com/tranvictor/visualsign/common"
	"github.com/tranvictor/visualsign/payload"
	"github.com/tranvictor/visualsign/protocols/aave"
	"github.com/tranvictor/visualsign/registry"
	"github.com/tranvictor/visualsign/txanalyzer"
)

var (
	alice      = common.HexToAddress("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045")
	mainnetUSD = common.HexToAddress("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")
)

func newContext(t *testing.T, chainID uint64) *txanalyzer.AnalysisContext {
	t.Helper()
	b := registry.NewBuilder()
	aave.Register(b)
	reg, err := b.Build()
	require.NoError(t, err)
	return txanalyzer.NewAnalysisContext(chainID, reg)
}

func l2Call(signature string, words ...[32]byte) []byte {
	data := append([]byte{}, crypto.Keccak256([]byte(signature))[:4]...)
	for _, w := range words {
		data = append(data, w[:]...)
	}
	return data
}

func subtitle(t *testing.T, f payload.Field) string {
	t.Helper()
	require.NoError(t, f.Validate())
	require.Equal(t, payload.TypePreviewLayout, f.Type)
	require.NotNil(t, f.PreviewLayout.Subtitle)
	return f.PreviewLayout.Subtitle.Text
}

func expanded(f payload.Field, label string) (payload.Field, bool) {
	for _, nested := range f.PreviewLayout.Expanded.Plain() {
		if nested.Label == label {
			return nested, true
		}
	}
	return payload.Field{}, false
}

func TestPackUnpackRoundTrip(t *testing.T) {
	amount := big.NewInt(123456789)
	max128 := vscommon.MaxUint(128)

	supply := aave.SupplyArgs{AssetID: 7, Amount: amount, ReferralCode: 42}
	assert.Equal(t, supply, aave.UnpackSupply(supply.Pack()))

	permit := aave.SupplyWithPermitArgs{SupplyArgs: supply, Deadline: math.MaxUint32, PermitV: 27}
	assert.Equal(t, permit, aave.UnpackSupplyWithPermit(permit.Pack()))

	withdraw := aave.WithdrawArgs{AssetID: math.MaxUint16, Amount: max128}
	assert.Equal(t, withdraw, aave.UnpackWithdraw(withdraw.Pack()))

	borrow := aave.BorrowArgs{AssetID: 3, Amount: amount, InterestRateMode: 2, ReferralCode: 65535}
	assert.Equal(t, borrow, aave.UnpackBorrow(borrow.Pack()))

	repay := aave.RepayArgs{AssetID: 1, Amount: max128, InterestRateMode: 1}
	assert.Equal(t, repay, aave.UnpackRepay(repay.Pack()))

	repayPermit := aave.RepayWithPermitArgs{RepayArgs: repay, Deadline: 1700000000, PermitV: 28}
	assert.Equal(t, repayPermit, aave.UnpackRepayWithPermit(repayPermit.Pack()))

	for _, use := range []bool{true, false} {
		collateral := aave.CollateralArgs{AssetID: 9, UseAsCollateral: use}
		assert.Equal(t, collateral, aave.UnpackCollateral(collateral.Pack()))
	}

	liq := aave.LiquidationArgs{
		CollateralAssetID: 0,
		DebtAssetID:       12,
		User:              alice,
		DebtToCover:       amount,
		ReceiveAToken:     true,
	}
	assert.Equal(t, liq, aave.UnpackLiquidation(liq.Pack()))
}

func TestUnpackIsBitExact(t *testing.T) {
	var w [32]byte
	// asset 0x0102 in the lowest 16 bits, amount 5 starting at bit 16.
	w[31], w[30] = 0x02, 0x01
	w[29] = 0x05
	got := aave.UnpackWithdraw(w)
	assert.Equal(t, uint16(0x0102), got.AssetID)
	assert.Equal(t, "5", got.Amount.String())
}

func TestL2Withdraw(t *testing.T) {
	ctx := newContext(t, 42161)
	word := aave.WithdrawArgs{AssetID: 12, Amount: big.NewInt(100_000_000)}.Pack()

	f, ok := aave.VisualizeL2(ctx, l2Call("withdraw(bytes32)", word))
	require.True(t, ok)
	assert.Equal(t, "Withdraw 100 USDC", subtitle(t, f))
	assert.Equal(t, "Aave v3 L2 Withdraw", f.PreviewLayout.Title.Text)
	assert.Equal(t, "Aave L2 Withdraw", f.Label)

	condensed := f.PreviewLayout.Condensed.Plain()
	require.Len(t, condensed, 1)
	assert.Equal(t, "Amount", condensed[0].Label)
	assert.Equal(t, "100 USDC (raw: 100000000)", condensed[0].TextV2.Text)

	asset, found := expanded(f, "Asset")
	require.True(t, found)
	assert.Equal(t, "USDC (ID: 12)", asset.TextV2.Text)
	assert.Equal(t, "Asset ID: 12", asset.FallbackText)
}

func TestL2MaxAmounts(t *testing.T) {
	ctx := newContext(t, 42161)
	max128 := vscommon.MaxUint(128)

	f, ok := aave.VisualizeL2(ctx, l2Call("withdraw(bytes32)", aave.WithdrawArgs{AssetID: 12, Amount: max128}.Pack()))
	require.True(t, ok)
	assert.Equal(t, "Withdraw Maximum available USDC", subtitle(t, f))
	amount, _ := expanded(f, "Amount")
	assert.Equal(t, "Maximum available (type(uint128).max)", amount.TextV2.Text)

	f, ok = aave.VisualizeL2(ctx, l2Call("repay(bytes32)", aave.RepayArgs{AssetID: 12, Amount: max128, InterestRateMode: 2}.Pack()))
	require.True(t, ok)
	assert.Equal(t, "Repay Full debt USDC at Variable rate", subtitle(t, f))

	f, ok = aave.VisualizeL2(ctx, l2Call("repayWithATokens(bytes32)", aave.RepayArgs{AssetID: 12, Amount: max128, InterestRateMode: 2}.Pack()))
	require.True(t, ok)
	assert.Equal(t, "Repay Full balance USDC at Variable rate", subtitle(t, f))
	method, found := expanded(f, "Repayment Method")
	require.True(t, found)
	assert.Equal(t, "Using aTokens", method.FallbackText)
}

func TestL2Borrow(t *testing.T) {
	ctx := newContext(t, 42161)
	word := aave.BorrowArgs{AssetID: 0, Amount: big.NewInt(1500000000000000000), InterestRateMode: 1}.Pack()

	f, ok := aave.VisualizeL2(ctx, l2Call("borrow(bytes32)", word))
	require.True(t, ok)
	assert.Equal(t, "Borrow 1.5 WETH at Stable (Deprecated) rate", subtitle(t, f))
	mode, found := expanded(f, "Interest Rate Mode")
	require.True(t, found)
	assert.Equal(t, "Stable (Deprecated) (1)", mode.TextV2.Text)
}

func TestL2InvalidRateMode(t *testing.T) {
	ctx := newContext(t, 42161)
	word := aave.BorrowArgs{AssetID: 0, Amount: big.NewInt(1), InterestRateMode: 3}.Pack()

	f, ok := aave.VisualizeL2(ctx, l2Call("borrow(bytes32)", word))
	require.True(t, ok)
	require.NoError(t, f.Validate())
	assert.Equal(t, "Error", f.Label)
	assert.Equal(t, "Invalid interest rate mode: 3", f.TextV2.Text)
	assert.Equal(t, "Unknown rate mode: 3", f.FallbackText)
}

func TestL2UnknownAsset(t *testing.T) {
	ctx := newContext(t, 42161)
	word := aave.SupplyArgs{AssetID: 99, Amount: big.NewInt(5)}.Pack()

	f, ok := aave.VisualizeL2(ctx, l2Call("supply(bytes32)", word))
	require.True(t, ok)
	assert.Equal(t, "Supply 5 Asset#99", subtitle(t, f))
}

func TestL2SupplyWithPermit(t *testing.T) {
	ctx := newContext(t, 10)
	args := aave.SupplyWithPermitArgs{
		SupplyArgs: aave.SupplyArgs{AssetID: 10, Amount: big.NewInt(2_000_000)},
		Deadline:   1700000000,
		PermitV:    27,
	}
	var r, s [32]byte
	f, ok := aave.VisualizeL2(ctx, l2Call("supplyWithPermit(bytes32,bytes32,bytes32)", args.Pack(), r, s))
	require.True(t, ok)
	assert.Equal(t, "Supply 2 USDC with permit (expires: 2023-11-14 22:13 UTC)", subtitle(t, f))
	_, found := expanded(f, "Authorization")
	assert.True(t, found)

	args.Deadline = math.MaxUint32
	f, ok = aave.VisualizeL2(ctx, l2Call("supplyWithPermit(bytes32,bytes32,bytes32)", args.Pack(), r, s))
	require.True(t, ok)
	assert.Equal(t, "Supply 2 USDC with permit (expires: never)", subtitle(t, f))
}

func TestL2LiquidationAndCollateral(t *testing.T) {
	ctx := newContext(t, 42161)
	w1, w2 := aave.LiquidationArgs{
		CollateralAssetID: 0,
		DebtAssetID:       12,
		User:              alice,
		DebtToCover:       big.NewInt(2_500_000_000),
		ReceiveAToken:     true,
	}.Pack()

	f, ok := aave.VisualizeL2(ctx, l2Call("liquidationCall(bytes32,bytes32)", w1, w2))
	require.True(t, ok)
	assert.Equal(t, "Liquidate 2500 USDC debt, seize WETH collateral (receive aTokens)", subtitle(t, f))
	user, found := expanded(f, "User")
	require.True(t, found)
	assert.Equal(t, alice.Hex(), user.AddressV2.Address)
	assert.Equal(t, "Debt to Cover", f.PreviewLayout.Condensed.Plain()[0].Label)

	f, ok = aave.VisualizeL2(ctx, l2Call("setUserUseReserveAsCollateral(bytes32)", aave.CollateralArgs{AssetID: 12, UseAsCollateral: true}.Pack()))
	require.True(t, ok)
	assert.Equal(t, "Enable USDC as collateral", subtitle(t, f))
}

func TestL2RejectsWrongLength(t *testing.T) {
	ctx := newContext(t, 42161)
	word := aave.WithdrawArgs{AssetID: 12, Amount: big.NewInt(1)}.Pack()
	data := l2Call("withdraw(bytes32)", word)

	_, ok := aave.VisualizeL2(ctx, data[:len(data)-1])
	assert.False(t, ok)
	_, ok = aave.VisualizeL2(ctx, append(data, 0x00))
	assert.False(t, ok)
	_, ok = aave.VisualizeL2(ctx, []byte{0x01, 0x02})
	assert.False(t, ok)
}

const poolTestABI = `[
{"type":"function","name":"supply","inputs":[{"name":"asset","type":"address"},{"name":"amount","type":"uint256"},{"name":"onBehalfOf","type":"address"},{"name":"referralCode","type":"uint16"}],"outputs":[]},
{"type":"function","name":"withdraw","inputs":[{"name":"asset","type":"address"},{"name":"amount","type":"uint256"},{"name":"to","type":"address"}],"outputs":[]},
{"type":"function","name":"repay","inputs":[{"name":"asset","type":"address"},{"name":"amount","type":"uint256"},{"name":"interestRateMode","type":"uint256"},{"name":"onBehalfOf","type":"address"}],"outputs":[]},
{"type":"function","name":"flashLoan","inputs":[{"name":"receiverAddress","type":"address"},{"name":"assets","type":"address[]"},{"name":"amounts","type":"uint256[]"},{"name":"interestRateModes","type":"uint256[]"},{"name":"onBehalfOf","type":"address"},{"name":"params","type":"bytes"},{"name":"referralCode","type":"uint16"}],"outputs":[]}
]`

func poolCall(t *testing.T, method string, args ...interface{}) []byte {
	t.Helper()
	a, err := abi.JSON(strings.NewReader(poolTestABI))
	require.NoError(t, err)
	data, err := a.Pack(method, args...)
	require.NoError(t, err)
	return data
}

func TestPoolVisualizer(t *testing.T) {
	ctx := newContext(t, 1)
	v := aave.PoolVisualizer{}
	assert.Equal(t, aave.ContractTypePool, v.ContractType())

	f, ok := v.Visualize(ctx, poolCall(t, "supply", mainnetUSD, big.NewInt(1_500_000), alice, uint16(0)))
	require.True(t, ok)
	assert.Equal(t, "Supply 1.5 USDC on behalf of "+alice.Hex(), subtitle(t, f))
	assert.Equal(t, "Aave v3 Supply", f.PreviewLayout.Title.Text)

	f, ok = v.Visualize(ctx, poolCall(t, "withdraw", mainnetUSD, vscommon.MaxUint(256), alice))
	require.True(t, ok)
	assert.Equal(t, "Withdraw Maximum USDC to "+alice.Hex(), subtitle(t, f))

	f, ok = v.Visualize(ctx, poolCall(t, "repay", mainnetUSD, vscommon.MaxUint(256), big.NewInt(2), common.Address{}))
	require.True(t, ok)
	assert.Equal(t, "Repay Full debt at Variable rate", subtitle(t, f))

	f, ok = v.Visualize(ctx, poolCall(t, "flashLoan",
		alice,
		[]common.Address{mainnetUSD},
		[]*big.Int{big.NewInt(10_000_000)},
		[]*big.Int{big.NewInt(0)},
		alice, []byte{}, uint16(0)))
	require.True(t, ok)
	assert.Equal(t, "Flash loan 10 USDC", subtitle(t, f))
	_, found := expanded(f, "Asset 1")
	assert.True(t, found)
}

func TestPoolDelegatesL2Selectors(t *testing.T) {
	ctx := newContext(t, 42161)
	word := aave.WithdrawArgs{AssetID: 12, Amount: big.NewInt(100_000_000)}.Pack()

	f, ok := aave.PoolVisualizer{}.Visualize(ctx, l2Call("withdraw(bytes32)", word))
	require.True(t, ok)
	assert.Equal(t, "Withdraw 100 USDC", subtitle(t, f))

	_, ok = aave.PoolVisualizer{}.Visualize(ctx, []byte{0xde, 0xad, 0xbe, 0xef})
	assert.False(t, ok)
}

const governanceTestABI = `[
{"type":"function","name":"delegate","inputs":[{"name":"delegatee","type":"address"}],"outputs":[]},
{"type":"function","name":"delegateByType","inputs":[{"name":"delegatee","type":"address"},{"name":"delegationType","type":"uint8"}],"outputs":[]},
{"type":"function","name":"submitVote","inputs":[{"name":"proposalId","type":"uint256"},{"name":"support","type":"bool"}],"outputs":[]},
{"type":"function","name":"submitVoteAsRepresentative","inputs":[{"name":"proposalId","type":"uint256"},{"name":"support","type":"bool"},{"name":"votingTokens","type":"address[]"}],"outputs":[]}
]`

func TestGovernance(t *testing.T) {
	ctx := newContext(t, 1)
	a, err := abi.JSON(strings.NewReader(governanceTestABI))
	require.NoError(t, err)

	data, err := a.Pack("delegate", alice)
	require.NoError(t, err)
	f, ok := aave.TokenVisualizer{}.Visualize(ctx, data)
	require.True(t, ok)
	assert.Equal(t, "Delegate all governance power to "+alice.Hex(), subtitle(t, f))
	assert.Equal(t, "Aave Governance", f.Label)

	data, err = a.Pack("delegateByType", alice, uint8(1))
	require.NoError(t, err)
	f, ok = aave.TokenVisualizer{}.Visualize(ctx, data)
	require.True(t, ok)
	assert.Equal(t, "Delegate Proposition Power to "+alice.Hex(), subtitle(t, f))

	data, err = a.Pack("submitVote", big.NewInt(42), true)
	require.NoError(t, err)
	f, ok = aave.VotingMachineVisualizer{}.Visualize(ctx, data)
	require.True(t, ok)
	assert.Equal(t, "Vote For on proposal #42", subtitle(t, f))

	data, err = a.Pack("submitVoteAsRepresentative", big.NewInt(7), false, []common.Address{alice})
	require.NoError(t, err)
	f, ok = aave.VotingMachineVisualizer{}.Visualize(ctx, data)
	require.True(t, ok)
	assert.Equal(t, "Vote Against on proposal #7 (as representative with 1 token)", subtitle(t, f))
	_, found := expanded(f, "Token 1")
	assert.True(t, found)

	_, ok = aave.VotingMachineVisualizer{}.Visualize(ctx, []byte{0x01})
	assert.False(t, ok)
}

func TestRegister(t *testing.T) {
	b := registry.NewBuilder()
	aave.Register(b)
	reg, err := b.Build()
	require.NoError(t, err)

	pool, found := aave.PoolAddress(8453)
	require.True(t, found)
	ct, found := reg.ContractType(8453, pool)
	require.True(t, found)
	assert.Equal(t, aave.ContractTypePool, ct)

	addr, found := aave.AssetAddress(137, 15)
	require.True(t, found)
	assert.Equal(t, common.HexToAddress("0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359"), addr)
	_, found = aave.AssetAddress(1, 0)
	assert.False(t, found)
}
