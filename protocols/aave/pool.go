package aave

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"

	vscommon "github.com/tranvictor/visualsign/common"
	"github.com/tranvictor/visualsign/payload"
	"github.com/tranvictor/visualsign/registry"
	"github.com/tranvictor/visualsign/txanalyzer"
)

const poolABIJSON = `[
{"type":"function","name":"supply","stateMutability":"nonpayable","outputs":[],"inputs":[
	{"name":"asset","type":"address"},{"name":"amount","type":"uint256"},
	{"name":"onBehalfOf","type":"address"},{"name":"referralCode","type":"uint16"}]},
{"type":"function","name":"withdraw","stateMutability":"nonpayable","outputs":[{"name":"","type":"uint256"}],"inputs":[
	{"name":"asset","type":"address"},{"name":"amount","type":"uint256"},{"name":"to","type":"address"}]},
{"type":"function","name":"borrow","stateMutability":"nonpayable","outputs":[],"inputs":[
	{"name":"asset","type":"address"},{"name":"amount","type":"uint256"},
	{"name":"interestRateMode","type":"uint256"},{"name":"referralCode","type":"uint16"},
	{"name":"onBehalfOf","type":"address"}]},
{"type":"function","name":"repay","stateMutability":"nonpayable","outputs":[{"name":"","type":"uint256"}],"inputs":[
	{"name":"asset","type":"address"},{"name":"amount","type":"uint256"},
	{"name":"interestRateMode","type":"uint256"},{"name":"onBehalfOf","type":"address"}]},
{"type":"function","name":"liquidationCall","stateMutability":"nonpayable","outputs":[],"inputs":[
	{"name":"collateralAsset","type":"address"},{"name":"debtAsset","type":"address"},
	{"name":"user","type":"address"},{"name":"debtToCover","type":"uint256"},
	{"name":"receiveAToken","type":"bool"}]},
{"type":"function","name":"supplyWithPermit","stateMutability":"nonpayable","outputs":[],"inputs":[
	{"name":"asset","type":"address"},{"name":"amount","type":"uint256"},
	{"name":"onBehalfOf","type":"address"},{"name":"referralCode","type":"uint16"},
	{"name":"deadline","type":"uint256"},{"name":"permitV","type":"uint8"},
	{"name":"permitR","type":"bytes32"},{"name":"permitS","type":"bytes32"}]},
{"type":"function","name":"repayWithPermit","stateMutability":"nonpayable","outputs":[{"name":"","type":"uint256"}],"inputs":[
	{"name":"asset","type":"address"},{"name":"amount","type":"uint256"},
	{"name":"interestRateMode","type":"uint256"},{"name":"onBehalfOf","type":"address"},
	{"name":"deadline","type":"uint256"},{"name":"permitV","type":"uint8"},
	{"name":"permitR","type":"bytes32"},{"name":"permitS","type":"bytes32"}]},
{"type":"function","name":"repayWithATokens","stateMutability":"nonpayable","outputs":[{"name":"","type":"uint256"}],"inputs":[
	{"name":"asset","type":"address"},{"name":"amount","type":"uint256"},
	{"name":"interestRateMode","type":"uint256"}]},
{"type":"function","name":"setUserUseReserveAsCollateral","stateMutability":"nonpayable","outputs":[],"inputs":[
	{"name":"asset","type":"address"},{"name":"useAsCollateral","type":"bool"}]},
{"type":"function","name":"flashLoan","stateMutability":"nonpayable","outputs":[],"inputs":[
	{"name":"receiverAddress","type":"address"},{"name":"assets","type":"address[]"},
	{"name":"amounts","type":"uint256[]"},{"name":"interestRateModes","type":"uint256[]"},
	{"name":"onBehalfOf","type":"address"},{"name":"params","type":"bytes"},
	{"name":"referralCode","type":"uint16"}]},
{"type":"function","name":"flashLoanSimple","stateMutability":"nonpayable","outputs":[],"inputs":[
	{"name":"receiverAddress","type":"address"},{"name":"asset","type":"address"},
	{"name":"amount","type":"uint256"},{"name":"params","type":"bytes"},
	{"name":"referralCode","type":"uint16"}]}
]`

var poolABI = txanalyzer.MustParseABI(poolABIJSON)

// PoolVisualizer renders Aave v3 Pool calls. Packed L2Pool entry points are
// recognised by selector and handed to VisualizeL2.
type PoolVisualizer struct{}

func (PoolVisualizer) ContractType() registry.ContractType {
	return ContractTypePool
}

type poolDecoder func(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall) payload.Field

var poolDecoders = map[string]poolDecoder{
	"supply":                        decodeSupply,
	"withdraw":                      decodeWithdraw,
	"borrow":                        decodeBorrow,
	"repay":                         decodeRepay,
	"liquidationCall":               decodeLiquidation,
	"supplyWithPermit":              decodeSupplyWithPermit,
	"repayWithPermit":               decodeRepayWithPermit,
	"repayWithATokens":              decodeRepayWithATokens,
	"setUserUseReserveAsCollateral": decodeCollateral,
	"flashLoan":                     decodeFlashLoan,
	"flashLoanSimple":               decodeFlashLoanSimple,
}

func (PoolVisualizer) Visualize(ctx *txanalyzer.AnalysisContext, data []byte) (payload.Field, bool) {
	if IsL2Selector(data) {
		return VisualizeL2(ctx, data)
	}
	fc, err := txanalyzer.AnalyzeMethodCall(poolABI, data)
	if err != nil {
		log.Debug().Err(err).Str("contract_type", string(ContractTypePool)).Msg("pool call not decoded")
		return payload.Field{}, false
	}
	decode, found := poolDecoders[fc.Method]
	if !found {
		return payload.Field{}, false
	}
	return decode(ctx, fc), true
}

func assetText(symbol string, addr common.Address) string {
	return fmt.Sprintf("%s (%s)", symbol, addr.Hex())
}

func assetField(label, symbol string, addr common.Address) payload.Field {
	text := assetText(symbol, addr)
	return payload.NewTextField(label, text)
}

func addressField(ctx *txanalyzer.AnalysisContext, label string, addr common.Address) payload.Field {
	return payload.NewAddressField(label, addr.Hex(), ctx.ResolveAddress(addr).Name(), "")
}

func onBehalfOf(addr common.Address) string {
	if addr == (common.Address{}) {
		return ""
	}
	return " on behalf of " + addr.Hex()
}

func poolRateMode(mode *big.Int) string {
	if mode.IsUint64() && mode.Uint64() <= 255 {
		if name, ok := rateMode(uint8(mode.Uint64())); ok {
			return name
		}
	}
	return mode.String()
}

func poolPreview(label, title, summary string, condensed payload.Field, expanded ...payload.Field) payload.Field {
	return payload.Preview{
		Label:     label,
		Title:     title,
		Subtitle:  summary,
		Condensed: []payload.Field{condensed},
		Expanded:  expanded,
	}.Field()
}

type poolAmount struct {
	asset   common.Address
	symbol  string
	value   string
	raw     *big.Int
	display string
	isMax   bool
}

// newPoolAmount formats amount in the asset's units. display is the value
// followed by the symbol, or maxText for type(uint256).max when maxText is
// set.
func newPoolAmount(ctx *txanalyzer.AnalysisContext, asset common.Address, amount *big.Int, maxText string) poolAmount {
	value, _, _ := ctx.FormatTokenAmount(asset, amount)
	a := poolAmount{
		asset:  asset,
		symbol: ctx.TokenSymbol(asset),
		value:  value,
		raw:    amount,
	}
	a.display = a.value + " " + a.symbol
	if maxText != "" && vscommon.IsMaxUint(amount, 256) {
		a.isMax = true
		a.display = maxText
	}
	return a
}

func (a poolAmount) field(label, maxText string) payload.Field {
	text := fmt.Sprintf("%s (raw: %s)", a.display, a.raw)
	if a.isMax {
		text = fmt.Sprintf("%s (%s)", maxText, a.raw)
	}
	return payload.NewTextFieldWithFallback(label, text, a.display)
}

func decodeSupply(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall) payload.Field {
	asset, behalf := fc.Address("asset"), fc.Address("onBehalfOf")
	amt := newPoolAmount(ctx, asset, fc.Big("amount"), "")
	amount := amt.field("Amount", "")
	return poolPreview("Aave Supply", "Aave v3 Supply",
		fmt.Sprintf("Supply %s%s", amt.display, onBehalfOf(behalf)),
		amount,
		assetField("Asset", amt.symbol, asset),
		amount,
		addressField(ctx, "On Behalf Of", behalf),
	)
}

func decodeWithdraw(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall) payload.Field {
	asset, to := fc.Address("asset"), fc.Address("to")
	amt := newPoolAmount(ctx, asset, fc.Big("amount"), "Maximum")
	amount := amt.field("Amount", "Maximum")
	summary := fmt.Sprintf("Withdraw %s to %s", amt.display, to.Hex())
	if amt.isMax {
		summary = fmt.Sprintf("Withdraw Maximum %s to %s", amt.symbol, to.Hex())
	}
	return poolPreview("Aave Withdraw", "Aave v3 Withdraw", summary,
		amount,
		assetField("Asset", amt.symbol, asset),
		amount,
		addressField(ctx, "To", to),
	)
}

func decodeBorrow(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall) payload.Field {
	asset, behalf := fc.Address("asset"), fc.Address("onBehalfOf")
	amt := newPoolAmount(ctx, asset, fc.Big("amount"), "")
	amount := amt.field("Amount", "")
	mode := fc.Big("interestRateMode")
	modeName := poolRateMode(mode)
	return poolPreview("Aave Borrow", "Aave v3 Borrow",
		fmt.Sprintf("Borrow %s at %s rate%s", amt.display, modeName, onBehalfOf(behalf)),
		amount,
		assetField("Asset", amt.symbol, asset),
		amount,
		payload.NewTextFieldWithFallback("Interest Rate Mode", fmt.Sprintf("%s (%s)", modeName, mode), modeName),
		addressField(ctx, "On Behalf Of", behalf),
	)
}

func repayFields(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall, maxText string) (poolAmount, string, []payload.Field) {
	asset := fc.Address("asset")
	amt := newPoolAmount(ctx, asset, fc.Big("amount"), maxText)
	mode := fc.Big("interestRateMode")
	modeName := poolRateMode(mode)
	return amt, modeName, []payload.Field{
		assetField("Asset", amt.symbol, asset),
		amt.field("Amount", maxText),
		payload.NewTextFieldWithFallback("Interest Rate Mode", fmt.Sprintf("%s (%s)", modeName, mode), modeName),
	}
}

func decodeRepay(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall) payload.Field {
	behalf := fc.Address("onBehalfOf")
	amt, mode, fields := repayFields(ctx, fc, fullDebt)
	fields = append(fields, addressField(ctx, "On Behalf Of", behalf))
	return poolPreview("Aave Repay", "Aave v3 Repay",
		fmt.Sprintf("Repay %s at %s rate%s", amt.display, mode, onBehalfOf(behalf)),
		fields[1], fields...)
}

func decodeRepayWithPermit(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall) payload.Field {
	behalf := fc.Address("onBehalfOf")
	amt, mode, fields := repayFields(ctx, fc, fullDebt)
	fields = append(fields, addressField(ctx, "On Behalf Of", behalf), authorizationField())
	return poolPreview("Aave Repay with Permit", "Aave v3 Repay with Permit",
		fmt.Sprintf("Repay %s at %s rate with permit%s", amt.display, mode, onBehalfOf(behalf)),
		fields[1], fields...)
}

func decodeRepayWithATokens(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall) payload.Field {
	amt, mode, fields := repayFields(ctx, fc, fullBalance)
	fields = append(fields, payload.NewTextFieldWithFallback("Repayment Method", "Repaying with aTokens (no transfer required)", "Using aTokens"))
	return poolPreview("Aave Repay with aTokens", "Aave v3 Repay with aTokens",
		fmt.Sprintf("Repay %s using aTokens at %s rate", amt.display, mode),
		fields[1], fields...)
}

func decodeSupplyWithPermit(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall) payload.Field {
	asset, behalf := fc.Address("asset"), fc.Address("onBehalfOf")
	amt := newPoolAmount(ctx, asset, fc.Big("amount"), "")
	amount := amt.field("Amount", "")
	return poolPreview("Aave Supply with Permit", "Aave v3 Supply with Permit",
		fmt.Sprintf("Supply %s with permit%s", amt.display, onBehalfOf(behalf)),
		amount,
		assetField("Asset", amt.symbol, asset),
		amount,
		addressField(ctx, "On Behalf Of", behalf),
		authorizationField(),
	)
}

func decodeLiquidation(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall) payload.Field {
	collateral, debt, user := fc.Address("collateralAsset"), fc.Address("debtAsset"), fc.Address("user")
	amt := newPoolAmount(ctx, debt, fc.Big("debtToCover"), "")
	collateralSymbol := ctx.TokenSymbol(collateral)

	receive := collateralSymbol
	receiveText := receive + " (underlying)"
	if fc.Bool("receiveAToken") {
		receive = "a" + collateralSymbol
		receiveText = receive + " (aToken)"
	}
	debtToCover := payload.NewTextFieldWithFallback(
		"Debt to Cover",
		fmt.Sprintf("%s (%s, raw: %s)", amt.display, debt.Hex(), amt.raw),
		amt.display,
	)
	return poolPreview("Aave Liquidation", "Aave v3 Liquidation Call",
		fmt.Sprintf("Liquidate %s: Cover %s debt, receive %s", user.Hex(), amt.display, receive),
		debtToCover,
		addressField(ctx, "User Being Liquidated", user),
		debtToCover,
		payload.NewTextFieldWithFallback("Collateral Asset", assetText(collateralSymbol, collateral), collateralSymbol),
		payload.NewTextFieldWithFallback("Receive As", receiveText, receive),
	)
}

func decodeCollateral(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall) payload.Field {
	asset := fc.Address("asset")
	symbol := ctx.TokenSymbol(asset)
	verb, detail := "Disable", "Disable as collateral (reduces borrowing power)"
	if fc.Bool("useAsCollateral") {
		verb, detail = "Enable", "Enable as collateral (allows borrowing)"
	}
	action := payload.NewTextFieldWithFallback("Action", detail, verb)
	return poolPreview("Aave Collateral Setting", "Aave v3 Set Collateral",
		fmt.Sprintf("%s %s as collateral", verb, symbol),
		action,
		assetField("Asset", symbol, asset),
		action,
	)
}

func decodeFlashLoan(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall) payload.Field {
	assets := addressList(fc, "assets")
	amounts := bigList(fc, "amounts")

	fields := make([]payload.Field, 0, len(assets)+2)
	summary := fmt.Sprintf("Flash loan %d assets", len(assets))
	for i, asset := range assets {
		amount := new(big.Int)
		if i < len(amounts) {
			amount = amounts[i]
		}
		amt := newPoolAmount(ctx, asset, amount, "")
		if len(assets) == 1 {
			summary = "Flash loan " + amt.display
		}
		fields = append(fields, payload.NewTextFieldWithFallback(
			fmt.Sprintf("Asset %d", i+1),
			fmt.Sprintf("%s (%s)", amt.display, asset.Hex()),
			amt.display,
		))
	}
	receiver := addressField(ctx, "Receiver", fc.Address("receiverAddress"))
	fields = append(fields, receiver, addressField(ctx, "On Behalf Of", fc.Address("onBehalfOf")))
	return poolPreview("Aave Flash Loan", "Aave v3 Flash Loan", summary, receiver, fields...)
}

func decodeFlashLoanSimple(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall) payload.Field {
	asset := fc.Address("asset")
	amt := newPoolAmount(ctx, asset, fc.Big("amount"), "")
	amount := amt.field("Amount", "")
	return poolPreview("Aave Flash Loan", "Aave v3 Simple Flash Loan",
		"Flash loan "+amt.display,
		amount,
		assetField("Asset", amt.symbol, asset),
		amount,
		addressField(ctx, "Receiver", fc.Address("receiverAddress")),
	)
}

func addressList(fc *txanalyzer.FunctionCall, name string) []common.Address {
	p, _ := fc.Param(name)
	out, _ := p.Raw.([]common.Address)
	return out
}

func bigList(fc *txanalyzer.FunctionCall, name string) []*big.Int {
	p, _ := fc.Param(name)
	out, _ := p.Raw.([]*big.Int)
	return out
}
