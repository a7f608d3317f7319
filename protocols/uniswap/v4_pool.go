package uniswap

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/tranvictor/visualsign/payload"
	"github.com/tranvictor/visualsign/registry"
	"github.com/tranvictor/visualsign/txanalyzer"
)

const poolKeyJSON = `{"name":"key","type":"tuple","components":[
	{"name":"currency0","type":"address"},{"name":"currency1","type":"address"},
	{"name":"fee","type":"uint24"},{"name":"tickSpacing","type":"int24"},
	{"name":"hooks","type":"address"}]}`

var poolManagerABI = txanalyzer.MustParseABI(`[
{"type":"function","name":"initialize","stateMutability":"nonpayable","outputs":[{"name":"tick","type":"int24"}],"inputs":[
	` + poolKeyJSON + `,{"name":"sqrtPriceX96","type":"uint160"}]},
{"type":"function","name":"initialize","stateMutability":"nonpayable","outputs":[{"name":"tick","type":"int24"}],"inputs":[
	` + poolKeyJSON + `,{"name":"sqrtPriceX96","type":"uint160"},{"name":"hookData","type":"bytes"}]},
{"type":"function","name":"swap","stateMutability":"nonpayable","outputs":[{"name":"swapDelta","type":"int256"}],"inputs":[
	` + poolKeyJSON + `,
	{"name":"params","type":"tuple","components":[
		{"name":"zeroForOne","type":"bool"},{"name":"amountSpecified","type":"int256"},
		{"name":"sqrtPriceLimitX96","type":"uint160"}]},
	{"name":"hookData","type":"bytes"}]}
]`)

// PoolKey identifies a V4 pool.
type PoolKey struct {
	Currency0   common.Address
	Currency1   common.Address
	Fee         *big.Int
	TickSpacing *big.Int
	Hooks       common.Address
}

type SwapParams struct {
	ZeroForOne        bool
	AmountSpecified   *big.Int
	SqrtPriceLimitX96 *big.Int
}

// V4PoolManagerVisualizer renders pool initialization and direct swaps on
// the V4 singleton.
type V4PoolManagerVisualizer struct{}

func (V4PoolManagerVisualizer) ContractType() registry.ContractType {
	return ContractTypeV4PoolManager
}

func (V4PoolManagerVisualizer) Visualize(ctx *txanalyzer.AnalysisContext, data []byte) (payload.Field, bool) {
	fc, err := txanalyzer.AnalyzeMethodCall(poolManagerABI, data)
	if err == nil {
		var p txanalyzer.ParamResult
		p, _ = fc.Param("key")
		var key PoolKey
		key, err = poolKeyFrom(p.Raw)
		if err == nil {
			switch fc.Method {
			case "initialize":
				return visualizeInitialize(ctx, key, fc), true
			case "swap":
				p, _ = fc.Param("params")
				var params SwapParams
				if params, err = swapParamsFrom(p.Raw); err == nil {
					return visualizeSwap(ctx, key, params, hookData(fc)), true
				}
			}
		}
	}
	log.Debug().Err(err).Str("contract_type", string(ContractTypeV4PoolManager)).Msg("pool manager call not decoded")
	return payload.Field{}, false
}

func hookData(fc *txanalyzer.FunctionCall) []byte {
	p, _ := fc.Param("hookData")
	data, _ := p.Raw.([]byte)
	return data
}

func poolKeyFrom(raw interface{}) (PoolKey, error) {
	var key PoolKey
	v := reflect.ValueOf(raw)
	if v.Kind() != reflect.Struct || !v.FieldByName("Currency0").IsValid() || !v.FieldByName("Hooks").IsValid() {
		return key, errors.Errorf("unexpected pool key type %T", raw)
	}
	key.Currency0, _ = v.FieldByName("Currency0").Interface().(common.Address)
	key.Currency1, _ = v.FieldByName("Currency1").Interface().(common.Address)
	key.Fee = bigValue(v.FieldByName("Fee"))
	key.TickSpacing = bigValue(v.FieldByName("TickSpacing"))
	key.Hooks, _ = v.FieldByName("Hooks").Interface().(common.Address)
	return key, nil
}

func swapParamsFrom(raw interface{}) (SwapParams, error) {
	var params SwapParams
	v := reflect.ValueOf(raw)
	if v.Kind() != reflect.Struct || !v.FieldByName("ZeroForOne").IsValid() {
		return params, errors.Errorf("unexpected swap params type %T", raw)
	}
	params.ZeroForOne = v.FieldByName("ZeroForOne").Bool()
	params.AmountSpecified = bigValue(v.FieldByName("AmountSpecified"))
	params.SqrtPriceLimitX96 = bigValue(v.FieldByName("SqrtPriceLimitX96"))
	return params, nil
}

func feePercent(fee *big.Int) string {
	if !fee.IsUint64() || fee.Uint64() > 1<<24 {
		return fee.String()
	}
	return FeePercent(uint32(fee.Uint64()))
}

func visualizeInitialize(ctx *txanalyzer.AnalysisContext, key PoolKey, fc *txanalyzer.FunctionCall) payload.Field {
	symbol0, symbol1 := tokenSymbol(ctx, key.Currency0), tokenSymbol(ctx, key.Currency1)
	fee := feePercent(key.Fee)
	fields := []payload.Field{
		payload.NewTextField("Currency 0", symbol0),
		payload.NewTextField("Currency 1", symbol1),
		payload.NewTextFieldWithFallback("Fee", fmt.Sprintf("%s (%s)", key.Fee, fee), key.Fee.String()),
		payload.NewTextField("Tick Spacing", key.TickSpacing.String()),
		payload.NewTextField("Sqrt Price X96", fc.Big("sqrtPriceX96").String()),
	}
	if key.Hooks != (common.Address{}) {
		fields = append(fields, hookField(key.Hooks))
	}
	if data := hookData(fc); len(data) > 0 {
		fields = append(fields, hookDataField(data))
	}
	f := payload.Preview{
		Label:    "Initialize Pool",
		Title:    "Initialize V4 Pool",
		Subtitle: "Fee: " + fee,
		Expanded: fields,
	}.Field()
	f.FallbackText = fmt.Sprintf("Uniswap V4: Initialize Pool (%s/%s)", symbol0, symbol1)
	return f
}

func hookField(hooks common.Address) payload.Field {
	return payload.NewAddressField("Hook Address", hooks.Hex(), "Hook", "")
}

func hookDataField(data []byte) payload.Field {
	encoded := hexutil.Encode(data)
	return payload.NewTextFieldWithFallback("Hook Data", encoded, encoded[2:])
}

// swapToken describes one side of a swap for display.
type swapToken struct {
	addr     common.Address
	symbol   string
	name     string
	verified bool
}

func newSwapToken(ctx *txanalyzer.AnalysisContext, addr common.Address) swapToken {
	if t, found := ctx.Token(addr); found {
		return swapToken{addr: addr, symbol: t.Symbol, name: t.Name, verified: true}
	}
	if addr == NativeCurrency {
		return swapToken{addr: addr, symbol: "ETH", name: "Native ETH"}
	}
	return swapToken{addr: addr, symbol: addr.Hex(), name: addr.Hex()}
}

func (t swapToken) field(label string) payload.Field {
	f := payload.NewAddressField(label, t.addr.Hex(), t.name, t.symbol)
	f.FallbackText = fmt.Sprintf("%s (%s)", t.symbol, t.addr.Hex())
	if t.verified {
		f.AddressV2.BadgeText = "Verified"
	}
	return f
}

// A negative amountSpecified is an exact input swap, a positive one exact
// output. The magnitude is in units of the specified side.
func visualizeSwap(ctx *txanalyzer.AnalysisContext, key PoolKey, params SwapParams, data []byte) payload.Field {
	in, out := newSwapToken(ctx, key.Currency1), newSwapToken(ctx, key.Currency0)
	if params.ZeroForOne {
		in, out = out, in
	}
	exactInput := params.AmountSpecified.Sign() < 0
	magnitude := new(big.Int).Abs(params.AmountSpecified)
	specified := out
	if exactInput {
		specified = in
	}
	amount, _, _ := ctx.FormatTokenAmount(specified.addr, magnitude)

	var fields []payload.Field
	if exactInput {
		fields = append(fields, payload.NewAmountField("Selling (Exact)", amount, in.symbol))
	} else {
		fields = append(fields, payload.NewTextFieldWithFallback("Selling (Est.)",
			"Unknown Amount of "+in.symbol, "Unknown "+in.symbol))
	}
	fields = append(fields, in.field("Input Token"))
	if exactInput {
		fields = append(fields, payload.NewTextFieldWithFallback("Buying (Est.)",
			fmt.Sprintf("Estimated %s (amount determined at execution)", out.symbol),
			fmt.Sprintf("Estimated %s (determined at execution)", out.symbol)))
	} else {
		fields = append(fields, payload.NewAmountField("Buying (Exact)", amount, out.symbol))
	}
	fields = append(fields, out.field("Output Token"))

	fee := feePercent(key.Fee)
	fields = append(fields, payload.NewTextField("Pool Fee", fee))
	if params.SqrtPriceLimitX96.Sign() != 0 {
		limit := params.SqrtPriceLimitX96.String()
		fields = append(fields, payload.NewTextFieldWithFallback("Price Limit (Slippage Protection)",
			fmt.Sprintf("Price limit: %s (sqrtPriceX96)", limit), "Price limit: "+limit))
	}
	if key.Hooks != (common.Address{}) {
		fields = append(fields, hookField(key.Hooks))
	}
	if len(data) > 0 {
		fields = append(fields, hookDataField(data))
	}

	header := fmt.Sprintf("Swap %s for %s %s", in.symbol, amount, out.symbol)
	if exactInput {
		header = fmt.Sprintf("Swap %s %s for %s", amount, in.symbol, out.symbol)
	}
	f := payload.Preview{
		Label:     "Swap",
		Title:     "Swap",
		Subtitle:  fmt.Sprintf("V4 Pool (%s Fee)", fee),
		Condensed: fields[:2],
		Expanded:  fields,
	}.Field()
	f.FallbackText = header + " via V4"
	return f
}
