package morpho

import (
	"fmt"
	"math/big"
	"reflect"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	vscommon "github.com/tranvictor/visualsign/common"
	"github.com/tranvictor/visualsign/payload"
	"github.com/tranvictor/visualsign/registry"
	"github.com/tranvictor/visualsign/txanalyzer"
)

var bundlerABI = txanalyzer.MustParseABI(`[
{"type":"function","name":"multicall","stateMutability":"payable","outputs":[],"inputs":[
	{"name":"bundle","type":"tuple[]","components":[
		{"name":"to","type":"address"},{"name":"data","type":"bytes"},
		{"name":"value","type":"uint256"},{"name":"skipRevert","type":"bool"},
		{"name":"callbackHash","type":"bytes32"}]}]}
]`)

// Operations the bundler forwards to tokens and to GeneralAdapter1.
var innerABI = txanalyzer.MustParseABI(`[
{"type":"function","name":"permit","stateMutability":"nonpayable","outputs":[],"inputs":[
	{"name":"owner","type":"address"},{"name":"spender","type":"address"},
	{"name":"value","type":"uint256"},{"name":"deadline","type":"uint256"},
	{"name":"v","type":"uint8"},{"name":"r","type":"bytes32"},{"name":"s","type":"bytes32"}]},
{"type":"function","name":"transferFrom","stateMutability":"nonpayable","outputs":[{"name":"","type":"bool"}],"inputs":[
	{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"amount","type":"uint256"}]},
{"type":"function","name":"erc20TransferFrom","stateMutability":"nonpayable","outputs":[],"inputs":[
	{"name":"token","type":"address"},{"name":"receiver","type":"address"},{"name":"amount","type":"uint256"}]},
{"type":"function","name":"erc4626Deposit","stateMutability":"nonpayable","outputs":[],"inputs":[
	{"name":"vault","type":"address"},{"name":"assets","type":"uint256"},
	{"name":"minShares","type":"uint256"},{"name":"receiver","type":"address"}]}
]`)

// Call is one entry of a Bundler3 multicall.
type Call struct {
	To           common.Address
	Data         []byte
	Value        *big.Int
	SkipRevert   bool
	CallbackHash [32]byte
}

// BundlerVisualizer renders Bundler3 multicalls, one field per inner call.
type BundlerVisualizer struct{}

func (BundlerVisualizer) ContractType() registry.ContractType {
	return ContractTypeBundler3
}

func (BundlerVisualizer) Visualize(ctx *txanalyzer.AnalysisContext, data []byte) (payload.Field, bool) {
	fc, err := txanalyzer.AnalyzeMethodCall(bundlerABI, data)
	if err == nil && fc.Method != "multicall" {
		err = txanalyzer.ErrSelectorNotFound
	}
	var calls []Call
	if err == nil {
		p, _ := fc.Param("bundle")
		calls, err = callsFrom(p.Raw)
	}
	if err != nil {
		log.Debug().Err(err).Str("contract_type", string(ContractTypeBundler3)).Msg("bundler call not decoded")
		return payload.Field{}, false
	}

	fields := make([]payload.Field, 0, len(calls))
	for _, call := range calls {
		fields = append(fields, InnerCallField(ctx.ForCall(call.To, call.Value), call))
	}
	f := payload.Preview{
		Label:    "Morpho Bundler",
		Title:    "Morpho Bundler Multicall",
		Subtitle: fmt.Sprintf("%d operation(s)", len(calls)),
		Expanded: fields,
	}.Field()
	f.FallbackText = fmt.Sprintf("Morpho Bundler: %d operations", len(calls))
	return f, true
}

func callsFrom(raw interface{}) ([]Call, error) {
	v := reflect.ValueOf(raw)
	if v.Kind() != reflect.Slice {
		return nil, errors.Errorf("unexpected bundle type %T", raw)
	}
	calls := make([]Call, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		item := v.Index(i)
		if item.Kind() != reflect.Struct || !item.FieldByName("To").IsValid() {
			return nil, errors.Errorf("unexpected call type %s", item.Type())
		}
		var call Call
		call.To, _ = item.FieldByName("To").Interface().(common.Address)
		call.Data, _ = item.FieldByName("Data").Interface().([]byte)
		call.Value, _ = item.FieldByName("Value").Interface().(*big.Int)
		call.SkipRevert = item.FieldByName("SkipRevert").Bool()
		call.CallbackHash, _ = item.FieldByName("CallbackHash").Interface().([32]byte)
		if call.Value == nil {
			call.Value = new(big.Int)
		}
		calls = append(calls, call)
	}
	return calls, nil
}

type innerDecoder func(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall) payload.Field

var innerDecoders = map[string]innerDecoder{
	"permit":            decodePermit,
	"transferFrom":      decodeTransferFrom,
	"erc20TransferFrom": decodeAdapterTransfer,
	"erc4626Deposit":    decodeVaultDeposit,
}

// InnerCallField renders one bundled call. ctx must describe the call,
// Target being the address the bundler calls.
func InnerCallField(ctx *txanalyzer.AnalysisContext, call Call) payload.Field {
	fc, err := txanalyzer.AnalyzeMethodCall(innerABI, call.Data)
	if err != nil {
		var decodeErr *txanalyzer.DecodeError
		if errors.As(err, &decodeErr) {
			return undecodedField(decodeErr.Method, call.Data)
		}
		return unknownCallField(call.To, call.Data)
	}
	return innerDecoders[fc.Method](ctx, fc)
}

func unknownCallField(to common.Address, data []byte) payload.Field {
	selector := "unknown"
	if len(data) >= 4 {
		selector = hexutil.Encode(data[:4])
	}
	return payload.NewTextFieldWithFallback(
		"Unknown Call",
		fmt.Sprintf("call to %s, selector %s", to.Hex(), selector),
		"call to "+to.Hex(),
	)
}

var undecodedLabels = map[string]string{
	"permit":            "Permit",
	"transferFrom":      "ERC20 Transfer From",
	"erc20TransferFrom": "Morpho Transfer",
	"erc4626Deposit":    "ERC4626 Deposit",
}

func undecodedField(method string, data []byte) payload.Field {
	label := undecodedLabels[method]
	if label == "" {
		label = method
	}
	return payload.NewTextFieldWithFallback(label, "Failed to decode parameters", label+": "+hexutil.Encode(data))
}

func tokenAmount(ctx *txanalyzer.AnalysisContext, token common.Address, amount *big.Int) (string, string) {
	value, symbol, _ := ctx.FormatTokenAmount(token, amount)
	return value, symbol
}

func tokenField(ctx *txanalyzer.AnalysisContext, token common.Address) payload.Field {
	return payload.NewTextFieldWithFallback("Token",
		fmt.Sprintf("%s (%s)", ctx.TokenSymbol(token), token.Hex()), token.Hex())
}

func addressField(ctx *txanalyzer.AnalysisContext, label string, addr common.Address) payload.Field {
	return payload.NewAddressField(label, addr.Hex(), ctx.ResolveAddress(addr).Name(), "")
}

func amountField(value, symbol string, raw *big.Int) payload.Field {
	return payload.NewTextFieldWithFallback("Amount",
		fmt.Sprintf("%s %s (raw: %s)", value, symbol, raw), raw.String())
}

// ERC-2612 permits are sent to the token itself.
func decodePermit(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall) payload.Field {
	token := ctx.Target
	value, deadline := fc.Big("value"), fc.Big("deadline")
	amount, symbol := tokenAmount(ctx, token, value)
	valueText := fmt.Sprintf("%s %s (raw: %s)", amount, symbol, value)
	if vscommon.IsMaxUint(value, 256) {
		amount = "Unlimited"
		valueText = value.String() + " (unlimited)"
	}
	expiry := deadlineText(deadline)
	spender := fc.Address("spender")
	summary := fmt.Sprintf("Permit %s %s to %s (expires: %s)", amount, ctx.TokenSymbol(token), spender.Hex(), expiry)

	return payload.Preview{
		Label:    "Permit",
		Title:    "ERC-2612 Permit",
		Subtitle: summary,
		Expanded: []payload.Field{
			tokenField(ctx, token),
			addressField(ctx, "Owner", fc.Address("owner")),
			addressField(ctx, "Spender", spender),
			payload.NewTextFieldWithFallback("Value", valueText, value.String()),
			payload.NewTextFieldWithFallback("Deadline", fmt.Sprintf("%s (%s)", deadline, expiry), deadline.String()),
		},
	}.Field()
}

func deadlineText(deadline *big.Int) string {
	if vscommon.IsMaxUint(deadline, 256) {
		return "No expiry"
	}
	if !deadline.IsUint64() || deadline.Uint64() > uint64(1<<62) {
		return deadline.String()
	}
	return time.Unix(int64(deadline.Uint64()), 0).UTC().Format("2006-01-02 15:04 UTC")
}

// A plain transferFrom is sent to the token, pulling from an approved
// holder.
func decodeTransferFrom(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall) payload.Field {
	token := ctx.Target
	raw := fc.Big("amount")
	amount, symbol := tokenAmount(ctx, token, raw)
	from, to := fc.Address("from"), fc.Address("to")
	summary := fmt.Sprintf("Transfer %s %s from %s to %s", amount, symbol, from.Hex(), to.Hex())
	return payload.Preview{
		Label:    "Transfer From",
		Title:    "ERC20 Transfer From",
		Subtitle: summary,
		Expanded: []payload.Field{
			tokenField(ctx, token),
			addressField(ctx, "From", from),
			addressField(ctx, "To", to),
			amountField(amount, symbol, raw),
		},
	}.Field()
}

func decodeAdapterTransfer(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall) payload.Field {
	token, receiver := fc.Address("token"), fc.Address("receiver")
	raw := fc.Big("amount")
	amount, symbol := tokenAmount(ctx, token, raw)
	return payload.Preview{
		Label:    "Morpho Transfer",
		Title:    "ERC20 Transfer",
		Subtitle: fmt.Sprintf("Transfer %s %s to %s", amount, symbol, receiver.Hex()),
		Expanded: []payload.Field{
			tokenField(ctx, token),
			addressField(ctx, "Receiver", receiver),
			amountField(amount, symbol, raw),
		},
	}.Field()
}

// Vault assets and shares are shown raw, the underlying asset of a vault is
// not known from calldata.
func decodeVaultDeposit(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall) payload.Field {
	vault, receiver := fc.Address("vault"), fc.Address("receiver")
	assets, minShares := fc.Big("assets"), fc.Big("minShares")

	vaultDisplay := "vault " + vault.Hex()
	vaultText := vault.Hex()
	if t, found := ctx.Token(vault); found {
		vaultDisplay = t.Symbol + " vault"
		vaultText = fmt.Sprintf("%s (%s)", t.Symbol, vault.Hex())
	}
	summary := fmt.Sprintf("Deposit %s assets into %s (min %s shares) for %s", assets, vaultDisplay, minShares, receiver.Hex())
	return payload.Preview{
		Label:    "Vault Deposit",
		Title:    "ERC4626 Vault Deposit",
		Subtitle: summary,
		Expanded: []payload.Field{
			payload.NewTextFieldWithFallback("Vault", vaultText, vault.Hex()),
			payload.NewTextField("Assets", assets.String()),
			payload.NewTextField("Min Shares", minShares.String()),
			addressField(ctx, "Receiver", receiver),
		},
	}.Field()
}
