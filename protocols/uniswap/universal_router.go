package uniswap

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

const routerABIJSON = `[
{"type":"function","name":"execute","stateMutability":"payable","outputs":[],"inputs":[
	{"name":"commands","type":"bytes"},{"name":"inputs","type":"bytes[]"},
	{"name":"deadline","type":"uint256"}]},
{"type":"function","name":"execute","stateMutability":"payable","outputs":[],"inputs":[
	{"name":"commands","type":"bytes"},{"name":"inputs","type":"bytes[]"}]}
]`

var routerABI = txanalyzer.MustParseABI(routerABIJSON)

// Recipient placeholders understood by the router.
var (
	MsgSender      = common.HexToAddress("0x0000000000000000000000000000000000000001")
	AddressThis    = common.HexToAddress("0x0000000000000000000000000000000000000002")
	NativeCurrency = common.Address{}
)

// UniversalRouterVisualizer renders execute batches, one preview per
// command in execution order.
type UniversalRouterVisualizer struct{}

func (UniversalRouterVisualizer) ContractType() registry.ContractType {
	return ContractTypeUniversalRouter
}

func (UniversalRouterVisualizer) Visualize(ctx *txanalyzer.AnalysisContext, data []byte) (payload.Field, bool) {
	fc, err := txanalyzer.AnalyzeMethodCall(routerABI, data)
	if err != nil {
		log.Debug().Err(err).Str("contract_type", string(ContractTypeUniversalRouter)).Msg("router call not decoded")
		return payload.Field{}, false
	}
	p, _ := fc.Param("commands")
	commands, _ := p.Raw.([]byte)
	p, _ = fc.Param("inputs")
	inputs, _ := p.Raw.([][]byte)

	fields := make([]payload.Field, 0, len(commands)+1)
	for i, b := range commands {
		var blob []byte
		if i < len(inputs) {
			blob = inputs[i]
		}
		fields = append(fields, CommandField(ctx, b, blob))
	}
	for i := len(commands); i < len(inputs); i++ {
		fields = append(fields, payload.NewTextFieldWithFallback(
			fmt.Sprintf("Input %d", i+1),
			hexutil.Encode(inputs[i]),
			fmt.Sprintf("Unpaired input %d", i+1),
		))
	}

	if _, hasDeadline := fc.Param("deadline"); hasDeadline {
		fields = append(fields, payload.NewTextField("Deadline", deadlineText(fc.Big("deadline"))))
	}

	plural := "s"
	if len(commands) == 1 {
		plural = ""
	}
	return payload.Preview{
		Label:    "Universal Router",
		Title:    "Uniswap Universal Router Execute",
		Subtitle: fmt.Sprintf("%d command%s", len(commands), plural),
		Expanded: fields,
	}.Field(), true
}

func deadlineText(deadline *big.Int) string {
	if !deadline.IsUint64() || deadline.Uint64() > uint64(1<<62) {
		return deadline.String()
	}
	return time.Unix(int64(deadline.Uint64()), 0).UTC().Format("2006-01-02 15:04 UTC")
}

type commandDecoder func(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall) (string, []payload.Field, error)

var commandDecoders = map[Command]commandDecoder{
	V3SwapExactIn:       decodeV3ExactIn,
	V3SwapExactOut:      decodeV3ExactOut,
	Permit2TransferFrom: decodePermit2TransferFrom,
	Sweep:               decodeSweep,
	Transfer:            decodeTransfer,
	PayPortion:          decodePayPortion,
	V2SwapExactIn:       decodeV2ExactIn,
	V2SwapExactOut:      decodeV2ExactOut,
	Permit2Permit:       decodePermit2Permit,
	WrapETH:             decodeWrapETH,
	UnwrapWETH:          decodeUnwrapWETH,
}

// CommandField renders a single router command. Commands that are unknown
// or whose input does not decode are shown with their raw input.
func CommandField(ctx *txanalyzer.AnalysisContext, b byte, blob []byte) payload.Field {
	c, allowRevert := ParseCommand(b)
	title := c.Title()
	if allowRevert {
		title += " (allow revert)"
	}

	decode, found := commandDecoders[c]
	if !found {
		return rawCommand(c, blob)
	}
	fc, err := decodeInput(c, blob)
	if err != nil {
		log.Debug().Err(err).Str("command", c.String()).Msg("command input not decoded")
		return rawCommand(c, blob)
	}
	summary, fields, err := decode(ctx, fc)
	if err != nil {
		log.Debug().Err(err).Str("command", c.String()).Msg("command input not understood")
		return rawCommand(c, blob)
	}
	return payload.Preview{
		Label:    title,
		Title:    title,
		Subtitle: summary,
		Expanded: fields,
	}.Field()
}

func rawCommand(c Command, blob []byte) payload.Field {
	label := fmt.Sprintf("Command 0x%02x", byte(c))
	return payload.NewTextFieldWithFallback(label, hexutil.Encode(blob), label)
}

// recipientText names the router placeholders.
func recipientText(ctx *txanalyzer.AnalysisContext, addr common.Address) string {
	switch addr {
	case MsgSender:
		return "Sender"
	case AddressThis:
		return "Router"
	}
	resolved := ctx.ResolveAddress(addr)
	if resolved.Known() {
		return resolved.Name()
	}
	return addr.Hex()
}

func recipientField(ctx *txanalyzer.AnalysisContext, addr common.Address) payload.Field {
	switch addr {
	case MsgSender, AddressThis:
		return payload.NewTextField("Recipient", recipientText(ctx, addr))
	}
	name := ""
	if resolved := ctx.ResolveAddress(addr); resolved.Known() {
		name = resolved.Name()
	}
	return payload.NewAddressField("Recipient", addr.Hex(), name, "")
}

func tokenSymbol(ctx *txanalyzer.AnalysisContext, addr common.Address) string {
	if addr == NativeCurrency {
		return "ETH"
	}
	return ctx.TokenSymbol(addr)
}

func tokenAmount(ctx *txanalyzer.AnalysisContext, addr common.Address, amount *big.Int) string {
	if addr == NativeCurrency {
		return vscommon.FormatEther(amount) + " ETH"
	}
	value, symbol, _ := ctx.FormatTokenAmount(addr, amount)
	return value + " " + symbol
}

func tokenField(ctx *txanalyzer.AnalysisContext, label string, addr common.Address) payload.Field {
	if addr == NativeCurrency {
		return payload.NewAddressField(label, addr.Hex(), "Native ETH", "ETH")
	}
	if t, known := ctx.Token(addr); known {
		return payload.NewAddressField(label, addr.Hex(), t.Name, t.Symbol)
	}
	return payload.NewAddressField(label, addr.Hex(), "", "")
}

func swapFields(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall, in, out common.Address, inLabel, outLabel, inParam, outParam, route string) []payload.Field {
	return []payload.Field{
		payload.NewTextField(inLabel, tokenAmount(ctx, in, fc.Big(inParam))),
		payload.NewTextField(outLabel, tokenAmount(ctx, out, fc.Big(outParam))),
		payload.NewTextField("Route", route),
		recipientField(ctx, fc.Address("recipient")),
		payload.NewTextField("Payer", payerText(fc.Bool("payerIsUser"))),
	}
}

func payerText(payerIsUser bool) string {
	if payerIsUser {
		return "Sender"
	}
	return "Router"
}

func v3Path(fc *txanalyzer.FunctionCall) ([]Hop, error) {
	p, _ := fc.Param("path")
	raw, _ := p.Raw.([]byte)
	return ParsePath(raw)
}

func decodeV3ExactIn(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall) (string, []payload.Field, error) {
	hops, err := v3Path(fc)
	if err != nil {
		return "", nil, err
	}
	in, out := hops[0].TokenIn, hops[len(hops)-1].TokenOut
	summary := fmt.Sprintf("Swap %s for at least %s",
		tokenAmount(ctx, in, fc.Big("amountIn")), tokenAmount(ctx, out, fc.Big("amountOutMin")))
	route := PathString(hops, func(a common.Address) string { return tokenSymbol(ctx, a) })
	return summary, swapFields(ctx, fc, in, out, "Amount In", "Minimum Out", "amountIn", "amountOutMin", route), nil
}

// Exact output paths are encoded from the output token back to the input.
func decodeV3ExactOut(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall) (string, []payload.Field, error) {
	hops, err := v3Path(fc)
	if err != nil {
		return "", nil, err
	}
	out, in := hops[0].TokenIn, hops[len(hops)-1].TokenOut
	reversed := make([]Hop, 0, len(hops))
	for i := len(hops) - 1; i >= 0; i-- {
		reversed = append(reversed, Hop{TokenIn: hops[i].TokenOut, Fee: hops[i].Fee, TokenOut: hops[i].TokenIn})
	}
	summary := fmt.Sprintf("Swap at most %s for %s",
		tokenAmount(ctx, in, fc.Big("amountInMax")), tokenAmount(ctx, out, fc.Big("amountOut")))
	route := PathString(reversed, func(a common.Address) string { return tokenSymbol(ctx, a) })
	return summary, swapFields(ctx, fc, in, out, "Maximum In", "Amount Out", "amountInMax", "amountOut", route), nil
}

func v2Path(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall) ([]common.Address, string, error) {
	p, _ := fc.Param("path")
	path, _ := p.Raw.([]common.Address)
	if len(path) < 2 {
		return nil, "", errors.Errorf("V2 path needs at least 2 tokens, got %d", len(path))
	}
	route := ""
	for i, a := range path {
		if i > 0 {
			route += " > "
		}
		route += tokenSymbol(ctx, a)
	}
	return path, route, nil
}

func decodeV2ExactIn(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall) (string, []payload.Field, error) {
	path, route, err := v2Path(ctx, fc)
	if err != nil {
		return "", nil, err
	}
	in, out := path[0], path[len(path)-1]
	summary := fmt.Sprintf("Swap %s for at least %s",
		tokenAmount(ctx, in, fc.Big("amountIn")), tokenAmount(ctx, out, fc.Big("amountOutMin")))
	return summary, swapFields(ctx, fc, in, out, "Amount In", "Minimum Out", "amountIn", "amountOutMin", route), nil
}

func decodeV2ExactOut(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall) (string, []payload.Field, error) {
	path, route, err := v2Path(ctx, fc)
	if err != nil {
		return "", nil, err
	}
	in, out := path[0], path[len(path)-1]
	summary := fmt.Sprintf("Swap at most %s for %s",
		tokenAmount(ctx, in, fc.Big("amountInMax")), tokenAmount(ctx, out, fc.Big("amountOut")))
	return summary, swapFields(ctx, fc, in, out, "Maximum In", "Amount Out", "amountInMax", "amountOut", route), nil
}

func decodePermit2TransferFrom(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall) (string, []payload.Field, error) {
	token := fc.Address("token")
	amount := tokenAmount(ctx, token, fc.Big("amount"))
	summary := fmt.Sprintf("Transfer %s via Permit2 to %s", amount, recipientText(ctx, fc.Address("recipient")))
	return summary, []payload.Field{
		tokenField(ctx, "Token", token),
		payload.NewTextField("Amount", amount),
		recipientField(ctx, fc.Address("recipient")),
	}, nil
}

func decodeSweep(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall) (string, []payload.Field, error) {
	token := fc.Address("token")
	minimum := tokenAmount(ctx, token, fc.Big("amountMin"))
	summary := fmt.Sprintf("Sweep at least %s to %s", minimum, recipientText(ctx, fc.Address("recipient")))
	return summary, []payload.Field{
		tokenField(ctx, "Token", token),
		payload.NewTextField("Minimum Amount", minimum),
		recipientField(ctx, fc.Address("recipient")),
	}, nil
}

func decodeTransfer(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall) (string, []payload.Field, error) {
	token := fc.Address("token")
	amount := tokenAmount(ctx, token, fc.Big("value"))
	summary := fmt.Sprintf("Transfer %s to %s", amount, recipientText(ctx, fc.Address("recipient")))
	return summary, []payload.Field{
		tokenField(ctx, "Token", token),
		payload.NewTextField("Amount", amount),
		recipientField(ctx, fc.Address("recipient")),
	}, nil
}

// Portions are given in basis points, 25 is 0.25%.
func decodePayPortion(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall) (string, []payload.Field, error) {
	token := fc.Address("token")
	portion := vscommon.FormatUnits(fc.Big("bips"), 2) + "%"
	summary := fmt.Sprintf("Pay %s of %s to %s", portion, tokenSymbol(ctx, token), recipientText(ctx, fc.Address("recipient")))
	return summary, []payload.Field{
		tokenField(ctx, "Token", token),
		payload.NewTextField("Portion", portion),
		recipientField(ctx, fc.Address("recipient")),
	}, nil
}

func decodeWrapETH(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall) (string, []payload.Field, error) {
	amount := vscommon.FormatEther(fc.Big("amountMin")) + " ETH"
	summary := fmt.Sprintf("Wrap %s to %s", amount, recipientText(ctx, fc.Address("recipient")))
	return summary, []payload.Field{
		payload.NewTextField("Amount", amount),
		recipientField(ctx, fc.Address("recipient")),
	}, nil
}

func decodeUnwrapWETH(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall) (string, []payload.Field, error) {
	amount := vscommon.FormatEther(fc.Big("amountMin")) + " WETH"
	summary := fmt.Sprintf("Unwrap at least %s to %s", amount, recipientText(ctx, fc.Address("recipient")))
	return summary, []payload.Field{
		payload.NewTextField("Minimum Amount", amount),
		recipientField(ctx, fc.Address("recipient")),
	}, nil
}

// PermitSingle is the Permit2 allowance signed for PERMIT2_PERMIT.
type PermitSingle struct {
	Details     PermitDetails
	Spender     common.Address
	SigDeadline *big.Int
}

type PermitDetails struct {
	Token      common.Address
	Amount     *big.Int
	Expiration *big.Int
	Nonce      *big.Int
}

func decodePermit2Permit(ctx *txanalyzer.AnalysisContext, fc *txanalyzer.FunctionCall) (string, []payload.Field, error) {
	p, _ := fc.Param("permitSingle")
	permit, err := permitSingleFrom(p.Raw)
	if err != nil {
		return "", nil, err
	}
	token := permit.Details.Token
	amount := allowanceText(ctx, token, permit.Details.Amount)
	spender := recipientText(ctx, permit.Spender)
	summary := fmt.Sprintf("Permit %s to spend %s", spender, amount)

	spenderField := payload.NewAddressField("Spender", permit.Spender.Hex(), ctx.ResolveAddress(permit.Spender).Name(), "")
	return summary, []payload.Field{
		tokenField(ctx, "Token", token),
		payload.NewTextField("Amount", amount),
		spenderField,
		payload.NewTextField("Expires", expirationText(permit.Details.Expiration)),
		payload.NewTextField("Signature Deadline", deadlineText(permit.SigDeadline)),
		payload.NewNumberField("Nonce", permit.Details.Nonce.String()),
	}, nil
}

// permitSingleFrom copies the anonymous struct go-ethereum unpacks tuples
// into.
func permitSingleFrom(raw interface{}) (PermitSingle, error) {
	var out PermitSingle
	v := reflect.ValueOf(raw)
	if v.Kind() != reflect.Struct {
		return out, errors.Errorf("unexpected permit type %T", raw)
	}
	details := v.FieldByName("Details")
	spender := v.FieldByName("Spender")
	deadline := v.FieldByName("SigDeadline")
	if !details.IsValid() || !spender.IsValid() || !deadline.IsValid() {
		return out, errors.Errorf("unexpected permit layout %T", raw)
	}
	out.Spender, _ = spender.Interface().(common.Address)
	out.SigDeadline = bigValue(deadline)
	out.Details.Token, _ = details.FieldByName("Token").Interface().(common.Address)
	out.Details.Amount = bigValue(details.FieldByName("Amount"))
	out.Details.Expiration = bigValue(details.FieldByName("Expiration"))
	out.Details.Nonce = bigValue(details.FieldByName("Nonce"))
	return out, nil
}

func bigValue(v reflect.Value) *big.Int {
	if !v.IsValid() {
		return new(big.Int)
	}
	if n, ok := v.Interface().(*big.Int); ok && n != nil {
		return n
	}
	return new(big.Int)
}

// allowanceText shows the maximum uint160 allowance as Unlimited.
func allowanceText(ctx *txanalyzer.AnalysisContext, token common.Address, amount *big.Int) string {
	if vscommon.IsMaxUint(amount, 160) {
		return "Unlimited " + tokenSymbol(ctx, token)
	}
	return tokenAmount(ctx, token, amount)
}

func expirationText(expiration *big.Int) string {
	if expiration.Sign() == 0 {
		return "Expires immediately"
	}
	return deadlineText(expiration)
}
