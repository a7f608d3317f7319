// Package erc20 recognises plain ERC-20 token movements on contracts that
// have no registered type.
package erc20

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"

	vscommon "github.com/tranvictor/visualsign/common"
	"github.com/tranvictor/visualsign/payload"
	"github.com/tranvictor/visualsign/txanalyzer"
)

const erc20ABIJSON = `[
{"type":"function","name":"transfer","stateMutability":"nonpayable","outputs":[{"name":"","type":"bool"}],"inputs":[
	{"name":"to","type":"address"},{"name":"amount","type":"uint256"}]},
{"type":"function","name":"transferFrom","stateMutability":"nonpayable","outputs":[{"name":"","type":"bool"}],"inputs":[
	{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"amount","type":"uint256"}]},
{"type":"function","name":"approve","stateMutability":"nonpayable","outputs":[{"name":"","type":"bool"}],"inputs":[
	{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}]}
]`

var erc20ABI = txanalyzer.MustParseABI(erc20ABIJSON)

// VisualizeTransfer renders data as an ERC-20 call on ctx.Target. It only
// succeeds for transfer, transferFrom and approve when the parameters decode
// exactly. The token itself need not be registered; amounts of unknown
// tokens stay raw.
func VisualizeTransfer(ctx *txanalyzer.AnalysisContext, data []byte) (payload.Field, bool) {
	fc, err := txanalyzer.AnalyzeMethodCall(erc20ABI, data)
	if err != nil {
		log.Debug().Err(err).Str("target", ctx.Target.Hex()).Msg("not a simple token transfer")
		return payload.Field{}, false
	}
	token := ctx.Target
	amount := fc.Big("amount")

	switch fc.Method {
	case "transfer":
		to := fc.Address("to")
		display := amountText(ctx, token, amount)
		return payload.Preview{
			Label:     "Token Transfer",
			Title:     "ERC20 Transfer",
			Subtitle:  fmt.Sprintf("Transfer %s to %s", display, to.Hex()),
			Condensed: []payload.Field{amountField(ctx, token, amount)},
			Expanded: []payload.Field{
				tokenField(ctx, token),
				addressField(ctx, "To", to),
				amountField(ctx, token, amount),
			},
		}.Field(), true
	case "transferFrom":
		from, to := fc.Address("from"), fc.Address("to")
		display := amountText(ctx, token, amount)
		return payload.Preview{
			Label:     "Token Transfer",
			Title:     "ERC20 Transfer From",
			Subtitle:  fmt.Sprintf("Transfer %s from %s to %s", display, from.Hex(), to.Hex()),
			Condensed: []payload.Field{amountField(ctx, token, amount)},
			Expanded: []payload.Field{
				tokenField(ctx, token),
				addressField(ctx, "From", from),
				addressField(ctx, "To", to),
				amountField(ctx, token, amount),
			},
		}.Field(), true
	case "approve":
		spender := fc.Address("spender")
		display := amountText(ctx, token, amount)
		if vscommon.IsMaxUint(amount, 256) {
			display = "Unlimited " + ctx.TokenSymbol(token)
		}
		allowance := payload.NewTextField("Allowance", display)
		return payload.Preview{
			Label:     "Token Approval",
			Title:     "ERC20 Approve",
			Subtitle:  fmt.Sprintf("Approve %s to spend %s", spender.Hex(), display),
			Condensed: []payload.Field{allowance},
			Expanded: []payload.Field{
				tokenField(ctx, token),
				addressField(ctx, "Spender", spender),
				allowance,
			},
		}.Field(), true
	}
	return payload.Field{}, false
}

func amountText(ctx *txanalyzer.AnalysisContext, token common.Address, amount *big.Int) string {
	value, symbol, _ := ctx.FormatTokenAmount(token, amount)
	return value + " " + symbol
}

// amountField is an amount_v2 for registered tokens and the raw integer
// otherwise.
func amountField(ctx *txanalyzer.AnalysisContext, token common.Address, amount *big.Int) payload.Field {
	value, symbol, found := ctx.FormatTokenAmount(token, amount)
	if !found {
		return payload.NewNumberField("Amount", amount.String())
	}
	return payload.NewAmountField("Amount", value, symbol)
}

func tokenField(ctx *txanalyzer.AnalysisContext, token common.Address) payload.Field {
	if t, found := ctx.Token(token); found {
		return payload.NewAddressField("Token", token.Hex(), t.Name, t.Symbol)
	}
	return payload.NewAddressField("Token", token.Hex(), "", "")
}

func addressField(ctx *txanalyzer.AnalysisContext, label string, addr common.Address) payload.Field {
	return payload.NewAddressField(label, addr.Hex(), ctx.ResolveAddress(addr).Name(), "")
}
