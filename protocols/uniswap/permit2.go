package uniswap

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/tranvictor/visualsign/payload"
	"github.com/tranvictor/visualsign/registry"
	"github.com/tranvictor/visualsign/txanalyzer"
)

var permit2ABI = txanalyzer.MustParseABI(`[
{"type":"function","name":"approve","stateMutability":"nonpayable","outputs":[],"inputs":[
	{"name":"token","type":"address"},{"name":"spender","type":"address"},
	{"name":"amount","type":"uint160"},{"name":"expiration","type":"uint48"}]}
]`)

// Permit2Visualizer renders direct allowance approvals on Permit2.
type Permit2Visualizer struct{}

func (Permit2Visualizer) ContractType() registry.ContractType {
	return ContractTypePermit2
}

func (Permit2Visualizer) Visualize(ctx *txanalyzer.AnalysisContext, data []byte) (payload.Field, bool) {
	fc, err := txanalyzer.AnalyzeMethodCall(permit2ABI, data)
	if err != nil {
		log.Debug().Err(err).Str("contract_type", string(ContractTypePermit2)).Msg("permit2 call not decoded")
		return payload.Field{}, false
	}
	token, spender := fc.Address("token"), fc.Address("spender")
	amount := allowanceText(ctx, token, fc.Big("amount"))
	expires := expirationText(fc.Big("expiration"))
	until := "until " + expires
	if fc.Big("expiration").Sign() == 0 {
		until = "expiring immediately"
	}

	amountField := payload.NewTextField("Amount", amount)
	return payload.Preview{
		Label:     "Permit2",
		Title:     "Permit2 Approve",
		Subtitle:  fmt.Sprintf("Approve %s to spend %s %s", recipientText(ctx, spender), amount, until),
		Condensed: []payload.Field{amountField},
		Expanded: []payload.Field{
			tokenField(ctx, "Token", token),
			payload.NewAddressField("Spender", spender.Hex(), ctx.ResolveAddress(spender).Name(), ""),
			amountField,
			payload.NewTextField("Expires", expires),
		},
	}.Field(), true
}
