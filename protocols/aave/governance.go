package aave

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/tranvictor/visualsign/payload"
	"github.com/tranvictor/visualsign/registry"
	"github.com/tranvictor/visualsign/txanalyzer"
)

const aaveTokenABIJSON = `[
{"type":"function","name":"delegate","stateMutability":"nonpayable","outputs":[],"inputs":[
	{"name":"delegatee","type":"address"}]},
{"type":"function","name":"delegateByType","stateMutability":"nonpayable","outputs":[],"inputs":[
	{"name":"delegatee","type":"address"},{"name":"delegationType","type":"uint8"}]}
]`

const votingMachineABIJSON = `[
{"type":"function","name":"submitVote","stateMutability":"nonpayable","outputs":[],"inputs":[
	{"name":"proposalId","type":"uint256"},{"name":"support","type":"bool"}]},
{"type":"function","name":"submitVoteAsRepresentative","stateMutability":"nonpayable","outputs":[],"inputs":[
	{"name":"proposalId","type":"uint256"},{"name":"support","type":"bool"},
	{"name":"votingTokens","type":"address[]"}]}
]`

var (
	aaveTokenABI     = txanalyzer.MustParseABI(aaveTokenABIJSON)
	votingMachineABI = txanalyzer.MustParseABI(votingMachineABIJSON)
)

// TokenVisualizer renders governance delegation on the AAVE token.
type TokenVisualizer struct{}

func (TokenVisualizer) ContractType() registry.ContractType {
	return ContractTypeToken
}

func (TokenVisualizer) Visualize(ctx *txanalyzer.AnalysisContext, data []byte) (payload.Field, bool) {
	fc, err := txanalyzer.AnalyzeMethodCall(aaveTokenABI, data)
	if err != nil {
		log.Debug().Err(err).Str("contract_type", string(ContractTypeToken)).Msg("governance call not decoded")
		return payload.Field{}, false
	}
	delegatee := fc.Address("delegatee")
	delegateeField := addressField(ctx, "Delegatee", delegatee)

	var summary string
	var power payload.Field
	switch fc.Method {
	case "delegate":
		summary = "Delegate all governance power to " + delegatee.Hex()
		power = payload.NewTextField("Powers Delegated", "Voting + Proposition")
	case "delegateByType":
		kind := powerType(fc.Big("delegationType").Uint64())
		summary = fmt.Sprintf("Delegate %s to %s", kind, delegatee.Hex())
		power = payload.NewTextField("Power Type", kind)
	default:
		return payload.Field{}, false
	}
	return payload.Preview{
		Label:     "Aave Governance",
		Title:     "Aave Governance Delegation",
		Subtitle:  summary,
		Condensed: []payload.Field{delegateeField},
		Expanded:  []payload.Field{delegateeField, power},
	}.Field(), true
}

func powerType(t uint64) string {
	switch t {
	case 0:
		return "Voting Power"
	case 1:
		return "Proposition Power"
	}
	return "Unknown Power"
}

// VotingMachineVisualizer renders votes cast on the governance voting
// machine.
type VotingMachineVisualizer struct{}

func (VotingMachineVisualizer) ContractType() registry.ContractType {
	return ContractTypeVotingMachine
}

func (VotingMachineVisualizer) Visualize(ctx *txanalyzer.AnalysisContext, data []byte) (payload.Field, bool) {
	fc, err := txanalyzer.AnalyzeMethodCall(votingMachineABI, data)
	if err != nil {
		log.Debug().Err(err).Str("contract_type", string(ContractTypeVotingMachine)).Msg("vote not decoded")
		return payload.Field{}, false
	}
	proposal := fc.Big("proposalId").String()
	direction := "Against"
	if fc.Bool("support") {
		direction = "For"
	}
	vote := payload.NewTextField("Vote", direction)
	fields := []payload.Field{payload.NewTextField("Proposal ID", proposal), vote}
	summary := fmt.Sprintf("Vote %s on proposal #%s", direction, proposal)

	switch fc.Method {
	case "submitVote":
	case "submitVoteAsRepresentative":
		tokens := addressList(fc, "votingTokens")
		plural := "s"
		if len(tokens) == 1 {
			plural = ""
		}
		summary += fmt.Sprintf(" (as representative with %d token%s)", len(tokens), plural)
		fields = append(fields, payload.NewTextField("Voting Tokens", fmt.Sprintf("%d", len(tokens))))
		for i, token := range tokens {
			fields = append(fields, addressField(ctx, fmt.Sprintf("Token %d", i+1), token))
		}
	default:
		return payload.Field{}, false
	}
	return payload.Preview{
		Label:     "Aave Governance",
		Title:     "Aave Governance Vote",
		Subtitle:  summary,
		Condensed: []payload.Field{vote},
		Expanded:  fields,
	}.Field(), true
}
