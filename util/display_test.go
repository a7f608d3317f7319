package util_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/visualsign/payload"
	"github.com/tranvictor/visualsign/ui"
	"github.com/tranvictor/visualsign/util"
)

const (
	router = "0x3fC91A3afd70395Cd496C647d5a6CC9D4B2b7FAD"
	bob    = "0x2222222222222222222222222222222222222222"
)

func fixture() *payload.SignablePayload {
	p := payload.New("Ethereum Transaction", "EthereumTx")
	p.Append(
		payload.NewTextField("Network", "Ethereum Mainnet"),
		payload.NewTextField("To", router),
		payload.NewTextField("Value", "1 ETH"),
	)
	amount := payload.NewAmountField("Amount", "12.5", "USDC")
	p.Append(payload.Preview{
		Label:     "Token Transfer",
		Title:     "ERC20 Transfer",
		Subtitle:  "Transfer 12.5 USDC to " + bob,
		Condensed: []payload.Field{amount},
		Expanded: []payload.Field{
			payload.NewAddressField("Token", "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", "USD Coin", "USDC"),
			payload.NewAddressField("To", bob, "", ""),
			amount,
		},
	}.Field())
	return p
}

func TestPlainTree(t *testing.T) {
	want := `Ethereum Transaction
├─ Network: Ethereum Mainnet
├─ To: ` + router + `
├─ Value: 1 ETH
└─ Token Transfer | ERC20 Transfer: Transfer 12.5 USDC to ` + bob + `
   ├─ Token: USD Coin (0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48)
   ├─ To: ` + bob + `
   └─ Amount: 12.5 USDC`
	assert.Equal(t, want, util.PlainTree(fixture(), false))

	condensed := `Ethereum Transaction
├─ Network: Ethereum Mainnet
├─ To: ` + router + `
├─ Value: 1 ETH
└─ Token Transfer | ERC20 Transfer: Transfer 12.5 USDC to ` + bob + `
   └─ Amount: 12.5 USDC`
	assert.Equal(t, condensed, util.PlainTree(fixture(), true))
}

func TestDisplayHumanSeverities(t *testing.T) {
	r := ui.NewRecordingUI()
	d := util.DisplayHuman(r, fixture(), false)

	require.Len(t, d.Fields, 4)
	transfer := d.Fields[3]
	require.Len(t, transfer.Expanded, 3)
	assert.Equal(t, ui.SeveritySuccess, transfer.Expanded[0].Value.Severity)
	assert.Equal(t, ui.SeverityWarn, transfer.Expanded[1].Value.Severity)
	assert.Equal(t, ui.SeverityInfo, transfer.Expanded[2].Value.Severity)
	assert.Equal(t, []string{"Ethereum Transaction"}, r.MethodValues("Critical"))
}

func TestDisplayText(t *testing.T) {
	p := fixture()
	p.Append(payload.NewTextField("Input Data", "0xdeadbeef"))

	r := ui.NewRecordingUI()
	d := util.DisplayText(r, p)

	assert.Equal(t, []string{"Ethereum Transaction"}, r.MethodValues("Section"))
	assert.Equal(t, []string{
		"Network | Ethereum Mainnet",
		"To | " + router,
		"Value | 1 ETH",
		"Input Data | 0xdeadbeef",
		"Token | USD Coin (0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48)",
		"To | " + bob,
		"Amount | 12.5 USDC",
	}, r.MethodValues("TableRow"))
	assert.Equal(t, []string{"Token Transfer | ERC20 Transfer: Transfer 12.5 USDC to " + bob}, r.MethodValues("Info"))
	assert.Equal(t, ui.SeverityCritical, d.Fields[4].Value.Severity)
}

func TestNestedPreviewAndList(t *testing.T) {
	inner := payload.Preview{
		Title:    "Wrap ETH",
		Subtitle: "Wrap 1 ETH to Router",
		Expanded: []payload.Field{payload.NewTextField("Recipient", "Router")},
	}.Field()
	outer := payload.Preview{
		Label:    "Universal Router",
		Title:    "Uniswap Universal Router Execute",
		Subtitle: "1 command",
		Expanded: []payload.Field{inner, payload.NewDividerField()},
	}.Field()
	p := payload.New("Ethereum Transaction", "EthereumTx")
	p.Append(outer, payload.NewListLayoutField("Hops", payload.NewTextField("Hop 1", "WETH > USDC")))

	want := `Ethereum Transaction
├─ Universal Router | Uniswap Universal Router Execute: 1 command
│  ├─ Wrap ETH: Wrap 1 ETH to Router
│  │  └─ Recipient: Router
│  └─ ──
└─ Hops
   └─ Hop 1: WETH > USDC`
	assert.Equal(t, want, util.PlainTree(p, false))
}

func TestPayloadDisplayJSON(t *testing.T) {
	d := util.BuildPayloadDisplay(fixture())
	b, err := json.Marshal(d.Fields[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"label":"To","type":"text_v2","value":"`+router+`"}`, string(b))
}
