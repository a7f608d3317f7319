package payload_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/visualsign/payload"
)

func TestPreviewFieldBuildsNestedLayout(t *testing.T) {
	amount := payload.NewAmountField("Amount", "100", "USDC")
	f := payload.Preview{
		Label:     "Aave L2 Withdraw",
		Title:     "Aave v3 L2 Withdraw",
		Subtitle:  "Withdraw 100 USDC",
		Condensed: []payload.Field{amount},
		Expanded:  []payload.Field{payload.NewTextField("Asset", "USDC (ID: 12)"), amount},
	}.Field()

	require.NoError(t, f.Validate())
	assert.Equal(t, payload.TypePreviewLayout, f.Type)
	assert.Equal(t, "Withdraw 100 USDC", f.FallbackText)
	require.NotNil(t, f.PreviewLayout.Condensed)
	assert.Len(t, f.PreviewLayout.Condensed.Fields, 1)
	assert.Len(t, f.PreviewLayout.Expanded.Plain(), 2)
	assert.Equal(t, "Withdraw 100 USDC", f.DisplayText())
}

func TestPreviewWithoutListsLeavesThemNil(t *testing.T) {
	f := payload.Preview{Title: "noop()"}.Field()
	assert.Nil(t, f.PreviewLayout.Condensed)
	assert.Nil(t, f.PreviewLayout.Expanded)
	assert.Nil(t, f.PreviewLayout.Subtitle)
	assert.Equal(t, "noop()", f.Label)
}

func TestValidateRejectsMismatchedVariant(t *testing.T) {
	cases := []struct {
		name  string
		field payload.Field
	}{
		{"empty type", payload.Field{FallbackText: "x"}},
		{"empty fallback", payload.Field{Type: payload.TypeText, TextV2: &payload.Text{Text: "x"}}},
		{"text without variant", payload.Field{Type: payload.TypeText, FallbackText: "x"}},
		{"address without address", payload.Field{
			Type: payload.TypeAddress, FallbackText: "x", AddressV2: &payload.Address{},
		}},
		{"two variants", payload.Field{
			Type: payload.TypeText, FallbackText: "x",
			TextV2: &payload.Text{Text: "x"}, Number: &payload.Number{Number: "1"},
		}},
		{"unknown tag", payload.Field{Type: "magic", FallbackText: "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.field.Validate())
		})
	}
}

func TestValidateRecursesIntoLayouts(t *testing.T) {
	bad := payload.Field{Type: payload.TypeText, FallbackText: "oops"}
	f := payload.Preview{Title: "t", Expanded: []payload.Field{bad}}.Field()

	p := payload.New("Ethereum Transaction", "EthereumTx")
	p.Append(f)
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expanded")
}

func TestJSONShapeOmitsEmptyVariants(t *testing.T) {
	p := payload.New("Ethereum Transaction", "EthereumTx")
	p.Append(payload.NewTextField("Network", "Ethereum Mainnet"))

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "0", decoded["Version"])
	assert.NotContains(t, decoded, "Subtitle")

	fields := decoded["Fields"].([]any)
	require.Len(t, fields, 1)
	field := fields[0].(map[string]any)
	assert.Equal(t, "text_v2", field["Type"])
	assert.Equal(t, map[string]any{"Text": "Ethereum Mainnet"}, field["TextV2"])
	assert.NotContains(t, field, "AddressV2")
}

func TestAnnotatedFieldFlattensIntoObject(t *testing.T) {
	l := payload.NewListLayout(payload.NewNumberField("Nonce", "42"))
	raw, err := json.Marshal(l)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"Fields":[{"FallbackText":"42","Type":"number","Label":"Nonce","Number":{"Number":"42"}}]}`,
		string(raw),
	)
}

func TestFieldByLabel(t *testing.T) {
	p := payload.New("t", "EthereumTx")
	p.Append(payload.NewTextField("A", "1"), payload.NewTextField("B", "2"))
	f, ok := p.FieldByLabel("B")
	require.True(t, ok)
	assert.Equal(t, "2", f.DisplayText())
	_, ok = p.FieldByLabel("C")
	assert.False(t, ok)
}
