package cmd_test

import (
	"bytes"
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/visualsign/cmd"
	"github.com/tranvictor/visualsign/envelope"
)

const counterJSON = `[{"type":"function","name":"setCount","outputs":[],"inputs":[{"name":"count","type":"uint256"}]}]`

var (
	dead    = common.HexToAddress("0x000000000000000000000000000000000000dEaD")
	counter = common.HexToAddress("0x4444444444444444444444444444444444444444")
)

func rawTx(t *testing.T, inner types.TxData) string {
	t.Helper()
	tx, err := envelope.Wrap(types.NewTx(inner), nil)
	require.NoError(t, err)
	raw, err := envelope.EncodeUnsigned(tx)
	require.NoError(t, err)
	return hexutil.Encode(raw)
}

func transfer(t *testing.T) string {
	to := dead
	return rawTx(t, &types.DynamicFeeTx{
		ChainID:   big.NewInt(1),
		Nonce:     7,
		GasTipCap: big.NewInt(1_000_000_000),
		GasFeeCap: big.NewInt(20_000_000_000),
		Gas:       21000,
		To:        &to,
		Value:     big.NewInt(0),
	})
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := cmd.NewRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "Version: "+cmd.VERSION+"\n", out)
}

func TestParseJSON(t *testing.T) {
	out, err := run(t, "", "parse", transfer(t), "-o", "json")
	require.NoError(t, err)

	decoded := map[string]interface{}{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "EthereumTx", decoded["PayloadType"])
	assert.Equal(t, "0", decoded["Version"])
	assert.Contains(t, out, "Ethereum Mainnet")
	assert.Contains(t, out, "20 gwei")
}

func TestParseHumanFromStdin(t *testing.T) {
	out, err := run(t, transfer(t)+"\n", "parse", "-", "--network", "base", "--title", "Send")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Send\n"), out)
	assert.Contains(t, out, "├─ Network: Base")
	assert.Contains(t, out, "└─ Nonce: 7")
}

func TestParseText(t *testing.T) {
	out, err := run(t, "", "parse", transfer(t), "--output", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Ethereum Transaction")
	assert.Contains(t, out, "Max Priority Fee Per Gas")
	assert.Contains(t, out, "1 gwei")
}

func TestParseOutputFromEnv(t *testing.T) {
	t.Setenv("VISUALSIGN_OUTPUT", "json")
	out, err := run(t, "", "parse", transfer(t))
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))
}

func TestParseWithABIMapping(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "counter.json")
	require.NoError(t, os.WriteFile(path, []byte(counterJSON), 0o600))

	a, err := abi.JSON(strings.NewReader(counterJSON))
	require.NoError(t, err)
	data, err := a.Pack("setCount", big.NewInt(5))
	require.NoError(t, err)
	to := counter
	raw := rawTx(t, &types.LegacyTx{GasPrice: big.NewInt(1), Gas: 50000, To: &to, Value: big.NewInt(0), Data: data})

	out, err := run(t, "", "parse", raw, "--abi-mapping", "Counter:"+path+":"+counter.Hex())
	require.NoError(t, err)
	assert.Contains(t, out, "setCount")
	assert.NotContains(t, out, "Input Data")

	out, err = run(t, "", "parse", raw)
	require.NoError(t, err)
	assert.Contains(t, out, "Input Data: "+hexutil.Encode(data))
}

func TestParseSuppliedABI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counter.json")
	require.NoError(t, os.WriteFile(path, []byte(counterJSON), 0o600))

	a, err := abi.JSON(strings.NewReader(counterJSON))
	require.NoError(t, err)
	data, err := a.Pack("setCount", big.NewInt(5))
	require.NoError(t, err)
	to := counter
	raw := rawTx(t, &types.LegacyTx{GasPrice: big.NewInt(1), Gas: 50000, To: &to, Value: big.NewInt(0), Data: data})

	out, err := run(t, "", "parse", raw, "--abi", path)
	require.NoError(t, err)
	assert.Contains(t, out, "setCount")

	_, err = run(t, "", "parse", raw, "--abi-signature", path)
	assert.EqualError(t, err, "--abi-signature needs --abi")
}

func TestParseKinds(t *testing.T) {
	to := dead
	raw := rawTx(t, &types.AccessListTx{
		ChainID: big.NewInt(1), GasPrice: big.NewInt(1), Gas: 21000, To: &to, Value: big.NewInt(0),
	})
	_, err := run(t, "", "parse", raw)
	assert.EqualError(t, err, "Unsupported variant eip-2930")

	_, err = run(t, "", "parse", raw, "--all-kinds")
	assert.NoError(t, err)
}

func TestParseErrors(t *testing.T) {
	_, err := run(t, "", "parse", transfer(t), "-o", "xml")
	assert.EqualError(t, err, `unknown output "xml", expected one of text, json, human`)

	_, err = run(t, "", "parse")
	assert.EqualError(t, err, "no transaction given")

	_, err = run(t, "", "parse", transfer(t), "--network", "not-a-chain")
	assert.Error(t, err)
}

func TestNetworks(t *testing.T) {
	out, err := run(t, "", "networks")
	require.NoError(t, err)
	assert.Contains(t, out, "Ethereum Mainnet")
	assert.Contains(t, out, "8453")
	assert.NotContains(t, out, "Ethereum Sepolia")

	out, err = run(t, "", "networks", "--testnets")
	require.NoError(t, err)
	assert.Contains(t, out, "Ethereum Sepolia")
}

func TestCustomNetworksDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "devnet.json"), []byte(
		`{"name":"VISUALSIGN_DEVNET","display_name":"Visualsign Devnet","chain_id":31337001,"native_token_symbol":"DEV"}`,
	), 0o600))

	out, err := run(t, "", "networks", "--networks-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Visualsign Devnet")
}
