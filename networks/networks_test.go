package networks_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/visualsign/networks"
)

func TestDisplayName(t *testing.T) {
	cases := map[uint64]string{
		1:        "Ethereum Mainnet",
		11155111: "Ethereum Sepolia",
		5:        "Ethereum Goerli (deprecated)",
		56:       "BNB Smart Chain Mainnet",
		137:      "Polygon Mainnet",
		43114:    "Avalanche C-Chain",
		10:       "OP Mainnet",
		42161:    "Arbitrum One",
		8453:     "Base",
		480:      "World Chain",
		324:      "zkSync Era",
		999999:   "Unknown Network (Chain ID: 999999)",
	}
	for id, want := range cases {
		assert.Equal(t, want, networks.DisplayName(id), "chain %d", id)
	}
	assert.Equal(t, "Unknown Network", networks.DisplayNameOf(nil))
	one := uint64(1)
	assert.Equal(t, "Ethereum Mainnet", networks.DisplayNameOf(&one))
}

func TestParseChainID(t *testing.T) {
	cases := map[string]uint64{
		"1":                1,
		"ETHEREUM_MAINNET": 1,
		"ethereum_mainnet": 1,
		"mainnet":          1,
		"Arbitrum_Mainnet": 42161,
		"base":             8453,
		"  137 ":           137,
		"31337":            31337,
	}
	for in, want := range cases {
		got, err := networks.ParseChainID(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseChainIDUnknownNameSuggests(t *testing.T) {
	_, err := networks.ParseChainID("arbitrm")
	require.Error(t, err)
	assert.ErrorIs(t, err, networks.ErrNetworkNotFound)
	assert.Contains(t, err.Error(), "did you mean")

	_, err = networks.ParseChainID("")
	assert.Error(t, err)
}

func TestParseNetworkRejectsUncataloguedID(t *testing.T) {
	_, err := networks.ParseNetwork("31337")
	assert.ErrorIs(t, err, networks.ErrNetworkNotFound)

	n, err := networks.ParseNetwork("OPTIMISM_MAINNET")
	require.NoError(t, err)
	assert.Equal(t, uint64(10), n.GetChainID())
	assert.Equal(t, "ETH", n.GetNativeTokenSymbol())
}

func TestSupportedNetworksAreUniqueAndSorted(t *testing.T) {
	all := networks.GetSupportedNetworks()
	require.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].GetChainID(), all[i].GetChainID())
	}
}

func TestLoadCustomNetworks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "anvil.json"), []byte(`{
		"name": "ANVIL_LOCAL",
		"display_name": "Anvil",
		"alternative_names": ["anvil"],
		"chain_id": 1337
	}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{`), 0o644))

	loaded, err := networks.LoadCustomNetworks(dir)
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	assert.Equal(t, "Anvil", networks.DisplayName(1337))
	id, err := networks.ParseChainID("anvil")
	require.NoError(t, err)
	assert.Equal(t, uint64(1337), id)
}
