package networks

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Insert more Network implementation here to support
// more chains
var supportedNetworks = []Network{
	EthereumMainnet,
	EthereumSepolia,
	EthereumGoerli,
	EthereumHolesky,
	BSCMainnet,
	BSCTestnet,
	PolygonMainnet,
	PolygonAmoy,
	AvalancheMainnet,
	AvalancheFuji,
	FantomMainnet,
	GnosisMainnet,
	CeloMainnet,
	CeloAlfajores,
	OptimismMainnet,
	OptimismSepolia,
	ArbitrumMainnet,
	ArbitrumSepolia,
	BaseMainnet,
	BaseSepolia,
	BlastMainnet,
	MantleMainnet,
	WorldchainMainnet,
	ZksyncMainnet,
	LineaMainnet,
	ScrollMainnet,
	ZoraMainnet,
	UnichainMainnet,
}

var globalSupportedNetworks = newSupportedNetworks()
var ErrNetworkNotFound = errors.New("network not found")

type networks struct {
	mu           sync.RWMutex
	networks     map[string]Network // keyed by lower-case name or alternative name
	networksByID map[uint64]Network
}

func (n *networks) getSupportedNetworkNames() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	res := []string{}
	for _, nw := range n.networksByID {
		res = append(res, nw.GetName())
		res = append(res, nw.GetAlternativeNames()...)
	}
	sort.Strings(res)
	return res
}

func (n *networks) getNetworkByID(id uint64) (Network, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	res, found := n.networksByID[id]
	if !found {
		return nil, errors.Wrapf(ErrNetworkNotFound, "network id %d", id)
	}
	return res, nil
}

func (n *networks) getNetwork(name string) (Network, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	res, found := n.networks[strings.ToLower(name)]
	if !found {
		return nil, errors.Wrapf(ErrNetworkNotFound, "network name '%s'", name)
	}
	return res, nil
}

// add registers nw. Built-in networks panic on a name clash; custom ones
// replace whatever was there.
func (n *networks) add(nw Network, override bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	names := append([]string{nw.GetName()}, nw.GetAlternativeNames()...)
	for _, name := range names {
		key := strings.ToLower(name)
		if existing, found := n.networks[key]; found && !override {
			panic(errors.Errorf(
				"network with name or alternative name of '%s' already exists (%s)",
				name, existing.GetName(),
			))
		}
		n.networks[key] = nw
	}
	if _, found := n.networksByID[nw.GetChainID()]; found && !override {
		panic(errors.Errorf("network with id %d already exists", nw.GetChainID()))
	}
	n.networksByID[nw.GetChainID()] = nw
}

func newSupportedNetworks() *networks {
	result := &networks{
		networks:     map[string]Network{},
		networksByID: map[uint64]Network{},
	}
	for _, n := range supportedNetworks {
		result.add(n, false)
	}
	return result
}

// LoadCustomNetworks reads every *.json network config in dir and registers
// it, replacing built-in entries with the same name or id.
func LoadCustomNetworks(dir string) ([]Network, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to glob json files in %s", dir)
	}

	loaded := []Network{}
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read file %s", file)
		}

		network, err := NewNetworkFromJSON(content)
		if err != nil {
			log.Warn().Err(err).Str("file", file).Msg("Ignoring malformed custom network")
			continue
		}
		if _, err := GetNetworkByID(network.GetChainID()); err == nil {
			log.Info().Uint64("chain_id", network.GetChainID()).Msg("Custom network overrides built-in network")
		}
		AddNetwork(network)
		loaded = append(loaded, network)
	}
	return loaded, nil
}

func NewNetworkFromJSON(content []byte) (Network, error) {
	networkConfig := GenericNetworkConfig{}
	if err := json.Unmarshal(content, &networkConfig); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal network config")
	}
	if networkConfig.Name == "" || networkConfig.ChainID == 0 {
		return nil, errors.New("network config needs a name and a chain_id")
	}
	return NewGenericNetwork(networkConfig), nil
}

// GetSupportedNetworks returns every registered network ordered by chain id.
func GetSupportedNetworks() []Network {
	globalSupportedNetworks.mu.RLock()
	res := make([]Network, 0, len(globalSupportedNetworks.networksByID))
	for _, n := range globalSupportedNetworks.networksByID {
		res = append(res, n)
	}
	globalSupportedNetworks.mu.RUnlock()
	sort.Slice(res, func(i, j int) bool { return res[i].GetChainID() < res[j].GetChainID() })
	return res
}

func GetNetwork(name string) (Network, error) {
	return globalSupportedNetworks.getNetwork(name)
}

func GetNetworkByID(id uint64) (Network, error) {
	return globalSupportedNetworks.getNetworkByID(id)
}

func GetSupportedNetworkNames() []string {
	return globalSupportedNetworks.getSupportedNetworkNames()
}

// AddNetwork registers a custom network for the rest of the process.
func AddNetwork(network Network) {
	globalSupportedNetworks.add(network, true)
}
