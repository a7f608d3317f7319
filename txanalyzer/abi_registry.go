package txanalyzer

import (
	"bytes"
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/tranvictor/visualsign/registry"
)

// AbiRegistry holds named ABIs and maps deployments to them. It is filled
// at startup and only read afterwards.
type AbiRegistry struct {
	abis     map[string]*abi.ABI
	mappings map[registry.Key]string
}

func NewAbiRegistry() *AbiRegistry {
	return &AbiRegistry{
		abis:     map[string]*abi.ABI{},
		mappings: map[registry.Key]string{},
	}
}

// ParseABI reads a JSON ABI.
func ParseABI(content []byte) (*abi.ABI, error) {
	if !json.Valid(content) {
		return nil, errors.New("ABI is not valid JSON")
	}
	a, err := abi.JSON(bytes.NewReader(content))
	if err != nil {
		return nil, errors.Wrap(err, "couldn't parse ABI")
	}
	return &a, nil
}

// MustParseABI is ParseABI for ABIs compiled into the binary.
func MustParseABI(content string) *abi.ABI {
	a, err := ParseABI([]byte(content))
	if err != nil {
		panic(err)
	}
	return a
}

// Register parses content and stores it under name, replacing any previous
// ABI with that name.
func (r *AbiRegistry) Register(name string, content []byte) error {
	a, err := ParseABI(content)
	if err != nil {
		return errors.Wrapf(err, "ABI %s", name)
	}
	r.abis[name] = a
	return nil
}

// Map points (chainID, addr) at a registered ABI.
func (r *AbiRegistry) Map(chainID uint64, addr common.Address, name string) error {
	if _, found := r.abis[name]; !found {
		return errors.Errorf("ABI %s is not registered", name)
	}
	r.mappings[registry.NewKey(chainID, addr)] = name
	return nil
}

func (r *AbiRegistry) Get(name string) (*abi.ABI, bool) {
	if r == nil {
		return nil, false
	}
	a, found := r.abis[name]
	return a, found
}

// Lookup returns the ABI mapped to the deployment and its name.
func (r *AbiRegistry) Lookup(chainID uint64, addr common.Address) (*abi.ABI, string, bool) {
	if r == nil {
		return nil, "", false
	}
	name, found := r.mappings[registry.NewKey(chainID, addr)]
	if !found {
		return nil, "", false
	}
	a, found := r.abis[name]
	return a, name, found
}

// Names lists the registered ABI names in sorted order.
func (r *AbiRegistry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.abis))
	for name := range r.abis {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MappingsForChain lists the mapped addresses of one chain.
func (r *AbiRegistry) MappingsForChain(chainID uint64) map[common.Address]string {
	out := map[common.Address]string{}
	if r == nil {
		return out
	}
	for k, name := range r.mappings {
		if k.ChainID == chainID {
			out[k.Address] = name
		}
	}
	return out
}

// Mapping is one parsed Name:path:0xaddress entry.
type Mapping struct {
	Name    string
	Path    string
	Address common.Address
}

// ParseMapping splits "Name:path:0xaddress". The address is split off from
// the right so that paths may contain colons.
func ParseMapping(s string) (Mapping, error) {
	nameAndPath, identifier, ok := cutLast(s, ":")
	if !ok {
		return Mapping{}, errors.Errorf("Invalid mapping format (expected name:path:identifier): %s", s)
	}
	name, path, ok := strings.Cut(nameAndPath, ":")
	if !ok {
		return Mapping{}, errors.Errorf("Invalid mapping format (expected name:path:identifier): %s", s)
	}
	if name == "" || path == "" || identifier == "" {
		return Mapping{}, errors.Errorf("Mapping components cannot be empty: %s", s)
	}
	if !common.IsHexAddress(identifier) {
		return Mapping{}, errors.Errorf("%s is not an address", identifier)
	}
	return Mapping{Name: name, Path: path, Address: common.HexToAddress(identifier)}, nil
}

func cutLast(s, sep string) (before, after string, found bool) {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[:i], s[i+len(sep):], true
	}
	return s, "", false
}

// LoadMappings reads every mapped ABI file and maps it on chainID.
func (r *AbiRegistry) LoadMappings(chainID uint64, mappings []string) error {
	for _, m := range mappings {
		parsed, err := ParseMapping(m)
		if err != nil {
			return err
		}
		if _, found := r.abis[parsed.Name]; !found {
			content, err := os.ReadFile(parsed.Path)
			if err != nil {
				return errors.Wrapf(err, "Failed to read file at %s", parsed.Path)
			}
			if err := r.Register(parsed.Name, content); err != nil {
				return err
			}
		}
		if err := r.Map(chainID, parsed.Address, parsed.Name); err != nil {
			return err
		}
	}
	return nil
}
