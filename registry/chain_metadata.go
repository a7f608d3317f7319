package registry

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/tranvictor/visualsign/networks"
)

// ChainMetadata is request supplied context: which network the wallet thinks
// it is on and which tokens it declares.
type ChainMetadata struct {
	NetworkID string                   `json:"network_id"`
	Assets    map[string]TokenMetadata `json:"assets"`
}

func ParseChainMetadata(content []byte) (*ChainMetadata, error) {
	m := &ChainMetadata{}
	if err := json.Unmarshal(content, m); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal chain metadata")
	}
	return m, nil
}

// ChainID resolves NetworkID. ok is false when no network id was declared.
func (m *ChainMetadata) ChainID() (id uint64, ok bool, err error) {
	if m == nil || m.NetworkID == "" {
		return 0, false, nil
	}
	id, err = networks.ParseChainID(m.NetworkID)
	if err != nil {
		return 0, false, errors.Wrap(err, "invalid network_id in chain metadata")
	}
	return id, true, nil
}

// Registry builds the request-scoped layer holding the declared assets.
// A nil metadata yields a nil registry.
func (m *ChainMetadata) Registry(chainID uint64) (*ContractRegistry, error) {
	if m == nil || len(m.Assets) == 0 {
		return nil, nil
	}
	b := NewBuilder()
	for key, asset := range m.Assets {
		if asset.Symbol == "" {
			asset.Symbol = key
		}
		b.RegisterToken(chainID, asset)
	}
	return b.Build()
}
