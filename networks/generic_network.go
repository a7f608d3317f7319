package networks

import (
	"encoding/json"
	"time"
)

type GenericNetworkConfig struct {
	Name               string   `json:"name"`
	DisplayName        string   `json:"display_name"`
	AlternativeNames   []string `json:"alternative_names"`
	ChainID            uint64   `json:"chain_id"`
	NativeTokenSymbol  string   `json:"native_token_symbol"`
	NativeTokenDecimal uint64   `json:"native_token_decimal"`
	BlockTime          uint64   `json:"block_time"`
	Testnet            bool     `json:"testnet"`
}

// GenericNetwork is a config driven Network. Every built-in chain and every
// custom network loaded from JSON is one of these.
type GenericNetwork struct {
	config GenericNetworkConfig
}

func NewGenericNetwork(config GenericNetworkConfig) *GenericNetwork {
	if config.NativeTokenSymbol == "" {
		config.NativeTokenSymbol = "ETH"
	}
	if config.NativeTokenDecimal == 0 {
		config.NativeTokenDecimal = 18
	}
	if config.DisplayName == "" {
		config.DisplayName = config.Name
	}
	return &GenericNetwork{config: config}
}

func (gn *GenericNetwork) GetName() string {
	return gn.config.Name
}

func (gn *GenericNetwork) GetDisplayName() string {
	return gn.config.DisplayName
}

func (gn *GenericNetwork) GetChainID() uint64 {
	return gn.config.ChainID
}

func (gn *GenericNetwork) GetAlternativeNames() []string {
	return gn.config.AlternativeNames
}

func (gn *GenericNetwork) GetNativeTokenSymbol() string {
	return gn.config.NativeTokenSymbol
}

func (gn *GenericNetwork) GetNativeTokenDecimal() uint64 {
	return gn.config.NativeTokenDecimal
}

func (gn *GenericNetwork) GetBlockTime() time.Duration {
	return time.Duration(gn.config.BlockTime) * time.Second
}

func (gn *GenericNetwork) IsTestnet() bool {
	return gn.config.Testnet
}

func (gn *GenericNetwork) MarshalJSON() ([]byte, error) {
	return json.Marshal(gn.config)
}
