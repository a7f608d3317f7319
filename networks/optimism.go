package networks

var OptimismMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:             "OPTIMISM_MAINNET",
	DisplayName:      "OP Mainnet",
	AlternativeNames: []string{"optimism", "op"},
	ChainID:          10,
	BlockTime:        2,
})

var OptimismSepolia Network = NewGenericNetwork(GenericNetworkConfig{
	Name:             "OPTIMISM_SEPOLIA",
	DisplayName:      "OP Sepolia",
	AlternativeNames: []string{"op-sepolia"},
	ChainID:          11155420,
	BlockTime:        2,
	Testnet:          true,
})
