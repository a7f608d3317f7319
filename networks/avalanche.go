package networks

var AvalancheMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:              "AVALANCHE_MAINNET",
	DisplayName:       "Avalanche C-Chain",
	AlternativeNames:  []string{"avalanche", "avax"},
	ChainID:           43114,
	NativeTokenSymbol: "AVAX",
	BlockTime:         2,
})

var AvalancheFuji Network = NewGenericNetwork(GenericNetworkConfig{
	Name:              "AVALANCHE_FUJI",
	DisplayName:       "Avalanche Fuji",
	AlternativeNames:  []string{"fuji"},
	ChainID:           43113,
	NativeTokenSymbol: "AVAX",
	BlockTime:         2,
	Testnet:           true,
})
