package networks

var ArbitrumMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:             "ARBITRUM_MAINNET",
	DisplayName:      "Arbitrum One",
	AlternativeNames: []string{"arbitrum", "arb"},
	ChainID:          42161,
	BlockTime:        2,
})

var ArbitrumSepolia Network = NewGenericNetwork(GenericNetworkConfig{
	Name:             "ARBITRUM_SEPOLIA",
	DisplayName:      "Arbitrum Sepolia",
	AlternativeNames: []string{"arbitrum-sepolia"},
	ChainID:          421614,
	BlockTime:        2,
	Testnet:          true,
})
