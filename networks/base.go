package networks

var BaseMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:             "BASE_MAINNET",
	DisplayName:      "Base",
	AlternativeNames: []string{"base"},
	ChainID:          8453,
	BlockTime:        2,
})

var BaseSepolia Network = NewGenericNetwork(GenericNetworkConfig{
	Name:             "BASE_SEPOLIA",
	DisplayName:      "Base Sepolia",
	AlternativeNames: []string{"base-sepolia"},
	ChainID:          84532,
	BlockTime:        2,
	Testnet:          true,
})
