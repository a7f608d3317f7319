package networks

var BSCMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:              "BSC_MAINNET",
	DisplayName:       "BNB Smart Chain Mainnet",
	AlternativeNames:  []string{"bsc", "bnb"},
	ChainID:           56,
	NativeTokenSymbol: "BNB",
	BlockTime:         3,
})

var BSCTestnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:              "BSC_TESTNET",
	DisplayName:       "BNB Smart Chain Testnet",
	AlternativeNames:  []string{"bsc-test"},
	ChainID:           97,
	NativeTokenSymbol: "BNB",
	BlockTime:         3,
	Testnet:           true,
})
