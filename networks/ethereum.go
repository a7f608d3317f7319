package networks

var EthereumMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:             "ETHEREUM_MAINNET",
	DisplayName:      "Ethereum Mainnet",
	AlternativeNames: []string{"mainnet", "ethereum", "eth"},
	ChainID:          1,
	BlockTime:        12,
})

var EthereumSepolia Network = NewGenericNetwork(GenericNetworkConfig{
	Name:             "ETHEREUM_SEPOLIA",
	DisplayName:      "Ethereum Sepolia",
	AlternativeNames: []string{"sepolia"},
	ChainID:          11155111,
	BlockTime:        12,
	Testnet:          true,
})

var EthereumGoerli Network = NewGenericNetwork(GenericNetworkConfig{
	Name:             "ETHEREUM_GOERLI",
	DisplayName:      "Ethereum Goerli (deprecated)",
	AlternativeNames: []string{"goerli"},
	ChainID:          5,
	BlockTime:        12,
	Testnet:          true,
})

var EthereumHolesky Network = NewGenericNetwork(GenericNetworkConfig{
	Name:             "ETHEREUM_HOLESKY",
	DisplayName:      "Ethereum Holesky",
	AlternativeNames: []string{"holesky"},
	ChainID:          17000,
	BlockTime:        12,
	Testnet:          true,
})
