package networks

var FantomMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:              "FANTOM_MAINNET",
	DisplayName:       "Fantom Opera",
	AlternativeNames:  []string{"fantom", "ftm"},
	ChainID:           250,
	NativeTokenSymbol: "FTM",
	BlockTime:         1,
})

var GnosisMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:              "GNOSIS_MAINNET",
	DisplayName:       "Gnosis Chain",
	AlternativeNames:  []string{"gnosis", "xdai"},
	ChainID:           100,
	NativeTokenSymbol: "xDAI",
	BlockTime:         5,
})

var CeloMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:              "CELO_MAINNET",
	DisplayName:       "Celo Mainnet",
	AlternativeNames:  []string{"celo"},
	ChainID:           42220,
	NativeTokenSymbol: "CELO",
	BlockTime:         5,
})

var CeloAlfajores Network = NewGenericNetwork(GenericNetworkConfig{
	Name:              "CELO_ALFAJORES",
	DisplayName:       "Celo Alfajores",
	AlternativeNames:  []string{"alfajores"},
	ChainID:           44787,
	NativeTokenSymbol: "CELO",
	BlockTime:         5,
	Testnet:           true,
})

var BlastMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:             "BLAST_MAINNET",
	DisplayName:      "Blast",
	AlternativeNames: []string{"blast"},
	ChainID:          81457,
	BlockTime:        2,
})

var MantleMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:              "MANTLE_MAINNET",
	DisplayName:       "Mantle",
	AlternativeNames:  []string{"mantle"},
	ChainID:           5000,
	NativeTokenSymbol: "MNT",
	BlockTime:         2,
})

var WorldchainMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:             "WORLDCHAIN_MAINNET",
	DisplayName:      "World Chain",
	AlternativeNames: []string{"worldchain"},
	ChainID:          480,
	BlockTime:        2,
})

var ZksyncMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:             "ZKSYNC_MAINNET",
	DisplayName:      "zkSync Era",
	AlternativeNames: []string{"zksync"},
	ChainID:          324,
	BlockTime:        1,
})

var LineaMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:             "LINEA_MAINNET",
	DisplayName:      "Linea",
	AlternativeNames: []string{"linea"},
	ChainID:          59144,
	BlockTime:        2,
})

var ScrollMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:             "SCROLL_MAINNET",
	DisplayName:      "Scroll",
	AlternativeNames: []string{"scroll"},
	ChainID:          534352,
	BlockTime:        3,
})

var ZoraMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:             "ZORA_MAINNET",
	DisplayName:      "Zora",
	AlternativeNames: []string{"zora"},
	ChainID:          7777777,
	BlockTime:        2,
})

var UnichainMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:             "UNICHAIN_MAINNET",
	DisplayName:      "Unichain",
	AlternativeNames: []string{"unichain"},
	ChainID:          130,
	BlockTime:        1,
})
