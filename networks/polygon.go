package networks

var PolygonMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:              "POLYGON_MAINNET",
	DisplayName:       "Polygon Mainnet",
	AlternativeNames:  []string{"polygon", "matic"},
	ChainID:           137,
	NativeTokenSymbol: "POL",
	BlockTime:         2,
})

var PolygonAmoy Network = NewGenericNetwork(GenericNetworkConfig{
	Name:              "POLYGON_AMOY",
	DisplayName:       "Polygon Amoy",
	AlternativeNames:  []string{"amoy"},
	ChainID:           80002,
	NativeTokenSymbol: "POL",
	BlockTime:         2,
	Testnet:           true,
})
