// Package morpho decodes Morpho Bundler3 multicalls.
package morpho

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/tranvictor/visualsign/registry"
)

const ContractTypeBundler3 registry.ContractType = "morpho_bundler3"

// Bundler3Address is shared by every chain Bundler3 is deployed on.
var Bundler3Address = common.HexToAddress("0x6566194141eefa99Af43Bb5Aa71460Ca2Dc90245")

var bundler3Chains = []uint64{1, 10, 8453, 42161}

// Bundler3Chains lists the chains Register tags Bundler3 on.
func Bundler3Chains() []uint64 {
	return append([]uint64(nil), bundler3Chains...)
}

// Register tags Bundler3 on every chain it is deployed on.
func Register(b *registry.Builder) {
	b.RegisterContractOnChains(ContractTypeBundler3, Bundler3Address, bundler3Chains...)
}
