// Package protocols lists the protocol decoders compiled into visualsign and
// wires them into a registry builder.
package protocols

import (
	"fmt"

	"github.com/tranvictor/visualsign/payload"
	"github.com/tranvictor/visualsign/protocols/aave"
	"github.com/tranvictor/visualsign/protocols/morpho"
	"github.com/tranvictor/visualsign/protocols/uniswap"
	"github.com/tranvictor/visualsign/registry"
	"github.com/tranvictor/visualsign/txanalyzer"
)

// Visualizer renders calldata sent to a contract of one registered type.
// It returns false when it does not understand the call so the caller can
// fall back to the next decoder.
type Visualizer interface {
	ContractType() registry.ContractType
	Visualize(ctx *txanalyzer.AnalysisContext, data []byte) (payload.Field, bool)
}

// Protocol bundles the registrations of a protocol with its visualizers.
type Protocol struct {
	Name        string
	Register    func(b *registry.Builder)
	Visualizers []Visualizer
}

// Default is the fixed list of supported protocols.
func Default() []Protocol {
	return []Protocol{
		{
			Name:     "aave",
			Register: aave.Register,
			Visualizers: []Visualizer{
				aave.PoolVisualizer{},
				aave.TokenVisualizer{},
				aave.VotingMachineVisualizer{},
			},
		},
		{
			Name:     "uniswap",
			Register: uniswap.Register,
			Visualizers: []Visualizer{
				uniswap.UniversalRouterVisualizer{},
				uniswap.V4PoolManagerVisualizer{},
				uniswap.Permit2Visualizer{},
			},
		},
		{
			Name:     "morpho",
			Register: morpho.Register,
			Visualizers: []Visualizer{
				morpho.BundlerVisualizer{},
			},
		},
	}
}

// Register runs every protocol's registration against b and returns the
// visualizer for each contract type. It panics when two visualizers claim
// the same type: the protocol list is fixed at compile time.
func Register(b *registry.Builder, protos []Protocol) map[registry.ContractType]Visualizer {
	types := []registry.ContractType{}
	table := map[registry.ContractType]Visualizer{}
	for _, p := range protos {
		if p.Register != nil {
			p.Register(b)
		}
		for _, v := range p.Visualizers {
			types = append(types, v.ContractType())
			table[v.ContractType()] = v
		}
	}
	if err := registry.CheckUniqueTypes(types); err != nil {
		panic(fmt.Sprintf("invalid protocol list: %s", err))
	}
	return table
}
