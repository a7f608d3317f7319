package protocols_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/visualsign/payload"
	"github.com/tranvictor/visualsign/protocols"
	"github.com/tranvictor/visualsign/protocols/aave"
	"github.com/tranvictor/visualsign/protocols/morpho"
	"github.com/tranvictor/visualsign/protocols/uniswap"
	"github.com/tranvictor/visualsign/registry"
	"github.com/tranvictor/visualsign/txanalyzer"
)

func TestDefaultRegistersEveryType(t *testing.T) {
	b := registry.NewBuilder()
	table := protocols.Register(b, protocols.Default())
	reg, err := b.Build()
	require.NoError(t, err)

	for _, ct := range []registry.ContractType{
		aave.ContractTypePool,
		aave.ContractTypeToken,
		aave.ContractTypeVotingMachine,
		uniswap.ContractTypeUniversalRouter,
		uniswap.ContractTypeV4PoolManager,
		uniswap.ContractTypePermit2,
		morpho.ContractTypeBundler3,
	} {
		v, found := table[ct]
		require.True(t, found, "visualizer for %s", ct)
		assert.Equal(t, ct, v.ContractType())
		assert.NotEmpty(t, reg.Addresses(ct), "addresses for %s", ct)
	}
	assert.Len(t, table, 7)
}

type stub struct{ ct registry.ContractType }

func (s stub) ContractType() registry.ContractType { return s.ct }

func (stub) Visualize(*txanalyzer.AnalysisContext, []byte) (payload.Field, bool) {
	return payload.Field{}, false
}

func TestRegisterPanicsOnDuplicateType(t *testing.T) {
	protos := []protocols.Protocol{
		{Name: "a", Visualizers: []protocols.Visualizer{stub{"dup"}}},
		{Name: "b", Visualizers: []protocols.Visualizer{stub{"dup"}}},
	}
	assert.Panics(t, func() {
		protocols.Register(registry.NewBuilder(), protos)
	})
	assert.Panics(t, func() {
		protocols.Register(registry.NewBuilder(), []protocols.Protocol{
			{Name: "empty", Visualizers: []protocols.Visualizer{stub{""}}},
		})
	})
}

func TestRegisterWithoutRegistrationFunc(t *testing.T) {
	table := protocols.Register(registry.NewBuilder(), []protocols.Protocol{
		{Name: "only visualizers", Visualizers: []protocols.Visualizer{stub{"x"}}},
	})
	assert.Len(t, table, 1)
}
