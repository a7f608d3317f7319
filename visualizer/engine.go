// Package visualizer turns decoded transactions into signable payloads. It
// owns the dispatch between the protocol decoders, supplied or registered
// ABIs, the simple token transfer heuristic and the raw calldata fallback.
package visualizer

import (
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	vscommon "github.com/tranvictor/visualsign/common"
	"github.com/tranvictor/visualsign/envelope"
	"github.com/tranvictor/visualsign/networks"
	"github.com/tranvictor/visualsign/payload"
	"github.com/tranvictor/visualsign/protocols"
	"github.com/tranvictor/visualsign/protocols/erc20"
	"github.com/tranvictor/visualsign/registry"
	"github.com/tranvictor/visualsign/txanalyzer"
	"github.com/tranvictor/visualsign/util/addrbook"
)

const (
	DefaultTitle = "Ethereum Transaction"
	PayloadType  = "EthereumTx"
)

// ResolverFactory builds the address resolver of one request.
type ResolverFactory func(chainID uint64, lookup registry.Lookup) addrbook.AddressResolver

// Options controls a single Visualize call.
type Options struct {
	// ChainID overrides the chain id carried by the envelope. Zero leaves
	// it to the envelope, then to Ethereum Mainnet.
	ChainID uint64
	// Request is the request-scoped registry layer. It may be nil.
	Request *registry.ContractRegistry
	// ABI is a caller supplied ABI for the destination. It is tried before
	// any ABI registered on the engine.
	ABI *abi.ABI
	// DecodeSimpleTransfers enables the ERC-20 transfer heuristic for
	// destinations with no registered type or ABI.
	DecodeSimpleTransfers bool
	// TransactionName replaces the default payload title.
	TransactionName string
}

// Engine is built once and shared. Nothing in it is mutated after
// NewEngine returns, so Visualize may be called concurrently.
type Engine struct {
	global      *registry.ContractRegistry
	visualizers map[registry.ContractType]protocols.Visualizer
	abis        *txanalyzer.AbiRegistry
	resolver    ResolverFactory
	logger      zerolog.Logger
}

// EngineOption customises NewEngine.
type EngineOption func(*Engine)

// WithAbiRegistry sets the ABIs looked up by destination address.
func WithAbiRegistry(r *txanalyzer.AbiRegistry) EngineOption {
	return func(e *Engine) {
		if r != nil {
			e.abis = r
		}
	}
}

// WithResolverFactory replaces the registry backed address resolver.
func WithResolverFactory(f ResolverFactory) EngineOption {
	return func(e *Engine) {
		if f != nil {
			e.resolver = f
		}
	}
}

// WithLogger replaces the global zerolog logger the engine reports to.
func WithLogger(l zerolog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = l
	}
}

// NewEngine registers protos into a fresh global registry. It fails when
// two protocols claim one deployment with different types, and panics when
// two visualizers share a contract type.
func NewEngine(protos []protocols.Protocol, opts ...EngineOption) (*Engine, error) {
	b := registry.NewBuilder()
	table := protocols.Register(b, protos)
	global, err := b.Build()
	if err != nil {
		return nil, err
	}
	e := &Engine{
		global:      global,
		visualizers: table,
		abis:        txanalyzer.NewAbiRegistry(),
		resolver: func(chainID uint64, lookup registry.Lookup) addrbook.AddressResolver {
			return addrbook.NewRegistry(chainID, lookup)
		},
		logger: log.Logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger.Debug().
		Int("protocols", len(protos)).
		Int("visualizers", len(table)).
		Str("registry", global.String()).
		Msg("visualizer engine built")
	return e, nil
}

// Registry is the global registry built from the protocol list.
func (e *Engine) Registry() *registry.ContractRegistry {
	return e.global
}

// Abis is the engine's ABI registry.
func (e *Engine) Abis() *txanalyzer.AbiRegistry {
	return e.abis
}

// Visualize renders tx. The summary fields always come first, followed by
// at most one field for the calldata.
func (e *Engine) Visualize(tx *envelope.Transaction, opts Options) (*payload.SignablePayload, error) {
	if tx == nil || tx.Tx == nil {
		return nil, errors.New("no transaction to visualize")
	}
	chainID := e.chainID(tx, opts)
	lookup := registry.NewLayered(e.global, opts.Request)
	ctx := txanalyzer.NewAnalysisContextWithResolver(chainID, lookup, e.resolver(chainID, lookup))

	title := opts.TransactionName
	if title == "" {
		title = DefaultTitle
	}
	p := payload.New(title, PayloadType)
	p.Append(summaryFields(tx, chainID)...)

	if data := tx.Data(); len(data) > 0 {
		p.Append(e.inputField(ctx, tx, data, opts))
	}
	return p, nil
}

func (e *Engine) chainID(tx *envelope.Transaction, opts Options) uint64 {
	if opts.ChainID != 0 {
		return opts.ChainID
	}
	if id, ok := tx.ChainID(); ok {
		return id
	}
	e.logger.Warn().Msg("transaction carries no chain id, assuming Ethereum Mainnet")
	return networks.EthereumMainnet.GetChainID()
}

func summaryFields(tx *envelope.Transaction, chainID uint64) []payload.Field {
	fields := []payload.Field{
		payload.NewTextField("Network", networks.DisplayName(chainID)),
	}
	if to := tx.To(); to != nil {
		fields = append(fields, payload.NewTextField("To", to.Hex()))
	}
	fields = append(fields,
		payload.NewTextField("Value", vscommon.FormatEther(tx.Value())+" ETH"),
		payload.NewTextField("Gas Limit", fmtUint(tx.Tx.Gas())),
	)
	if tx.Kind.HasFeeMarket() {
		fields = append(fields,
			payload.NewTextField("Max Fee Per Gas", gweiText(tx.Tx.GasFeeCap())),
			payload.NewTextField("Max Priority Fee Per Gas", gweiText(tx.Tx.GasTipCap())),
		)
	} else {
		fields = append(fields, payload.NewTextField("Gas Price", gweiText(tx.Tx.GasPrice())))
	}
	return append(fields, payload.NewTextField("Nonce", fmtUint(tx.Tx.Nonce())))
}

// inputField walks the decoders in order and returns the first rendering
// that succeeds. The raw hex field always succeeds.
func (e *Engine) inputField(ctx *txanalyzer.AnalysisContext, tx *envelope.Transaction, data []byte, opts Options) payload.Field {
	deployment := tx.IsDeployment()
	if !deployment {
		ctx = ctx.ForCall(*tx.To(), tx.Value())
		if f, ok := e.protocolField(ctx, data); ok {
			return f
		}
	}
	if f, ok := e.abiField(ctx, data, opts.ABI, deployment); ok {
		return f
	}
	if !deployment && opts.DecodeSimpleTransfers {
		if f, ok := erc20.VisualizeTransfer(ctx, data); ok {
			return f
		}
	}
	return RawInputField(data)
}

func (e *Engine) protocolField(ctx *txanalyzer.AnalysisContext, data []byte) (payload.Field, bool) {
	ct, found := ctx.ContractType(ctx.Target)
	if !found {
		return payload.Field{}, false
	}
	v, found := e.visualizers[ct]
	if !found {
		e.logger.Debug().Str("contract_type", string(ct)).Msg("no visualizer registered for contract type")
		return payload.Field{}, false
	}
	f, ok := v.Visualize(ctx, data)
	if !ok {
		e.logger.Debug().
			Str("contract_type", string(ct)).
			Str("selector", selectorHex(data)).
			Msg("protocol visualizer declined the call")
	}
	return f, ok
}

func (e *Engine) abiField(ctx *txanalyzer.AnalysisContext, data []byte, supplied *abi.ABI, deployment bool) (payload.Field, bool) {
	candidates := []*abi.ABI{}
	if supplied != nil {
		candidates = append(candidates, supplied)
	}
	if !deployment {
		if registered, name, found := e.abis.Lookup(ctx.ChainID, ctx.Target); found {
			e.logger.Debug().Str("abi", name).Str("target", ctx.Target.Hex()).Msg("using registered ABI")
			candidates = append(candidates, registered)
		}
	}
	for _, a := range candidates {
		fc, err := txanalyzer.AnalyzeMethodCall(a, data)
		if err != nil {
			e.logger.Debug().Err(err).Str("selector", selectorHex(data)).Msg("ABI decoding failed")
			continue
		}
		return fc.Field(ctx.Resolver), true
	}
	return payload.Field{}, false
}

// RawInputField shows calldata nobody could decode.
func RawInputField(data []byte) payload.Field {
	return payload.NewTextField("Input Data", hexutil.Encode(data))
}

func selectorHex(data []byte) string {
	if len(data) < 4 {
		return hexutil.Encode(data)
	}
	return hexutil.Encode(data[:4])
}

func gweiText(wei *big.Int) string {
	return vscommon.FormatGwei(wei) + " gwei"
}

func fmtUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}
