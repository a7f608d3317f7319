package visualizer

import (
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tranvictor/visualsign/envelope"
	"github.com/tranvictor/visualsign/networks"
	"github.com/tranvictor/visualsign/payload"
	"github.com/tranvictor/visualsign/protocols"
	"github.com/tranvictor/visualsign/registry"
	"github.com/tranvictor/visualsign/txanalyzer"
)

// ParseOptions is everything a caller can attach to a raw transaction.
type ParseOptions struct {
	// ChainID wins over the chain metadata and the envelope. Zero means
	// unset.
	ChainID  uint64
	Metadata *registry.ChainMetadata

	// ABI is the JSON ABI supplied for the destination. When ABISignature
	// is set the ABI is only used if the signature verifies.
	ABI          []byte
	ABISignature *txanalyzer.ABISignature

	AllowSigned bool
	// Supported overrides envelope.DefaultSupported.
	Supported []envelope.Kind

	DecodeSimpleTransfers bool
	TransactionName       string
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// DefaultEngine is the shared engine over protocols.Default(). It reports to
// the global logger capped at info, so library callers see no debug output
// unless they build their own engine.
func DefaultEngine() *Engine {
	defaultEngineOnce.Do(func() {
		e, err := NewEngine(protocols.Default(), WithLogger(log.Logger.Level(zerolog.InfoLevel)))
		if err != nil {
			panic(errors.Wrap(err, "couldn't build the default visualizer engine"))
		}
		defaultEngine = e
	})
	return defaultEngine
}

// ParseTransaction runs the full pipeline on the default engine.
func ParseTransaction(input string, opts ParseOptions) (*payload.SignablePayload, error) {
	return DefaultEngine().ParseTransaction(input, opts)
}

// Decoded is a transaction together with the chain it is visualized on.
type Decoded struct {
	Tx      *envelope.Transaction
	ChainID uint64
}

// Decode reads input (hex or base64) and resolves its chain: the explicit
// option first, then the chain metadata, then the envelope, else Ethereum
// Mainnet. Envelope errors are returned as is.
func Decode(input string, opts ParseOptions) (*Decoded, error) {
	raw, err := envelope.ParseInput(input)
	if err != nil {
		return nil, err
	}
	tx, err := decode(raw, envelope.Options{AllowSigned: opts.AllowSigned, Supported: opts.Supported})
	if err != nil {
		return nil, err
	}
	chainID, err := resolveChainID(tx, opts)
	if err != nil {
		return nil, err
	}
	return &Decoded{Tx: tx, ChainID: chainID}, nil
}

// ParseTransaction is Decode followed by VisualizeDecoded.
func (e *Engine) ParseTransaction(input string, opts ParseOptions) (*payload.SignablePayload, error) {
	d, err := Decode(input, opts)
	if err != nil {
		return nil, err
	}
	return e.VisualizeDecoded(d, opts)
}

// VisualizeDecoded builds the request layer from the chain metadata and the
// supplied ABI of opts and visualizes d.
func (e *Engine) VisualizeDecoded(d *Decoded, opts ParseOptions) (*payload.SignablePayload, error) {
	e.logger.Debug().
		Str("kind", d.Tx.Kind.String()).
		Bool("partial", d.Tx.Partial).
		Uint64("chain_id", d.ChainID).
		Msg("visualizing transaction")
	request, err := opts.Metadata.Registry(d.ChainID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid chain metadata assets")
	}
	return e.Visualize(d.Tx, Options{
		ChainID:               d.ChainID,
		Request:               request,
		ABI:                   suppliedABI(opts.ABI, opts.ABISignature),
		DecodeSimpleTransfers: opts.DecodeSimpleTransfers,
		TransactionName:       opts.TransactionName,
	})
}

// decode tries the standard envelopes first and the partial format second.
// Policy rejections are final. When both formats fail the envelope error is
// the one reported.
func decode(raw []byte, opts envelope.Options) (*envelope.Transaction, error) {
	tx, err := envelope.Decode(raw, opts)
	if err == nil || envelope.IsUnsupported(err) || errors.Is(err, envelope.ErrSignedNotAllowed) {
		return tx, err
	}
	if partial, perr := envelope.DecodePartial(raw); perr == nil {
		return partial, nil
	}
	return nil, err
}

func resolveChainID(tx *envelope.Transaction, opts ParseOptions) (uint64, error) {
	if opts.ChainID != 0 {
		return opts.ChainID, nil
	}
	id, ok, err := opts.Metadata.ChainID()
	if err != nil {
		return 0, err
	}
	if ok {
		return id, nil
	}
	if id, ok := tx.ChainID(); ok {
		return id, nil
	}
	mainnet := networks.EthereumMainnet.GetChainID()
	log.Warn().Uint64("chain_id", mainnet).Msg("no chain id given, defaulting to Ethereum Mainnet")
	return mainnet, nil
}

// suppliedABI returns nil when there is no ABI, when it does not parse, or
// when its signature does not verify.
func suppliedABI(content []byte, sig *txanalyzer.ABISignature) *abi.ABI {
	if len(content) == 0 {
		return nil
	}
	if sig != nil {
		if err := txanalyzer.VerifyABISignature(content, *sig); err != nil {
			log.Warn().Err(err).Msg("supplied ABI signature is invalid, ignoring the ABI")
			return nil
		}
	}
	a, err := txanalyzer.ParseABI(content)
	if err != nil {
		log.Warn().Err(err).Msg("supplied ABI could not be parsed, ignoring it")
		return nil
	}
	return a
}
