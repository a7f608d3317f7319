package cmd

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tranvictor/visualsign/config"
	"github.com/tranvictor/visualsign/envelope"
	"github.com/tranvictor/visualsign/networks"
	"github.com/tranvictor/visualsign/protocols"
	"github.com/tranvictor/visualsign/registry"
	"github.com/tranvictor/visualsign/txanalyzer"
	"github.com/tranvictor/visualsign/ui"
	"github.com/tranvictor/visualsign/util"
	"github.com/tranvictor/visualsign/visualizer"
)

type parseFlags struct {
	abiPath       string
	signaturePath string
	metadataPath  string
	title         string
	allKinds      bool
}

func newParseCmd(s *settings) *cobra.Command {
	pf := &parseFlags{}
	c := &cobra.Command{
		Use:   "parse [raw tx|-]",
		Short: "Decode a raw transaction and show what it does",
		Long: `Decode a raw transaction given as hex (with or without 0x) or base64.
Pass - or nothing to read it from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, s.cfg, pf)
		},
	}
	c.Flags().StringP("network", "k", "", "Chain id or network name. Defaults to the chain id of the transaction, then to mainnet")
	c.Flags().StringP("output", "o", config.OutputHuman, "Output format: text, json or human")
	c.Flags().Bool("decode-simple-transfers", false, "Decode transfer, transferFrom and approve calls to unknown contracts as token calls")
	c.Flags().Bool("allow-signed", false, "Accept signed transactions. The signature is ignored")
	c.Flags().Bool("condensed-only", false, "Only show the condensed part of previews in human output")
	c.Flags().StringSlice("abi-mapping", nil, "ABI mapped to an address, as Name:path/to/abi.json:0xaddress. Repeatable")
	c.Flags().StringVar(&pf.abiPath, "abi", "", "ABI json file of the destination contract")
	c.Flags().StringVar(&pf.signaturePath, "abi-signature", "", "json file with the signature of the --abi file")
	c.Flags().StringVar(&pf.metadataPath, "chain-metadata", "", "Chain metadata json file declaring the network and extra tokens")
	c.Flags().StringVar(&pf.title, "title", "", "Title of the payload")
	c.Flags().BoolVar(&pf.allKinds, "all-kinds", false, "Accept every transaction type, not just legacy and eip-1559")
	return c
}

func runParse(cmd *cobra.Command, args []string, cfg config.Config, pf *parseFlags) error {
	input, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	opts, err := parseOptions(cfg, pf)
	if err != nil {
		return err
	}

	d, err := visualizer.Decode(input, opts)
	if err != nil {
		return err
	}
	abis := txanalyzer.NewAbiRegistry()
	if err := abis.LoadMappings(d.ChainID, cfg.ABIMappings); err != nil {
		return err
	}
	engine, err := visualizer.NewEngine(protocols.Default(), visualizer.WithAbiRegistry(abis))
	if err != nil {
		return err
	}
	p, err := engine.VisualizeDecoded(d, opts)
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		log.Warn().Err(err).Msg("payload failed validation")
	}

	out := cmd.OutOrStdout()
	switch cfg.Output {
	case config.OutputJSON:
		content, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return errors.Wrap(err, "couldn't encode the payload")
		}
		_, err = out.Write(append(content, '\n'))
		return err
	case config.OutputText:
		util.DisplayText(terminalUI(out), p)
	default:
		util.DisplayHuman(terminalUI(out), p, cfg.CondensedOnly)
	}
	return nil
}

// terminalUI colours the output only when it goes to a terminal.
func terminalUI(out io.Writer) *ui.TerminalUI {
	colors := false
	if f, ok := out.(*os.File); ok {
		colors = term.IsTerminal(int(f.Fd()))
	}
	return ui.NewTerminalUIWithWriter(out, colors)
}

func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		return args[0], nil
	}
	content, err := io.ReadAll(stdin)
	if err != nil {
		return "", errors.Wrap(err, "couldn't read the transaction from stdin")
	}
	input := strings.TrimSpace(string(content))
	if input == "" {
		return "", errors.New("no transaction given")
	}
	return input, nil
}

func parseOptions(cfg config.Config, pf *parseFlags) (visualizer.ParseOptions, error) {
	opts := visualizer.ParseOptions{
		AllowSigned:           cfg.AllowSigned,
		DecodeSimpleTransfers: cfg.DecodeSimpleTransfers,
		TransactionName:       pf.title,
	}
	if cfg.ChainID != "" {
		id, err := networks.ParseChainID(cfg.ChainID)
		if err != nil {
			return opts, err
		}
		opts.ChainID = id
	}
	if pf.allKinds {
		opts.Supported = envelope.AllKinds
	}
	if pf.metadataPath != "" {
		content, err := os.ReadFile(pf.metadataPath)
		if err != nil {
			return opts, errors.Wrapf(err, "couldn't read chain metadata %s", pf.metadataPath)
		}
		m, err := registry.ParseChainMetadata(content)
		if err != nil {
			return opts, err
		}
		opts.Metadata = m
	}
	if pf.abiPath != "" {
		content, err := os.ReadFile(pf.abiPath)
		if err != nil {
			return opts, errors.Wrapf(err, "couldn't read ABI %s", pf.abiPath)
		}
		opts.ABI = content
	}
	if pf.signaturePath != "" {
		if pf.abiPath == "" {
			return opts, errors.New("--abi-signature needs --abi")
		}
		content, err := os.ReadFile(pf.signaturePath)
		if err != nil {
			return opts, errors.Wrapf(err, "couldn't read ABI signature %s", pf.signaturePath)
		}
		sig := &txanalyzer.ABISignature{}
		if err := json.Unmarshal(content, sig); err != nil {
			return opts, errors.Wrap(err, "invalid ABI signature json")
		}
		opts.ABISignature = sig
	}
	return opts, nil
}
