// Copyright © 2018 Victor Tran
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tranvictor/visualsign/config"
	"github.com/tranvictor/visualsign/networks"
)

// settings is the state shared by the commands of one invocation.
type settings struct {
	configFile string
	v          *viper.Viper
	cfg        config.Config
}

// flagKeys maps flag names to the config keys they override.
var flagKeys = map[string]string{
	"log-level":               "log_level",
	"networks-dir":            "networks_dir",
	"network":                 "chain_id",
	"output":                  "output",
	"decode-simple-transfers": "decode_simple_transfers",
	"allow-signed":            "allow_signed",
	"condensed-only":          "condensed_only",
	"abi-mapping":             "abi_mappings",
}

// NewRootCmd builds the visualsign command tree.
func NewRootCmd() *cobra.Command {
	s := &settings{}
	root := &cobra.Command{
		Use:   "visualsign",
		Short: "Show what an ethereum transaction does before you sign it",
		Long: `visualsign decodes a raw ethereum transaction and renders it as a
signable payload: the network, the destination, value and fees, followed by
what the calldata does.

Calls to Aave, Uniswap (Universal Router, V4 PoolManager, Permit2) and the
Morpho Bundler are decoded natively. Other calls are decoded with an ABI you
supply (--abi) or map to an address (--abi-mapping Name:path:0xaddress), and
fall back to the raw calldata otherwise.

Every flag can also be set in a yaml config file (--config) or through
VISUALSIGN_ prefixed environment variables, e.g. VISUALSIGN_OUTPUT=json.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.init(cmd)
		},
	}
	root.PersistentFlags().StringVar(&s.configFile, "config", "", "Path to a yaml config file")
	root.PersistentFlags().String("log-level", "info", "Log level: trace, debug, info, warn, error")
	root.PersistentFlags().String("networks-dir", "", "Directory of *.json network definitions to add to the built-in ones")

	root.AddCommand(newParseCmd(s))
	root.AddCommand(newNetworksCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (s *settings) init(cmd *cobra.Command) error {
	v, err := config.New()
	if err != nil {
		return err
	}
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(v, s.configFile)
	if err != nil {
		return err
	}
	s.v, s.cfg = v, cfg

	level, _ := cfg.Level()
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Str("request_id", uuid.NewString()).
		Logger()

	if cfg.NetworksDir != "" {
		loaded, err := networks.LoadCustomNetworks(cfg.NetworksDir)
		if err != nil {
			return err
		}
		log.Debug().Int("count", len(loaded)).Str("dir", cfg.NetworksDir).Msg("loaded custom networks")
	}
	return nil
}

// bindFlags binds the flags of the running command that shadow a config
// key. Unset flags leave the config and environment values in place.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}
