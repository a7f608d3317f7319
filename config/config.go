package config

import (
	_ "embed"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const EnvPrefix = "VISUALSIGN"

// Output formats of the parse command.
const (
	OutputText  = "text"
	OutputJSON  = "json"
	OutputHuman = "human"
)

//go:embed defaults.yaml
var defaultsYAML string

type Config struct {
	LogLevel              string   `mapstructure:"log_level"`
	Output                string   `mapstructure:"output"`
	ChainID               string   `mapstructure:"chain_id"`
	DecodeSimpleTransfers bool     `mapstructure:"decode_simple_transfers"`
	AllowSigned           bool     `mapstructure:"allow_signed"`
	CondensedOnly         bool     `mapstructure:"condensed_only"`
	ABIMappings           []string `mapstructure:"abi_mappings"`
	NetworksDir           string   `mapstructure:"networks_dir"`
}

// New returns a viper instance holding the embedded defaults with
// VISUALSIGN_ environment variables layered on top.
func New() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(strings.NewReader(defaultsYAML)); err != nil {
		return nil, errors.Wrap(err, "failed to read embedded defaults.yaml")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v, nil
}

// Load merges the user config file at path, if any, into v and decodes the
// result.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "couldn't read config file %s", path)
		}
	}
	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "unable to decode config")
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Output {
	case OutputText, OutputJSON, OutputHuman:
	default:
		return errors.Errorf("unknown output %q, expected one of text, json, human", c.Output)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level is the zerolog level named by LogLevel.
func (c Config) Level() (zerolog.Level, error) {
	l, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.NoLevel, errors.Wrapf(err, "invalid log_level %q", c.LogLevel)
	}
	return l, nil
}
