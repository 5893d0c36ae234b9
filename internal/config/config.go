// File: config.go
// Role: the typed configuration struct §6.1's CLI flags bind into, grounded
// on KhryptorGraphics-OllamaMax/ollama-distributed/internal/config/
// config.go's viper-bind-then-unmarshal pattern (SPEC_FULL.md's AMBIENT
// STACK "Configuration" section): github.com/spf13/cobra registers the
// flags, github.com/spf13/viper binds them (plus an optional `--config`
// YAML override) and unmarshals into this struct.
package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config mirrors spec.md §6.1's CLI surface one field per flag.
type Config struct {
	InputFile       string `mapstructure:"input"`
	OutputFile      string `mapstructure:"output"`
	MaintenanceFile string `mapstructure:"maintenance"`
	SequenceFile    string `mapstructure:"sequence-file"`

	Verbose int `mapstructure:"verbose"`

	Productivity float64 `mapstructure:"productivity"`
	Flexibility  float64 `mapstructure:"flexibility"`
	Tie          float64 `mapstructure:"tie"`

	TimeOutMS     int `mapstructure:"time-out"`
	MaxIterations int `mapstructure:"max-iterations"`
	MaxPartial    int `mapstructure:"max-partial"`

	Algorithms      []string `mapstructure:"algorithm"`
	ExplorationType string   `mapstructure:"exploration-type"`
	ShopType        string   `mapstructure:"shop-type"`
	OutputFormat    string   `mapstructure:"output-format"`

	ModularAlgorithm               string `mapstructure:"modular-algorithm"`
	ModularStoreBounds             bool   `mapstructure:"modular-store-bounds"`
	ModularStoreSequence           bool   `mapstructure:"modular-store-sequence"`
	ModularNoSelfBounds            bool   `mapstructure:"modular-no-self-bounds"`
	ModularMaxIterations           int    `mapstructure:"modular-max-iterations"`
	ModularTimeOutMS               int    `mapstructure:"modular-time-out"`
	ModularMultiAlgorithmBehaviour string `mapstructure:"modular-multi-algorithm-behaviour"`

	ConfigFile string `mapstructure:"-"`
}

// RegisterFlags declares every §6.1 flag on cmd, with the spec's documented
// defaults.
func RegisterFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringP("input", "i", "", "input instance XML file (required)")
	flags.StringP("output", "o", "", "output schedule file (required)")
	flags.String("maintenance", "", "maintenance policy XML file")
	flags.String("sequence-file", "", "seed sequence file for the sequence algorithm")
	flags.CountP("verbose", "v", "increase log verbosity (repeatable)")
	flags.Float64("productivity", 0.70, "BHCS productivity ranking weight")
	flags.Float64("flexibility", 0.25, "BHCS flexibility ranking weight")
	flags.Float64("tie", 0.05, "BHCS tie-break ranking weight")
	flags.Int("time-out", 5000, "solver time budget in milliseconds")
	flags.Int("max-iterations", int(^uint(0)>>1), "solver iteration cap")
	flags.Int("max-partial", 5, "MDBHCS Pareto frontier cap")
	flags.StringSlice("algorithm", []string{"bhcs"}, "algorithm(s) to run (repeatable): bhcs|mdbhcs|mneh|asap|bnb|dd|sequence")
	flags.String("exploration-type", "static", "DD vertex pop order: breadth|depth|best|static|adaptive")
	flags.String("shop-type", "fixedorder", "shop variant: flow|job|fixedorder")
	flags.String("output-format", "json", "output serialization: json|cbor")
	flags.String("modular-algorithm", "broadcast", "modular propagator: broadcast|cocktail")
	flags.Bool("modular-store-bounds", false, "retain per-round bound snapshots in the modular history")
	flags.Bool("modular-store-sequence", false, "retain per-round chosen sequences in the modular history")
	flags.Bool("modular-no-self-bounds", false, "do not wire a module's own derived bounds back onto its own graph")
	flags.Int("modular-max-iterations", 1000, "modular propagator round cap")
	flags.Int("modular-time-out", 5000, "modular propagator time budget in milliseconds")
	flags.String("modular-multi-algorithm-behaviour", "first", "first|divide|interleave|last|random")
	flags.String("config", "", "optional YAML config file overriding the defaults above")
}

// Load binds cmd's flags through viper and unmarshals them into a Config,
// reading an optional `--config` YAML file first so flags still take
// precedence over file values.
func Load(cmd *cobra.Command) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FSPSCHEDULER")
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("config: bind flags: %w", err)
	}

	if configFile := v.GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.ConfigFile = v.GetString("config")
	return cfg, nil
}
