// Package config holds the EngineConfig an Engine is constructed with:
// logging verbosity, a trace-on-backtrack flag, an optional maximum
// resolution depth, and the path to an alternate builtins.pl resource for
// development. It follows the functional-options pattern used throughout
// the example pack's controller/server constructors.
package config

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// EngineConfig controls how an Engine is built. Zero value is valid and
// produces a reasonable default configuration.
type EngineConfig struct {
	LogLevel          string `mapstructure:"log_level"`
	TraceOnBacktrack  bool   `mapstructure:"trace_on_backtrack"`
	MaxResolutionDepth int   `mapstructure:"max_resolution_depth"`
	BuiltinsPath      string `mapstructure:"builtins_path"`
}

// Decode builds an EngineConfig from a plain map, as a caller parsing its
// own JSON/flags configuration would produce, via
// github.com/mitchellh/mapstructure.
func Decode(raw map[string]any) (EngineConfig, error) {
	var cfg EngineConfig
	if raw == nil {
		return cfg, nil
	}
	if err := mapstructure.Decode(raw, &cfg); err != nil {
		return cfg, errors.Wrap(err, "config: decoding engine config")
	}
	return cfg, nil
}

// Logger builds an hclog.Logger honoring LogLevel, defaulting to Info.
func (c EngineConfig) Logger() hclog.Logger {
	level := hclog.Info
	if c.LogLevel != "" {
		level = hclog.LevelFromString(c.LogLevel)
		if level == hclog.NoLevel {
			level = hclog.Info
		}
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:  "sldprolog",
		Level: level,
	})
}
