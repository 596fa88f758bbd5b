package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/wash/errors"
	"github.com/wippyai/wash/header"
)

const configFileName = "wash.toml"

type config struct {
	Output outputConfig `toml:"output"`
	Parse  parseConfig  `toml:"parse"`
}

type outputConfig struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

type parseConfig struct {
	Jobs int `toml:"jobs"`
}

func defaultConfig() config {
	return config{
		Output: outputConfig{Format: formatPretty, Color: "auto"},
		Parse:  parseConfig{Jobs: runtime.NumCPU()},
	}
}

func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !stderrors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadConfig reads path over the defaults. Unknown keys are rejected.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return config{}, errors.InvalidInput(errors.PhaseConfig,
			fmt.Sprintf("%s: unknown keys: %s", path, strings.Join(keys, ", ")))
	}
	return cfg, cfg.validate()
}

func (c config) validate() error {
	switch c.Output.Format {
	case formatPretty, formatJSON, formatMsgpack:
	default:
		return errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("unknown format %q (want pretty|json|msgpack)", c.Output.Format))
	}
	switch c.Output.Color {
	case "auto", "on", "off":
	default:
		return errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("unknown color mode %q (want auto|on|off)", c.Output.Color))
	}
	if c.Parse.Jobs < 1 {
		return errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("jobs must be positive, got %d", c.Parse.Jobs))
	}
	return nil
}

// resolveConfig loads the config file named by --config, or the nearest
// wash.toml, and applies explicitly set flags on top.
func resolveConfig(cmd *cobra.Command) (config, error) {
	cfg := defaultConfig()

	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		found, ok, err := findConfig(".")
		if err != nil {
			return config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "locate "+configFileName)
		}
		if ok {
			path = found
		}
	} else if _, err := os.Stat(path); err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return config{}, errors.NotFound(errors.PhaseConfig, "config file", path)
		}
		return config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "stat "+path)
	}

	if path != "" {
		loaded, err := loadConfig(path)
		if err != nil {
			return config{}, err
		}
		cfg = loaded
		header.Logger().Debug("loaded config", zap.String("path", path))
	}

	flags := cmd.Flags()
	if flags.Lookup("format") != nil && flags.Changed("format") {
		cfg.Output.Format, _ = flags.GetString("format")
	}
	if flags.Changed("color") {
		cfg.Output.Color, _ = flags.GetString("color")
	}
	if flags.Lookup("jobs") != nil && flags.Changed("jobs") {
		cfg.Parse.Jobs, _ = flags.GetInt("jobs")
	}
	return cfg, cfg.validate()
}
