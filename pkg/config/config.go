// Package config loads gobounds settings from a TOML file and merges them
// with command-line flags.
package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/philipparndt/gobounds/pkg/query"
	"github.com/philipparndt/gobounds/pkg/watcher"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var formats = []string{FormatText, FormatJSON, FormatYAML}

// Flag names shared by the commands and Apply
const (
	FlagFormat    = "format"
	FlagParallel  = "parallel"
	FlagBlockSize = "block-size"
	FlagWorkers   = "workers"
	FlagDebounce  = "debounce"
)

// Config holds settings that can come from a file or from flags
type Config struct {
	Format    string        `toml:"format"`
	Parallel  bool          `toml:"parallel"`
	BlockSize int           `toml:"block_size"`
	Workers   int           `toml:"workers"`
	Debounce  time.Duration `toml:"debounce"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Format:    FormatText,
		BlockSize: query.DefaultBlockSize,
		Debounce:  watcher.DefaultDebounce,
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
// Unknown keys are rejected so typos do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	return cfg, cfg.Validate()
}

// Validate checks value ranges
func (c Config) Validate() error {
	if !slices.Contains(formats, c.Format) {
		return fmt.Errorf("invalid format %q (expected %s)", c.Format, strings.Join(formats, ", "))
	}
	if c.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative: %s", c.Debounce)
	}
	return nil
}

// Apply overrides c with every flag in fs the user set explicitly. Flags
// not registered on fs are ignored.
func (c *Config) Apply(fs *pflag.FlagSet) error {
	var err error
	changed := func(name string) bool {
		f := fs.Lookup(name)
		return err == nil && f != nil && f.Changed
	}

	if changed(FlagFormat) {
		c.Format, err = fs.GetString(FlagFormat)
	}
	if changed(FlagParallel) {
		c.Parallel, err = fs.GetBool(FlagParallel)
	}
	if changed(FlagBlockSize) {
		c.BlockSize, err = fs.GetInt(FlagBlockSize)
	}
	if changed(FlagWorkers) {
		c.Workers, err = fs.GetInt(FlagWorkers)
	}
	if changed(FlagDebounce) {
		c.Debounce, err = fs.GetDuration(FlagDebounce)
	}
	if err != nil {
		return err
	}

	return c.Validate()
}

// QueryOptions returns the parallel query settings
func (c Config) QueryOptions() query.Options {
	return query.Options{
		BlockSize: c.BlockSize,
		Workers:   c.Workers,
	}
}
