package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// learnConfig mirrors the learn command's flags in a TOML file. Pointer
// fields distinguish "not set" from a zero value, so a config file only
// overrides what it names.
//
// Example:
//
//	runs = 25
//	seed = 42
//	max_parents = 3
//	init = "star"
//	score = "mdl"
//	arc_reversal = true
//	class = "play"
//	format = "svg"
type learnConfig struct {
	Runs        *int    `toml:"runs"`
	Seed        *int64  `toml:"seed"`
	MaxParents  *int    `toml:"max_parents"`
	Init        *string `toml:"init"`
	Score       *string `toml:"score"`
	ArcReversal *bool   `toml:"arc_reversal"`
	Class       *string `toml:"class"`
	Format      *string `toml:"format"`
	Detailed    *bool   `toml:"detailed"`
}

// loadLearnConfig reads a TOML config file. Unknown keys are rejected so
// a typo fails loudly instead of being silently ignored.
func loadLearnConfig(path string) (learnConfig, error) {
	var cfg learnConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// apply copies config values into the learn options for every flag the
// user did not set explicitly. Flags beat the config file; the config
// file beats defaults.
func (f learnConfig) apply(opts *learnOptions, changed func(string) bool) {
	if f.Runs != nil && !changed("runs") {
		opts.runs = *f.Runs
	}
	if f.Seed != nil && !changed("seed") {
		opts.seed = *f.Seed
	}
	if f.MaxParents != nil && !changed("max-parents") {
		opts.maxParents = *f.MaxParents
	}
	if f.Init != nil && !changed("init") {
		opts.init = *f.Init
	}
	if f.Score != nil && !changed("score") {
		opts.score = *f.Score
	}
	if f.ArcReversal != nil && !changed("arc-reversal") {
		opts.arcReversal = *f.ArcReversal
	}
	if f.Class != nil && !changed("class") {
		opts.class = *f.Class
	}
	if f.Format != nil && !changed("format") {
		opts.format = *f.Format
	}
	if f.Detailed != nil && !changed("detailed") {
		opts.detailed = *f.Detailed
	}
}
