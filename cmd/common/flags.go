package common

import (
	"github.com/spf13/cobra"
)

// Settings binds command-line flags. Resolve combines them with the
// defaults, the configuration file and the environment, in increasing
// order of precedence: defaults, file, environment, flags.
type Settings struct {
	configPath string
	flags      Config
}

// AddCommonFlags registers the flags shared by the pairwise tools.
func (s *Settings) AddCommonFlags(cmd *cobra.Command) {
	defaults := Defaults()

	fs := cmd.Flags()
	fs.StringVar(&s.configPath, "config", "", "YAML configuration file")
	fs.IntVar(&s.flags.Workers, "workers", defaults.Workers, "number of concurrent workers (0: GOMAXPROCS)")
	fs.StringVar(&s.flags.Order, "order", defaults.Order, "word order: sorted or file")
	fs.StringVar(&s.flags.ZeroVectors, "zero-vectors", defaults.ZeroVectors, "zero-magnitude vectors: fail or max")
	fs.DurationVar(&s.flags.Progress, "progress", defaults.Progress, "progress report interval (0 disables)")
}

// AddDistanceFlags registers the flags of the distance matrix tool.
func (s *Settings) AddDistanceFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.BoolVar(&s.flags.Summary, "summary", false, "log statistics of the distances")
	fs.BoolVar(&s.flags.AllPercentiles, "all-percentiles", false, "log every percentile from p1 to p99 in the summary")
}

// AddGraphFlags registers the flags of the graph tool.
func (s *Settings) AddGraphFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.BoolVar(&s.flags.Undirected, "undirected", false, "store every pair once, as (min, max)")
	fs.BoolVar(&s.flags.NoSelfLoops, "no-self-loops", false, "exclude pairs of a word with itself")
	fs.BoolVar(&s.flags.SortEdges, "sort-edges", false, "write edges in index order")
	fs.StringVar(&s.flags.Format, "format", FormatTSV, "output format: tsv or sqlite")
}

// Resolve returns the effective configuration of cmd.
func (s *Settings) Resolve(cmd *cobra.Command, lookup func(string) (string, bool)) (Config, error) {
	cfg := Defaults()

	if s.configPath != "" {
		if err := LoadFile(s.configPath, &cfg); err != nil {
			return Config{}, &ConfigError{Err: err}
		}
	}

	if err := ApplyEnv(&cfg, lookup); err != nil {
		return Config{}, &ConfigError{Err: err}
	}

	fs := cmd.Flags()
	if fs.Changed("workers") {
		cfg.Workers = s.flags.Workers
	}
	if fs.Changed("order") {
		cfg.Order = s.flags.Order
	}
	if fs.Changed("zero-vectors") {
		cfg.ZeroVectors = s.flags.ZeroVectors
	}
	if fs.Changed("progress") {
		cfg.Progress = s.flags.Progress
	}
	if fs.Changed("summary") {
		cfg.Summary = s.flags.Summary
	}
	if fs.Changed("all-percentiles") {
		cfg.AllPercentiles = s.flags.AllPercentiles
	}
	if fs.Changed("undirected") {
		cfg.Undirected = s.flags.Undirected
	}
	if fs.Changed("no-self-loops") {
		cfg.NoSelfLoops = s.flags.NoSelfLoops
	}
	if fs.Changed("sort-edges") {
		cfg.SortEdges = s.flags.SortEdges
	}
	if fs.Changed("format") {
		cfg.Format = s.flags.Format
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, &ConfigError{Err: err}
	}

	return cfg, nil
}
