package common

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/danieldk/embednet"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of the environment variables read by ApplyEnv.
const EnvPrefix = "EMBEDNET_"

// Config holds the settings of the command-line tools.
type Config struct {
	Workers     int           `yaml:"workers"`
	Order       string        `yaml:"order"`
	ZeroVectors string        `yaml:"zero_vectors"`
	Progress    time.Duration `yaml:"progress"`

	// Distance matrix
	Summary        bool `yaml:"summary"`
	AllPercentiles bool `yaml:"all_percentiles"`

	// Graph
	Undirected  bool   `yaml:"undirected"`
	NoSelfLoops bool   `yaml:"no_self_loops"`
	SortEdges   bool   `yaml:"sort_edges"`
	Format      string `yaml:"format"`
}

// Graph output formats.
const (
	FormatTSV    = "tsv"
	FormatSQLite = "sqlite"
)

func Defaults() Config {
	return Config{
		Order:       embednet.OrderSorted.String(),
		ZeroVectors: embednet.ZeroFail.String(),
		Progress:    5 * time.Second,
		Format:      FormatTSV,
	}
}

// LoadFile overlays the settings of a YAML file on cfg.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	return nil
}

// LoadDotEnv loads a .env file from the working directory, if present.
// Variables that are already set are not overridden.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// ApplyEnv overlays EMBEDNET_* variables on cfg.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sWORKERS: %w", EnvPrefix, err)
		}
		cfg.Workers = n
	}

	if v, ok := lookup(EnvPrefix + "ORDER"); ok {
		cfg.Order = v
	}

	if v, ok := lookup(EnvPrefix + "ZERO_VECTORS"); ok {
		cfg.ZeroVectors = v
	}

	if v, ok := lookup(EnvPrefix + "PROGRESS"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sPROGRESS: %w", EnvPrefix, err)
		}
		cfg.Progress = d
	}

	for _, b := range []struct {
		name string
		dst  *bool
	}{
		{"SUMMARY", &cfg.Summary},
		{"ALL_PERCENTILES", &cfg.AllPercentiles},
		{"UNDIRECTED", &cfg.Undirected},
		{"NO_SELF_LOOPS", &cfg.NoSelfLoops},
		{"SORT_EDGES", &cfg.SortEdges},
	} {
		v, ok := lookup(EnvPrefix + b.name)
		if !ok {
			continue
		}

		flag, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, b.name, err)
		}
		*b.dst = flag
	}

	if v, ok := lookup(EnvPrefix + "FORMAT"); ok {
		cfg.Format = v
	}

	return nil
}

// Validate checks values that the pipelines cannot interpret.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, was %d", c.Workers)
	}

	if _, err := embednet.ParseOrder(c.Order); err != nil {
		return err
	}

	if _, err := embednet.ParseZeroPolicy(c.ZeroVectors); err != nil {
		return err
	}

	if c.Format != FormatTSV && c.Format != FormatSQLite {
		return fmt.Errorf("unknown graph format: %q (want %s or %s)", c.Format, FormatTSV, FormatSQLite)
	}

	return nil
}

// Options converts the configuration to pipeline options. Progress is
// reported to logger under label.
func (c Config) Options(logger *log.Logger, label string) (embednet.Options, error) {
	order, err := embednet.ParseOrder(c.Order)
	if err != nil {
		return embednet.Options{}, &ConfigError{Err: err}
	}

	zeros, err := embednet.ParseZeroPolicy(c.ZeroVectors)
	if err != nil {
		return embednet.Options{}, &ConfigError{Err: err}
	}

	return embednet.Options{
		Workers:     c.Workers,
		Order:       order,
		ZeroVectors: zeros,
		Progress:    embednet.NewProgress(logger, label, c.Progress),
	}, nil
}
