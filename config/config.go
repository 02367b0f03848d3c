// Package config loads the patchnet CLI configuration.
//
// Sources, lowest priority first: built-in defaults, a TOML file, PATCHNET_*
// environment variables, command-line flags. Keys are dotted: the env
// variable PATCHNET_DELTA_BATCH and the flag --delta.batch both set
// "delta.batch".
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/patchnet/core"
	"github.com/katalvlaran/patchnet/delta"
	"github.com/katalvlaran/patchnet/logging"
	"github.com/katalvlaran/patchnet/metric"
)

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "PATCHNET_"

// DefaultFile is read when present and no --config is given.
const DefaultFile = "patchnet.toml"

// ErrInvalid wraps validation failures.
var ErrInvalid = errors.New("config: invalid")

var validate = validator.New()

// Config holds all configuration of a run.
type Config struct {
	Input   string        `koanf:"input" validate:"required"`
	Output  string        `koanf:"output"`
	Workers int           `koanf:"workers" validate:"gte=0"`
	Cost    CostConfig    `koanf:"cost"`
	Metric  MetricConfig  `koanf:"metric"`
	Cluster ClusterConfig `koanf:"cluster"`
	Delta   DeltaConfig   `koanf:"delta"`
	Log     LogConfig     `koanf:"log"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// CostConfig overrides the cost section of the graph document when Kind is set.
type CostConfig struct {
	Kind      string  `koanf:"kind" validate:"omitempty,oneof=leastcost euclidean"`
	Topology  string  `koanf:"topology" validate:"omitempty,oneof=complete threshold mst"`
	Threshold float64 `koanf:"threshold" validate:"gte=0"`
}

// MetricConfig selects the global metric by detail name.
type MetricConfig struct {
	Name string `koanf:"name" validate:"required"`
	All  bool   `koanf:"all"`
}

// ClusterConfig drives the partition handed to cluster-aware metrics:
// K = 0 takes the best greedy partition, K > 0 the refined K-cluster one.
type ClusterConfig struct {
	K int `koanf:"k" validate:"gte=0"`
}

// DeltaConfig enables the delta-metric task.
type DeltaConfig struct {
	Enabled bool   `koanf:"enabled"`
	Mode    string `koanf:"mode" validate:"oneof=difference ratio"`
	Batch   int    `koanf:"batch" validate:"gte=1"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	Dev   bool   `koanf:"dev"`
}

// MetricsConfig names the file that receives the Prometheus text dump.
type MetricsConfig struct {
	Out string `koanf:"out"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"input":   "",
		"output":  "",
		"workers": 0,
		"cost": map[string]interface{}{
			"kind":      "",
			"topology":  "",
			"threshold": 0.0,
		},
		"metric": map[string]interface{}{
			"name": "PC",
			"all":  false,
		},
		"cluster": map[string]interface{}{
			"k": 0,
		},
		"delta": map[string]interface{}{
			"enabled": false,
			"mode":    delta.Difference.String(),
			"batch":   16,
		},
		"log": map[string]interface{}{
			"level": "info",
			"dev":   false,
		},
		"metrics": map[string]interface{}{
			"out": "",
		},
	}
}

// Flags returns the flag set understood by Load, including --config.
func Flags(name string) *pflag.FlagSet {
	f := pflag.NewFlagSet(name, pflag.ContinueOnError)
	f.String("config", "", "TOML configuration file (default "+DefaultFile+" when present)")
	f.StringP("input", "i", "", "graph document (YAML or JSON)")
	f.StringP("output", "o", "", "result file (default stdout)")
	f.Int("workers", 0, "worker pool size (0 = GOMAXPROCS)")
	f.String("cost.kind", "", "override cost kind: leastcost | euclidean")
	f.String("cost.topology", "", "override topology: complete | threshold | mst")
	f.Float64("cost.threshold", 0, "distance threshold of the threshold topology")
	f.StringP("metric.name", "m", "PC", "global metric detail name, e.g. PC_d1000_p0.05_beta1")
	f.Bool("metric.all", false, "evaluate every component instead of the largest")
	f.Int("cluster.k", 0, "clusters for Q and PCintra (0 = best partition)")
	f.Bool("delta.enabled", false, "run the delta-metric task")
	f.String("delta.mode", delta.Difference.String(), "delta mode: difference | ratio")
	f.Int("delta.batch", 16, "patches per delta batch")
	f.String("log.level", "info", "log level: "+strings.Join(logging.Levels, " | "))
	f.Bool("log.dev", false, "human-readable logs")
	f.String("metrics.out", "", "write Prometheus metrics to this file")

	return f
}

// Load layers defaults, the TOML file, the environment and f (may be nil),
// then validates the result. f must already be parsed.
func Load(f *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(mapProvider(defaults()), nil); err != nil {
		return nil, fmt.Errorf("config: defaults: %w", err)
	}

	// 2. Config file; only the default file may be missing
	path, explicit := DefaultFile, false
	if f != nil {
		if p, err := f.GetString("config"); err == nil && p != "" {
			path, explicit = p, true
		}
	}
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: file %s: %w", path, err)
		}
	}

	// 3. Environment: PATCHNET_DELTA_BATCH -> delta.batch
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("config: env: %w", err)
	}

	// 4. Flags
	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, fmt.Errorf("config: flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks field constraints and the cross-field rules: a parseable
// metric detail name and cost names core accepts.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
			}
			return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := metric.NewGlobal(c.Metric.Name); err != nil {
		return fmt.Errorf("%w: metric.name: %w", ErrInvalid, err)
	}
	if _, err := c.CostDefinition(); err != nil {
		return fmt.Errorf("%w: cost: %w", ErrInvalid, err)
	}

	return nil
}

// CostDefinition returns the configured override, or nil when cost.kind is
// empty and the document's own cost section applies.
func (c *Config) CostDefinition() (*core.CostDefinition, error) {
	if c.Cost.Kind == "" {
		return nil, nil
	}
	kind, err := core.ParseCostKind(c.Cost.Kind)
	if err != nil {
		return nil, err
	}
	top := core.TopologyComplete
	if c.Cost.Topology != "" {
		if top, err = core.ParseTopology(c.Cost.Topology); err != nil {
			return nil, err
		}
	}

	return &core.CostDefinition{Kind: kind, Topology: top, Threshold: c.Cost.Threshold}, nil
}

// DeltaMode returns the parsed delta mode.
func (c *Config) DeltaMode() (delta.Mode, error) { return delta.ParseMode(c.Delta.Mode) }

// mapProvider serves a static map to koanf.
type mapProvider map[string]interface{}

func (p mapProvider) Read() (map[string]interface{}, error) { return p, nil }

func (p mapProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New("config: map provider has no bytes")
}
