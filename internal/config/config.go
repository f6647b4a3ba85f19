package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvAPIKey is the environment variable carrying the OpenRouter credential.
// It is read from the environment only, never from the config file.
const EnvAPIKey = "OPEN_ROUTER_API_KEY"

// AutoRouteModel is the sentinel telling OpenRouter to pick the responding
// model itself.
const AutoRouteModel = "openrouter/auto"

// Config describes the top-level application configuration loaded from YAML and ENV.
type Config struct {
	Routing   RoutingConfig   `mapstructure:"routing"`
	Client    ClientConfig    `mapstructure:"client"`
	Benchmark BenchmarkConfig `mapstructure:"benchmark"`
	Output    OutputConfig    `mapstructure:"output"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// RoutingConfig lists the model identifiers handed to the remote router.
// Only the first entry is used as the routing target; see Config.RoutingTarget.
type RoutingConfig struct {
	Models []string `mapstructure:"models"`
}

// ClientConfig controls the completion client: endpoint, timeout, and the
// retry/backoff policy.
type ClientConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Retries      int           `mapstructure:"retries"`
	InitialDelay time.Duration `mapstructure:"initial_delay"`
}

// BenchmarkConfig controls the question set and dispatcher.
type BenchmarkConfig struct {
	QuestionsFile      string `mapstructure:"questions_file"`
	ConcurrentRequests int    `mapstructure:"concurrent_requests"`
}

// OutputConfig names the report artifact.
type OutputConfig struct {
	File string `mapstructure:"file"`
}

// LoggingConfig controls logger behaviour.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // console or json
}

// MetricsConfig controls the optional Prometheus listener.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

// Load reads configuration from the provided path or defaults to
// routebench.yaml in the working directory or configs/. A missing default
// file is not an error: every key has a usable default.
// Environment variables override file values (prefix: ROUTEBENCH_, dots
// replaced with underscores).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("ROUTEBENCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		v.SetConfigName("routebench")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("configs")
	} else {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults populates the defaults for every key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("routing.models", []string{AutoRouteModel})

	v.SetDefault("client.base_url", "https://openrouter.ai/api")
	v.SetDefault("client.timeout", 60*time.Second)
	v.SetDefault("client.retries", 3)
	v.SetDefault("client.initial_delay", 2*time.Second)

	v.SetDefault("benchmark.questions_file", "questions-benchmark.json")
	v.SetDefault("benchmark.concurrent_requests", 5)

	v.SetDefault("output.file", "questions_benchmark_results.json")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.addr", ":9090")
}

// Validate performs basic sanity checks on configuration values.
func (c *Config) Validate() error {
	if len(c.Routing.Models) == 0 {
		return errors.New("routing.models must list at least one model")
	}
	for i, m := range c.Routing.Models {
		if strings.TrimSpace(m) == "" {
			return fmt.Errorf("routing.models[%d] is empty", i)
		}
	}

	if c.Client.Retries < 1 {
		return errors.New("client.retries must be >= 1")
	}
	if c.Client.InitialDelay <= 0 {
		return errors.New("client.initial_delay must be > 0")
	}
	if c.Client.Timeout <= 0 {
		return errors.New("client.timeout must be > 0")
	}

	if c.Benchmark.ConcurrentRequests < 1 {
		return errors.New("benchmark.concurrent_requests must be >= 1")
	}
	if strings.TrimSpace(c.Benchmark.QuestionsFile) == "" {
		return errors.New("benchmark.questions_file must be set")
	}

	if strings.TrimSpace(c.Output.File) == "" {
		return errors.New("output.file must be set")
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}

	if c.Metrics.Enabled && strings.TrimSpace(c.Metrics.Addr) == "" {
		return errors.New("metrics.addr must be set when metrics.enabled is true")
	}

	return nil
}

// RoutingTarget returns the model identifier sent with every request: the
// first configured entry. Remaining entries are ignored by the remote
// auto-router; see IgnoredModels.
func (c *Config) RoutingTarget() string {
	return c.Routing.Models[0]
}

// IgnoredModels returns configured routing models beyond the first. They have
// no effect on requests, so callers surface them as a warning rather than
// silently dropping them.
func (c *Config) IgnoredModels() []string {
	if len(c.Routing.Models) <= 1 {
		return nil
	}
	return c.Routing.Models[1:]
}
