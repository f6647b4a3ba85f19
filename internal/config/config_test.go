package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err, "explicit path must exist")

	// no path: defaults apply even without a config file.
	cfg, err = Load("")
	require.NoError(t, err)
	require.Equal(t, []string{AutoRouteModel}, cfg.Routing.Models)
	require.Equal(t, AutoRouteModel, cfg.RoutingTarget())
	require.Empty(t, cfg.IgnoredModels())
	require.Equal(t, 60*time.Second, cfg.Client.Timeout)
	require.Equal(t, 3, cfg.Client.Retries)
	require.Equal(t, 2*time.Second, cfg.Client.InitialDelay)
	require.Equal(t, 5, cfg.Benchmark.ConcurrentRequests)
	require.Equal(t, "questions-benchmark.json", cfg.Benchmark.QuestionsFile)
	require.Equal(t, "questions_benchmark_results.json", cfg.Output.File)
	require.False(t, cfg.Metrics.Enabled)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "routebench.yaml")
	configYAML := `
routing:
  models:
    - openrouter/auto
    - anthropic/claude-3.5-sonnet
client:
  retries: 5
  initial_delay: 1s
  timeout: 30s
benchmark:
  concurrent_requests: 8
  questions_file: my-questions.json
output:
  file: my-results.json
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(configYAML), 0o644))

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Client.Retries)
	require.Equal(t, time.Second, cfg.Client.InitialDelay)
	require.Equal(t, 8, cfg.Benchmark.ConcurrentRequests)
	require.Equal(t, "my-questions.json", cfg.Benchmark.QuestionsFile)
	require.Equal(t, "my-results.json", cfg.Output.File)
	require.Equal(t, "openrouter/auto", cfg.RoutingTarget())
	require.Equal(t, []string{"anthropic/claude-3.5-sonnet"}, cfg.IgnoredModels())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ROUTEBENCH_BENCHMARK_CONCURRENT_REQUESTS", "12")
	t.Setenv("ROUTEBENCH_CLIENT_RETRIES", "7")
	t.Setenv("ROUTEBENCH_OUTPUT_FILE", "env-results.json")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 12, cfg.Benchmark.ConcurrentRequests)
	require.Equal(t, 7, cfg.Client.Retries)
	require.Equal(t, "env-results.json", cfg.Output.File)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Routing:   RoutingConfig{Models: []string{AutoRouteModel}},
			Client:    ClientConfig{BaseURL: "https://openrouter.ai/api", Timeout: time.Minute, Retries: 3, InitialDelay: 2 * time.Second},
			Benchmark: BenchmarkConfig{QuestionsFile: "q.json", ConcurrentRequests: 5},
			Output:    OutputConfig{File: "out.json"},
			Logging:   LoggingConfig{Level: "info", Format: "console"},
		}
	}

	require.NoError(t, base().Validate())

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no routing models", func(c *Config) { c.Routing.Models = nil }},
		{"blank routing model", func(c *Config) { c.Routing.Models = []string{" "} }},
		{"zero retries", func(c *Config) { c.Client.Retries = 0 }},
		{"zero initial delay", func(c *Config) { c.Client.InitialDelay = 0 }},
		{"zero timeout", func(c *Config) { c.Client.Timeout = 0 }},
		{"zero concurrency", func(c *Config) { c.Benchmark.ConcurrentRequests = 0 }},
		{"no questions file", func(c *Config) { c.Benchmark.QuestionsFile = "" }},
		{"no output file", func(c *Config) { c.Output.File = "" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"metrics without addr", func(c *Config) { c.Metrics = MetricsConfig{Enabled: true} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
