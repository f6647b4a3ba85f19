package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Panandika/model-routing-benchmark/internal/bench"
	"github.com/Panandika/model-routing-benchmark/internal/config"
	"github.com/Panandika/model-routing-benchmark/internal/llm/openrouter"
	"github.com/Panandika/model-routing-benchmark/internal/logging"
	"github.com/Panandika/model-routing-benchmark/internal/observability"
	"github.com/Panandika/model-routing-benchmark/internal/router"
)

// NewRunCmd wires the run command: preflight checks, then the benchmark.
func NewRunCmd(opts *Options) *cobra.Command {
	var questionsFile string
	var outputFile string
	var concurrency int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark and write the JSON report",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadDotEnv(opts.EnvFile); err != nil {
				return err
			}

			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if questionsFile != "" {
				cfg.Benchmark.QuestionsFile = questionsFile
			}
			if outputFile != "" {
				cfg.Output.File = outputFile
			}
			if concurrency > 0 {
				cfg.Benchmark.ConcurrentRequests = concurrency
			}

			apiKey := os.Getenv(config.EnvAPIKey)
			if apiKey == "" {
				return fmt.Errorf("%s environment variable not set", config.EnvAPIKey)
			}

			logger, err := logging.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck // best-effort

			if ignored := cfg.IgnoredModels(); len(ignored) > 0 {
				logger.Warn("only the first routing model is used as the routing target",
					zap.String("target", cfg.RoutingTarget()),
					zap.Strings("ignored", ignored),
				)
			}

			metrics := observability.NewMetrics()
			ctx := cmd.Context()
			if cfg.Metrics.Enabled {
				srv := observability.NewServer(cfg.Metrics.Addr, metrics, logger)
				go func() {
					if err := srv.Run(ctx); err != nil {
						logger.Error("metrics listener error", zap.Error(err))
					}
				}()
			}

			provider := openrouter.NewProvider("openrouter", cfg.Client.BaseURL, apiKey, cfg.Client.Timeout)
			client := router.NewClient(provider, cfg.RoutingTarget(), cfg.Client.Retries, cfg.Client.InitialDelay, logger, metrics)

			runner := &bench.Runner{
				Client:        client,
				RoutingModels: cfg.Routing.Models,
				Concurrency:   cfg.Benchmark.ConcurrentRequests,
				QuestionsFile: cfg.Benchmark.QuestionsFile,
				OutputFile:    cfg.Output.File,
				Logger:        logger,
				Metrics:       metrics,
			}

			_, err = runner.Run(ctx)
			return err
		},
	}

	cmd.Flags().StringVar(&questionsFile, "questions", "", "Override benchmark questions file")
	cmd.Flags().StringVar(&outputFile, "output", "", "Override report output file")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Override dispatcher concurrency ceiling")

	return cmd
}

// loadDotEnv loads environment variables from path. If the file does not
// exist it is silently ignored so that .env files remain optional.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
