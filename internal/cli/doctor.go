package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Panandika/model-routing-benchmark/internal/bench"
	"github.com/Panandika/model-routing-benchmark/internal/config"
)

// NewDoctorCmd returns a health-check command validating config and environment.
func NewDoctorCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Validate configuration, credentials, and the questions file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadDotEnv(opts.EnvFile); err != nil {
				return err
			}

			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config OK. Routing target: %s, concurrency: %d, retries: %d\n",
				cfg.RoutingTarget(), cfg.Benchmark.ConcurrentRequests, cfg.Client.Retries)

			if ignored := cfg.IgnoredModels(); len(ignored) > 0 {
				fmt.Fprintf(out, "Warning: %d extra routing model(s) configured but ignored: %v\n", len(ignored), ignored)
			}

			if os.Getenv(config.EnvAPIKey) == "" {
				return fmt.Errorf("%s environment variable not set", config.EnvAPIKey)
			}
			fmt.Fprintf(out, "Credential %s present.\n", config.EnvAPIKey)

			questions, err := bench.LoadQuestions(cfg.Benchmark.QuestionsFile)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Questions file OK: %d questions in %s\n", len(questions), cfg.Benchmark.QuestionsFile)

			return nil
		},
	}
}
