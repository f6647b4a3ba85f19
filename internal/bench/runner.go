package bench

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Panandika/model-routing-benchmark/internal/observability"
	"github.com/Panandika/model-routing-benchmark/internal/router"
)

// CompletionClient is the slice of router.Client the runner needs.
type CompletionClient interface {
	GetCompletion(ctx context.Context, prompt string) (router.Completion, error)
}

// Runner drives a benchmark end to end: load questions, dispatch them through
// the completion client, assemble the report, persist it.
type Runner struct {
	Client        CompletionClient
	RoutingModels []string
	Concurrency   int
	QuestionsFile string
	OutputFile    string
	Logger        *zap.Logger
	Metrics       *observability.Metrics
}

// Run executes the benchmark. Only question loading is fatal; per-question
// failures are recorded in the summary and a report write failure is logged
// without failing the run.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	questions, err := LoadQuestions(r.QuestionsFile)
	if err != nil {
		return nil, err
	}
	r.Logger.Info("loaded questions",
		zap.Int("count", len(questions)),
		zap.String("file", r.QuestionsFile),
	)

	start := time.Now()

	outcomes := Dispatch(ctx, questions, r.Concurrency, func(ctx context.Context, q Question) (string, string, error) {
		r.Metrics.IncInFlight()
		defer r.Metrics.DecInFlight()

		r.Logger.Info("processing question",
			zap.Int("id", q.ID),
			zap.String("difficulty", q.Difficulty),
		)

		completion, err := r.Client.GetCompletion(ctx, q.Question)
		if err != nil {
			return "", "", err
		}
		return completion.Model, completion.Answer, nil
	})

	report := r.assemble(questions, outcomes)

	r.Metrics.ObserveRunDuration(time.Since(start))

	if err := WriteReport(r.OutputFile, report); err != nil {
		// Accepted limitation: the run is complete, the artifact is not durable.
		r.Logger.Error("failed to write report", zap.Error(err))
	} else {
		r.Logger.Info("report written", zap.String("file", r.OutputFile))
	}

	r.Logger.Info("benchmark complete",
		zap.Int("total_questions", report.Summary.TotalQuestions),
		zap.Any("model_usage", report.Summary.ModelUsage),
	)
	if len(report.Summary.FailedQuestions) > 0 {
		r.Logger.Warn("some questions failed",
			zap.Int("count", len(report.Summary.FailedQuestions)),
			zap.Ints("ids", report.Summary.FailedQuestions),
		)
	}

	return report, nil
}

// assemble merges per-question outcomes into the final report. Every question
// id lands in exactly one of results or failed_questions.
func (r *Runner) assemble(questions []Question, outcomes []Outcome) *Report {
	results := make([]ResultEntry, 0, len(outcomes))
	usage := make(map[string]int)
	var failed []int

	for _, o := range outcomes {
		if o.Err != nil {
			r.Logger.Error("no answer for question",
				zap.Int("id", o.Question.ID),
				zap.Error(o.Err),
			)
			r.Metrics.RecordQuestionFailure()
			failed = append(failed, o.Question.ID)
			continue
		}

		results = append(results, ResultEntry{
			ID:         o.Question.ID,
			Difficulty: o.Question.Difficulty,
			Question:   o.Question.Question,
			ModelUsed:  o.Model,
			Answer:     o.Answer,
		})
		usage[o.Model]++
		r.Metrics.RecordModelUsage(o.Model)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	sort.Ints(failed)
	if failed == nil {
		failed = []int{}
	}

	return &Report{
		Results: results,
		Summary: Summary{
			Timestamp:                  time.Now().Format(time.RFC3339),
			TotalQuestions:             len(questions),
			ModelsConfiguredForRouting: r.RoutingModels,
			ModelUsage:                 usage,
			FailedQuestions:            failed,
			RoutingInsights:            routingInsights,
		},
	}
}
