package bench

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Outcome is what a single question handler produced: either a model/answer
// pair or the error that exhausted it.
type Outcome struct {
	Question Question
	Model    string
	Answer   string
	Err      error
}

// Handler processes one question and returns its outcome fields. Errors are
// data here, not control flow: a failed question must not abort its siblings.
type Handler func(ctx context.Context, q Question) (model, answer string, err error)

// Dispatch runs handler once for every question with at most limit handlers
// in flight, and blocks until all have finished. Each goroutine owns one slot
// of the outcome slice, so no locking is needed; completion order is
// unconstrained and callers restore ordering afterwards.
func Dispatch(ctx context.Context, questions []Question, limit int, handler Handler) []Outcome {
	if limit < 1 {
		limit = 1
	}

	outcomes := make([]Outcome, len(questions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, q := range questions {
		idx, question := i, q
		g.Go(func() error {
			model, answer, err := handler(ctx, question)
			outcomes[idx] = Outcome{Question: question, Model: model, Answer: answer, Err: err}
			return nil
		})
	}

	// Handlers never return errors through the group, so Wait only blocks.
	_ = g.Wait()

	return outcomes
}
