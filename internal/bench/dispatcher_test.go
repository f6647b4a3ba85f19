package bench

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func makeQuestions(n int) []Question {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = Question{ID: i + 1, Difficulty: "easy", Question: "q"}
	}
	return qs
}

func TestDispatchInvokesHandlerExactlyOncePerQuestion(t *testing.T) {
	t.Parallel()

	questions := makeQuestions(20)

	var mu sync.Mutex
	seen := make(map[int]int)

	outcomes := Dispatch(context.Background(), questions, 4, func(ctx context.Context, q Question) (string, string, error) {
		mu.Lock()
		seen[q.ID]++
		mu.Unlock()
		return "m", "a", nil
	})

	require.Len(t, outcomes, len(questions))
	require.Len(t, seen, len(questions))
	for id, count := range seen {
		require.Equal(t, 1, count, "question %d invoked more than once", id)
	}
	for i, o := range outcomes {
		require.Equal(t, questions[i].ID, o.Question.ID, "outcome slot %d holds wrong question", i)
	}
}

func TestDispatchRespectsConcurrencyCeiling(t *testing.T) {
	t.Parallel()

	const limit = 3
	var inFlight, peak int64

	Dispatch(context.Background(), makeQuestions(30), limit, func(ctx context.Context, q Question) (string, string, error) {
		cur := atomic.AddInt64(&inFlight, 1)
		for {
			old := atomic.LoadInt64(&peak)
			if cur <= old || atomic.CompareAndSwapInt64(&peak, old, cur) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt64(&inFlight, -1)
		return "m", "a", nil
	})

	require.LessOrEqual(t, atomic.LoadInt64(&peak), int64(limit))
	require.Positive(t, atomic.LoadInt64(&peak))
}

func TestDispatchKeepsFailedOutcomes(t *testing.T) {
	t.Parallel()

	failure := errors.New("no answer")
	outcomes := Dispatch(context.Background(), makeQuestions(5), 2, func(ctx context.Context, q Question) (string, string, error) {
		if q.ID%2 == 0 {
			return "", "", failure
		}
		return "m", "a", nil
	})

	var failed, succeeded int
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			require.ErrorIs(t, o.Err, failure)
		} else {
			succeeded++
		}
	}
	require.Equal(t, 2, failed)
	require.Equal(t, 3, succeeded)
}

func TestDispatchNormalizesBadLimit(t *testing.T) {
	t.Parallel()

	outcomes := Dispatch(context.Background(), makeQuestions(3), 0, func(ctx context.Context, q Question) (string, string, error) {
		return "m", "a", nil
	})
	require.Len(t, outcomes, 3)
}
