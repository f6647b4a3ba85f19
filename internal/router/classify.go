package router

import "github.com/Panandika/model-routing-benchmark/internal/llm"

// Attempt outcome reasons, used as metric labels and log fields.
const (
	ReasonRateLimited = "rate_limited"
	ReasonServerError = "server_error"
	ReasonConnection  = "connection"
	ReasonFatal       = "fatal"
)

// classify maps an attempt error to its reason and whether the retry policy
// applies. Rate limits, non-2xx statuses, and connection failures retry;
// everything else aborts the exchange.
func classify(err error) (reason string, retryable bool) {
	switch {
	case llm.IsRateLimit(err):
		return ReasonRateLimited, true
	case llm.IsConnection(err):
		return ReasonConnection, true
	default:
		if _, ok := llm.IsStatus(err); ok {
			return ReasonServerError, true
		}
		return ReasonFatal, false
	}
}
