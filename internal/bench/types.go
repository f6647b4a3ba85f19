package bench

// Question is one record of the input benchmark file.
type Question struct {
	ID         int    `json:"id"`
	Difficulty string `json:"difficulty"`
	Question   string `json:"question"`
}

// ResultEntry records one successfully answered question. Entries are created
// once and never mutated.
type ResultEntry struct {
	ID         int    `json:"id"`
	Difficulty string `json:"difficulty"`
	Question   string `json:"question"`
	ModelUsed  string `json:"model_used"`
	Answer     string `json:"answer"`
}

// Summary aggregates the run: which models answered how many questions and
// which questions produced no answer.
type Summary struct {
	Timestamp                  string         `json:"timestamp"`
	TotalQuestions             int            `json:"total_questions"`
	ModelsConfiguredForRouting []string       `json:"models_configured_for_routing"`
	ModelUsage                 map[string]int `json:"model_usage"`
	FailedQuestions            []int          `json:"failed_questions"`
	RoutingInsights            string         `json:"routing_insights"`
}

// Report is the terminal artifact: results sorted by question id plus the
// summary. Every input id appears in exactly one of Results or
// Summary.FailedQuestions.
type Report struct {
	Results []ResultEntry `json:"results"`
	Summary Summary       `json:"summary"`
}

// routingInsights documents the auto-routing behaviour inside the artifact
// itself, so a report is interpretable without this repository.
const routingInsights = "The routing service dynamically selects the best model from the configured " +
	"list based on factors like availability, performance, and cost. The 'model_used' field in each " +
	"result indicates which model ultimately provided the answer."
