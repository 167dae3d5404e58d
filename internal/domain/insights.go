package domain

// InsightsContext bundles the deterministic analyses handed to the LLM for
// narration. Everything in it is computed locally first; the LLM only
// rephrases, it never invents numbers.
type InsightsContext struct {
	Hunger    HungerAnalysisResponse `json:"hunger"`
	Cost      CostAnalysisResponse   `json:"cost"`
	ScoreCard DailyScoreCard         `json:"score_card"`
	Habits    []HabitPattern         `json:"habits"`
}

// LLMInsightsOutput is the narrated insight payload returned by the LLM.
type LLMInsightsOutput struct {
	Summary      string   `json:"summary"`
	Observations []string `json:"observations"`
	Guidance     []string `json:"guidance"`
}

// InsightsResponse is the response body for the narrated-insights endpoint.
// @Description Deterministic analyses plus an LLM-written narrative.
type InsightsResponse struct {
	Insights LLMInsightsOutput `json:"insights"`
	Metrics  InsightsContext   `json:"metrics"`
	// OTEL trace id for correlating this response with its request trace
	TraceID string `json:"trace_id,omitempty"`
}
