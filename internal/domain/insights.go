package domain

import "time"

// LLMInsightsOutput is the structured output expected back from the LLM.
// @Description LLM-generated narrative insights for the current report.
type LLMInsightsOutput struct {
	// 2-3 sentence overview of how the group slept
	Summary string `json:"summary"`
	// Bullet observations about per-subject and cross-subject patterns
	Observations []string `json:"observations"`
	// Concrete, non-medical suggestions
	Guidance []string `json:"guidance"`
}

// InsightsResponse is the response body of the insights endpoint.
// @Description Narrative insights plus the report snapshot they were based on.
type InsightsResponse struct {
	Insights    LLMInsightsOutput `json:"insights"`
	GeneratedAt time.Time         `json:"generated_at"`
	// Report metadata the insights were derived from
	ReportLastUpdate time.Time `json:"report_last_update"`
	TotalFeeds       int       `json:"total_feeds"`
}
