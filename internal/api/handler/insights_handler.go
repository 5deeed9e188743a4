package handler

import (
	"errors"
	"net/http"

	"github.com/blaisecz/sleep-monitor/internal/domain"
	"github.com/blaisecz/sleep-monitor/internal/llm"
	"github.com/blaisecz/sleep-monitor/internal/service"
	"github.com/blaisecz/sleep-monitor/pkg/problem"
)

type InsightsHandler struct {
	service service.InsightsService
}

func NewInsightsHandler(service service.InsightsService) *InsightsHandler {
	return &InsightsHandler{service: service}
}

// Generate handles GET /v1/insights
// @Summary Narrative insights
// @Description LLM-generated summary, observations, and guidance over the current report. Requires an OpenAI API key.
// @Tags insights
// @Produce json
// @Success 200 {object} domain.InsightsResponse
// @Failure 502 {object} problem.Problem "Upstream feed or LLM unavailable"
// @Failure 503 {object} problem.Problem "No LLM configured"
// @Router /insights [get]
func (h *InsightsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.Generate(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, llm.ErrOpenAIUnavailable):
			problem.ServiceUnavailable("Insights are not configured").Write(w)
		case errors.Is(err, llm.ErrOpenAIRequest), errors.Is(err, llm.ErrOpenAIResponse):
			problem.BadGateway("Insights generation failed").Write(w)
		case errors.Is(err, domain.ErrNetwork):
			problem.BadGateway("Upstream feed unavailable").Write(w)
		default:
			problem.InternalError("Failed to generate insights").Write(w)
		}
		return
	}
	writeJSON(w, http.StatusOK, response)
}
