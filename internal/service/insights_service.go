package service

import (
	"context"
	"time"

	"github.com/blaisecz/sleep-monitor/internal/domain"
	"github.com/blaisecz/sleep-monitor/internal/llm"
)

// InsightsService generates narrative insights over the current report.
type InsightsService interface {
	// Generate summarizes the current aggregate report with the LLM.
	Generate(ctx context.Context) (*domain.InsightsResponse, error)
}

type insightsService struct {
	reportService ReportService
	llmClient     llm.InsightsLLM
}

// NewInsightsService creates a new InsightsService. llmClient may be nil when
// no API key is configured; Generate then fails with ErrOpenAIUnavailable.
func NewInsightsService(reportService ReportService, llmClient llm.InsightsLLM) InsightsService {
	return &insightsService{
		reportService: reportService,
		llmClient:     llmClient,
	}
}

func (s *insightsService) Generate(ctx context.Context) (*domain.InsightsResponse, error) {
	if s.llmClient == nil {
		return nil, llm.ErrOpenAIUnavailable
	}

	report, err := s.reportService.Report(ctx)
	if err != nil {
		return nil, err
	}

	output, err := s.llmClient.GenerateInsights(ctx, report)
	if err != nil {
		return nil, err
	}

	return &domain.InsightsResponse{
		Insights:         *output,
		GeneratedAt:      time.Now().UTC(),
		ReportLastUpdate: report.LastUpdate,
		TotalFeeds:       report.TotalFeeds,
	}, nil
}
