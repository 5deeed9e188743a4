package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blaisecz/sleep-monitor/internal/domain"
	"github.com/blaisecz/sleep-monitor/internal/llm"
)

func TestInsightsService_Generate(t *testing.T) {
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	feed := &MockFeedSource{
		records: []domain.FeedRecord{feedRecord(base, 1, "60", "98", "1", "1")},
	}
	reportSvc := newTestReportService(feed, nil, nil)

	mock := &MockInsightsLLM{
		output: &domain.LLMInsightsOutput{
			Summary:      "One subject napped with healthy vitals.",
			Observations: []string{"Subject 1 scored 100 in nap 1."},
			Guidance:     []string{"Extend monitoring coverage to all subjects."},
		},
	}
	svc := NewInsightsService(reportSvc, mock)

	response, err := svc.Generate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if response.Insights.Summary == "" {
		t.Error("expected a non-empty summary")
	}
	if response.TotalFeeds != 1 {
		t.Errorf("total feeds = %d, want 1", response.TotalFeeds)
	}
	if response.GeneratedAt.IsZero() {
		t.Error("expected generated_at to be set")
	}
	if mock.gotReport == nil || mock.gotReport.TotalFeeds != 1 {
		t.Error("LLM should receive the current report")
	}
}

func TestInsightsService_Unconfigured(t *testing.T) {
	feed := &MockFeedSource{}
	svc := NewInsightsService(newTestReportService(feed, nil, nil), nil)

	if _, err := svc.Generate(context.Background()); !errors.Is(err, llm.ErrOpenAIUnavailable) {
		t.Errorf("expected ErrOpenAIUnavailable, got %v", err)
	}
	if feed.calls != 0 {
		t.Error("unconfigured insights must not trigger a fetch")
	}
}

func TestInsightsService_ReportFailurePropagates(t *testing.T) {
	feed := &MockFeedSource{err: domain.ErrNetwork}
	svc := NewInsightsService(newTestReportService(feed, nil, nil), &MockInsightsLLM{})

	if _, err := svc.Generate(context.Background()); !errors.Is(err, domain.ErrNetwork) {
		t.Errorf("expected ErrNetwork, got %v", err)
	}
}
