package service

import (
	"context"

	"github.com/blaisecz/sleep-monitor/internal/domain"
)

// MockFeedSource is a mock implementation of FeedSource
type MockFeedSource struct {
	records []domain.FeedRecord
	channel domain.ChannelInfo
	err     error
	calls   int
}

func (m *MockFeedSource) FetchRawFeed(ctx context.Context, maxResults int) ([]domain.FeedRecord, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

func (m *MockFeedSource) Channel() domain.ChannelInfo {
	return m.channel
}

// MockProcessedSource is a mock implementation of ProcessedSource
type MockProcessedSource struct {
	report  *domain.AggregateReport
	err     error
	enabled bool
	calls   int
}

func (m *MockProcessedSource) Enabled() bool {
	return m.enabled
}

func (m *MockProcessedSource) FetchReport(ctx context.Context) (*domain.AggregateReport, error) {
	m.calls++
	if m.err != nil {
		m.enabled = false
		return nil, m.err
	}
	return m.report, nil
}

// MockSessionResponseRepository is a mock implementation of SessionResponseRepository
type MockSessionResponseRepository struct {
	responses map[int]map[domain.SessionKey]domain.SessionResponse
	err       error
}

func NewMockSessionResponseRepository() *MockSessionResponseRepository {
	return &MockSessionResponseRepository{
		responses: make(map[int]map[domain.SessionKey]domain.SessionResponse),
	}
}

func (m *MockSessionResponseRepository) Upsert(ctx context.Context, response *domain.SessionResponse) error {
	if m.err != nil {
		return m.err
	}
	bySession, ok := m.responses[response.SubjectID]
	if !ok {
		bySession = make(map[domain.SessionKey]domain.SessionResponse)
		m.responses[response.SubjectID] = bySession
	}
	bySession[response.SessionKey] = *response
	return nil
}

func (m *MockSessionResponseRepository) Get(ctx context.Context, subjectID int, sessionKey domain.SessionKey) (*domain.SessionResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	response, ok := m.responses[subjectID][sessionKey]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &response, nil
}

func (m *MockSessionResponseRepository) ListAll(ctx context.Context) (map[int]map[domain.SessionKey]domain.SessionResponseView, error) {
	if m.err != nil {
		return nil, m.err
	}
	grouped := make(map[int]map[domain.SessionKey]domain.SessionResponseView)
	for subjectID, bySession := range m.responses {
		grouped[subjectID] = make(map[domain.SessionKey]domain.SessionResponseView)
		for key, response := range bySession {
			grouped[subjectID][key] = response.ToView()
		}
	}
	return grouped, nil
}

// MockInsightsLLM is a mock implementation of llm.InsightsLLM
type MockInsightsLLM struct {
	output     *domain.LLMInsightsOutput
	err        error
	gotReport  *domain.AggregateReport
	callsCount int
}

func (m *MockInsightsLLM) GenerateInsights(ctx context.Context, report *domain.AggregateReport) (*domain.LLMInsightsOutput, error) {
	m.callsCount++
	m.gotReport = report
	if m.err != nil {
		return nil, m.err
	}
	return m.output, nil
}

func intPtr(v int) *int {
	return &v
}

func strPtr(s string) *string {
	return &s
}
