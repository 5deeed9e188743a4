package handler

import (
	"context"

	"github.com/blaisecz/sleep-monitor/internal/domain"
)

// MockReportService is a mock implementation of service.ReportService
type MockReportService struct {
	report   *domain.AggregateReport
	status   *domain.StatusResponse
	subjects map[int]*domain.SubjectReport
	latest   map[int]domain.LatestReading
	ids      []int
	err      error
}

func (m *MockReportService) Refresh(ctx context.Context) (*domain.AggregateReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

func (m *MockReportService) Report(ctx context.Context) (*domain.AggregateReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

func (m *MockReportService) Status(ctx context.Context) (*domain.StatusResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.status, nil
}

func (m *MockReportService) Subject(ctx context.Context, id int) (*domain.SubjectReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	subject, ok := m.subjects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return subject, nil
}

func (m *MockReportService) Latest(ctx context.Context) (map[int]domain.LatestReading, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.latest, nil
}

func (m *MockReportService) SubjectIDs() []int {
	return m.ids
}

// MockResponseService is a mock implementation of service.ResponseService
type MockResponseService struct {
	views map[int]map[domain.SessionKey]domain.SessionResponseView
	err   error
}

func NewMockResponseService() *MockResponseService {
	return &MockResponseService{
		views: make(map[int]map[domain.SessionKey]domain.SessionResponseView),
	}
}

func (m *MockResponseService) Upsert(ctx context.Context, subjectID int, sessionKey domain.SessionKey, req *domain.UpsertSessionResponseRequest) (*domain.SessionResponseView, error) {
	if m.err != nil {
		return nil, m.err
	}
	view := domain.SessionResponseView{
		DurationMinutes: req.DurationMinutes,
		Quality:         req.Quality,
		Disturbances:    req.Disturbances,
		Notes:           req.Notes,
	}
	bySession, ok := m.views[subjectID]
	if !ok {
		bySession = make(map[domain.SessionKey]domain.SessionResponseView)
		m.views[subjectID] = bySession
	}
	bySession[sessionKey] = view
	return &view, nil
}

func (m *MockResponseService) Get(ctx context.Context, subjectID int, sessionKey domain.SessionKey) (*domain.SessionResponseView, error) {
	if m.err != nil {
		return nil, m.err
	}
	view, ok := m.views[subjectID][sessionKey]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &view, nil
}

// MockInsightsService is a mock implementation of service.InsightsService
type MockInsightsService struct {
	response *domain.InsightsResponse
	err      error
}

func (m *MockInsightsService) Generate(ctx context.Context) (*domain.InsightsResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func intPtr(v int) *int {
	return &v
}
