package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/blaisecz/sleep-monitor/internal/domain"
	"github.com/blaisecz/sleep-monitor/pkg/pagination"
	"github.com/go-chi/chi/v5"
)

// Mocks are defined in mocks_test.go

func doRequest(t *testing.T, handlerFunc http.HandlerFunc, method, target string, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for key, value := range params {
			rctx.URLParams.Add(key, value)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	resp := httptest.NewRecorder()
	handlerFunc(resp, req)
	return resp
}

func TestReportHandler_Status(t *testing.T) {
	svc := &MockReportService{
		status: &domain.StatusResponse{
			Status:       "ok",
			Channel:      "Sleep Quality Monitoring",
			TotalEntries: 120,
			Subjects:     []int{1, 2, 3, 4},
			LastUpdate:   time.Now().UTC(),
		},
	}
	h := NewReportHandler(svc)

	resp := doRequest(t, h.Status, http.MethodGet, "/api/status", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}

	var body domain.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.TotalEntries != 120 {
		t.Errorf("total entries = %d, want 120", body.TotalEntries)
	}
	if len(body.Subjects) != 4 {
		t.Errorf("subjects = %v", body.Subjects)
	}
}

func TestReportHandler_StatusUpstreamDown(t *testing.T) {
	h := NewReportHandler(&MockReportService{err: domain.ErrNetwork})

	resp := doRequest(t, h.Status, http.MethodGet, "/api/status", nil)
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", resp.Code)
	}
	if got := resp.Header().Get("Content-Type"); got != "application/problem+json" {
		t.Errorf("content type = %q", got)
	}
}

func TestReportHandler_Subject(t *testing.T) {
	svc := &MockReportService{
		subjects: map[int]*domain.SubjectReport{
			1: {Sessions: map[domain.SessionKey]domain.SessionMetrics{domain.SessionBaseline: {Count: 3}}},
		},
	}
	h := NewReportHandler(svc)

	tests := []struct {
		name      string
		subjectID string
		wantCode  int
	}{
		{"known subject", "1", http.StatusOK},
		{"unknown subject", "7", http.StatusNotFound},
		{"non-numeric id", "abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, h.Subject, http.MethodGet, "/api/subject/"+tt.subjectID,
				map[string]string{"subjectId": tt.subjectID})
			if resp.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", resp.Code, tt.wantCode)
			}
		})
	}
}

func TestReportHandler_Records(t *testing.T) {
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	raw := make([]domain.FeedRecord, 5)
	for i := range raw {
		raw[i] = domain.FeedRecord{CreatedAt: base.Add(time.Duration(i) * time.Minute), EntryID: i + 1}
	}
	svc := &MockReportService{
		subjects: map[int]*domain.SubjectReport{1: {RawData: raw}},
	}
	h := NewReportHandler(svc)

	resp := doRequest(t, h.Records, http.MethodGet, "/v1/subjects/1/records?limit=2",
		map[string]string{"subjectId": "1"})
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}

	var page domain.RecordListResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(page.Records) != 2 {
		t.Fatalf("page size = %d, want 2", len(page.Records))
	}
	if page.Records[0].EntryID != 1 || page.Records[1].EntryID != 2 {
		t.Errorf("unexpected page: %v %v", page.Records[0].EntryID, page.Records[1].EntryID)
	}
	if page.NextCursor == nil {
		t.Fatal("expected a next cursor")
	}

	// Follow the cursor.
	resp = doRequest(t, h.Records, http.MethodGet,
		"/v1/subjects/1/records?limit=2&cursor="+*page.NextCursor,
		map[string]string{"subjectId": "1"})
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(page.Records) != 2 || page.Records[0].EntryID != 3 {
		t.Fatalf("second page starts at entry %d with %d records, want entry 3 with 2",
			pageFirstEntry(page), len(page.Records))
	}

	// Final page has no cursor.
	resp = doRequest(t, h.Records, http.MethodGet,
		"/v1/subjects/1/records?limit=2&cursor="+*page.NextCursor,
		map[string]string{"subjectId": "1"})
	page = domain.RecordListResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(page.Records) != 1 || page.Records[0].EntryID != 5 {
		t.Errorf("final page: %+v", page.Records)
	}
	if page.NextCursor != nil {
		t.Error("final page should have no next cursor")
	}
}

func pageFirstEntry(page domain.RecordListResponse) int {
	if len(page.Records) == 0 {
		return 0
	}
	return page.Records[0].EntryID
}

func TestReportHandler_RecordsBadCursor(t *testing.T) {
	svc := &MockReportService{subjects: map[int]*domain.SubjectReport{1: {}}}
	h := NewReportHandler(svc)

	resp := doRequest(t, h.Records, http.MethodGet, "/v1/subjects/1/records?cursor=%25%25",
		map[string]string{"subjectId": "1"})
	if resp.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.Code)
	}
}

func TestReportHandler_RecordsCursorPastEnd(t *testing.T) {
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc := &MockReportService{
		subjects: map[int]*domain.SubjectReport{
			1: {RawData: []domain.FeedRecord{{CreatedAt: base, EntryID: 1}}},
		},
	}
	h := NewReportHandler(svc)

	cursor := (&pagination.Cursor{EntryID: 99}).Encode()
	resp := doRequest(t, h.Records, http.MethodGet, "/v1/subjects/1/records?cursor="+cursor,
		map[string]string{"subjectId": "1"})
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}

	var page domain.RecordListResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(page.Records) != 0 || page.NextCursor != nil {
		t.Errorf("expected empty final page, got %+v", page)
	}
}

func TestReportHandler_Refresh(t *testing.T) {
	svc := &MockReportService{
		report: &domain.AggregateReport{
			TotalFeeds: 10,
			LastUpdate: time.Now().UTC(),
			Channel:    domain.ChannelInfo{Name: "Sleep Quality Monitoring"},
		},
		ids: []int{1, 2},
	}
	h := NewReportHandler(svc)

	resp := doRequest(t, h.Refresh, http.MethodPost, "/api/refresh", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}

	var body domain.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Status != "refreshed" || body.TotalEntries != 10 {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestReportHandler_Latest(t *testing.T) {
	bpm := 64.0
	svc := &MockReportService{
		latest: map[int]domain.LatestReading{
			1: {BPM: &bpm, Session: domain.NapKey(2), Timestamp: time.Now().UTC()},
		},
	}
	h := NewReportHandler(svc)

	resp := doRequest(t, h.Latest, http.MethodGet, "/api/latest", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}

	var body map[string]domain.LatestReading
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	reading, ok := body[strconv.Itoa(1)]
	if !ok {
		t.Fatalf("missing subject 1 in %v", body)
	}
	if reading.BPM == nil || *reading.BPM != 64 {
		t.Errorf("bpm = %v, want 64", reading.BPM)
	}
}
