package processed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/blaisecz/sleep-monitor/internal/domain"
)

func TestFetchReport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/subjects" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		fmt.Fprint(w, `{
  "subjects": {"1": {"sessions": {}, "rawData": [], "generatedAt": "2025-03-10T09:00:00Z"}},
  "subjectAverages": {"1": 72.5},
  "bestSubject": 1,
  "worstSubject": 1,
  "baselineDeltas": {},
  "global": {"avg": 72.5, "min": 72.5, "max": 72.5, "variance": 0, "count": 1},
  "lastUpdate": "2025-03-10T09:00:00Z",
  "totalFeeds": 10,
  "channel": {"id": "2929396", "name": "Sleep Quality Monitoring"}
}`)
	}))
	defer server.Close()

	client := NewClient(server.URL + "/api")
	report, err := client.FetchReport(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.TotalFeeds != 10 {
		t.Errorf("total feeds = %d, want 10", report.TotalFeeds)
	}
	if got := report.SubjectAverages[1]; got != 72.5 {
		t.Errorf("subject 1 average = %v, want 72.5", got)
	}
	if report.BestSubject == nil || *report.BestSubject != 1 {
		t.Errorf("best subject = %v, want 1", report.BestSubject)
	}
	if !client.Enabled() {
		t.Error("client should remain enabled after success")
	}
}

func TestFetchReport_FailureLatchesDisable(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL + "/api")

	if _, err := client.FetchReport(context.Background()); !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	if client.Enabled() {
		t.Fatal("client should be disabled after a failure")
	}

	if _, err := client.FetchReport(context.Background()); !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected ErrNetwork from disabled client, got %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hit %d times, want 1 (disabled client must not retry)", got)
	}
}

func TestNewClient_EmptyBaseDisabled(t *testing.T) {
	client := NewClient("")
	if client.Enabled() {
		t.Fatal("client with no base URL should be disabled")
	}
	if _, err := client.FetchReport(context.Background()); !errors.Is(err, domain.ErrNetwork) {
		t.Errorf("expected ErrNetwork, got %v", err)
	}
}
