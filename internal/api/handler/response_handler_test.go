package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blaisecz/sleep-monitor/internal/domain"
	"github.com/go-chi/chi/v5"
)

func doJSONRequest(t *testing.T, handlerFunc http.HandlerFunc, method, target, body string, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	resp := httptest.NewRecorder()
	handlerFunc(resp, req)
	return resp
}

func TestResponseHandler_Upsert(t *testing.T) {
	svc := NewMockResponseService()
	h := NewResponseHandler(svc)
	params := map[string]string{"subjectId": "1", "sessionKey": "nap_1"}

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"valid", `{"duration_minutes": 45, "quality": 8, "disturbances": "woke once"}`, http.StatusOK},
		{"empty body is valid", `{}`, http.StatusOK},
		{"quality out of range", `{"quality": 11}`, http.StatusUnprocessableEntity},
		{"negative duration", `{"duration_minutes": -5}`, http.StatusUnprocessableEntity},
		{"malformed json", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSONRequest(t, h.Upsert, http.MethodPut,
				"/v1/subjects/1/sessions/nap_1/response", tt.body, params)
			if resp.Code != tt.wantCode {
				t.Errorf("status = %d, want %d (body: %s)", resp.Code, tt.wantCode, resp.Body.String())
			}
		})
	}
}

func TestResponseHandler_UpsertServiceErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"unknown subject", domain.ErrNotFound, http.StatusNotFound},
		{"unknown session key", domain.ErrInvalidInput, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewMockResponseService()
			svc.err = tt.err
			h := NewResponseHandler(svc)

			resp := doJSONRequest(t, h.Upsert, http.MethodPut,
				"/v1/subjects/9/sessions/rem/response", `{}`,
				map[string]string{"subjectId": "9", "sessionKey": "rem"})
			if resp.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", resp.Code, tt.wantCode)
			}
		})
	}
}

func TestResponseHandler_Get(t *testing.T) {
	svc := NewMockResponseService()
	svc.views[1] = map[domain.SessionKey]domain.SessionResponseView{
		domain.NapKey(1): {Quality: intPtr(7)},
	}
	h := NewResponseHandler(svc)

	resp := doRequest(t, h.Get, http.MethodGet, "/v1/subjects/1/sessions/nap_1/response",
		map[string]string{"subjectId": "1", "sessionKey": "nap_1"})
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}

	var view domain.SessionResponseView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if view.Quality == nil || *view.Quality != 7 {
		t.Errorf("quality = %v, want 7", view.Quality)
	}

	resp = doRequest(t, h.Get, http.MethodGet, "/v1/subjects/1/sessions/nap_2/response",
		map[string]string{"subjectId": "1", "sessionKey": "nap_2"})
	if resp.Code != http.StatusNotFound {
		t.Errorf("missing response: status = %d, want 404", resp.Code)
	}
}
