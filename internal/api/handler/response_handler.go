package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/blaisecz/sleep-monitor/internal/api/validation"
	"github.com/blaisecz/sleep-monitor/internal/domain"
	"github.com/blaisecz/sleep-monitor/internal/service"
	"github.com/blaisecz/sleep-monitor/pkg/problem"
	"github.com/go-chi/chi/v5"
)

type ResponseHandler struct {
	service service.ResponseService
}

func NewResponseHandler(service service.ResponseService) *ResponseHandler {
	return &ResponseHandler{service: service}
}

// Upsert handles PUT /v1/subjects/{subjectId}/sessions/{sessionKey}/response
// @Summary Record a subjective response
// @Description Store or replace one subject's self-reported answers for a session. Repeating the call replaces the stored response.
// @Tags responses
// @Accept json
// @Produce json
// @Param subjectId path int true "Subject id" example(1)
// @Param sessionKey path string true "Session key" example(nap_1)
// @Param request body domain.UpsertSessionResponseRequest true "Self-reported answers"
// @Success 200 {object} domain.SessionResponseView
// @Failure 400 {object} problem.Problem "Invalid subject id or session key"
// @Failure 404 {object} problem.Problem "Unknown subject"
// @Failure 422 {object} problem.Problem "Request body contains invalid fields"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /subjects/{subjectId}/sessions/{sessionKey}/response [put]
func (h *ResponseHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	id, ok := parseSubjectID(w, r)
	if !ok {
		return
	}
	sessionKey := domain.SessionKey(chi.URLParam(r, "sessionKey"))

	var req domain.UpsertSessionResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	view, err := h.service.Upsert(r.Context(), id, sessionKey, &req)
	if err != nil {
		writeResponseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Get handles GET /v1/subjects/{subjectId}/sessions/{sessionKey}/response
// @Summary Read a subjective response
// @Tags responses
// @Produce json
// @Param subjectId path int true "Subject id" example(1)
// @Param sessionKey path string true "Session key" example(nap_1)
// @Success 200 {object} domain.SessionResponseView
// @Failure 400 {object} problem.Problem "Invalid subject id or session key"
// @Failure 404 {object} problem.Problem "No response stored"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /subjects/{subjectId}/sessions/{sessionKey}/response [get]
func (h *ResponseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseSubjectID(w, r)
	if !ok {
		return
	}
	sessionKey := domain.SessionKey(chi.URLParam(r, "sessionKey"))

	view, err := h.service.Get(r.Context(), id, sessionKey)
	if err != nil {
		writeResponseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func writeResponseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		problem.NotFound("Not found").Write(w)
	case errors.Is(err, domain.ErrInvalidInput):
		problem.BadRequest(err.Error()).Write(w)
	default:
		problem.InternalError("Failed to store response").Write(w)
	}
}
