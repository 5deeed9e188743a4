package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/blaisecz/sleep-monitor/internal/domain"
	"github.com/blaisecz/sleep-monitor/internal/service"
	"github.com/blaisecz/sleep-monitor/pkg/pagination"
	"github.com/blaisecz/sleep-monitor/pkg/problem"
	"github.com/go-chi/chi/v5"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(service service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Status handles GET /api/status
// @Summary Monitoring status
// @Description Channel name, total entry count, configured subjects, and the time of the last successful refresh.
// @Tags report
// @Produce json
// @Success 200 {object} domain.StatusResponse
// @Failure 502 {object} problem.Problem "Upstream feed unavailable and no cached report"
// @Router /api/status [get]
func (h *ReportHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Status(r.Context())
	if err != nil {
		writeReportError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// Subjects handles GET /api/subjects
// @Summary Full aggregate report
// @Description Per-subject session metrics plus cross-subject comparison: averages, best/worst, baseline deltas, global stats.
// @Tags report
// @Produce json
// @Success 200 {object} domain.AggregateReport
// @Failure 502 {object} problem.Problem "Upstream feed unavailable and no cached report"
// @Router /api/subjects [get]
func (h *ReportHandler) Subjects(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Report(r.Context())
	if err != nil {
		writeReportError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Subject handles GET /api/subject/{subjectId}
// @Summary One subject's report
// @Tags report
// @Produce json
// @Param subjectId path int true "Subject id" example(1)
// @Success 200 {object} domain.SubjectReport
// @Failure 400 {object} problem.Problem "Invalid subject id"
// @Failure 404 {object} problem.Problem "Unknown subject"
// @Failure 502 {object} problem.Problem "Upstream feed unavailable and no cached report"
// @Router /api/subject/{subjectId} [get]
func (h *ReportHandler) Subject(w http.ResponseWriter, r *http.Request) {
	id, ok := parseSubjectID(w, r)
	if !ok {
		return
	}

	subject, err := h.service.Subject(r.Context(), id)
	if err != nil {
		writeReportError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subject)
}

// Latest handles GET /api/latest
// @Summary Latest reading per subject
// @Description Most recent sample for every subject that has data. Subjects without records are absent.
// @Tags report
// @Produce json
// @Success 200 {object} map[int]domain.LatestReading
// @Failure 502 {object} problem.Problem "Upstream feed unavailable and no cached report"
// @Router /api/latest [get]
func (h *ReportHandler) Latest(w http.ResponseWriter, r *http.Request) {
	latest, err := h.service.Latest(r.Context())
	if err != nil {
		writeReportError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, latest)
}

// Refresh handles POST /api/refresh
// @Summary Force a refresh
// @Description Rebuilds the report from the best available source. On failure the previous report is kept and the error returned.
// @Tags report
// @Produce json
// @Success 200 {object} domain.StatusResponse
// @Failure 502 {object} problem.Problem "All sources failed"
// @Router /api/refresh [post]
func (h *ReportHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Refresh(r.Context())
	if err != nil {
		writeReportError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &domain.StatusResponse{
		Status:       "refreshed",
		Channel:      report.Channel.Name,
		TotalEntries: report.TotalFeeds,
		Subjects:     h.service.SubjectIDs(),
		LastUpdate:   report.LastUpdate,
	})
}

// Records handles GET /v1/subjects/{subjectId}/records
// @Summary Raw feed records
// @Description One subject's raw records, oldest first, cursor-paginated.
// @Tags records
// @Produce json
// @Param subjectId path int true "Subject id" example(1)
// @Param limit query integer false "Results per page (1-500)" default(20)
// @Param cursor query string false "Cursor from previous response's next_cursor"
// @Success 200 {object} domain.RecordListResponse
// @Failure 400 {object} problem.Problem "Invalid parameters"
// @Failure 404 {object} problem.Problem "Unknown subject"
// @Failure 502 {object} problem.Problem "Upstream feed unavailable and no cached report"
// @Router /subjects/{subjectId}/records [get]
func (h *ReportHandler) Records(w http.ResponseWriter, r *http.Request) {
	id, ok := parseSubjectID(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			problem.BadRequest("Invalid limit").Write(w)
			return
		}
		limit = parsed
	}
	limit = pagination.NormalizeLimit(limit)

	cursor, err := pagination.DecodeCursor(r.URL.Query().Get("cursor"))
	if err != nil {
		problem.BadRequest("Invalid cursor").Write(w)
		return
	}

	subject, err := h.service.Subject(r.Context(), id)
	if err != nil {
		writeReportError(w, err)
		return
	}

	records := subject.RawData
	if cursor != nil {
		for i, record := range records {
			if record.EntryID > cursor.EntryID {
				records = records[i:]
				break
			}
			if i == len(records)-1 {
				records = nil
			}
		}
	}

	response := domain.RecordListResponse{Records: records}
	if len(records) > limit {
		response.Records = records[:limit]
		last := response.Records[limit-1]
		next := (&pagination.Cursor{EntryID: last.EntryID}).Encode()
		response.NextCursor = &next
	}
	if response.Records == nil {
		response.Records = []domain.FeedRecord{}
	}

	writeJSON(w, http.StatusOK, response)
}

func parseSubjectID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "subjectId"))
	if err != nil {
		problem.BadRequest("Invalid subject id").Write(w)
		return 0, false
	}
	return id, true
}

func writeReportError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		problem.NotFound("Subject not found").Write(w)
	case errors.Is(err, domain.ErrNetwork):
		problem.BadGateway("Upstream feed unavailable").Write(w)
	case errors.Is(err, domain.ErrInvalidInput):
		problem.BadRequest(err.Error()).Write(w)
	default:
		problem.InternalError("Failed to build report").Write(w)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
