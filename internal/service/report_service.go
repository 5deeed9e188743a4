package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/blaisecz/sleep-monitor/internal/domain"
	"github.com/blaisecz/sleep-monitor/internal/pipeline"
	"github.com/blaisecz/sleep-monitor/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// FeedSource supplies raw records, abstracting the channel client.
type FeedSource interface {
	FetchRawFeed(ctx context.Context, maxResults int) ([]domain.FeedRecord, error)
	Channel() domain.ChannelInfo
}

// ProcessedSource supplies pre-aggregated reports from a companion API.
type ProcessedSource interface {
	Enabled() bool
	FetchReport(ctx context.Context) (*domain.AggregateReport, error)
}

// ReportService owns the refresh cycle and the shared current report.
type ReportService interface {
	// Refresh rebuilds the report from the best available source. On failure
	// the previous report is preserved and the error surfaced.
	Refresh(ctx context.Context) (*domain.AggregateReport, error)
	// Report returns the current report, refreshing first if none exists yet.
	Report(ctx context.Context) (*domain.AggregateReport, error)
	// Status summarizes the current report for the status endpoint.
	Status(ctx context.Context) (*domain.StatusResponse, error)
	// Subject returns one subject's report. Unknown ids yield ErrNotFound.
	Subject(ctx context.Context, id int) (*domain.SubjectReport, error)
	// Latest returns the most recent reading per subject. Subjects with no
	// records are absent from the map.
	Latest(ctx context.Context) (map[int]domain.LatestReading, error)
	// SubjectIDs returns the configured subject ids in ascending order.
	SubjectIDs() []int
}

type reportService struct {
	feed         FeedSource
	processed    ProcessedSource
	responseRepo repository.SessionResponseRepository

	grouper    *pipeline.Grouper
	scorer     *pipeline.Scorer
	aggregator *pipeline.Aggregator

	mapping      domain.FieldMapping
	subjectIDs   []int
	napCount     int
	resultsLimit int

	state *reportState
}

// NewReportService creates a ReportService. processed may be a disabled
// source; responseRepo may be nil when no store is configured.
func NewReportService(
	feed FeedSource,
	processed ProcessedSource,
	responseRepo repository.SessionResponseRepository,
	mapping domain.FieldMapping,
	subjectIDs []int,
	napCount int,
	resultsLimit int,
) ReportService {
	return &reportService{
		feed:         feed,
		processed:    processed,
		responseRepo: responseRepo,
		grouper:      pipeline.NewGrouper(mapping, napCount),
		scorer:       pipeline.NewScorer(mapping),
		aggregator:   pipeline.NewAggregator(napCount),
		mapping:      mapping,
		subjectIDs:   subjectIDs,
		napCount:     napCount,
		resultsLimit: resultsLimit,
		state:        newReportState(),
	}
}

func (s *reportService) SubjectIDs() []int {
	ids := make([]int, len(s.subjectIDs))
	copy(ids, s.subjectIDs)
	return ids
}

func (s *reportService) Refresh(ctx context.Context) (*domain.AggregateReport, error) {
	tracer := otel.Tracer("sleep-monitor-api/report")
	ctx, span := tracer.Start(ctx, "ReportService.Refresh",
		trace.WithAttributes(
			attribute.Int("subjects.count", len(s.subjectIDs)),
			attribute.Int("results.limit", s.resultsLimit),
		),
	)
	defer span.End()

	inputPayload := map[string]any{
		"subjects":      s.subjectIDs,
		"results_limit": s.resultsLimit,
	}
	if inputJSON, err := json.Marshal(inputPayload); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.input", string(inputJSON)))
	}

	report, err := s.buildReport(ctx)
	if err != nil {
		span.SetAttributes(attribute.String("report.error", err.Error()))
		return nil, err
	}

	s.state.replace(report)

	outputPayload := map[string]any{
		"total_feeds": report.TotalFeeds,
		"last_update": report.LastUpdate.Format(time.RFC3339),
		"global":      report.Global,
	}
	if outputJSON, err := json.Marshal(outputPayload); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.output", string(outputJSON)))
	}

	return report, nil
}

// buildReport walks the source tiers in order: companion API first, then the
// raw feed through the local pipeline.
func (s *reportService) buildReport(ctx context.Context) (*domain.AggregateReport, error) {
	responses := s.loadResponses(ctx)

	// The companion client logs its own failure when it latches the
	// disable; a miss here just moves on to the local pipeline.
	if s.processed != nil && s.processed.Enabled() {
		report, err := s.processed.FetchReport(ctx)
		if err == nil {
			mergeResponses(report, responses)
			return report, nil
		}
	}

	records, err := s.feed.FetchRawFeed(ctx, s.resultsLimit)
	if err != nil {
		return nil, fmt.Errorf("building report: %w", err)
	}

	now := time.Now().UTC()
	subjects := make(map[int]domain.SubjectReport, len(s.subjectIDs))
	for _, id := range s.subjectIDs {
		subjectRecords := pipeline.FilterBySubject(records, s.mapping, id)

		sessions := make(map[domain.SessionKey]domain.SessionMetrics, s.napCount+1)
		for key, bucket := range s.grouper.GroupBySession(subjectRecords) {
			sessions[key] = s.scorer.ScoreSession(bucket)
		}

		subjects[id] = domain.SubjectReport{
			Sessions:    sessions,
			Responses:   responses[id],
			RawData:     subjectRecords,
			GeneratedAt: now,
		}
	}

	report := s.aggregator.BuildReport(subjects, s.feed.Channel(), len(records))
	return &report, nil
}

// loadResponses reads the subjective response store. A store failure degrades
// to an empty map; responses are an overlay, not a dependency.
func (s *reportService) loadResponses(ctx context.Context) map[int]map[domain.SessionKey]domain.SessionResponseView {
	if s.responseRepo == nil {
		return nil
	}
	responses, err := s.responseRepo.ListAll(ctx)
	if err != nil {
		log.Printf("loading session responses failed: %v", err)
		return nil
	}
	return responses
}

func mergeResponses(report *domain.AggregateReport, responses map[int]map[domain.SessionKey]domain.SessionResponseView) {
	if report == nil || len(responses) == 0 {
		return
	}
	for id, bySession := range responses {
		subject, ok := report.Subjects[id]
		if !ok {
			continue
		}
		subject.Responses = bySession
		report.Subjects[id] = subject
	}
}

func (s *reportService) Report(ctx context.Context) (*domain.AggregateReport, error) {
	if report := s.state.current(); report != nil {
		return report, nil
	}
	return s.Refresh(ctx)
}

func (s *reportService) Status(ctx context.Context) (*domain.StatusResponse, error) {
	report, err := s.Report(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.StatusResponse{
		Status:       "ok",
		Channel:      report.Channel.Name,
		TotalEntries: report.TotalFeeds,
		Subjects:     s.SubjectIDs(),
		LastUpdate:   report.LastUpdate,
	}, nil
}

func (s *reportService) Subject(ctx context.Context, id int) (*domain.SubjectReport, error) {
	if !s.knownSubject(id) {
		return nil, domain.ErrNotFound
	}
	report, err := s.Report(ctx)
	if err != nil {
		return nil, err
	}
	subject, ok := report.Subjects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &subject, nil
}

func (s *reportService) Latest(ctx context.Context) (map[int]domain.LatestReading, error) {
	report, err := s.Report(ctx)
	if err != nil {
		return nil, err
	}

	latest := make(map[int]domain.LatestReading)
	for id, subject := range report.Subjects {
		if len(subject.RawData) == 0 {
			continue
		}
		newest := subject.RawData[len(subject.RawData)-1]
		latest[id] = domain.LatestReading{
			BPM:       domain.ParseNumeric(newest.Field(s.mapping.HeartRate)),
			SpO2:      domain.ParseNumeric(newest.Field(s.mapping.SpO2)),
			ECG:       domain.ParseNumeric(newest.Field(s.mapping.ECG)),
			EMG:       domain.ParseNumeric(newest.Field(s.mapping.EMG)),
			Motion:    domain.ParseNumeric(newest.Field(s.mapping.Motion)),
			Session:   domain.NormalizeSessionKey(newest.Field(s.mapping.Session), s.napCount),
			Timestamp: newest.CreatedAt,
		}
	}
	return latest, nil
}

func (s *reportService) knownSubject(id int) bool {
	for _, known := range s.subjectIDs {
		if known == id {
			return true
		}
	}
	return false
}
