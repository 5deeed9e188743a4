package service

import (
	"context"
	"fmt"
	"time"

	"github.com/blaisecz/sleep-monitor/internal/domain"
	"github.com/blaisecz/sleep-monitor/internal/repository"
)

// ResponseService manages self-reported session responses.
type ResponseService interface {
	// Upsert records or replaces the response for one subject/session.
	Upsert(ctx context.Context, subjectID int, sessionKey domain.SessionKey, req *domain.UpsertSessionResponseRequest) (*domain.SessionResponseView, error)
	// Get returns the stored response, ErrNotFound when none exists.
	Get(ctx context.Context, subjectID int, sessionKey domain.SessionKey) (*domain.SessionResponseView, error)
}

type responseService struct {
	repo       repository.SessionResponseRepository
	subjectIDs []int
	napCount   int
}

// NewResponseService creates a new ResponseService.
func NewResponseService(repo repository.SessionResponseRepository, subjectIDs []int, napCount int) ResponseService {
	return &responseService{
		repo:       repo,
		subjectIDs: subjectIDs,
		napCount:   napCount,
	}
}

func (s *responseService) Upsert(ctx context.Context, subjectID int, sessionKey domain.SessionKey, req *domain.UpsertSessionResponseRequest) (*domain.SessionResponseView, error) {
	if err := s.validateKeys(subjectID, sessionKey); err != nil {
		return nil, err
	}

	response := &domain.SessionResponse{
		SubjectID:       subjectID,
		SessionKey:      sessionKey,
		DurationMinutes: req.DurationMinutes,
		Quality:         req.Quality,
		Disturbances:    req.Disturbances,
		Notes:           req.Notes,
		SubmittedAt:     time.Now().UTC(),
	}
	if err := s.repo.Upsert(ctx, response); err != nil {
		return nil, err
	}

	view := response.ToView()
	return &view, nil
}

func (s *responseService) Get(ctx context.Context, subjectID int, sessionKey domain.SessionKey) (*domain.SessionResponseView, error) {
	if err := s.validateKeys(subjectID, sessionKey); err != nil {
		return nil, err
	}

	response, err := s.repo.Get(ctx, subjectID, sessionKey)
	if err != nil {
		return nil, err
	}
	view := response.ToView()
	return &view, nil
}

func (s *responseService) validateKeys(subjectID int, sessionKey domain.SessionKey) error {
	known := false
	for _, id := range s.subjectIDs {
		if id == subjectID {
			known = true
			break
		}
	}
	if !known {
		return domain.ErrNotFound
	}

	for _, key := range domain.SessionKeys(s.napCount) {
		if key == sessionKey {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown session key %q", domain.ErrInvalidInput, sessionKey)
}
