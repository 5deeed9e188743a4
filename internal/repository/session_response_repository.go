package repository

import (
	"context"
	"time"

	"github.com/blaisecz/sleep-monitor/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionResponseRepository interface {
	// Upsert inserts or replaces the response for (subjectID, sessionKey).
	Upsert(ctx context.Context, response *domain.SessionResponse) error
	Get(ctx context.Context, subjectID int, sessionKey domain.SessionKey) (*domain.SessionResponse, error)
	// ListAll returns every stored response grouped by subject then session.
	ListAll(ctx context.Context) (map[int]map[domain.SessionKey]domain.SessionResponseView, error)
}

type sessionResponseRepository struct {
	db *gorm.DB
}

func NewSessionResponseRepository(db *gorm.DB) SessionResponseRepository {
	return &sessionResponseRepository{db: db}
}

func (r *sessionResponseRepository) Upsert(ctx context.Context, response *domain.SessionResponse) error {
	if response.SubmittedAt.IsZero() {
		response.SubmittedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "subject_id"}, {Name: "session_key"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"duration_minutes", "quality", "disturbances", "notes", "submitted_at",
			}),
		}).
		Create(response).Error
}

func (r *sessionResponseRepository) Get(ctx context.Context, subjectID int, sessionKey domain.SessionKey) (*domain.SessionResponse, error) {
	var response domain.SessionResponse
	err := r.db.WithContext(ctx).
		First(&response, "subject_id = ? AND session_key = ?", subjectID, sessionKey).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &response, nil
}

func (r *sessionResponseRepository) ListAll(ctx context.Context) (map[int]map[domain.SessionKey]domain.SessionResponseView, error) {
	var responses []domain.SessionResponse
	if err := r.db.WithContext(ctx).Find(&responses).Error; err != nil {
		return nil, err
	}

	grouped := make(map[int]map[domain.SessionKey]domain.SessionResponseView)
	for i := range responses {
		response := responses[i]
		bySession, ok := grouped[response.SubjectID]
		if !ok {
			bySession = make(map[domain.SessionKey]domain.SessionResponseView)
			grouped[response.SubjectID] = bySession
		}
		bySession[response.SessionKey] = response.ToView()
	}
	return grouped, nil
}
