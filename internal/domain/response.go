package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionResponse is one subject's self-reported answers for one session,
// stored keyed by (subject_id, session_key). The pipeline only ever reads
// this store; a missing row means "no response yet", never an error.
type SessionResponse struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SubjectID       int        `gorm:"not null;uniqueIndex:idx_responses_subject_session" json:"subject_id"`
	SessionKey      SessionKey `gorm:"type:varchar(16);not null;uniqueIndex:idx_responses_subject_session" json:"session_key"`
	DurationMinutes *int       `gorm:"type:smallint" json:"duration_minutes,omitempty"`
	Quality         *int       `gorm:"type:smallint" json:"quality,omitempty"`
	Disturbances    string     `gorm:"type:text" json:"disturbances,omitempty"`
	Notes           string     `gorm:"type:text" json:"notes,omitempty"`
	SubmittedAt     time.Time  `gorm:"not null" json:"submitted_at"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (SessionResponse) TableName() string {
	return "session_responses"
}

// UpsertSessionResponseRequest is the request body for recording a response.
// @Description Self-reported answers for one subject/session.
type UpsertSessionResponseRequest struct {
	// Perceived sleep duration in minutes
	DurationMinutes *int `json:"duration_minutes,omitempty" validate:"omitempty,min=0,max=1440" example:"95"`
	// Self-rated sleep quality from 1 (poor) to 10 (excellent)
	Quality *int `json:"quality,omitempty" validate:"omitempty,min=1,max=10" example:"7" minimum:"1" maximum:"10"`
	// Free-form description of disturbances
	Disturbances string `json:"disturbances,omitempty" validate:"max=2000"`
	// Free-form notes
	Notes string `json:"notes,omitempty" validate:"max=2000"`
}

// SessionResponseView is the read shape merged into reports.
type SessionResponseView struct {
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	Quality         *int      `json:"quality,omitempty"`
	Disturbances    string    `json:"disturbances,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	SubmittedAt     time.Time `json:"submitted_at"`
}

func (r *SessionResponse) ToView() SessionResponseView {
	return SessionResponseView{
		DurationMinutes: r.DurationMinutes,
		Quality:         r.Quality,
		Disturbances:    r.Disturbances,
		Notes:           r.Notes,
		SubmittedAt:     r.SubmittedAt,
	}
}
