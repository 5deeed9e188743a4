package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/blaisecz/sleep-monitor/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Run seeds the database with sample session responses for every configured
// subject and session. Safe to call multiple times.
func Run(db *gorm.DB, subjectIDs []int, napCount int) error {
	if err := db.AutoMigrate(&domain.SessionResponse{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()

	disturbances := []string{"", "woke once", "noise in the hallway", "restless first half"}

	for _, subjectID := range subjectIDs {
		for _, key := range domain.SessionKeys(napCount) {
			duration := 20 + rng.Intn(70)
			quality := 4 + rng.Intn(7)
			response := domain.SessionResponse{
				SubjectID:       subjectID,
				SessionKey:      key,
				DurationMinutes: &duration,
				Quality:         &quality,
				Disturbances:    disturbances[rng.Intn(len(disturbances))],
				SubmittedAt:     now.Add(-time.Duration(rng.Intn(72)) * time.Hour),
			}
			err := db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "subject_id"}, {Name: "session_key"}},
				DoNothing: true,
			}).Create(&response).Error
			if err != nil {
				return fmt.Errorf("failed to seed response for subject %d %s: %w", subjectID, key, err)
			}
		}
	}

	log.Println("Seed completed")
	return nil
}
