package database

import (
	"github.com/evandrarf/microlearn-be/internal/entity"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.ScoringSession{},
		&entity.StudentAnswer{},
		&entity.ScoreRecord{},
		&entity.LearningDocument{},
	)
}
