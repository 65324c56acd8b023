package repository

import (
	"github.com/evandrarf/microlearn-be/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	ScoringRepository interface {
		// Session operations
		CreateSession(db *gorm.DB, session *entity.ScoringSession) error
		UpdateSession(db *gorm.DB, session *entity.ScoringSession) error
		FindSessionBySessionID(db *gorm.DB, sessionID string) (*entity.ScoringSession, error)

		// Answer operations
		CreateAnswers(db *gorm.DB, answers []entity.StudentAnswer) error
		FindAnswersBySessionID(db *gorm.DB, sessionID string) ([]entity.StudentAnswer, error)

		// Score record operations
		UpsertScoreRecord(db *gorm.DB, record *entity.ScoreRecord) error
		FindScoreRecordBySessionID(db *gorm.DB, sessionID string) (*entity.ScoreRecord, error)
		FindScoreRecordsByStudentID(db *gorm.DB, studentID string, limit int) ([]entity.ScoreRecord, error)
	}

	scoringRepository struct {
		db *gorm.DB
	}
)

func NewScoringRepository(db *gorm.DB) ScoringRepository {
	return &scoringRepository{db: db}
}

func (r *scoringRepository) CreateSession(db *gorm.DB, session *entity.ScoringSession) error {
	if db == nil {
		db = r.db
	}
	return db.Create(session).Error
}

func (r *scoringRepository) UpdateSession(db *gorm.DB, session *entity.ScoringSession) error {
	if db == nil {
		db = r.db
	}
	return db.Save(session).Error
}

func (r *scoringRepository) FindSessionBySessionID(db *gorm.DB, sessionID string) (*entity.ScoringSession, error) {
	if db == nil {
		db = r.db
	}
	var session entity.ScoringSession
	err := db.Where("session_id = ?", sessionID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *scoringRepository) CreateAnswers(db *gorm.DB, answers []entity.StudentAnswer) error {
	if db == nil {
		db = r.db
	}
	if len(answers) == 0 {
		return nil
	}
	return db.Create(&answers).Error
}

// Answers come back in the order they were given
func (r *scoringRepository) FindAnswersBySessionID(db *gorm.DB, sessionID string) ([]entity.StudentAnswer, error) {
	if db == nil {
		db = r.db
	}
	var answers []entity.StudentAnswer
	err := db.Where("session_id = ?", sessionID).Order("position ASC").Find(&answers).Error
	return answers, err
}

func (r *scoringRepository) UpsertScoreRecord(db *gorm.DB, record *entity.ScoreRecord) error {
	if db == nil {
		db = r.db
	}
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"student_id", "total_score", "base_score", "retention_bonus", "streak_bonus",
			"correct_answers", "total_answers", "accuracy", "current_streak", "longest_streak",
			"motivational_message", "breakdown", "rl_parameters", "updated_at",
		}),
	}).Create(record).Error
}

func (r *scoringRepository) FindScoreRecordBySessionID(db *gorm.DB, sessionID string) (*entity.ScoreRecord, error) {
	if db == nil {
		db = r.db
	}
	var record entity.ScoreRecord
	err := db.Where("session_id = ?", sessionID).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *scoringRepository) FindScoreRecordsByStudentID(db *gorm.DB, studentID string, limit int) ([]entity.ScoreRecord, error) {
	if db == nil {
		db = r.db
	}
	var records []entity.ScoreRecord
	query := db.Where("student_id = ?", studentID).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&records).Error
	return records, err
}
