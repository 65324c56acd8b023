package entity

import (
	"time"

	"gorm.io/gorm"
)

// ScoringSession - one quiz session of a student
type ScoringSession struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	SessionID        string         `gorm:"uniqueIndex;size:100;not null" json:"session_id"`
	StudentID        string         `gorm:"size:100;not null;index" json:"student_id"`
	TotalTimeSpent   float64        `gorm:"not null;default:0" json:"total_time_spent"` // seconds, reported by the client
	SessionStartTime time.Time      `json:"session_start_time"`
	SessionEndTime   *time.Time     `json:"session_end_time,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ScoringSession) TableName() string {
	return "scoring_sessions"
}

// StudentAnswer - one answered question, ordered by Position inside a session
type StudentAnswer struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	SessionID  string         `gorm:"size:100;not null;index;uniqueIndex:idx_session_question" json:"session_id"`
	QuestionID string         `gorm:"size:100;not null;uniqueIndex:idx_session_question" json:"question_id"`
	Position   int            `gorm:"not null" json:"position"`
	IsCorrect  bool           `gorm:"not null" json:"is_correct"`
	TimeSpent  float64        `gorm:"not null;default:0" json:"time_spent"` // seconds
	Difficulty string         `gorm:"size:20;index" json:"difficulty"`      // easy, medium, hard
	Subject    string         `gorm:"size:100;index" json:"subject"`
	AnsweredAt time.Time      `json:"answered_at"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (StudentAnswer) TableName() string {
	return "student_answers"
}

// ScoreRecord - latest calculated score of a session
type ScoreRecord struct {
	ID                  uint           `gorm:"primarykey" json:"id"`
	SessionID           string         `gorm:"uniqueIndex;size:100;not null" json:"session_id"`
	StudentID           string         `gorm:"size:100;not null;index" json:"student_id"`
	TotalScore          int            `gorm:"not null" json:"total_score"`
	BaseScore           int            `gorm:"not null" json:"base_score"`
	RetentionBonus      int            `gorm:"not null" json:"retention_bonus"`
	StreakBonus         int            `gorm:"not null" json:"streak_bonus"`
	CorrectAnswers      int            `gorm:"not null" json:"correct_answers"`
	TotalAnswers        int            `gorm:"not null" json:"total_answers"`
	Accuracy            float64        `gorm:"not null" json:"accuracy"`
	CurrentStreak       int            `gorm:"not null" json:"current_streak"`
	LongestStreak       int            `gorm:"not null" json:"longest_streak"`
	MotivationalMessage string         `gorm:"type:text" json:"motivational_message"`
	Breakdown           string         `gorm:"type:text" json:"breakdown"`     // JSON object
	RLParameters        string         `gorm:"type:text" json:"rl_parameters"` // JSON object
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ScoreRecord) TableName() string {
	return "score_records"
}
