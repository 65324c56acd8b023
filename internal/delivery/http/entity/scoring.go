package entity

import (
	"time"

	"github.com/evandrarf/microlearn-be/internal/pkg/scoring"
)

// Answer sent by the quiz UI
type AnswerRequest struct {
	QuestionID string    `json:"questionId" validate:"required,max=100"`
	IsCorrect  bool      `json:"isCorrect"`
	TimeSpent  float64   `json:"timeSpent" validate:"gte=0,lte=31536000"`
	Difficulty string    `json:"difficulty" validate:"max=20"` // unknown values score without bonus
	Subject    string    `json:"subject" validate:"max=100"`
	Timestamp  time.Time `json:"timestamp"`
}

// Request untuk hitung skor satu session
type ScoringSessionRequest struct {
	SessionID        string          `json:"sessionId" validate:"max=100"`
	StudentID        string          `json:"studentId" validate:"max=100"`
	Answers          []AnswerRequest `json:"answers" validate:"max=500,dive"`
	TotalTimeSpent   float64         `json:"totalTimeSpent" validate:"gte=0,lte=31536000"`
	SessionStartTime time.Time       `json:"sessionStartTime"`
	SessionEndTime   *time.Time      `json:"sessionEndTime"`
}

// Request untuk submit satu jawaban ke session yang sudah ada
type SubmitAnswerRequest struct {
	Answer         AnswerRequest `json:"answer" validate:"required"`
	TotalTimeSpent *float64      `json:"totalTimeSpent" validate:"omitempty,gte=0,lte=31536000"`
	SessionEndTime *time.Time    `json:"sessionEndTime"`
}

type ScoreResponse struct {
	SessionID string `json:"sessionId"`
	StudentID string `json:"studentId,omitempty"`
	scoring.Result
}

type AnswerLog struct {
	QuestionID string    `json:"questionId"`
	IsCorrect  bool      `json:"isCorrect"`
	TimeSpent  float64   `json:"timeSpent"`
	Difficulty string    `json:"difficulty"`
	Subject    string    `json:"subject"`
	Timestamp  time.Time `json:"timestamp"`
}

type SessionDetail struct {
	SessionID        string          `json:"sessionId"`
	StudentID        string          `json:"studentId"`
	TotalTimeSpent   float64         `json:"totalTimeSpent"`
	SessionStartTime time.Time       `json:"sessionStartTime"`
	SessionEndTime   *time.Time      `json:"sessionEndTime,omitempty"`
	Answers          []AnswerLog     `json:"answers"`
	Result           *scoring.Result `json:"result,omitempty"`
}

// One row of a student's score history
type StudentResultItem struct {
	SessionID     string    `json:"sessionId"`
	TotalScore    int       `json:"totalScore"`
	Accuracy      float64   `json:"accuracy"`
	TotalAnswers  int       `json:"totalAnswers"`
	LongestStreak int       `json:"longestStreak"`
	ScoredAt      time.Time `json:"scoredAt"`
}
