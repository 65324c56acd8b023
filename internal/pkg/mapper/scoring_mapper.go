package mapper

import (
	"encoding/json"
	"fmt"
	"time"

	httpEntity "github.com/evandrarf/microlearn-be/internal/delivery/http/entity"
	dbEntity "github.com/evandrarf/microlearn-be/internal/entity"
	"github.com/evandrarf/microlearn-be/internal/pkg/scoring"
)

// ToScoringAnswer - Convert request answer to engine answer
func ToScoringAnswer(req httpEntity.AnswerRequest) scoring.Answer {
	return scoring.Answer{
		QuestionID: req.QuestionID,
		IsCorrect:  req.IsCorrect,
		TimeSpent:  req.TimeSpent,
		Difficulty: scoring.Difficulty(req.Difficulty),
		Subject:    req.Subject,
		Timestamp:  req.Timestamp,
	}
}

func ToScoringSession(req httpEntity.ScoringSessionRequest) scoring.Session {
	answers := make([]scoring.Answer, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, ToScoringAnswer(a))
	}
	return scoring.Session{
		SessionID:        req.SessionID,
		StudentID:        req.StudentID,
		Answers:          answers,
		TotalTimeSpent:   req.TotalTimeSpent,
		SessionStartTime: req.SessionStartTime,
		SessionEndTime:   req.SessionEndTime,
	}
}

// ToSessionEntity - Build the stored session row
func ToSessionEntity(s scoring.Session) *dbEntity.ScoringSession {
	return &dbEntity.ScoringSession{
		SessionID:        s.SessionID,
		StudentID:        s.StudentID,
		TotalTimeSpent:   s.TotalTimeSpent,
		SessionStartTime: s.SessionStartTime,
		SessionEndTime:   s.SessionEndTime,
	}
}

// ToAnswerEntities numbers answers starting at offset so later submissions keep their order
func ToAnswerEntities(sessionID string, answers []scoring.Answer, offset int) []dbEntity.StudentAnswer {
	rows := make([]dbEntity.StudentAnswer, 0, len(answers))
	for i, a := range answers {
		answeredAt := a.Timestamp
		if answeredAt.IsZero() {
			answeredAt = time.Now()
		}
		rows = append(rows, dbEntity.StudentAnswer{
			SessionID:  sessionID,
			QuestionID: a.QuestionID,
			Position:   offset + i,
			IsCorrect:  a.IsCorrect,
			TimeSpent:  a.TimeSpent,
			Difficulty: string(a.Difficulty),
			Subject:    a.Subject,
			AnsweredAt: answeredAt,
		})
	}
	return rows
}

// ToScoringSessionFromEntity - Rebuild engine input from stored rows
func ToScoringSessionFromEntity(s *dbEntity.ScoringSession, answers []dbEntity.StudentAnswer) scoring.Session {
	out := scoring.Session{
		SessionID:        s.SessionID,
		StudentID:        s.StudentID,
		TotalTimeSpent:   s.TotalTimeSpent,
		SessionStartTime: s.SessionStartTime,
		SessionEndTime:   s.SessionEndTime,
		Answers:          make([]scoring.Answer, 0, len(answers)),
	}
	for _, a := range answers {
		out.Answers = append(out.Answers, scoring.Answer{
			QuestionID: a.QuestionID,
			IsCorrect:  a.IsCorrect,
			TimeSpent:  a.TimeSpent,
			Difficulty: scoring.Difficulty(a.Difficulty),
			Subject:    a.Subject,
			Timestamp:  a.AnsweredAt,
		})
	}
	return out
}

func ToAnswerLogs(answers []dbEntity.StudentAnswer) []httpEntity.AnswerLog {
	logs := make([]httpEntity.AnswerLog, 0, len(answers))
	for _, a := range answers {
		logs = append(logs, httpEntity.AnswerLog{
			QuestionID: a.QuestionID,
			IsCorrect:  a.IsCorrect,
			TimeSpent:  a.TimeSpent,
			Difficulty: a.Difficulty,
			Subject:    a.Subject,
			Timestamp:  a.AnsweredAt,
		})
	}
	return logs
}

// ToScoreRecord - Flatten a result, breakdown and RL parameters are stored as JSON
func ToScoreRecord(sessionID, studentID string, r scoring.Result) (*dbEntity.ScoreRecord, error) {
	breakdown, err := json.Marshal(r.DetailedBreakdown)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal breakdown: %w", err)
	}
	rl, err := json.Marshal(r.RLParameters)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rl parameters: %w", err)
	}

	return &dbEntity.ScoreRecord{
		SessionID:           sessionID,
		StudentID:           studentID,
		TotalScore:          r.TotalScore,
		BaseScore:           r.BaseScore,
		RetentionBonus:      r.RetentionBonus,
		StreakBonus:         r.StreakBonus,
		CorrectAnswers:      r.CorrectAnswers,
		TotalAnswers:        r.TotalAnswers,
		Accuracy:            r.Accuracy,
		CurrentStreak:       r.CurrentStreak,
		LongestStreak:       r.LongestStreak,
		MotivationalMessage: r.MotivationalMessage,
		Breakdown:           string(breakdown),
		RLParameters:        string(rl),
	}, nil
}

func ToScoringResult(rec *dbEntity.ScoreRecord) (scoring.Result, error) {
	out := scoring.Result{
		TotalScore:          rec.TotalScore,
		BaseScore:           rec.BaseScore,
		RetentionBonus:      rec.RetentionBonus,
		StreakBonus:         rec.StreakBonus,
		CorrectAnswers:      rec.CorrectAnswers,
		TotalAnswers:        rec.TotalAnswers,
		Accuracy:            rec.Accuracy,
		CurrentStreak:       rec.CurrentStreak,
		LongestStreak:       rec.LongestStreak,
		MotivationalMessage: rec.MotivationalMessage,
	}
	if rec.Breakdown != "" {
		if err := json.Unmarshal([]byte(rec.Breakdown), &out.DetailedBreakdown); err != nil {
			return scoring.Result{}, fmt.Errorf("failed to unmarshal breakdown: %w", err)
		}
	}
	if rec.RLParameters != "" {
		if err := json.Unmarshal([]byte(rec.RLParameters), &out.RLParameters); err != nil {
			return scoring.Result{}, fmt.Errorf("failed to unmarshal rl parameters: %w", err)
		}
	}
	return out, nil
}

func ToStudentResultItem(rec dbEntity.ScoreRecord) httpEntity.StudentResultItem {
	return httpEntity.StudentResultItem{
		SessionID:     rec.SessionID,
		TotalScore:    rec.TotalScore,
		Accuracy:      rec.Accuracy,
		TotalAnswers:  rec.TotalAnswers,
		LongestStreak: rec.LongestStreak,
		ScoredAt:      rec.UpdatedAt,
	}
}
