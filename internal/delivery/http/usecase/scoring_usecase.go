package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/evandrarf/microlearn-be/internal/delivery/http/entity"
	"github.com/evandrarf/microlearn-be/internal/delivery/http/repository"
	"github.com/evandrarf/microlearn-be/internal/pkg/mapper"
	"github.com/evandrarf/microlearn-be/internal/pkg/scoring"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSessionNotFound = errors.New("scoring session not found")
	ErrSessionExists   = errors.New("scoring session already exists")
	ErrStudentRequired = errors.New("studentId is required")
	ErrDuplicateAnswer = errors.New("question already answered in this session")
)

const defaultResultsLimit = 50

type ScoringUsecase interface {
	Calculate(ctx context.Context, req entity.ScoringSessionRequest) (*entity.ScoreResponse, error)
	ScoreSession(ctx context.Context, req entity.ScoringSessionRequest) (*entity.ScoreResponse, error)
	SubmitAnswer(ctx context.Context, sessionID string, req entity.SubmitAnswerRequest) (*entity.ScoreResponse, error)
	GetSession(ctx context.Context, sessionID string) (*entity.SessionDetail, error)
	GetStudentResults(ctx context.Context, studentID string, limit int) ([]entity.StudentResultItem, error)
	GetParameters(ctx context.Context) scoring.Params
	UpdateParameters(ctx context.Context, update scoring.ParamsUpdate) (scoring.Params, error)
}

type ScoringConfig struct {
	DB         *gorm.DB
	Engine     *scoring.Engine
	Repository repository.ScoringRepository
	Log        *logrus.Logger
}

type scoringUsecase struct {
	cfg ScoringConfig
}

func NewScoringUsecase(cfg ScoringConfig) ScoringUsecase {
	if cfg.Log == nil {
		cfg.Log = logrus.New()
	}
	return &scoringUsecase{cfg: cfg}
}

// Calculate scores without touching the database
func (u *scoringUsecase) Calculate(_ context.Context, req entity.ScoringSessionRequest) (*entity.ScoreResponse, error) {
	session := mapper.ToScoringSession(req)
	result := u.cfg.Engine.Calculate(session)
	return &entity.ScoreResponse{
		SessionID: session.SessionID,
		StudentID: session.StudentID,
		Result:    result,
	}, nil
}

func (u *scoringUsecase) ScoreSession(ctx context.Context, req entity.ScoringSessionRequest) (*entity.ScoreResponse, error) {
	if req.StudentID == "" {
		return nil, ErrStudentRequired
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	session := mapper.ToScoringSession(req)
	seen := make(map[string]struct{}, len(session.Answers))
	for _, a := range session.Answers {
		if _, dup := seen[a.QuestionID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAnswer, a.QuestionID)
		}
		seen[a.QuestionID] = struct{}{}
	}

	result := u.cfg.Engine.Calculate(session)

	err := u.cfg.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := u.cfg.Repository.FindSessionBySessionID(tx, session.SessionID); err == nil {
			return ErrSessionExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check session: %w", err)
		}

		// a concurrent create of the same id passes the check above and fails here
		if err := u.cfg.Repository.CreateSession(tx, mapper.ToSessionEntity(session)); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSessionExists
			}
			return fmt.Errorf("failed to save session: %w", err)
		}
		if err := u.cfg.Repository.CreateAnswers(tx, mapper.ToAnswerEntities(session.SessionID, session.Answers, 0)); err != nil {
			return fmt.Errorf("failed to save answers: %w", err)
		}
		return u.saveResult(tx, session, result)
	})
	if err != nil {
		return nil, err
	}

	u.cfg.Log.WithFields(logrus.Fields{
		"session_id": session.SessionID,
		"student_id": session.StudentID,
		"answers":    len(session.Answers),
		"score":      result.TotalScore,
	}).Info("session scored")

	return &entity.ScoreResponse{
		SessionID: session.SessionID,
		StudentID: session.StudentID,
		Result:    result,
	}, nil
}

// SubmitAnswer appends one answer to a stored session and rescores the whole session
func (u *scoringUsecase) SubmitAnswer(ctx context.Context, sessionID string, req entity.SubmitAnswerRequest) (*entity.ScoreResponse, error) {
	var (
		session scoring.Session
		result  scoring.Result
	)

	err := u.cfg.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stored, err := u.cfg.Repository.FindSessionBySessionID(tx, sessionID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get session: %w", err)
		}

		rows, err := u.cfg.Repository.FindAnswersBySessionID(tx, sessionID)
		if err != nil {
			return fmt.Errorf("failed to get session answers: %w", err)
		}
		for _, row := range rows {
			if row.QuestionID == req.Answer.QuestionID {
				return fmt.Errorf("%w: %s", ErrDuplicateAnswer, req.Answer.QuestionID)
			}
		}

		answer := mapper.ToScoringAnswer(req.Answer)
		newRows := mapper.ToAnswerEntities(sessionID, []scoring.Answer{answer}, len(rows))
		if err := u.cfg.Repository.CreateAnswers(tx, newRows); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: %s", ErrDuplicateAnswer, req.Answer.QuestionID)
			}
			return fmt.Errorf("failed to save answer: %w", err)
		}

		if req.TotalTimeSpent != nil || req.SessionEndTime != nil {
			if req.TotalTimeSpent != nil {
				stored.TotalTimeSpent = *req.TotalTimeSpent
			}
			if req.SessionEndTime != nil {
				stored.SessionEndTime = req.SessionEndTime
			}
			if err := u.cfg.Repository.UpdateSession(tx, stored); err != nil {
				return fmt.Errorf("failed to update session: %w", err)
			}
		}

		session = mapper.ToScoringSessionFromEntity(stored, append(rows, newRows...))
		result = u.cfg.Engine.Calculate(session)
		return u.saveResult(tx, session, result)
	})
	if err != nil {
		return nil, err
	}

	return &entity.ScoreResponse{
		SessionID: session.SessionID,
		StudentID: session.StudentID,
		Result:    result,
	}, nil
}

func (u *scoringUsecase) saveResult(tx *gorm.DB, session scoring.Session, result scoring.Result) error {
	record, err := mapper.ToScoreRecord(session.SessionID, session.StudentID, result)
	if err != nil {
		return err
	}
	if err := u.cfg.Repository.UpsertScoreRecord(tx, record); err != nil {
		return fmt.Errorf("failed to save score: %w", err)
	}
	return nil
}

func (u *scoringUsecase) GetSession(ctx context.Context, sessionID string) (*entity.SessionDetail, error) {
	db := u.cfg.DB.WithContext(ctx)

	stored, err := u.cfg.Repository.FindSessionBySessionID(db, sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	answers, err := u.cfg.Repository.FindAnswersBySessionID(db, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session answers: %w", err)
	}

	detail := &entity.SessionDetail{
		SessionID:        stored.SessionID,
		StudentID:        stored.StudentID,
		TotalTimeSpent:   stored.TotalTimeSpent,
		SessionStartTime: stored.SessionStartTime,
		SessionEndTime:   stored.SessionEndTime,
		Answers:          mapper.ToAnswerLogs(answers),
	}

	record, err := u.cfg.Repository.FindScoreRecordBySessionID(db, sessionID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
	case err != nil:
		return nil, fmt.Errorf("failed to get score: %w", err)
	default:
		result, err := mapper.ToScoringResult(record)
		if err != nil {
			return nil, err
		}
		detail.Result = &result
	}

	return detail, nil
}

func (u *scoringUsecase) GetStudentResults(ctx context.Context, studentID string, limit int) ([]entity.StudentResultItem, error) {
	if limit <= 0 {
		limit = defaultResultsLimit
	}
	records, err := u.cfg.Repository.FindScoreRecordsByStudentID(u.cfg.DB.WithContext(ctx), studentID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get score history: %w", err)
	}

	items := make([]entity.StudentResultItem, 0, len(records))
	for _, rec := range records {
		items = append(items, mapper.ToStudentResultItem(rec))
	}
	return items, nil
}

func (u *scoringUsecase) GetParameters(_ context.Context) scoring.Params {
	return u.cfg.Engine.Params()
}

func (u *scoringUsecase) UpdateParameters(_ context.Context, update scoring.ParamsUpdate) (scoring.Params, error) {
	params, err := u.cfg.Engine.UpdateParams(update)
	if err != nil {
		return scoring.Params{}, err
	}
	u.cfg.Log.WithField("params", params).Info("scoring parameters updated")
	return params, nil
}
