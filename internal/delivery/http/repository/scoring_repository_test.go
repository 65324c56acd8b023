package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/evandrarf/microlearn-be/internal/entity"
	"github.com/evandrarf/microlearn-be/internal/testutil"
	"gorm.io/gorm"
)

func TestScoringRepositorySessionAndAnswers(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewScoringRepository(db)

	session := &entity.ScoringSession{
		SessionID:        "s-1",
		StudentID:        "stu-1",
		TotalTimeSpent:   300,
		SessionStartTime: time.Now().UTC(),
	}
	if err := repo.CreateSession(nil, session); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	answers := []entity.StudentAnswer{
		{SessionID: "s-1", QuestionID: "q2", Position: 1, IsCorrect: false, Difficulty: "hard"},
		{SessionID: "s-1", QuestionID: "q1", Position: 0, IsCorrect: true, Difficulty: "easy"},
	}
	if err := repo.CreateAnswers(nil, answers); err != nil {
		t.Fatalf("CreateAnswers: %v", err)
	}

	got, err := repo.FindAnswersBySessionID(nil, "s-1")
	if err != nil {
		t.Fatalf("FindAnswersBySessionID: %v", err)
	}
	if len(got) != 2 || got[0].QuestionID != "q1" || got[1].QuestionID != "q2" {
		t.Fatalf("answers not ordered by position: %+v", got)
	}

	dup := []entity.StudentAnswer{{SessionID: "s-1", QuestionID: "q1", Position: 2}}
	if err := repo.CreateAnswers(nil, dup); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("repeated question err = %v, want gorm.ErrDuplicatedKey", err)
	}

	again := &entity.ScoringSession{SessionID: "s-1", StudentID: "stu-2", SessionStartTime: time.Now().UTC()}
	if err := repo.CreateSession(nil, again); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("repeated session err = %v, want gorm.ErrDuplicatedKey", err)
	}

	found, err := repo.FindSessionBySessionID(nil, "s-1")
	if err != nil {
		t.Fatalf("FindSessionBySessionID: %v", err)
	}
	if found.StudentID != "stu-1" || found.TotalTimeSpent != 300 {
		t.Errorf("unexpected session %+v", found)
	}

	found.TotalTimeSpent = 600
	if err := repo.UpdateSession(nil, found); err != nil {
		t.Fatalf("UpdateSession: %v", err)
	}
	again, _ = repo.FindSessionBySessionID(nil, "s-1")
	if again.TotalTimeSpent != 600 {
		t.Errorf("TotalTimeSpent = %v, want 600", again.TotalTimeSpent)
	}

	if _, err := repo.FindSessionBySessionID(nil, "missing"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("missing session err = %v, want ErrRecordNotFound", err)
	}
}

func TestScoringRepositoryCreateAnswersEmpty(t *testing.T) {
	repo := NewScoringRepository(testutil.NewTestDB(t))
	if err := repo.CreateAnswers(nil, nil); err != nil {
		t.Fatalf("CreateAnswers(nil): %v", err)
	}
}

func TestScoringRepositoryUpsertScoreRecord(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewScoringRepository(db)

	rec := &entity.ScoreRecord{SessionID: "s-1", StudentID: "stu-1", TotalScore: 10, Breakdown: "{}", RLParameters: "{}"}
	if err := repo.UpsertScoreRecord(nil, rec); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	rec2 := &entity.ScoreRecord{SessionID: "s-1", StudentID: "stu-1", TotalScore: 55, Accuracy: 0.5, Breakdown: "{}", RLParameters: "{}"}
	if err := repo.UpsertScoreRecord(nil, rec2); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var count int64
	db.Model(&entity.ScoreRecord{}).Count(&count)
	if count != 1 {
		t.Fatalf("score records = %d, want 1", count)
	}

	got, err := repo.FindScoreRecordBySessionID(nil, "s-1")
	if err != nil {
		t.Fatalf("FindScoreRecordBySessionID: %v", err)
	}
	if got.TotalScore != 55 || got.Accuracy != 0.5 {
		t.Errorf("record not updated: %+v", got)
	}
}

func TestScoringRepositoryFindScoreRecordsByStudentID(t *testing.T) {
	repo := NewScoringRepository(testutil.NewTestDB(t))

	for i, id := range []string{"a", "b", "c"} {
		rec := &entity.ScoreRecord{SessionID: id, StudentID: "stu-1", TotalScore: i}
		if err := repo.UpsertScoreRecord(nil, rec); err != nil {
			t.Fatalf("upsert %s: %v", id, err)
		}
	}
	if err := repo.UpsertScoreRecord(nil, &entity.ScoreRecord{SessionID: "other", StudentID: "stu-2"}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"no limit", 0, 3},
		{"limited", 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := repo.FindScoreRecordsByStudentID(nil, "stu-1", tt.limit)
			if err != nil {
				t.Fatal(err)
			}
			if len(recs) != tt.want {
				t.Fatalf("got %d records, want %d", len(recs), tt.want)
			}
			// newest first
			if recs[0].SessionID != "c" {
				t.Errorf("first record = %s, want c", recs[0].SessionID)
			}
		})
	}
}
