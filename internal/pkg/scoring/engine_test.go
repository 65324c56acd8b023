package scoring

import (
	"math"
	"strings"
	"sync"
	"testing"
	"time"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultParams(), WithPicker(func(int) int { return 0 }))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func answers(difficulty Difficulty, timeSpent float64, outcomes ...bool) []Answer {
	out := make([]Answer, len(outcomes))
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	for i, ok := range outcomes {
		out[i] = Answer{
			QuestionID: "q" + string(rune('a'+i)),
			IsCorrect:  ok,
			TimeSpent:  timeSpent,
			Difficulty: difficulty,
			Subject:    "math",
			Timestamp:  base.Add(time.Duration(i) * time.Minute),
		}
	}
	return out
}

func repeat(v bool, n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestCalculateEmptySession(t *testing.T) {
	e := newTestEngine(t)
	res := e.Calculate(Session{SessionID: "s1"})

	if res.TotalScore != 0 {
		t.Errorf("TotalScore = %d, want 0", res.TotalScore)
	}
	if res.Accuracy != 0 {
		t.Errorf("Accuracy = %v, want 0", res.Accuracy)
	}
	if got := res.RLParameters.ActionSpace.NextTopicSuggestion; got != "foundation_concepts" {
		t.Errorf("NextTopicSuggestion = %q, want foundation_concepts", got)
	}
	if res.RLParameters.StateFeatures.DifficultyProgression != 0 {
		t.Errorf("DifficultyProgression = %v, want 0", res.RLParameters.StateFeatures.DifficultyProgression)
	}
	if res.MotivationalMessage == "" {
		t.Error("MotivationalMessage should not be empty")
	}
}

func TestCalculateAllCorrectEasy(t *testing.T) {
	e := newTestEngine(t)

	for _, n := range []int{1, 2, 3, 5, 6, 9, 10} {
		res := e.Calculate(Session{Answers: answers(DifficultyEasy, 0, repeat(true, n)...)})

		if res.BaseScore != 10*n {
			t.Errorf("n=%d: BaseScore = %d, want %d", n, res.BaseScore, 10*n)
		}
		if want := 30 * (n / 3); res.StreakBonus != want {
			t.Errorf("n=%d: StreakBonus = %d, want %d", n, res.StreakBonus, want)
		}
		if res.DetailedBreakdown.TimeEfficiencyBonus != 5*n {
			t.Errorf("n=%d: TimeEfficiencyBonus = %d, want %d", n, res.DetailedBreakdown.TimeEfficiencyBonus, 5*n)
		}
		if res.CurrentStreak != n || res.LongestStreak != n {
			t.Errorf("n=%d: streaks = (%d, %d), want (%d, %d)", n, res.CurrentStreak, res.LongestStreak, n, n)
		}
	}
}

func TestDifficultyMultiplierMonotonic(t *testing.T) {
	e := newTestEngine(t)

	for _, n := range []int{1, 4, 7} {
		easy := e.Calculate(Session{Answers: answers(DifficultyEasy, 0, repeat(true, n)...)})
		medium := e.Calculate(Session{Answers: answers(DifficultyMedium, 0, repeat(true, n)...)})
		hard := e.Calculate(Session{Answers: answers(DifficultyHard, 0, repeat(true, n)...)})

		if !(hard.BaseScore > medium.BaseScore && medium.BaseScore > easy.BaseScore) {
			t.Errorf("n=%d: base scores not monotonic: easy=%d medium=%d hard=%d", n, easy.BaseScore, medium.BaseScore, hard.BaseScore)
		}
		if hard.BaseScore != 20*n {
			t.Errorf("n=%d: hard BaseScore = %d, want %d", n, hard.BaseScore, 20*n)
		}
		if medium.DetailedBreakdown.DifficultyBonus != 5*n {
			t.Errorf("n=%d: medium DifficultyBonus = %d, want %d", n, medium.DetailedBreakdown.DifficultyBonus, 5*n)
		}
	}
}

func TestStreakResets(t *testing.T) {
	e := newTestEngine(t)
	res := e.Calculate(Session{Answers: answers(DifficultyEasy, 100, true, true, false, true, true, true)})

	if res.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", res.CurrentStreak)
	}
	if res.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", res.LongestStreak)
	}
	if res.StreakBonus != 30 {
		t.Errorf("StreakBonus = %d, want 30", res.StreakBonus)
	}
}

func TestLongestStreakSurvivesReset(t *testing.T) {
	e := newTestEngine(t)
	res := e.Calculate(Session{Answers: answers(DifficultyEasy, 100, true, true, true, true, false, true)})

	if res.CurrentStreak != 1 || res.LongestStreak != 4 {
		t.Errorf("streaks = (%d, %d), want (1, 4)", res.CurrentStreak, res.LongestStreak)
	}
}

func TestRetentionBonusSteps(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		seconds float64
		want    int
	}{
		{0, 0},
		{2699, 0},
		{2700, 10},
		{5399, 10},
		{5400, 20},
		{-30, 0},
	}

	for _, tt := range tests {
		res := e.Calculate(Session{TotalTimeSpent: tt.seconds})
		if res.RetentionBonus != tt.want {
			t.Errorf("TotalTimeSpent=%v: RetentionBonus = %d, want %d", tt.seconds, res.RetentionBonus, tt.want)
		}
		if res.DetailedBreakdown.RetentionBonus != tt.want {
			t.Errorf("TotalTimeSpent=%v: breakdown RetentionBonus = %d, want %d", tt.seconds, res.DetailedBreakdown.RetentionBonus, tt.want)
		}
	}
}

func TestRetentionDerivedFromAnswers(t *testing.T) {
	p := DefaultParams()
	p.DeriveRetentionFromAnswers = true
	e, err := NewEngine(p)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	res := e.Calculate(Session{
		TotalTimeSpent: 10_000,
		Answers:        answers(DifficultyHard, 1400, false, false),
	})
	if res.RetentionBonus != 10 {
		t.Errorf("RetentionBonus = %d, want 10", res.RetentionBonus)
	}
}

func TestTwoQuickEasyAnswers(t *testing.T) {
	e := newTestEngine(t)
	res := e.Calculate(Session{Answers: answers(DifficultyEasy, 10, true, true)})

	if res.BaseScore != 20 {
		t.Errorf("BaseScore = %d, want 20", res.BaseScore)
	}
	// round(5 * 20 / 30) = 3 per answer
	if res.DetailedBreakdown.TimeEfficiencyBonus != 6 {
		t.Errorf("TimeEfficiencyBonus = %d, want 6", res.DetailedBreakdown.TimeEfficiencyBonus)
	}
	if res.RetentionBonus != 0 {
		t.Errorf("RetentionBonus = %d, want 0", res.RetentionBonus)
	}
	if res.StreakBonus != 0 {
		t.Errorf("StreakBonus = %d, want 0", res.StreakBonus)
	}
	if res.Accuracy != 1.0 {
		t.Errorf("Accuracy = %v, want 1.0", res.Accuracy)
	}
	if res.TotalScore != 26 {
		t.Errorf("TotalScore = %d, want 26", res.TotalScore)
	}
}

func TestHugeDurationsSaturate(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name          string
		totalTime     float64
		answerTime    float64
		wantRetention int
		wantTotal     int
	}{
		// capped at one year: floor(31536000/2700) * 10
		{"huge session time", 1e25, 10, 116800, 116813},
		{"infinite session time", math.Inf(1), 10, 116800, 116813},
		{"nan session time", math.NaN(), 10, 0, 13},
		{"huge answer time", 0, 1e25, 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Calculate(Session{
				TotalTimeSpent: tt.totalTime,
				Answers:        answers(DifficultyEasy, tt.answerTime, true),
			})
			if res.RetentionBonus != tt.wantRetention {
				t.Errorf("RetentionBonus = %d, want %d", res.RetentionBonus, tt.wantRetention)
			}
			if res.TotalScore != tt.wantTotal {
				t.Errorf("TotalScore = %d, want %d", res.TotalScore, tt.wantTotal)
			}
			if rate := res.RLParameters.StateFeatures.RetentionRate; rate < 0 || rate > 1 {
				t.Errorf("RetentionRate = %v, want within [0, 1]", rate)
			}
		})
	}
}

func TestHugeParametersSaturateScore(t *testing.T) {
	p := DefaultParams()
	p.RetentionBonusPoints = 1e300
	e, err := NewEngine(p)
	if err != nil {
		t.Fatal(err)
	}

	res := e.Calculate(Session{TotalTimeSpent: MaxSeconds, Answers: answers(DifficultyHard, 10, true)})
	if res.RetentionBonus != math.MaxInt32 || res.TotalScore != math.MaxInt32 {
		t.Errorf("RetentionBonus = %d, TotalScore = %d, want both %d", res.RetentionBonus, res.TotalScore, math.MaxInt32)
	}
	if res.RLParameters.RewardSignal != 1 {
		t.Errorf("RewardSignal = %v, want 1", res.RLParameters.RewardSignal)
	}
}

func TestTimeEfficiencyBonus(t *testing.T) {
	p := DefaultParams()

	tests := []struct {
		name   string
		answer Answer
		want   float64
	}{
		{"instant easy", Answer{IsCorrect: true, Difficulty: DifficultyEasy, TimeSpent: 0}, 5},
		{"at threshold", Answer{IsCorrect: true, Difficulty: DifficultyEasy, TimeSpent: 30}, 0},
		{"over threshold", Answer{IsCorrect: true, Difficulty: DifficultyEasy, TimeSpent: 31}, 0},
		{"half hard", Answer{IsCorrect: true, Difficulty: DifficultyHard, TimeSpent: 60}, 3},
		{"medium 45s", Answer{IsCorrect: true, Difficulty: DifficultyMedium, TimeSpent: 45}, 1},
		{"unknown difficulty", Answer{IsCorrect: true, Difficulty: "expert", TimeSpent: 1}, 0},
		{"negative time", Answer{IsCorrect: true, Difficulty: DifficultyEasy, TimeSpent: -5}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := timeEfficiencyBonus(p, tt.answer); got != tt.want {
				t.Errorf("timeEfficiencyBonus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIncorrectAnswersScoreNothing(t *testing.T) {
	e := newTestEngine(t)
	res := e.Calculate(Session{Answers: answers(DifficultyHard, 1, false, false, false)})

	if res.TotalScore != 0 || res.BaseScore != 0 {
		t.Errorf("scores = (%d, %d), want zeros", res.TotalScore, res.BaseScore)
	}
	if res.CorrectAnswers != 0 || res.TotalAnswers != 3 {
		t.Errorf("counts = (%d, %d), want (0, 3)", res.CorrectAnswers, res.TotalAnswers)
	}
}

func TestAccuracyRounded(t *testing.T) {
	e := newTestEngine(t)
	res := e.Calculate(Session{Answers: answers(DifficultyEasy, 100, true, false, false)})

	if res.Accuracy != 0.33 {
		t.Errorf("Accuracy = %v, want 0.33", res.Accuracy)
	}
}

func TestMotivationalMessage(t *testing.T) {
	tests := []struct {
		name     string
		outcomes []bool
		prefix   string
		contains []string
		excludes []string
	}{
		{
			name:     "perfect with long streak",
			outcomes: repeat(true, 6),
			prefix:   messagePools[bandPerfect][0],
			contains: []string{"6-answer streak"},
			excludes: []string{"Mistakes"},
		},
		{
			name:     "excellent with short streak",
			outcomes: []bool{false, true, true, true, true},
			prefix:   messagePools[bandExcellent][0],
			contains: []string{"streak of 4"},
			excludes: []string{"Mistakes"},
		},
		{
			name:     "good with encouragement",
			outcomes: []bool{true, false, true, false, true},
			prefix:   messagePools[bandGood][0],
			contains: []string{"Mistakes"},
			excludes: []string{"streak"},
		},
		{
			name:     "needs work",
			outcomes: []bool{false, false, true},
			prefix:   messagePools[bandNeedsWork][0],
			contains: []string{"Mistakes"},
		},
	}

	e := newTestEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := e.Calculate(Session{Answers: answers(DifficultyEasy, 100, tt.outcomes...)}).MotivationalMessage
			if !strings.HasPrefix(msg, tt.prefix) {
				t.Errorf("message %q should start with %q", msg, tt.prefix)
			}
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("message %q should contain %q", msg, s)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(msg, s) {
					t.Errorf("message %q should not contain %q", msg, s)
				}
			}
		})
	}
}

func TestMotivationalMessagePickerOutOfRange(t *testing.T) {
	msg := motivationalMessage(func(n int) int { return n + 3 }, 1, 0, 0)
	if msg != messagePools[bandPerfect][0] {
		t.Errorf("message = %q, want first perfect message", msg)
	}
}

func TestRLParameters(t *testing.T) {
	e := newTestEngine(t)

	t.Run("strong session suggests hard", func(t *testing.T) {
		res := e.Calculate(Session{
			TotalTimeSpent: 1350,
			Answers:        answers(DifficultyHard, 90, repeat(true, 10)...),
		})
		rl := res.RLParameters

		if rl.ActionSpace.SuggestedDifficulty != DifficultyHard {
			t.Errorf("SuggestedDifficulty = %q, want hard", rl.ActionSpace.SuggestedDifficulty)
		}
		if rl.StateFeatures.RetentionRate != 0.5 {
			t.Errorf("RetentionRate = %v, want 0.5", rl.StateFeatures.RetentionRate)
		}
		if rl.StateFeatures.EngagementLevel != 1 {
			t.Errorf("EngagementLevel = %v, want 1", rl.StateFeatures.EngagementLevel)
		}
		if rl.StateFeatures.StreakLength != 1 {
			t.Errorf("StreakLength = %v, want 1", rl.StateFeatures.StreakLength)
		}
		if rl.StateFeatures.DifficultyProgression != 1 {
			t.Errorf("DifficultyProgression = %v, want 1", rl.StateFeatures.DifficultyProgression)
		}
		if rl.ActionSpace.RecommendedBreakTime != 5 {
			t.Errorf("RecommendedBreakTime = %d, want 5", rl.ActionSpace.RecommendedBreakTime)
		}
		if rl.ActionSpace.NextTopicSuggestion != "advance_math" {
			t.Errorf("NextTopicSuggestion = %q, want advance_math", rl.ActionSpace.NextTopicSuggestion)
		}
		// 10 hard correct answers: base 200, streak 90, time bonus 10*round(5*30/120)=10*1
		if want := float64(res.TotalScore) / 1000; rl.RewardSignal != want {
			t.Errorf("RewardSignal = %v, want %v", rl.RewardSignal, want)
		}
	})

	t.Run("weak quick session suggests easy and a long break", func(t *testing.T) {
		res := e.Calculate(Session{Answers: answers(DifficultyMedium, 6, true, false, false, false)})
		rl := res.RLParameters

		if rl.ActionSpace.SuggestedDifficulty != DifficultyEasy {
			t.Errorf("SuggestedDifficulty = %q, want easy", rl.ActionSpace.SuggestedDifficulty)
		}
		if rl.ActionSpace.RecommendedBreakTime != 10 {
			t.Errorf("RecommendedBreakTime = %d, want 10", rl.ActionSpace.RecommendedBreakTime)
		}
		if rl.StateFeatures.EngagementLevel != 0.1 {
			t.Errorf("EngagementLevel = %v, want 0.1", rl.StateFeatures.EngagementLevel)
		}
		if rl.ActionSpace.NextTopicSuggestion != "review_math" {
			t.Errorf("NextTopicSuggestion = %q, want review_math", rl.ActionSpace.NextTopicSuggestion)
		}
	})

	t.Run("reward signal saturates", func(t *testing.T) {
		res := e.Calculate(Session{TotalTimeSpent: 2700 * 200})
		if res.RLParameters.RewardSignal != 1 {
			t.Errorf("RewardSignal = %v, want 1", res.RLParameters.RewardSignal)
		}
	})
}

func TestNextTopicPicksWeakestAndStrongest(t *testing.T) {
	mixed := []Answer{
		{Subject: "algebra", IsCorrect: true},
		{Subject: "geometry", IsCorrect: false},
		{Subject: "geometry", IsCorrect: false},
		{Subject: "algebra", IsCorrect: false},
		{Subject: "", IsCorrect: false},
	}
	if got := nextTopic(mixed, 0.2); got != "review_geometry" {
		t.Errorf("nextTopic() = %q, want review_geometry", got)
	}

	strong := []Answer{
		{Subject: "algebra", IsCorrect: true},
		{Subject: "algebra", IsCorrect: false},
		{Subject: "biology", IsCorrect: true},
		{Subject: "biology", IsCorrect: true},
	}
	if got := nextTopic(strong, 0.75); got != "advance_biology" {
		t.Errorf("nextTopic() = %q, want advance_biology", got)
	}

	unlabeled := []Answer{{IsCorrect: false}}
	if got := nextTopic(unlabeled, 0); got != "review_general" {
		t.Errorf("nextTopic() = %q, want review_general", got)
	}
}

func TestDifficultyProgressionWeightsRecentAnswers(t *testing.T) {
	// hard answers at the end weigh more than hard answers at the start
	early := []Answer{
		{Difficulty: DifficultyHard, IsCorrect: true},
		{Difficulty: DifficultyEasy, IsCorrect: true},
	}
	late := []Answer{
		{Difficulty: DifficultyEasy, IsCorrect: true},
		{Difficulty: DifficultyHard, IsCorrect: true},
	}

	e, l := difficultyProgression(early, 10), difficultyProgression(late, 10)
	if !(l > e) {
		t.Errorf("late progression %v should exceed early progression %v", l, e)
	}

	// weights 0.5 and 1.0: (0.5*1 + 1*0) / 1.5
	if want := 0.5 / 1.5; e != want {
		t.Errorf("early progression = %v, want %v", e, want)
	}

	wrongHard := []Answer{{Difficulty: DifficultyHard, IsCorrect: false}}
	if got := difficultyProgression(wrongHard, 10); got != 0.5 {
		t.Errorf("wrong hard progression = %v, want 0.5", got)
	}
}

func TestDifficultyProgressionUsesWindow(t *testing.T) {
	as := answers(DifficultyEasy, 0, repeat(true, 20)...)
	for i := 0; i < 10; i++ {
		as[i].Difficulty = DifficultyHard
	}
	if got := difficultyProgression(as, 10); got != 0 {
		t.Errorf("progression = %v, want 0 (hard answers are outside the window)", got)
	}
}

func TestCalculateIsSafeForConcurrentUse(t *testing.T) {
	e, err := NewEngine(DefaultParams())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	session := Session{Answers: answers(DifficultyMedium, 20, repeat(true, 6)...)}
	want := e.Calculate(session).TotalScore

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := e.Calculate(session).TotalScore; got != want {
				t.Errorf("TotalScore = %d, want %d", got, want)
			}
		}()
	}
	wg.Wait()
}
