// Package scoring turns a quiz session into a gamified score and a feature
// bundle for an external reinforcement-learning policy. Calculations are pure;
// the only state an Engine holds is its parameter set.
package scoring

import (
	"math"
	"math/rand/v2"
	"sync"
)

// Picker returns an index in [0, n). It chooses among motivational messages.
type Picker func(n int) int

type Option func(*Engine)

// WithPicker replaces the random message picker, mostly for tests.
func WithPicker(p Picker) Option {
	return func(e *Engine) {
		if p != nil {
			e.pick = p
		}
	}
}

type Engine struct {
	mu     sync.RWMutex
	params Params
	pick   Picker
}

func NewEngine(params Params, opts ...Option) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		params: params,
		pick:   rand.IntN,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Params returns a snapshot of the current parameters.
func (e *Engine) Params() Params {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.params
}

// UpdateParams merges u into the current parameters. An update that fails
// validation is rejected as a whole and the engine keeps its old parameters.
func (e *Engine) UpdateParams(u ParamsUpdate) (Params, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := u.Apply(e.params)
	if err := next.Validate(); err != nil {
		return e.params, err
	}
	e.params = next
	return next, nil
}

// tally is the unrounded accumulation of one pass over the answers.
type tally struct {
	total         int
	correct       int
	correctPoints float64
	difficulty    float64
	timeBonus     float64
	streakBonus   float64
	currentStreak int
	longestStreak int
	answerSeconds float64
}

func (e *Engine) Calculate(s Session) Result {
	p := e.Params()

	t := tallyAnswers(p, s.Answers)

	accuracy := 0.0
	if t.total > 0 {
		accuracy = float64(t.correct) / float64(t.total)
	}

	retentionSeconds := sanitizeSeconds(s.TotalTimeSpent)
	if p.DeriveRetentionFromAnswers {
		retentionSeconds = t.answerSeconds
	}
	retention := math.Floor(retentionSeconds/p.RetentionInterval) * p.RetentionBonusPoints

	base := t.correctPoints + t.difficulty
	total := base + retention + t.streakBonus + t.timeBonus

	res := Result{
		TotalScore:     round(total),
		BaseScore:      round(base),
		RetentionBonus: round(retention),
		StreakBonus:    round(t.streakBonus),
		CorrectAnswers: t.correct,
		TotalAnswers:   t.total,
		Accuracy:       math.Round(accuracy*100) / 100,
		CurrentStreak:  t.currentStreak,
		LongestStreak:  t.longestStreak,
		DetailedBreakdown: Breakdown{
			CorrectAnswerPoints: round(t.correctPoints),
			DifficultyBonus:     round(t.difficulty),
			RetentionBonus:      round(retention),
			StreakBonus:         round(t.streakBonus),
			TimeEfficiencyBonus: round(t.timeBonus),
		},
	}

	res.MotivationalMessage = motivationalMessage(e.pick, accuracy, t.currentStreak, t.total-t.correct)
	res.RLParameters = rlParameters(p, s.Answers, t, accuracy, retentionSeconds, res.TotalScore)

	return res
}

func tallyAnswers(p Params, answers []Answer) tally {
	t := tally{total: len(answers)}
	streak := 0

	for _, a := range answers {
		t.answerSeconds += sanitizeSeconds(a.TimeSpent)

		if !a.IsCorrect {
			streak = 0
			continue
		}

		t.correct++
		t.correctPoints += p.CorrectAnswerPoints
		if m, ok := p.DifficultyMultipliers.For(a.Difficulty); ok {
			t.difficulty += p.CorrectAnswerPoints * (m - 1)
		}
		t.timeBonus += timeEfficiencyBonus(p, a)

		streak++
		if streak > t.longestStreak {
			t.longestStreak = streak
		}
		if streak%p.StreakInterval == 0 {
			t.streakBonus += p.StreakBonusPoints
		}
	}

	t.currentStreak = streak
	return t
}

// timeEfficiencyBonus rewards a correct answer given at or under the
// difficulty's time threshold, scaling linearly from MaxTimeBonus at 0s to 0
// at the threshold.
func timeEfficiencyBonus(p Params, a Answer) float64 {
	threshold, ok := p.TimeThresholds.For(a.Difficulty)
	if !ok || threshold <= 0 {
		return 0
	}
	spent := sanitizeSeconds(a.TimeSpent)
	if spent > threshold {
		return 0
	}
	return math.Round(p.MaxTimeBonus * (threshold - spent) / threshold)
}

// MaxSeconds caps any single duration the engine accepts at one year.
const MaxSeconds = 365 * 24 * 60 * 60

func sanitizeSeconds(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Min(v, MaxSeconds)
}

// round saturates at math.MaxInt32. Scores are never negative.
func round(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Round(v))
}
