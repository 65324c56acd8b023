package scoring

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// PerDifficulty holds one value for each difficulty level.
type PerDifficulty struct {
	Easy   float64 `json:"easy" mapstructure:"easy"`
	Medium float64 `json:"medium" mapstructure:"medium"`
	Hard   float64 `json:"hard" mapstructure:"hard"`
}

// For returns the value for d. ok is false for unknown difficulties.
func (p PerDifficulty) For(d Difficulty) (v float64, ok bool) {
	if !d.Valid() {
		return 0, false
	}
	switch d {
	case DifficultyEasy:
		return p.Easy, true
	case DifficultyMedium:
		return p.Medium, true
	}
	return p.Hard, true
}

// Params are the tunable constants of the engine. Times are in seconds.
type Params struct {
	CorrectAnswerPoints        float64       `json:"correctAnswerPoints" mapstructure:"correct_answer_points"`
	DifficultyMultipliers      PerDifficulty `json:"difficultyMultipliers" mapstructure:"difficulty_multipliers"`
	RetentionInterval          float64       `json:"retentionInterval" mapstructure:"retention_interval"`
	RetentionBonusPoints       float64       `json:"retentionBonusPoints" mapstructure:"retention_bonus_points"`
	StreakInterval             int           `json:"streakInterval" mapstructure:"streak_interval"`
	StreakBonusPoints          float64       `json:"streakBonusPoints" mapstructure:"streak_bonus_points"`
	TimeThresholds             PerDifficulty `json:"timeThresholds" mapstructure:"time_thresholds"`
	MaxTimeBonus               float64       `json:"maxTimeBonus" mapstructure:"max_time_bonus"`
	RewardScale                float64       `json:"rewardScale" mapstructure:"reward_scale"`
	ProgressionWindow          int           `json:"progressionWindow" mapstructure:"progression_window"`
	EngagementBaseline         float64       `json:"engagementBaseline" mapstructure:"engagement_baseline"`
	DeriveRetentionFromAnswers bool          `json:"deriveRetentionFromAnswers" mapstructure:"derive_retention_from_answers"`
}

func DefaultParams() Params {
	return Params{
		CorrectAnswerPoints:   10,
		DifficultyMultipliers: PerDifficulty{Easy: 1.0, Medium: 1.5, Hard: 2.0},
		RetentionInterval:     2700,
		RetentionBonusPoints:  10,
		StreakInterval:        3,
		StreakBonusPoints:     30,
		TimeThresholds:        PerDifficulty{Easy: 30, Medium: 60, Hard: 120},
		MaxTimeBonus:          5,
		RewardScale:           1000,
		ProgressionWindow:     10,
		EngagementBaseline:    60,
	}
}

var ErrInvalidParams = errors.New("invalid scoring parameters")

// ParamsError lists every field that failed validation.
type ParamsError struct {
	Fields map[string]string
}

func (e *ParamsError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, name := range paramFieldOrder {
		if msg, ok := e.Fields[name]; ok {
			parts = append(parts, name+" "+msg)
		}
	}
	return fmt.Sprintf("%s: %s", ErrInvalidParams, strings.Join(parts, "; "))
}

func (e *ParamsError) Unwrap() error { return ErrInvalidParams }

var paramFieldOrder = []string{
	"correctAnswerPoints",
	"difficultyMultipliers.easy",
	"difficultyMultipliers.medium",
	"difficultyMultipliers.hard",
	"retentionInterval",
	"retentionBonusPoints",
	"streakInterval",
	"streakBonusPoints",
	"timeThresholds.easy",
	"timeThresholds.medium",
	"timeThresholds.hard",
	"maxTimeBonus",
	"rewardScale",
	"progressionWindow",
	"engagementBaseline",
}

func (p Params) Validate() error {
	fields := map[string]string{}

	finite := func(name string, v float64) bool {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			fields[name] = "must be a finite number"
			return false
		}
		return true
	}
	nonNegative := func(name string, v float64) {
		if finite(name, v) && v < 0 {
			fields[name] = "must not be negative"
		}
	}
	positive := func(name string, v float64) {
		if finite(name, v) && v <= 0 {
			fields[name] = "must be greater than zero"
		}
	}
	atLeastOne := func(name string, v float64) {
		if finite(name, v) && v < 1 {
			fields[name] = "must be at least 1"
		}
	}

	nonNegative("correctAnswerPoints", p.CorrectAnswerPoints)
	atLeastOne("difficultyMultipliers.easy", p.DifficultyMultipliers.Easy)
	atLeastOne("difficultyMultipliers.medium", p.DifficultyMultipliers.Medium)
	atLeastOne("difficultyMultipliers.hard", p.DifficultyMultipliers.Hard)
	positive("retentionInterval", p.RetentionInterval)
	nonNegative("retentionBonusPoints", p.RetentionBonusPoints)
	positive("streakInterval", float64(p.StreakInterval))
	nonNegative("streakBonusPoints", p.StreakBonusPoints)
	positive("timeThresholds.easy", p.TimeThresholds.Easy)
	positive("timeThresholds.medium", p.TimeThresholds.Medium)
	positive("timeThresholds.hard", p.TimeThresholds.Hard)
	nonNegative("maxTimeBonus", p.MaxTimeBonus)
	positive("rewardScale", p.RewardScale)
	positive("progressionWindow", float64(p.ProgressionWindow))
	positive("engagementBaseline", p.EngagementBaseline)

	if len(fields) > 0 {
		return &ParamsError{Fields: fields}
	}
	return nil
}

type PerDifficultyUpdate struct {
	Easy   *float64 `json:"easy"`
	Medium *float64 `json:"medium"`
	Hard   *float64 `json:"hard"`
}

func (u *PerDifficultyUpdate) apply(p *PerDifficulty) {
	if u == nil {
		return
	}
	if u.Easy != nil {
		p.Easy = *u.Easy
	}
	if u.Medium != nil {
		p.Medium = *u.Medium
	}
	if u.Hard != nil {
		p.Hard = *u.Hard
	}
}

// ParamsUpdate is a partial override. Nil fields keep their current value.
type ParamsUpdate struct {
	CorrectAnswerPoints        *float64             `json:"correctAnswerPoints"`
	DifficultyMultipliers      *PerDifficultyUpdate `json:"difficultyMultipliers"`
	RetentionInterval          *float64             `json:"retentionInterval"`
	RetentionBonusPoints       *float64             `json:"retentionBonusPoints"`
	StreakInterval             *int                 `json:"streakInterval"`
	StreakBonusPoints          *float64             `json:"streakBonusPoints"`
	TimeThresholds             *PerDifficultyUpdate `json:"timeThresholds"`
	MaxTimeBonus               *float64             `json:"maxTimeBonus"`
	RewardScale                *float64             `json:"rewardScale"`
	ProgressionWindow          *int                 `json:"progressionWindow"`
	EngagementBaseline         *float64             `json:"engagementBaseline"`
	DeriveRetentionFromAnswers *bool                `json:"deriveRetentionFromAnswers"`
}

// Apply returns a copy of p with the update merged in. The result is not validated.
func (u ParamsUpdate) Apply(p Params) Params {
	if u.CorrectAnswerPoints != nil {
		p.CorrectAnswerPoints = *u.CorrectAnswerPoints
	}
	u.DifficultyMultipliers.apply(&p.DifficultyMultipliers)
	if u.RetentionInterval != nil {
		p.RetentionInterval = *u.RetentionInterval
	}
	if u.RetentionBonusPoints != nil {
		p.RetentionBonusPoints = *u.RetentionBonusPoints
	}
	if u.StreakInterval != nil {
		p.StreakInterval = *u.StreakInterval
	}
	if u.StreakBonusPoints != nil {
		p.StreakBonusPoints = *u.StreakBonusPoints
	}
	u.TimeThresholds.apply(&p.TimeThresholds)
	if u.MaxTimeBonus != nil {
		p.MaxTimeBonus = *u.MaxTimeBonus
	}
	if u.RewardScale != nil {
		p.RewardScale = *u.RewardScale
	}
	if u.ProgressionWindow != nil {
		p.ProgressionWindow = *u.ProgressionWindow
	}
	if u.EngagementBaseline != nil {
		p.EngagementBaseline = *u.EngagementBaseline
	}
	if u.DeriveRetentionFromAnswers != nil {
		p.DeriveRetentionFromAnswers = *u.DeriveRetentionFromAnswers
	}
	return p
}
