package scoring

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Answer is a single quiz response. TimeSpent is in seconds.
type Answer struct {
	QuestionID string     `json:"questionId"`
	IsCorrect  bool       `json:"isCorrect"`
	TimeSpent  float64    `json:"timeSpent"`
	Difficulty Difficulty `json:"difficulty"`
	Subject    string     `json:"subject"`
	Timestamp  time.Time  `json:"timestamp"`
}

// Session is an ordered run of answers. TotalTimeSpent is the caller's
// wall-clock session duration in seconds and is not derived from Answers
// unless Params.DeriveRetentionFromAnswers is set.
type Session struct {
	SessionID        string     `json:"sessionId"`
	StudentID        string     `json:"studentId"`
	Answers          []Answer   `json:"answers"`
	TotalTimeSpent   float64    `json:"totalTimeSpent"`
	SessionStartTime time.Time  `json:"sessionStartTime"`
	SessionEndTime   *time.Time `json:"sessionEndTime,omitempty"`
}

type Breakdown struct {
	CorrectAnswerPoints int `json:"correctAnswerPoints"`
	DifficultyBonus     int `json:"difficultyBonus"`
	RetentionBonus      int `json:"retentionBonus"`
	StreakBonus         int `json:"streakBonus"`
	TimeEfficiencyBonus int `json:"timeEfficiencyBonus"`
}

type StateFeatures struct {
	Accuracy              float64 `json:"accuracy"`
	StreakLength          float64 `json:"streakLength"`
	RetentionRate         float64 `json:"retentionRate"`
	EngagementLevel       float64 `json:"engagementLevel"`
	DifficultyProgression float64 `json:"difficultyProgression"`
}

type ActionSpace struct {
	SuggestedDifficulty Difficulty `json:"suggestedDifficulty"`
	// RecommendedBreakTime is in minutes.
	RecommendedBreakTime int    `json:"recommendedBreakTime"`
	NextTopicSuggestion  string `json:"nextTopicSuggestion"`
}

// RLParameters is the feature bundle handed to an external policy.
type RLParameters struct {
	RewardSignal  float64       `json:"rewardSignal"`
	StateFeatures StateFeatures `json:"stateFeatures"`
	ActionSpace   ActionSpace   `json:"actionSpace"`
}

type Result struct {
	TotalScore          int          `json:"totalScore"`
	BaseScore           int          `json:"baseScore"`
	RetentionBonus      int          `json:"retentionBonus"`
	StreakBonus         int          `json:"streakBonus"`
	CorrectAnswers      int          `json:"correctAnswers"`
	TotalAnswers        int          `json:"totalAnswers"`
	Accuracy            float64      `json:"accuracy"`
	CurrentStreak       int          `json:"currentStreak"`
	LongestStreak       int          `json:"longestStreak"`
	MotivationalMessage string       `json:"motivationalMessage"`
	DetailedBreakdown   Breakdown    `json:"detailedBreakdown"`
	RLParameters        RLParameters `json:"rlParameters"`
}
