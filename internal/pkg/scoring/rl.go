package scoring

import "math"

const (
	// streakSaturation is the streak length at which the normalized streak feature reaches 1.
	streakSaturation = 10

	foundationTopic = "foundation_concepts"
	generalSubject  = "general"
)

func rlParameters(p Params, answers []Answer, t tally, accuracy, retentionSeconds float64, totalScore int) RLParameters {
	engagement := 0.0
	if t.total > 0 {
		avg := t.answerSeconds / float64(t.total)
		engagement = math.Min(1, avg/p.EngagementBaseline)
	}

	state := StateFeatures{
		Accuracy:              accuracy,
		StreakLength:          math.Min(1, float64(t.currentStreak)/streakSaturation),
		RetentionRate:         math.Min(1, retentionSeconds/p.RetentionInterval),
		EngagementLevel:       engagement,
		DifficultyProgression: difficultyProgression(answers, p.ProgressionWindow),
	}

	action := ActionSpace{
		SuggestedDifficulty:  suggestDifficulty(accuracy, t.currentStreak),
		RecommendedBreakTime: 5,
		NextTopicSuggestion:  nextTopic(answers, accuracy),
	}
	if engagement < 0.3 {
		action.RecommendedBreakTime = 10
	}

	return RLParameters{
		RewardSignal:  math.Max(0, math.Min(1, float64(totalScore)/p.RewardScale)),
		StateFeatures: state,
		ActionSpace:   action,
	}
}

func difficultyScore(d Difficulty) float64 {
	switch d {
	case DifficultyHard:
		return 1
	case DifficultyMedium:
		return 0.5
	}
	return 0
}

// difficultyProgression is a recency-weighted average over the last window
// answers. The i-th answer of the window (oldest first) weighs (i+1)/window and
// contributes its difficulty score, halved when the answer was wrong.
func difficultyProgression(answers []Answer, window int) float64 {
	if len(answers) == 0 || window <= 0 {
		return 0
	}
	if window > len(answers) {
		window = len(answers)
	}
	recent := answers[len(answers)-window:]

	var sum, weights float64
	for i, a := range recent {
		w := float64(i+1) / float64(window)
		factor := 0.5
		if a.IsCorrect {
			factor = 1
		}
		sum += w * difficultyScore(a.Difficulty) * factor
		weights += w
	}
	return sum / weights
}

func suggestDifficulty(accuracy float64, streak int) Difficulty {
	switch {
	case accuracy >= 0.9 && streak >= 5:
		return DifficultyHard
	case accuracy < 0.6:
		return DifficultyEasy
	}
	return DifficultyMedium
}

type subjectStat struct {
	name    string
	correct int
	total   int
}

func (s subjectStat) accuracy() float64 {
	return float64(s.correct) / float64(s.total)
}

// nextTopic suggests reviewing the weakest subject while overall accuracy is
// below 0.7 and advancing the strongest one otherwise. Ties go to the subject
// seen first in the session.
func nextTopic(answers []Answer, accuracy float64) string {
	if len(answers) == 0 {
		return foundationTopic
	}

	index := map[string]int{}
	stats := []subjectStat{}
	for _, a := range answers {
		name := a.Subject
		if name == "" {
			name = generalSubject
		}
		i, ok := index[name]
		if !ok {
			i = len(stats)
			index[name] = i
			stats = append(stats, subjectStat{name: name})
		}
		stats[i].total++
		if a.IsCorrect {
			stats[i].correct++
		}
	}

	weakest, strongest := stats[0], stats[0]
	for _, s := range stats[1:] {
		if s.accuracy() < weakest.accuracy() {
			weakest = s
		}
		if s.accuracy() > strongest.accuracy() {
			strongest = s
		}
	}

	if accuracy < 0.7 {
		return "review_" + weakest.name
	}
	return "advance_" + strongest.name
}
