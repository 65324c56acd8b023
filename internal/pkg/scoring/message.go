package scoring

import "fmt"

type messageBand string

const (
	bandPerfect   messageBand = "perfect"
	bandExcellent messageBand = "excellent"
	bandGood      messageBand = "good"
	bandNeedsWork messageBand = "needsWork"
)

var messagePools = map[messageBand][]string{
	bandPerfect: {
		"Outstanding! You nailed almost every question.",
		"Flawless work. You clearly own this material.",
		"Perfect run! Time to take on something harder.",
	},
	bandExcellent: {
		"Excellent job! You're mastering this topic.",
		"Great work, only a few slips along the way.",
		"Impressive session. Keep this momentum going.",
	},
	bandGood: {
		"Good effort! You're building a solid foundation.",
		"Nice progress. A bit more practice will make it stick.",
		"You're getting there. Keep at it!",
	},
	bandNeedsWork: {
		"Every expert was once a beginner. Keep practicing!",
		"Tough session, but each attempt teaches you something.",
		"Don't give up. Review the basics and try again.",
	},
}

func accuracyBand(accuracy float64) messageBand {
	switch {
	case accuracy >= 0.95:
		return bandPerfect
	case accuracy >= 0.8:
		return bandExcellent
	case accuracy >= 0.6:
		return bandGood
	}
	return bandNeedsWork
}

func motivationalMessage(pick Picker, accuracy float64, streak, wrong int) string {
	pool := messagePools[accuracyBand(accuracy)]
	i := pick(len(pool))
	if i < 0 || i >= len(pool) {
		i = 0
	}
	msg := pool[i]

	switch {
	case streak >= 5:
		msg += fmt.Sprintf(" You're on fire with a %d-answer streak!", streak)
	case streak >= 3:
		msg += fmt.Sprintf(" Nice streak of %d correct answers!", streak)
	}

	if accuracy < 0.8 && wrong > 0 {
		msg += " Mistakes are part of learning, so review the ones you missed."
	}
	return msg
}
