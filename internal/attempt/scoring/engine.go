package scoring

import (
	"math"
)

// QuestionKey is the authoritative answer data for one question.
type QuestionKey struct {
	CorrectChoiceID string
	Category        string
}

// CategoryBreakdown is the per-category correct/total pair for one attempt.
type CategoryBreakdown struct {
	Category string `json:"category"`
	Correct  int    `json:"correct"`
	Total    int    `json:"total"`
}

// Result holds the computed final score for an attempt.
type Result struct {
	Score           float64
	CorrectCount    int
	WrongCount      int
	UnansweredCount int
	Breakdown       []CategoryBreakdown
}

// Score tallies an attempt. questionIDs is the ordered list selected at
// creation (duplicates included), key maps question ID to its authoritative
// correct choice and category, and answers maps question ID to the latest
// recorded choice. IDs missing from key are a data inconsistency and are
// skipped entirely; they still count toward the score denominator, which is
// len(questionIDs). The score is the correct percentage rounded to one
// decimal, half away from zero, and zero for an empty question list.
// Breakdown entries appear in first-encountered category order.
func Score(questionIDs []string, key map[string]QuestionKey, answers map[string]string) Result {
	var res Result
	perCategory := map[string]int{}

	for _, qID := range questionIDs {
		q, ok := key[qID]
		if !ok {
			continue
		}

		idx, ok := perCategory[q.Category]
		if !ok {
			idx = len(res.Breakdown)
			perCategory[q.Category] = idx
			res.Breakdown = append(res.Breakdown, CategoryBreakdown{Category: q.Category})
		}
		res.Breakdown[idx].Total++

		choice, answered := answers[qID]
		switch {
		case !answered:
			res.UnansweredCount++
		case choice == q.CorrectChoiceID:
			res.CorrectCount++
			res.Breakdown[idx].Correct++
		default:
			res.WrongCount++
		}
	}

	if total := len(questionIDs); total > 0 {
		res.Score = round1(float64(res.CorrectCount) / float64(total) * 100)
	}
	return res
}

// round1 rounds to one decimal place, half away from zero.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
