package scoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func tenQuestionKey() map[string]QuestionKey {
	key := map[string]QuestionKey{}
	for i := 0; i < 10; i++ {
		cat := "Numerical Ability"
		if i >= 5 {
			cat = "Verbal Ability"
		}
		key[fmt.Sprintf("q%d", i)] = QuestionKey{CorrectChoiceID: "a", Category: cat}
	}
	return key
}

func TestScoreFormula(t *testing.T) {
	// 10 questions: 7 correct, 1 wrong, 2 unanswered -> 70.0
	ids := make([]string, 10)
	answers := map[string]string{}
	for i := 0; i < 10; i++ {
		ids[i] = fmt.Sprintf("q%d", i)
	}
	for i := 0; i < 7; i++ {
		answers[ids[i]] = "a"
	}
	answers[ids[7]] = "b"

	res := Score(ids, tenQuestionKey(), answers)
	assert.Equal(t, 70.0, res.Score)
	assert.Equal(t, 7, res.CorrectCount)
	assert.Equal(t, 1, res.WrongCount)
	assert.Equal(t, 2, res.UnansweredCount)
}

func TestScoreBreakdownSums(t *testing.T) {
	ids := []string{"q0", "q1", "q5", "q6", "q7"}
	answers := map[string]string{"q0": "a", "q5": "a", "q6": "b"}

	res := Score(ids, tenQuestionKey(), answers)

	totalSum, correctSum := 0, 0
	for _, b := range res.Breakdown {
		totalSum += b.Total
		correctSum += b.Correct
	}
	assert.Equal(t, len(ids), totalSum, "breakdown totals cover every resolvable question")
	assert.Equal(t, res.CorrectCount, correctSum)

	// First-encountered category order.
	assert.Equal(t, "Numerical Ability", res.Breakdown[0].Category)
	assert.Equal(t, "Verbal Ability", res.Breakdown[1].Category)
}

func TestScoreUnresolvableIDsSkippedButCounted(t *testing.T) {
	// Unknown IDs don't appear in any tally, yet the denominator stays the
	// full question list length.
	ids := []string{"q0", "ghost-1", "ghost-2", "q1"}
	answers := map[string]string{"q0": "a", "q1": "a"}

	res := Score(ids, tenQuestionKey(), answers)
	assert.Equal(t, 2, res.CorrectCount)
	assert.Equal(t, 0, res.WrongCount)
	assert.Equal(t, 0, res.UnansweredCount)
	assert.Equal(t, 50.0, res.Score, "2/4, not 2/2")

	totalSum := 0
	for _, b := range res.Breakdown {
		totalSum += b.Total
	}
	assert.Equal(t, 2, totalSum)
}

func TestScoreEmptyAttempt(t *testing.T) {
	res := Score(nil, tenQuestionKey(), nil)
	assert.Equal(t, 0.0, res.Score)
	assert.Zero(t, res.CorrectCount)
	assert.Zero(t, res.WrongCount)
	assert.Zero(t, res.UnansweredCount)
	assert.Empty(t, res.Breakdown)
}

func TestScoreDeterminism(t *testing.T) {
	ids := []string{"q0", "q1", "q2", "q5"}
	answers := map[string]string{"q0": "a", "q1": "x", "q5": "a"}

	first := Score(ids, tenQuestionKey(), answers)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(ids, tenQuestionKey(), answers))
	}
}

func TestRound1HalfAwayFromZero(t *testing.T) {
	// 1 correct of 16 = 6.25% -> 6.3 on the tenths digit.
	ids := make([]string, 16)
	key := map[string]QuestionKey{}
	for i := range ids {
		ids[i] = fmt.Sprintf("r%d", i)
		key[ids[i]] = QuestionKey{CorrectChoiceID: "a", Category: "General Information"}
	}
	res := Score(ids, key, map[string]string{"r0": "a"})
	assert.Equal(t, 6.3, res.Score)
}

func TestScoreDuplicateQuestionIDs(t *testing.T) {
	// Wraparound sampling can repeat a question; each occurrence tallies.
	ids := []string{"q0", "q0", "q1"}
	res := Score(ids, tenQuestionKey(), map[string]string{"q0": "a"})
	assert.Equal(t, 2, res.CorrectCount)
	assert.Equal(t, 1, res.UnansweredCount)
	assert.Equal(t, 66.7, res.Score)
	assert.Equal(t, 3, res.Breakdown[0].Total)
}
