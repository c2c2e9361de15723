package question

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/cscreviewph/exam-platform/internal/exam"
)

//go:embed data/questions_csc_pro.json
var rawProQuestions []byte

//go:embed data/questions_csc_subpro.json
var rawSubProQuestions []byte

// embeddedBank decodes the bundled question sets, keyed by exam type.
func embeddedBank() (map[string][]Question, error) {
	bank := map[string][]Question{}
	for examType, raw := range map[string][]byte{
		exam.TypePro:    rawProQuestions,
		exam.TypeSubPro: rawSubProQuestions,
	} {
		var qs []Question
		if err := json.Unmarshal(raw, &qs); err != nil {
			return nil, fmt.Errorf("decode %s question data: %w", examType, err)
		}
		bank[examType] = qs
	}
	return bank, nil
}
