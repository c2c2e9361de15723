package exam

import "fmt"

// Exam type constants (Philippine Civil Service tracks).
const (
	TypePro    = "CSC_PRO"
	TypeSubPro = "CSC_SUBPRO"
)

// Mode constants.
const (
	ModeSimulation = "simulation"
	ModePractice   = "practice"
)

// ModePlan holds the question count and time limit for one mode.
// TimeLimitMinutes is zero for untimed modes.
type ModePlan struct {
	QuestionCount    int `json:"question_count"`
	TimeLimitMinutes int `json:"time_limit_minutes,omitempty"`
}

// Blueprint is the static per-exam-type configuration. Read-only at runtime.
type Blueprint struct {
	ExamType   string   `json:"exam_type"`
	Simulation ModePlan `json:"simulation"`
	Practice   ModePlan `json:"practice"`
}

// Blueprints mirror the official CSC exam composition: full-length timed
// simulations, shorter untimed practice sets.
var blueprints = []Blueprint{
	{
		ExamType:   TypePro,
		Simulation: ModePlan{QuestionCount: 170, TimeLimitMinutes: 180},
		Practice:   ModePlan{QuestionCount: 30},
	},
	{
		ExamType:   TypeSubPro,
		Simulation: ModePlan{QuestionCount: 165, TimeLimitMinutes: 165},
		Practice:   ModePlan{QuestionCount: 30},
	},
}

// ErrUnknownExamType is returned when no blueprint exists for an exam type.
var ErrUnknownExamType = fmt.Errorf("unknown exam type")

// ErrUnknownMode is returned for modes other than simulation/practice.
var ErrUnknownMode = fmt.Errorf("unknown exam mode")

// All returns every configured blueprint.
func All() []Blueprint {
	out := make([]Blueprint, len(blueprints))
	copy(out, blueprints)
	return out
}

// BlueprintFor looks up the blueprint for an exam type.
func BlueprintFor(examType string) (Blueprint, error) {
	for _, bp := range blueprints {
		if bp.ExamType == examType {
			return bp, nil
		}
	}
	return Blueprint{}, fmt.Errorf("%w: %s", ErrUnknownExamType, examType)
}

// PlanFor resolves the mode plan for an exam type and mode.
func PlanFor(examType, mode string) (ModePlan, error) {
	bp, err := BlueprintFor(examType)
	if err != nil {
		return ModePlan{}, err
	}
	switch mode {
	case ModeSimulation:
		return bp.Simulation, nil
	case ModePractice:
		return bp.Practice, nil
	default:
		return ModePlan{}, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
}
