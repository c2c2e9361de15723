package attempt

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cscreviewph/exam-platform/internal/attempt/scoring"
	"github.com/cscreviewph/exam-platform/internal/db"
)

// Attempt status values. The only transition is in_progress -> submitted.
const (
	StatusInProgress = "in_progress"
	StatusSubmitted  = "submitted"
)

var (
	ErrNotFound         = errors.New("attempt not found")
	ErrForbidden        = errors.New("attempt belongs to another user")
	ErrAlreadySubmitted = errors.New("attempt already submitted")
	ErrEmptyBank        = errors.New("question bank is empty for exam type")
)

// Attempt is one user's instance of taking an exam. Score fields are nil
// until the attempt is submitted.
type Attempt struct {
	ID              uuid.UUID                   `json:"id"`
	UserID          uuid.UUID                   `json:"user_id"`
	ExamType        string                      `json:"exam_type"`
	Mode            string                      `json:"mode"`
	QuestionIDs     []string                    `json:"question_ids"`
	StartedAt       time.Time                   `json:"started_at"`
	ExpiresAt       *time.Time                  `json:"expires_at,omitempty"`
	Status          string                      `json:"status"`
	Score           *float64                    `json:"score,omitempty"`
	CorrectCount    *int                        `json:"correct_count,omitempty"`
	WrongCount      *int                        `json:"wrong_count,omitempty"`
	UnansweredCount *int                        `json:"unanswered_count,omitempty"`
	Breakdown       []scoring.CategoryBreakdown `json:"breakdown,omitempty"`
	SubmittedAt     *time.Time                  `json:"submitted_at,omitempty"`
}

// FinalResult is returned once by a successful finalize.
type FinalResult struct {
	Score           float64                     `json:"score"`
	CorrectCount    int                         `json:"correct_count"`
	WrongCount      int                         `json:"wrong_count"`
	UnansweredCount int                         `json:"unanswered_count"`
	Breakdown       []scoring.CategoryBreakdown `json:"breakdown"`
}

func fromRow(row db.Attempt) (Attempt, error) {
	a := Attempt{
		ID:          uuid.UUID(row.AttemptID.Bytes),
		UserID:      uuid.UUID(row.UserID.Bytes),
		ExamType:    row.ExamType,
		Mode:        row.Mode,
		QuestionIDs: row.QuestionIDs,
		StartedAt:   row.StartedAt.Time,
		Status:      row.Status,
	}
	if row.ExpiresAt.Valid {
		t := row.ExpiresAt.Time
		a.ExpiresAt = &t
	}
	if row.Score.Valid {
		v := row.Score.Float64
		a.Score = &v
	}
	if row.CorrectCount.Valid {
		v := int(row.CorrectCount.Int32)
		a.CorrectCount = &v
	}
	if row.WrongCount.Valid {
		v := int(row.WrongCount.Int32)
		a.WrongCount = &v
	}
	if row.UnansweredCount.Valid {
		v := int(row.UnansweredCount.Int32)
		a.UnansweredCount = &v
	}
	if row.SubmittedAt.Valid {
		t := row.SubmittedAt.Time
		a.SubmittedAt = &t
	}
	if len(row.Breakdown) > 0 {
		if err := json.Unmarshal(row.Breakdown, &a.Breakdown); err != nil {
			return Attempt{}, fmt.Errorf("decode breakdown: %w", err)
		}
	}
	return a, nil
}
