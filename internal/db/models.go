package db

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// User mirrors the users table.
type User struct {
	UserID       pgtype.UUID
	Email        pgtype.Text
	PasswordHash pgtype.Text
	DisplayName  string
	UserType     string
	Metadata     []byte
	CreatedAt    pgtype.Timestamptz
	LastLoginAt  pgtype.Timestamptz
}

// Question mirrors the questions table. Choices is the raw JSONB payload.
type Question struct {
	QuestionID      string
	ExamType        string
	Category        string
	Prompt          string
	Choices         []byte
	CorrectChoiceID string
	Explanation     pgtype.Text
}

// Attempt mirrors the attempts table. Score fields are null until submission.
type Attempt struct {
	AttemptID       pgtype.UUID
	UserID          pgtype.UUID
	ExamType        string
	Mode            string
	QuestionIDs     []string
	StartedAt       pgtype.Timestamptz
	ExpiresAt       pgtype.Timestamptz
	Status          string
	Score           pgtype.Float8
	CorrectCount    pgtype.Int4
	WrongCount      pgtype.Int4
	UnansweredCount pgtype.Int4
	Breakdown       []byte
	SubmittedAt     pgtype.Timestamptz
}

// Answer mirrors the answers table, keyed by (attempt_id, question_id).
type Answer struct {
	AttemptID  pgtype.UUID
	QuestionID string
	ChoiceID   string
	UpdatedAt  pgtype.Timestamptz
}
