package repository

import (
	"context"

	"github.com/cscreviewph/exam-platform/internal/db"
)

type questionStore interface {
	UpsertQuestion(ctx context.Context, arg db.UpsertQuestionParams) error
	ListQuestionIDsByExamType(ctx context.Context, examType string) ([]string, error)
	GetQuestionsByIDs(ctx context.Context, ids []string) ([]db.Question, error)
}

// QuestionRepository wraps queries for the static question bank.
type QuestionRepository struct {
	store questionStore
}

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// Upsert writes a seeded question, replacing an existing row with the same ID.
func (r *QuestionRepository) Upsert(ctx context.Context, params db.UpsertQuestionParams) error {
	return r.store.UpsertQuestion(ctx, params)
}

// ListIDs returns every question ID for an exam type (the sampling pool).
func (r *QuestionRepository) ListIDs(ctx context.Context, examType string) ([]string, error) {
	return r.store.ListQuestionIDsByExamType(ctx, examType)
}

// GetByIDs performs a batched lookup by identifier set.
func (r *QuestionRepository) GetByIDs(ctx context.Context, ids []string) ([]db.Question, error) {
	return r.store.GetQuestionsByIDs(ctx, ids)
}
