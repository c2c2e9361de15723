package question

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/cscreviewph/exam-platform/internal/db"
	"github.com/cscreviewph/exam-platform/internal/exam"
)

// PoolCache defines bank-cache behavior (implemented by the Redis BankCache).
type PoolCache interface {
	GetIDs(ctx context.Context, examType string) ([]string, error)
	SetIDs(ctx context.Context, examType string, ids []string) error
	Invalidate(ctx context.Context, examType string) error
}

type bankRepo interface {
	Upsert(ctx context.Context, params db.UpsertQuestionParams) error
	ListIDs(ctx context.Context, examType string) ([]string, error)
	GetByIDs(ctx context.Context, ids []string) ([]db.Question, error)
}

// Service provides read access to the seeded question bank plus the seeding
// operation itself.
type Service struct {
	repo  bankRepo
	cache PoolCache
}

func NewService(repo bankRepo, cache PoolCache) *Service {
	return &Service{repo: repo, cache: cache}
}

// BankIDs returns the full candidate pool for an exam type, cache first.
func (s *Service) BankIDs(ctx context.Context, examType string) ([]string, error) {
	if s.cache != nil {
		if ids, err := s.cache.GetIDs(ctx, examType); err == nil && ids != nil {
			return ids, nil
		}
	}

	ids, err := s.repo.ListIDs(ctx, examType)
	if err != nil {
		return nil, fmt.Errorf("list question bank: %w", err)
	}

	if s.cache != nil && len(ids) > 0 {
		_ = s.cache.SetIDs(ctx, examType, ids)
	}
	return ids, nil
}

// GetByIDs performs a batched lookup and returns resolved questions keyed by
// ID. Duplicate input IDs collapse to one lookup; unknown IDs are simply
// absent from the result.
func (s *Service) GetByIDs(ctx context.Context, ids []string) (map[string]Question, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	if len(unique) == 0 {
		return map[string]Question{}, nil
	}

	rows, err := s.repo.GetByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("batched question lookup: %w", err)
	}

	out := make(map[string]Question, len(rows))
	for _, row := range rows {
		q, err := toDomain(row)
		if err != nil {
			return nil, err
		}
		out[q.ID] = q
	}
	return out, nil
}

// Seed writes the embedded question sets into the bank, replacing rows with
// matching IDs, and invalidates the cached pools.
func (s *Service) Seed(ctx context.Context) (SeedSummary, error) {
	bank, err := embeddedBank()
	if err != nil {
		return SeedSummary{}, err
	}

	var summary SeedSummary
	for examType, questions := range bank {
		for _, q := range questions {
			choices, err := json.Marshal(q.Choices)
			if err != nil {
				return SeedSummary{}, fmt.Errorf("encode choices for %s: %w", q.ID, err)
			}
			explanation := pgtype.Text{}
			if q.Explanation != "" {
				explanation = pgtype.Text{String: q.Explanation, Valid: true}
			}
			if err := s.repo.Upsert(ctx, db.UpsertQuestionParams{
				QuestionID:      q.ID,
				ExamType:        q.ExamType,
				Category:        q.Category,
				Prompt:          q.Prompt,
				Choices:         choices,
				CorrectChoiceID: q.CorrectChoiceID,
				Explanation:     explanation,
			}); err != nil {
				return SeedSummary{}, fmt.Errorf("seed question %s: %w", q.ID, err)
			}
			summary.Seeded++
		}
		switch examType {
		case exam.TypePro:
			summary.Pro = len(questions)
		case exam.TypeSubPro:
			summary.SubPro = len(questions)
		}
		if s.cache != nil {
			_ = s.cache.Invalidate(ctx, examType)
		}
	}
	return summary, nil
}

func toDomain(row db.Question) (Question, error) {
	var choices []Choice
	if len(row.Choices) > 0 {
		if err := json.Unmarshal(row.Choices, &choices); err != nil {
			return Question{}, fmt.Errorf("decode choices for %s: %w", row.QuestionID, err)
		}
	}
	q := Question{
		ID:              row.QuestionID,
		ExamType:        row.ExamType,
		Category:        row.Category,
		Prompt:          row.Prompt,
		Choices:         choices,
		CorrectChoiceID: row.CorrectChoiceID,
	}
	if row.Explanation.Valid {
		q.Explanation = row.Explanation.String
	}
	return q, nil
}
