package question

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cscreviewph/exam-platform/internal/db"
	"github.com/cscreviewph/exam-platform/internal/exam"
)

type stubBankRepo struct {
	upserted []db.UpsertQuestionParams
	listIDs  func(ctx context.Context, examType string) ([]string, error)
	getByIDs func(ctx context.Context, ids []string) ([]db.Question, error)
}

func (s *stubBankRepo) Upsert(ctx context.Context, params db.UpsertQuestionParams) error {
	s.upserted = append(s.upserted, params)
	return nil
}

func (s *stubBankRepo) ListIDs(ctx context.Context, examType string) ([]string, error) {
	return s.listIDs(ctx, examType)
}

func (s *stubBankRepo) GetByIDs(ctx context.Context, ids []string) ([]db.Question, error) {
	return s.getByIDs(ctx, ids)
}

type memoryPoolCache struct {
	store       map[string][]string
	invalidated []string
}

func newMemoryPoolCache() *memoryPoolCache {
	return &memoryPoolCache{store: map[string][]string{}}
}

func (c *memoryPoolCache) GetIDs(_ context.Context, examType string) ([]string, error) {
	return c.store[examType], nil
}

func (c *memoryPoolCache) SetIDs(_ context.Context, examType string, ids []string) error {
	c.store[examType] = ids
	return nil
}

func (c *memoryPoolCache) Invalidate(_ context.Context, examType string) error {
	c.invalidated = append(c.invalidated, examType)
	delete(c.store, examType)
	return nil
}

func TestBankIDsUsesCache(t *testing.T) {
	calls := 0
	repo := &stubBankRepo{
		listIDs: func(ctx context.Context, examType string) ([]string, error) {
			calls++
			return []string{"pro-0001", "pro-0002"}, nil
		},
	}
	cache := newMemoryPoolCache()
	service := NewService(repo, cache)

	ids, err := service.BankIDs(context.Background(), exam.TypePro)
	assert.NoError(t, err)
	assert.Equal(t, []string{"pro-0001", "pro-0002"}, ids)

	ids, err = service.BankIDs(context.Background(), exam.TypePro)
	assert.NoError(t, err)
	assert.Equal(t, []string{"pro-0001", "pro-0002"}, ids)
	assert.Equal(t, 1, calls, "second read should hit the cache")
}

func TestBankIDsRepoError(t *testing.T) {
	repo := &stubBankRepo{
		listIDs: func(ctx context.Context, examType string) ([]string, error) {
			return nil, errors.New("db down")
		},
	}
	service := NewService(repo, nil)

	_, err := service.BankIDs(context.Background(), exam.TypePro)
	assert.Error(t, err)
}

func TestGetByIDsDeduplicatesAndSkipsUnknown(t *testing.T) {
	var requested []string
	repo := &stubBankRepo{
		getByIDs: func(ctx context.Context, ids []string) ([]db.Question, error) {
			requested = ids
			return []db.Question{
				{QuestionID: "q1", ExamType: exam.TypePro, Category: "Verbal Ability",
					Prompt: "p", Choices: []byte(`[{"id":"a","text":"A"}]`), CorrectChoiceID: "a"},
			}, nil
		},
	}
	service := NewService(repo, nil)

	got, err := service.GetByIDs(context.Background(), []string{"q1", "q1", "ghost"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"q1", "ghost"}, requested, "duplicate IDs collapse to one lookup")
	assert.Len(t, got, 1)
	assert.Equal(t, "a", got["q1"].CorrectChoiceID)
	_, found := got["ghost"]
	assert.False(t, found)
}

func TestGetByIDsEmptyInput(t *testing.T) {
	service := NewService(&stubBankRepo{}, nil)
	got, err := service.GetByIDs(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestSeedWritesEmbeddedBank(t *testing.T) {
	repo := &stubBankRepo{}
	cache := newMemoryPoolCache()
	service := NewService(repo, cache)

	summary, err := service.Seed(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, summary.Pro+summary.SubPro, summary.Seeded)
	assert.Greater(t, summary.Pro, 0)
	assert.Greater(t, summary.SubPro, 0)
	assert.Len(t, repo.upserted, summary.Seeded)
	assert.ElementsMatch(t, []string{exam.TypePro, exam.TypeSubPro}, cache.invalidated)

	for _, params := range repo.upserted {
		assert.NotEmpty(t, params.QuestionID)
		assert.NotEmpty(t, params.Category)
		assert.NotEmpty(t, params.CorrectChoiceID)
	}
}
