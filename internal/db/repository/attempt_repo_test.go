package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/cscreviewph/exam-platform/internal/db"
)

type mockAttemptStore struct {
	mock.Mock
}

func (m *mockAttemptStore) CreateAttempt(ctx context.Context, arg db.CreateAttemptParams) (db.Attempt, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(db.Attempt), args.Error(1)
}

func (m *mockAttemptStore) GetAttempt(ctx context.Context, attemptID pgtype.UUID) (db.Attempt, error) {
	args := m.Called(ctx, attemptID)
	return args.Get(0).(db.Attempt), args.Error(1)
}

func (m *mockAttemptStore) ListAttemptsByUser(ctx context.Context, userID pgtype.UUID) ([]db.Attempt, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]db.Attempt), args.Error(1)
}

func (m *mockAttemptStore) SubmitAttempt(ctx context.Context, arg db.SubmitAttemptParams) (int64, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAttemptStore) UpsertAnswer(ctx context.Context, arg db.UpsertAnswerParams) error {
	return m.Called(ctx, arg).Error(0)
}

func (m *mockAttemptStore) ListAnswersByAttempt(ctx context.Context, attemptID pgtype.UUID) ([]db.Answer, error) {
	args := m.Called(ctx, attemptID)
	return args.Get(0).([]db.Answer), args.Error(1)
}

func TestAttemptRepository_Create(t *testing.T) {
	store := new(mockAttemptStore)
	repo := NewAttemptRepository(store)

	params := db.CreateAttemptParams{
		UserID:      uuidFromByte(1),
		ExamType:    "CSC_PRO",
		Mode:        "practice",
		QuestionIDs: []string{"q1", "q2"},
	}
	expect := db.Attempt{AttemptID: uuidFromByte(2), Status: "in_progress"}
	store.On("CreateAttempt", mock.Anything, params).Return(expect, nil)

	got, err := repo.Create(context.Background(), params)
	assert.NoError(t, err)
	assert.Equal(t, expect, got)
	store.AssertExpectations(t)
}

func TestAttemptRepository_Submit(t *testing.T) {
	store := new(mockAttemptStore)
	repo := NewAttemptRepository(store)

	params := db.SubmitAttemptParams{
		AttemptID:    uuidFromByte(3),
		Score:        70.0,
		CorrectCount: 7,
	}
	store.On("SubmitAttempt", mock.Anything, params).Return(int64(1), nil)

	rows, err := repo.Submit(context.Background(), params)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, rows)
	store.AssertExpectations(t)
}

func TestAttemptRepository_SaveAnswer(t *testing.T) {
	store := new(mockAttemptStore)
	repo := NewAttemptRepository(store)

	attemptID := uuid.New()
	params := db.UpsertAnswerParams{
		AttemptID:  pgUUID(attemptID),
		QuestionID: "q1",
		ChoiceID:   "b",
	}
	store.On("UpsertAnswer", mock.Anything, params).Return(nil)

	err := repo.SaveAnswer(context.Background(), params)
	assert.NoError(t, err)
	store.AssertExpectations(t)
}
