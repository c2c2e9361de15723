package attempt

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/cscreviewph/exam-platform/internal/db"
	"github.com/cscreviewph/exam-platform/internal/exam"
	"github.com/cscreviewph/exam-platform/internal/question"
)

type fakeStore struct {
	attempts        map[uuid.UUID]db.Attempt
	answers         map[uuid.UUID]map[string]string
	submitCalls     int
	saveCalls       int
	forceSubmitZero bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		attempts: map[uuid.UUID]db.Attempt{},
		answers:  map[uuid.UUID]map[string]string{},
	}
}

func (f *fakeStore) Create(_ context.Context, params db.CreateAttemptParams) (db.Attempt, error) {
	id := uuid.New()
	row := db.Attempt{
		AttemptID:   pgtype.UUID{Bytes: id, Valid: true},
		UserID:      params.UserID,
		ExamType:    params.ExamType,
		Mode:        params.Mode,
		QuestionIDs: params.QuestionIDs,
		StartedAt:   params.StartedAt,
		ExpiresAt:   params.ExpiresAt,
		Status:      StatusInProgress,
	}
	f.attempts[id] = row
	return row, nil
}

func (f *fakeStore) Get(_ context.Context, attemptID uuid.UUID) (db.Attempt, error) {
	row, ok := f.attempts[attemptID]
	if !ok {
		return db.Attempt{}, pgx.ErrNoRows
	}
	return row, nil
}

func (f *fakeStore) ListByUser(_ context.Context, userID uuid.UUID) ([]db.Attempt, error) {
	var out []db.Attempt
	for _, row := range f.attempts {
		if uuid.UUID(row.UserID.Bytes) == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeStore) Submit(_ context.Context, params db.SubmitAttemptParams) (int64, error) {
	f.submitCalls++
	if f.forceSubmitZero {
		return 0, nil
	}
	id := uuid.UUID(params.AttemptID.Bytes)
	row, ok := f.attempts[id]
	if !ok || row.Status != StatusInProgress {
		return 0, nil
	}
	row.Status = StatusSubmitted
	row.SubmittedAt = params.SubmittedAt
	row.Score = pgtype.Float8{Float64: params.Score, Valid: true}
	row.CorrectCount = pgtype.Int4{Int32: params.CorrectCount, Valid: true}
	row.WrongCount = pgtype.Int4{Int32: params.WrongCount, Valid: true}
	row.UnansweredCount = pgtype.Int4{Int32: params.UnansweredCount, Valid: true}
	row.Breakdown = params.Breakdown
	f.attempts[id] = row
	return 1, nil
}

func (f *fakeStore) SaveAnswer(_ context.Context, params db.UpsertAnswerParams) error {
	f.saveCalls++
	id := uuid.UUID(params.AttemptID.Bytes)
	if f.answers[id] == nil {
		f.answers[id] = map[string]string{}
	}
	f.answers[id][params.QuestionID] = params.ChoiceID
	return nil
}

func (f *fakeStore) ListAnswers(_ context.Context, attemptID uuid.UUID) ([]db.Answer, error) {
	var out []db.Answer
	for qID, cID := range f.answers[attemptID] {
		out = append(out, db.Answer{QuestionID: qID, ChoiceID: cID})
	}
	return out, nil
}

type fakeBank struct {
	ids       []string
	questions map[string]question.Question
}

func (f *fakeBank) BankIDs(_ context.Context, _ string) ([]string, error) {
	return f.ids, nil
}

func (f *fakeBank) GetByIDs(_ context.Context, ids []string) (map[string]question.Question, error) {
	out := map[string]question.Question{}
	for _, id := range ids {
		if q, ok := f.questions[id]; ok {
			out[id] = q
		}
	}
	return out, nil
}

func bankOf(n int) *fakeBank {
	b := &fakeBank{questions: map[string]question.Question{}}
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("q-%03d", i)
		b.ids = append(b.ids, id)
		cat := "Numerical Ability"
		if i%2 == 1 {
			cat = "Verbal Ability"
		}
		b.questions[id] = question.Question{ID: id, Category: cat, CorrectChoiceID: "a"}
	}
	return b
}

func newTestService(store *fakeStore, bank *fakeBank, now time.Time) *Service {
	return NewService(store, bank, ServiceOptions{
		Rand: rand.New(rand.NewSource(1)),
		Now:  func() time.Time { return now },
	}, zerolog.Nop())
}

func TestCreateSimulationSetsDeadline(t *testing.T) {
	store := newFakeStore()
	bank := bankOf(200)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	svc := newTestService(store, bank, now)
	userID := uuid.New()

	a, err := svc.Create(context.Background(), userID, exam.TypePro, exam.ModeSimulation)
	assert.NoError(t, err)
	assert.Equal(t, StatusInProgress, a.Status)
	assert.Len(t, a.QuestionIDs, 170)
	assert.Nil(t, a.Score)
	if assert.NotNil(t, a.ExpiresAt) {
		assert.Equal(t, now.Add(180*time.Minute), *a.ExpiresAt)
	}

	seen := map[string]struct{}{}
	for _, id := range a.QuestionIDs {
		_, dup := seen[id]
		assert.False(t, dup, "needed <= pool: all sampled IDs distinct")
		seen[id] = struct{}{}
	}
}

func TestCreatePracticeIsUntimed(t *testing.T) {
	svc := newTestService(newFakeStore(), bankOf(50), time.Now())

	a, err := svc.Create(context.Background(), uuid.New(), exam.TypeSubPro, exam.ModePractice)
	assert.NoError(t, err)
	assert.Len(t, a.QuestionIDs, 30)
	assert.Nil(t, a.ExpiresAt)
}

func TestCreateWrapsSmallPool(t *testing.T) {
	bank := bankOf(8)
	svc := newTestService(newFakeStore(), bank, time.Now())

	a, err := svc.Create(context.Background(), uuid.New(), exam.TypePro, exam.ModePractice)
	assert.NoError(t, err)
	assert.Len(t, a.QuestionIDs, 30)
	assert.ElementsMatch(t, bank.ids, a.QuestionIDs[:8], "first pass is a permutation of the pool")
}

func TestCreateRejectsUnknownBlueprint(t *testing.T) {
	svc := newTestService(newFakeStore(), bankOf(10), time.Now())

	_, err := svc.Create(context.Background(), uuid.New(), "CSC_MANAGERIAL", exam.ModePractice)
	assert.ErrorIs(t, err, exam.ErrUnknownExamType)

	_, err = svc.Create(context.Background(), uuid.New(), exam.TypePro, "sprint")
	assert.ErrorIs(t, err, exam.ErrUnknownMode)
}

func TestCreateRejectsEmptyBank(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeBank{}, time.Now())

	_, err := svc.Create(context.Background(), uuid.New(), exam.TypePro, exam.ModePractice)
	assert.ErrorIs(t, err, ErrEmptyBank)
}

func TestFinalizeHappyPath(t *testing.T) {
	store := newFakeStore()
	bank := bankOf(50)
	svc := newTestService(store, bank, time.Now())
	userID := uuid.New()

	a, err := svc.Create(context.Background(), userID, exam.TypeSubPro, exam.ModePractice)
	assert.NoError(t, err)

	// 7 correct, 1 wrong, the rest unanswered.
	for i := 0; i < 7; i++ {
		assert.NoError(t, svc.SaveAnswer(context.Background(), a.ID, userID, a.QuestionIDs[i], "a"))
	}
	assert.NoError(t, svc.SaveAnswer(context.Background(), a.ID, userID, a.QuestionIDs[7], "z"))

	res, err := svc.Finalize(context.Background(), a.ID, userID)
	assert.NoError(t, err)
	assert.Equal(t, 23.3, res.Score, "7/30 rounded to one decimal")
	assert.Equal(t, 7, res.CorrectCount)
	assert.Equal(t, 1, res.WrongCount)
	assert.Equal(t, 22, res.UnansweredCount)

	totalSum, correctSum := 0, 0
	for _, b := range res.Breakdown {
		totalSum += b.Total
		correctSum += b.Correct
	}
	assert.Equal(t, 30, totalSum)
	assert.Equal(t, 7, correctSum)

	// Persisted state matches the returned result.
	stored := store.attempts[a.ID]
	assert.Equal(t, StatusSubmitted, stored.Status)
	assert.Equal(t, res.Score, stored.Score.Float64)
	var storedBreakdown []map[string]any
	assert.NoError(t, json.Unmarshal(stored.Breakdown, &storedBreakdown))
	assert.Len(t, storedBreakdown, len(res.Breakdown))
}

func TestFinalizeAnswerOverwriteWins(t *testing.T) {
	store := newFakeStore()
	bank := bankOf(50)
	svc := newTestService(store, bank, time.Now())
	userID := uuid.New()

	a, _ := svc.Create(context.Background(), userID, exam.TypeSubPro, exam.ModePractice)
	qID := a.QuestionIDs[0]
	assert.NoError(t, svc.SaveAnswer(context.Background(), a.ID, userID, qID, "z"))
	assert.NoError(t, svc.SaveAnswer(context.Background(), a.ID, userID, qID, "a"))

	res, err := svc.Finalize(context.Background(), a.ID, userID)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.CorrectCount)
	assert.Equal(t, 0, res.WrongCount)
}

func TestFinalizeNotFound(t *testing.T) {
	svc := newTestService(newFakeStore(), bankOf(10), time.Now())

	_, err := svc.Finalize(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFinalizeForbiddenMakesNoWrites(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, bankOf(50), time.Now())
	owner := uuid.New()

	a, _ := svc.Create(context.Background(), owner, exam.TypePro, exam.ModePractice)

	_, err := svc.Finalize(context.Background(), a.ID, uuid.New())
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Zero(t, store.submitCalls)
	assert.Equal(t, StatusInProgress, store.attempts[a.ID].Status)
}

func TestFinalizeSecondCallRejected(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, bankOf(50), time.Now())
	userID := uuid.New()

	a, _ := svc.Create(context.Background(), userID, exam.TypePro, exam.ModePractice)

	first, err := svc.Finalize(context.Background(), a.ID, userID)
	assert.NoError(t, err)

	_, err = svc.Finalize(context.Background(), a.ID, userID)
	assert.ErrorIs(t, err, ErrAlreadySubmitted)

	// Persisted score unchanged by the rejected call.
	assert.Equal(t, first.Score, store.attempts[a.ID].Score.Float64)
}

func TestFinalizeLosesStatusRace(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, bankOf(50), time.Now())
	userID := uuid.New()

	a, _ := svc.Create(context.Background(), userID, exam.TypePro, exam.ModePractice)

	// Another finalize lands between the status read and the update: the
	// conditional write touches zero rows and the call reports conflict.
	store.forceSubmitZero = true

	_, err := svc.Finalize(context.Background(), a.ID, userID)
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	assert.Equal(t, 1, store.submitCalls)
}

func TestSaveAnswerAfterSubmitRejected(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, bankOf(50), time.Now())
	userID := uuid.New()

	a, _ := svc.Create(context.Background(), userID, exam.TypePro, exam.ModePractice)
	_, err := svc.Finalize(context.Background(), a.ID, userID)
	assert.NoError(t, err)

	err = svc.SaveAnswer(context.Background(), a.ID, userID, a.QuestionIDs[0], "a")
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestGetEnforcesOwnership(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, bankOf(50), time.Now())
	owner := uuid.New()

	a, _ := svc.Create(context.Background(), owner, exam.TypePro, exam.ModePractice)

	_, err := svc.Get(context.Background(), a.ID, uuid.New())
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.Get(context.Background(), a.ID, owner)
	assert.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
}
