package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/cscreviewph/exam-platform/internal/db"
)

type attemptStore interface {
	CreateAttempt(ctx context.Context, arg db.CreateAttemptParams) (db.Attempt, error)
	GetAttempt(ctx context.Context, attemptID pgtype.UUID) (db.Attempt, error)
	ListAttemptsByUser(ctx context.Context, userID pgtype.UUID) ([]db.Attempt, error)
	SubmitAttempt(ctx context.Context, arg db.SubmitAttemptParams) (int64, error)
	UpsertAnswer(ctx context.Context, arg db.UpsertAnswerParams) error
	ListAnswersByAttempt(ctx context.Context, attemptID pgtype.UUID) ([]db.Answer, error)
}

// AttemptRepository contains DB helpers for attempts and their answers.
type AttemptRepository struct {
	store attemptStore
}

// NewAttemptRepository constructs a new attempt repository.
func NewAttemptRepository(store attemptStore) *AttemptRepository {
	return &AttemptRepository{store: store}
}

// Create persists a new in-progress attempt row.
func (r *AttemptRepository) Create(ctx context.Context, params db.CreateAttemptParams) (db.Attempt, error) {
	return r.store.CreateAttempt(ctx, params)
}

// Get fetches one attempt by ID.
func (r *AttemptRepository) Get(ctx context.Context, attemptID uuid.UUID) (db.Attempt, error) {
	return r.store.GetAttempt(ctx, pgUUID(attemptID))
}

// ListByUser returns a user's attempts, newest first.
func (r *AttemptRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]db.Attempt, error) {
	return r.store.ListAttemptsByUser(ctx, pgUUID(userID))
}

// Submit performs the conditional in_progress -> submitted update. The
// returned row count is zero when the attempt was already closed.
func (r *AttemptRepository) Submit(ctx context.Context, params db.SubmitAttemptParams) (int64, error) {
	return r.store.SubmitAttempt(ctx, params)
}

// SaveAnswer upserts the latest choice for one question of an attempt.
func (r *AttemptRepository) SaveAnswer(ctx context.Context, params db.UpsertAnswerParams) error {
	return r.store.UpsertAnswer(ctx, params)
}

// ListAnswers scans all persisted answers for an attempt.
func (r *AttemptRepository) ListAnswers(ctx context.Context, attemptID uuid.UUID) ([]db.Answer, error) {
	return r.store.ListAnswersByAttempt(ctx, pgUUID(attemptID))
}
