package attempt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/cscreviewph/exam-platform/internal/attempt/scoring"
	"github.com/cscreviewph/exam-platform/internal/db"
	"github.com/cscreviewph/exam-platform/internal/exam"
	"github.com/cscreviewph/exam-platform/internal/question"
)

// Store is the attempt persistence contract (implemented by
// repository.AttemptRepository).
type Store interface {
	Create(ctx context.Context, params db.CreateAttemptParams) (db.Attempt, error)
	Get(ctx context.Context, attemptID uuid.UUID) (db.Attempt, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]db.Attempt, error)
	Submit(ctx context.Context, params db.SubmitAttemptParams) (int64, error)
	SaveAnswer(ctx context.Context, params db.UpsertAnswerParams) error
	ListAnswers(ctx context.Context, attemptID uuid.UUID) ([]db.Answer, error)
}

// Bank is the authoritative question store contract (implemented by
// question.Service).
type Bank interface {
	BankIDs(ctx context.Context, examType string) ([]string, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]question.Question, error)
}

// Service implements attempt creation (question sampling) and finalization
// (one-shot scoring).
type Service struct {
	store  Store
	bank   Bank
	logger zerolog.Logger
	now    func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand
}

// ServiceOptions carries optional dependencies; zero values pick defaults.
type ServiceOptions struct {
	Rand *rand.Rand
	Now  func() time.Time
}

// NewService wires the attempt service.
func NewService(store Store, bank Bank, opts ServiceOptions, logger zerolog.Logger) *Service {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:  store,
		bank:   bank,
		logger: logger.With().Str("component", "attempt").Logger(),
		now:    now,
		rng:    rng,
	}
}

// Create samples questions per the exam blueprint and persists a fresh
// in-progress attempt owned by userID.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, examType, mode string) (Attempt, error) {
	plan, err := exam.PlanFor(examType, mode)
	if err != nil {
		return Attempt{}, err
	}

	pool, err := s.bank.BankIDs(ctx, examType)
	if err != nil {
		return Attempt{}, fmt.Errorf("load question bank: %w", err)
	}
	if len(pool) == 0 {
		return Attempt{}, fmt.Errorf("%w: %s", ErrEmptyBank, examType)
	}

	s.rngMu.Lock()
	questionIDs := SamplePool(s.rng, pool, plan.QuestionCount)
	s.rngMu.Unlock()

	startedAt := s.now()
	params := db.CreateAttemptParams{
		UserID:      pgtype.UUID{Bytes: userID, Valid: true},
		ExamType:    examType,
		Mode:        mode,
		QuestionIDs: questionIDs,
		StartedAt:   pgtype.Timestamptz{Time: startedAt, Valid: true},
	}
	if mode == exam.ModeSimulation && plan.TimeLimitMinutes > 0 {
		expiresAt := startedAt.Add(time.Duration(plan.TimeLimitMinutes) * time.Minute)
		params.ExpiresAt = pgtype.Timestamptz{Time: expiresAt, Valid: true}
	}

	row, err := s.store.Create(ctx, params)
	if err != nil {
		return Attempt{}, fmt.Errorf("create attempt: %w", err)
	}

	created, err := fromRow(row)
	if err != nil {
		return Attempt{}, err
	}
	s.logger.Info().
		Str("attempt_id", created.ID.String()).
		Str("user_id", userID.String()).
		Str("exam_type", examType).
		Str("mode", mode).
		Int("questions", len(questionIDs)).
		Msg("attempt created")
	return created, nil
}

// Get fetches one attempt, enforcing ownership.
func (s *Service) Get(ctx context.Context, attemptID, callerID uuid.UUID) (Attempt, error) {
	row, err := s.store.Get(ctx, attemptID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Attempt{}, ErrNotFound
	}
	if err != nil {
		return Attempt{}, fmt.Errorf("get attempt: %w", err)
	}
	a, err := fromRow(row)
	if err != nil {
		return Attempt{}, err
	}
	if a.UserID != callerID {
		return Attempt{}, ErrForbidden
	}
	return a, nil
}

// ListByUser returns the caller's attempts, newest first.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]Attempt, error) {
	rows, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	out := make([]Attempt, 0, len(rows))
	for _, row := range rows {
		a, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// SaveAnswer upserts the caller's latest choice for one question. Later
// writes for the same question overwrite earlier ones.
func (s *Service) SaveAnswer(ctx context.Context, attemptID, callerID uuid.UUID, questionID, choiceID string) error {
	a, err := s.Get(ctx, attemptID, callerID)
	if err != nil {
		return err
	}
	if a.Status != StatusInProgress {
		return ErrAlreadySubmitted
	}
	if err := s.store.SaveAnswer(ctx, db.UpsertAnswerParams{
		AttemptID:  pgtype.UUID{Bytes: attemptID, Valid: true},
		QuestionID: questionID,
		ChoiceID:   choiceID,
	}); err != nil {
		return fmt.Errorf("save answer: %w", err)
	}
	return nil
}

// Finalize scores an attempt and closes it. Preconditions fail in order:
// not found, then ownership, then already-submitted. The status transition
// is a conditional update, so of two racing calls exactly one wins; the
// loser gets ErrAlreadySubmitted and writes nothing.
func (s *Service) Finalize(ctx context.Context, attemptID, callerID uuid.UUID) (FinalResult, error) {
	row, err := s.store.Get(ctx, attemptID)
	if errors.Is(err, pgx.ErrNoRows) {
		return FinalResult{}, ErrNotFound
	}
	if err != nil {
		return FinalResult{}, fmt.Errorf("get attempt: %w", err)
	}
	a, err := fromRow(row)
	if err != nil {
		return FinalResult{}, err
	}
	if a.UserID != callerID {
		return FinalResult{}, ErrForbidden
	}
	if a.Status != StatusInProgress {
		return FinalResult{}, ErrAlreadySubmitted
	}

	questions, err := s.bank.GetByIDs(ctx, a.QuestionIDs)
	if err != nil {
		return FinalResult{}, fmt.Errorf("load questions: %w", err)
	}
	key := make(map[string]scoring.QuestionKey, len(questions))
	for id, q := range questions {
		key[id] = scoring.QuestionKey{CorrectChoiceID: q.CorrectChoiceID, Category: q.Category}
	}

	answerRows, err := s.store.ListAnswers(ctx, attemptID)
	if err != nil {
		return FinalResult{}, fmt.Errorf("load answers: %w", err)
	}
	answers := make(map[string]string, len(answerRows))
	for _, ans := range answerRows {
		answers[ans.QuestionID] = ans.ChoiceID
	}

	res := scoring.Score(a.QuestionIDs, key, answers)
	if res.Breakdown == nil {
		res.Breakdown = []scoring.CategoryBreakdown{}
	}

	breakdown, err := json.Marshal(res.Breakdown)
	if err != nil {
		return FinalResult{}, fmt.Errorf("encode breakdown: %w", err)
	}
	rows, err := s.store.Submit(ctx, db.SubmitAttemptParams{
		AttemptID:       pgtype.UUID{Bytes: attemptID, Valid: true},
		SubmittedAt:     pgtype.Timestamptz{Time: s.now(), Valid: true},
		Score:           res.Score,
		CorrectCount:    int32(res.CorrectCount),
		WrongCount:      int32(res.WrongCount),
		UnansweredCount: int32(res.UnansweredCount),
		Breakdown:       breakdown,
	})
	if err != nil {
		return FinalResult{}, fmt.Errorf("submit attempt: %w", err)
	}
	if rows == 0 {
		// A concurrent finalize won the status race.
		return FinalResult{}, ErrAlreadySubmitted
	}

	s.logger.Info().
		Str("attempt_id", attemptID.String()).
		Float64("score", res.Score).
		Int("correct", res.CorrectCount).
		Int("wrong", res.WrongCount).
		Int("unanswered", res.UnansweredCount).
		Msg("attempt finalized")

	return FinalResult{
		Score:           res.Score,
		CorrectCount:    res.CorrectCount,
		WrongCount:      res.WrongCount,
		UnansweredCount: res.UnansweredCount,
		Breakdown:       res.Breakdown,
	}, nil
}
