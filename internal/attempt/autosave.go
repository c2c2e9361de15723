package attempt

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AnswerWriter persists one answer (implemented by Service.SaveAnswer).
type AnswerWriter interface {
	SaveAnswer(ctx context.Context, attemptID, callerID uuid.UUID, questionID, choiceID string) error
}

// AnswerBuffer batches answer writes for one exam-taking session: each Set
// replaces the buffered choice for that question, and a periodic flush (or an
// explicit one before finalize) persists only the latest choice per question.
// Last write wins end to end.
type AnswerBuffer struct {
	writer    AnswerWriter
	attemptID uuid.UUID
	userID    uuid.UUID
	interval  time.Duration
	logger    zerolog.Logger

	mu      sync.Mutex
	pending map[string]string

	shutdownC chan struct{}
	stopOnce  sync.Once
}

// NewAnswerBuffer builds a buffer for one attempt; interval <= 0 selects a
// 2s flush cadence.
func NewAnswerBuffer(writer AnswerWriter, attemptID, userID uuid.UUID, interval time.Duration, logger zerolog.Logger) *AnswerBuffer {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &AnswerBuffer{
		writer:    writer,
		attemptID: attemptID,
		userID:    userID,
		interval:  interval,
		logger:    logger.With().Str("component", "answer_buffer").Logger(),
		pending:   make(map[string]string),
		shutdownC: make(chan struct{}),
	}
}

// Set records the latest choice for a question, overwriting any buffered one.
func (b *AnswerBuffer) Set(questionID, choiceID string) {
	b.mu.Lock()
	b.pending[questionID] = choiceID
	b.mu.Unlock()
}

// Run flushes on a ticker until Stop is called or ctx is canceled. A final
// flush drains whatever is still buffered.
func (b *AnswerBuffer) Run(ctx context.Context) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-b.shutdownC:
			b.Flush(ctx)
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.Flush(ctx)
		}
	}
}

// Flush persists all buffered answers. Failed writes stay buffered for the
// next flush.
func (b *AnswerBuffer) Flush(ctx context.Context) {
	b.mu.Lock()
	batch := b.pending
	b.pending = make(map[string]string)
	b.mu.Unlock()

	for questionID, choiceID := range batch {
		if err := b.writer.SaveAnswer(ctx, b.attemptID, b.userID, questionID, choiceID); err != nil {
			b.logger.Warn().Err(err).Str("question_id", questionID).Msg("answer flush failed")
			b.mu.Lock()
			if _, replaced := b.pending[questionID]; !replaced {
				b.pending[questionID] = choiceID
			}
			b.mu.Unlock()
		}
	}
}

// Stop ends Run after one final flush.
func (b *AnswerBuffer) Stop() {
	b.stopOnce.Do(func() { close(b.shutdownC) })
}
