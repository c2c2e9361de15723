package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Queries bundles hand-written SQL over a pgx pool. Repositories consume the
// subset of methods they need through narrow interfaces.
type Queries struct {
	pool *pgxpool.Pool
}

// New wraps a pgx pool.
func New(pool *pgxpool.Pool) *Queries {
	return &Queries{pool: pool}
}

const createUserSQL = `
INSERT INTO users (user_id, email, password_hash, display_name, user_type, metadata)
VALUES (gen_random_uuid(), $1, $2, $3, $4, $5)
RETURNING user_id, email, password_hash, display_name, user_type, metadata, created_at, last_login_at`

// CreateUserParams holds insert values for a new account.
type CreateUserParams struct {
	Email        pgtype.Text
	PasswordHash pgtype.Text
	DisplayName  string
	UserType     string
	Metadata     []byte
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.pool.QueryRow(ctx, createUserSQL,
		arg.Email, arg.PasswordHash, arg.DisplayName, arg.UserType, arg.Metadata)
	return scanUser(row)
}

const getUserByEmailSQL = `
SELECT user_id, email, password_hash, display_name, user_type, metadata, created_at, last_login_at
FROM users WHERE email = $1`

func (q *Queries) GetUserByEmail(ctx context.Context, email pgtype.Text) (User, error) {
	return scanUser(q.pool.QueryRow(ctx, getUserByEmailSQL, email))
}

const getUserByIDSQL = `
SELECT user_id, email, password_hash, display_name, user_type, metadata, created_at, last_login_at
FROM users WHERE user_id = $1`

func (q *Queries) GetUserByID(ctx context.Context, userID pgtype.UUID) (User, error) {
	return scanUser(q.pool.QueryRow(ctx, getUserByIDSQL, userID))
}

const updateUserLoginSQL = `UPDATE users SET last_login_at = now() WHERE user_id = $1`

func (q *Queries) UpdateUserLogin(ctx context.Context, userID pgtype.UUID) error {
	_, err := q.pool.Exec(ctx, updateUserLoginSQL, userID)
	return err
}

const updateUserPasswordSQL = `UPDATE users SET password_hash = $2 WHERE user_id = $1`

func (q *Queries) UpdateUserPassword(ctx context.Context, userID pgtype.UUID, hash pgtype.Text) error {
	_, err := q.pool.Exec(ctx, updateUserPasswordSQL, userID, hash)
	return err
}

const upsertQuestionSQL = `
INSERT INTO questions (question_id, exam_type, category, prompt, choices, correct_choice_id, explanation)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (question_id) DO UPDATE SET
	exam_type = EXCLUDED.exam_type,
	category = EXCLUDED.category,
	prompt = EXCLUDED.prompt,
	choices = EXCLUDED.choices,
	correct_choice_id = EXCLUDED.correct_choice_id,
	explanation = EXCLUDED.explanation`

// UpsertQuestionParams holds one seeded question row.
type UpsertQuestionParams struct {
	QuestionID      string
	ExamType        string
	Category        string
	Prompt          string
	Choices         []byte
	CorrectChoiceID string
	Explanation     pgtype.Text
}

func (q *Queries) UpsertQuestion(ctx context.Context, arg UpsertQuestionParams) error {
	_, err := q.pool.Exec(ctx, upsertQuestionSQL,
		arg.QuestionID, arg.ExamType, arg.Category, arg.Prompt,
		arg.Choices, arg.CorrectChoiceID, arg.Explanation)
	return err
}

const listQuestionIDsSQL = `SELECT question_id FROM questions WHERE exam_type = $1 ORDER BY question_id`

func (q *Queries) ListQuestionIDsByExamType(ctx context.Context, examType string) ([]string, error) {
	rows, err := q.pool.Query(ctx, listQuestionIDsSQL, examType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

const getQuestionsByIDsSQL = `
SELECT question_id, exam_type, category, prompt, choices, correct_choice_id, explanation
FROM questions WHERE question_id = ANY($1)`

func (q *Queries) GetQuestionsByIDs(ctx context.Context, ids []string) ([]Question, error) {
	rows, err := q.pool.Query(ctx, getQuestionsByIDsSQL, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Question
	for rows.Next() {
		var qu Question
		if err := rows.Scan(&qu.QuestionID, &qu.ExamType, &qu.Category, &qu.Prompt,
			&qu.Choices, &qu.CorrectChoiceID, &qu.Explanation); err != nil {
			return nil, err
		}
		out = append(out, qu)
	}
	return out, rows.Err()
}

const createAttemptSQL = `
INSERT INTO attempts (attempt_id, user_id, exam_type, mode, question_ids, started_at, expires_at, status)
VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, 'in_progress')
RETURNING attempt_id, user_id, exam_type, mode, question_ids, started_at, expires_at, status,
	score, correct_count, wrong_count, unanswered_count, breakdown, submitted_at`

// CreateAttemptParams holds insert values for a fresh attempt.
type CreateAttemptParams struct {
	UserID      pgtype.UUID
	ExamType    string
	Mode        string
	QuestionIDs []string
	StartedAt   pgtype.Timestamptz
	ExpiresAt   pgtype.Timestamptz
}

func (q *Queries) CreateAttempt(ctx context.Context, arg CreateAttemptParams) (Attempt, error) {
	row := q.pool.QueryRow(ctx, createAttemptSQL,
		arg.UserID, arg.ExamType, arg.Mode, arg.QuestionIDs, arg.StartedAt, arg.ExpiresAt)
	return scanAttempt(row)
}

const getAttemptSQL = `
SELECT attempt_id, user_id, exam_type, mode, question_ids, started_at, expires_at, status,
	score, correct_count, wrong_count, unanswered_count, breakdown, submitted_at
FROM attempts WHERE attempt_id = $1`

func (q *Queries) GetAttempt(ctx context.Context, attemptID pgtype.UUID) (Attempt, error) {
	return scanAttempt(q.pool.QueryRow(ctx, getAttemptSQL, attemptID))
}

const listAttemptsByUserSQL = `
SELECT attempt_id, user_id, exam_type, mode, question_ids, started_at, expires_at, status,
	score, correct_count, wrong_count, unanswered_count, breakdown, submitted_at
FROM attempts WHERE user_id = $1 ORDER BY started_at DESC`

func (q *Queries) ListAttemptsByUser(ctx context.Context, userID pgtype.UUID) ([]Attempt, error) {
	rows, err := q.pool.Query(ctx, listAttemptsByUserSQL, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		at, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, at)
	}
	return out, rows.Err()
}

// The status predicate makes the in_progress -> submitted transition a
// compare-and-swap: a concurrent finalize that lost the race updates zero rows.
const submitAttemptSQL = `
UPDATE attempts SET
	status = 'submitted',
	submitted_at = $2,
	score = $3,
	correct_count = $4,
	wrong_count = $5,
	unanswered_count = $6,
	breakdown = $7
WHERE attempt_id = $1 AND status = 'in_progress'`

// SubmitAttemptParams holds the final score fields written at submission.
type SubmitAttemptParams struct {
	AttemptID       pgtype.UUID
	SubmittedAt     pgtype.Timestamptz
	Score           float64
	CorrectCount    int32
	WrongCount      int32
	UnansweredCount int32
	Breakdown       []byte
}

// SubmitAttempt closes an in-progress attempt. Returns the number of rows
// updated: zero means the attempt was already submitted.
func (q *Queries) SubmitAttempt(ctx context.Context, arg SubmitAttemptParams) (int64, error) {
	tag, err := q.pool.Exec(ctx, submitAttemptSQL,
		arg.AttemptID, arg.SubmittedAt, arg.Score,
		arg.CorrectCount, arg.WrongCount, arg.UnansweredCount, arg.Breakdown)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const upsertAnswerSQL = `
INSERT INTO answers (attempt_id, question_id, choice_id, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (attempt_id, question_id) DO UPDATE SET
	choice_id = EXCLUDED.choice_id,
	updated_at = now()`

// UpsertAnswerParams holds one answer write.
type UpsertAnswerParams struct {
	AttemptID  pgtype.UUID
	QuestionID string
	ChoiceID   string
}

func (q *Queries) UpsertAnswer(ctx context.Context, arg UpsertAnswerParams) error {
	_, err := q.pool.Exec(ctx, upsertAnswerSQL, arg.AttemptID, arg.QuestionID, arg.ChoiceID)
	return err
}

const listAnswersByAttemptSQL = `
SELECT attempt_id, question_id, choice_id, updated_at FROM answers WHERE attempt_id = $1`

func (q *Queries) ListAnswersByAttempt(ctx context.Context, attemptID pgtype.UUID) ([]Answer, error) {
	rows, err := q.pool.Query(ctx, listAnswersByAttemptSQL, attemptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Answer
	for rows.Next() {
		var a Answer
		if err := rows.Scan(&a.AttemptID, &a.QuestionID, &a.ChoiceID, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.UserID, &u.Email, &u.PasswordHash, &u.DisplayName,
		&u.UserType, &u.Metadata, &u.CreatedAt, &u.LastLoginAt)
	return u, err
}

func scanAttempt(row pgx.Row) (Attempt, error) {
	var a Attempt
	err := row.Scan(&a.AttemptID, &a.UserID, &a.ExamType, &a.Mode, &a.QuestionIDs,
		&a.StartedAt, &a.ExpiresAt, &a.Status, &a.Score, &a.CorrectCount,
		&a.WrongCount, &a.UnansweredCount, &a.Breakdown, &a.SubmittedAt)
	return a, err
}
