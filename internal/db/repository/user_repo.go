package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/cscreviewph/exam-platform/internal/db"
)

type userStore interface {
	CreateUser(ctx context.Context, arg db.CreateUserParams) (db.User, error)
	GetUserByEmail(ctx context.Context, email pgtype.Text) (db.User, error)
	GetUserByID(ctx context.Context, userID pgtype.UUID) (db.User, error)
	UpdateUserLogin(ctx context.Context, userID pgtype.UUID) error
	UpdateUserPassword(ctx context.Context, userID pgtype.UUID, hash pgtype.Text) error
}

// UserRepository exposes typed DB operations required by auth flows.
type UserRepository struct {
	store userStore
}

// NewUserRepository wraps the query layer for user-specific operations.
func NewUserRepository(store userStore) *UserRepository {
	return &UserRepository{store: store}
}

// Create inserts a new account row.
func (r *UserRepository) Create(ctx context.Context, params db.CreateUserParams) (db.User, error) {
	return r.store.CreateUser(ctx, params)
}

// GetByEmail fetches a user by email if present.
func (r *UserRepository) GetByEmail(ctx context.Context, email pgtype.Text) (db.User, error) {
	return r.store.GetUserByEmail(ctx, email)
}

// GetByID fetches a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, userID pgtype.UUID) (db.User, error) {
	return r.store.GetUserByID(ctx, userID)
}

// UpdateLogin records the last login timestamp.
func (r *UserRepository) UpdateLogin(ctx context.Context, userID uuid.UUID) error {
	return r.store.UpdateUserLogin(ctx, pgUUID(userID))
}

// UpdatePassword replaces the stored bcrypt hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, hash string) error {
	return r.store.UpdateUserPassword(ctx, pgUUID(userID), pgText(hash))
}
