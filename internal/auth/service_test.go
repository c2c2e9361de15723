package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/cscreviewph/exam-platform/internal/auth/jwt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("testpassword123")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.True(t, len(hash) > 20) // bcrypt hashes are long
}

func TestVerifyPassword(t *testing.T) {
	hash, _ := HashPassword("testpassword123")

	err := VerifyPassword(hash, "testpassword123")
	assert.NoError(t, err)

	err = VerifyPassword(hash, "wrongpassword")
	assert.Error(t, err)
}

func TestPasswordTooShort(t *testing.T) {
	_, err := HashPassword("short")
	assert.Error(t, err)
	assert.Equal(t, ErrPasswordTooShort, err)
}

func TestTokenRoundTrip(t *testing.T) {
	mgr := jwt.NewManager(jwt.TokenConfig{
		AccessSecret:  []byte("test-access-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	})

	email := "reviewer@example.com"
	user := jwt.User{
		ID:          uuid.New(),
		Email:       &email,
		DisplayName: "Reviewer",
	}

	access, err := mgr.GenerateAccessToken(user)
	assert.NoError(t, err)

	claims, err := mgr.ValidateAccessToken(access)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, email, claims.Email)
	assert.Equal(t, "Reviewer", claims.DisplayName)

	// Access tokens do not validate against the refresh secret.
	_, err = mgr.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	mgr := jwt.NewManager(jwt.TokenConfig{
		AccessSecret:  []byte("test-access-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	})

	user := jwt.User{ID: uuid.New(), DisplayName: "Reviewer"}

	refresh, err := mgr.GenerateRefreshToken(user)
	assert.NoError(t, err)

	claims, err := mgr.ValidateRefreshToken(refresh)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.True(t, claims.ExpiresAt.After(time.Now().Add(24*time.Hour)))
}

func TestValidateGarbageToken(t *testing.T) {
	mgr := jwt.NewManager(jwt.TokenConfig{
		AccessSecret:  []byte("test-access-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	})

	_, err := mgr.ValidateAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}
