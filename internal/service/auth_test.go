package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/security"
)

func newAuthFixture() (*MockUserRepository, *MockGoogleVerifier, AuthService) {
	userRepo := new(MockUserRepository)
	verifier := new(MockGoogleVerifier)
	tokens := security.NewTokenManager(
		"test-access-secret-0123456789abcdef",
		"test-refresh-secret-0123456789abcd",
		60, 60*24*7)
	svc := NewAuthService(userRepo, tokens, verifier)
	return userRepo, verifier, svc
}

func TestRegisterHashesPasswordAndMintsTokens(t *testing.T) {
	userRepo, _, svc := newAuthFixture()

	userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, sql.ErrNoRows)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 42
	})

	user, pair, err := svc.Register(context.Background(), "Alice", "alice@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter2hunter2")))
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestRegisterRejectsTakenEmail(t *testing.T) {
	userRepo, _, svc := newAuthFixture()

	userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(&domain.User{ID: 1}, nil)

	_, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	userRepo, _, svc := newAuthFixture()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.DefaultCost)
	require.NoError(t, err)
	userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(&domain.User{ID: 42, Email: "alice@example.com", PasswordHash: string(hash)}, nil)

	user, pair, err := svc.Login(context.Background(), "alice@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, int32(42), user.ID)
	assert.NotEmpty(t, pair.AccessToken)

	_, _, err = svc.Login(context.Background(), "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsOAuthOnlyAccount(t *testing.T) {
	userRepo, _, svc := newAuthFixture()

	userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(&domain.User{ID: 42, GoogleID: "goog-1"}, nil)

	_, _, err := svc.Login(context.Background(), "alice@example.com", "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGoogleLoginLinksExistingEmailAccount(t *testing.T) {
	userRepo, verifier, svc := newAuthFixture()

	verifier.On("Verify", mock.Anything, "id-token").Return(&security.GoogleProfile{Subject: "goog-1", Email: "alice@example.com", Name: "Alice"}, nil)
	userRepo.On("GetByGoogleID", mock.Anything, "goog-1").Return(nil, sql.ErrNoRows)
	userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(&domain.User{ID: 42, Email: "alice@example.com"}, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == 42 && u.GoogleID == "goog-1"
	})).Return(nil)

	user, pair, err := svc.GoogleLogin(context.Background(), "id-token")
	require.NoError(t, err)
	assert.Equal(t, int32(42), user.ID)
	assert.NotEmpty(t, pair.AccessToken)
	userRepo.AssertExpectations(t)
}

func TestGoogleLoginCreatesNewAccount(t *testing.T) {
	userRepo, verifier, svc := newAuthFixture()

	verifier.On("Verify", mock.Anything, "id-token").Return(&security.GoogleProfile{Subject: "goog-2", Email: "bob@example.com", Name: "Bob"}, nil)
	userRepo.On("GetByGoogleID", mock.Anything, "goog-2").Return(nil, sql.ErrNoRows)
	userRepo.On("GetByEmail", mock.Anything, "bob@example.com").Return(nil, sql.ErrNoRows)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.GoogleID == "goog-2" && u.Email == "bob@example.com" && u.PasswordHash == ""
	})).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 43
	})

	user, _, err := svc.GoogleLogin(context.Background(), "id-token")
	require.NoError(t, err)
	assert.Equal(t, int32(43), user.ID)
}

func TestRefreshRoundTrip(t *testing.T) {
	userRepo, _, svc := newAuthFixture()

	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.DefaultCost)
	stored := &domain.User{ID: 42, Email: "alice@example.com", PasswordHash: string(hash)}
	userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(stored, nil)
	userRepo.On("GetByID", mock.Anything, int32(42)).Return(stored, nil)

	_, pair, err := svc.Login(context.Background(), "alice@example.com", "hunter2hunter2")
	require.NoError(t, err)

	fresh, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)

	// An access token is not accepted on the refresh path.
	_, err = svc.Refresh(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
