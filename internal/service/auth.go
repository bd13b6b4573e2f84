package service

import (
	"context"
	"database/sql"
	"errors"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
	"toolshare-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidToken       = errors.New("invalid token")
)

type authService struct {
	userRepo       repository.UserRepository
	tokens         security.TokenManager
	googleVerifier security.GoogleVerifier
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager, googleVerifier security.GoogleVerifier) AuthService {
	return &authService{
		userRepo:       userRepo,
		tokens:         tokens,
		googleVerifier: googleVerifier,
	}
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*domain.User, *TokenPair, error) {
	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	pair, err := s.generateTokens(user)
	return user, pair, err
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if user.PasswordHash == "" {
		// OAuth-only account; no password to compare.
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.generateTokens(user)
	return user, pair, err
}

func (s *authService) GoogleLogin(ctx context.Context, idToken string) (*domain.User, *TokenPair, error) {
	profile, err := s.googleVerifier.Verify(ctx, idToken)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.GetByGoogleID(ctx, profile.Subject)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, nil, err
		}
		// First Google login: link an existing email account or create one.
		user, err = s.userRepo.GetByEmail(ctx, profile.Email)
		if err == nil {
			user.GoogleID = profile.Subject
			if err := s.userRepo.Update(ctx, user); err != nil {
				return nil, nil, err
			}
		} else if errors.Is(err, sql.ErrNoRows) {
			user = &domain.User{
				Name:     profile.Name,
				Email:    profile.Email,
				GoogleID: profile.Subject,
			}
			if err := s.userRepo.Create(ctx, user); err != nil {
				return nil, nil, err
			}
		} else {
			return nil, nil, err
		}
	}

	pair, err := s.generateTokens(user)
	return user, pair, err
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return s.generateTokens(user)
}

func (s *authService) generateTokens(user *domain.User) (*TokenPair, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Name, user.Email, user.IsAdmin)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
