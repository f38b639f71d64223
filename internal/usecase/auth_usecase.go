package usecase

import (
	"context"
	"errors"
	"strings"

	"teammatch-backend/internal/domain"
	"teammatch-backend/pkg/apperror"
	"teammatch-backend/pkg/token"

	"golang.org/x/crypto/bcrypt"
)

type authUsecase struct {
	userRepo domain.UserRepository
	tokens   *token.Manager
}

func NewAuthUsecase(userRepo domain.UserRepository, tokens *token.Manager) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo, tokens: tokens}
}

func (u *authUsecase) Register(ctx context.Context, email, password, name string) (*domain.User, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(password) < 8 {
		return nil, "", "", apperror.BadRequest("Password must be at least 8 characters")
	}

	existing, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, "", "", apperror.Internal(err)
	}
	if existing != nil {
		return nil, "", "", apperror.BadRequest("Email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", apperror.Internal(err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Skills:       []string{},
		Interests:    []string{},
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, "", "", apperror.Internal(err)
	}

	access, refresh, err := u.tokens.GeneratePair(user.ID)
	if err != nil {
		return nil, "", "", apperror.Internal(err)
	}
	return user, access, refresh, nil
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", "", apperror.Unauthorized("Invalid email or password")
		}
		return nil, "", "", apperror.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", apperror.Unauthorized("Invalid email or password")
	}

	access, refresh, err := u.tokens.GeneratePair(user.ID)
	if err != nil {
		return nil, "", "", apperror.Internal(err)
	}
	return user, access, refresh, nil
}

func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := u.tokens.Parse(refreshToken)
	if err != nil {
		return "", "", apperror.Unauthorized("Invalid refresh token")
	}

	// The user must still exist and be live before re-issuing tokens.
	if _, err := u.userRepo.GetByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", "", apperror.Unauthorized("User not found")
		}
		return "", "", apperror.Internal(err)
	}

	access, refresh, err := u.tokens.GeneratePair(claims.UserID)
	if err != nil {
		return "", "", apperror.Internal(err)
	}
	return access, refresh, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}
