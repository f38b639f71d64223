package usecase_test

import (
	"context"
	"testing"

	"teammatch-backend/internal/domain"
	"teammatch-backend/internal/usecase"
	"teammatch-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func intPtr(n int) *int { return &n }

func TestGetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown user", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(userRepo, new(MockOpeningRepo), validator.New())

		userRepo.On("GetByID", ctx, "ghost").Return(nil, domain.ErrNotFound)

		_, err := uc.GetProfile(ctx, "ghost")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("joins portfolio and openings and strips credentials", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		openingRepo := new(MockOpeningRepo)
		uc := usecase.NewUserUsecase(userRepo, openingRepo, validator.New())

		userRepo.On("GetByID", ctx, "u1").Return(&domain.User{ID: "u1", PasswordHash: "secret"}, nil)
		userRepo.On("GetPortfolio", ctx, "u1").Return([]domain.Project{{ID: "p1", Title: "Demo"}}, nil)
		openingRepo.On("FetchByRecruiter", ctx, "u1").Return([]domain.Opening{{ID: "o1"}}, nil)

		user, err := uc.GetProfile(ctx, "u1")
		assert.NoError(t, err)
		assert.Empty(t, user.PasswordHash)
		assert.Len(t, user.Portfolio, 1)
		assert.Len(t, user.Openings, 1)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("out-of-range strength score fails validation", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(userRepo, new(MockOpeningRepo), validator.New())

		_, err := uc.UpdateProfile(ctx, "u1", &domain.ProfileUpdate{StrengthScore: intPtr(150)})
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
		userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("nil fields keep their stored values", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(userRepo, new(MockOpeningRepo), validator.New())

		userRepo.On("GetByID", ctx, "u1").Return(&domain.User{
			ID:     "u1",
			Name:   "Original",
			Bio:    "Keep me",
			Skills: []string{"go"},
		}, nil)
		userRepo.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Run(func(args mock.Arguments) {
			u := args.Get(1).(*domain.User)
			assert.Equal(t, "Renamed", u.Name)
			assert.Equal(t, "Keep me", u.Bio)
			assert.Equal(t, []string{"go"}, u.Skills)
		})
		userRepo.On("GetPortfolio", ctx, "u1").Return([]domain.Project{}, nil)

		_, err := uc.UpdateProfile(ctx, "u1", &domain.ProfileUpdate{Name: strPtr("Renamed")})
		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("a portfolio patch replaces the whole set", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(userRepo, new(MockOpeningRepo), validator.New())

		items := []domain.Project{{Title: "New thing"}}
		userRepo.On("GetByID", ctx, "u1").Return(&domain.User{ID: "u1"}, nil)
		userRepo.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(nil)
		userRepo.On("ReplacePortfolio", ctx, "u1", items).Return(nil)
		userRepo.On("GetPortfolio", ctx, "u1").Return([]domain.Project{{ID: "p1", Title: "New thing"}}, nil)

		user, err := uc.UpdateProfile(ctx, "u1", &domain.ProfileUpdate{Portfolio: items})
		assert.NoError(t, err)
		assert.Len(t, user.Portfolio, 1)
		userRepo.AssertExpectations(t)
	})
}
