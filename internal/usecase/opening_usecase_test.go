package usecase_test

import (
	"context"
	"errors"
	"testing"

	"teammatch-backend/internal/domain"
	"teammatch-backend/internal/usecase"
	"teammatch-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func strPtr(s string) *string { return &s }

func TestCreateOpening(t *testing.T) {
	ctx := context.Background()

	t.Run("requires at least one role", func(t *testing.T) {
		repo := new(MockOpeningRepo)
		uc := usecase.NewOpeningUsecase(repo)

		_, err := uc.Create(ctx, "u1", &domain.Opening{Title: "Roleless"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least one role")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects a role without slots", func(t *testing.T) {
		repo := new(MockOpeningRepo)
		uc := usecase.NewOpeningUsecase(repo)

		_, err := uc.Create(ctx, "u1", &domain.Opening{
			Title: "Bad role",
			Roles: []domain.Role{{Name: "Backend", Slots: 0}},
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least one slot")
	})

	t.Run("stamps the recruiter onto the opening", func(t *testing.T) {
		repo := new(MockOpeningRepo)
		uc := usecase.NewOpeningUsecase(repo)

		repo.On("Create", ctx, mock.AnythingOfType("*domain.Opening")).Return(nil)

		created, err := uc.Create(ctx, "recruiter-1", &domain.Opening{
			Title: "Side project",
			Roles: []domain.Role{{Name: "Backend", Slots: 2}},
		})
		assert.NoError(t, err)
		assert.Equal(t, "recruiter-1", created.RecruiterID)
		repo.AssertExpectations(t)
	})
}

func TestUpdateOpening(t *testing.T) {
	ctx := context.Background()

	t.Run("only the recruiter may update", func(t *testing.T) {
		repo := new(MockOpeningRepo)
		uc := usecase.NewOpeningUsecase(repo)

		repo.On("GetByID", ctx, "o1").Return(&domain.Opening{ID: "o1", RecruiterID: "owner"}, nil)

		_, err := uc.Update(ctx, "intruder", "o1", &domain.OpeningUpdate{Title: strPtr("Stolen")})
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 403, appErr.Code)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		repo := new(MockOpeningRepo)
		uc := usecase.NewOpeningUsecase(repo)

		repo.On("GetByID", ctx, "o1").Return(&domain.Opening{ID: "o1", RecruiterID: "owner"}, nil)

		_, err := uc.Update(ctx, "owner", "o1", &domain.OpeningUpdate{Status: strPtr("Paused")})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid opening status")
	})

	t.Run("merges only the provided fields", func(t *testing.T) {
		repo := new(MockOpeningRepo)
		uc := usecase.NewOpeningUsecase(repo)

		repo.On("GetByID", ctx, "o1").Return(&domain.Opening{
			ID:          "o1",
			RecruiterID: "owner",
			Title:       "Original",
			Location:    "Remote",
		}, nil)
		repo.On("Update", ctx, mock.AnythingOfType("*domain.Opening")).Return(nil).Run(func(args mock.Arguments) {
			o := args.Get(1).(*domain.Opening)
			assert.Equal(t, "Renamed", o.Title)
			assert.Equal(t, "Remote", o.Location)
		})

		_, err := uc.Update(ctx, "owner", "o1", &domain.OpeningUpdate{Title: strPtr("Renamed")})
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("invalid roles payload is rejected before any write", func(t *testing.T) {
		repo := new(MockOpeningRepo)
		uc := usecase.NewOpeningUsecase(repo)

		repo.On("GetByID", ctx, "o1").Return(&domain.Opening{ID: "o1", RecruiterID: "owner"}, nil)

		_, err := uc.Update(ctx, "owner", "o1", &domain.OpeningUpdate{
			Title: strPtr("Renamed"),
			Roles: []domain.Role{{Name: "", Slots: 0}},
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least one slot")
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "ReconcileRoles", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("role reconciliation failure surfaces as a bad request", func(t *testing.T) {
		repo := new(MockOpeningRepo)
		uc := usecase.NewOpeningUsecase(repo)

		repo.On("GetByID", ctx, "o1").Return(&domain.Opening{ID: "o1", RecruiterID: "owner"}, nil)
		repo.On("Update", ctx, mock.AnythingOfType("*domain.Opening")).Return(nil)
		repo.On("ReconcileRoles", ctx, "o1", mock.AnythingOfType("[]domain.Role")).
			Return(domain.ErrNotFound)

		_, err := uc.Update(ctx, "owner", "o1", &domain.OpeningUpdate{
			Roles: []domain.Role{{ID: "r-foreign", Name: "Backend", Slots: 1}},
		})
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
	})
}

func TestDeleteOpening(t *testing.T) {
	ctx := context.Background()

	t.Run("missing opening", func(t *testing.T) {
		repo := new(MockOpeningRepo)
		uc := usecase.NewOpeningUsecase(repo)

		repo.On("GetByID", ctx, "gone").Return(nil, domain.ErrNotFound)

		err := uc.Delete(ctx, "u1", "gone")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("only the recruiter may delete", func(t *testing.T) {
		repo := new(MockOpeningRepo)
		uc := usecase.NewOpeningUsecase(repo)

		repo.On("GetByID", ctx, "o1").Return(&domain.Opening{ID: "o1", RecruiterID: "owner"}, nil)

		err := uc.Delete(ctx, "intruder", "o1")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 403, appErr.Code)
		repo.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
	})

	t.Run("owner soft-deletes", func(t *testing.T) {
		repo := new(MockOpeningRepo)
		uc := usecase.NewOpeningUsecase(repo)

		repo.On("GetByID", ctx, "o1").Return(&domain.Opening{ID: "o1", RecruiterID: "owner"}, nil)
		repo.On("SoftDelete", ctx, "o1").Return(nil)

		err := uc.Delete(ctx, "owner", "o1")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestListOpeningsPassesFilter(t *testing.T) {
	ctx := context.Background()
	repo := new(MockOpeningRepo)
	uc := usecase.NewOpeningUsecase(repo)

	filter := domain.OpeningFilter{Status: domain.OpeningStatusOpen, Location: "Remote"}
	repo.On("Fetch", ctx, filter).Return([]domain.Opening{{ID: "o1"}}, nil)

	openings, err := uc.List(ctx, filter)
	assert.NoError(t, err)
	assert.Len(t, openings, 1)
	repo.AssertExpectations(t)
}

func TestListOpeningsWrapsRepoError(t *testing.T) {
	ctx := context.Background()
	repo := new(MockOpeningRepo)
	uc := usecase.NewOpeningUsecase(repo)

	repo.On("Fetch", ctx, domain.OpeningFilter{}).Return(nil, errors.New("db down"))

	_, err := uc.List(ctx, domain.OpeningFilter{})
	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, 500, appErr.Code)
}
