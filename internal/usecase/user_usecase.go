package usecase

import (
	"context"
	"errors"

	"teammatch-backend/internal/domain"
	"teammatch-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type userUsecase struct {
	userRepo    domain.UserRepository
	openingRepo domain.OpeningRepository
	validate    *validator.Validate
}

func NewUserUsecase(userRepo domain.UserRepository, openingRepo domain.OpeningRepository, validate *validator.Validate) domain.UserUsecase {
	return &userUsecase{userRepo: userRepo, openingRepo: openingRepo, validate: validate}
}

// GetProfile returns the public profile with live portfolio and openings.
func (u *userUsecase) GetProfile(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}

	portfolio, err := u.userRepo.GetPortfolio(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	user.Portfolio = portfolio

	openings, err := u.openingRepo.FetchByRecruiter(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	user.Openings = openings

	// Never leak credentials through the public endpoint
	user.PasswordHash = ""
	return user, nil
}

// UpdateProfile applies the self-service patch. A non-nil Portfolio slice
// replaces the whole portfolio set.
func (u *userUsecase) UpdateProfile(ctx context.Context, userID string, patch *domain.ProfileUpdate) (*domain.User, error) {
	if err := u.validate.Struct(patch); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if patch.Skills != nil {
		user.Skills = patch.Skills
	}
	if patch.PrimaryRole != nil {
		user.PrimaryRole = patch.PrimaryRole
	}
	if patch.ExperienceLevel != nil {
		user.ExperienceLevel = *patch.ExperienceLevel
	}
	if patch.Availability != nil {
		user.Availability = *patch.Availability
	}
	if patch.Interests != nil {
		user.Interests = patch.Interests
	}
	if patch.StrengthScore != nil {
		user.StrengthScore = *patch.StrengthScore
	}
	if patch.AvatarURL != nil {
		user.AvatarURL = patch.AvatarURL
	}
	if patch.SocialLinks != nil {
		user.SocialLinks = patch.SocialLinks
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}

	if patch.Portfolio != nil {
		if err := u.userRepo.ReplacePortfolio(ctx, userID, patch.Portfolio); err != nil {
			return nil, apperror.Internal(err)
		}
	}

	portfolio, err := u.userRepo.GetPortfolio(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	user.Portfolio = portfolio

	user.PasswordHash = ""
	return user, nil
}
