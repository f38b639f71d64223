package usecase

import (
	"context"
	"errors"

	"teammatch-backend/internal/domain"
	"teammatch-backend/pkg/apperror"
)

type openingUsecase struct {
	openingRepo domain.OpeningRepository
}

func NewOpeningUsecase(openingRepo domain.OpeningRepository) domain.OpeningUsecase {
	return &openingUsecase{openingRepo: openingRepo}
}

func (u *openingUsecase) List(ctx context.Context, filter domain.OpeningFilter) ([]domain.Opening, error) {
	openings, err := u.openingRepo.Fetch(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return openings, nil
}

func (u *openingUsecase) GetByID(ctx context.Context, id string) (*domain.Opening, error) {
	opening, err := u.openingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Opening not found")
		}
		return nil, apperror.Internal(err)
	}
	return opening, nil
}

func (u *openingUsecase) Create(ctx context.Context, userID string, opening *domain.Opening) (*domain.Opening, error) {
	if len(opening.Roles) == 0 {
		return nil, apperror.BadRequest("An opening needs at least one role")
	}
	for _, role := range opening.Roles {
		if role.Name == "" || role.Slots < 1 {
			return nil, apperror.BadRequest("Each role needs a name and at least one slot")
		}
	}

	opening.RecruiterID = userID
	if err := u.openingRepo.Create(ctx, opening); err != nil {
		return nil, apperror.Internal(err)
	}
	return opening, nil
}

func (u *openingUsecase) Update(ctx context.Context, userID, id string, patch *domain.OpeningUpdate) (*domain.Opening, error) {
	opening, err := u.openingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Opening not found")
		}
		return nil, apperror.Internal(err)
	}
	if opening.RecruiterID != userID {
		return nil, apperror.Forbidden("You are not authorized to update this opening")
	}

	// Validate the whole patch before the first write so a bad roles
	// payload cannot leave the field changes half-applied.
	for _, role := range patch.Roles {
		if role.Name == "" || role.Slots < 1 {
			return nil, apperror.BadRequest("Each role needs a name and at least one slot")
		}
	}

	if patch.Title != nil {
		opening.Title = *patch.Title
	}
	if patch.Type != nil {
		opening.Type = *patch.Type
	}
	if patch.Stage != nil {
		opening.Stage = *patch.Stage
	}
	if patch.Description != nil {
		opening.Description = *patch.Description
	}
	if patch.Timeline != nil {
		opening.Timeline = *patch.Timeline
	}
	if patch.Commitment != nil {
		opening.Commitment = *patch.Commitment
	}
	if patch.Compensation != nil {
		opening.Compensation = *patch.Compensation
	}
	if patch.Location != nil {
		opening.Location = *patch.Location
	}
	if patch.Tags != nil {
		opening.Tags = patch.Tags
	}
	if patch.Status != nil {
		if *patch.Status != domain.OpeningStatusOpen && *patch.Status != domain.OpeningStatusClosed {
			return nil, apperror.BadRequest("Invalid opening status")
		}
		opening.Status = *patch.Status
	}

	if err := u.openingRepo.Update(ctx, opening); err != nil {
		return nil, apperror.Internal(err)
	}

	if patch.Roles != nil {
		if err := u.openingRepo.ReconcileRoles(ctx, id, patch.Roles); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, apperror.BadRequest("Role does not belong to this opening or shrinks below its filled count")
			}
			return nil, apperror.Internal(err)
		}
	}

	return u.GetByID(ctx, id)
}

func (u *openingUsecase) Delete(ctx context.Context, userID, id string) error {
	opening, err := u.openingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Opening not found")
		}
		return apperror.Internal(err)
	}
	if opening.RecruiterID != userID {
		return apperror.Forbidden("You are not authorized to delete this opening")
	}

	if err := u.openingRepo.SoftDelete(ctx, id); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
