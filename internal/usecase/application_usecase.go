package usecase

import (
	"context"
	"errors"

	"teammatch-backend/internal/domain"
	"teammatch-backend/pkg/apperror"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	openingRepo     domain.OpeningRepository
}

func NewApplicationUsecase(applicationRepo domain.ApplicationRepository, openingRepo domain.OpeningRepository) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: applicationRepo,
		openingRepo:     openingRepo,
	}
}

// Apply submits an application for an opening.
func (uc *applicationUsecase) Apply(ctx context.Context, userID, openingID, coverLetter string, preferredRoleID *string) (*domain.Application, error) {
	opening, err := uc.openingRepo.GetByID(ctx, openingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Opening not found")
		}
		return nil, apperror.Internal(err)
	}

	if opening.Status != domain.OpeningStatusOpen {
		return nil, apperror.BadRequest("This opening is no longer accepting applications")
	}
	if opening.RecruiterID == userID {
		return nil, apperror.BadRequest("You cannot apply to your own opening")
	}

	if preferredRoleID != nil {
		found := false
		for _, role := range opening.Roles {
			if role.ID == *preferredRoleID {
				found = true
				break
			}
		}
		if !found {
			return nil, apperror.BadRequest("Preferred role does not belong to this opening")
		}
	}

	exists, err := uc.applicationRepo.Exists(ctx, openingID, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.BadRequest("You have already applied to this opening")
	}

	app := &domain.Application{
		OpeningID:       openingID,
		ApplicantID:     userID,
		CoverLetter:     coverLetter,
		PreferredRoleID: preferredRoleID,
	}
	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		return nil, apperror.Internal(err)
	}
	return app, nil
}

// ListForOpening returns the applications for an opening; only its
// recruiter may see them.
func (uc *applicationUsecase) ListForOpening(ctx context.Context, userID, openingID string) ([]domain.Application, error) {
	opening, err := uc.openingRepo.GetByID(ctx, openingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Opening not found")
		}
		return nil, apperror.Internal(err)
	}
	if opening.RecruiterID != userID {
		return nil, apperror.Forbidden("You are not authorized to view these applications")
	}

	applications, err := uc.applicationRepo.GetByOpeningID(ctx, openingID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return applications, nil
}

// UpdateStatus accepts or rejects an application on behalf of the
// opening's recruiter. Acceptance drives the team-formation workflow;
// the returned outcome reports what it did (team created, role filled,
// opening closed) so the client can react without refetching.
func (uc *applicationUsecase) UpdateStatus(ctx context.Context, userID, applicationID, status string, roleID *string) (*domain.AcceptOutcome, error) {
	if status != domain.ApplicationStatusAccepted && status != domain.ApplicationStatusRejected {
		return nil, apperror.BadRequest("Invalid status. Must be: Accepted or Rejected")
	}

	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}

	opening, err := uc.openingRepo.GetByID(ctx, app.OpeningID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Opening not found")
		}
		return nil, apperror.Internal(err)
	}
	if opening.RecruiterID != userID {
		return nil, apperror.Forbidden("You are not authorized to update this application")
	}

	if status == domain.ApplicationStatusRejected {
		if err := uc.applicationRepo.Reject(ctx, applicationID); err != nil {
			if errors.Is(err, domain.ErrStatusConflict) {
				return nil, apperror.Conflict("Application has already been accepted")
			}
			return nil, apperror.Internal(err)
		}
		app.Status = domain.ApplicationStatusRejected
		return &domain.AcceptOutcome{Application: app}, nil
	}

	outcome, err := uc.applicationRepo.Accept(ctx, applicationID, roleID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrStatusConflict):
			return nil, apperror.Conflict("Application has already been rejected")
		case errors.Is(err, domain.ErrNotFound):
			return nil, apperror.NotFound("Application not found")
		default:
			return nil, apperror.Internal(err)
		}
	}
	return outcome, nil
}

func (uc *applicationUsecase) GetMyApplications(ctx context.Context, userID string) ([]domain.Application, error) {
	applications, err := uc.applicationRepo.GetByApplicantID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return applications, nil
}
