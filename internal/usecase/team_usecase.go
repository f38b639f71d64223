package usecase

import (
	"context"
	"strings"
	"time"

	"teammatch-backend/internal/domain"
	"teammatch-backend/pkg/apperror"
)

type teamUsecase struct {
	teamRepo domain.TeamRepository
}

func NewTeamUsecase(teamRepo domain.TeamRepository) domain.TeamUsecase {
	return &teamUsecase{teamRepo: teamRepo}
}

func (u *teamUsecase) ListMyTeams(ctx context.Context, userID string) ([]domain.Team, error) {
	teams, err := u.teamRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return teams, nil
}

func (u *teamUsecase) GetMembers(ctx context.Context, userID, teamID string) ([]domain.TeamMember, error) {
	if err := u.requireMembership(ctx, teamID, userID); err != nil {
		return nil, err
	}
	members, err := u.teamRepo.GetMembers(ctx, teamID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return members, nil
}

func (u *teamUsecase) GetMessages(ctx context.Context, userID, teamID string, after *time.Time) ([]domain.Message, error) {
	if err := u.requireMembership(ctx, teamID, userID); err != nil {
		return nil, err
	}
	messages, err := u.teamRepo.GetMessages(ctx, teamID, after)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return messages, nil
}

func (u *teamUsecase) SendMessage(ctx context.Context, userID, teamID, text string) (*domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.BadRequest("Message text is required")
	}
	if err := u.requireMembership(ctx, teamID, userID); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		TeamID:   teamID,
		SenderID: userID,
		Text:     text,
	}
	if err := u.teamRepo.CreateMessage(ctx, msg); err != nil {
		return nil, apperror.Internal(err)
	}
	return msg, nil
}

func (u *teamUsecase) requireMembership(ctx context.Context, teamID, userID string) error {
	ok, err := u.teamRepo.IsMember(ctx, teamID, userID)
	if err != nil {
		return apperror.Internal(err)
	}
	if !ok {
		return apperror.Forbidden("You are not a member of this team")
	}
	return nil
}
