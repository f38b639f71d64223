package usecase

import (
	"context"
	"errors"
	"strings"

	"teammatch-backend/internal/domain"
	"teammatch-backend/pkg/apperror"
)

type chatUsecase struct {
	dmRepo   domain.DirectMessageRepository
	userRepo domain.UserRepository
}

func NewChatUsecase(dmRepo domain.DirectMessageRepository, userRepo domain.UserRepository) domain.ChatUsecase {
	return &chatUsecase{dmRepo: dmRepo, userRepo: userRepo}
}

func (u *chatUsecase) GetDirectMessages(ctx context.Context, userID, otherID string) ([]domain.DirectMessage, error) {
	messages, err := u.dmRepo.GetConversation(ctx, userID, otherID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return messages, nil
}

func (u *chatUsecase) SendDirectMessage(ctx context.Context, userID, otherID, text string) (*domain.DirectMessage, error) {
	if userID == otherID {
		return nil, apperror.BadRequest("You cannot send a message to yourself")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.BadRequest("Message text is required")
	}

	if _, err := u.userRepo.GetByID(ctx, otherID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}

	msg := &domain.DirectMessage{
		SenderID:   userID,
		ReceiverID: otherID,
		Text:       text,
	}
	if err := u.dmRepo.Create(ctx, msg); err != nil {
		return nil, apperror.Internal(err)
	}
	return msg, nil
}

// GetConversations returns the distinct direct-message peers as user
// summaries.
func (u *chatUsecase) GetConversations(ctx context.Context, userID string) ([]domain.UserSummary, error) {
	peerIDs, err := u.dmRepo.GetPeerIDs(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if len(peerIDs) == 0 {
		return []domain.UserSummary{}, nil
	}

	summaries, err := u.userRepo.GetSummaries(ctx, peerIDs)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return summaries, nil
}
