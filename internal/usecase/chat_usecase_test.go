package usecase_test

import (
	"context"
	"testing"

	"teammatch-backend/internal/domain"
	"teammatch-backend/internal/usecase"
	"teammatch-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSendDirectMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("cannot message yourself", func(t *testing.T) {
		dmRepo := new(MockDirectMessageRepo)
		userRepo := new(MockUserRepo)
		uc := usecase.NewChatUsecase(dmRepo, userRepo)

		_, err := uc.SendDirectMessage(ctx, "u1", "u1", "hi me")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "yourself")
		dmRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("blank text is rejected", func(t *testing.T) {
		uc := usecase.NewChatUsecase(new(MockDirectMessageRepo), new(MockUserRepo))

		_, err := uc.SendDirectMessage(ctx, "u1", "u2", "  ")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Message text is required")
	})

	t.Run("unknown receiver is a 404", func(t *testing.T) {
		dmRepo := new(MockDirectMessageRepo)
		userRepo := new(MockUserRepo)
		uc := usecase.NewChatUsecase(dmRepo, userRepo)

		userRepo.On("GetByID", ctx, "ghost").Return(nil, domain.ErrNotFound)

		_, err := uc.SendDirectMessage(ctx, "u1", "ghost", "hello?")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
		dmRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("stores trimmed text with both parties", func(t *testing.T) {
		dmRepo := new(MockDirectMessageRepo)
		userRepo := new(MockUserRepo)
		uc := usecase.NewChatUsecase(dmRepo, userRepo)

		userRepo.On("GetByID", ctx, "u2").Return(&domain.User{ID: "u2"}, nil)
		dmRepo.On("Create", ctx, mock.AnythingOfType("*domain.DirectMessage")).Return(nil)

		msg, err := uc.SendDirectMessage(ctx, "u1", "u2", "  hey  ")
		assert.NoError(t, err)
		assert.Equal(t, "hey", msg.Text)
		assert.Equal(t, "u1", msg.SenderID)
		assert.Equal(t, "u2", msg.ReceiverID)
		dmRepo.AssertExpectations(t)
	})
}

func TestGetConversations(t *testing.T) {
	ctx := context.Background()

	t.Run("no peers yields an empty list, not nil", func(t *testing.T) {
		dmRepo := new(MockDirectMessageRepo)
		userRepo := new(MockUserRepo)
		uc := usecase.NewChatUsecase(dmRepo, userRepo)

		dmRepo.On("GetPeerIDs", ctx, "u1").Return([]string{}, nil)

		summaries, err := uc.GetConversations(ctx, "u1")
		assert.NoError(t, err)
		assert.NotNil(t, summaries)
		assert.Empty(t, summaries)
		userRepo.AssertNotCalled(t, "GetSummaries", mock.Anything, mock.Anything)
	})

	t.Run("peer ids resolve to user summaries", func(t *testing.T) {
		dmRepo := new(MockDirectMessageRepo)
		userRepo := new(MockUserRepo)
		uc := usecase.NewChatUsecase(dmRepo, userRepo)

		dmRepo.On("GetPeerIDs", ctx, "u1").Return([]string{"u2", "u3"}, nil)
		userRepo.On("GetSummaries", ctx, []string{"u2", "u3"}).Return([]domain.UserSummary{
			{ID: "u2", Name: "Alex"},
			{ID: "u3", Name: "Sam"},
		}, nil)

		summaries, err := uc.GetConversations(ctx, "u1")
		assert.NoError(t, err)
		assert.Len(t, summaries, 2)
		assert.Equal(t, "Alex", summaries[0].Name)
	})
}

func TestGetDirectMessages(t *testing.T) {
	ctx := context.Background()
	dmRepo := new(MockDirectMessageRepo)
	uc := usecase.NewChatUsecase(dmRepo, new(MockUserRepo))

	dmRepo.On("GetConversation", ctx, "u1", "u2").Return([]domain.DirectMessage{
		{ID: "dm1", SenderID: "u1", ReceiverID: "u2", Text: "hi"},
	}, nil)

	messages, err := uc.GetDirectMessages(ctx, "u1", "u2")
	assert.NoError(t, err)
	assert.Len(t, messages, 1)
}
