package domain

import (
	"context"
	"time"
)

type DirectMessage struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`

	Sender   *UserSummary `json:"sender,omitempty"`
	Receiver *UserSummary `json:"receiver,omitempty"`
}

type DirectMessageRepository interface {
	Create(ctx context.Context, msg *DirectMessage) error
	// GetConversation returns both directions of traffic between the two
	// users, ascending by creation time.
	GetConversation(ctx context.Context, userID, otherID string) ([]DirectMessage, error)
	// GetPeerIDs returns the distinct users the given user has exchanged
	// direct messages with.
	GetPeerIDs(ctx context.Context, userID string) ([]string, error)
}

type ChatUsecase interface {
	GetDirectMessages(ctx context.Context, userID, otherID string) ([]DirectMessage, error)
	SendDirectMessage(ctx context.Context, userID, otherID, text string) (*DirectMessage, error)
	GetConversations(ctx context.Context, userID string) ([]UserSummary, error)
}
