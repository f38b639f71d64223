package domain

import (
	"context"
	"time"
)

// Team member labels assigned by the acceptance workflow
const (
	TeamRoleOriginator   = "Originator"
	TeamRoleCollaborator = "Collaborator"
)

// Team is created lazily, at most once per opening, the first time an
// application for that opening is accepted.
type Team struct {
	ID        string    `json:"id"`
	OpeningID string    `json:"openingId"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"createdAt"`

	// Joined data
	Opening *Opening     `json:"opening,omitempty"`
	Members []TeamMember `json:"members,omitempty"`
}

type TeamMember struct {
	ID       string    `json:"id"`
	TeamID   string    `json:"teamId"`
	UserID   string    `json:"userId"`
	RoleName string    `json:"roleName"`
	JoinedAt time.Time `json:"joinedAt"`

	User *UserSummary `json:"user,omitempty"`
}

// Message is an append-only team chat record, delivered to polling
// clients in ascending creation order.
type Message struct {
	ID        string    `json:"id"`
	TeamID    string    `json:"teamId"`
	SenderID  string    `json:"senderId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`

	Sender *UserSummary `json:"sender,omitempty"`
}

type TeamRepository interface {
	GetByUserID(ctx context.Context, userID string) ([]Team, error)
	IsMember(ctx context.Context, teamID, userID string) (bool, error)
	GetMembers(ctx context.Context, teamID string) ([]TeamMember, error)
	CreateMessage(ctx context.Context, msg *Message) error
	// GetMessages returns non-deleted messages ordered by creation time
	// ascending; a non-nil after bound makes polling incremental.
	GetMessages(ctx context.Context, teamID string, after *time.Time) ([]Message, error)
}

type TeamUsecase interface {
	ListMyTeams(ctx context.Context, userID string) ([]Team, error)
	GetMembers(ctx context.Context, userID, teamID string) ([]TeamMember, error)
	GetMessages(ctx context.Context, userID, teamID string, after *time.Time) ([]Message, error)
	SendMessage(ctx context.Context, userID, teamID, text string) (*Message, error)
}
