package domain

import (
	"context"
	"time"
)

type User struct {
	ID              string            `json:"id"`
	Email           string            `json:"email"`
	PasswordHash    string            `json:"-"`
	Name            string            `json:"name"`
	AvatarURL       *string           `json:"avatarUrl,omitempty"`
	Bio             string            `json:"bio"`
	Skills          []string          `json:"skills"`
	PrimaryRole     *string           `json:"primaryRole,omitempty"`
	ExperienceLevel int               `json:"experienceLevel"`
	Availability    int               `json:"availability"`
	Interests       []string          `json:"interests"`
	StrengthScore   int               `json:"strengthScore"`
	SocialLinks     map[string]string `json:"socialLinks,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`

	// Joined data for profile responses
	Portfolio []Project `json:"portfolio,omitempty"`
	Openings  []Opening `json:"openings,omitempty"`
}

// Project is a portfolio entry on a user profile
type Project struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// UserSummary is the compact shape embedded in openings, applications,
// messages and conversation lists.
type UserSummary struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	AvatarURL     *string `json:"avatarUrl,omitempty"`
	PrimaryRole   *string `json:"primaryRole,omitempty"`
	StrengthScore int     `json:"strengthScore"`
}

// ProfileUpdate carries the self-service profile patch. Nil fields are
// left untouched; a non-nil Portfolio replaces the whole set.
type ProfileUpdate struct {
	Name            *string           `json:"name" validate:"omitempty,min=1,max=120"`
	Bio             *string           `json:"bio"`
	Skills          []string          `json:"skills"`
	PrimaryRole     *string           `json:"primaryRole"`
	ExperienceLevel *int              `json:"experienceLevel" validate:"omitempty,min=1,max=10"`
	Availability    *int              `json:"availability" validate:"omitempty,min=0,max=168"`
	Interests       []string          `json:"interests"`
	StrengthScore   *int              `json:"strengthScore" validate:"omitempty,min=0,max=100"`
	AvatarURL       *string           `json:"avatarUrl"`
	SocialLinks     map[string]string `json:"socialLinks"`
	Portfolio       []Project         `json:"portfolio"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	GetPortfolio(ctx context.Context, userID string) ([]Project, error)
	ReplacePortfolio(ctx context.Context, userID string, items []Project) error
	GetSummaries(ctx context.Context, ids []string) ([]UserSummary, error)
}

type AuthUsecase interface {
	Register(ctx context.Context, email, password, name string) (*User, string, string, error)
	Login(ctx context.Context, email, password string) (*User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	GetCurrentUser(ctx context.Context, id string) (*User, error)
}

type UserUsecase interface {
	GetProfile(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, userID string, patch *ProfileUpdate) (*User, error)
}
