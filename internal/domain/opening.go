package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// Opening status constants
const (
	OpeningStatusOpen   = "Open"
	OpeningStatusClosed = "Closed / Team Formed"
)

type Opening struct {
	ID           string    `json:"id"`
	RecruiterID  string    `json:"recruiterId"`
	Title        string    `json:"title"`
	Type         string    `json:"type"`
	Stage        string    `json:"stage"`
	Description  string    `json:"description"`
	Timeline     string    `json:"timeline"`
	Commitment   string    `json:"commitment"`
	Compensation string    `json:"compensation"`
	Location     string    `json:"location"`
	Tags         []string  `json:"tags"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Joined data
	Roles     []Role       `json:"roles,omitempty"`
	Recruiter *UserSummary `json:"recruiter,omitempty"`
}

// Role is a named capacity slot inside an opening. filled never exceeds
// slots; only the acceptance workflow increments it.
type Role struct {
	ID        string `json:"id"`
	OpeningID string `json:"openingId"`
	Name      string `json:"name"`
	Slots     int    `json:"slots"`
	Filled    int    `json:"filled"`
}

// OpeningFilter narrows the public listing. Empty fields match everything.
type OpeningFilter struct {
	Status     string
	Type       string
	Commitment string
	Location   string
}

// OpeningUpdate carries the owner's patch; nil fields are left untouched.
// A non-nil Roles slice triggers role reconciliation: entries with an ID
// update the existing role in place, entries without one are created, and
// existing roles absent from the payload are soft-deleted.
type OpeningUpdate struct {
	Title        *string  `json:"title"`
	Type         *string  `json:"type"`
	Stage        *string  `json:"stage"`
	Description  *string  `json:"description"`
	Timeline     *string  `json:"timeline"`
	Commitment   *string  `json:"commitment"`
	Compensation *string  `json:"compensation"`
	Location     *string  `json:"location"`
	Tags         []string `json:"tags"`
	Status       *string  `json:"status"`
	Roles        []Role   `json:"roles"`
}

type OpeningRepository interface {
	Create(ctx context.Context, opening *Opening) error
	GetByID(ctx context.Context, id string) (*Opening, error)
	Fetch(ctx context.Context, filter OpeningFilter) ([]Opening, error)
	FetchByRecruiter(ctx context.Context, recruiterID string) ([]Opening, error)
	Update(ctx context.Context, opening *Opening) error
	ReconcileRoles(ctx context.Context, openingID string, roles []Role) error
	SoftDelete(ctx context.Context, id string) error
}

type OpeningUsecase interface {
	List(ctx context.Context, filter OpeningFilter) ([]Opening, error)
	GetByID(ctx context.Context, id string) (*Opening, error)
	Create(ctx context.Context, userID string, opening *Opening) (*Opening, error)
	Update(ctx context.Context, userID, id string, patch *OpeningUpdate) (*Opening, error)
	Delete(ctx context.Context, userID, id string) error
}
