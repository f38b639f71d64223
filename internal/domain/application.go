package domain

import (
	"context"
	"errors"
	"time"
)

// Application status constants
const (
	ApplicationStatusPending  = "Pending"
	ApplicationStatusAccepted = "Accepted"
	ApplicationStatusRejected = "Rejected"
)

// ErrStatusConflict is returned when a status write would move an
// application out of a terminal state.
var ErrStatusConflict = errors.New("application status conflict")

// Application links an applicant to an opening. Status is monotonic:
// Pending is the only state with outgoing transitions.
type Application struct {
	ID              string    `json:"id"`
	OpeningID       string    `json:"openingId"`
	ApplicantID     string    `json:"applicantId"`
	CoverLetter     string    `json:"coverLetter"`
	PreferredRoleID *string   `json:"preferredRoleId,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	// Joined data for list responses
	Applicant *UserSummary `json:"applicant,omitempty"`
	Opening   *Opening     `json:"opening,omitempty"`
}

// AcceptOutcome reports the side effects of a status update so clients
// can react (new team, opening closed) without refetching. A rejection
// carries only the application.
type AcceptOutcome struct {
	Application   *Application `json:"application"`
	TeamID        string       `json:"teamId,omitempty"`
	TeamCreated   bool         `json:"teamCreated"`
	OpeningClosed bool         `json:"openingClosed"`
	RoleFilled    bool         `json:"roleFilled"`
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	GetByOpeningID(ctx context.Context, openingID string) ([]Application, error)
	GetByApplicantID(ctx context.Context, applicantID string) ([]Application, error)
	Exists(ctx context.Context, openingID, applicantID string) (bool, error)
	// Accept runs the whole acceptance workflow (status write, conditional
	// role increment, opening closure check, lazy team creation, member
	// upsert) in a single serializable transaction.
	Accept(ctx context.Context, applicationID string, roleID *string) (*AcceptOutcome, error)
	// Reject moves a Pending application to Rejected. Re-rejecting is a
	// no-op; any other terminal state yields ErrStatusConflict.
	Reject(ctx context.Context, applicationID string) error
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, userID, openingID, coverLetter string, preferredRoleID *string) (*Application, error)
	ListForOpening(ctx context.Context, userID, openingID string) ([]Application, error)
	UpdateStatus(ctx context.Context, userID, applicationID, status string, roleID *string) (*AcceptOutcome, error)
	GetMyApplications(ctx context.Context, userID string) ([]Application, error)
}
