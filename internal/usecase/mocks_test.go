package usecase_test

import (
	"context"
	"time"

	"teammatch-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetPortfolio(ctx context.Context, userID string) ([]domain.Project, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *MockUserRepo) ReplacePortfolio(ctx context.Context, userID string, items []domain.Project) error {
	return m.Called(ctx, userID, items).Error(0)
}

func (m *MockUserRepo) GetSummaries(ctx context.Context, ids []string) ([]domain.UserSummary, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserSummary), args.Error(1)
}

type MockOpeningRepo struct {
	mock.Mock
}

func (m *MockOpeningRepo) Create(ctx context.Context, opening *domain.Opening) error {
	return m.Called(ctx, opening).Error(0)
}

func (m *MockOpeningRepo) GetByID(ctx context.Context, id string) (*domain.Opening, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Opening), args.Error(1)
}

func (m *MockOpeningRepo) Fetch(ctx context.Context, filter domain.OpeningFilter) ([]domain.Opening, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Opening), args.Error(1)
}

func (m *MockOpeningRepo) FetchByRecruiter(ctx context.Context, recruiterID string) ([]domain.Opening, error) {
	args := m.Called(ctx, recruiterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Opening), args.Error(1)
}

func (m *MockOpeningRepo) Update(ctx context.Context, opening *domain.Opening) error {
	return m.Called(ctx, opening).Error(0)
}

func (m *MockOpeningRepo) ReconcileRoles(ctx context.Context, openingID string, roles []domain.Role) error {
	return m.Called(ctx, openingID, roles).Error(0)
}

func (m *MockOpeningRepo) SoftDelete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}

func (m *MockApplicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) GetByOpeningID(ctx context.Context, openingID string) ([]domain.Application, error) {
	args := m.Called(ctx, openingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) GetByApplicantID(ctx context.Context, applicantID string) ([]domain.Application, error) {
	args := m.Called(ctx, applicantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) Exists(ctx context.Context, openingID, applicantID string) (bool, error) {
	args := m.Called(ctx, openingID, applicantID)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationRepo) Accept(ctx context.Context, applicationID string, roleID *string) (*domain.AcceptOutcome, error) {
	args := m.Called(ctx, applicationID, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AcceptOutcome), args.Error(1)
}

func (m *MockApplicationRepo) Reject(ctx context.Context, applicationID string) error {
	return m.Called(ctx, applicationID).Error(0)
}

type MockTeamRepo struct {
	mock.Mock
}

func (m *MockTeamRepo) GetByUserID(ctx context.Context, userID string) ([]domain.Team, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Team), args.Error(1)
}

func (m *MockTeamRepo) IsMember(ctx context.Context, teamID, userID string) (bool, error) {
	args := m.Called(ctx, teamID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTeamRepo) GetMembers(ctx context.Context, teamID string) ([]domain.TeamMember, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TeamMember), args.Error(1)
}

func (m *MockTeamRepo) CreateMessage(ctx context.Context, msg *domain.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockTeamRepo) GetMessages(ctx context.Context, teamID string, after *time.Time) ([]domain.Message, error) {
	args := m.Called(ctx, teamID, after)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}

type MockDirectMessageRepo struct {
	mock.Mock
}

func (m *MockDirectMessageRepo) Create(ctx context.Context, msg *domain.DirectMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockDirectMessageRepo) GetConversation(ctx context.Context, userID, otherID string) ([]domain.DirectMessage, error) {
	args := m.Called(ctx, userID, otherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DirectMessage), args.Error(1)
}

func (m *MockDirectMessageRepo) GetPeerIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
