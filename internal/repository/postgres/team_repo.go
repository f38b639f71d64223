package postgres

import (
	"context"
	"time"

	"teammatch-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type teamRepo struct {
	db *pgxpool.Pool
}

func NewTeamRepository(db *pgxpool.Pool) domain.TeamRepository {
	return &teamRepo{db: db}
}

// GetByUserID returns the teams the user belongs to, each with its
// opening summary and live member roster.
func (r *teamRepo) GetByUserID(ctx context.Context, userID string) ([]domain.Team, error) {
	query := `
		SELECT t.id, t.opening_id, t.name, t.code, t.created_at,
			o.id, o.recruiter_id, o.title, o.type, o.status
		FROM teams t
		JOIN team_members m ON m.team_id = t.id AND m.user_id = $1 AND NOT m.is_deleted
		JOIN openings o ON t.opening_id = o.id
		WHERE NOT t.is_deleted
		ORDER BY t.created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []domain.Team
	for rows.Next() {
		var t domain.Team
		var o domain.Opening
		if err := rows.Scan(
			&t.ID, &t.OpeningID, &t.Name, &t.Code, &t.CreatedAt,
			&o.ID, &o.RecruiterID, &o.Title, &o.Type, &o.Status,
		); err != nil {
			return nil, err
		}
		t.Opening = &o
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range teams {
		members, err := r.GetMembers(ctx, teams[i].ID)
		if err != nil {
			return nil, err
		}
		teams[i].Members = members
	}
	return teams, nil
}

func (r *teamRepo) IsMember(ctx context.Context, teamID, userID string) (bool, error) {
	query := `SELECT EXISTS(
		SELECT 1 FROM team_members WHERE team_id = $1 AND user_id = $2 AND NOT is_deleted)`
	var ok bool
	err := r.db.QueryRow(ctx, query, teamID, userID).Scan(&ok)
	return ok, err
}

func (r *teamRepo) GetMembers(ctx context.Context, teamID string) ([]domain.TeamMember, error) {
	query := `
		SELECT m.id, m.team_id, m.user_id, m.role_name, m.created_at,
			u.id, u.name, u.avatar_url, u.primary_role, u.strength_score
		FROM team_members m
		JOIN users u ON m.user_id = u.id
		WHERE m.team_id = $1 AND NOT m.is_deleted
		ORDER BY m.created_at`

	rows, err := r.db.Query(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.TeamMember
	for rows.Next() {
		var m domain.TeamMember
		var u domain.UserSummary
		if err := rows.Scan(
			&m.ID, &m.TeamID, &m.UserID, &m.RoleName, &m.JoinedAt,
			&u.ID, &u.Name, &u.AvatarURL, &u.PrimaryRole, &u.StrengthScore,
		); err != nil {
			return nil, err
		}
		m.User = &u
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *teamRepo) CreateMessage(ctx context.Context, msg *domain.Message) error {
	msg.ID = uuid.NewString()
	msg.CreatedAt = time.Now()
	query := `INSERT INTO messages (id, team_id, sender_id, text, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(ctx, query, msg.ID, msg.TeamID, msg.SenderID, msg.Text, msg.CreatedAt)
	return err
}

func (r *teamRepo) GetMessages(ctx context.Context, teamID string, after *time.Time) ([]domain.Message, error) {
	query := `
		SELECT msg.id, msg.team_id, msg.sender_id, msg.text, msg.created_at,
			u.id, u.name, u.avatar_url, u.primary_role, u.strength_score
		FROM messages msg
		JOIN users u ON msg.sender_id = u.id
		WHERE msg.team_id = $1 AND NOT msg.is_deleted
			AND ($2::timestamptz IS NULL OR msg.created_at > $2)
		ORDER BY msg.created_at ASC`

	rows, err := r.db.Query(ctx, query, teamID, after)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var m domain.Message
		var u domain.UserSummary
		if err := rows.Scan(
			&m.ID, &m.TeamID, &m.SenderID, &m.Text, &m.CreatedAt,
			&u.ID, &u.Name, &u.AvatarURL, &u.PrimaryRole, &u.StrengthScore,
		); err != nil {
			return nil, err
		}
		m.Sender = &u
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
