package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"teammatch-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, email, password_hash, name, avatar_url, bio, skills, primary_role,
	experience_level, availability, interests, strength_score, social_links, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var socialLinks []byte
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.AvatarURL, &u.Bio, &u.Skills, &u.PrimaryRole,
		&u.ExperienceLevel, &u.Availability, &u.Interests, &u.StrengthScore, &socialLinks,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if len(socialLinks) > 0 {
		if err := json.Unmarshal(socialLinks, &u.SocialLinks); err != nil {
			return nil, err
		}
	}
	return &u, nil
}

// encodeSocialLinks keeps NULL in the column when no links are set.
func encodeSocialLinks(links map[string]string) ([]byte, error) {
	if len(links) == 0 {
		return nil, nil
	}
	return json.Marshal(links)
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	socialLinks, err := encodeSocialLinks(user.SocialLinks)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO users (id, email, password_hash, name, avatar_url, bio, skills, primary_role,
			experience_level, availability, interests, strength_score, social_links, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err = r.db.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.AvatarURL, user.Bio, user.Skills,
		user.PrimaryRole, user.ExperienceLevel, user.Availability, user.Interests,
		user.StrengthScore, socialLinks, user.CreatedAt, user.UpdatedAt,
	)
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND NOT is_deleted`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND NOT is_deleted`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()
	socialLinks, err := encodeSocialLinks(user.SocialLinks)
	if err != nil {
		return err
	}
	query := `UPDATE users SET
		name = $2,
		avatar_url = $3,
		bio = $4,
		skills = $5,
		primary_role = $6,
		experience_level = $7,
		availability = $8,
		interests = $9,
		strength_score = $10,
		social_links = $11,
		updated_at = $12
	WHERE id = $1 AND NOT is_deleted`
	result, err := r.db.Exec(ctx, query,
		user.ID, user.Name, user.AvatarURL, user.Bio, user.Skills, user.PrimaryRole,
		user.ExperienceLevel, user.Availability, user.Interests, user.StrengthScore,
		socialLinks, user.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) GetPortfolio(ctx context.Context, userID string) ([]domain.Project, error) {
	query := `SELECT id, user_id, title, url, description
	          FROM projects WHERE user_id = $1 AND NOT is_deleted ORDER BY created_at`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Project
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.URL, &p.Description); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// ReplacePortfolio soft-deletes the current set and recreates it from the
// payload, matching the profile-update contract.
func (r *userRepo) ReplacePortfolio(ctx context.Context, userID string, items []domain.Project) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE projects SET is_deleted = TRUE WHERE user_id = $1 AND NOT is_deleted`, userID); err != nil {
		return err
	}

	for i := range items {
		items[i].ID = uuid.NewString()
		items[i].UserID = userID
		if _, err := tx.Exec(ctx,
			`INSERT INTO projects (id, user_id, title, url, description) VALUES ($1, $2, $3, $4, $5)`,
			items[i].ID, userID, items[i].Title, items[i].URL, items[i].Description); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *userRepo) GetSummaries(ctx context.Context, ids []string) ([]domain.UserSummary, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT id, name, avatar_url, primary_role, strength_score
	          FROM users WHERE id = ANY($1) AND NOT is_deleted ORDER BY name`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []domain.UserSummary
	for rows.Next() {
		var s domain.UserSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.AvatarURL, &s.PrimaryRole, &s.StrengthScore); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
