package postgres

import (
	"context"
	"errors"
	"time"

	"teammatch-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type openingRepo struct {
	db *pgxpool.Pool
}

func NewOpeningRepository(db *pgxpool.Pool) domain.OpeningRepository {
	return &openingRepo{db: db}
}

func (r *openingRepo) Create(ctx context.Context, opening *domain.Opening) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	opening.ID = uuid.NewString()
	opening.Status = domain.OpeningStatusOpen
	now := time.Now()
	opening.CreatedAt = now
	opening.UpdatedAt = now
	if opening.Tags == nil {
		opening.Tags = []string{}
	}

	query := `
		INSERT INTO openings (id, recruiter_id, title, type, stage, description, timeline,
			commitment, compensation, location, tags, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err = tx.Exec(ctx, query,
		opening.ID, opening.RecruiterID, opening.Title, opening.Type, opening.Stage,
		opening.Description, opening.Timeline, opening.Commitment, opening.Compensation,
		opening.Location, opening.Tags, opening.Status, opening.CreatedAt, opening.UpdatedAt,
	)
	if err != nil {
		return err
	}

	for i := range opening.Roles {
		opening.Roles[i].ID = uuid.NewString()
		opening.Roles[i].OpeningID = opening.ID
		opening.Roles[i].Filled = 0
		if _, err := tx.Exec(ctx,
			`INSERT INTO roles (id, opening_id, name, slots, filled) VALUES ($1, $2, $3, $4, 0)`,
			opening.Roles[i].ID, opening.ID, opening.Roles[i].Name, opening.Roles[i].Slots); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *openingRepo) GetByID(ctx context.Context, id string) (*domain.Opening, error) {
	query := `
		SELECT o.id, o.recruiter_id, o.title, o.type, o.stage, o.description, o.timeline,
			o.commitment, o.compensation, o.location, o.tags, o.status, o.created_at, o.updated_at,
			u.id, u.name, u.avatar_url, u.primary_role, u.strength_score
		FROM openings o
		JOIN users u ON o.recruiter_id = u.id
		WHERE o.id = $1 AND NOT o.is_deleted`

	var o domain.Opening
	var rec domain.UserSummary
	err := r.db.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.RecruiterID, &o.Title, &o.Type, &o.Stage, &o.Description, &o.Timeline,
		&o.Commitment, &o.Compensation, &o.Location, &o.Tags, &o.Status, &o.CreatedAt, &o.UpdatedAt,
		&rec.ID, &rec.Name, &rec.AvatarURL, &rec.PrimaryRole, &rec.StrengthScore,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	o.Recruiter = &rec

	roles, err := r.fetchRoles(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Roles = roles[o.ID]
	return &o, nil
}

func (r *openingRepo) Fetch(ctx context.Context, filter domain.OpeningFilter) ([]domain.Opening, error) {
	query := `
		SELECT o.id, o.recruiter_id, o.title, o.type, o.stage, o.description, o.timeline,
			o.commitment, o.compensation, o.location, o.tags, o.status, o.created_at, o.updated_at,
			u.id, u.name, u.avatar_url, u.primary_role, u.strength_score
		FROM openings o
		JOIN users u ON o.recruiter_id = u.id
		WHERE NOT o.is_deleted
			AND ($1 = '' OR o.status = $1)
			AND ($2 = '' OR o.type = $2)
			AND ($3 = '' OR o.commitment = $3)
			AND ($4 = '' OR o.location = $4)
		ORDER BY o.created_at DESC`

	rows, err := r.db.Query(ctx, query, filter.Status, filter.Type, filter.Commitment, filter.Location)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	openings, err := collectOpenings(rows)
	if err != nil {
		return nil, err
	}
	return r.attachRoles(ctx, openings)
}

func (r *openingRepo) FetchByRecruiter(ctx context.Context, recruiterID string) ([]domain.Opening, error) {
	query := `
		SELECT o.id, o.recruiter_id, o.title, o.type, o.stage, o.description, o.timeline,
			o.commitment, o.compensation, o.location, o.tags, o.status, o.created_at, o.updated_at,
			u.id, u.name, u.avatar_url, u.primary_role, u.strength_score
		FROM openings o
		JOIN users u ON o.recruiter_id = u.id
		WHERE o.recruiter_id = $1 AND NOT o.is_deleted
		ORDER BY o.created_at DESC`

	rows, err := r.db.Query(ctx, query, recruiterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	openings, err := collectOpenings(rows)
	if err != nil {
		return nil, err
	}
	return r.attachRoles(ctx, openings)
}

func collectOpenings(rows pgx.Rows) ([]domain.Opening, error) {
	var openings []domain.Opening
	for rows.Next() {
		var o domain.Opening
		var rec domain.UserSummary
		if err := rows.Scan(
			&o.ID, &o.RecruiterID, &o.Title, &o.Type, &o.Stage, &o.Description, &o.Timeline,
			&o.Commitment, &o.Compensation, &o.Location, &o.Tags, &o.Status, &o.CreatedAt, &o.UpdatedAt,
			&rec.ID, &rec.Name, &rec.AvatarURL, &rec.PrimaryRole, &rec.StrengthScore,
		); err != nil {
			return nil, err
		}
		o.Recruiter = &rec
		openings = append(openings, o)
	}
	return openings, rows.Err()
}

func (r *openingRepo) attachRoles(ctx context.Context, openings []domain.Opening) ([]domain.Opening, error) {
	if len(openings) == 0 {
		return openings, nil
	}
	ids := make([]string, len(openings))
	for i := range openings {
		ids[i] = openings[i].ID
	}
	roles, err := r.fetchRoles(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range openings {
		openings[i].Roles = roles[openings[i].ID]
	}
	return openings, nil
}

func (r *openingRepo) fetchRoles(ctx context.Context, openingIDs []string) (map[string][]domain.Role, error) {
	query := `SELECT id, opening_id, name, slots, filled
	          FROM roles WHERE opening_id = ANY($1) AND NOT is_deleted ORDER BY created_at`
	rows, err := r.db.Query(ctx, query, openingIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := make(map[string][]domain.Role)
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.OpeningID, &role.Name, &role.Slots, &role.Filled); err != nil {
			return nil, err
		}
		roles[role.OpeningID] = append(roles[role.OpeningID], role)
	}
	return roles, rows.Err()
}

func (r *openingRepo) Update(ctx context.Context, opening *domain.Opening) error {
	opening.UpdatedAt = time.Now()
	query := `UPDATE openings SET
		title = $2,
		type = $3,
		stage = $4,
		description = $5,
		timeline = $6,
		commitment = $7,
		compensation = $8,
		location = $9,
		tags = $10,
		status = $11,
		updated_at = $12
	WHERE id = $1 AND NOT is_deleted`
	result, err := r.db.Exec(ctx, query,
		opening.ID, opening.Title, opening.Type, opening.Stage, opening.Description,
		opening.Timeline, opening.Commitment, opening.Compensation, opening.Location,
		opening.Tags, opening.Status, opening.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReconcileRoles diffs the payload against the live role set: entries with
// an ID are updated in place (filled counts survive the edit), entries
// without one are created, and live roles missing from the payload are
// soft-deleted.
func (r *openingRepo) ReconcileRoles(ctx context.Context, openingID string, roles []domain.Role) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	keep := make([]string, 0, len(roles))
	for i := range roles {
		role := &roles[i]
		if role.ID == "" {
			role.ID = uuid.NewString()
			role.OpeningID = openingID
			role.Filled = 0
			if _, err := tx.Exec(ctx,
				`INSERT INTO roles (id, opening_id, name, slots, filled) VALUES ($1, $2, $3, $4, 0)`,
				role.ID, openingID, role.Name, role.Slots); err != nil {
				return err
			}
		} else {
			result, err := tx.Exec(ctx,
				`UPDATE roles SET name = $3, slots = $4
				 WHERE id = $1 AND opening_id = $2 AND NOT is_deleted AND filled <= $4`,
				role.ID, openingID, role.Name, role.Slots)
			if err != nil {
				return err
			}
			if result.RowsAffected() == 0 {
				return domain.ErrNotFound
			}
		}
		keep = append(keep, role.ID)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE roles SET is_deleted = TRUE
		 WHERE opening_id = $1 AND NOT is_deleted AND NOT (id = ANY($2))`,
		openingID, keep); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *openingRepo) SoftDelete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE openings SET is_deleted = TRUE, updated_at = $2 WHERE id = $1 AND NOT is_deleted`,
		id, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
