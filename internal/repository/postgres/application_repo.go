package postgres

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"teammatch-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	teamCodePrefix   = "INAT-TEAM-"
	teamCodeAttempts = 5
	acceptRetryLimit = 3

	serializationFailure = "40001"
	uniqueViolation      = "23505"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	app.ID = uuid.NewString()
	app.Status = domain.ApplicationStatusPending
	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now

	query := `
		INSERT INTO applications (id, opening_id, applicant_id, cover_letter, preferred_role_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		app.ID, app.OpeningID, app.ApplicantID, app.CoverLetter, app.PreferredRoleID,
		app.Status, app.CreatedAt, app.UpdatedAt,
	)
	return err
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	query := `
		SELECT id, opening_id, applicant_id, cover_letter, preferred_role_id, status, created_at, updated_at
		FROM applications WHERE id = $1 AND NOT is_deleted`

	var app domain.Application
	err := r.db.QueryRow(ctx, query, id).Scan(
		&app.ID, &app.OpeningID, &app.ApplicantID, &app.CoverLetter, &app.PreferredRoleID,
		&app.Status, &app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// GetByOpeningID returns applications for an opening with applicant
// summaries, newest first.
func (r *applicationRepo) GetByOpeningID(ctx context.Context, openingID string) ([]domain.Application, error) {
	query := `
		SELECT a.id, a.opening_id, a.applicant_id, a.cover_letter, a.preferred_role_id,
			a.status, a.created_at, a.updated_at,
			u.id, u.name, u.avatar_url, u.primary_role, u.strength_score
		FROM applications a
		JOIN users u ON a.applicant_id = u.id
		WHERE a.opening_id = $1 AND NOT a.is_deleted
		ORDER BY a.created_at DESC`

	rows, err := r.db.Query(ctx, query, openingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		var applicant domain.UserSummary
		if err := rows.Scan(
			&app.ID, &app.OpeningID, &app.ApplicantID, &app.CoverLetter, &app.PreferredRoleID,
			&app.Status, &app.CreatedAt, &app.UpdatedAt,
			&applicant.ID, &applicant.Name, &applicant.AvatarURL, &applicant.PrimaryRole, &applicant.StrengthScore,
		); err != nil {
			return nil, err
		}
		app.Applicant = &applicant
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// GetByApplicantID returns the caller's applications with opening
// summaries, newest first.
func (r *applicationRepo) GetByApplicantID(ctx context.Context, applicantID string) ([]domain.Application, error) {
	query := `
		SELECT a.id, a.opening_id, a.applicant_id, a.cover_letter, a.preferred_role_id,
			a.status, a.created_at, a.updated_at,
			o.id, o.recruiter_id, o.title, o.type, o.status
		FROM applications a
		JOIN openings o ON a.opening_id = o.id
		WHERE a.applicant_id = $1 AND NOT a.is_deleted
		ORDER BY a.created_at DESC`

	rows, err := r.db.Query(ctx, query, applicantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		var opening domain.Opening
		if err := rows.Scan(
			&app.ID, &app.OpeningID, &app.ApplicantID, &app.CoverLetter, &app.PreferredRoleID,
			&app.Status, &app.CreatedAt, &app.UpdatedAt,
			&opening.ID, &opening.RecruiterID, &opening.Title, &opening.Type, &opening.Status,
		); err != nil {
			return nil, err
		}
		app.Opening = &opening
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

func (r *applicationRepo) Exists(ctx context.Context, openingID, applicantID string) (bool, error) {
	query := `SELECT EXISTS(
		SELECT 1 FROM applications WHERE opening_id = $1 AND applicant_id = $2 AND NOT is_deleted)`
	var exists bool
	err := r.db.QueryRow(ctx, query, openingID, applicantID).Scan(&exists)
	return exists, err
}

// Reject moves a Pending application to Rejected. The status filter makes
// the write conditional so a racing acceptance cannot be overwritten.
func (r *applicationRepo) Reject(ctx context.Context, applicationID string) error {
	query := `UPDATE applications SET status = $2, updated_at = $3
	          WHERE id = $1 AND NOT is_deleted AND status IN ($2, $4)`
	result, err := r.db.Exec(ctx, query, applicationID,
		domain.ApplicationStatusRejected, time.Now(), domain.ApplicationStatusPending)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		// Row missing entirely vs. terminal-state conflict
		app, err := r.GetByID(ctx, applicationID)
		if err != nil {
			return err
		}
		if app.Status != domain.ApplicationStatusRejected {
			return domain.ErrStatusConflict
		}
	}
	return nil
}

// Accept runs the acceptance workflow in a single serializable
// transaction, retried on serialization failures. The status write,
// conditional role increment, opening closure, lazy team creation and
// member upsert all commit or roll back together.
func (r *applicationRepo) Accept(ctx context.Context, applicationID string, roleID *string) (*domain.AcceptOutcome, error) {
	var outcome *domain.AcceptOutcome
	var err error
	for attempt := 0; attempt < acceptRetryLimit; attempt++ {
		outcome, err = r.acceptOnce(ctx, applicationID, roleID)
		if !isRetryableTxError(err) {
			return outcome, err
		}
	}
	return outcome, err
}

func (r *applicationRepo) acceptOnce(ctx context.Context, applicationID string, roleID *string) (*domain.AcceptOutcome, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var app domain.Application
	err = tx.QueryRow(ctx, `
		SELECT id, opening_id, applicant_id, cover_letter, preferred_role_id, status, created_at, updated_at
		FROM applications WHERE id = $1 AND NOT is_deleted FOR UPDATE`, applicationID).Scan(
		&app.ID, &app.OpeningID, &app.ApplicantID, &app.CoverLetter, &app.PreferredRoleID,
		&app.Status, &app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if app.Status == domain.ApplicationStatusRejected {
		return nil, domain.ErrStatusConflict
	}
	// A repeated accept is an idempotent retry: skip the role increment
	// but still make sure enrollment happened.
	retry := app.Status == domain.ApplicationStatusAccepted

	var recruiterID, openingTitle, openingStatus string
	err = tx.QueryRow(ctx, `
		SELECT recruiter_id, title, status FROM openings
		WHERE id = $1 AND NOT is_deleted FOR UPDATE`, app.OpeningID).Scan(
		&recruiterID, &openingTitle, &openingStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	app.Status = domain.ApplicationStatusAccepted
	app.UpdatedAt = time.Now()
	if _, err := tx.Exec(ctx,
		`UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1`,
		app.ID, app.Status, app.UpdatedAt); err != nil {
		return nil, err
	}

	outcome := &domain.AcceptOutcome{Application: &app}

	var roleName *string
	if roleID != nil {
		if !retry {
			// Atomic conditional increment: at capacity the write matches
			// nothing and the acceptance proceeds without it.
			result, err := tx.Exec(ctx, `
				UPDATE roles SET filled = filled + 1
				WHERE id = $1 AND opening_id = $2 AND NOT is_deleted AND filled < slots`,
				*roleID, app.OpeningID)
			if err != nil {
				return nil, err
			}
			outcome.RoleFilled = result.RowsAffected() == 1
		}
		err = tx.QueryRow(ctx,
			`SELECT name FROM roles WHERE id = $1 AND opening_id = $2 AND NOT is_deleted`,
			*roleID, app.OpeningID).Scan(&roleName)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}

	var unfilled int
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM roles WHERE opening_id = $1 AND NOT is_deleted AND filled < slots`,
		app.OpeningID).Scan(&unfilled); err != nil {
		return nil, err
	}
	if unfilled == 0 && openingStatus != domain.OpeningStatusClosed {
		if _, err := tx.Exec(ctx,
			`UPDATE openings SET status = $2, updated_at = $3 WHERE id = $1`,
			app.OpeningID, domain.OpeningStatusClosed, time.Now()); err != nil {
			return nil, err
		}
		outcome.OpeningClosed = true
	}

	teamID, created, err := ensureTeam(ctx, tx, app.OpeningID, openingTitle, recruiterID)
	if err != nil {
		return nil, err
	}
	outcome.TeamID = teamID
	outcome.TeamCreated = created

	label := domain.TeamRoleCollaborator
	if roleName != nil {
		label = *roleName
	}
	if err := upsertMember(ctx, tx, teamID, app.ApplicantID, label); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return outcome, nil
}

// ensureTeam finds the opening's team or creates it, enrolling the
// recruiter as Originator on first creation. The unique constraint on
// teams.opening_id is the real guard; the lookup is just the fast path.
func ensureTeam(ctx context.Context, tx pgx.Tx, openingID, openingTitle, recruiterID string) (string, bool, error) {
	var teamID string
	err := tx.QueryRow(ctx,
		`SELECT id FROM teams WHERE opening_id = $1 AND NOT is_deleted`, openingID).Scan(&teamID)
	if err == nil {
		return teamID, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", false, err
	}

	teamID = uuid.NewString()
	inserted := false
	for attempt := 0; attempt < teamCodeAttempts; attempt++ {
		code := fmt.Sprintf("%s%04d", teamCodePrefix, 1000+rand.Intn(9000))
		result, err := tx.Exec(ctx, `
			INSERT INTO teams (id, opening_id, name, code) VALUES ($1, $2, $3, $4)
			ON CONFLICT (code) DO NOTHING`,
			teamID, openingID, openingTitle, code)
		if err != nil {
			return "", false, err
		}
		if result.RowsAffected() == 1 {
			inserted = true
			break
		}
	}
	if !inserted {
		return "", false, errors.New("exhausted team code attempts")
	}

	if err := upsertMember(ctx, tx, teamID, recruiterID, domain.TeamRoleOriginator); err != nil {
		return "", false, err
	}
	return teamID, true, nil
}

func upsertMember(ctx context.Context, tx pgx.Tx, teamID, userID, roleName string) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO team_members (id, team_id, user_id, role_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (team_id, user_id)
		DO UPDATE SET role_name = EXCLUDED.role_name, is_deleted = FALSE`,
		uuid.NewString(), teamID, userID, roleName)
	return err
}

// isRetryableTxError reports whether rerunning the acceptance transaction
// can succeed. Besides serialization failures, a unique violation here can
// only come from the team insert losing a race with a concurrent first
// acceptance; the rerun finds the winner's team and proceeds.
func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == serializationFailure || pgErr.Code == uniqueViolation
}
