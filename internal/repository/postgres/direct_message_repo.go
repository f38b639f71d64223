package postgres

import (
	"context"
	"time"

	"teammatch-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type directMessageRepo struct {
	db *pgxpool.Pool
}

func NewDirectMessageRepository(db *pgxpool.Pool) domain.DirectMessageRepository {
	return &directMessageRepo{db: db}
}

func (r *directMessageRepo) Create(ctx context.Context, msg *domain.DirectMessage) error {
	msg.ID = uuid.NewString()
	msg.CreatedAt = time.Now()
	query := `INSERT INTO direct_messages (id, sender_id, receiver_id, text, created_at)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(ctx, query, msg.ID, msg.SenderID, msg.ReceiverID, msg.Text, msg.CreatedAt)
	return err
}

func (r *directMessageRepo) GetConversation(ctx context.Context, userID, otherID string) ([]domain.DirectMessage, error) {
	query := `
		SELECT dm.id, dm.sender_id, dm.receiver_id, dm.text, dm.created_at,
			s.id, s.name, s.avatar_url, s.primary_role, s.strength_score,
			rc.id, rc.name, rc.avatar_url, rc.primary_role, rc.strength_score
		FROM direct_messages dm
		JOIN users s ON dm.sender_id = s.id
		JOIN users rc ON dm.receiver_id = rc.id
		WHERE NOT dm.is_deleted
			AND ((dm.sender_id = $1 AND dm.receiver_id = $2)
			  OR (dm.sender_id = $2 AND dm.receiver_id = $1))
		ORDER BY dm.created_at ASC`

	rows, err := r.db.Query(ctx, query, userID, otherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.DirectMessage
	for rows.Next() {
		var m domain.DirectMessage
		var sender, receiver domain.UserSummary
		if err := rows.Scan(
			&m.ID, &m.SenderID, &m.ReceiverID, &m.Text, &m.CreatedAt,
			&sender.ID, &sender.Name, &sender.AvatarURL, &sender.PrimaryRole, &sender.StrengthScore,
			&receiver.ID, &receiver.Name, &receiver.AvatarURL, &receiver.PrimaryRole, &receiver.StrengthScore,
		); err != nil {
			return nil, err
		}
		m.Sender = &sender
		m.Receiver = &receiver
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *directMessageRepo) GetPeerIDs(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT DISTINCT peer FROM (
			SELECT receiver_id AS peer FROM direct_messages WHERE sender_id = $1 AND NOT is_deleted
			UNION
			SELECT sender_id AS peer FROM direct_messages WHERE receiver_id = $1 AND NOT is_deleted
		) peers`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
