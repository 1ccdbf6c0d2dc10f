package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/domain"
)

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, member_id, loan_id, type, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		notification.ID,
		notification.MemberID,
		notification.LoanID,
		notification.Type,
		notification.Message,
		notification.Status,
		notification.CreatedAt,
	)

	return err
}

func (r *notificationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, sentAt *time.Time) error {
	query := `
		UPDATE notifications
		SET status = $2, sent_at = $3
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, status, sentAt)
	return err
}

func (r *notificationRepository) List(ctx context.Context) ([]*domain.Notification, error) {
	query := `
		SELECT id, member_id, loan_id, type, message, status, sent_at, created_at
		FROM notifications
		ORDER BY created_at DESC
	`

	notifications := []*domain.Notification{}
	if err := r.db.SelectContext(ctx, &notifications, query); err != nil {
		return nil, err
	}

	return notifications, nil
}
