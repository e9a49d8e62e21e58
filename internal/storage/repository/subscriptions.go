package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/service-marketplace/internal/models"
)

// CreateSubscription сохраняет оплаченную подписку и возвращает её ID.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (int, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (user_uid, plan_type, amount, start_date, end_date, is_active, payment_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		sub.UserUID, sub.PlanType, sub.Amount, sub.StartDate, sub.EndDate,
		sub.IsActive, sub.PaymentID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// FindActiveSubscription возвращает действующую подписку пользователя.
// Подписка считается действующей, если она активна и end_date >= now:
// в последний день срока подписка ещё работает.
// Если подписки нет, возвращает found = false без ошибки.
func (s *Storage) FindActiveSubscription(ctx context.Context, userUID string,
	now time.Time) (*models.Subscription, bool, error) {
	const op = "storage.FindActiveSubscription"
	select {
	case <-ctx.Done():
		return nil, false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, plan_type, amount, start_date, end_date, is_active, payment_id, created_at
			  FROM subscriptions
			  WHERE user_uid = $1 AND is_active = TRUE AND end_date >= $2
			  ORDER BY end_date DESC
			  LIMIT 1`
	sub := &models.Subscription{}
	row := s.DB.QueryRowContext(ctx, query, userUID, now)
	if err := row.Scan(&sub.ID, &sub.UserUID, &sub.PlanType, &sub.Amount, &sub.StartDate,
		&sub.EndDate, &sub.IsActive, &sub.PaymentID, &sub.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return sub, true, nil
}
