package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/service-marketplace/internal/models"
)

// SavePayment сохраняет запись о платеже и возвращает её ID.
func (s *Storage) SavePayment(ctx context.Context, payment models.Payment) (int, error) {
	const op = "storage.SavePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (user_uid, order_id, payment_id, amount, currency, status, purpose, reference_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		payment.UserUID, payment.OrderID, payment.PaymentID, payment.Amount,
		payment.Currency, payment.Status, payment.Purpose, payment.ReferenceID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// UpdatePaymentStatus обновляет статус платежа по order_id
// и записывает payment_id внешней платёжной системы.
func (s *Storage) UpdatePaymentStatus(ctx context.Context, orderID, paymentID, status string) (int, error) {
	const op = "storage.UpdatePaymentStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx,
		`UPDATE payments SET payment_id = $1, status = $2 WHERE order_id = $3`,
		paymentID, status, orderID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// GetPaymentByOrderID возвращает платёж по order_id.
func (s *Storage) GetPaymentByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	const op = "storage.GetPaymentByOrderID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, order_id, payment_id, amount, currency, status, purpose, reference_id, created_at
			  FROM payments
			  WHERE order_id = $1`
	p := &models.Payment{}
	row := s.DB.QueryRowContext(ctx, query, orderID)
	if err := row.Scan(&p.ID, &p.UserUID, &p.OrderID, &p.PaymentID, &p.Amount,
		&p.Currency, &p.Status, &p.Purpose, &p.ReferenceID, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// GetSuccessfulPaymentByPaymentID возвращает успешный платёж пользователя
// по payment_id внешней платёжной системы.
func (s *Storage) GetSuccessfulPaymentByPaymentID(ctx context.Context,
	userUID, paymentID string) (*models.Payment, error) {
	const op = "storage.GetSuccessfulPaymentByPaymentID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, order_id, payment_id, amount, currency, status, purpose, reference_id, created_at
			  FROM payments
			  WHERE user_uid = $1 AND payment_id = $2 AND status = $3`
	p := &models.Payment{}
	row := s.DB.QueryRowContext(ctx, query, userUID, paymentID, models.PaymentSuccess)
	if err := row.Scan(&p.ID, &p.UserUID, &p.OrderID, &p.PaymentID, &p.Amount,
		&p.Currency, &p.Status, &p.Purpose, &p.ReferenceID, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// SumSuccessfulPayments возвращает сумму всех успешных платежей.
func (s *Storage) SumSuccessfulPayments(ctx context.Context) (int64, error) {
	const op = "storage.SumSuccessfulPayments"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var total int64
	if err := s.DB.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = $1`,
		models.PaymentSuccess).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
