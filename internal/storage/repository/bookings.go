package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/service-marketplace/internal/models"
)

const bookingColumns = `id, customer_uid, customer_name, service_id, service_title,
		provider_uid, provider_name, status, scheduled_date, notes, created_at, completed_at`

// CreateBooking сохраняет бронирование без списания кредита.
// Используется для заказчиков с активной подпиской.
func (s *Storage) CreateBooking(ctx context.Context, booking models.Booking) (int, error) {
	const op = "storage.CreateBooking"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO bookings (customer_uid, customer_name, service_id, service_title,
			      provider_uid, provider_name, status, scheduled_date, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		booking.CustomerUID, booking.CustomerName, booking.ServiceID, booking.ServiceTitle,
		booking.ProviderUID, booking.ProviderName, booking.Status, booking.ScheduledDate,
		booking.Notes).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// CreateBookingWithCredit списывает один кредит заказчика и сохраняет
// бронирование в одной транзакции. Списание выполняется условным UPDATE,
// поэтому при параллельных запросах кредит получает ровно один из них.
// Если кредитов нет, возвращает models.ErrInsufficientCredits.
func (s *Storage) CreateBookingWithCredit(ctx context.Context, booking models.Booking) (int, error) {
	const op = "storage.CreateBookingWithCredit"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.ExecContext(ctx,
		`UPDATE users SET credits = credits - 1 WHERE uid = $1 AND credits >= 1`,
		booking.CustomerUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return 0, fmt.Errorf("%s: %w", op, models.ErrInsufficientCredits)
	}

	query := `INSERT INTO bookings (customer_uid, customer_name, service_id, service_title,
			      provider_uid, provider_name, status, scheduled_date, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id`
	var newID int
	err = tx.QueryRowContext(ctx, query,
		booking.CustomerUID, booking.CustomerName, booking.ServiceID, booking.ServiceTitle,
		booking.ProviderUID, booking.ProviderName, booking.Status, booking.ScheduledDate,
		booking.Notes).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetBooking возвращает бронирование по его ID.
func (s *Storage) GetBooking(ctx context.Context, id int) (*models.Booking, error) {
	const op = "storage.GetBooking"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b := &models.Booking{}
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&b.ID, &b.CustomerUID, &b.CustomerName, &b.ServiceID, &b.ServiceTitle,
		&b.ProviderUID, &b.ProviderName, &b.Status, &b.ScheduledDate, &b.Notes,
		&b.CreatedAt, &b.CompletedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}

// ListBookingsByCustomer возвращает бронирования заказчика,
// новые в начале списка.
func (s *Storage) ListBookingsByCustomer(ctx context.Context, customerUID string) ([]*models.Booking, error) {
	const op = "storage.ListBookingsByCustomer"
	return s.listBookings(ctx, op,
		`SELECT `+bookingColumns+` FROM bookings WHERE customer_uid = $1 ORDER BY created_at DESC`,
		customerUID)
}

// ListBookingsByProvider возвращает бронирования исполнителя,
// новые в начале списка.
func (s *Storage) ListBookingsByProvider(ctx context.Context, providerUID string) ([]*models.Booking, error) {
	const op = "storage.ListBookingsByProvider"
	return s.listBookings(ctx, op,
		`SELECT `+bookingColumns+` FROM bookings WHERE provider_uid = $1 ORDER BY created_at DESC`,
		providerUID)
}

func (s *Storage) listBookings(ctx context.Context, op, query string, args ...any) ([]*models.Booking, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.CustomerUID, &b.CustomerName, &b.ServiceID,
			&b.ServiceTitle, &b.ProviderUID, &b.ProviderName, &b.Status, &b.ScheduledDate,
			&b.Notes, &b.CreatedAt, &b.CompletedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateBookingStatus обновляет статус бронирования
// и возвращает количество изменённых строк.
func (s *Storage) UpdateBookingStatus(ctx context.Context, id int, status string) (int, error) {
	const op = "storage.UpdateBookingStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx,
		`UPDATE bookings SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// CompleteBooking помечает бронирование завершённым, увеличивает счётчик
// выполненных заказов исполнителя и прибавляет цену услуги к его заработку
// в одной транзакции.
func (s *Storage) CompleteBooking(ctx context.Context, id int, completedAt time.Time) error {
	const op = "storage.CompleteBooking"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status = $1, completed_at = $2 WHERE id = $3`,
		models.BookingCompleted, completedAt, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE provider_profiles
		 SET completed_jobs = completed_jobs + 1,
		     total_earnings = total_earnings + COALESCE(
		         (SELECT s.price FROM services s
		          JOIN bookings b ON b.service_id = s.id
		          WHERE b.id = $1), 0)
		 WHERE user_uid = (SELECT provider_uid FROM bookings WHERE id = $1)`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CountBookings возвращает общее количество бронирований.
func (s *Storage) CountBookings(ctx context.Context) (int, error) {
	const op = "storage.CountBookings"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
