package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/service-marketplace/internal/models"
)

// CreateReviewAndRecalc сохраняет отзыв и пересчитывает рейтинг исполнителя
// по всем его отзывам в одной транзакции. Новый рейтинг записывается
// в профиль исполнителя и во все его услуги.
func (s *Storage) CreateReviewAndRecalc(ctx context.Context, review models.Review) (int, *models.RatingSummary, error) {
	const op = "storage.CreateReviewAndRecalc"
	select {
	case <-ctx.Done():
		return 0, nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `INSERT INTO reviews (booking_id, customer_uid, customer_name, provider_uid, rating, comment)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err = tx.QueryRowContext(ctx, query,
		review.BookingID, review.CustomerUID, review.CustomerName, review.ProviderUID,
		review.Rating, review.Comment).Scan(&newID)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}

	summary := &models.RatingSummary{}
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE provider_uid = $1`,
		review.ProviderUID).Scan(&summary.Rating, &summary.ReviewsCount)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE provider_profiles SET rating = $1 WHERE user_uid = $2`,
		summary.Rating, review.ProviderUID)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE services SET rating = $1, reviews_count = $2 WHERE provider_uid = $3`,
		summary.Rating, summary.ReviewsCount, review.ProviderUID)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}
	return newID, summary, nil
}

// ListReviewsByProvider возвращает отзывы об исполнителе,
// новые в начале списка.
func (s *Storage) ListReviewsByProvider(ctx context.Context, providerUID string) ([]*models.Review, error) {
	const op = "storage.ListReviewsByProvider"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, booking_id, customer_uid, customer_name, provider_uid, rating, comment, created_at
			  FROM reviews
			  WHERE provider_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, providerUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Review
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.BookingID, &r.CustomerUID, &r.CustomerName,
			&r.ProviderUID, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountReviewsByProvider возвращает количество отзывов об исполнителе.
func (s *Storage) CountReviewsByProvider(ctx context.Context, providerUID string) (int, error) {
	const op = "storage.CountReviewsByProvider"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	if err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reviews WHERE provider_uid = $1`, providerUID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
