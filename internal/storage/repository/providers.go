package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/service-marketplace/internal/models"
)

// CreateProviderProfile сохраняет профиль исполнителя.
func (s *Storage) CreateProviderProfile(ctx context.Context, profile models.ProviderProfile) error {
	const op = "storage.CreateProviderProfile"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO provider_profiles (user_uid, service_category, experience_years,
			      description, status, rating, total_earnings, completed_jobs)
			  VALUES ($1, $2, $3, $4, $5, 0, 0, 0)`
	_, err := s.DB.ExecContext(ctx, query,
		profile.UserUID, profile.ServiceCategory, profile.ExperienceYears,
		profile.Description, profile.Status)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetProviderProfile возвращает профиль исполнителя по UID пользователя.
func (s *Storage) GetProviderProfile(ctx context.Context, userUID string) (*models.ProviderProfile, error) {
	const op = "storage.GetProviderProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_uid, service_category, experience_years, description, status,
			      rating, total_earnings, completed_jobs, created_at
			  FROM provider_profiles
			  WHERE user_uid = $1`
	p := &models.ProviderProfile{}
	row := s.DB.QueryRowContext(ctx, query, userUID)
	if err := row.Scan(&p.UserUID, &p.ServiceCategory, &p.ExperienceYears, &p.Description,
		&p.Status, &p.Rating, &p.TotalEarnings, &p.CompletedJobs, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// ListProviders возвращает профили исполнителей вместе с данными пользователей.
func (s *Storage) ListProviders(ctx context.Context, limit, offset int) ([]*models.ProviderInfo, error) {
	const op = "storage.ListProviders"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT p.user_uid, p.service_category, p.experience_years, p.description,
			      p.status, p.rating, p.total_earnings, p.completed_jobs, p.created_at,
			      u.email, u.full_name, u.phone
			  FROM provider_profiles p
			  JOIN users u ON p.user_uid = u.uid
			  ORDER BY p.created_at
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ProviderInfo
	for rows.Next() {
		var pi models.ProviderInfo
		if err := rows.Scan(&pi.UserUID, &pi.ServiceCategory, &pi.ExperienceYears,
			&pi.Description, &pi.Status, &pi.Rating, &pi.TotalEarnings, &pi.CompletedJobs,
			&pi.CreatedAt, &pi.Email, &pi.FullName, &pi.Phone); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &pi)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateProviderStatus обновляет статус модерации исполнителя
// и возвращает количество изменённых строк.
func (s *Storage) UpdateProviderStatus(ctx context.Context, userUID, status string) (int, error) {
	const op = "storage.UpdateProviderStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE provider_profiles
			  SET status = $1
			  WHERE user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, status, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// CountProviders возвращает общее количество исполнителей и количество
// ожидающих модерации.
func (s *Storage) CountProviders(ctx context.Context) (total int, pending int, err error) {
	const op = "storage.CountProviders"
	select {
	case <-ctx.Done():
		return 0, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*), COUNT(*) FILTER (WHERE status = $1)
			  FROM provider_profiles`
	if err := s.DB.QueryRowContext(ctx, query, models.ProviderPending).Scan(&total, &pending); err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, pending, nil
}
