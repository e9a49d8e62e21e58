package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/service-marketplace/internal/models"
)

// CreateService сохраняет новую услугу и возвращает её ID.
func (s *Storage) CreateService(ctx context.Context, service models.Service) (int, error) {
	const op = "storage.CreateService"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO services (provider_uid, provider_name, category_id, category_name,
			      title, description, price, duration_minutes, location, rating, reviews_count)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, 0)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		service.ProviderUID, service.ProviderName, service.CategoryID, service.CategoryName,
		service.Title, service.Description, service.Price, service.DurationMinutes,
		service.Location).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// FindService возвращает услугу по её ID.
func (s *Storage) FindService(ctx context.Context, id int) (*models.Service, error) {
	const op = "storage.FindService"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, provider_uid, provider_name, category_id, category_name, title,
			      description, price, duration_minutes, location, rating, reviews_count, created_at
			  FROM services
			  WHERE id = $1`
	sv := &models.Service{}
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&sv.ID, &sv.ProviderUID, &sv.ProviderName, &sv.CategoryID,
		&sv.CategoryName, &sv.Title, &sv.Description, &sv.Price, &sv.DurationMinutes,
		&sv.Location, &sv.Rating, &sv.ReviewsCount, &sv.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sv, nil
}

// ListServices возвращает услуги каталога с фильтром по категории
// и поиском по названию и описанию.
func (s *Storage) ListServices(ctx context.Context, filter models.ServiceFilter,
	limit, offset int) ([]*models.Service, error) {
	const op = "storage.ListServices"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, provider_uid, provider_name, category_id, category_name, title,
			      description, price, duration_minutes, location, rating, reviews_count, created_at
			  FROM services
			  WHERE ($1 = 0 OR category_id = $1)
			      AND ($2 = '' OR title ILIKE '%' || $2 || '%' OR description ILIKE '%' || $2 || '%')
			  ORDER BY created_at DESC
			  LIMIT $3 OFFSET $4`
	rows, err := s.DB.QueryContext(ctx, query, filter.CategoryID, filter.Search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Service
	for rows.Next() {
		var sv models.Service
		if err := rows.Scan(&sv.ID, &sv.ProviderUID, &sv.ProviderName, &sv.CategoryID,
			&sv.CategoryName, &sv.Title, &sv.Description, &sv.Price, &sv.DurationMinutes,
			&sv.Location, &sv.Rating, &sv.ReviewsCount, &sv.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &sv)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListServicesByProvider возвращает все услуги одного исполнителя.
func (s *Storage) ListServicesByProvider(ctx context.Context, providerUID string) ([]*models.Service, error) {
	const op = "storage.ListServicesByProvider"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, provider_uid, provider_name, category_id, category_name, title,
			      description, price, duration_minutes, location, rating, reviews_count, created_at
			  FROM services
			  WHERE provider_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, providerUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Service
	for rows.Next() {
		var sv models.Service
		if err := rows.Scan(&sv.ID, &sv.ProviderUID, &sv.ProviderName, &sv.CategoryID,
			&sv.CategoryName, &sv.Title, &sv.Description, &sv.Price, &sv.DurationMinutes,
			&sv.Location, &sv.Rating, &sv.ReviewsCount, &sv.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &sv)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
