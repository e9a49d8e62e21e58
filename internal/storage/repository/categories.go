package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/service-marketplace/internal/models"
)

// CreateCategory вставляет новую категорию каталога и возвращает её ID.
func (s *Storage) CreateCategory(ctx context.Context, category models.Category) (int, error) {
	const op = "storage.CreateCategory"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO categories (name, description, icon)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		category.Name, category.Description, category.Icon).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListCategories возвращает список категорий с количеством услуг в каждой.
func (s *Storage) ListCategories(ctx context.Context) ([]*models.Category, error) {
	const op = "storage.ListCategories"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT c.id, c.name, c.description, c.icon, c.created_at,
			      (SELECT COUNT(*) FROM services s WHERE s.category_id = c.id) AS service_count
			  FROM categories c
			  ORDER BY c.id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Icon,
			&c.CreatedAt, &c.ServiceCount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountCategories возвращает количество категорий каталога.
func (s *Storage) CountCategories(ctx context.Context) (int, error) {
	const op = "storage.CountCategories"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// GetCategory возвращает категорию по её ID.
func (s *Storage) GetCategory(ctx context.Context, id int) (*models.Category, error) {
	const op = "storage.GetCategory"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, description, icon, created_at
			  FROM categories
			  WHERE id = $1`
	var c models.Category
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name,
		&c.Description, &c.Icon, &c.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}
