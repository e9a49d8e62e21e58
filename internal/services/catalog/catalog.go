// Package catalog содержит бизнес-логику каталога услуг:
// категории, публикацию услуг и кэширование выборок.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/service-marketplace/internal/models"
)

// Ключи кэша каталога. Выборки услуг кэшируются по параметрам фильтра,
// при любом изменении каталога инвалидируются все ключи по шаблону.
const (
	categoriesCacheKey   = "catalog:categories"
	servicesCachePattern = "catalog:services:*"
	cacheTTL             = 5 * time.Minute
)

// CatalogRepository определяет методы работы с каталогом в хранилище.
type CatalogRepository interface {
	// CreateCategory вставляет категорию и возвращает её ID.
	CreateCategory(ctx context.Context, category models.Category) (int, error)
	// ListCategories возвращает категории с количеством услуг.
	ListCategories(ctx context.Context) ([]*models.Category, error)
	// CreateService вставляет услугу и возвращает её ID.
	CreateService(ctx context.Context, service models.Service) (int, error)
	// FindService возвращает услугу по ID.
	FindService(ctx context.Context, id int) (*models.Service, error)
	// GetCategory возвращает категорию по ID.
	GetCategory(ctx context.Context, id int) (*models.Category, error)
	// ListServices возвращает услуги по фильтру с пагинацией.
	ListServices(ctx context.Context, filter models.ServiceFilter, limit, offset int) ([]*models.Service, error)
	// ListServicesByProvider возвращает услуги исполнителя.
	ListServicesByProvider(ctx context.Context, providerUID string) ([]*models.Service, error)
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// GetProviderProfile возвращает профиль исполнителя.
	GetProviderProfile(ctx context.Context, userUID string) (*models.ProviderProfile, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Invalidate удаляет значения из кеша по шаблону.
	Invalidate(ctx context.Context, pattern string) error
}

// CatalogService реализует бизнес-логику каталога, включая кэширование.
type CatalogService struct {
	repo  CatalogRepository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр CatalogService.
func New(repo CatalogRepository, cache Cache, log *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// CreateCategory создаёт категорию и инвалидирует кэш списка категорий.
func (s *CatalogService) CreateCategory(ctx context.Context, req models.DummyCategory) (int, error) {
	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	}
	id, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		return 0, err
	}

	if err := s.cache.Invalidate(ctx, categoriesCacheKey); err != nil {
		s.log.Warn("failed to invalidate categories cache", slog.Any("err", err))
	}
	s.log.Info("created new category", slog.Int("id", id))
	return id, nil
}

// ListCategories возвращает категории, используя кэш или репозиторий.
func (s *CatalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	var cached []*models.Category
	found, err := s.cache.Get(ctx, categoriesCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read categories cache", slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	result, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, categoriesCacheKey, result, cacheTTL); err != nil {
		s.log.Warn("failed to cache categories", slog.Any("err", err))
	}
	return result, nil
}

// CreateService публикует услугу от имени исполнителя. Публиковать могут
// только одобренные исполнители. Название категории и имя исполнителя
// фиксируются в услуге как снимок.
func (s *CatalogService) CreateService(ctx context.Context, providerUID string,
	req models.DummyService) (int, error) {
	profile, err := s.repo.GetProviderProfile(ctx, providerUID)
	if err != nil {
		return 0, err
	}
	if profile.Status != models.ProviderApproved {
		return 0, fmt.Errorf("provider is not approved: %w", models.ErrForbidden)
	}

	category, err := s.repo.GetCategory(ctx, req.CategoryID)
	if err != nil {
		return 0, err
	}
	user, err := s.repo.GetUser(ctx, providerUID)
	if err != nil {
		return 0, err
	}

	service := models.Service{
		ProviderUID:     providerUID,
		ProviderName:    user.FullName,
		CategoryID:      category.ID,
		CategoryName:    category.Name,
		Title:           req.Title,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Location:        req.Location,
	}
	id, err := s.repo.CreateService(ctx, service)
	if err != nil {
		return 0, err
	}

	if err := s.cache.Invalidate(ctx, servicesCachePattern); err != nil {
		s.log.Warn("failed to invalidate services cache", slog.Any("err", err))
	}
	s.log.Info("created new service", slog.Int("id", id), slog.String("provider_uid", providerUID))
	return id, nil
}

// ListServices возвращает услуги каталога по фильтру, используя кэш.
func (s *CatalogService) ListServices(ctx context.Context, filter models.ServiceFilter,
	limit, offset int) ([]*models.Service, error) {
	cacheKey := fmt.Sprintf("catalog:services:%d:%s:%d:%d", filter.CategoryID, filter.Search, limit, offset)
	var cached []*models.Service
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read services cache", slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	result, err := s.repo.ListServices(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cacheKey, result, cacheTTL); err != nil {
		s.log.Warn("failed to cache services", slog.Any("err", err))
	}
	return result, nil
}

// GetService возвращает услугу по ID.
func (s *CatalogService) GetService(ctx context.Context, id int) (*models.Service, error) {
	return s.repo.FindService(ctx, id)
}

// ListMyServices возвращает услуги текущего исполнителя без кэша.
func (s *CatalogService) ListMyServices(ctx context.Context, providerUID string) ([]*models.Service, error) {
	result, err := s.repo.ListServicesByProvider(ctx, providerUID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	return result, nil
}
