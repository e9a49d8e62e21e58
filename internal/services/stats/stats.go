// Package stats содержит агрегирующие выборки: сводную статистику
// для администратора и заработок исполнителя.
package stats

import (
	"context"
	"errors"
	"log/slog"

	"github.com/magabrotheeeer/service-marketplace/internal/models"
)

// StatsRepository определяет агрегирующие методы хранилища.
type StatsRepository interface {
	// CountUsers возвращает общее количество пользователей.
	CountUsers(ctx context.Context) (int, error)
	// CountBookings возвращает общее количество бронирований.
	CountBookings(ctx context.Context) (int, error)
	// CountProviders возвращает количество исполнителей и ожидающих модерации.
	CountProviders(ctx context.Context) (total int, pending int, err error)
	// SumSuccessfulPayments возвращает сумму успешных платежей.
	SumSuccessfulPayments(ctx context.Context) (int64, error)
	// GetProviderProfile возвращает профиль исполнителя.
	GetProviderProfile(ctx context.Context, userUID string) (*models.ProviderProfile, error)
	// CountReviewsByProvider возвращает количество отзывов об исполнителе.
	CountReviewsByProvider(ctx context.Context, providerUID string) (int, error)
	// ListUsers возвращает пользователей с пагинацией.
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
	// ListProviders возвращает профили исполнителей с данными пользователей.
	ListProviders(ctx context.Context, limit, offset int) ([]*models.ProviderInfo, error)
	// UpdateProviderStatus обновляет статус модерации исполнителя.
	UpdateProviderStatus(ctx context.Context, userUID, status string) (int, error)
}

// StatsService реализует админские и провайдерские сводки.
type StatsService struct {
	repo StatsRepository
	log  *slog.Logger
}

// New создает новый экземпляр StatsService.
func New(repo StatsRepository, log *slog.Logger) *StatsService {
	return &StatsService{
		repo: repo,
		log:  log,
	}
}

// AdminStats собирает сводную статистику для админской панели.
// Выручка хранится в минимальных единицах валюты и переводится
// в основные при отдаче.
func (s *StatsService) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	totalUsers, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	totalBookings, err := s.repo.CountBookings(ctx)
	if err != nil {
		return nil, err
	}
	totalProviders, pendingApprovals, err := s.repo.CountProviders(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.repo.SumSuccessfulPayments(ctx)
	if err != nil {
		return nil, err
	}

	return &models.AdminStats{
		TotalUsers:       totalUsers,
		TotalBookings:    totalBookings,
		TotalProviders:   totalProviders,
		PendingApprovals: pendingApprovals,
		TotalRevenue:     float64(revenue) / 100,
	}, nil
}

// ProviderEarnings возвращает сводку заработка исполнителя.
func (s *StatsService) ProviderEarnings(ctx context.Context, providerUID string) (*models.ProviderEarnings, error) {
	profile, err := s.repo.GetProviderProfile(ctx, providerUID)
	if err != nil {
		return nil, err
	}
	totalReviews, err := s.repo.CountReviewsByProvider(ctx, providerUID)
	if err != nil {
		return nil, err
	}

	return &models.ProviderEarnings{
		TotalEarnings: profile.TotalEarnings,
		CompletedJobs: profile.CompletedJobs,
		Rating:        profile.Rating,
		TotalReviews:  totalReviews,
	}, nil
}

// ListUsers возвращает пользователей для админского списка.
func (s *StatsService) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	return s.repo.ListUsers(ctx, limit, offset)
}

// ListProviders возвращает исполнителей для админского списка.
func (s *StatsService) ListProviders(ctx context.Context, limit, offset int) ([]*models.ProviderInfo, error) {
	return s.repo.ListProviders(ctx, limit, offset)
}

// UpdateProviderStatus меняет статус модерации исполнителя.
// Допустимы только известные статусы.
func (s *StatsService) UpdateProviderStatus(ctx context.Context, userUID, status string) error {
	switch status {
	case models.ProviderApproved, models.ProviderRejected, models.ProviderBlocked, models.ProviderPending:
	default:
		return errors.New("unknown provider status: " + status)
	}

	count, err := s.repo.UpdateProviderStatus(ctx, userUID, status)
	if err != nil {
		return err
	}
	if count == 0 {
		return models.ErrNotFound
	}

	s.log.Info("updated provider status",
		slog.String("user_uid", userUID),
		slog.String("status", status))
	return nil
}
