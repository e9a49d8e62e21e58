// Package review содержит бизнес-логику отзывов и пересчёт рейтинга
// исполнителя по полному множеству его отзывов.
package review

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/service-marketplace/internal/models"
)

// ReviewRepository определяет методы работы с отзывами в хранилище.
type ReviewRepository interface {
	// CreateReviewAndRecalc сохраняет отзыв и пересчитывает рейтинг исполнителя.
	CreateReviewAndRecalc(ctx context.Context, review models.Review) (int, *models.RatingSummary, error)
	// ListReviewsByProvider возвращает отзывы об исполнителе.
	ListReviewsByProvider(ctx context.Context, providerUID string) ([]*models.Review, error)
	// GetBooking возвращает бронирование по ID.
	GetBooking(ctx context.Context, id int) (*models.Booking, error)
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// ReviewService реализует бизнес-логику отзывов.
type ReviewService struct {
	repo ReviewRepository
	log  *slog.Logger
}

// New создает новый экземпляр ReviewService.
func New(repo ReviewRepository, log *slog.Logger) *ReviewService {
	return &ReviewService{
		repo: repo,
		log:  log,
	}
}

// Create сохраняет отзыв о завершённом бронировании. Отзыв может оставить
// только заказчик этого бронирования и только после завершения работы.
// Рейтинг исполнителя пересчитывается по всем его отзывам и записывается
// в профиль и во все его услуги.
func (s *ReviewService) Create(ctx context.Context, customerUID string,
	req models.DummyReview) (int, *models.RatingSummary, error) {
	booking, err := s.repo.GetBooking(ctx, req.BookingID)
	if err != nil {
		return 0, nil, err
	}
	if booking.CustomerUID != customerUID {
		return 0, nil, models.ErrForbidden
	}
	if booking.Status != models.BookingCompleted {
		return 0, nil, fmt.Errorf("booking is not completed: %w", models.ErrInvalidState)
	}

	customer, err := s.repo.GetUser(ctx, customerUID)
	if err != nil {
		return 0, nil, err
	}

	review := models.Review{
		BookingID:    booking.ID,
		CustomerUID:  customerUID,
		CustomerName: customer.FullName,
		ProviderUID:  booking.ProviderUID,
		Rating:       req.Rating,
		Comment:      req.Comment,
	}
	id, summary, err := s.repo.CreateReviewAndRecalc(ctx, review)
	if err != nil {
		return 0, nil, err
	}

	s.log.Info("created new review",
		slog.Int("id", id),
		slog.String("provider_uid", booking.ProviderUID),
		slog.Float64("rating", summary.Rating))
	return id, summary, nil
}

// ListForProvider возвращает отзывы об исполнителе.
func (s *ReviewService) ListForProvider(ctx context.Context, providerUID string) ([]*models.Review, error) {
	return s.repo.ListReviewsByProvider(ctx, providerUID)
}
