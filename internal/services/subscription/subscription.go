// Package subscription содержит бизнес-логику платных подписок,
// освобождающих заказчика от списания кредитов.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/service-marketplace/internal/lib/period"
	"github.com/magabrotheeeer/service-marketplace/internal/models"
)

// SubscriptionRepository определяет методы работы с подписками в хранилище.
type SubscriptionRepository interface {
	// CreateSubscription сохраняет подписку и возвращает её ID.
	CreateSubscription(ctx context.Context, sub models.Subscription) (int, error)
	// FindActiveSubscription возвращает действующую подписку пользователя.
	FindActiveSubscription(ctx context.Context, userUID string, now time.Time) (*models.Subscription, bool, error)
	// GetSuccessfulPaymentByPaymentID возвращает успешный платёж пользователя.
	GetSuccessfulPaymentByPaymentID(ctx context.Context, userUID, paymentID string) (*models.Payment, error)
}

// SubscriptionService реализует бизнес-логику подписок.
type SubscriptionService struct {
	repo SubscriptionRepository
	log  *slog.Logger
}

// New создает новый экземпляр SubscriptionService.
func New(repo SubscriptionRepository, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo: repo,
		log:  log,
	}
}

// Create активирует подписку после успешной оплаты. Платёж должен быть
// верифицирован и принадлежать тому же пользователю. Срок действия
// зависит от плана: месяц или год от момента активации.
func (s *SubscriptionService) Create(ctx context.Context, userUID string,
	req models.DummySubscription) (int, error) {
	_, err := s.repo.GetSuccessfulPaymentByPaymentID(ctx, userUID, req.PaymentID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return 0, fmt.Errorf("payment is not verified: %w", models.ErrPaymentVerification)
		}
		return 0, err
	}

	startDate := time.Now().UTC()
	endDate := period.End(startDate, req.PlanType)

	sub := models.Subscription{
		UserUID:   userUID,
		PlanType:  req.PlanType,
		Amount:    req.Amount,
		StartDate: startDate,
		EndDate:   endDate,
		IsActive:  true,
		PaymentID: req.PaymentID,
	}
	id, err := s.repo.CreateSubscription(ctx, sub)
	if err != nil {
		return 0, err
	}

	s.log.Info("activated subscription",
		slog.Int("id", id),
		slog.String("user_uid", userUID),
		slog.String("plan", req.PlanType))
	return id, nil
}

// Mine возвращает действующую подписку пользователя.
// Если подписки нет, возвращает found = false без ошибки.
func (s *SubscriptionService) Mine(ctx context.Context, userUID string) (*models.Subscription, bool, error) {
	return s.repo.FindActiveSubscription(ctx, userUID, time.Now().UTC())
}
