// Package booking содержит бизнес-логику жизненного цикла бронирований:
// создание с гейтингом по подписке и кредитам, явную машину состояний
// и публикацию событий для сервиса уведомлений.
package booking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/service-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/service-marketplace/internal/models"
)

// BookingRepository определяет методы работы с бронированиями в хранилище.
type BookingRepository interface {
	// CreateBooking сохраняет бронирование без списания кредита.
	CreateBooking(ctx context.Context, booking models.Booking) (int, error)
	// CreateBookingWithCredit атомарно списывает кредит и сохраняет бронирование.
	CreateBookingWithCredit(ctx context.Context, booking models.Booking) (int, error)
	// GetBooking возвращает бронирование по ID.
	GetBooking(ctx context.Context, id int) (*models.Booking, error)
	// ListBookingsByCustomer возвращает бронирования заказчика.
	ListBookingsByCustomer(ctx context.Context, customerUID string) ([]*models.Booking, error)
	// ListBookingsByProvider возвращает бронирования исполнителя.
	ListBookingsByProvider(ctx context.Context, providerUID string) ([]*models.Booking, error)
	// UpdateBookingStatus обновляет статус и возвращает число изменённых строк.
	UpdateBookingStatus(ctx context.Context, id int, status string) (int, error)
	// CompleteBooking завершает бронирование и обновляет счётчики исполнителя.
	CompleteBooking(ctx context.Context, id int, completedAt time.Time) error
	// FindService возвращает услугу по ID.
	FindService(ctx context.Context, id int) (*models.Service, error)
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// FindActiveSubscription возвращает действующую подписку пользователя.
	FindActiveSubscription(ctx context.Context, userUID string, now time.Time) (*models.Subscription, bool, error)
}

// EventPublisher публикует события жизненного цикла бронирований.
type EventPublisher interface {
	Publish(message any) error
}

// BookingService реализует бизнес-логику бронирований.
type BookingService struct {
	repo      BookingRepository
	publisher EventPublisher
	log       *slog.Logger
}

// New создает новый экземпляр BookingService.
func New(repo BookingRepository, publisher EventPublisher, log *slog.Logger) *BookingService {
	return &BookingService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// Create создаёт бронирование от имени заказчика. Бронировать могут
// только заказчики. Активная подписка освобождает от списания кредита,
// иначе кредит списывается атомарно вместе с созданием записи. Снимки
// данных услуги фиксируются до любых списаний, поэтому несуществующая
// услуга не стоит заказчику кредита. Имя заказчика — косметический
// снимок: ошибка его чтения не блокирует бронирование.
func (s *BookingService) Create(ctx context.Context, caller models.Caller,
	req models.DummyBooking) (int, error) {
	if caller.Role != models.RoleCustomer {
		return 0, fmt.Errorf("only customers can create bookings: %w", models.ErrForbidden)
	}

	scheduledDate, err := time.Parse("02-01-2006", req.ScheduledDate)
	if err != nil {
		return 0, fmt.Errorf("invalid scheduled date: %w", err)
	}

	service, err := s.repo.FindService(ctx, req.ServiceID)
	if err != nil {
		return 0, err
	}
	customerName := ""
	if customer, err := s.repo.GetUser(ctx, caller.UID); err != nil {
		s.log.Warn("failed to snapshot customer name", sl.Err(err))
	} else {
		customerName = customer.FullName
	}

	booking := models.Booking{
		CustomerUID:   caller.UID,
		CustomerName:  customerName,
		ServiceID:     service.ID,
		ServiceTitle:  service.Title,
		ProviderUID:   service.ProviderUID,
		ProviderName:  service.ProviderName,
		Status:        models.BookingPending,
		ScheduledDate: scheduledDate,
		Notes:         req.Notes,
	}

	_, hasSubscription, err := s.repo.FindActiveSubscription(ctx, caller.UID, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	var id int
	decision := Decide(hasSubscription)
	switch decision {
	case DecisionSubscription:
		id, err = s.repo.CreateBooking(ctx, booking)
	default:
		id, err = s.repo.CreateBookingWithCredit(ctx, booking)
	}
	if err != nil {
		return 0, err
	}

	s.log.Info("created new booking",
		slog.Int("id", id),
		slog.String("customer_uid", caller.UID),
		slog.String("gating", decision))

	s.publishEvent(id, booking.CustomerUID, booking.ProviderUID, models.BookingPending)
	return id, nil
}

// UpdateStatus переводит бронирование в новый статус. Переход проверяется
// машиной состояний, право на переход зависит от роли инициатора:
// исполнитель подтверждает, отклоняет и завершает свои заказы,
// заказчик отменяет только свои, администратор может всё.
func (s *BookingService) UpdateStatus(ctx context.Context, caller models.Caller,
	bookingID int, newStatus string) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := authorizeTransition(caller, booking, newStatus); err != nil {
		return nil, err
	}
	if !models.CanTransition(booking.Status, newStatus) {
		return nil, fmt.Errorf("cannot change status from %s to %s: %w",
			booking.Status, newStatus, models.ErrInvalidTransition)
	}

	if newStatus == models.BookingCompleted {
		completedAt := time.Now().UTC()
		if err := s.repo.CompleteBooking(ctx, bookingID, completedAt); err != nil {
			return nil, err
		}
		booking.CompletedAt = &completedAt
	} else {
		if _, err := s.repo.UpdateBookingStatus(ctx, bookingID, newStatus); err != nil {
			return nil, err
		}
	}
	booking.Status = newStatus

	s.log.Info("updated booking status",
		slog.Int("id", bookingID),
		slog.String("status", newStatus))

	s.publishEvent(bookingID, booking.CustomerUID, booking.ProviderUID, newStatus)
	return booking, nil
}

// authorizeTransition проверяет право инициатора на конкретный переход.
func authorizeTransition(caller models.Caller, booking *models.Booking, newStatus string) error {
	if caller.Role == models.RoleAdmin {
		return nil
	}
	switch newStatus {
	case models.BookingAccepted, models.BookingRejected, models.BookingCompleted:
		if caller.Role == models.RoleProvider && caller.UID == booking.ProviderUID {
			return nil
		}
	case models.BookingCancelled:
		if caller.UID == booking.CustomerUID {
			return nil
		}
	}
	return models.ErrForbidden
}

// ListForCustomer возвращает бронирования заказчика.
func (s *BookingService) ListForCustomer(ctx context.Context, customerUID string) ([]*models.Booking, error) {
	return s.repo.ListBookingsByCustomer(ctx, customerUID)
}

// ListForProvider возвращает бронирования исполнителя.
func (s *BookingService) ListForProvider(ctx context.Context, providerUID string) ([]*models.Booking, error) {
	return s.repo.ListBookingsByProvider(ctx, providerUID)
}

// publishEvent отправляет событие в очередь уведомлений. Ошибка публикации
// не прерывает операцию: очередь не входит в транзакционную границу.
func (s *BookingService) publishEvent(bookingID int, customerUID, providerUID, status string) {
	if s.publisher == nil {
		return
	}
	event := models.BookingEvent{
		BookingID:   bookingID,
		CustomerUID: customerUID,
		ProviderUID: providerUID,
		Status:      status,
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.publisher.Publish(event); err != nil {
		s.log.Warn("failed to publish booking event", sl.Err(err))
	}
}
