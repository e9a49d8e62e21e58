package models

import "time"

// Статусы бронирования. Терминальные: completed, cancelled, rejected.
const (
	BookingPending   = "pending"
	BookingAccepted  = "accepted"
	BookingRejected  = "rejected"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

// Booking бронирование услуги. Поля CustomerName, ServiceTitle, ProviderUID
// и ProviderName — снимок на момент создания: последующие правки услуги
// на бронирование не влияют.
type Booking struct {
	ID            int        // Идентификатор бронирования
	CustomerUID   string     // Идентификатор заказчика
	CustomerName  string     // Имя заказчика (снимок)
	ServiceID     int        // Идентификатор услуги
	ServiceTitle  string     // Название услуги (снимок)
	ProviderUID   string     // Идентификатор исполнителя (снимок)
	ProviderName  string     // Имя исполнителя (снимок)
	Status        string     // Текущий статус
	ScheduledDate time.Time  // Запланированная дата оказания услуги
	Notes         string     // Примечания заказчика
	CreatedAt     time.Time  // Дата создания
	CompletedAt   *time.Time // Дата завершения, заполняется только при переходе в completed
}

// allowedTransitions явная машина состояний бронирования:
// pending -> accepted | rejected | cancelled, accepted -> completed | cancelled.
var allowedTransitions = map[string][]string{
	BookingPending:  {BookingAccepted, BookingRejected, BookingCancelled},
	BookingAccepted: {BookingCompleted, BookingCancelled},
}

// CanTransition сообщает, допустим ли переход бронирования из from в to.
// Из терминальных статусов переходов нет.
func CanTransition(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// DummyBooking используется для приёма данных бронирования из JSON-запроса.
type DummyBooking struct {
	ServiceID     int    `json:"service_id" validate:"required,gt=0"`
	ScheduledDate string `json:"scheduled_date" validate:"required"` // Формат 02-01-2006
	Notes         string `json:"notes,omitempty"`
}

// DummyStatusUpdate используется для приёма нового статуса бронирования.
type DummyStatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected completed cancelled"`
}

// BookingEvent событие жизненного цикла бронирования, публикуемое в очередь
// для сервиса уведомлений.
type BookingEvent struct {
	BookingID   int    `json:"booking_id"`
	CustomerUID string `json:"customer_uid"`
	ProviderUID string `json:"provider_uid"`
	Status      string `json:"status"`
	OccurredAt  string `json:"occurred_at"`
}
