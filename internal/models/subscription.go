package models

import "time"

// Типы планов подписки.
const (
	PlanMonthly = "monthly"
	PlanYearly  = "yearly"
)

// Subscription оплаченная подписка пользователя. Пока подписка активна
// и EndDate не прошла, бронирования не списывают кредиты. Истечение
// проверяется лениво при гейтинге, фоновой очистки нет.
type Subscription struct {
	ID        int       // Идентификатор подписки
	UserUID   string    // Идентификатор владельца
	PlanType  string    // monthly или yearly
	Amount    int64     // Сумма оплаты в минимальных единицах валюты
	StartDate time.Time // Начало действия
	EndDate   time.Time // Окончание действия
	IsActive  bool      // Флаг активности
	PaymentID string    // Идентификатор платежа, которым оплачена подписка
	CreatedAt time.Time // Дата создания
}

// DummySubscription используется для приёма данных подписки из JSON-запроса.
type DummySubscription struct {
	PlanType  string `json:"plan_type" validate:"required,oneof=monthly yearly"`
	Amount    int64  `json:"amount" validate:"required,gt=0"`
	PaymentID string `json:"payment_id" validate:"required"`
}
