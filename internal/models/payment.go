package models

import "time"

// Статусы платежа.
const (
	PaymentCreated = "created"
	PaymentPending = "pending"
	PaymentSuccess = "success"
	PaymentFailed  = "failed"
)

// Payment запись о платеже через внешнего провайдера. Неуспешная проверка
// подписи сохраняется со статусом failed, а не отбрасывается: по заказу
// всегда можно восстановить историю.
type Payment struct {
	ID          int       // Идентификатор записи
	UserUID     string    // Идентификатор плательщика
	OrderID     string    // Идентификатор заказа у провайдера
	PaymentID   string    // Идентификатор платежа у провайдера (после верификации)
	Amount      int64     // Сумма в минимальных единицах валюты
	Currency    string    // Код валюты
	Status      string    // created/pending/success/failed
	Purpose     string    // Назначение платежа (например, subscription)
	ReferenceID string    // Ссылка на связанную сущность
	CreatedAt   time.Time // Дата создания
}

// DummyPaymentOrder используется для приёма данных заказа на оплату.
type DummyPaymentOrder struct {
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	Currency    string `json:"currency" validate:"required,len=3"`
	Purpose     string `json:"purpose" validate:"required"`
	ReferenceID string `json:"reference_id,omitempty"`
}

// DummyPaymentVerify используется для приёма результата оплаты от фронтенда.
type DummyPaymentVerify struct {
	OrderID   string `json:"order_id" validate:"required"`
	PaymentID string `json:"payment_id" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

// AdminStats сводная статистика для админской панели.
type AdminStats struct {
	TotalUsers       int     `json:"total_users"`
	TotalBookings    int     `json:"total_bookings"`
	TotalProviders   int     `json:"total_providers"`
	PendingApprovals int     `json:"pending_approvals"`
	TotalRevenue     float64 `json:"total_revenue"`
}

// ProviderEarnings сводка заработка исполнителя.
type ProviderEarnings struct {
	TotalEarnings float64 `json:"total_earnings"`
	CompletedJobs int     `json:"completed_jobs"`
	Rating        float64 `json:"rating"`
	TotalReviews  int     `json:"total_reviews"`
}
