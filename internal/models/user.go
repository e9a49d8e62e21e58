package models

import "time"

// Роли пользователей системы.
const (
	RoleCustomer = "customer"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

// Статусы профиля исполнителя.
const (
	ProviderPending  = "pending"
	ProviderApproved = "approved"
	ProviderRejected = "rejected"
	ProviderBlocked  = "blocked"
)

// DefaultCredits стартовый баланс кредитов нового пользователя.
const DefaultCredits = 5

// User представляет зарегистрированного пользователя системы.
// Кредиты списываются при создании бронирования и не могут стать отрицательными.
// Пользователи не удаляются, только деактивируются через IsActive.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Email        string    // Электронная почта (уникальная)
	FullName     string    // Полное имя
	Phone        string    // Телефон
	PasswordHash string    // Хэш пароля пользователя
	Role         string    // Роль: customer, provider или admin
	Credits      int       // Баланс кредитов на бронирования
	IsActive     bool      // Флаг активности аккаунта
	CreatedAt    time.Time // Дата регистрации
}

// ProviderProfile профиль исполнителя, создается при регистрации с ролью provider.
type ProviderProfile struct {
	UserUID         string    // Идентификатор пользователя-исполнителя
	ServiceCategory string    // Категория оказываемых услуг
	ExperienceYears int       // Опыт в годах
	Description     string    // Описание исполнителя
	Status          string    // Статус модерации: pending/approved/rejected/blocked
	Rating          float64   // Средний рейтинг по всем отзывам
	TotalEarnings   float64   // Суммарный заработок
	CompletedJobs   int       // Счётчик завершённых заказов
	CreatedAt       time.Time // Дата создания профиля
}

// ProviderInfo профиль исполнителя, объединённый с данными пользователя.
// Используется в админском списке исполнителей.
type ProviderInfo struct {
	ProviderProfile
	Email    string
	FullName string
	Phone    string
}

// Caller аутентифицированный инициатор запроса, извлекается из JWT.
type Caller struct {
	UID  string
	Role string
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса.
type DummyRegister struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	FullName        string `json:"full_name" validate:"required"`
	Phone           string `json:"phone" validate:"required"`
	Role            string `json:"role" validate:"required,oneof=customer provider"`
	ServiceCategory string `json:"service_category,omitempty"` // Только для провайдеров
	ExperienceYears int    `json:"experience_years,omitempty"`
	Description     string `json:"description,omitempty"`
}

// DummyLogin используется для приёма данных входа из JSON-запроса.
type DummyLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
