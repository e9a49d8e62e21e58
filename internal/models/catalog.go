package models

import "time"

// Category категория услуг каталога.
type Category struct {
	ID           int       // Идентификатор категории
	Name         string    // Название
	Description  string    // Описание
	Icon         string    // Имя иконки для фронтенда
	ServiceCount int       // Количество услуг в категории (вычисляется при выборке)
	CreatedAt    time.Time // Дата создания
}

// Service услуга каталога. Поля ProviderName и CategoryName — снимки
// на момент создания, рейтинг и счётчик отзывов мутируются только
// агрегатором отзывов.
type Service struct {
	ID              int       // Идентификатор услуги
	ProviderUID     string    // Идентификатор исполнителя
	ProviderName    string    // Имя исполнителя (снимок)
	CategoryID      int       // Идентификатор категории
	CategoryName    string    // Название категории (снимок)
	Title           string    // Название услуги
	Description     string    // Описание
	Price           float64   // Цена
	DurationMinutes int       // Длительность в минутах
	Location        string    // Локация оказания услуги
	Rating          float64   // Средний рейтинг исполнителя (общий для всех его услуг)
	ReviewsCount    int       // Количество отзывов об исполнителе
	CreatedAt       time.Time // Дата создания
}

// ServiceFilter параметры выборки услуг каталога.
type ServiceFilter struct {
	CategoryID int    // 0 — без фильтра по категории
	Search     string // Подстрока для поиска по названию и описанию
}

// DummyCategory используется для приёма данных категории из JSON-запроса.
type DummyCategory struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Icon        string `json:"icon,omitempty"`
}

// DummyService используется для приёма данных услуги из JSON-запроса.
type DummyService struct {
	Title           string  `json:"title" validate:"required"`
	Description     string  `json:"description" validate:"required"`
	CategoryID      int     `json:"category_id" validate:"required,gt=0"`
	Price           float64 `json:"price" validate:"required,gt=0"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,gt=0"`
	Location        string  `json:"location" validate:"required"`
}
