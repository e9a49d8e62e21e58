package models

import "time"

// Review отзыв заказчика о завершённом бронировании.
type Review struct {
	ID           int       // Идентификатор отзыва
	BookingID    int       // Идентификатор бронирования
	CustomerUID  string    // Идентификатор автора отзыва
	CustomerName string    // Имя автора (снимок)
	ProviderUID  string    // Идентификатор исполнителя
	Rating       int       // Оценка 1..5
	Comment      string    // Текст отзыва
	CreatedAt    time.Time // Дата создания
}

// RatingSummary результат пересчёта рейтинга исполнителя по полному
// множеству его отзывов.
type RatingSummary struct {
	Rating       float64 // Среднее арифметическое всех оценок
	ReviewsCount int     // Общее количество отзывов
}

// DummyReview используется для приёма данных отзыва из JSON-запроса.
type DummyReview struct {
	BookingID int    `json:"booking_id" validate:"required,gt=0"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment,omitempty"`
}
