// Package models содержит доменные структуры маркетплейса услуг
// и вспомогательные типы для приёма данных из JSON-запросов.
package models

import "errors"

// Ошибки бизнес-уровня. Сервисы возвращают их (возможно обёрнутыми),
// обработчики сопоставляют их с HTTP-статусами через errors.Is.
var (
	// ErrNotFound запись (бронирование, услуга, подписка) не найдена.
	ErrNotFound = errors.New("not found")
	// ErrForbidden роль или владелец не совпадают с требуемыми.
	ErrForbidden = errors.New("forbidden")
	// ErrInsufficientCredits нет активной подписки и кредиты исчерпаны.
	ErrInsufficientCredits = errors.New("insufficient credits, please purchase a subscription")
	// ErrInvalidState операция не применима к текущему состоянию записи.
	ErrInvalidState = errors.New("invalid state")
	// ErrInvalidTransition недопустимый переход статуса бронирования.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrEmailTaken пользователь с таким email уже зарегистрирован.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials неверная пара email/пароль или неактивный аккаунт.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPaymentVerification подпись платежа не прошла проверку.
	ErrPaymentVerification = errors.New("payment verification failed")
)
