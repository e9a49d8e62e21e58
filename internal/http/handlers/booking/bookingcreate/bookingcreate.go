// Package bookingcreate реализует HTTP-обработчик создания бронирований.
//
// Handler принимает JSON-запрос с данными бронирования, валидирует их,
// извлекает UID заказчика из контекста и вызывает бизнес-логику создания.
// Активная подписка освобождает от списания кредита, иначе списывается
// один кредит; при исчерпании кредитов возвращается 402 Payment Required.
package bookingcreate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/service-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/service-marketplace/internal/http/response"
	"github.com/magabrotheeeer/service-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/service-marketplace/internal/models"
)

// Handler управляет HTTP-запросами на создание бронирований.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики бронирований
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания бронирования.
type Service interface {
	Create(ctx context.Context, caller models.Caller, req models.DummyBooking) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать бронирование
// @Description Создает бронирование услуги от имени текущего заказчика. Активная подписка освобождает от списания кредита.
// @Tags Bookings
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyBooking true "Данные бронирования"
// @Success 200 {object} map[string]any "Успешное создание бронирования"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 402 {object} response.ErrorResponse "Кредиты исчерпаны"
// @Failure 403 {object} response.ErrorResponse "Бронирование доступно только заказчикам"
// @Failure 404 {object} response.ErrorResponse "Услуга не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании бронирования"
// @Router /bookings [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.booking.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyBooking
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	caller, ok := middlewarectx.CallerFromContext(r.Context())
	if !ok {
		log.Error("caller not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	id, err := h.service.Create(r.Context(), caller, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInsufficientCredits):
			log.Error("insufficient credits", slog.String("customer_uid", caller.UID))
			render.Status(r, http.StatusPaymentRequired)
			render.JSON(w, r, response.Error("insufficient credits, please purchase a subscription"))
		case errors.Is(err, models.ErrForbidden):
			log.Error("booking not allowed", slog.String("role", caller.Role))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("customer access required"))
		case errors.Is(err, models.ErrNotFound):
			log.Error("service not found", sl.Err(err))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("service not found"))
		default:
			log.Error("failed to create booking", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not create booking"))
		}
		return
	}

	log.Info("created new booking", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id": id,
	}))
}
