// Package bookingstatus реализует HTTP-обработчик смены статуса бронирования.
//
// Переходы проверяются машиной состояний: pending -> accepted | rejected |
// cancelled, accepted -> completed | cancelled. Право на переход зависит
// от роли инициатора.
package bookingstatus

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/service-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/service-marketplace/internal/http/response"
	"github.com/magabrotheeeer/service-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/service-marketplace/internal/models"
)

// Handler управляет HTTP-запросами на смену статуса бронирования.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики бронирований
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики смены статуса.
type Service interface {
	UpdateStatus(ctx context.Context, caller models.Caller, bookingID int, newStatus string) (*models.Booking, error)
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
// @Summary Сменить статус бронирования
// @Description Переводит бронирование в новый статус. Исполнитель подтверждает, отклоняет и завершает свои заказы, заказчик отменяет свои, администратор может всё.
// @Tags Bookings
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID бронирования"
// @Param request body models.DummyStatusUpdate true "Новый статус"
// @Success 200 {object} map[string]any "Обновленное бронирование"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Бронирование не найдено"
// @Failure 409 {object} response.ErrorResponse "Недопустимый переход статуса"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /bookings/{id}/status [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.booking.status"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	bookingID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || bookingID <= 0 {
		log.Error("invalid booking id", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid booking id"))
		return
	}

	var req models.DummyStatusUpdate
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

	booking, err := h.service.UpdateStatus(r.Context(), caller, bookingID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			log.Error("booking not found", slog.Int("id", bookingID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("booking not found"))
		case errors.Is(err, models.ErrForbidden):
			log.Error("access denied", slog.String("caller_uid", caller.UID))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("access denied"))
		case errors.Is(err, models.ErrInvalidTransition):
			log.Error("invalid status transition", sl.Err(err))
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error(err.Error()))
		default:
			log.Error("failed to update booking status", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update booking status"))
		}
		return
	}

	log.Info("updated booking status", slog.Int("id", bookingID), slog.String("status", req.Status))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"booking": booking,
	}))
}
