// Package reviewcreate реализует HTTP-обработчик создания отзывов.
//
// Отзыв принимается только от заказчика завершённого бронирования.
// После сохранения рейтинг исполнителя пересчитывается по всем его
// отзывам и обновляется в профиле и во всех его услугах.
package reviewcreate

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

// Handler управляет HTTP-запросами на создание отзывов.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики отзывов
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания отзыва.
type Service interface {
	Create(ctx context.Context, customerUID string, req models.DummyReview) (int, *models.RatingSummary, error)
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
// @Summary Оставить отзыв
// @Description Создает отзыв о завершённом бронировании и пересчитывает рейтинг исполнителя.
// @Tags Reviews
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyReview true "Данные отзыва"
// @Success 200 {object} map[string]any "Созданный отзыв и новый рейтинг"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Отзыв может оставить только заказчик бронирования"
// @Failure 404 {object} response.ErrorResponse "Бронирование не найдено"
// @Failure 409 {object} response.ErrorResponse "Бронирование не завершено"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании отзыва"
// @Router /reviews [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyReview
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

	id, summary, err := h.service.Create(r.Context(), caller.UID, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			log.Error("booking not found", slog.Int("booking_id", req.BookingID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("booking not found"))
		case errors.Is(err, models.ErrForbidden):
			log.Error("review is allowed only for booking owner", slog.String("caller_uid", caller.UID))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("access denied"))
		case errors.Is(err, models.ErrInvalidState):
			log.Error("booking is not completed", slog.Int("booking_id", req.BookingID))
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("booking is not completed"))
		default:
			log.Error("failed to create review", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not create review"))
		}
		return
	}

	log.Info("created new review", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id":            id,
		"rating":        summary.Rating,
		"reviews_count": summary.ReviewsCount,
	}))
}
