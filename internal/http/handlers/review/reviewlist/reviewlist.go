// Package reviewlist реализует HTTP-обработчик списка отзывов об исполнителе.
package reviewlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/service-marketplace/internal/http/response"
	"github.com/magabrotheeeer/service-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/service-marketplace/internal/models"
)

// Handler управляет HTTP-запросами на список отзывов об исполнителе.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики отзывов
}

// Service описывает интерфейс бизнес-логики списка отзывов.
type Service interface {
	ListForProvider(ctx context.Context, providerUID string) ([]*models.Review, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отзывы об исполнителе
// @Description Возвращает отзывы об исполнителе, новые в начале списка.
// @Tags Reviews
// @Produce  json
// @Param provider_uid path string true "UID исполнителя"
// @Success 200 {object} map[string]any "Список отзывов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /reviews/provider/{provider_uid} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	providerUID := chi.URLParam(r, "provider_uid")
	reviews, err := h.service.ListForProvider(r.Context(), providerUID)
	if err != nil {
		log.Error("failed to list reviews", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list reviews"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"reviews": reviews,
		"count":   len(reviews),
	}))
}
