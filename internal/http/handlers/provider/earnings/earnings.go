// Package earnings реализует HTTP-обработчик сводки заработка текущего исполнителя.
package earnings

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/service-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/service-marketplace/internal/http/response"
	"github.com/magabrotheeeer/service-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/service-marketplace/internal/models"
)

// Handler управляет HTTP-запросами на сводку заработка исполнителя.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис агрегирующих выборок
}

// Service описывает интерфейс бизнес-логики сводки заработка.
type Service interface {
	ProviderEarnings(ctx context.Context, providerUID string) (*models.ProviderEarnings, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Заработок исполнителя
// @Description Возвращает суммарный заработок, число завершённых заказов, рейтинг и количество отзывов текущего исполнителя.
// @Tags Providers
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} models.ProviderEarnings "Сводка заработка"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Профиль исполнителя не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /providers/earnings [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.provider.earnings"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	caller, ok := middlewarectx.CallerFromContext(r.Context())
	if !ok {
		log.Error("caller not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	result, err := h.service.ProviderEarnings(r.Context(), caller.UID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Error("provider profile not found", slog.String("uid", caller.UID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("provider profile not found"))
			return
		}
		log.Error("failed to get earnings", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get earnings"))
		return
	}

	render.JSON(w, r, response.OKWithData(result))
}
