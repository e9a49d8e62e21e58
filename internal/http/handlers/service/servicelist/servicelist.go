// Package servicelist реализует HTTP-обработчик выборки услуг каталога
// с фильтром по категории и текстовым поиском.
package servicelist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/service-marketplace/internal/http/response"
	"github.com/magabrotheeeer/service-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/service-marketplace/internal/models"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// Handler управляет HTTP-запросами на выборку услуг каталога.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики каталога
}

// Service описывает интерфейс бизнес-логики выборки услуг.
type Service interface {
	ListServices(ctx context.Context, filter models.ServiceFilter, limit, offset int) ([]*models.Service, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список услуг
// @Description Возвращает услуги каталога. Поддерживает фильтр по категории, текстовый поиск и пагинацию.
// @Tags Services
// @Produce  json
// @Param category_id query int false "Фильтр по категории"
// @Param search query string false "Поиск по названию и описанию"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} map[string]any "Список услуг"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /services [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.service.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := models.ServiceFilter{
		Search: r.URL.Query().Get("search"),
	}
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil && id > 0 {
			filter.CategoryID = id
		}
	}

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= maxLimit {
			limit = v
		}
	}
	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}

	services, err := h.service.ListServices(r.Context(), filter, limit, offset)
	if err != nil {
		log.Error("failed to list services", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list services"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"services": services,
		"count":    len(services),
	}))
}
