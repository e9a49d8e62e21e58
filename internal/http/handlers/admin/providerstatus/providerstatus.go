// Package providerstatus реализует HTTP-обработчик модерации исполнителей:
// одобрение, отклонение и блокировку профилей.
package providerstatus

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/service-marketplace/internal/http/response"
	"github.com/magabrotheeeer/service-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/service-marketplace/internal/models"
)

// Handler управляет HTTP-запросами на модерацию исполнителей.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис агрегирующих выборок
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики модерации.
type Service interface {
	UpdateProviderStatus(ctx context.Context, userUID, status string) error
}

// statusUpdateRequest описывает тело запроса модерации.
type statusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected blocked pending"`
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
// @Summary Сменить статус исполнителя
// @Description Обновляет статус модерации профиля исполнителя. Доступно только администратору.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param uid path string true "UID исполнителя"
// @Param request body statusUpdateRequest true "Новый статус"
// @Success 200 {object} map[string]any "Статус обновлен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Исполнитель не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/providers/{uid}/status [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.providerstatus"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID := chi.URLParam(r, "uid")

	var req statusUpdateRequest
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

	if err := h.service.UpdateProviderStatus(r.Context(), userUID, req.Status); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Error("provider not found", slog.String("uid", userUID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("provider not found"))
			return
		}
		log.Error("failed to update provider status", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update provider status"))
		return
	}

	log.Info("updated provider status", slog.String("uid", userUID), slog.String("status", req.Status))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"uid":    userUID,
		"status": req.Status,
	}))
}
