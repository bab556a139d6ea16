// Package update реализует HTTP-обработчик частичного обновления профиля подписчика.
//
// Handler извлекает UID из URL-параметров, принимает JSON с изменяемыми полями,
// вызывает бизнес-логику обновления и возвращает количество изменённых записей.
//
// В случае ошибок формирует соответствующие HTTP-ответы с описанием проблемы.
package update

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

	"github.com/magabrotheeeer/fashion-curation/internal/http/response"
	"github.com/magabrotheeeer/fashion-curation/internal/lib/sl"
	"github.com/magabrotheeeer/fashion-curation/internal/models"
	"github.com/magabrotheeeer/fashion-curation/internal/storage"
)

// Handler обрабатывает запросы на изменение профиля подписчика.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики обновления профиля
	validate *validator.Validate // Валидатор UID из URL
}

// Service описывает интерфейс бизнес-логики обновления профиля.
type Service interface {
	Update(ctx context.Context, uid string, req models.DummySubscriberUpdate) (int, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить профиль подписчика
// @Description Применяет частичное обновление профиля: отсутствующие поля не изменяются.
// @Tags Subscribers
// @Accept  json
// @Produce  json
// @Param uid path string true "UID подписчика"
// @Param request body models.DummySubscriberUpdate true "Изменяемые поля профиля"
// @Success 200 {object} map[string]any "Количество обновлённых записей"
// @Failure 400 {object} response.ErrorResponse "Некорректный UID или JSON"
// @Failure 404 {object} response.ErrorResponse "Подписчик не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscribers/{uid} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscriber.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid := chi.URLParam(r, "uid")
	if err := h.validate.Var(uid, "required,uuid"); err != nil {
		log.Error("invalid uid in url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid subscriber uid"))
		return
	}

	var req models.DummySubscriberUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	rows, err := h.service.Update(r.Context(), uid, req)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("subscriber not found", slog.String("uid", uid))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("subscriber not found"))
			return
		}
		log.Error("failed to update subscriber", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update subscriber"))
		return
	}

	log.Info("success to update subscriber", slog.String("uid", uid), slog.Int("rows", rows))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"updated": rows,
	}))
}
