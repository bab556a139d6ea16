// Package read реализует HTTP-обработчик для получения профиля подписчика по UID.
//
// Handler извлекает UID из URL-параметров, вызывает бизнес-логику чтения профиля
// и возвращает данные подписчика в JSON-формате.
//
// В случае ошибок формирует соответствующие HTTP-ответы с описанием проблемы.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fashion-curation/internal/http/response"
	"github.com/magabrotheeeer/fashion-curation/internal/lib/sl"
	"github.com/magabrotheeeer/fashion-curation/internal/services"
	"github.com/magabrotheeeer/fashion-curation/internal/storage"
)

// Handler обрабатывает запросы на получение профиля по уникальному идентификатору.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики чтения профиля
	validate *validator.Validate // Валидатор UID из URL
}

// Service описывает интерфейс бизнес-логики чтения профиля.
type Service interface {
	Get(ctx context.Context, uid string) (*services.SubscriberView, error)
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
// @Summary Получить профиль подписчика
// @Description Возвращает профиль подписчика по его UID.
// @Tags Subscribers
// @Produce  json
// @Param uid path string true "UID подписчика"
// @Success 200 {object} map[string]any "Профиль подписчика"
// @Failure 400 {object} response.ErrorResponse "Некорректный UID"
// @Failure 404 {object} response.ErrorResponse "Подписчик не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscribers/{uid} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscriber.read"

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

	res, err := h.service.Get(r.Context(), uid)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("subscriber not found", slog.String("uid", uid))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("subscriber not found"))
			return
		}
		log.Error("failed to read subscriber", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read subscriber"))
		return
	}

	log.Info("success to read subscriber", slog.String("uid", uid))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"subscriber": res,
	}))
}
