// Package favorites реализует HTTP-обработчик для получения избранного подписчика.
//
// Handler извлекает UID из URL-параметров, вызывает бизнес-логику и возвращает
// список товаров, для которых последнее действие подписчика — favorite.
package favorites

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

// Handler обрабатывает запросы на получение избранного подписчика.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики избранного
	validate *validator.Validate // Валидатор UID из URL
}

// Service описывает интерфейс бизнес-логики избранного.
type Service interface {
	Favorites(ctx context.Context, uid string) ([]services.ProductView, error)
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
// @Summary Получить избранное подписчика
// @Description Возвращает товары, для которых последнее действие подписчика — favorite.
// @Tags Subscribers
// @Produce  json
// @Param uid path string true "UID подписчика"
// @Success 200 {object} map[string]any "Список избранных товаров"
// @Failure 400 {object} response.ErrorResponse "Некорректный UID"
// @Failure 404 {object} response.ErrorResponse "Подписчик не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscribers/{uid}/favorites [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscriber.favorites"

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

	res, err := h.service.Favorites(r.Context(), uid)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("subscriber not found", slog.String("uid", uid))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("subscriber not found"))
			return
		}
		log.Error("failed to list favorites", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list favorites"))
		return
	}

	log.Info("success to list favorites", slog.String("uid", uid), slog.Int("count", len(res)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"favorites": res,
	}))
}
