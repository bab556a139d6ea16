// Package interactioncreate реализует HTTP-обработчик записи взаимодействия
// подписчика с товаром.
//
// Handler принимает JSON-запрос с событием (swipe_left, swipe_right, favorite,
// unfavorite), валидирует его, вызывает бизнес-логику журнала и возвращает ID
// созданной записи.
package interactioncreate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fashion-curation/internal/http/response"
	"github.com/magabrotheeeer/fashion-curation/internal/lib/sl"
	"github.com/magabrotheeeer/fashion-curation/internal/models"
	"github.com/magabrotheeeer/fashion-curation/internal/storage"
)

// Handler обрабатывает запросы записи взаимодействий.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики журнала взаимодействий
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики журнала взаимодействий.
type Service interface {
	LogInteraction(ctx context.Context, req models.DummyInteraction) (int64, error)
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
// @Summary Записать взаимодействие
// @Description Фиксирует событие взаимодействия подписчика с товаром в журнале.
// @Tags Interactions
// @Accept  json
// @Produce  json
// @Param request body models.DummyInteraction true "Событие взаимодействия"
// @Success 200 {object} map[string]any "ID созданной записи"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или неизвестное действие"
// @Failure 404 {object} response.ErrorResponse "Подписчик или товар не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /interactions [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.interaction.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyInteraction
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	if !models.ValidAction(req.Action) {
		log.Error("unknown interaction action", slog.String("action", req.Action))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("unknown interaction action"))
		return
	}

	id, err := h.service.LogInteraction(r.Context(), req)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("subscriber or product not found",
				slog.String("uid", req.SubscriberUID), slog.Int64("product_id", req.ProductID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("subscriber or product not found"))
			return
		}
		log.Error("failed to log interaction", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not log interaction"))
		return
	}

	log.Info("success to log interaction", slog.Int64("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"interactionId": id,
	}))
}
