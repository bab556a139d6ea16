// Package readiness реализует HTTP-обработчик проверки готовности курации.
//
// Handler принимает список отслеживаемых брендов, вызывает бизнес-логику
// проверки и возвращает агрегированный вердикт с постатусной разбивкой по
// брендам. Ответ всегда 200: сбой проверки отражается полем isReady, а не
// кодом ошибки, чтобы клиент показывал экран ожидания.
package readiness

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fashion-curation/internal/http/response"
	"github.com/magabrotheeeer/fashion-curation/internal/lib/sl"
	"github.com/magabrotheeeer/fashion-curation/internal/models"
)

// Handler обрабатывает запросы проверки готовности курации.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики проверки готовности
}

// Service описывает интерфейс бизнес-логики проверки готовности.
type Service interface {
	Check(ctx context.Context, followedBrands []string, prefs models.Preferences) models.CurationStatus
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Проверить готовность курации
// @Description Возвращает готовность отслеживаемых брендов к сборке курируемого набора.
// @Tags Curation
// @Accept  json
// @Produce  json
// @Param request body models.DummyReadinessCheck true "Отслеживаемые бренды и предпочтения"
// @Success 200 {object} map[string]any "Статус готовности"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Router /curation/readiness [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.curation.readiness"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyReadinessCheck
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	status := h.service.Check(r.Context(), req.FollowedBrands, req.Preferences)

	log.Info("curation readiness checked",
		slog.Bool("is_ready", status.IsReady),
		slog.Int("brands", len(req.FollowedBrands)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"readiness": status,
	}))
}
