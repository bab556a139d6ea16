// Package preview реализует HTTP-обработчик предпросмотра рекомендаций.
//
// Handler принимает сырые предпочтения без сохранённого профиля, вызывает
// бизнес-логику подбора и возвращает пробную выдачу вместе со списком
// подходящих брендов. Используется экраном онбординга до регистрации.
package preview

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fashion-curation/internal/http/response"
	"github.com/magabrotheeeer/fashion-curation/internal/lib/sl"
	"github.com/magabrotheeeer/fashion-curation/internal/models"
	"github.com/magabrotheeeer/fashion-curation/internal/services"
)

// Handler обрабатывает запросы предпросмотра рекомендаций.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики подбора
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики предпросмотра.
type Service interface {
	Preview(ctx context.Context, prefs models.Preferences) (*services.PreviewView, error)
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
// @Summary Предпросмотр рекомендаций
// @Description Строит пробную выдачу по сырым предпочтениям без сохранённого профиля.
// @Tags Recommendations
// @Accept  json
// @Produce  json
// @Param request body models.Preferences true "Стилевые предпочтения"
// @Success 200 {object} map[string]any "Пробная выдача и подходящие бренды"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /recommendations/preview [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recommendation.preview"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var prefs models.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", prefs))

	view, err := h.service.Preview(r.Context(), prefs)
	if err != nil {
		log.Error("failed to build preview", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build preview"))
		return
	}

	log.Info("success to build preview", slog.Int("count", len(view.Products)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"preview": view,
	}))
}
