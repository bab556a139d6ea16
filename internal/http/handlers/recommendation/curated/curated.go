// Package curated реализует HTTP-обработчик для выдачи курируемого набора.
//
// Handler извлекает UID из URL-параметров, вызывает бизнес-логику курации и
// возвращает сбалансированный по брендам набор товаров с метаданными.
package curated

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fashion-curation/internal/http/response"
	"github.com/magabrotheeeer/fashion-curation/internal/lib/sl"
	"github.com/magabrotheeeer/fashion-curation/internal/services"
	"github.com/magabrotheeeer/fashion-curation/internal/storage"
)

// Handler обрабатывает запросы на сборку курируемого набора.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики курации
	validate *validator.Validate // Валидатор UID из URL
}

// Service описывает интерфейс бизнес-логики курации.
type Service interface {
	CuratedSet(ctx context.Context, uid string, limit int) (*services.CuratedSetView, error)
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
// @Summary Получить курируемый набор
// @Description Возвращает сбалансированный по отслеживаемым брендам набор товаров с метаданными.
// @Tags Recommendations
// @Produce  json
// @Param uid path string true "UID подписчика"
// @Param limit query int false "Размер набора вместо настроенного"
// @Success 200 {object} map[string]any "Курируемый набор"
// @Failure 400 {object} response.ErrorResponse "Некорректный UID"
// @Failure 404 {object} response.ErrorResponse "Подписчик не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscribers/{uid}/curated [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recommendation.curated"

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

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	view, err := h.service.CuratedSet(r.Context(), uid, limit)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("subscriber not found", slog.String("uid", uid))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("subscriber not found"))
			return
		}
		log.Error("failed to assemble curated set", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not assemble curated set"))
		return
	}

	log.Info("success to assemble curated set",
		slog.String("uid", uid), slog.Int("count", len(view.Products)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"curatedSet": view,
	}))
}
