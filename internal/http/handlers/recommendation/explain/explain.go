// Package explain реализует HTTP-обработчик для объяснения балла товара.
//
// Handler извлекает UID подписчика и ID товара из URL-параметров, вызывает
// бизнес-логику скоринга и возвращает разбивку балла по компонентам с
// текстовыми причинами.
package explain

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

// Handler обрабатывает запросы на объяснение балла товара для подписчика.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики скоринга
	validate *validator.Validate // Валидатор UID из URL
}

// Service описывает интерфейс бизнес-логики объяснения балла.
type Service interface {
	Explain(ctx context.Context, uid string, productID int64) (*services.ExplanationView, error)
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
// @Summary Объяснить балл товара
// @Description Возвращает разбивку балла совпадения товара с профилем подписчика.
// @Tags Recommendations
// @Produce  json
// @Param uid path string true "UID подписчика"
// @Param productID path int true "ID товара"
// @Success 200 {object} map[string]any "Объяснение балла"
// @Failure 400 {object} response.ErrorResponse "Некорректный UID или ID товара"
// @Failure 404 {object} response.ErrorResponse "Подписчик или товар не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscribers/{uid}/products/{productID}/explanation [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recommendation.explain"

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

	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		log.Error("failed to decode product id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid product id"))
		return
	}

	view, err := h.service.Explain(r.Context(), uid, productID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("subscriber or product not found",
				slog.String("uid", uid), slog.Int64("product_id", productID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("subscriber or product not found"))
			return
		}
		log.Error("failed to explain score", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not explain score"))
		return
	}

	log.Info("success to explain score",
		slog.String("uid", uid), slog.Int64("product_id", productID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"explanation": view,
	}))
}
