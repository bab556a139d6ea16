// Package list реализует HTTP-обработчик для постраничной выдачи рекомендаций.
//
// Handler извлекает UID из URL-параметров, разбирает параметры пагинации и
// фильтров из строки запроса, вызывает бизнес-логику ранжирования и возвращает
// страницу рекомендаций в JSON-формате.
package list

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

// Handler обрабатывает запросы на постраничную выдачу рекомендаций.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики подбора
	validate *validator.Validate // Валидатор UID из URL
}

// Service описывает интерфейс бизнес-логики подбора рекомендаций.
type Service interface {
	List(ctx context.Context, uid string, limit, offset int, filter storage.ProductFilter) (*services.RecommendationListView, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// parseFilter разбирает фильтры каталога из строки запроса.
// Нечисловые значения цен отбрасываются молча: фильтр не применяется.
func parseFilter(r *http.Request) storage.ProductFilter {
	var filter storage.ProductFilter
	filter.Category = r.URL.Query().Get("category")
	if raw := r.URL.Query().Get("min_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinPrice = &v
		}
	}
	if raw := r.URL.Query().Get("max_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = &v
		}
	}
	return filter
}

// ServeHTTP godoc
// @Summary Получить рекомендации подписчика
// @Description Возвращает страницу отранжированных по совпадению стиля товаров.
// @Tags Recommendations
// @Produce  json
// @Param uid path string true "UID подписчика"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Param category query string false "Фильтр по категории"
// @Param min_price query number false "Минимальная цена"
// @Param max_price query number false "Максимальная цена"
// @Success 200 {object} map[string]any "Страница рекомендаций"
// @Failure 400 {object} response.ErrorResponse "Некорректный UID"
// @Failure 404 {object} response.ErrorResponse "Подписчик не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscribers/{uid}/recommendations [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recommendation.list"

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
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}
	filter := parseFilter(r)

	view, err := h.service.List(r.Context(), uid, limit, offset, filter)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("subscriber not found", slog.String("uid", uid))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("subscriber not found"))
			return
		}
		log.Error("failed to build recommendations", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build recommendations"))
		return
	}

	log.Info("success to build recommendations", slog.String("uid", uid), slog.Int("count", len(view.Products)))
	render.JSON(w, r, response.StatusOKWithData(view))
}
