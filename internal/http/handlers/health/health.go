// Package health реализует HTTP-обработчик проверки живости сервиса.
package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fashion-curation/internal/http/response"
	"github.com/magabrotheeeer/fashion-curation/internal/lib/sl"
	"github.com/magabrotheeeer/fashion-curation/internal/storage"
)

type Handler struct {
	log *slog.Logger
	db  *storage.Storage
}

func New(log *slog.Logger, db *storage.Storage) *Handler {
	return &Handler{
		log: log,
		db:  db,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	if err := storage.CheckDatabaseReady(h.db); err != nil {
		h.log.Error("database is not ready", slog.String("op", op), sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("database is not ready"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"status": "ok",
	}))
}
