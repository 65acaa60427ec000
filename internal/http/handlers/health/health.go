// Package health реализует HTTP-обработчик проверки работоспособности сервиса.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/verastrelkova/coaching-platform/internal/http/response"
)

// Handler обрабатывает запросы проверки готовности сервиса.
type Handler struct {
	log     *slog.Logger
	storage StorageChecker
}

// StorageChecker проверяет готовность хранилища принимать запросы.
type StorageChecker interface {
	CheckDatabaseReady(ctx context.Context) error
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, storage StorageChecker) *Handler {
	return &Handler{
		log:     log,
		storage: storage,
	}
}

// ServeHTTP godoc
// @Summary Проверка работоспособности
// @Description Возвращает ok, если сервис и его хранилище готовы принимать запросы.
// @Tags Service
// @Produce  json
// @Success 200 {object} map[string]any "Сервис работает"
// @Failure 503 {object} response.ErrorResponse "Хранилище недоступно"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	if err := h.storage.CheckDatabaseReady(r.Context()); err != nil {
		h.log.Error("database is not ready", slog.String("op", op))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error(response.CodeDependencyError, "storage is not ready"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"status": "ok",
	}))
}
