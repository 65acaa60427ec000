// Package list реализует HTTP-обработчик выдачи каталога контента.
//
// Handler извлекает UID пользователя из контекста, запрашивает у сервиса
// каталог с вердиктом доступа для каждого элемента и возвращает его в JSON.
// Заблокированные элементы не скрываются: клиент показывает их с пометкой
// locked_tier или locked_schedule и обратным отсчётом.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/verastrelkova/coaching-platform/internal/http/middlewarectx"
	"github.com/verastrelkova/coaching-platform/internal/http/response"
	"github.com/verastrelkova/coaching-platform/internal/lib/sl"
	"github.com/verastrelkova/coaching-platform/internal/models"
)

// Handler обрабатывает HTTP-запросы каталога контента.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис бизнес-логики доступа к контенту
}

// Service описывает интерфейс бизнес-логики каталога.
type Service interface {
	ListForUser(ctx context.Context, userUID string) ([]models.ContentDecision, error)
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Каталог контента с вердиктами доступа
// @Description Возвращает все элементы каталога с решением show, locked_tier или locked_schedule для текущего пользователя.
// @Tags Content
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Каталог с вердиктами"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /content [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.content.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(response.CodeAuthError, "unauthorized"))
		return
	}

	decisions, err := h.service.ListForUser(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list content", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeDependencyError, "could not load content"))
		return
	}

	log.Info("content listed", slog.Int("count", len(decisions)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"items": decisions,
	}))
}
