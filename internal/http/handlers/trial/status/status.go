// Package status реализует HTTP-обработчик статуса пробного периода.
//
// Первый запрос пользователя лениво создаёт запись о пробном периоде,
// повторные возвращают то же окно. Если хранилище недоступно, обработчик
// отвечает ошибкой зависимости: статус не придумывается.
package status

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

// Handler обрабатывает HTTP-запросы статуса пробного периода.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис бизнес-логики пробного периода
}

// Service описывает интерфейс бизнес-логики пробного периода.
type Service interface {
	CheckStatus(ctx context.Context, userUID string) (*models.TrialStatus, error)
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Статус пробного периода
// @Description Возвращает состояние пробного периода пользователя, создавая запись при первом обращении.
// @Tags Trial
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Статус пробного периода"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 502 {object} response.ErrorResponse "Хранилище недоступно"
// @Router /trial/status [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.trial.status"

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

	status, err := h.service.CheckStatus(r.Context(), userUID)
	if err != nil {
		log.Error("failed to check trial status", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error(response.CodeDependencyError, "trial status is temporarily unavailable"))
		return
	}

	log.Info("trial status checked", slog.Bool("in_trial", status.InTrial))
	render.JSON(w, r, response.OKWithData(status))
}
