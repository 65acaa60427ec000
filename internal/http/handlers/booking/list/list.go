// Package list реализует HTTP-обработчик выдачи бронирований пользователя.
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

// Handler обрабатывает HTTP-запросы списка бронирований.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис бизнес-логики бронирования
}

// Service описывает интерфейс бизнес-логики списка бронирований.
type Service interface {
	List(ctx context.Context, userUID string) ([]*models.Booking, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список бронирований пользователя
// @Description Возвращает все бронирования текущего пользователя, включая отменённые.
// @Tags Bookings
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Список бронирований"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /bookings/list [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.booking.list"

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

	bookings, err := h.service.List(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list bookings", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeDependencyError, "could not load bookings"))
		return
	}

	log.Info("bookings listed", slog.Int("count", len(bookings)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"bookings": bookings,
	}))
}
