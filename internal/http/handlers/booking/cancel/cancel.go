// Package cancel реализует HTTP-обработчик отмены бронирования.
//
// Отменить можно только собственное бронирование в статусе pending.
// Отмена освобождает слот: его сразу может занять другой пользователь.
package cancel

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/verastrelkova/coaching-platform/internal/http/middlewarectx"
	"github.com/verastrelkova/coaching-platform/internal/http/response"
	"github.com/verastrelkova/coaching-platform/internal/lib/sl"
	"github.com/verastrelkova/coaching-platform/internal/storage/repository"
)

// Handler обрабатывает HTTP-запросы на отмену бронирования.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис бизнес-логики бронирования
}

// Service описывает интерфейс бизнес-логики отмены бронирования.
type Service interface {
	Cancel(ctx context.Context, id int, userUID string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отменить бронирование
// @Description Отменяет бронирование текущего пользователя и освобождает слот.
// @Tags Bookings
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID бронирования"
// @Success 200 {object} map[string]any "Бронирование отменено"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Бронирование не найдено"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /bookings/{id}/cancel [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.booking.cancel"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid booking id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeValidationError, "invalid booking id"))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(response.CodeAuthError, "unauthorized"))
		return
	}

	if err := h.service.Cancel(r.Context(), id, userUID); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			log.Error("booking not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(response.CodeValidationError, "booking not found"))
			return
		}
		log.Error("failed to cancel booking", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeDependencyError, "could not cancel booking"))
		return
	}

	log.Info("booking cancelled", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id":     id,
		"status": "cancelled",
	}))
}
