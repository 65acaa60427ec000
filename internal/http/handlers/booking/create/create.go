// Package create реализует HTTP-обработчик создания бронирования сессии.
//
// Handler принимает JSON с типом, датой и временем сессии, валидирует поля,
// извлекает UID пользователя из контекста и вызывает бизнес-логику бронирования.
// Занятый слот возвращается как конфликт с машинным кодом, чтобы клиент мог
// предложить выбрать другое время.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/verastrelkova/coaching-platform/internal/http/middlewarectx"
	"github.com/verastrelkova/coaching-platform/internal/http/response"
	"github.com/verastrelkova/coaching-platform/internal/lib/sl"
	"github.com/verastrelkova/coaching-platform/internal/models"
	"github.com/verastrelkova/coaching-platform/internal/storage/repository"
)

// Handler обрабатывает HTTP-запросы на создание бронирований.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис бизнес-логики бронирования
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания бронирования.
type Service interface {
	Create(ctx context.Context, userUID string, req models.DummyBooking) (*models.Booking, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Записаться на коучинг-сессию
// @Description Создает бронирование слота. На одно время допускается только одно активное бронирование.
// @Tags Bookings
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyBooking true "Данные бронирования"
// @Success 200 {object} map[string]any "Созданное бронирование"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 409 {object} response.ErrorResponse "Слот уже занят"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 502 {object} response.ErrorResponse "Хранилище недоступно"
// @Router /bookings [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.booking.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyBooking
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeValidationError, "invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(response.CodeAuthError, "unauthorized"))
		return
	}

	booking, err := h.service.Create(r.Context(), userUID, req)
	if err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			log.Error("slot already booked", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(response.CodeConflict, "this time slot is already booked, please select another time"))
			return
		}
		log.Error("failed to create booking", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error(response.CodeDependencyError, "could not create booking"))
		return
	}

	log.Info("booking created", slog.Int("id", booking.ID))
	render.JSON(w, r, response.OKWithData(booking))
}
