// Package services содержит бизнес-логику бронирования коучинг-сессий.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/verastrelkova/coaching-platform/internal/models"
	"github.com/verastrelkova/coaching-platform/internal/storage/repository"
)

// BookingRepository определяет методы для работы с бронированиями в хранилище.
type BookingRepository interface {
	// CountActiveBookingsForSlot — быстрая проверка занятости слота.
	CountActiveBookingsForSlot(ctx context.Context, sessionDate time.Time, sessionTime string) (int, error)
	// CreateBooking вставляет бронирование; занятый слот — repository.ErrSlotTaken.
	CreateBooking(ctx context.Context, b models.Booking) (*models.Booking, error)
	// ListBookingsByUser возвращает бронирования пользователя.
	ListBookingsByUser(ctx context.Context, userUID string) ([]*models.Booking, error)
	// CancelBooking отменяет бронирование пользователя.
	CancelBooking(ctx context.Context, id int, userUID string) error
}

// UserReader читает пользователя для события уведомления.
type UserReader interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// Publisher публикует события в очередь уведомлений.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// BookingService реализует создание бронирований с защитой от двойного
// бронирования слота и публикацию событий для отправки подтверждений.
type BookingService struct {
	repo      BookingRepository
	users     UserReader
	publisher Publisher
	log       *slog.Logger
}

// NewBookingService создает новый экземпляр BookingService.
// publisher может быть nil — тогда уведомления не отправляются.
func NewBookingService(repo BookingRepository, users UserReader, publisher Publisher, log *slog.Logger) *BookingService {
	return &BookingService{
		repo:      repo,
		users:     users,
		publisher: publisher,
		log:       log,
	}
}

// Create создаёт бронирование в статусе pending.
//
// Проверка занятости слота перед вставкой — только быстрый путь для
// дружелюбной ошибки. Авторитетная защита от гонки двух одновременных
// запросов — частичный уникальный индекс в БД: нарушение уникальности
// при вставке приходит сюда как repository.ErrSlotTaken.
func (s *BookingService) Create(ctx context.Context, userUID string, req models.DummyBooking) (*models.Booking, error) {
	sessionDate, err := time.Parse("2006-01-02", req.SessionDate)
	if err != nil {
		return nil, fmt.Errorf("invalid session date: %w", err)
	}

	count, err := s.repo.CountActiveBookingsForSlot(ctx, sessionDate, req.SessionTime)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, repository.ErrSlotTaken
	}

	booking := models.Booking{
		UserUID:     userUID,
		SessionType: req.SessionType,
		SessionDate: sessionDate,
		SessionTime: req.SessionTime,
	}
	if req.Notes != "" {
		booking.Notes = &req.Notes
	}

	created, err := s.repo.CreateBooking(ctx, booking)
	if err != nil {
		return nil, err
	}

	s.log.Info("booking created",
		slog.Int("id", created.ID),
		slog.String("session_date", req.SessionDate),
		slog.String("session_time", req.SessionTime))

	s.publishCreated(ctx, userUID, created)
	return created, nil
}

// publishCreated отправляет событие подтверждения. Уведомления — best effort:
// сбой публикации логируется, но не откатывает уже созданное бронирование.
func (s *BookingService) publishCreated(ctx context.Context, userUID string, b *models.Booking) {
	if s.publisher == nil {
		return
	}

	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		s.log.Warn("failed to load user for booking notification", slog.Any("err", err))
		return
	}

	event := models.BookingCreatedEvent{
		Email:       user.Email,
		Username:    user.Username,
		SessionType: b.SessionType,
		SessionDate: b.SessionDate.Format("2006-01-02"),
		SessionTime: b.SessionTime,
	}
	if err := s.publisher.Publish("booking.created", event); err != nil {
		s.log.Warn("failed to publish booking notification", slog.Any("err", err))
	}
}

// List возвращает бронирования пользователя.
func (s *BookingService) List(ctx context.Context, userUID string) ([]*models.Booking, error) {
	return s.repo.ListBookingsByUser(ctx, userUID)
}

// Cancel отменяет бронирование пользователя, освобождая слот.
func (s *BookingService) Cancel(ctx context.Context, id int, userUID string) error {
	if err := s.repo.CancelBooking(ctx, id, userUID); err != nil {
		return err
	}
	s.log.Info("booking cancelled", slog.Int("id", id), slog.String("user_uid", userUID))
	return nil
}
