package models

import "time"

// Статусы бронирования сессии. Новое бронирование всегда создаётся в pending;
// переходы в completed выполняются административными процессами вне этого сервиса.
const (
	BookingStatusPending   = "pending"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Booking представляет бронирование коучинг-сессии.
// Инвариант: на пару (SessionDate, SessionTime) существует не более одного
// бронирования со статусом, отличным от cancelled. Инвариант обеспечивается
// частичным уникальным индексом в БД, проверка в коде — только быстрый путь.
type Booking struct {
	ID          int       `json:"id"`
	UserUID     string    `json:"user_uid"`
	SessionType string    `json:"session_type"`
	SessionDate time.Time `json:"session_date"`
	SessionTime string    `json:"session_time"`
	Notes       *string   `json:"notes,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// DummyBooking используется для приёма данных бронирования из JSON-запроса.
// Дата приходит строкой в формате 2006-01-02 и парсится в бизнес-логике.
type DummyBooking struct {
	SessionType string `json:"session_type" validate:"required"`
	SessionDate string `json:"session_date" validate:"required,datetime=2006-01-02"`
	SessionTime string `json:"session_time" validate:"required"`
	Notes       string `json:"notes,omitempty" validate:"omitempty"`
}

// BookingCreatedEvent — событие для очереди уведомлений о новом бронировании.
type BookingCreatedEvent struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	SessionType string `json:"session_type"`
	SessionDate string `json:"session_date"`
	SessionTime string `json:"session_time"`
}
