// Package repository реализует хранилище данных на основе PostgreSQL
// для пользователей, пробных периодов, каталога контента и бронирований сессий.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки уровня хранилища. Сервисы различают их через errors.Is.
var (
	// ErrUserNotFound — пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists — пользователь с таким email или username уже есть.
	ErrUserExists = errors.New("user already exists")
	// ErrTrialNotFound — запись о пробном периоде отсутствует.
	ErrTrialNotFound = errors.New("trial record not found")
	// ErrSlotTaken — слот (дата, время) уже занят неотменённым бронированием.
	// Источник истины — частичный уникальный индекс в БД.
	ErrSlotTaken = errors.New("time slot already booked")
	// ErrBookingNotFound — бронирование не найдено или принадлежит другому пользователю.
	ErrBookingNotFound = errors.New("booking not found")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func (s *Storage) CheckDatabaseReady(ctx context.Context) error {
	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'bookings'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table bookings missing or query error: %w", err)
	}
	return nil
}
