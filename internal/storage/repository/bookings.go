package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/verastrelkova/coaching-platform/internal/models"
)

// CountActiveBookingsForSlot возвращает число неотменённых бронирований
// на пару (дата, время). Используется как быстрая проверка перед вставкой;
// гарантию единственности даёт частичный уникальный индекс.
func (s *Storage) CountActiveBookingsForSlot(ctx context.Context, sessionDate time.Time, sessionTime string) (int, error) {
	const op = "storage.CountActiveBookingsForSlot"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*)
			  FROM bookings
			  WHERE session_date = $1 AND session_time = $2 AND status <> $3`
	var count int
	if err := s.DB.QueryRowContext(ctx, query,
		sessionDate, sessionTime, models.BookingStatusCancelled).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// CreateBooking вставляет новое бронирование в статусе pending.
// Нарушение частичного уникального индекса (session_date, session_time)
// среди неотменённых бронирований возвращается как ErrSlotTaken —
// это авторитетный сигнал конфликта при одновременных запросах.
func (s *Storage) CreateBooking(ctx context.Context, b models.Booking) (*models.Booking, error) {
	const op = "storage.CreateBooking"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO bookings (user_uid, session_type, session_date, session_time, notes, status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, created_at`
	created := b
	created.Status = models.BookingStatusPending
	err := s.DB.QueryRowContext(ctx, query,
		b.UserUID, b.SessionType, b.SessionDate, b.SessionTime, b.Notes,
		models.BookingStatusPending).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrSlotTaken)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// ListBookingsByUser возвращает бронирования пользователя, новые первыми.
func (s *Storage) ListBookingsByUser(ctx context.Context, userUID string) ([]*models.Booking, error) {
	const op = "storage.ListBookingsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, session_type, session_date, session_time, notes, status, created_at
			  FROM bookings
			  WHERE user_uid = $1
			  ORDER BY session_date DESC, created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Booking
	for rows.Next() {
		var b models.Booking
		if err = rows.Scan(&b.ID, &b.UserUID, &b.SessionType, &b.SessionDate,
			&b.SessionTime, &b.Notes, &b.Status, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CancelBooking переводит бронирование пользователя в статус cancelled,
// освобождая слот. Завершённые бронирования не отменяются.
func (s *Storage) CancelBooking(ctx context.Context, id int, userUID string) error {
	const op = "storage.CancelBooking"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE bookings
			  SET status = $1
			  WHERE id = $2 AND user_uid = $3 AND status = $4`
	res, err := s.DB.ExecContext(ctx, query,
		models.BookingStatusCancelled, id, userUID, models.BookingStatusPending)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrBookingNotFound)
	}
	return nil
}
