package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/verastrelkova/coaching-platform/internal/models"
)

// GetTrial возвращает запись о пробном периоде пользователя
// или ErrTrialNotFound, если её ещё нет.
func (s *Storage) GetTrial(ctx context.Context, userUID string) (*models.TrialRecord, error) {
	const op = "storage.GetTrial"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_uid, trial_start_date, trial_end_date
			  FROM trials
			  WHERE user_uid = $1`
	rec := &models.TrialRecord{}
	row := s.DB.QueryRowContext(ctx, query, userUID)
	if err := row.Scan(&rec.UserUID, &rec.TrialStartDate, &rec.TrialEndDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrTrialNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rec, nil
}

// UpsertTrial атомарно создаёт запись о пробном периоде.
// INSERT .. ON CONFLICT DO NOTHING по первичному ключу user_uid: при гонке
// двух первых проверок выигрывает ровно одна вставка, проигравшая сторона
// перечитывает уже существующую запись. Возвращается всегда та запись,
// которая реально лежит в базе.
func (s *Storage) UpsertTrial(ctx context.Context, rec models.TrialRecord) (*models.TrialRecord, error) {
	const op = "storage.UpsertTrial"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO trials (user_uid, trial_start_date, trial_end_date)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (user_uid) DO NOTHING
			  RETURNING user_uid, trial_start_date, trial_end_date`
	stored := &models.TrialRecord{}
	row := s.DB.QueryRowContext(ctx, query, rec.UserUID, rec.TrialStartDate, rec.TrialEndDate)
	err := row.Scan(&stored.UserUID, &stored.TrialStartDate, &stored.TrialEndDate)
	if err == nil {
		return stored, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Конфликт: запись уже создана параллельным запросом, читаем её.
	existing, err := s.GetTrial(ctx, rec.UserUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return existing, nil
}
