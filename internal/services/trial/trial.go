// Package services содержит бизнес-логику пробного периода пользователя.
package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/verastrelkova/coaching-platform/internal/models"
	"github.com/verastrelkova/coaching-platform/internal/storage/repository"
)

// TrialRepository определяет методы для работы с пробными периодами в хранилище.
type TrialRepository interface {
	// GetTrial возвращает запись о пробном периоде или repository.ErrTrialNotFound.
	GetTrial(ctx context.Context, userUID string) (*models.TrialRecord, error)
	// UpsertTrial атомарно создаёт запись; при конфликте возвращает существующую.
	UpsertTrial(ctx context.Context, rec models.TrialRecord) (*models.TrialRecord, error)
}

// TrialService реализует ленивое создание пробного периода и вычисление его статуса.
// Текущее время берётся из поля now, чтобы тесты могли зафиксировать часы.
type TrialService struct {
	repo TrialRepository
	log  *slog.Logger
	now  func() time.Time
}

// NewTrialService создает новый экземпляр TrialService с системными часами.
func NewTrialService(repo TrialRepository, log *slog.Logger) *TrialService {
	return &TrialService{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// GetOrCreateTrial возвращает запись о пробном периоде пользователя,
// создавая её при первом обращении. Идемпотентно: повторные вызовы
// возвращают ту же запись, одновременные первые вызовы сходятся
// к одному окну за счёт атомарного upsert в хранилище.
//
// Ошибка хранилища возвращается как есть: статус "неизвестен" не
// подменяется ни активным, ни истёкшим пробным периодом.
func (s *TrialService) GetOrCreateTrial(ctx context.Context, userUID string) (*models.TrialRecord, error) {
	rec, err := s.repo.GetTrial(ctx, userUID)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, repository.ErrTrialNotFound) {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.repo.UpsertTrial(ctx, models.TrialRecord{
		UserUID:        userUID,
		TrialStartDate: now,
		TrialEndDate:   now.Add(models.TrialDuration),
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("trial started", slog.String("user_uid", userUID),
		slog.Time("ends_at", created.TrialEndDate))
	return created, nil
}

// CheckStatus возвращает статус пробного периода на текущий момент.
func (s *TrialService) CheckStatus(ctx context.Context, userUID string) (*models.TrialStatus, error) {
	rec, err := s.GetOrCreateTrial(ctx, userUID)
	if err != nil {
		return nil, err
	}
	status := Status(rec, s.now())
	return &status, nil
}

// Status вычисляет производное состояние пробного периода на момент now.
// Граница включительная: в момент now == TrialEndDate период ещё активен.
// Функция чистая и вызывается заново при каждой проверке.
func Status(rec *models.TrialRecord, now time.Time) models.TrialStatus {
	inTrial := !now.After(rec.TrialEndDate)

	var daysLeft int
	if remaining := rec.TrialEndDate.Sub(now); remaining > 0 {
		const day = 24 * time.Hour
		daysLeft = int((remaining + day - time.Nanosecond) / day)
	}

	return models.TrialStatus{
		InTrial:  inTrial,
		Expired:  !inTrial,
		DaysLeft: daysLeft,
		EndsAt:   rec.TrialEndDate,
	}
}
