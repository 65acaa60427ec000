// Package services содержит бизнес-логику каталога контента:
// решение о показе каждого элемента конкретному пользователю.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/verastrelkova/coaching-platform/internal/lib/timeline"
	"github.com/verastrelkova/coaching-platform/internal/models"
)

// catalogCacheKey — ключ каталога в кеше. Каталог один на всех пользователей,
// кэшируются только сами элементы, решения о доступе всегда вычисляются заново.
const catalogCacheKey = "content:catalog"

// ContentRepository определяет методы для чтения каталога из хранилища.
type ContentRepository interface {
	ListContentItems(ctx context.Context) ([]*models.ContentItem, error)
}

// UserRepository определяет чтение пользователя для вычисления доступа.
type UserRepository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// ContentService выдаёт каталог с вердиктами доступа.
type ContentService struct {
	repo  ContentRepository
	users UserRepository
	cache Cache
	log   *slog.Logger
	now   func() time.Time
}

// NewContentService создает новый экземпляр ContentService с системными часами.
func NewContentService(repo ContentRepository, users UserRepository, cache Cache, log *slog.Logger) *ContentService {
	return &ContentService{
		repo:  repo,
		users: users,
		cache: cache,
		log:   log,
		now:   time.Now,
	}
}

// ListForUser возвращает каталог с решением о показе каждого элемента
// для пользователя userUID на текущий момент.
func (s *ContentService) ListForUser(ctx context.Context, userUID string) ([]models.ContentDecision, error) {
	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return nil, err
	}

	items, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	decisions := make([]models.ContentDecision, 0, len(items))
	for _, item := range items {
		decisions = append(decisions, Decide(user.SubscriptionTier, *item, user.EnrolledAt, now))
	}
	return decisions, nil
}

func (s *ContentService) catalog(ctx context.Context) ([]*models.ContentItem, error) {
	var cached []*models.ContentItem
	found, err := s.cache.Get(catalogCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read catalog cache", slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	items, err := s.repo.ListContentItems(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(catalogCacheKey, items, time.Hour); err != nil {
		s.log.Warn("failed to cache catalog", slog.Any("err", err))
	}
	return items, nil
}

// Decide выносит вердикт о показе элемента контента.
//
// Порядок проверок фиксирован и является осознанным продуктовым решением:
// сначала уровень подписки, потом расписание. Пользователь с недостаточным
// уровнем видит предложение апгрейда, а не обратный отсчёт до контента,
// который ему всё равно недоступен. Менять порядок нельзя — это меняет
// видимые пользователю сообщения.
func Decide(userTier models.Tier, item models.ContentItem, enrolledAt, now time.Time) models.ContentDecision {
	decision := models.ContentDecision{Item: item}

	if !userTier.Meets(item.RequiredTier) {
		decision.Access = models.AccessLockedTier
		return decision
	}

	currentWeek := timeline.CurrentWeek(enrolledAt, now)
	if !timeline.IsAvailable(item.WeekNumber, currentWeek) {
		release := timeline.ReleaseDate(enrolledAt, item.WeekNumber)
		decision.Access = models.AccessLockedSchedule
		decision.ReleaseDate = &release
		decision.Countdown = timeline.TimeUntilRelease(release, now)
		return decision
	}

	decision.Access = models.AccessGranted
	return decision
}
