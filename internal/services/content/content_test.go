package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/verastrelkova/coaching-platform/internal/models"
)

// MockContentRepository реализует интерфейс ContentRepository.
type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) ListContentItems(ctx context.Context) ([]*models.ContentItem, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]*models.ContentItem), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockUserRepository реализует интерфейс UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// fakeCache — кэш в памяти для тестов, повторяет JSON-семантику Redis-кэша.
type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (c *fakeCache) Get(key string, result any) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, result)
}

func (c *fakeCache) Set(key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *fakeCache) Invalidate(key string) error {
	delete(c.data, key)
	return nil
}

var enrolledAt = time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)

func TestDecide_TierLockBeatsSchedule(t *testing.T) {
	// Free-пользователь на десятой неделе: контент давно открыт по расписанию,
	// но вердикт — locked_tier, обратный отсчёт не показывается.
	item := models.ContentItem{ID: 1, WeekNumber: 1, RequiredTier: models.TierMastery}
	now := enrolledAt.Add(9 * 7 * 24 * time.Hour)

	decision := Decide(models.TierFree, item, enrolledAt, now)

	assert.Equal(t, models.AccessLockedTier, decision.Access)
	assert.Nil(t, decision.ReleaseDate)
	assert.Empty(t, decision.Countdown)
}

func TestDecide_ScheduleLockWithCountdown(t *testing.T) {
	// Executive-пользователь на второй неделе и контент пятой недели:
	// уровня достаточно, блокирует только расписание.
	item := models.ContentItem{ID: 2, WeekNumber: 5, RequiredTier: models.TierFoundation}
	now := enrolledAt.Add(7 * 24 * time.Hour) // начало второй недели

	decision := Decide(models.TierExecutive, item, enrolledAt, now)

	require.Equal(t, models.AccessLockedSchedule, decision.Access)
	require.NotNil(t, decision.ReleaseDate)
	assert.True(t, decision.ReleaseDate.Equal(enrolledAt.Add(28*24*time.Hour)))
	assert.Equal(t, "Unlocks in 3 weeks", decision.Countdown)
}

func TestDecide_Granted(t *testing.T) {
	item := models.ContentItem{ID: 3, WeekNumber: 2, RequiredTier: models.TierFoundation}
	now := enrolledAt.Add(15 * 24 * time.Hour) // третья неделя

	decision := Decide(models.TierFoundation, item, enrolledAt, now)

	assert.Equal(t, models.AccessGranted, decision.Access)
	assert.Nil(t, decision.ReleaseDate)
	assert.Empty(t, decision.Countdown)
}

func TestListForUser(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	user := &models.User{
		UUID:             "uid-1",
		SubscriptionTier: models.TierFoundation,
		EnrolledAt:       enrolledAt,
	}
	items := []*models.ContentItem{
		{ID: 1, Title: "Orientation", WeekNumber: 1, RequiredTier: models.TierFree},
		{ID: 2, Title: "Board presence", WeekNumber: 1, RequiredTier: models.TierExecutive},
		{ID: 3, Title: "Capstone", WeekNumber: 8, RequiredTier: models.TierFoundation},
	}

	users := new(MockUserRepository)
	users.On("GetUser", mock.Anything, "uid-1").Return(user, nil)

	repo := new(MockContentRepository)
	repo.On("ListContentItems", mock.Anything).Return(items, nil).Once()

	svc := NewContentService(repo, users, newFakeCache(), logger)
	svc.now = func() time.Time { return enrolledAt.Add(10 * 24 * time.Hour) } // вторая неделя

	decisions, err := svc.ListForUser(context.Background(), "uid-1")
	require.NoError(t, err)
	require.Len(t, decisions, 3)

	assert.Equal(t, models.AccessGranted, decisions[0].Access)
	assert.Equal(t, models.AccessLockedTier, decisions[1].Access)
	assert.Equal(t, models.AccessLockedSchedule, decisions[2].Access)
	assert.NotEmpty(t, decisions[2].Countdown)

	// Повторный запрос обслуживается из кеша: репозиторий вызван один раз.
	_, err = svc.ListForUser(context.Background(), "uid-1")
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "ListContentItems", 1)
}

func TestListForUser_UserReadErrorPropagates(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	users := new(MockUserRepository)
	users.On("GetUser", mock.Anything, "uid-err").Return(nil, assert.AnError)

	svc := NewContentService(new(MockContentRepository), users, newFakeCache(), logger)

	_, err := svc.ListForUser(context.Background(), "uid-err")
	require.Error(t, err)
}
