package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/verastrelkova/coaching-platform/internal/models"
	"github.com/verastrelkova/coaching-platform/internal/storage/repository"
)

// MockTrialRepository реализует интерфейс TrialRepository.
type MockTrialRepository struct {
	mock.Mock
}

func (m *MockTrialRepository) GetTrial(ctx context.Context, userUID string) (*models.TrialRecord, error) {
	args := m.Called(ctx, userUID)
	if res := args.Get(0); res != nil {
		return res.(*models.TrialRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTrialRepository) UpsertTrial(ctx context.Context, rec models.TrialRecord) (*models.TrialRecord, error) {
	args := m.Called(ctx, rec)
	if res := args.Get(0); res != nil {
		return res.(*models.TrialRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestService(repo TrialRepository, now time.Time) *TrialService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	svc := NewTrialService(repo, logger)
	svc.now = func() time.Time { return now }
	return svc
}

func TestGetOrCreateTrial_CreatesOnFirstCall(t *testing.T) {
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	want := &models.TrialRecord{
		UserUID:        "uid-1",
		TrialStartDate: now,
		TrialEndDate:   now.Add(models.TrialDuration),
	}

	repo := new(MockTrialRepository)
	repo.On("GetTrial", mock.Anything, "uid-1").Return(nil, repository.ErrTrialNotFound)
	repo.On("UpsertTrial", mock.Anything, mock.MatchedBy(func(rec models.TrialRecord) bool {
		return rec.UserUID == "uid-1" && rec.TrialEndDate.Sub(rec.TrialStartDate) == models.TrialDuration
	})).Return(want, nil)

	svc := newTestService(repo, now)
	got, err := svc.GetOrCreateTrial(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.True(t, got.TrialStartDate.Equal(now))

	repo.AssertExpectations(t)
}

func TestGetOrCreateTrial_ReturnsExistingVerbatim(t *testing.T) {
	start := time.Date(2025, 1, 20, 9, 30, 0, 0, time.UTC)
	existing := &models.TrialRecord{
		UserUID:        "uid-2",
		TrialStartDate: start,
		TrialEndDate:   start.Add(models.TrialDuration),
	}

	repo := new(MockTrialRepository)
	repo.On("GetTrial", mock.Anything, "uid-2").Return(existing, nil)

	svc := newTestService(repo, start.Add(72*time.Hour))

	// Два вызова подряд — одно и то же окно, без записи.
	for range 2 {
		got, err := svc.GetOrCreateTrial(context.Background(), "uid-2")
		require.NoError(t, err)
		assert.True(t, got.TrialStartDate.Equal(start))
	}

	repo.AssertNotCalled(t, "UpsertTrial", mock.Anything, mock.Anything)
}

func TestGetOrCreateTrial_StorageErrorIsNotADefault(t *testing.T) {
	repo := new(MockTrialRepository)
	repo.On("GetTrial", mock.Anything, "uid-3").Return(nil, errors.New("connection refused"))

	svc := newTestService(repo, time.Now())

	rec, err := svc.GetOrCreateTrial(context.Background(), "uid-3")
	require.Error(t, err)
	assert.Nil(t, rec, "a failed read must not look like any trial state")
	repo.AssertNotCalled(t, "UpsertTrial", mock.Anything, mock.Anything)
}

func TestStatus_Boundaries(t *testing.T) {
	end := time.Date(2025, 2, 15, 10, 0, 0, 0, time.UTC)
	rec := &models.TrialRecord{
		UserUID:        "uid-4",
		TrialStartDate: end.Add(-models.TrialDuration),
		TrialEndDate:   end,
	}

	tests := []struct {
		name         string
		now          time.Time
		wantInTrial  bool
		wantDaysLeft int
	}{
		{
			name:         "середина периода",
			now:          end.Add(-7 * 24 * time.Hour),
			wantInTrial:  true,
			wantDaysLeft: 7,
		},
		{
			name:         "остаток меньше суток округляется вверх",
			now:          end.Add(-3 * time.Hour),
			wantInTrial:  true,
			wantDaysLeft: 1,
		},
		{
			name:         "ровно в момент окончания — ещё активен",
			now:          end,
			wantInTrial:  true,
			wantDaysLeft: 0,
		},
		{
			name:         "секундой позже — истёк",
			now:          end.Add(time.Second),
			wantInTrial:  false,
			wantDaysLeft: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := Status(rec, tt.now)
			assert.Equal(t, tt.wantInTrial, status.InTrial)
			assert.Equal(t, !tt.wantInTrial, status.Expired)
			assert.Equal(t, tt.wantDaysLeft, status.DaysLeft)
		})
	}
}
