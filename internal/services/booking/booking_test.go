package services

import (
	"context"
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

// MockBookingRepository реализует интерфейс BookingRepository.
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CountActiveBookingsForSlot(ctx context.Context, sessionDate time.Time, sessionTime string) (int, error) {
	args := m.Called(ctx, sessionDate, sessionTime)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingRepository) CreateBooking(ctx context.Context, b models.Booking) (*models.Booking, error) {
	args := m.Called(ctx, b)
	if res := args.Get(0); res != nil {
		return res.(*models.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookingRepository) ListBookingsByUser(ctx context.Context, userUID string) ([]*models.Booking, error) {
	args := m.Called(ctx, userUID)
	if res := args.Get(0); res != nil {
		return res.([]*models.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookingRepository) CancelBooking(ctx context.Context, id int, userUID string) error {
	args := m.Called(ctx, id, userUID)
	return args.Error(0)
}

// MockUserReader реализует интерфейс UserReader.
type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockPublisher реализует интерфейс Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(routingKey string, message any) error {
	args := m.Called(routingKey, message)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestCreate_Success(t *testing.T) {
	req := models.DummyBooking{
		SessionType: "discovery_call",
		SessionDate: "2025-03-10",
		SessionTime: "14:00",
		Notes:       "first session",
	}
	sessionDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	repo := new(MockBookingRepository)
	repo.On("CountActiveBookingsForSlot", mock.Anything, sessionDate, "14:00").Return(0, nil)
	repo.On("CreateBooking", mock.Anything, mock.MatchedBy(func(b models.Booking) bool {
		return b.UserUID == "uid-1" && b.SessionDate.Equal(sessionDate) &&
			b.Notes != nil && *b.Notes == "first session"
	})).Return(&models.Booking{
		ID:          7,
		UserUID:     "uid-1",
		SessionType: "discovery_call",
		SessionDate: sessionDate,
		SessionTime: "14:00",
		Status:      models.BookingStatusPending,
	}, nil)

	users := new(MockUserReader)
	users.On("GetUser", mock.Anything, "uid-1").Return(&models.User{
		UUID:     "uid-1",
		Email:    "vera@example.com",
		Username: "vera",
	}, nil)

	publisher := new(MockPublisher)
	publisher.On("Publish", "booking.created", mock.MatchedBy(func(msg any) bool {
		event, ok := msg.(models.BookingCreatedEvent)
		return ok && event.Email == "vera@example.com" && event.SessionDate == "2025-03-10"
	})).Return(nil)

	svc := NewBookingService(repo, users, publisher, testLogger())

	created, err := svc.Create(context.Background(), "uid-1", req)
	require.NoError(t, err)
	assert.Equal(t, 7, created.ID)
	assert.Equal(t, models.BookingStatusPending, created.Status)

	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreate_SlotTakenFastPath(t *testing.T) {
	sessionDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	repo := new(MockBookingRepository)
	repo.On("CountActiveBookingsForSlot", mock.Anything, sessionDate, "14:00").Return(1, nil)

	svc := NewBookingService(repo, new(MockUserReader), new(MockPublisher), testLogger())

	_, err := svc.Create(context.Background(), "uid-1", models.DummyBooking{
		SessionType: "discovery_call",
		SessionDate: "2025-03-10",
		SessionTime: "14:00",
	})
	require.ErrorIs(t, err, repository.ErrSlotTaken)
	repo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestCreate_SlotTakenOnInsertRace(t *testing.T) {
	// Быстрая проверка ничего не нашла, но к моменту вставки слот занят:
	// индекс в БД — последнее слово, ошибка доходит до вызывающего как есть.
	sessionDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	repo := new(MockBookingRepository)
	repo.On("CountActiveBookingsForSlot", mock.Anything, sessionDate, "14:00").Return(0, nil)
	repo.On("CreateBooking", mock.Anything, mock.Anything).Return(nil, repository.ErrSlotTaken)

	svc := NewBookingService(repo, new(MockUserReader), new(MockPublisher), testLogger())

	_, err := svc.Create(context.Background(), "uid-1", models.DummyBooking{
		SessionType: "discovery_call",
		SessionDate: "2025-03-10",
		SessionTime: "14:00",
	})
	require.ErrorIs(t, err, repository.ErrSlotTaken)
}

func TestCreate_InvalidDate(t *testing.T) {
	svc := NewBookingService(new(MockBookingRepository), new(MockUserReader), nil, testLogger())

	_, err := svc.Create(context.Background(), "uid-1", models.DummyBooking{
		SessionType: "discovery_call",
		SessionDate: "10.03.2025",
		SessionTime: "14:00",
	})
	require.Error(t, err)
}

func TestCreate_PublishFailureDoesNotFailBooking(t *testing.T) {
	sessionDate := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	repo := new(MockBookingRepository)
	repo.On("CountActiveBookingsForSlot", mock.Anything, sessionDate, "10:00").Return(0, nil)
	repo.On("CreateBooking", mock.Anything, mock.Anything).Return(&models.Booking{
		ID:          8,
		UserUID:     "uid-1",
		SessionDate: sessionDate,
		SessionTime: "10:00",
		Status:      models.BookingStatusPending,
	}, nil)

	users := new(MockUserReader)
	users.On("GetUser", mock.Anything, "uid-1").Return(&models.User{UUID: "uid-1"}, nil)

	publisher := new(MockPublisher)
	publisher.On("Publish", "booking.created", mock.Anything).Return(assert.AnError)

	svc := NewBookingService(repo, users, publisher, testLogger())

	created, err := svc.Create(context.Background(), "uid-1", models.DummyBooking{
		SessionType: "strategy_session",
		SessionDate: "2025-03-11",
		SessionTime: "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 8, created.ID)
}

func TestCancel(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("CancelBooking", mock.Anything, 5, "uid-1").Return(nil)

	svc := NewBookingService(repo, new(MockUserReader), nil, testLogger())
	require.NoError(t, svc.Cancel(context.Background(), 5, "uid-1"))
}

func TestCancel_NotFound(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("CancelBooking", mock.Anything, 5, "uid-2").Return(repository.ErrBookingNotFound)

	svc := NewBookingService(repo, new(MockUserReader), nil, testLogger())
	err := svc.Cancel(context.Background(), 5, "uid-2")
	require.ErrorIs(t, err, repository.ErrBookingNotFound)
}
