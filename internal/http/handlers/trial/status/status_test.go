package status

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/verastrelkova/coaching-platform/internal/http/middlewarectx"
	"github.com/verastrelkova/coaching-platform/internal/models"
)

// MockService реализует интерфейс status.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) CheckStatus(ctx context.Context, userUID string) (*models.TrialStatus, error) {
	args := m.Called(ctx, userUID)
	if res := args.Get(0); res != nil {
		return res.(*models.TrialStatus), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestStatusHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "активный пробный период",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("CheckStatus", mock.Anything, "uid-1").Return(&models.TrialStatus{
					InTrial:  true,
					Expired:  false,
					DaysLeft: 7,
					EndsAt:   time.Date(2025, 2, 15, 10, 0, 0, 0, time.UTC),
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"days_left":7`,
		},
		{
			name:    "истёкший пробный период",
			userUID: "uid-2",
			setupMock: func(m *MockService) {
				m.On("CheckStatus", mock.Anything, "uid-2").Return(&models.TrialStatus{
					InTrial:  false,
					Expired:  true,
					DaysLeft: 0,
					EndsAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"expired":true`,
		},
		{
			name:           "нет пользователя в контексте",
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"code":"auth_error"`,
		},
		{
			name:    "хранилище недоступно — статус не выдумывается",
			userUID: "uid-3",
			setupMock: func(m *MockService) {
				m.On("CheckStatus", mock.Anything, "uid-3").Return(nil, assert.AnError)
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `"code":"dependency_error"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/trial/status", nil)
			if tt.userUID != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, tt.userUID))
			}

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
