package bookingstatus

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/service-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/service-marketplace/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) UpdateStatus(ctx context.Context, caller models.Caller, bookingID int, newStatus string) (*models.Booking, error) {
	args := m.Called(ctx, caller, bookingID, newStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestBookingStatusHandler_ServeHTTP(t *testing.T) {
	serviceMock := new(ServiceMock)
	handler := New(newNoopLogger(), serviceMock)

	router := chi.NewRouter()
	router.Patch("/bookings/{id}/status", handler.ServeHTTP)

	acceptedBooking := &models.Booking{
		ID:          5,
		CustomerUID: "customer-uid",
		ProviderUID: "provider-uid",
		Status:      models.BookingAccepted,
	}

	tests := []struct {
		name           string
		url            string
		requestBody    interface{}
		mockResult     *models.Booking
		mockErr        error
		wantStatusCode int
		wantError      string
	}{
		{
			name:           "provider accepts booking",
			url:            "/bookings/5/status",
			requestBody:    models.DummyStatusUpdate{Status: models.BookingAccepted},
			mockResult:     acceptedBooking,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "invalid booking id",
			url:            "/bookings/abc/status",
			requestBody:    models.DummyStatusUpdate{Status: models.BookingAccepted},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid booking id",
		},
		{
			name:           "unknown status value",
			url:            "/bookings/5/status",
			requestBody:    map[string]string{"status": "paused"},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:           "booking not found",
			url:            "/bookings/5/status",
			requestBody:    models.DummyStatusUpdate{Status: models.BookingAccepted},
			mockErr:        models.ErrNotFound,
			wantStatusCode: http.StatusNotFound,
			wantError:      "booking not found",
		},
		{
			name:           "forbidden for caller",
			url:            "/bookings/5/status",
			requestBody:    models.DummyStatusUpdate{Status: models.BookingAccepted},
			mockErr:        models.ErrForbidden,
			wantStatusCode: http.StatusForbidden,
			wantError:      "access denied",
		},
		{
			name:           "invalid transition",
			url:            "/bookings/5/status",
			requestBody:    models.DummyStatusUpdate{Status: models.BookingCompleted},
			mockErr:        models.ErrInvalidTransition,
			wantStatusCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock.ExpectedCalls = nil
			serviceMock.Calls = nil

			if tt.mockResult != nil || tt.mockErr != nil {
				serviceMock.On("UpdateStatus", mock.Anything, mock.Anything, 5, mock.Anything).
					Return(tt.mockResult, tt.mockErr).Once()
			}

			bodyBytes, err := json.Marshal(tt.requestBody)
			if err != nil {
				t.Fatal(err)
			}

			req := httptest.NewRequest(http.MethodPatch, tt.url, bytes.NewReader(bodyBytes))
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			ctx = context.WithValue(ctx, middlewarectx.UserUID, "provider-uid")
			ctx = context.WithValue(ctx, middlewarectx.Role, models.RoleProvider)
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			if tt.wantError != "" {
				errStr, ok := got["error"].(string)
				assert.True(t, ok)
				assert.Equal(t, tt.wantError, errStr)
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
