package bookingcreate

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/service-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/service-marketplace/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Create(ctx context.Context, caller models.Caller, req models.DummyBooking) (int, error) {
	args := m.Called(ctx, caller, req)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestBookingCreateHandler_ServeHTTP(t *testing.T) {
	serviceMock := new(ServiceMock)
	handler := New(newNoopLogger(), serviceMock)

	validBody := models.DummyBooking{
		ServiceID:     7,
		ScheduledDate: "15-09-2026",
		Notes:         "after 18:00",
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		withCaller     bool
		callerRole     string
		mockID         int
		mockErr        error
		wantStatusCode int
		wantError      string
	}{
		{
			name:           "valid booking",
			requestBody:    validBody,
			withCaller:     true,
			mockID:         42,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			withCaller:     true,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
		},
		{
			name:           "validation error - missing service id",
			requestBody:    models.DummyBooking{ScheduledDate: "15-09-2026"},
			withCaller:     true,
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:           "no caller in context",
			requestBody:    validBody,
			withCaller:     false,
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "unauthorized",
		},
		{
			name:           "insufficient credits",
			requestBody:    validBody,
			withCaller:     true,
			mockErr:        models.ErrInsufficientCredits,
			wantStatusCode: http.StatusPaymentRequired,
			wantError:      "insufficient credits, please purchase a subscription",
		},
		{
			name:           "service not found",
			requestBody:    validBody,
			withCaller:     true,
			mockErr:        models.ErrNotFound,
			wantStatusCode: http.StatusNotFound,
			wantError:      "service not found",
		},
		{
			name:           "provider cannot book",
			requestBody:    validBody,
			withCaller:     true,
			callerRole:     models.RoleProvider,
			mockErr:        models.ErrForbidden,
			wantStatusCode: http.StatusForbidden,
			wantError:      "customer access required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock.ExpectedCalls = nil
			serviceMock.Calls = nil

			role := tt.callerRole
			if role == "" {
				role = models.RoleCustomer
			}
			if tt.mockID != 0 || tt.mockErr != nil {
				caller := models.Caller{UID: "customer-uid", Role: role}
				serviceMock.On("Create", mock.Anything, caller, mock.Anything).
					Return(tt.mockID, tt.mockErr).Once()
			}

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(bodyBytes))
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.withCaller {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, "customer-uid")
				ctx = context.WithValue(ctx, middlewarectx.Role, role)
			}
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			if tt.wantError != "" {
				errStr, ok := got["error"].(string)
				assert.True(t, ok)
				assert.Equal(t, tt.wantError, errStr)
			}
			if tt.wantStatusCode == http.StatusOK {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, float64(tt.mockID), data["id"])
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
