package payment

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/magabrotheeeer/service-marketplace/internal/models"
	"github.com/magabrotheeeer/service-marketplace/internal/paymentprovider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) SavePayment(ctx context.Context, payment models.Payment) (int, error) {
	args := m.Called(ctx, payment)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) UpdatePaymentStatus(ctx context.Context, orderID, paymentID, status string) (int, error) {
	args := m.Called(ctx, orderID, paymentID, status)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) GetPaymentByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

type ProviderMock struct{ mock.Mock }

func (m *ProviderMock) CreateOrder(reqParams paymentprovider.CreateOrderRequest) (*paymentprovider.CreateOrderResponse, error) {
	args := m.Called(reqParams)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentprovider.CreateOrderResponse), args.Error(1)
}
func (m *ProviderMock) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return m.Called(orderID, paymentID, signature).Bool(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestPaymentService_CreateOrder(t *testing.T) {
	repo := new(RepoMock)
	provider := new(ProviderMock)

	provider.On("CreateOrder", mock.MatchedBy(func(r paymentprovider.CreateOrderRequest) bool {
		return r.Amount == 49900 && r.Currency == "INR"
	})).Return(&paymentprovider.CreateOrderResponse{
		ID:       "order_ABC",
		Amount:   49900,
		Currency: "INR",
		Status:   "created",
	}, nil).Once()
	repo.On("SavePayment", mock.Anything, mock.MatchedBy(func(p models.Payment) bool {
		return p.OrderID == "order_ABC" &&
			p.Status == models.PaymentCreated &&
			p.UserUID == "user-uid"
	})).Return(1, nil).Once()

	svc := New(repo, provider, newNoopLogger())
	order, err := svc.CreateOrder(context.Background(), "user-uid", models.DummyPaymentOrder{
		Amount:   49900,
		Currency: "INR",
		Purpose:  "subscription",
	})

	require.NoError(t, err)
	assert.Equal(t, "order_ABC", order.ID)
	repo.AssertExpectations(t)
	provider.AssertExpectations(t)
}

func TestPaymentService_Verify(t *testing.T) {
	storedPayment := func() *models.Payment {
		return &models.Payment{
			ID:      1,
			UserUID: "user-uid",
			OrderID: "order_ABC",
			Status:  models.PaymentCreated,
		}
	}
	req := models.DummyPaymentVerify{
		OrderID:   "order_ABC",
		PaymentID: "pay_XYZ",
		Signature: "deadbeef",
	}

	tests := []struct {
		name       string
		userUID    string
		setupMocks func(r *RepoMock, p *ProviderMock)
		wantStatus string
		wantErr    error
	}{
		{
			name:    "valid signature",
			userUID: "user-uid",
			setupMocks: func(r *RepoMock, p *ProviderMock) {
				r.On("GetPaymentByOrderID", mock.Anything, "order_ABC").Return(storedPayment(), nil).Once()
				p.On("VerifyPaymentSignature", "order_ABC", "pay_XYZ", "deadbeef").Return(true).Once()
				r.On("UpdatePaymentStatus", mock.Anything, "order_ABC", "pay_XYZ", models.PaymentSuccess).
					Return(1, nil).Once()
			},
			wantStatus: models.PaymentSuccess,
		},
		{
			name:    "invalid signature persists failed status",
			userUID: "user-uid",
			setupMocks: func(r *RepoMock, p *ProviderMock) {
				r.On("GetPaymentByOrderID", mock.Anything, "order_ABC").Return(storedPayment(), nil).Once()
				p.On("VerifyPaymentSignature", "order_ABC", "pay_XYZ", "deadbeef").Return(false).Once()
				r.On("UpdatePaymentStatus", mock.Anything, "order_ABC", "pay_XYZ", models.PaymentFailed).
					Return(1, nil).Once()
			},
			wantErr: models.ErrPaymentVerification,
		},
		{
			name:    "foreign order",
			userUID: "other-uid",
			setupMocks: func(r *RepoMock, _ *ProviderMock) {
				r.On("GetPaymentByOrderID", mock.Anything, "order_ABC").Return(storedPayment(), nil).Once()
			},
			wantErr: models.ErrForbidden,
		},
		{
			name:    "unknown order",
			userUID: "user-uid",
			setupMocks: func(r *RepoMock, _ *ProviderMock) {
				r.On("GetPaymentByOrderID", mock.Anything, "order_ABC").Return(nil, models.ErrNotFound).Once()
			},
			wantErr: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			provider := new(ProviderMock)
			tt.setupMocks(repo, provider)

			svc := New(repo, provider, newNoopLogger())
			payment, err := svc.Verify(context.Background(), tt.userUID, req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantStatus, payment.Status)
				assert.Equal(t, "pay_XYZ", payment.PaymentID)
			}
			repo.AssertExpectations(t)
			provider.AssertExpectations(t)
		})
	}
}
