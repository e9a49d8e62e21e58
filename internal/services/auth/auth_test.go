package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/magabrotheeeer/service-marketplace/internal/lib/jwt"
	"github.com/magabrotheeeer/service-marketplace/internal/lib/password"
	"github.com/magabrotheeeer/service-marketplace/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}
func (m *RepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *RepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *RepoMock) CreateProviderProfile(ctx context.Context, profile models.ProviderProfile) error {
	return m.Called(ctx, profile).Error(0)
}
func (m *RepoMock) GetProviderProfile(ctx context.Context, userUID string) (*models.ProviderProfile, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProviderProfile), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newTestMaker() jwt.Maker {
	return jwt.NewJWTMaker("test-secret", time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(r *RepoMock)
		req        models.DummyRegister
		wantErr    error
	}{
		{
			name: "customer gets default credits",
			setupMocks: func(r *RepoMock) {
				r.On("GetUserByEmail", mock.Anything, "anna@example.com").
					Return(nil, models.ErrNotFound).Once()
				r.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
					return u.Email == "anna@example.com" &&
						u.Role == models.RoleCustomer &&
						u.Credits == models.DefaultCredits &&
						u.IsActive
				})).Return("new-uid", nil).Once()
			},
			req: models.DummyRegister{
				Email:    "anna@example.com",
				Password: "secret123",
				FullName: "Anna Sidorova",
				Phone:    "+79990000000",
				Role:     models.RoleCustomer,
			},
		},
		{
			name: "provider gets pending profile",
			setupMocks: func(r *RepoMock) {
				r.On("GetUserByEmail", mock.Anything, "ivan@example.com").
					Return(nil, models.ErrNotFound).Once()
				r.On("RegisterUser", mock.Anything, mock.Anything).Return("provider-uid", nil).Once()
				r.On("CreateProviderProfile", mock.Anything, mock.MatchedBy(func(p models.ProviderProfile) bool {
					return p.UserUID == "provider-uid" &&
						p.Status == models.ProviderPending &&
						p.ServiceCategory == "plumbing"
				})).Return(nil).Once()
			},
			req: models.DummyRegister{
				Email:           "ivan@example.com",
				Password:        "secret123",
				FullName:        "Ivan Petrov",
				Phone:           "+79991111111",
				Role:            models.RoleProvider,
				ServiceCategory: "plumbing",
				ExperienceYears: 5,
			},
		},
		{
			name: "duplicate email",
			setupMocks: func(r *RepoMock) {
				r.On("GetUserByEmail", mock.Anything, "anna@example.com").
					Return(&models.User{UID: "existing"}, nil).Once()
			},
			req: models.DummyRegister{
				Email:    "anna@example.com",
				Password: "secret123",
				FullName: "Anna Sidorova",
				Phone:    "+79990000000",
				Role:     models.RoleCustomer,
			},
			wantErr: models.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)

			svc := New(repo, newTestMaker(), newNoopLogger())
			uid, err := svc.Register(context.Background(), tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, uid)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := password.GetHash("secret123")
	require.NoError(t, err)

	activeUser := &models.User{
		UID:          "user-uid",
		Email:        "anna@example.com",
		PasswordHash: hash,
		Role:         models.RoleCustomer,
		IsActive:     true,
	}

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock)
		password   string
		wantErr    error
	}{
		{
			name: "success",
			setupMocks: func(r *RepoMock) {
				r.On("GetUserByEmail", mock.Anything, "anna@example.com").Return(activeUser, nil).Once()
			},
			password: "secret123",
		},
		{
			name: "wrong password",
			setupMocks: func(r *RepoMock) {
				r.On("GetUserByEmail", mock.Anything, "anna@example.com").Return(activeUser, nil).Once()
			},
			password: "wrong",
			wantErr:  models.ErrInvalidCredentials,
		},
		{
			name: "unknown email",
			setupMocks: func(r *RepoMock) {
				r.On("GetUserByEmail", mock.Anything, "anna@example.com").
					Return(nil, models.ErrNotFound).Once()
			},
			password: "secret123",
			wantErr:  models.ErrInvalidCredentials,
		},
		{
			name: "deactivated account",
			setupMocks: func(r *RepoMock) {
				inactive := *activeUser
				inactive.IsActive = false
				r.On("GetUserByEmail", mock.Anything, "anna@example.com").Return(&inactive, nil).Once()
			},
			password: "secret123",
			wantErr:  models.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)

			svc := New(repo, newTestMaker(), newNoopLogger())
			token, role, err := svc.Login(context.Background(), "anna@example.com", tt.password)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, models.RoleCustomer, role)
			}
			repo.AssertExpectations(t)
		})
	}
}
