package catalog

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/service-marketplace/internal/models"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateCategory(ctx context.Context, category models.Category) (int, error) {
	args := m.Called(ctx, category)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) ListCategories(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *RepoMock) CreateService(ctx context.Context, service models.Service) (int, error) {
	args := m.Called(ctx, service)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) FindService(ctx context.Context, id int) (*models.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *RepoMock) GetCategory(ctx context.Context, id int) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *RepoMock) ListServices(ctx context.Context, filter models.ServiceFilter, limit, offset int) ([]*models.Service, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Service), args.Error(1)
}

func (m *RepoMock) ListServicesByProvider(ctx context.Context, providerUID string) ([]*models.Service, error) {
	args := m.Called(ctx, providerUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Service), args.Error(1)
}

func (m *RepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) GetProviderProfile(ctx context.Context, userUID string) (*models.ProviderProfile, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProviderProfile), args.Error(1)
}

type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCatalogService_CreateService(t *testing.T) {
	ctx := context.Background()

	validReq := models.DummyService{
		Title:           "Pipe repair",
		Description:     "Fixing leaks of any complexity",
		CategoryID:      2,
		Price:           1500,
		DurationMinutes: 90,
		Location:        "Mumbai",
	}

	tests := []struct {
		name        string
		profile     *models.ProviderProfile
		profileErr  error
		categoryErr error
		wantErr     error
	}{
		{
			name:    "approved provider publishes service",
			profile: &models.ProviderProfile{UserUID: "provider-uid", Status: models.ProviderApproved},
		},
		{
			name:    "pending provider is rejected",
			profile: &models.ProviderProfile{UserUID: "provider-uid", Status: models.ProviderPending},
			wantErr: models.ErrForbidden,
		},
		{
			name:    "blocked provider is rejected",
			profile: &models.ProviderProfile{UserUID: "provider-uid", Status: models.ProviderBlocked},
			wantErr: models.ErrForbidden,
		},
		{
			name:       "provider profile not found",
			profileErr: models.ErrNotFound,
			wantErr:    models.ErrNotFound,
		},
		{
			name:        "category not found",
			profile:     &models.ProviderProfile{UserUID: "provider-uid", Status: models.ProviderApproved},
			categoryErr: models.ErrNotFound,
			wantErr:     models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repoMock := new(RepoMock)
			cacheMock := new(CacheMock)
			service := New(repoMock, cacheMock, newNoopLogger())

			repoMock.On("GetProviderProfile", ctx, "provider-uid").
				Return(tt.profile, tt.profileErr).Once()
			if tt.profileErr == nil && tt.profile.Status == models.ProviderApproved {
				if tt.categoryErr != nil {
					repoMock.On("GetCategory", ctx, 2).Return(nil, tt.categoryErr).Once()
				} else {
					repoMock.On("GetCategory", ctx, 2).
						Return(&models.Category{ID: 2, Name: "Plumbing"}, nil).Once()
					repoMock.On("GetUser", ctx, "provider-uid").
						Return(&models.User{UID: "provider-uid", FullName: "Ivan Petrov"}, nil).Once()
					repoMock.On("CreateService", ctx, mock.MatchedBy(func(s models.Service) bool {
						return s.ProviderName == "Ivan Petrov" && s.CategoryName == "Plumbing"
					})).Return(15, nil).Once()
					cacheMock.On("Invalidate", ctx, "catalog:services:*").Return(nil).Once()
				}
			}

			id, err := service.CreateService(ctx, "provider-uid", validReq)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 15, id)
			}
			repoMock.AssertExpectations(t)
			cacheMock.AssertExpectations(t)
		})
	}
}

func TestCatalogService_ListCategories_CacheHit(t *testing.T) {
	ctx := context.Background()
	repoMock := new(RepoMock)
	cacheMock := new(CacheMock)
	service := New(repoMock, cacheMock, newNoopLogger())

	cached := []*models.Category{{ID: 1, Name: "Plumbing"}}
	cacheMock.On("Get", ctx, "catalog:categories", mock.Anything).
		Run(func(args mock.Arguments) {
			ptr := args.Get(2).(*[]*models.Category)
			*ptr = cached
		}).Return(true, nil).Once()

	result, err := service.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, "Plumbing", result[0].Name)

	repoMock.AssertNotCalled(t, "ListCategories", mock.Anything)
	cacheMock.AssertExpectations(t)
}

func TestCatalogService_ListCategories_CacheMiss(t *testing.T) {
	ctx := context.Background()
	repoMock := new(RepoMock)
	cacheMock := new(CacheMock)
	service := New(repoMock, cacheMock, newNoopLogger())

	fromDB := []*models.Category{{ID: 1, Name: "Plumbing"}, {ID: 2, Name: "Cleaning"}}
	cacheMock.On("Get", ctx, "catalog:categories", mock.Anything).Return(false, nil).Once()
	repoMock.On("ListCategories", ctx).Return(fromDB, nil).Once()
	cacheMock.On("Set", ctx, "catalog:categories", fromDB, 5*time.Minute).Return(nil).Once()

	result, err := service.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, result, 2)

	repoMock.AssertExpectations(t)
	cacheMock.AssertExpectations(t)
}

func TestCatalogService_ListServices_CacheKeyPerFilter(t *testing.T) {
	ctx := context.Background()
	repoMock := new(RepoMock)
	cacheMock := new(CacheMock)
	service := New(repoMock, cacheMock, newNoopLogger())

	filter := models.ServiceFilter{CategoryID: 3, Search: "repair"}
	fromDB := []*models.Service{{ID: 9, Title: "Pipe repair"}}

	cacheMock.On("Get", ctx, "catalog:services:3:repair:50:0", mock.Anything).Return(false, nil).Once()
	repoMock.On("ListServices", ctx, filter, 50, 0).Return(fromDB, nil).Once()
	cacheMock.On("Set", ctx, "catalog:services:3:repair:50:0", fromDB, 5*time.Minute).Return(nil).Once()

	result, err := service.ListServices(ctx, filter, 50, 0)
	require.NoError(t, err)
	assert.Len(t, result, 1)

	repoMock.AssertExpectations(t)
	cacheMock.AssertExpectations(t)
}
