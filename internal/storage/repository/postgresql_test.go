package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/service-marketplace/internal/models"
)

func TestStorage_CreateBookingWithCredit(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	customerUID := factory.CreateUser(t, "customer@example.com", models.RoleCustomer, 2)
	providerUID := factory.CreateProvider(t, "provider@example.com", models.ProviderApproved)
	categoryID := factory.CreateCategory(t, "Plumbing")
	serviceID := factory.CreateService(t, providerUID, categoryID, "Pipe repair", 1500)

	booking := models.Booking{
		CustomerUID:   customerUID,
		CustomerName:  "Test Customer",
		ServiceID:     serviceID,
		ServiceTitle:  "Pipe repair",
		ProviderUID:   providerUID,
		ProviderName:  "Test Provider",
		Status:        models.BookingPending,
		ScheduledDate: time.Now().Add(24 * time.Hour),
	}

	id, err := storage.CreateBookingWithCredit(ctx, booking)
	require.NoError(t, err)
	assert.Greater(t, id, 0)
	assert.Equal(t, 1, factory.GetCredits(t, customerUID))

	_, err = storage.CreateBookingWithCredit(ctx, booking)
	require.NoError(t, err)
	assert.Equal(t, 0, factory.GetCredits(t, customerUID))

	_, err = storage.CreateBookingWithCredit(ctx, booking)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInsufficientCredits)
	assert.Equal(t, 0, factory.GetCredits(t, customerUID))
}

func TestStorage_CreateBookingWithCredit_Concurrent(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	customerUID := factory.CreateUser(t, "customer@example.com", models.RoleCustomer, 1)
	providerUID := factory.CreateProvider(t, "provider@example.com", models.ProviderApproved)
	categoryID := factory.CreateCategory(t, "Plumbing")
	serviceID := factory.CreateService(t, providerUID, categoryID, "Pipe repair", 1500)

	booking := models.Booking{
		CustomerUID:   customerUID,
		CustomerName:  "Test Customer",
		ServiceID:     serviceID,
		ServiceTitle:  "Pipe repair",
		ProviderUID:   providerUID,
		ProviderName:  "Test Provider",
		Status:        models.BookingPending,
		ScheduledDate: time.Now().Add(24 * time.Hour),
	}

	const workers = 10
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := range workers {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, errs[idx] = storage.CreateBookingWithCredit(ctx, booking)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, models.ErrInsufficientCredits)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one concurrent booking must win the single credit")
	assert.Equal(t, 0, factory.GetCredits(t, customerUID))

	var count int
	err := storage.DB.QueryRow(`SELECT COUNT(*) FROM bookings`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStorage_CreateReviewAndRecalc(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	customerUID := factory.CreateUser(t, "customer@example.com", models.RoleCustomer, 5)
	providerUID := factory.CreateProvider(t, "provider@example.com", models.ProviderApproved)
	categoryID := factory.CreateCategory(t, "Plumbing")
	serviceID := factory.CreateService(t, providerUID, categoryID, "Pipe repair", 1500)
	secondServiceID := factory.CreateService(t, providerUID, categoryID, "Drain cleaning", 900)

	firstBooking := factory.CreateBooking(t, customerUID, serviceID, providerUID, models.BookingCompleted)
	secondBooking := factory.CreateBooking(t, customerUID, serviceID, providerUID, models.BookingCompleted)

	_, summary, err := storage.CreateReviewAndRecalc(ctx, models.Review{
		BookingID:    firstBooking,
		CustomerUID:  customerUID,
		CustomerName: "Test Customer",
		ProviderUID:  providerUID,
		Rating:       5,
		Comment:      "excellent",
	})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, summary.Rating, 0.001)
	assert.Equal(t, 1, summary.ReviewsCount)

	_, summary, err = storage.CreateReviewAndRecalc(ctx, models.Review{
		BookingID:    secondBooking,
		CustomerUID:  customerUID,
		CustomerName: "Test Customer",
		ProviderUID:  providerUID,
		Rating:       2,
		Comment:      "late arrival",
	})
	require.NoError(t, err)
	assert.InDelta(t, 3.5, summary.Rating, 0.001)
	assert.Equal(t, 2, summary.ReviewsCount)

	profile, err := storage.GetProviderProfile(ctx, providerUID)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, profile.Rating, 0.001)

	// Рейтинг и счётчик отзывов проставляются на все услуги исполнителя
	for _, id := range []int{serviceID, secondServiceID} {
		service, err := storage.FindService(ctx, id)
		require.NoError(t, err)
		assert.InDelta(t, 3.5, service.Rating, 0.001)
		assert.Equal(t, 2, service.ReviewsCount)
	}
}

func TestStorage_CompleteBooking(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	customerUID := factory.CreateUser(t, "customer@example.com", models.RoleCustomer, 5)
	providerUID := factory.CreateProvider(t, "provider@example.com", models.ProviderApproved)
	categoryID := factory.CreateCategory(t, "Plumbing")
	serviceID := factory.CreateService(t, providerUID, categoryID, "Pipe repair", 1500)
	bookingID := factory.CreateBooking(t, customerUID, serviceID, providerUID, models.BookingAccepted)

	err := storage.CompleteBooking(ctx, bookingID, time.Now().UTC())
	require.NoError(t, err)

	booking, err := storage.GetBooking(ctx, bookingID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, booking.Status)
	require.NotNil(t, booking.CompletedAt)

	profile, err := storage.GetProviderProfile(ctx, providerUID)
	require.NoError(t, err)
	assert.Equal(t, 1, profile.CompletedJobs)
	assert.InDelta(t, 1500.0, profile.TotalEarnings, 0.001)

	err = storage.CompleteBooking(ctx, 99999, time.Now().UTC())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestStorage_FindActiveSubscription(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	userUID := factory.CreateUser(t, "customer@example.com", models.RoleCustomer, 5)
	// Postgres хранит timestamp с точностью до микросекунд
	now := time.Now().UTC().Truncate(time.Microsecond)

	_, found, err := storage.FindActiveSubscription(ctx, userUID, now)
	require.NoError(t, err)
	assert.False(t, found)

	// Истёкшая подписка не считается активной
	_, err = storage.CreateSubscription(ctx, models.Subscription{
		UserUID:   userUID,
		PlanType:  models.PlanMonthly,
		Amount:    49900,
		StartDate: now.AddDate(0, -2, 0),
		EndDate:   now.AddDate(0, -1, 0),
		IsActive:  true,
		PaymentID: "pay_old",
	})
	require.NoError(t, err)

	_, found, err = storage.FindActiveSubscription(ctx, userUID, now)
	require.NoError(t, err)
	assert.False(t, found)

	// Подписка действует включительно до end_date: в последний момент срока
	// она ещё считается активной
	boundaryUID := factory.CreateUser(t, "boundary@example.com", models.RoleCustomer, 5)
	boundaryID, err := storage.CreateSubscription(ctx, models.Subscription{
		UserUID:   boundaryUID,
		PlanType:  models.PlanMonthly,
		Amount:    49900,
		StartDate: now.AddDate(0, -1, 0),
		EndDate:   now,
		IsActive:  true,
		PaymentID: "pay_boundary",
	})
	require.NoError(t, err)

	boundarySub, found, err := storage.FindActiveSubscription(ctx, boundaryUID, now)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, boundaryID, boundarySub.ID)

	id, err := storage.CreateSubscription(ctx, models.Subscription{
		UserUID:   userUID,
		PlanType:  models.PlanYearly,
		Amount:    499000,
		StartDate: now,
		EndDate:   now.AddDate(1, 0, 0),
		IsActive:  true,
		PaymentID: "pay_new",
	})
	require.NoError(t, err)

	sub, found, err := storage.FindActiveSubscription(ctx, userUID, now)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, id, sub.ID)
	assert.Equal(t, models.PlanYearly, sub.PlanType)
}

func TestStorage_PaymentLifecycle(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	userUID := factory.CreateUser(t, "customer@example.com", models.RoleCustomer, 5)

	_, err := storage.SavePayment(ctx, models.Payment{
		UserUID:  userUID,
		OrderID:  "order_123",
		Amount:   49900,
		Currency: "INR",
		Status:   models.PaymentCreated,
		Purpose:  "subscription",
	})
	require.NoError(t, err)

	_, err = storage.GetSuccessfulPaymentByPaymentID(ctx, userUID, "pay_123")
	assert.ErrorIs(t, err, models.ErrNotFound)

	count, err := storage.UpdatePaymentStatus(ctx, "order_123", "pay_123", models.PaymentSuccess)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	payment, err := storage.GetSuccessfulPaymentByPaymentID(ctx, userUID, "pay_123")
	require.NoError(t, err)
	assert.Equal(t, "order_123", payment.OrderID)
	assert.Equal(t, models.PaymentSuccess, payment.Status)

	total, err := storage.SumSuccessfulPayments(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(49900), total)
}

func TestStorage_UpdateProviderStatus(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	providerUID := factory.CreateProvider(t, "provider@example.com", models.ProviderPending)

	count, err := storage.UpdateProviderStatus(ctx, providerUID, models.ProviderApproved)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	profile, err := storage.GetProviderProfile(ctx, providerUID)
	require.NoError(t, err)
	assert.Equal(t, models.ProviderApproved, profile.Status)

	total, pending, err := storage.CountProviders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, 0, pending)
}
