// Package marketplace собирает приложение маркетплейса услуг:
// подключения к хранилищам, сервисы, маршруты и жизненный цикл HTTP-сервера.
package marketplace

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/service-marketplace/internal/cache"
	"github.com/magabrotheeeer/service-marketplace/internal/config"
	"github.com/magabrotheeeer/service-marketplace/internal/lib/jwt"
	"github.com/magabrotheeeer/service-marketplace/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/service-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/service-marketplace/internal/migrations"
	"github.com/magabrotheeeer/service-marketplace/internal/paymentprovider"
	authservice "github.com/magabrotheeeer/service-marketplace/internal/services/auth"
	bookingservice "github.com/magabrotheeeer/service-marketplace/internal/services/booking"
	catalogservice "github.com/magabrotheeeer/service-marketplace/internal/services/catalog"
	paymentservice "github.com/magabrotheeeer/service-marketplace/internal/services/payment"
	reviewservice "github.com/magabrotheeeer/service-marketplace/internal/services/review"
	statsservice "github.com/magabrotheeeer/service-marketplace/internal/services/stats"
	subscriptionservice "github.com/magabrotheeeer/service-marketplace/internal/services/subscription"
	"github.com/magabrotheeeer/service-marketplace/internal/storage/repository"
)

// App хранит собранное приложение и его ресурсы.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New собирает приложение: подключается к PostgreSQL, применяет миграции,
// подключается к Redis и RabbitMQ, создает сервисы и маршруты.
// Очередь событий опциональна: без неё приложение работает, события
// бронирований не публикуются.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	var publisher bookingservice.EventPublisher
	if cfg.RabbitURL != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitURL, 5, 3*time.Second)
		if err != nil {
			logger.Warn("rabbitmq is unavailable, booking events are disabled", sl.Err(err))
		} else {
			ch, err := rabbitmq.SetupChannel(conn, cfg.BookingsQueue)
			if err != nil {
				return nil, err
			}
			publisher = rabbitmq.NewPublisher(ch, cfg.BookingsQueue)
		}
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	providerClient := paymentprovider.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)

	authSvc := authservice.New(db, jwtMaker, logger)
	catalogSvc := catalogservice.New(db, cacheRedis, logger)
	bookingSvc := bookingservice.New(db, publisher, logger)
	reviewSvc := reviewservice.New(db, logger)
	subscriptionSvc := subscriptionservice.New(db, logger)
	paymentSvc := paymentservice.New(db, providerClient, logger)
	statsSvc := statsservice.New(db, logger)

	if err := Seed(ctx, logger, db, cfg.AdminSeed); err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, &Services{
		Auth:         authSvc,
		Catalog:      catalogSvc,
		Booking:      bookingSvc,
		Review:       reviewSvc,
		Subscription: subscriptionSvc,
		Payment:      paymentSvc,
		Stats:        statsSvc,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}
