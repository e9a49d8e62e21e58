package marketplace

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/service-marketplace/internal/http/handlers/admin/providerlist"
	"github.com/magabrotheeeer/service-marketplace/internal/http/handlers/admin/providerstatus"
	adminstats "github.com/magabrotheeeer/service-marketplace/internal/http/handlers/admin/stats"
	"github.com/magabrotheeeer/service-marketplace/internal/http/handlers/admin/userlist"
	"github.com/magabrotheeeer/service-marketplace/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/service-marketplace/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/service-marketplace/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/service-marketplace/internal/http/handlers/booking/bookingcreate"
	"github.com/magabrotheeeer/service-marketplace/internal/http/handlers/booking/bookinglistcustomer"
	"github.com/magabrotheeeer/service-marketplace/internal/http/handlers/booking/bookinglistprovider"
	"github.com/magabrotheeeer/service-marketplace/internal/http/handlers/booking/bookingstatus"
	"github.com/magabrotheeeer/service-marketplace/internal/http/handlers/category/categorycreate"
	"github.com/magabrotheeeer/service-marketplace/internal/http/handlers/category/categorylist"
	"github.com/magabrotheeeer/service-marketplace/internal/http/handlers/payment/paymentorder"
	"github.com/magabrotheeeer/service-marketplace/internal/http/handlers/payment/paymentverify"
	"github.com/magabrotheeeer/service-marketplace/internal/http/handlers/provider/earnings"
	"github.com/magabrotheeeer/service-marketplace/internal/http/handlers/review/reviewcreate"
	"github.com/magabrotheeeer/service-marketplace/internal/http/handlers/review/reviewlist"
	"github.com/magabrotheeeer/service-marketplace/internal/http/handlers/service/servicecreate"
	"github.com/magabrotheeeer/service-marketplace/internal/http/handlers/service/serviceget"
	"github.com/magabrotheeeer/service-marketplace/internal/http/handlers/service/servicelist"
	"github.com/magabrotheeeer/service-marketplace/internal/http/handlers/service/servicemine"
	"github.com/magabrotheeeer/service-marketplace/internal/http/handlers/subscription/subscriptioncreate"
	"github.com/magabrotheeeer/service-marketplace/internal/http/handlers/subscription/subscriptionme"
	"github.com/magabrotheeeer/service-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/service-marketplace/internal/lib/jwt"
	"github.com/magabrotheeeer/service-marketplace/internal/models"
	authservice "github.com/magabrotheeeer/service-marketplace/internal/services/auth"
	bookingservice "github.com/magabrotheeeer/service-marketplace/internal/services/booking"
	catalogservice "github.com/magabrotheeeer/service-marketplace/internal/services/catalog"
	paymentservice "github.com/magabrotheeeer/service-marketplace/internal/services/payment"
	reviewservice "github.com/magabrotheeeer/service-marketplace/internal/services/review"
	statsservice "github.com/magabrotheeeer/service-marketplace/internal/services/stats"
	subscriptionservice "github.com/magabrotheeeer/service-marketplace/internal/services/subscription"
)

// Services содержит сервисы, необходимые для регистрации маршрутов.
type Services struct {
	Auth         *authservice.AuthService
	Catalog      *catalogservice.CatalogService
	Booking      *bookingservice.BookingService
	Review       *reviewservice.ReviewService
	Subscription *subscriptionservice.SubscriptionService
	Payment      *paymentservice.PaymentService
	Stats        *statsservice.StatsService
}

// RegisterRoutes регистрирует все маршруты приложения: публичные эндпоинты
// каталога и аутентификации, защищённые эндпоинты бронирований, отзывов,
// подписок и платежей, а также административные маршруты.
func RegisterRoutes(r *chi.Mux, log *slog.Logger, jwtMaker jwt.Maker, s *Services) {
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.URLFormat)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", register.New(log, s.Auth).ServeHTTP)
		r.Post("/auth/login", login.New(log, s.Auth).ServeHTTP)
		r.Get("/categories", categorylist.New(log, s.Catalog).ServeHTTP)
		r.Get("/services", servicelist.New(log, s.Catalog).ServeHTTP)
		r.Get("/services/{id}", serviceget.New(log, s.Catalog).ServeHTTP)
		r.Get("/reviews/provider/{provider_uid}", reviewlist.New(log, s.Review).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, log))
			r.Use(middlewarectx.RateLimitMiddleware(log))

			r.Get("/auth/me", me.New(log, s.Auth).ServeHTTP)

			r.Post("/bookings", bookingcreate.New(log, s.Booking).ServeHTTP)
			r.Get("/bookings/my", bookinglistcustomer.New(log, s.Booking).ServeHTTP)
			r.Patch("/bookings/{id}/status", bookingstatus.New(log, s.Booking).ServeHTTP)

			r.Post("/reviews", reviewcreate.New(log, s.Review).ServeHTTP)

			r.Post("/subscriptions", subscriptioncreate.New(log, s.Subscription).ServeHTTP)
			r.Get("/subscriptions/my", subscriptionme.New(log, s.Subscription).ServeHTTP)

			r.Post("/payments/order", paymentorder.New(log, s.Payment).ServeHTTP)
			r.Post("/payments/verify", paymentverify.New(log, s.Payment).ServeHTTP)

			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(log, models.RoleProvider, models.RoleAdmin))
				r.Post("/services", servicecreate.New(log, s.Catalog).ServeHTTP)
				r.Get("/services/mine", servicemine.New(log, s.Catalog).ServeHTTP)
				r.Get("/bookings/requests", bookinglistprovider.New(log, s.Booking).ServeHTTP)
				r.Get("/providers/earnings", earnings.New(log, s.Stats).ServeHTTP)
			})

			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(log, models.RoleAdmin))
				r.Post("/categories", categorycreate.New(log, s.Catalog).ServeHTTP)
				r.Get("/admin/users", userlist.New(log, s.Stats).ServeHTTP)
				r.Get("/admin/providers", providerlist.New(log, s.Stats).ServeHTTP)
				r.Patch("/admin/providers/{uid}/status", providerstatus.New(log, s.Stats).ServeHTTP)
				r.Get("/admin/stats", adminstats.New(log, s.Stats).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
