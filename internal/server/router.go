// Package server assembles the HTTP router from the domain modules.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"skillbridge/internal/middleware"
	"skillbridge/internal/modules/auth"
	"skillbridge/internal/modules/booking"
	"skillbridge/internal/modules/catalog"
	"skillbridge/internal/modules/review"
	"skillbridge/internal/modules/saved"
	"skillbridge/internal/modules/upload"
	"skillbridge/internal/pkg/cache"
	"skillbridge/internal/pkg/events"
	"skillbridge/internal/pkg/jwt"
	"skillbridge/internal/pkg/storage"
	"skillbridge/internal/repository"
)

// Deps carries everything the router needs. Nil collaborators fall back to
// their no-op versions. Context bounds background work such as rate limiter
// cleanup.
type Deps struct {
	Context   context.Context
	DB        *gorm.DB
	JWT       *jwt.Service
	Cache     cache.Cache
	CacheTTL  time.Duration
	Publisher events.Publisher
	Uploader  storage.Uploader

	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

const (
	limiterSweepEvery = time.Minute
	limiterMaxIdle    = time.Hour
)

func NewRouter(d Deps) *gin.Engine {
	if d.Context == nil {
		d.Context = context.Background()
	}
	if d.Cache == nil {
		d.Cache = cache.NewNoop()
	}
	if d.CacheTTL <= 0 {
		d.CacheTTL = 5 * time.Minute
	}
	if d.Publisher == nil {
		d.Publisher = events.LogPublisher{}
	}
	if d.Uploader == nil {
		d.Uploader = storage.Disabled{}
	}

	profileRepo := repository.NewProfileRepository(d.DB)
	serviceRepo := repository.NewWorkerServiceRepository(d.DB)
	bookingRepo := repository.NewBookingRepository(d.DB)
	reviewRepo := repository.NewReviewRepository(d.DB)
	savedRepo := repository.NewSavedServiceRepository(d.DB)

	authService := auth.NewService(profileRepo, d.JWT, bookingRepo)
	catalogService := catalog.NewService(serviceRepo, d.Cache, d.CacheTTL)
	bookingService := booking.NewService(bookingRepo, serviceRepo, booking.NewEventNotifier(d.Publisher))
	reviewService := review.NewService(reviewRepo, bookingRepo, serviceRepo)
	savedService := saved.NewService(savedRepo, serviceRepo)
	uploadService := upload.NewService(d.Uploader, profileRepo, catalogService)

	authHandler := auth.NewHandler(authService)
	catalogHandler := catalog.NewHandler(catalogService)
	bookingHandler := booking.NewHandler(bookingService)
	reviewHandler := review.NewHandler(reviewService)
	savedHandler := saved.NewHandler(savedService)
	uploadHandler := upload.NewHandler(uploadService)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(d.CORSOrigins))
	limiter := middleware.NewRateLimiter(d.RateLimitRPS, d.RateLimitBurst)
	if limiter.Enabled() {
		go limiter.Run(d.Context, limiterSweepEvery, limiterMaxIdle)
	}
	r.Use(limiter.Middleware())

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// public
		public := v1.Group("", middleware.OptionalJWTAuth(d.JWT))
		authHandler.RegisterPublicRoutes(public)
		catalogHandler.RegisterPublicRoutes(public)
		reviewHandler.RegisterRoutes(public, nil)

		// protected: identity from the token, role from the store
		protected := v1.Group("", middleware.JWTAuth(d.JWT), middleware.Actor(profileRepo))
		authHandler.RegisterProtectedRoutes(protected)
		catalogHandler.RegisterProtectedRoutes(protected)
		bookingHandler.RegisterRoutes(protected)
		reviewHandler.RegisterRoutes(nil, protected)
		savedHandler.RegisterRoutes(protected)
		uploadHandler.RegisterRoutes(protected)
	}

	return r
}
