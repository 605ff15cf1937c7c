package routes

import (
	"net/http"
	"time"

	"tourly/internal/auth"
	"tourly/internal/bookings"
	"tourly/internal/payments"
	"tourly/internal/shared/config"
	"tourly/internal/shared/database"
	"tourly/internal/tours"
	"tourly/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	notifier bookings.Notifier

	cacheService cache.Service
	tourService  tours.Service
}

// NewRouter creates a new router instance. notifier may be nil when the
// Kafka producer is unavailable; confirmations are then only logged.
func NewRouter(cfg *config.Config, db *database.DB, notifier bookings.Notifier) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		notifier: notifier,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.cacheService = cache.NewService(r.db.GetRedisClient())

	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)

		// Tours before bookings: the booking flow consumes the tour service.
		r.setupTourRoutes(api)
		r.setupBookingRoutes(api)
	}
}

func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "tourly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "tourly-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.config)

	authRouter.SetupRoutes(rg)
}

func (r *Router) setupTourRoutes(rg *gin.RouterGroup) {
	tourRepo := tours.NewRepository(r.db.GetPostgreSQL())
	tourService := tours.NewService(tourRepo)
	tourService.SetCacheService(r.cacheService)

	// Kept for the booking flow wiring below.
	r.tourService = tourService

	tourController := tours.NewController(tourService)
	tourRouter := tours.NewRouter(tourController)
	tourRouter.SetupRoutes(rg)
}

// setupBookingRoutes wires the two wizards together: the booking service
// opens payment sessions, and the payment service finalizes bookings
// through the Finalizer callback.
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	sessionTTL := r.config.Redis.WizardSessionTTL

	paymentSessions := payments.NewSessionStore(r.cacheService, sessionTTL)
	paymentService := payments.NewService(
		paymentSessions,
		r.config.Booking.SettlementDelay,
		r.config.Booking.SuccessCloseDelay,
	)

	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	bookingSessions := bookings.NewSessionStore(r.cacheService, sessionTTL)
	bookingService := bookings.NewService(
		bookingRepo,
		bookingSessions,
		r.tourService,
		paymentService,
		r.config.Booking.PaymentDeadline,
	)

	paymentService.SetFinalizer(bookingService)
	if r.notifier != nil {
		bookingService.SetNotifier(r.notifier)
	}

	bookingController := bookings.NewController(bookingService)
	bookingRouter := bookings.NewRouter(bookingController, r.config)
	bookingRouter.SetupRoutes(rg)

	paymentController := payments.NewController(paymentService)
	paymentRouter := payments.NewRouter(paymentController, r.config)
	paymentRouter.SetupRoutes(rg)
}
