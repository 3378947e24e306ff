package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/lavauto/lavauto-server/internal/adapter/handler/http"
	"github.com/lavauto/lavauto-server/internal/config"
	"github.com/lavauto/lavauto-server/internal/infrastructure/database"
	"github.com/lavauto/lavauto-server/internal/infrastructure/provider/stripe"
	"github.com/lavauto/lavauto-server/internal/middleware/auth"
	"github.com/lavauto/lavauto-server/internal/usecase"
	"github.com/lavauto/lavauto-server/internal/validation"
)

type Server struct {
	config *config.Config
	logger *zap.Logger
	echo   *echo.Echo
	repos  *database.Repositories
}

func NewServer(cfg *config.Config, logger *zap.Logger, repos *database.Repositories) *Server {
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.ClientURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
	}))

	return &Server{
		config: cfg,
		logger: logger,
		echo:   e,
		repos:  repos,
	}
}

func (s *Server) Start() error {
	// Setup routes
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": "lavauto",
		})
	})

	// Providers and services
	checkout := stripe.NewCheckoutClient(
		s.config.Service.StripeSecretKey,
		s.config.Service.ClientURL,
		s.config.Service.PublicURL,
		s.logger,
	)
	formValidator := validation.NewFormValidator()

	userService := usecase.NewUserService(s.repos.User, s.logger)
	slotService := usecase.NewSlotService(s.repos.Booking, s.logger)
	bookingService := usecase.NewBookingService(s.repos.Booking, checkout, s.logger)
	missionService := usecase.NewMissionService(s.repos.Assignment, s.repos.Booking, s.logger)
	webhookService := usecase.NewWebhookService(s.repos.Booking, s.repos.Payment, s.logger)
	onboardingService := usecase.NewOnboardingService(s.repos.User, s.logger)
	carService := usecase.NewCarService(s.repos.Car, s.repos.Booking, s.logger)

	// Handlers
	bookingHandler := handlers.NewBookingHandler(bookingService, slotService, userService, formValidator, s.config.Service.ClientURL, s.logger)
	webhookHandler := handlers.NewWebhookHandler(webhookService, s.config.Service.StripeWebhookSecret, s.logger)
	missionHandler := handlers.NewMissionHandler(missionService, userService, s.logger)
	onboardingHandler := handlers.NewOnboardingHandler(onboardingService, s.logger)
	carHandler := handlers.NewCarHandler(carService, userService, formValidator, s.logger)
	customerHandler := handlers.NewCustomerHandler(userService, bookingService, s.logger)

	// JWT middleware configuration
	jwtConfig := auth.JWTConfig{
		Secret: s.config.Service.Supabase.JWTSecret,
		Logger: s.logger,
		SkipPaths: []string{
			"/health",
			"/webhook",
			"/api/v1/booking/validate-timeslot",
			"/api/v1/booking/cancel",
		},
	}

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	// Public routes (no authentication required)
	v1.POST("/booking/validate-timeslot", bookingHandler.ValidateTimeslot)
	v1.GET("/booking/cancel", bookingHandler.CancelRedirect)

	// Protected routes (require JWT authentication)
	protected := v1.Group("", auth.JWTMiddleware(jwtConfig))

	protected.POST("/booking/submit", bookingHandler.SubmitBooking)

	protected.POST("/auth/create-profile", onboardingHandler.CreateProfile)

	customer := protected.Group("/customer")
	customer.GET("/profile", customerHandler.GetProfile)
	customer.PUT("/profile", customerHandler.UpdateProfile)
	customer.GET("/bookings", customerHandler.ListBookings)
	customer.POST("/bookings/cancel", customerHandler.CancelBooking)
	customer.GET("/cars", carHandler.ListCars)
	customer.POST("/cars", carHandler.AddCar)
	customer.POST("/cars/delete", carHandler.DeleteCar)

	washer := protected.Group("/washer")
	washer.POST("/missions/accept", missionHandler.AcceptMission)
	washer.GET("/missions/available", missionHandler.ListAvailable)
	washer.GET("/missions/accepted", missionHandler.ListAccepted)

	// Webhook route (outside API versioning)
	s.echo.POST("/webhook/stripe", webhookHandler.HandleStripeWebhook)
}
