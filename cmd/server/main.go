package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"fitstream/internal/config"
	"fitstream/internal/handlers"
	authMiddleware "fitstream/internal/middleware"
	"fitstream/internal/services"
)

func main() {
	cfg := config.Load()

	// Initialize Database
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	db, err := services.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migration
	if err := services.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Seed roles, plans, and sample classes
	if err := services.SeedDefaults(context.Background(), db); err != nil {
		log.Fatalf("Failed to seed defaults: %v", err)
	}

	// Initialize Redis cache. The API works without it, just slower
	// and without the webhook reconciliation lock.
	cache, err := services.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Redis initialization failed: %v", err)
		log.Println("Continuing without cache")
		cache = nil
	}

	// Initialize Stripe
	stripeService := services.NewStripeService(cfg.StripeSecretKey)
	paymentService := services.NewPaymentService(db, stripeService, cache, cfg.StripeWebhookSecret, cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = authMiddleware.CustomErrorHandler

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg.JWTSecret)
	planHandler := handlers.NewPlanHandler(db, cache)
	classHandler := handlers.NewClassHandler(db)
	bookingHandler := handlers.NewBookingHandler(db)
	subscriptionHandler := handlers.NewSubscriptionHandler(db, paymentService)
	paymentHandler := handlers.NewPaymentHandler(db)
	webhookHandler := handlers.NewWebhookHandler(paymentService)

	// Public routes
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)
	e.GET("/api/plans", planHandler.ListPlans)
	e.GET("/api/plans/:id", planHandler.GetPlan)
	e.POST("/api/webhooks/stripe", webhookHandler.HandleStripeWebhook)

	// Protected routes
	api := e.Group("/api")
	api.Use(authMiddleware.RequireAuth(cfg.JWTSecret))

	// Classes
	api.GET("/classes/live", classHandler.UpcomingLiveClasses)
	api.GET("/classes/recorded", classHandler.RecordedClasses)
	api.GET("/classes/search", classHandler.SearchClasses)
	api.GET("/classes/category/:category", classHandler.ClassesByCategory)
	api.GET("/classes/:id", classHandler.GetClass)

	// Bookings
	api.POST("/bookings", bookingHandler.BookClass)
	api.DELETE("/bookings/:id", bookingHandler.CancelBooking)
	api.GET("/bookings", bookingHandler.ListBookings)

	// Subscriptions
	api.POST("/subscriptions/checkout", subscriptionHandler.Checkout)
	api.POST("/subscriptions/cancel", subscriptionHandler.Cancel)
	api.GET("/subscriptions/active", subscriptionHandler.ActiveSubscription)
	api.GET("/subscriptions", subscriptionHandler.ListSubscriptions)

	// Payments
	api.GET("/payments", paymentHandler.ListPayments)

	// Instructor routes
	instructor := api.Group("/instructor")
	instructor.Use(authMiddleware.RequireInstructor())
	instructor.GET("/classes", classHandler.MyClasses)
	instructor.POST("/classes", classHandler.CreateClass)

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(authMiddleware.RequireAdmin())
	admin.GET("/classes/:id/roster", bookingHandler.ClassRoster)
	admin.GET("/subscriptions/:id/provider", subscriptionHandler.ProviderView)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
