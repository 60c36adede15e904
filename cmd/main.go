package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"geddit/internal/auth"
	"geddit/internal/config"
	"geddit/internal/database"
	"geddit/internal/handlers"
	"geddit/internal/notify"
	"geddit/internal/repository"
	"geddit/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repository and notification channel
	repo := repository.NewRepository(database.GetDB())
	channel := notify.NewChannel(cfg.Mail, cfg.SMS)

	// Initialize services
	userService := services.NewUserService(repo)
	categoryService := services.NewCategoryService(repo)
	reservationService := services.NewReservationService(repo, channel, cfg.App.SiteRootURL)
	itemService := services.NewItemService(repo, reservationService)
	claimService := services.NewClaimService(repo, channel)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	itemHandler := handlers.NewItemHandler(itemService, categoryService)
	claimHandler := handlers.NewClaimHandler(claimService)
	reservationHandler := handlers.NewReservationHandler(reservationService)

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Authentication routes (public)
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	// Public browse routes
	router.GET("/api/items", itemHandler.BrowseItems)
	router.GET("/api/items/:id", itemHandler.GetItem)
	router.GET("/api/categories", itemHandler.GetCategories)

	// API routes (protected)
	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		// Selling
		api.POST("/items", itemHandler.SellItem)
		api.GET("/items/mine", itemHandler.GetMyItems)
		api.DELETE("/items/:id", itemHandler.DeleteItem)

		// Claiming
		api.POST("/items/:id/claim", claimHandler.ClaimItem)
		api.POST("/items/:id/unclaim", claimHandler.UnclaimItem)
		api.POST("/items/:id/contact", claimHandler.ContactSeller)
		api.GET("/cart", claimHandler.GetCart)

		// Reservations
		api.POST("/reservations", reservationHandler.CreateReservation)
		api.GET("/reservations", reservationHandler.GetReservations)
		api.DELETE("/reservations/:id", reservationHandler.DeleteReservation)

		// Categories
		api.POST("/categories", itemHandler.CreateCategory)

		// Account
		userRoutes := api.Group("/user")
		{
			userRoutes.GET("/profile", userHandler.GetProfile)
			userRoutes.PUT("/settings", userHandler.UpdateSettings)
			userRoutes.DELETE("", userHandler.DeleteAccount)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
