package main

import (
	"log"

	"quizzy/config"
	"quizzy/handlers"
	"quizzy/middleware"
	"quizzy/models"
	"quizzy/routes"
	"quizzy/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Migrate database models once at startup, outside the request path
	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Quiz{},
		&models.QuizQuestion{},
		&models.QuizAttempt{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Static page generation runs on a fixed worker pool off the request path
	pages, err := services.NewPageGenerator(cfg.PagesDir, cfg.PageWorkers)
	if err != nil {
		log.Fatal("Failed to initialize page generator:", err)
	}

	// Initialize services
	listingCache := services.NewListingCache(redisClient)
	authService := services.NewAuthService(db, cfg.SessionSecret, cfg.GoogleClientID, cfg.AdminEmail)
	categoryService := services.NewCategoryService(db, listingCache, pages)
	quizService := services.NewQuizService(db)
	scoringService := services.NewScoringService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	quizHandler := handlers.NewQuizHandler(quizService, scoringService)
	pageHandler := handlers.NewPageHandler(pages, categoryService)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, authHandler, categoryHandler, quizHandler, pageHandler, redisClient, cfg.SessionSecret)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
