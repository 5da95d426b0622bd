package routes

import (
	"net/http"

	"quizzy/handlers"
	"quizzy/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	categoryHandler *handlers.CategoryHandler,
	quizHandler *handlers.QuizHandler,
	pageHandler *handlers.PageHandler,
	redisClient *redis.Client,
	sessionSecret string,
) {
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/google", authHandler.GoogleLogin)
		}

		// Public read-only listing endpoints, cached for five minutes by
		// path plus query string.
		user := api.Group("/user")
		user.Use(middleware.ResponseCache(redisClient))
		{
			user.GET("/categories", categoryHandler.ListPublic)
			user.GET("/categories/:name/quizzes", quizHandler.ListPublicByCategory)
			user.GET("/quizzes/:id", quizHandler.GetForUser)
		}

		// Scoring is public too, but records an attempt when a session is
		// present. Never cached.
		api.POST("/user/quizzes/:id/submit", middleware.SessionOptional(sessionSecret), quizHandler.Submit)

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.LoginRequired(sessionSecret))
		{
			protected.GET("/auth/profile", authHandler.GetProfile)
			protected.POST("/auth/logout", authHandler.Logout)
			protected.POST("/session-heartbeat", authHandler.Heartbeat)

			categories := protected.Group("/categories")
			{
				categories.GET("", categoryHandler.List)
				categories.POST("", categoryHandler.Create)
				categories.DELETE("/:name", categoryHandler.Delete)
				categories.PUT("/:name/image", categoryHandler.SetImage)
				categories.GET("/:name/quizzes", quizHandler.ListByCategory)
			}

			quizzes := protected.Group("/quizzes")
			{
				quizzes.POST("", quizHandler.Create)
				quizzes.DELETE("/:id", quizHandler.Delete)
				quizzes.PUT("/:id/image", quizHandler.SetImage)
			}

			protected.GET("/attempts", quizHandler.Attempts)
			protected.POST("/create-category-page", pageHandler.CreatePage)
			protected.POST("/refresh-category-pages", pageHandler.RefreshPages)
		}
	}

	// Static category page artifacts
	router.GET("/categories/:name", pageHandler.ServePage)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
