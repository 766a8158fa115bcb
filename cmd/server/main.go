package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"elearn_backend/internal/api"        // API handlers
	"elearn_backend/internal/catalog"    // Static course catalog
	"elearn_backend/internal/config"     // Configuration
	"elearn_backend/internal/middleware" // Middleware
	"elearn_backend/internal/service"    // Domain services
	"elearn_backend/internal/storage"    // Storage backends and selector

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Probe MySQL once; on failure the process runs on in-memory storage
	// for its whole lifetime
	selector := storage.Probe(cfg.DSN(), cfg.DBConnectTimeout)

	// Load the course catalog
	cat, err := catalog.Load(cfg.CoursesPath)
	if err != nil {
		logrus.Fatalf("failed to load course catalog: %v", err)
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Domain services share the one selector
	authSvc := service.NewAuthService(selector)
	accountSvc := service.NewAccountService(selector)
	purchaseSvc := service.NewPurchaseService(selector)
	questionSvc := service.NewQuestionService(selector)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default()
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Public routes
	r.POST("/api/register", api.RegisterHandler(authSvc))
	r.POST("/api/login", api.LoginHandler(authSvc, cfg.JWTSecret))
	r.GET("/api/check-auth", api.CheckAuthHandler(cfg.JWTSecret))
	r.POST("/api/logout", api.LogoutHandler())
	r.GET("/api/courses", api.CoursesHandler(cat, redisClient))
	r.GET("/api/courses/:id", api.CourseHandler(cat))
	r.GET("/api/courses/:id/subcourses", api.SubCoursesHandler(cat))
	r.GET("/api/websites", api.WebsitesHandler(cfg.WebsitesPath))

	// Authenticated routes
	authGroup := r.Group("/api")
	authGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	authGroup.GET("/account", api.GetAccountHandler(accountSvc, redisClient))
	authGroup.GET("/orders", api.GetOrdersHandler(accountSvc, redisClient))
	authGroup.POST("/purchase", api.PurchaseHandler(purchaseSvc, redisClient))
	authGroup.POST("/questions", api.CreateQuestionHandler(questionSvc))
	authGroup.GET("/questions", api.ListQuestionsHandler(questionSvc))
	authGroup.GET("/questions/:id", api.QuestionDetailHandler(questionSvc))
	authGroup.POST("/questions/:id/replies", api.CreateReplyHandler(questionSvc))
	authGroup.GET("/my-questions", api.MyQuestionsHandler(questionSvc))

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
