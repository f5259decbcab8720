package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"papertrade/internal/config"
	"papertrade/internal/database"
	"papertrade/internal/handlers"
	"papertrade/internal/logger"
	"papertrade/internal/middleware"
	"papertrade/internal/quote"
	"papertrade/internal/services"
	"papertrade/internal/validator"
)

// @title           Papertrade API
// @version         1.0
// @description     Papertrade is a stock trading simulator: register with simulated cash, buy and sell securities at live quoted prices, and track your portfolio.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Quote gateway: direct HTTP client, optionally wrapped in a Redis
	// read-through cache when REDIS_ADDR is configured
	var quotes quote.Gateway = quote.NewClient(nil, appConfig.QuoteAPIURL, appConfig.QuoteAPIToken)
	if appConfig.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     appConfig.RedisAddr,
			Password: appConfig.RedisPassword,
		})
		quotes = quote.NewCachedGateway(quotes, rdb, appConfig.QuoteCacheTTL)
		log.Infof("Quote caching enabled via Redis at %s (TTL %s)", appConfig.RedisAddr, appConfig.QuoteCacheTTL)
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	accountService := services.NewAccountService(db)
	tradeService := services.NewTradeService(db, quotes)
	portfolioService := services.NewPortfolioService(db, quotes)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	tradeHandler := handlers.NewTradeHandler(tradeService, quotes, auditService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	accountHandler := handlers.NewAccountHandler(accountService, auditService)

	// Register custom validators with the Gin binding engine
	validator.Register()

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Quotes and trades
	protected.GET("/quotes/:symbol", tradeHandler.GetQuote)
	trades := protected.Group("/trades")
	trades.POST("/buy", tradeHandler.Buy)
	trades.POST("/sell", tradeHandler.Sell)

	// Portfolio and history
	protected.GET("/portfolio", portfolioHandler.GetPortfolio)
	protected.GET("/history", portfolioHandler.GetHistory)

	// Account maintenance
	account := protected.Group("/account")
	account.POST("/reset", accountHandler.ResetPortfolio)
	account.PUT("/password", accountHandler.ChangePassword)

	log.Infof("Starting Papertrade backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
