package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/bancohq/banco-api/internal/config"
	"github.com/bancohq/banco-api/internal/handler"
	"github.com/bancohq/banco-api/internal/logging"
	"github.com/bancohq/banco-api/internal/middleware"
	"github.com/bancohq/banco-api/internal/repository"
	"github.com/bancohq/banco-api/internal/service"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	// Money values serialise as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true

	initialBalance, err := cfg.InitialBalanceAmount()
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// In-memory stores; the process owns all state.
	userRepo := repository.NewUserRepository()
	txRepo := repository.NewTransactionRepository()
	if cfg.SeedDemoData {
		repository.Seed(userRepo)
		logger.Info("seeded demo accounts")
	}

	authSvc := service.NewAuthService(userRepo, []byte(cfg.JWTSecret), time.Duration(cfg.JWTExpiryHours)*time.Hour, initialBalance)
	userSvc := service.NewUserService(userRepo)
	transferSvc := service.NewTransferService(userRepo, txRepo)
	statementSvc := service.NewStatementService(userRepo, txRepo)

	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	transactionHandler := handler.NewTransactionHandler(transferSvc, statementSvc)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "timestamp": time.Now().UTC().Format(time.RFC3339)})
	})

	authRequired := middleware.AuthMiddleware([]byte(cfg.JWTSecret))
	adminOnly := middleware.RequireAdmin(cfg.AdminUserID)

	auth := router.Group("/v1/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/verify", authRequired, authHandler.VerifyToken)
	}

	users := router.Group("/v1/users", authRequired)
	{
		users.GET("", adminOnly, userHandler.GetAllUsers)
		users.GET("/me", userHandler.GetMyProfile)
		users.GET("/balance", userHandler.GetBalance)
		users.GET("/:id", userHandler.GetUserByID)
		users.PUT("/:id", userHandler.UpdateUser)
		users.POST("/beneficiaries", userHandler.AddBeneficiary)
		users.DELETE("/beneficiaries/:beneficiaryId", userHandler.RemoveBeneficiary)
	}

	transactions := router.Group("/v1/transactions", authRequired)
	{
		transactions.POST("/transfer", transactionHandler.CreateTransfer)
		transactions.GET("/statement", transactionHandler.GetStatement)
		transactions.GET("/stats", transactionHandler.GetStats)
		transactions.GET("/:id", transactionHandler.GetTransactionByID)
		transactions.GET("", adminOnly, transactionHandler.GetAllTransactions)
	}

	logger.Info("banco api starting", slog.String("port", cfg.ServerPort))
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
