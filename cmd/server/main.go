package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/ebilling/backend/internal/application/billing"
	identityapp "github.com/ebilling/backend/internal/application/identity"
	supportapp "github.com/ebilling/backend/internal/application/support"
	"github.com/ebilling/backend/internal/infrastructure/auth"
	"github.com/ebilling/backend/internal/infrastructure/config"
	"github.com/ebilling/backend/internal/infrastructure/logger"
	"github.com/ebilling/backend/internal/infrastructure/persistence"
	"github.com/ebilling/backend/internal/interfaces/http/handler"
	"github.com/ebilling/backend/internal/interfaces/http/middleware"
	"github.com/ebilling/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting electricity billing backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Token blacklist: Redis in normal operation, in-memory when Redis
	// is unreachable so a dev setup still starts.
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		defer func() {
			if err := redisBlacklist.Close(); err != nil {
				log.Error("Error closing Redis connection", zap.Error(err))
			}
		}()
		blacklist = redisBlacklist
		log.Info("Redis token blacklist connected")
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	accountRepo := persistence.NewGormAccountRepository(db.DB)
	adminRepo := persistence.NewGormAdminRepository(db.DB)
	connectionRepo := persistence.NewGormConnectionRepository(db.DB)
	consumptionRepo := persistence.NewGormConsumptionRepository(db.DB)
	billRepo := persistence.NewGormBillRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	complaintRepo := persistence.NewGormComplaintRepository(db.DB)

	authService := identityapp.NewAuthService(accountRepo, adminRepo, jwtService, blacklist, log)
	accountService := identityapp.NewAccountService(accountRepo, connectionRepo, billRepo, log)
	connectionService := billingapp.NewConnectionService(connectionRepo, accountRepo, log)
	billingService := billingapp.NewBillingService(billRepo, connectionRepo, consumptionRepo, accountRepo, log)
	paymentService := billingapp.NewPaymentService(paymentRepo, billRepo, log)
	complaintService := supportapp.NewComplaintService(complaintRepo, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(gin.Recovery())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
		MaxAge:       12 * time.Hour,
	}))

	router.Setup(engine, router.Config{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	}, router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Account:    handler.NewAccountHandler(accountService),
		Connection: handler.NewConnectionHandler(connectionService),
		Bill:       handler.NewBillHandler(billingService),
		Payment:    handler.NewPaymentHandler(paymentService),
		Complaint:  handler.NewComplaintHandler(complaintService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
