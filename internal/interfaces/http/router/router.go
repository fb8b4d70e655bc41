package router

import (
	"net/http"

	"github.com/ebilling/backend/internal/domain/shared"
	"github.com/ebilling/backend/internal/infrastructure/auth"
	"github.com/ebilling/backend/internal/interfaces/http/handler"
	"github.com/ebilling/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers bundles the HTTP handlers the router wires up
type Handlers struct {
	Auth       *handler.AuthHandler
	Account    *handler.AccountHandler
	Connection *handler.ConnectionHandler
	Bill       *handler.BillHandler
	Payment    *handler.PaymentHandler
	Complaint  *handler.ComplaintHandler
}

// Config holds the router's auth dependencies
type Config struct {
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	Logger         *zap.Logger
}

// Setup registers all routes on the engine. Everything under /api/v1
// except login and refresh sits behind the JWT middleware; the admin
// and user groups are additionally gated by role.
func Setup(engine *gin.Engine, cfg Config, h Handlers) {
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	jwtConfig := middleware.DefaultJWTConfig(cfg.JWTService)
	jwtConfig.TokenBlacklist = cfg.TokenBlacklist
	jwtConfig.Logger = cfg.Logger

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	authGroup := api.Group("/auth")
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/refresh", h.Auth.RefreshToken)
	authGroup.POST("/logout", h.Auth.Logout)

	admin := api.Group("/admin", middleware.RequireRole(shared.RoleAdmin))
	admin.POST("/accounts", h.Account.Register)
	admin.GET("/accounts", h.Account.List)
	admin.DELETE("/accounts/:id", h.Account.Delete)
	admin.POST("/connections", h.Connection.Create)
	admin.GET("/connections", h.Connection.ListAll)
	admin.POST("/bills", h.Bill.Create)
	admin.GET("/bills", h.Bill.ListAll)
	admin.GET("/complaints", h.Complaint.ListAll)
	admin.PATCH("/complaints/:id", h.Complaint.UpdateStatus)

	user := api.Group("/user", middleware.RequireRole(shared.RoleUser))
	user.GET("/connections", h.Connection.ListOwned)
	user.GET("/bills", h.Bill.ListOwned)
	user.POST("/payments", h.Payment.Create)
	user.GET("/payments", h.Payment.ListOwned)
	user.GET("/consumption", h.Bill.ListConsumption)
	user.POST("/complaints", h.Complaint.File)
	user.GET("/complaints", h.Complaint.ListOwned)
}
