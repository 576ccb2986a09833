package handler

import (
	"staking-eligibility-service/internal/adapter/http/middleware"
	"staking-eligibility-service/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	IngestionSvc   ports.IngestionService
	QuerySvc       ports.RewardQueryService
	AuthSvc        ports.AuthService // nil = operator login disabled
	TokenSvc       ports.TokenService
	RequireAuth    bool // guard the ingestion trigger with JWT
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	v1 := r.Group("/api/v1")

	if deps.AuthSvc != nil {
		authHandler := NewAuthHandler(deps.AuthSvc)
		v1.POST("/auth/login", authHandler.Login)
	}

	walletHandler := NewWalletHandler(deps.IngestionSvc, deps.QuerySvc)

	// Ingestion re-runs rewrite the wallet directory; it is guarded when an
	// operator credential is configured.
	ingest := v1.Group("")
	if deps.RequireAuth {
		ingest.Use(middleware.JWTAuth(deps.TokenSvc, deps.Logger))
	}
	ingest.GET("/wallets-by-category", walletHandler.WalletsByCategory)

	v1.GET("/wallets", walletHandler.Wallets)
	v1.GET("/wallet-reward-details/:address/:amount", walletHandler.WalletRewardDetails)
	v1.GET("/wallet-details/:address", walletHandler.WalletDetails)

	return r
}
