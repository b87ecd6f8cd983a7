package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-model-indexer/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		// Public read access
		v1.GET("/chains/:chain/models/:model_id", handler.GetModel)
		v1.GET("/chains/:chain/models/:model_id/entitlements/:address", handler.GetEntitlement)
		v1.GET("/models/:model_id/splitter", handler.GetSplitter)
		v1.GET("/models/:model_id/payout-address", handler.GetPayoutAddress)
	}

	admin := router.Group("/api/v1", middleware.Auth(authCfg))
	{
		admin.POST("/chains/:chain/models/:model_id/reindex", handler.TriggerReindex)
		admin.POST("/models/:model_id/splitter", handler.ConfigureSplit)
		admin.POST("/payments", handler.RegisterPayment)
		admin.POST("/payments/process", handler.ProcessPayments)
		admin.POST("/balances/:address/withdraw", handler.Withdraw)
		admin.GET("/cursors", handler.ListCursors)
		admin.POST("/chains/:chain/streams/:stream/cursor/reset", handler.ResetCursor)
	}
}
