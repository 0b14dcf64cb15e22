package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"estate-hub.backend/internal/domain/entities"
	"estate-hub.backend/internal/interfaces/http/handlers"
	"estate-hub.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	verificationHandler *handlers.VerificationHandler
	offerHandler        *handlers.OfferHandler
	authMiddleware      gin.HandlerFunc
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, Idempotency-Key, X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Offer routes (protected)
		offers := v1.Group("/offers")
		offers.Use(d.authMiddleware)
		{
			offers.POST("", middleware.IdempotencyMiddleware(), d.offerHandler.Create)
			offers.GET("", d.offerHandler.List)
			offers.GET("/stats", middleware.RequireRole(string(entities.UserRoleAdmin)), d.offerHandler.GetStats)
			offers.GET("/:id", d.offerHandler.Get)
			offers.PATCH("/:id", d.offerHandler.Update)
		}

		// Admin verification triage routes (protected, admin only)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireRole(string(entities.UserRoleAdmin)))
		{
			admin.GET("/verifications", d.verificationHandler.ListByQueue)
			admin.GET("/verifications/stats", d.verificationHandler.GetStats)
			admin.POST("/verifications/:id/approve", d.verificationHandler.Approve)
			admin.POST("/verifications/:id/reject", d.verificationHandler.Reject)
		}
	}
}
