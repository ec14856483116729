package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/akylbek/payment-system/payment-broker/internal/handlers"
	"github.com/akylbek/payment-system/payment-broker/internal/service"
	"github.com/akylbek/payment-system/payment-broker/internal/telemetry"
)

func NewRouter(svc *service.SessionService, paymentPageURL string, allowedOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(telemetry.TracingMiddleware())
	r.Use(corsMiddleware(allowedOrigins))

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "payment-broker"})
	})

	sessionHandler := handlers.NewSessionHandler(svc, paymentPageURL)
	r.POST("/payment-details", sessionHandler.Provision)
	r.GET("/payment/:id", sessionHandler.Read)
	r.POST("/confirm-payment", sessionHandler.Confirm)
	r.POST("/cancel-payment", sessionHandler.Cancel)

	return r
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}

	allowAll := len(allowedOrigins) == 0
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
	}

	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
	}

	return cors.New(cfg)
}
