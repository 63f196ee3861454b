package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storefront/pkg/logger"
	"storefront/pkg/metrics"
)

const serviceName = "storefront-service"

// SetupRoutes настраивает все маршруты BFF витрины
func SetupRoutes(
	authHandler *AuthHandler,
	productHandler *ProductHandler,
	reviewHandler *ReviewHandler,
	sessionMiddleware *SessionMiddleware,
	allowedOrigins []string,
) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware(serviceName))

	// Браузерное приложение ходит к BFF с другого origin
	router.Use(cors.New(corsConfig(allowedOrigins)))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireSession := sessionMiddleware.RequireSession()

	auth := router.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
		auth.POST("/logout", requireSession, authHandler.Logout)
		auth.GET("/me", requireSession, authHandler.Me)
	}

	products := router.Group("/products")
	{
		products.GET("", productHandler.ListProducts)
		products.GET("/:id", productHandler.GetProduct)
		products.GET("/:id/reviews", reviewHandler.GetPanel)

		products.POST("", requireSession, productHandler.CreateProduct)
		products.PUT("/:id", requireSession, productHandler.UpdateProduct)
		products.DELETE("/:id", requireSession, productHandler.DeleteProduct)
		products.POST("/:id/reviews", requireSession, reviewHandler.SubmitReview)
	}

	return router
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           5 * time.Minute,
	}
	// Пустой список означает "любой origin"; токен передаётся заголовком, cookies не нужны
	if len(allowedOrigins) == 0 {
		cfg.AllowOrigins = nil
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	}
	return cfg
}
