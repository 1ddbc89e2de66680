package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arsonstech/fieldservice/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(engineHandler *handlers.EngineHandler, customerHandler *handlers.CustomerHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")

	// Secondary lookups (engine serial, engine number) ride on the collection
	// routes as query parameters.
	engines := api.Group("/engines")
	engines.POST("", engineHandler.Create)
	engines.GET("", engineHandler.List)
	engines.GET("/:id", engineHandler.Get)
	engines.PUT("/:id", engineHandler.Update)
	engines.DELETE("/:id", engineHandler.Delete)
	engines.GET("/:id/pdf", engineHandler.PDF)

	customers := api.Group("/customer-details")
	customers.POST("", customerHandler.Create)
	customers.GET("", customerHandler.List)
	customers.GET("/:id", customerHandler.Get)
	customers.PUT("/:id", customerHandler.Update)
	customers.DELETE("/:id", customerHandler.Delete)
	customers.GET("/:id/pdf", customerHandler.PDF)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
