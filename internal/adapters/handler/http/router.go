package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Rowdraraz100/RazNotes/internal/adapters/handler/http/middleware"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type RouterDependencies struct {
	HabitHandler *HabitHandler
	StatsHandler *StatsHandler
	StateHandler *StateHandler
	LiveHandler  *LiveHandler
	Store        HealthChecker
	Metrics      http.Handler
	Redis        *redis.Client
	RateLimit    int
	StartTime    time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.RequestIDMiddleware())

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-Request-ID")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	if deps.Redis != nil && deps.RateLimit > 0 {
		router.Use(middleware.RateLimiterMiddleware(deps.Redis, deps.RateLimit, 1*time.Minute))
	}

	router.GET("/health", func(c *gin.Context) {
		storeStatus := "connected"
		if deps.Store == nil || deps.Store.Ping(c.Request.Context()) != nil {
			storeStatus = "unreachable"
		}

		status, statusCode := "ok", http.StatusOK
		if storeStatus == "unreachable" {
			status, statusCode = "degraded", http.StatusServiceUnavailable
		}

		c.JSON(statusCode, gin.H{
			"status": status,
			"store":  storeStatus,
			"uptime": time.Since(deps.StartTime).String(),
		})
	})

	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	apiV1 := router.Group("/api/v1")
	{
		deps.HabitHandler.RegisterRoutes(apiV1)
		deps.StatsHandler.RegisterRoutes(apiV1)
		deps.StateHandler.RegisterRoutes(apiV1)
		if deps.LiveHandler != nil {
			deps.LiveHandler.RegisterRoutes(apiV1)
		}
	}

	return router
}
