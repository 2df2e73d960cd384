package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wapi/api/internal/middleware"
)

// NewRouter wires the word endpoints at the root and under /api.
func NewRouter(words *WordHandler, status *StatusHandler) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.MetricsMiddleware())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", status.Health)
	r.GET("/status", status.Status)

	for _, g := range []*gin.RouterGroup{&r.RouterGroup, r.Group("/api")} {
		g.GET("/random", words.Random)
		g.GET("/daily", words.Daily)
		g.GET("/check", words.Check)
	}

	return r
}
