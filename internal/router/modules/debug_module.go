package modules

import (
	"expvar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/healisdev/healis-api/internal/container"
	"github.com/healisdev/healis-api/internal/interface/middleware"
)

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", func(c *gin.Context) {
		status := gin.H{"status": "ok"}
		if pool := container.GetPGPool(); pool != nil {
			if err := pool.Ping(c.Request.Context()); err != nil {
				status["status"] = "degraded"
				status["postgres"] = err.Error()
			}
		}
		if rdb := container.GetRedis(); rdb != nil {
			if err := rdb.Ping(c.Request.Context()).Err(); err != nil {
				status["status"] = "degraded"
				status["redis"] = err.Error()
			}
		}
		code := http.StatusOK
		if status["status"] != "ok" {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})

	// Public metrics endpoint (expvar), rate-limited per IP. Probes from
	// private ranges (load balancer health checks, in-cluster scrapers)
	// bypass the limit.
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
