package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wapi/api/internal/random"
	"github.com/wapi/api/internal/scheduler"
	"github.com/wapi/api/internal/store"
)

const pingTimeout = 5 * time.Second

type StatusHandler struct {
	store     store.Store
	generator *random.Generator
	monitor   *scheduler.DailyMonitor
}

// NewStatusHandler builds the status endpoints. monitor may be nil when the
// daily monitor is disabled.
func NewStatusHandler(s store.Store, generator *random.Generator, monitor *scheduler.DailyMonitor) *StatusHandler {
	return &StatusHandler{store: s, generator: generator, monitor: monitor}
}

// Health reports whether the word store is reachable.
func (h *StatusHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  "word store not reachable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *StatusHandler) Status(c *gin.Context) {
	bounds := make(map[string]int)
	for size, bound := range h.generator.Bounds() {
		bounds[strconv.Itoa(size)] = bound
	}

	response := gin.H{"randomBounds": bounds}
	if h.monitor != nil {
		response["dailyMonitor"] = h.monitor.GetStatus()
	} else {
		response["dailyMonitor"] = gin.H{"enabled": false, "message": "Daily monitor is disabled"}
	}

	c.JSON(http.StatusOK, response)
}
