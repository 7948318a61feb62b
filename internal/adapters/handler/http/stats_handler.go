package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Rowdraraz100/RazNotes/internal/core/domain"
	"github.com/Rowdraraz100/RazNotes/internal/core/services"
)

type StatsHandler struct {
	svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats", h.GetStats)
	r.GET("/heatmap", h.GetHeatmap)
}

func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.svc.GetStats(c.Request.Context())
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *StatsHandler) GetHeatmap(c *gin.Context) {
	var end domain.DayKey
	if endStr := c.Query("end"); endStr != "" {
		parsed, err := domain.ParseDayKey(endStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end format, expected YYYY-MM-DD"})
			return
		}
		end = parsed
	}

	days := 0
	if daysStr := c.Query("days"); daysStr != "" {
		n, err := strconv.Atoi(daysStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be an integer"})
			return
		}
		days = n
	}

	heatmap, err := h.svc.GetHeatmap(c.Request.Context(), end, days)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRange) || errors.Is(err, domain.ErrInvalidDayKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		writeEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, heatmap)
}
