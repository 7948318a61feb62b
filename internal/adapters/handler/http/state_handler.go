package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Rowdraraz100/RazNotes/internal/adapters/handler/http/middleware"
	"github.com/Rowdraraz100/RazNotes/internal/core/domain"
	"github.com/Rowdraraz100/RazNotes/internal/core/services"
)

type StateHandler struct {
	engine *services.Engine
}

func NewStateHandler(engine *services.Engine) *StateHandler {
	return &StateHandler{engine: engine}
}

func (h *StateHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.DELETE("/state", h.Reset)
}

// Reset wipes history and streaks. It only runs with ?confirm=true.
func (h *StateHandler) Reset(c *gin.Context) {
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	if !confirmed {
		c.JSON(http.StatusPreconditionFailed, gin.H{
			"error":   domain.ErrResetNotConfirmed.Error(),
			"message": "Repeat the request with ?confirm=true to reset all history and streaks.",
		})
		return
	}

	snapshot, err := h.engine.Reset(c.Request.Context())
	if err != nil {
		writeEngineError(c, err)
		return
	}

	log.Printf("[HTTP] %s reset all history", middleware.GetRequestID(c))
	c.JSON(http.StatusOK, snapshot)
}
