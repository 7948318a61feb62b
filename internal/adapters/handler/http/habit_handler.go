package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rowdraraz100/RazNotes/internal/adapters/handler/http/middleware"
	"github.com/Rowdraraz100/RazNotes/internal/core/domain"
	"github.com/Rowdraraz100/RazNotes/internal/core/services"
)

type HabitHandler struct {
	engine *services.Engine
}

func NewHabitHandler(engine *services.Engine) *HabitHandler {
	return &HabitHandler{
		engine: engine,
	}
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.GET("", h.List)
		habits.POST("/:id/toggle", h.Toggle)
	}
	router.GET("/catalog", h.Catalog)
}

func (h *HabitHandler) List(c *gin.Context) {
	snapshot, err := h.engine.Current(c.Request.Context())
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (h *HabitHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Catalog().Defaults())
}

func (h *HabitHandler) Toggle(c *gin.Context) {
	id := c.Param("id")

	// The engine ignores unknown ids; the API reports them.
	habit, ok := h.engine.Catalog().Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrHabitNotFound.Error()})
		return
	}

	snapshot, err := h.engine.Toggle(c.Request.Context(), id)
	if err != nil {
		writeEngineError(c, err)
		return
	}

	log.Printf("[HTTP] %s toggled %q", middleware.GetRequestID(c), habit.Name)

	c.JSON(http.StatusOK, snapshot)
}

func writeEngineError(c *gin.Context, err error) {
	requestID := middleware.GetRequestID(c)
	log.Printf("[HTTP] %s %s %s failed: %v", requestID, c.Request.Method, c.FullPath(), err)

	if errors.Is(err, domain.ErrStoreUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "state store unavailable", "request_id": requestID})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "request_id": requestID})
}
