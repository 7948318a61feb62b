package http

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Rowdraraz100/RazNotes/internal/core/domain"
	"github.com/Rowdraraz100/RazNotes/internal/core/services"
)

const (
	liveWriteTimeout = 10 * time.Second
	liveBuffer       = 8
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 16 * 1024,
}

type liveMessage struct {
	Event string         `json:"event"`
	Habit string         `json:"habit,omitempty"`
	State domain.AppData `json:"state"`
}

// LiveHandler pushes a fresh snapshot to the widget after every saved change,
// which is its cue to re-render.
type LiveHandler struct {
	engine *services.Engine
}

func NewLiveHandler(engine *services.Engine) *LiveHandler {
	return &LiveHandler{engine: engine}
}

func (h *LiveHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/live", h.Stream)
}

func (h *LiveHandler) Stream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[LIVE] Upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates := make(chan liveMessage, liveBuffer)
	cancel := h.engine.Subscribe(func(ev services.Event) {
		msg := liveMessage{Event: string(ev.Kind), Habit: ev.HabitID, State: ev.Snapshot}
		select {
		case updates <- msg:
		default:
			log.Println("[LIVE] Client too slow, dropping update")
		}
	})
	defer cancel()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	initial, err := h.engine.Current(c.Request.Context())
	if err != nil {
		log.Printf("[LIVE] Rollover before first snapshot failed: %v", err)
	}
	if err := writeLive(conn, liveMessage{Event: "snapshot", State: initial}); err != nil {
		return
	}

	for {
		select {
		case msg := <-updates:
			if err := writeLive(conn, msg); err != nil {
				log.Printf("[LIVE] Write failed: %v", err)
				return
			}
		case <-closed:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}

func writeLive(conn *websocket.Conn, msg liveMessage) error {
	conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
	return conn.WriteJSON(msg)
}
