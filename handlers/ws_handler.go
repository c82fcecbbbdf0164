package handlers

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/linskybing/hr-console-go/response"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub pushes refresh hints to connected shells after employee or form
// mutations, so open screens re-fetch instead of going stale.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]bool)}
}

type hint struct {
	Topic string `json:"topic"`
}

func (h *Hub) Broadcast(topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteJSON(hint{Topic: topic}); err != nil {
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// Serve godoc
// @Summary Subscribe to refresh hints over a websocket
// @Tags ws
// @Router /ws [get]
func (h *Hub) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "websocket upgrade failed: " + err.Error()})
		return
	}

	h.mu.Lock()
	h.conns[conn] = true
	h.mu.Unlock()

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		h.mu.Lock()
		if h.conns[conn] {
			conn.Close()
			delete(h.conns, conn)
		}
		h.mu.Unlock()
		log.Println("websocket client disconnected")
	}()
}
