package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"checkers/internal/game"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const writeWait = 5 * time.Second

type Message struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data,omitempty"`
}

type Hub struct {
	mu       sync.RWMutex
	clients  map[*websocket.Conn]*sync.Mutex
	table    Table
	upgrader websocket.Upgrader
}

func NewHub(t Table, allowAllOrigins bool) *Hub {
	h := &Hub{
		clients: make(map[*websocket.Conn]*sync.Mutex),
		table:   t,
	}
	if allowAllOrigins {
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	}
	return h
}

// SetTable breaks the construction cycle: the table needs the hub as its
// broadcaster and the hub needs the table for client actions.
func (h *Hub) SetTable(t Table) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.table = t
}

func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	log.Debug().Str("remote", conn.RemoteAddr().String()).Msg("websocket connected")

	wmu := &sync.Mutex{}
	h.mu.Lock()
	h.clients[conn] = wmu
	t := h.table
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		_ = conn.Close()
	}()

	if t != nil {
		h.send(conn, wmu, "state", t.State())
	}

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Msg("websocket read")
			}
			return
		}
		h.handle(conn, wmu, msg)
	}
}

func (h *Hub) handle(conn *websocket.Conn, wmu *sync.Mutex, msg Message) {
	h.mu.RLock()
	t := h.table
	h.mu.RUnlock()
	if t == nil {
		return
	}

	// Successful actions reach every client through the table's broadcast.
	switch msg.Action {
	case "click":
		var cell game.Cell
		if err := json.Unmarshal(msg.Data, &cell); err != nil {
			h.send(conn, wmu, "error", gin.H{"error": "invalid cell"})
			return
		}
		if _, err := t.Click(cell); err != nil {
			h.send(conn, wmu, "error", gin.H{"error": err.Error()})
		}
	case "clear":
		t.ClearSelection()
	case "reset":
		t.Reset()
	case "state":
		h.send(conn, wmu, "state", t.State())
	default:
		log.Debug().Str("action", msg.Action).Msg("unknown websocket action")
		h.send(conn, wmu, "error", gin.H{"error": "unknown action " + msg.Action})
	}
}

func (h *Hub) send(conn *websocket.Conn, wmu *sync.Mutex, action string, data interface{}) error {
	wmu.Lock()
	defer wmu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(map[string]interface{}{
		"action": action,
		"data":   data,
	})
}

// Broadcast pushes an event to every connected client. Clients that fail
// to receive it are dropped.
func (h *Hub) Broadcast(action string, data interface{}) {
	if h == nil {
		return
	}

	h.mu.RLock()
	var failed []*websocket.Conn
	for conn, wmu := range h.clients {
		if err := h.send(conn, wmu, action, data); err != nil {
			log.Debug().Err(err).Msg("websocket write failed")
			failed = append(failed, conn)
		}
	}
	h.mu.RUnlock()

	if len(failed) == 0 {
		return
	}
	h.mu.Lock()
	for _, conn := range failed {
		delete(h.clients, conn)
		_ = conn.Close()
	}
	h.mu.Unlock()
}

func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
