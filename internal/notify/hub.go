package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

// Hub websocket-комнаты для уведомлений в реальном времени
// Комната владельца называется id его аккаунта, комната операторов задаётся в конфиге
type Hub struct {
	mu       sync.RWMutex
	rooms    map[string]map[*client]struct{}
	upgrader websocket.Upgrader
	log      Logger
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub создает пустой hub
func NewHub(log Logger) *Hub {
	return &Hub{
		rooms: make(map[string]map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

func (h *Hub) Name() string { return "websocket" }

// Accepts клиенты сервиса не подключаются к hub, им уходит только email через брокер
func (h *Hub) Accepts(e Event) bool {
	return e.Audience == AudienceOwner || e.Audience == AudienceOperator
}

// Deliver рассылает событие подключениям комнаты
// Медленное подключение, у которого заполнен буфер, пропускает событие
func (h *Hub) Deliver(ctx context.Context, e Event) error {
	msg, err := json.Marshal(e)
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.rooms[e.Recipient] {
		select {
		case c.send <- msg:
		case <-ctx.Done():
			return ctx.Err()
		default:
			h.log.Warn("Hub: room=%s client buffer full, event %s skipped", e.Recipient, e.Kind)
		}
	}
	return nil
}

// Clients количество подключений в комнате
func (h *Hub) Clients(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// Serve переводит запрос в websocket и держит подключение в комнате до отключения клиента
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, room string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.register(room, c)
	h.log.Info("Hub: client joined room=%s", room)

	go c.writeLoop()

	// Сообщения от клиента не ожидаются, читаем только для обработки pong и закрытия
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.unregister(room, c)
	h.log.Info("Hub: client left room=%s", room)
	return nil
}

func (h *Hub) register(room string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*client]struct{})
	}
	h.rooms[room][c] = struct{}{}
}

func (h *Hub) unregister(room string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[room][c]; !ok {
		return
	}
	delete(h.rooms[room], c)
	if len(h.rooms[room]) == 0 {
		delete(h.rooms, room)
	}
	close(c.send)
}

func (c *client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
