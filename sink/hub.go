package sink

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Session is one connected observer, adapted from DimaJoyti-go-coffee's
// websocket.Client: a connection plus a buffered outbound queue drained
// by its own writer goroutine.
type Session struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	id   string
}

// Hub fans encoded frame messages out to every connected Session and
// routes inbound control messages to a handler. Structurally carried
// over from DimaJoyti-go-coffee/web-ui/backend/internal/websocket/hub.go:
// the register/unregister/broadcast channel trio and the
// write-failure-removes-session behavior in the broadcast case are kept
// as-is; JSON framing and the periodic dashboard tick are dropped since
// this hub only ever carries pre-encoded frame messages.
type Hub struct {
	sessions   map[*Session]bool
	broadcast  chan []byte
	register   chan *Session
	unregister chan *Session
	onMessage  func(sessionID string, payload []byte)
	logger     *zap.Logger
}

// NewHub returns a Hub with no running goroutine; call Run to start it.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		sessions:   make(map[*Session]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Session),
		unregister: make(chan *Session),
		logger:     logger,
	}
}

// SetMessageHandler routes every inbound message, tagged with the
// sending session's id, to fn. Mirrors the spec's
// set_message_handler(fn) surface.
func (h *Hub) SetMessageHandler(fn func(sessionID string, payload []byte)) {
	h.onMessage = fn
}

// Run drives the hub's register/unregister/broadcast loop. It never
// returns; there is no shutdown path, so it is typically run in its own
// goroutine for the lifetime of the process.
func (h *Hub) Run() {
	for {
		select {
		case s := <-h.register:
			h.sessions[s] = true
			h.logger.Info("sink session connected", zap.String("session", s.id), zap.Int("total", len(h.sessions)))

		case s := <-h.unregister:
			if _, ok := h.sessions[s]; ok {
				delete(h.sessions, s)
				close(s.send)
				h.logger.Info("sink session disconnected", zap.String("session", s.id), zap.Int("total", len(h.sessions)))
			}

		case message := <-h.broadcast:
			for s := range h.sessions {
				select {
				case s.send <- message:
				default:
					close(s.send)
					delete(h.sessions, s)
				}
			}
		}
	}
}

// Write asynchronously fans payload out to every open session. A
// session whose outbound queue is full is dropped, matching the
// teacher's "write-failure-removes-session" behavior.
func (h *Hub) Write(payload []byte) {
	h.broadcast <- payload
}

// ServeWS upgrades the HTTP request to a WebSocket connection and
// registers a new Session for it.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("sink websocket upgrade failed", zap.Error(err))
		return
	}

	s := &Session{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 256),
		id:   uuid.NewString(),
	}
	h.register <- s

	go s.writePump()
	go s.readPump()
}

func (s *Session) readPump() {
	defer func() {
		s.hub.unregister <- s
		s.conn.Close()
	}()

	s.conn.SetReadLimit(1 << 20)
	s.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.hub.logger.Warn("sink websocket read error", zap.String("session", s.id), zap.Error(err))
			}
			break
		}
		if s.hub.onMessage != nil {
			s.hub.onMessage(s.id, message)
		}
	}
}

func (s *Session) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case message, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
