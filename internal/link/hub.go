package link

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"greenhouse_control/internal/logger"
)

// Send/receive timing and message size limits.
const (
	writeWait   = 10 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = (pongWait * 9) / 10
	maxMsgSize  = 4096
	sendBacklog = 64
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub is the WiFi link: every websocket client receives telemetry frames as
// text messages and may send command frames, one per message.
type Hub struct {
	onFrame Handler
	log     *logger.Logger

	mu      sync.Mutex
	clients map[*wsClient]struct{}
	closed  bool
}

type wsClient struct {
	conn *websocket.Conn
	send chan string
}

// NewHub creates a hub delivering inbound frames to onFrame.
func NewHub(onFrame Handler, log *logger.Logger) *Hub {
	return &Hub{
		onFrame: onFrame,
		log:     log,
		clients: make(map[*wsClient]struct{}),
	}
}

// ServeHTTP upgrades the request and serves the client until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}

	cl := &wsClient{conn: conn, send: make(chan string, sendBacklog)}
	if !h.register(cl) {
		_ = conn.Close()
		return
	}
	defer func() {
		h.unregister(cl)
		_ = conn.Close()
	}()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go h.startReader(conn, done)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case frame, ok := <-cl.send:
			if !ok {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		}
	}
}

func (h *Hub) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
		if len(msg) > maxFrameLen {
			if h.log != nil {
				h.log.Warnw("ws_frame_dropped", "reason", "frame too long", "limit", maxFrameLen)
			}
			continue
		}
		if h.onFrame != nil && len(msg) > 0 {
			h.onFrame(msg)
		}
	}
}

func (h *Hub) register(cl *wsClient) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[cl] = struct{}{}
	if h.log != nil {
		h.log.Infow("ws_client_connected", "clients", len(h.clients))
	}
	return true
}

func (h *Hub) unregister(cl *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[cl]; ok {
		delete(h.clients, cl)
		close(cl.send)
	}
	if h.log != nil {
		h.log.Infow("ws_client_disconnected", "clients", len(h.clients))
	}
}

// Send queues frame for every client. A client whose backlog is full misses
// the frame.
func (h *Hub) Send(frame string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	for cl := range h.clients {
		select {
		case cl.send <- frame:
		default:
			if h.log != nil {
				h.log.Warnw("ws_frame_dropped", "frame", frame)
			}
		}
	}
	return nil
}

// Status is Connected while at least one client is attached.
func (h *Hub) Status() Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch {
	case h.closed:
		return Off
	case len(h.clients) > 0:
		return Connected
	default:
		return Disconnected
	}
}

// Close disconnects every client.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	for cl := range h.clients {
		delete(h.clients, cl)
		close(cl.send)
	}
	return nil
}
