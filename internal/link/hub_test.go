package link

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func waitStatus(t *testing.T, tr Transport, want Status) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if tr.Status() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("status = %v, want %v", tr.Status(), want)
}

func dialHub(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	return conn
}

func TestHub_TelemetryAndCommands(t *testing.T) {
	frames := make(chan string, 4)
	hub := NewHub(func(f []byte) { frames <- string(f) }, nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	if hub.Status() != Disconnected {
		t.Fatalf("fresh hub status = %v", hub.Status())
	}

	conn := dialHub(t, srv)
	defer conn.Close()
	waitStatus(t, hub, Connected)

	if err := hub.Send("*T31*"); err != nil {
		t.Fatalf("send: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(msg) != "*T31*" {
		t.Fatalf("got %q", msg)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("O45A")); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case f := <-frames:
		if f != "O45A" {
			t.Fatalf("handler got %q", f)
		}
	case <-time.After(time.Second):
		t.Fatal("handler not called")
	}

	_ = conn.Close()
	waitStatus(t, hub, Disconnected)
}

func TestHub_OverlongMessageKeepsClient(t *testing.T) {
	frames := make(chan string, 4)
	hub := NewHub(func(f []byte) { frames <- string(f) }, nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dialHub(t, srv)
	defer conn.Close()
	waitStatus(t, hub, Connected)

	if err := conn.WriteMessage(websocket.TextMessage, []byte(strings.Repeat("9", 2*maxFrameLen))); err != nil {
		t.Fatalf("write overlong: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte("E")); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case f := <-frames:
		if f != "E" {
			t.Fatalf("handler got %q, want E", f)
		}
	case <-time.After(time.Second):
		t.Fatal("frame after overlong message not delivered")
	}
	if hub.Status() != Connected {
		t.Fatalf("status = %v, want CONNECTED", hub.Status())
	}
}

func TestHub_CloseDisconnectsClients(t *testing.T) {
	hub := NewHub(nil, nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dialHub(t, srv)
	defer conn.Close()
	waitStatus(t, hub, Connected)

	if err := hub.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if hub.Status() != Off {
		t.Fatalf("status after close = %v", hub.Status())
	}
	if err := hub.Send("*T1*"); err != ErrClosed {
		t.Fatalf("send after close = %v, want ErrClosed", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected the server to close the connection")
	}
}
