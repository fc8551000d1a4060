package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"tinyboard/internal/logging"
	"tinyboard/internal/protocol"
)

var (
	// ErrClosed is returned when emitting on a closed connection.
	ErrClosed = errors.New("connection closed")
	// ErrBufferFull is returned when the peer is not draining its queue.
	ErrBufferFull = errors.New("send buffer full")
)

const (
	sendBuffer  = 32
	writeWait   = 10 * time.Second
	defaultPing = 15 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Conn is a named-event websocket connection. Writes go through a single
// writer goroutine; reads must come from a single goroutine.
type Conn struct {
	ws   *websocket.Conn
	send chan protocol.Envelope
	done chan struct{}
	ping time.Duration

	closeOnce sync.Once
}

// Accept upgrades an HTTP request to a websocket connection.
func Accept(w http.ResponseWriter, r *http.Request, ping time.Duration) (*Conn, error) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, fmt.Errorf("upgrade: %w", err)
	}
	return newConn(ws, ping), nil
}

// Dial connects to a websocket endpoint.
func Dial(ctx context.Context, url string, ping time.Duration) (*Conn, error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return newConn(ws, ping), nil
}

func newConn(ws *websocket.Conn, ping time.Duration) *Conn {
	if ping <= 0 {
		ping = defaultPing
	}
	c := &Conn{
		ws:   ws,
		send: make(chan protocol.Envelope, sendBuffer),
		done: make(chan struct{}),
		ping: ping,
	}
	pongWait := 2 * ping
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	go c.writeLoop()
	return c
}

// Emit queues an event for the peer without blocking.
func (c *Conn) Emit(env protocol.Envelope) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	select {
	case c.send <- env:
		return nil
	case <-c.done:
		return ErrClosed
	default:
		return ErrBufferFull
	}
}

// Read returns the next event. Frames that do not decode are logged and
// skipped.
func (c *Conn) Read() (protocol.Envelope, error) {
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			return protocol.Envelope{}, err
		}
		var env protocol.Envelope
		if err := json.Unmarshal(data, &env); err != nil || env.Event == "" {
			logging.Debugf("dropping undecodable frame from %s: %s", c.ws.RemoteAddr(), data)
			continue
		}
		// any activity proves the peer is alive
		_ = c.ws.SetReadDeadline(time.Now().Add(2 * c.ping))
		return env, nil
	}
}

// Inbound reads events on a new goroutine and delivers them in arrival
// order. The channel is closed when the connection fails or ctx ends.
func (c *Conn) Inbound(ctx context.Context) <-chan protocol.Envelope {
	out := make(chan protocol.Envelope)
	go func() {
		defer close(out)
		for {
			env, err := c.Read()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logging.Errorf("read from %s: %v", c.ws.RemoteAddr(), err)
				}
				return
			}
			select {
			case out <- env:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Done is closed once the connection is closed.
func (c *Conn) Done() <-chan struct{} { return c.done }

// Close asks the writer to flush queued events, send a close frame and
// release the socket, which also unblocks a pending Read.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return nil
}

func (c *Conn) writeLoop() {
	ticker := time.NewTicker(c.ping)
	defer func() {
		ticker.Stop()
		_ = c.Close()
		_ = c.ws.Close()
	}()

	for {
		select {
		case <-c.done:
			c.flush()
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		case env := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteJSON(env); err != nil {
				logging.Debugf("write %s to %s: %v", env.Event, c.ws.RemoteAddr(), err)
				return
			}
		case <-ticker.C:
			if err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// flush writes whatever is still queued so events emitted right before
// Close reach the peer.
func (c *Conn) flush() {
	for {
		select {
		case env := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteJSON(env); err != nil {
				logging.Debugf("flush %s to %s: %v", env.Event, c.ws.RemoteAddr(), err)
				return
			}
		default:
			return
		}
	}
}
