package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tinyboard/internal/protocol"
)

func echoServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := Accept(w, r, time.Second)
		if err != nil {
			return
		}
		defer c.Close()
		for {
			env, err := c.Read()
			if err != nil {
				return
			}
			_ = c.Emit(env)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestEmitAndInboundRoundTrip(t *testing.T) {
	srv := echoServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, err := Dial(ctx, wsURL(srv), time.Second)
	require.NoError(t, err)
	defer c.Close()

	in := c.Inbound(ctx)
	sent := []protocol.Envelope{
		protocol.MustNew(protocol.EventPlayerRole, "w"),
		protocol.MustNew(protocol.EventBoardState, "8/8/8/8/8/8/8/8 w - - 0 1"),
		protocol.MustNew(protocol.EventMove, protocol.Move{From: "e2", To: "e4", Promotion: "q"}),
	}
	for _, env := range sent {
		require.NoError(t, c.Emit(env))
	}
	for _, want := range sent {
		select {
		case got := <-in:
			assert.Equal(t, want.Event, got.Event)
			assert.JSONEq(t, string(want.Data), string(got.Data))
		case <-ctx.Done():
			t.Fatal("timed out waiting for echo")
		}
	}
}

func TestUndecodableFramesAreSkipped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()
		_ = ws.WriteMessage(websocket.TextMessage, []byte("not json"))
		_ = ws.WriteMessage(websocket.TextMessage, []byte(`{"data":"w"}`))
		_ = ws.WriteJSON(protocol.MustNew(protocol.EventSpectatorRole, nil))
		time.Sleep(100 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := Dial(ctx, wsURL(srv), time.Second)
	require.NoError(t, err)
	defer c.Close()

	env, err := c.Read()
	require.NoError(t, err)
	assert.Equal(t, protocol.EventSpectatorRole, env.Event)
}

func TestEmitAfterClose(t *testing.T) {
	srv := echoServer(t)
	c, err := Dial(context.Background(), wsURL(srv), time.Second)
	require.NoError(t, err)

	require.NoError(t, c.Close())
	<-c.Done()
	assert.ErrorIs(t, c.Emit(protocol.MustNew(protocol.EventSpectatorRole, nil)), ErrClosed)
}

func TestInboundClosesWhenPeerGoes(t *testing.T) {
	srv := echoServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, err := Dial(ctx, wsURL(srv), time.Second)
	require.NoError(t, err)
	in := c.Inbound(ctx)
	require.NoError(t, c.Close())

	select {
	case _, ok := <-in:
		assert.False(t, ok)
	case <-ctx.Done():
		t.Fatal("inbound not closed")
	}
}

func TestCloseFlushesQueuedEvents(t *testing.T) {
	got := make(chan []string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()
		var events []string
		for {
			var env protocol.Envelope
			if err := ws.ReadJSON(&env); err != nil {
				got <- events
				return
			}
			events = append(events, env.Event)
		}
	}))
	defer srv.Close()

	c, err := Dial(context.Background(), wsURL(srv), time.Second)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.NoError(t, c.Emit(protocol.MustNew(protocol.EventMove, protocol.Move{From: "e2", To: "e4"})))
	}
	require.NoError(t, c.Close())

	select {
	case events := <-got:
		assert.Len(t, events, 10)
	case <-time.After(5 * time.Second):
		t.Fatal("peer never saw the close frame")
	}
}
