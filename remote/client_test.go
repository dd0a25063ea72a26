package remote

import (
	"context"
	"encoding/gob"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/roadmemo/model"
)

var upgrader = websocket.Upgrader{}

// newWSServer runs handle on every upgraded connection and returns its URL.
func newWSServer(t *testing.T, handle func(conn *websocket.Conn)) string {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		handle(conn)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

// drain reads and drops frames until the peer goes away.
func drain(conn *websocket.Conn) {
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

func dial(t *testing.T, url string) *Client {
	c, err := Dial(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestOpenTimeout(t *testing.T) {
	c := dial(t, newWSServer(t, drain))
	c.Timeout = 100 * time.Millisecond

	_, err := c.Open(context.Background())
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestContextDeadlineBeatsTimeout(t *testing.T) {
	c := dial(t, newWSServer(t, drain))
	c.Timeout = 10 * time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := c.Send(ctx, model.ClientMessage{Step: model.Pos{Row: 1}})
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestOpenDecodeError(t *testing.T) {
	c := dial(t, newWSServer(t, func(conn *websocket.Conn) {
		conn.WriteMessage(websocket.TextMessage, []byte("not gob"))
		drain(conn)
	}))

	_, err := c.Open(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestSendReply(t *testing.T) {
	c := dial(t, newWSServer(t, func(conn *websocket.Conn) {
		for {
			_, r, err := conn.NextReader()
			if err != nil {
				return
			}
			cm := model.ClientMessage{}
			if err := gob.NewDecoder(r).Decode(&cm); err != nil {
				return
			}
			w, err := conn.NextWriter(websocket.BinaryMessage)
			if err != nil {
				return
			}
			gob.NewEncoder(w).Encode(model.ServerMessage{
				Steps: []model.Step{{Outcome: model.Moved, To: cm.Step, Steps: 1}},
			})
			w.Close()
		}
	}))

	to := model.Pos{Row: 2, Col: 3}
	reply, err := c.Send(context.Background(), model.ClientMessage{Step: to})
	require.NoError(t, err)
	require.Len(t, reply.Steps, 1)
	assert.Equal(t, model.Moved, reply.Steps[0].Outcome)
	assert.Equal(t, to, reply.Steps[0].To)
}

func TestKeepAlivePings(t *testing.T) {
	pings := make(chan struct{}, 10)
	c := dial(t, newWSServer(t, func(conn *websocket.Conn) {
		conn.SetPingHandler(func(string) error {
			select {
			case pings <- struct{}{}:
			default:
			}
			return nil
		})
		drain(conn)
	}))
	c.KeepAlive(20 * time.Millisecond)

	select {
	case <-pings:
	case <-time.After(time.Second):
		t.Fatal("no ping received")
	}
}

func TestCloseTwice(t *testing.T) {
	c := dial(t, newWSServer(t, drain))
	c.KeepAlive(time.Hour)
	assert.NoError(t, c.Close())
	assert.NotPanics(t, func() { c.Close() })
}
