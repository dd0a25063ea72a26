// Package remote plays rounds against a game server over a websocket.
package remote

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/roadmemo/model"
)

var ErrTimeout = errors.New("server did not answer in time")

type Client struct {
	Conn    *websocket.Conn
	Timeout time.Duration

	done      chan struct{}
	closeOnce sync.Once
}

func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	log.WithField("url", url).Info("connected to game server")
	return &Client{Conn: conn, Timeout: 5 * time.Second, done: make(chan struct{})}, nil
}

// KeepAlive pings the server every period until the client is closed. The
// server drops players silent for longer than its read wait.
func (c *Client) KeepAlive(period time.Duration) {
	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-c.done:
				return
			case <-ticker.C:
				if err := c.Conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(time.Second)); err != nil {
					log.WithError(err).Debug("KeepAlive ping")
					return
				}
			}
		}
	}()
}

// Open waits for the setup of the first round.
func (c *Client) Open(ctx context.Context) (model.ServerMessage, error) {
	return c.read(ctx)
}

// Send delivers one message and waits for its reply.
func (c *Client) Send(ctx context.Context, cm model.ClientMessage) (model.ServerMessage, error) {
	if err := c.write(ctx, cm); err != nil {
		return model.ServerMessage{}, err
	}
	return c.read(ctx)
}

// Close is safe to call more than once.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		werr := c.Conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		if werr != nil && werr != websocket.ErrCloseSent {
			log.WithError(werr).Debug("close handshake")
		}
		err = c.Conn.Close()
	})
	return err
}

func (c *Client) deadline(ctx context.Context) time.Time {
	if d, ok := ctx.Deadline(); ok {
		return d
	}
	return time.Now().Add(c.Timeout)
}

func (c *Client) write(ctx context.Context, cm model.ClientMessage) error {
	if err := c.Conn.SetWriteDeadline(c.deadline(ctx)); err != nil {
		return err
	}
	w, err := c.Conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return fmt.Errorf("next writer: %w", err)
	}
	if err := gob.NewEncoder(w).Encode(cm); err != nil {
		w.Close()
		return fmt.Errorf("encode: %w", err)
	}
	return w.Close()
}

func (c *Client) read(ctx context.Context) (model.ServerMessage, error) {
	mes := model.ServerMessage{}
	if err := c.Conn.SetReadDeadline(c.deadline(ctx)); err != nil {
		return mes, err
	}
	_, r, err := c.Conn.NextReader()
	if err != nil {
		if e, ok := err.(net.Error); ok && e.Timeout() {
			return mes, ErrTimeout
		}
		return mes, fmt.Errorf("next reader: %w", err)
	}
	if err := gob.NewDecoder(r).Decode(&mes); err != nil {
		return mes, fmt.Errorf("decode: %w", err)
	}
	return mes, nil
}
