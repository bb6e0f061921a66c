package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/coder/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 64 * 1024
	sendBuffer = 256
)

// Client is one websocket connection to a session.
type Client struct {
	session *Session
	conn    *websocket.Conn
	send    chan []byte
	ID      string
}

func NewClient(session *Session, conn *websocket.Conn, clientID string) *Client {
	return &Client{
		session: session,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		ID:      clientID,
	}
}

// ReadPump feeds incoming messages to the session until the connection or
// the session ends.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.session.Leave(c)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMsgSize)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			slog.Debug("read error", "error", err, "client", c.ID, "session", c.session.ID)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Warn("invalid message", "error", err, "client", c.ID, "session", c.session.ID)
			continue
		}
		msg.ClientID = c.ID

		if err := c.session.Submit(c, msg); err != nil {
			slog.Debug("session gone", "error", err, "client", c.ID, "session", c.session.ID)
			return
		}
	}
}

// WritePump drains the send queue onto the connection and keeps it alive
// with pings. It returns once the session closes the queue.
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				slog.Debug("write error", "error", err, "client", c.ID)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

// Send queues msg. Only the session loop calls it, so the queue is never
// written after it is closed.
func (c *Client) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal message", "error", err)
		return
	}
	c.sendRaw(data)
}

func (c *Client) sendRaw(data []byte) {
	select {
	case c.send <- data:
	default:
		slog.Warn("client send buffer full, dropping message", "client", c.ID)
	}
}
