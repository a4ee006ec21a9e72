package chathub

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"github.com/allworkdone/skills-exchange/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// WebSocketClient implements Client over a gorilla WebSocket connection.
type WebSocketClient struct {
	UserID string
	Conn   *websocket.Conn
	Hub    *Manager
	Send   chan models.Event
}

func (c *WebSocketClient) GetUserID() string                   { return c.UserID }
func (c *WebSocketClient) GetSendChannel() chan<- models.Event { return c.Send }

// Run starts the read and write pumps.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close shuts the Send channel, which stops the write pump; the read pump
// stops when the connection closes.
func (c *WebSocketClient) Close() {
	close(c.Send)
}

func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.log.Warnw("websocket read failed", "user_id", c.UserID, "err", err)
			}
			break
		}

		var ev models.Event
		if err := json.Unmarshal(data, &ev); err != nil {
			c.Hub.log.Warnw("dropping malformed client event", "user_id", c.UserID, "err", err)
			continue
		}

		switch ev.Event {
		case models.EventJoinChat:
			if ev.ChatID != "" {
				c.Hub.JoinCh <- JoinRequest{ChatID: ev.ChatID, Client: c}
			}
		case models.EventSendMessage:
			if ev.ChatID == "" || ev.Message == nil {
				continue
			}
			// The socket's authenticated identity wins over whatever the
			// client echoed into the payload.
			ev.Message.SenderID = c.UserID
			ev.Message.ChatID = ev.ChatID
			if ev.Message.CreatedAt.IsZero() {
				ev.Message.CreatedAt = time.Now()
			}
			c.Hub.IncomingCh <- ev
		default:
			// typing indicators and the like are not required for
			// correctness; ignore them
		}
	}
}

func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(ev)
			if err != nil {
				c.Hub.log.Warnw("failed to encode event", "user_id", c.UserID, "err", err)
				continue
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
