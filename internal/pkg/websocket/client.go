package websocket

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/yigit/campuslink/internal/pkg/realtime"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 64 * 1024

	// Outbound frames buffered per client before new ones are dropped
	sendBufferSize = 256
)

var (
	// ErrClientClosed is returned by Emit after the connection has gone away.
	ErrClientClosed = errors.New("websocket client closed")
	// ErrSendBufferFull is returned by Emit when the client is not keeping up.
	ErrSendBufferFull = errors.New("websocket send buffer full")
)

// Envelope is the JSON frame exchanged in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outbound struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Client is a middleman between the websocket connection and the gateway.
// It implements realtime.Session.
type Client struct {
	id      string
	conn    *websocket.Conn
	gateway *realtime.Gateway

	// Buffered channel of outbound frames. Never closed; done signals shutdown.
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once

	logger zerolog.Logger
}

func newClient(id string, conn *websocket.Conn, gateway *realtime.Gateway, logger zerolog.Logger) *Client {
	return &Client{
		id:      id,
		conn:    conn,
		gateway: gateway,
		send:    make(chan []byte, sendBufferSize),
		done:    make(chan struct{}),
		logger:  logger.With().Str("sessionID", id).Logger(),
	}
}

// ID implements realtime.Session.
func (c *Client) ID() string {
	return c.id
}

// Emit implements realtime.Session. It never blocks: if the buffer is full the
// frame is dropped.
func (c *Client) Emit(event string, payload interface{}) error {
	frame, err := json.Marshal(outbound{Event: event, Data: payload})
	if err != nil {
		return err
	}

	select {
	case <-c.done:
		return ErrClientClosed
	default:
	}

	select {
	case c.send <- frame:
		return nil
	case <-c.done:
		return ErrClientClosed
	default:
		c.logger.Warn().Str("event", event).Msg("Send buffer full, dropping frame")
		return ErrSendBufferFull
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// readPump pumps frames from the websocket connection to the gateway
func (c *Client) readPump() {
	defer func() {
		c.close()
		c.gateway.Disconnect(c.id)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Info().Msg("WebSocket closed normally")
			} else if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn().Err(err).Msg("Unexpected WebSocket close")
			} else {
				c.logger.Debug().Err(err).Msg("WebSocket read error")
			}
			break
		}

		var env Envelope
		if err := json.Unmarshal(frame, &env); err != nil {
			c.logger.Error().Err(err).Str("frame", string(frame)).Msg("Failed to unmarshal client frame")
			continue
		}

		if err := c.gateway.HandleEvent(c, env.Event, env.Data); err != nil {
			c.logger.Debug().Err(err).Str("event", env.Event).Msg("Event not handled")
		}
	}
}

// writePump pumps frames from the send buffer to the websocket connection.
// Each frame is written as its own text message.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.close()
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
