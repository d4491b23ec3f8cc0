package socketio

import (
	"net/http"

	"github.com/gin-gonic/gin"
	socketio "github.com/googollee/go-socket.io"
	"github.com/googollee/go-socket.io/engineio"
	"github.com/googollee/go-socket.io/engineio/transport"
	"github.com/googollee/go-socket.io/engineio/transport/polling"
	"github.com/googollee/go-socket.io/engineio/transport/websocket"
	"github.com/rs/zerolog"
	"github.com/yigit/campuslink/internal/pkg/realtime"
)

const namespace = "/"

// session adapts a socket.io connection to realtime.Session.
type session struct {
	conn socketio.Conn
}

func (s session) ID() string {
	return s.conn.ID()
}

func (s session) Emit(event string, payload interface{}) error {
	s.conn.Emit(event, payload)
	return nil
}

// Server exposes the realtime gateway to socket.io clients.
type Server struct {
	io      *socketio.Server
	gateway *realtime.Gateway
	logger  zerolog.Logger
}

// NewServer registers the gateway's events on a new socket.io server.
// checkOrigin is applied to both the polling and websocket transports.
func NewServer(gateway *realtime.Gateway, checkOrigin func(r *http.Request) bool, logger zerolog.Logger) *Server {
	io := socketio.NewServer(&engineio.Options{
		Transports: []transport.Transport{
			&polling.Transport{CheckOrigin: checkOrigin},
			&websocket.Transport{CheckOrigin: checkOrigin},
		},
	})

	s := &Server{
		io:      io,
		gateway: gateway,
		logger:  logger.With().Str("component", "socketio").Logger(),
	}
	s.registerHandlers()
	return s
}

func (s *Server) registerHandlers() {
	s.io.OnConnect(namespace, func(conn socketio.Conn) error {
		conn.SetContext("")
		s.gateway.Connect(session{conn: conn})
		return nil
	})

	s.io.OnEvent(namespace, realtime.EventUserConnected, func(conn socketio.Conn, email string) {
		conn.SetContext(email)
		s.gateway.UserConnected(session{conn: conn}, email)
	})

	s.io.OnEvent(namespace, realtime.EventSendMessage, func(conn socketio.Conn, payload realtime.SendMessagePayload) {
		s.gateway.SendMessage(session{conn: conn}, payload)
	})

	s.io.OnError(namespace, func(conn socketio.Conn, err error) {
		if conn == nil {
			s.logger.Warn().Err(err).Msg("Socket.io error")
			return
		}
		s.logger.Warn().Err(err).Str("sessionID", conn.ID()).Msg("Socket.io error")
	})

	s.io.OnDisconnect(namespace, func(conn socketio.Conn, reason string) {
		s.logger.Debug().Str("sessionID", conn.ID()).Str("reason", reason).Msg("Socket.io disconnect")
		s.gateway.Disconnect(conn.ID())
	})
}

// Start runs the socket.io event loop in the background.
func (s *Server) Start() {
	go func() {
		if err := s.io.Serve(); err != nil {
			s.logger.Error().Err(err).Msg("Socket.io server stopped")
		}
	}()
	s.logger.Info().Msg("Socket.io server started")
}

// Close stops the socket.io server and drops every connection.
func (s *Server) Close() error {
	return s.io.Close()
}

// Handler returns the gin handler for the /socket.io/ routes.
func (s *Server) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.io.ServeHTTP(c.Writer, c.Request)
	}
}

// Register mounts the socket.io endpoints on router.
func (s *Server) Register(router gin.IRoutes) {
	router.GET("/socket.io/*any", s.Handler())
	router.POST("/socket.io/*any", s.Handler())
}
