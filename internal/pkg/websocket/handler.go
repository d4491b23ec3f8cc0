package websocket

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/yigit/campuslink/internal/pkg/realtime"
)

// Handler upgrades HTTP requests to WebSocket sessions on the gateway.
type Handler struct {
	gateway  *realtime.Gateway
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewHandler creates a new WebSocket handler. allowedOrigins may contain "*".
func NewHandler(gateway *realtime.Gateway, allowedOrigins []string, logger zerolog.Logger) *Handler {
	return &Handler{
		gateway: gateway,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     CheckOrigin(allowedOrigins),
		},
		logger: logger.With().Str("component", "websocket").Logger(),
	}
}

// CheckOrigin returns an origin check accepting the listed origins, any origin
// for "*", and requests without an Origin header.
func CheckOrigin(allowedOrigins []string) func(r *http.Request) bool {
	allowAll := slices.Contains(allowedOrigins, "*")
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return allowAll || origin == "" || slices.Contains(allowedOrigins, origin)
	}
}

// HandleConnection upgrades the request and starts the client's pumps.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Str("remoteAddr", c.ClientIP()).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := newClient(uuid.NewString(), conn, h.gateway, h.logger)
	h.gateway.Connect(client)

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Str("sessionID", client.ID()).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
