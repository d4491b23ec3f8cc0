package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/app/models/dto"
)

// DefaultHandlerTimeout bounds the service calls made for one event.
const DefaultHandlerTimeout = 5 * time.Second

// PresenceUpdater records whether a user is online.
type PresenceUpdater interface {
	SetPresence(ctx context.Context, email string, online bool) error
}

// MessageSender stores a message and delivers it to the receiver's live session.
type MessageSender interface {
	SendMessage(ctx context.Context, sender, receiver, text string) (*models.Message, error)
}

// Gateway turns transport events into hub updates and service calls.
type Gateway struct {
	hub      *Hub
	presence PresenceUpdater
	messages MessageSender
	validate *validator.Validate
	timeout  time.Duration
	logger   zerolog.Logger
}

// NewGateway creates a Gateway over hub.
func NewGateway(hub *Hub, presence PresenceUpdater, messages MessageSender, logger zerolog.Logger) *Gateway {
	return &Gateway{
		hub:      hub,
		presence: presence,
		messages: messages,
		validate: validator.New(),
		timeout:  DefaultHandlerTimeout,
		logger:   logger.With().Str("component", "realtime_gateway").Logger(),
	}
}

// Hub returns the hub the gateway updates.
func (g *Gateway) Hub() *Hub {
	return g.hub
}

func (g *Gateway) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), g.timeout)
}

// Connect registers a new session.
func (g *Gateway) Connect(s Session) {
	g.hub.Add(s)
	g.logger.Info().Str("sessionID", s.ID()).Msg("Client connected")
}

// UserConnected identifies the session as email, marks the user online and
// tells every other session.
func (g *Gateway) UserConnected(s Session, email string) {
	email = strings.TrimSpace(email)
	if email == "" {
		g.logger.Warn().Str("sessionID", s.ID()).Msg("Ignoring user-connected without email")
		return
	}

	if displaced := g.hub.Identify(s.ID(), email); displaced != "" {
		g.logger.Debug().Str("email", email).Str("displaced", displaced).Msg("Newer session replaces older one")
	}

	ctx, cancel := g.context()
	defer cancel()
	if err := g.presence.SetPresence(ctx, email, true); err != nil {
		g.logger.Error().Err(err).Str("email", email).Msg("Failed to mark user online")
	}

	g.hub.BroadcastExcept(s.ID(), EventUserOnline, email)
	g.logger.Info().Str("sessionID", s.ID()).Str("email", email).Msg("User online")
}

// SendMessage stores and delivers a message sent over the live channel, then
// confirms to the sender with message-sent. Any failure is reported to the
// sender alone as message-error.
func (g *Gateway) SendMessage(s Session, payload SendMessagePayload) {
	payload.Sender = strings.TrimSpace(payload.Sender)
	if payload.Sender == "" {
		payload.Sender, _ = g.hub.EmailOf(s.ID())
	}

	if err := g.validate.Struct(payload); err != nil || payload.Sender == "" {
		g.logger.Warn().Err(err).Str("sessionID", s.ID()).Msg("Rejected send-message payload")
		g.emit(s, EventMessageError, sendFailed)
		return
	}

	ctx, cancel := g.context()
	defer cancel()

	message, err := g.messages.SendMessage(ctx, payload.Sender, payload.Receiver, payload.Message)
	if err != nil {
		g.logger.Error().Err(err).Str("sender", payload.Sender).Str("receiver", payload.Receiver).Msg("Failed to send message")
		g.emit(s, EventMessageError, sendFailed)
		return
	}

	g.emit(s, EventMessageSent, dto.ToMessageEvent(message))
}

// Disconnect forgets the session. If it was still the user's current session
// the user is marked offline and every other session is told.
func (g *Gateway) Disconnect(sessionID string) {
	email, wasMapped := g.hub.Remove(sessionID)
	if !wasMapped {
		g.logger.Debug().Str("sessionID", sessionID).Str("email", email).Msg("Client disconnected")
		return
	}

	ctx, cancel := g.context()
	defer cancel()
	if err := g.presence.SetPresence(ctx, email, false); err != nil {
		g.logger.Error().Err(err).Str("email", email).Msg("Failed to mark user offline")
	}

	g.hub.BroadcastExcept(sessionID, EventUserOffline, email)
	g.logger.Info().Str("sessionID", sessionID).Str("email", email).Msg("User offline")
}

// errUnknownEvent is returned by HandleEvent for event names the gateway does not handle.
var errUnknownEvent = errors.New("unknown event")

// HandleEvent dispatches a raw JSON event from a transport that has no
// per-event handlers of its own.
func (g *Gateway) HandleEvent(s Session, event string, data json.RawMessage) error {
	switch event {
	case EventUserConnected:
		email, err := decodeEmail(data)
		if err != nil {
			return err
		}
		g.UserConnected(s, email)
	case EventSendMessage:
		var payload SendMessagePayload
		if err := json.Unmarshal(data, &payload); err != nil {
			g.emit(s, EventMessageError, sendFailed)
			return err
		}
		g.SendMessage(s, payload)
	default:
		return errUnknownEvent
	}
	return nil
}

// decodeEmail accepts either a bare JSON string or {"email": "..."}.
func decodeEmail(data json.RawMessage) (string, error) {
	var email string
	if err := json.Unmarshal(data, &email); err == nil {
		return email, nil
	}

	var wrapped struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return "", err
	}
	return wrapped.Email, nil
}

func (g *Gateway) emit(s Session, event string, payload interface{}) {
	if err := s.Emit(event, payload); err != nil {
		g.logger.Warn().Err(err).Str("sessionID", s.ID()).Str("event", event).Msg("Emit failed")
	}
}
