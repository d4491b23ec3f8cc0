package realtime

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// Session is one live client connection, whatever the transport.
type Session interface {
	// ID is unique among live sessions.
	ID() string
	// Emit queues a named event for the client. It must not block.
	Emit(event string, payload interface{}) error
}

// Hub tracks live sessions and which user each one identified as.
// A user maps to at most one session; the latest identify wins.
type Hub struct {
	mu sync.RWMutex

	sessions     map[string]Session
	userSessions map[string]string // email -> session ID
	sessionUsers map[string]string // session ID -> email

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		sessions:     make(map[string]Session),
		userSessions: make(map[string]string),
		sessionUsers: make(map[string]string),
		logger:       logger.With().Str("component", "realtime_hub").Logger(),
	}
}

// Add registers a new, not yet identified session.
func (h *Hub) Add(s Session) {
	h.mu.Lock()
	h.sessions[s.ID()] = s
	count := len(h.sessions)
	h.mu.Unlock()

	h.logger.Debug().Str("sessionID", s.ID()).Int("sessions", count).Msg("Session added")
}

// Identify maps email to the session, replacing any earlier mapping for that email.
// It returns the ID of the session that was displaced, if any.
func (h *Hub) Identify(sessionID, email string) (displaced string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// A session re-identifying under another email drops its old mapping.
	if prev, ok := h.sessionUsers[sessionID]; ok && prev != email {
		if h.userSessions[prev] == sessionID {
			delete(h.userSessions, prev)
		}
	}

	if old, ok := h.userSessions[email]; ok && old != sessionID {
		displaced = old
	}

	h.userSessions[email] = sessionID
	h.sessionUsers[sessionID] = email
	return displaced
}

// Remove forgets a session. It returns the email the session identified as, and
// whether that email was still mapped to this session (and is now unmapped).
func (h *Hub) Remove(sessionID string) (email string, wasMapped bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.sessions, sessionID)

	email, identified := h.sessionUsers[sessionID]
	if !identified {
		return "", false
	}
	delete(h.sessionUsers, sessionID)

	if h.userSessions[email] == sessionID {
		delete(h.userSessions, email)
		return email, true
	}
	return email, false
}

// Lookup returns the live session mapped to email.
func (h *Hub) Lookup(email string) (Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	id, ok := h.userSessions[email]
	if !ok {
		return nil, false
	}
	s, ok := h.sessions[id]
	return s, ok
}

// EmailOf returns the email a session identified as.
func (h *Hub) EmailOf(sessionID string) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	email, ok := h.sessionUsers[sessionID]
	return email, ok
}

// SendToUser emits an event to the user's session. It reports whether the user had one.
func (h *Hub) SendToUser(email, event string, payload interface{}) bool {
	s, ok := h.Lookup(email)
	if !ok {
		return false
	}

	if err := s.Emit(event, payload); err != nil {
		h.logger.Warn().Err(err).Str("email", email).Str("event", event).Msg("Failed to emit to user")
	}
	return true
}

// BroadcastExcept emits an event to every live session other than exceptID.
func (h *Hub) BroadcastExcept(exceptID, event string, payload interface{}) {
	h.mu.RLock()
	targets := make([]Session, 0, len(h.sessions))
	for id, s := range h.sessions {
		if id != exceptID {
			targets = append(targets, s)
		}
	}
	h.mu.RUnlock()

	for _, s := range targets {
		if err := s.Emit(event, payload); err != nil {
			h.logger.Warn().Err(err).Str("sessionID", s.ID()).Str("event", event).Msg("Broadcast emit failed")
		}
	}
}

// OnlineUsers returns the identified emails, sorted.
func (h *Hub) OnlineUsers() []string {
	h.mu.RLock()
	users := make([]string, 0, len(h.userSessions))
	for email := range h.userSessions {
		users = append(users, email)
	}
	h.mu.RUnlock()

	sort.Strings(users)
	return users
}

// SessionCount returns the number of live sessions.
func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}
