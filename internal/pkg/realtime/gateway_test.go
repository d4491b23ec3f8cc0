package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/app/models/dto"
)

type mockPresence struct {
	mock.Mock
}

func (m *mockPresence) SetPresence(ctx context.Context, email string, online bool) error {
	args := m.Called(email, online)
	return args.Error(0)
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendMessage(ctx context.Context, sender, receiver, text string) (*models.Message, error) {
	if _, ok := ctx.Deadline(); !ok {
		panic("gateway must bound service calls with a deadline")
	}
	args := m.Called(sender, receiver, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func newTestGateway() (*Gateway, *mockPresence, *mockSender) {
	presence := new(mockPresence)
	sender := new(mockSender)
	return NewGateway(NewHub(zerolog.Nop()), presence, sender, zerolog.Nop()), presence, sender
}

func TestUserConnectedMarksOnlineAndBroadcasts(t *testing.T) {
	g, presence, _ := newTestGateway()
	me, other := newFakeSession("me"), newFakeSession("other")
	g.Connect(me)
	g.Connect(other)

	presence.On("SetPresence", "a@x", true).Return(nil)
	g.UserConnected(me, "a@x")

	presence.AssertExpectations(t)
	assert.Empty(t, me.Events())
	assert.Equal(t, []emitted{{Event: EventUserOnline, Payload: "a@x"}}, other.Events())
	_, ok := g.Hub().Lookup("a@x")
	assert.True(t, ok)
}

func TestDisconnectMarksOfflineOnlyForCurrentSession(t *testing.T) {
	g, presence, _ := newTestGateway()
	old, current, watcher := newFakeSession("old"), newFakeSession("current"), newFakeSession("watcher")
	g.Connect(old)
	g.Connect(current)
	g.Connect(watcher)

	presence.On("SetPresence", "a@x", true).Return(nil)
	g.UserConnected(old, "a@x")
	g.UserConnected(current, "a@x")

	g.Disconnect("old")
	presence.AssertNotCalled(t, "SetPresence", "a@x", false)

	presence.On("SetPresence", "a@x", false).Return(nil)
	g.Disconnect("current")
	presence.AssertCalled(t, "SetPresence", "a@x", false)

	events := watcher.Events()
	require.NotEmpty(t, events)
	assert.Equal(t, emitted{Event: EventUserOffline, Payload: "a@x"}, events[len(events)-1])
}

func TestDisconnectAnonymousSessionIsQuiet(t *testing.T) {
	g, presence, _ := newTestGateway()
	anon, watcher := newFakeSession("anon"), newFakeSession("watcher")
	g.Connect(anon)
	g.Connect(watcher)

	g.Disconnect("anon")

	presence.AssertNotCalled(t, "SetPresence", mock.Anything, mock.Anything)
	assert.Empty(t, watcher.Events())
}

func TestSendMessageConfirmsToSender(t *testing.T) {
	g, _, sender := newTestGateway()
	s := newFakeSession("s1")
	g.Connect(s)
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	sender.On("SendMessage", "a@x", "b@x", "hi").Return(&models.Message{
		ID: 1, Sender: "a@x", Receiver: "b@x", Message: "hi", Timestamp: at,
	}, nil)

	g.SendMessage(s, SendMessagePayload{Sender: "a@x", Receiver: "b@x", Message: "hi"})

	assert.Equal(t, []emitted{{
		Event:   EventMessageSent,
		Payload: dto.MessageEvent{Sender: "a@x", Receiver: "b@x", Message: "hi", Timestamp: at},
	}}, s.Events())
}

func TestSendMessageFallsBackToSessionIdentity(t *testing.T) {
	g, presence, sender := newTestGateway()
	s := newFakeSession("s1")
	g.Connect(s)
	presence.On("SetPresence", "a@x", true).Return(nil)
	g.UserConnected(s, "a@x")

	sender.On("SendMessage", "a@x", "b@x", "hi").Return(&models.Message{Sender: "a@x", Receiver: "b@x", Message: "hi"}, nil)
	g.SendMessage(s, SendMessagePayload{Receiver: "b@x", Message: "hi"})

	sender.AssertExpectations(t)
}

func TestSendMessageFailureGoesOnlyToSender(t *testing.T) {
	g, _, sender := newTestGateway()
	s, other := newFakeSession("s1"), newFakeSession("s2")
	g.Connect(s)
	g.Connect(other)

	sender.On("SendMessage", "a@x", "b@x", "hi").Return(nil, errors.New("db down"))
	g.SendMessage(s, SendMessagePayload{Sender: "a@x", Receiver: "b@x", Message: "hi"})

	assert.Equal(t, []emitted{{Event: EventMessageError, Payload: ErrorPayload{Error: "Failed to send message"}}}, s.Events())
	assert.Empty(t, other.Events())
}

func TestSendMessageInvalidPayload(t *testing.T) {
	g, _, sender := newTestGateway()
	s := newFakeSession("s1")
	g.Connect(s)

	g.SendMessage(s, SendMessagePayload{Sender: "a@x", Message: "hi"})

	sender.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, EventMessageError, s.Events()[0].Event)
}

func TestHandleEventDispatch(t *testing.T) {
	g, presence, _ := newTestGateway()
	s := newFakeSession("s1")
	g.Connect(s)
	presence.On("SetPresence", "a@x", true).Return(nil).Twice()

	require.NoError(t, g.HandleEvent(s, EventUserConnected, json.RawMessage(`"a@x"`)))
	require.NoError(t, g.HandleEvent(s, EventUserConnected, json.RawMessage(`{"email":"a@x"}`)))
	assert.ErrorIs(t, g.HandleEvent(s, "dance", json.RawMessage(`{}`)), errUnknownEvent)

	assert.Error(t, g.HandleEvent(s, EventSendMessage, json.RawMessage(`[1,2]`)))
	assert.Equal(t, EventMessageError, s.Events()[0].Event)
	presence.AssertExpectations(t)
}
