package realtime

// Event names shared by every transport.
const (
	EventUserConnected  = "user-connected"
	EventUserOnline     = "user-online"
	EventUserOffline    = "user-offline"
	EventSendMessage    = "send-message"
	EventReceiveMessage = "receive-message"
	EventMessageSent    = "message-sent"
	EventMessageError   = "message-error"
)

// SendMessagePayload is the body of a send-message event.
type SendMessagePayload struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver" validate:"required"`
	Message  string `json:"message" validate:"required"`
}

// ErrorPayload is the body of a message-error event.
type ErrorPayload struct {
	Error string `json:"error"`
}

// sendFailed is the only error text clients ever see for send-message.
var sendFailed = ErrorPayload{Error: "Failed to send message"}
