package dto

import (
	"strings"
	"time"

	"github.com/yigit/campuslink/internal/app/models"
)

// SendMessageRequest is the HTTP send-message body. sender and receiver are
// accepted as aliases of senderEmail and receiverEmail.
type SendMessageRequest struct {
	SenderEmail   string `json:"senderEmail" example:"asha@campus.edu"`
	ReceiverEmail string `json:"receiverEmail" example:"ravi@campus.edu"`
	Sender        string `json:"sender,omitempty"`
	Receiver      string `json:"receiver,omitempty"`
	Message       string `json:"message" example:"hi"`
}

// Parties returns the resolved sender and receiver.
func (r *SendMessageRequest) Parties() (sender, receiver string) {
	return firstNonEmpty(r.SenderEmail, r.Sender), firstNonEmpty(r.ReceiverEmail, r.Receiver)
}

// MarkReadRequest marks every unread message from Sender to Receiver as read.
type MarkReadRequest struct {
	Sender   string `json:"sender" example:"asha@campus.edu"`
	Receiver string `json:"receiver" example:"ravi@campus.edu"`
}

// Trim strips surrounding whitespace from both addresses.
func (r *MarkReadRequest) Trim() {
	r.Sender = strings.TrimSpace(r.Sender)
	r.Receiver = strings.TrimSpace(r.Receiver)
}

// MessageResponse is a stored message as returned by the conversation endpoint.
type MessageResponse struct {
	ID        int64     `json:"id"`
	Sender    string    `json:"sender"`
	Receiver  string    `json:"receiver"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

// NewMessageResponse builds a MessageResponse from a message.
func NewMessageResponse(m *models.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Sender:    m.Sender,
		Receiver:  m.Receiver,
		Message:   m.Message,
		Timestamp: m.Timestamp,
		Read:      m.Read,
	}
}

// MessageEvent is the payload of receive-message and message-sent.
type MessageEvent struct {
	Sender    string    `json:"sender"`
	Receiver  string    `json:"receiver"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ToMessageEvent builds the real-time payload for a stored message.
func ToMessageEvent(m *models.Message) MessageEvent {
	return MessageEvent{
		Sender:    m.Sender,
		Receiver:  m.Receiver,
		Message:   m.Message,
		Timestamp: m.Timestamp,
	}
}

// TotalUnreadResponse is returned by the total-unread endpoint.
type TotalUnreadResponse struct {
	TotalUnread int64 `json:"totalUnread"`
}
