package models

import "time"

// Message is a direct message between two users, identified by email.
// Sender and receiver are not required to match existing users.
type Message struct {
	ID        int64     `json:"id" db:"id"`
	Sender    string    `json:"sender" db:"sender"`
	Receiver  string    `json:"receiver" db:"receiver"`
	Message   string    `json:"message" db:"message"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	Read      bool      `json:"read" db:"read"`
}

// UnreadCount is the number of unread messages from one sender.
type UnreadCount struct {
	Sender string
	Count  int64
}

// PeerActivity is the time of the latest message exchanged with one peer.
type PeerActivity struct {
	Peer            string
	LastMessageTime time.Time
}
