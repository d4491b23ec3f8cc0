package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/app/models/dto"
	"github.com/yigit/campuslink/internal/app/repositories"
	"github.com/yigit/campuslink/internal/pkg/apperrors"
	"github.com/yigit/campuslink/internal/pkg/realtime"
)

// Notifier pushes an event to the live session of a user, if there is one.
// It reports whether a session was found.
type Notifier interface {
	SendToUser(email, event string, payload interface{}) bool
}

// MessageService handles direct messages
type MessageService interface {
	SendMessage(ctx context.Context, sender, receiver, text string) (*models.Message, error)
	Conversation(ctx context.Context, userA, userB string) ([]dto.MessageResponse, error)
	UnreadCounts(ctx context.Context, userEmail string) (map[string]int64, error)
	MarkRead(ctx context.Context, req *dto.MarkReadRequest) error
	LastMessageTimes(ctx context.Context, userEmail string) (map[string]time.Time, error)
	TotalUnread(ctx context.Context, userEmail string) (int64, error)
}

type messageServiceImpl struct {
	messageRepo repositories.IMessageRepository
	notifier    Notifier
	logger      zerolog.Logger
}

// NewMessageService creates a new MessageService. notifier may be nil, in which
// case messages are only stored.
func NewMessageService(messageRepo repositories.IMessageRepository, notifier Notifier, logger zerolog.Logger) MessageService {
	return &messageServiceImpl{
		messageRepo: messageRepo,
		notifier:    notifier,
		logger:      logger.With().Str("service", "message").Logger(),
	}
}

// SendMessage stores the message, then pushes receive-message to the receiver's
// live session at most once. Delivery failure is not an error; the receiver
// picks the message up from the conversation endpoint.
func (s *messageServiceImpl) SendMessage(ctx context.Context, sender, receiver, text string) (*models.Message, error) {
	sender = strings.TrimSpace(sender)
	receiver = strings.TrimSpace(receiver)
	if sender == "" || receiver == "" || text == "" {
		return nil, apperrors.ErrMissingFields
	}

	message := &models.Message{Sender: sender, Receiver: receiver, Message: text}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		delivered := s.notifier.SendToUser(receiver, realtime.EventReceiveMessage, dto.ToMessageEvent(message))
		s.logger.Debug().
			Int64("messageID", message.ID).
			Str("receiver", receiver).
			Bool("live", delivered).
			Msg("Message stored")
	}

	return message, nil
}

func (s *messageServiceImpl) Conversation(ctx context.Context, userA, userB string) ([]dto.MessageResponse, error) {
	messages, err := s.messageRepo.Conversation(ctx, userA, userB)
	if err != nil {
		return nil, err
	}

	out := make([]dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, dto.NewMessageResponse(m))
	}
	return out, nil
}

func (s *messageServiceImpl) UnreadCounts(ctx context.Context, userEmail string) (map[string]int64, error) {
	counts, err := s.messageRepo.UnreadCounts(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(counts))
	for _, c := range counts {
		out[c.Sender] = c.Count
	}
	return out, nil
}

// MarkRead marks every unread sender→receiver message read. Repeating it is harmless.
func (s *messageServiceImpl) MarkRead(ctx context.Context, req *dto.MarkReadRequest) error {
	req.Trim()
	if req.Sender == "" || req.Receiver == "" {
		return apperrors.ErrMissingFields
	}

	n, err := s.messageRepo.MarkRead(ctx, req.Sender, req.Receiver)
	if err != nil {
		return err
	}

	s.logger.Debug().Str("sender", req.Sender).Str("receiver", req.Receiver).Int64("updated", n).Msg("Messages marked read")
	return nil
}

func (s *messageServiceImpl) LastMessageTimes(ctx context.Context, userEmail string) (map[string]time.Time, error) {
	activity, err := s.messageRepo.LastMessageTimes(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	out := make(map[string]time.Time, len(activity))
	for _, a := range activity {
		out[a.Peer] = a.LastMessageTime
	}
	return out, nil
}

func (s *messageServiceImpl) TotalUnread(ctx context.Context, userEmail string) (int64, error) {
	return s.messageRepo.TotalUnread(ctx, userEmail)
}
