package chat

import (
	"fmt"
	"strings"
	"time"
)

// MessageStatus tracks client-driven delivery state per message.
// SENT is assigned at persistence time; DELIVERED and READ are applied on
// explicit status commands. Transitions are not enforced forward-only.
type MessageStatus string

const (
	StatusSent      MessageStatus = "SENT"
	StatusDelivered MessageStatus = "DELIVERED"
	StatusRead      MessageStatus = "READ"
)

// ParseMessageStatus normalizes and validates a raw status string.
func ParseMessageStatus(s string) (MessageStatus, error) {
	switch MessageStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusSent:
		return StatusSent, nil
	case StatusDelivered:
		return StatusDelivered, nil
	case StatusRead:
		return StatusRead, nil
	default:
		return "", fmt.Errorf("%w: unknown message status %q", ErrInvalidArgument, s)
	}
}

// Message is an immutable log entry in a conversation; only Status mutates
// after creation. The store assigns a monotonically increasing ID at
// persistence time, which doubles as the cursor for history pagination.
type Message struct {
	ID             int64
	ConversationID int64
	SenderID       string
	Content        *string
	MediaURL       *string
	SentAt         time.Time
	Status         MessageStatus
}

// NewMessage validates and normalizes a message prior to persistence.
// Content is trimmed; an all-whitespace content counts as absent. At least
// one of content or media URL must be present.
func NewMessage(m Message) (*Message, error) {
	if m.ConversationID == 0 || m.SenderID == "" {
		return nil, fmt.Errorf("%w: conversation id and sender id are required", ErrInvalidArgument)
	}

	if m.Content != nil {
		trimmed := strings.TrimSpace(*m.Content)
		if trimmed == "" {
			m.Content = nil
		} else {
			m.Content = &trimmed
		}
	}
	if m.MediaURL != nil && strings.TrimSpace(*m.MediaURL) == "" {
		m.MediaURL = nil
	}

	if m.Content == nil && m.MediaURL == nil {
		return nil, ErrEmptyMessage
	}

	if m.SentAt.IsZero() {
		m.SentAt = time.Now().UTC()
	}
	if m.Status == "" {
		m.Status = StatusSent
	}

	return &m, nil
}
