package chat

import (
	"fmt"
	"strings"
	"time"
)

// ConversationType discriminates 1:1 threads from group threads.
type ConversationType string

const (
	ConversationTypePrivate ConversationType = "PRIVATE"
	ConversationTypeGroup   ConversationType = "GROUP"
)

// ParseConversationType normalizes and validates a raw type string.
func ParseConversationType(s string) (ConversationType, error) {
	switch ConversationType(strings.ToUpper(strings.TrimSpace(s))) {
	case ConversationTypePrivate:
		return ConversationTypePrivate, nil
	case ConversationTypeGroup:
		return ConversationTypeGroup, nil
	default:
		return "", fmt.Errorf("%w: unknown conversation type %q", ErrInvalidArgument, s)
	}
}

// Conversation is a named channel owning a participant set and an
// append-only message log. A PRIVATE conversation has exactly two
// participants and at most one may exist per unordered user pair.
type Conversation struct {
	ID           int64
	Type         ConversationType
	CreatedAt    time.Time
	Participants []Participant
}

// HasParticipant tells whether userID belongs to this conversation.
func (c *Conversation) HasParticipant(userID string) bool {
	if c == nil {
		return false
	}
	for _, p := range c.Participants {
		if p.ParticipantID == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the sole remaining participant id relative to
// userID. Only meaningful for PRIVATE conversations; the second return is
// false when no other participant exists.
func (c *Conversation) OtherParticipant(userID string) (string, bool) {
	if c == nil {
		return "", false
	}
	for _, p := range c.Participants {
		if p.ParticipantID != userID {
			return p.ParticipantID, true
		}
	}
	return "", false
}

// ParticipantIDs returns the external user ids of all participants.
func (c *Conversation) ParticipantIDs() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, 0, len(c.Participants))
	for _, p := range c.Participants {
		ids = append(ids, p.ParticipantID)
	}
	return ids
}
