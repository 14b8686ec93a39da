// Package view holds the transport-facing shapes shared by the REST
// handlers and the realtime fan-out. Requests and responses carry named,
// typed fields; no loosely-typed maps cross the API boundary.
package view

import (
	"time"

	chat "github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/domain"
)

// Message is the wire shape of a persisted message.
type Message struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Content        *string   `json:"content,omitempty"`
	MediaURL       *string   `json:"media_url,omitempty"`
	SentAt         time.Time `json:"sent_at"`
	Status         string    `json:"status"`
}

// MessageFrom maps a domain message to its wire shape.
func MessageFrom(m chat.Message) Message {
	return Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		MediaURL:       m.MediaURL,
		SentAt:         m.SentAt,
		Status:         string(m.Status),
	}
}

// MessagesFrom maps a slice of domain messages, preserving order.
func MessagesFrom(msgs []chat.Message) []Message {
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, MessageFrom(m))
	}
	return out
}

// Participant is a conversation member enriched with display info.
type Participant struct {
	ParticipantID string `json:"participant_id"`
	Name          string `json:"name"`
	AvatarURL     string `json:"avatar_url,omitempty"`
}

// Conversation is the inbox-facing view of a conversation.
// UnreadCount is declared but not yet tracked; it is always 0.
type Conversation struct {
	ID                   int64         `json:"id"`
	Type                 string        `json:"type"`
	CreatedAt            time.Time     `json:"created_at"`
	Participants         []Participant `json:"participants"`
	LastMessage          *Message      `json:"last_message,omitempty"`
	UnreadCount          int           `json:"unread_count"`
	OtherParticipantID   string        `json:"other_participant_id,omitempty"`
	OtherParticipantName string        `json:"other_participant_name,omitempty"`
}

// StatusUpdate is the event pushed on the status channel.
type StatusUpdate struct {
	MessageID      int64  `json:"message_id"`
	ConversationID int64  `json:"conversation_id"`
	Status         string `json:"status"`
}

// Typing is the event pushed on the typing channel.
type Typing struct {
	SenderID       string `json:"sender_id"`
	ConversationID int64  `json:"conversation_id"`
	Typing         bool   `json:"typing"`
}
