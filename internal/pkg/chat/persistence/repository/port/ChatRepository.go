package repository

import (
	"context"

	chat "github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/domain"
)

// ChatRepository defines persistence operations for the chat domain.
// Implementations must surface the domain sentinels (chat.ErrNotFound,
// chat.ErrConflict, ...) so usecases can branch without knowing the backend.
type ChatRepository interface {
	// CreateConversation persists a conversation of the given type with no
	// participants attached and returns it with id and creation timestamp set.
	CreateConversation(ctx context.Context, t chat.ConversationType) (*chat.Conversation, error)

	// GetConversation loads a conversation with its participants preloaded.
	// Returns chat.ErrConversationNotFound when the id is unknown.
	GetConversation(ctx context.Context, id int64) (*chat.Conversation, error)

	// FindPrivateBetween returns the unique PRIVATE conversation containing
	// both user ids, or nil when none exists.
	FindPrivateBetween(ctx context.Context, userA, userB string) (*chat.Conversation, error)

	// CreatePrivateConversation creates a PRIVATE conversation plus one
	// participant row per user in a single atomic unit. A conversation
	// without both participants must never be observable.
	CreatePrivateConversation(ctx context.Context, userA, userB string) (*chat.Conversation, error)

	// AddParticipant inserts a membership row. Returns
	// chat.ErrDuplicateParticipant when the (conversation, participant) pair
	// already exists and chat.ErrConversationNotFound on an unknown
	// conversation.
	AddParticipant(ctx context.Context, conversationID int64, participantID string) (*chat.Participant, error)

	// ListParticipants returns all membership rows of a conversation.
	ListParticipants(ctx context.Context, conversationID int64) ([]chat.Participant, error)

	// ListConversationsForUser returns every conversation the user belongs
	// to, participants preloaded for enrichment.
	ListConversationsForUser(ctx context.Context, userID string) ([]chat.Conversation, error)

	// SaveMessage appends a message to the conversation log and returns it
	// with the store-assigned monotonic id.
	SaveMessage(ctx context.Context, m chat.Message) (*chat.Message, error)

	// GetMessage returns chat.ErrMessageNotFound when the id is unknown.
	GetMessage(ctx context.Context, id int64) (*chat.Message, error)

	// UpdateMessageStatus overwrites the status unconditionally and returns
	// the updated message. Returns chat.ErrMessageNotFound on unknown ids.
	UpdateMessageStatus(ctx context.Context, id int64, status chat.MessageStatus) (*chat.Message, error)

	// ListMessages is the offset read path: page 0 is the oldest page,
	// rows ordered ascending by sent_at.
	ListMessages(ctx context.Context, conversationID int64, page, size int) ([]chat.Message, error)

	// ListMessagesBefore is the cursor read path. Retrieval is descending by
	// id: with a nil cursor it returns the limit most recent messages, with
	// a cursor it returns up to limit messages with id strictly below it.
	// Callers re-sort ascending before delivery.
	ListMessagesBefore(ctx context.Context, conversationID int64, cursor *int64, limit int) ([]chat.Message, error)

	// FindLatestMessage returns the most recent message of a conversation,
	// or nil when the log is empty.
	FindLatestMessage(ctx context.Context, conversationID int64) (*chat.Message, error)
}
