package usecase

import (
	"context"
	"fmt"

	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/dispatch"
	chat "github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/domain"
	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/view"
	repository "github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/persistence/repository/port"
)

// SendMessageInput carries the data needed to send a new message.
// Content/media validation and defaults are handled via chat.NewMessage to
// preserve domain integrity.
type SendMessageInput struct {
	ConversationID int64
	SenderID       string
	Content        *string
	MediaURL       *string
}

// SendMessageUseCase persists a new message and fans it out to every
// participant of the conversation, the sender included. The validation
// chain runs in a fixed order: payload validation, conversation
// existence, sender membership, then the connection gate for PRIVATE
// threads. An empty payload fails before any lookup.
type SendMessageUseCase struct {
	Repo       repository.ChatRepository
	Gate       *AuthorizationGate
	Dispatcher dispatch.Dispatcher
}

func NewSendMessageUseCase(repo repository.ChatRepository, gate *AuthorizationGate, d dispatch.Dispatcher) *SendMessageUseCase {
	return &SendMessageUseCase{Repo: repo, Gate: gate, Dispatcher: d}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*chat.Message, error) {
	if in.ConversationID == 0 || in.SenderID == "" {
		return nil, fmt.Errorf("%w: conversation id and sender id are required", chat.ErrInvalidArgument)
	}

	msg, err := chat.NewMessage(chat.Message{
		ConversationID: in.ConversationID,
		SenderID:       in.SenderID,
		Content:        in.Content,
		MediaURL:       in.MediaURL,
	})
	if err != nil {
		return nil, err
	}

	conv, err := uc.Repo.GetConversation(ctx, in.ConversationID)
	if err != nil {
		return nil, wrapRepoErr(err)
	}
	if !conv.HasParticipant(in.SenderID) {
		return nil, chat.ErrNotParticipant
	}

	if err := uc.Gate.CanSend(ctx, conv, in.SenderID); err != nil {
		return nil, err
	}

	saved, err := uc.Repo.SaveMessage(ctx, *msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if uc.Dispatcher != nil {
		uc.Dispatcher.MessageCreated(conv.ParticipantIDs(), view.MessageFrom(*saved))
	}
	return saved, nil
}
