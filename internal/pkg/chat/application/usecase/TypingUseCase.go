package usecase

import (
	"context"
	"fmt"

	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/dispatch"
	chat "github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/domain"
	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/view"
	repository "github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/persistence/repository/port"
)

// TypingUseCase relays an ephemeral typing signal to every participant of
// the conversation except the signaler. Signals from non-participants are
// dropped silently; typing is not worth an error round trip.
type TypingUseCase struct {
	Repo       repository.ChatRepository
	Dispatcher dispatch.Dispatcher
}

func NewTypingUseCase(repo repository.ChatRepository, d dispatch.Dispatcher) *TypingUseCase {
	return &TypingUseCase{Repo: repo, Dispatcher: d}
}

func (uc *TypingUseCase) Execute(ctx context.Context, in chat.TypingSignal) error {
	if in.ConversationID == 0 || in.SenderID == "" {
		return fmt.Errorf("%w: conversation id and sender id are required", chat.ErrInvalidArgument)
	}

	conv, err := uc.Repo.GetConversation(ctx, in.ConversationID)
	if err != nil {
		return wrapRepoErr(err)
	}
	if !conv.HasParticipant(in.SenderID) {
		return nil
	}

	if uc.Dispatcher != nil {
		uc.Dispatcher.Typing(conv.ParticipantIDs(), view.Typing{
			SenderID:       in.SenderID,
			ConversationID: in.ConversationID,
			Typing:         in.Typing,
		})
	}
	return nil
}
