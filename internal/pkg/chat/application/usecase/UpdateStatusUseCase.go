package usecase

import (
	"context"
	"fmt"

	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/dispatch"
	chat "github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/domain"
	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/view"
	repository "github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/persistence/repository/port"
)

// UpdateStatusInput carries a delivery status command from a client.
type UpdateStatusInput struct {
	MessageID int64
	Status    string
}

// UpdateStatusUseCase overwrites a message's delivery status and pushes the
// update to every participant of the message's conversation. The write is a
// plain overwrite: a READ can regress to DELIVERED if commands arrive out
// of order.
type UpdateStatusUseCase struct {
	Repo       repository.ChatRepository
	Dispatcher dispatch.Dispatcher
}

func NewUpdateStatusUseCase(repo repository.ChatRepository, d dispatch.Dispatcher) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{Repo: repo, Dispatcher: d}
}

func (uc *UpdateStatusUseCase) Execute(ctx context.Context, in UpdateStatusInput) (*chat.Message, error) {
	if in.MessageID == 0 {
		return nil, fmt.Errorf("%w: message id is required", chat.ErrInvalidArgument)
	}
	status, err := chat.ParseMessageStatus(in.Status)
	if err != nil {
		return nil, err
	}

	msg, err := uc.Repo.UpdateMessageStatus(ctx, in.MessageID, status)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	if uc.Dispatcher != nil {
		participants, err := uc.Repo.ListParticipants(ctx, msg.ConversationID)
		if err != nil {
			return msg, nil
		}
		ids := make([]string, 0, len(participants))
		for _, p := range participants {
			ids = append(ids, p.ParticipantID)
		}
		uc.Dispatcher.StatusChanged(ids, view.StatusUpdate{
			MessageID:      msg.ID,
			ConversationID: msg.ConversationID,
			Status:         string(msg.Status),
		})
	}
	return msg, nil
}
