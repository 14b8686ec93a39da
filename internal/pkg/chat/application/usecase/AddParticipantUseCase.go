package usecase

import (
	"context"
	"fmt"

	chat "github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/domain"
	repository "github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/persistence/repository/port"
)

// AddParticipantInput attaches a user to an existing conversation.
type AddParticipantInput struct {
	ConversationID int64
	ParticipantID  string
}

// AddParticipantUseCase inserts a membership row. Duplicate membership and
// unknown conversations surface as domain errors from the repository.
type AddParticipantUseCase struct {
	Repo repository.ChatRepository
}

func NewAddParticipantUseCase(repo repository.ChatRepository) *AddParticipantUseCase {
	return &AddParticipantUseCase{Repo: repo}
}

func (uc *AddParticipantUseCase) Execute(ctx context.Context, in AddParticipantInput) (*chat.Participant, error) {
	if in.ConversationID == 0 || in.ParticipantID == "" {
		return nil, fmt.Errorf("%w: conversation id and participant id are required", chat.ErrInvalidArgument)
	}

	p, err := uc.Repo.AddParticipant(ctx, in.ConversationID, in.ParticipantID)
	if err != nil {
		return nil, wrapRepoErr(err)
	}
	return p, nil
}
