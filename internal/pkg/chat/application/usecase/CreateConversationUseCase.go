package usecase

import (
	"context"
	"fmt"

	chat "github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/domain"
	repository "github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/persistence/repository/port"
)

// CreateConversationInput carries the raw conversation type string from
// transport; parsing happens here so controllers stay thin.
type CreateConversationInput struct {
	Type string
}

// CreateConversationUseCase creates an empty conversation of the requested
// type. Participants join through AddParticipantUseCase afterwards. Private
// pairs should prefer StartPrivateConversationUseCase, which is idempotent
// and connection-gated.
type CreateConversationUseCase struct {
	Repo repository.ChatRepository
}

func NewCreateConversationUseCase(repo repository.ChatRepository) *CreateConversationUseCase {
	return &CreateConversationUseCase{Repo: repo}
}

func (uc *CreateConversationUseCase) Execute(ctx context.Context, in CreateConversationInput) (*chat.Conversation, error) {
	t, err := chat.ParseConversationType(in.Type)
	if err != nil {
		return nil, err
	}

	conv, err := uc.Repo.CreateConversation(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return conv, nil
}
