package usecase

import (
	"context"
	"fmt"

	chat "github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/domain"
	repository "github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/persistence/repository/port"
)

// StartPrivateConversationInput identifies the requester and the peer.
type StartPrivateConversationInput struct {
	RequesterID string
	PeerID      string
}

// StartPrivateConversationUseCase returns the existing PRIVATE conversation
// between the pair, or creates one when none exists. The operation is
// idempotent per unordered pair and gated on an established connection.
type StartPrivateConversationUseCase struct {
	Repo repository.ChatRepository
	Gate *AuthorizationGate
}

func NewStartPrivateConversationUseCase(repo repository.ChatRepository, gate *AuthorizationGate) *StartPrivateConversationUseCase {
	return &StartPrivateConversationUseCase{Repo: repo, Gate: gate}
}

func (uc *StartPrivateConversationUseCase) Execute(ctx context.Context, in StartPrivateConversationInput) (*chat.Conversation, error) {
	if in.RequesterID == "" || in.PeerID == "" {
		return nil, fmt.Errorf("%w: requester and peer ids are required", chat.ErrInvalidArgument)
	}
	if in.RequesterID == in.PeerID {
		return nil, fmt.Errorf("%w: cannot start a conversation with yourself", chat.ErrInvalidArgument)
	}

	if err := uc.Gate.CanStartPrivateConversation(ctx, in.RequesterID, in.PeerID); err != nil {
		return nil, err
	}

	existing, err := uc.Repo.FindPrivateBetween(ctx, in.RequesterID, in.PeerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if existing != nil {
		return existing, nil
	}

	conv, err := uc.Repo.CreatePrivateConversation(ctx, in.RequesterID, in.PeerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return conv, nil
}
