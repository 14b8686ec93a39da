package usecase

import (
	"context"
	"fmt"

	collabport "github.com/vidhika-anjne/Alumini-Platform/internal/collaborator/port"
	chat "github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/domain"
)

// AuthorizationGate centralizes the connection requirement for private
// messaging. GROUP conversations are exempt; PRIVATE conversations demand
// an established connection between the two users at the time of the action.
type AuthorizationGate struct {
	Connections collabport.ConnectionChecker
}

func NewAuthorizationGate(connections collabport.ConnectionChecker) *AuthorizationGate {
	return &AuthorizationGate{Connections: connections}
}

// CanStartPrivateConversation returns chat.ErrNotConnected when the pair is
// not connected.
func (g *AuthorizationGate) CanStartPrivateConversation(ctx context.Context, userA, userB string) error {
	return g.requireConnection(ctx, userA, userB)
}

// CanSend enforces the gate for an existing conversation. For PRIVATE it
// re-checks the connection between sender and the other participant; a
// revoked connection blocks new sends even though the conversation persists.
func (g *AuthorizationGate) CanSend(ctx context.Context, conv *chat.Conversation, senderID string) error {
	if conv.Type != chat.ConversationTypePrivate {
		return nil
	}
	other, ok := conv.OtherParticipant(senderID)
	if !ok {
		return chat.ErrNotParticipant
	}
	return g.requireConnection(ctx, senderID, other)
}

func (g *AuthorizationGate) requireConnection(ctx context.Context, userA, userB string) error {
	connected, err := g.Connections.AreConnected(ctx, userA, userB)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCollaborator, err)
	}
	if !connected {
		return chat.ErrNotConnected
	}
	return nil
}
