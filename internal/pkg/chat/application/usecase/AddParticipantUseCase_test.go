package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chat "github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/domain"
	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/usecase"
)

func TestAddParticipant(t *testing.T) {
	repo := newMemRepo()
	conv, err := repo.CreateConversation(context.Background(), chat.ConversationTypeGroup)
	require.NoError(t, err)
	uc := usecase.NewAddParticipantUseCase(repo)

	p, err := uc.Execute(context.Background(), usecase.AddParticipantInput{
		ConversationID: conv.ID, ParticipantID: "alice",
	})
	require.NoError(t, err)
	assert.Equal(t, conv.ID, p.ConversationID)
	assert.Equal(t, "alice", p.ParticipantID)

	// Same pair again conflicts.
	_, err = uc.Execute(context.Background(), usecase.AddParticipantInput{
		ConversationID: conv.ID, ParticipantID: "alice",
	})
	assert.ErrorIs(t, err, chat.ErrDuplicateParticipant)
	assert.ErrorIs(t, err, chat.ErrConflict)
}

func TestAddParticipantUnknownConversation(t *testing.T) {
	uc := usecase.NewAddParticipantUseCase(newMemRepo())
	_, err := uc.Execute(context.Background(), usecase.AddParticipantInput{
		ConversationID: 404, ParticipantID: "alice",
	})
	assert.ErrorIs(t, err, chat.ErrConversationNotFound)
}

func TestAddParticipantValidatesInput(t *testing.T) {
	uc := usecase.NewAddParticipantUseCase(newMemRepo())
	_, err := uc.Execute(context.Background(), usecase.AddParticipantInput{ConversationID: 1})
	assert.ErrorIs(t, err, chat.ErrInvalidArgument)
}

func TestCreateConversationParsesType(t *testing.T) {
	repo := newMemRepo()
	uc := usecase.NewCreateConversationUseCase(repo)

	conv, err := uc.Execute(context.Background(), usecase.CreateConversationInput{Type: "group"})
	require.NoError(t, err)
	assert.Equal(t, chat.ConversationTypeGroup, conv.Type)

	_, err = uc.Execute(context.Background(), usecase.CreateConversationInput{Type: "channel"})
	assert.ErrorIs(t, err, chat.ErrInvalidArgument)
}
