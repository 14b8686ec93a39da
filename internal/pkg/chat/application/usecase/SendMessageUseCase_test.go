package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chat "github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/domain"
	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/usecase"
)

func TestSendMessagePersistsAndFansOutToAllParticipants(t *testing.T) {
	repo := newMemRepo()
	conv := seedConversation(repo, "alice", "bob", "carol")
	dispatcher := &recordingDispatcher{}
	gate := usecase.NewAuthorizationGate(newStubChecker())
	uc := usecase.NewSendMessageUseCase(repo, gate, dispatcher)

	msg, err := uc.Execute(context.Background(), usecase.SendMessageInput{
		ConversationID: conv.ID,
		SenderID:       "alice",
		Content:        strPtr("hello everyone"),
	})
	require.NoError(t, err)
	assert.NotZero(t, msg.ID)
	assert.Equal(t, chat.StatusSent, msg.Status)

	require.Len(t, dispatcher.messages, 1)
	assert.ElementsMatch(t, []string{"alice", "bob", "carol"}, dispatcher.messages[0].targets)
	assert.Equal(t, msg.ID, dispatcher.messages[0].msg.ID)
}

func TestSendMessageRejectsNonParticipant(t *testing.T) {
	repo := newMemRepo()
	conv := seedConversation(repo, "alice", "bob")
	dispatcher := &recordingDispatcher{}
	gate := usecase.NewAuthorizationGate(newStubChecker())
	uc := usecase.NewSendMessageUseCase(repo, gate, dispatcher)

	_, err := uc.Execute(context.Background(), usecase.SendMessageInput{
		ConversationID: conv.ID,
		SenderID:       "mallory",
		Content:        strPtr("let me in"),
	})
	assert.ErrorIs(t, err, chat.ErrNotParticipant)
	assert.Empty(t, dispatcher.messages)
}

func TestSendMessageRejectsUnknownConversation(t *testing.T) {
	repo := newMemRepo()
	gate := usecase.NewAuthorizationGate(newStubChecker())
	uc := usecase.NewSendMessageUseCase(repo, gate, &recordingDispatcher{})

	_, err := uc.Execute(context.Background(), usecase.SendMessageInput{
		ConversationID: 999,
		SenderID:       "alice",
		Content:        strPtr("hi"),
	})
	assert.ErrorIs(t, err, chat.ErrConversationNotFound)
	assert.ErrorIs(t, err, chat.ErrNotFound)
}

func TestSendMessageRejectsEmptyPayload(t *testing.T) {
	repo := newMemRepo()
	conv := seedConversation(repo, "alice", "bob")
	gate := usecase.NewAuthorizationGate(newStubChecker())
	uc := usecase.NewSendMessageUseCase(repo, gate, &recordingDispatcher{})

	_, err := uc.Execute(context.Background(), usecase.SendMessageInput{
		ConversationID: conv.ID,
		SenderID:       "alice",
		Content:        strPtr("   "),
	})
	assert.ErrorIs(t, err, chat.ErrEmptyMessage)
}

// An empty payload is rejected before the conversation or the sender's
// membership are looked at, so the caller never learns whether the
// conversation exists from a blank send.
func TestSendMessageEmptyPayloadWinsOverLookupErrors(t *testing.T) {
	repo := newMemRepo()
	conv := seedConversation(repo, "alice", "bob")
	gate := usecase.NewAuthorizationGate(newStubChecker())
	uc := usecase.NewSendMessageUseCase(repo, gate, &recordingDispatcher{})

	_, err := uc.Execute(context.Background(), usecase.SendMessageInput{
		ConversationID: 999,
		SenderID:       "alice",
	})
	assert.ErrorIs(t, err, chat.ErrEmptyMessage)
	assert.ErrorIs(t, err, chat.ErrInvalidArgument)

	_, err = uc.Execute(context.Background(), usecase.SendMessageInput{
		ConversationID: conv.ID,
		SenderID:       "mallory",
	})
	assert.ErrorIs(t, err, chat.ErrEmptyMessage)
}

func TestSendMessagePrivateRequiresConnection(t *testing.T) {
	repo := newMemRepo()
	conv, err := repo.CreatePrivateConversation(context.Background(), "alice", "bob")
	require.NoError(t, err)

	checker := newStubChecker() // nobody connected
	gate := usecase.NewAuthorizationGate(checker)
	dispatcher := &recordingDispatcher{}
	uc := usecase.NewSendMessageUseCase(repo, gate, dispatcher)

	_, err = uc.Execute(context.Background(), usecase.SendMessageInput{
		ConversationID: conv.ID,
		SenderID:       "alice",
		Content:        strPtr("hi bob"),
	})
	assert.ErrorIs(t, err, chat.ErrNotConnected)
	assert.Empty(t, dispatcher.messages)

	// Connecting the pair unblocks the same send.
	checker.connected[pairKey("alice", "bob")] = true
	msg, err := uc.Execute(context.Background(), usecase.SendMessageInput{
		ConversationID: conv.ID,
		SenderID:       "alice",
		Content:        strPtr("hi bob"),
	})
	require.NoError(t, err)
	require.Len(t, dispatcher.messages, 1)
	assert.ElementsMatch(t, []string{"alice", "bob"}, dispatcher.messages[0].targets)
	assert.Equal(t, msg.ID, dispatcher.messages[0].msg.ID)
}

func TestSendMessageGroupSkipsConnectionGate(t *testing.T) {
	repo := newMemRepo()
	conv := seedConversation(repo, "alice", "bob")
	checker := newStubChecker() // nobody connected
	gate := usecase.NewAuthorizationGate(checker)
	uc := usecase.NewSendMessageUseCase(repo, gate, &recordingDispatcher{})

	_, err := uc.Execute(context.Background(), usecase.SendMessageInput{
		ConversationID: conv.ID,
		SenderID:       "alice",
		Content:        strPtr("group hello"),
	})
	require.NoError(t, err)
	assert.Zero(t, checker.calls)
}

func TestSendMessageWrapsRepositoryFailure(t *testing.T) {
	repo := newMemRepo()
	conv := seedConversation(repo, "alice", "bob")
	gate := usecase.NewAuthorizationGate(newStubChecker())
	uc := usecase.NewSendMessageUseCase(repo, gate, &recordingDispatcher{})

	repo.failNext = errors.New("connection reset")
	_, err := uc.Execute(context.Background(), usecase.SendMessageInput{
		ConversationID: conv.ID,
		SenderID:       "alice",
		Content:        strPtr("hi"),
	})
	assert.ErrorIs(t, err, usecase.ErrPersistence)
}
