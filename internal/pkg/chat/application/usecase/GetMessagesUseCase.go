package usecase

import (
	"context"
	"fmt"

	chat "github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/domain"
	repository "github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/persistence/repository/port"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	// maxPage bounds the page*size offset computed in the store.
	maxPage = 1_000_000_000
)

// GetMessagesInput selects an offset page of a conversation's history.
// ViewerID is optional; when set, the viewer must be a participant.
type GetMessagesInput struct {
	ConversationID int64
	ViewerID       string
	Page           int
	Size           int
}

// GetMessagesUseCase is the offset read path: page 0 is the oldest page and
// rows come back ascending by send time.
type GetMessagesUseCase struct {
	Repo repository.ChatRepository
}

func NewGetMessagesUseCase(repo repository.ChatRepository) *GetMessagesUseCase {
	return &GetMessagesUseCase{Repo: repo}
}

func (uc *GetMessagesUseCase) Execute(ctx context.Context, in GetMessagesInput) ([]chat.Message, error) {
	if in.ConversationID == 0 {
		return nil, fmt.Errorf("%w: conversation id is required", chat.ErrInvalidArgument)
	}
	if in.Page < 0 {
		return nil, fmt.Errorf("%w: page must not be negative", chat.ErrInvalidArgument)
	}
	if in.Page > maxPage {
		return nil, fmt.Errorf("%w: page is out of range", chat.ErrInvalidArgument)
	}
	in.Size = clampPageSize(in.Size)

	if in.ViewerID != "" {
		conv, err := uc.Repo.GetConversation(ctx, in.ConversationID)
		if err != nil {
			return nil, wrapRepoErr(err)
		}
		if !conv.HasParticipant(in.ViewerID) {
			return nil, chat.ErrNotParticipant
		}
	}

	msgs, err := uc.Repo.ListMessages(ctx, in.ConversationID, in.Page, in.Size)
	if err != nil {
		return nil, wrapRepoErr(err)
	}
	return msgs, nil
}

func clampPageSize(size int) int {
	if size <= 0 {
		return defaultPageSize
	}
	if size > maxPageSize {
		return maxPageSize
	}
	return size
}
