package usecase

import (
	"context"
	"fmt"
	"sort"

	chat "github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/domain"
	repository "github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/persistence/repository/port"
)

// GetMessagesWithCursorInput selects a cursor page. A nil Cursor requests
// the most recent messages; otherwise only messages with ids strictly below
// the cursor qualify.
type GetMessagesWithCursorInput struct {
	ConversationID int64
	ViewerID       string
	Cursor         *int64
	Limit          int
}

// GetMessagesWithCursorPage is the cursor read result. NextCursor is the
// smallest id in the page, to be passed back for the next older page; it is
// nil when the page is empty.
type GetMessagesWithCursorPage struct {
	Messages   []chat.Message
	NextCursor *int64
}

// GetMessagesWithCursorUseCase is the backward-scrolling read path. The
// store retrieves descending by id so the limit selects the newest
// qualifying rows, then the page is re-sorted ascending so both read paths
// hand out chronological slices.
type GetMessagesWithCursorUseCase struct {
	Repo repository.ChatRepository
}

func NewGetMessagesWithCursorUseCase(repo repository.ChatRepository) *GetMessagesWithCursorUseCase {
	return &GetMessagesWithCursorUseCase{Repo: repo}
}

func (uc *GetMessagesWithCursorUseCase) Execute(ctx context.Context, in GetMessagesWithCursorInput) (*GetMessagesWithCursorPage, error) {
	if in.ConversationID == 0 {
		return nil, fmt.Errorf("%w: conversation id is required", chat.ErrInvalidArgument)
	}
	in.Limit = clampPageSize(in.Limit)

	if in.ViewerID != "" {
		conv, err := uc.Repo.GetConversation(ctx, in.ConversationID)
		if err != nil {
			return nil, wrapRepoErr(err)
		}
		if !conv.HasParticipant(in.ViewerID) {
			return nil, chat.ErrNotParticipant
		}
	}

	msgs, err := uc.Repo.ListMessagesBefore(ctx, in.ConversationID, in.Cursor, in.Limit)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	sort.Slice(msgs, func(i, j int) bool { return msgs[i].ID < msgs[j].ID })

	page := &GetMessagesWithCursorPage{Messages: msgs}
	if len(msgs) > 0 {
		oldest := msgs[0].ID
		page.NextCursor = &oldest
	}
	return page, nil
}
