package usecase

import (
	"context"
	"fmt"
	"sort"

	collabport "github.com/vidhika-anjne/Alumini-Platform/internal/collaborator/port"
	chat "github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/domain"
	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/view"
	repository "github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/persistence/repository/port"
)

// ConversationEnrichmentUseCase assembles the inbox view: each conversation
// decorated with display names, its latest message, and for PRIVATE threads
// the identity of the other participant relative to the viewer. Profile
// lookups are best-effort; a failed lookup falls back to the raw user id.
type ConversationEnrichmentUseCase struct {
	Repo     repository.ChatRepository
	Profiles collabport.ProfileDirectory
}

func NewConversationEnrichmentUseCase(repo repository.ChatRepository, profiles collabport.ProfileDirectory) *ConversationEnrichmentUseCase {
	return &ConversationEnrichmentUseCase{Repo: repo, Profiles: profiles}
}

// ListForUser returns the viewer's conversations, most recently active
// first. Conversations with messages sort by last message time; empty ones
// come after, by creation time.
func (uc *ConversationEnrichmentUseCase) ListForUser(ctx context.Context, viewerID string) ([]view.Conversation, error) {
	if viewerID == "" {
		return nil, fmt.Errorf("%w: viewer id is required", chat.ErrInvalidArgument)
	}

	convs, err := uc.Repo.ListConversationsForUser(ctx, viewerID)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	out := make([]view.Conversation, 0, len(convs))
	for i := range convs {
		v, err := uc.Enrich(ctx, &convs[i], viewerID)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}

	sort.SliceStable(out, func(i, j int) bool {
		li, lj := out[i].LastMessage, out[j].LastMessage
		switch {
		case li != nil && lj != nil:
			return li.SentAt.After(lj.SentAt)
		case li != nil:
			return true
		case lj != nil:
			return false
		default:
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
	})
	return out, nil
}

// Enrich decorates a single conversation for the given viewer.
func (uc *ConversationEnrichmentUseCase) Enrich(ctx context.Context, conv *chat.Conversation, viewerID string) (*view.Conversation, error) {
	v := &view.Conversation{
		ID:        conv.ID,
		Type:      string(conv.Type),
		CreatedAt: conv.CreatedAt,
	}

	for _, p := range conv.Participants {
		info := uc.lookup(ctx, p.ParticipantID)
		v.Participants = append(v.Participants, view.Participant{
			ParticipantID: p.ParticipantID,
			Name:          info.Name,
			AvatarURL:     info.AvatarURL,
		})
	}

	if conv.Type == chat.ConversationTypePrivate {
		if other, ok := conv.OtherParticipant(viewerID); ok {
			v.OtherParticipantID = other
			v.OtherParticipantName = uc.lookup(ctx, other).Name
		}
	}

	last, err := uc.Repo.FindLatestMessage(ctx, conv.ID)
	if err != nil {
		return nil, wrapRepoErr(err)
	}
	if last != nil {
		lm := view.MessageFrom(*last)
		v.LastMessage = &lm
	}
	return v, nil
}

func (uc *ConversationEnrichmentUseCase) lookup(ctx context.Context, userID string) collabport.DisplayInfo {
	if uc.Profiles == nil {
		return collabport.DisplayInfo{Name: userID}
	}
	info, err := uc.Profiles.Lookup(ctx, userID)
	if err != nil || info.Name == "" {
		return collabport.DisplayInfo{Name: userID}
	}
	return info
}
