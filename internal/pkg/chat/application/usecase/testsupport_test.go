package usecase_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	collabport "github.com/vidhika-anjne/Alumini-Platform/internal/collaborator/port"
	chat "github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/domain"
	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/view"
)

func strPtr(s string) *string { return &s }

// memRepo is an in-memory ChatRepository used across the use case tests.
// Message ids are assigned from a monotonically increasing counter, same
// contract as the store.
type memRepo struct {
	mu            sync.Mutex
	nextConvID    int64
	nextPartID    int64
	nextMsgID     int64
	conversations map[int64]*chat.Conversation
	messages      []chat.Message

	failNext error // injected failure for the next repository call
}

func newMemRepo() *memRepo {
	return &memRepo{conversations: make(map[int64]*chat.Conversation)}
}

func (r *memRepo) takeFailure() error {
	err := r.failNext
	r.failNext = nil
	return err
}

func (r *memRepo) CreateConversation(ctx context.Context, t chat.ConversationType) (*chat.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	r.nextConvID++
	conv := &chat.Conversation{ID: r.nextConvID, Type: t, CreatedAt: time.Now().UTC()}
	r.conversations[conv.ID] = conv
	return cloneConv(conv), nil
}

func (r *memRepo) GetConversation(ctx context.Context, id int64) (*chat.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	conv, ok := r.conversations[id]
	if !ok {
		return nil, chat.ErrConversationNotFound
	}
	return cloneConv(conv), nil
}

func (r *memRepo) FindPrivateBetween(ctx context.Context, userA, userB string) (*chat.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	for _, conv := range r.conversations {
		if conv.Type == chat.ConversationTypePrivate && conv.HasParticipant(userA) && conv.HasParticipant(userB) {
			return cloneConv(conv), nil
		}
	}
	return nil, nil
}

func (r *memRepo) CreatePrivateConversation(ctx context.Context, userA, userB string) (*chat.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	r.nextConvID++
	conv := &chat.Conversation{ID: r.nextConvID, Type: chat.ConversationTypePrivate, CreatedAt: time.Now().UTC()}
	for _, u := range []string{userA, userB} {
		r.nextPartID++
		conv.Participants = append(conv.Participants, chat.Participant{
			ID: r.nextPartID, ConversationID: conv.ID, ParticipantID: u,
		})
	}
	r.conversations[conv.ID] = conv
	return cloneConv(conv), nil
}

func (r *memRepo) AddParticipant(ctx context.Context, conversationID int64, participantID string) (*chat.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	conv, ok := r.conversations[conversationID]
	if !ok {
		return nil, chat.ErrConversationNotFound
	}
	if conv.HasParticipant(participantID) {
		return nil, chat.ErrDuplicateParticipant
	}
	r.nextPartID++
	p := chat.Participant{ID: r.nextPartID, ConversationID: conversationID, ParticipantID: participantID}
	conv.Participants = append(conv.Participants, p)
	return &p, nil
}

func (r *memRepo) ListParticipants(ctx context.Context, conversationID int64) ([]chat.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	conv, ok := r.conversations[conversationID]
	if !ok {
		return nil, chat.ErrConversationNotFound
	}
	out := make([]chat.Participant, len(conv.Participants))
	copy(out, conv.Participants)
	return out, nil
}

func (r *memRepo) ListConversationsForUser(ctx context.Context, userID string) ([]chat.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	var out []chat.Conversation
	for _, conv := range r.conversations {
		if conv.HasParticipant(userID) {
			out = append(out, *cloneConv(conv))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) SaveMessage(ctx context.Context, m chat.Message) (*chat.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	r.nextMsgID++
	m.ID = r.nextMsgID
	r.messages = append(r.messages, m)
	return &m, nil
}

func (r *memRepo) GetMessage(ctx context.Context, id int64) (*chat.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	for _, m := range r.messages {
		if m.ID == id {
			msg := m
			return &msg, nil
		}
	}
	return nil, chat.ErrMessageNotFound
}

func (r *memRepo) UpdateMessageStatus(ctx context.Context, id int64, status chat.MessageStatus) (*chat.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	for i := range r.messages {
		if r.messages[i].ID == id {
			r.messages[i].Status = status
			msg := r.messages[i]
			return &msg, nil
		}
	}
	return nil, chat.ErrMessageNotFound
}

func (r *memRepo) ListMessages(ctx context.Context, conversationID int64, page, size int) ([]chat.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	all := r.conversationMessagesLocked(conversationID)
	sort.Slice(all, func(i, j int) bool { return all[i].SentAt.Before(all[j].SentAt) })
	start := page * size
	if start >= len(all) {
		return nil, nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (r *memRepo) ListMessagesBefore(ctx context.Context, conversationID int64, cursor *int64, limit int) ([]chat.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	all := r.conversationMessagesLocked(conversationID)
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	var out []chat.Message
	for _, m := range all {
		if cursor != nil && m.ID >= *cursor {
			continue
		}
		out = append(out, m)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *memRepo) FindLatestMessage(ctx context.Context, conversationID int64) (*chat.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	var latest *chat.Message
	for i := range r.messages {
		m := r.messages[i]
		if m.ConversationID != conversationID {
			continue
		}
		if latest == nil || m.ID > latest.ID {
			latest = &m
		}
	}
	if latest == nil {
		return nil, nil
	}
	msg := *latest
	return &msg, nil
}

func (r *memRepo) conversationMessagesLocked(conversationID int64) []chat.Message {
	var out []chat.Message
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out
}

func cloneConv(conv *chat.Conversation) *chat.Conversation {
	c := *conv
	c.Participants = make([]chat.Participant, len(conv.Participants))
	copy(c.Participants, conv.Participants)
	return &c
}

// seedConversation creates a GROUP conversation with the given members.
func seedConversation(r *memRepo, members ...string) *chat.Conversation {
	conv, _ := r.CreateConversation(context.Background(), chat.ConversationTypeGroup)
	for _, m := range members {
		_, _ = r.AddParticipant(context.Background(), conv.ID, m)
	}
	full, _ := r.GetConversation(context.Background(), conv.ID)
	return full
}

// recordingDispatcher captures fan-out calls for assertions.
type recordingDispatcher struct {
	mu       sync.Mutex
	messages []dispatchedMessage
	typing   []dispatchedTyping
	statuses []dispatchedStatus
	errors   []string
}

type dispatchedMessage struct {
	targets []string
	msg     view.Message
}

type dispatchedTyping struct {
	targets []string
	signal  view.Typing
}

type dispatchedStatus struct {
	targets []string
	update  view.StatusUpdate
}

func (d *recordingDispatcher) MessageCreated(ids []string, msg view.Message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.messages = append(d.messages, dispatchedMessage{targets: append([]string(nil), ids...), msg: msg})
}

func (d *recordingDispatcher) Typing(ids []string, signal view.Typing) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.typing = append(d.typing, dispatchedTyping{targets: append([]string(nil), ids...), signal: signal})
}

func (d *recordingDispatcher) StatusChanged(ids []string, update view.StatusUpdate) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.statuses = append(d.statuses, dispatchedStatus{targets: append([]string(nil), ids...), update: update})
}

func (d *recordingDispatcher) Error(userID string, message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errors = append(d.errors, fmt.Sprintf("%s: %s", userID, message))
}

// stubChecker answers connectivity from a fixed pair set.
type stubChecker struct {
	connected map[string]bool
	err       error
	calls     int
}

func newStubChecker(pairs ...[2]string) *stubChecker {
	c := &stubChecker{connected: make(map[string]bool)}
	for _, p := range pairs {
		c.connected[pairKey(p[0], p[1])] = true
	}
	return c
}

func (c *stubChecker) AreConnected(ctx context.Context, userA, userB string) (bool, error) {
	c.calls++
	if c.err != nil {
		return false, c.err
	}
	return c.connected[pairKey(userA, userB)], nil
}

func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// stubDirectory resolves display names from a fixed map and fails lookups
// for everyone else.
type stubDirectory struct {
	names map[string]string
}

func (d *stubDirectory) Lookup(ctx context.Context, userID string) (collabport.DisplayInfo, error) {
	if name, ok := d.names[userID]; ok {
		return collabport.DisplayInfo{Name: name}, nil
	}
	return collabport.DisplayInfo{}, fmt.Errorf("profile service unavailable")
}
