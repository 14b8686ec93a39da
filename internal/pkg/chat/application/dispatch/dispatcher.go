// Package dispatch pushes chat events to each participant's private
// delivery channels. Delivery is at-most-once and fire-and-forget: a
// participant without an active session simply misses the push, the
// persisted message remains the source of truth.
package dispatch

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/vidhika-anjne/Alumini-Platform/internal/infrastructure/realtime"
	qport "github.com/vidhika-anjne/Alumini-Platform/internal/infrastructure/queue/port"
	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/task"
	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/view"
)

// Dispatcher fans events out to a resolved participant set. Implementations
// must never fail the caller: realtime delivery is best-effort.
type Dispatcher interface {
	// MessageCreated pushes the persisted message to every participant,
	// including the sender, so the sender's other sessions converge.
	MessageCreated(participantIDs []string, msg view.Message)

	// Typing pushes the signal to every participant except the signaler.
	Typing(participantIDs []string, signal view.Typing)

	// StatusChanged pushes the update to every participant of the updated
	// message's conversation.
	StatusChanged(participantIDs []string, update view.StatusUpdate)

	// Error routes a structured error to the originating user's private
	// error channel.
	Error(userID string, message string)
}

// RealtimeDispatcher delivers through the websocket router. When a message
// fan-out target has no active session and a queue client is configured, an
// offline-notification task is enqueued instead.
type RealtimeDispatcher struct {
	router *realtime.Router
	queue  qport.Client
	log    *zap.SugaredLogger
}

func NewRealtimeDispatcher(router *realtime.Router, queue qport.Client, log *zap.SugaredLogger) *RealtimeDispatcher {
	return &RealtimeDispatcher{router: router, queue: queue, log: log}
}

var _ Dispatcher = (*RealtimeDispatcher)(nil)

func (d *RealtimeDispatcher) MessageCreated(participantIDs []string, msg view.Message) {
	env := realtime.Envelope{Channel: realtime.ChannelMessages, Payload: msg}
	for _, userID := range participantIDs {
		if d.router.NotifyUser(userID, env) {
			continue
		}
		d.enqueueOfflineNotice(userID, msg)
	}
}

func (d *RealtimeDispatcher) Typing(participantIDs []string, signal view.Typing) {
	env := realtime.Envelope{Channel: realtime.ChannelTyping, Payload: signal}
	for _, userID := range participantIDs {
		if userID == signal.SenderID {
			continue
		}
		d.router.NotifyUser(userID, env)
	}
}

func (d *RealtimeDispatcher) StatusChanged(participantIDs []string, update view.StatusUpdate) {
	env := realtime.Envelope{Channel: realtime.ChannelStatus, Payload: update}
	for _, userID := range participantIDs {
		d.router.NotifyUser(userID, env)
	}
}

func (d *RealtimeDispatcher) Error(userID string, message string) {
	env := realtime.Envelope{Channel: realtime.ChannelErrors, Payload: map[string]string{"error": message}}
	d.router.NotifyUser(userID, env)
}

func (d *RealtimeDispatcher) enqueueOfflineNotice(userID string, msg view.Message) {
	if d.queue == nil {
		return
	}
	payload, err := json.Marshal(task.NotifyOfflinePayload{
		UserID:         userID,
		ConversationID: msg.ConversationID,
		MessageID:      msg.ID,
	})
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err = d.queue.Enqueue(ctx, qport.Task{Type: task.NotifyOfflineTaskType, Payload: payload},
		qport.EnqueueOption{Queue: "chat", MaxRetry: 5})
	if err != nil && d.log != nil {
		d.log.Debugw("offline notice enqueue failed", "user_id", userID, "err", err)
	}
}
