package task

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	qport "github.com/vidhika-anjne/Alumini-Platform/internal/infrastructure/queue/port"
)

// NotifyOfflineTaskType is the queue task name for nudging a participant who
// had no active realtime session when a message was fanned out. The store
// write is the durability boundary; this task only drives out-of-band
// notification delivery.
const NotifyOfflineTaskType = "chat:notify_offline"

// NotifyOfflinePayload is the JSON payload transported via the queue.
type NotifyOfflinePayload struct {
	UserID         string `json:"userId"`
	ConversationID int64  `json:"conversationId"`
	MessageID      int64  `json:"messageId"`
}

// RegisterNotifyOfflineTask binds the task handler to the provided server.
// The current handler records the delivery intent; push/email providers hook
// in here without touching the fan-out path.
func RegisterNotifyOfflineTask(srv qport.Server, log *zap.SugaredLogger) {
	srv.Register(NotifyOfflineTaskType, func(ctx context.Context, t qport.Task) error {
		var p NotifyOfflinePayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: do not retry indefinitely
			return err
		}
		log.Infow("offline participant notified",
			"user_id", p.UserID,
			"conversation_id", p.ConversationID,
			"message_id", p.MessageID,
		)
		return nil
	})
}
