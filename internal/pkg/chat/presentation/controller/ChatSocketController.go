package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidhika-anjne/Alumini-Platform/internal/auth"
	"github.com/vidhika-anjne/Alumini-Platform/internal/infrastructure/realtime"
	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/dispatch"
	chat "github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/domain"
	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/usecase"
	repoAdapter "github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/persistence/repository/adapter"
)

// ChatSocketController handles the websocket endpoint for realtime chat
// traffic. The upgrade itself is fail-open: every socket attaches
// anonymous, and the client authenticates with a connect frame before it
// can act. An invalid token never tears the socket down, it only leaves
// the session anonymous.
type ChatSocketController struct {
	router          *realtime.Router
	verifier        auth.TokenVerifier
	sendMessageUC   *usecase.SendMessageUseCase
	typingUC        *usecase.TypingUseCase
	updateStatusUC  *usecase.UpdateStatusUseCase
	inflightTimeout time.Duration
}

func NewChatSocketController(pool *pgxpool.Pool, router *realtime.Router, verifier auth.TokenVerifier, gate *usecase.AuthorizationGate, d dispatch.Dispatcher) *ChatSocketController {
	repo := repoAdapter.NewPgChatRepository(pool)
	return &ChatSocketController{
		router:          router,
		verifier:        verifier,
		sendMessageUC:   usecase.NewSendMessageUseCase(repo, gate, d),
		typingUC:        usecase.NewTypingUseCase(repo, d),
		updateStatusUC:  usecase.NewUpdateStatusUseCase(repo, d),
		inflightTimeout: 5 * time.Second,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now; plug a proper checker when the reverse
		// proxy policy lands.
		return true
	},
}

type inboundFrame struct {
	Type           string  `json:"type"`
	ConversationID int64   `json:"conversation_id,omitempty"`
	Content        *string `json:"content,omitempty"`
	MediaURL       *string `json:"media_url,omitempty"`
	Typing         *bool   `json:"typing,omitempty"`
	MessageID      int64   `json:"message_id,omitempty"`
	Status         string  `json:"status,omitempty"`
}

type ackFrame struct {
	Type   string `json:"type"`
	UserID string `json:"user_id,omitempty"`
}

const defaultReadTimeout = 60 * time.Second

// Handle upgrades HTTP connections to websocket and processes frames until
// the client disconnects.
func (ctl *ChatSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		// The token is captured at handshake time; the connect frame only
		// triggers its verification. Header takes precedence over query.
		token := auth.BearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token = c.Query("token")
		}

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; just return.
			return
		}

		conn := realtime.NewConnection(ws)
		ctl.router.Attach(conn)
		defer func() {
			ctl.router.Detach(conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ws.SetReadLimit(1 << 20) // 1MB payload cap
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		// userID is owned by this read loop; the router keeps its own copy
		// for delivery routing.
		var userID string

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
					errors.Is(err, websocket.ErrCloseSent) {
					return
				}
				return
			}

			var frame inboundFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				ctl.replyError(conn, "invalid payload")
				continue
			}

			switch frame.Type {
			case "connect":
				userID = ctl.handleConnect(conn, token, userID)
			case "chat.send":
				ctl.handleSend(c, conn, userID, frame)
			case "chat.typing":
				ctl.handleTyping(c, conn, userID, frame)
			case "chat.status":
				ctl.handleStatus(c, conn, userID, frame)
			default:
				ctl.replyError(conn, "unknown frame type")
			}
		}
	}
}

// handleConnect verifies the handshake token and binds the session to the
// principal. Verification failure leaves the session in its previous state.
func (ctl *ChatSocketController) handleConnect(conn *realtime.Connection, token, current string) string {
	if token == "" {
		ctl.replyError(conn, "no token provided")
		return current
	}

	principal, err := ctl.verifier.Verify(token)
	if err != nil {
		ctl.replyError(conn, "token verification failed")
		return current
	}

	ctl.router.Bind(conn, principal.UserID)

	ack := ackFrame{Type: "connected", UserID: principal.UserID}
	if payload, err := json.Marshal(ack); err == nil {
		_ = conn.Send(payload)
	}
	return principal.UserID
}

func (ctl *ChatSocketController) handleSend(c *gin.Context, conn *realtime.Connection, userID string, frame inboundFrame) {
	if userID == "" {
		ctl.replyError(conn, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	// Fan-out to all participants, sender included, happens inside the use
	// case; nothing to push here on success.
	_, err := ctl.sendMessageUC.Execute(ctx, usecase.SendMessageInput{
		ConversationID: frame.ConversationID,
		SenderID:       userID,
		Content:        frame.Content,
		MediaURL:       frame.MediaURL,
	})
	if err != nil {
		ctl.replyUseCaseError(conn, err)
	}
}

func (ctl *ChatSocketController) handleTyping(c *gin.Context, conn *realtime.Connection, userID string, frame inboundFrame) {
	if userID == "" {
		ctl.replyError(conn, "authentication required")
		return
	}

	typing := true
	if frame.Typing != nil {
		typing = *frame.Typing
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	err := ctl.typingUC.Execute(ctx, chat.TypingSignal{
		SenderID:       userID,
		ConversationID: frame.ConversationID,
		Typing:         typing,
	})
	if err != nil {
		ctl.replyUseCaseError(conn, err)
	}
}

func (ctl *ChatSocketController) handleStatus(c *gin.Context, conn *realtime.Connection, userID string, frame inboundFrame) {
	if userID == "" {
		ctl.replyError(conn, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	_, err := ctl.updateStatusUC.Execute(ctx, usecase.UpdateStatusInput{
		MessageID: frame.MessageID,
		Status:    frame.Status,
	})
	if err != nil {
		ctl.replyUseCaseError(conn, err)
	}
}

func (ctl *ChatSocketController) replyUseCaseError(conn *realtime.Connection, err error) {
	switch {
	case errors.Is(err, usecase.ErrPersistence), errors.Is(err, usecase.ErrCollaborator):
		ctl.replyError(conn, "internal error")
	default:
		ctl.replyError(conn, err.Error())
	}
}

func (ctl *ChatSocketController) replyError(conn *realtime.Connection, message string) {
	_ = conn.SendEnvelope(realtime.Envelope{
		Channel: realtime.ChannelErrors,
		Payload: map[string]string{"error": message},
	})
}
