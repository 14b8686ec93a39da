package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/dispatch"
	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/usecase"
	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/view"
	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/persistence/repository/adapter"
)

// SendMessageController handles the REST send path. It runs the same use
// case as the socket path, so realtime fan-out happens either way.

type SendMessageController struct {
	UC *usecase.SendMessageUseCase
}

func NewSendMessageController(pool *pgxpool.Pool, gate *usecase.AuthorizationGate, d dispatch.Dispatcher) *SendMessageController {
	repo := adapter.NewPgChatRepository(pool)
	return &SendMessageController{UC: usecase.NewSendMessageUseCase(repo, gate, d)}
}

type sendMessageRequest struct {
	Content  *string `json:"content"`
	MediaURL *string `json:"media_url"`
}

func (h *SendMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := requirePrincipal(c)
		if !ok {
			return
		}

		conversationID, err := strconv.ParseInt(c.Param("conversationId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conversationId must be a number"})
			return
		}

		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		msg, err := h.UC.Execute(ctx, usecase.SendMessageInput{
			ConversationID: conversationID,
			SenderID:       principal.UserID,
			Content:        req.Content,
			MediaURL:       req.MediaURL,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, view.MessageFrom(*msg))
	}
}
