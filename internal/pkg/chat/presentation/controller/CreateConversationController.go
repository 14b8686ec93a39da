package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/usecase"
	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/persistence/repository/adapter"
)

// CreateConversationController handles the conversation creation endpoint
// One controller per endpoint

type CreateConversationController struct {
	UC *usecase.CreateConversationUseCase
}

func NewCreateConversationController(pool *pgxpool.Pool) *CreateConversationController {
	repo := adapter.NewPgChatRepository(pool)
	return &CreateConversationController{UC: usecase.NewCreateConversationUseCase(repo)}
}

type createConversationRequest struct {
	Type string `json:"type" binding:"required"`
}

func (h *CreateConversationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requirePrincipal(c); !ok {
			return
		}

		var req createConversationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		conv, err := h.UC.Execute(ctx, usecase.CreateConversationInput{Type: req.Type})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":         conv.ID,
			"type":       conv.Type,
			"created_at": conv.CreatedAt,
		})
	}
}
