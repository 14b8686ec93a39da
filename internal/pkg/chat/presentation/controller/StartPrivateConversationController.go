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

// StartPrivateConversationController handles the idempotent 1:1 conversation
// endpoint: it returns the existing thread for the pair or creates one.

type StartPrivateConversationController struct {
	UC     *usecase.StartPrivateConversationUseCase
	Enrich *usecase.ConversationEnrichmentUseCase
}

func NewStartPrivateConversationController(pool *pgxpool.Pool, gate *usecase.AuthorizationGate, enrich *usecase.ConversationEnrichmentUseCase) *StartPrivateConversationController {
	repo := adapter.NewPgChatRepository(pool)
	return &StartPrivateConversationController{
		UC:     usecase.NewStartPrivateConversationUseCase(repo, gate),
		Enrich: enrich,
	}
}

func (h *StartPrivateConversationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := requirePrincipal(c)
		if !ok {
			return
		}

		peerID := c.Param("peerId")
		if peerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "peerId is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		conv, err := h.UC.Execute(ctx, usecase.StartPrivateConversationInput{
			RequesterID: principal.UserID,
			PeerID:      peerID,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		enriched, err := h.Enrich.Enrich(ctx, conv, principal.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, enriched)
	}
}
