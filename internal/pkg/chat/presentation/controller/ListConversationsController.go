package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/usecase"
)

// ListConversationsController serves the enriched inbox. Two routes share
// it: GET /conversations returns the caller's own inbox, and
// GET /users/:userId/conversations allows only userId == caller.

type ListConversationsController struct {
	Enrich *usecase.ConversationEnrichmentUseCase
}

func NewListConversationsController(enrich *usecase.ConversationEnrichmentUseCase) *ListConversationsController {
	return &ListConversationsController{Enrich: enrich}
}

func (h *ListConversationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := requirePrincipal(c)
		if !ok {
			return
		}

		if requested := c.Param("userId"); requested != "" && requested != principal.UserID {
			c.JSON(http.StatusForbidden, gin.H{"error": "cannot list another user's conversations"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		convs, err := h.Enrich.ListForUser(ctx, principal.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"conversations": convs})
	}
}
