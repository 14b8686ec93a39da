package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/usecase"
	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/persistence/repository/adapter"
)

// AddParticipantController handles the participant attach endpoint

type AddParticipantController struct {
	UC *usecase.AddParticipantUseCase
}

func NewAddParticipantController(pool *pgxpool.Pool) *AddParticipantController {
	repo := adapter.NewPgChatRepository(pool)
	return &AddParticipantController{UC: usecase.NewAddParticipantUseCase(repo)}
}

type addParticipantRequest struct {
	ParticipantID string `json:"participant_id" binding:"required"`
}

func (h *AddParticipantController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requirePrincipal(c); !ok {
			return
		}

		conversationID, err := strconv.ParseInt(c.Param("conversationId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conversationId must be a number"})
			return
		}

		var req addParticipantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		p, err := h.UC.Execute(ctx, usecase.AddParticipantInput{
			ConversationID: conversationID,
			ParticipantID:  req.ParticipantID,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":              p.ID,
			"conversation_id": p.ConversationID,
			"participant_id":  p.ParticipantID,
		})
	}
}
