package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/usecase"
	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/view"
	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/persistence/repository/adapter"
)

// GetMessagesController serves conversation history in two query forms:
// offset (?page=&size=) for jumping around, cursor (?cursor=&limit=) for
// backward scrolling. The presence of a cursor or limit parameter selects
// the cursor form. Both return chronologically ascending slices.

type GetMessagesController struct {
	Offset *usecase.GetMessagesUseCase
	Cursor *usecase.GetMessagesWithCursorUseCase
}

func NewGetMessagesController(pool *pgxpool.Pool) *GetMessagesController {
	repo := adapter.NewPgChatRepository(pool)
	return &GetMessagesController{
		Offset: usecase.NewGetMessagesUseCase(repo),
		Cursor: usecase.NewGetMessagesWithCursorUseCase(repo),
	}
}

func (h *GetMessagesController) Handle() gin.HandlerFunc {
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

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if c.Query("cursor") != "" || c.Query("limit") != "" {
			h.handleCursor(ctx, c, conversationID, principal.UserID)
			return
		}
		h.handleOffset(ctx, c, conversationID, principal.UserID)
	}
}

func (h *GetMessagesController) handleOffset(ctx context.Context, c *gin.Context, conversationID int64, viewerID string) {
	page, err := intQuery(c, "page", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a number"})
		return
	}
	size, err := intQuery(c, "size", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "size must be a number"})
		return
	}

	msgs, err := h.Offset.Execute(ctx, usecase.GetMessagesInput{
		ConversationID: conversationID,
		ViewerID:       viewerID,
		Page:           page,
		Size:           size,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": view.MessagesFrom(msgs)})
}

func (h *GetMessagesController) handleCursor(ctx context.Context, c *gin.Context, conversationID int64, viewerID string) {
	var cursor *int64
	if raw := c.Query("cursor"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cursor must be a number"})
			return
		}
		// cursor=0 means the initial load, same as no cursor at all.
		if v != 0 {
			cursor = &v
		}
	}
	limit, err := intQuery(c, "limit", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a number"})
		return
	}

	page, err := h.Cursor.Execute(ctx, usecase.GetMessagesWithCursorInput{
		ConversationID: conversationID,
		ViewerID:       viewerID,
		Cursor:         cursor,
		Limit:          limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages":    view.MessagesFrom(page.Messages),
		"next_cursor": page.NextCursor,
	})
}

func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
