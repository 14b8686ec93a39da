package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	chat "github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/domain"
	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/usecase"
)

// statusFromError maps the domain error taxonomy to HTTP statuses. The
// three infrastructure wrappers come first: their causes must never leak a
// misleading 4xx.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, usecase.ErrPersistence), errors.Is(err, usecase.ErrCollaborator):
		return http.StatusInternalServerError
	case errors.Is(err, chat.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, chat.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, chat.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, chat.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, chat.ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the mapped status with a uniform error body.
// Internal causes are masked; domain errors carry their own safe text.
func respondError(c *gin.Context, err error) {
	status := statusFromError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	c.JSON(status, gin.H{"error": msg})
}
