package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidhika-anjne/Alumini-Platform/internal/auth"
	"github.com/vidhika-anjne/Alumini-Platform/internal/infrastructure/realtime"
	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/dispatch"
	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/usecase"
	httpHandler "github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/presentation/http"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1
func RegisterRoutes(
	r *gin.Engine,
	pool *pgxpool.Pool,
	rtRouter *realtime.Router,
	verifier auth.TokenVerifier,
	gate *usecase.AuthorizationGate,
	enrich *usecase.ConversationEnrichmentUseCase,
	dispatcher dispatch.Dispatcher,
) {
	v1 := r.Group("/api/v1")
	httpHandler.RegisterRoutes(v1, pool, rtRouter, verifier, gate, enrich, dispatcher)
}
