package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidhika-anjne/Alumini-Platform/internal/auth"
	"github.com/vidhika-anjne/Alumini-Platform/internal/infrastructure/realtime"
	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/dispatch"
	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/usecase"
	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/presentation/controller"
)

// RegisterRoutes registers chat-related HTTP endpoints under the given router group
// It constructs per-endpoint controllers and binds them directly to routes.
func RegisterRoutes(
	g *gin.RouterGroup,
	pool *pgxpool.Pool,
	router *realtime.Router,
	verifier auth.TokenVerifier,
	gate *usecase.AuthorizationGate,
	enrich *usecase.ConversationEnrichmentUseCase,
	dispatcher dispatch.Dispatcher,
) {
	createCtl := controller.NewCreateConversationController(pool)
	privateCtl := controller.NewStartPrivateConversationController(pool, gate, enrich)
	addPartCtl := controller.NewAddParticipantController(pool)
	sendMsgCtl := controller.NewSendMessageController(pool, gate, dispatcher)
	getMsgCtl := controller.NewGetMessagesController(pool)
	listConvCtl := controller.NewListConversationsController(enrich)
	socketCtl := controller.NewChatSocketController(pool, router, verifier, gate, dispatcher)

	g.Use(controller.Authenticate(verifier))

	// POST /api/v1/conversations -> create an empty conversation
	g.POST("/conversations", createCtl.Handle())

	// POST /api/v1/conversations/private/:peerId -> get-or-create the 1:1 thread with a peer
	g.POST("/conversations/private/:peerId", privateCtl.Handle())

	// POST /api/v1/conversations/:conversationId/participants -> attach a member
	g.POST("/conversations/:conversationId/participants", addPartCtl.Handle())

	// POST /api/v1/conversations/:conversationId/messages -> send a message
	g.POST("/conversations/:conversationId/messages", sendMsgCtl.Handle())

	// GET /api/v1/conversations/:conversationId/messages -> history, offset or cursor form
	g.GET("/conversations/:conversationId/messages", getMsgCtl.Handle())

	// GET /api/v1/conversations -> the caller's enriched inbox
	g.GET("/conversations", listConvCtl.Handle())

	// GET /api/v1/users/:userId/conversations -> same inbox, caller only
	g.GET("/users/:userId/conversations", listConvCtl.Handle())

	// GET /api/v1/chat/ws -> websocket endpoint for realtime chat
	g.GET("/chat/ws", socketCtl.Handle())
}
