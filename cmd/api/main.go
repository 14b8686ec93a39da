package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vidhika-anjne/Alumini-Platform/cmd/api/router/v1"
	"github.com/vidhika-anjne/Alumini-Platform/internal/auth"
	collabadapter "github.com/vidhika-anjne/Alumini-Platform/internal/collaborator/adapter"
	collabport "github.com/vidhika-anjne/Alumini-Platform/internal/collaborator/port"
	cacheadapter "github.com/vidhika-anjne/Alumini-Platform/internal/infrastructure/cache/adapter"
	"github.com/vidhika-anjne/Alumini-Platform/internal/infrastructure/database"
	"github.com/vidhika-anjne/Alumini-Platform/internal/infrastructure/logging"
	queueadapter "github.com/vidhika-anjne/Alumini-Platform/internal/infrastructure/queue/adapter"
	qport "github.com/vidhika-anjne/Alumini-Platform/internal/infrastructure/queue/port"
	"github.com/vidhika-anjne/Alumini-Platform/internal/infrastructure/realtime"
	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/dispatch"
	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/task"
	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/usecase"
	"github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/persistence/repository/adapter"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	logger, err := logging.New(os.Getenv("APP_ENV"))
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := database.NewPoolFromEnv(ctx)
	if err != nil {
		logger.Fatalw("failed to connect to database", "err", err)
	}
	defer pool.Close()

	verifier, err := auth.NewJWTVerifier(os.Getenv("JWT_SECRET"))
	if err != nil {
		logger.Fatalw("failed to build token verifier", "err", err)
	}

	// Collaborators, wrapped with the Redis cache when one is configured.
	// The service degrades to uncached lookups without Redis.
	var connections collabport.ConnectionChecker = collabadapter.NewSocialGraphClient(os.Getenv("SOCIAL_GRAPH_URL"))
	var profiles collabport.ProfileDirectory = collabadapter.NewProfileDirectoryClient(os.Getenv("PROFILE_DIRECTORY_URL"))
	if cache, err := cacheadapter.NewRedisAdapter(); err != nil {
		logger.Warnw("redis cache unavailable, collaborator lookups uncached", "err", err)
	} else {
		connections = collabadapter.NewCachedConnectionChecker(connections, cache)
		profiles = collabadapter.NewCachedProfileDirectory(profiles, cache)
	}

	var queueClient qport.Client
	if client, err := queueadapter.NewAsynqClientFromEnv(); err != nil {
		logger.Warnw("task queue unavailable, offline notices disabled", "err", err)
	} else {
		queueClient = client
		defer func() { _ = client.Close() }()
	}

	rtRouter := realtime.NewRouter()
	defer rtRouter.Close()

	dispatcher := dispatch.NewRealtimeDispatcher(rtRouter, queueClient, logger)
	repo := adapter.NewPgChatRepository(pool)
	gate := usecase.NewAuthorizationGate(connections)
	enrich := usecase.NewConversationEnrichmentUseCase(repo, profiles)

	if queueClient != nil {
		go runWorker(logger)
	}

	r := gin.Default()
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	v1.RegisterRoutes(r, pool, rtRouter, verifier, gate, enrich, dispatcher)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{Addr: ":" + port, Handler: r}

	go func() {
		logger.Infow("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("http server failed", "err", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Infow("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("http shutdown failed", "err", err)
	}
}

// runWorker starts the background task server for offline notifications.
func runWorker(logger *zap.SugaredLogger) {
	srv, err := queueadapter.NewAsynqServer()
	if err != nil {
		logger.Warnw("task worker unavailable", "err", err)
		return
	}
	task.RegisterNotifyOfflineTask(srv, logger)
	if err := srv.Run(context.Background()); err != nil {
		logger.Errorw("task worker stopped", "err", err)
	}
}
