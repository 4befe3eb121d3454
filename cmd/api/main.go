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

	v1 "go-parley/cmd/api/router/v1"
	broadcastAdapter "go-parley/internal/infrastructure/broadcast/adapter"
	cacheAdapter "go-parley/internal/infrastructure/cache/adapter"
	"go-parley/internal/infrastructure/database"
	queueAdapter "go-parley/internal/infrastructure/queue/adapter"
	"go-parley/internal/infrastructure/realtime"
	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/chat/application/task"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the database on startup
	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := database.NewPoolFromEnv(connectCtx)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	cache, err := cacheAdapter.NewRedisAdapter()
	if err != nil {
		log.Fatalf("failed to connect to redis cache: %v", err)
	}
	defer cache.Close()

	broadcaster, err := broadcastAdapter.NewRedisBroadcaster()
	if err != nil {
		log.Fatalf("failed to connect to redis pub/sub: %v", err)
	}
	defer broadcaster.Close()

	queueClient, err := queueAdapter.NewAsynqClientFromEnv()
	if err != nil {
		log.Fatalf("failed to create queue client: %v", err)
	}
	defer queueClient.Close()

	queueServer, err := queueAdapter.NewAsynqServer()
	if err != nil {
		log.Fatalf("failed to create queue server: %v", err)
	}
	task.RegisterBroadcastMessageTask(queueServer, broadcaster)
	go func() {
		if err := queueServer.Run(ctx); err != nil {
			log.Printf("queue server stopped: %v", err)
		}
	}()

	tokens, err := auth.NewTokenManagerFromEnv()
	if err != nil {
		log.Fatalf("failed to configure auth tokens: %v", err)
	}
	mw := auth.NewMiddleware(tokens, cache)

	// One hub per node; the bridge forwards cluster-wide events to its
	// local subscribers.
	hub := realtime.NewHub()
	defer hub.Close()
	go func() {
		err := hub.RunBridge(ctx, broadcaster, "user.*", "room.*", "public-room.*")
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("realtime bridge stopped: %v", err)
		}
	}()

	fanout := task.NewFanout(queueClient)

	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "OK",
		})
	})

	v1.RegisterRoutes(r, pool, mw, hub, fanout)

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	srv := &http.Server{Addr: addr, Handler: r}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()
	log.Printf("listening on %s", addr)

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
}
