package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fathsl/ranya-front-sub000/internal/backend"
	"github.com/fathsl/ranya-front-sub000/internal/cache"
	"github.com/fathsl/ranya-front-sub000/internal/config"
	"github.com/fathsl/ranya-front-sub000/internal/repository"
	"github.com/fathsl/ranya-front-sub000/internal/service"
	"github.com/fathsl/ranya-front-sub000/internal/transport/rest"
	"github.com/fathsl/ranya-front-sub000/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis connection
	redisAddr := strings.TrimPrefix(cfg.RedisAddr, "redis://")
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Learning store client, archive and caches
	store := backend.NewClient(cfg.BackendURL)
	archive := repository.NewAttemptArchive(db)
	defCache := cache.NewDefinitionCache(rdb, cfg.DefinitionCacheTTL)
	scores := cache.NewScoreBoard(rdb)

	// Initialize services
	authSvc := service.NewAuthService(cfg.TrainerUsername, cfg.TrainerPassword, cfg.JWTSecret)
	attemptSvc := service.NewAttemptService(store, store, defCache, scores, archive, authSvc)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	attemptSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:    authSvc,
		AttemptService: attemptSvc,
		ScoreBoard:     scores,
		WSHub:          wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST /v1/evaluations/{evaluationId}/attempts")
		log.Println("  POST /v1/attempts/{attemptId}/start")
		log.Println("  GET  /v1/attempts/{attemptId}")
		log.Println("  PUT  /v1/attempts/{attemptId}/answers")
		log.Println("  POST /v1/attempts/{attemptId}/submit")
		log.Println("  GET  /v1/evaluations/{evaluationId}/leaderboard")
		log.Println("  WS   /v1/ws/attempts/{attemptId}")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
