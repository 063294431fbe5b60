package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/fathsl/ranya-front-sub000/internal/cache"
	"github.com/fathsl/ranya-front-sub000/internal/service"
	"github.com/fathsl/ranya-front-sub000/internal/transport/rest/handler"
	"github.com/fathsl/ranya-front-sub000/internal/transport/rest/middleware"
	"github.com/fathsl/ranya-front-sub000/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService    *service.AuthService
	AttemptService *service.AttemptService
	ScoreBoard     cache.ScoreBoard
	WSHub          *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	attemptHandler := handler.NewAttemptHandler(c.AttemptService)
	evaluationHandler := handler.NewEvaluationHandler(c.ScoreBoard)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/evaluations/{evaluationId}/attempts", attemptHandler.Create).Methods("POST", "OPTIONS")

	// WebSocket routes (token in query param)
	v1.HandleFunc("/ws/attempts/{attemptId}", wsHandler.AttemptWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Participant routes (token must be scoped to the attempt in the path)
	participantRoutes := v1.NewRoute().Subrouter()
	participantRoutes.Use(authMW.RequireParticipant)

	participantRoutes.HandleFunc("/attempts/{attemptId}/start", attemptHandler.Start).Methods("POST", "OPTIONS")
	participantRoutes.HandleFunc("/attempts/{attemptId}", attemptHandler.Get).Methods("GET", "OPTIONS")
	participantRoutes.HandleFunc("/attempts/{attemptId}/answers", attemptHandler.RecordAnswer).Methods("PUT", "OPTIONS")
	participantRoutes.HandleFunc("/attempts/{attemptId}/next", attemptHandler.Next).Methods("POST", "OPTIONS")
	participantRoutes.HandleFunc("/attempts/{attemptId}/previous", attemptHandler.Previous).Methods("POST", "OPTIONS")
	participantRoutes.HandleFunc("/attempts/{attemptId}/submit", attemptHandler.Submit).Methods("POST", "OPTIONS")
	participantRoutes.HandleFunc("/attempts/{attemptId}", attemptHandler.Abandon).Methods("DELETE", "OPTIONS")

	// Trainer routes (require trainer auth)
	trainerRoutes := v1.NewRoute().Subrouter()
	trainerRoutes.Use(authMW.RequireTrainer)

	trainerRoutes.HandleFunc("/evaluations/{evaluationId}/leaderboard", evaluationHandler.Leaderboard).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
