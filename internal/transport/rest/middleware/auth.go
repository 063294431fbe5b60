package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/fathsl/ranya-front-sub000/internal/service"
)

type contextKey string

const (
	TrainerIDKey     contextKey = "trainerId"
	ParticipantIDKey contextKey = "participantId"
	AttemptIDKey     contextKey = "attemptId"
)

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	authSvc *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authSvc *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// RequireTrainer validates a trainer JWT from the Authorization header
func (m *AuthMiddleware) RequireTrainer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.authSvc.ValidateTrainerToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), TrainerIDKey, claims.TrainerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireParticipant validates a participant JWT from the Authorization header
// or the token query param, and checks the token is scoped to the attempt
// named in the route.
func (m *AuthMiddleware) RequireParticipant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			// WebSocket upgrades can't set headers
			token = r.URL.Query().Get("token")
		}
		if token == "" {
			http.Error(w, `{"error":"missing authorization"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.authSvc.ValidateParticipantToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		if attemptID := mux.Vars(r)["attemptId"]; attemptID != "" && attemptID != claims.AttemptID {
			http.Error(w, `{"error":"token not valid for this attempt"}`, http.StatusForbidden)
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, ParticipantIDKey, claims.ParticipantID)
		ctx = context.WithValue(ctx, AttemptIDKey, claims.AttemptID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetTrainerID extracts the trainer ID from context
func GetTrainerID(ctx context.Context) string {
	if v := ctx.Value(TrainerIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// GetParticipantID extracts the participant ID from context
func GetParticipantID(ctx context.Context) string {
	if v := ctx.Value(ParticipantIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// GetAttemptID extracts the attempt ID from context
func GetAttemptID(ctx context.Context) string {
	if v := ctx.Value(AttemptIDKey); v != nil {
		return v.(string)
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
