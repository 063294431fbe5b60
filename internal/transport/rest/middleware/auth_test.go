package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/fathsl/ranya-front-sub000/internal/service"
)

func newTestRouter(t *testing.T) (*mux.Router, *service.AuthService) {
	t.Helper()
	authSvc := service.NewAuthService("trainer", "secret", "test-signing-key")
	mw := NewAuthMiddleware(authSvc)

	r := mux.NewRouter()

	trainerRoutes := r.NewRoute().Subrouter()
	trainerRoutes.Use(mw.RequireTrainer)
	trainerRoutes.HandleFunc("/trainer-only", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetTrainerID(r.Context())))
	})

	participantRoutes := r.NewRoute().Subrouter()
	participantRoutes.Use(mw.RequireParticipant)
	participantRoutes.HandleFunc("/attempts/{attemptId}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetParticipantID(r.Context())))
	})

	return r, authSvc
}

func TestRequireTrainer(t *testing.T) {
	r, authSvc := newTestRouter(t)

	login, err := authSvc.Login("trainer", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid token", "Bearer " + login.Token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + login.Token, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/trainer-only", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status=%d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && rec.Body.String() == "" {
				t.Fatal("trainer ID missing from context")
			}
		})
	}
}

func TestRequireParticipantScopesToAttempt(t *testing.T) {
	r, authSvc := newTestRouter(t)

	token, err := authSvc.GenerateParticipantToken("a_one", "p1")
	if err != nil {
		t.Fatalf("GenerateParticipantToken: %v", err)
	}

	tests := []struct {
		name       string
		path       string
		token      string
		viaQuery   bool
		wantStatus int
		wantBody   string
	}{
		{"own attempt", "/attempts/a_one", token, false, http.StatusOK, "p1"},
		{"own attempt via query param", "/attempts/a_one", token, true, http.StatusOK, "p1"},
		{"someone else's attempt", "/attempts/a_two", token, false, http.StatusForbidden, ""},
		{"no token", "/attempts/a_one", "", false, http.StatusUnauthorized, ""},
		{"garbage token", "/attempts/a_one", "nope", false, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := tt.path
			if tt.viaQuery {
				target += "?token=" + tt.token
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if !tt.viaQuery && tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status=%d, want %d (body=%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Fatalf("body=%q, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestTrainerTokenRejectedOnParticipantRoute(t *testing.T) {
	r, authSvc := newTestRouter(t)

	login, err := authSvc.Login("trainer", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/attempts/a_one", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	// A trainer token carries no attempt scope, so it can never match the
	// attempt named in the route.
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status=%d, want 403", rec.Code)
	}
}
