package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fathsl/ranya-front-sub000/internal/model"
)

func storeServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/evaluations/7", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// Numeric id on purpose: the store is loose about primitive types.
		w.Write([]byte(`{"id":7,"title":"Electricity 101","timeLimitMinutes":30,"passingScorePercent":60,"isEnabled":true}`))
	})
	mux.HandleFunc("/evaluations/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/questions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// Mixed foreign key types, out of order, with an order tie.
		w.Write([]byte(`[
			{"id":"q3","evaluationId":"7","type":"short-answer","prompt":"c","correctAnswer":"ohm","points":1,"order":2},
			{"id":"q1","evaluationId":7,"type":"multiple-choice","prompt":"a","options":["A","B"],"correctAnswer":"0","points":1,"order":1},
			{"id":"q4","evaluationId":8,"type":"true-false","prompt":"other eval","correctAnswer":"true","points":1,"order":1},
			{"id":"q2","evaluationId":"7","type":"true-false","prompt":"b","correctAnswer":"true","points":1,"order":1}
		]`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoadEvaluationFiltersCoercesAndSorts(t *testing.T) {
	srv := storeServer(t)
	client := NewClient(srv.URL)

	eval, err := client.LoadEvaluation(context.Background(), "7")
	if err != nil {
		t.Fatalf("LoadEvaluation: %v", err)
	}

	if eval.ID.String() != "7" || eval.Title != "Electricity 101" || !eval.IsEnabled {
		t.Fatalf("unexpected evaluation: %+v", eval)
	}
	if len(eval.Questions) != 3 {
		t.Fatalf("got %d questions, want 3 (foreign eval filtered out)", len(eval.Questions))
	}

	// order 1 tie between q1 and q2 keeps backend order (q1 first), then order 2.
	gotIDs := []string{eval.Questions[0].ID.String(), eval.Questions[1].ID.String(), eval.Questions[2].ID.String()}
	wantIDs := []string{"q1", "q2", "q3"}
	for i := range wantIDs {
		if gotIDs[i] != wantIDs[i] {
			t.Fatalf("question order %v, want %v", gotIDs, wantIDs)
		}
	}
}

func TestLoadEvaluationNoQuestions(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/evaluations/9", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"9","title":"Empty","timeLimitMinutes":10,"passingScorePercent":50,"isEnabled":true}`))
	})
	mux.HandleFunc("/questions", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := NewClient(srv.URL).LoadEvaluation(context.Background(), "9")
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("err=%v, want ErrNoQuestions", err)
	}
}

func TestLoadEvaluationNotFound(t *testing.T) {
	srv := storeServer(t)
	_, err := NewClient(srv.URL).LoadEvaluation(context.Background(), "missing")
	if !errors.Is(err, ErrEvaluationNotFound) {
		t.Fatalf("err=%v, want ErrEvaluationNotFound", err)
	}
}

func TestLoadEvaluationTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).LoadEvaluation(context.Background(), "7")
	if err == nil {
		t.Fatal("expected transport failure")
	}
	if errors.Is(err, ErrNoQuestions) || errors.Is(err, ErrEvaluationNotFound) {
		t.Fatalf("transport failure mapped to domain error: %v", err)
	}
}

func TestIssueCertificate(t *testing.T) {
	var got model.CertificateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/certificates" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":101}`))
	}))
	defer srv.Close()

	record, err := NewClient(srv.URL).IssueCertificate(context.Background(), &model.CertificateRequest{
		ParticipantID:   "p1",
		EvaluationID:    "7",
		ParticipantName: "Jo Doe",
		EvaluationTitle: "Electricity 101",
	})
	if err != nil {
		t.Fatalf("IssueCertificate: %v", err)
	}
	if record.ID.String() != "101" {
		t.Fatalf("record id=%s, want 101", record.ID)
	}
	if got.ParticipantID != "p1" || got.EvaluationID != "7" || got.ParticipantName != "Jo Doe" || got.EvaluationTitle != "Electricity 101" {
		t.Fatalf("unexpected request body: %+v", got)
	}
}

func TestIssueCertificateFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).IssueCertificate(context.Background(), &model.CertificateRequest{}); err == nil {
		t.Fatal("expected issuance failure")
	}
}
