package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fathsl/ranya-front-sub000/internal/cache"
	"github.com/fathsl/ranya-front-sub000/internal/model"
	"github.com/fathsl/ranya-front-sub000/internal/repository"
	"github.com/fathsl/ranya-front-sub000/internal/session"
)

var ErrAttemptNotFound = errors.New("attempt not found")

// QuestionSource loads evaluation blueprints from the learning store
type QuestionSource interface {
	LoadEvaluation(ctx context.Context, evaluationID string) (*model.Evaluation, error)
}

// CertificateIssuer posts certificate-creation requests to the learning store
type CertificateIssuer interface {
	IssueCertificate(ctx context.Context, req *model.CertificateRequest) (*model.CertificateRecord, error)
}

// AttemptService owns the in-memory registry of live attempts and drives
// their countdowns. One session per attempt; one timer per in-progress
// session, cancelled exactly once on completion or abandonment.
type AttemptService struct {
	source      QuestionSource
	issuer      CertificateIssuer
	defCache    cache.DefinitionCache     // optional
	scores      cache.ScoreBoard          // optional
	archive     repository.AttemptArchive // optional
	authSvc     *AuthService
	broadcaster Broadcaster // optional

	tickInterval time.Duration

	mu       sync.RWMutex
	attempts map[string]*attempt
}

// attempt pairs a session with the lock that serializes all mutations on it.
// The lock is what collapses the "user submits" vs "timer hits zero" race
// into a single completed transition.
type attempt struct {
	mu          sync.Mutex
	sess        *session.Session
	cancelTimer context.CancelFunc
}

// completion captures everything the post-completion side effects need, so
// they can run outside the session lock.
type completion struct {
	attemptID string
	record    model.AttemptRecord
	result    model.Result
	passed    bool
	request   model.CertificateRequest
}

// NewAttemptService creates the attempt orchestrator. defCache, scores,
// archive and the broadcaster may be nil; the service degrades gracefully
// without them.
func NewAttemptService(
	source QuestionSource,
	issuer CertificateIssuer,
	defCache cache.DefinitionCache,
	scores cache.ScoreBoard,
	archive repository.AttemptArchive,
	authSvc *AuthService,
) *AttemptService {
	return &AttemptService{
		source:       source,
		issuer:       issuer,
		defCache:     defCache,
		scores:       scores,
		archive:      archive,
		authSvc:      authSvc,
		tickInterval: time.Second,
		attempts:     make(map[string]*attempt),
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *AttemptService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// CreateAttempt loads the evaluation blueprint and registers a not-started
// session for it, returning an attempt-scoped participant token.
func (s *AttemptService) CreateAttempt(ctx context.Context, evaluationID, participantID, participantName string) (*model.AttemptCreated, error) {
	eval, err := s.loadDefinition(ctx, evaluationID)
	if err != nil {
		return nil, err
	}

	attemptID := "a_" + uuid.New().String()[:8]
	sess := session.New(attemptID, participantID, participantName, eval)

	token, err := s.authSvc.GenerateParticipantToken(attemptID, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.mu.Lock()
	s.attempts[attemptID] = &attempt{sess: sess}
	s.mu.Unlock()

	return &model.AttemptCreated{
		AttemptID: attemptID,
		Token:     token,
		Attempt:   sess.Snapshot(),
	}, nil
}

// loadDefinition is a read-through over the definition cache. Cache errors
// degrade to a direct load; they never fail an attempt.
func (s *AttemptService) loadDefinition(ctx context.Context, evaluationID string) (*model.Evaluation, error) {
	if s.defCache != nil {
		eval, err := s.defCache.Get(ctx, evaluationID)
		if err != nil {
			log.Printf("[Attempts] definition cache read failed for %s: %v", evaluationID, err)
		} else if eval != nil {
			return eval, nil
		}
	}

	eval, err := s.source.LoadEvaluation(ctx, evaluationID)
	if err != nil {
		return nil, err
	}

	if s.defCache != nil {
		if err := s.defCache.Set(ctx, eval); err != nil {
			log.Printf("[Attempts] definition cache write failed for %s: %v", evaluationID, err)
		}
	}
	return eval, nil
}

// StartAttempt starts the countdown for a not-started attempt
func (s *AttemptService) StartAttempt(ctx context.Context, attemptID string) (*model.AttemptSnapshot, error) {
	at, err := s.get(attemptID)
	if err != nil {
		return nil, err
	}

	at.mu.Lock()
	if err := at.sess.Start(); err != nil {
		at.mu.Unlock()
		return nil, err
	}
	timerCtx, cancel := context.WithCancel(context.Background())
	at.cancelTimer = cancel
	snap := at.sess.Snapshot()
	at.mu.Unlock()

	go s.runCountdown(timerCtx, attemptID)

	s.broadcast(attemptID, "attempt_started", snap)
	return &snap, nil
}

// runCountdown is the sole source of tick() calls for one attempt: a single
// owned 1 Hz ticker, stopped when the session leaves in-progress.
func (s *AttemptService) runCountdown(ctx context.Context, attemptID string) {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			remaining, completed, ok := s.tick(attemptID)
			if !ok {
				return
			}
			s.broadcast(attemptID, "timer_update", map[string]int{"remainingSeconds": remaining})
			if completed {
				return
			}
		}
	}
}

// tick consumes one countdown second. ok=false means the attempt is gone or
// already completed and the runner should exit.
func (s *AttemptService) tick(attemptID string) (remaining int, completed bool, ok bool) {
	s.mu.RLock()
	at := s.attempts[attemptID]
	s.mu.RUnlock()
	if at == nil {
		return 0, false, false
	}

	at.mu.Lock()
	timedOut, err := at.sess.Tick()
	if err != nil {
		// Explicit submit won the race; nothing left to drive.
		at.mu.Unlock()
		return 0, false, false
	}
	remaining = at.sess.RemainingSeconds
	var done *completion
	if timedOut {
		done = s.completeLocked(at, true)
	}
	at.mu.Unlock()

	if done != nil {
		s.afterCompletion(at, done)
	}
	return remaining, timedOut, true
}

// RecordAnswer upserts one answer on an in-progress attempt
func (s *AttemptService) RecordAnswer(ctx context.Context, attemptID, questionID, value string) (*model.AttemptSnapshot, error) {
	return s.withSession(attemptID, func(sess *session.Session) error {
		return sess.RecordAnswer(questionID, value)
	})
}

// Next advances the question cursor
func (s *AttemptService) Next(ctx context.Context, attemptID string) (*model.AttemptSnapshot, error) {
	return s.withSession(attemptID, func(sess *session.Session) error {
		return sess.Next()
	})
}

// Previous moves the question cursor back
func (s *AttemptService) Previous(ctx context.Context, attemptID string) (*model.AttemptSnapshot, error) {
	return s.withSession(attemptID, func(sess *session.Session) error {
		return sess.Previous()
	})
}

// Submit completes an in-progress attempt. Submitting an already-completed
// attempt returns the stored result unchanged and fires no side effects.
func (s *AttemptService) Submit(ctx context.Context, attemptID string) (*model.AttemptSnapshot, error) {
	at, err := s.get(attemptID)
	if err != nil {
		return nil, err
	}

	at.mu.Lock()
	already := at.sess.State == model.AttemptCompleted
	if _, err := at.sess.Submit(); err != nil {
		at.mu.Unlock()
		return nil, err
	}
	var done *completion
	if !already {
		done = s.completeLocked(at, false)
	}
	snap := at.sess.Snapshot()
	at.mu.Unlock()

	if done != nil {
		s.afterCompletion(at, done)
	}
	return &snap, nil
}

// Abandon tears an attempt down with no persistence of partial state
func (s *AttemptService) Abandon(ctx context.Context, attemptID string) error {
	at, err := s.get(attemptID)
	if err != nil {
		return err
	}

	at.mu.Lock()
	if at.cancelTimer != nil {
		at.cancelTimer()
		at.cancelTimer = nil
	}
	at.mu.Unlock()

	s.mu.Lock()
	delete(s.attempts, attemptID)
	s.mu.Unlock()
	return nil
}

// GetAttempt returns the participant-facing snapshot of an attempt
func (s *AttemptService) GetAttempt(ctx context.Context, attemptID string) (*model.AttemptSnapshot, error) {
	at, err := s.get(attemptID)
	if err != nil {
		return nil, err
	}
	at.mu.Lock()
	snap := at.sess.Snapshot()
	at.mu.Unlock()
	return &snap, nil
}

// completeLocked runs under at.mu immediately after the session transitioned
// to completed. It releases the timer and snapshots everything the decoupled
// side effects need.
func (s *AttemptService) completeLocked(at *attempt, timedOut bool) *completion {
	if at.cancelTimer != nil {
		at.cancelTimer()
		at.cancelTimer = nil
	}

	sess := at.sess
	result := *sess.Result
	if result.Passed {
		sess.Certificate = model.CertificatePending
	}

	return &completion{
		attemptID: sess.ID,
		result:    result,
		passed:    result.Passed,
		record: model.AttemptRecord{
			AttemptID:       sess.ID,
			EvaluationID:    sess.Evaluation.ID.String(),
			EvaluationTitle: sess.Evaluation.Title,
			ParticipantID:   sess.ParticipantID,
			ParticipantName: sess.ParticipantName,
			Result:          result,
			AnsweredCount:   len(sess.Answers),
			QuestionCount:   len(sess.Evaluation.Questions),
			TimedOut:        timedOut,
			Certificate:     sess.Certificate,
			StartedAt:       sess.StartedAt,
			CompletedAt:     sess.CompletedAt,
		},
		request: model.CertificateRequest{
			ParticipantID:   sess.ParticipantID,
			EvaluationID:    sess.Evaluation.ID.String(),
			ParticipantName: sess.ParticipantName,
			EvaluationTitle: sess.Evaluation.Title,
		},
	}
}

// afterCompletion runs the decoupled side effects of a completed attempt:
// archive, score board, broadcast and, for a pass, the certificate trigger.
// All of them are best effort against the authoritative in-memory result.
func (s *AttemptService) afterCompletion(at *attempt, done *completion) {
	ctx := context.Background()

	if s.archive != nil {
		if err := s.archive.Create(ctx, &done.record); err != nil {
			log.Printf("[Attempts] failed to archive attempt %s: %v", done.attemptID, err)
		}
	}

	if s.scores != nil {
		if err := s.scores.RecordScore(ctx, done.record.EvaluationID, done.record.ParticipantID, done.result.Percentage); err != nil {
			log.Printf("[Attempts] failed to record score for attempt %s: %v", done.attemptID, err)
		}
	}

	s.broadcast(done.attemptID, "attempt_completed", map[string]interface{}{
		"result":   done.result,
		"timedOut": done.record.TimedOut,
	})

	if done.passed {
		go s.issueCertificate(at, done)
	}
}

// issueCertificate fires the one issuance request a passing completion gets.
// A failure is reported as its own state and leaves the result untouched.
func (s *AttemptService) issueCertificate(at *attempt, done *completion) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	status := model.CertificateIssued
	if _, err := s.issuer.IssueCertificate(ctx, &done.request); err != nil {
		log.Printf("[Attempts] certificate issuance failed for attempt %s: %v", done.attemptID, err)
		status = model.CertificateFailed
	}

	at.mu.Lock()
	at.sess.Certificate = status
	at.mu.Unlock()

	if s.archive != nil {
		if err := s.archive.SetCertificateStatus(context.Background(), done.attemptID, status); err != nil {
			log.Printf("[Attempts] failed to archive certificate status for attempt %s: %v", done.attemptID, err)
		}
	}

	s.broadcast(done.attemptID, "certificate_update", map[string]string{"certificateStatus": string(status)})
}

// withSession applies a mutation under the attempt lock and returns the
// resulting snapshot.
func (s *AttemptService) withSession(attemptID string, fn func(*session.Session) error) (*model.AttemptSnapshot, error) {
	at, err := s.get(attemptID)
	if err != nil {
		return nil, err
	}

	at.mu.Lock()
	defer at.mu.Unlock()
	if err := fn(at.sess); err != nil {
		return nil, err
	}
	snap := at.sess.Snapshot()
	return &snap, nil
}

func (s *AttemptService) get(attemptID string) (*attempt, error) {
	s.mu.RLock()
	at := s.attempts[attemptID]
	s.mu.RUnlock()
	if at == nil {
		return nil, ErrAttemptNotFound
	}
	return at, nil
}

func (s *AttemptService) broadcast(attemptID, event string, payload interface{}) {
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToAttempt(attemptID, event, payload)
	}
}
