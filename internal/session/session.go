package session

import (
	"errors"
	"time"

	"github.com/fathsl/ranya-front-sub000/internal/model"
	"github.com/fathsl/ranya-front-sub000/internal/scoring"
)

var (
	ErrNotStartable    = errors.New("evaluation is disabled or has no questions")
	ErrAlreadyStarted  = errors.New("attempt has already been started")
	ErrNotInProgress   = errors.New("attempt is not in progress")
	ErrUnknownQuestion = errors.New("question does not belong to this evaluation")
)

// Session is one participant's attempt at an evaluation. It is a plain state
// machine with no internal locking; callers serialize access to it.
type Session struct {
	ID              string
	ParticipantID   string
	ParticipantName string
	Evaluation      *model.Evaluation

	State            model.AttemptState
	RemainingSeconds int
	CurrentIndex     int
	Answers          map[string]model.Answer
	Result           *model.Result
	Certificate      model.CertificateStatus

	CreatedAt   time.Time
	StartedAt   time.Time
	CompletedAt time.Time
}

// New creates a session in the not-started state
func New(id, participantID, participantName string, eval *model.Evaluation) *Session {
	return &Session{
		ID:              id,
		ParticipantID:   participantID,
		ParticipantName: participantName,
		Evaluation:      eval,
		State:           model.AttemptNotStarted,
		Answers:         make(map[string]model.Answer),
		CreatedAt:       time.Now(),
	}
}

// Start arms the countdown and moves the session in progress. Disabled or
// empty evaluations are rejected before any timer exists.
func (s *Session) Start() error {
	if s.State != model.AttemptNotStarted {
		return ErrAlreadyStarted
	}
	if !s.Evaluation.Attemptable() {
		return ErrNotStartable
	}
	s.State = model.AttemptInProgress
	s.RemainingSeconds = s.Evaluation.TimeLimitMinutes * 60
	s.CurrentIndex = 0
	s.Answers = make(map[string]model.Answer)
	s.StartedAt = time.Now()
	return nil
}

// RecordAnswer upserts the answer for a question. The cursor does not move.
func (s *Session) RecordAnswer(questionID, value string) error {
	if s.State != model.AttemptInProgress {
		return ErrNotInProgress
	}
	if !s.hasQuestion(questionID) {
		return ErrUnknownQuestion
	}
	s.Answers[questionID] = model.Answer{QuestionID: model.FlexID(questionID), Value: value}
	return nil
}

// Next advances the cursor, clamped to the last question. Moving forward
// never requires an answer and never discards recorded answers.
func (s *Session) Next() error {
	if s.State != model.AttemptInProgress {
		return ErrNotInProgress
	}
	if s.CurrentIndex < len(s.Evaluation.Questions)-1 {
		s.CurrentIndex++
	}
	return nil
}

// Previous moves the cursor back, clamped to the first question
func (s *Session) Previous() error {
	if s.State != model.AttemptInProgress {
		return ErrNotInProgress
	}
	if s.CurrentIndex > 0 {
		s.CurrentIndex--
	}
	return nil
}

// Tick consumes one second of the countdown. Reaching zero forces submission;
// timeout is a regular path into completion, not an error.
func (s *Session) Tick() (completed bool, err error) {
	if s.State != model.AttemptInProgress {
		return false, ErrNotInProgress
	}
	if s.RemainingSeconds > 0 {
		s.RemainingSeconds--
	}
	if s.RemainingSeconds == 0 {
		s.complete()
		return true, nil
	}
	return false, nil
}

// Submit freezes the answer set, scores it and completes the session. A
// second call after completion returns the stored result unchanged.
func (s *Session) Submit() (*model.Result, error) {
	if s.State == model.AttemptCompleted {
		return s.Result, nil
	}
	if s.State != model.AttemptInProgress {
		return nil, ErrNotInProgress
	}
	s.complete()
	return s.Result, nil
}

func (s *Session) complete() {
	values := make(map[string]string, len(s.Answers))
	for id, a := range s.Answers {
		values[id] = a.Value
	}
	result := scoring.Score(s.Evaluation.Questions, values, s.Evaluation.PassingScorePercent)
	s.Result = &result
	s.State = model.AttemptCompleted
	s.CompletedAt = time.Now()
}

// CurrentQuestion returns the question under the cursor, nil outside of an
// in-progress attempt.
func (s *Session) CurrentQuestion() *model.Question {
	if s.State != model.AttemptInProgress {
		return nil
	}
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Evaluation.Questions) {
		return nil
	}
	return &s.Evaluation.Questions[s.CurrentIndex]
}

func (s *Session) hasQuestion(questionID string) bool {
	for _, q := range s.Evaluation.Questions {
		if q.ID.String() == questionID {
			return true
		}
	}
	return false
}

// Snapshot builds the participant-facing view of the session
func (s *Session) Snapshot() model.AttemptSnapshot {
	snap := model.AttemptSnapshot{
		ID:               s.ID,
		EvaluationID:     s.Evaluation.ID,
		EvaluationTitle:  s.Evaluation.Title,
		ParticipantID:    s.ParticipantID,
		State:            s.State,
		RemainingSeconds: s.RemainingSeconds,
		CurrentIndex:     s.CurrentIndex,
		QuestionCount:    len(s.Evaluation.Questions),
		AnsweredCount:    len(s.Answers),
		Result:           s.Result,
		Certificate:      s.Certificate,
	}
	if len(s.Answers) > 0 {
		snap.Answers = make(map[string]string, len(s.Answers))
		for id, a := range s.Answers {
			snap.Answers[id] = a.Value
		}
	}
	if q := s.CurrentQuestion(); q != nil {
		view := model.NewQuestionView(*q)
		snap.CurrentQuestion = &view
	}
	return snap
}
