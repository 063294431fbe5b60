package model

import "time"

// AttemptState is the lifecycle state of one attempt
type AttemptState string

const (
	AttemptNotStarted AttemptState = "not_started"
	AttemptInProgress AttemptState = "in_progress"
	AttemptCompleted  AttemptState = "completed"
)

// AttemptSnapshot is the participant-facing view of a live attempt
type AttemptSnapshot struct {
	ID               string            `json:"id"`
	EvaluationID     FlexID            `json:"evaluationId"`
	EvaluationTitle  string            `json:"evaluationTitle"`
	ParticipantID    string            `json:"participantId"`
	State            AttemptState      `json:"state"`
	RemainingSeconds int               `json:"remainingSeconds"`
	CurrentIndex     int               `json:"currentIndex"`
	QuestionCount    int               `json:"questionCount"`
	AnsweredCount    int               `json:"answeredCount"`
	CurrentQuestion  *QuestionView     `json:"currentQuestion,omitempty"`
	Answers          map[string]string `json:"answers,omitempty"`
	Result           *Result           `json:"result,omitempty"`
	Certificate      CertificateStatus `json:"certificateStatus,omitempty"`
}

// AttemptCreated is returned when a new attempt is registered
type AttemptCreated struct {
	AttemptID string          `json:"attemptId"`
	Token     string          `json:"token"`
	Attempt   AttemptSnapshot `json:"attempt"`
}

// AttemptRecord is the archived form of a completed attempt
type AttemptRecord struct {
	ID              string            `json:"id" bson:"_id,omitempty"`
	AttemptID       string            `json:"attemptId" bson:"attemptId"`
	EvaluationID    string            `json:"evaluationId" bson:"evaluationId"`
	EvaluationTitle string            `json:"evaluationTitle" bson:"evaluationTitle"`
	ParticipantID   string            `json:"participantId" bson:"participantId"`
	ParticipantName string            `json:"participantName" bson:"participantName"`
	Result          Result            `json:"result" bson:"result"`
	AnsweredCount   int               `json:"answeredCount" bson:"answeredCount"`
	QuestionCount   int               `json:"questionCount" bson:"questionCount"`
	TimedOut        bool              `json:"timedOut" bson:"timedOut"`
	Certificate     CertificateStatus `json:"certificateStatus" bson:"certificateStatus"`
	StartedAt       time.Time         `json:"startedAt" bson:"startedAt"`
	CompletedAt     time.Time         `json:"completedAt" bson:"completedAt"`
}
