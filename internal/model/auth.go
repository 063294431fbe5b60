package model

import "github.com/golang-jwt/jwt/v5"

// LoginRequest is the trainer login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse contains the trainer JWT
type LoginResponse struct {
	Token     string `json:"token"`
	TrainerID string `json:"trainerId"`
}

// TrainerClaims are JWT claims for a trainer
type TrainerClaims struct {
	TrainerID string `json:"trainerId"`
	jwt.RegisteredClaims
}

// ParticipantClaims are JWT claims scoped to a single attempt
type ParticipantClaims struct {
	AttemptID     string `json:"attemptId"`
	ParticipantID string `json:"participantId"`
	jwt.RegisteredClaims
}
