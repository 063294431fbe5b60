package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/fathsl/ranya-front-sub000/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService handles trainer and participant authentication
type AuthService struct {
	trainerUsername string
	trainerPassword string
	jwtSecret       []byte
}

// NewAuthService creates a new auth service
func NewAuthService(trainerUsername, trainerPassword, jwtSecret string) *AuthService {
	return &AuthService{
		trainerUsername: trainerUsername,
		trainerPassword: trainerPassword,
		jwtSecret:       []byte(jwtSecret),
	}
}

// Login validates trainer credentials and returns a token
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	if username != s.trainerUsername || password != s.trainerPassword {
		return nil, ErrInvalidCredentials
	}

	trainerID := "t_" + uuid.New().String()[:8]

	claims := &model.TrainerClaims{
		TrainerID: trainerID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(12 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:     tokenString,
		TrainerID: trainerID,
	}, nil
}

// ValidateTrainerToken validates a trainer JWT and returns claims
func (s *AuthService) ValidateTrainerToken(tokenString string) (*model.TrainerClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.TrainerClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.TrainerClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GenerateParticipantToken creates a token scoped to a single attempt
func (s *AuthService) GenerateParticipantToken(attemptID, participantID string) (string, error) {
	claims := &model.ParticipantClaims{
		AttemptID:     attemptID,
		ParticipantID: participantID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateParticipantToken validates a participant JWT and returns claims
func (s *AuthService) ValidateParticipantToken(tokenString string) (*model.ParticipantClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.ParticipantClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.ParticipantClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
