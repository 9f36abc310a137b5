package services

import (
	"errors"
	"fmt"
	"strings"

	"plantlog/internal/models"
	"plantlog/internal/repositories"
	"plantlog/pkg/security"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// AuthService handles registration, authentication and session tokens.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
	}
}

// Register validates the email and password policy, then persists a new user
// with the hashed digest. The duplicate check here is advisory; the store's
// unique index on email is the actual enforcement point, so a concurrent
// registration with the same email still fails at Create.
func (s *AuthService) Register(email, password string) error {
	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	if !security.IsStrongPassword(password) {
		return ErrWeakPassword
	}

	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return ErrDuplicateEmail
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to check existing email: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: security.HashPassword(password),
	}
	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// Login authenticates the user and returns the session identifying them.
func (s *AuthService) Login(email, password string) (*Session, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user.PasswordHash != security.HashPassword(password) {
		return nil, ErrWrongPassword
	}

	return &Session{UserID: user.ID, Email: user.Email}, nil
}

// Logout clears the session unconditionally; logging out twice is a no-op.
func (s *AuthService) Logout(session *Session) {
	session.Clear()
}

// IssueToken serializes a session into a signed bearer token for the HTTP
// layer. Tokens carry no expiry.
func (s *AuthService) IssueToken(session *Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": session.UserID,
		"email":   session.Email,
		"jti":     uuid.New().String(),
		"iat":     jwt.TimeFunc().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ParseToken validates a bearer token and reconstructs the session it was
// issued for.
func (s *AuthService) ParseToken(tokenString string) (*Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return nil, fmt.Errorf("invalid token: missing user_id claim")
	}
	email, _ := claims["email"].(string)

	return &Session{UserID: uint(userID), Email: email}, nil
}
