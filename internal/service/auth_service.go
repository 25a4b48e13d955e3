package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/srichai/gradebench/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when email/password do not match the
// seeded teacher account.
var ErrInvalidCredentials = errors.New("invalid credentials")

// TokenType distinguishes token audiences. Only teachers exist in this
// workbench; the type is kept so tokens stay self-describing.
type TokenType string

// TokenTypeTeacher marks a teacher token.
const TokenTypeTeacher TokenType = "teacher"

// Claims extends JWT standard claims with app-specific fields.
type Claims struct {
	jwt.RegisteredClaims
	TokenType TokenType `json:"token_type"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
}

// AuthService handles the mocked single-teacher authentication boundary.
// One account is seeded from config at startup; there is no user storage.
type AuthService struct {
	cfg          *config.Config
	passwordHash string
}

// NewAuthService creates an AuthService and hashes the configured demo
// teacher password.
func NewAuthService(cfg *config.Config) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.TeacherPassword), cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash teacher password: %w", err)
	}
	return &AuthService{cfg: cfg, passwordHash: string(hash)}, nil
}

// Login checks the credentials against the seeded teacher account and
// returns a signed JWT.
func (s *AuthService) Login(email, password string) (string, error) {
	if email != s.cfg.TeacherEmail {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.GenerateTeacherToken()
}

// GenerateTeacherToken creates a JWT for the seeded teacher.
func (s *AuthService) GenerateTeacherToken() (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   s.cfg.TeacherEmail,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		TokenType: TokenTypeTeacher,
		Email:     s.cfg.TeacherEmail,
		Name:      s.cfg.TeacherName,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
