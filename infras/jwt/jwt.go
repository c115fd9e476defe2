package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"errors"
	"fmt"
	"time"

	"curtainraiser/config"
	"curtainraiser/shared/timezone"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claim")
	ErrMissingKey   = errors.New("session secret is not configured")
)

// Claims wrap a server-side session id; the session itself lives in Redis.
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type JWT interface {
	Generate(sessionID, subject string, ttl time.Duration) (string, error)
	Validate(tokenString string) (*Claims, error)
}

type Service struct {
	config *config.Config
}

func New(cfg *config.Config) JWT {
	return &Service{
		config: cfg,
	}
}

// Generate signs a session token valid for ttl.
func (s *Service) Generate(sessionID, subject string, ttl time.Duration) (string, error) {
	secret, err := s.secret()
	if err != nil {
		return "", err
	}

	now := timezone.Now()

	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.App.Name,
			Subject:   subject,
			ID:        sessionID,
		},
	}

	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Validate parses a session token and checks signature, expiry and issuer.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	secret, err := s.secret()
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return secret, nil
	}, jwt.WithIssuer(s.config.App.Name), jwt.WithTimeFunc(timezone.Now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}

		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.SessionID == "" {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

func (s *Service) secret() ([]byte, error) {
	if s.config.Session.Secret == "" {
		return nil, ErrMissingKey
	}

	return []byte(s.config.Session.Secret), nil
}
