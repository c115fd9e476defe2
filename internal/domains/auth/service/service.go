package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/auth_mock.go -package=mocks

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"curtainraiser/config"
	"curtainraiser/infras/jwt"
	"curtainraiser/infras/otel"
	"curtainraiser/internal/domains/auth/model/dto"
	"curtainraiser/shared/constant"
	"curtainraiser/shared/failure"
	"curtainraiser/shared/password"
	"curtainraiser/shared/session"
	"curtainraiser/shared/validator"

	"github.com/rs/zerolog/log"
)

const messageSessionExpired = "session expired"

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	Authenticate(ctx context.Context, token string) (session.Session, error)
	Logout(ctx context.Context, token string) error
}

type serviceImpl struct {
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
	sessions   session.Store
}

func New(cfg *config.Config, otel otel.Otel, jwt jwt.JWT, sessions session.Store) Auth {
	return &serviceImpl{
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
		sessions:   sessions,
	}
}

// Login checks the configured admin credentials and opens a server-side session.
func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, failure.InvalidCredentials
	}

	if err = s.verify(req); err != nil {
		return res, err
	}

	sess, err := s.sessions.Create(ctx, req.Username)
	if err != nil {
		log.Error().Err(err).Msg("failed to create session")

		return res, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := s.jwtService.Generate(sess.ID, sess.Identity, s.sessions.TTL())
	if err != nil {
		log.Error().Err(err).Msg("failed to sign session token")

		if delErr := s.sessions.Delete(ctx, sess.ID); delErr != nil {
			log.Warn().Err(delErr).Str("session_id", sess.ID).Msg("failed to drop orphan session")
		}

		return res, fmt.Errorf("failed to sign session token: %w", err)
	}

	log.Info().Str("identity", sess.Identity).Msg("admin logged in")

	return dto.LoginResponse{Token: token, SessionID: sess.ID, ExpiresAt: sess.ExpiresAt}, nil
}

func (s *serviceImpl) verify(req dto.LoginRequest) error {
	admin := s.cfg.Admin

	if admin.Username == "" || admin.PasswordHash == "" {
		log.Warn().Msg("login attempted but no admin credentials are configured")

		_ = password.Burn(req.Password)

		return failure.InvalidCredentials
	}

	if subtle.ConstantTimeCompare([]byte(req.Username), []byte(admin.Username)) != 1 {
		log.Warn().Str("username", req.Username).Msg("login attempt with unknown username")

		_ = password.Burn(req.Password)

		return failure.InvalidCredentials
	}

	err := password.Verify(req.Password, admin.PasswordHash)
	if errors.Is(err, password.ErrInvalidPassword) {
		log.Warn().Str("username", req.Username).Msg("login attempt with wrong password")

		return failure.InvalidCredentials
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to verify admin password")

		return fmt.Errorf("failed to verify admin password: %w", err)
	}

	return nil
}

// Authenticate resolves a session cookie token to a live session.
func (s *serviceImpl) Authenticate(ctx context.Context, token string) (sess session.Session, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Authenticate")
	defer scope.End()

	claims, err := s.jwtService.Validate(token)
	if err != nil {
		return sess, failure.Unauthorized(err.Error())
	}

	sess, err = s.sessions.Get(ctx, claims.SessionID)
	if errors.Is(err, session.ErrNotFound) {
		return sess, failure.Unauthorized(messageSessionExpired)
	}

	if err != nil {
		scope.TraceError(err)

		return sess, fmt.Errorf("failed to load session: %w", err)
	}

	if sess.Identity != claims.Subject {
		return session.Session{}, failure.Unauthorized(jwt.ErrInvalidClaim.Error())
	}

	return sess, nil
}

// Logout ends the session behind token. An unusable token is already logged out.
func (s *serviceImpl) Logout(ctx context.Context, token string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, err := s.jwtService.Validate(token)
	if err != nil {
		return nil
	}

	if err = s.sessions.Delete(ctx, claims.SessionID); err != nil {
		log.Error().Err(err).Str("session_id", claims.SessionID).Msg("failed to delete session")

		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
