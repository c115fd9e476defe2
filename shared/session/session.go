package session

//go:generate go run go.uber.org/mock/mockgen -source=./session.go -destination=./mocks/session_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"curtainraiser/config"
	"curtainraiser/infras/otel"
	"curtainraiser/shared/constant"
	"curtainraiser/shared/timezone"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	flashKeyPrefix   = "flash:"
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	ID        string    `json:"id"`
	Identity  string    `json:"identity"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Flash is a one-shot notice shown by the next rendered page.
type Flash struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type Store interface {
	Create(ctx context.Context, identity string) (Session, error)
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
	PutFlash(ctx context.Context, id string, flash Flash) error
	PopFlash(ctx context.Context, id string) (Flash, bool, error)
	TTL() time.Duration
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
	otel   otel.Otel
}

func NewRedisStore(client *redis.Client, cfg *config.Config, otel otel.Otel) Store {
	return &redisStore{
		client: client,
		ttl:    time.Duration(cfg.Session.TTLMinutes) * time.Minute,
		otel:   otel,
	}
}

func (s *redisStore) TTL() time.Duration {
	return s.ttl
}

func (s *redisStore) Create(ctx context.Context, identity string) (sess Session, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelSessionScopeName, constant.OtelSessionScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sess = Session{
		ID:        uuid.NewString(),
		Identity:  identity,
		ExpiresAt: timezone.Now().Add(s.ttl),
	}

	raw, err := json.Marshal(sess)
	if err != nil {
		return Session{}, fmt.Errorf("failed to marshal session: %w", err)
	}

	if err = s.client.Set(ctx, sessionKeyPrefix+sess.ID, raw, s.ttl).Err(); err != nil {
		return Session{}, fmt.Errorf("failed to store session: %w", err)
	}

	return sess, nil
}

func (s *redisStore) Get(ctx context.Context, id string) (sess Session, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelSessionScopeName, constant.OtelSessionScopeName+".Get")
	defer scope.End()

	raw, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrNotFound
	}

	if err != nil {
		scope.TraceError(err)

		return Session{}, fmt.Errorf("failed to load session: %w", err)
	}

	if err = json.Unmarshal(raw, &sess); err != nil {
		scope.TraceError(err)

		return Session{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return sess, nil
}

// Delete drops the session and any unread flash.
func (s *redisStore) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelSessionScopeName, constant.OtelSessionScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.client.Del(ctx, sessionKeyPrefix+id, flashKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// PutFlash replaces the session's flash slot.
func (s *redisStore) PutFlash(ctx context.Context, id string, flash Flash) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelSessionScopeName, constant.OtelSessionScopeName+".PutFlash")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	raw, err := json.Marshal(flash)
	if err != nil {
		return fmt.Errorf("failed to marshal flash: %w", err)
	}

	if err = s.client.Set(ctx, flashKeyPrefix+id, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store flash: %w", err)
	}

	return nil
}

// PopFlash reads and clears the flash slot atomically.
func (s *redisStore) PopFlash(ctx context.Context, id string) (flash Flash, ok bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelSessionScopeName, constant.OtelSessionScopeName+".PopFlash")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	raw, err := s.client.GetDel(ctx, flashKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return Flash{}, false, nil
	}

	if err != nil {
		return Flash{}, false, fmt.Errorf("failed to pop flash: %w", err)
	}

	if err = json.Unmarshal(raw, &flash); err != nil {
		return Flash{}, false, fmt.Errorf("failed to unmarshal flash: %w", err)
	}

	return flash, true, nil
}

type contextKey struct{}

// WithSession stores the authenticated session on ctx.
func WithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

func FromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(contextKey{}).(Session)

	return sess, ok
}

// Identity names the actor for audit columns; requests without a session act as guest.
func Identity(ctx context.Context) string {
	if sess, ok := FromContext(ctx); ok && sess.Identity != "" {
		return sess.Identity
	}

	return constant.ContextGuest
}
