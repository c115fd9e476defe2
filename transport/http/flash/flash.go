package flash

import (
	"context"

	"curtainraiser/shared/constant"
	"curtainraiser/shared/session"

	"github.com/rs/zerolog/log"
)

// Notifier writes and consumes the one-shot notice of the current admin session.
type Notifier interface {
	Success(ctx context.Context, message string)
	Error(ctx context.Context, message string)
	Pop(ctx context.Context) *session.Flash
}

type notifier struct {
	store session.Store
}

func New(store session.Store) Notifier {
	return &notifier{store: store}
}

func (n *notifier) Success(ctx context.Context, message string) {
	n.put(ctx, session.Flash{Type: constant.FlashSuccess, Message: message})
}

func (n *notifier) Error(ctx context.Context, message string) {
	n.put(ctx, session.Flash{Type: constant.FlashError, Message: message})
}

// Pop returns nil when there is no session or no pending notice.
func (n *notifier) Pop(ctx context.Context) *session.Flash {
	sess, ok := session.FromContext(ctx)
	if !ok {
		return nil
	}

	notice, found, err := n.store.PopFlash(ctx, sess.ID)
	if err != nil {
		log.Warn().Err(err).Str("session", sess.ID).Msg("failed to read flash")

		return nil
	}

	if !found {
		return nil
	}

	return &notice
}

func (n *notifier) put(ctx context.Context, notice session.Flash) {
	sess, ok := session.FromContext(ctx)
	if !ok {
		log.Warn().Str("message", notice.Message).Msg("dropping flash without session")

		return
	}

	if err := n.store.PutFlash(ctx, sess.ID, notice); err != nil {
		log.Warn().Err(err).Str("session", sess.ID).Msg("failed to store flash")
	}
}
