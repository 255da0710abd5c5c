package viveka

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/vivekalabs/viveka/internal/adapters/memory"
	"github.com/vivekalabs/viveka/internal/dialogue"
	"github.com/vivekalabs/viveka/internal/logging"
	"github.com/vivekalabs/viveka/pkg/domain"
	"github.com/vivekalabs/viveka/pkg/ports"
	"github.com/vivekalabs/viveka/pkg/session"
)

// Version is the build version, overridable via ldflags.
var Version = "dev"

// Advisor is the high-level entry point for the Viveka library. It wraps the
// dialogue controller and the session manager and provides a simplified API
// for hosts: one call per user turn, persistence handled internally.
type Advisor struct {
	controller *dialogue.Controller
	sessions   *session.Manager

	store    ports.SessionStore
	locker   ports.DistributedLocker
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	verifier dialogue.Verifier
	clock    func() time.Time
}

// Option defines a functional option for configuring the Advisor.
type Option func(*Advisor)

// WithStore injects a session store. Defaults to the in-memory store.
func WithStore(store ports.SessionStore) Option {
	return func(a *Advisor) { a.store = store }
}

// WithLocker enables distributed locking for multi-instance deployments.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(a *Advisor) { a.locker = locker }
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Advisor) { a.logger = logger }
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(a *Advisor) { a.hooks = hooks }
}

// WithVerifier replaces the randomized document verifier.
func WithVerifier(v dialogue.Verifier) Option {
	return func(a *Advisor) { a.verifier = v }
}

// WithClock replaces the time source, mostly for tests.
func WithClock(clock func() time.Time) Option {
	return func(a *Advisor) { a.clock = clock }
}

// New initializes a Viveka Advisor.
func New(opts ...Option) (*Advisor, error) {
	adv := &Advisor{}
	for _, opt := range opts {
		opt(adv)
	}

	if adv.store == nil {
		adv.store = memory.NewStore()
	}
	if adv.logger == nil {
		adv.logger = logging.NewNop()
	}

	ctrlOpts := []dialogue.Option{
		dialogue.WithLogger(adv.logger),
		dialogue.WithLifecycleHooks(adv.hooks),
	}
	if adv.verifier != nil {
		ctrlOpts = append(ctrlOpts, dialogue.WithVerifier(adv.verifier))
	}
	if adv.clock != nil {
		ctrlOpts = append(ctrlOpts, dialogue.WithClock(adv.clock))
	}
	adv.controller = dialogue.NewController(ctrlOpts...)

	mgrOpts := []session.Option{session.WithLogger(adv.logger)}
	if adv.locker != nil {
		mgrOpts = append(mgrOpts, session.WithLocker(adv.locker))
	}
	adv.sessions = session.NewManager(adv.store, mgrOpts...)

	return adv, nil
}

// StartSession creates (or resumes) a conversation. A fresh session opens
// with the advisor greeting already in the transcript. An empty id generates
// a new one. The returned bool reports whether the session was created.
func (a *Advisor) StartSession(ctx context.Context, id string) (*domain.Session, bool, error) {
	if id == "" {
		id = NewSessionID()
	}
	return a.sessions.LoadOrStart(ctx, id, func() *domain.Session {
		return a.controller.StartSession(ctx, id)
	})
}

// Send processes one user text turn and persists the updated session.
func (a *Advisor) Send(ctx context.Context, id, text string) (*domain.Session, error) {
	sess, _, err := a.SendWithDiff(ctx, id, text)
	return sess, err
}

// SendWithDiff is Send plus the resulting session delta. The delta is
// computed inside the session lock, so concurrent turns on one session
// yield disjoint transcript deltas.
func (a *Advisor) SendWithDiff(ctx context.Context, id, text string) (*domain.Session, *domain.SessionDiff, error) {
	return a.mutate(ctx, id, func(s *domain.Session) error {
		return a.controller.HandleText(ctx, s, text)
	})
}

// Upload resolves one document upload and persists the updated session.
func (a *Advisor) Upload(ctx context.Context, id, documentLabel, fileName string) (*domain.Session, error) {
	sess, _, err := a.UploadWithDiff(ctx, id, documentLabel, fileName)
	return sess, err
}

// UploadWithDiff is Upload plus the resulting session delta, computed
// inside the session lock.
func (a *Advisor) UploadWithDiff(ctx context.Context, id, documentLabel, fileName string) (*domain.Session, *domain.SessionDiff, error) {
	return a.mutate(ctx, id, func(s *domain.Session) error {
		return a.controller.HandleUpload(ctx, s, documentLabel, fileName)
	})
}

// Letter generates the sanction letter for an approved session.
func (a *Advisor) Letter(ctx context.Context, id string) (domain.Letter, error) {
	var letter domain.Letter
	err := a.sessions.WithLock(ctx, id, func(ctx context.Context) error {
		s, err := a.sessions.Store().Load(ctx, id)
		if err != nil {
			return err
		}
		letter, err = a.controller.SanctionLetter(s)
		return err
	})
	return letter, err
}

// Get returns a session without mutating it.
func (a *Advisor) Get(ctx context.Context, id string) (*domain.Session, error) {
	return a.sessions.Load(ctx, id)
}

// Delete removes a session.
func (a *Advisor) Delete(ctx context.Context, id string) error {
	return a.sessions.Delete(ctx, id)
}

// List returns all known session IDs.
func (a *Advisor) List(ctx context.Context) ([]string, error) {
	return a.sessions.List(ctx)
}

// Sessions exposes the underlying session manager for advanced hosts.
func (a *Advisor) Sessions() *session.Manager {
	return a.sessions
}

// mutate loads a session, applies fn, saves the result and diffs the two
// snapshots, all under the session lock so there is exactly one writer per
// conversation and every delta is observed exactly once.
func (a *Advisor) mutate(ctx context.Context, id string, fn func(*domain.Session) error) (*domain.Session, *domain.SessionDiff, error) {
	var out *domain.Session
	var diff *domain.SessionDiff
	err := a.sessions.WithLock(ctx, id, func(ctx context.Context) error {
		s, err := a.sessions.Store().Load(ctx, id)
		if err != nil {
			return err
		}
		before := s.Clone()
		if err := fn(s); err != nil {
			return err
		}
		if err := a.sessions.Store().Save(ctx, id, s); err != nil {
			return fmt.Errorf("failed to persist session: %w", err)
		}
		out = s
		diff = domain.Diff(before, s)
		return nil
	})
	return out, diff, err
}

// NewSessionID generates a random session identifier.
func NewSessionID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is unrecoverable for ID generation.
		panic(err)
	}
	return "viv-" + hex.EncodeToString(buf)
}
