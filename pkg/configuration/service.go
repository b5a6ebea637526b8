package configuration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/messages"
	"github.com/goliatone/go-formlayout/pkg/schema"
	"github.com/goliatone/go-formlayout/pkg/widgets"
)

// ErrNoUpdater is returned by Submit when the Service has no updater.
var ErrNoUpdater = errors.New("configuration: updater not configured")

// Option customises a Service.
type Option func(*Service)

// WithNotifier installs the notification sink.
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithPublisher installs the event publisher used after a submit.
func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithReorderer replaces the drag reorder capability used by Move.
func WithReorderer(r layout.Reorderer) Option {
	return func(s *Service) {
		if r != nil {
			s.reorderer = r
		}
	}
}

// WithOverflowPolicy selects how stored rows wider than the grid are treated
// when a session opens.
func WithOverflowPolicy(policy layout.OverflowPolicy) Option {
	return func(s *Service) {
		s.overflow = policy
	}
}

// WithMessages sets the formatter used for notification text.
func WithMessages(f *messages.Formatter) Option {
	return func(s *Service) {
		if f != nil {
			s.messages = f
		}
	}
}

// WithWidgets sets the registry deciding the size of inserted attributes.
func WithWidgets(reg *widgets.Registry) Option {
	return func(s *Service) {
		if reg != nil {
			s.widgets = reg
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides session id generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// Service opens editing sessions against a set of collaborators.
type Service struct {
	schemas   SchemaFetcher
	configs   ConfigurationFetcher
	updater   ConfigurationUpdater
	notifier  Notifier
	publisher Publisher
	reorderer layout.Reorderer
	overflow  layout.OverflowPolicy
	messages  *messages.Formatter
	widgets   *widgets.Registry
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

// NewService builds a Service. updater may be nil for read-only use.
func NewService(schemas SchemaFetcher, configs ConfigurationFetcher, updater ConfigurationUpdater, opts ...Option) *Service {
	s := &Service{
		schemas:   schemas,
		configs:   configs,
		updater:   updater,
		notifier:  nopNotifier{},
		publisher: nopPublisher{},
		reorderer: layout.SliceReorderer{},
		overflow:  layout.OverflowReject,
		messages:  messages.New(),
		widgets:   widgets.Default(),
		logger:    zap.NewNop(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// NewStoreService is a shorthand for a Service backed by a single Store.
func NewStoreService(store Store, opts ...Option) *Service {
	return NewService(store, store, store, opts...)
}

// Open fetches the schema and the stored configuration of uid concurrently
// and starts a Session on them. A fetch failure is handed to the Notifier
// unchanged and no session is created.
func (s *Service) Open(ctx context.Context, uid string) (*Session, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return nil, ErrMissingUID
	}
	if s.schemas == nil || s.configs == nil {
		return nil, errors.New("configuration: fetchers not configured")
	}

	var (
		sch schema.Schema
		cfg Configuration
	)
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		sch, err = s.schemas.FetchSchema(gctx, uid)
		return err
	})
	group.Go(func() error {
		var err error
		cfg, err = s.configs.FetchConfiguration(gctx, uid)
		return err
	})
	if err := group.Wait(); err != nil {
		s.notifier.Notify(ctx, Notification{Kind: NotifyWarning, UID: uid, Message: err.Error()})
		s.logger.Warn("open session failed", zap.String("uid", uid), zap.Error(err))
		return nil, fmt.Errorf("configuration: open %s: %w", uid, err)
	}

	session, err := s.newSession(uid, sch, cfg)
	if err != nil {
		s.notifier.Notify(ctx, Notification{Kind: NotifyWarning, UID: uid, Message: err.Error()})
		return nil, err
	}
	s.logger.Debug("session opened",
		zap.String("uid", uid),
		zap.String("session", session.ID),
		zap.Int("rows", len(session.rows)),
	)
	return session, nil
}

// Start begins a Session from values the caller already holds.
func (s *Service) Start(sch schema.Schema, cfg Configuration) (*Session, error) {
	uid := cfg.UID
	if uid == "" {
		uid = sch.UID
	}
	return s.newSession(uid, sch, cfg)
}

func (s *Service) newSession(uid string, sch schema.Schema, cfg Configuration) (*Session, error) {
	if cfg.UID == "" {
		cfg.UID = uid
	}
	rows, err := cfg.Rows(layout.WithOverflowPolicy(s.overflow))
	if err != nil {
		return nil, err
	}
	current := withDefaultMainField(cfg.Settings, sch.Attributes)
	now := s.now()
	return &Session{
		ID:       s.newID(),
		UID:      uid,
		Schema:   sch,
		OpenedAt: now,
		service:  s,
		original: cfg,
		rows:     rows,
		settings: current,
		touched:  now,
	}, nil
}
