package longboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/longboard/internal/adapters/file"
	"github.com/aretw0/longboard/internal/config"
	"github.com/aretw0/longboard/internal/logging"
	"github.com/aretw0/longboard/pkg/adapters/memory"
	"github.com/aretw0/longboard/pkg/adapters/redis"
	"github.com/aretw0/longboard/pkg/designspace"
	"github.com/aretw0/longboard/pkg/domain"
	"github.com/aretw0/longboard/pkg/navigation"
	"github.com/aretw0/longboard/pkg/observability"
	"github.com/aretw0/longboard/pkg/ports"
	"github.com/aretw0/longboard/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultStatePath is where the file backend keeps navigation state when
// store.path is empty.
const DefaultStatePath = ".longboard/state"

// Engine is the high-level entry point for the longboard library.
// It wires configuration, persistence and observability around a
// session.Manager.
type Engine struct {
	cfg      *config.Config
	store    ports.StateStore
	locker   ports.DistributedLocker
	manager  *session.Manager
	registry *prometheus.Registry
	metrics  *observability.Metrics
	hooks    domain.LifecycleHooks
	sink     ports.FrameSink
	logger   *slog.Logger
	closers  []func() error
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks, called after the
// built-in metrics and log hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithStore injects a state store, bypassing store.backend.
func WithStore(store ports.StateStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithFrameSink sets where every coordinator presents its frames.
func WithFrameSink(sink ports.FrameSink) Option {
	return func(e *Engine) {
		e.sink = sink
	}
}

// WithRegistry sets the Prometheus registry metrics are registered with.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(e *Engine) {
		e.registry = reg
	}
}

// New initializes an Engine from cfg. A nil cfg means config.Default().
func New(cfg *config.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	if e.registry == nil {
		e.registry = prometheus.NewRegistry()
	}

	if e.store == nil {
		if err := e.openStore(); err != nil {
			return nil, err
		}
	}

	e.metrics = observability.NewMetrics(e.registry)
	hooks := e.metrics.Hooks().
		Merge(observability.LogHooks(e.logger)).
		Merge(e.hooks)

	coordOpts := []navigation.Option{
		navigation.WithSettings(cfg.Settings),
		navigation.WithLifecycleHooks(hooks),
		navigation.WithLogger(e.logger),
		navigation.WithBeams(cfg.Beams...),
	}
	if e.sink != nil {
		coordOpts = append(coordOpts, navigation.WithFrameSink(e.sink))
	}

	mgrOpts := []session.Option{
		session.WithLogger(e.logger),
		session.WithLockTTL(cfg.Store.LockTTL),
		session.WithOpener(e.open),
		session.WithCoordinatorOptions(coordOpts...),
	}
	if e.locker != nil {
		mgrOpts = append(mgrOpts, session.WithLocker(e.locker))
	}
	e.manager = session.NewManager(e.store, mgrOpts...)
	return e, nil
}

func (e *Engine) openStore() error {
	sc := e.cfg.Store
	switch sc.Backend {
	case config.BackendMemory, "":
		e.store = memory.NewStore()
	case config.BackendFile:
		path := sc.Path
		if path == "" {
			path = DefaultStatePath
		}
		e.store = file.New(path)
	case config.BackendRedis:
		var opts []redis.Option
		if sc.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(sc.Redis.Prefix))
		}
		if sc.Redis.TTL > 0 {
			opts = append(opts, redis.WithTTL(sc.Redis.TTL))
		}
		store := redis.New(sc.Redis.Addr, sc.Redis.Password, sc.Redis.DB, opts...)
		e.store = store
		e.closers = append(e.closers, store.Close)
		if sc.Redis.Lock {
			e.locker = redis.NewLocker(store.Client(), "longboard:")
		}
	default:
		return fmt.Errorf("unknown store backend %q", sc.Backend)
	}
	e.logger.Debug("state store ready", "backend", sc.Backend)
	return nil
}

// open resolves configured documents for the manager.
func (e *Engine) open(_ context.Context, documentID string) (*session.Opened, error) {
	dc, ok := e.cfg.Document(documentID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrDocumentNotFound, documentID)
	}
	doc, gen, err := OpenFile(documentID, dc.Path, e.cfg.Settings)
	if err != nil {
		return nil, err
	}
	return &session.Opened{
		Document:  doc,
		Generator: gen,
		Options:   []navigation.Option{navigation.WithGlyph(dc.Glyph)},
	}, nil
}

// OpenFile loads a designspace file as a document. Glyphs come from the
// source nearest to the requested location.
func OpenFile(documentID, path string, settings domain.Settings) (*memory.Document, ports.Generator, error) {
	f, err := designspace.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if documentID == "" {
		documentID = DocumentID(path)
	}
	doc := memory.FromFile(documentID, f)
	space := designspace.New(f.Axes, designspace.WithUnknownAxisPolicy(settings.Normalize().UnknownAxes))
	return doc, memory.NewNearestSource(space, f.Sources), nil
}

// DocumentID derives a document ID from a file name.
func DocumentID(path string) string {
	base := filepath.Base(path)
	for _, ext := range []string{".yaml", ".yml", ".designspace"} {
		if n := len(base) - len(ext); n > 0 && base[n:] == ext {
			base = base[:n]
		}
	}
	return base
}

// Open registers a configured document, restoring its persisted state.
func (e *Engine) Open(ctx context.Context, documentID string) (*navigation.Coordinator, error) {
	dc, ok := e.cfg.Document(documentID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrDocumentNotFound, documentID)
	}
	doc, gen, err := OpenFile(dc.ID, dc.Path, e.cfg.Settings)
	if err != nil {
		return nil, err
	}
	return e.manager.Register(ctx, doc, gen, navigation.WithGlyph(dc.Glyph))
}

// OpenPath registers a designspace file that is not in the configuration.
func (e *Engine) OpenPath(ctx context.Context, path, glyph string) (*navigation.Coordinator, error) {
	doc, gen, err := OpenFile("", path, e.cfg.Settings)
	if err != nil {
		return nil, err
	}
	return e.manager.Register(ctx, doc, gen, navigation.WithGlyph(glyph))
}

// OpenAll registers every configured document.
func (e *Engine) OpenAll(ctx context.Context) error {
	var errs []error
	for _, dc := range e.cfg.Documents {
		if _, err := e.Open(ctx, dc.ID); err != nil {
			errs = append(errs, fmt.Errorf("document %q: %w", dc.ID, err))
		}
	}
	return errors.Join(errs...)
}

// Manager returns the session manager.
func (e *Engine) Manager() *session.Manager { return e.manager }

// Store returns the state store in use.
func (e *Engine) Store() ports.StateStore { return e.store }

// Config returns the configuration the engine was built from.
func (e *Engine) Config() *config.Config { return e.cfg }

// Registry returns the Prometheus registry holding the engine metrics.
func (e *Engine) Registry() *prometheus.Registry { return e.registry }

// Logger returns the engine logger.
func (e *Engine) Logger() *slog.Logger { return e.logger }

// Close releases backend connections.
func (e *Engine) Close() error {
	var errs []error
	for _, c := range e.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
