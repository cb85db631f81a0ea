package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/longboard/internal/logging"
	"github.com/aretw0/longboard/pkg/domain"
	"github.com/aretw0/longboard/pkg/navigation"
	"github.com/aretw0/longboard/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed lock outlives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Opened is a document resolved by an OpenFunc.
type Opened struct {
	Document  ports.Document
	Generator ports.Generator
	// Options apply to this document's coordinator after the manager's own.
	Options []navigation.Option
}

// OpenFunc resolves a document the manager has not seen yet.
type OpenFunc func(ctx context.Context, documentID string) (*Opened, error)

// PreviewObserver is implemented by documents that report changes of their
// preview location. The manager re-renders and persists changes made by
// parties other than the coordinator.
type PreviewObserver interface {
	OnPreviewChanged(func(domain.Location))
}

// Manager orchestrates access to document navigation sessions.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	store ports.StateStore
	open  OpenFunc

	mu    sync.Mutex                          // Global lock for the maps
	locks map[string]*lockEntry               // Map of active locks
	docs  map[string]*navigation.Coordinator // Registered documents

	locker    ports.DistributedLocker // Optional distributed locker
	lockTTL   time.Duration
	coordOpts []navigation.Option
	logger    *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the TTL of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithOpener sets how unknown document IDs are resolved. Without it they
// fail with domain.ErrDocumentNotFound.
func WithOpener(open OpenFunc) Option {
	return func(m *Manager) {
		m.open = open
	}
}

// WithCoordinatorOptions sets options applied to every coordinator the manager creates.
func WithCoordinatorOptions(opts ...navigation.Option) Option {
	return func(m *Manager) {
		m.coordOpts = append(m.coordOpts, opts...)
	}
}

// NewManager creates a new Manager persisting through store.
func NewManager(store ports.StateStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		docs:    make(map[string]*navigation.Coordinator),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(documentID) after unlocking.
func (m *Manager) acquire(documentID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[documentID]
	if !exists {
		entry = &lockEntry{}
		m.locks[documentID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(documentID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[documentID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, documentID)
	}
}

// Register adds a document and restores its persisted navigation state, if
// any. Registering an ID twice replaces the previous coordinator.
func (m *Manager) Register(ctx context.Context, doc ports.Document, gen ports.Generator, opts ...navigation.Option) (*navigation.Coordinator, error) {
	var coord *navigation.Coordinator
	err := m.WithLock(ctx, doc.ID(), func(ctx context.Context) error {
		var err error
		coord, err = m.register(ctx, doc, gen, opts...)
		return err
	})
	return coord, err
}

func (m *Manager) register(ctx context.Context, doc ports.Document, gen ports.Generator, opts ...navigation.Option) (*navigation.Coordinator, error) {
	all := append(append([]navigation.Option(nil), m.coordOpts...), opts...)
	coord := navigation.NewCoordinator(doc, gen, all...)

	state, err := m.store.Load(ctx, doc.ID())
	switch {
	case err == nil:
		if err := coord.Restore(state); err != nil {
			return nil, err
		}
		m.logger.Debug("document state restored", "document_id", doc.ID(), "updated_at", state.UpdatedAt)
	case !errors.Is(err, domain.ErrStateNotFound):
		return nil, fmt.Errorf("failed to load document state: %w", err)
	}

	m.mu.Lock()
	m.docs[doc.ID()] = coord
	m.mu.Unlock()

	if obs, ok := doc.(PreviewObserver); ok {
		id := doc.ID()
		obs.OnPreviewChanged(func(domain.Location) {
			if coord.WritingPreview() {
				return
			}
			// The writer may hold the document lock.
			go m.previewChanged(id, coord)
		})
	}
	return coord, nil
}

// previewChanged renders and persists a preview location set outside coord.
func (m *Manager) previewChanged(documentID string, coord *navigation.Coordinator) {
	ctx := context.Background()
	err := m.WithLock(ctx, documentID, func(ctx context.Context) error {
		m.mu.Lock()
		current := m.docs[documentID]
		m.mu.Unlock()
		if current != coord {
			return nil
		}
		if _, err := coord.OnDocumentLocationChanged(ctx); err != nil {
			return err
		}
		return m.store.Save(ctx, documentID, coord.State())
	})
	if err != nil {
		m.logger.Warn("failed to follow preview change", "document_id", documentID, "err", err)
	}
}

// coordinator returns the registered coordinator, opening the document on
// first use. The caller holds the document lock.
func (m *Manager) coordinator(ctx context.Context, documentID string) (*navigation.Coordinator, error) {
	m.mu.Lock()
	coord, ok := m.docs[documentID]
	m.mu.Unlock()
	if ok {
		return coord, nil
	}
	if m.open == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrDocumentNotFound, documentID)
	}
	opened, err := m.open(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to open document %q: %w", documentID, err)
	}
	m.logger.Debug("document opened lazily", "document_id", documentID)
	return m.register(ctx, opened.Document, opened.Generator, opened.Options...)
}

// Close forgets a document. A gesture in progress is cancelled.
func (m *Manager) Close(ctx context.Context, documentID string) error {
	return m.WithLock(ctx, documentID, func(ctx context.Context) error {
		m.mu.Lock()
		coord, ok := m.docs[documentID]
		delete(m.docs, documentID)
		m.mu.Unlock()
		if !ok {
			return fmt.Errorf("%w: %q", domain.ErrDocumentNotFound, documentID)
		}
		if coord.Dragging() {
			return coord.OnGestureEnd(ctx, false)
		}
		return nil
	})
}

// Documents returns the registered document IDs, sorted.
func (m *Manager) Documents() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.docs))
	for id := range m.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// View runs fn with the document's coordinator under the document lock.
func (m *Manager) View(ctx context.Context, documentID string, fn func(context.Context, *navigation.Coordinator) error) error {
	return m.WithLock(ctx, documentID, func(ctx context.Context) error {
		coord, err := m.coordinator(ctx, documentID)
		if err != nil {
			return err
		}
		return fn(ctx, coord)
	})
}

// Update runs fn like View and then persists the navigation state if the
// preview location or the role table changed. The state is persisted even
// when fn fails after changing it.
func (m *Manager) Update(ctx context.Context, documentID string, fn func(context.Context, *navigation.Coordinator) error) error {
	return m.WithLock(ctx, documentID, func(ctx context.Context) error {
		coord, err := m.coordinator(ctx, documentID)
		if err != nil {
			return err
		}
		before := coord.State()
		fnErr := fn(ctx, coord)
		after := coord.State()

		if before.Preview.Equal(after.Preview) && rolesEqual(before.Roles, after.Roles) {
			return fnErr
		}
		if err := m.store.Save(ctx, documentID, after); err != nil {
			return errors.Join(fnErr, fmt.Errorf("failed to save document state: %w", err))
		}
		m.logger.Debug("document state saved", "document_id", documentID, "preview", after.Preview.String())
		return fnErr
	})
}

func rolesEqual(a, b domain.Roles) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Load retrieves a document's persisted state.
func (m *Manager) Load(ctx context.Context, documentID string) (*domain.DocumentState, error) {
	var state *domain.DocumentState
	err := m.WithLock(ctx, documentID, func(ctx context.Context) error {
		var err error
		state, err = m.store.Load(ctx, documentID)
		return err
	})
	return state, err
}

// Save persists a document's state.
func (m *Manager) Save(ctx context.Context, documentID string, state *domain.DocumentState) error {
	return m.WithLock(ctx, documentID, func(ctx context.Context) error {
		return m.store.Save(ctx, documentID, state)
	})
}

// Delete removes a document's persisted state.
func (m *Manager) Delete(ctx context.Context, documentID string) error {
	return m.WithLock(ctx, documentID, func(ctx context.Context) error {
		return m.store.Delete(ctx, documentID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying state store.
func (m *Manager) Store() ports.StateStore {
	return m.store
}

// WithLock executes a function while holding the lock for the document.
func (m *Manager) WithLock(ctx context.Context, documentID string, fn func(context.Context) error) error {
	entry := m.acquire(documentID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(documentID)
	}()

	// Distributed Locking
	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, documentID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"document_id", documentID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
