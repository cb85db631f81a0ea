package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/longboard/pkg/adapters/memory"
	"github.com/aretw0/longboard/pkg/designspace"
	"github.com/aretw0/longboard/pkg/domain"
	"github.com/aretw0/longboard/pkg/navigation"
	"github.com/aretw0/longboard/pkg/ports"
	"github.com/aretw0/longboard/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SlowStore simulates latency to provoke race conditions if locking is missing.
type SlowStore struct {
	*memory.Store
	saves int
	mu    sync.Mutex
}

func (s *SlowStore) Save(ctx context.Context, id string, state *domain.DocumentState) error {
	time.Sleep(5 * time.Millisecond) // Simulate IO
	s.mu.Lock()
	s.saves++
	s.mu.Unlock()
	return s.Store.Save(ctx, id, state)
}

func axes() []domain.Axis {
	return []domain.Axis{{Name: "weight", Kind: domain.Continuous, Minimum: 0, Default: 400, Maximum: 1000}}
}

func box(ctx context.Context, name string, continuous, discrete domain.Location) (*domain.Outline, error) {
	w := continuous["weight"].Scalar()
	return &domain.Outline{Name: name, Width: w, Contours: []domain.Contour{{Points: []domain.Point{
		domain.On(0, 0), domain.On(w, 0), domain.On(w, 100), domain.On(0, 100),
	}}}}, nil
}

func opener(ctx context.Context, id string) (*session.Opened, error) {
	return &session.Opened{
		Document:  memory.NewDocument(id, axes()),
		Generator: memory.GeneratorFunc(box),
		Options:   []navigation.Option{navigation.WithGlyph("a")},
	}, nil
}

func TestManager_NotFound(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	err := mgr.View(context.Background(), "missing", func(context.Context, *navigation.Coordinator) error { return nil })
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	assert.ErrorIs(t, mgr.Close(context.Background(), "missing"), domain.ErrDocumentNotFound)
}

func TestManager_UpdatePersists(t *testing.T) {
	ctx := context.Background()
	store := &SlowStore{Store: memory.NewStore()}
	mgr := session.NewManager(store, session.WithOpener(opener))

	err := mgr.Update(ctx, "doc-1", func(ctx context.Context, c *navigation.Coordinator) error {
		_, err := c.SetAxisValue(ctx, "weight", 700)
		return err
	})
	require.NoError(t, err)

	state, err := mgr.Load(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, 700.0, state.Preview["weight"].Scalar())
	assert.Equal(t, domain.RoleHorizontal, state.Roles.Role("weight"))
	assert.Equal(t, []string{"doc-1"}, mgr.Documents())

	saves := store.saves
	err = mgr.View(ctx, "doc-1", func(ctx context.Context, c *navigation.Coordinator) error {
		assert.Equal(t, 700.0, c.Document().PreviewLocation()["weight"].Scalar())
		return nil
	})
	require.NoError(t, err)
	err = mgr.Update(ctx, "doc-1", func(ctx context.Context, c *navigation.Coordinator) error {
		return c.OnGestureBegin(ctx, "a")
	})
	require.NoError(t, err)
	assert.Equal(t, saves, store.saves, "unchanged state is not saved again")
}

func TestManager_RegisterRestores(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Save(ctx, "doc", &domain.DocumentState{
		DocumentID: "doc",
		Preview:    domain.LocationFromScalars(map[string]float64{"weight": 123}),
		Roles:      domain.Roles{{Axis: "weight", Role: domain.RoleVertical}},
	}))

	mgr := session.NewManager(store)
	doc := memory.NewDocument("doc", axes())
	coord, err := mgr.Register(ctx, doc, memory.GeneratorFunc(box))
	require.NoError(t, err)

	assert.Equal(t, 123.0, doc.PreviewLocation()["weight"].Scalar())
	assert.Equal(t, domain.RoleVertical, coord.Roles().Role("weight"))
}

func TestManager_Locking(t *testing.T) {
	ctx := context.Background()
	store := &SlowStore{Store: memory.NewStore()}
	mgr := session.NewManager(store, session.WithOpener(opener),
		session.WithCoordinatorOptions(navigation.WithRand(designspace.NewRand(3))))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(v float64) {
			defer wg.Done()
			err := mgr.Update(ctx, "race", func(ctx context.Context, c *navigation.Coordinator) error {
				_, err := c.SetAxisValue(ctx, "weight", v)
				return err
			})
			assert.NoError(t, err)
		}(float64(i * 10))
	}
	wg.Wait()

	assert.Equal(t, []string{"race"}, mgr.Documents(), "one coordinator per document")

	var preview float64
	require.NoError(t, mgr.View(ctx, "race", func(_ context.Context, c *navigation.Coordinator) error {
		preview = c.Document().PreviewLocation()["weight"].Scalar()
		return nil
	}))
	state, err := mgr.Load(ctx, "race")
	require.NoError(t, err)
	assert.Equal(t, preview, state.Preview["weight"].Scalar(), "the last writer is persisted")
}

func TestManager_CloseCancelsGesture(t *testing.T) {
	ctx := context.Background()
	mgr := session.NewManager(memory.NewStore(), session.WithOpener(opener))

	var coord *navigation.Coordinator
	require.NoError(t, mgr.Update(ctx, "doc", func(ctx context.Context, c *navigation.Coordinator) error {
		coord = c
		return c.OnGestureBegin(ctx, "a")
	}))
	require.NoError(t, mgr.Close(ctx, "doc"))
	assert.False(t, coord.Dragging())
	assert.Empty(t, mgr.Documents())
}

func TestManager_OpenerOptions(t *testing.T) {
	ctx := context.Background()
	mgr := session.NewManager(memory.NewStore(), session.WithOpener(opener))

	glyph := func(ctx context.Context, c *navigation.Coordinator) error {
		assert.Equal(t, "a", c.Glyph())
		frame, err := c.SetAxisValue(ctx, "weight", 500)
		require.NoError(t, err)
		assert.NotNil(t, frame, "the opened glyph is rendered")
		return nil
	}
	require.NoError(t, mgr.Update(ctx, "doc", glyph))
	require.NoError(t, mgr.Close(ctx, "doc"))
	require.NoError(t, mgr.Update(ctx, "doc", glyph))
}

// frameCounter is a FrameSink safe for the manager's background renders.
type frameCounter struct {
	mu     sync.Mutex
	frames []ports.Frame
}

func (f *frameCounter) Present(_ context.Context, frame ports.Frame) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, frame)
}

func (f *frameCounter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.frames)
}

func TestManager_FollowsExternalPreviewChanges(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	sink := &frameCounter{}
	mgr := session.NewManager(store, session.WithCoordinatorOptions(navigation.WithFrameSink(sink)))

	doc := memory.NewDocument("doc", axes())
	_, err := mgr.Register(ctx, doc, memory.GeneratorFunc(box), navigation.WithGlyph("a"))
	require.NoError(t, err)

	require.NoError(t, mgr.Update(ctx, "doc", func(ctx context.Context, c *navigation.Coordinator) error {
		_, err := c.SetAxisValue(ctx, "weight", 300)
		return err
	}))
	assert.Equal(t, 1, sink.count())
	assert.Never(t, func() bool { return sink.count() > 1 }, 50*time.Millisecond, 5*time.Millisecond,
		"the coordinator's own writes are not rendered twice")

	doc.SetPreviewLocation(domain.LocationFromScalars(map[string]float64{"weight": 700}))
	require.Eventually(t, func() bool { return sink.count() == 2 }, time.Second, 5*time.Millisecond)

	sink.mu.Lock()
	assert.Equal(t, 700.0, sink.frames[1].Stats.Width)
	sink.mu.Unlock()
	assert.Eventually(t, func() bool {
		state, err := store.Load(ctx, "doc")
		return err == nil && state.Preview["weight"].Scalar() == 700
	}, time.Second, 5*time.Millisecond, "external changes are persisted")
}
