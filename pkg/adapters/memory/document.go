package memory

import (
	"slices"
	"sync"

	"github.com/aretw0/longboard/pkg/designspace"
	"github.com/aretw0/longboard/pkg/domain"
	"github.com/aretw0/longboard/pkg/ports"
)

// Document is an in-memory ports.Document. Safe for concurrent use.
type Document struct {
	mu        sync.RWMutex
	id        string
	family    string
	axes      []domain.Axis
	sources   []domain.Source
	instances []domain.Instance
	preview   domain.Location
	lib       *Lib
	observers []func(domain.Location)
}

// DocumentOption configures a Document.
type DocumentOption func(*Document)

// WithSources sets the document's sources.
func WithSources(sources ...domain.Source) DocumentOption {
	return func(d *Document) {
		d.sources = append(d.sources, sources...)
	}
}

// WithInstances sets the document's instances.
func WithInstances(instances ...domain.Instance) DocumentOption {
	return func(d *Document) {
		d.instances = append(d.instances, instances...)
	}
}

// WithPreview sets the initial preview location. Defaults to the default location.
func WithPreview(loc domain.Location) DocumentOption {
	return func(d *Document) {
		d.preview = loc.Clone()
	}
}

// WithLib seeds the document lib.
func WithLib(values map[string]any) DocumentOption {
	return func(d *Document) {
		for k, v := range values {
			d.lib.Set(k, v)
		}
	}
}

// WithFamilyName sets the family name used for preview file names.
func WithFamilyName(name string) DocumentOption {
	return func(d *Document) {
		d.family = name
	}
}

// NewDocument creates a document over the given axes.
func NewDocument(id string, axes []domain.Axis, opts ...DocumentOption) *Document {
	d := &Document{
		id:   id,
		axes: append([]domain.Axis(nil), axes...),
		lib:  NewLib(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.preview == nil {
		d.preview = designspace.New(d.axes).Default(nil)
	}
	return d
}

// FromFile creates a document from a loaded designspace.
func FromFile(id string, f *designspace.File) *Document {
	return NewDocument(id, f.Axes,
		WithFamilyName(f.Name),
		WithSources(f.Sources...),
		WithInstances(f.Instances...),
		WithLib(f.Lib),
	)
}

func (d *Document) ID() string { return d.id }

// FamilyName returns the designspace name.
func (d *Document) FamilyName() string { return d.family }

func (d *Document) Axes() []domain.Axis {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]domain.Axis(nil), d.axes...)
}

func (d *Document) Sources() []domain.Source {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]domain.Source(nil), d.sources...)
}

func (d *Document) Instances() []domain.Instance {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]domain.Instance(nil), d.instances...)
}

func (d *Document) PreviewLocation() domain.Location {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.preview.Clone()
}

// SetPreviewLocation stores loc and notifies the observers.
func (d *Document) SetPreviewLocation(loc domain.Location) {
	d.mu.Lock()
	d.preview = loc.Clone()
	observers := slices.Clone(d.observers)
	d.mu.Unlock()

	for _, fn := range observers {
		fn(loc.Clone())
	}
}

func (d *Document) AddInstance(inst domain.Instance) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	inst.Location = inst.Location.Clone()
	d.instances = append(d.instances, inst)
	return nil
}

func (d *Document) Lib() ports.Preferences { return d.lib }

// OnPreviewChanged registers an observer called after every SetPreviewLocation.
func (d *Document) OnPreviewChanged(fn func(domain.Location)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, fn)
}

// Lib is an in-memory ports.Preferences.
type Lib struct {
	mu   sync.RWMutex
	data map[string]any
}

// NewLib creates an empty lib.
func NewLib() *Lib {
	return &Lib{data: make(map[string]any)}
}

func (l *Lib) Get(key string) (any, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	v, ok := l.data[key]
	return v, ok
}

func (l *Lib) Set(key string, value any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.data[key] = value
}
