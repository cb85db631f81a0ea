package ports

import "github.com/aretw0/longboard/pkg/domain"

// Document is the shared document the engine navigates. The preview
// location is owned by the document and changes only through
// SetPreviewLocation, which notifies the document's observers.
type Document interface {
	ID() string
	Axes() []domain.Axis
	Sources() []domain.Source
	Instances() []domain.Instance

	PreviewLocation() domain.Location
	SetPreviewLocation(domain.Location)

	// AddInstance appends an instance. Implementations may assume the caller
	// already checked for duplicates.
	AddInstance(domain.Instance) error

	// Lib is the document's persistent key-value storage; role preferences
	// live under domain.RolesLibKey.
	Lib() Preferences
}

// Preferences is a persistent key-value store.
type Preferences interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}
