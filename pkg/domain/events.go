package domain

import (
	"context"
	"time"
)

// EventType defines the category of a navigation event.
type EventType string

const (
	EventGestureBegin EventType = "gesture_begin"
	EventGestureEnd   EventType = "gesture_end"
	EventSample       EventType = "sample"
	EventUpdateFailed EventType = "update_failed"
	EventPreviewSet   EventType = "preview_set"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp  time.Time `json:"timestamp"`
	Type       EventType `json:"type"`
	DocumentID string    `json:"document_id"`
}

// GestureEvent describes a gesture boundary or a sample. On a sample event
// Dropped marks a sample that was discarded; on the end event it reports
// whether any sample of the gesture was, and Travel is the pointer distance
// covered by the applied samples.
type GestureEvent struct {
	EventBase
	GestureID string    `json:"gesture_id"`
	Location  Location  `json:"location,omitempty"`
	Committed bool      `json:"committed,omitempty"`
	Dropped   bool      `json:"dropped,omitempty"`
	Samples   int       `json:"samples,omitempty"`
	Travel    *Position `json:"travel,omitempty"`
}

// UpdateEvent describes a preview update, successful or not.
type UpdateEvent struct {
	EventBase
	Glyph    string        `json:"glyph"`
	Location Location      `json:"location"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
	Kinks    int           `json:"kinks"`
}

// LifecycleHooks defines callbacks for navigation observability.
// Every hook is optional.
type LifecycleHooks struct {
	OnGestureBegin func(context.Context, *GestureEvent)
	OnGestureEnd   func(context.Context, *GestureEvent)
	OnSample       func(context.Context, *GestureEvent)
	OnUpdate       func(context.Context, *UpdateEvent)
	OnUpdateFailed func(context.Context, *UpdateEvent)
	OnPreviewSet   func(context.Context, *GestureEvent)
}

// Merge returns hooks calling h then o for every event.
func (h LifecycleHooks) Merge(o LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnGestureBegin: chain(h.OnGestureBegin, o.OnGestureBegin),
		OnGestureEnd:   chain(h.OnGestureEnd, o.OnGestureEnd),
		OnSample:       chain(h.OnSample, o.OnSample),
		OnUpdate:       chain(h.OnUpdate, o.OnUpdate),
		OnUpdateFailed: chain(h.OnUpdateFailed, o.OnUpdateFailed),
		OnPreviewSet:   chain(h.OnPreviewSet, o.OnPreviewSet),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
