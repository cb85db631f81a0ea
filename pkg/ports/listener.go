package ports

import (
	"context"

	"github.com/aretw0/longboard/pkg/domain"
	"github.com/aretw0/longboard/pkg/geometry"
)

// Listener receives the host's gesture and document notifications. Calls
// are delivered serially.
type Listener interface {
	OnGestureBegin(ctx context.Context, glyph string) error
	OnGestureSample(ctx context.Context, s domain.Sample) (*Frame, error)
	OnGestureEnd(ctx context.Context, commit bool) error
	OnDocumentLocationChanged(ctx context.Context) (*Frame, error)
}

// Frame is what the host draws after an update.
type Frame struct {
	DocumentID      string          `json:"document_id"`
	GestureID       string          `json:"gesture_id,omitempty"`
	Glyph           string          `json:"glyph"`
	Location        domain.Location `json:"location"`
	Path            string          `json:"path"`
	Kinks           []geometry.Kink `json:"kinks,omitempty"`
	Stats           geometry.Stats  `json:"stats"`
	Delta           *geometry.Delta `json:"delta,omitempty"`
	StatsText       string          `json:"stats_text"`
	IsExtrapolating bool            `json:"is_extrapolating"`
	Warnings        []string        `json:"warnings,omitempty"`
	Measurements    []geometry.Span `json:"measurements,omitempty"`

	// Points and Vectors are filled when the settings ask for points.
	Points  *geometry.Collection `json:"points,omitempty"`
	Vectors []geometry.Vector    `json:"vectors,omitempty"`
}

// FrameSink presents frames. The engine never draws directly.
type FrameSink interface {
	Present(ctx context.Context, f Frame)
}

// FrameSinkFunc adapts a function to FrameSink.
type FrameSinkFunc func(ctx context.Context, f Frame)

func (fn FrameSinkFunc) Present(ctx context.Context, f Frame) { fn(ctx, f) }
