package domain

import "time"

// Modifier flags alter how a sample's velocity is applied.
type Modifier uint8

const (
	// ModConstrain locks the drag to its dominant direction.
	ModConstrain Modifier = 1 << iota
	// ModPrecision damps the velocity for fine adjustments.
	ModPrecision
)

// Has reports whether all flags in f are set.
func (m Modifier) Has(f Modifier) bool { return m&f == f }

// Position is a pointer position in screen units.
type Position struct {
	X float64 `json:"x" yaml:"x" mapstructure:"x"`
	Y float64 `json:"y" yaml:"y" mapstructure:"y"`
}

// Sub returns p - o.
func (p Position) Sub(o Position) Position { return Position{p.X - o.X, p.Y - o.Y} }

// Add returns p + o.
func (p Position) Add(o Position) Position { return Position{p.X + o.X, p.Y + o.Y} }

// Sample is one pointer event of a drag. Timestamp is measured from any
// fixed origin; only differences between samples matter.
type Sample struct {
	Position  Position      `json:"position" yaml:"position" mapstructure:"position"`
	Timestamp time.Duration `json:"timestamp" yaml:"timestamp" mapstructure:"timestamp"`
	Modifiers Modifier      `json:"modifiers,omitempty" yaml:"modifiers" mapstructure:"modifiers"`
}
