package domain

// DefaultSensitivity converts velocity × axis scale into axis units.
// For a 1000 unit axis a drag of 1 px/s moves the axis by 0.05 units.
const DefaultSensitivity = 0.00005

// DefaultPrecisionDamping is applied to velocities while the precision modifier is held.
const DefaultPrecisionDamping = 0.1

// DefaultKinkPrecision is the number of decimals the tangent dot product is rounded to.
const DefaultKinkPrecision = 3

// UnknownAxisPolicy decides what happens to location entries naming axes the
// document does not declare.
type UnknownAxisPolicy string

const (
	UnknownAxisPassThrough UnknownAxisPolicy = "passthrough"
	UnknownAxisReject      UnknownAxisPolicy = "reject"
)

// Settings is the flat configuration record read at session start and on
// live settings-change notifications.
type Settings struct {
	AllowExtrapolation bool              `json:"allow_extrapolation" yaml:"allow_extrapolation" mapstructure:"allow_extrapolation"`
	Sensitivity        float64           `json:"sensitivity" yaml:"sensitivity" mapstructure:"sensitivity"`
	PrecisionDamping   float64           `json:"precision_damping" yaml:"precision_damping" mapstructure:"precision_damping"`
	KinkPrecision      int               `json:"kink_precision" yaml:"kink_precision" mapstructure:"kink_precision"`
	RandomMargin       float64           `json:"random_margin" yaml:"random_margin" mapstructure:"random_margin"`
	UnknownAxes        UnknownAxisPolicy `json:"unknown_axes" yaml:"unknown_axes" mapstructure:"unknown_axes"`
	// ShowPoints adds point markers and source vectors to every frame.
	ShowPoints bool `json:"show_points" yaml:"show_points" mapstructure:"show_points"`
}

// DefaultSettings mirrors the shipped preferences: extrapolation allowed.
func DefaultSettings() Settings {
	return Settings{
		AllowExtrapolation: true,
		Sensitivity:        DefaultSensitivity,
		PrecisionDamping:   DefaultPrecisionDamping,
		KinkPrecision:      DefaultKinkPrecision,
		UnknownAxes:        UnknownAxisPassThrough,
	}
}

// Normalize fills zero fields with defaults.
func (s Settings) Normalize() Settings {
	if s.Sensitivity <= 0 {
		s.Sensitivity = DefaultSensitivity
	}
	if s.PrecisionDamping <= 0 {
		s.PrecisionDamping = DefaultPrecisionDamping
	}
	if s.KinkPrecision <= 0 {
		s.KinkPrecision = DefaultKinkPrecision
	}
	if s.RandomMargin < 0 {
		s.RandomMargin = 0
	}
	if s.UnknownAxes == "" {
		s.UnknownAxes = UnknownAxisPassThrough
	}
	return s
}
