package domain

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ValueKind tags the representation held by a Value.
type ValueKind uint8

const (
	KindScalar      ValueKind = iota // a single coordinate
	KindAnisotropic                  // a (horizontal, vertical) pair
)

// Value is a coordinate on one axis. Anisotropic values carry two effective
// coordinates, one per interpolation direction.
type Value struct {
	kind ValueKind
	x, y float64
}

// Scalar returns a single-coordinate value.
func Scalar(v float64) Value {
	return Value{kind: KindScalar, x: v, y: v}
}

// Anisotropic returns a paired value.
func Anisotropic(x, y float64) Value {
	return Value{kind: KindAnisotropic, x: x, y: y}
}

// Kind reports the representation of the value.
func (v Value) Kind() ValueKind { return v.kind }

// IsAnisotropic reports whether the value is a pair.
func (v Value) IsAnisotropic() bool { return v.kind == KindAnisotropic }

// Scalar returns the mutable scalar: the value itself, or the first element of a pair.
func (v Value) Scalar() float64 { return v.x }

// Pair returns both effective coordinates. Scalars return (v, v).
func (v Value) Pair() (float64, float64) {
	if v.kind == KindAnisotropic {
		return v.x, v.y
	}
	return v.x, v.x
}

// WithScalar replaces the mutable scalar, keeping the second element of a pair.
func (v Value) WithScalar(f float64) Value {
	if v.kind == KindAnisotropic {
		return Anisotropic(f, v.y)
	}
	return Scalar(f)
}

// Map applies fn to every coordinate, preserving the representation.
func (v Value) Map(fn func(float64) float64) Value {
	if v.kind == KindAnisotropic {
		return Anisotropic(fn(v.x), fn(v.y))
	}
	return Scalar(fn(v.x))
}

// Equal reports exact equality of kind and coordinates.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	if v.kind == KindAnisotropic {
		return v.x == o.x && v.y == o.y
	}
	return v.x == o.x
}

func (v Value) String() string {
	if v.kind == KindAnisotropic {
		return fmt.Sprintf("(%.2f, %.2f)", v.x, v.y)
	}
	return fmt.Sprintf("%.2f", v.x)
}

// MarshalJSON encodes scalars as numbers and pairs as two-element arrays.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindAnisotropic {
		return json.Marshal([2]float64{v.x, v.y})
	}
	return json.Marshal(v.x)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*v = Scalar(f)
		return nil
	}
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("axis value must be a number or a pair: %w", err)
	}
	return v.fromSlice(pair)
}

func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var f float64
		if err := node.Decode(&f); err != nil {
			return fmt.Errorf("axis value: %w", err)
		}
		*v = Scalar(f)
		return nil
	case yaml.SequenceNode:
		var pair []float64
		if err := node.Decode(&pair); err != nil {
			return fmt.Errorf("axis value: %w", err)
		}
		return v.fromSlice(pair)
	}
	return fmt.Errorf("axis value must be a number or a pair (line %d)", node.Line)
}

func (v *Value) fromSlice(pair []float64) error {
	switch len(pair) {
	case 1:
		*v = Scalar(pair[0])
	case 2:
		*v = Anisotropic(pair[0], pair[1])
	default:
		return fmt.Errorf("axis value pair must have 2 elements, got %d", len(pair))
	}
	return nil
}

// ValueOf converts loosely typed input (numbers, []any pairs, Value) into a Value.
// It is used when decoding values stored in document libs or tool arguments.
func ValueOf(raw any) (Value, error) {
	switch t := raw.(type) {
	case Value:
		return t, nil
	case float64:
		return Scalar(t), nil
	case float32:
		return Scalar(float64(t)), nil
	case int:
		return Scalar(float64(t)), nil
	case int64:
		return Scalar(float64(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, err
		}
		return Scalar(f), nil
	case []float64:
		var v Value
		err := v.fromSlice(t)
		return v, err
	case []any:
		pair := make([]float64, 0, len(t))
		for _, e := range t {
			ev, err := ValueOf(e)
			if err != nil {
				return Value{}, err
			}
			pair = append(pair, ev.Scalar())
		}
		var v Value
		err := v.fromSlice(pair)
		return v, err
	}
	return Value{}, fmt.Errorf("unsupported axis value type %T", raw)
}
