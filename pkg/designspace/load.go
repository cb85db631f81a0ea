package designspace

import (
	"fmt"
	"os"
	"reflect"

	"github.com/aretw0/longboard/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// File is a designspace as read from disk: axes, sources, instances and a free-form lib.
type File struct {
	Name      string            `mapstructure:"name"`
	Axes      []domain.Axis     `mapstructure:"axes"`
	Sources   []domain.Source   `mapstructure:"sources"`
	Instances []domain.Instance `mapstructure:"instances"`
	Lib       map[string]any    `mapstructure:"lib"`
}

// Load reads a YAML designspace from path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read designspace: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a YAML designspace. Locations accept scalars and [x, y] pairs.
func Parse(data []byte) (*File, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse designspace yaml: %w", err)
	}

	var f File
	if err := Decode(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to decode designspace: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	for i := range f.Axes {
		if f.Axes[i].Kind == "" {
			if len(f.Axes[i].Values) > 0 {
				f.Axes[i].Kind = domain.Discrete
			} else {
				f.Axes[i].Kind = domain.Continuous
			}
		}
	}
	return &f, nil
}

// Decode decodes loosely typed input (YAML or JSON maps, lib values, tool
// arguments) into out, converting axis values through domain.ValueOf.
func Decode(input any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: valueHook,
		Result:     out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

var valueType = reflect.TypeOf(domain.Value{})

func valueHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != valueType || from == valueType {
		return data, nil
	}
	return domain.ValueOf(data)
}

func (f *File) validate() error {
	seen := make(map[string]bool, len(f.Axes))
	for i, a := range f.Axes {
		if a.Name == "" {
			return fmt.Errorf("axis %d has no name", i)
		}
		if seen[a.Name] {
			return fmt.Errorf("duplicate axis %q", a.Name)
		}
		seen[a.Name] = true
		if a.Kind != "" && a.Kind != domain.Continuous && a.Kind != domain.Discrete {
			return fmt.Errorf("axis %q: unknown kind %q", a.Name, a.Kind)
		}
	}
	return nil
}
