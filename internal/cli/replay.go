package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/longboard/pkg/domain"
	"github.com/aretw0/longboard/pkg/navigation"
	"github.com/aretw0/longboard/pkg/ports"
	"github.com/aretw0/longboard/pkg/session"
	"gopkg.in/yaml.v3"
)

// Script is a recorded or hand-written drag.
//
//	document: sans
//	glyph: I
//	commit: true
//	samples:
//	  - {x: 0, y: 0, t: 0s}
//	  - {x: 12, y: 0, t: 16ms, precision: true}
//
// Instead of samples a script may give a linear drag:
//
//	linear: {dx: 120, dy: 0, steps: 10, duration: 1s}
type Script struct {
	Document string         `yaml:"document"`
	Glyph    string         `yaml:"glyph"`
	Commit   *bool          `yaml:"commit"`
	Samples  []ScriptSample `yaml:"samples"`
	Linear   *LinearDrag    `yaml:"linear"`
}

type ScriptSample struct {
	X         float64       `yaml:"x"`
	Y         float64       `yaml:"y"`
	T         time.Duration `yaml:"t"`
	Constrain bool          `yaml:"constrain"`
	Precision bool          `yaml:"precision"`
}

type LinearDrag struct {
	DX        float64       `yaml:"dx"`
	DY        float64       `yaml:"dy"`
	Steps     int           `yaml:"steps"`
	Duration  time.Duration `yaml:"duration"`
	Constrain bool          `yaml:"constrain"`
	Precision bool          `yaml:"precision"`
}

// ReplayResult summarises a replayed drag.
type ReplayResult struct {
	DocumentID string          `json:"document_id"`
	Committed  bool            `json:"committed"`
	Applied    int             `json:"applied"`
	Location   domain.Location `json:"location"`
	Frame      *ports.Frame    `json:"frame,omitempty"`
}

// LoadScript reads a YAML drag script.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script %s: %w", path, err)
	}
	if len(s.Samples) == 0 && s.Linear == nil {
		return nil, fmt.Errorf("script %s has neither samples nor linear", path)
	}
	return &s, nil
}

func modifiers(constrain, precision bool) domain.Modifier {
	var m domain.Modifier
	if constrain {
		m |= domain.ModConstrain
	}
	if precision {
		m |= domain.ModPrecision
	}
	return m
}

// PointerSamples converts the script into engine samples.
func (s *Script) PointerSamples() []domain.Sample {
	if len(s.Samples) == 0 && s.Linear != nil {
		l := s.Linear
		steps := l.Steps
		if steps <= 0 {
			steps = 10
		}
		duration := l.Duration
		if duration <= 0 {
			duration = time.Second
		}
		return navigation.LinearSamples(l.DX, l.DY, steps, duration, modifiers(l.Constrain, l.Precision))
	}
	out := make([]domain.Sample, 0, len(s.Samples))
	for _, smp := range s.Samples {
		out = append(out, domain.Sample{
			Position:  domain.Position{X: smp.X, Y: smp.Y},
			Timestamp: smp.T,
			Modifiers: modifiers(smp.Constrain, smp.Precision),
		})
	}
	return out
}

// Committing reports whether the drag ends with a commit. The default is true.
func (s *Script) Committing() bool {
	return s.Commit == nil || *s.Commit
}

// Replay runs the script against a registered document.
func Replay(ctx context.Context, mgr *session.Manager, documentID string, s *Script) (*ReplayResult, error) {
	res := &ReplayResult{DocumentID: documentID}
	err := mgr.Update(ctx, documentID, func(ctx context.Context, c *navigation.Coordinator) error {
		frame, applied, err := c.Drag(ctx, s.Glyph, s.PointerSamples(), s.Committing())
		res.Frame = frame
		res.Applied = applied
		res.Committed = err == nil && s.Committing()
		res.Location = c.Document().PreviewLocation()
		return err
	})
	return res, err
}
