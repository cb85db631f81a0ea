package navigation

import (
	"context"
	"fmt"

	"github.com/aretw0/longboard/pkg/designspace"
	"github.com/aretw0/longboard/pkg/domain"
	"github.com/aretw0/longboard/pkg/ports"
)

// setPreview renders loc and, when that succeeds, makes it the preview
// location. Without a glyph nothing is rendered and the frame is nil.
func (c *Coordinator) setPreview(ctx context.Context, loc domain.Location) (*ports.Frame, error) {
	if c.ctrl.Dragging() {
		return nil, domain.ErrGestureActive
	}
	if err := c.space.Check(loc); err != nil {
		return nil, err
	}

	var frame *ports.Frame
	if c.glyph != "" {
		var err error
		frame, err = c.render(ctx, loc)
		if err != nil {
			return nil, err
		}
	}

	c.writePreview(loc)
	if frame != nil {
		c.present(ctx, frame)
	}
	if c.hooks.OnPreviewSet != nil {
		c.hooks.OnPreviewSet(ctx, c.gestureEvent(domain.EventPreviewSet, loc.Clone()))
	}
	return frame, nil
}

// ResetPreview moves every continuous axis to its default, keeping the
// discrete part of the current preview location.
func (c *Coordinator) ResetPreview(ctx context.Context) (*ports.Frame, error) {
	_, discrete := c.space.Split(c.doc.PreviewLocation())
	return c.setPreview(ctx, c.space.Default(discrete))
}

// RandomPreview jumps to a random location. margin widens every continuous
// range by that fraction of its span on both sides; a negative margin uses
// the configured one.
func (c *Coordinator) RandomPreview(ctx context.Context, margin float64) (*ports.Frame, error) {
	if margin < 0 {
		margin = c.settings.RandomMargin
	}
	return c.setPreview(ctx, c.space.Random(c.rng, margin))
}

// SetAxisValue edits one axis of the preview location, as from the role
// table. Anisotropic values keep their second element.
func (c *Coordinator) SetAxisValue(ctx context.Context, axis string, value float64) (*ports.Frame, error) {
	if _, ok := c.space.Axis(axis); !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownAxis, axis)
	}
	loc := c.space.Complete(c.doc.PreviewLocation())
	loc[axis] = loc[axis].WithScalar(value)
	return c.setPreview(ctx, loc)
}

// SetPreviewLocation replaces the preview location, merged over the current one.
func (c *Coordinator) SetPreviewLocation(ctx context.Context, loc domain.Location) (*ports.Frame, error) {
	return c.setPreview(ctx, c.doc.PreviewLocation().Merge(loc))
}

// InterestingLocations lists the document's sources and instances by name.
func (c *Coordinator) InterestingLocations() []domain.InterestingLocation {
	return designspace.InterestingLocations(c.doc.Sources(), c.doc.Instances())
}

// JumpTo moves the preview to a named interesting location.
func (c *Coordinator) JumpTo(ctx context.Context, name string) (*ports.Frame, error) {
	il, err := designspace.FindInteresting(c.InterestingLocations(), name)
	if err != nil {
		return nil, err
	}
	return c.setPreview(ctx, il.Location)
}

// AddInstance adds an instance at the current preview location, named after
// the location. It fails with domain.ErrDuplicateInstance when an instance
// already sits there, leaving the document untouched.
func (c *Coordinator) AddInstance(ctx context.Context) (domain.Instance, error) {
	if c.ctrl.Dragging() {
		return domain.Instance{}, domain.ErrGestureActive
	}
	loc := c.doc.PreviewLocation()
	for _, inst := range c.doc.Instances() {
		if inst.Location.Equal(loc) {
			return domain.Instance{}, fmt.Errorf("%w: %s", domain.ErrDuplicateInstance, loc)
		}
	}

	inst := domain.Instance{
		FamilyName: c.familyName(),
		StyleName:  loc.String(),
		Location:   loc,
	}
	if err := c.doc.AddInstance(inst); err != nil {
		return domain.Instance{}, fmt.Errorf("failed to add instance: %w", err)
	}
	c.logger.Info("instance added", "document_id", c.doc.ID(), "style_name", inst.StyleName)
	return inst, nil
}

// PreviewFilename names the preview font of the current location.
func (c *Coordinator) PreviewFilename() string {
	return designspace.PreviewFilename(c.familyName(), c.doc.PreviewLocation())
}

func (c *Coordinator) familyName() string {
	_, discrete := c.space.Split(c.doc.PreviewLocation())
	if src, ok := c.space.FindDefaultSource(c.doc.Sources(), discrete); ok && src.FamilyName != "" {
		return src.FamilyName
	}
	if named, ok := c.doc.(interface{ FamilyName() string }); ok {
		return named.FamilyName()
	}
	return ""
}
