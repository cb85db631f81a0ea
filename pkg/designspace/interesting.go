package designspace

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/longboard/pkg/domain"
)

// InterestingLocations derives the quick-jump list from the declared sources
// and instances. Locations already listed under another name are skipped, so
// the first source claiming a location wins over later sources and instances.
func InterestingLocations(sources []domain.Source, instances []domain.Instance) []domain.InterestingLocation {
	var out []domain.InterestingLocation
	seen := func(loc domain.Location) bool {
		for _, il := range out {
			if il.Location.Equal(loc) {
				return true
			}
		}
		return false
	}

	for i, src := range sources {
		if seen(src.Location) {
			continue
		}
		out = append(out, domain.InterestingLocation{
			Name:     sourceName(i, src),
			Kind:     domain.InterestingSource,
			Location: src.Location.Clone(),
		})
	}
	for i, inst := range instances {
		if seen(inst.Location) {
			continue
		}
		out = append(out, domain.InterestingLocation{
			Name:     instanceName(i, inst),
			Kind:     domain.InterestingInstance,
			Location: inst.Location.Clone(),
		})
	}
	return out
}

// FindInteresting returns the interesting location with the given name.
func FindInteresting(list []domain.InterestingLocation, name string) (domain.InterestingLocation, error) {
	for _, il := range list {
		if il.Name == name {
			return il, nil
		}
	}
	return domain.InterestingLocation{}, fmt.Errorf("%w: %q", domain.ErrUnknownLocationName, name)
}

func sourceName(i int, src domain.Source) string {
	switch {
	case src.Name != "":
		return src.Name
	case src.StyleName != "":
		return strings.TrimSpace(src.FamilyName + " " + src.StyleName)
	case src.Path != "":
		return strings.TrimSuffix(filepath.Base(src.Path), filepath.Ext(src.Path))
	}
	return fmt.Sprintf("source%d", i)
}

func instanceName(i int, inst domain.Instance) string {
	name := strings.TrimSpace(inst.FamilyName + " " + inst.StyleName)
	if name == "" {
		return fmt.Sprintf("instance%d", i)
	}
	return name
}

// PreviewFilename names the preview font exported for a location, as
// "Preview_<family>-<location>_MM.ufo".
func PreviewFilename(familyName string, loc domain.Location) string {
	if familyName == "" {
		familyName = "Untitled"
	}
	return fmt.Sprintf("Preview_%s-%s_MM.ufo", familyName, loc.String())
}

// FindDefaultSource returns the source sitting at the default location of the
// given discrete bucket.
func (s *Space) FindDefaultSource(sources []domain.Source, discrete domain.Location) (domain.Source, bool) {
	want := s.Default(discrete)
	for _, src := range sources {
		if s.Complete(src.Location).Equal(want) {
			return src, true
		}
	}
	return domain.Source{}, false
}
