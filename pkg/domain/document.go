package domain

import "time"

// Source is a master declared by a document.
type Source struct {
	Name       string   `json:"name" yaml:"name" mapstructure:"name"`
	Path       string   `json:"path" yaml:"path" mapstructure:"path"`
	FamilyName string   `json:"family_name,omitempty" yaml:"family_name" mapstructure:"family_name"`
	StyleName  string   `json:"style_name,omitempty" yaml:"style_name" mapstructure:"style_name"`
	Location   Location `json:"location" yaml:"location" mapstructure:"location"`

	// Glyphs holds outlines for fixture generators; hosts leave it empty.
	Glyphs map[string]*Outline `json:"glyphs,omitempty" yaml:"glyphs" mapstructure:"glyphs"`
}

// Instance is a named location the document exports.
type Instance struct {
	FamilyName string   `json:"family_name" yaml:"family_name" mapstructure:"family_name"`
	StyleName  string   `json:"style_name" yaml:"style_name" mapstructure:"style_name"`
	Filename   string   `json:"filename,omitempty" yaml:"filename" mapstructure:"filename"`
	Location   Location `json:"location" yaml:"location" mapstructure:"location"`
}

// InterestingKind says where an InterestingLocation came from.
type InterestingKind string

const (
	InterestingSource   InterestingKind = "source"
	InterestingInstance InterestingKind = "instance"
)

// InterestingLocation is a named, read-only location offered in quick-jump lists.
type InterestingLocation struct {
	Name     string          `json:"name"`
	Kind     InterestingKind `json:"kind"`
	Location Location        `json:"location"`
}

// DocumentState is the persisted navigation state of one document.
type DocumentState struct {
	DocumentID string    `json:"document_id"`
	Preview    Location  `json:"preview"`
	Roles      Roles     `json:"roles"`
	UpdatedAt  time.Time `json:"updated_at"`
}
