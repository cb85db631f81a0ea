package domain

// LocationDiff lists the axes whose value changed between two locations.
// It is serialised for partial updates to clients following a document.
type LocationDiff struct {
	DocumentID string `json:"document_id"`

	// Changed holds added or modified axes with their new value.
	Changed Location `json:"changed,omitempty"`

	// Removed lists axes present before and absent now.
	Removed []string `json:"removed,omitempty"`
}

// DiffLocations compares old and new. It returns nil when nothing changed.
// A nil old location yields every axis of new as changed.
func DiffLocations(documentID string, old, new Location) *LocationDiff {
	diff := &LocationDiff{DocumentID: documentID}

	for name, v := range new {
		ov, ok := old[name]
		if !ok || !ov.Equal(v) {
			if diff.Changed == nil {
				diff.Changed = make(Location)
			}
			diff.Changed[name] = v
		}
	}
	for _, name := range old.Names() {
		if _, ok := new[name]; !ok {
			diff.Removed = append(diff.Removed, name)
		}
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// IsEmpty reports whether the diff carries any change.
func (d *LocationDiff) IsEmpty() bool {
	return len(d.Changed) == 0 && len(d.Removed) == 0
}
