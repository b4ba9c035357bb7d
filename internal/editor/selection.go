package editor

// Selection tracks the primary node (property panel focus) and an ordered
// multi-selection set for bulk operations. The two are independent: the
// primary may point outside the multi-set.
type Selection struct {
	primary  string
	selected []string
}

// SetPrimary focuses a single node. Empty clears the focus.
func (s *Selection) SetPrimary(id string) { s.primary = id }

// Primary returns the focused node id, or empty.
func (s *Selection) Primary() string { return s.primary }

// Toggle adds or removes an id from the multi-selection set.
func (s *Selection) Toggle(id string) {
	for n, sel := range s.selected {
		if sel == id {
			s.selected = append(s.selected[:n], s.selected[n+1:]...)
			return
		}
	}
	s.selected = append(s.selected, id)
}

// Add includes an id in the multi-selection set if not already present.
func (s *Selection) Add(id string) {
	if !s.Contains(id) {
		s.selected = append(s.selected, id)
	}
}

// Contains reports multi-set membership.
func (s *Selection) Contains(id string) bool {
	for _, sel := range s.selected {
		if sel == id {
			return true
		}
	}
	return false
}

// IDs returns the multi-selection in selection order.
func (s *Selection) IDs() []string {
	out := make([]string, len(s.selected))
	copy(out, s.selected)
	return out
}

// Clear empties both the primary focus and the multi-set.
func (s *Selection) Clear() {
	s.primary = ""
	s.selected = nil
}

// Drop removes an id from both the primary focus and the multi-set, used
// when the node disappears from the document.
func (s *Selection) Drop(id string) {
	if s.primary == id {
		s.primary = ""
	}
	for n, sel := range s.selected {
		if sel == id {
			s.selected = append(s.selected[:n], s.selected[n+1:]...)
			return
		}
	}
}
