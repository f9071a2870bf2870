// Package selection keeps the ordered sets the dashboard toggles: the
// candidates chosen for comparison and the skills shown as heat-map rows.
// Neither type is safe for concurrent use; the board serializes access.
package selection

import (
	"slices"

	"github.com/spigell/skill-heatmap/internal/talent"
)

// Candidates is an ordered selection, keyed by candidate ID. Insertion
// order is display order.
type Candidates struct {
	items []*talent.Candidate
}

func NewCandidates() *Candidates {
	return &Candidates{}
}

// Toggle removes c if a candidate with the same ID is selected, otherwise
// appends it. It reports whether c is selected afterwards.
func (s *Candidates) Toggle(c *talent.Candidate) bool {
	if c == nil {
		return false
	}

	if idx := s.index(c.ID); idx >= 0 {
		s.items = slices.Delete(s.items, idx, idx+1)
		return false
	}

	s.items = append(s.items, c)
	return true
}

func (s *Candidates) Contains(id string) bool {
	return s.index(id) >= 0
}

// Find returns the selected candidate with the given ID, or nil.
func (s *Candidates) Find(id string) *talent.Candidate {
	if idx := s.index(id); idx >= 0 {
		return s.items[idx]
	}
	return nil
}

// Items returns a copy of the selection in display order.
func (s *Candidates) Items() []*talent.Candidate {
	return slices.Clone(s.items)
}

func (s *Candidates) IDs() []string {
	ids := make([]string, 0, len(s.items))
	for _, c := range s.items {
		ids = append(ids, c.ID)
	}
	return ids
}

func (s *Candidates) Len() int {
	return len(s.items)
}

func (s *Candidates) index(id string) int {
	return slices.IndexFunc(s.items, func(c *talent.Candidate) bool {
		return c.ID == id
	})
}

// Skills is the ordered set of visible skills. A skill shown again after
// being hidden goes to the end.
type Skills struct {
	items []string
}

// NewSkills starts with every skill of the catalog visible.
func NewSkills(catalog []string) *Skills {
	return &Skills{items: slices.Clone(catalog)}
}

// Toggle hides a visible skill or shows a hidden one. It reports whether
// the skill is visible afterwards.
func (s *Skills) Toggle(name string) bool {
	if idx := slices.Index(s.items, name); idx >= 0 {
		s.items = slices.Delete(s.items, idx, idx+1)
		return false
	}

	s.items = append(s.items, name)
	return true
}

func (s *Skills) Contains(name string) bool {
	return slices.Contains(s.items, name)
}

func (s *Skills) Items() []string {
	return slices.Clone(s.items)
}

func (s *Skills) Len() int {
	return len(s.items)
}
