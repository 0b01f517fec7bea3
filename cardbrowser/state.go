package cardbrowser

import (
	"maps"
	"slices"
)

// FilterState holds the active criteria and tag filters of a browsing session.
// It is mutated only through its methods and is not safe for concurrent use;
// the Coordinator serializes every mutation onto its executor.
type FilterState struct {
	criteria KeySet
	tags     [tagKindCount]string
	preset   string
}

// NewFilterState returns an empty state.
func NewFilterState() *FilterState {
	return &FilterState{criteria: make(KeySet)}
}

// ToggleCriterion flips membership of key in the active set.
func (s *FilterState) ToggleCriterion(key CriterionKey) {
	if key == "" {
		return
	}
	s.ensure()
	if _, ok := s.criteria[key]; ok {
		delete(s.criteria, key)
	} else {
		s.criteria[key] = struct{}{}
	}
	s.preset = ""
}

// SetPreset replaces the whole active-criteria set at once.
func (s *FilterState) SetPreset(keys []CriterionKey) {
	s.criteria = NewKeySet(keys...)
	s.preset = ""
}

// ApplyPreset activates a named preset. Applying the preset that is already
// active clears the criteria instead. Tag filters are left untouched.
func (s *FilterState) ApplyPreset(name string, keys []CriterionKey) {
	if name != "" && s.preset == name {
		s.criteria = make(KeySet)
		s.preset = ""
		return
	}
	s.SetPreset(keys)
	s.preset = name
}

// ActivePreset returns the name of the preset that set the current criteria.
func (s *FilterState) ActivePreset() string {
	return s.preset
}

// ToggleTag selects value for the given dimension, or clears it when value is
// already selected. Each dimension holds at most one value.
func (s *FilterState) ToggleTag(kind TagKind, value string) {
	if !kind.valid() {
		return
	}
	if s.tags[kind] == value {
		s.tags[kind] = ""
		return
	}
	s.tags[kind] = value
}

// Tag returns the active value for a dimension, or "" when unconstrained.
func (s *FilterState) Tag(kind TagKind) string {
	if !kind.valid() {
		return ""
	}
	return s.tags[kind]
}

// ClearAll empties criteria and every tag slot.
func (s *FilterState) ClearAll() {
	s.criteria = make(KeySet)
	s.tags = [tagKindCount]string{}
	s.preset = ""
}

// HasCriteria reports whether any criterion is active.
func (s *FilterState) HasCriteria() bool {
	return len(s.criteria) > 0
}

// HasTagFilter reports whether any tag slot is set.
func (s *FilterState) HasTagFilter() bool {
	for _, v := range s.tags {
		if v != "" {
			return true
		}
	}
	return false
}

// HasAnyFilter is true iff criteria are active or a tag slot is set.
func (s *FilterState) HasAnyFilter() bool {
	return s.HasCriteria() || s.HasTagFilter()
}

// IsActive reports whether key is in the active set.
func (s *FilterState) IsActive(key CriterionKey) bool {
	_, ok := s.criteria[key]
	return ok
}

// ActiveKeys returns the active keys sorted.
func (s *FilterState) ActiveKeys() []CriterionKey {
	return slices.Sorted(maps.Keys(s.criteria))
}

// Criteria returns a copy of the active set.
func (s *FilterState) Criteria() KeySet {
	return maps.Clone(s.criteria)
}

// Clone returns an independent copy.
func (s *FilterState) Clone() *FilterState {
	out := &FilterState{tags: s.tags, preset: s.preset}
	out.criteria = maps.Clone(s.criteria)
	out.ensure()
	return out
}

// Equal compares criteria and tag slots.
func (s *FilterState) Equal(other *FilterState) bool {
	if other == nil {
		return false
	}
	if s.tags != other.tags || len(s.criteria) != len(other.criteria) {
		return false
	}
	for k := range s.criteria {
		if _, ok := other.criteria[k]; !ok {
			return false
		}
	}
	return true
}

func (s *FilterState) ensure() {
	if s.criteria == nil {
		s.criteria = make(KeySet)
	}
}
