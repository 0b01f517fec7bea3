package cardbrowser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToggleCriterion(t *testing.T) {
	t.Parallel()

	s := NewFilterState()
	s.ToggleCriterion("Safety")
	require.True(t, s.IsActive("Safety"))
	require.True(t, s.HasAnyFilter())
	s.ToggleCriterion("Safety")
	require.False(t, s.IsActive("Safety"))
	require.False(t, s.HasAnyFilter())

	s.ToggleCriterion("")
	require.False(t, s.HasCriteria())
}

func TestSetPresetReplacesWholeSet(t *testing.T) {
	t.Parallel()

	s := NewFilterState()
	s.ToggleCriterion("Nightlife")
	s.SetPreset([]CriterionKey{"Safety", "Cost"})
	require.Equal(t, []CriterionKey{"Cost", "Safety"}, s.ActiveKeys())
}

func TestApplyPresetTwiceClearsCriteria(t *testing.T) {
	t.Parallel()

	s := NewFilterState()
	s.ToggleTag(TagRegion, "West")
	s.ApplyPreset("family", []CriterionKey{"Safety", "Beaches"})
	require.Equal(t, "family", s.ActivePreset())
	require.Len(t, s.ActiveKeys(), 2)

	s.ApplyPreset("budget", []CriterionKey{"Cost"})
	require.Equal(t, "budget", s.ActivePreset())
	require.Equal(t, []CriterionKey{"Cost"}, s.ActiveKeys())

	s.ApplyPreset("budget", []CriterionKey{"Cost"})
	require.Empty(t, s.ActivePreset())
	require.False(t, s.HasCriteria())
	require.Equal(t, "West", s.Tag(TagRegion), "presets leave tag filters alone")

	s.ApplyPreset("family", []CriterionKey{"Safety"})
	s.ToggleCriterion("Cost")
	require.Empty(t, s.ActivePreset(), "a manual toggle leaves the preset")
}

func TestToggleTagIsSingleSelectAndSymmetric(t *testing.T) {
	t.Parallel()

	s := NewFilterState()
	s.ToggleCriterion("Safety")
	before := s.Clone()

	s.ToggleTag(TagRegion, "West")
	require.Equal(t, "West", s.Tag(TagRegion))
	s.ToggleTag(TagRegion, "South")
	require.Equal(t, "South", s.Tag(TagRegion), "selecting another value replaces it")
	s.ToggleTag(TagRegion, "South")
	require.Empty(t, s.Tag(TagRegion))
	require.True(t, before.Equal(s))

	s.ToggleTag(TagAdminArea, "Utah")
	s.ToggleTag(TagAdminArea, "Utah")
	require.True(t, before.Equal(s))

	s.ToggleTag(TagKind(42), "x")
	require.Empty(t, s.Tag(TagKind(42)))
	require.True(t, before.Equal(s))
}

func TestClearAll(t *testing.T) {
	t.Parallel()

	s := NewFilterState()
	s.ApplyPreset("family", []CriterionKey{"Safety"})
	s.ToggleTag(TagRegion, "West")
	s.ToggleTag(TagAdminArea, "Utah")
	s.ToggleTag(TagPopulationBand, "<100K")
	require.True(t, s.HasTagFilter())

	s.ClearAll()
	require.False(t, s.HasAnyFilter())
	require.Empty(t, s.ActivePreset())
	for _, kind := range TagKinds {
		require.Empty(t, s.Tag(kind))
	}

	s.ClearAll()
	require.False(t, s.HasAnyFilter())
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	s := NewFilterState()
	s.ToggleCriterion("Safety")
	c := s.Clone()
	c.ToggleCriterion("Cost")
	require.False(t, s.IsActive("Cost"))
	require.False(t, s.Equal(c))
	require.False(t, s.Equal(nil))
}

func TestZeroValueFilterState(t *testing.T) {
	t.Parallel()

	var s FilterState
	require.False(t, s.HasAnyFilter())
	s.ToggleCriterion("Safety")
	require.True(t, s.IsActive("Safety"))
}
