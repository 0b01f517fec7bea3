package cardbrowser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func scoredSlides() []Slide {
	return []Slide{
		{ID: "a", Name: "A", Criteria: Payload{"Safety": 80.0, "Cost": 60.0}},
		{ID: "b", Name: "B", Criteria: Payload{"Safety": 90.0}},
		{ID: "c", Name: "C", Criteria: Payload{}},
	}
}

func TestRecomputeScoresAndFocus(t *testing.T) {
	t.Parallel()

	s := NewFilterState()
	s.ToggleCriterion("Safety")
	res := Recompute(scoredSlides(), s)

	require.Equal(t, []bool{true, true, true}, res.Visible)
	want := []ScoreValue{{Value: 80, OK: true}, {Value: 90, OK: true}, {}}
	if diff := cmp.Diff(want, res.Scores); diff != "" {
		t.Fatalf("scores mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, 1, res.FocusTarget)
	require.True(t, res.HasAnyFilter)
	require.Equal(t, "-", res.ScoreOf(2).Text())
}

func TestRecomputeWithoutFilters(t *testing.T) {
	t.Parallel()

	res := Recompute(scoredSlides(), NewFilterState())
	require.Equal(t, []bool{true, true, true}, res.Visible)
	require.Equal(t, NoSlide, res.FocusTarget)
	require.False(t, res.HasAnyFilter)
	for i := range res.Scores {
		require.False(t, res.Scores[i].OK)
	}

	res = Recompute(scoredSlides(), nil)
	require.Equal(t, NoSlide, res.FocusTarget)
}

func TestRecomputeTieKeepsEarlierSlide(t *testing.T) {
	t.Parallel()

	slides := []Slide{
		{Criteria: Payload{"Safety": 10.0}},
		{Criteria: Payload{"Safety": 70.0}},
		{Criteria: Payload{"Safety": 70.0}},
	}
	s := NewFilterState()
	s.ToggleCriterion("Safety")
	for i := 0; i < 10; i++ {
		require.Equal(t, 1, Recompute(slides, s).FocusTarget)
	}
}

func TestRecomputeNegativeScoreCanLead(t *testing.T) {
	t.Parallel()

	slides := []Slide{
		{Criteria: Payload{}},
		{Criteria: Payload{"Safety": -5.0}},
	}
	s := NewFilterState()
	s.ToggleCriterion("Safety")
	require.Equal(t, 1, Recompute(slides, s).FocusTarget)
}

func TestRecomputeTagFiltersCompose(t *testing.T) {
	t.Parallel()

	slides := []Slide{
		{Name: "1", Region: "X", AdminArea: "P"},
		{Name: "2", Region: "X", AdminArea: "Q"},
		{Name: "3", Region: "Y", AdminArea: "P"},
		{Name: "4", AdminArea: "P"},
	}
	s := NewFilterState()
	s.ToggleTag(TagRegion, "X")
	res := Recompute(slides, s)
	require.Equal(t, []int{0, 1}, res.VisibleIDs())
	require.Equal(t, 0, res.FocusTarget, "tag filter without scores focuses the first visible slide")

	s.ToggleTag(TagAdminArea, "P")
	res = Recompute(slides, s)
	require.Equal(t, []int{0}, res.VisibleIDs())

	s.ToggleTag(TagRegion, "X")
	res = Recompute(slides, s)
	require.Equal(t, []int{0, 2, 3}, res.VisibleIDs())

	s.ToggleTag(TagRegion, "Z")
	res = Recompute(slides, s)
	require.Empty(t, res.VisibleIDs())
	require.Equal(t, NoSlide, res.FocusTarget)
	require.Equal(t, NoSlide, res.FirstVisible())
}

func TestRecomputeHiddenSlidesAreNotScored(t *testing.T) {
	t.Parallel()

	slides := []Slide{
		{Region: "X", Criteria: Payload{"Safety": 10.0}},
		{Region: "Y", Criteria: Payload{"Safety": 99.0}},
	}
	s := NewFilterState()
	s.ToggleCriterion("Safety")
	s.ToggleTag(TagRegion, "X")
	res := Recompute(slides, s)
	require.Equal(t, 0, res.FocusTarget)
	require.False(t, res.IsVisible(1))
	require.False(t, res.IsVisible(7))
}

func TestMatchesTagsTrimsSlideValue(t *testing.T) {
	t.Parallel()

	s := NewFilterState()
	s.ToggleTag(TagPopulationBand, "<100K")
	require.True(t, MatchesTags(Slide{PopulationBand: " <100K "}, s))
	require.False(t, MatchesTags(Slide{PopulationBand: "<100k"}, s), "matching is case-sensitive")
}

func TestRecomputeIsIdempotent(t *testing.T) {
	t.Parallel()

	cat := DefaultCatalog()
	s := NewFilterState()
	s.ApplyPreset("family", cat.Presets[0].Keys())
	s.ToggleTag(TagRegion, "West")
	first := Recompute(cat.Slides, s)
	second := Recompute(cat.Slides, s)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("recompute not idempotent (-first +second):\n%s", diff)
	}
}

func TestCountByCategory(t *testing.T) {
	t.Parallel()

	cat := DefaultCatalog()
	s := NewFilterState()
	s.ToggleCriterion("Safety")
	s.ToggleCriterion("Cost")
	s.ToggleCriterion("Hiking")
	s.ToggleCriterion("Not A Pill")

	want := map[string]int{"Essentials": 2, "Nature": 1, "Culture": 0, "Travellers": 0}
	if diff := cmp.Diff(want, CountByCategory(cat, s)); diff != "" {
		t.Fatalf("counts mismatch (-want +got):\n%s", diff)
	}
}
