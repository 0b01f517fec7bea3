package cardbrowser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRankOrdersScoredSlidesFirst(t *testing.T) {
	t.Parallel()

	slides := scoredSlides()
	s := NewFilterState()
	s.ToggleCriterion("Safety")
	ranked := Rank(slides, Recompute(slides, s))

	names := make([]string, len(ranked))
	for i, r := range ranked {
		names[i] = r.Slide.Name
	}
	require.Equal(t, []string{"B", "A", "C"}, names)

	ranked = Rank(slides, Recompute(slides, NewFilterState()))
	require.Equal(t, 0, ranked[0].Index, "unscored slides keep sequence order")
}

func TestWriteReportSanitizesDescriptions(t *testing.T) {
	t.Parallel()

	slides := []Slide{
		{Name: "Moab", Region: "West", Criteria: Payload{"Safety": 85.0},
			Description: "**Arches** <script>alert(1)</script> [site](https://example.com)"},
		{Name: "Hidden", Region: "South", Criteria: Payload{"Safety": 99.0}},
	}
	s := NewFilterState()
	s.ToggleCriterion("Safety")
	s.ToggleTag(TagRegion, "West")

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, "Trips & more", slides, s, Recompute(slides, s)))
	out := buf.String()

	require.Contains(t, out, "<title>Trips &amp; more</title>")
	require.Contains(t, out, "<strong>Arches</strong>")
	require.Contains(t, out, `rel="nofollow"`)
	require.NotContains(t, out, "<script>")
	require.NotContains(t, out, "Hidden")
	require.Contains(t, out, `class="is-focus"`)
	require.Contains(t, out, "criteria: Safety; region: West")
	require.Equal(t, 1, strings.Count(out, "<li"))
}

func TestDescribeFilters(t *testing.T) {
	t.Parallel()

	require.Empty(t, DescribeFilters(nil))
	require.Empty(t, DescribeFilters(NewFilterState()))

	s := NewFilterState()
	s.ToggleTag(TagPopulationBand, "1M+")
	require.Equal(t, "population: 1M+", DescribeFilters(s))
}
