package cardbrowser

import "strings"

// NoSlide marks the absence of a slide index.
const NoSlide = -1

// Result is the outcome of one recomputation. Slices are indexed by slide
// position in the sequence passed to Recompute.
type Result struct {
	Visible        []bool
	Scores         []ScoreValue
	FocusTarget    int
	HasAnyFilter   bool
	CategoryCounts map[string]int
}

// VisibleIDs returns the indices of visible slides in sequence order.
func (r Result) VisibleIDs() []int {
	out := make([]int, 0, len(r.Visible))
	for i, v := range r.Visible {
		if v {
			out = append(out, i)
		}
	}
	return out
}

// FirstVisible returns the first visible slide, or NoSlide.
func (r Result) FirstVisible() int {
	for i, v := range r.Visible {
		if v {
			return i
		}
	}
	return NoSlide
}

// IsVisible reports whether slide i is visible; out-of-range indices are not.
func (r Result) IsVisible(i int) bool {
	return i >= 0 && i < len(r.Visible) && r.Visible[i]
}

// ScoreOf returns the displayed score of slide i.
func (r Result) ScoreOf(i int) ScoreValue {
	if i < 0 || i >= len(r.Scores) {
		return ScoreValue{}
	}
	return r.Scores[i]
}

// MatchesTags reports whether a slide satisfies every active tag filter.
func MatchesTags(slide Slide, state *FilterState) bool {
	for _, kind := range TagKinds {
		want := state.Tag(kind)
		if want == "" {
			continue
		}
		if strings.TrimSpace(slide.Tag(kind)) != want {
			return false
		}
	}
	return true
}

// Recompute derives visibility, displayed scores and the focus target from the
// filter state. Tag filters decide visibility; criteria only rank visible
// slides. The highest score wins and ties keep the earlier slide. Without any
// score the first visible slide is focused when a tag filter is active.
func Recompute(slides []Slide, state *FilterState) Result {
	if state == nil {
		state = NewFilterState()
	}
	res := Result{
		Visible:      make([]bool, len(slides)),
		Scores:       make([]ScoreValue, len(slides)),
		FocusTarget:  NoSlide,
		HasAnyFilter: state.HasAnyFilter(),
	}
	active := state.Criteria()
	best := NoSlide
	bestScore := 0
	for i, slide := range slides {
		if !MatchesTags(slide, state) {
			continue
		}
		res.Visible[i] = true
		score, ok := Score(slide.Criteria, active)
		res.Scores[i] = ScoreValue{Value: score, OK: ok}
		if ok && (best == NoSlide || score > bestScore) {
			best = i
			bestScore = score
		}
	}
	switch {
	case best != NoSlide:
		res.FocusTarget = best
	case state.HasTagFilter():
		res.FocusTarget = res.FirstVisible()
	}
	return res
}

// CountByCategory counts active criteria per catalog category. Every category
// of the catalog is present, with zero when none of its criteria is active.
func CountByCategory(catalog Catalog, state *FilterState) map[string]int {
	counts := make(map[string]int)
	for _, cat := range catalog.Categories() {
		counts[cat] = 0
	}
	for _, cr := range catalog.Criteria {
		if cr.Category == "" {
			continue
		}
		if state.IsActive(cr.Key()) {
			counts[cr.Category]++
		}
	}
	return counts
}
