package cardbrowser

// Geometry is the presentation layer's view of the horizontal scroller.
// Offsets share one coordinate space (content coordinates).
type Geometry interface {
	ViewportCenter() float32
	SlideCenter(i int) float32
	ScrollToCenter(i int)
}

// Tracker remembers which visible slide is centered in the viewport.
type Tracker struct {
	current int
}

// NewTracker returns a tracker with no active slide.
func NewTracker() *Tracker {
	return &Tracker{current: NoSlide}
}

// Current returns the tracked slide, or NoSlide.
func (t *Tracker) Current() int {
	return t.current
}

// Reset forgets the tracked slide.
func (t *Tracker) Reset() {
	t.current = NoSlide
}

// Sample picks the visible slide whose center is closest to the viewport
// center. A strictly smaller distance is needed to replace a candidate, so
// exact ties keep the earlier slide. changed is true only when the result
// differs from the previous sample; an empty visible set leaves the tracker
// untouched.
func (t *Tracker) Sample(geo Geometry, visible []bool) (idx int, changed bool) {
	if geo == nil {
		return t.current, false
	}
	center := geo.ViewportCenter()
	closest := NoSlide
	var closestDist float32
	for i, v := range visible {
		if !v {
			continue
		}
		d := geo.SlideCenter(i) - center
		if d < 0 {
			d = -d
		}
		if closest == NoSlide || d < closestDist {
			closest = i
			closestDist = d
		}
	}
	if closest == NoSlide {
		return t.current, false
	}
	if closest == t.current {
		return closest, false
	}
	t.current = closest
	return closest, true
}
