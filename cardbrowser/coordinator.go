package cardbrowser

import (
	"strings"
	"time"

	"go.uber.org/zap"
)

// Scheduler keys used by the coordinator.
const (
	keySample      = "sample"
	keyArrows      = "arrows"
	keyDescription = "description"
	keyDetail      = "detail"
)

// FilterView is what the render sink needs to reflect the filter controls.
type FilterView struct {
	Active         KeySet
	Preset         string
	Tags           map[TagKind]string
	HasAnyFilter   bool
	CategoryCounts map[string]int
}

// RenderSink applies engine output to the presentation layer.
type RenderSink interface {
	SetVisible(i int, visible bool)
	SetScoreText(i int, text string)
	// SetActive marks exactly one slide as active; NoSlide clears the mark.
	SetActive(i int)
	ShowFilters(view FilterView)
	SetArrows(prevEnabled, nextEnabled bool)
}

// DescriptionSink shows the description of the active slide.
type DescriptionSink interface {
	ShowDescription(text string)
	// ClearStale removes descriptions that are no longer shown.
	ClearStale()
}

// DetailSink shows the detail view of the active slide.
type DetailSink interface {
	OpenDetail(i int, scoreText string)
	CloseDetail()
	// DetachDetail runs once the close transition has finished.
	DetachDetail(i int)
}

// Timings are the debounce and teardown delays.
type Timings struct {
	Sample   time.Duration
	Arrows   time.Duration
	Teardown time.Duration
}

// DefaultTimings returns the sample, arrow and teardown delays.
func DefaultTimings() Timings {
	return Timings{Sample: 50 * time.Millisecond, Arrows: 100 * time.Millisecond, Teardown: 300 * time.Millisecond}
}

// Options wires a Coordinator to its collaborators. Nil sinks are ignored.
type Options struct {
	Render      RenderSink
	Geometry    Geometry
	Description DescriptionSink
	Detail      DetailSink
	Executor    Executor
	Clock       Clock
	Timings     Timings
	Logger      *zap.Logger
}

// Coordinator owns the filter state and the active slide. Every action is
// handled on one executor, so state is never touched concurrently.
type Coordinator struct {
	render   RenderSink
	geo      Geometry
	desc     DescriptionSink
	detail   DetailSink
	exec     Executor
	sched    *Scheduler
	timings  Timings
	logger   *zap.Logger
	onActive []func(int)

	catalog    Catalog
	state      *FilterState
	result     Result
	tracker    *Tracker
	active     int
	detailOpen bool
}

// NewCoordinator builds a coordinator over the given catalog.
func NewCoordinator(catalog Catalog, opts Options) *Coordinator {
	if opts.Executor == nil {
		opts.Executor = Inline
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	t := opts.Timings
	def := DefaultTimings()
	if t.Sample <= 0 {
		t.Sample = def.Sample
	}
	if t.Arrows <= 0 {
		t.Arrows = def.Arrows
	}
	if t.Teardown <= 0 {
		t.Teardown = def.Teardown
	}
	c := &Coordinator{
		render:  opts.Render,
		geo:     opts.Geometry,
		desc:    opts.Description,
		detail:  opts.Detail,
		exec:    opts.Executor,
		sched:   NewScheduler(opts.Clock, opts.Executor),
		timings: t,
		logger:  opts.Logger,
		catalog: catalog,
		state:   NewFilterState(),
		tracker: NewTracker(),
		active:  NoSlide,
	}
	c.result = c.compute()
	return c
}

// OnActiveChange registers a callback for active slide transitions. Register
// before dispatching actions.
func (c *Coordinator) OnActiveChange(fn func(int)) {
	c.onActive = append(c.onActive, fn)
}

// Dispatch handles an action on the coordinator's executor.
func (c *Coordinator) Dispatch(a Action) {
	if a == nil {
		return
	}
	c.exec.Do(func() { c.handle(a) })
}

// Close cancels deferred work.
func (c *Coordinator) Close() {
	c.sched.Stop()
}

// The accessors below must be called from the executor (or after it drained).

// Active returns the active slide, or NoSlide.
func (c *Coordinator) Active() int { return c.active }

// Result returns the last recomputation.
func (c *Coordinator) Result() Result { return c.result }

// State returns a copy of the filter state.
func (c *Coordinator) State() *FilterState { return c.state.Clone() }

// Catalog returns the catalog currently browsed.
func (c *Coordinator) Catalog() Catalog { return c.catalog }

// DetailOpen reports whether the detail view is shown.
func (c *Coordinator) DetailOpen() bool { return c.detailOpen }

func (c *Coordinator) handle(a Action) {
	switch act := a.(type) {
	case ToggleCriterion:
		key := SlugToKey(strings.TrimSpace(act.Slug))
		if key == "" {
			c.logger.Debug("toggle ignored: empty criterion")
			return
		}
		c.state.ToggleCriterion(key)
		c.refilter()
	case ActivatePreset:
		preset, ok := c.catalog.Preset(act.Name)
		if !ok {
			c.logger.Debug("unknown preset", zap.String("preset", act.Name))
			return
		}
		c.state.ApplyPreset(preset.Name, c.knownKeys(preset.Keys()))
		c.refilter()
	case ToggleTag:
		c.state.ToggleTag(act.Kind, strings.TrimSpace(act.Value))
		c.refilter()
	case ClearAll:
		c.state.ClearAll()
		c.refilter()
	case Next:
		c.navigate(1)
	case Prev:
		c.navigate(-1)
	case Scrolled:
		c.scheduleSample()
		c.sched.Schedule(keyArrows, c.timings.Arrows, c.updateArrows)
	case Start:
		c.pushRender()
		c.sched.Schedule(keySample, 2*c.timings.Sample, c.sample)
		c.sched.Schedule(keyArrows, 2*c.timings.Arrows, c.updateArrows)
	case OpenDetail:
		c.openDetail(act.Index)
	case CloseDetail, Escape:
		c.closeDetail()
	case ReplaceCatalog:
		c.replaceCatalog(act.Catalog)
	default:
		c.logger.Debug("unhandled action", zap.String("action", a.actionName()))
	}
}

// knownKeys drops preset entries that have no matching criterion pill.
func (c *Coordinator) knownKeys(keys []CriterionKey) []CriterionKey {
	known, unknown := c.catalog.KnownKeys(keys)
	for _, k := range unknown {
		c.logger.Debug("preset references unknown criterion", zap.String("key", string(k)))
	}
	return known
}

func (c *Coordinator) compute() Result {
	res := Recompute(c.catalog.Slides, c.state)
	res.CategoryCounts = CountByCategory(c.catalog, c.state)
	return res
}

// refilter recomputes after a filter change and asks the viewport to center
// the focus target. The active slide itself only moves once the viewport
// settles and a sample confirms what is centered.
func (c *Coordinator) refilter() {
	c.result = c.compute()
	c.pushRender()
	if c.result.FocusTarget != NoSlide {
		c.scrollTo(c.result.FocusTarget)
	}
	// Hiding slides shifts the layout even when nothing scrolls.
	c.scheduleSample()
	c.sched.Schedule(keyArrows, c.timings.Arrows, c.updateArrows)
}

func (c *Coordinator) pushRender() {
	if c.render == nil {
		return
	}
	for i := range c.catalog.Slides {
		visible := c.result.IsVisible(i)
		c.render.SetVisible(i, visible)
		if visible {
			c.render.SetScoreText(i, c.result.ScoreOf(i).Text())
		}
	}
	tags := make(map[TagKind]string, len(TagKinds))
	for _, kind := range TagKinds {
		if v := c.state.Tag(kind); v != "" {
			tags[kind] = v
		}
	}
	c.render.ShowFilters(FilterView{
		Active:         c.state.Criteria(),
		Preset:         c.state.ActivePreset(),
		Tags:           tags,
		HasAnyFilter:   c.result.HasAnyFilter,
		CategoryCounts: c.result.CategoryCounts,
	})
}

func (c *Coordinator) scrollTo(i int) {
	if c.geo == nil || i < 0 || i >= len(c.catalog.Slides) {
		c.logger.Debug("scroll target missing", zap.Int("slide", i))
		return
	}
	c.geo.ScrollToCenter(i)
	c.scheduleSample()
}

func (c *Coordinator) scheduleSample() {
	c.sched.Schedule(keySample, c.timings.Sample, c.sample)
}

// sample is the only writer of the active slide.
func (c *Coordinator) sample() {
	idx, changed := c.tracker.Sample(c.geo, c.result.Visible)
	if !changed {
		return
	}
	c.active = idx
	if c.render != nil {
		c.render.SetActive(idx)
	}
	if c.desc != nil {
		c.desc.ShowDescription(PlainText(c.catalog.Slides[idx].Description))
		c.sched.Schedule(keyDescription, c.timings.Teardown, c.desc.ClearStale)
	}
	c.logger.Debug("active slide changed", zap.Int("slide", idx))
	for _, fn := range c.onActive {
		fn(idx)
	}
	c.updateArrows()
}

func (c *Coordinator) visibleOrder() []int {
	return c.result.VisibleIDs()
}

func (c *Coordinator) positionOfActive(order []int) int {
	for pos, i := range order {
		if i == c.active {
			return pos
		}
	}
	return NoSlide
}

// navigate requests a scroll to the neighbouring visible slide. With no
// active slide, stepping forward lands on the first visible slide.
func (c *Coordinator) navigate(step int) {
	order := c.visibleOrder()
	pos := c.positionOfActive(order)
	target := pos + step
	if target >= 0 && target < len(order) {
		c.scrollTo(order[target])
	}
	c.updateArrows()
}

func (c *Coordinator) updateArrows() {
	if c.render == nil {
		return
	}
	order := c.visibleOrder()
	pos := c.positionOfActive(order)
	c.render.SetArrows(pos > 0, pos < len(order)-1)
}

func (c *Coordinator) openDetail(i int) {
	if c.active == NoSlide || i != c.active || !c.state.HasAnyFilter() {
		return
	}
	c.sched.Cancel(keyDetail)
	c.detailOpen = true
	if c.detail != nil {
		c.detail.OpenDetail(i, c.result.ScoreOf(i).Text())
	}
}

func (c *Coordinator) closeDetail() {
	if !c.detailOpen {
		return
	}
	c.detailOpen = false
	if c.detail == nil {
		return
	}
	c.detail.CloseDetail()
	c.sched.Schedule(keyDetail, c.timings.Teardown, func() {
		c.detail.DetachDetail(c.active)
	})
}

func (c *Coordinator) replaceCatalog(catalog Catalog) {
	c.closeDetail()
	c.catalog = catalog
	c.tracker.Reset()
	c.active = NoSlide
	if c.render != nil {
		c.render.SetActive(NoSlide)
	}
	c.result = c.compute()
	c.pushRender()
	c.scheduleSample()
	c.sched.Schedule(keyArrows, c.timings.Arrows, c.updateArrows)
	c.logger.Info("catalog replaced", zap.Int("slides", len(catalog.Slides)))
}
