package cardbrowser

// Action is a discrete user or viewport event handled by the Coordinator.
type Action interface {
	actionName() string
}

// ToggleCriterion flips one criterion pill, identified by its slug.
type ToggleCriterion struct{ Slug string }

// ActivatePreset applies a named preset, or clears it when it is already active.
type ActivatePreset struct{ Name string }

// ToggleTag selects or clears a tag value for one dimension.
type ToggleTag struct {
	Kind  TagKind
	Value string
}

// ClearAll drops every criterion and tag filter.
type ClearAll struct{}

// Next moves to the following visible slide.
type Next struct{}

// Prev moves to the preceding visible slide.
type Prev struct{}

// Scrolled reports that the viewport moved.
type Scrolled struct{}

// Start performs the initial sampling once the view is laid out.
type Start struct{}

// OpenDetail asks for the detail view of a slide; only the active slide opens.
type OpenDetail struct{ Index int }

// CloseDetail closes the detail view.
type CloseDetail struct{}

// Escape is the cancel key.
type Escape struct{}

// ReplaceCatalog swaps in a reloaded catalog.
type ReplaceCatalog struct{ Catalog Catalog }

func (ToggleCriterion) actionName() string { return "toggle-criterion" }
func (ActivatePreset) actionName() string  { return "activate-preset" }
func (ToggleTag) actionName() string       { return "toggle-tag" }
func (ClearAll) actionName() string        { return "clear-all" }
func (Next) actionName() string            { return "next" }
func (Prev) actionName() string            { return "prev" }
func (Scrolled) actionName() string        { return "scrolled" }
func (Start) actionName() string           { return "start" }
func (OpenDetail) actionName() string      { return "open-detail" }
func (CloseDetail) actionName() string     { return "close-detail" }
func (Escape) actionName() string          { return "escape" }
func (ReplaceCatalog) actionName() string  { return "replace-catalog" }
