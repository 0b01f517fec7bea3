package app

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"yashubustudio/cardbrowser/cardbrowser"
)

// The methods below are called by the coordinator on the fyne main thread.

func (u *uiState) card(i int) *slideCard {
	if i < 0 || i >= len(u.cards) {
		return nil
	}
	return u.cards[i]
}

// SetVisible shows or hides card i.
func (u *uiState) SetVisible(i int, visible bool) {
	c := u.card(i)
	if c == nil {
		return
	}
	if visible {
		c.root.Show()
	} else {
		c.root.Hide()
	}
}

// SetScoreText updates the score shown on card i.
func (u *uiState) SetScoreText(i int, text string) {
	if c := u.card(i); c != nil {
		c.score.SetText(scoreLabel(text))
	}
}

// SetActive moves the active frame to card i.
func (u *uiState) SetActive(i int) {
	for _, c := range u.cards {
		c.setActive(c.index == i)
	}
}

// ShowFilters reflects the filter state on pills, presets and tag buttons.
func (u *uiState) ShowFilters(view cardbrowser.FilterView) {
	// Hidden cards change the row layout; positions must be current before
	// the coordinator asks for a scroll.
	u.row.Refresh()
	for _, g := range u.groups {
		g.update(view)
	}
	for name, btn := range u.presets {
		setImportant(btn, name == view.Preset)
	}
	for _, c := range u.cards {
		c.highlightTags(view.Tags)
	}
	if view.HasAnyFilter {
		u.clearBtn.Enable()
	} else {
		u.clearBtn.Disable()
	}
	if u.listShown {
		u.refreshRanking()
	}
}

// SetArrows enables the navigation arrows.
func (u *uiState) SetArrows(prevEnabled, nextEnabled bool) {
	setEnabled(u.prevBtn, prevEnabled)
	setEnabled(u.nextBtn, nextEnabled)
}

func setEnabled(btn *widget.Button, on bool) {
	if on {
		btn.Enable()
	} else {
		btn.Disable()
	}
}

// ViewportCenter is the content x coordinate at the middle of the viewport.
func (u *uiState) ViewportCenter() float32 {
	return u.scroll.Offset.X + u.scroll.Size().Width/2
}

// SlideCenter is the content x coordinate of the middle of card i.
func (u *uiState) SlideCenter(i int) float32 {
	if c := u.card(i); c != nil {
		return c.center()
	}
	return 0
}

// ScrollToCenter animates the row so card i ends up centered. Every frame
// reports a scroll so the coordinator samples once the animation settles.
func (u *uiState) ScrollToCenter(i int) {
	c := u.card(i)
	if c == nil {
		return
	}
	from := u.scroll.Offset.X
	to := centeredOffset(c.center(), u.row.Size().Width, u.scroll.Size().Width)
	if u.anim != nil {
		u.anim.Stop()
	}
	duration := time.Duration(u.cfg.ScrollDurationMs) * time.Millisecond
	u.anim = fyne.NewAnimation(duration, func(f float32) {
		u.scroll.Offset.X = lerp(from, to, f)
		u.scroll.Refresh()
		u.coord.Dispatch(cardbrowser.Scrolled{})
	})
	u.anim.Curve = fyne.AnimationEaseInOut
	u.anim.Start()
}

// ShowDescription swaps in the description of the new active card. The
// previous text stays dimmed until ClearStale.
func (u *uiState) ShowDescription(text string) {
	if prev := u.descCurrent.Text; prev != "" {
		u.descStale.SetText(prev)
		u.descStale.Show()
	}
	u.descCurrent.SetText(text)
}

// ClearStale drops the previous description.
func (u *uiState) ClearStale() {
	u.descStale.SetText("")
	u.descStale.Hide()
}

// OpenDetail shows the detail dialog of card i.
func (u *uiState) OpenDetail(i int, scoreText string) {
	cat := u.coord.Catalog()
	if i < 0 || i >= len(cat.Slides) {
		return
	}
	slide := cat.Slides[i]
	tags := widget.NewLabel(tagLine(slide))
	content := container.NewVBox(
		widget.NewLabelWithStyle(scoreLabel(scoreText), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		tags,
		widget.NewRichTextFromMarkdown(slide.Description),
	)
	d := dialog.NewCustom(slide.Name, "Close", container.NewVScroll(content), u.w)
	d.SetOnClosed(func() { u.coord.Dispatch(cardbrowser.CloseDetail{}) })
	d.Resize(fyne.NewSize(560, 420))
	u.detailDlg = d
	d.Show()
}

// CloseDetail hides the detail dialog; the widgets are released in DetachDetail.
func (u *uiState) CloseDetail() {
	if u.detailDlg != nil {
		u.detailDlg.Hide()
	}
}

// DetachDetail releases the closed dialog.
func (u *uiState) DetachDetail(int) {
	u.detailDlg = nil
}

func (u *uiState) closeDetailDialog() {
	if u.detailDlg != nil {
		d := u.detailDlg
		u.detailDlg = nil
		d.Hide()
	}
}

func tagLine(slide cardbrowser.Slide) string {
	var parts []string
	for _, kind := range cardbrowser.TagKinds {
		if v := slide.Tag(kind); v != "" {
			parts = append(parts, kind.String()+": "+v)
		}
	}
	return joinParts(parts)
}
