package app

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"yashubustudio/cardbrowser/cardbrowser"
)

const (
	cardHeight     = 320
	snippetLength  = 120
	activeStroke   = 3
	inactiveStroke = 1
)

// slideCard is the widget tree of one card in the horizontal row.
type slideCard struct {
	index int
	slide cardbrowser.Slide
	root  *fyne.Container
	frame *canvas.Rectangle
	score *widget.Label
	tags  map[cardbrowser.TagKind]*widget.Button
}

func newSlideCard(index int, slide cardbrowser.Slide, width float32, dispatch func(cardbrowser.Action)) *slideCard {
	c := &slideCard{index: index, slide: slide, tags: make(map[cardbrowser.TagKind]*widget.Button)}

	c.frame = canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground))
	c.frame.CornerRadius = theme.InputRadiusSize()
	c.frame.StrokeWidth = inactiveStroke
	c.frame.StrokeColor = theme.Color(theme.ColorNameSeparator)

	name := widget.NewLabelWithStyle(slide.Name, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	c.score = widget.NewLabel(scoreLabel(cardbrowser.NoScoreText))

	tagRow := container.NewHBox()
	for _, kind := range cardbrowser.TagKinds {
		value := slide.Tag(kind)
		if value == "" {
			continue
		}
		kind := kind
		btn := widget.NewButton(value, func() {
			dispatch(cardbrowser.ToggleTag{Kind: kind, Value: value})
		})
		btn.Importance = widget.LowImportance
		c.tags[kind] = btn
		tagRow.Add(btn)
	}

	desc := widget.NewLabel(snippet(cardbrowser.PlainText(slide.Description), snippetLength))
	desc.Wrapping = fyne.TextWrapWord

	detail := widget.NewButton("Details", func() {
		dispatch(cardbrowser.OpenDetail{Index: index})
	})

	body := container.NewBorder(
		container.NewVBox(name, c.score, tagRow),
		detail, nil, nil,
		desc,
	)
	c.root = container.NewGridWrap(fyne.NewSize(width, cardHeight),
		container.NewStack(c.frame, container.NewPadded(body)))
	return c
}

func (c *slideCard) setActive(active bool) {
	if active {
		c.frame.StrokeWidth = activeStroke
		c.frame.StrokeColor = theme.Color(theme.ColorNamePrimary)
	} else {
		c.frame.StrokeWidth = inactiveStroke
		c.frame.StrokeColor = theme.Color(theme.ColorNameSeparator)
	}
	c.frame.Refresh()
}

// highlightTags marks the tag buttons whose value is the active filter.
func (c *slideCard) highlightTags(active map[cardbrowser.TagKind]string) {
	for kind, btn := range c.tags {
		want := widget.LowImportance
		if v, ok := active[kind]; ok && v == btn.Text {
			want = widget.HighImportance
		}
		if btn.Importance != want {
			btn.Importance = want
			btn.Refresh()
		}
	}
}

func (c *slideCard) center() float32 {
	return c.root.Position().X + c.root.Size().Width/2
}

func scoreLabel(text string) string {
	return "Score " + text
}

// categoryGroup is one category header with its criterion pills.
type categoryGroup struct {
	name  string
	title *widget.Label
	pills []*criterionPill
}

type criterionPill struct {
	key cardbrowser.CriterionKey
	btn *widget.Button
}

func newCategoryGroups(criteria []cardbrowser.Criterion, dispatch func(cardbrowser.Action)) []*categoryGroup {
	var groups []*categoryGroup
	byName := make(map[string]*categoryGroup)
	for _, cr := range criteria {
		name := cr.Category
		if name == "" {
			name = "Other"
		}
		g, ok := byName[name]
		if !ok {
			g = &categoryGroup{name: name, title: widget.NewLabelWithStyle(name, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})}
			byName[name] = g
			groups = append(groups, g)
		}
		slug := cr.Slug
		label := cr.Label
		if label == "" {
			label = string(cr.Key())
		}
		g.pills = append(g.pills, &criterionPill{
			key: cr.Key(),
			btn: widget.NewButton(label, func() { dispatch(cardbrowser.ToggleCriterion{Slug: slug}) }),
		})
	}
	return groups
}

func (g *categoryGroup) object() fyne.CanvasObject {
	row := container.NewHBox()
	for _, p := range g.pills {
		row.Add(p.btn)
	}
	return container.NewVBox(g.title, container.NewHScroll(row))
}

func (g *categoryGroup) update(view cardbrowser.FilterView) {
	g.title.SetText(categoryTitle(g.name, view.CategoryCounts[g.name]))
	for _, p := range g.pills {
		_, on := view.Active[p.key]
		setImportant(p.btn, on)
	}
}

func setImportant(btn *widget.Button, on bool) {
	want := widget.MediumImportance
	if on {
		want = widget.HighImportance
	}
	if btn.Importance != want {
		btn.Importance = want
		btn.Refresh()
	}
}
