package app

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"yashubustudio/cardbrowser/cardbrowser"
)

const (
	logDebounceInterval = 150 * time.Millisecond
	maxLogLines         = 200
	keyDrawer           = "drawer"
	windowTitle         = "Card Browser"
)

type uiState struct {
	svc    *cardbrowser.Service
	cfg    cardbrowser.Config
	logger *zap.Logger
	coord  *cardbrowser.Coordinator
	sched  *cardbrowser.Scheduler

	w      fyne.Window
	scroll *container.Scroll
	row    *fyne.Container
	cards  []*slideCard
	anim   *fyne.Animation

	list      *widget.List
	ranked    []cardbrowser.RankedSlide
	listShown bool
	viewBtn   *widget.Button
	body      *fyne.Container

	drawer    *fyne.Container
	drawerBtn *widget.Button
	groups    []*categoryGroup
	presets   map[string]*widget.Button
	clearBtn  *widget.Button
	prevBtn   *widget.Button
	nextBtn   *widget.Button

	descCurrent *widget.Label
	descStale   *widget.Label
	detailDlg   dialog.Dialog

	logs *logPanel
}

func buildUI(a fyne.App, svc *cardbrowser.Service, logs *logPanel) *uiState {
	u := &uiState{svc: svc, cfg: svc.Config(), logger: svc.Logger(), logs: logs}
	u.w = a.NewWindow(windowTitle)
	exec := cardbrowser.ExecutorFunc(fyne.Do)
	u.sched = cardbrowser.NewScheduler(cardbrowser.RealClock{}, exec)

	u.row = container.NewHBox()
	u.scroll = container.NewHScroll(u.row)
	u.scroll.OnScrolled = func(fyne.Position) { u.coord.Dispatch(cardbrowser.Scrolled{}) }

	u.list = widget.NewList(
		func() int { return len(u.ranked) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(u.ranked) {
				return
			}
			r := u.ranked[id]
			obj.(*widget.Label).SetText(fmt.Sprintf("%s  %s", r.Score.Text(), r.Slide.Name))
		},
	)
	u.list.OnSelected = func(id widget.ListItemID) {
		if id >= len(u.ranked) {
			return
		}
		target := u.ranked[id].Index
		u.list.UnselectAll()
		u.setListShown(false)
		u.ScrollToCenter(target)
	}
	u.list.Hide()

	u.prevBtn = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() { u.coord.Dispatch(cardbrowser.Prev{}) })
	u.nextBtn = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() { u.coord.Dispatch(cardbrowser.Next{}) })
	u.prevBtn.Disable()
	u.nextBtn.Disable()

	u.descCurrent = widget.NewLabel("")
	u.descCurrent.Wrapping = fyne.TextWrapWord
	u.descStale = widget.NewLabel("")
	u.descStale.Wrapping = fyne.TextWrapWord
	u.descStale.Importance = widget.LowImportance
	u.descStale.Hide()

	u.drawer = container.NewVBox()
	u.drawer.Hide()
	u.drawerBtn = widget.NewButtonWithIcon("Filters", theme.MenuIcon(), func() { u.setDrawerOpen(!u.drawer.Visible()) })
	u.clearBtn = widget.NewButtonWithIcon("Clear all", theme.ContentClearIcon(), func() { u.coord.Dispatch(cardbrowser.ClearAll{}) })
	u.clearBtn.Disable()
	u.viewBtn = widget.NewButton(viewToggleLabel(false), func() { u.setListShown(!u.listShown) })
	exportBtn := widget.NewButtonWithIcon("Export", theme.DocumentSaveIcon(), func() { u.onExport() })
	reloadBtn := widget.NewButtonWithIcon("Reload", theme.ViewRefreshIcon(), func() { u.onReload() })

	u.coord = cardbrowser.NewCoordinator(svc.Catalog(), cardbrowser.Options{
		Render:      u,
		Geometry:    u,
		Description: u,
		Detail:      u,
		Executor:    exec,
		Clock:       cardbrowser.RealClock{},
		Timings:     u.cfg.Timings(),
		Logger:      u.logger,
	})
	u.coord.OnActiveChange(func(i int) {
		cat := u.coord.Catalog()
		if i >= 0 && i < len(cat.Slides) {
			u.w.SetTitle(windowTitle + " - " + cat.Slides[i].Name)
		}
	})
	u.buildCatalogWidgets(svc.Catalog())

	toolbar := container.NewHBox(u.drawerBtn, u.clearBtn, u.viewBtn, exportBtn, reloadBtn)
	u.body = container.NewStack(
		container.NewBorder(nil, nil, u.prevBtn, u.nextBtn, u.scroll),
		u.list,
	)
	logEntry := widget.NewEntryWithData(logs.bind)
	logEntry.MultiLine = true
	logEntry.Wrapping = fyne.TextWrapWord
	logEntry.Disable()

	bottom := container.NewVSplit(
		container.NewVBox(
			widget.NewLabelWithStyle("Description", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			u.descCurrent,
			u.descStale,
		),
		logEntry,
	)
	bottom.Offset = 0.6
	split := container.NewVSplit(u.body, bottom)
	split.Offset = 0.62

	u.w.SetContent(container.NewBorder(container.NewVBox(toolbar, u.drawer), nil, nil, nil, split))
	u.w.Canvas().SetOnTypedKey(u.onKey)
	u.w.Resize(fyne.NewSize(1180, 760))
	return u
}

// buildCatalogWidgets recreates the cards and the filter drawer for cat.
func (u *uiState) buildCatalogWidgets(cat cardbrowser.Catalog) {
	dispatch := u.coord.Dispatch
	u.row.RemoveAll()
	u.cards = nil
	for i, slide := range cat.Slides {
		card := newSlideCard(i, slide, u.cfg.CardWidth, dispatch)
		u.cards = append(u.cards, card)
		u.row.Add(card.root)
	}
	u.row.Refresh()

	u.drawer.RemoveAll()
	u.groups = newCategoryGroups(cat.Criteria, dispatch)
	for _, g := range u.groups {
		u.drawer.Add(g.object())
	}
	u.presets = make(map[string]*widget.Button, len(cat.Presets))
	presetRow := container.NewHBox(widget.NewLabelWithStyle("Presets", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	for _, p := range cat.Presets {
		name := p.Name
		label := p.Label
		if label == "" {
			label = name
		}
		btn := widget.NewButton(label, func() { u.onPreset(name) })
		u.presets[name] = btn
		presetRow.Add(btn)
	}
	u.drawer.Add(presetRow)
	u.drawer.Refresh()
}

func (u *uiState) onCatalogReloaded(cat cardbrowser.Catalog) {
	u.closeDetailDialog()
	u.buildCatalogWidgets(cat)
	u.coord.Dispatch(cardbrowser.ReplaceCatalog{Catalog: cat})
}

// onPreset applies the preset and closes the drawer once the pill
// highlight has had time to show.
func (u *uiState) onPreset(name string) {
	u.coord.Dispatch(cardbrowser.ActivatePreset{Name: name})
	u.sched.Schedule(keyDrawer, u.cfg.Timings().Teardown, func() { u.setDrawerOpen(false) })
}

func (u *uiState) setDrawerOpen(open bool) {
	u.sched.Cancel(keyDrawer)
	if open {
		u.drawer.Show()
	} else {
		u.drawer.Hide()
	}
}

func (u *uiState) setListShown(shown bool) {
	u.listShown = shown
	u.viewBtn.SetText(viewToggleLabel(shown))
	if shown {
		u.refreshRanking()
		u.list.Show()
	} else {
		u.list.Hide()
	}
	u.body.Refresh()
}

func (u *uiState) refreshRanking() {
	u.ranked = cardbrowser.Rank(u.coord.Catalog().Slides, u.coord.Result())
	u.list.Refresh()
}

func (u *uiState) onKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyEscape:
		u.coord.Dispatch(cardbrowser.Escape{})
	case fyne.KeyLeft:
		u.coord.Dispatch(cardbrowser.Prev{})
	case fyne.KeyRight:
		u.coord.Dispatch(cardbrowser.Next{})
	}
}

func (u *uiState) onReload() {
	cat, err := u.svc.Reload()
	if err != nil {
		u.logger.Warn("reload failed", zap.Error(err))
		dialog.ShowError(err, u.w)
		return
	}
	u.onCatalogReloaded(cat)
}

func (u *uiState) onExport() {
	cat := u.coord.Catalog()
	state := u.coord.State()
	res := u.coord.Result()
	fd := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil || uc == nil {
			return
		}
		defer uc.Close()
		if err := cardbrowser.WriteReport(uc, windowTitle, cat.Slides, state, res); err != nil {
			u.logger.Error("export failed", zap.Error(err))
			dialog.ShowError(err, u.w)
			return
		}
		u.logger.Info("report exported", zap.String("path", uc.URI().Path()), zap.Int("cards", len(res.VisibleIDs())))
	}, u.w)
	fd.SetFileName("ranking.html")
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".html"}))
	fd.Show()
}

func (u *uiState) close() {
	u.sched.Stop()
	u.coord.Close()
	if u.anim != nil {
		u.anim.Stop()
	}
	u.logs.stop()
}

// logPanel collects log lines for the in-window log view. Updates to the
// bound text are debounced.
type logPanel struct {
	bind     binding.String
	mu       sync.Mutex
	lines    []string
	updateCh chan struct{}
	done     chan struct{}
}

func newLogPanel() *logPanel {
	p := &logPanel{
		bind:     binding.NewString(),
		updateCh: make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	go p.updateLoop()
	return p
}

// Write accepts encoded zap entries, one or more lines at a time.
func (p *logPanel) Write(b []byte) (int, error) {
	text := strings.TrimRight(string(b), "\n")
	if text == "" {
		return len(b), nil
	}
	p.mu.Lock()
	p.lines = append(p.lines, strings.Split(text, "\n")...)
	if len(p.lines) > maxLogLines {
		p.lines = p.lines[len(p.lines)-maxLogLines:]
	}
	p.mu.Unlock()

	select {
	case p.updateCh <- struct{}{}:
	default:
	}
	return len(b), nil
}

func (p *logPanel) updateLoop() {
	timer := time.NewTimer(logDebounceInterval)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-p.done:
			timer.Stop()
			return
		case <-p.updateCh:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(logDebounceInterval)
		case <-timer.C:
			p.flush()
		}
	}
}

func (p *logPanel) flush() {
	p.mu.Lock()
	text := strings.Join(p.lines, "\n")
	p.mu.Unlock()
	_ = p.bind.Set(text)
}

func (p *logPanel) text() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return strings.Join(p.lines, "\n")
}

func (p *logPanel) stop() {
	select {
	case <-p.done:
	default:
		close(p.done)
	}
}
