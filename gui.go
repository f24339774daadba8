//go:build gui

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/muesli/reflow/wordwrap"
	"go.uber.org/zap"

	"github.com/metcalfc/prr/internal/assistant"
	"github.com/metcalfc/prr/internal/audio"
	"github.com/metcalfc/prr/internal/document"
	"github.com/metcalfc/prr/internal/library"
	"github.com/metcalfc/prr/internal/viewer"
)

const (
	baseTextSize = 16
	sidebarWidth = 320
	minColumns   = 20
)

// typedKeys maps fyne key names to the shortcut table's spelling. Space
// and printable keys arrive as runes.
var typedKeys = map[fyne.KeyName]string{
	fyne.KeyLeft:     "left",
	fyne.KeyRight:    "right",
	fyne.KeyHome:     "home",
	fyne.KeyEnd:      "end",
	fyne.KeyPageUp:   "pgup",
	fyne.KeyPageDown: "pgdown",
	fyne.KeyEscape:   "esc",
}

var ctrlKeys = []fyne.KeyName{fyne.KeyEqual, fyne.KeyMinus, fyne.Key0, fyne.KeyQ, fyne.KeyT, fyne.KeyS}

type gui struct {
	app        *app
	win        fyne.Window
	ctrl       *viewer.Controller
	tracker    *assistant.Tracker
	transcript *assistant.Transcript
	player     *audio.Player

	doc              *document.Document
	loading          bool
	loadPath         string
	shelf            *library.Shelf
	chatOpen         bool
	sidebarCollapsed bool
	syncing          bool
	lastPage         int

	first, prev, next, last *widget.Button
	zoomOut, zoomIn         *widget.Button
	pageEntry               *widget.Entry
	totalLabel              *widget.Label
	zoomSelect              *widget.Select
	modeSelect              *widget.Select
	statusLabel             *widget.Label

	page       *fyne.Container
	pageScroll *container.Scroll
	tabs       *container.AppTabs
	taskLabels map[assistant.TaskKind]*widget.Label
	bookLabel  *widget.Label
	chatLabel  *widget.Label
	chatEntry  *widget.Entry

	audioButton *widget.Button
	audioBar    *widget.ProgressBar
	audioTime   *widget.Label

	root *fyne.Container
	done chan struct{}
	once sync.Once
}

func newGUI(a *app, w fyne.Window) *gui {
	g := &gui{
		app:        a,
		win:        w,
		ctrl:       viewer.NewController(),
		tracker:    assistant.NewTracker(context.Background()),
		transcript: assistant.NewTranscript(),
		taskLabels: make(map[assistant.TaskKind]*widget.Label),
		done:       make(chan struct{}),
	}

	g.first = widget.NewButtonWithIcon("", theme.MediaSkipPreviousIcon(), func() { g.command(viewer.CmdFirstPage) })
	g.prev = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() { g.command(viewer.CmdPrevPage) })
	g.next = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() { g.command(viewer.CmdNextPage) })
	g.last = widget.NewButtonWithIcon("", theme.MediaSkipNextIcon(), func() { g.command(viewer.CmdLastPage) })
	g.zoomOut = widget.NewButtonWithIcon("", theme.ZoomOutIcon(), func() { g.command(viewer.CmdZoomOut) })
	g.zoomIn = widget.NewButtonWithIcon("", theme.ZoomInIcon(), func() { g.command(viewer.CmdZoomIn) })

	g.pageEntry = widget.NewEntry()
	g.pageEntry.OnSubmitted = g.submitPage
	g.totalLabel = widget.NewLabel("of -")

	presets := make([]string, len(viewer.ZoomPresets))
	for i, z := range viewer.ZoomPresets {
		presets[i] = viewer.ZoomLabel(z)
	}
	g.zoomSelect = widget.NewSelect(presets, func(label string) {
		if g.syncing {
			return
		}
		if z, ok := viewer.ParseZoomLabel(label); ok {
			g.ctrl.SetZoom(viewer.ZoomTo(z))
		}
	})

	var modes []string
	for _, m := range viewer.ViewModes() {
		modes = append(modes, m.Label())
	}
	g.modeSelect = widget.NewSelect(modes, func(label string) {
		if g.syncing {
			return
		}
		if m, ok := viewer.ParseViewMode(label); ok {
			g.ctrl.SetViewMode(m)
		}
	})

	g.statusLabel = widget.NewLabel("")
	g.statusLabel.Truncation = fyne.TextTruncateEllipsis

	g.page = container.NewVBox()
	g.pageScroll = container.NewVScroll(g.page)

	for _, k := range []assistant.TaskKind{assistant.TaskTranslatePage, assistant.TaskSummarizePage} {
		l := widget.NewLabel("")
		l.Wrapping = fyne.TextWrapWord
		g.taskLabels[k] = l
	}
	g.bookLabel = widget.NewLabel("")
	g.bookLabel.Wrapping = fyne.TextWrapWord
	g.tabs = container.NewAppTabs(
		container.NewTabItem("Translate", container.NewVScroll(container.NewVBox(
			widget.NewButton("Translate page", func() { g.command(viewer.CmdTranslatePage) }),
			g.taskLabels[assistant.TaskTranslatePage]))),
		container.NewTabItem("Summarize", container.NewVScroll(container.NewVBox(
			widget.NewButton("Summarize page", func() { g.command(viewer.CmdSummarizePage) }),
			g.taskLabels[assistant.TaskSummarizePage]))),
		container.NewTabItem("Book", container.NewVScroll(container.NewVBox(
			container.NewHBox(
				widget.NewButton("Translate book", func() { g.startTask(assistant.TaskTranslateBook, 2) }),
				widget.NewButton("Summarize book", func() { g.startTask(assistant.TaskSummarizeBook, 2) })),
			g.bookLabel))),
	)

	g.chatLabel = widget.NewLabel("")
	g.chatLabel.Wrapping = fyne.TextWrapWord
	g.chatEntry = widget.NewEntry()
	g.chatEntry.SetPlaceHolder("Ask about this page...")
	g.chatEntry.OnSubmitted = g.ask

	g.audioButton = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), g.toggleAudioPlayback)
	g.audioBar = widget.NewProgressBar()
	g.audioBar.TextFormatter = func() string { return "" }
	g.audioTime = widget.NewLabel("")

	g.root = container.NewStack()
	g.ctrl.Subscribe(g.onViewChange)
	g.bindKeys()
	g.rebuild()
	return g
}

func (g *gui) bindKeys() {
	c := g.win.Canvas()
	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if name, ok := typedKeys[ev.Name]; ok {
			g.key(name)
		}
	})
	c.SetOnTypedRune(func(r rune) {
		g.key(string(r))
	})
	for _, k := range ctrlKeys {
		name := "ctrl+" + strings.ToLower(string(k))
		c.AddShortcut(&desktop.CustomShortcut{KeyName: k, Modifier: fyne.KeyModifierShortcutDefault},
			func(fyne.Shortcut) { g.key(name) })
	}
}

func (g *gui) key(name string) {
	if cmd, ok := viewer.Lookup(name); ok {
		g.command(cmd)
	}
}

// command runs cmd on the UI thread.
func (g *gui) command(cmd viewer.Command) {
	if g.loading || g.doc == nil {
		if cmd == viewer.CmdQuit {
			g.quit()
		}
		return
	}
	switch cmd {
	case viewer.CmdEscape:
		switch {
		case g.chatOpen:
			g.chatOpen = false
			g.rebuild()
		case g.ctrl.State().Mode == viewer.ModePresentation:
			g.ctrl.Dispatch(cmd)
		case g.shelf != nil:
			g.backToLibrary()
		}
	case viewer.CmdOpenChat:
		g.chatOpen = true
		g.rebuild()
		g.win.Canvas().Focus(g.chatEntry)
	case viewer.CmdTranslatePage:
		g.startTask(assistant.TaskTranslatePage, 0)
	case viewer.CmdSummarizePage:
		g.startTask(assistant.TaskSummarizePage, 1)
	case viewer.CmdToggleSidebar:
		g.sidebarCollapsed = !g.sidebarCollapsed
		g.rebuild()
	case viewer.CmdToggleAudio:
		if g.player != nil {
			g.player = nil
		} else {
			g.player = audio.NewPlayer(audio.DefaultTitle)
		}
		g.rebuild()
	case viewer.CmdJumpPrompt:
		g.win.Canvas().Focus(g.pageEntry)
	case viewer.CmdHelp:
		dialog.ShowInformation("Keyboard shortcuts", shortcutHelp(), g.win)
	case viewer.CmdQuit:
		g.quit()
	default:
		g.ctrl.Dispatch(cmd)
	}
}

func shortcutHelp() string {
	var b strings.Builder
	for _, s := range viewer.Shortcuts {
		fmt.Fprintf(&b, "%-8s %s\n", strings.Join(s.Keys, " "), s.Command)
	}
	return b.String()
}

func (g *gui) submitPage(text string) {
	s := g.ctrl.State()
	n, ok := viewer.ParsePageInput(text, s.TotalPages)
	if !ok {
		g.pageEntry.SetText(strconv.Itoa(s.Page))
		g.status(fmt.Sprintf("Enter a page between 1 and %d", s.TotalPages))
		return
	}
	g.ctrl.SetPage(viewer.GoTo(n))
	g.win.Canvas().Unfocus()
}

func (g *gui) status(text string) {
	g.statusLabel.SetText(text)
}

func (g *gui) open(path string) {
	g.loading = true
	g.loadPath = path
	g.status("Loading " + path + "...")
	g.rebuild()
	go func() {
		doc, err := g.app.openDocument(path)
		fyne.Do(func() { g.loaded(path, doc, err) })
	}()
}

func (g *gui) loaded(path string, doc *document.Document, err error) {
	if path != g.loadPath {
		return
	}
	g.loading = false
	if err != nil {
		g.status(fmt.Sprintf("Could not open %s: %v", path, err))
		if g.shelf != nil {
			g.showLibrary()
		}
		return
	}
	g.doc = doc
	g.transcript = assistant.NewTranscript()
	g.lastPage = 0
	g.win.SetTitle("prr - " + doc.Title)
	g.app.applyView(g.ctrl, doc)
	g.status(fmt.Sprintf("Loaded %s (%d pages)", doc.Title, doc.PageCount()))
	g.rebuild()
}

func (g *gui) openLibrary(dir string) {
	g.loading = true
	g.status("Scanning " + dir + "...")
	go func() {
		shelf, err := g.app.scan(context.Background(), dir)
		fyne.Do(func() {
			g.loading = false
			if err != nil {
				g.status(fmt.Sprintf("Could not read library: %v", err))
				return
			}
			g.shelf = shelf
			g.showLibrary()
		})
	}()
}

func (g *gui) showLibrary() {
	books := g.shelf.Books
	list := widget.NewList(
		func() int { return len(books) },
		func() fyne.CanvasObject {
			return container.NewVBox(widget.NewLabel("Title"), widget.NewLabel("Details"))
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			b := books[id]
			vbox := obj.(*fyne.Container)
			title := vbox.Objects[0].(*widget.Label)
			title.SetText(b.Title)
			title.TextStyle.Bold = true
			vbox.Objects[1].(*widget.Label).SetText(fmt.Sprintf("%s · %d pages", b.Format, b.Pages))
		},
	)
	list.OnSelected = func(id widget.ListItemID) {
		g.open(books[id].Path)
	}
	st := g.shelf.Stats()
	header := widget.NewLabel(fmt.Sprintf("Library · %d books · %d pages", st.Books, st.Pages))
	header.TextStyle.Bold = true
	g.root.Objects = []fyne.CanvasObject{container.NewBorder(header, g.statusLabel, nil, nil, list)}
	g.root.Refresh()
}

func (g *gui) backToLibrary() {
	g.app.saveView(g.doc.ID, g.ctrl.State())
	for _, k := range []assistant.TaskKind{
		assistant.TaskTranslatePage, assistant.TaskSummarizePage,
		assistant.TaskTranslateBook, assistant.TaskSummarizeBook, assistant.TaskChat,
	} {
		g.tracker.Cancel(k)
	}
	g.doc = nil
	g.loadPath = ""
	g.chatOpen = false
	g.player = nil
	g.win.SetFullScreen(false)
	g.showLibrary()
}

// startTask runs an assistant task for the current page and shows the
// sidebar tab at index tab.
func (g *gui) startTask(kind assistant.TaskKind, tab int) {
	page := g.ctrl.State().Page
	if g.ctrl.State().Mode != viewer.ModeAnalysis {
		g.ctrl.SetViewMode(viewer.ModeAnalysis)
	}
	g.tabs.SelectIndex(tab)
	ctx, tk := g.tracker.Start(kind, page)
	g.renderTasks()

	ai, doc, req := g.app.ai, g.doc, g.app.request(g.doc, page)
	go func() {
		res, err := runTask(ctx, ai, kind, doc, req)
		fyne.Do(func() { g.finishTask(tk, res, err) })
	}()
}

func (g *gui) ask(question string) {
	question = strings.TrimSpace(question)
	if question == "" || g.doc == nil || g.tracker.Task(assistant.TaskChat).State == assistant.TaskInFlight {
		return
	}
	g.chatEntry.SetText("")
	page := g.ctrl.State().Page
	history := g.transcript.History()
	g.transcript.AddUser(question, page)
	g.renderChat()

	ctx, tk := g.tracker.Start(assistant.TaskChat, page)
	req := g.app.request(g.doc, page)
	go func() {
		reply, err := g.app.ai.Ask(ctx, req, history, question)
		fyne.Do(func() { g.finishTask(tk, reply, err) })
	}()
}

func (g *gui) finishTask(tk assistant.Ticket, result string, err error) {
	if !g.tracker.Finish(tk, result, err) {
		return
	}
	switch {
	case errors.Is(err, context.Canceled):
	case err != nil:
		g.app.log.Warn("assistant task failed", zap.String("task", tk.Kind.String()), zap.Error(err))
		g.status(fmt.Sprintf("%s failed: %v", capitalize(tk.Kind.String()), err))
	case tk.Kind == assistant.TaskChat:
		g.transcript.AddAssistant(result, tk.Page)
	default:
		g.status(capitalize(tk.Kind.String()) + " finished")
	}
	g.renderTasks()
	g.renderChat()
}

func (g *gui) toggleAudioPlayback() {
	if g.player == nil {
		return
	}
	g.player.Toggle()
	g.renderAudio()
}

func (g *gui) audioTick() {
	if g.player == nil || !g.player.Playing {
		return
	}
	g.player.Tick(audio.TickInterval)
	g.renderAudio()
}

func (g *gui) quit() {
	g.close()
	fyne.CurrentApp().Quit()
}

// close saves the view and stops background work. Safe to call twice.
func (g *gui) close() {
	g.once.Do(func() {
		if g.doc != nil {
			g.app.saveView(g.doc.ID, g.ctrl.State())
		}
		g.tracker.Close()
		close(g.done)
	})
}

func (g *gui) onViewChange(s viewer.State) {
	if s.Page != g.lastPage {
		g.lastPage = s.Page
		g.pageScroll.ScrollToTop()
	}
	g.rebuild()
}

// rebuild lays the window out for the current mode and re-renders every
// panel.
func (g *gui) rebuild() {
	s := g.ctrl.State()
	lay := viewer.LayoutFor(s.Mode, g.sidebarCollapsed, g.chatOpen)

	g.renderToolbar(s)
	g.renderPage(s, lay)
	g.renderTasks()
	g.renderChat()
	g.renderAudio()

	var top fyne.CanvasObject
	if lay.ShowToolbar {
		top = container.NewHBox(
			g.first, g.prev, g.pageEntry, g.totalLabel, g.next, g.last,
			widget.NewSeparator(),
			g.zoomOut, g.zoomSelect, g.zoomIn,
			widget.NewSeparator(),
			g.modeSelect,
		)
	}

	bottom := []fyne.CanvasObject{}
	if g.player != nil {
		bottom = append(bottom, container.NewBorder(nil, nil,
			container.NewHBox(g.audioButton, widget.NewLabel(g.player.Title)), g.audioTime, g.audioBar))
	}
	bottom = append(bottom, g.statusLabel)

	var right fyne.CanvasObject
	if g.chatOpen {
		chat := container.NewBorder(widget.NewLabel("Chat"), g.chatEntry, nil, nil, container.NewVScroll(g.chatLabel))
		right = container.NewGridWrap(fyne.NewSize(sidebarWidth, g.win.Canvas().Size().Height), chat)
	}

	var left fyne.CanvasObject
	if lay.ShowSidebar {
		if g.sidebarCollapsed {
			left = widget.NewButtonWithIcon("", theme.MenuExpandIcon(), func() { g.command(viewer.CmdToggleSidebar) })
		} else {
			left = container.NewGridWrap(fyne.NewSize(sidebarWidth, g.win.Canvas().Size().Height), g.tabs)
		}
	}

	var body fyne.CanvasObject = g.pageScroll
	if lay.Stacked && right != nil {
		body = container.NewVSplit(g.pageScroll, right)
		right = nil
	}

	g.root.Objects = []fyne.CanvasObject{
		container.NewBorder(top, container.NewVBox(bottom...), left, right, body),
	}
	g.root.Refresh()

	if g.win.FullScreen() != lay.Fullscreen {
		g.win.SetFullScreen(lay.Fullscreen)
	}
}

func (g *gui) renderToolbar(s viewer.State) {
	tb := viewer.ToolbarFor(s, g.loading)
	for _, b := range []struct {
		w  *widget.Button
		on bool
	}{
		{g.first, tb.CanFirst}, {g.prev, tb.CanPrev}, {g.next, tb.CanNext}, {g.last, tb.CanLast},
		{g.zoomOut, tb.CanZoomOut}, {g.zoomIn, tb.CanZoomIn},
	} {
		if b.on {
			b.w.Enable()
		} else {
			b.w.Disable()
		}
	}

	g.syncing = true
	defer func() { g.syncing = false }()
	if s.Loaded() {
		g.pageEntry.SetText(strconv.Itoa(s.Page))
		g.totalLabel.SetText(fmt.Sprintf("of %d", s.TotalPages))
	}
	g.zoomSelect.ClearSelected()
	g.zoomSelect.PlaceHolder = tb.ZoomLabel
	g.zoomSelect.SetSelected(tb.ZoomLabel)
	g.modeSelect.SetSelected(s.Mode.Label())
}

// renderPage draws the current page. Zoom scales the text size; lines are
// wrapped to fit the page width.
func (g *gui) renderPage(s viewer.State, lay viewer.Layout) {
	if g.doc == nil || !s.Loaded() {
		g.page.Objects = nil
		g.page.Refresh()
		return
	}
	size := float32(baseTextSize * s.Scale)
	width := g.win.Canvas().Size().Width
	if width <= 0 {
		width = 1024
	}
	if lay.ShowSidebar && !g.sidebarCollapsed {
		width -= sidebarWidth
	}
	cols := int(width / (size * 0.6))
	if lay.MaxPageWidth > 0 && cols > lay.MaxPageWidth {
		cols = lay.MaxPageWidth
	}
	cols = max(cols, minColumns)

	fg := theme.Color(theme.ColorNameForeground)
	var lines []fyne.CanvasObject
	if sec := g.doc.SectionAt(s.Page); sec != "" {
		t := canvas.NewText(sec, fg)
		t.TextSize = size * 1.2
		t.TextStyle.Bold = true
		lines = append(lines, t)
	}
	for _, line := range strings.Split(wordwrap.String(g.doc.PageText(s.Page), cols), "\n") {
		t := canvas.NewText(line, fg)
		t.TextSize = size
		lines = append(lines, t)
	}
	if lay.Fullscreen {
		t := canvas.NewText(fmt.Sprintf("%d / %d", s.Page, s.TotalPages), theme.Color(theme.ColorNameDisabled))
		t.TextSize = baseTextSize
		t.Alignment = fyne.TextAlignCenter
		lines = append(lines, t)
	}
	g.page.Objects = lines
	g.page.Refresh()
}

func (g *gui) renderTasks() {
	now := time.Now()
	for kind, label := range g.taskLabels {
		label.SetText(taskText(g.tracker.Task(kind), now))
	}

	var b strings.Builder
	if g.doc != nil {
		fmt.Fprintf(&b, "%s\n%s · %d pages\n\n", g.doc.Title, g.doc.Format, g.doc.PageCount())
	}
	for _, kind := range []assistant.TaskKind{assistant.TaskTranslateBook, assistant.TaskSummarizeBook} {
		if t := g.tracker.Task(kind); t.State != assistant.TaskIdle {
			fmt.Fprintf(&b, "%s\n%s\n\n", capitalize(kind.String()), taskText(t, now))
		}
	}
	if g.doc != nil && len(g.doc.TOC) > 0 {
		b.WriteString("Contents\n")
		for _, e := range g.doc.TOC {
			fmt.Fprintf(&b, "%s%s  p.%d\n", strings.Repeat("  ", e.Level), e.Title, e.Page)
		}
	}
	g.bookLabel.SetText(b.String())
}

func taskText(t assistant.Task, now time.Time) string {
	switch t.State {
	case assistant.TaskInFlight:
		return fmt.Sprintf("Working on page %d... %s", t.Page, t.Elapsed(now).Round(time.Second))
	case assistant.TaskDone:
		return t.Result
	case assistant.TaskFailed:
		return "Failed: " + t.Err.Error()
	}
	return "Nothing yet."
}

func (g *gui) renderChat() {
	var b strings.Builder
	for _, m := range g.transcript.Messages() {
		who := "AI"
		if m.Role == assistant.RoleUser {
			who = "You"
		}
		fmt.Fprintf(&b, "%s (%s)\n%s\n\n", who, m.Timestamp.Format("15:04"), m.Content)
	}
	if g.tracker.Task(assistant.TaskChat).State == assistant.TaskInFlight {
		b.WriteString("AI is typing...")
	} else if g.transcript.Len() == 1 {
		b.WriteString("Try asking:\n")
		for _, q := range assistant.SuggestedQuestions {
			b.WriteString("  " + q + "\n")
		}
	}
	g.chatLabel.SetText(b.String())
}

func (g *gui) renderAudio() {
	p := g.player
	if p == nil {
		return
	}
	if p.Playing {
		g.audioButton.SetIcon(theme.MediaPauseIcon())
	} else {
		g.audioButton.SetIcon(theme.MediaPlayIcon())
	}
	g.audioBar.SetValue(p.Progress())
	g.audioTime.SetText(audio.FormatTime(p.Position) + " / " + audio.FormatTime(p.Duration))
}

// watch re-lays the window when its width changes and drives the audio
// clock.
func (g *gui) watch() {
	tick := time.NewTicker(audio.TickInterval)
	defer tick.Stop()
	poll := time.NewTicker(100 * time.Millisecond)
	defer poll.Stop()

	var lastWidth float32
	for {
		select {
		case <-g.done:
			return
		case <-tick.C:
			fyne.Do(g.audioTick)
		case <-poll.C:
			fyne.Do(func() {
				if w := g.win.Canvas().Size().Width; w > 0 && w != lastWidth {
					lastWidth = w
					g.rebuild()
				}
			})
		}
	}
}

func main() {
	o, err := parseFlags("prr-gui", os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if o.showVersion {
		fmt.Println(versionString("prr-gui"))
		os.Exit(0)
	}
	if o.showFormats {
		fmt.Println("Supported formats:")
		fmt.Println("  " + strings.Join(document.SupportedFormats(), "\n  "))
		os.Exit(0)
	}

	a, err := newApp(o)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer a.close()

	path, isDir, err := a.startPath(o.path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Try: prr-gui -h")
		os.Exit(1)
	}

	fa := fyneapp.New()
	w := fa.NewWindow("prr")
	w.Resize(fyne.NewSize(1024, 768))

	g := newGUI(a, w)
	w.SetContent(g.root)
	w.SetOnClosed(g.close)

	if isDir {
		g.openLibrary(path)
	} else {
		g.open(path)
	}
	go g.watch()

	w.ShowAndRun()
}
