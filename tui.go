//go:build !gui

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/metcalfc/prr/internal/assistant"
	"github.com/metcalfc/prr/internal/audio"
	"github.com/metcalfc/prr/internal/document"
	"github.com/metcalfc/prr/internal/library"
	"github.com/metcalfc/prr/internal/viewer"
)

const toastTimeout = 3 * time.Second

type screen int

const (
	screenLibrary screen = iota
	screenViewer
)

type inputMode int

const (
	inputNone inputMode = iota
	inputJump
	inputChat
	inputSearch
)

// section is the active panel of the analysis sidebar.
type section int

const (
	sectionTranslate section = iota
	sectionSummarize
	sectionChat
	sectionBook
	numSections
)

var sectionNames = [...]string{"Translate", "Summarize", "Chat", "Book"}

func (s section) String() string { return sectionNames[s] }

type toastKind int

const (
	toastInfo toastKind = iota
	toastSuccess
	toastError
)

type toast struct {
	id   int
	kind toastKind
	text string
}

type (
	docLoadedMsg struct {
		path string
		doc  *document.Document
		err  error
	}
	shelfMsg struct {
		shelf *library.Shelf
		err   error
	}
	taskDoneMsg struct {
		ticket assistant.Ticket
		lang   assistant.Language
		result string
		err    error
	}
	audioTickMsg  time.Time
	toastTimedOut int
)

type model struct {
	app        *app
	ctrl       *viewer.Controller
	tracker    *assistant.Tracker
	transcript *assistant.Transcript

	screen screen
	shelf  *library.Shelf
	list   list.Model

	doc      *document.Document
	loading  bool
	loadPath string
	loadErr  error
	lastPage int

	viewport viewport.Model
	input    textinput.Model
	mode     inputMode
	spinner  spinner.Model
	help     help.Model
	progress progress.Model

	chatOpen         bool
	showHelp         bool
	sidebarCollapsed bool
	section          section
	searchQuery      string
	searchResults    []document.Match
	suggestion       int

	player       *audio.Player
	audioTicking bool

	toast    toast
	toastSeq int

	init     tea.Cmd
	width    int
	height   int
	quitting bool
}

func newModel(a *app) *model {
	in := textinput.New()
	in.CharLimit = 500

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle))

	h := help.New()

	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 80, 20)
	l.Title = "Library"
	l.SetStatusBarItemName("book", "books")
	l.DisableQuitKeybindings()

	m := &model{
		app:        a,
		ctrl:       viewer.NewController(),
		tracker:    assistant.NewTracker(context.Background()),
		transcript: assistant.NewTranscript(),
		list:       l,
		viewport:   viewport.New(80, 20),
		input:      in,
		spinner:    sp,
		help:       h,
		progress:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		width:      80,
		height:     24,
	}
	m.ctrl.Subscribe(m.onViewChange)
	return m
}

// openFile starts the viewer on a single document.
func (m *model) openFile(path string) tea.Cmd {
	m.screen = screenViewer
	m.loading = true
	m.loadPath = path
	m.loadErr = nil
	return tea.Batch(m.spinner.Tick, m.loadCmd(path))
}

// openLibrary starts on the library screen.
func (m *model) openLibrary(dir string) tea.Cmd {
	m.screen = screenLibrary
	m.loading = true
	m.loadPath = dir
	return tea.Batch(m.spinner.Tick, m.scanCmd(dir))
}

func (m *model) loadCmd(path string) tea.Cmd {
	a := m.app
	return func() tea.Msg {
		doc, err := a.openDocument(path)
		return docLoadedMsg{path: path, doc: doc, err: err}
	}
}

func (m *model) scanCmd(dir string) tea.Cmd {
	a := m.app
	return func() tea.Msg {
		shelf, err := a.scan(context.Background(), dir)
		return shelfMsg{shelf: shelf, err: err}
	}
}

func (m *model) Init() tea.Cmd {
	return m.init
}

func (m *model) busy() bool {
	return m.loading || m.tracker.Busy()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if m.screen == screenLibrary {
			return m, m.updateLibrary(msg)
		}
		return m, m.updateViewer(msg)

	case shelfMsg:
		m.loading = false
		if msg.err != nil {
			m.loadErr = msg.err
			return m, m.notify(toastError, fmt.Sprintf("Could not read library: %v", msg.err))
		}
		m.setShelf(msg.shelf)
		if n := len(msg.shelf.Failures); n > 0 {
			return m, m.notify(toastError, fmt.Sprintf("%d file(s) could not be opened", n))
		}
		return m, nil

	case docLoadedMsg:
		if msg.path != m.loadPath {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.loadErr = msg.err
			cmd := m.notify(toastError, fmt.Sprintf("Could not open %s: %v", msg.path, msg.err))
			if m.shelf != nil {
				m.screen = screenLibrary
			}
			return m, cmd
		}
		m.setDocument(msg.doc)
		return m, m.notify(toastSuccess, fmt.Sprintf("Loaded %s (%d pages)", msg.doc.Title, msg.doc.PageCount()))

	case taskDoneMsg:
		return m, m.finishTask(msg)

	case audioTickMsg:
		if m.player == nil || !m.player.Playing {
			m.audioTicking = false
			return m, nil
		}
		m.player.Tick(audio.TickInterval)
		if !m.player.Playing {
			m.audioTicking = false
			return m, nil
		}
		return m, audioTick()

	case toastTimedOut:
		if int(msg) == m.toast.id {
			m.toast = toast{}
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd
	}

	if m.screen == screenLibrary {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	if m.mode != inputNone {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) updateLibrary(msg tea.KeyMsg) tea.Cmd {
	if m.list.SettingFilter() {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return cmd
	}
	switch {
	case key.Matches(msg, keys.QuitShelf):
		return m.quit()
	case key.Matches(msg, keys.OpenBook):
		if it, ok := m.list.SelectedItem().(bookItem); ok {
			return m.openFile(it.book.Path)
		}
		return nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return cmd
}

func (m *model) updateViewer(msg tea.KeyMsg) tea.Cmd {
	if m.mode != inputNone {
		return m.updateInput(msg)
	}
	if m.showHelp {
		if msg.String() == "?" || msg.String() == "esc" {
			m.showHelp = false
		}
		return nil
	}
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	if m.loading || m.doc == nil {
		// Only leaving works until a document is shown.
		switch cmd, _ := viewer.Lookup(msg.String()); cmd {
		case viewer.CmdQuit:
			return m.quit()
		case viewer.CmdEscape:
			if m.shelf != nil && !m.loading {
				m.backToLibrary()
			}
		}
		return nil
	}

	if m.player != nil {
		if cmd, ok := m.updateAudio(msg); ok {
			return cmd
		}
	}
	if cmd, ok := m.updatePanels(msg); ok {
		return cmd
	}

	cmd, ok := viewer.Lookup(msg.String())
	if !ok {
		return nil
	}
	switch cmd {
	case viewer.CmdEscape:
		switch {
		case m.chatOpen:
			m.chatOpen = false
			m.resize()
		case m.ctrl.State().Mode == viewer.ModePresentation:
			m.ctrl.Dispatch(cmd)
		case m.shelf != nil:
			m.backToLibrary()
		}
		return nil
	case viewer.CmdOpenChat:
		return m.openInput(inputChat)
	case viewer.CmdJumpPrompt:
		return m.openInput(inputJump)
	case viewer.CmdTranslatePage:
		return m.startTask(assistant.TaskTranslatePage, sectionTranslate)
	case viewer.CmdSummarizePage:
		return m.startTask(assistant.TaskSummarizePage, sectionSummarize)
	case viewer.CmdToggleSidebar:
		m.sidebarCollapsed = !m.sidebarCollapsed
		m.resize()
		return nil
	case viewer.CmdToggleAudio:
		m.toggleAudio()
		return nil
	case viewer.CmdHelp:
		m.showHelp = true
		return nil
	case viewer.CmdQuit:
		return m.quit()
	}
	m.ctrl.Dispatch(cmd)
	return nil
}

// updatePanels handles keys that are not part of the shortcut table.
func (m *model) updatePanels(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.ScrollUp):
		m.viewport.ScrollUp(1)
	case key.Matches(msg, keys.ScrollDown):
		m.viewport.ScrollDown(1)
	case key.Matches(msg, keys.Section):
		m.section = (m.section + 1) % numSections
		m.refresh()
	case key.Matches(msg, keys.Language):
		m.app.language = assistant.NextLanguage(m.app.language)
		return m.notify(toastInfo, "Language: "+m.app.language.Title()), true
	case key.Matches(msg, keys.Model):
		return m.notify(toastInfo, "Model: "+m.app.nextModel()), true
	case key.Matches(msg, keys.Length):
		m.app.length = m.app.length.Next()
		return m.notify(toastInfo, "Summary length: "+string(m.app.length)), true
	case key.Matches(msg, keys.TranslateBook):
		return m.startTask(assistant.TaskTranslateBook, sectionBook), true
	case key.Matches(msg, keys.SummarizeBook):
		return m.startTask(assistant.TaskSummarizeBook, sectionBook), true
	case key.Matches(msg, keys.Search):
		return m.openInput(inputSearch), true
	default:
		return nil, false
	}
	return nil, true
}

func (m *model) updateAudio(msg tea.KeyMsg) (tea.Cmd, bool) {
	p := m.player
	switch {
	case key.Matches(msg, keys.Play):
		p.Toggle()
		if p.Playing && !m.audioTicking {
			m.audioTicking = true
			return audioTick(), true
		}
	case key.Matches(msg, keys.Stop):
		p.Stop()
	case key.Matches(msg, keys.SkipBack):
		p.Skip(-audio.SkipStep)
	case key.Matches(msg, keys.SkipFwd):
		p.Skip(audio.SkipStep)
	case key.Matches(msg, keys.SeekBack):
		p.Seek(p.Progress()*100 - 10)
	case key.Matches(msg, keys.SeekFwd):
		p.Seek(p.Progress()*100 + 10)
	case key.Matches(msg, keys.Loop):
		p.ToggleLoop()
	case key.Matches(msg, keys.Mute):
		p.ToggleMute()
	case key.Matches(msg, keys.VolDown):
		p.SetVolume(p.Volume - 5)
	case key.Matches(msg, keys.VolUp):
		p.SetVolume(p.Volume + 5)
	case key.Matches(msg, keys.Expand):
		p.ToggleExpanded()
		m.resize()
	default:
		return nil, false
	}
	return nil, true
}

func (m *model) openInput(mode inputMode) tea.Cmd {
	m.mode = mode
	m.input.Reset()
	switch mode {
	case inputJump:
		m.input.Prompt = "Go to page: "
		m.input.Placeholder = fmt.Sprintf("1-%d", m.ctrl.State().TotalPages)
	case inputSearch:
		m.input.Prompt = "Search: "
		m.input.Placeholder = "keyword"
	case inputChat:
		m.chatOpen = true
		m.input.Prompt = "> "
		m.input.Placeholder = fmt.Sprintf("Ask about page %d...", m.ctrl.State().Page)
		m.resize()
	}
	return m.input.Focus()
}

func (m *model) closeInput() {
	m.mode = inputNone
	m.input.Blur()
	m.input.Reset()
}

func (m *model) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.CloseInput):
		if m.mode == inputChat {
			m.chatOpen = false
			m.resize()
		}
		m.closeInput()
		return nil
	case m.mode == inputChat && key.Matches(msg, keys.Suggest):
		m.input.SetValue(assistant.SuggestedQuestions[m.suggestion%len(assistant.SuggestedQuestions)])
		m.input.CursorEnd()
		m.suggestion++
		return nil
	case m.mode == inputChat && key.Matches(msg, keys.ClearChat):
		m.transcript.Clear()
		m.tracker.Cancel(assistant.TaskChat)
		m.refresh()
		return nil
	case key.Matches(msg, keys.Send):
		return m.submitInput()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *model) submitInput() tea.Cmd {
	text := m.input.Value()
	switch m.mode {
	case inputJump:
		m.closeInput()
		s := m.ctrl.State()
		n, ok := viewer.ParsePageInput(text, s.TotalPages)
		if !ok {
			return m.notify(toastError, fmt.Sprintf("Enter a page between 1 and %d", s.TotalPages))
		}
		m.ctrl.SetPage(viewer.GoTo(n))
		return nil

	case inputSearch:
		m.closeInput()
		m.searchQuery = text
		m.searchResults = m.doc.Search(text, 20)
		m.section = sectionBook
		if len(m.searchResults) == 0 {
			m.refresh()
			return m.notify(toastInfo, fmt.Sprintf("No matches for %q", text))
		}
		m.ctrl.SetPage(viewer.GoTo(m.searchResults[0].Page))
		m.refresh()
		return m.notify(toastSuccess, fmt.Sprintf("%d page(s) match %q", len(m.searchResults), text))

	case inputChat:
		if text == "" || m.tracker.Task(assistant.TaskChat).State == assistant.TaskInFlight {
			return nil
		}
		m.input.Reset()
		return m.ask(text)
	}
	return nil
}

func (m *model) ask(question string) tea.Cmd {
	page := m.ctrl.State().Page
	history := m.transcript.History()
	m.transcript.AddUser(question, page)
	m.refresh()

	ctx, tk := m.tracker.Start(assistant.TaskChat, page)
	a, req := m.app, m.app.request(m.doc, page)
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		reply, err := a.ai.Ask(ctx, req, history, question)
		return taskDoneMsg{ticket: tk, result: reply, err: err}
	})
}

// startTask runs an assistant task for the current page and shows its
// sidebar section.
func (m *model) startTask(kind assistant.TaskKind, sec section) tea.Cmd {
	page := m.ctrl.State().Page
	m.section = sec
	if m.ctrl.State().Mode != viewer.ModeAnalysis {
		m.ctrl.SetViewMode(viewer.ModeAnalysis)
	}
	ctx, tk := m.tracker.Start(kind, page)
	m.refresh()

	ai, doc, req := m.app.ai, m.doc, m.app.request(m.doc, page)
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		res, err := runTask(ctx, ai, kind, doc, req)
		return taskDoneMsg{ticket: tk, lang: req.Language, result: res, err: err}
	})
}

func (m *model) finishTask(msg taskDoneMsg) tea.Cmd {
	if !m.tracker.Finish(msg.ticket, msg.result, msg.err) {
		return nil
	}
	defer m.refresh()

	kind := msg.ticket.Kind
	switch {
	case errors.Is(msg.err, context.Canceled):
		return nil
	case msg.err != nil:
		m.app.log.Warn("assistant task failed", zap.String("task", kind.String()), zap.Error(msg.err))
		return m.notify(toastError, fmt.Sprintf("%s failed: %v", capitalize(kind.String()), msg.err))
	}

	switch kind {
	case assistant.TaskChat:
		m.transcript.AddAssistant(msg.result, msg.ticket.Page)
		return nil
	case assistant.TaskTranslatePage:
		return m.notify(toastSuccess, fmt.Sprintf("Page %d translated to %s", msg.ticket.Page, msg.lang.Title()))
	case assistant.TaskSummarizePage:
		return m.notify(toastSuccess, fmt.Sprintf("Page %d summarized", msg.ticket.Page))
	}
	return m.notify(toastSuccess, capitalize(kind.String())+" finished")
}

func (m *model) toggleAudio() {
	if m.player != nil {
		m.player = nil
		m.audioTicking = false
	} else {
		m.player = audio.NewPlayer(audio.DefaultTitle)
	}
	m.resize()
}

func audioTick() tea.Cmd {
	return tea.Tick(audio.TickInterval, func(t time.Time) tea.Msg {
		return audioTickMsg(t)
	})
}

func (m *model) notify(kind toastKind, text string) tea.Cmd {
	m.toastSeq++
	m.toast = toast{id: m.toastSeq, kind: kind, text: text}
	id := m.toastSeq
	return tea.Tick(toastTimeout, func(time.Time) tea.Msg {
		return toastTimedOut(id)
	})
}

func (m *model) setShelf(shelf *library.Shelf) {
	m.shelf = shelf
	items := make([]list.Item, len(shelf.Books))
	for i, b := range shelf.Books {
		items[i] = bookItem{book: b}
	}
	m.list.SetItems(items)
	st := shelf.Stats()
	m.list.Title = fmt.Sprintf("Library · %d books · %d pages", st.Books, st.Pages)
}

func (m *model) setDocument(doc *document.Document) {
	m.doc = doc
	m.loadErr = nil
	m.transcript = assistant.NewTranscript()
	m.searchResults = nil
	m.searchQuery = ""
	m.lastPage = 0
	m.app.applyView(m.ctrl, doc)
	m.resize()
}

func (m *model) cancelTasks() {
	for _, k := range []assistant.TaskKind{
		assistant.TaskTranslatePage, assistant.TaskSummarizePage,
		assistant.TaskTranslateBook, assistant.TaskSummarizeBook, assistant.TaskChat,
	} {
		m.tracker.Cancel(k)
	}
}

func (m *model) backToLibrary() {
	if m.doc != nil {
		m.app.saveView(m.doc.ID, m.ctrl.State())
	}
	m.cancelTasks()
	m.closeInput()
	m.doc = nil
	m.loadPath = ""
	m.chatOpen = false
	m.showHelp = false
	m.player = nil
	m.audioTicking = false
	m.screen = screenLibrary
}

func (m *model) quit() tea.Cmd {
	if m.doc != nil {
		m.app.saveView(m.doc.ID, m.ctrl.State())
	}
	m.tracker.Close()
	m.quitting = true
	return tea.Quit
}

// onViewChange is the controller observer: it re-renders the page.
func (m *model) onViewChange(s viewer.State) {
	if s.Page != m.lastPage {
		m.lastPage = s.Page
		m.viewport.GotoTop()
	}
	m.resize()
}

// bookItem adapts a library book to the list bubble.
type bookItem struct {
	book library.Book
}

func (b bookItem) Title() string { return b.book.Title }

func (b bookItem) Description() string {
	return fmt.Sprintf("%s · %d pages · %s", b.book.Format, b.book.Pages, b.book.Modified.Format("2006-01-02"))
}

func (b bookItem) FilterValue() string { return b.book.Title }
