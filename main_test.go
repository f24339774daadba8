//go:build !gui

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/metcalfc/prr/internal/assistant"
	"github.com/metcalfc/prr/internal/audio"
	"github.com/metcalfc/prr/internal/config"
	"github.com/metcalfc/prr/internal/document"
	"github.com/metcalfc/prr/internal/state"
	"github.com/metcalfc/prr/internal/viewer"
)

func testApp(t *testing.T) *app {
	t.Helper()
	store, err := state.NewStateStore(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{
		App: config.AppConfig{WordsPerPage: 50},
		AI:  config.AIConfig{Provider: "offline", Models: []string{"llama3", "mistral"}},
	}
	canned := &assistant.CannedProvider{Pick: func(int) int { return 0 }}
	return &app{
		cfg:      cfg,
		log:      zap.NewNop(),
		ai:       assistant.New(canned, time.Minute, nil),
		store:    store,
		docOpts:  document.Options{WordsPerPage: 50},
		language: assistant.English,
		length:   assistant.SummaryMedium,
		models:   cfg.AI.Models,
		model:    "llama3",
	}
}

// writeBook writes a text file of pages pages, 50 words each.
func writeBook(t *testing.T, dir, name string, pages int) string {
	t.Helper()
	var paras []string
	for p := 1; p <= pages; p++ {
		words := make([]string, 50)
		for i := range words {
			words[i] = "word"
		}
		words[0] = "page" + strings.Repeat("x", p)
		paras = append(paras, strings.Join(words, " "))
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(paras, "\n\n")), 0o644))
	return path
}

// run executes cmd, expanding batches. Only pass commands that hold no
// timers: load, scan and assistant commands.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// feed delivers the results of cmd to m, skipping spinner frames.
func feed(m *model, cmd tea.Cmd) {
	for _, msg := range run(cmd) {
		if _, ok := msg.(spinner.TickMsg); ok {
			continue
		}
		m.Update(msg)
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+b":
		return tea.KeyMsg{Type: tea.KeyCtrlB}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends keys one by one and returns the last command.
func press(m *model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(keyMsg(k))
	}
	return cmd
}

func typeText(m *model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func openBook(t *testing.T, a *app, pages int) (*model, string) {
	t.Helper()
	path := writeBook(t, t.TempDir(), "test_book.txt", pages)
	m := newModel(a)
	m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	feed(m, m.openFile(path))
	require.NotNil(t, m.doc)
	return m, path
}

func TestLoadDocument(t *testing.T) {
	a := testApp(t)
	path := writeBook(t, t.TempDir(), "test_book.txt", 5)
	m := newModel(a)
	m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})

	cmd := m.openFile(path)
	assert.True(t, m.loading)
	assert.False(t, m.ctrl.State().Loaded())
	assert.Contains(t, m.View(), "Loading")

	// Navigation is ignored until the document arrives.
	press(m, "right")
	assert.Equal(t, 1, m.ctrl.State().Page)

	feed(m, cmd)
	assert.False(t, m.loading)
	s := m.ctrl.State()
	assert.Equal(t, 5, s.TotalPages)
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, "test book", m.doc.Title)
	assert.Contains(t, m.View(), "Page 1 of 5")
	assert.Contains(t, m.toast.text, "Loaded test book")
}

func TestLoadFailureLeavesControllerUntouched(t *testing.T) {
	m := newModel(testApp(t))
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))

	feed(m, m.openFile(path))
	assert.Nil(t, m.doc)
	assert.False(t, m.ctrl.State().Loaded())
	assert.Equal(t, toastError, m.toast.kind)
	assert.ErrorIs(t, m.loadErr, document.ErrEmpty)
}

func TestNavigationKeys(t *testing.T) {
	m, _ := openBook(t, testApp(t), 5)

	press(m, "right", " ")
	assert.Equal(t, 3, m.ctrl.State().Page)
	press(m, "end")
	assert.Equal(t, 5, m.ctrl.State().Page)
	press(m, "right")
	assert.Equal(t, 5, m.ctrl.State().Page)
	press(m, "b")
	assert.Equal(t, 4, m.ctrl.State().Page)
	press(m, "home", "left")
	assert.Equal(t, 1, m.ctrl.State().Page)
	assert.Contains(t, m.viewport.View(), "pagex")
}

func TestZoomKeys(t *testing.T) {
	m, _ := openBook(t, testApp(t), 2)

	press(m, "+")
	assert.Equal(t, 1.25, m.ctrl.State().Scale)
	press(m, "9")
	assert.Equal(t, 0.8, m.ctrl.State().Scale)
	press(m, "0")
	assert.Equal(t, 1.0, m.ctrl.State().Scale)
	press(m, "-", "-", "-", "-", "-")
	assert.Equal(t, viewer.MinScale, m.ctrl.State().Scale)
	assert.Contains(t, m.View(), "25%")
}

func TestModeKeysAndEscape(t *testing.T) {
	m, _ := openBook(t, testApp(t), 2)

	press(m, "4")
	assert.Equal(t, viewer.ModePresentation, m.ctrl.State().Mode)
	assert.NotContains(t, m.View(), "Reading", "toolbar hidden in presentation")
	press(m, "esc")
	assert.Equal(t, viewer.ModeReading, m.ctrl.State().Mode)

	press(m, "f")
	assert.Equal(t, viewer.ModePresentation, m.ctrl.State().Mode)
	press(m, "F")
	assert.Equal(t, viewer.ModeReading, m.ctrl.State().Mode)

	press(m, "2")
	assert.Equal(t, viewer.ModeAnalysis, m.ctrl.State().Mode)
	assert.Contains(t, m.View(), "Translate")
	press(m, "esc")
	assert.Equal(t, viewer.ModeAnalysis, m.ctrl.State().Mode, "esc only leaves presentation")
}

func TestEscapeClosesChatFirst(t *testing.T) {
	m, _ := openBook(t, testApp(t), 2)

	press(m, "4", "c")
	require.True(t, m.chatOpen)
	press(m, "esc")
	assert.False(t, m.chatOpen)
	assert.Equal(t, viewer.ModePresentation, m.ctrl.State().Mode)
	press(m, "esc")
	assert.Equal(t, viewer.ModeReading, m.ctrl.State().Mode)
}

func TestJumpPrompt(t *testing.T) {
	m, _ := openBook(t, testApp(t), 5)

	press(m, "g")
	require.Equal(t, inputJump, m.mode)
	typeText(m, "3")
	press(m, "enter")
	assert.Equal(t, inputNone, m.mode)
	assert.Equal(t, 3, m.ctrl.State().Page)

	press(m, "g")
	typeText(m, "99")
	press(m, "enter")
	assert.Equal(t, 3, m.ctrl.State().Page)
	assert.Equal(t, toastError, m.toast.kind)

	press(m, ":")
	typeText(m, "1")
	press(m, "esc")
	assert.Equal(t, 3, m.ctrl.State().Page)
	assert.Equal(t, inputNone, m.mode)
}

func TestTranslatePage(t *testing.T) {
	m, _ := openBook(t, testApp(t), 3)
	press(m, "right")

	cmd := press(m, "T")
	assert.Equal(t, viewer.ModeAnalysis, m.ctrl.State().Mode)
	assert.Equal(t, sectionTranslate, m.section)
	assert.Equal(t, assistant.TaskInFlight, m.tracker.Task(assistant.TaskTranslatePage).State)

	feed(m, cmd)
	task := m.tracker.Task(assistant.TaskTranslatePage)
	assert.Equal(t, assistant.TaskDone, task.State)
	assert.Equal(t, 2, task.Page)
	assert.Contains(t, task.Result, "sample translated text")
	assert.Contains(t, m.toast.text, "Page 2 translated to English")
}

func TestTaskKeepsRequestWhileSettingsChange(t *testing.T) {
	a := testApp(t)
	a.ai = assistant.New(&assistant.CannedProvider{Delay: 50 * time.Millisecond, Pick: func(int) int { return 0 }}, time.Minute, nil)
	m, _ := openBook(t, a, 2)

	cmd := press(m, "T")
	done := make(chan []tea.Msg)
	go func() { done <- run(cmd) }()

	for range 6 {
		press(m, "L", "M", "N")
	}
	for _, msg := range <-done {
		if _, ok := msg.(spinner.TickMsg); !ok {
			m.Update(msg)
		}
	}

	assert.Equal(t, assistant.TaskDone, m.tracker.Task(assistant.TaskTranslatePage).State)
	assert.Contains(t, m.toast.text, "Page 1 translated to English")
	assert.NotEqual(t, assistant.English, m.app.language)
}

func TestSummarizeAndBookTasks(t *testing.T) {
	m, _ := openBook(t, testApp(t), 3)

	feed(m, press(m, "S"))
	assert.Equal(t, assistant.TaskDone, m.tracker.Task(assistant.TaskSummarizePage).State)
	assert.Equal(t, sectionSummarize, m.section)

	feed(m, press(m, "B"))
	book := m.tracker.Task(assistant.TaskSummarizeBook)
	assert.Equal(t, assistant.TaskDone, book.State)
	assert.Equal(t, sectionBook, m.section)

	feed(m, press(m, "ctrl+b"))
	assert.Equal(t, assistant.TaskDone, m.tracker.Task(assistant.TaskTranslateBook).State)
}

func TestSettingsKeys(t *testing.T) {
	m, _ := openBook(t, testApp(t), 1)

	press(m, "L")
	assert.Equal(t, assistant.Spanish, m.app.language)
	press(m, "M")
	assert.Equal(t, "mistral", m.app.model)
	press(m, "N")
	assert.Equal(t, assistant.SummaryDetailed, m.app.length)

	press(m, "tab")
	assert.Equal(t, sectionSummarize, m.section)
}

func TestChat(t *testing.T) {
	m, _ := openBook(t, testApp(t), 3)
	press(m, "right", "right")

	press(m, "c")
	require.Equal(t, inputChat, m.mode)
	assert.True(t, m.chatOpen)

	// Empty questions are not sent.
	assert.Nil(t, press(m, "enter"))

	typeText(m, "What is this?")
	cmd := press(m, "enter")
	require.NotNil(t, cmd)
	assert.Equal(t, 2, m.transcript.Len())

	feed(m, cmd)
	msgs := m.transcript.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "What is this?", msgs[1].Content)
	assert.Equal(t, 3, msgs[1].Page)
	assert.True(t, strings.HasPrefix(msgs[2].Content, "Based on page 3, here's what I can tell you: "))

	press(m, "tab")
	assert.Equal(t, assistant.SuggestedQuestions[0], m.input.Value())

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, 1, m.transcript.Len())
}

func TestSearch(t *testing.T) {
	m, _ := openBook(t, testApp(t), 4)

	press(m, "/")
	require.Equal(t, inputSearch, m.mode)
	typeText(m, "pagexxx")
	press(m, "enter")

	require.NotEmpty(t, m.searchResults)
	assert.Equal(t, 3, m.searchResults[0].Page)
	assert.Equal(t, 3, m.ctrl.State().Page)
	assert.Equal(t, sectionBook, m.section)
}

func TestAudioPlayer(t *testing.T) {
	m, _ := openBook(t, testApp(t), 1)

	press(m, "a")
	require.NotNil(t, m.player)
	assert.Contains(t, m.View(), audio.DefaultTitle)

	cmd := press(m, "p")
	assert.True(t, m.player.Playing)
	assert.NotNil(t, cmd, "playing starts the clock")
	assert.Nil(t, press(m, "."), "other player keys do not start a second clock")

	m.Update(audioTickMsg(time.Now()))
	assert.Equal(t, 11*time.Second, m.player.Position)

	press(m, "p")
	m.Update(audioTickMsg(time.Now()))
	assert.Equal(t, 11*time.Second, m.player.Position)
	assert.False(t, m.audioTicking)

	press(m, "a")
	assert.Nil(t, m.player)
}

func TestViewPrefsPersist(t *testing.T) {
	a := testApp(t)
	m, path := openBook(t, a, 3)

	press(m, "+", "3", "right")
	press(m, "q")
	assert.True(t, m.quitting)

	prefs, ok := a.store.Get(m.doc.ID)
	require.True(t, ok)
	assert.Equal(t, state.ViewPrefs{Scale: 1.25, Mode: "focus"}, prefs)

	m2 := newModel(a)
	feed(m2, m2.openFile(path))
	s := m2.ctrl.State()
	assert.Equal(t, 1.25, s.Scale)
	assert.Equal(t, viewer.ModeFocus, s.Mode)
	assert.Equal(t, 1, s.Page, "the page is never restored")

	a.fresh = true
	m3 := newModel(a)
	feed(m3, m3.openFile(path))
	assert.Equal(t, 1.0, m3.ctrl.State().Scale)
	assert.Equal(t, viewer.ModeReading, m3.ctrl.State().Mode)
}

func TestLibrary(t *testing.T) {
	a := testApp(t)
	dir := t.TempDir()
	writeBook(t, dir, "beta.txt", 2)
	writeBook(t, dir, "alpha.txt", 1)

	m := newModel(a)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	feed(m, m.openLibrary(dir))

	require.NotNil(t, m.shelf)
	assert.Equal(t, screenLibrary, m.screen)
	assert.Len(t, m.list.Items(), 2)
	assert.Contains(t, m.View(), "alpha")

	feed(m, press(m, "enter"))
	require.NotNil(t, m.doc)
	assert.Equal(t, screenViewer, m.screen)
	assert.Equal(t, "alpha", m.doc.Title)

	press(m, "esc")
	assert.Equal(t, screenLibrary, m.screen)
	assert.Nil(t, m.doc)

	press(m, "q")
	assert.True(t, m.quitting)
}

func TestColumnWidth(t *testing.T) {
	tests := []struct {
		avail, max int
		scale      float64
		want       int
	}{
		{avail: 120, max: 100, scale: 1, want: readingWidth},
		{avail: 120, max: 100, scale: 0.25, want: 100},
		{avail: 120, max: 0, scale: 0.25, want: 120},
		{avail: 120, max: 100, scale: 3, want: 21},
		{avail: 120, max: 100, scale: 5, want: minColumn},
		{avail: 40, max: 48, scale: 1, want: 40},
		{avail: 10, max: 100, scale: 3, want: 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, columnWidth(tt.avail, tt.max, tt.scale), "%+v", tt)
	}
}
