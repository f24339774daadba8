//go:build !gui

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/metcalfc/prr/internal/assistant"
	"github.com/metcalfc/prr/internal/audio"
	"github.com/metcalfc/prr/internal/viewer"
)

const (
	// readingWidth is the text column at 100% zoom.
	readingWidth = 64
	minColumn    = 20

	chatWidth         = 44
	chatStackedHeight = 12
)

var (
	accent = lipgloss.Color("#7D56F4")
	muted  = lipgloss.Color("#888888")

	toolbarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#DDDDDD")).
			Background(lipgloss.Color("#303030"))

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1)

	disabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")).
			Padding(0, 1)

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(accent).
			Bold(true).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	mutedStyle = lipgloss.NewStyle().
			Foreground(muted)

	sectionStyle = lipgloss.NewStyle().
			Foreground(muted).
			Italic(true)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(lipgloss.Color("#444444")).
			PaddingLeft(1)

	stackedPanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderTop(true).
				BorderForeground(lipgloss.Color("#444444"))

	userStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00AAFF"))

	aiStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(accent)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00"))

	spinnerStyle = lipgloss.NewStyle().
			Foreground(accent)
)

func (m *model) layout() viewer.Layout {
	return viewer.LayoutFor(m.ctrl.State().Mode, m.sidebarCollapsed, m.chatOpen)
}

// pageSize returns the size of the page viewport for lay.
func (m *model) pageSize(lay viewer.Layout) (int, int) {
	w, h := m.width, m.height-1 // footer
	if lay.ShowToolbar {
		h--
	}
	if m.player != nil {
		h -= m.audioHeight()
	}
	if lay.ShowSidebar {
		w -= lay.SidebarWidth + 2
	}
	if m.chatOpen {
		if lay.Stacked {
			h -= chatStackedHeight
		} else {
			w -= chatWidth + 2
		}
	}
	return max(w, 1), max(h, 1)
}

func (m *model) audioHeight() int {
	if m.player != nil && m.player.Expanded {
		return 5
	}
	return 2
}

func (m *model) resize() {
	m.list.SetSize(m.width, max(m.height-1, 1))
	m.help.Width = m.width
	m.input.Width = max(m.width-20, 10)
	m.progress.Width = max(min(m.width-30, 60), 10)

	w, h := m.pageSize(m.layout())
	m.viewport.Width = w
	m.viewport.Height = h
	m.refresh()
}

// columnWidth maps zoom to a text column: zooming in narrows the column.
func columnWidth(avail, maxWidth int, scale float64) int {
	if maxWidth > 0 && avail > maxWidth {
		avail = maxWidth
	}
	if scale <= 0 {
		scale = viewer.DefaultScale
	}
	w := int(float64(readingWidth) / scale)
	w = max(w, minColumn)
	return max(min(w, avail), 1)
}

// refresh re-renders the current page into the viewport.
func (m *model) refresh() {
	if m.doc == nil {
		m.viewport.SetContent("")
		return
	}
	s := m.ctrl.State()
	lay := m.layout()
	col := columnWidth(m.viewport.Width, lay.MaxPageWidth, s.Scale)

	var b strings.Builder
	if sec := m.doc.SectionAt(s.Page); sec != "" && s.Mode != viewer.ModePresentation {
		b.WriteString(sectionStyle.Render(truncate.StringWithTail(sec, uint(col), "…")))
		b.WriteString("\n\n")
	}
	text := strings.TrimSpace(m.doc.PageText(s.Page))
	if text == "" {
		text = mutedStyle.Render("(no text on this page)")
	}
	b.WriteString(wordwrap.String(text, col))

	content := lipgloss.NewStyle().Width(col).Render(b.String())
	if s.Mode == viewer.ModePresentation {
		content = lipgloss.Place(m.viewport.Width, m.viewport.Height, lipgloss.Center, lipgloss.Center, content)
	} else {
		content = lipgloss.PlaceHorizontal(m.viewport.Width, lipgloss.Center, content)
	}
	m.viewport.SetContent(content)
}

func (m *model) View() string {
	if m.quitting {
		return ""
	}
	if m.screen == screenLibrary {
		return m.libraryView()
	}
	return m.viewerView()
}

func (m *model) libraryView() string {
	switch {
	case m.loading:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Scanning "+m.loadPath+"...")
	case m.shelf == nil:
		return lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center,
			errorStyle.Render(fmt.Sprintf("Could not read library: %v", m.loadErr))) + "\n" + m.footerView(m.layout())
	case len(m.shelf.Books) == 0:
		return lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center,
			titleStyle.Render("No documents yet")+"\n\n"+
				mutedStyle.Render("Add PDF, EPUB, Markdown or text files to "+m.shelf.Dir)) + "\n" + m.footerView(m.layout())
	}
	return m.list.View() + "\n" + m.footerView(m.layout())
}

func (m *model) viewerView() string {
	lay := m.layout()
	var rows []string
	if lay.ShowToolbar {
		rows = append(rows, m.toolbarView())
	}
	rows = append(rows, m.bodyView(lay))
	if m.player != nil {
		rows = append(rows, m.audioView())
	}
	rows = append(rows, m.footerView(lay))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func button(label string, enabled bool) string {
	if enabled {
		return buttonStyle.Render(label)
	}
	return disabledStyle.Render(label)
}

func (m *model) toolbarView() string {
	s := m.ctrl.State()
	tb := viewer.ToolbarFor(s, m.loading)

	page := tb.PageLabel
	if !s.Loaded() {
		page = "-"
	}
	parts := []string{
		button("⏮", tb.CanFirst),
		button("◀", tb.CanPrev),
		buttonStyle.Render("Page " + page),
		button("▶", tb.CanNext),
		button("⏭", tb.CanLast),
		"│",
		button("−", tb.CanZoomOut),
		buttonStyle.Render(tb.ZoomLabel),
		button("+", tb.CanZoomIn),
		"│",
	}
	for _, mode := range viewer.ViewModes() {
		if mode == s.Mode {
			parts = append(parts, activeStyle.Render(mode.Label()))
		} else {
			parts = append(parts, buttonStyle.Render(mode.Label()))
		}
	}
	line := strings.Join(parts, "")
	if m.doc != nil {
		room := m.width - lipgloss.Width(line) - 3
		if room > 8 {
			line += " │ " + titleStyle.Render(truncate.StringWithTail(m.doc.Title, uint(room), "…"))
		}
	}
	return toolbarStyle.Width(m.width).MaxWidth(m.width).Render(line)
}

func (m *model) bodyView(lay viewer.Layout) string {
	w, h := m.pageSize(lay)
	if m.showHelp {
		full := m.help.FullHelpView(helpKeys{audioOpen: m.player != nil}.FullHelp())
		return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, full)
	}
	if m.loading {
		return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading "+m.loadPath+"...")
	}
	if m.doc == nil {
		msg := "No document"
		if m.loadErr != nil {
			msg = fmt.Sprintf("Could not open %s: %v", m.loadPath, m.loadErr)
		}
		return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, errorStyle.Render(msg))
	}

	body := m.viewport.View()
	if lay.ShowSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body,
			panelStyle.Width(lay.SidebarWidth+1).Height(h).MaxHeight(h).Render(m.sidebarView(lay.SidebarWidth, h)))
	}
	if m.chatOpen {
		if lay.Stacked {
			body = lipgloss.JoinVertical(lipgloss.Left, body,
				stackedPanelStyle.Width(w).Render(m.chatView(w, chatStackedHeight-1)))
		} else {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body,
				panelStyle.Width(chatWidth+1).Height(h).MaxHeight(h).Render(m.chatView(chatWidth, h)))
		}
	}
	return body
}

func (m *model) sidebarView(width, height int) string {
	if m.sidebarCollapsed {
		var icons []string
		for s := section(0); s < numSections; s++ {
			label := sectionNames[s][:1]
			if s == m.section {
				icons = append(icons, activeStyle.Render(label))
			} else {
				icons = append(icons, buttonStyle.Render(label))
			}
		}
		return strings.Join(icons, "\n")
	}

	var tabs []string
	for s := section(0); s < numSections; s++ {
		if s == m.section {
			tabs = append(tabs, titleStyle.Underline(true).Render(s.String()))
		} else {
			tabs = append(tabs, mutedStyle.Render(s.String()))
		}
	}
	header := strings.Join(tabs, " ")

	var content string
	switch m.section {
	case sectionTranslate:
		content = fmt.Sprintf("Language: %s  %s\n\n", m.app.language.Title(), mutedStyle.Render("(L)")) +
			m.taskView(assistant.TaskTranslatePage, width)
	case sectionSummarize:
		content = fmt.Sprintf("Length: %s  %s\n\n", m.app.length, mutedStyle.Render("(N)")) +
			m.taskView(assistant.TaskSummarizePage, width)
	case sectionChat:
		content = m.transcriptView(width)
	case sectionBook:
		content = m.bookView(width)
	}
	return clipLines(header+"\n\n"+content, height)
}

func (m *model) taskView(kind assistant.TaskKind, width int) string {
	t := m.tracker.Task(kind)
	page := m.ctrl.State().Page
	switch t.State {
	case assistant.TaskInFlight:
		return fmt.Sprintf("%s %s... %s", m.spinner.View(), capitalize(kind.String()),
			mutedStyle.Render(t.Elapsed(time.Now()).Truncate(time.Second).String()))
	case assistant.TaskFailed:
		return errorStyle.Render("Failed: ") + wordwrap.String(t.Err.Error(), width)
	case assistant.TaskDone:
		head := mutedStyle.Render(fmt.Sprintf("Page %d", t.Page))
		if t.Page == 0 {
			head = mutedStyle.Render("Whole document")
		}
		out := head + "\n\n" + wordwrap.String(t.Result, width)
		if kind == assistant.TaskTranslatePage {
			out += "\n\n" + mutedStyle.Render("Press a to listen")
		}
		return out
	}
	s, _ := viewer.ShortcutFor(viewer.CmdTranslatePage)
	if kind == assistant.TaskSummarizePage {
		s, _ = viewer.ShortcutFor(viewer.CmdSummarizePage)
	}
	return mutedStyle.Render(wordwrap.String(fmt.Sprintf("Press %s to %s %d.", s.Label, kind, page), width))
}

func (m *model) transcriptView(width int) string {
	var b strings.Builder
	for _, msg := range m.transcript.Messages() {
		label := aiStyle.Render("AI")
		if msg.Role == assistant.RoleUser {
			label = userStyle.Render("You")
		}
		b.WriteString(label + " " + mutedStyle.Render(msg.Timestamp.Format("15:04")) + "\n")
		b.WriteString(wordwrap.String(msg.Content, width) + "\n\n")
	}
	if m.tracker.Task(assistant.TaskChat).State == assistant.TaskInFlight {
		b.WriteString(m.spinner.View() + " Thinking...\n")
	}
	if m.transcript.Len() == 1 {
		b.WriteString(mutedStyle.Render("Suggested questions:") + "\n")
		for _, q := range assistant.SuggestedQuestions {
			b.WriteString(mutedStyle.Render("  • "+q) + "\n")
		}
	}
	return b.String()
}

func (m *model) bookView(width int) string {
	d := m.doc
	var b strings.Builder
	b.WriteString(titleStyle.Render(wordwrap.String(d.Title, width)) + "\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%s · %d pages · %d sections", d.Format, d.PageCount(), len(d.TOC))) + "\n\n")

	for _, kind := range []assistant.TaskKind{assistant.TaskSummarizeBook, assistant.TaskTranslateBook} {
		bind := keys.SummarizeBook
		if kind == assistant.TaskTranslateBook {
			bind = keys.TranslateBook
		}
		if m.tracker.Task(kind).State == assistant.TaskIdle {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("%s: %s", bind.Help().Key, kind)) + "\n")
			continue
		}
		b.WriteString(m.taskView(kind, width) + "\n\n")
	}

	b.WriteString("\n" + titleStyle.Render("Smart Search") + " " + mutedStyle.Render("(/)") + "\n")
	if m.searchQuery != "" {
		if len(m.searchResults) == 0 {
			b.WriteString(mutedStyle.Render("No matches") + "\n")
		}
		for _, r := range m.searchResults {
			b.WriteString(fmt.Sprintf("p.%d ", r.Page) + wordwrap.String(r.Snippet, width-6) + "\n")
		}
	}

	if len(d.TOC) > 0 {
		b.WriteString("\n" + titleStyle.Render("Contents") + "\n")
		for _, e := range d.TOC {
			line := strings.Repeat("  ", e.Level) + e.Title
			b.WriteString(truncate.StringWithTail(line, uint(max(width-5, 1)), "…") +
				mutedStyle.Render(fmt.Sprintf(" %d", e.Page)) + "\n")
		}
	}
	return b.String()
}

func (m *model) chatView(width, height int) string {
	s := m.ctrl.State()
	header := titleStyle.Render("AI Assistant") + " " +
		mutedStyle.Render(fmt.Sprintf("page %d · %s", s.Page, m.app.model))
	hints := mutedStyle.Render("tab: suggestion · ctrl+l: clear · esc: close")

	body := m.transcriptView(width)
	room := height - 4
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	if len(lines) > room {
		lines = lines[len(lines)-max(room, 0):]
	}
	return header + "\n" + strings.Join(lines, "\n") + "\n" + m.input.View() + "\n" + hints
}

func (m *model) audioView() string {
	p := m.player
	state := "▶"
	if p.Playing {
		state = "⏸"
	}
	vol := fmt.Sprintf("vol %d", p.EffectiveVolume())
	if p.Silent() {
		vol = "muted"
	}
	flags := vol
	if p.Looping {
		flags += " · loop"
	}
	title := titleStyle.Render("♪ "+p.Title) + " " + mutedStyle.Render(flags)
	bar := fmt.Sprintf("%s %s %s %s", state, audio.FormatTime(p.Position),
		m.progress.ViewAs(p.Progress()), audio.FormatTime(p.Duration))
	if !p.Expanded {
		return title + "\n" + bar
	}
	controls := m.help.ShortHelpView([]key.Binding{keys.Play, keys.Stop, keys.SkipBack, keys.SkipFwd, keys.Loop})
	more := m.help.ShortHelpView([]key.Binding{keys.SeekBack, keys.SeekFwd, keys.Mute, keys.VolDown, keys.VolUp, keys.Expand})
	return title + "\n" + bar + "\n\n" + controls + "\n" + more
}

func (m *model) footerView(lay viewer.Layout) string {
	if m.mode == inputJump || m.mode == inputSearch {
		return m.input.View()
	}
	if m.toast.text != "" {
		style := infoStyle
		switch m.toast.kind {
		case toastSuccess:
			style = successStyle
		case toastError:
			style = errorStyle
		}
		return style.MaxWidth(m.width).Render(m.toast.text)
	}
	if m.screen == screenLibrary {
		return mutedStyle.Render("enter: open · /: filter · q: quit")
	}
	s := m.ctrl.State()
	if s.Mode == viewer.ModePresentation {
		return mutedStyle.Render(fmt.Sprintf("Page %d of %d · f/esc: exit presentation", s.Page, s.TotalPages))
	}
	if s.Mode == viewer.ModeFocus {
		return ""
	}
	line := m.help.ShortHelpView(helpKeys{}.ShortHelp())
	if lay.ShowChatHint && !m.chatOpen {
		hint := titleStyle.Render(" 💬 Ask AI (c)")
		if lipgloss.Width(line)+lipgloss.Width(hint) < m.width {
			line += strings.Repeat(" ", m.width-lipgloss.Width(line)-lipgloss.Width(hint)) + hint
		}
	}
	return line
}

func clipLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:max(n, 0)]
	}
	return strings.Join(lines, "\n")
}
