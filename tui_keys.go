//go:build !gui

package main

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/metcalfc/prr/internal/viewer"
)

// panelKeys are bindings of the terminal UI's own panels. The page,
// zoom and mode shortcuts live in viewer.Shortcuts.
type panelKeys struct {
	ScrollUp      key.Binding
	ScrollDown    key.Binding
	Section       key.Binding
	Language      key.Binding
	Model         key.Binding
	Length        key.Binding
	TranslateBook key.Binding
	SummarizeBook key.Binding
	Search        key.Binding

	Send       key.Binding
	Suggest    key.Binding
	ClearChat  key.Binding
	CloseInput key.Binding

	Play      key.Binding
	Stop      key.Binding
	SkipBack  key.Binding
	SkipFwd   key.Binding
	SeekBack  key.Binding
	SeekFwd   key.Binding
	Loop      key.Binding
	Mute      key.Binding
	VolDown   key.Binding
	VolUp     key.Binding
	Expand    key.Binding
	OpenBook  key.Binding
	QuitShelf key.Binding
}

var keys = panelKeys{
	ScrollUp:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
	ScrollDown:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
	Section:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "sidebar section")),
	Language:      key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "language")),
	Model:         key.NewBinding(key.WithKeys("M"), key.WithHelp("M", "model")),
	Length:        key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "summary length")),
	TranslateBook: key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "translate book")),
	SummarizeBook: key.NewBinding(key.WithKeys("B"), key.WithHelp("B", "summarize book")),
	Search:        key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "smart search")),

	Send:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
	Suggest:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "suggested question")),
	ClearChat:  key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear chat")),
	CloseInput: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),

	Play:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "play/pause")),
	Stop:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
	SkipBack: key.NewBinding(key.WithKeys(","), key.WithHelp(",", "back 10s")),
	SkipFwd:  key.NewBinding(key.WithKeys("."), key.WithHelp(".", "forward 10s")),
	SeekBack: key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "seek -10%")),
	SeekFwd:  key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "seek +10%")),
	Loop:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "loop")),
	Mute:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mute")),
	VolDown:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "volume -")),
	VolUp:    key.NewBinding(key.WithKeys("V"), key.WithHelp("V", "volume +")),
	Expand:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "expand player")),

	OpenBook:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	QuitShelf: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func shortcutBinding(cmd viewer.Command, desc string) key.Binding {
	s, _ := viewer.ShortcutFor(cmd)
	return key.NewBinding(key.WithKeys(s.Keys...), key.WithHelp(s.Label, desc))
}

// helpKeys adapts the shortcut table to the help bubble.
type helpKeys struct {
	audioOpen bool
}

func (h helpKeys) ShortHelp() []key.Binding {
	return []key.Binding{
		shortcutBinding(viewer.CmdPrevPage, "prev"),
		shortcutBinding(viewer.CmdNextPage, "next"),
		shortcutBinding(viewer.CmdZoomIn, "zoom in"),
		shortcutBinding(viewer.CmdZoomOut, "zoom out"),
		shortcutBinding(viewer.CmdJumpPrompt, "go to"),
		shortcutBinding(viewer.CmdOpenChat, "ask AI"),
		shortcutBinding(viewer.CmdHelp, "help"),
		shortcutBinding(viewer.CmdQuit, "quit"),
	}
}

func (h helpKeys) FullHelp() [][]key.Binding {
	groups := [][]key.Binding{
		{
			shortcutBinding(viewer.CmdPrevPage, "previous page"),
			shortcutBinding(viewer.CmdNextPage, "next page"),
			shortcutBinding(viewer.CmdFirstPage, "first page"),
			shortcutBinding(viewer.CmdLastPage, "last page"),
			shortcutBinding(viewer.CmdJumpPrompt, "go to page"),
			keys.ScrollUp,
			keys.ScrollDown,
		},
		{
			shortcutBinding(viewer.CmdZoomIn, "zoom in"),
			shortcutBinding(viewer.CmdZoomOut, "zoom out"),
			shortcutBinding(viewer.CmdFitWidth, "fit width"),
			shortcutBinding(viewer.CmdFitPage, "fit page"),
			shortcutBinding(viewer.CmdTogglePresentation, "presentation"),
			shortcutBinding(viewer.CmdEscape, "back"),
		},
		{
			shortcutBinding(viewer.CmdModeReading, "reading"),
			shortcutBinding(viewer.CmdModeAnalysis, "analysis"),
			shortcutBinding(viewer.CmdModeFocus, "focus"),
			shortcutBinding(viewer.CmdModePresentation, "present"),
			shortcutBinding(viewer.CmdModeMobile, "mobile"),
			shortcutBinding(viewer.CmdToggleSidebar, "collapse sidebar"),
			keys.Section,
		},
		{
			shortcutBinding(viewer.CmdOpenChat, "chat"),
			shortcutBinding(viewer.CmdTranslatePage, "translate page"),
			shortcutBinding(viewer.CmdSummarizePage, "summarize page"),
			keys.TranslateBook,
			keys.SummarizeBook,
			keys.Search,
			keys.Language,
			keys.Model,
			keys.Length,
		},
	}
	audio := []key.Binding{shortcutBinding(viewer.CmdToggleAudio, "audio player")}
	if h.audioOpen {
		audio = append(audio, keys.Play, keys.Stop, keys.SkipBack, keys.SkipFwd,
			keys.SeekBack, keys.SeekFwd, keys.Loop, keys.Mute, keys.VolDown, keys.VolUp, keys.Expand)
	}
	return append(groups, audio)
}
