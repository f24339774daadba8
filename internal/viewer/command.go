package viewer

// Command is a discrete user or system input to the viewing surface.
type Command int

const (
	CmdNone Command = iota

	// Navigation
	CmdPrevPage
	CmdNextPage
	CmdFirstPage
	CmdLastPage

	// Zoom
	CmdZoomIn
	CmdZoomOut
	CmdFitWidth
	CmdFitPage

	// View modes
	CmdModeReading
	CmdModeAnalysis
	CmdModeFocus
	CmdModePresentation
	CmdModeMobile
	CmdTogglePresentation
	CmdEscape

	// Commands the front end handles itself.
	CmdOpenChat
	CmdTranslatePage
	CmdSummarizePage
	CmdToggleSidebar
	CmdToggleAudio
	CmdJumpPrompt
	CmdHelp
	CmdQuit
)

var commandNames = map[Command]string{
	CmdNone:               "none",
	CmdPrevPage:           "prev page",
	CmdNextPage:           "next page",
	CmdFirstPage:          "first page",
	CmdLastPage:           "last page",
	CmdZoomIn:             "zoom in",
	CmdZoomOut:            "zoom out",
	CmdFitWidth:           "fit width",
	CmdFitPage:            "fit page",
	CmdModeReading:        "reading mode",
	CmdModeAnalysis:       "analysis mode",
	CmdModeFocus:          "focus mode",
	CmdModePresentation:   "presentation mode",
	CmdModeMobile:         "mobile mode",
	CmdTogglePresentation: "presentation",
	CmdEscape:             "back",
	CmdOpenChat:           "ask AI",
	CmdTranslatePage:      "translate page",
	CmdSummarizePage:      "summarize page",
	CmdToggleSidebar:      "sidebar",
	CmdToggleAudio:        "audio",
	CmdJumpPrompt:         "go to page",
	CmdHelp:               "help",
	CmdQuit:               "quit",
}

func (c Command) String() string {
	if s, ok := commandNames[c]; ok {
		return s
	}
	return "unknown"
}

var modeCommands = map[Command]ViewMode{
	CmdModeReading:      ModeReading,
	CmdModeAnalysis:     ModeAnalysis,
	CmdModeFocus:        ModeFocus,
	CmdModePresentation: ModePresentation,
	CmdModeMobile:       ModeMobile,
}

// Apply runs cmd against s. The second result is false when cmd is not a
// viewer command and must be handled by the caller.
func Apply(s State, cmd Command) (State, bool) {
	switch cmd {
	case CmdPrevPage:
		return s.WithPage(Prev), true
	case CmdNextPage:
		return s.WithPage(Next), true
	case CmdFirstPage:
		return s.WithPage(First), true
	case CmdLastPage:
		return s.WithPage(Last), true
	case CmdZoomIn:
		return s.WithZoom(ZoomIn), true
	case CmdZoomOut:
		return s.WithZoom(ZoomOut), true
	case CmdFitWidth:
		return s.WithZoom(FitWidth), true
	case CmdFitPage:
		return s.WithZoom(FitPage), true
	case CmdTogglePresentation:
		if s.Mode == ModePresentation {
			return s.WithMode(ModeReading), true
		}
		return s.WithMode(ModePresentation), true
	case CmdEscape:
		if s.Mode == ModePresentation {
			return s.WithMode(ModeReading), true
		}
		return s, true
	}
	if m, ok := modeCommands[cmd]; ok {
		return s.WithMode(m), true
	}
	return s, false
}
