package viewer

// Shortcut binds key names to a command. Key names follow bubbletea's
// KeyMsg.String() spelling ("left", "ctrl+q", " "). The desktop window
// spells its ctrl chords the same way from the fyne key name, which is
// the only source of "ctrl+=", "ctrl+-" and "ctrl+0".
type Shortcut struct {
	Keys    []string
	Label   string
	Command Command
}

// Shortcuts is the fixed keyboard table of the viewing surface.
var Shortcuts = []Shortcut{
	{Keys: []string{"left", "b", "pgup"}, Label: "←", Command: CmdPrevPage},
	{Keys: []string{"right", " ", "pgdown"}, Label: "→", Command: CmdNextPage},
	{Keys: []string{"home"}, Label: "home", Command: CmdFirstPage},
	{Keys: []string{"end"}, Label: "end", Command: CmdLastPage},
	{Keys: []string{"ctrl+=", "+", "="}, Label: "+", Command: CmdZoomIn},
	{Keys: []string{"ctrl+-", "-"}, Label: "-", Command: CmdZoomOut},
	{Keys: []string{"ctrl+0", "0"}, Label: "0", Command: CmdFitWidth},
	{Keys: []string{"9"}, Label: "9", Command: CmdFitPage},
	{Keys: []string{"1"}, Label: "1", Command: CmdModeReading},
	{Keys: []string{"2"}, Label: "2", Command: CmdModeAnalysis},
	{Keys: []string{"3"}, Label: "3", Command: CmdModeFocus},
	{Keys: []string{"4"}, Label: "4", Command: CmdModePresentation},
	{Keys: []string{"5"}, Label: "5", Command: CmdModeMobile},
	{Keys: []string{"f", "F"}, Label: "f", Command: CmdTogglePresentation},
	{Keys: []string{"esc"}, Label: "esc", Command: CmdEscape},
	{Keys: []string{"ctrl+q", "c"}, Label: "c", Command: CmdOpenChat},
	{Keys: []string{"ctrl+t", "T"}, Label: "T", Command: CmdTranslatePage},
	{Keys: []string{"ctrl+s", "S"}, Label: "S", Command: CmdSummarizePage},
	{Keys: []string{"]"}, Label: "]", Command: CmdToggleSidebar},
	{Keys: []string{"a"}, Label: "a", Command: CmdToggleAudio},
	{Keys: []string{"g", ":"}, Label: "g", Command: CmdJumpPrompt},
	{Keys: []string{"?"}, Label: "?", Command: CmdHelp},
	{Keys: []string{"q", "Q", "ctrl+c"}, Label: "q", Command: CmdQuit},
}

var shortcutIndex = func() map[string]Command {
	m := make(map[string]Command)
	for _, s := range Shortcuts {
		for _, k := range s.Keys {
			m[k] = s.Command
		}
	}
	return m
}()

// Lookup resolves a key name to its command.
func Lookup(key string) (Command, bool) {
	c, ok := shortcutIndex[key]
	return c, ok
}

// ShortcutFor returns the table entry for cmd.
func ShortcutFor(cmd Command) (Shortcut, bool) {
	for _, s := range Shortcuts {
		if s.Command == cmd {
			return s, true
		}
	}
	return Shortcut{}, false
}
