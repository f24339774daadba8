package viewer

import "strings"

// ViewMode is a named layout preset for the viewing surface.
type ViewMode int

const (
	ModeReading ViewMode = iota
	ModeAnalysis
	ModeFocus
	ModePresentation
	ModeMobile
)

var modeNames = [...]string{
	ModeReading:      "reading",
	ModeAnalysis:     "analysis",
	ModeFocus:        "focus",
	ModePresentation: "presentation",
	ModeMobile:       "mobile",
}

var modeLabels = [...]string{
	ModeReading:      "Reading",
	ModeAnalysis:     "Analysis",
	ModeFocus:        "Focus",
	ModePresentation: "Present",
	ModeMobile:       "Mobile",
}

// ViewModes returns every view mode in toolbar order.
func ViewModes() []ViewMode {
	return []ViewMode{ModeReading, ModeAnalysis, ModeFocus, ModePresentation, ModeMobile}
}

func (m ViewMode) String() string {
	if m.Valid() {
		return modeNames[m]
	}
	return "unknown"
}

// Label is the short name shown on toolbar buttons.
func (m ViewMode) Label() string {
	if m.Valid() {
		return modeLabels[m]
	}
	return "?"
}

func (m ViewMode) Valid() bool {
	return m >= ModeReading && m <= ModeMobile
}

// ParseViewMode accepts a mode name, case-insensitively.
func ParseViewMode(s string) (ViewMode, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "present" {
		return ModePresentation, true
	}
	for i, name := range modeNames {
		if name == s {
			return ViewMode(i), true
		}
	}
	return ModeReading, false
}
