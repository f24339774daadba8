package viewer

import (
	"fmt"
	"strconv"
	"strings"
)

// Sidebar widths in terminal cells.
const (
	SidebarWidth          = 40
	SidebarCollapsedWidth = 6
	MobilePageWidth       = 48
)

// ZoomPresets are the scales offered by the toolbar's zoom selector.
var ZoomPresets = []float64{0.25, 0.5, 0.75, 1.0, 1.25, 1.5, 2.0}

// Toolbar is the enabled state of the toolbar controls.
type Toolbar struct {
	CanFirst   bool
	CanPrev    bool
	CanNext    bool
	CanLast    bool
	CanZoomOut bool
	CanZoomIn  bool
	ZoomLabel  string
	PageLabel  string
}

// ToolbarFor derives control affordances from s. Page controls are
// disabled while a document is loading.
func ToolbarFor(s State, loading bool) Toolbar {
	nav := !loading && s.Loaded()
	return Toolbar{
		CanFirst:   nav && !s.AtFirst(),
		CanPrev:    nav && !s.AtFirst(),
		CanNext:    nav && !s.AtLast(),
		CanLast:    nav && !s.AtLast(),
		CanZoomOut: s.Scale > MinScale,
		CanZoomIn:  s.Scale < MaxScale,
		ZoomLabel:  ZoomLabel(s.Scale),
		PageLabel:  fmt.Sprintf("%d of %d", s.Page, s.TotalPages),
	}
}

// ZoomLabel formats a scale as a whole percentage.
func ZoomLabel(scale float64) string {
	return fmt.Sprintf("%.0f%%", scale*100)
}

// ParseZoomLabel parses a preset label such as "125%" or "125".
func ParseZoomLabel(s string) (float64, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return float64(n) / 100, true
}

// ParsePageInput parses the toolbar's page field. Only integers within
// [1, total] are accepted; anything else leaves the page unchanged.
func ParsePageInput(text string, total int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 1 || n > total {
		return 0, false
	}
	return n, true
}

// Layout describes which panels a view mode shows.
type Layout struct {
	ShowToolbar  bool
	ShowSidebar  bool
	ShowChatHint bool
	Stacked      bool
	Fullscreen   bool
	SidebarWidth int
	MaxPageWidth int
}

// LayoutFor returns the layout of mode.
func LayoutFor(mode ViewMode, sidebarCollapsed, chatOpen bool) Layout {
	l := Layout{
		ShowToolbar:  true,
		ShowChatHint: !chatOpen,
		MaxPageWidth: 100,
	}
	switch mode {
	case ModeAnalysis:
		l.ShowSidebar = true
		l.ShowChatHint = false
		l.SidebarWidth = SidebarWidth
		if sidebarCollapsed {
			l.SidebarWidth = SidebarCollapsedWidth
		}
	case ModePresentation:
		l.ShowToolbar = false
		l.Fullscreen = true
		l.MaxPageWidth = 0
	case ModeMobile:
		l.Stacked = true
		l.MaxPageWidth = MobilePageWidth
	}
	return l
}
