package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerNotifiesOnChange(t *testing.T) {
	c := NewController()
	var seen []State
	c.Subscribe(func(s State) { seen = append(seen, s) })

	c.OnDocumentLoaded(3)
	c.SetPage(Next)
	c.SetPage(Next)
	c.SetPage(Next) // already on the last page
	c.SetZoom(FitWidth)
	c.SetViewMode(ModeReading)

	require.Len(t, seen, 3)
	assert.Equal(t, 1, seen[0].Page)
	assert.Equal(t, 2, seen[1].Page)
	assert.Equal(t, 3, seen[2].Page)
	assert.Equal(t, 3, c.State().Page)
}

func TestControllerObserverMayReadState(t *testing.T) {
	c := NewController()
	var pages []int
	c.Subscribe(func(State) { pages = append(pages, c.State().Page) })

	c.OnDocumentLoaded(4)
	c.SetPage(GoTo(3))

	assert.Equal(t, []int{1, 3}, pages)
}

func TestControllerDispatch(t *testing.T) {
	c := NewController()
	c.OnDocumentLoaded(10)

	assert.True(t, c.Dispatch(CmdLastPage))
	assert.Equal(t, 10, c.State().Page)

	assert.True(t, c.Dispatch(CmdZoomOut))
	assert.Equal(t, 0.75, c.State().Scale)

	assert.True(t, c.Dispatch(CmdTogglePresentation))
	assert.Equal(t, ModePresentation, c.State().Mode)
	assert.True(t, c.Dispatch(CmdTogglePresentation))
	assert.Equal(t, ModeReading, c.State().Mode)

	assert.False(t, c.Dispatch(CmdOpenChat))
	assert.False(t, c.Dispatch(CmdQuit))
}

func TestApplyEscape(t *testing.T) {
	s, ok := Apply(NewState().WithMode(ModePresentation), CmdEscape)
	require.True(t, ok)
	assert.Equal(t, ModeReading, s.Mode)

	s, ok = Apply(NewState().WithMode(ModeAnalysis), CmdEscape)
	require.True(t, ok)
	assert.Equal(t, ModeAnalysis, s.Mode)
}

func TestApplyModeCommands(t *testing.T) {
	tests := map[Command]ViewMode{
		CmdModeReading:      ModeReading,
		CmdModeAnalysis:     ModeAnalysis,
		CmdModeFocus:        ModeFocus,
		CmdModePresentation: ModePresentation,
		CmdModeMobile:       ModeMobile,
	}
	for cmd, want := range tests {
		s, ok := Apply(NewState(), cmd)
		assert.True(t, ok, cmd.String())
		assert.Equal(t, want, s.Mode, cmd.String())
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		key  string
		want Command
	}{
		{"left", CmdPrevPage},
		{"right", CmdNextPage},
		{" ", CmdNextPage},
		{"home", CmdFirstPage},
		{"end", CmdLastPage},
		{"ctrl+=", CmdZoomIn},
		{"+", CmdZoomIn},
		{"ctrl+-", CmdZoomOut},
		{"ctrl+0", CmdFitWidth},
		{"f", CmdTogglePresentation},
		{"F", CmdTogglePresentation},
		{"esc", CmdEscape},
		{"ctrl+q", CmdOpenChat},
		{"ctrl+t", CmdTranslatePage},
		{"ctrl+s", CmdSummarizePage},
		{"q", CmdQuit},
	}
	for _, tt := range tests {
		got, ok := Lookup(tt.key)
		assert.True(t, ok, tt.key)
		assert.Equal(t, tt.want, got, tt.key)
	}

	for _, key := range []string{"x", "ctrl+plus", "ctrl+minus"} {
		_, ok := Lookup(key)
		assert.False(t, ok, key)
	}
}

func TestShortcutKeysAreUnique(t *testing.T) {
	seen := map[string]Command{}
	for _, s := range Shortcuts {
		for _, k := range s.Keys {
			prev, dup := seen[k]
			assert.False(t, dup, "key %q bound to both %v and %v", k, prev, s.Command)
			seen[k] = s.Command
		}
	}
}

func TestParseViewMode(t *testing.T) {
	for _, m := range ViewModes() {
		got, ok := ParseViewMode(m.String())
		assert.True(t, ok)
		assert.Equal(t, m, got)
	}
	got, ok := ParseViewMode(" Present ")
	assert.True(t, ok)
	assert.Equal(t, ModePresentation, got)

	_, ok = ParseViewMode("cinema")
	assert.False(t, ok)
}
