// Package audio models the playback state of the translation audio player.
// There is no audio output; front ends drive the clock with Tick.
package audio

import (
	"fmt"
	"math"
	"time"
)

const (
	DefaultTitle    = "Page Translation Audio"
	DefaultDuration = 245 * time.Second
	DefaultVolume   = 75
	SkipStep        = 10 * time.Second
	TickInterval    = time.Second
)

// Player is the state of one audio track. The zero value is not usable;
// call NewPlayer.
type Player struct {
	Title    string
	Duration time.Duration
	Position time.Duration
	Volume   int
	Playing  bool
	Muted    bool
	Looping  bool
	Expanded bool
}

func NewPlayer(title string) *Player {
	if title == "" {
		title = DefaultTitle
	}
	return &Player{Title: title, Duration: DefaultDuration, Volume: DefaultVolume}
}

// Toggle plays or pauses. Playing from the end restarts the track.
func (p *Player) Toggle() {
	if !p.Playing && p.Position >= p.Duration {
		p.Position = 0
	}
	p.Playing = !p.Playing
}

// Stop pauses and rewinds.
func (p *Player) Stop() {
	p.Playing = false
	p.Position = 0
}

// Tick advances the clock by elapsed while playing. At the end the track
// rewinds when looping, otherwise it stops on the last position.
func (p *Player) Tick(elapsed time.Duration) {
	if !p.Playing || elapsed <= 0 {
		return
	}
	if p.Position >= p.Duration {
		if p.Looping {
			p.Position = 0
			return
		}
		p.Playing = false
		p.Position = p.Duration
		return
	}
	p.Position = min(p.Position+elapsed, p.Duration)
}

// Seek moves to percent of the duration.
func (p *Player) Seek(percent float64) {
	if math.IsNaN(percent) {
		return
	}
	percent = max(0, min(100, percent))
	p.Position = time.Duration(percent / 100 * float64(p.Duration))
}

// Skip moves by d, clamped to the track.
func (p *Player) Skip(d time.Duration) {
	p.Position = max(0, min(p.Duration, p.Position+d))
}

// SetVolume sets the volume in [0, 100] and unmutes.
func (p *Player) SetVolume(v int) {
	p.Volume = max(0, min(100, v))
	p.Muted = false
}

func (p *Player) ToggleMute()     { p.Muted = !p.Muted }
func (p *Player) ToggleLoop()     { p.Looping = !p.Looping }
func (p *Player) ToggleExpanded() { p.Expanded = !p.Expanded }

// EffectiveVolume is what the volume slider shows.
func (p *Player) EffectiveVolume() int {
	if p.Muted {
		return 0
	}
	return p.Volume
}

// Silent reports whether the speaker icon shows muted.
func (p *Player) Silent() bool {
	return p.Muted || p.Volume == 0
}

// Progress returns the played fraction in [0, 1].
func (p *Player) Progress() float64 {
	if p.Duration <= 0 {
		return 0
	}
	return float64(p.Position) / float64(p.Duration)
}

// FormatTime renders d as m:ss.
func FormatTime(d time.Duration) string {
	secs := max(0, int(d/time.Second))
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
