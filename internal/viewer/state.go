// Package viewer holds the page, zoom and view-mode state of the document
// viewing surface. Everything here is synchronous and free of I/O so the
// terminal and desktop front ends can share it.
package viewer

import "math"

// Zoom bounds and presets.
const (
	MinScale      = 0.25
	MaxScale      = 3.0
	ScaleStep     = 0.25
	DefaultScale  = 1.0
	FitWidthScale = 1.0
	FitPageScale  = 0.8
)

// PageKind selects how a PageRequest is interpreted.
type PageKind int

const (
	PageAbsolute PageKind = iota
	PagePrev
	PageNext
	PageFirst
	PageLast
)

// PageRequest is either an absolute page number or a relative move.
type PageRequest struct {
	Kind PageKind
	Page int
}

// GoTo requests an absolute page. Out-of-range pages are clamped.
func GoTo(n int) PageRequest { return PageRequest{Kind: PageAbsolute, Page: n} }

var (
	Prev  = PageRequest{Kind: PagePrev}
	Next  = PageRequest{Kind: PageNext}
	First = PageRequest{Kind: PageFirst}
	Last  = PageRequest{Kind: PageLast}
)

// ZoomKind selects how a ZoomRequest is interpreted.
type ZoomKind int

const (
	ZoomAbsolute ZoomKind = iota
	ZoomKindIn
	ZoomKindOut
	ZoomKindFitWidth
	ZoomKindFitPage
)

// ZoomRequest is either an absolute scale or one of the toolbar adjustments.
type ZoomRequest struct {
	Kind  ZoomKind
	Scale float64
}

// ZoomTo requests an absolute scale. Values outside [MinScale, MaxScale]
// are clamped; NaN leaves the scale unchanged.
func ZoomTo(s float64) ZoomRequest { return ZoomRequest{Kind: ZoomAbsolute, Scale: s} }

var (
	ZoomIn   = ZoomRequest{Kind: ZoomKindIn}
	ZoomOut  = ZoomRequest{Kind: ZoomKindOut}
	FitWidth = ZoomRequest{Kind: ZoomKindFitWidth}
	FitPage  = ZoomRequest{Kind: ZoomKindFitPage}
)

// State is the viewer state. The zero value is not usable; start from
// NewState.
type State struct {
	Page       int
	TotalPages int
	Scale      float64
	Mode       ViewMode
}

// NewState returns the state of a viewer with no document loaded.
func NewState() State {
	return State{
		Page:  1,
		Scale: DefaultScale,
		Mode:  ModeReading,
	}
}

// Loaded reports whether a page count has been received.
func (s State) Loaded() bool {
	return s.TotalPages > 0
}

// AtFirst reports whether the current page is the first one.
func (s State) AtFirst() bool {
	return s.Page <= 1
}

// AtLast reports whether the current page is the last one.
func (s State) AtLast() bool {
	return s.Page >= s.TotalPages
}

// WithDocument returns s after a document with pageCount pages loaded.
func (s State) WithDocument(pageCount int) State {
	if pageCount < 1 {
		return s
	}
	s.TotalPages = pageCount
	s.Page = 1
	return s
}

// WithPage returns s with req applied. Requests before a document has
// loaded are ignored.
func (s State) WithPage(req PageRequest) State {
	if !s.Loaded() {
		return s
	}
	switch req.Kind {
	case PageAbsolute:
		s.Page = clampInt(req.Page, 1, s.TotalPages)
	case PagePrev:
		s.Page = clampInt(s.Page-1, 1, s.TotalPages)
	case PageNext:
		s.Page = clampInt(s.Page+1, 1, s.TotalPages)
	case PageFirst:
		s.Page = 1
	case PageLast:
		s.Page = s.TotalPages
	}
	return s
}

// WithZoom returns s with req applied.
func (s State) WithZoom(req ZoomRequest) State {
	switch req.Kind {
	case ZoomAbsolute:
		if math.IsNaN(req.Scale) {
			return s
		}
		s.Scale = clampScale(req.Scale)
	case ZoomKindIn:
		s.Scale = clampScale(s.Scale + ScaleStep)
	case ZoomKindOut:
		s.Scale = clampScale(s.Scale - ScaleStep)
	case ZoomKindFitWidth:
		s.Scale = FitWidthScale
	case ZoomKindFitPage:
		s.Scale = FitPageScale
	}
	return s
}

// WithMode returns s in the given view mode. Unknown modes are ignored.
func (s State) WithMode(m ViewMode) State {
	if m.Valid() {
		s.Mode = m
	}
	return s
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampScale(v float64) float64 {
	return math.Max(MinScale, math.Min(MaxScale, v))
}
