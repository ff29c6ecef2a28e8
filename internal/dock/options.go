package dock

import (
	"io"
	"unicode/utf8"

	"charm.land/log/v2"
)

// DefaultSplitterValue is the share of the area given to a newly docked pane.
const DefaultSplitterValue = 0.25

// Options tunes geometry and collaborators of a Master.
type Options struct {
	// DefaultSplitRatio is used when DockWindow gets no usable splitter value.
	DefaultSplitRatio float64
	// HintSize is the size of one dock hint region.
	HintSize Size
	// HintMargin is the distance between an edge hint and the dock area border.
	HintMargin int
	// HeaderHeight is the height of a tab strip.
	HeaderHeight int
	// TabPadding is the space on both sides of a tab title.
	TabPadding int
	// CloseButtonWidth is the width of the close glyph of a tab.
	CloseButtonWidth int
	// SplitterSize is the thickness of a splitter bar.
	SplitterSize int
	// MinPaneSize bounds interactive splitter resizing.
	MinPaneSize int
	// FloatSize is the default size of new floating windows.
	FloatSize Size

	// Measure returns the display width of a title. Defaults to rune count.
	Measure func(string) int
	Logger  *log.Logger
}

// DefaultOptions returns the terminal-sized defaults.
func DefaultOptions() Options {
	return Options{
		DefaultSplitRatio: DefaultSplitterValue,
		HintSize:          Size{W: 6, H: 3},
		HintMargin:        1,
		HeaderHeight:      1,
		TabPadding:        1,
		CloseButtonWidth:  1,
		SplitterSize:      1,
		MinPaneSize:       3,
		FloatSize:         Size{W: 40, H: 12},
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.DefaultSplitRatio <= 0 || o.DefaultSplitRatio >= 1 {
		o.DefaultSplitRatio = def.DefaultSplitRatio
	}
	if o.HintSize.W <= 0 || o.HintSize.H <= 0 {
		o.HintSize = def.HintSize
	}
	if o.HintMargin < 0 {
		o.HintMargin = def.HintMargin
	}
	if o.HeaderHeight <= 0 {
		o.HeaderHeight = def.HeaderHeight
	}
	if o.TabPadding < 0 {
		o.TabPadding = def.TabPadding
	}
	if o.CloseButtonWidth <= 0 {
		o.CloseButtonWidth = def.CloseButtonWidth
	}
	if o.SplitterSize < 0 {
		o.SplitterSize = def.SplitterSize
	}
	if o.MinPaneSize < 0 {
		o.MinPaneSize = def.MinPaneSize
	}
	if o.FloatSize.W <= 0 || o.FloatSize.H <= 0 {
		o.FloatSize = def.FloatSize
	}
	if o.Measure == nil {
		o.Measure = utf8.RuneCountInString
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// ratio resolves the splitter value passed to DockWindow.
func (o Options) ratio(v float64) float64 {
	if v <= 0 || v >= 1 {
		return o.DefaultSplitRatio
	}
	return v
}
