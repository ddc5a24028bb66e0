// Package scene describes a figure independently of the drawing backend: a grid of
// panels, each with axes and an ordered stack of layers. Figures build scenes, the
// render package draws them and the export package dumps their numbers.
package scene

import "image/color"

// Figure is one manuscript figure. Width and Height are in inches.
type Figure struct {
	Name     string
	Title    string
	Subtitle string
	Caption  string
	Width    float64
	Height   float64
	Rows     int
	Cols     int
	Panels   []*Panel

	Background color.Color
}

// Tick is a fixed tick mark; an empty Label draws an unlabelled mark.
type Tick struct {
	Value float64
	Label string
}

// Axis is one panel axis. Min == Max means auto-scale from the data layers.
type Axis struct {
	Label  string
	Min    float64
	Max    float64
	Ticks  []Tick
	Hidden bool
	// TickRotation rotates tick labels, in degrees counter-clockwise.
	TickRotation float64
}

// Fixed reports whether the axis carries an explicit range.
func (a Axis) Fixed() bool { return a.Min != a.Max }

type GridMode int

const (
	GridNone GridMode = iota
	GridBoth
	GridX
	GridY
)

type LegendPos int

const (
	UpperRight LegendPos = iota
	UpperLeft
	LowerRight
	LowerLeft
)

type LegendKind int

const (
	LegendPatch LegendKind = iota
	LegendLine
	LegendMarker
)

type LegendEntry struct {
	Label  string
	Color  color.Color
	Kind   LegendKind
	Dashed bool
	Marker Marker
}

// Legend lists explicit entries; with Auto set, named data layers are added first.
type Legend struct {
	Auto     bool
	Entries  []LegendEntry
	Position LegendPos
	FontSize float64
}

// Panel is one set of axes.
type Panel struct {
	Title    string
	X, Y     Axis
	Grid     GridMode
	HideAxes bool
	Legend   *Legend
	Layers   []Layer
}

// Add appends layers and returns the panel for chaining.
func (p *Panel) Add(ls ...Layer) *Panel {
	p.Layers = append(p.Layers, ls...)
	return p
}

// NewFigure returns a figure with a rows x cols panel grid, all panels allocated.
func NewFigure(name string, w, h float64, rows, cols int) *Figure {
	f := &Figure{Name: name, Width: w, Height: h, Rows: rows, Cols: cols}
	for i := 0; i < rows*cols; i++ {
		f.Panels = append(f.Panels, &Panel{})
	}
	return f
}

// Panel returns the panel at grid position (row, col), or nil.
func (f *Figure) Panel(row, col int) *Panel {
	i := row*f.Cols + col
	if row < 0 || col < 0 || col >= f.Cols || i >= len(f.Panels) {
		return nil
	}
	return f.Panels[i]
}
