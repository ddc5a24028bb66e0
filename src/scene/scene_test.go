package scene

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/contact-shreyas/ALPS/src/style"
	"github.com/stretchr/testify/require"
)

func validFigure() *Figure {
	f := NewFigure("figure_test", 6, 4, 1, 2)
	f.Panels[0].Add(
		&Line{Name: "trend", X: []float64{1, 2, 3}, Y: []float64{2, 4, 8}, Stroke: Pen(style.Blue, 1.5)},
		Label(2, 5, "note", 8).B(),
	)
	f.Panels[1].Add(&Bars{Pos: []float64{0, 1}, Values: []float64{3, 5}, Width: 0.8, Err: []float64{0.5, 0.2}})
	return f
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, Validate(validFigure()))
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	f := validFigure()
	f.Name = "Bad Name/1"
	f.Width = 0
	f.Panels[0].X = Axis{Min: 5, Max: 1}
	f.Panels[0].Add(&Line{X: []float64{1}, Y: []float64{1, 2}})
	f.Panels[1].Add(&Heatmap{Values: [][]float64{{1, 2}, {3}}, Map: style.YlOrRd(), Min: 0, Max: 1})
	f.Panels = append(f.Panels, &Panel{})

	err := Validate(f)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalid))
	msg := err.Error()
	for _, want := range []string{"slug", "size", "inverted", "len(x)=1", "heatmap row 1", "exceed"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("validation message missing %q:\n%s", want, msg)
		}
	}
}

func TestValidate_AllNaN(t *testing.T) {
	f := validFigure()
	f.Panels[0].Add(&Line{X: []float64{1, 2}, Y: []float64{math.NaN(), math.NaN()}})
	require.ErrorIs(t, Validate(f), ErrInvalid)
}

func TestBarsBounds_StackAndErrors(t *testing.T) {
	b := &Bars{Pos: []float64{0, 1}, Values: []float64{2, 3}, Base: []float64{1, 1}, Width: 0.5, Err: []float64{0.5, 0.5}}
	x0, x1, y0, y1, ok := b.Bounds()
	require.True(t, ok)
	require.Equal(t, []float64{-0.25, 1.25, 1, 4.5}, []float64{x0, x1, y0, y1})

	b.Horizontal = true
	x0, _, y0, _, _ = b.Bounds()
	require.Equal(t, 1.0, x0)
	require.Equal(t, -0.25, y0)
}

func TestDataLayers(t *testing.T) {
	f := validFigure()
	f.Panels[1].Add(&Heatmap{Values: [][]float64{{1, 2}, {3, 4}}, CellW: 1, CellH: 1, Map: style.YlOrRd(), Max: 4})
	got := DataLayers(f)
	require.Len(t, got, 3)
	require.Equal(t, "trend", got[0].Name)
	require.Equal(t, "bars_0", got[1].Name)
	require.Equal(t, []float64{0.5, 0.2}, got[1].Z)
	require.Equal(t, []float64{1, 2, 3, 4}, got[2].Z)
	require.Equal(t, []float64{0, 1, 0, 1}, got[2].X)
}

func TestFigurePanelLookup(t *testing.T) {
	f := NewFigure("grid", 6, 6, 2, 2)
	require.Same(t, f.Panels[3], f.Panel(1, 1))
	require.Nil(t, f.Panel(2, 0))
	require.Nil(t, f.Panel(0, 2))
}
