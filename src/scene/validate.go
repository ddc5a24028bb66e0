package scene

import (
	"errors"
	"fmt"
	"math"
	"regexp"
)

// ErrInvalid wraps every validation problem.
var ErrInvalid = errors.New("invalid figure")

var slugRe = regexp.MustCompile(`^[a-z0-9][a-z0-9_\-]*$`)

// Validate checks a figure before rendering and reports every problem at once.
func Validate(f *Figure) error {
	if f == nil {
		return fmt.Errorf("%w: nil figure", ErrInvalid)
	}
	var errs []error
	bad := func(format string, a ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, a...)))
	}
	if f.Name == "" {
		bad("empty name")
	} else if !slugRe.MatchString(f.Name) {
		bad("name %q is not a file-safe slug", f.Name)
	}
	if !(f.Width > 0) || !(f.Height > 0) {
		bad("size %gx%g must be positive", f.Width, f.Height)
	}
	if f.Rows < 1 || f.Cols < 1 {
		bad("grid %dx%d must be at least 1x1", f.Rows, f.Cols)
	} else if len(f.Panels) > f.Rows*f.Cols {
		bad("%d panels exceed a %dx%d grid", len(f.Panels), f.Rows, f.Cols)
	}
	for i, p := range f.Panels {
		if p == nil {
			bad("panel %d is nil", i)
			continue
		}
		if p.X.Fixed() && p.X.Min > p.X.Max {
			bad("panel %d: x range [%g, %g] inverted", i, p.X.Min, p.X.Max)
		}
		if p.Y.Fixed() && p.Y.Min > p.Y.Max {
			bad("panel %d: y range [%g, %g] inverted", i, p.Y.Min, p.Y.Max)
		}
		for j, l := range p.Layers {
			if err := validateLayer(l); err != nil {
				bad("panel %d layer %d (%s): %v", i, j, kindOf(l), err)
			}
		}
	}
	return errors.Join(errs...)
}

func kindOf(l Layer) string {
	if l == nil {
		return "nil"
	}
	return l.Kind()
}

func validateLayer(l Layer) error {
	switch v := l.(type) {
	case nil:
		return errors.New("nil layer")
	case *Line:
		return pairs(v.X, v.Y)
	case *Scatter:
		if err := pairs(v.X, v.Y); err != nil {
			return err
		}
		if len(v.Colors) > 0 && len(v.Colors) != len(v.X) {
			return fmt.Errorf("%d colours for %d points", len(v.Colors), len(v.X))
		}
		if len(v.Sizes) > 0 && len(v.Sizes) != len(v.X) {
			return fmt.Errorf("%d sizes for %d points", len(v.Sizes), len(v.X))
		}
	case *Bars:
		if err := pairs(v.Pos, v.Values); err != nil {
			return err
		}
		if len(v.Base) > 0 && len(v.Base) != len(v.Values) {
			return fmt.Errorf("%d bases for %d bars", len(v.Base), len(v.Values))
		}
		if len(v.Err) > 0 && len(v.Err) != len(v.Values) {
			return fmt.Errorf("%d errors for %d bars", len(v.Err), len(v.Values))
		}
		if !(v.Width > 0) {
			return fmt.Errorf("bar width %g must be positive", v.Width)
		}
	case *ErrorBars:
		if err := pairs(v.X, v.Y); err != nil {
			return err
		}
		if len(v.Low) != len(v.Y) || len(v.High) != len(v.Y) {
			return fmt.Errorf("error lengths %d/%d for %d points", len(v.Low), len(v.High), len(v.Y))
		}
	case *Band:
		if len(v.X) != len(v.Lower) || len(v.X) != len(v.Upper) {
			return fmt.Errorf("band lengths x=%d lower=%d upper=%d", len(v.X), len(v.Lower), len(v.Upper))
		}
	case *Polygon:
		if err := pairs(v.X, v.Y); err != nil {
			return err
		}
		if len(v.X) < 3 {
			return fmt.Errorf("polygon needs 3 vertices, has %d", len(v.X))
		}
	case *Heatmap:
		if len(v.Values) == 0 {
			return errors.New("empty heatmap")
		}
		cols := len(v.Values[0])
		for r, row := range v.Values {
			if len(row) != cols {
				return fmt.Errorf("heatmap row %d has %d cells, want %d", r, len(row), cols)
			}
		}
		if v.Map == nil {
			return errors.New("heatmap without colour map")
		}
		if !(v.Max > v.Min) {
			return fmt.Errorf("heatmap scale [%g, %g] empty", v.Min, v.Max)
		}
	case *ColorBar:
		if v.Map == nil || !(v.Max > v.Min) {
			return errors.New("colour bar needs a map and a non-empty scale")
		}
	case *Circle:
		if !(v.R > 0) {
			return fmt.Errorf("circle radius %g must be positive", v.R)
		}
	case *Wedge:
		if !(v.R > 0) || v.Inner < 0 || v.Inner >= 1 {
			return fmt.Errorf("wedge radius %g inner %g out of range", v.R, v.Inner)
		}
	}
	return nil
}

func pairs(x, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("len(x)=%d len(y)=%d", len(x), len(y))
	}
	if len(y) == 0 {
		return nil
	}
	for _, v := range y {
		if !math.IsNaN(v) {
			return nil
		}
	}
	return errors.New("series is all NaN")
}
