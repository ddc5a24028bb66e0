package scene

import "fmt"

// Series is one numeric data layer flattened for export. Z carries the third column
// where the layer has one (bar errors, band upper bound, heatmap value).
type Series struct {
	Panel int
	Kind  string
	Name  string
	X, Y  []float64
	Z     []float64
}

// DataLayers enumerates every numeric layer of f in panel and layer order.
// Unnamed layers are named after their kind and position.
func DataLayers(f *Figure) []Series {
	var out []Series
	for pi, p := range f.Panels {
		if p == nil {
			continue
		}
		for li, l := range p.Layers {
			name := func(n string) string {
				if n != "" {
					return n
				}
				return fmt.Sprintf("%s_%d", l.Kind(), li)
			}
			switch v := l.(type) {
			case *Line:
				out = append(out, Series{Panel: pi, Kind: v.Kind(), Name: name(v.Name), X: v.X, Y: v.Y})
			case *Scatter:
				out = append(out, Series{Panel: pi, Kind: v.Kind(), Name: name(v.Name), X: v.X, Y: v.Y})
			case *Bars:
				y := v.Values
				if len(v.Base) > 0 {
					y = make([]float64, len(v.Values))
					for i := range y {
						y[i] = v.Base[i] + v.Values[i]
					}
				}
				out = append(out, Series{Panel: pi, Kind: v.Kind(), Name: name(v.Name), X: v.Pos, Y: y, Z: v.Err})
			case *ErrorBars:
				out = append(out, Series{Panel: pi, Kind: v.Kind(), Name: name(v.Name), X: v.X, Y: v.Y, Z: v.High})
			case *Band:
				out = append(out, Series{Panel: pi, Kind: v.Kind(), Name: name(v.Name), X: v.X, Y: v.Lower, Z: v.Upper})
			case *Heatmap:
				s := Series{Panel: pi, Kind: v.Kind(), Name: name(v.Name)}
				for r, row := range v.Values {
					for c, val := range row {
						s.X = append(s.X, v.X0+float64(c)*v.CellW)
						s.Y = append(s.Y, v.Y0+float64(r)*v.CellH)
						s.Z = append(s.Z, val)
					}
				}
				out = append(out, s)
			}
		}
	}
	return out
}
