package style

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Colour-blind friendly palette shared by the journal figures.
var (
	Blue   = MustParse("#0173B2")
	Orange = MustParse("#DE8F05")
	Green  = MustParse("#029E73")
	Red    = MustParse("#CC78BC")
	Purple = MustParse("#7F3C8D")
	Brown  = MustParse("#949494")
)

// Flat-UI colours used by the diagram-like figures.
var (
	Midnight  = MustParse("#2C3E50")
	Flat      = MustParse("#34495E")
	FlatBlue  = MustParse("#3498DB")
	FlatRed   = MustParse("#E74C3C")
	FlatGreen = MustParse("#2ECC71")
	FlatOrng  = MustParse("#F39C12")
	FlatPurp  = MustParse("#9B59B6")
	FlatTeal  = MustParse("#1ABC9C")
	Cloud     = MustParse("#ECF0F1")
	Silver    = MustParse("#BDC3C7")
	Concrete  = MustParse("#95A5A6")
	Asbestos  = MustParse("#7F8C8D")
)

var White = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
var Black = color.NRGBA{A: 255}

// named holds the colour names the figures use, with matplotlib's values.
var named = map[string]string{
	"black":        "#000000",
	"white":        "#FFFFFF",
	"gray":         "#808080",
	"grey":         "#808080",
	"lightgray":    "#D3D3D3",
	"lightgrey":    "#D3D3D3",
	"darkgray":     "#A9A9A9",
	"red":          "#FF0000",
	"darkred":      "#8B0000",
	"blue":         "#0000FF",
	"darkblue":     "#00008B",
	"lightblue":    "#ADD8E6",
	"navy":         "#000080",
	"green":        "#008000",
	"darkgreen":    "#006400",
	"lightgreen":   "#90EE90",
	"orange":       "#FFA500",
	"darkorange":   "#FF8C00",
	"yellow":       "#FFFF00",
	"lightyellow":  "#FFFFE0",
	"gold":         "#FFD700",
	"wheat":        "#F5DEB3",
	"purple":       "#800080",
	"lightcoral":   "#F08080",
	"steelblue":    "#4682B4",
	"teal":         "#008080",
	"crimson":      "#DC143C",
	"whitesmoke":   "#F5F5F5",
	"lavender":     "#E6E6FA",
	"mistyrose":    "#FFE4E1",
	"honeydew":     "#F0FFF0",
	"aliceblue":    "#F0F8FF",
	"lemonchiffon": "#FFFACD",
}

// Parse accepts #RRGGBB, #RRGGBBAA, #RGB or one of the named colours.
func Parse(s string) (color.NRGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if hex, ok := named[v]; ok {
		v = strings.ToLower(hex)
	}
	if !strings.HasPrefix(v, "#") {
		return color.NRGBA{}, fmt.Errorf("parse colour %q: unknown name", s)
	}
	switch len(v) {
	case 4, 7:
		c, err := colorful.Hex(expandShortHex(v))
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("parse colour %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
	case 9:
		c, err := colorful.Hex(v[:7])
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("parse colour %q: %w", s, err)
		}
		a, err := strconv.ParseUint(v[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("parse colour %q alpha: %w", s, err)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: uint8(a)}, nil
	}
	return color.NRGBA{}, fmt.Errorf("parse colour %q: bad length", s)
}

func expandShortHex(v string) string {
	if len(v) != 4 {
		return v
	}
	return string([]byte{'#', v[1], v[1], v[2], v[2], v[3], v[3]})
}

// MustParse is Parse for package-level literals.
func MustParse(s string) color.NRGBA {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Named resolves a matplotlib colour name, panicking on typos in figure code.
func Named(name string) color.NRGBA { return MustParse(name) }

func toNRGBA(c color.Color) color.NRGBA {
	if c == nil {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

// WithAlpha returns c with its alpha replaced by a in [0,1].
func WithAlpha(c color.Color, a float64) color.NRGBA {
	n := toNRGBA(c)
	n.A = uint8(clamp01(a)*255 + 0.5)
	return n
}

// Blend flattens c drawn at opacity a over white into an opaque colour.
func Blend(c color.Color, a float64) color.NRGBA {
	n := toNRGBA(c)
	src := colorful.Color{R: float64(n.R) / 255, G: float64(n.G) / 255, B: float64(n.B) / 255}
	white := colorful.Color{R: 1, G: 1, B: 1}
	r, g, b := white.BlendRgb(src, clamp01(a)).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// Lighten moves c toward white by amt in Lab space, keeping alpha.
func Lighten(c color.Color, amt float64) color.NRGBA {
	n := toNRGBA(c)
	src := colorful.Color{R: float64(n.R) / 255, G: float64(n.G) / 255, B: float64(n.B) / 255}
	white := colorful.Color{R: 1, G: 1, B: 1}
	r, g, b := src.BlendLab(white, clamp01(amt)).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: n.A}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
