package style

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want color.NRGBA
	}{
		{"#0173B2", color.NRGBA{R: 0x01, G: 0x73, B: 0xB2, A: 255}},
		{"darkred", color.NRGBA{R: 0x8B, A: 255}},
		{"  LightYellow ", color.NRGBA{R: 255, G: 255, B: 0xE0, A: 255}},
		{"#fff", color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{"#00000080", color.NRGBA{A: 0x80}},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		require.NoError(t, err, c.in)
		require.Equal(t, c.want, got, c.in)
	}
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{"", "chartreuse-ish", "#12345", "#GGGGGG"} {
		if _, err := Parse(in); err == nil {
			t.Fatalf("Parse(%q) expected error", in)
		}
	}
}

func TestBlendOverWhite(t *testing.T) {
	require.Equal(t, White, Blend(Blue, 0))
	require.Equal(t, color.NRGBA{R: 0x01, G: 0x73, B: 0xB2, A: 255}, Blend(Blue, 1))
	mid := Blend(Black, 0.5)
	if mid.R < 126 || mid.R > 129 {
		t.Fatalf("half black over white should be mid grey, got %+v", mid)
	}
}

func TestWithAlphaAndLighten(t *testing.T) {
	require.Equal(t, uint8(77), WithAlpha(Orange, 0.3).A)
	l := Lighten(Midnight, 0.5)
	if l.R <= Midnight.R || l.G <= Midnight.G {
		t.Fatalf("Lighten did not lighten: %+v", l)
	}
	require.Equal(t, White, Lighten(Midnight, 1))
}

func TestGradientEndpoints(t *testing.T) {
	g := Gradient{Black, White}
	require.Equal(t, color.NRGBA{A: 255}, g.At(-1))
	require.Equal(t, White, g.At(2))
	cols := Sample(YlOrRd(), 5)
	require.Len(t, cols, 5)
	require.Equal(t, MustParse("#FFFFCC"), cols[0])
	require.Equal(t, MustParse("#800026"), cols[4])
}

func TestDivergingIsBlueToRed(t *testing.T) {
	lo := color.NRGBAModel.Convert(Diverging().At(0)).(color.NRGBA)
	hi := color.NRGBAModel.Convert(Diverging().At(1)).(color.NRGBA)
	if lo.B <= lo.R {
		t.Fatalf("low end should be blue, got %+v", lo)
	}
	if hi.R <= hi.B {
		t.Fatalf("high end should be red, got %+v", hi)
	}
}

func TestLoadTheme(t *testing.T) {
	th, err := LoadTheme("")
	require.NoError(t, err)
	require.Equal(t, DefaultTheme().DPI, th.DPI)

	p := filepath.Join(t.TempDir(), "theme.yaml")
	yml := "dpi: 150\nfont_size: 12\npalette:\n  blue: \"#112233\"\n"
	require.NoError(t, os.WriteFile(p, []byte(yml), 0o644))
	th, err = LoadTheme(p)
	require.NoError(t, err)
	require.Equal(t, 150, th.DPI)
	require.Equal(t, color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 255}, th.C("blue", Blue))
	require.Equal(t, Orange, th.C("orange", Orange))
	require.InDelta(t, 12.0, th.Sized(10), 1e-9)
}

func TestLoadTheme_BadPalette(t *testing.T) {
	p := filepath.Join(t.TempDir(), "theme.yaml")
	require.NoError(t, os.WriteFile(p, []byte("palette:\n  blue: not-a-colour\n"), 0o644))
	_, err := LoadTheme(p)
	require.Error(t, err)
}
