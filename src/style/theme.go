package style

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

// Theme carries the typographic and palette settings shared by all figures.
type Theme struct {
	DPI         int               `yaml:"dpi"`
	FontSize    float64           `yaml:"font_size"`
	TitleSize   float64           `yaml:"title_size"`
	CaptionSize float64           `yaml:"caption_size"`
	LineWidth   float64           `yaml:"line_width"`
	GridAlpha   float64           `yaml:"grid_alpha"`
	Palette     map[string]string `yaml:"palette"`

	resolved map[string]color.NRGBA
}

// DefaultTheme matches the journal settings: 300 DPI, 10pt sans-serif.
func DefaultTheme() Theme {
	return Theme{
		DPI:         300,
		FontSize:    10,
		TitleSize:   12,
		CaptionSize: 8,
		LineWidth:   1.5,
		GridAlpha:   0.3,
	}
}

// LoadTheme overlays a YAML file on top of DefaultTheme.
func LoadTheme(path string) (Theme, error) {
	th := DefaultTheme()
	if path == "" {
		return th, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return th, fmt.Errorf("read theme: %w", err)
	}
	if err := yaml.Unmarshal(b, &th); err != nil {
		return th, fmt.Errorf("parse theme %s: %w", path, err)
	}
	if err := th.resolve(); err != nil {
		return th, err
	}
	return th, nil
}

func (t *Theme) resolve() error {
	t.resolved = make(map[string]color.NRGBA, len(t.Palette))
	for k, v := range t.Palette {
		c, err := Parse(v)
		if err != nil {
			return fmt.Errorf("theme palette %q: %w", k, err)
		}
		t.resolved[k] = c
	}
	if t.DPI <= 0 {
		return fmt.Errorf("theme dpi must be positive, got %d", t.DPI)
	}
	if t.FontSize <= 0 {
		return fmt.Errorf("theme font_size must be positive, got %g", t.FontSize)
	}
	return nil
}

// C returns the palette override for key, or def when the theme has none.
func (t Theme) C(key string, def color.NRGBA) color.NRGBA {
	if c, ok := t.resolved[key]; ok {
		return c
	}
	if v, ok := t.Palette[key]; ok {
		if c, err := Parse(v); err == nil {
			return c
		}
	}
	return def
}

// Sized scales a figure-specific font size relative to the 10pt base.
func (t Theme) Sized(pt float64) float64 {
	if t.FontSize <= 0 {
		return pt
	}
	return pt * t.FontSize / 10
}
