// Package render draws scene figures with gonum/plot onto PDF, PNG, SVG or EPS canvases.
package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/contact-shreyas/ALPS/src/scene"
	"github.com/contact-shreyas/ALPS/src/style"
)

type Format string

const (
	PDF Format = "pdf"
	PNG Format = "png"
	SVG Format = "svg"
	EPS Format = "eps"
)

var ErrUnknownFormat = errors.New("unknown output format")

// DefaultFormats is the pair every figure is published in.
var DefaultFormats = []Format{PDF, PNG}

// ParseFormats splits a comma separated list such as "pdf,png".
func ParseFormats(s string) ([]Format, error) {
	var out []Format
	seen := map[Format]bool{}
	for _, part := range strings.Split(s, ",") {
		f := Format(strings.ToLower(strings.TrimSpace(part)))
		if f == "" {
			continue
		}
		switch f {
		case PDF, PNG, SVG, EPS:
		default:
			return nil, fmt.Errorf("%w %q", ErrUnknownFormat, part)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty list", ErrUnknownFormat)
	}
	return out, nil
}

// Renderer draws figures using one theme.
type Renderer struct {
	Theme style.Theme
}

func New(th style.Theme) *Renderer { return &Renderer{Theme: th} }

func (r *Renderer) canvas(fig *scene.Figure, f Format) (vg.CanvasWriterTo, error) {
	w := vg.Length(fig.Width) * vg.Inch
	h := vg.Length(fig.Height) * vg.Inch
	switch f {
	case PNG:
		dpi := r.Theme.DPI
		if dpi <= 0 {
			dpi = style.DefaultTheme().DPI
		}
		return vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))}, nil
	case PDF:
		c := vgpdf.New(w, h)
		c.EmbedFonts(true)
		return c, nil
	case SVG:
		return vgsvg.New(w, h), nil
	case EPS:
		return vgeps.New(w, h), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownFormat, f)
}

// Render validates fig and writes it in format f to w.
func (r *Renderer) Render(ctx context.Context, fig *scene.Figure, f Format, w io.Writer) error {
	if err := scene.Validate(fig); err != nil {
		return err
	}
	c, err := r.canvas(fig, f)
	if err != nil {
		return err
	}
	if err := r.draw(ctx, fig, draw.New(c)); err != nil {
		return fmt.Errorf("draw %s: %w", fig.Name, err)
	}
	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("encode %s %s: %w", fig.Name, f, err)
	}
	return nil
}

// Written describes one output file.
type Written struct {
	Path   string
	Format Format
	Bytes  int64
}

// RenderFile writes <dir>/<name>.<ext> for every format. Each file goes to a temp
// name first and is renamed into place once complete.
func (r *Renderer) RenderFile(ctx context.Context, fig *scene.Figure, dir string, formats []Format) ([]Written, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create out dir: %w", err)
	}
	var out []Written
	for _, f := range formats {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		path := filepath.Join(dir, fig.Name+"."+string(f))
		n, err := r.writeAtomic(ctx, fig, f, path)
		if err != nil {
			return out, err
		}
		out = append(out, Written{Path: path, Format: f, Bytes: n})
	}
	return out, nil
}

func (r *Renderer) writeAtomic(ctx context.Context, fig *scene.Figure, f Format, path string) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("create temp for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())
	if err := r.Render(ctx, fig, f, tmp); err != nil {
		tmp.Close()
		return 0, err
	}
	st, err := tmp.Stat()
	if err != nil {
		tmp.Close()
		return 0, fmt.Errorf("stat %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return 0, fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	return st.Size(), nil
}
