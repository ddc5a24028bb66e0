package batch

import (
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/multierr"

	"github.com/contact-shreyas/ALPS/src/figures"
	"github.com/contact-shreyas/ALPS/src/render"
	"github.com/contact-shreyas/ALPS/src/scene"
	"github.com/contact-shreyas/ALPS/src/style"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func stub(name string) figures.Entry {
	return figures.Entry{Name: name, Alias: name, Build: func(style.Theme) (*scene.Figure, error) {
		f := scene.NewFigure(name, 2, 2, 1, 1)
		f.Panels[0].Add(&scene.Line{Name: "y", X: []float64{0, 1}, Y: []float64{0, 1}, Stroke: scene.Pen(style.Blue, 1)})
		return f, nil
	}}
}

func failing(name string) figures.Entry {
	return figures.Entry{Name: name, Build: func(style.Theme) (*scene.Figure, error) {
		return nil, errors.New("no data")
	}}
}

func panicking(name string) figures.Entry {
	return figures.Entry{Name: name, Build: func(style.Theme) (*scene.Figure, error) {
		panic("index out of range")
	}}
}

func TestRun_ContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	rep, err := Run(context.Background(), Options{
		Entries:  []figures.Entry{stub("fig_a"), failing("fig_b"), panicking("fig_c"), stub("fig_d")},
		OutDir:   dir,
		Formats:  []render.Format{render.SVG},
		Parallel: 3,
	})
	require.Error(t, err)
	require.Len(t, multierr.Errors(err), 2)
	require.Contains(t, err.Error(), "fig_b")
	require.Contains(t, err.Error(), "fig_c")
	require.ErrorIs(t, err, ErrPanic)

	require.Len(t, rep.Results, 4)
	require.NoError(t, rep.Results[0].Err)
	require.Error(t, rep.Results[1].Err)
	require.ErrorIs(t, rep.Results[2].Err, ErrPanic)
	require.NoError(t, rep.Results[3].Err)
	require.Len(t, rep.Failed(), 2)

	for _, name := range []string{"fig_a", "fig_d"} {
		st, err := os.Stat(filepath.Join(dir, name+".svg"))
		require.NoError(t, err)
		require.Positive(t, st.Size())
	}
}

func TestRun_FailFastCancelsRemaining(t *testing.T) {
	rep, err := Run(context.Background(), Options{
		Entries:  []figures.Entry{failing("fig_a"), stub("fig_b")},
		OutDir:   t.TempDir(),
		Formats:  []render.Format{render.SVG},
		Parallel: 1,
		FailFast: true,
	})
	require.Error(t, err)
	require.ErrorIs(t, rep.Results[1].Err, context.Canceled)
}

func TestRun_UnknownName(t *testing.T) {
	_, err := Run(context.Background(), Options{Names: []string{"fig99"}, OutDir: t.TempDir()})
	require.ErrorIs(t, err, figures.ErrUnknownFigure)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rep, err := Run(ctx, Options{Entries: []figures.Entry{stub("fig_a")}, OutDir: t.TempDir(), Formats: []render.Format{render.SVG}})
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, rep.Results[0].Files)
}

func TestRun_CatalogFigurePNGAndCSV(t *testing.T) {
	dir := t.TempDir()
	th := style.DefaultTheme()
	th.DPI = 30
	rep, err := Run(context.Background(), Options{
		Names:     []string{"fig10"},
		OutDir:    dir,
		Formats:   []render.Format{render.PNG},
		Theme:     th,
		ExportCSV: true,
	})
	require.NoError(t, err)
	require.Len(t, rep.Results, 1)
	files := rep.Results[0].Files
	require.Len(t, files, 2)
	require.Equal(t, "png", files[0].Format)
	require.Equal(t, "csv", files[1].Format)

	f, err := os.Open(files[0].Path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	// 10x8 inches at 30 DPI.
	require.Equal(t, 300, cfg.Width)
	require.Equal(t, 240, cfg.Height)
}

func TestRun_WholeCatalogDefaultFormats(t *testing.T) {
	dir := t.TempDir()
	th := style.DefaultTheme()
	th.DPI = 20
	rep, err := Run(context.Background(), Options{
		OutDir:   dir,
		Formats:  render.DefaultFormats,
		Parallel: 4,
		Theme:    th,
	})
	require.NoError(t, err)
	require.Empty(t, rep.Failed())
	require.Len(t, rep.Results, len(figures.Catalog()))
	for _, r := range rep.Results {
		require.Len(t, r.Files, len(render.DefaultFormats), r.Name)
		for _, f := range r.Files {
			b, err := os.ReadFile(f.Path)
			require.NoError(t, err)
			require.NotEmpty(t, b, f.Path)
			if f.Format == string(render.PDF) {
				require.Equal(t, "%PDF", string(b[:4]), f.Path)
			}
		}
	}
}

func TestWriteManifest_CatalogOrder(t *testing.T) {
	dir := t.TempDir()
	entries := []figures.Entry{stub("fig_a"), stub("fig_b"), failing("fig_c"), stub("fig_d"), stub("fig_e")}
	rep, _ := Run(context.Background(), Options{Entries: entries, OutDir: dir, Formats: []render.Format{render.SVG, render.EPS}, Parallel: 4})

	path := filepath.Join(dir, "meta", "manifest.json")
	require.NoError(t, rep.WriteManifest(path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var m manifest
	require.NoError(t, json.Unmarshal(b, &m))
	require.Len(t, m.Figures, len(entries))
	for i, e := range entries {
		require.Equal(t, e.Name, m.Figures[i].Name)
	}
	require.False(t, m.Figures[2].OK)
	require.Contains(t, m.Figures[2].Error, "no data")
	require.NotNil(t, m.Figures[2].Files)
	require.Len(t, m.Figures[0].Files, 2)
	require.Equal(t, "svg", m.Figures[0].Files[0].Format)
	require.Equal(t, "eps", m.Figures[0].Files[1].Format)
}
