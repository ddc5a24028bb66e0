package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/contact-shreyas/ALPS/src/render"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "tmp/exports/figures", cfg.OutDir)
	require.Equal(t, []string{"pdf", "png"}, cfg.Formats)
	require.Zero(t, cfg.DPI, "zero defers to the theme")
	require.GreaterOrEqual(t, cfg.Parallel, 1)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	p := writeFile(t, "alps.yaml", "out_dir: build/figs\nformats: [svg]\ndpi: 150\nparallel: 2\nexport_csv: true\n")
	t.Setenv("ALPS_FIG_DPI", "72")
	t.Setenv("ALPS_FIG_FORMATS", "eps,png")

	cfg, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, "build/figs", cfg.OutDir)
	require.Equal(t, 72, cfg.DPI)
	require.Equal(t, 2, cfg.Parallel)
	require.True(t, cfg.ExportCSV)
	f, err := cfg.RenderFormats()
	require.NoError(t, err)
	require.Equal(t, []render.Format{render.EPS, render.PNG}, f)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("ALPS_FIG_FORMATS", "gif")
	t.Setenv("ALPS_FIG_PARALLEL", "0")
	_, err := Load("")
	require.Error(t, err)
	require.ErrorIs(t, err, render.ErrUnknownFormat)
	require.Contains(t, err.Error(), "parallel")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestBatchOptions_AppliesThemeAndDPI(t *testing.T) {
	theme := writeFile(t, "theme.yaml", "font_size: 12\npalette:\n  blue: \"#112233\"\n")
	cfg := Default()
	cfg.Theme = theme
	cfg.DPI = 96
	opts, err := cfg.BatchOptions([]string{"fig2"})
	require.NoError(t, err)
	require.Equal(t, 96, opts.Theme.DPI)
	require.Equal(t, 12.0, opts.Theme.FontSize)
	require.Equal(t, []string{"fig2"}, opts.Names)
	require.Equal(t, cfg.Parallel, opts.Parallel)
}

func TestLoadTheme_DPIPrecedence(t *testing.T) {
	theme := writeFile(t, "theme.yaml", "dpi: 150\n")

	cfg, err := Load("")
	require.NoError(t, err)
	th, err := cfg.LoadTheme()
	require.NoError(t, err)
	require.Equal(t, 300, th.DPI, "no theme and no dpi setting")

	cfg.Theme = theme
	th, err = cfg.LoadTheme()
	require.NoError(t, err)
	require.Equal(t, 150, th.DPI, "theme dpi survives an unset config dpi")

	t.Setenv("ALPS_FIG_DPI", "72")
	t.Setenv("ALPS_FIG_THEME", theme)
	cfg, err = Load("")
	require.NoError(t, err)
	opts, err := cfg.BatchOptions(nil)
	require.NoError(t, err)
	require.Equal(t, 72, opts.Theme.DPI)
}

func TestValidate_NegativeDPI(t *testing.T) {
	t.Setenv("ALPS_FIG_DPI", "-1")
	_, err := Load("")
	require.ErrorContains(t, err, "dpi")
}
