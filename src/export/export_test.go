package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/contact-shreyas/ALPS/src/figures"
	"github.com/contact-shreyas/ALPS/src/scene"
	"github.com/contact-shreyas/ALPS/src/style"
)

func sample() *scene.Figure {
	f := scene.NewFigure("figure_export", 6, 4, 1, 2)
	f.Panels[0].Add(
		&scene.Line{Name: "trend", X: []float64{1, 2}, Y: []float64{2.5, math.NaN()}, Stroke: scene.Pen(style.Blue, 1)},
		scene.Label(1, 1, "ignored", 8),
	)
	f.Panels[1].Add(&scene.Bars{Name: "hist", Pos: []float64{0, 1}, Values: []float64{3, 5}, Width: 0.8, Err: []float64{0.5, 0.2}})
	return f
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	rows, err := WriteCSV(&buf, sample())
	require.NoError(t, err)
	require.Equal(t, 4, rows)

	got, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	want := [][]string{
		Header,
		{"0", "line", "trend", "0", "1", "2.5", ""},
		{"0", "line", "trend", "1", "2", "", ""},
		{"1", "bars", "hist", "0", "0", "3", "0.5"},
		{"1", "bars", "hist", "1", "1", "5", "0.2"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("csv mismatch (-want +got):\n%s", diff)
	}
}

func TestExportDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	f, err := ExportDir(context.Background(), sample(), dir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "figure_export.csv"), f.Path)
	require.Equal(t, 4, f.Rows)
	b, err := os.ReadFile(f.Path)
	require.NoError(t, err)
	require.Contains(t, string(b), "panel,kind,series,i,x,y,z\n")
}

func TestExportDir_ReplacesWithoutTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, sample().Name+".csv")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0o600))

	f, err := ExportDir(context.Background(), sample(), dir)
	require.NoError(t, err)
	require.Equal(t, path, f.Path)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(b), "stale")
	require.EqualValues(t, len(b), f.Bytes)
	st, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o644), st.Mode().Perm())

	ents, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, ents, 1)
}

func TestExportDir_FailedRenameLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	// A non-empty directory in the way makes the final rename fail.
	blocker := filepath.Join(dir, sample().Name+".csv")
	require.NoError(t, os.MkdirAll(filepath.Join(blocker, "keep"), 0o755))

	_, err := ExportDir(context.Background(), sample(), dir)
	require.Error(t, err)
	ents, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, ents, 1)
	require.True(t, ents[0].IsDir())
}

func TestExportDir_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ExportDir(ctx, sample(), t.TempDir())
	require.ErrorIs(t, err, context.Canceled)
}

func TestExportCatalogFigure(t *testing.T) {
	e, err := figures.Lookup("fig10")
	require.NoError(t, err)
	fig, err := e.Build(style.DefaultTheme())
	require.NoError(t, err)
	var buf bytes.Buffer
	rows, err := WriteCSV(&buf, fig)
	require.NoError(t, err)
	// 7x7 correlation heatmap.
	require.Equal(t, 49, rows)
}
