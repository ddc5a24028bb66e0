// Package export writes the numeric data behind a figure as CSV so the plotted
// values can be checked against the rendered output.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/contact-shreyas/ALPS/src/scene"
)

// Header is the first CSV row.
var Header = []string{"panel", "kind", "series", "i", "x", "y", "z"}

// WriteCSV emits one row per point of every data layer in panel order. Columns a
// layer does not carry are left empty; NaN is written as an empty cell too.
func WriteCSV(w io.Writer, fig *scene.Figure) (rows int, err error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return 0, err
	}
	for _, s := range scene.DataLayers(fig) {
		n := max(len(s.X), len(s.Y), len(s.Z))
		for i := 0; i < n; i++ {
			rec := []string{
				strconv.Itoa(s.Panel),
				s.Kind,
				s.Name,
				strconv.Itoa(i),
				cell(s.X, i),
				cell(s.Y, i),
				cell(s.Z, i),
			}
			if err := cw.Write(rec); err != nil {
				return rows, err
			}
			rows++
		}
	}
	cw.Flush()
	return rows, cw.Error()
}

func cell(v []float64, i int) string {
	if i >= len(v) || math.IsNaN(v[i]) {
		return ""
	}
	return strconv.FormatFloat(v[i], 'g', -1, 64)
}

// File is one exported table.
type File struct {
	Path  string
	Rows  int
	Bytes int64
}

// ExportDir writes <dir>/<name>.csv for fig.
func ExportDir(ctx context.Context, fig *scene.Figure, dir string) (File, error) {
	if err := ctx.Err(); err != nil {
		return File{}, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return File{}, fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, fig.Name+".csv")
	tmp, err := os.CreateTemp(dir, "."+fig.Name+".csv.*.tmp")
	if err != nil {
		return File{}, fmt.Errorf("create temp for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())
	rows, err := WriteCSV(tmp, fig)
	if err != nil {
		tmp.Close()
		return File{Path: path}, fmt.Errorf("write %s: %w", path, err)
	}
	st, err := tmp.Stat()
	if err != nil {
		tmp.Close()
		return File{Path: path}, fmt.Errorf("stat %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return File{Path: path}, fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := ctx.Err(); err != nil {
		return File{Path: path}, err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return File{Path: path}, fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return File{Path: path}, fmt.Errorf("write %s: %w", path, err)
	}
	return File{Path: path, Rows: rows, Bytes: st.Size()}, nil
}
