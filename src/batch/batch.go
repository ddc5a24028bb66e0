// Package batch builds and renders catalog figures concurrently and records what
// was written.
package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/contact-shreyas/ALPS/src/export"
	"github.com/contact-shreyas/ALPS/src/figures"
	"github.com/contact-shreyas/ALPS/src/logging"
	"github.com/contact-shreyas/ALPS/src/render"
	"github.com/contact-shreyas/ALPS/src/style"
)

// DefaultOutDir is where figures land when no directory is configured.
const DefaultOutDir = "tmp/exports/figures"

var (
	ErrPanic       = errors.New("figure builder panicked")
	ErrEmptyOutput = errors.New("empty output file")
)

// Options selects figures and output settings. Entries, when set, replaces the
// catalog lookup of Names.
type Options struct {
	Names     []string
	Entries   []figures.Entry
	OutDir    string
	Formats   []render.Format
	Parallel  int
	Theme     style.Theme
	ExportCSV bool
	// FailFast stops launching figures after the first failure. By default every
	// figure runs and failures are reported together.
	FailFast bool
}

type File struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Bytes  int64  `json:"bytes"`
}

type Result struct {
	Name     string
	Files    []File
	Duration time.Duration
	Err      error
}

// Report lists results in catalog order regardless of completion order.
type Report struct {
	OutDir  string
	Started time.Time
	Elapsed time.Duration
	Results []Result
}

// Failed returns the results that carry an error.
func (r *Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

func (o Options) withDefaults() Options {
	if o.OutDir == "" {
		o.OutDir = DefaultOutDir
	}
	if len(o.Formats) == 0 {
		o.Formats = render.DefaultFormats
	}
	if o.Parallel < 1 {
		o.Parallel = 1
	}
	if o.Theme.DPI == 0 {
		o.Theme = style.DefaultTheme()
	}
	return o
}

// Run renders every selected figure. The returned error aggregates per-figure
// failures; the report is returned even when some figures failed.
func Run(ctx context.Context, opts Options) (*Report, error) {
	opts = opts.withDefaults()
	entries := opts.Entries
	if entries == nil {
		var err error
		if entries, err = figures.Select(opts.Names); err != nil {
			return nil, err
		}
	}
	defer logging.TimeTrack(time.Now(), "batch render")

	rep := &Report{OutDir: opts.OutDir, Started: time.Now(), Results: make([]Result, len(entries))}
	r := render.New(opts.Theme)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Parallel)
	for i, e := range entries {
		g.Go(func() error {
			res := runOne(gctx, r, e, opts)
			rep.Results[i] = res
			if res.Err != nil {
				logging.Errorf("Error creating %s: %v", e.Name, res.Err)
				if opts.FailFast {
					return res.Err
				}
				return nil
			}
			logging.Infof("Created %s (%d files, %s)", e.Name, len(res.Files), res.Duration.Round(time.Millisecond))
			return nil
		})
	}
	_ = g.Wait()
	rep.Elapsed = time.Since(rep.Started)

	var err error
	for _, res := range rep.Results {
		if res.Err != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", res.Name, res.Err))
		}
	}
	if err == nil {
		logging.Infof("All %d figures written to %s", len(rep.Results), rep.OutDir)
	}
	return rep, err
}

func runOne(ctx context.Context, r *render.Renderer, e figures.Entry, opts Options) (res Result) {
	start := time.Now()
	res.Name = e.Name
	defer func() {
		if p := recover(); p != nil {
			res.Err = fmt.Errorf("%w: %v", ErrPanic, p)
		}
		res.Duration = time.Since(start)
	}()
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	logging.Debugf("Building %s", e.Name)
	fig, err := e.Build(opts.Theme)
	if err != nil {
		res.Err = fmt.Errorf("build: %w", err)
		return res
	}
	if fig == nil {
		res.Err = errors.New("build: nil figure")
		return res
	}

	written, err := r.RenderFile(ctx, fig, opts.OutDir, opts.Formats)
	for _, w := range written {
		res.Files = append(res.Files, File{Path: w.Path, Format: string(w.Format), Bytes: w.Bytes})
		if w.Bytes == 0 {
			err = multierr.Append(err, fmt.Errorf("%w: %s", ErrEmptyOutput, w.Path))
		}
	}
	if err != nil {
		res.Err = err
		return res
	}

	if opts.ExportCSV {
		f, err := export.ExportDir(ctx, fig, opts.OutDir)
		if err != nil {
			res.Err = err
			return res
		}
		res.Files = append(res.Files, File{Path: f.Path, Format: "csv", Bytes: f.Bytes})
	}
	return res
}

type manifestEntry struct {
	Name       string `json:"name"`
	OK         bool   `json:"ok"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
	Files      []File `json:"files"`
}

type manifest struct {
	OutDir    string          `json:"out_dir"`
	Started   time.Time       `json:"started"`
	ElapsedMS int64           `json:"elapsed_ms"`
	Figures   []manifestEntry `json:"figures"`
}

// WriteManifest writes the report as indented JSON.
func (r *Report) WriteManifest(path string) error {
	m := manifest{OutDir: r.OutDir, Started: r.Started, ElapsedMS: r.Elapsed.Milliseconds()}
	for _, res := range r.Results {
		me := manifestEntry{Name: res.Name, OK: res.Err == nil, DurationMS: res.Duration.Milliseconds(), Files: res.Files}
		if res.Err != nil {
			me.Error = res.Err.Error()
		}
		if me.Files == nil {
			me.Files = []File{}
		}
		m.Figures = append(m.Figures, me)
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create manifest dir: %w", err)
		}
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
