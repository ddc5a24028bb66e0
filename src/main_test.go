package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/contact-shreyas/ALPS/src/figures"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	out, err := run(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, name := range figures.Names() {
		if !strings.Contains(out, name) {
			t.Fatalf("list output missing %s:\n%s", name, out)
		}
	}
	if !strings.Contains(out, "fig12-v2") {
		t.Fatalf("list output missing aliases:\n%s", out)
	}
}

func TestRenderCommandWritesFilesAndManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "manifest.json")
	out, err := run(t, "render", "fig2", "fig10", "--out", dir, "--format", "svg", "--manifest", manifest, "--csv", "--log-level", "error")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "2/2 figures written") {
		t.Fatalf("unexpected summary: %q", out)
	}
	for _, f := range []string{"figure2_temporal_trends.svg", "figure10_correlation_matrix.svg", "figure10_correlation_matrix.csv"} {
		if st, err := os.Stat(filepath.Join(dir, f)); err != nil || st.Size() == 0 {
			t.Fatalf("expected non-empty %s: %v", f, err)
		}
	}
	b, err := os.ReadFile(manifest)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var parsed struct {
		Figures []struct {
			Name string `json:"name"`
			OK   bool   `json:"ok"`
		} `json:"figures"`
	}
	if err := json.Unmarshal(b, &parsed); err != nil {
		t.Fatalf("unmarshal manifest: %v", err)
	}
	if len(parsed.Figures) != 2 || parsed.Figures[0].Name != "figure2_temporal_trends" || !parsed.Figures[1].OK {
		t.Fatalf("unexpected manifest: %s", b)
	}
}

func TestRenderCommandUnknownFigure(t *testing.T) {
	_, err := run(t, "render", "fig4", "--out", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "unknown figure") {
		t.Fatalf("expected unknown figure error, got %v", err)
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("ALPS_FIG_FORMATS", "gif")
	dir := t.TempDir()
	// The env value is invalid; the flag replaces it before validation.
	if _, err := run(t, "render", "fig3", "--out", dir, "--format", "eps", "--log-level", "error"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "figure3_framework.eps")); err != nil {
		t.Fatalf("eps not written: %v", err)
	}
	if _, err := run(t, "render", "fig3", "--out", dir); err == nil {
		t.Fatalf("expected invalid env format to fail without the flag")
	}
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "export", "fig5", "--out", dir)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out, "figure5_shap_summary.csv") {
		t.Fatalf("unexpected export output: %q", out)
	}
}

func TestWatchCommandNeedsAFile(t *testing.T) {
	_, err := run(t, "watch", "--out", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "--theme") {
		t.Fatalf("expected missing file error, got %v", err)
	}
}

func TestWatchFilesDebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	theme := filepath.Join(dir, "theme.yaml")
	if err := os.WriteFile(theme, []byte("font_size: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	fired := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- watchFiles(ctx, []string{theme}, 50*time.Millisecond, func(context.Context) error {
			calls.Add(1)
			fired <- struct{}{}
			return nil
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	// Unrelated files in the same directory are ignored.
	_ = os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644)
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(theme, []byte("font_size: 11\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never fired")
	}
	time.Sleep(200 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Fatalf("expected one debounced call, got %d", n)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("watchFiles: %v", err)
	}
}
