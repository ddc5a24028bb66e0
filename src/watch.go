package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/contact-shreyas/ALPS/src/logging"
)

const watchDebounce = 300 * time.Millisecond

func newWatchCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [names...]",
		Short: "Re-render figures whenever the theme or config file changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			var paths []string
			for _, p := range []string{cfg.Theme, flags.configPath} {
				if p != "" {
					paths = append(paths, p)
				}
			}
			if len(paths) == 0 {
				return errors.New("watch needs --theme or --config")
			}
			rerun := func(ctx context.Context) error {
				cfg, err := flags.resolve(cmd)
				if err != nil {
					return err
				}
				return renderFigures(ctx, cfg, args, cmd.OutOrStdout())
			}
			if err := rerun(cmd.Context()); err != nil {
				logging.Errorf("Initial render: %v", err)
			}
			return watchFiles(cmd.Context(), paths, watchDebounce, rerun)
		},
	}
}

// watchFiles calls fn after each burst of changes to any of paths, until ctx ends.
// Parent directories are watched so editors that save by rename are seen too.
func watchFiles(ctx context.Context, paths []string, debounce time.Duration, fn func(context.Context) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Close()

	want := map[string]bool{}
	dirs := map[string]bool{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		want[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
		logging.Infof("Watching %s", abs)
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			abs, _ := filepath.Abs(ev.Name)
			if !want[abs] || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			logging.Debugf("%s: %s", ev.Op, ev.Name)
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logging.Warnf("Watcher error: %v", err)
		case <-timer.C:
			logging.Infof("Change detected, re-rendering")
			if err := fn(ctx); err != nil {
				logging.Errorf("Re-render: %v", err)
			}
		}
	}
}
