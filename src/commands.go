package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/contact-shreyas/ALPS/src/batch"
	"github.com/contact-shreyas/ALPS/src/config"
	"github.com/contact-shreyas/ALPS/src/export"
	"github.com/contact-shreyas/ALPS/src/figures"
	"github.com/contact-shreyas/ALPS/src/logging"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List figures in manuscript order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tALIAS\tTITLE")
			for _, e := range figures.Catalog() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, e.Alias, e.Title)
			}
			return tw.Flush()
		},
	}
}

func newRenderCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "render [names...]",
		Short: "Render figures by name or alias (all when none are given)",
		Example: `  alpsfig render fig2 fig12-v2 --format svg
  alpsfig render --out build/figs --dpi 600 --manifest build/figs/manifest.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return renderFigures(cmd.Context(), cfg, args, cmd.OutOrStdout())
		},
	}
}

func newExportCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export [names...]",
		Short: "Write the plotted data of each figure as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return exportFigures(cmd.Context(), cfg, args, cmd.OutOrStdout())
		},
	}
}

func renderFigures(ctx context.Context, cfg config.Config, names []string, out io.Writer) error {
	opts, err := cfg.BatchOptions(names)
	if err != nil {
		return err
	}
	rep, runErr := batch.Run(ctx, opts)
	if rep == nil {
		return runErr
	}
	if cfg.Manifest != "" {
		if err := rep.WriteManifest(cfg.Manifest); err != nil {
			runErr = multierr.Append(runErr, err)
		} else {
			logging.Infof("Manifest written to %s", cfg.Manifest)
		}
	}
	failed := rep.Failed()
	fmt.Fprintf(out, "%d/%d figures written to %s in %s\n",
		len(rep.Results)-len(failed), len(rep.Results), rep.OutDir, rep.Elapsed.Round(time.Millisecond))
	for _, res := range failed {
		fmt.Fprintf(out, "  FAILED %s: %v\n", res.Name, res.Err)
	}
	return runErr
}

func exportFigures(ctx context.Context, cfg config.Config, names []string, out io.Writer) error {
	entries, err := figures.Select(names)
	if err != nil {
		return err
	}
	th, err := cfg.LoadTheme()
	if err != nil {
		return err
	}
	var errs error
	for _, e := range entries {
		fig, err := e.Build(th)
		if err != nil {
			logging.Errorf("Error building %s: %v", e.Name, err)
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", e.Name, err))
			continue
		}
		f, err := export.ExportDir(ctx, fig, cfg.OutDir)
		if err != nil {
			logging.Errorf("Error exporting %s: %v", e.Name, err)
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", e.Name, err))
			continue
		}
		fmt.Fprintf(out, "%s\t%d rows\n", f.Path, f.Rows)
	}
	return errs
}
