// alpsfig renders the ALPS manuscript figures.
//
// With no arguments every figure is written as PDF and PNG into tmp/exports/figures.
// Subcommands:
//   - list: show figure names, aliases and titles in manuscript order.
//   - render [names...]: render the named figures (all when none are given).
//   - export [names...]: write the plotted data of each figure as CSV.
//   - watch [names...]: re-render whenever the theme or config file changes.
//
// Settings resolve as flag > ALPS_FIG_* environment > YAML config file > defaults.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/contact-shreyas/ALPS/src/config"
	"github.com/contact-shreyas/ALPS/src/logging"
)

type rootFlags struct {
	configPath string
	outDir     string
	formats    string
	dpi        int
	parallel   int
	logLevel   string
	theme      string
	manifest   string
	csv        bool
	failFast   bool
}

// resolve loads file and env settings then applies the flags the user set.
func (f *rootFlags) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Read(f.configPath)
	if err != nil {
		return cfg, err
	}
	fl := cmd.Flags()
	if fl.Changed("out") {
		cfg.OutDir = f.outDir
	}
	if fl.Changed("format") {
		cfg.Formats = strings.Split(f.formats, ",")
	}
	if fl.Changed("dpi") {
		cfg.DPI = f.dpi
	}
	if fl.Changed("parallel") {
		cfg.Parallel = f.parallel
	}
	if fl.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if fl.Changed("theme") {
		cfg.Theme = f.theme
	}
	if fl.Changed("manifest") {
		cfg.Manifest = f.manifest
	}
	if fl.Changed("csv") {
		cfg.ExportCSV = f.csv
	}
	if fl.Changed("fail-fast") {
		cfg.FailFast = f.failFast
	}
	logging.SetLogLevel(cfg.LogLevel)
	return cfg, cfg.Validate()
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "alpsfig",
		Short: "Render the ALPS manuscript figures",
		Long: `alpsfig builds every figure of the ALPS light-pollution manuscript and writes
publication quality PDF and PNG files.

Run without arguments to render all figures into tmp/exports/figures.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return renderFigures(cmd.Context(), cfg, nil, cmd.OutOrStdout())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			logging.Sync()
		},
	}
	root.SetOut(stdout)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "YAML config file")
	pf.StringVarP(&flags.outDir, "out", "o", "", "output directory (default tmp/exports/figures)")
	pf.StringVarP(&flags.formats, "format", "f", "", "comma separated formats: pdf,png,svg,eps (default pdf,png)")
	pf.IntVar(&flags.dpi, "dpi", 0, "raster resolution for PNG output (default: theme dpi, else 300)")
	pf.IntVarP(&flags.parallel, "parallel", "p", 0, "figures rendered concurrently")
	pf.StringVar(&flags.logLevel, "log-level", "", "debug|info|warn|error")
	pf.StringVar(&flags.theme, "theme", "", "YAML theme file overriding fonts and palette")
	pf.StringVar(&flags.manifest, "manifest", "", "write a JSON manifest of written files to this path")
	pf.BoolVar(&flags.csv, "csv", false, "also export each figure's data as CSV")
	pf.BoolVar(&flags.failFast, "fail-fast", false, "stop after the first failing figure")

	root.AddCommand(
		newListCmd(),
		newRenderCmd(flags),
		newExportCmd(flags),
		newWatchCmd(flags),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(os.Stdout).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		logging.Sync()
		os.Exit(1)
	}
}
