// figsheets writes quick-look PNG sheets of every XY panel of the ALPS figures,
// one chart per panel, for reviewing the plotted data without a PDF viewer.
//
//	figsheets --out tmp/sheets [--hints] [names...]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/contact-shreyas/ALPS/src/figures"
	"github.com/contact-shreyas/ALPS/src/logging"
	"github.com/contact-shreyas/ALPS/src/style"
)

func newCmd() *cobra.Command {
	var (
		outDir   string
		hints    bool
		theme    string
		logLevel string
	)
	cmd := &cobra.Command{
		Use:           "figsheets [names...]",
		Short:         "Write one go-chart PNG per figure panel",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.SetLogLevel(logLevel)
			entries, err := figures.Select(args)
			if err != nil {
				return err
			}
			th, err := style.LoadTheme(theme)
			if err != nil {
				return err
			}
			sheets, err := RunSheets(cmd.Context(), entries, th, outDir, hints)
			skipped := 0
			for _, s := range sheets {
				skipped += s.Skipped
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d sheets written to %s (%d annotation layers skipped)\n", len(sheets), outDir, skipped)
			return err
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "tmp/exports/sheets", "output directory")
	cmd.Flags().BoolVar(&hints, "hints", false, "stamp each sheet with its figure caption")
	cmd.Flags().StringVar(&theme, "theme", "", "YAML theme file")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "debug|info|warn|error")
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		logging.Sync()
		os.Exit(1)
	}
}
