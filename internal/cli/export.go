package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/awareness/internal/app"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the site as static HTML",
		Long: `export renders every route to <out>/<route>/index.html, the not-found
page to <out>/404.html and the stylesheet and scripts to <out>/assets.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log := opts.load()
			defer func() { _ = log.Sync() }()

			a, err := app.New(cfg, log)
			if err != nil {
				return err
			}
			report, err := a.Export(cmd.Context(), out)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "exported %d pages and %d assets (%s) to %s, revision %s\n",
				report.Pages, report.Assets, humanize.Bytes(uint64(report.Bytes)), report.Dir, report.Revision)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "dist", "output directory")
	return cmd
}
