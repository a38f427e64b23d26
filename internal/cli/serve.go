package cli

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/awareness/internal/app"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the site over HTTP (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
}

func runServe(cmd *cobra.Command, opts *rootOptions) error {
	cfg, log := opts.load()
	defer func() { _ = log.Sync() }()

	a, err := app.New(cfg, log)
	if err != nil {
		return err
	}
	return a.Run(cmd.Context())
}
