// Package cli defines the awareness command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/awareness/internal/config"
	"github.com/MrSnakeDoc/awareness/internal/logger"
)

type rootOptions struct {
	contentFile string
	logLevel    string
}

// NewRootCmd builds the command tree. Running it without a subcommand
// serves the site.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "awareness",
		Short: "Racism awareness campaign website",
		Long: `awareness serves the racism awareness campaign site: Home, Analytics,
Resources, Contact and the legal pages, composed from a YAML content file.
It can also export the whole site as static HTML.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.contentFile, "content", "", "content file (overrides RA_CONTENT_FILE)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides RA_LOG_LEVEL)")

	root.AddCommand(
		newServeCmd(opts),
		newExportCmd(opts),
		newCheckCmd(opts),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command line.
func Execute() error {
	return NewRootCmd().Execute()
}

// load reads the environment and applies flag overrides.
// config reads the environment and applies the flag overrides.
func (o *rootOptions) config() *config.Config {
	cfg := config.Load()
	if o.contentFile != "" {
		cfg.ContentFile = o.contentFile
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	return cfg
}

// load is config plus a logger; callers own the logger's Sync.
func (o *rootOptions) load() (*config.Config, logger.Logger) {
	cfg := o.config()
	return cfg, logger.New(cfg.LogLevel, cfg.PrettyLog)
}
