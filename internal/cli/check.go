package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/awareness/internal/domain"
	"github.com/MrSnakeDoc/awareness/internal/sources/content"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the content file without serving it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.config()

			doc, err := content.NewLoader(cfg.ContentFile).Load()
			if err != nil {
				return err
			}
			bundle, err := content.NewMapper(domain.MustRouteTable(domain.DefaultRoutes)).Map(doc)
			if err != nil {
				return fmt.Errorf("invalid content in %s: %w", doc.Source, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (site %q, revision %s)\n", doc.Source, bundle.Name, bundle.Revision)
			return nil
		},
	}
}
