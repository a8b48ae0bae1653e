package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// CatalogOptions holds flags for the catalog command.
type CatalogOptions struct {
	*RootOptions
	Catalog string
}

// NewCatalogCommand creates the catalog command. It prints the effective
// parameter catalog, which doubles as overlay validation: a rejected
// overlay exits 2 with the CUE error details.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Show the effective parameter catalog",
		Long: `Show the parameter catalog the check command would use, with any CUE
overlay applied and validated.

Example:
  tgacheck catalog
  tgacheck catalog --catalog firmenwerte.cue`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(opts.Catalog)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid catalog", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(cat); err != nil {
				return WrapExitError(ExitCommandError, "failed to write catalog", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "CUE overlay for the parameter catalog")

	return cmd
}
