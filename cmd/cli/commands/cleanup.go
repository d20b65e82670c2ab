package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// CleanupCmd creates the cleanup command
func CleanupCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Mark stale pending suggestions as expired",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := app.Service.CleanupExpired(app.Ctx)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Expired %d stale suggestions\n\n", count)
			return nil
		},
	}
}
