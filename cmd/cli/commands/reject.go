package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RejectCmd creates the reject command
func RejectCmd(app *AppContext) *cobra.Command {
	var (
		processedBy string
		reason      string
	)

	cmd := &cobra.Command{
		Use:   "reject <suggestion_id>",
		Short: "Reject a pending suggestion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Service.RejectSuggestion(app.Ctx, args[0], processedBy, reason); err != nil {
				return err
			}

			fmt.Printf("\n✓ Suggestion %s rejected\n\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&processedBy, "by", "", "User id recorded as the processor")
	cmd.Flags().StringVar(&reason, "reason", "", "Optional rejection reason")

	return cmd
}
